package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"crypto_signal_bot/internal/app/di"
	"crypto_signal_bot/internal/feature/scan/adapters/binance"
	scanusecase "crypto_signal_bot/internal/feature/scan/usecase"
)

func main() {
	quote := flag.String("quote", "USDT", "quote currency to filter pairs")
	days := flag.Int("days", scanusecase.DefaultLookbackDays, "candle lookback window in days")
	limit := flag.Int("limit", 0, "max symbols to process, 0 for all")
	flag.Parse()

	_ = godotenv.Load()
	var cfg binance.Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal("failed to load config: ", err)
	}

	uc := di.NewScanUsecase(cfg, nil, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	result, err := uc.Scan(ctx, *quote, *days, *limit)
	if err != nil {
		log.Fatal(err)
	}

	if len(result.Matches) == 0 {
		fmt.Println("No cryptocurrency pairs match the criteria currently.")
		return
	}

	fmt.Printf("\n%d cryptocurrency pairs match the entry criteria:\n", len(result.Matches))
	fmt.Printf("%-14s %-12s %-18s %-18s %-18s %-9s %s\n",
		"SYMBOL", "DATE", "CLOSE", "MA28", "STOP LOSS", "RISK", "VOLUME")
	for _, r := range scanusecase.Format(result.Matches) {
		fmt.Printf("%-14s %-12s %-18s %-18s %-18s %-9s %s\n",
			r.Symbol, r.Date, r.Close, r.MA28, r.StopLoss, r.RiskPct, r.Volume)
	}
	if n := len(result.Skipped); n > 0 {
		fmt.Printf("\n%d symbols skipped due to errors.\n", n)
	}
}
