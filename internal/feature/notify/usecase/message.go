package usecase

import (
	"fmt"
	"strings"

	scanentity "crypto_signal_bot/internal/feature/scan/domain/entity"
	scanusecase "crypto_signal_bot/internal/feature/scan/usecase"
)

// maxListedPairs caps how many matches one chat message lists.
const maxListedPairs = 10

// RenderResult renders a completed scan into the chat message body.
// An empty match list is a normal outcome and gets its own wording,
// distinct from the scan-failure message.
func RenderResult(result *scanentity.ScanResult) string {
	if len(result.Matches) == 0 {
		return "❌ No pairs currently match the entry criteria."
	}

	rows := scanusecase.Format(result.Matches)

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Found %d matching pairs at %s:\n\n",
		len(result.Matches), result.ScannedAt.UTC().Format("2006-01-02 15:04:05"))

	n := len(rows)
	if n > maxListedPairs {
		n = maxListedPairs
	}
	for i := 0; i < n; i++ {
		r := rows[i]
		fmt.Fprintf(&b, "%d. %s\n   Price: %s\n   Stop Loss: %s (Risk: %s)\n   Volume: %s\n\n",
			i+1, r.Symbol, r.Close, r.StopLoss, r.RiskPct, r.Volume)
	}
	if len(rows) > maxListedPairs {
		fmt.Fprintf(&b, "...and %d more pairs.", len(rows)-maxListedPairs)
	}
	return strings.TrimRight(b.String(), "\n")
}
