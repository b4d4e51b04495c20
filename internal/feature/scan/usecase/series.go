// Package usecase implements the signal-computation pipeline: series
// building, signal evaluation, ranking and the scan orchestration.
package usecase

import (
	"sort"

	"crypto_signal_bot/internal/feature/scan/domain/entity"
)

// MAPeriod is the window length of the trailing simple moving average.
const MAPeriod = 28

// BuildSeries converts raw candles into an ordered, annotated series for
// one symbol. Input order is not trusted: candles are stably re-sorted by
// timestamp ascending and duplicate timestamps are dropped (first
// occurrence wins), so the result is deterministic for any input
// permutation. Each bar is classified green or red and carries the
// trailing 28-sample moving average, left invalid until 28 samples exist.
func BuildSeries(symbol string, candles []entity.Candle) entity.Series {
	cs := make([]entity.Candle, len(candles))
	copy(cs, candles)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Time.Before(cs[j].Time) })

	bars := make([]entity.Bar, 0, len(cs))
	var sum float64
	for _, c := range cs {
		if n := len(bars); n > 0 && !c.Time.After(bars[n-1].Time) {
			// Duplicate timestamp after sorting; keep the first occurrence.
			continue
		}
		bar := entity.Bar{Candle: c, IsGreen: c.Close > c.Open}
		sum += c.Close
		if n := len(bars); n >= MAPeriod-1 {
			if n >= MAPeriod {
				sum -= bars[n-MAPeriod].Close
			}
			bar.MA28 = sum / MAPeriod
			bar.MAValid = true
		}
		bars = append(bars, bar)
	}
	return entity.Series{Symbol: symbol, Bars: bars}
}
