package usecase

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"crypto_signal_bot/internal/feature/scan/domain/entity"
)

// Rank sorts matches by volume descending to prioritise liquid pairs.
// The sort is stable: matches with equal volume keep their encounter
// order, so ranked output is reproducible for a given fetch.
func Rank(matches []entity.SignalMatch) []entity.SignalMatch {
	out := make([]entity.SignalMatch, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Volume > out[j].Volume })
	return out
}

// Row is the textual presentation of one SignalMatch. A pure view
// transform; the underlying numeric values are never altered.
type Row struct {
	Symbol   string
	Date     string // YYYY-MM-DD of the latest bar
	Close    string // e.g. "$1,234.567890"
	MA28     string
	StopLoss string
	RiskPct  string // e.g. "7.14%"
	Volume   string // e.g. "$500,000"
}

// printer groups thousands the en-US way, matching the display of the
// rest of the tooling around this bot.
var printer = message.NewPrinter(language.English)

// Format renders matches into fixed-precision display rows: prices with
// six decimals, risk with two, volume as a grouped integer.
func Format(matches []entity.SignalMatch) []Row {
	rows := make([]Row, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, Row{
			Symbol:   m.Symbol,
			Date:     m.Time.UTC().Format("2006-01-02"),
			Close:    printer.Sprintf("$%.6f", m.Close),
			MA28:     printer.Sprintf("$%.6f", m.MA28),
			StopLoss: printer.Sprintf("$%.6f", m.StopLoss),
			RiskPct:  printer.Sprintf("%.2f%%", m.RiskPct),
			Volume:   printer.Sprintf("$%.0f", m.Volume),
		})
	}
	return rows
}
