package usecase

import (
	"crypto_signal_bot/internal/feature/scan/domain/entity"
)

// minEvalBars is the minimum series length required before the entry
// predicate is even considered.
const minEvalBars = 30

// Evaluate applies the entry predicate to the last two bars of a series:
// both green, and the latest close above its 28-period moving average.
//
// It returns (nil, nil) when the series is too short, the moving average
// is not yet established, or the predicate does not hold. "No match" is
// a normal outcome, not an error. ErrZeroStopLoss is returned when the
// predicate holds but the stop-loss price is zero, so the risk percentage
// cannot be computed.
//
// Evaluate is a pure function of its input series: no I/O, no shared state.
func Evaluate(s entity.Series) (*entity.SignalMatch, error) {
	if s.Len() < minEvalBars {
		return nil, nil
	}
	last, prev := s.Last(0), s.Last(1)
	if !last.MAValid {
		return nil, nil
	}
	if !last.IsGreen || !prev.IsGreen || last.Close <= last.MA28 {
		return nil, nil
	}

	stopLoss := last.Low
	if prev.Low < stopLoss {
		stopLoss = prev.Low
	}
	if stopLoss == 0 {
		return nil, ErrZeroStopLoss
	}

	return &entity.SignalMatch{
		Symbol:   s.Symbol,
		Close:    last.Close,
		Time:     last.Time,
		MA28:     last.MA28,
		StopLoss: stopLoss,
		RiskPct:  (last.Close/stopLoss - 1) * 100,
		Volume:   last.Volume,
	}, nil
}
