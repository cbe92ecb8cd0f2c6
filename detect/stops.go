package detect

import "github.com/quantfold/structure/market"

// Stop calculation defaults.
const (
	DefaultATRStopBuffer = 0.5
	// fallbackATRPct approximates ATR as a percentage of the current price
	// when the series carries no ATR column.
	fallbackATRPct = 2.0
)

// StopCalculator derives a structure-based protective stop.
type StopCalculator struct {
	buffer float64
}

func NewStopCalculator(atrBuffer float64) *StopCalculator {
	if atrBuffer <= 0 {
		atrBuffer = DefaultATRStopBuffer
	}
	return &StopCalculator{buffer: atrBuffer}
}

// Calculate returns the stop price for a position in the given structural
// direction. Bullish: the last HL (or else the most recent swing low) minus
// an ATR buffer; bearish symmetric above the last HH or swing high. The
// second return is false when no reference swing exists.
func (c *StopCalculator) Calculate(s *market.Series, ms MarketStructure, dir market.StructuralDirection) (float64, bool) {
	i := s.ConfirmedIndex()
	if i < 0 {
		return 0, false
	}
	price := s.At(i).Close

	atr := s.ATRAt(i)
	if atr <= 0 {
		atr = price * fallbackATRPct / 100
	}

	if dir == market.Bullish {
		ref, ok := referencePrice(ms.LastHL, ms.Swings, SwingLow)
		if !ok {
			return 0, false
		}
		return ref - atr*c.buffer, true
	}

	ref, ok := referencePrice(ms.LastHH, ms.Swings, SwingHigh)
	if !ok {
		return 0, false
	}
	return ref + atr*c.buffer, true
}

func referencePrice(labeled *LabeledSwing, swings []LabeledSwing, fallback SwingType) (float64, bool) {
	if labeled != nil {
		return labeled.Price, true
	}
	for i := len(swings) - 1; i >= 0; i-- {
		if swings[i].Type == fallback {
			return swings[i].Price, true
		}
	}
	return 0, false
}
