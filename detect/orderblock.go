package detect

import "github.com/quantfold/structure/market"

// DefaultOrderBlockLookback bounds the backward scan for the origin candle.
const DefaultOrderBlockLookback = 10

// OrderBlockFinder locates the last opposite-colored candle preceding a
// structural break.
type OrderBlockFinder struct {
	lookback int
}

func NewOrderBlockFinder(lookback int) *OrderBlockFinder {
	if lookback <= 0 {
		lookback = DefaultOrderBlockLookback
	}
	return &OrderBlockFinder{lookback: lookback}
}

// Find scans backward from brk.Index-1 for the nearest candle colored
// against the break: a bearish candle for a bullish break, a bullish candle
// for a bearish break. Returns nil when none sits within lookback.
func (f *OrderBlockFinder) Find(s *market.Series, brk *BreakEvent) *OrderBlock {
	if brk == nil {
		return nil
	}
	stop := brk.Index - f.lookback
	if stop < 0 {
		stop = 0
	}
	for i := brk.Index - 1; i >= stop; i-- {
		c := s.At(i)
		if brk.Direction == market.Bullish && !c.Bearish() {
			continue
		}
		if brk.Direction == market.Bearish && !c.Bullish() {
			continue
		}
		return &OrderBlock{
			Index: i,
			Open:  c.Open,
			High:  c.High,
			Low:   c.Low,
			Close: c.Close,
			Type:  brk.Direction,
		}
	}
	return nil
}
