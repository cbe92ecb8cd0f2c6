package detect

import "github.com/quantfold/structure/market"

// BreakDetector finds structural breaks on the confirmed candle. Callers
// must check CHoCH before BOS: when both could apply, the change of
// character takes priority.
type BreakDetector struct{}

func NewBreakDetector() *BreakDetector { return &BreakDetector{} }

// DetectCHoCH returns a change-of-character event, or nil. A bullish CHoCH
// is a close above the last LH while the trend is bearish or ranging; a
// bearish CHoCH is a close below the last HL while the trend is bullish or
// ranging. In a ranging market both could qualify; the bullish case is
// evaluated first.
func (d *BreakDetector) DetectCHoCH(s *market.Series, ms MarketStructure) *BreakEvent {
	i := s.ConfirmedIndex()
	if i < 0 {
		return nil
	}
	close := s.At(i).Close

	if ms.Trend != TrendBullish && ms.LastLH != nil && close > ms.LastLH.Price {
		return &BreakEvent{
			Type:        BreakCHoCH,
			Index:       i,
			Price:       close,
			BrokenLevel: ms.LastLH.Price,
			Direction:   market.Bullish,
		}
	}
	if ms.Trend != TrendBearish && ms.LastHL != nil && close < ms.LastHL.Price {
		return &BreakEvent{
			Type:        BreakCHoCH,
			Index:       i,
			Price:       close,
			BrokenLevel: ms.LastHL.Price,
			Direction:   market.Bearish,
		}
	}
	return nil
}

// DetectBOS returns a break-of-structure event, or nil: a bullish trend
// closing above its last HH, or a bearish trend closing below its last LL.
func (d *BreakDetector) DetectBOS(s *market.Series, ms MarketStructure) *BreakEvent {
	i := s.ConfirmedIndex()
	if i < 0 {
		return nil
	}
	close := s.At(i).Close

	if ms.Trend == TrendBullish && ms.LastHH != nil && close > ms.LastHH.Price {
		return &BreakEvent{
			Type:        BreakBOS,
			Index:       i,
			Price:       close,
			BrokenLevel: ms.LastHH.Price,
			Direction:   market.Bullish,
		}
	}
	if ms.Trend == TrendBearish && ms.LastLL != nil && close < ms.LastLL.Price {
		return &BreakEvent{
			Type:        BreakBOS,
			Index:       i,
			Price:       close,
			BrokenLevel: ms.LastLL.Price,
			Direction:   market.Bearish,
		}
	}
	return nil
}
