package detect

import "github.com/quantfold/structure/market"

// Sweep detection defaults.
const (
	DefaultSweepLookback     = 20
	DefaultSweepThresholdPct = 0.1
)

// SweepConfig parameterizes liquidity-sweep detection.
type SweepConfig struct {
	// Lookback bounds how far behind the confirmed candle a swept swing
	// level may sit.
	Lookback int
	// ThresholdPct is the minimum wick penetration beyond the level, as a
	// percentage of the level.
	ThresholdPct float64
}

// SweepDetector finds the most recent stop-hunt sweep on the confirmed candle.
type SweepDetector struct {
	cfg SweepConfig
}

func NewSweepDetector(cfg SweepConfig) *SweepDetector {
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultSweepLookback
	}
	if cfg.ThresholdPct <= 0 {
		cfg.ThresholdPct = DefaultSweepThresholdPct
	}
	return &SweepDetector{cfg: cfg}
}

// Detect inspects only the confirmed candle (index len-2). A bullish sweep
// undercuts the nearest prior swing low within lookback and closes back above
// it; a bearish sweep is symmetric on the nearest prior swing high. When both
// qualify the bullish sweep wins. Returns nil when neither does.
func (d *SweepDetector) Detect(s *market.Series, swings []SwingPoint) *LiquiditySweep {
	i := s.ConfirmedIndex()
	if i < 0 {
		return nil
	}
	c := s.At(i)

	if low := d.nearest(swings, SwingLow, i); low != nil {
		level := low.Price
		if level > 0 && c.Low < level && c.Close > level {
			if (level-c.Low)/level*100 >= d.cfg.ThresholdPct {
				return &LiquiditySweep{
					Index:      i,
					SweptLevel: level,
					SweepHigh:  c.High,
					SweepLow:   c.Low,
					Direction:  market.Bullish,
				}
			}
		}
	}

	if high := d.nearest(swings, SwingHigh, i); high != nil {
		level := high.Price
		if level > 0 && c.High > level && c.Close < level {
			if (c.High-level)/level*100 >= d.cfg.ThresholdPct {
				return &LiquiditySweep{
					Index:      i,
					SweptLevel: level,
					SweepHigh:  c.High,
					SweepLow:   c.Low,
					Direction:  market.Bearish,
				}
			}
		}
	}
	return nil
}

// nearest returns the most recent swing of the given type strictly before
// the confirmed index and within lookback, or nil.
func (d *SweepDetector) nearest(swings []SwingPoint, st SwingType, confirmed int) *SwingPoint {
	for k := len(swings) - 1; k >= 0; k-- {
		sp := swings[k]
		if sp.Type != st || sp.Index >= confirmed {
			continue
		}
		if confirmed-sp.Index > d.cfg.Lookback {
			return nil
		}
		return &sp
	}
	return nil
}
