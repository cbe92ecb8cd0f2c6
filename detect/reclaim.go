package detect

import (
	"math"

	"github.com/quantfold/structure/market"
)

// Reclaim detection defaults.
const (
	DefaultReclaimLookback     = 5
	DefaultReclaimTolerancePct = 0.3
)

// ReclaimConfig parameterizes reclaim detection after a CHoCH.
type ReclaimConfig struct {
	// Lookback bounds how many candles after the break are inspected.
	Lookback int
	// TolerancePct defines "close enough" to the broken level, as a
	// percentage of that level.
	TolerancePct float64
}

// ReclaimDetector checks whether price came back and held the broken level
// after a change of character.
type ReclaimDetector struct {
	cfg ReclaimConfig
}

func NewReclaimDetector(cfg ReclaimConfig) *ReclaimDetector {
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultReclaimLookback
	}
	if cfg.TolerancePct <= 0 {
		cfg.TolerancePct = DefaultReclaimTolerancePct
	}
	return &ReclaimDetector{cfg: cfg}
}

// Detect scans candles from choch.Index+1 onward and reports true on the
// first candle that either closes within tolerance of the broken level, or
// wicks through it while closing back on the break side (low under the level
// with a close at or above it for a bullish break; symmetric for bearish).
// A larger lookback can only add matches, never remove one.
func (d *ReclaimDetector) Detect(s *market.Series, choch *BreakEvent) bool {
	if choch == nil || choch.Type != BreakCHoCH {
		return false
	}
	level := choch.BrokenLevel
	tol := math.Abs(level) * d.cfg.TolerancePct / 100

	end := choch.Index + d.cfg.Lookback
	if last := s.Len() - 1; end > last {
		end = last
	}
	for i := choch.Index + 1; i <= end; i++ {
		c := s.At(i)
		if math.Abs(c.Close-level) <= tol {
			return true
		}
		if choch.Direction == market.Bullish && c.Low < level && c.Close >= level {
			return true
		}
		if choch.Direction == market.Bearish && c.High > level && c.Close <= level {
			return true
		}
	}
	return false
}
