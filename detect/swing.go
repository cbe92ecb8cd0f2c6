package detect

import "github.com/quantfold/structure/market"

// DefaultSwingLookback is the symmetric window used when none is configured.
const DefaultSwingLookback = 5

// SwingConfig parameterizes swing detection.
type SwingConfig struct {
	// Lookback is the symmetric window size L: a swing must strictly beat
	// every candle within L bars on both sides.
	Lookback int
	// MinSwingSizePct disqualifies candles whose (high-low)/mid range, as a
	// percentage, falls below it. Zero disables the filter.
	MinSwingSizePct float64
}

// SwingDetector finds confirmed local extrema.
type SwingDetector struct {
	cfg SwingConfig
}

// NewSwingDetector builds a detector, applying the default lookback when
// the configured one is not positive.
func NewSwingDetector(cfg SwingConfig) *SwingDetector {
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultSwingLookback
	}
	return &SwingDetector{cfg: cfg}
}

// Detect returns all swing points in chronological order. The last candle is
// unconfirmed: it is never marked as a swing and never compared against, so
// the right-hand window is bounded by index len-2. Ties disqualify. A single
// candle may yield both a high and a low swing point. Returns nil when the
// series is shorter than 2*lookback+1.
func (d *SwingDetector) Detect(s *market.Series) []SwingPoint {
	n := s.Len()
	look := d.cfg.Lookback
	if n < 2*look+1 {
		return nil
	}

	last := n - 2 // newest comparable index
	var out []SwingPoint
	for i := look; i <= last; i++ {
		c := s.At(i)

		if d.cfg.MinSwingSizePct > 0 {
			mid := c.Mid()
			if mid <= 0 {
				continue
			}
			if c.Range()/mid*100 < d.cfg.MinSwingSizePct {
				continue
			}
		}

		lo := i - look
		hi := i + look
		if hi > last {
			hi = last
		}

		isHigh := true
		isLow := true
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			o := s.At(j)
			if o.High >= c.High {
				isHigh = false
			}
			if o.Low <= c.Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}

		if isHigh {
			out = append(out, SwingPoint{Index: i, Price: c.High, Type: SwingHigh, Time: c.Time})
		}
		if isLow {
			out = append(out, SwingPoint{Index: i, Price: c.Low, Type: SwingLow, Time: c.Time})
		}
	}
	return out
}
