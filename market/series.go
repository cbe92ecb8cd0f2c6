package market

import (
	"fmt"
	"strings"
	"time"
)

// Series is a time-ordered, index-addressable candle sequence with explicit
// optional indicator columns. It is the read-only input snapshot for every
// detector: column presence is resolved here, once, and downstream code asks
// HasATR/HasVWAP/HasSqueeze/HasVolume instead of re-checking raw data.
type Series struct {
	candles []Candle

	atr     []float64
	vwap    []float64
	squeeze []bool

	hasATR     bool
	hasVWAP    bool
	hasSqueeze bool
	hasVolume  bool
}

// NewSeries builds a series from candles. Volume is considered present when
// any candle carries a non-zero volume.
func NewSeries(candles []Candle) *Series {
	s := &Series{candles: candles}
	for _, c := range candles {
		if c.Volume > 0 {
			s.hasVolume = true
			break
		}
	}
	return s
}

// Len returns the number of candles.
func (s *Series) Len() int { return len(s.candles) }

// At returns the candle at index i.
func (s *Series) At(i int) Candle { return s.candles[i] }

// Last returns the newest candle. The last candle is unconfirmed: it may
// still be forming, so detectors never mark it or compare against it.
func (s *Series) Last() Candle { return s.candles[len(s.candles)-1] }

// ConfirmedIndex returns the index of the newest confirmed candle (len-2),
// or -1 when the series holds fewer than two candles.
func (s *Series) ConfirmedIndex() int {
	if len(s.candles) < 2 {
		return -1
	}
	return len(s.candles) - 2
}

// Confirmed returns the newest confirmed candle. Callers must check
// ConfirmedIndex() >= 0 first.
func (s *Series) Confirmed() Candle { return s.candles[len(s.candles)-2] }

func (s *Series) HasATR() bool     { return s.hasATR }
func (s *Series) HasVWAP() bool    { return s.hasVWAP }
func (s *Series) HasSqueeze() bool { return s.hasSqueeze }
func (s *Series) HasVolume() bool  { return s.hasVolume }

// ATRAt returns the ATR value at index i; zero when the column is absent.
func (s *Series) ATRAt(i int) float64 {
	if !s.hasATR {
		return 0
	}
	return s.atr[i]
}

// VWAPAt returns the VWAP value at index i; zero when the column is absent.
func (s *Series) VWAPAt(i int) float64 {
	if !s.hasVWAP {
		return 0
	}
	return s.vwap[i]
}

// SqueezeAt reports the squeeze-on flag at index i; false when absent.
func (s *Series) SqueezeAt(i int) bool {
	if !s.hasSqueeze {
		return false
	}
	return s.squeeze[i]
}

// SetColumn attaches an optional float column by name. Column names are
// case-insensitive; recognized names are "atr" and "vwap".
func (s *Series) SetColumn(name string, values []float64) error {
	if len(values) != len(s.candles) {
		return fmt.Errorf("column %s: got %d values for %d candles", name, len(values), len(s.candles))
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "atr":
		s.atr = values
		s.hasATR = true
	case "vwap":
		s.vwap = values
		s.hasVWAP = true
	default:
		return fmt.Errorf("unknown indicator column %q", name)
	}
	return nil
}

// SetSqueeze attaches the optional squeeze-on flag column.
func (s *Series) SetSqueeze(values []bool) error {
	if len(values) != len(s.candles) {
		return fmt.Errorf("squeeze column: got %d values for %d candles", len(values), len(s.candles))
	}
	s.squeeze = values
	s.hasSqueeze = true
	return nil
}

// IsIndicatorColumn reports whether a raw column name maps to an optional
// indicator the series understands. Matching is case-insensitive.
func IsIndicatorColumn(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "atr", "vwap", "squeeze_on":
		return true
	}
	return false
}

// Prefix returns a view over the first n candles, sharing backing storage.
// Optional columns are sliced along with the candles.
func (s *Series) Prefix(n int) *Series {
	if n > len(s.candles) {
		n = len(s.candles)
	}
	p := &Series{
		candles:    s.candles[:n],
		hasATR:     s.hasATR,
		hasVWAP:    s.hasVWAP,
		hasSqueeze: s.hasSqueeze,
		hasVolume:  s.hasVolume,
	}
	if s.hasATR {
		p.atr = s.atr[:n]
	}
	if s.hasVWAP {
		p.vwap = s.vwap[:n]
	}
	if s.hasSqueeze {
		p.squeeze = s.squeeze[:n]
	}
	return p
}

// UpTo returns the prefix of candles whose time does not exceed t. Used to
// align a higher-timeframe series with the evaluation point of the base one.
func (s *Series) UpTo(t time.Time) *Series {
	n := 0
	for n < len(s.candles) && !s.candles[n].Time.After(t) {
		n++
	}
	return s.Prefix(n)
}
