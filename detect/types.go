// Package detect implements market-structure detection over candle snapshots:
// swing points, trend classification, structural breaks (BOS/CHoCH),
// liquidity sweeps, order blocks, reclaims, higher-timeframe bias and
// reversal grading. Every detector is a pure function of its input series;
// nothing here performs I/O or keeps state across evaluations (the
// classifier's memo cache is a per-instance optimization only).
package detect

import (
	"time"

	"github.com/quantfold/structure/market"
)

// SwingType distinguishes local maxima from local minima.
type SwingType int

const (
	SwingHigh SwingType = iota
	SwingLow
)

func (t SwingType) String() string {
	if t == SwingLow {
		return "low"
	}
	return "high"
}

// SwingPoint is a confirmed local extremum. Index never refers to the
// series' last (unconfirmed) candle.
type SwingPoint struct {
	Index int
	Price float64
	Type  SwingType
	Time  time.Time
}

// SwingLabel classifies a swing relative to the prior swing of the same type.
type SwingLabel int

const (
	LabelNone SwingLabel = iota // first swing of its kind, unclassified
	LabelHH
	LabelHL
	LabelLH
	LabelLL
)

func (l SwingLabel) String() string {
	switch l {
	case LabelHH:
		return "HH"
	case LabelHL:
		return "HL"
	case LabelLH:
		return "LH"
	case LabelLL:
		return "LL"
	default:
		return "-"
	}
}

// LabeledSwing is a swing point with its structural label.
type LabeledSwing struct {
	SwingPoint
	Label SwingLabel
}

// Trend is the classified market regime.
type Trend int

const (
	TrendRanging Trend = iota
	TrendBullish
	TrendBearish
)

func (t Trend) String() string {
	switch t {
	case TrendBullish:
		return "bullish"
	case TrendBearish:
		return "bearish"
	default:
		return "ranging"
	}
}

// MarketStructure is the labeled swing history plus the derived trend. The
// Last* fields point at the most recent swing of each label, nil when no
// swing of that label exists.
type MarketStructure struct {
	Trend  Trend
	Swings []LabeledSwing

	LastHH *LabeledSwing
	LastHL *LabeledSwing
	LastLH *LabeledSwing
	LastLL *LabeledSwing
}

// SwingPoints returns the bare swing points of the structure.
func (ms MarketStructure) SwingPoints() []SwingPoint {
	out := make([]SwingPoint, len(ms.Swings))
	for i, s := range ms.Swings {
		out[i] = s.SwingPoint
	}
	return out
}

// BreakType distinguishes continuation breaks from reversal breaks.
type BreakType int

const (
	BreakBOS   BreakType = iota // break of structure, trend continuation
	BreakCHoCH                  // change of character, potential reversal
)

func (t BreakType) String() string {
	if t == BreakCHoCH {
		return "CHoCH"
	}
	return "BOS"
}

// BreakEvent is a structural break on the confirmed candle.
type BreakEvent struct {
	Type        BreakType
	Index       int // always the confirmed candle, len-2
	Price       float64
	BrokenLevel float64
	Direction   market.StructuralDirection
}

// LiquiditySweep is a stop-hunt wick through a prior swing level that closed
// back on the original side. At most one per evaluation (the most recent).
type LiquiditySweep struct {
	Index      int
	SweptLevel float64
	SweepHigh  float64
	SweepLow   float64
	Direction  market.StructuralDirection
}

// OrderBlock is the last opposite-colored candle preceding a structural
// break. Mitigation tracking belongs to the caller.
type OrderBlock struct {
	Index     int
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Type      market.StructuralDirection
	Mitigated bool
}

// OnError names the policy for internal degradation inside the MTF bias
// filter and the grade engine: Permissive preserves the fail-open behavior
// of the original design, Strict turns degradation into a reject/zero.
type OnError int

const (
	Permissive OnError = iota
	Strict
)

func (p OnError) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}
