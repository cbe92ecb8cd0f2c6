package detect

import (
	"github.com/markcheno/go-talib"

	"github.com/quantfold/structure/market"
)

// Grade thresholds are fixed: A at 80 and above, B in [50,80), C below 50.
const (
	gradeAMin = 80
	gradeBMin = 50
)

// squeezeWindow and squeezeRatio parameterize the volatility-contraction
// approximation used when the series has no explicit squeeze column.
const (
	squeezeWindow = 20
	squeezeRatio  = 0.7
)

// GradeLetter is the coarse quality bucket of a CHoCH.
type GradeLetter int

const (
	GradeA GradeLetter = iota
	GradeB
	GradeC
)

func (g GradeLetter) String() string {
	switch g {
	case GradeA:
		return "A"
	case GradeB:
		return "B"
	default:
		return "C"
	}
}

// ParseGradeLetter parses "A", "B" or "C".
func ParseGradeLetter(s string) (GradeLetter, bool) {
	switch s {
	case "A":
		return GradeA, true
	case "B":
		return GradeB, true
	case "C":
		return GradeC, true
	}
	return GradeC, false
}

// FactorBreakdown itemizes the additive score.
type FactorBreakdown struct {
	TrendReversal  float64 // 25 when the CHoCH reverses the pre-break trend
	Sweep          float64 // 25 aligned, 10 misaligned, 0 absent
	OrderBlockSize float64 // 20 / 10 / 0 by block range as % of mid price
	Squeeze        float64 // 15 when squeeze-on (or approximated contraction)
	VWAP           float64 // 15 when close sits above VWAP
}

// Total sums the factors.
func (f FactorBreakdown) Total() float64 {
	return f.TrendReversal + f.Sweep + f.OrderBlockSize + f.Squeeze + f.VWAP
}

// Grade is the scored quality of a CHoCH.
type Grade struct {
	Score   float64 // always within [0,100]
	Letter  GradeLetter
	Factors FactorBreakdown
	// Skipped lists factors abandoned due to a contained computation error.
	Skipped []string
}

// GradeInputs collects everything the engine scores.
type GradeInputs struct {
	Series     *market.Series
	Structure  MarketStructure
	Break      *BreakEvent
	Sweep      *LiquiditySweep
	OrderBlock *OrderBlock
}

// GradeEngine scores a change of character 0-100 and buckets it A/B/C.
// A factor whose computation degenerates (for example a zero mid-price on
// the order block) is skipped under the Permissive policy; under Strict the
// whole grade collapses to zero.
type GradeEngine struct {
	onError OnError
}

func NewGradeEngine(policy OnError) *GradeEngine {
	return &GradeEngine{onError: policy}
}

// Evaluate grades the break. Missing optional columns degrade the dependent
// factor to zero, never fail.
func (e *GradeEngine) Evaluate(in GradeInputs) Grade {
	var g Grade

	if in.Break != nil {
		if reversesTrend(in.Break.Direction, in.Structure.Trend) {
			g.Factors.TrendReversal = 25
		}
		if in.Sweep != nil {
			if in.Sweep.Direction == in.Break.Direction {
				g.Factors.Sweep = 25
			} else {
				g.Factors.Sweep = 10
			}
		}
	}

	if in.OrderBlock != nil {
		mid := (in.OrderBlock.High + in.OrderBlock.Low) / 2
		if mid <= 0 {
			if e.onError == Strict {
				return Grade{Letter: GradeC, Skipped: []string{"order_block"}}
			}
			g.Skipped = append(g.Skipped, "order_block")
		} else {
			pct := (in.OrderBlock.High - in.OrderBlock.Low) / mid * 100
			switch {
			case pct >= 0.5:
				g.Factors.OrderBlockSize = 20
			case pct >= 0.2:
				g.Factors.OrderBlockSize = 10
			}
		}
	}

	if squeezeOn(in.Series) {
		g.Factors.Squeeze = 15
	}

	if i := in.Series.ConfirmedIndex(); i >= 0 && in.Series.HasVWAP() {
		if in.Series.At(i).Close > in.Series.VWAPAt(i) {
			g.Factors.VWAP = 15
		}
	}

	g.Score = g.Factors.Total()
	g.Letter = letterFor(g.Score)
	return g
}

func letterFor(score float64) GradeLetter {
	switch {
	case score >= gradeAMin:
		return GradeA
	case score >= gradeBMin:
		return GradeB
	default:
		return GradeC
	}
}

// reversesTrend reports whether a break in the given direction flips the
// pre-break trend.
func reversesTrend(dir market.StructuralDirection, trend Trend) bool {
	return (dir == market.Bullish && trend == TrendBearish) ||
		(dir == market.Bearish && trend == TrendBullish)
}

// squeezeOn prefers the explicit squeeze column on the confirmed candle and
// falls back to a contraction approximation: the 20-bar close standard
// deviation below 0.7x the 20-bar average candle range.
func squeezeOn(s *market.Series) bool {
	i := s.ConfirmedIndex()
	if i < 0 {
		return false
	}
	if s.HasSqueeze() {
		return s.SqueezeAt(i)
	}
	if i+1 < squeezeWindow {
		return false
	}

	closes := make([]float64, i+1)
	ranges := make([]float64, i+1)
	for k := 0; k <= i; k++ {
		c := s.At(k)
		closes[k] = c.Close
		ranges[k] = c.Range()
	}
	std := talib.StdDev(closes, squeezeWindow, 1.0)
	avg := talib.Sma(ranges, squeezeWindow)
	if avg[i] <= 0 {
		return false
	}
	return std[i] < squeezeRatio*avg[i]
}
