package detect

import (
	"github.com/quantfold/structure/market"
)

// minHTFCandles is the minimum higher-timeframe history required before the
// filter expresses an opinion.
const minHTFCandles = 20

// mtfSwingWindow is how many of the newest HTF swings feed the up/down check.
const mtfSwingWindow = 6

// BiasVerdict is the outcome of a higher-timeframe bias check.
type BiasVerdict struct {
	Allow  bool
	Reason string
}

// MTFBiasFilter vetoes trade directions that fight the higher timeframe.
//
// The filter is deliberately permissive: with the Permissive policy any
// insufficient or degenerate HTF data resolves to Allow, and only a clearly
// opposing HTF swing sequence rejects. Strict flips those defaults.
type MTFBiasFilter struct {
	classifier *Classifier
	onError    OnError
}

func NewMTFBiasFilter(cfg SwingConfig, policy OnError) *MTFBiasFilter {
	return &MTFBiasFilter{
		classifier: NewClassifier(cfg),
		onError:    policy,
	}
}

// Check evaluates the proposed trade direction against the HTF series.
func (f *MTFBiasFilter) Check(htf *market.Series, dir market.TradeDirection) BiasVerdict {
	if htf == nil || htf.Len() < minHTFCandles {
		return f.degraded("insufficient HTF data")
	}

	ms := f.classifier.Classify(htf)
	swings := ms.Swings
	if len(swings) > mtfSwingWindow {
		swings = swings[len(swings)-mtfSwingWindow:]
	}

	var highs, lows []float64
	for _, sw := range swings {
		if sw.Type == SwingHigh {
			highs = append(highs, sw.Price)
		} else {
			lows = append(lows, sw.Price)
		}
	}
	if len(highs) < 2 || len(lows) < 2 {
		return f.degraded("insufficient HTF swing data")
	}

	isUptrend := highs[len(highs)-1] > highs[len(highs)-2] && lows[len(lows)-1] > lows[len(lows)-2]
	isDowntrend := highs[len(highs)-1] < highs[len(highs)-2] && lows[len(lows)-1] < lows[len(lows)-2]

	if dir == market.Long {
		if isDowntrend {
			return BiasVerdict{Allow: false, Reason: "HTF swings trending down"}
		}
		if isUptrend {
			return BiasVerdict{Allow: true, Reason: "HTF swings trending up"}
		}
		if ms.Trend == TrendBullish || ms.Trend == TrendRanging {
			return BiasVerdict{Allow: true, Reason: "HTF trend " + ms.Trend.String()}
		}
		return BiasVerdict{Allow: true, Reason: "no HTF objection"}
	}

	// short
	if isUptrend {
		return BiasVerdict{Allow: false, Reason: "HTF swings trending up"}
	}
	return BiasVerdict{Allow: true, Reason: "no HTF objection"}
}

func (f *MTFBiasFilter) degraded(reason string) BiasVerdict {
	if f.onError == Strict {
		return BiasVerdict{Allow: false, Reason: reason}
	}
	return BiasVerdict{Allow: true, Reason: reason + " (permissive)"}
}

// HTFTrend exposes the filter's classified HTF trend for callers that need
// the strict trend match (the entry prefilter) without a second classifier.
func (f *MTFBiasFilter) HTFTrend(htf *market.Series) Trend {
	if htf == nil || htf.Len() < minHTFCandles {
		return TrendRanging
	}
	return f.classifier.Classify(htf).Trend
}
