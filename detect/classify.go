package detect

import (
	"sync"
	"time"

	"github.com/quantfold/structure/market"
)

// trendWindow is how many of the most recent classified labels decide trend.
const trendWindow = 4

type memoKey struct {
	length    int
	confirmed time.Time
}

// Classifier derives labeled swing history and trend from a candle series.
//
// The memo cache is keyed by (series length, confirmed-candle time) and is an
// optimization only: a cache hit and a recompute always agree. It is
// per-instance and internally locked, so one Classifier may be shared across
// goroutines; results must be treated as read-only.
type Classifier struct {
	swings *SwingDetector

	mu   sync.Mutex
	memo map[memoKey]MarketStructure
}

func NewClassifier(cfg SwingConfig) *Classifier {
	return &Classifier{
		swings: NewSwingDetector(cfg),
		memo:   make(map[memoKey]MarketStructure),
	}
}

// Classify recomputes the market structure from scratch (modulo the memo
// cache). Fewer than 3 swings yields Ranging with no swing history.
func (c *Classifier) Classify(s *market.Series) MarketStructure {
	key, cacheable := c.key(s)
	if cacheable {
		c.mu.Lock()
		if ms, ok := c.memo[key]; ok {
			c.mu.Unlock()
			return ms
		}
		c.mu.Unlock()
	}

	ms := c.classify(s)

	if cacheable {
		c.mu.Lock()
		// retain only the newest snapshot per length to bound growth
		for k := range c.memo {
			if k.length == key.length {
				delete(c.memo, k)
			}
		}
		c.memo[key] = ms
		c.mu.Unlock()
	}
	return ms
}

func (c *Classifier) key(s *market.Series) (memoKey, bool) {
	i := s.ConfirmedIndex()
	if i < 0 {
		return memoKey{}, false
	}
	return memoKey{length: s.Len(), confirmed: s.At(i).Time}, true
}

func (c *Classifier) classify(s *market.Series) MarketStructure {
	points := c.swings.Detect(s)
	if len(points) < 3 {
		return MarketStructure{Trend: TrendRanging}
	}

	ms := MarketStructure{Swings: make([]LabeledSwing, 0, len(points))}

	var (
		prevHigh, prevLow float64
		haveHigh, haveLow bool
	)
	for _, sp := range points {
		ls := LabeledSwing{SwingPoint: sp}
		switch sp.Type {
		case SwingHigh:
			if haveHigh {
				if sp.Price > prevHigh {
					ls.Label = LabelHH
				} else {
					ls.Label = LabelLH
				}
			}
			prevHigh = sp.Price
			haveHigh = true
		case SwingLow:
			if haveLow {
				if sp.Price > prevLow {
					ls.Label = LabelHL
				} else {
					ls.Label = LabelLL
				}
			}
			prevLow = sp.Price
			haveLow = true
		}
		ms.Swings = append(ms.Swings, ls)

		switch ls.Label {
		case LabelHH:
			ms.LastHH = ref(ls)
		case LabelHL:
			ms.LastHL = ref(ls)
		case LabelLH:
			ms.LastLH = ref(ls)
		case LabelLL:
			ms.LastLL = ref(ls)
		}
	}

	ms.Trend = deriveTrend(ms.Swings)
	return ms
}

// deriveTrend inspects the last trendWindow classified labels: bullish iff
// HH and HL are both present with no LH or LL, bearish symmetric, otherwise
// ranging. Fewer than trendWindow classified swings is always ranging.
func deriveTrend(swings []LabeledSwing) Trend {
	var labels []SwingLabel
	for i := len(swings) - 1; i >= 0 && len(labels) < trendWindow; i-- {
		if swings[i].Label != LabelNone {
			labels = append(labels, swings[i].Label)
		}
	}
	if len(labels) < trendWindow {
		return TrendRanging
	}

	var hh, hl, lh, ll bool
	for _, l := range labels {
		switch l {
		case LabelHH:
			hh = true
		case LabelHL:
			hl = true
		case LabelLH:
			lh = true
		case LabelLL:
			ll = true
		}
	}
	switch {
	case hh && hl && !lh && !ll:
		return TrendBullish
	case lh && ll && !hh && !hl:
		return TrendBearish
	default:
		return TrendRanging
	}
}

func ref(ls LabeledSwing) *LabeledSwing {
	return &ls
}
