package detect

import (
	"time"

	"github.com/quantfold/structure/market"
)

var testStart = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func barTime(i int) time.Time {
	return testStart.Add(time.Duration(i) * time.Minute)
}

func candle(i int, o, h, l, c float64) market.Candle {
	return market.Candle{Time: barTime(i), Open: o, High: h, Low: l, Close: c}
}

// spike marks a single candle that pokes out of an otherwise flat series.
type spike struct {
	idx   int
	price float64
	kind  SwingType
}

// spikedSeries builds a flat series with isolated extrema at the given
// indexes. The flat filler candles tie with each other, so with any lookback
// only the spikes can register as swings.
func spikedSeries(n int, spikes ...spike) *market.Series {
	cs := make([]market.Candle, n)
	for i := range cs {
		cs[i] = candle(i, 49.5, 50, 49, 49.5)
	}
	for _, sp := range spikes {
		if sp.kind == SwingHigh {
			cs[sp.idx] = candle(sp.idx, 49.5, sp.price, 49.3, 49.6)
		} else {
			cs[sp.idx] = candle(sp.idx, 49.5, 49.8, sp.price, 49.4)
		}
	}
	return market.NewSeries(cs)
}

// bearishSpikes is a lower-highs/lower-lows sequence: LH, LL, LH, LL after
// the two unclassified leaders.
func bearishSpikes() []spike {
	return []spike{
		{2, 60, SwingHigh},
		{5, 45, SwingLow},
		{8, 58, SwingHigh},
		{11, 44, SwingLow},
		{14, 56, SwingHigh},
		{17, 43, SwingLow},
	}
}

// bullishSpikes mirrors bearishSpikes with rising extrema.
func bullishSpikes() []spike {
	return []spike{
		{2, 52, SwingHigh},
		{5, 45, SwingLow},
		{8, 54, SwingHigh},
		{11, 46, SwingLow},
		{14, 56, SwingHigh},
		{17, 47, SwingLow},
	}
}
