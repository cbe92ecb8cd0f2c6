package signal

import (
	"time"

	"github.com/creasty/defaults"

	"github.com/quantfold/structure/market"
)

var fixtureStart = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func fixtureTime(i int) time.Time {
	return fixtureStart.Add(time.Duration(i) * time.Minute)
}

func testConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

// pathValues interpolates a piecewise-linear price path through the given
// (index, price) pivots.
func pathValues(pivots [][2]float64) []float64 {
	last := int(pivots[len(pivots)-1][0])
	vals := make([]float64, last+1)
	for k := 0; k+1 < len(pivots); k++ {
		i0, v0 := int(pivots[k][0]), pivots[k][1]
		i1, v1 := int(pivots[k+1][0]), pivots[k+1][1]
		for i := i0; i <= i1; i++ {
			vals[i] = v0 + (v1-v0)*float64(i-i0)/float64(i1-i0)
		}
	}
	return vals
}

// candlesFromPath renders a path as candles: each closes on its path value
// and opens on the previous one, with small directional wicks so that only
// the path's pivots can register as swings.
func candlesFromPath(vals []float64, volume float64) []market.Candle {
	cs := make([]market.Candle, len(vals))
	for i, v := range vals {
		open := v
		if i > 0 {
			open = vals[i-1]
		}
		c := market.Candle{Time: fixtureTime(i), Open: open, Close: v, Volume: volume}
		switch {
		case v < open:
			c.Low, c.High = v-0.2, open+0.05
		case v > open:
			c.High, c.Low = v+0.2, open-0.05
		default:
			c.High, c.Low = v+0.05, v-0.05
		}
		cs[i] = c
	}
	return cs
}

// downtrendReversal is a lower-high/lower-low staircase whose confirmed
// candle sweeps the last swing low at 96.8 and closes through the last
// lower high at 106.2, with a reclaiming candle behind it.
func downtrendReversal(volume float64) []market.Candle {
	vals := pathValues([][2]float64{
		{0, 115}, {6, 118}, {12, 108}, {18, 114}, {24, 104},
		{30, 110}, {36, 100}, {42, 106}, {48, 97}, {57, 105.3},
	})
	cs := candlesFromPath(vals, volume)
	cs[57].High = 107.5 // ties the forming candle's high so no new swing forms
	cs = append(cs,
		market.Candle{Time: fixtureTime(58), Open: 105.3, High: 107.5, Low: 96.5, Close: 107.0, Volume: volume * 2},
		market.Candle{Time: fixtureTime(59), Open: 107.0, High: 107.1, Low: 106.0, Close: 106.3, Volume: volume},
	)
	return cs
}

// reversalSeries is downtrendReversal with vwap and squeeze columns, the
// strongest-confluence input the pipeline sees in tests.
func reversalSeries(volume float64) *market.Series {
	cs := downtrendReversal(volume)
	s := market.NewSeries(cs)

	vwap := make([]float64, len(cs))
	squeeze := make([]bool, len(cs))
	for i := range cs {
		vwap[i] = 104
		squeeze[i] = true
	}
	if err := s.SetColumn("vwap", vwap); err != nil {
		panic(err)
	}
	if err := s.SetSqueeze(squeeze); err != nil {
		panic(err)
	}
	return s
}

// uptrendContinuation is a higher-high/higher-low staircase whose confirmed
// candle closes above the last swing high: a BOS, not a reversal.
func uptrendContinuation() []market.Candle {
	vals := pathValues([][2]float64{
		{0, 100}, {6, 106}, {12, 102}, {18, 110}, {24, 105},
		{30, 114}, {36, 108}, {42, 118}, {48, 112}, {57, 118.5},
	})
	cs := candlesFromPath(vals, 1000)
	cs[57].High = 119.2
	cs = append(cs,
		market.Candle{Time: fixtureTime(58), Open: 118.5, High: 119.2, Low: 118.3, Close: 119.0, Volume: 1000},
		market.Candle{Time: fixtureTime(59), Open: 119.0, High: 119.3, Low: 118.8, Close: 119.1, Volume: 1000},
	)
	return cs
}

// quietMarket is sixty identical candles: no swings, no structure.
func quietMarket() *market.Series {
	cs := make([]market.Candle, 60)
	for i := range cs {
		cs[i] = market.Candle{Time: fixtureTime(i), Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 1000}
	}
	return market.NewSeries(cs)
}

// mirrored reflects a candle set around the 220 price line, turning a
// bullish setup into its bearish twin.
func mirrored(cs []market.Candle) []market.Candle {
	out := make([]market.Candle, len(cs))
	for i, c := range cs {
		out[i] = market.Candle{
			Time:   c.Time,
			Open:   220 - c.Open,
			High:   220 - c.Low,
			Low:    220 - c.High,
			Close:  220 - c.Close,
			Volume: c.Volume,
		}
	}
	return out
}

// bearishHTF is a higher-timeframe downtrend with the default swing lookback.
func bearishHTF() *market.Series {
	vals := pathValues([][2]float64{
		{0, 130}, {6, 133}, {12, 123}, {18, 129}, {24, 119},
		{30, 125}, {36, 115}, {42, 121}, {48, 111}, {54, 113},
	})
	return market.NewSeries(candlesFromPath(vals, 0))
}
