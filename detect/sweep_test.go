package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/structure/market"
)

// sweepSeries builds n flat candles and replaces the confirmed one.
func sweepSeries(n int, confirmed market.Candle) *market.Series {
	cs := make([]market.Candle, n)
	for i := range cs {
		cs[i] = candle(i, 100.5, 101, 100.2, 100.5)
	}
	confirmed.Time = barTime(n - 2)
	cs[n-2] = confirmed
	return market.NewSeries(cs)
}

func TestSweepBullish(t *testing.T) {
	d := NewSweepDetector(SweepConfig{})
	swings := []SwingPoint{{Index: 5, Price: 100, Type: SwingLow}}

	// wick 0.2% under the level, close back above
	s := sweepSeries(10, market.Candle{Open: 100.4, High: 100.8, Low: 99.8, Close: 100.5})
	sw := d.Detect(s, swings)
	require.NotNil(t, sw)
	assert.Equal(t, market.Bullish, sw.Direction)
	assert.Equal(t, 100.0, sw.SweptLevel)
	assert.Equal(t, 99.8, sw.SweepLow)
	assert.Equal(t, s.ConfirmedIndex(), sw.Index)
}

func TestSweepBelowThreshold(t *testing.T) {
	d := NewSweepDetector(SweepConfig{})
	swings := []SwingPoint{{Index: 5, Price: 100, Type: SwingLow}}

	// only 0.05% penetration, under the 0.1% default
	s := sweepSeries(10, market.Candle{Open: 100.4, High: 100.8, Low: 99.95, Close: 100.5})
	assert.Nil(t, d.Detect(s, swings))
}

func TestSweepNeedsCloseBack(t *testing.T) {
	d := NewSweepDetector(SweepConfig{})
	swings := []SwingPoint{{Index: 5, Price: 100, Type: SwingLow}}

	// closes below the level: a breakdown, not a sweep
	s := sweepSeries(10, market.Candle{Open: 100.4, High: 100.8, Low: 99.5, Close: 99.9})
	assert.Nil(t, d.Detect(s, swings))
}

func TestSweepBearish(t *testing.T) {
	d := NewSweepDetector(SweepConfig{})
	swings := []SwingPoint{{Index: 5, Price: 110, Type: SwingHigh}}

	s := sweepSeries(10, market.Candle{Open: 109.5, High: 110.3, Low: 109, Close: 109.5})
	sw := d.Detect(s, swings)
	require.NotNil(t, sw)
	assert.Equal(t, market.Bearish, sw.Direction)
	assert.Equal(t, 110.0, sw.SweptLevel)
	assert.Equal(t, 110.3, sw.SweepHigh)
}

func TestSweepBullishWinsTie(t *testing.T) {
	d := NewSweepDetector(SweepConfig{})
	swings := []SwingPoint{
		{Index: 4, Price: 100, Type: SwingLow},
		{Index: 6, Price: 101, Type: SwingHigh},
	}

	// one candle sweeps both levels
	s := sweepSeries(10, market.Candle{Open: 100.4, High: 101.3, Low: 99.8, Close: 100.5})
	sw := d.Detect(s, swings)
	require.NotNil(t, sw)
	assert.Equal(t, market.Bullish, sw.Direction)
}

func TestSweepLookbackBound(t *testing.T) {
	d := NewSweepDetector(SweepConfig{Lookback: 5})
	s := sweepSeries(20, market.Candle{Open: 100.4, High: 100.8, Low: 99.8, Close: 100.5})

	near := []SwingPoint{{Index: s.ConfirmedIndex() - 3, Price: 100, Type: SwingLow}}
	require.NotNil(t, d.Detect(s, near))

	far := []SwingPoint{{Index: s.ConfirmedIndex() - 6, Price: 100, Type: SwingLow}}
	assert.Nil(t, d.Detect(s, far))
}

func TestSweepNeedsConfirmedCandle(t *testing.T) {
	d := NewSweepDetector(SweepConfig{})
	s := market.NewSeries([]market.Candle{candle(0, 100, 101, 99, 100)})
	assert.Nil(t, d.Detect(s, []SwingPoint{{Index: 0, Price: 100, Type: SwingLow}}))
}
