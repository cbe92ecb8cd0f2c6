package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/structure/market"
)

func testCandle(i int, h, l, c, vol float64) market.Candle {
	return market.Candle{
		Time:   time.Date(2024, 3, 1, 9, i, 0, 0, time.UTC),
		Open:   c,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: vol,
	}
}

func TestTrueRange(t *testing.T) {
	current := market.Candle{High: 110, Low: 100, Close: 105}
	previous := market.Candle{Close: 104}
	assert.InDelta(t, 10, trueRange(current, previous), 1e-9)

	// gap down: the close-to-low leg dominates
	gapped := market.Candle{High: 100, Low: 98, Close: 99}
	previous = market.Candle{Close: 104}
	assert.InDelta(t, 6, trueRange(gapped, previous), 1e-9)
}

func TestATRWarmupAndSmoothing(t *testing.T) {
	atr := NewATR(3)
	assert.Equal(t, 4, atr.Warmup())

	candles := []market.Candle{
		testCandle(0, 10, 9, 9.5, 0),
		testCandle(1, 10.5, 9.5, 10, 0), // TR 1.0
		testCandle(2, 11, 10, 10.5, 0),  // TR 1.0
		testCandle(3, 12, 10.5, 11.5, 0), // TR 1.5
	}

	for _, c := range candles[:3] {
		atr.Update(c)
		assert.False(t, atr.Ready())
		assert.Equal(t, 0.0, atr.Value())
	}

	atr.Update(candles[3])
	assert.True(t, atr.Ready())
	assert.InDelta(t, 7.0/6, atr.Value(), 1e-9)

	// Wilder's smoothing from here on
	atr.Update(testCandle(4, 12, 11, 11.5, 0)) // TR 1.0
	assert.InDelta(t, 10.0/9, atr.Value(), 1e-9)

	atr.Reset()
	assert.False(t, atr.Ready())
}

func TestVWAP(t *testing.T) {
	v := NewVWAP()
	assert.False(t, v.Ready())

	v.Update(testCandle(0, 10, 10, 10, 1))
	v.Update(testCandle(1, 20, 20, 20, 3))

	assert.True(t, v.Ready())
	assert.InDelta(t, 17.5, v.Value(), 1e-9) // (10*1 + 20*3) / 4
}

func TestVWAPWithoutVolume(t *testing.T) {
	v := NewVWAP()
	v.Update(testCandle(0, 10, 10, 10, 0))
	v.Update(testCandle(1, 20, 20, 20, 0))

	// unit weights: a plain typical-price average
	assert.InDelta(t, 15, v.Value(), 1e-9)
}

func TestEnrichFillsMissingColumns(t *testing.T) {
	cs := make([]market.Candle, 10)
	for i := range cs {
		cs[i] = testCandle(i, 101, 99, 100, 1000)
	}
	s := market.NewSeries(cs)
	require.False(t, s.HasATR())
	require.False(t, s.HasVWAP())

	require.NoError(t, Enrich(s, 3))

	assert.True(t, s.HasATR())
	assert.True(t, s.HasVWAP())
	assert.Equal(t, 0.0, s.ATRAt(2)) // still warming up
	assert.InDelta(t, 2.0, s.ATRAt(3), 1e-9)
	assert.InDelta(t, 100.0, s.VWAPAt(9), 1e-9)
}

func TestEnrichPreservesExistingColumns(t *testing.T) {
	cs := make([]market.Candle, 5)
	vwap := make([]float64, 5)
	for i := range cs {
		cs[i] = testCandle(i, 101, 99, 100, 1000)
		vwap[i] = 42
	}
	s := market.NewSeries(cs)
	require.NoError(t, s.SetColumn("vwap", vwap))

	require.NoError(t, Enrich(s, 3))
	assert.Equal(t, 42.0, s.VWAPAt(4))
	assert.True(t, s.HasATR())
}

func TestEnrichNilSeries(t *testing.T) {
	assert.NoError(t, Enrich(nil, 14))
}
