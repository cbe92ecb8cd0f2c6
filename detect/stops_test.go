package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/structure/market"
)

func stopSeries(t *testing.T, close float64, atr float64) *market.Series {
	t.Helper()
	s := market.NewSeries([]market.Candle{
		candle(0, close, close+1, close-1, close),
		candle(1, close, close+1, close-1, close),
		candle(2, close, close+0.5, close-0.5, close),
	})
	if atr > 0 {
		require.NoError(t, s.SetColumn("atr", []float64{atr, atr, atr}))
	}
	return s
}

func TestStopBullishFromLastHL(t *testing.T) {
	c := NewStopCalculator(0.5)
	ms := MarketStructure{
		LastHL: labeledAt(46, SwingLow, LabelHL),
	}

	stop, ok := c.Calculate(stopSeries(t, 50, 2.0), ms, market.Bullish)
	require.True(t, ok)
	assert.InDelta(t, 45.0, stop, 1e-9) // 46 - 2.0*0.5
}

func TestStopBullishFallsBackToSwingLow(t *testing.T) {
	c := NewStopCalculator(0.5)
	ms := MarketStructure{
		Swings: []LabeledSwing{
			{SwingPoint: SwingPoint{Price: 48, Type: SwingHigh}},
			{SwingPoint: SwingPoint{Price: 44, Type: SwingLow}, Label: LabelLL},
		},
	}

	stop, ok := c.Calculate(stopSeries(t, 50, 2.0), ms, market.Bullish)
	require.True(t, ok)
	assert.InDelta(t, 43.0, stop, 1e-9)
}

func TestStopBearishFromLastHH(t *testing.T) {
	c := NewStopCalculator(0.5)
	ms := MarketStructure{
		LastHH: labeledAt(56, SwingHigh, LabelHH),
	}

	stop, ok := c.Calculate(stopSeries(t, 50, 2.0), ms, market.Bearish)
	require.True(t, ok)
	assert.InDelta(t, 57.0, stop, 1e-9)
}

func TestStopATRFallback(t *testing.T) {
	c := NewStopCalculator(0.5)
	ms := MarketStructure{LastHL: labeledAt(96, SwingLow, LabelHL)}

	// no ATR column: 2% of the 100 close stands in
	stop, ok := c.Calculate(stopSeries(t, 100, 0), ms, market.Bullish)
	require.True(t, ok)
	assert.InDelta(t, 95.0, stop, 1e-9) // 96 - 2.0*0.5
}

func TestStopNoReference(t *testing.T) {
	c := NewStopCalculator(0.5)

	_, ok := c.Calculate(stopSeries(t, 50, 2.0), MarketStructure{}, market.Bullish)
	assert.False(t, ok)

	onlyHighs := MarketStructure{
		Swings: []LabeledSwing{{SwingPoint: SwingPoint{Price: 48, Type: SwingHigh}}},
	}
	_, ok = c.Calculate(stopSeries(t, 50, 2.0), onlyHighs, market.Bullish)
	assert.False(t, ok)
}

func TestStopNeedsConfirmedCandle(t *testing.T) {
	c := NewStopCalculator(0.5)
	s := market.NewSeries([]market.Candle{candle(0, 50, 51, 49, 50)})

	_, ok := c.Calculate(s, MarketStructure{LastHL: labeledAt(46, SwingLow, LabelHL)}, market.Bullish)
	assert.False(t, ok)
}
