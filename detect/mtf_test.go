package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantfold/structure/market"
)

func TestMTFBiasMissingData(t *testing.T) {
	cfg := SwingConfig{Lookback: 2}

	permissive := NewMTFBiasFilter(cfg, Permissive)
	v := permissive.Check(nil, market.Long)
	assert.True(t, v.Allow)
	assert.Contains(t, v.Reason, "permissive")

	strict := NewMTFBiasFilter(cfg, Strict)
	v = strict.Check(nil, market.Long)
	assert.False(t, v.Allow)

	// too little history degrades the same way
	short := spikedSeries(10)
	assert.True(t, permissive.Check(short, market.Long).Allow)
	assert.False(t, strict.Check(short, market.Long).Allow)
}

func TestMTFBiasTooFewSwings(t *testing.T) {
	cfg := SwingConfig{Lookback: 2}
	flat := spikedSeries(25) // no extrema at all

	assert.True(t, NewMTFBiasFilter(cfg, Permissive).Check(flat, market.Long).Allow)
	assert.False(t, NewMTFBiasFilter(cfg, Strict).Check(flat, market.Long).Allow)
}

func TestMTFBiasDowntrendVetoesLong(t *testing.T) {
	f := NewMTFBiasFilter(SwingConfig{Lookback: 2}, Permissive)
	htf := spikedSeries(25, bearishSpikes()...)

	long := f.Check(htf, market.Long)
	assert.False(t, long.Allow)
	assert.Contains(t, long.Reason, "trending down")

	short := f.Check(htf, market.Short)
	assert.True(t, short.Allow)
}

func TestMTFBiasUptrendVetoesShort(t *testing.T) {
	f := NewMTFBiasFilter(SwingConfig{Lookback: 2}, Permissive)
	htf := spikedSeries(25, bullishSpikes()...)

	short := f.Check(htf, market.Short)
	assert.False(t, short.Allow)
	assert.Contains(t, short.Reason, "trending up")

	long := f.Check(htf, market.Long)
	assert.True(t, long.Allow)
}

func TestMTFBiasStrictVetoOverridesPolicy(t *testing.T) {
	// a real veto fires under both policies
	f := NewMTFBiasFilter(SwingConfig{Lookback: 2}, Strict)
	htf := spikedSeries(25, bearishSpikes()...)
	assert.False(t, f.Check(htf, market.Long).Allow)
}

func TestHTFTrend(t *testing.T) {
	f := NewMTFBiasFilter(SwingConfig{Lookback: 2}, Permissive)

	assert.Equal(t, TrendRanging, f.HTFTrend(nil))
	assert.Equal(t, TrendRanging, f.HTFTrend(spikedSeries(10)))
	assert.Equal(t, TrendBearish, f.HTFTrend(spikedSeries(25, bearishSpikes()...)))
	assert.Equal(t, TrendBullish, f.HTFTrend(spikedSeries(25, bullishSpikes()...)))
}
