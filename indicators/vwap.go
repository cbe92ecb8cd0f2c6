package indicators

import "github.com/quantfold/structure/market"

// VWAP is a streaming session volume-weighted average price. Without volume
// data it degrades to a cumulative typical-price average.
type VWAP struct {
	cumPV  float64
	cumVol float64
	count  int
}

func NewVWAP() *VWAP {
	return &VWAP{}
}

func (v *VWAP) Name() string { return "VWAP" }

func (v *VWAP) Warmup() int { return 1 }

func (v *VWAP) Reset() {
	v.cumPV = 0
	v.cumVol = 0
	v.count = 0
}

func (v *VWAP) Update(c market.Candle) {
	typical := (c.High + c.Low + c.Close) / 3
	vol := c.Volume
	if vol <= 0 {
		vol = 1
	}
	v.cumPV += typical * vol
	v.cumVol += vol
	v.count++
}

func (v *VWAP) Ready() bool { return v.count > 0 }

func (v *VWAP) Value() float64 {
	if v.cumVol == 0 {
		return 0
	}
	return v.cumPV / v.cumVol
}
