package market

import "time"

// Candle represents one OHLCV bar. Optional per-bar indicator values (ATR,
// VWAP, squeeze) are carried on the Series so that column presence is resolved
// once at the boundary instead of per component.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool { return c.Close > c.Open }

// Bearish reports whether the candle closed below its open.
func (c Candle) Bearish() bool { return c.Close < c.Open }

// Range returns high minus low.
func (c Candle) Range() float64 { return c.High - c.Low }

// Mid returns the midpoint of the candle's range.
func (c Candle) Mid() float64 { return (c.High + c.Low) / 2 }
