// Package indicators provides the streaming indicators the detection engine
// consumes, and the enrichment step that fills missing indicator columns on
// a loaded series.
package indicators

import "github.com/quantfold/structure/market"

// Indicator computes a single streaming value from candles.
// It is deterministic: replaying the same candles reproduces the same values.
type Indicator interface {
	// Name returns a stable identifier like "ATR(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	// (Some indicators may become ready earlier; that's fine.)
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* candle and updates internal state.
	Update(c market.Candle)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. If !Ready(), it returns 0 —
	// callers should always check Ready().
	Value() float64
}
