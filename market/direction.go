package market

// StructuralDirection is the direction of a structural event: swings, sweeps,
// breaks and order blocks are bullish or bearish, never long or short.
type StructuralDirection int

const (
	Bullish StructuralDirection = iota
	Bearish
)

func (d StructuralDirection) String() string {
	if d == Bearish {
		return "bearish"
	}
	return "bullish"
}

// Opposite returns the other structural direction.
func (d StructuralDirection) Opposite() StructuralDirection {
	if d == Bullish {
		return Bearish
	}
	return Bullish
}

// TradeDirection is the side of a trade decision.
type TradeDirection int

const (
	Long TradeDirection = iota
	Short
)

func (d TradeDirection) String() string {
	if d == Short {
		return "short"
	}
	return "long"
}

// TradeFor maps a structural direction to the trade side it implies:
// a bullish break argues for a long, a bearish break for a short.
func TradeFor(d StructuralDirection) TradeDirection {
	if d == Bearish {
		return Short
	}
	return Long
}
