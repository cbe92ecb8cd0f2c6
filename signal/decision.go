package signal

import (
	"github.com/quantfold/structure/detect"
	"github.com/quantfold/structure/market"
)

// Details is the structured diagnostic record accompanying a decision: every
// intermediate stage result, typed, with nil marking "stage produced
// nothing" rather than a missing map key.
type Details struct {
	Structure detect.MarketStructure
	Break     *detect.BreakEvent
	Sweep     *detect.LiquiditySweep
	Block     *detect.OrderBlock
	Grade     *detect.Grade
	Prefilter *detect.PrefilterResult
	Bias      *detect.BiasVerdict
}

// EntryDecision is the gated outcome of an entry evaluation.
type EntryDecision struct {
	Signal     bool
	Direction  market.TradeDirection
	Reason     string
	Confidence float64 // within [0,1]
	Weight     float64 // position-weight multiplier, pure function of grade
	Stop       float64
	HasStop    bool
	Details    Details
}

// ExitDecision reports whether an open position should be closed.
type ExitDecision struct {
	Exit    bool
	Reason  string
	Break   *detect.BreakEvent
	Details Details
}
