// Package signal composes the detectors into a gated entry/exit decision
// pipeline. Each evaluation is a pure function of the input snapshot; the
// only mutable state is the cumulative counters, which are atomic.
package signal

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quantfold/structure/detect"
	"github.com/quantfold/structure/market"
)

// minEntryCandles is the minimum history before entries are considered.
const minEntryCandles = 50

// Confidence assembly constants.
const (
	confSweepRequired = 0.85
	confBaseNoSweep   = 0.60
	confBaseWithSweep = 0.70
	confGradeABonus   = 0.15
	confGradeACap     = 0.95
	confBlockBonus    = 0.05
	confCap           = 1.0
)

var errNilSeries = errors.New("signal: nil candle series")

// Orchestrator runs the full detection pipeline.
type Orchestrator struct {
	cfg      Config
	minGrade detect.GradeLetter

	classifier *detect.Classifier
	breaks     *detect.BreakDetector
	sweeps     *detect.SweepDetector
	blocks     *detect.OrderBlockFinder
	prefilter  *detect.Prefilter
	grader     *detect.GradeEngine
	bias       *detect.MTFBiasFilter
	stops      *detect.StopCalculator

	log     zerolog.Logger
	metrics Metrics
	stats   counters
}

// New validates the configuration and wires the detectors.
func New(cfg Config, log zerolog.Logger, m Metrics) (*Orchestrator, error) {
	minGrade, err := cfg.minGrade()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.onErrorPolicy()
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = NopMetrics{}
	}
	swing := cfg.swingConfig()
	return &Orchestrator{
		cfg:        cfg,
		minGrade:   minGrade,
		classifier: detect.NewClassifier(swing),
		breaks:     detect.NewBreakDetector(),
		sweeps: detect.NewSweepDetector(detect.SweepConfig{
			Lookback:     cfg.SweepLookback,
			ThresholdPct: cfg.SweepThresholdPct,
		}),
		blocks: detect.NewOrderBlockFinder(cfg.OBLookback),
		prefilter: detect.NewPrefilter(detect.PrefilterConfig{
			MinConditions:  cfg.PrefilterMinConditions,
			RequireHTF:     cfg.PrefilterRequireHTF,
			RequireSweep:   cfg.PrefilterRequireSweep,
			RequireReclaim: cfg.PrefilterRequireReclaim,
			RequireVolume:  cfg.PrefilterRequireVolume,
		}, swing, detect.ReclaimConfig{
			Lookback:     cfg.ReclaimLookback,
			TolerancePct: cfg.ReclaimTolerancePct,
		}),
		grader:  detect.NewGradeEngine(policy),
		bias:    detect.NewMTFBiasFilter(swing, policy),
		stops:   detect.NewStopCalculator(cfg.ATRStopBuffer),
		log:     log,
		metrics: m,
	}, nil
}

// Stats returns a snapshot of the cumulative counters.
func (o *Orchestrator) Stats() Stats { return o.stats.snapshot() }

// EvaluateEntry runs the gated entry pipeline over the snapshot. The htf
// series is optional; passing nil disables the HTF-dependent stages'
// positive contribution but never errors.
func (o *Orchestrator) EvaluateEntry(s, htf *market.Series) (EntryDecision, error) {
	if s == nil {
		return EntryDecision{}, errNilSeries
	}
	o.stats.evaluations.Add(1)
	o.metrics.Evaluation("entry")

	if s.Len() < minEntryCandles {
		return o.reject("data", Details{},
			fmt.Sprintf("insufficient data: %d candles, need %d", s.Len(), minEntryCandles)), nil
	}

	ms := o.classifier.Classify(s)
	det := Details{Structure: ms}

	choch := o.breaks.DetectCHoCH(s, ms)
	if choch == nil {
		if bos := o.breaks.DetectBOS(s, ms); bos != nil {
			det.Break = bos
			return o.reject("structure", det,
				fmt.Sprintf("%s BOS: trend continuation, no entry", bos.Direction)), nil
		}
		return o.reject("structure", det, "no structural change"), nil
	}
	det.Break = choch

	sweep := o.sweeps.Detect(s, ms.SwingPoints())
	det.Sweep = sweep

	if o.cfg.RequireLiquiditySweep && (sweep == nil || sweep.Direction != choch.Direction) {
		return o.reject("sweep", det, "liquidity sweep required but not present"), nil
	}

	if o.cfg.PrefilterEnabled {
		res := o.prefilter.Evaluate(s, htf, choch, sweep)
		det.Prefilter = &res
		if !res.Pass {
			return o.reject("prefilter", det, res.Reason), nil
		}
	}

	det.Block = o.blocks.Find(s, choch)

	grade := o.grader.Evaluate(detect.GradeInputs{
		Series:     s,
		Structure:  ms,
		Break:      choch,
		Sweep:      sweep,
		OrderBlock: det.Block,
	})
	det.Grade = &grade
	if len(grade.Skipped) > 0 {
		o.log.Warn().Strs("factors", grade.Skipped).Msg("grade factors skipped")
	}
	if !o.gradeAcceptable(grade.Letter) {
		return o.reject("grade", det,
			fmt.Sprintf("grade %s below minimum %s", grade.Letter, o.minGrade)), nil
	}

	ci := s.ConfirmedIndex()
	if o.cfg.RequireSqueezeOn && !s.SqueezeAt(ci) {
		return o.reject("squeeze", det, "squeeze-on required but not active"), nil
	}
	if o.cfg.RequireVWAPAbove && !(s.HasVWAP() && s.At(ci).Close > s.VWAPAt(ci)) {
		return o.reject("vwap", det, "close above VWAP required"), nil
	}

	dir := market.TradeFor(choch.Direction)
	if o.cfg.MTFBiasEnabled {
		verdict := o.bias.Check(htf, dir)
		det.Bias = &verdict
		if !verdict.Allow {
			return o.reject("mtf", det, "HTF bias: "+verdict.Reason), nil
		}
	}

	if o.cfg.LongOnly && dir == market.Short {
		return o.reject("direction", det, "short suppressed: long-only mode"), nil
	}

	decision := EntryDecision{
		Signal:     true,
		Direction:  dir,
		Reason:     fmt.Sprintf("%s CHoCH graded %s", choch.Direction, grade.Letter),
		Confidence: o.confidence(choch, sweep, det.Block, grade),
		Weight:     o.weight(grade.Letter),
		Details:    det,
	}
	if stop, ok := o.stops.Calculate(s, ms, choch.Direction); ok {
		decision.Stop = stop
		decision.HasStop = true
	}

	o.stats.entries.Add(1)
	o.metrics.Signal("entry", dir.String())
	o.log.Info().
		Str("direction", dir.String()).
		Str("grade", grade.Letter.String()).
		Float64("confidence", decision.Confidence).
		Float64("weight", decision.Weight).
		Msg("entry signal")
	return decision, nil
}

// EvaluateExit checks an open position against opposite-direction structure:
// an opposite CHoCH exits, an opposite BOS exits, anything else holds.
func (o *Orchestrator) EvaluateExit(s *market.Series, position market.TradeDirection) (ExitDecision, error) {
	if s == nil {
		return ExitDecision{}, errNilSeries
	}
	o.stats.evaluations.Add(1)
	o.metrics.Evaluation("exit")

	if s.Len() < 2 {
		return ExitDecision{Reason: "insufficient data"}, nil
	}

	against := market.Bearish
	if position == market.Short {
		against = market.Bullish
	}

	ms := o.classifier.Classify(s)
	det := Details{Structure: ms}

	if choch := o.breaks.DetectCHoCH(s, ms); choch != nil && choch.Direction == against {
		det.Break = choch
		o.stats.exits.Add(1)
		o.metrics.Signal("exit", position.String())
		return ExitDecision{
			Exit:    true,
			Reason:  fmt.Sprintf("%s CHoCH against %s position", against, position),
			Break:   choch,
			Details: det,
		}, nil
	}
	if bos := o.breaks.DetectBOS(s, ms); bos != nil && bos.Direction == against {
		det.Break = bos
		o.stats.exits.Add(1)
		o.metrics.Signal("exit", position.String())
		return ExitDecision{
			Exit:    true,
			Reason:  fmt.Sprintf("%s BOS against %s position", against, position),
			Break:   bos,
			Details: det,
		}, nil
	}
	return ExitDecision{Reason: "structure intact", Details: det}, nil
}

// gradeAcceptable applies the minimum-grade gate. C never passes.
func (o *Orchestrator) gradeAcceptable(g detect.GradeLetter) bool {
	if g == detect.GradeC {
		return false
	}
	if o.minGrade == detect.GradeA {
		return g == detect.GradeA
	}
	return true
}

// confidence assembles the score per the decision policy: a fixed high
// confidence in sweep-required mode with a matching sweep, otherwise a base
// lifted by grade and order-block bonuses under their caps.
func (o *Orchestrator) confidence(choch *detect.BreakEvent, sweep *detect.LiquiditySweep, block *detect.OrderBlock, grade detect.Grade) float64 {
	if o.cfg.RequireLiquiditySweep && sweep != nil && sweep.Direction == choch.Direction {
		return confSweepRequired
	}
	conf := confBaseNoSweep
	if sweep != nil {
		conf = confBaseWithSweep
	}
	if grade.Letter == detect.GradeA {
		conf += confGradeABonus
		if conf > confGradeACap {
			conf = confGradeACap
		}
	}
	if block != nil {
		conf += confBlockBonus
		if conf > confCap {
			conf = confCap
		}
	}
	return conf
}

func (o *Orchestrator) weight(g detect.GradeLetter) float64 {
	if g == detect.GradeA {
		return 1.0
	}
	return o.cfg.GradeBWeight
}

func (o *Orchestrator) reject(stage string, det Details, reason string) EntryDecision {
	o.stats.rejects.Add(1)
	o.metrics.Reject(stage)
	o.log.Debug().Str("stage", stage).Str("reason", reason).Msg("entry rejected")
	return EntryDecision{Reason: reason, Details: det}
}
