package detect

import (
	"fmt"

	"github.com/quantfold/structure/market"
)

// DefaultPrefilterMinConditions is how many conditions must hold by default.
const DefaultPrefilterMinConditions = 2

// volumeWindow is the trailing average window for the volume condition.
const volumeWindow = 20

// PrefilterConfig parameterizes the entry prefilter. The Require* switches
// make individual conditions mandatory on top of the count threshold.
type PrefilterConfig struct {
	MinConditions  int
	RequireHTF     bool
	RequireSweep   bool
	RequireReclaim bool
	RequireVolume  bool
}

// PrefilterResult itemizes each condition so callers never need a dynamic
// key-value container to explain a rejection.
type PrefilterResult struct {
	Pass          bool
	ConditionsMet int
	MinConditions int

	HTFAligned   bool
	SweepPresent bool
	Reclaimed    bool
	VolumeOK     bool

	Reason string
}

// Prefilter gates entries on confluence: higher-timeframe alignment, a
// liquidity sweep, a reclaim of the broken level, and above-average volume.
type Prefilter struct {
	cfg        PrefilterConfig
	classifier *Classifier
	reclaim    *ReclaimDetector
}

func NewPrefilter(cfg PrefilterConfig, swingCfg SwingConfig, reclaimCfg ReclaimConfig) *Prefilter {
	if cfg.MinConditions <= 0 {
		cfg.MinConditions = DefaultPrefilterMinConditions
	}
	return &Prefilter{
		cfg:        cfg,
		classifier: NewClassifier(swingCfg),
		reclaim:    NewReclaimDetector(reclaimCfg),
	}
}

// Evaluate counts the four conditions. The HTF condition is strict: only a
// classified trend matching the break direction counts, never ranging or
// missing data. The volume condition is silently false when the series
// carries no volume.
func (p *Prefilter) Evaluate(s, htf *market.Series, choch *BreakEvent, sweep *LiquiditySweep) PrefilterResult {
	res := PrefilterResult{MinConditions: p.cfg.MinConditions}
	if choch == nil {
		res.Reason = "no change of character to filter"
		return res
	}

	if htf != nil {
		trend := p.classifier.Classify(htf).Trend
		res.HTFAligned = (choch.Direction == market.Bullish && trend == TrendBullish) ||
			(choch.Direction == market.Bearish && trend == TrendBearish)
	}
	res.SweepPresent = sweep != nil
	res.Reclaimed = p.reclaim.Detect(s, choch)
	res.VolumeOK = volumeAboveAverage(s)

	for _, ok := range []bool{res.HTFAligned, res.SweepPresent, res.Reclaimed, res.VolumeOK} {
		if ok {
			res.ConditionsMet++
		}
	}

	switch {
	case p.cfg.RequireHTF && !res.HTFAligned:
		res.Reason = "required HTF alignment missing"
	case p.cfg.RequireSweep && !res.SweepPresent:
		res.Reason = "required liquidity sweep missing"
	case p.cfg.RequireReclaim && !res.Reclaimed:
		res.Reason = "required reclaim missing"
	case p.cfg.RequireVolume && !res.VolumeOK:
		res.Reason = "required volume confirmation missing"
	case res.ConditionsMet < res.MinConditions:
		res.Reason = fmt.Sprintf("prefilter: %d/%d conditions met", res.ConditionsMet, res.MinConditions)
	default:
		res.Pass = true
		res.Reason = fmt.Sprintf("prefilter: %d/%d conditions met", res.ConditionsMet, res.MinConditions)
	}
	return res
}

// volumeAboveAverage compares the confirmed candle's volume with the
// trailing average of the bars before it, capped at volumeWindow.
func volumeAboveAverage(s *market.Series) bool {
	if !s.HasVolume() {
		return false
	}
	i := s.ConfirmedIndex()
	if i < 1 {
		return false
	}
	start := i - volumeWindow
	if start < 0 {
		start = 0
	}
	var sum float64
	for k := start; k < i; k++ {
		sum += s.At(k).Volume
	}
	avg := sum / float64(i-start)
	return s.At(i).Volume >= avg
}
