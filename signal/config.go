package signal

import (
	"fmt"

	"github.com/quantfold/structure/detect"
)

// Config is the flat parameter set of the engine. Tags serve the yaml config
// layer: defaults are applied with creasty/defaults before unmarshalling and
// the whole struct is checked with go-playground/validator after.
type Config struct {
	SwingLookback   int     `yaml:"swing_lookback" default:"5" validate:"min=1"`
	MinSwingSizePct float64 `yaml:"min_swing_size_pct" validate:"gte=0"`

	SweepLookback     int     `yaml:"sweep_lookback" default:"20" validate:"min=1"`
	SweepThresholdPct float64 `yaml:"sweep_threshold_pct" default:"0.1" validate:"gte=0"`

	OBLookback int `yaml:"ob_lookback" default:"10" validate:"min=1"`

	ReclaimLookback     int     `yaml:"reclaim_lookback" default:"5" validate:"min=1"`
	ReclaimTolerancePct float64 `yaml:"reclaim_tolerance_pct" default:"0.3" validate:"gte=0"`

	RequireLiquiditySweep bool   `yaml:"require_liquidity_sweep"`
	LongOnly              bool   `yaml:"long_only"`
	MinChochGrade         string `yaml:"min_choch_grade" default:"B" validate:"oneof=A B C"`
	RequireSqueezeOn      bool   `yaml:"require_squeeze_on"`
	RequireVWAPAbove      bool   `yaml:"require_vwap_above"`
	GradeBWeight          float64 `yaml:"grade_b_weight" default:"0.5" validate:"gte=0,lte=1"`

	MTFBiasEnabled bool `yaml:"mtf_bias_enabled" default:"true"`

	PrefilterEnabled        bool `yaml:"prefilter_enabled" default:"true"`
	PrefilterMinConditions  int  `yaml:"prefilter_min_conditions" default:"2" validate:"min=0,max=4"`
	PrefilterRequireHTF     bool `yaml:"prefilter_require_htf"`
	PrefilterRequireSweep   bool `yaml:"prefilter_require_sweep"`
	PrefilterRequireReclaim bool `yaml:"prefilter_require_reclaim"`
	PrefilterRequireVolume  bool `yaml:"prefilter_require_volume"`

	ATRStopBuffer float64 `yaml:"atr_stop_buffer" default:"0.5" validate:"gte=0"`

	// OnError names the degradation policy of the MTF filter and the grade
	// engine: "permissive" preserves fail-open behavior, "strict" fails shut.
	OnError string `yaml:"on_error" default:"permissive" validate:"oneof=permissive strict"`
}

// minGrade resolves the configured minimum grade letter.
func (c Config) minGrade() (detect.GradeLetter, error) {
	g, ok := detect.ParseGradeLetter(c.MinChochGrade)
	if !ok {
		return detect.GradeC, fmt.Errorf("invalid min_choch_grade %q", c.MinChochGrade)
	}
	return g, nil
}

// onErrorPolicy resolves the configured degradation policy.
func (c Config) onErrorPolicy() (detect.OnError, error) {
	switch c.OnError {
	case "", "permissive":
		return detect.Permissive, nil
	case "strict":
		return detect.Strict, nil
	default:
		return detect.Permissive, fmt.Errorf("invalid on_error policy %q", c.OnError)
	}
}

// swingConfig bundles the swing parameters for the detectors that classify.
func (c Config) swingConfig() detect.SwingConfig {
	return detect.SwingConfig{Lookback: c.SwingLookback, MinSwingSizePct: c.MinSwingSizePct}
}
