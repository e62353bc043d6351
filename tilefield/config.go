package tilefield

import (
	"fmt"
	"time"
)

// Config holds the tuning of a field. Distances are world units, speeds are
// per frame, durations run on the field clock.
type Config struct {
	// Layout
	SpanX      float64       `yaml:"span_x" json:"span_x"`
	SpanY      float64       `yaml:"span_y" json:"span_y"`
	Depth      float64       `yaml:"depth" json:"depth"`
	AppearStep time.Duration `yaml:"appear_step" json:"appear_step"`

	// Device classification; widths at or below MobileWidth are touch devices.
	MobileWidth int `yaml:"mobile_width" json:"mobile_width"`

	// Parallax
	PointerIntensity     float64 `yaml:"pointer_intensity" json:"pointer_intensity"`
	OrientationIntensity float64 `yaml:"orientation_intensity" json:"orientation_intensity"`
	PointerLerp          float64 `yaml:"pointer_lerp" json:"pointer_lerp"`
	OrientationLerp      float64 `yaml:"orientation_lerp" json:"orientation_lerp"`

	// Orientation sensor filtering
	TiltRange     float64 `yaml:"tilt_range" json:"tilt_range"`
	TiltGain      float64 `yaml:"tilt_gain" json:"tilt_gain"`
	TiltRestBeta  float64 `yaml:"tilt_rest_beta" json:"tilt_rest_beta"`
	TiltSmoothing float64 `yaml:"tilt_smoothing" json:"tilt_smoothing"`

	// Falling and recycling
	FallSpeed    float64 `yaml:"fall_speed" json:"fall_speed"`
	FallJitter   float64 `yaml:"fall_jitter" json:"fall_jitter"`
	LowerBound   float64 `yaml:"lower_bound" json:"lower_bound"`
	UpperBound   float64 `yaml:"upper_bound" json:"upper_bound"`
	RecycleSpanX float64 `yaml:"recycle_span_x" json:"recycle_span_x"`
	RecycleSpanZ float64 `yaml:"recycle_span_z" json:"recycle_span_z"`

	// Highlight pulses
	HighlightChance    float64       `yaml:"highlight_chance" json:"highlight_chance"`
	HighlightDuration  time.Duration `yaml:"highlight_duration" json:"highlight_duration"`
	HighlightPeriodMin time.Duration `yaml:"highlight_period_min" json:"highlight_period_min"`
	HighlightPeriodMax time.Duration `yaml:"highlight_period_max" json:"highlight_period_max"`
	PhaseRate          float64       `yaml:"phase_rate" json:"phase_rate"`

	// Seed for the field's random source. Zero picks a time based seed.
	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultConfig returns the tuning used by the site background.
func DefaultConfig() Config {
	return Config{
		SpanX:      18,
		SpanY:      12,
		Depth:      6,
		AppearStep: 200 * time.Millisecond,

		MobileWidth: 768,

		PointerIntensity:     2.5,
		OrientationIntensity: 3.2,
		PointerLerp:          0.08,
		OrientationLerp:      0.12,

		TiltRange:     12,
		TiltGain:      2.8,
		TiltRestBeta:  45,
		TiltSmoothing: 0.15,

		FallSpeed:    0.02,
		FallJitter:   0.01,
		LowerBound:   -10,
		UpperBound:   10,
		RecycleSpanX: 18,
		RecycleSpanZ: 6,

		HighlightChance:    0.3,
		HighlightDuration:  3 * time.Second,
		HighlightPeriodMin: 2 * time.Second,
		HighlightPeriodMax: 10 * time.Second,
		PhaseRate:          2,
	}
}

// Validate reports tuning values the field cannot run with.
func (c Config) Validate() error {
	switch {
	case c.SpanX < 0 || c.SpanY < 0 || c.Depth < 0:
		return fmt.Errorf("tilefield: negative layout span")
	case c.PointerLerp <= 0 || c.PointerLerp > 1:
		return fmt.Errorf("tilefield: pointer_lerp %v outside (0,1]", c.PointerLerp)
	case c.OrientationLerp <= 0 || c.OrientationLerp > 1:
		return fmt.Errorf("tilefield: orientation_lerp %v outside (0,1]", c.OrientationLerp)
	case c.TiltSmoothing <= 0 || c.TiltSmoothing > 1:
		return fmt.Errorf("tilefield: tilt_smoothing %v outside (0,1]", c.TiltSmoothing)
	case c.TiltRange <= 0:
		return fmt.Errorf("tilefield: tilt_range must be positive")
	case c.LowerBound >= c.UpperBound:
		return fmt.Errorf("tilefield: lower_bound %v not below upper_bound %v", c.LowerBound, c.UpperBound)
	case c.FallSpeed < 0 || c.FallJitter < 0:
		return fmt.Errorf("tilefield: negative fall speed")
	case c.HighlightChance < 0 || c.HighlightChance > 1:
		return fmt.Errorf("tilefield: highlight_chance %v outside [0,1]", c.HighlightChance)
	case c.HighlightPeriodMin <= 0 || c.HighlightPeriodMax < c.HighlightPeriodMin:
		return fmt.Errorf("tilefield: bad highlight period range [%v,%v)", c.HighlightPeriodMin, c.HighlightPeriodMax)
	case c.HighlightDuration <= 0:
		return fmt.Errorf("tilefield: highlight_duration must be positive")
	}
	return nil
}
