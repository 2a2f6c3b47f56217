package locomotion

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrInvalidTuning is wrapped by every error Tuning.Validate reports.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds the live-editable knobs of a character. The controller treats
// them as preconditions: run Validate before handing a Tuning to New or
// SetTuning.
type Tuning struct {
	// Movement
	Speed      float32 `yaml:"speed"`
	TurnSpeed  float32 `yaml:"turn_speed"`
	BodyHeight float32 `yaml:"body_height"`

	// Gait / stepping
	StepHeight     float32 `yaml:"step_height"`
	StepDuration   float32 `yaml:"step_duration"`
	GaitThreshold  float32 `yaml:"gait_threshold"`
	GaitRecovery   float32 `yaml:"gait_recovery"` // velocity lead for step targets
	MaxActiveSteps int     `yaml:"max_active_steps"`
	MaxStride      float32 `yaml:"max_stride"`

	// Front row "feelers"
	FrontLegReach             float32 `yaml:"front_leg_reach"`  // extra Z on the rest offset
	FrontLegSpread            float32 `yaml:"front_leg_spread"` // X multiplier on the rest offset
	FrontLegStepDurationMult  float32 `yaml:"front_leg_step_duration_mult"`
	FrontLegGaitThresholdMult float32 `yaml:"front_leg_gait_threshold_mult"`
	FrontLegScale             float32 `yaml:"front_leg_scale"` // bone length multiplier

	// Leg bones: coxa, femur, tibia
	LegL1 float32 `yaml:"leg_l1"`
	LegL2 float32 `yaml:"leg_l2"`
	LegL3 float32 `yaml:"leg_l3"`

	// Body
	AbdomenScale  float32 `yaml:"abdomen_scale"`
	HullScale     float32 `yaml:"hull_scale"`
	BreathingRate float32 `yaml:"breathing_rate"`
	BreathingAmp  float32 `yaml:"breathing_amp"`
	UpAlignRate   float32 `yaml:"up_align_rate"` // per second, toward the support normal
}

// DefaultTuning returns the reference octoped tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Speed:      4.5,
		TurnSpeed:  2.9,
		BodyHeight: 1.5,

		StepHeight:     1.0,
		StepDuration:   0.29,
		GaitThreshold:  1.5,
		GaitRecovery:   1.4,
		MaxActiveSteps: 3,
		MaxStride:      3.5,

		FrontLegReach:             0.6,
		FrontLegSpread:            0.8,
		FrontLegStepDurationMult:  0.9,
		FrontLegGaitThresholdMult: 0.9,
		FrontLegScale:             0.92,

		LegL1: 0.5,
		LegL2: 1.5,
		LegL3: 1.5,

		AbdomenScale:  1.2,
		HullScale:     1.0,
		BreathingRate: 2.0,
		BreathingAmp:  0.05,
		UpAlignRate:   8.0,
	}
}

// Validate reports every out-of-range knob at once.
func (t Tuning) Validate() error {
	var err error
	positive := func(name string, v float32) {
		if !(v > 0) {
			err = multierr.Append(err, fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidTuning, name, v))
		}
	}
	nonNegative := func(name string, v float32) {
		if !(v >= 0) {
			err = multierr.Append(err, fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidTuning, name, v))
		}
	}

	positive("speed", t.Speed)
	positive("turn_speed", t.TurnSpeed)
	positive("body_height", t.BodyHeight)
	nonNegative("step_height", t.StepHeight)
	positive("step_duration", t.StepDuration)
	positive("gait_threshold", t.GaitThreshold)
	nonNegative("gait_recovery", t.GaitRecovery)
	if t.MaxActiveSteps < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: max_active_steps must be >= 1, got %d", ErrInvalidTuning, t.MaxActiveSteps))
	}
	positive("max_stride", t.MaxStride)
	nonNegative("front_leg_reach", t.FrontLegReach)
	positive("front_leg_spread", t.FrontLegSpread)
	positive("front_leg_step_duration_mult", t.FrontLegStepDurationMult)
	positive("front_leg_gait_threshold_mult", t.FrontLegGaitThresholdMult)
	positive("front_leg_scale", t.FrontLegScale)
	positive("leg_l1", t.LegL1)
	positive("leg_l2", t.LegL2)
	positive("leg_l3", t.LegL3)
	positive("abdomen_scale", t.AbdomenScale)
	positive("hull_scale", t.HullScale)
	nonNegative("breathing_rate", t.BreathingRate)
	nonNegative("breathing_amp", t.BreathingAmp)
	positive("up_align_rate", t.UpAlignRate)

	return err
}
