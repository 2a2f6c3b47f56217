package locomotion

import (
	"math/rand/v2"

	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

const (
	leadMinSpeed = 0.1 // commanded speed above which home positions lead the body
	homeLead     = 0.1 // seconds of velocity added to home positions
)

// StepCandidate is a planted leg that wants to step this frame.
type StepCandidate struct {
	Leg      int
	Distance float32 // from the foot to its home
	Critical bool
	Target   math.Vec3
}

// GaitInput is the per-frame body information the scheduler reads.
type GaitInput struct {
	Body     math.Mat4 // body world transform
	Velocity math.Vec3
	Speed    float32 // commanded speed, 0 while idle or charging
	Tuning   *Tuning
	Oracle   terrain.Oracle
	Kind     terrain.Kind
	Rand     *rand.Rand
}

// GaitResult summarizes what the scheduler did.
type GaitResult struct {
	Started   int
	Overrides int // critical legs that started past the concurrency cap or a stepping neighbor
}

// Scheduler decides which planted legs start stepping. It owns a fixed
// candidate buffer so a frame never allocates.
type Scheduler struct {
	candidates [LegCount]StepCandidate
	n          int
}

// Schedule examines every planted leg, ranks those that drifted past their
// threshold by distance (critical first) and starts steps subject to the
// neighbor and concurrency rules. Critical legs ignore both rules.
func (s *Scheduler) Schedule(in *GaitInput, configs *[LegCount]LegConfiguration, legs *[LegCount]LegState) GaitResult {
	t := in.Tuning
	s.n = 0

	var lead math.Vec3
	if in.Speed > leadMinSpeed {
		lead = in.Velocity.Scale(homeLead)
	}
	stride := in.Velocity.Scale(t.StepDuration * t.GaitRecovery).ClampLength(t.MaxStride)

	active := 0
	for i := range legs {
		if legs[i].Stepping {
			active++
		}
	}

	for i := range legs {
		leg := &legs[i]
		cfg := &configs[i]

		h := in.Body.TransformVec3(cfg.RestOffset).Add(lead)
		h.Y = in.Oracle.Height(h.X, h.Z, in.Kind)
		leg.Home = h
		if leg.Stepping {
			continue
		}

		target := h.Add(stride)
		target.Y = in.Oracle.Height(target.X, target.Z, in.Kind)

		dist := leg.Current.Distance(h)
		shoulder := in.Body.TransformVec3(cfg.ShoulderOffset)
		critical := leg.Current.Distance(shoulder) > cfg.MaxReach()*criticalReach

		threshold := t.GaitThreshold
		if cfg.IsFront() {
			threshold *= t.FrontLegGaitThresholdMult
		}
		if dist > threshold || critical {
			s.candidates[s.n] = StepCandidate{Leg: i, Distance: dist, Critical: critical, Target: target}
			s.n++
		}
	}

	s.sort()

	var res GaitResult
	for k := range s.n {
		c := &s.candidates[k]
		if !c.Critical && (active >= t.MaxActiveSteps || s.neighborStepping(configs, legs, c.Leg)) {
			continue
		}
		if c.Critical && (active >= t.MaxActiveSteps || s.neighborStepping(configs, legs, c.Leg)) {
			res.Overrides++
		}
		h := t.StepHeight * (0.9 + in.Rand.Float32()*0.2)
		legs[c.Leg].Begin(c.Target, h)
		active++
		res.Started++
	}
	return res
}

// Candidates returns the ranked candidates of the last Schedule call.
func (s *Scheduler) Candidates() []StepCandidate {
	return s.candidates[:s.n]
}

func (s *Scheduler) neighborStepping(configs *[LegCount]LegConfiguration, legs *[LegCount]LegState, leg int) bool {
	for _, n := range configs[leg].Neighbors {
		if legs[n].Stepping {
			return true
		}
	}
	return false
}

// sort orders candidates critical first, then by descending distance. The
// buffer holds at most LegCount entries, so insertion sort is enough.
func (s *Scheduler) sort() {
	for i := 1; i < s.n; i++ {
		c := s.candidates[i]
		j := i - 1
		for j >= 0 && less(c, s.candidates[j]) {
			s.candidates[j+1] = s.candidates[j]
			j--
		}
		s.candidates[j+1] = c
	}
}

func less(a, b StepCandidate) bool {
	if a.Critical != b.Critical {
		return a.Critical
	}
	return a.Distance > b.Distance
}
