package sim

import (
	"fmt"

	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/pkg/math"
)

const (
	reachSlack  = 1e-3
	boneSlack   = 2e-2
	maxRecorded = 10
)

// Violation is one failed invariant on one frame.
type Violation struct {
	Frame  int     `yaml:"frame"`
	Clock  float32 `yaml:"clock"`
	Leg    int     `yaml:"leg"` // -1 for body-level checks
	Check  string  `yaml:"check"`
	Detail string  `yaml:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("frame %d (t=%.3fs) leg %d: %s: %s", v.Frame, v.Clock, v.Leg, v.Check, v.Detail)
}

// checkFrame appends every invariant the frame breaks: finite state,
// feet within reach of their shoulders and bone lengths kept by the solver.
func checkFrame(dst []Violation, n int, f *locomotion.Frame, configs *[locomotion.LegCount]locomotion.LegConfiguration) []Violation {
	bad := func(leg int, check, format string, args ...any) {
		dst = append(dst, Violation{Frame: n, Clock: f.Clock, Leg: leg, Check: check, Detail: fmt.Sprintf(format, args...)})
	}

	if !f.Position.IsFinite() || !f.Orientation.IsFinite() {
		bad(-1, "finite", "body position %v orientation %v", f.Position, f.Orientation)
		return dst
	}

	for i := range f.Legs {
		leg := &f.Legs[i]
		cfg := &configs[i]
		if !leg.Shoulder.IsFinite() || !leg.Joint1.IsFinite() || !leg.Joint2.IsFinite() || !leg.Foot.IsFinite() {
			bad(i, "finite", "pose %+v", *leg)
			continue
		}
		if d := leg.Foot.Distance(leg.Shoulder); d > cfg.SolvedReach()+reachSlack {
			bad(i, "reach", "foot %.3f from shoulder, max %.3f", d, cfg.SolvedReach())
		}
		if d := leg.Joint1.Distance(leg.Shoulder); math.Abs(d-cfg.L1) > boneSlack {
			bad(i, "coxa", "length %.3f, want %.3f", d, cfg.L1)
		}
		if d := leg.Joint2.Distance(leg.Joint1); math.Abs(d-cfg.L2) > boneSlack {
			bad(i, "femur", "length %.3f, want %.3f", d, cfg.L2)
		}
	}
	return dst
}
