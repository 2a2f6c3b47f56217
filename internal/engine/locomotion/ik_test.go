package locomotion

import (
	"testing"

	"github.com/Faultbox/octoped/pkg/math"
)

func near(a, b math.Vec3, tol float32) bool {
	return a.Distance(b) <= tol
}

func TestSolveLegFullyExtended(t *testing.T) {
	j1, j2 := SolveLeg(math.Zero3, math.Vec3{Z: 4.5}, 1.2, 2.0, 1.3, math.WorldUp, math.UnitZ)

	if !j1.IsFinite() || !j2.IsFinite() {
		t.Fatalf("non-finite joints: %v %v", j1, j2)
	}
	if !near(j1, math.Vec3{Z: 1.2}, 1e-5) {
		t.Errorf("joint1 = %v, want (0,0,1.2)", j1)
	}
	if !near(j2, math.Vec3{Z: 3.2}, 0.02) {
		t.Errorf("joint2 = %v, want about (0,0,3.2)", j2)
	}
}

func TestSolveLegReachable(t *testing.T) {
	const l1, l2, l3 = 0.5, 1.5, 1.5
	origin := math.Vec3{X: 1, Y: 2, Z: -1}
	target := origin.Add(math.Vec3{X: 2, Y: -1.5, Z: 0.5})

	j1, j2 := SolveLeg(origin, target, l1, l2, l3, math.WorldUp, math.UnitZ)

	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"coxa", j1.Distance(origin), l1},
		{"femur", j2.Distance(j1), l2},
		{"tibia", target.Distance(j2), l3},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-3 {
			t.Errorf("%s length = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if j1.Y != origin.Y {
		t.Errorf("coxa left the horizontal plane: %v", j1)
	}

	// The knee bends toward up.
	straight := target.Sub(j1).Normalize()
	femur := j2.Sub(j1).Normalize()
	if femur.Dot(math.WorldUp) <= straight.Dot(math.WorldUp) {
		t.Errorf("knee bends away from up: femur %v, straight %v", femur, straight)
	}
}

func TestSolveLegUnreachable(t *testing.T) {
	j1, j2 := SolveLeg(math.Zero3, math.Vec3{X: 100, Y: -3}, 0.5, 1.5, 1.5, math.WorldUp, math.UnitZ)
	if !j1.IsFinite() || !j2.IsFinite() {
		t.Fatalf("non-finite joints: %v %v", j1, j2)
	}
	if d := j2.Distance(j1); math.Abs(d-1.5) > 1e-3 {
		t.Errorf("femur length = %v", d)
	}
	if j2.X <= j1.X {
		t.Errorf("joint2 %v should point toward the target", j2)
	}
}

func TestSolveLegDegenerateDirections(t *testing.T) {
	tests := []struct {
		name   string
		target math.Vec3
	}{
		{"straight below origin", math.Vec3{Y: -2}},
		{"straight below coxa", math.Vec3{Y: -2, Z: 0.5}},
		{"straight above", math.Vec3{Y: 2}},
		{"on origin", math.Zero3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j1, j2 := SolveLeg(math.Zero3, tt.target, 0.5, 1.5, 1.5, math.WorldUp, math.UnitZ)
			if !j1.IsFinite() || !j2.IsFinite() {
				t.Fatalf("non-finite joints: %v %v", j1, j2)
			}
			if d := j1.Length(); math.Abs(d-0.5) > 1e-4 {
				t.Errorf("coxa length = %v", d)
			}
			if d := j2.Distance(j1); math.Abs(d-1.5) > 1e-3 {
				t.Errorf("femur length = %v", d)
			}
		})
	}
}

func TestClampReach(t *testing.T) {
	shoulder := math.Vec3{X: 1, Y: 1, Z: 1}

	inside := shoulder.Add(math.Vec3{X: 1})
	if got := ClampReach(shoulder, inside, 3); got != inside {
		t.Errorf("inside foot moved: %v", got)
	}

	far := shoulder.Add(math.Vec3{X: 10})
	got := ClampReach(shoulder, far, 3)
	if d := got.Distance(shoulder); math.Abs(d-3*ikReach) > 1e-4 {
		t.Errorf("clamped distance = %v, want %v", d, 3*ikReach)
	}
}
