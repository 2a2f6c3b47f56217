package camera

import (
	"testing"

	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/pkg/math"
)

func TestFollowSnapsThenEases(t *testing.T) {
	c := NewFollowCamera()
	c.LookHeight = 0

	c.Follow(locomotion.Snapshot{Position: math.Vec3{X: 10, Y: 2, Z: -4}}, 0.016)
	if c.Focus() != (math.Vec3{X: 10, Y: 2, Z: -4}) {
		t.Fatalf("first follow should snap, focus = %v", c.Focus())
	}

	c.Follow(locomotion.Snapshot{Position: math.Vec3{X: 20, Y: 2, Z: -4}}, 0.1)
	got := c.Focus().X
	if got <= 10 || got >= 20 {
		t.Errorf("focus X = %v, want strictly between 10 and 20", got)
	}

	// A long frame clamps the easing factor to 1.
	c.Follow(locomotion.Snapshot{Position: math.Vec3{X: 20, Y: 2, Z: -4}}, 10)
	if c.Focus().X != 20 {
		t.Errorf("focus X = %v, want 20", c.Focus().X)
	}
}

func TestPositionBehindFocus(t *testing.T) {
	c := NewFollowCamera()
	c.LookHeight = 0
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = 10
	c.Follow(locomotion.Snapshot{}, 0)

	p := c.Position()
	if math.Abs(p.X) > 1e-5 || math.Abs(p.Y) > 1e-5 || math.Abs(p.Z+10) > 1e-5 {
		t.Errorf("position = %v, want (0, 0, -10)", p)
	}
}

func TestHandleZoomAndDragClamp(t *testing.T) {
	c := NewFollowCamera()

	for range 100 {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want min %v", c.Distance, c.MinDistance)
	}
	for range 100 {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %v, want max %v", c.Distance, c.MaxDistance)
	}

	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %v, want max %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch = %v, want min %v", c.Pitch, c.MinPitch)
	}
}
