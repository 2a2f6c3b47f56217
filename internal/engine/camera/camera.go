// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/pkg/math"
)

// FollowCamera trails a character from behind and above. The focus point
// eases toward the followed position so small body bobbing does not shake
// the view.
type FollowCamera struct {
	// Camera orientation
	Yaw   float32 // Horizontal rotation around target (radians)
	Pitch float32 // Vertical angle (radians)

	// Distance from target
	Distance    float32
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	FollowRate float32 // focus easing per second
	LookHeight float32 // focus offset above the body

	focus   math.Vec3
	hasBody bool
}

// NewFollowCamera creates a follow camera framed for an octoped a few
// units across.
func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		Yaw:             0.0,
		Pitch:           0.6,
		Distance:        18.0,
		MinDistance:     5.0,
		MaxDistance:     80.0,
		MinPitch:        0.1,
		MaxPitch:        1.45,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FollowRate:      4.0,
		LookHeight:      0.5,
	}
}

// Follow eases the focus toward the published snapshot. The first call
// snaps so the camera does not fly in from the origin.
func (c *FollowCamera) Follow(s locomotion.Snapshot, dt float32) {
	target := s.Position.Add(math.Vec3{Y: c.LookHeight})
	if !c.hasBody {
		c.focus = target
		c.hasBody = true
		return
	}
	c.focus = c.focus.Lerp(target, math.Clamp01(dt*c.FollowRate))
}

// Focus returns the point the camera looks at.
func (c *FollowCamera) Focus() math.Vec3 {
	return c.focus
}

// Position returns the camera position in world space.
func (c *FollowCamera) Position() math.Vec3 {
	offsetY := c.Distance * math.Sin(c.Pitch)
	horizDist := c.Distance * math.Cos(c.Pitch)

	return math.Vec3{
		X: c.focus.X - horizDist*math.Sin(c.Yaw),
		Y: c.focus.Y + offsetY,
		Z: c.focus.Z - horizDist*math.Cos(c.Yaw),
	}
}

// ViewMatrix returns the view matrix for the current focus.
func (c *FollowCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.focus, math.WorldUp)
}

// HandleDrag rotates the camera around the focus from a mouse drag delta.
func (c *FollowCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance from target.
func (c *FollowCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// ForwardDirection returns the camera's forward direction on the XZ plane.
func (c *FollowCamera) ForwardDirection() (x, z float32) {
	return math.Sin(c.Yaw), math.Cos(c.Yaw)
}
