package debug

import (
	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

// Palette colors the character overlay.
type Palette struct {
	Leg         [3]float32
	LegStepping [3]float32
	Joint       [3]float32
	Hull        [3]float32
	Abdomen     [3]float32
	Gaze        [3]float32
	Normal      [3]float32
	AxisX       [3]float32
	AxisY       [3]float32
	AxisZ       [3]float32
}

// DefaultPalette is tuned for the dark viewer background.
var DefaultPalette = Palette{
	Leg:         [3]float32{0.85, 0.8, 0.7},
	LegStepping: [3]float32{1.0, 0.75, 0.2},
	Joint:       [3]float32{0.6, 0.6, 0.6},
	Hull:        [3]float32{0.9, 0.9, 0.95},
	Abdomen:     [3]float32{0.7, 0.75, 0.85},
	Gaze:        [3]float32{0.3, 0.9, 0.9},
	Normal:      [3]float32{0.9, 0.3, 0.9},
	AxisX:       [3]float32{1, 0.2, 0.2},
	AxisY:       [3]float32{0.2, 1, 0.2},
	AxisZ:       [3]float32{0.3, 0.4, 1},
}

// BodyShape is the box approximation of the hull and abdomen in body space.
type BodyShape struct {
	HullHalf      math.Vec3
	AbdomenHalf   math.Vec3
	AbdomenOffset math.Vec3
}

// ShapeFor sizes the body boxes from the tuning scales.
func ShapeFor(t locomotion.Tuning) BodyShape {
	h, a := t.HullScale, t.AbdomenScale
	return BodyShape{
		HullHalf:      math.Vec3{X: 0.9 * h, Y: 0.35 * h, Z: 1.3 * h},
		AbdomenHalf:   math.Vec3{X: 0.9 * a, Y: 0.7 * a, Z: 1.2 * a},
		AbdomenOffset: math.Vec3{X: 0, Y: 0.2, Z: -1.3*h - 1.2*a},
	}
}

const (
	axisLength   = 1.5
	gazeLength   = 3.0
	normalLength = 2.0
	jointMarker  = 0.08
)

// AppendFrame draws the body boxes, body axes, support normal, head
// direction and all leg chains of one frame.
func AppendFrame(dst []terrain.LineVertex, f *locomotion.Frame, shape BodyShape, p Palette) []terrain.LineVertex {
	dst = AppendBox(dst, f.Transform, shape.HullHalf, p.Hull)
	abdomen := f.Transform.Mul(math.Translate(shape.AbdomenOffset.X, shape.AbdomenOffset.Y, shape.AbdomenOffset.Z))
	dst = AppendBox(dst, abdomen, shape.AbdomenHalf, p.Abdomen)

	o := f.Position
	dst = AppendSegment(dst, o, o.Add(f.Orientation.Rotate(math.UnitX).Scale(axisLength)), p.AxisX)
	dst = AppendSegment(dst, o, o.Add(f.Orientation.Up().Scale(axisLength)), p.AxisY)
	dst = AppendSegment(dst, o, o.Add(f.Orientation.Forward().Scale(axisLength)), p.AxisZ)
	dst = AppendSegment(dst, o, o.Add(f.SupportNormal.Scale(normalLength)), p.Normal)

	dst = AppendSegment(dst, f.HeadPosition, f.HeadPosition.Add(f.HeadWorld.Forward().Scale(gazeLength)), p.Gaze)

	for i := range f.Legs {
		dst = AppendLeg(dst, &f.Legs[i], p)
	}
	return dst
}

// AppendLeg draws one leg as three segments with small joint markers.
func AppendLeg(dst []terrain.LineVertex, leg *locomotion.LegPose, p Palette) []terrain.LineVertex {
	color := p.Leg
	if leg.Stepping {
		color = p.LegStepping
	}
	dst = AppendSegment(dst, leg.Shoulder, leg.Joint1, color)
	dst = AppendSegment(dst, leg.Joint1, leg.Joint2, color)
	dst = AppendSegment(dst, leg.Joint2, leg.Foot, color)
	dst = AppendCross(dst, leg.Joint1, jointMarker, p.Joint)
	return AppendCross(dst, leg.Joint2, jointMarker, p.Joint)
}
