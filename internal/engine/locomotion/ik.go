package locomotion

import "github.com/Faultbox/octoped/pkg/math"

const (
	ikEpsilon       = 1e-4
	horizontalMinSq = 1e-4
	bendNormalMinSq = 1e-3
)

// SolveLeg places the two inner joints of a coxa/femur/tibia chain rooted at
// origin so that the tip reaches target, or gets as close as the bones allow.
//
// The coxa points along the horizontal projection of the target (relative to
// up), falling back to forwardHint when the target is straight above or
// below. The femur/tibia pair is then solved as a two-bone chain with the
// knee bent toward up.
func SolveLeg(origin, target math.Vec3, l1, l2, l3 float32, up, forwardHint math.Vec3) (joint1, joint2 math.Vec3) {
	toTarget := target.Sub(origin)
	horizontal := toTarget.ProjectOnPlane(up)
	if horizontal.LengthSq() < horizontalMinSq {
		horizontal = forwardHint.ProjectOnPlane(up)
	}
	horizontal = horizontal.Normalize()
	joint1 = origin.Add(horizontal.Scale(l1))

	toFoot := target.Sub(joint1)
	dist := toFoot.Length()
	dist = math.Clamp(dist, math.Abs(l2-l3)+ikEpsilon, l2+l3-ikEpsilon)

	dir := toFoot.Normalize()
	if dir.LengthSq() == 0 {
		dir = horizontal
	}

	cosA := (l2*l2 + dist*dist - l3*l3) / (2 * l2 * dist)
	angle := math.Acos(cosA)

	axis := bendAxis(dir, up, horizontal)
	joint2 = joint1.Add(dir.RotateAround(axis, angle).Scale(l2))
	return joint1, joint2
}

// bendAxis picks the rotation axis for the knee. Its right-hand rotation takes
// dir toward up; when dir is parallel to up the radial direction stands in.
func bendAxis(dir, up, radial math.Vec3) math.Vec3 {
	n := dir.Cross(up)
	if n.LengthSq() < bendNormalMinSq {
		n = dir.Cross(radial)
	}
	if n.LengthSq() < bendNormalMinSq {
		n = dir.Cross(math.UnitX)
		if n.LengthSq() < bendNormalMinSq {
			n = dir.Cross(math.UnitZ)
		}
	}
	return n.Normalize()
}

// ClampReach pulls foot back toward shoulder so it lies within ikReach of the
// leg's max reach.
func ClampReach(shoulder, foot math.Vec3, maxReach float32) math.Vec3 {
	limit := maxReach * ikReach
	d := foot.Sub(shoulder)
	if d.LengthSq() <= limit*limit {
		return foot
	}
	return shoulder.Add(d.ClampLength(limit))
}
