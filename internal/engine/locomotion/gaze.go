package locomotion

import (
	"math/rand/v2"

	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

const (
	gazeProximity   = 8.0  // below this distance the gaze starts looking past the target
	gazeLookAhead   = 20.0 // distance of the look-ahead point in front of the body
	gazeJitter      = 3.0
	gazeMinInterval = 0.5
	gazeMaxExtra    = 2.0
	gazeEyeHeight   = 1.0
	gazeMovingRate  = 5
	gazeIdleRate    = 2
)

// DefaultHeadOffset is the head pivot relative to the body center.
var DefaultHeadOffset = math.Vec3{X: 0, Y: 0.1, Z: 1.2}

// Head owns the head's orientation relative to the body. Nothing else in the
// controller reads it.
type Head struct {
	Offset math.Vec3
	Local  math.Quat
}

type gazeInput struct {
	moving  bool
	dist    float32 // planar distance to the target
	target  math.Vec3
	pointer math.Vec3
	oracle  terrain.Oracle
	kind    terrain.Kind
	rng     *rand.Rand
}

// update picks the gaze point on body and turns the head toward it.
func (h *Head) update(dt float32, body *BodyState, in *gazeInput) {
	if in.moving {
		if in.dist < gazeProximity {
			ahead := body.Position.Add(body.Orientation.Forward().Scale(gazeLookAhead))
			blend := math.Clamp01(1 - in.dist/gazeProximity)
			body.GazeTarget = in.target.Lerp(ahead, math.EaseInOutCubic(blend))
		} else {
			body.GazeTarget = in.target
		}
	} else if body.Clock > body.NextWander {
		body.GazeTarget = in.pointer.Add(math.Vec3{
			X: (in.rng.Float32()*2 - 1) * gazeJitter,
			Z: (in.rng.Float32()*2 - 1) * gazeJitter,
		})
		body.NextWander = body.Clock + gazeMinInterval + in.rng.Float32()*gazeMaxExtra
	}

	look := body.GazeTarget
	look.Y = in.oracle.Height(look.X, look.Z, in.kind) + gazeEyeHeight

	pivot := body.Position.Add(body.Orientation.Rotate(h.Offset))
	world := math.QuatLookRotation(look.Sub(pivot), math.WorldUp)
	local := body.Orientation.Conjugate().Mul(world)

	rate := float32(gazeIdleRate)
	if in.moving {
		rate = gazeMovingRate
	}
	h.Local = h.Local.Slerp(local, math.Clamp01(dt*rate))
}

// World returns the head orientation in world space.
func (h *Head) World(body math.Quat) math.Quat {
	return body.Mul(h.Local)
}
