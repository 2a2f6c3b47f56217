package locomotion

import (
	"math/rand/v2"

	"github.com/Faultbox/octoped/pkg/math"
)

// JumpPhase is the state of the charge/release jump.
type JumpPhase uint8

const (
	JumpIdle JumpPhase = iota
	JumpCharging
	JumpAirborne
)

func (p JumpPhase) String() string {
	switch p {
	case JumpCharging:
		return "charging"
	case JumpAirborne:
		return "airborne"
	default:
		return "idle"
	}
}

// Movement and jump constants.
const (
	startMoveDistance = 0.2 // stopped -> moving
	stopMoveDistance  = 0.1 // moving -> stopped
	approachGain      = 1.5 // speed per unit of remaining distance

	accelRate       = 3
	decelRate       = 5
	chargeDecelRate = 8
	heightRate      = 3

	maxCharge       = 1.0 // seconds
	crouchDepth     = 2.5
	crouchClearance = 0.5
	shakeAfter      = 0.3
	shakeAmp        = 0.03

	minJumpVelocity  = 20
	maxJumpVelocity  = 50
	minJumpBoost     = 15
	maxJumpBoost     = 45
	launchMoveSpeed  = 0.1
	gravity          = 60
	landingFriction  = 0.5
	turnMinSpeedSq   = 0.1
)

// BodyState is the integrated state of the body.
type BodyState struct {
	Position         math.Vec3
	Velocity         math.Vec3
	Orientation      math.Quat
	VerticalVelocity float32
	Jump             JumpPhase
	ChargeStart      float32
	Clock            float32
	GazeTarget       math.Vec3
	NextWander       float32

	Moving        bool // hysteresis memory
	SupportNormal math.Vec3
}

// steer runs the movement gate and integrates velocity and planar position.
// It returns the commanded speed (0 when not driving toward the target) and
// the planar distance to the target.
func (b *BodyState) steer(target math.Vec3, dt float32, t *Tuning) (speed, dist float32) {
	toTarget := target.Sub(b.Position).WithY(0)
	dist = toTarget.Length()

	if b.Moving {
		b.Moving = dist > stopMoveDistance
	} else {
		b.Moving = dist > startMoveDistance
	}

	if b.Moving && b.Jump != JumpCharging {
		speed = math.Min(t.Speed, dist*approachGain)
		want := toTarget.Normalize().Scale(speed)
		b.Velocity = b.Velocity.Lerp(want, math.Clamp01(dt*accelRate))
	} else {
		rate := float32(decelRate)
		if b.Jump == JumpCharging {
			rate = chargeDecelRate
		}
		b.Velocity = b.Velocity.Lerp(math.Zero3, math.Clamp01(dt*rate))
	}

	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	return speed, dist
}

// settle drives the body height from the feet, including the crouch while
// charging and ballistic flight while airborne. It reports true on landing.
func (b *BodyState) settle(legs *[LegCount]LegState, dt float32, t *Tuning, rng *rand.Rand) bool {
	var sum float32
	for i := range legs {
		if legs[i].Stepping {
			sum += legs[i].Target.Y
		} else {
			sum += legs[i].Current.Y
		}
	}
	avgFootY := sum / LegCount

	breath := math.Sin(b.Clock*t.BreathingRate) * t.BreathingAmp
	targetY := avgFootY + t.BodyHeight + breath

	if b.Jump == JumpCharging {
		charge := math.Min(b.Clock-b.ChargeStart, maxCharge)
		targetY = math.Max(targetY-charge*crouchDepth, avgFootY+crouchClearance)

		if charge > shakeAfter && dt > 0 {
			b.Position.X += (rng.Float32()*2 - 1) * charge * shakeAmp
			b.Position.Z += (rng.Float32()*2 - 1) * charge * shakeAmp
		}
	}

	if b.Jump == JumpAirborne {
		b.VerticalVelocity -= gravity * dt
		b.Position.Y += b.VerticalVelocity * dt

		if b.VerticalVelocity <= 0 && b.Position.Y <= targetY {
			b.Position.Y = targetY
			b.VerticalVelocity = 0
			b.Velocity = b.Velocity.Scale(landingFriction)
			b.Jump = JumpIdle
			return true
		}
		return false
	}

	b.Position.Y = math.Lerp(b.Position.Y, targetY, math.Clamp01(dt*heightRate))
	return false
}

// supportNormal estimates the ground normal under the body from the two
// diagonal foot pairs, flipped into the upper hemisphere.
func supportNormal(legs *[LegCount]LegState) math.Vec3 {
	frontRight := legs[0].Current
	backRight := legs[rowsPerSide-1].Current
	frontLeft := legs[rowsPerSide].Current
	backLeft := legs[LegCount-1].Current

	a := frontLeft.Sub(backRight).Normalize()
	c := frontRight.Sub(backLeft).Normalize()
	n := a.Cross(c).Normalize()
	if n.LengthSq() == 0 {
		return math.WorldUp
	}
	if n.Y < 0 {
		n = n.Negate()
	}
	return n
}

// orient tilts the body toward the support normal and, while moving, turns it
// toward the velocity.
func (b *BodyState) orient(legs *[LegCount]LegState, dt float32, t *Tuning) {
	n := supportNormal(legs)
	b.SupportNormal = n

	if align := math.Clamp01(dt * t.UpAlignRate); align > 0 {
		correction := math.QuatFromUnitVectors(b.Orientation.Up(), n)
		b.Orientation = math.QuatIdentity().Slerp(correction, align).Mul(b.Orientation).Normalize()
	}

	if !b.Moving || b.Jump == JumpCharging || b.Velocity.LengthSq() <= turnMinSpeedSq {
		return
	}
	forward := b.Velocity.Normalize().ProjectOnPlane(n).Normalize()
	if forward.LengthSq() == 0 {
		return
	}
	right := n.Cross(forward).Normalize()
	want := math.QuatFromBasis(right, n, forward)
	b.Orientation = b.Orientation.Slerp(want, math.Clamp01(dt*t.TurnSpeed))
}

// beginCharge starts charging a jump. It reports false if a jump is already
// charging or in flight.
func (b *BodyState) beginCharge() bool {
	if b.Jump != JumpIdle {
		return false
	}
	b.Jump = JumpCharging
	b.ChargeStart = b.Clock
	return true
}

// release launches a charging jump and returns the charge factor in [0, 1].
// It reports false when nothing was charging.
func (b *BodyState) release() (float32, bool) {
	if b.Jump != JumpCharging {
		return 0, false
	}
	charge := math.Clamp01(math.Min(b.Clock-b.ChargeStart, maxCharge) / maxCharge)
	b.VerticalVelocity = math.Lerp(minJumpVelocity, maxJumpVelocity, charge)

	var dir math.Vec3
	if b.Velocity.Length() > launchMoveSpeed {
		dir = b.Velocity.WithY(0).Normalize()
	}
	if dir.LengthSq() == 0 {
		dir = b.Orientation.Forward().WithY(0).Normalize()
	}
	b.Velocity = b.Velocity.Add(dir.Scale(math.Lerp(minJumpBoost, maxJumpBoost, charge)))
	b.Jump = JumpAirborne
	return charge, true
}
