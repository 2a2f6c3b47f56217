package locomotion

import "github.com/Faultbox/octoped/pkg/math"

// LegCount is the number of legs. Legs 0..3 run front to back on the body's
// +X side, legs 4..7 front to back on the -X side.
const LegCount = 8

const rowsPerSide = LegCount / 2

// Per-row layout of the reference body, front row first.
var (
	shoulderX = [rowsPerSide]float32{0.65, 1.2, 1.2, 0.8}
	shoulderZ = [rowsPerSide]float32{1.1, 0.5, -0.6, -1.7}
)

const (
	restSpreadX     = 2.8
	restSpreadZ     = 1.5
	frontRowCompact = 0.8
	criticalReach   = 0.9  // of max reach; beyond this a leg must step
	ikReach         = 0.99 // of max reach; feet are clamped here before IK
)

// LegConfiguration is the static geometry of one leg, in body space.
type LegConfiguration struct {
	Index          int
	Side           float32 // +1 or -1
	Row            int     // 0 is the front row
	ShoulderOffset math.Vec3
	RestOffset     math.Vec3
	L1, L2, L3     float32
	Neighbors      [3]int // adjacent on the same side, then the mirror leg
}

// MaxReach is the fully extended length of the leg.
func (c LegConfiguration) MaxReach() float32 {
	return c.L1 + c.L2 + c.L3
}

// SolvedReach is the farthest a foot is ever placed from its shoulder in a
// Frame.
func (c LegConfiguration) SolvedReach() float32 {
	return c.MaxReach() * ikReach
}

// IsFront reports whether the leg belongs to the front row.
func (c LegConfiguration) IsFront() bool {
	return c.Row == 0
}

// BuildLayout derives all leg configurations from the tuning.
func BuildLayout(t Tuning) [LegCount]LegConfiguration {
	var out [LegCount]LegConfiguration
	for i := range LegCount {
		side := float32(1)
		if i >= rowsPerSide {
			side = -1
		}
		row := i % rowsPerSide

		x := shoulderX[row] * side
		z := shoulderZ[row]

		s := float32(1)
		if row == 0 {
			s = frontRowCompact
		}
		rest := math.Vec3{X: x * restSpreadX * s, Y: -t.BodyHeight, Z: z * restSpreadZ * s}

		l1, l2, l3 := t.LegL1, t.LegL2, t.LegL3
		if row == 0 {
			rest.Z += t.FrontLegReach
			rest.X *= t.FrontLegSpread
			l1 *= t.FrontLegScale
			l2 *= t.FrontLegScale
			l3 *= t.FrontLegScale
		}

		out[i] = LegConfiguration{
			Index:          i,
			Side:           side,
			Row:            row,
			ShoulderOffset: math.Vec3{X: x, Y: 0, Z: z},
			RestOffset:     rest,
			L1:             l1,
			L2:             l2,
			L3:             l3,
			Neighbors: [3]int{
				(i + 1) % LegCount,
				(i + LegCount - 1) % LegCount,
				(i + LegCount/2) % LegCount,
			},
		}
	}
	return out
}

// LegState is the mutable per-leg state.
type LegState struct {
	Current    math.Vec3 // world-space foot position
	Start      math.Vec3
	Target     math.Vec3
	Home       math.Vec3 // this frame's ideal ground contact
	Stepping   bool
	Progress   float32 // [0, 1] while stepping
	StepHeight float32 // jittered apex height of the current step
}

// Plant puts the foot down at p, cancelling any step in flight.
func (l *LegState) Plant(p math.Vec3) {
	l.Current = p
	l.Start = p
	l.Target = p
	l.Home = p
	l.Stepping = false
	l.Progress = 0
}

// Begin starts a step from the current position toward target.
func (l *LegState) Begin(target math.Vec3, stepHeight float32) {
	l.Start = l.Current
	l.Target = target
	l.Stepping = true
	l.Progress = 0
	l.StepHeight = stepHeight
}

// Advance moves a stepping foot along its arc. It reports true on the frame
// the foot lands.
func (l *LegState) Advance(dt, duration float32) bool {
	if !l.Stepping {
		return false
	}
	l.Progress += dt / duration
	if l.Progress >= 1 {
		l.Progress = 1
		l.Stepping = false
		l.Current = l.Target
		return true
	}
	l.Current = arcPoint(l.Start, l.Target, l.Progress, l.StepHeight)
	return false
}

// arcPoint is the eased horizontal blend plus a sine lift that peaks at
// mid-step.
func arcPoint(start, target math.Vec3, progress, height float32) math.Vec3 {
	e := math.EaseInOutCubic(progress)
	p := start.Lerp(target, e)
	p.Y += math.Sin(progress*math.Pi) * height
	return p
}
