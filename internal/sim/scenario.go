package sim

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/pkg/math"
)

// Scenario feeds inputs to one controller. Drive is called once per tick
// before Update.
type Scenario interface {
	Name() string
	Drive(c *locomotion.Controller, clock float32, rng *rand.Rand)
}

// Scenario names accepted by NewScenario.
const (
	ScenarioWander = "wander"
	ScenarioPatrol = "patrol"
	ScenarioJump   = "jump"
)

// NewScenario returns a fresh scenario instance. Scenarios keep per-run
// state, so every controller needs its own.
func NewScenario(name string) (Scenario, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ScenarioWander, "":
		return &wander{radius: 40, arrive: 1.0}, nil
	case ScenarioPatrol:
		return newPatrol(25), nil
	case ScenarioJump:
		return &jumper{wander: wander{radius: 25, arrive: 1.0}, period: 3, hold: 0.6}, nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
}

// wander picks a random target around the spawn point whenever the body
// arrives, and moves the gaze pointer now and then.
type wander struct {
	radius float32
	arrive float32

	origin   math.Vec3
	target   math.Vec3
	started  bool
	nextLook float32
}

func (w *wander) Name() string { return ScenarioWander }

func (w *wander) Drive(c *locomotion.Controller, clock float32, rng *rand.Rand) {
	pos := c.Body().Position
	if !w.started {
		w.origin = pos
		w.started = true
		w.pick(c, rng)
	}
	if pos.PlanarDistance(w.target) < w.arrive {
		w.pick(c, rng)
	}
	if clock >= w.nextLook {
		c.SetPointer(pos.Add(math.Vec3{X: uniform(rng, -10, 10), Z: uniform(rng, -10, 10)}))
		w.nextLook = clock + uniform(rng, 1, 4)
	}
}

func (w *wander) pick(c *locomotion.Controller, rng *rand.Rand) {
	w.target = w.origin.Add(math.Vec3{
		X: uniform(rng, -w.radius, w.radius),
		Z: uniform(rng, -w.radius, w.radius),
	})
	c.SetTarget(w.target)
}

// patrol walks the corners of a square around the spawn point.
type patrol struct {
	size    float32
	corners [4]math.Vec3
	next    int
	started bool
}

func newPatrol(size float32) *patrol {
	return &patrol{size: size}
}

func (p *patrol) Name() string { return ScenarioPatrol }

func (p *patrol) Drive(c *locomotion.Controller, _ float32, _ *rand.Rand) {
	pos := c.Body().Position
	if !p.started {
		h := p.size / 2
		p.corners = [4]math.Vec3{
			pos.Add(math.Vec3{X: h, Z: h}),
			pos.Add(math.Vec3{X: h, Z: -h}),
			pos.Add(math.Vec3{X: -h, Z: -h}),
			pos.Add(math.Vec3{X: -h, Z: h}),
		}
		p.started = true
		c.SetTarget(p.corners[0])
	}
	if pos.PlanarDistance(p.corners[p.next]) < 1.0 {
		p.next = (p.next + 1) % len(p.corners)
		c.SetTarget(p.corners[p.next])
	}
	c.SetPointer(p.corners[p.next])
}

// jumper wanders and charges a jump every period seconds, holding it for
// a random share of hold.
type jumper struct {
	wander
	period float32
	hold   float32

	chargeAt  float32
	releaseAt float32
	charging  bool
}

func (j *jumper) Name() string { return ScenarioJump }

func (j *jumper) Drive(c *locomotion.Controller, clock float32, rng *rand.Rand) {
	j.wander.Drive(c, clock, rng)

	switch {
	case j.charging && clock >= j.releaseAt:
		c.ReleaseJump()
		j.charging = false
		j.chargeAt = clock + j.period
	case !j.charging && clock >= j.chargeAt && c.Body().Jump == locomotion.JumpIdle:
		c.BeginJumpCharge()
		j.charging = true
		j.releaseAt = clock + uniform(rng, 0, j.hold)
	}
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
