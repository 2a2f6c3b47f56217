// Package locomotion is the procedural walking core of an octoped: it moves
// and orients the body toward a target, schedules steps for eight legs and
// solves each leg's joints every frame. It only produces data; rendering,
// input and audio consume a Frame.
package locomotion

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

// LegPose is the solved pose of one leg in world space.
type LegPose struct {
	Shoulder math.Vec3
	Joint1   math.Vec3
	Joint2   math.Vec3
	Foot     math.Vec3
	Stepping bool
}

// Footstep is emitted on the frame a foot lands.
type Footstep struct {
	Leg      int
	Position math.Vec3
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Clock         float32
	Position      math.Vec3
	Orientation   math.Quat
	Transform     math.Mat4
	HeadLocal     math.Quat
	HeadWorld     math.Quat
	HeadPosition  math.Vec3
	GazeTarget    math.Vec3
	SupportNormal math.Vec3
	Moving        bool
	Jump          JumpPhase
	Legs          [LegCount]LegPose
	Footsteps     []Footstep // valid until the next Update
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Tuning     Tuning // zero value selects DefaultTuning
	Oracle     terrain.Oracle
	Kind       terrain.Kind
	Rand       *rand.Rand
	Logger     *zap.Logger
	HeadOffset *math.Vec3
	Shared     *SharedSnapshot

	// OnMoveStateChange is called when the movement gate flips.
	OnMoveStateChange func(moving bool)
}

// Controller animates one character. It is not safe for concurrent use;
// call Update exactly once per tick. Other goroutines may read the
// SharedSnapshot.
type Controller struct {
	tuning Tuning
	oracle terrain.Oracle
	kind   terrain.Kind
	rng    *rand.Rand
	log    *zap.Logger
	shared *SharedSnapshot
	onMove func(bool)

	body    BodyState
	head    Head
	configs [LegCount]LegConfiguration
	legs    [LegCount]LegState
	sched   Scheduler

	target  math.Vec3
	pointer math.Vec3

	frame     Frame
	footsteps [LegCount]Footstep
}

// New spawns a character above (spawn.X, spawn.Z) with every foot resting on
// the ground under its rest offset and the body settled at its ride height.
func New(spawn math.Vec3, opts Options) *Controller {
	c := &Controller{
		tuning: opts.Tuning,
		oracle: opts.Oracle,
		kind:   opts.Kind,
		rng:    opts.Rand,
		log:    opts.Logger,
		shared: opts.Shared,
		onMove: opts.OnMoveStateChange,
		head:   Head{Offset: DefaultHeadOffset, Local: math.QuatIdentity()},
	}
	if c.tuning == (Tuning{}) {
		c.tuning = DefaultTuning()
	}
	if c.oracle == nil {
		c.oracle = terrain.Procedural{}
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(1, 2))
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if opts.HeadOffset != nil {
		c.head.Offset = *opts.HeadOffset
	}

	c.configs = BuildLayout(c.tuning)

	var sumY float32
	for i := range c.legs {
		p := spawn.Add(c.configs[i].RestOffset)
		p.Y = c.oracle.Height(p.X, p.Z, c.kind)
		c.legs[i].Plant(p)
		sumY += p.Y
	}

	c.body = BodyState{
		Position:      math.Vec3{X: spawn.X, Y: sumY/LegCount + c.tuning.BodyHeight, Z: spawn.Z},
		Orientation:   math.QuatIdentity(),
		SupportNormal: math.WorldUp,
	}
	c.body.GazeTarget = c.body.Position.Add(math.Forward3)
	c.target = c.body.Position
	c.pointer = c.body.GazeTarget

	c.log.Info("character spawned",
		zap.Float32("x", c.body.Position.X),
		zap.Float32("y", c.body.Position.Y),
		zap.Float32("z", c.body.Position.Z),
		zap.Stringer("terrain", c.kind),
	)

	c.fillFrame()
	c.publish()
	return c
}

// SetTarget sets the world position the body walks toward.
func (c *Controller) SetTarget(p math.Vec3) {
	c.target = p
}

// SetPointer sets the reference point idle gaze wanders around.
func (c *Controller) SetPointer(p math.Vec3) {
	c.pointer = p
}

// SetTerrain switches the terrain kind queried from the oracle.
func (c *Controller) SetTerrain(kind terrain.Kind) {
	c.kind = kind
}

// SetOracle replaces the height oracle, for example with a freshly sampled
// heightmap around the character.
func (c *Controller) SetOracle(o terrain.Oracle) {
	if o != nil {
		c.oracle = o
	}
}

// BeginJumpCharge starts charging a jump. Ignored while a jump is already
// charging or in flight.
func (c *Controller) BeginJumpCharge() {
	if c.body.beginCharge() {
		c.log.Debug("jump charge started", zap.Float32("clock", c.body.Clock))
	}
}

// ReleaseJump launches a charging jump. Ignored when not charging.
func (c *Controller) ReleaseJump() {
	charge, ok := c.body.release()
	if !ok {
		return
	}
	c.log.Debug("jump released",
		zap.Float32("charge", charge),
		zap.Float32("vertical_velocity", c.body.VerticalVelocity),
	)
}

// SetTuning replaces the tuning. Leg geometry is rebuilt; feet stay where
// they are and catch up through normal stepping.
func (c *Controller) SetTuning(t Tuning) {
	c.tuning = t
	c.configs = BuildLayout(t)
	c.log.Info("tuning updated",
		zap.Float32("speed", t.Speed),
		zap.Float32("body_height", t.BodyHeight),
		zap.Int("max_active_steps", t.MaxActiveSteps),
	)
}

// Tuning returns the tuning in effect.
func (c *Controller) Tuning() Tuning { return c.tuning }

// Body returns a copy of the body state.
func (c *Controller) Body() BodyState { return c.body }

// Legs returns a copy of every leg's state.
func (c *Controller) Legs() [LegCount]LegState { return c.legs }

// Configurations returns the current leg geometry.
func (c *Controller) Configurations() [LegCount]LegConfiguration { return c.configs }

// Frame returns the output of the last Update. The pointer stays valid but
// its contents are overwritten by the next Update.
func (c *Controller) Frame() *Frame { return &c.frame }

// Update advances the simulation by dt seconds.
func (c *Controller) Update(dt float32) {
	t := &c.tuning
	b := &c.body
	b.Clock += dt

	wasMoving := b.Moving
	speed, dist := b.steer(c.target, dt, t)
	if b.Moving != wasMoving && c.onMove != nil {
		c.onMove(b.Moving)
	}

	if b.settle(&c.legs, dt, t, c.rng) {
		c.log.Debug("landed", zap.Float32("y", b.Position.Y))
	}
	b.orient(&c.legs, dt, t)

	body := math.Compose(b.Position, b.Orientation)

	res := c.sched.Schedule(&GaitInput{
		Body:     body,
		Velocity: b.Velocity,
		Speed:    speed,
		Tuning:   t,
		Oracle:   c.oracle,
		Kind:     c.kind,
		Rand:     c.rng,
	}, &c.configs, &c.legs)
	if res.Overrides > 0 {
		c.log.Debug("critical step override", zap.Int("legs", res.Overrides))
	}

	c.frame.Footsteps = c.footsteps[:0]
	for i := range c.legs {
		duration := t.StepDuration
		if c.configs[i].IsFront() {
			duration *= t.FrontLegStepDurationMult
		}
		if c.legs[i].Advance(dt, duration) {
			c.frame.Footsteps = append(c.frame.Footsteps, Footstep{Leg: i, Position: c.legs[i].Current})
		}
	}

	c.head.update(dt, b, &gazeInput{
		moving:  b.Moving,
		dist:    dist,
		target:  c.target,
		pointer: c.pointer,
		oracle:  c.oracle,
		kind:    c.kind,
		rng:     c.rng,
	})

	c.fillFrame()
	c.publish()
}

// fillFrame solves every leg and copies the body state into the frame.
func (c *Controller) fillFrame() {
	b := &c.body
	body := math.Compose(b.Position, b.Orientation)
	up := b.Orientation.Up()

	f := &c.frame
	f.Clock = b.Clock
	f.Position = b.Position
	f.Orientation = b.Orientation
	f.Transform = body
	f.HeadLocal = c.head.Local
	f.HeadWorld = c.head.World(b.Orientation)
	f.HeadPosition = body.TransformVec3(c.head.Offset)
	f.GazeTarget = b.GazeTarget
	f.SupportNormal = b.SupportNormal
	f.Moving = b.Moving
	f.Jump = b.Jump

	for i := range c.legs {
		cfg := &c.configs[i]
		shoulder := body.TransformVec3(cfg.ShoulderOffset)
		foot := ClampReach(shoulder, c.legs[i].Current, cfg.MaxReach())
		hint := shoulder.Sub(b.Position).Normalize()
		j1, j2 := SolveLeg(shoulder, foot, cfg.L1, cfg.L2, cfg.L3, up, hint)
		f.Legs[i] = LegPose{
			Shoulder: shoulder,
			Joint1:   j1,
			Joint2:   j2,
			Foot:     foot,
			Stepping: c.legs[i].Stepping,
		}
	}
}

func (c *Controller) publish() {
	if c.shared == nil {
		return
	}
	c.shared.Store(Snapshot{
		Position:    c.body.Position,
		Orientation: c.body.Orientation,
		Moving:      c.body.Moving,
		Jump:        c.body.Jump,
		Clock:       c.body.Clock,
	})
}
