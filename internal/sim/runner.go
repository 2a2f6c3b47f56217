// Package sim runs locomotion controllers headless at a fixed step, checks
// per-frame invariants and summarizes each run in a report.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/octoped/internal/config"
	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

// ErrInvariant is wrapped by the error Run returns when any frame of any
// instance broke an invariant.
var ErrInvariant = errors.New("invariant violated")

const (
	cancelCheckEvery = 600 // frames between context checks
	spawnSpread      = 200
)

// Runner simulates several independent characters in parallel.
type Runner struct {
	cfg     config.SimConfig
	tuning  locomotion.Tuning
	terrain config.TerrainConfig
	source  terrain.Oracle
	log     *zap.Logger
	workers int
}

// New creates a runner from the loaded settings.
func New(cfg *config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg.Sim,
		tuning:  cfg.Character,
		terrain: cfg.Terrain,
		source:  terrain.Procedural{},
		log:     log,
		workers: runtime.NumCPU(),
	}
}

// SetOracle replaces the ground source, mainly for tests.
func (r *Runner) SetOracle(o terrain.Oracle) {
	r.source = o
}

// Run simulates every instance to completion. The report is returned even
// when invariants failed; the error then wraps ErrInvariant once per
// failing instance.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if _, err := NewScenario(r.cfg.Scenario); err != nil {
		return nil, err
	}

	report := &Report{
		Scenario:  r.cfg.Scenario,
		Terrain:   r.terrain.Kind,
		Seed:      r.cfg.Seed,
		Duration:  r.cfg.Duration,
		Step:      r.cfg.Step,
		Instances: make([]InstanceReport, r.cfg.Instances),
	}

	r.log.Info("simulation started",
		zap.String("scenario", r.cfg.Scenario),
		zap.Int("instances", r.cfg.Instances),
		zap.Duration("duration", r.cfg.Duration),
		zap.Stringer("terrain", r.terrain.Kind),
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range report.Instances {
		g.Go(func() error {
			res, err := r.runInstance(ctx, i)
			if err != nil {
				return err
			}
			report.Instances[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}

	var err error
	for _, inst := range report.Instances {
		if inst.ViolationCount > 0 {
			err = multierr.Append(err, fmt.Errorf("instance %s: %d violations: %w", inst.ID, inst.ViolationCount, ErrInvariant))
		}
	}
	report.Passed = err == nil
	report.Elapsed = time.Since(start)

	r.log.Info("simulation finished",
		zap.Bool("passed", report.Passed),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, err
}

// runInstance owns one controller for its whole life; nothing else touches
// it, so instances run without locking.
func (r *Runner) runInstance(ctx context.Context, index int) (InstanceReport, error) {
	rng := rand.New(rand.NewPCG(r.cfg.Seed, uint64(index)))
	scenario, err := NewScenario(r.cfg.Scenario)
	if err != nil {
		return InstanceReport{}, err
	}

	spawn := math.Vec3{
		X: uniform(rng, -spawnSpread, spawnSpread),
		Z: uniform(rng, -spawnSpread, spawnSpread),
	}
	oracle := terrain.Cached(r.source, r.terrain.Kind, spawn.X, spawn.Z, r.terrain.CacheCells, r.terrain.CacheStep)

	res := InstanceReport{
		ID:       uuid.New().String(),
		Index:    index,
		Scenario: scenario.Name(),
		Spawn:    spawn,
	}
	log := r.log.With(zap.String("instance", res.ID), zap.Int("index", index))

	ctrl := locomotion.New(spawn, locomotion.Options{
		Tuning: r.tuning,
		Oracle: oracle,
		Kind:   r.terrain.Kind,
		Rand:   rng,
		Logger: log,
		OnMoveStateChange: func(bool) {
			res.MoveStateChanges++
		},
	})
	configs := ctrl.Configurations()

	dt := float32(r.cfg.Step.Seconds())
	frames := int(r.cfg.Duration / r.cfg.Step)
	prev := ctrl.Frame().Position
	prevJump := locomotion.JumpIdle
	var violations []Violation

	for n := range frames {
		if n%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return InstanceReport{}, err
			}
		}

		scenario.Drive(ctrl, ctrl.Body().Clock, rng)
		ctrl.Update(dt)
		f := ctrl.Frame()

		res.Frames++
		res.Footsteps += len(f.Footsteps)
		res.Distance += f.Position.PlanarDistance(prev)
		prev = f.Position

		stepping := 0
		for i := range f.Legs {
			if f.Legs[i].Stepping {
				stepping++
			}
		}
		res.MaxStepping = max(res.MaxStepping, stepping)

		if f.Jump != prevJump {
			switch f.Jump {
			case locomotion.JumpAirborne:
				res.Jumps++
			case locomotion.JumpIdle:
				if prevJump == locomotion.JumpAirborne {
					res.Landings++
				}
			}
			prevJump = f.Jump
		}

		before := len(violations)
		violations = checkFrame(violations, n, f, &configs)
		if len(violations) > before {
			res.ViolationCount += len(violations) - before
			if before == 0 {
				log.Warn("invariant violated", zap.Stringer("violation", violations[0]))
			}
			if len(violations) > maxRecorded {
				violations = violations[:maxRecorded]
			}
		}
	}

	res.Final = ctrl.Frame().Position
	res.Violations = violations
	log.Debug("instance finished",
		zap.Int("frames", res.Frames),
		zap.Int("footsteps", res.Footsteps),
		zap.Int("violations", res.ViolationCount),
	)
	return res, nil
}
