// Package config handles viewer and simulation configuration loading and management.
package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/internal/engine/terrain"
)

// Config holds all settings.
type Config struct {
	Window    WindowConfig      `yaml:"window"`
	Audio     AudioConfig       `yaml:"audio"`
	Character locomotion.Tuning `yaml:"character"`
	Terrain   TerrainConfig     `yaml:"terrain"`
	Sim       SimConfig         `yaml:"sim"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display and rendering settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// TerrainConfig selects the ground and how much of it the viewer draws.
type TerrainConfig struct {
	Kind       terrain.Kind `yaml:"kind"`
	GridRadius float32      `yaml:"grid_radius"` // half extent of the drawn grid
	GridStep   float32      `yaml:"grid_step"`
	CacheCells int          `yaml:"cache_cells"` // heightmap samples per axis, 0 disables the cache
	CacheStep  float32      `yaml:"cache_step"`
}

// SimConfig drives the headless runner.
type SimConfig struct {
	Instances int           `yaml:"instances"`
	Duration  time.Duration `yaml:"duration"`
	Step      time.Duration `yaml:"step"`
	Seed      uint64        `yaml:"seed"`
	Scenario  string        `yaml:"scenario"`
	Report    string        `yaml:"report"` // output path, empty for stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.6,
			Muted:        false,
		},
		Character: locomotion.DefaultTuning(),
		Terrain: TerrainConfig{
			Kind:       terrain.KindDunes,
			GridRadius: 30,
			GridStep:   1,
			CacheCells: 0,
			CacheStep:  0.5,
		},
		Sim: SimConfig{
			Instances: 4,
			Duration:  60 * time.Second,
			Step:      time.Second / 60,
			Seed:      1,
			Scenario:  "wander",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	err := c.Character.Validate()
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Terrain.GridStep <= 0 {
		err = multierr.Append(err, fmt.Errorf("terrain grid_step must be > 0, got %v", c.Terrain.GridStep))
	}
	if c.Terrain.CacheCells < 0 || (c.Terrain.CacheCells > 0 && c.Terrain.CacheStep <= 0) {
		err = multierr.Append(err, fmt.Errorf("terrain cache %d cells of %v is invalid", c.Terrain.CacheCells, c.Terrain.CacheStep))
	}
	if c.Sim.Instances < 1 {
		err = multierr.Append(err, fmt.Errorf("sim instances must be >= 1, got %d", c.Sim.Instances))
	}
	if c.Sim.Step <= 0 || c.Sim.Duration < c.Sim.Step {
		err = multierr.Append(err, fmt.Errorf("sim step %v and duration %v are invalid", c.Sim.Step, c.Sim.Duration))
	}
	return err
}
