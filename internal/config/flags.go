package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagTerrain    = flag.String("terrain", "", "Terrain kind (dunes, ice, canyon, ...)")
	flagInstances  = flag.Int("instances", 0, "Number of simulated characters")
	flagDuration   = flag.Duration("duration", 0, "Simulated time per character")
	flagSeed       = flag.Uint64("seed", 0, "Random seed")
	flagScenario   = flag.String("scenario", "", "Simulation scenario (wander, patrol, jump)")
	flagReport     = flag.String("report", "", "Write the simulation report to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Window.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagTerrain != "" {
		if err := cfg.Terrain.Kind.UnmarshalText([]byte(*flagTerrain)); err != nil {
			return err
		}
	}
	if *flagInstances > 0 {
		cfg.Sim.Instances = *flagInstances
	}
	if *flagDuration > 0 {
		cfg.Sim.Duration = *flagDuration
	}
	if *flagSeed != 0 {
		cfg.Sim.Seed = *flagSeed
	}
	if *flagScenario != "" {
		cfg.Sim.Scenario = *flagScenario
	}
	if *flagReport != "" {
		cfg.Sim.Report = *flagReport
	}
	return nil
}
