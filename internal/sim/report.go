package sim

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

// Report summarizes one simulation run.
type Report struct {
	Scenario  string           `yaml:"scenario"`
	Terrain   terrain.Kind     `yaml:"terrain"`
	Seed      uint64           `yaml:"seed"`
	Duration  time.Duration    `yaml:"duration"`
	Step      time.Duration    `yaml:"step"`
	Elapsed   time.Duration    `yaml:"elapsed"`
	Passed    bool             `yaml:"passed"`
	Instances []InstanceReport `yaml:"instances"`
}

// InstanceReport holds the statistics of one simulated character.
type InstanceReport struct {
	ID               string      `yaml:"id"`
	Index            int         `yaml:"index"`
	Scenario         string      `yaml:"scenario"`
	Spawn            math.Vec3   `yaml:"spawn,flow"`
	Final            math.Vec3   `yaml:"final,flow"`
	Frames           int         `yaml:"frames"`
	Distance         float32     `yaml:"distance"`
	Footsteps        int         `yaml:"footsteps"`
	MaxStepping      int         `yaml:"max_stepping"`
	Jumps            int         `yaml:"jumps"`
	Landings         int         `yaml:"landings"`
	MoveStateChanges int         `yaml:"move_state_changes"`
	ViolationCount   int         `yaml:"violation_count"`
	Violations       []Violation `yaml:"violations,omitempty"`
}

// Write encodes the report as YAML.
func (r *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// SaveTo writes the report to path, creating parent directories.
func (r *Report) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}

// LoadReport reads a report written by SaveTo.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
