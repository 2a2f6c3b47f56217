package locomotion

import (
	"sync"

	"github.com/Faultbox/octoped/pkg/math"
)

// Snapshot is the per-frame view of a character that other goroutines and
// sibling systems (follow camera, paired characters) may read.
type Snapshot struct {
	Position    math.Vec3
	Orientation math.Quat
	Moving      bool
	Jump        JumpPhase
	Clock       float32
}

// SharedSnapshot holds the latest Snapshot. The controller is its only writer.
type SharedSnapshot struct {
	mu   sync.RWMutex
	snap Snapshot
}

// Store publishes s.
func (s *SharedSnapshot) Store(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Load returns the most recently published Snapshot.
func (s *SharedSnapshot) Load() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
