// Package water provides water surfaces for the terrain kinds that have one.
package water

import (
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

const (
	waveAmplitude = 0.15
	waveLength    = 6.0
	waveSpeed     = 1.2
)

// Level returns the water surface height for kind. Water is visual only;
// the character walks on the ground below it.
func Level(kind terrain.Kind) (float32, bool) {
	switch kind {
	case terrain.KindOasis:
		return -2.5, true
	case terrain.KindWaterPlanet:
		return 0, true
	default:
		return 0, false
	}
}

// Height returns the animated surface height at (x, z) for time t.
func Height(level, x, z, t float32) float32 {
	phase := (x+0.6*z)/waveLength*2*math.Pi + t*waveSpeed
	return level + waveAmplitude*math.Sin(phase)
}

// AppendSurface appends a wireframe of the water surface around
// (centerX, centerZ). Nothing is added for kinds without water.
func AppendSurface(dst []terrain.LineVertex, kind terrain.Kind, centerX, centerZ, halfExtent, step, t float32, color [3]float32) []terrain.LineVertex {
	level, ok := Level(kind)
	if !ok || step <= 0 {
		return dst
	}
	surface := terrain.OracleFunc(func(x, z float32, _ terrain.Kind) float32 {
		return Height(level, x, z, t)
	})
	return append(dst, terrain.GridLines(surface, kind, centerX, centerZ, halfExtent, step, color)...)
}
