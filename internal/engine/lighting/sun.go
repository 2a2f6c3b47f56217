// Package lighting shades viewer geometry with a single directional sun.
package lighting

import (
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

// Sun is a directional light with an ambient floor.
type Sun struct {
	Direction math.Vec3 // normalized, pointing toward the sun
	Ambient   float32
	Diffuse   float32
}

// DefaultSun lights from the upper front-left, low enough to bring out dunes.
var DefaultSun = NewSun(135, 40)

// NewSun builds a sun from longitude (rotation around Y) and latitude
// (elevation above the horizon), both in degrees.
func NewSun(longitude, latitude float32) Sun {
	return Sun{
		Direction: SunDirection(longitude, latitude),
		Ambient:   0.35,
		Diffuse:   0.75,
	}
}

// SunDirection converts longitude/latitude angles in degrees to a direction
// vector pointing toward the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * math.Pi / 180
	lat := latitude * math.Pi / 180

	return math.Vec3{
		X: math.Cos(lat) * math.Sin(lon),
		Y: math.Sin(lat),
		Z: math.Cos(lat) * math.Cos(lon),
	}
}

// Intensity is the Lambert term for a surface normal, never below ambient.
func (s Sun) Intensity(normal math.Vec3) float32 {
	return s.Ambient + s.Diffuse*math.Max(0, normal.Dot(s.Direction))
}

// ShadeLines scales every vertex color by the light falling on the ground
// below it. Vertices are expected to lie on the terrain.
func (s Sun) ShadeLines(vertices []terrain.LineVertex, o terrain.Oracle, kind terrain.Kind) {
	for i := range vertices {
		p := vertices[i].Position
		k := math.Min(1, s.Intensity(terrain.Normal(o, p[0], p[2], kind)))
		c := &vertices[i].Color
		c[0] *= k
		c[1] *= k
		c[2] *= k
	}
}
