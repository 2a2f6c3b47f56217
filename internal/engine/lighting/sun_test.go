package lighting

import (
	"testing"

	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		lon, lat float32
		want     math.Vec3
	}{
		{0, 90, math.Vec3{Y: 1}},
		{0, 0, math.Vec3{Z: 1}},
		{90, 0, math.Vec3{X: 1}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.lon, tt.lat)
		if got.Distance(tt.want) > 1e-5 {
			t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
		}
	}
}

func TestIntensity(t *testing.T) {
	s := NewSun(0, 90)
	if got := s.Intensity(math.UnitY); math.Abs(got-(s.Ambient+s.Diffuse)) > 1e-5 {
		t.Errorf("facing sun = %v", got)
	}
	if got := s.Intensity(math.UnitY.Negate()); got != s.Ambient {
		t.Errorf("facing away = %v, want ambient %v", got, s.Ambient)
	}
}

func TestShadeLines(t *testing.T) {
	s := Sun{Direction: math.UnitX, Ambient: 0.2, Diffuse: 0.8}
	v := []terrain.LineVertex{{Position: [3]float32{0, 0, 0}, Color: [3]float32{1, 1, 1}}}

	// Flat ground with a sun on the horizon gets only ambient.
	s.ShadeLines(v, terrain.Procedural{}, terrain.KindFlat)
	if math.Abs(v[0].Color[0]-0.2) > 1e-5 {
		t.Errorf("flat shade = %v, want 0.2", v[0].Color[0])
	}

	// Ground falling toward +X leans its normal into the sun.
	v[0].Color = [3]float32{1, 1, 1}
	down := terrain.OracleFunc(func(x, z float32, _ terrain.Kind) float32 { return -x })
	s.ShadeLines(v, down, terrain.KindFlat)
	if v[0].Color[0] <= 0.2 {
		t.Errorf("sunlit slope shade = %v, want above ambient", v[0].Color[0])
	}
}
