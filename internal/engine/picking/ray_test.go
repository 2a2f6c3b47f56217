package picking

import (
	"testing"

	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

func TestScreenToRayCenterHitsFocus(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 10, Z: 10}
	view := math.LookAt(eye, math.Vec3{}, math.WorldUp)
	proj := math.Perspective(math.Pi/3, 800.0/600.0, 0.5, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(400, 300, 800, 600, inv)
	x, z, ok := r.IntersectPlaneY(0)
	if !ok {
		t.Fatal("center ray should hit the ground plane")
	}
	if math.Abs(x) > 0.05 || math.Abs(z) > 0.05 {
		t.Errorf("hit = (%v, %v), want origin", x, z)
	}
	if d := r.Direction.Length(); math.Abs(d-1) > 1e-4 {
		t.Errorf("direction length = %v, want 1", d)
	}
}

func TestIntersectPlaneYMisses(t *testing.T) {
	up := Ray{Origin: math.Vec3{Y: 1}, Direction: math.UnitY}
	if _, _, ok := up.IntersectPlaneY(0); ok {
		t.Error("ray pointing away should miss")
	}
	flat := Ray{Origin: math.Vec3{Y: 1}, Direction: math.UnitX}
	if _, _, ok := flat.IntersectPlaneY(0); ok {
		t.Error("parallel ray should miss")
	}
}

func TestIntersectTerrain(t *testing.T) {
	slope := terrain.OracleFunc(func(x, z float32, _ terrain.Kind) float32 { return 0.5 * x })

	tests := []struct {
		name   string
		ray    Ray
		oracle terrain.Oracle
		want   math.Vec3
		hit    bool
	}{
		{
			name:   "straight down on flat",
			ray:    Ray{Origin: math.Vec3{X: 3, Y: 10, Z: -2}, Direction: math.UnitY.Negate()},
			oracle: terrain.Procedural{},
			want:   math.Vec3{X: 3, Y: 0, Z: -2},
			hit:    true,
		},
		{
			name:   "horizontal into slope",
			ray:    Ray{Origin: math.Vec3{X: -10, Y: 2}, Direction: math.UnitX},
			oracle: slope,
			want:   math.Vec3{X: 4, Y: 2},
			hit:    true,
		},
		{
			name:   "origin below ground",
			ray:    Ray{Origin: math.Vec3{X: 10, Y: 0}, Direction: math.UnitX},
			oracle: slope,
			want:   math.Vec3{X: 10, Y: 5},
			hit:    true,
		},
		{
			name:   "pointing at the sky",
			ray:    Ray{Origin: math.Vec3{Y: 5}, Direction: math.UnitY},
			oracle: terrain.Procedural{},
			hit:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectTerrain(tt.oracle, terrain.KindFlat, 100)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && got.Distance(tt.want) > 0.01 {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}
