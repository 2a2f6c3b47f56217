// Package picking turns screen clicks into points on the ground.
package picking

import (
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: nearWorld, Direction: farWorld.Sub(nearWorld).Normalize()}
}

func unproject(inv math.Mat4, ndc math.Vec4) math.Vec3 {
	w := inv.MulVec4(ndc)
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

const (
	marchStep       = 0.5
	bisectionRounds = 12
)

// IntersectTerrain marches the ray against the height oracle and refines
// the first crossing by bisection. It gives up after maxDist.
func (r Ray) IntersectTerrain(o terrain.Oracle, kind terrain.Kind, maxDist float32) (math.Vec3, bool) {
	above := func(t float32) bool {
		p := r.At(t)
		return p.Y > o.Height(p.X, p.Z, kind)
	}

	if !above(0) {
		return r.Origin.WithY(o.Height(r.Origin.X, r.Origin.Z, kind)), true
	}

	prev := float32(0)
	for t := float32(marchStep); t <= maxDist; t += marchStep {
		if above(t) {
			prev = t
			continue
		}
		lo, hi := prev, t
		for range bisectionRounds {
			mid := (lo + hi) / 2
			if above(mid) {
				lo = mid
			} else {
				hi = mid
			}
		}
		p := r.At(hi)
		return p.WithY(o.Height(p.X, p.Z, kind)), true
	}
	return math.Vec3{}, false
}
