package terrain

import "github.com/Faultbox/octoped/pkg/math"

// GridLines builds a wireframe of the ground around (centerX, centerZ) for the
// viewer. Vertices come in pairs, one pair per line segment.
func GridLines(o Oracle, kind Kind, centerX, centerZ float32, halfExtent, step float32, color [3]float32) []LineVertex {
	if step <= 0 {
		return nil
	}
	// Snap to the step so the grid does not swim as the camera follows.
	startX := snap(centerX-halfExtent, step)
	startZ := snap(centerZ-halfExtent, step)
	n := int(2*halfExtent/step) + 1

	vertices := make([]LineVertex, 0, n*n*4)
	for i := range n {
		for j := range n {
			x := startX + float32(i)*step
			z := startZ + float32(j)*step
			y := o.Height(x, z, kind)
			if i+1 < n {
				x2 := x + step
				vertices = append(vertices,
					LineVertex{Position: [3]float32{x, y, z}, Color: color},
					LineVertex{Position: [3]float32{x2, o.Height(x2, z, kind), z}, Color: color},
				)
			}
			if j+1 < n {
				z2 := z + step
				vertices = append(vertices,
					LineVertex{Position: [3]float32{x, y, z}, Color: color},
					LineVertex{Position: [3]float32{x, o.Height(x, z2, kind), z2}, Color: color},
				)
			}
		}
	}
	return vertices
}

func snap(v, step float32) float32 {
	n := int(v / step)
	if v < 0 && float32(n)*step != v {
		n--
	}
	return float32(n) * step
}

// normalEps is the central difference step for Normal.
const normalEps = 0.25

// Normal estimates the surface normal at (x, z) by central differences.
func Normal(o Oracle, x, z float32, kind Kind) math.Vec3 {
	dx := o.Height(x+normalEps, z, kind) - o.Height(x-normalEps, z, kind)
	dz := o.Height(x, z+normalEps, kind) - o.Height(x, z-normalEps, kind)
	return math.Vec3{X: -dx, Y: 2 * normalEps, Z: -dz}.Normalize()
}
