// Package debug builds line geometry for visualizing the simulation.
//
// Every builder appends vertex pairs to dst and returns the extended slice,
// so a viewer can reuse one buffer across frames.
package debug

import (
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

// boxEdges indexes the 8 corners of a box into its 12 edges.
var boxEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	// Top face
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	// Vertical edges
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// AppendBox appends the 12 edges of a box with the given half extents,
// placed by transform.
func AppendBox(dst []terrain.LineVertex, transform math.Mat4, half math.Vec3, color [3]float32) []terrain.LineVertex {
	var corners [8]math.Vec3
	for i := range corners {
		local := math.Vec3{X: -half.X, Y: -half.Y, Z: -half.Z}
		if i&1 != 0 {
			local.X = half.X
		}
		if i&2 != 0 {
			local.Z = half.Z
		}
		if i&4 != 0 {
			local.Y = half.Y
		}
		corners[i] = transform.TransformVec3(local)
	}
	for _, e := range boxEdges {
		dst = AppendSegment(dst, corners[e[0]], corners[e[1]], color)
	}
	return dst
}

// AppendSegment appends a single line from a to b.
func AppendSegment(dst []terrain.LineVertex, a, b math.Vec3, color [3]float32) []terrain.LineVertex {
	return append(dst,
		terrain.LineVertex{Position: a.Array(), Color: color},
		terrain.LineVertex{Position: b.Array(), Color: color},
	)
}

// AppendCross appends a three-axis marker centered at p.
func AppendCross(dst []terrain.LineVertex, p math.Vec3, size float32, color [3]float32) []terrain.LineVertex {
	dst = AppendSegment(dst, p.Sub(math.UnitX.Scale(size)), p.Add(math.UnitX.Scale(size)), color)
	dst = AppendSegment(dst, p.Sub(math.UnitY.Scale(size)), p.Add(math.UnitY.Scale(size)), color)
	return AppendSegment(dst, p.Sub(math.UnitZ.Scale(size)), p.Add(math.UnitZ.Scale(size)), color)
}
