package game

import (
	"github.com/Faultbox/octoped/internal/engine/debug"
	"github.com/Faultbox/octoped/internal/engine/lighting"
	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/internal/engine/picking"
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/internal/engine/water"
	"github.com/Faultbox/octoped/pkg/math"
)

var (
	gridColor   = [3]float32{0.32, 0.28, 0.22}
	targetColor = [3]float32{0.2, 1, 0.4}
	stepColor   = [3]float32{1, 0.55, 0.15}
	gazeColor   = [3]float32{0.3, 0.8, 0.8}
	waterColor  = [3]float32{0.15, 0.35, 0.6}
)

type sceneInput struct {
	Frame      *locomotion.Frame
	Oracle     terrain.Oracle
	Kind       terrain.Kind
	Focus      math.Vec3
	GridRadius float32
	GridStep   float32
	Target     math.Vec3
	HasTarget  bool
	Shape      debug.BodyShape
	Trail      *debug.Trail
	Sun        lighting.Sun
}

// composeScene appends every line drawn in one viewer frame.
func composeScene(dst []terrain.LineVertex, in sceneInput) []terrain.LineVertex {
	start := len(dst)
	dst = append(dst, terrain.GridLines(in.Oracle, in.Kind, in.Focus.X, in.Focus.Z, in.GridRadius, in.GridStep, gridColor)...)
	in.Sun.ShadeLines(dst[start:], in.Oracle, in.Kind)
	dst = water.AppendSurface(dst, in.Kind, in.Focus.X, in.Focus.Z, in.GridRadius, in.GridStep*2, in.Frame.Clock, waterColor)
	dst = in.Trail.Append(dst, stepColor)
	if in.HasTarget {
		dst = debug.AppendCross(dst, in.Target.Add(math.Vec3{Y: 0.3}), 0.4, targetColor)
	}
	dst = debug.AppendCross(dst, in.Frame.GazeTarget, 0.2, gazeColor)
	return debug.AppendFrame(dst, in.Frame, in.Shape, debug.DefaultPalette)
}

// pickGround casts the cursor ray against the terrain.
func pickGround(x, y, width, height int, viewProj math.Mat4, o terrain.Oracle, kind terrain.Kind) (math.Vec3, bool) {
	if width <= 0 || height <= 0 {
		return math.Vec3{}, false
	}
	ray := picking.ScreenToRay(float32(x), float32(y), float32(width), float32(height), viewProj.Inverse())
	return ray.IntersectTerrain(o, kind, pickDistance)
}
