package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3ClampLength(t *testing.T) {
	v := Vec3{3, 0, 4}
	got := v.ClampLength(2.5)
	if l := got.Length(); l < 2.499 || l > 2.501 {
		t.Errorf("ClampLength(2.5).Length() = %v", l)
	}
	if short := (Vec3{1, 0, 0}).ClampLength(2.5); short != (Vec3{1, 0, 0}) {
		t.Errorf("ClampLength should not lengthen, got %v", short)
	}
}

func TestVec3RotateAround(t *testing.T) {
	got := UnitZ.RotateAround(UnitY, Pi/2)
	if got.Distance(UnitX) > 0.0001 {
		t.Errorf("RotateAround: got %v, want %v", got, UnitX)
	}
}

func TestVec3ProjectOnPlane(t *testing.T) {
	got := Vec3{1, 5, 2}.ProjectOnPlane(UnitY)
	if got != (Vec3{1, 0, 2}) {
		t.Errorf("ProjectOnPlane: got %v", got)
	}
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{0.25, 0.0625},
	}
	for _, tt := range tests {
		if got := EaseInOutCubic(tt.in); Abs(got-tt.want) > 0.0001 {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
