package debug

import (
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/pkg/math"
)

func TestAppendBox(t *testing.T) {
	white := [3]float32{1, 1, 1}
	v := AppendBox(nil, math.Translate(10, 0, 0), math.Vec3{X: 1, Y: 2, Z: 3}, white)
	if len(v) != 24 {
		t.Fatalf("vertex count = %d, want 24", len(v))
	}
	for _, p := range v {
		x, y, z := p.Position[0], p.Position[1], p.Position[2]
		if (x != 9 && x != 11) || (y != -2 && y != 2) || (z != -3 && z != 3) {
			t.Errorf("corner %v is not on the translated box", p.Position)
		}
	}
}

func TestAppendFrameVertexCount(t *testing.T) {
	c := locomotion.New(math.Vec3{}, locomotion.Options{})
	c.Update(1.0 / 60)
	f := c.Frame()

	v := AppendFrame(nil, f, ShapeFor(c.Tuning()), DefaultPalette)
	// two boxes, four lines from the body, one gaze line, eight legs of
	// three segments plus two joint crosses
	want := 2*24 + 4*2 + 2 + locomotion.LegCount*(3*2+2*6)
	if len(v) != want {
		t.Errorf("vertex count = %d, want %d", len(v), want)
	}
}

func TestSteppingLegColor(t *testing.T) {
	leg := locomotion.LegPose{Stepping: true}
	v := AppendLeg(nil, &leg, DefaultPalette)
	if v[0].Color != DefaultPalette.LegStepping {
		t.Errorf("stepping leg color = %v", v[0].Color)
	}
	leg.Stepping = false
	v = AppendLeg(v[:0], &leg, DefaultPalette)
	if v[0].Color != DefaultPalette.Leg {
		t.Errorf("planted leg color = %v", v[0].Color)
	}
}

func TestTrailRingAndFade(t *testing.T) {
	tr := NewTrail(2, 1)
	tr.Add([]locomotion.Footstep{
		{Leg: 0, Position: math.Vec3{X: 1}},
		{Leg: 1, Position: math.Vec3{X: 2}},
		{Leg: 2, Position: math.Vec3{X: 3}},
	})
	if tr.Len() != 2 {
		t.Fatalf("len = %d, want 2", tr.Len())
	}
	// The oldest mark (x=1) was overwritten.
	for _, m := range tr.marks {
		if m.pos.X == 1 {
			t.Error("oldest footprint should have been overwritten")
		}
	}

	tr.Update(0.5)
	v := tr.Append(nil, [3]float32{1, 1, 1})
	if len(v) != 2*4 {
		t.Fatalf("vertex count = %d, want 8", len(v))
	}
	if c := v[0].Color[0]; math.Abs(c-0.5) > 1e-6 {
		t.Errorf("faded color = %v, want 0.5", c)
	}

	tr.Update(0.5)
	if tr.Len() != 0 {
		t.Errorf("len after lifetime = %d, want 0", tr.Len())
	}
	if v := tr.Append(nil, [3]float32{1, 1, 1}); len(v) != 0 {
		t.Errorf("expired marks drawn: %d vertices", len(v))
	}
}

func TestScreenshotFlipsRows(t *testing.T) {
	dir := t.TempDir()
	s := NewScreenshotter(dir, "octoped")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue (OpenGL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := s.Capture(pixels, 1, 2)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if b == 0 || r != 0 {
		t.Errorf("top pixel should be blue, got r=%d b=%d", r, b)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red, got r=%d b=%d", r, b)
	}
}

func TestScreenshotSizeMismatch(t *testing.T) {
	s := NewScreenshotter(t.TempDir(), "x")
	if _, err := s.Capture(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}
