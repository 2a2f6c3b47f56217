package debug

import (
	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/pkg/math"
)

type footprint struct {
	pos math.Vec3
	age float32
}

// Trail remembers recent footsteps and fades them out. It is a fixed ring:
// once full, the oldest mark is overwritten.
type Trail struct {
	marks    []footprint
	next     int
	Lifetime float32
	Size     float32
}

// NewTrail creates a trail holding up to capacity marks.
func NewTrail(capacity int, lifetime float32) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{
		marks:    make([]footprint, 0, capacity),
		Lifetime: lifetime,
		Size:     0.25,
	}
}

// Add records the footsteps of one frame.
func (t *Trail) Add(steps []locomotion.Footstep) {
	for _, s := range steps {
		m := footprint{pos: s.Position}
		if len(t.marks) < cap(t.marks) {
			t.marks = append(t.marks, m)
			continue
		}
		t.marks[t.next] = m
		t.next = (t.next + 1) % len(t.marks)
	}
}

// Update ages every mark.
func (t *Trail) Update(dt float32) {
	for i := range t.marks {
		t.marks[i].age += dt
	}
}

// Len returns the number of marks still visible.
func (t *Trail) Len() int {
	n := 0
	for _, m := range t.marks {
		if m.age < t.Lifetime {
			n++
		}
	}
	return n
}

// Append draws each visible mark as a flat cross whose color fades with age.
func (t *Trail) Append(dst []terrain.LineVertex, color [3]float32) []terrain.LineVertex {
	for _, m := range t.marks {
		if m.age >= t.Lifetime {
			continue
		}
		fade := 1 - m.age/t.Lifetime
		c := [3]float32{color[0] * fade, color[1] * fade, color[2] * fade}
		p := m.pos.Add(math.Vec3{Y: 0.02})
		dst = AppendSegment(dst, p.Sub(math.UnitX.Scale(t.Size)), p.Add(math.UnitX.Scale(t.Size)), c)
		dst = AppendSegment(dst, p.Sub(math.UnitZ.Scale(t.Size)), p.Add(math.UnitZ.Scale(t.Size)), c)
	}
	return dst
}
