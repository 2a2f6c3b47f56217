package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep/v2"
)

// thump is a finite streamer: a sine that drops an octave over its length,
// plus a noise click, under an exponential envelope.
type thump struct {
	sampleRate beep.SampleRate
	total      int
	pos        int
	phase      float64
	pitch      float64
	noise      *rand.Rand
}

func newThump(sr beep.SampleRate, d time.Duration, pitch float64, seed uint64) *thump {
	return &thump{
		sampleRate: sr,
		total:      sr.N(d),
		pitch:      pitch,
		noise:      rand.New(rand.NewPCG(seed, seed^0x5eed)),
	}
}

func (t *thump) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	rate := float64(t.sampleRate)
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		u := float64(t.pos) / float64(t.total)
		freq := t.pitch * (110 - 55*u)
		t.phase += 2 * math.Pi * freq / rate

		env := math.Exp(-6 * u)
		click := 0.0
		if u < 0.08 {
			click = (t.noise.Float64()*2 - 1) * (1 - u/0.08) * 0.35
		}
		v := (0.65*math.Sin(t.phase) + click) * env

		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *thump) Err() error { return nil }
