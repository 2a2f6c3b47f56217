// Package audio plays footstep sounds for the viewer.
//
// Footsteps are synthesized rather than loaded: a short pitched thump with a
// noise transient, attenuated by distance from the listener.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

const (
	defaultMaxVoices = 6
	referenceDist    = 6.0  // distance at which a footstep is at half gain
	hearingDist      = 60.0 // beyond this footsteps are dropped
	thumpDuration    = 90 * time.Millisecond
)

// Manager mixes footstep voices onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	sfxMixer  *beep.Mixer
	active    int
	maxVoices int
	rng       *rand.Rand
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
		maxVoices:    defaultMaxVoices,
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x0c7)),
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close stops all sound. The speaker is cleared outside m.mu because voice
// callbacks take m.mu while the speaker lock is held.
func (m *Manager) Close() {
	m.mu.Lock()
	wasInit := m.initialized
	m.initialized = false
	m.mu.Unlock()

	if wasInit {
		speaker.Clear()
	}

	m.mu.Lock()
	m.active = 0
	m.mu.Unlock()
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the footstep volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences all output without forgetting the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the footstep volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Footstep plays one footstep heard from distance units away. Steps that are
// inaudible, or that would exceed the voice limit, are dropped silently.
func (m *Manager) Footstep(distance float64) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	gain := m.masterVolume * m.sfxVolLevel * attenuation(distance)
	if m.muted || gain <= 0 || m.active >= m.maxVoices {
		m.mu.Unlock()
		return nil
	}
	m.active++
	pitch := 0.85 + m.rng.Float64()*0.3
	seed := m.rng.Uint64()
	m.mu.Unlock()

	voice := &effects.Volume{
		Streamer: newThump(m.sampleRate, thumpDuration, pitch, seed),
		Base:     2,
		Volume:   volumeToDb(gain),
	}

	speaker.Lock()
	m.sfxMixer.Add(beep.Seq(voice, beep.Callback(m.voiceDone)))
	speaker.Unlock()
	return nil
}

func (m *Manager) voiceDone() {
	m.mu.Lock()
	if m.active > 0 {
		m.active--
	}
	m.mu.Unlock()
}

// attenuation is an inverse-square falloff normalized to 1 at the listener
// and 0.5 at referenceDist.
func attenuation(distance float64) float64 {
	if distance >= hearingDist {
		return 0
	}
	if distance <= 0 {
		return 1
	}
	r := distance / referenceDist
	return 1 / (1 + r*r)
}

// volumeToDb converts a 0-1 volume to the log2 scale effects.Volume uses with
// Base 2: vol=1 -> 0, vol=0.5 -> -1.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log10(vol) / math.Log10(2)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
