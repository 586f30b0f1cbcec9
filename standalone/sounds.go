package standalone

import (
	"bytes"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

// Sound identifies a UI chime
type Sound int

const (
	SoundMove Sound = iota
	SoundLaunch
	SoundFavorite
)

type note struct {
	freq   float64
	start  float64 // seconds
	volume float64
}

// Sounds plays short synthesized chimes through oto. Audio that cannot be
// opened is reported once and then ignored.
type Sounds struct {
	mu      sync.Mutex
	data    map[Sound][]byte
	player  *oto.Player
	failed  bool
	enabled bool
	logger  *zap.Logger
}

// NewSounds renders every chime up front
func NewSounds(logger *zap.Logger) *Sounds {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sounds{
		data: map[Sound][]byte{
			SoundMove:     synthesize([]note{{880, 0, 0.25}}, 0.06, 0.02, 0.04),
			SoundLaunch:   synthesize([]note{{261.63, 0, 0.4}, {329.63, 0.08, 0.3}, {392.00, 0.16, 0.3}, {523.25, 0.24, 0.25}}, 0.8, 0.05, 0.6),
			SoundFavorite: synthesize([]note{{659.25, 0, 0.3}, {987.77, 0.07, 0.25}}, 0.35, 0.02, 0.25),
		},
		enabled: true,
		logger:  logger,
	}
}

// SetEnabled turns playback on or off. Muting the preview mutes the
// chimes as well.
func (s *Sounds) SetEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = on
}

// Play starts the chime, cutting off the previous one
func (s *Sounds) Play(kind Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.failed {
		return
	}
	data := s.data[kind]
	if len(data) == 0 {
		return
	}

	ctx, err := ensureOtoContext()
	if err != nil {
		s.failed = true
		s.logger.Warn("UI sounds disabled", zap.Error(err))
		return
	}
	if s.player != nil {
		s.player.Close()
	}
	s.player = ctx.NewPlayer(bytes.NewReader(data))
	s.player.Play()
}

// Close releases the player
func (s *Sounds) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}

// synthesize renders notes as 48kHz stereo S16LE. Each note fades in over
// attack seconds and decays exponentially over decay seconds.
func synthesize(notes []note, duration, attack, decay float64) []byte {
	numSamples := int(float64(audioSampleRate) * duration)
	samples := make([]byte, numSamples*4)

	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(audioSampleRate)
		sample := 0.0

		for _, n := range notes {
			if t < n.start {
				continue
			}
			noteT := t - n.start
			var envelope float64
			if noteT < attack {
				envelope = (1 - math.Cos(math.Pi*noteT/attack)) / 2
			} else {
				envelope = math.Exp(-2.5 * (noteT - attack) / decay)
			}
			fundamental := math.Sin(2 * math.Pi * n.freq * noteT)
			harmonic := math.Sin(2*math.Pi*n.freq*2*noteT) * 0.15
			sample += (fundamental + harmonic) * envelope * n.volume
		}

		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		value := int16(sample * 12000)

		idx := i * 4
		samples[idx] = byte(value)
		samples[idx+1] = byte(value >> 8)
		samples[idx+2] = byte(value)
		samples[idx+3] = byte(value >> 8)
	}
	return samples
}
