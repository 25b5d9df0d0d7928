// Package audio plays the game's sound cues through the system speaker.
// Cues are synthesized tones, so there are no asset files to ship.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Incursion/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// note is one tone in a cue. A zero freq is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

// cue is a short melody played at a fixed volume (log2 scale, 0 = unity).
type cue struct {
	notes  []note
	volume float64
}

var cues = map[game.SoundID]cue{
	game.SoundPlayerJoin:   {notes: []note{{440, 60 * time.Millisecond}, {660, 90 * time.Millisecond}}, volume: -2},
	game.SoundPlayerShoot:  {notes: []note{{880, 40 * time.Millisecond}}, volume: -3},
	game.SoundPlayerHit:    {notes: []note{{220, 80 * time.Millisecond}}, volume: -2},
	game.SoundPlayerDie:    {notes: []note{{330, 100 * time.Millisecond}, {220, 100 * time.Millisecond}, {110, 200 * time.Millisecond}}, volume: -1},
	game.SoundEnemyShoot:   {notes: []note{{600, 40 * time.Millisecond}}, volume: -3},
	game.SoundEnemyHit:     {notes: []note{{300, 50 * time.Millisecond}}, volume: -3},
	game.SoundEnemyDie:     {notes: []note{{180, 150 * time.Millisecond}}, volume: -2},
	game.SoundBulletBounce: {notes: []note{{1200, 20 * time.Millisecond}}, volume: -4},
	game.SoundVictory: {notes: []note{
		{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 120 * time.Millisecond},
		{0, 60 * time.Millisecond}, {1047, 300 * time.Millisecond},
	}, volume: -1},
}

// Cue builds the streamer for id at the given sample rate, or nil when id
// has no sound.
func Cue(id game.SoundID, rate beep.SampleRate) beep.Streamer {
	c, ok := cues[id]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(c.notes))
	for _, n := range c.notes {
		samples := rate.N(n.dur)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: c.volume}
}

// Speaker is a game.AudioSink backed by the system speaker. If the device
// cannot be opened it stays silent.
type Speaker struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
	log   logrus.FieldLogger
}

var _ game.AudioSink = (*Speaker)(nil)

// NewSpeaker opens the default output device. Failure is logged, not
// returned: the game runs fine without sound.
func NewSpeaker(log logrus.FieldLogger) *Speaker {
	s := &Speaker{mixer: &beep.Mixer{}, log: log.WithField("component", "audio")}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		s.log.WithError(err).Warn("audio unavailable, continuing without sound")
		return s
	}
	speaker.Play(s.mixer)
	s.ready = true
	s.log.WithField("sample_rate", int(sampleRate)).Debug("speaker ready")
	return s
}

// Ready reports whether cues reach a device.
func (s *Speaker) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *Speaker) Play(id game.SoundID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	st := Cue(id, sampleRate)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.ready = false
}
