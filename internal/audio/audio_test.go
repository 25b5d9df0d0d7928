package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Garsondee/Incursion/internal/game"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestCue_EverySoundHasAStreamer(t *testing.T) {
	for id := game.SoundPlayerJoin; id < game.SoundCount; id++ {
		if Cue(id, sampleRate) == nil {
			t.Fatalf("%s has no cue", id)
		}
	}
	if Cue(game.SoundNone, sampleRate) != nil {
		t.Fatal("SoundNone should be silent")
	}
}

func TestCue_LengthMatchesNotes(t *testing.T) {
	for id, c := range cues {
		want := 0
		for _, n := range c.notes {
			want += sampleRate.N(n.dur)
		}
		if got := drain(Cue(id, sampleRate)); got != want {
			t.Fatalf("%s: %d samples, want %d", id, got, want)
		}
	}
}

func TestCue_StaysInRange(t *testing.T) {
	st := Cue(game.SoundVictory, sampleRate)
	buf := make([][2]float64, 1024)
	for {
		n, ok := st.Stream(buf)
		for _, s := range buf[:n] {
			if s[0] < -1 || s[0] > 1 || s[1] < -1 || s[1] > 1 {
				t.Fatalf("sample out of range: %v", s)
			}
		}
		if !ok {
			break
		}
	}
}

func TestSpeaker_SilentWhenNotReady(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := &Speaker{mixer: &beep.Mixer{}, log: log}
	s.Play(game.SoundEnemyShoot)
	if s.mixer.Len() != 0 {
		t.Fatal("an unready speaker must not queue cues")
	}
	s.Close()
	if s.Ready() {
		t.Fatal("speaker should report not ready")
	}
}
