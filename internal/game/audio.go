package game

// SoundID names a gameplay sound cue.
type SoundID uint8

const (
	SoundNone SoundID = iota
	SoundPlayerJoin
	SoundPlayerShoot
	SoundPlayerHit
	SoundPlayerDie
	SoundEnemyShoot
	SoundEnemyHit
	SoundEnemyDie
	SoundBulletBounce
	SoundVictory
	SoundCount // sentinel
)

var soundNames = [SoundCount]string{
	SoundNone:         "none",
	SoundPlayerJoin:   "player_join",
	SoundPlayerShoot:  "player_shoot",
	SoundPlayerHit:    "player_hit",
	SoundPlayerDie:    "player_die",
	SoundEnemyShoot:   "enemy_shoot",
	SoundEnemyHit:     "enemy_hit",
	SoundEnemyDie:     "enemy_die",
	SoundBulletBounce: "bullet_bounce",
	SoundVictory:      "victory",
}

func (s SoundID) String() string {
	if s < SoundCount {
		return soundNames[s]
	}
	return "unknown"
}

// AudioSink receives sound cues. Implementations must not block.
type AudioSink interface {
	Play(id SoundID)
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) Play(SoundID) {}

// RecordingAudio keeps every cue it was handed, in order.
type RecordingAudio struct {
	Played []SoundID
}

func (r *RecordingAudio) Play(id SoundID) {
	if id == SoundNone {
		return
	}
	r.Played = append(r.Played, id)
}

// Count returns how many times id was played.
func (r *RecordingAudio) Count(id SoundID) int {
	n := 0
	for _, p := range r.Played {
		if p == id {
			n++
		}
	}
	return n
}
