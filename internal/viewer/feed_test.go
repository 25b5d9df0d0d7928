package viewer

import (
	"testing"

	"github.com/Garsondee/Incursion/internal/game"
)

func TestEventFeed_SyncKeepsNotableEvents(t *testing.T) {
	log := game.NewSimLog(false)
	log.Add(1, "ET2", "enemy", "ai", "state_change", "wander → chase", 0)
	log.Add(1, "BU5", "enemy", "bullet", "bounce", "2 left", 2)
	log.Add(2, "PT0", "p0", "death", "player_tank", "(3.00,4.00)", 0)

	f := NewEventFeed()
	f.Sync(log)
	got := f.Recent()
	if len(got) != 2 || got[0].Key != "state_change" || got[1].Category != "death" {
		t.Fatalf("unexpected feed contents: %+v", got)
	}

	log.Add(3, "PT0", "p0", "player", "respawn", "2 lives left", 2)
	f.Sync(log)
	if got := f.Recent(); len(got) != 3 || got[2].Key != "respawn" {
		t.Fatalf("second sync should only append new entries: %+v", got)
	}
}

func TestEventFeed_RingDropsOldest(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(game.SimLogEntry{Tick: i, Category: "ai"})
	}
	got := f.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("len=%d, want %d", len(got), feedMaxEntries)
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("wrong window: first=%d last=%d", got[0].Tick, got[len(got)-1].Tick)
	}
}

func TestStickFromAxes(t *testing.T) {
	if s := stickFromAxes(0.1, -0.1); s != (game.Stick{}) {
		t.Fatalf("inside deadzone should read as rest, got %+v", s)
	}
	s := stickFromAxes(0, -1)
	if s.Magnitude != 1 || s.Degrees != 270 {
		t.Fatalf("straight down: %+v", s)
	}
	s = stickFromAxes(1, 1)
	if s.Magnitude != 1 || s.Degrees != 45 {
		t.Fatalf("diagonal should clamp to 1 at 45°: %+v", s)
	}
}

func TestRawController_RespawnIsEdge(t *testing.T) {
	r := rawController{connected: true, respawn: true}
	if !r.state(false).Respawn {
		t.Fatal("first press should report Respawn")
	}
	if r.state(true).Respawn {
		t.Fatal("held button must not repeat Respawn")
	}
	if (rawController{respawn: true}).state(false).Connected {
		t.Fatal("disconnected reading should be zero")
	}
}
