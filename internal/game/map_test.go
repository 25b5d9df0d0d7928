package game

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestNewMap_LogsBuildWithMapID(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	m, err := NewMap(DefaultCampaign().Maps[0], nil, Deps{Logger: logger})
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	var built *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "map built" {
			built = e
		}
	}
	if built == nil {
		t.Fatal("no \"map built\" log entry")
	}
	if built.Level != logrus.InfoLevel {
		t.Fatalf("level=%s, want info", built.Level)
	}
	if built.Data["map_id"] != m.ID() || built.Data["map"] != "outskirts" {
		t.Fatalf("unexpected fields: %v", built.Data)
	}
	if built.Data["entities"] != m.Entities().Len() {
		t.Fatalf("entities field=%v, want %d", built.Data["entities"], m.Entities().Len())
	}
}

func TestMap_SpawnsLoggedAtDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	ts := NewTestSim(WithLogger(logger), WithBoulder(2.5, 2.5))
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel {
			t.Fatalf("debug entry leaked at info level: %q", e.Message)
		}
	}

	logger.SetLevel(logrus.DebugLevel)
	hook.Reset()
	ts.Map.Spawn(EntityEnemyTank, Vec2{5.5, 5.5}, 0, nil)
	last := hook.LastEntry()
	if last == nil || last.Level != logrus.DebugLevel || last.Data["type"] != "enemy_tank" {
		t.Fatalf("expected a debug spawn entry, got %+v", last)
	}
}

func TestMap_ShutdownDestroysEverything(t *testing.T) {
	ts := NewTestSim(
		WithEnemyTank(2.5, 2.5, 0),
		WithEnemyTurret(5.5, 5.5, 0),
		WithPlayerTank(0, 7.5, 7.5, 0),
	)
	ts.Map.SpawnExplosion(Vec2{3, 3}, 1, 1)
	added := append([]Entity(nil), ts.Added...)
	ts.Map.Shutdown()
	for _, e := range ts.Map.Entities().All() {
		if e != nil {
			t.Fatalf("%s survived shutdown", e.Label())
		}
	}
	if ts.Count(EntityExplosion) != 0 {
		t.Fatal("explosions survived shutdown")
	}
	for _, e := range added {
		if e.core().m != nil {
			t.Fatalf("%s still points at its map", e.Label())
		}
	}
}

func TestMap_AcquireNewTargetOnlyLivePlayers(t *testing.T) {
	ts := NewTestSim(
		WithPlayerTank(0, 2.5, 2.5, 0),
		WithPlayerTank(1, 7.5, 7.5, 0),
	)
	ts.Added[0].Die()
	for i := 0; i < 20; i++ {
		if got := ts.Map.AcquireNewTarget(); got != ts.Added[1] {
			t.Fatalf("picked %v, want the only live player", got)
		}
	}
	ts.Added[1].Die()
	if ts.Map.AcquireNewTarget() != nil {
		t.Fatal("expected no target with every player dead")
	}
}

func TestMap_PlayerStartPositions(t *testing.T) {
	ts := NewTestSim(WithGridSize(20, 16), WithArena())
	want := []Vec2{{1.5, 14.5}, {18.5, 14.5}, {1.5, 1.5}, {18.5, 1.5}}
	for id, w := range want {
		if got := ts.Map.PlayerStartPosition(id); got != w {
			t.Fatalf("arena start %d = %+v, want %+v", id, got, w)
		}
	}
	coop := NewTestSim(WithGridSize(20, 16))
	if got := coop.Map.PlayerStartPosition(3); got != (Vec2{2.5, 1.5}) {
		t.Fatalf("co-op start 3 = %+v", got)
	}
}

func TestSimLog_SummaryCountsKinds(t *testing.T) {
	ts := NewTestSim(
		WithEnemyTurret(2.5, 5.5, 0),
		WithPlayerTank(0, 7.5, 5.5, 180),
	)
	ts.Added[1].(*PlayerTank).SetInvincible(true)
	ts.RunTicks(2)
	sum := ts.SimLog.Summary(ts.CurrentTick(), ts.Map.Entities())
	for _, want := range []string{"player_tank=1", "enemy_turret=1", "AI chasing: 1", "Shots: 1"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.AddVerbose(1, "ET0", "enemy", "move", "position", "(1,1)", 0)
	if quiet.Len() != 0 {
		t.Fatal("verbose entry recorded on a quiet log")
	}
	loud := NewSimLog(true)
	loud.AddVerbose(1, "ET0", "enemy", "move", "position", "(1,1)", 0)
	loud.Add(3, "PT1", "p0", "fire", "shot", "0°", 0)
	if loud.Len() != 2 || len(loud.FilterTickRange(2, 5)) != 1 || len(loud.FilterEntity("ET0")) != 1 {
		t.Fatalf("unexpected log contents:\n%s", loud.Format())
	}
	if e, ok := loud.LastOf("fire", ""); !ok || e.Entity != "PT1" {
		t.Fatalf("LastOf returned %+v %t", e, ok)
	}
}
