package viewer

import (
	"strings"
	"testing"

	"github.com/Garsondee/Incursion/internal/game"
)

func TestInspector_PickNearest(t *testing.T) {
	ts := game.NewTestSim(
		game.WithEnemyTank(2.5, 2.5, 0),
		game.WithEnemyTurret(6.5, 6.5, 0),
	)
	var in inspector
	if got := in.pick(ts.Map, game.Vec2{X: 6.2, Y: 6.9}, 0.3); got != ts.Added[1] {
		t.Fatalf("picked %v, want the turret", got)
	}
	if in.current(ts.Map) != ts.Added[1] {
		t.Fatal("selection should resolve to the turret")
	}
	if got := in.pick(ts.Map, game.Vec2{X: 4.5, Y: 4.5}, 0.3); got != nil {
		t.Fatalf("empty ground picked %v", got.Label())
	}
	if in.current(ts.Map) != nil {
		t.Fatal("clicking empty ground should clear the selection")
	}
}

func TestInspector_SelectionGoesStaleOnDeath(t *testing.T) {
	ts := game.NewTestSim(game.WithEnemyTank(2.5, 2.5, 0))
	var in inspector
	in.pick(ts.Map, game.Vec2{X: 2.5, Y: 2.5}, 0.3)
	ts.Added[0].Die()
	ts.RunTicks(1)
	if in.current(ts.Map) != nil {
		t.Fatal("a destroyed entity must not stay selected")
	}
	if _, err := in.copyReport(ts.Map); err == nil {
		t.Fatal("copying with no selection should fail")
	}
}

func TestInspectorLines_ShowAIState(t *testing.T) {
	ts := game.NewTestSim(
		game.WithEnemyTurret(2.5, 5.5, 0),
		game.WithPlayerTank(0, 7.5, 5.5, 180),
	)
	ts.RunTicks(1)
	text := strings.Join(inspectorLines(ts.Map, ts.Added[0]), "\n")
	for _, want := range []string{"state  chase", "target " + ts.Added[1].Label(), "[C] copy report"} {
		if !strings.Contains(text, want) {
			t.Fatalf("panel missing %q:\n%s", want, text)
		}
	}
	if text := strings.Join(inspectorLines(ts.Map, ts.Added[1]), "\n"); !strings.Contains(text, "lives 3") {
		t.Fatalf("player panel missing lives:\n%s", text)
	}
}

func TestMapSummary_HasEventsAndGrid(t *testing.T) {
	ts := game.NewTestSim(
		game.WithWallRing(game.TileStone),
		game.WithBoulder(3.5, 3.5),
	)
	out := mapSummary(ts.Map)
	for _, want := range []string{"map=test", "--- Summary at T=000 ---", "boulder=1", "##########\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
