package game

import (
	"math"
	"testing"
)

func TestRegistry_ReusesLowestFreeSlot(t *testing.T) {
	ts := NewTestSim(
		WithBoulder(2.5, 2.5),
		WithBoulder(4.5, 4.5),
		WithBoulder(6.5, 6.5),
	)
	reg := ts.Map.Entities()
	first, second := ts.Added[0], ts.Added[1]
	firstID := first.ID()

	second.Die()
	first.Die()
	ts.Map.collectGarbage()

	if reg.All()[0] != nil || reg.All()[1] != nil {
		t.Fatal("expected slots 0 and 1 to be free after GC")
	}
	e := ts.Map.Spawn(EntityEnemyTurret, Vec2{3.5, 3.5}, 0, nil)
	if e.ID().Slot != 0 {
		t.Fatalf("expected reuse of slot 0, got %d", e.ID().Slot)
	}
	if e.ID() == firstID {
		t.Fatal("reused slot must carry a new generation")
	}
	if reg.Lookup(firstID) != nil {
		t.Fatal("stale handle resolved after slot reuse")
	}
	if reg.Lookup(e.ID()) != e {
		t.Fatal("fresh handle should resolve to the new entity")
	}
	if reg.Len() != 3 {
		t.Fatalf("main list should not grow, len=%d", reg.Len())
	}
}

func TestRegistry_ZeroIDNeverResolves(t *testing.T) {
	ts := NewTestSim(WithBoulder(2.5, 2.5))
	if ts.Map.Entities().Lookup(EntityID{}) != nil {
		t.Fatal("zero EntityID resolved")
	}
}

func TestRegistry_PlayerSublistIndexedByID(t *testing.T) {
	ts := NewTestSim(WithPlayerTank(2, 3.5, 3.5, 0))
	players := ts.Map.Entities().OfType(EntityPlayerTank)
	if len(players) != MaxPlayers {
		t.Fatalf("player sublist len=%d, want %d", len(players), MaxPlayers)
	}
	if players[2] == nil || players[0] != nil {
		t.Fatal("player 2 should sit at index 2 only")
	}
	if ts.Map.SpawnPlayer(2, Vec2{5.5, 5.5}) != nil {
		t.Fatal("second tank for the same player id should be refused")
	}
	p := ts.Map.Spawn(EntityPlayerTank, Vec2{6.5, 6.5}, 90, nil)
	if p == nil || p.(*PlayerTank).PlayerID() != 0 {
		t.Fatal("Spawn should hand out the first free player id")
	}
}

func TestRegistry_ExplosionsSeparateAndUnresolvable(t *testing.T) {
	ts := NewTestSim()
	x := ts.Map.SpawnExplosion(Vec2{2, 2}, explosionScaleSmall, 1)
	if ts.Map.Entities().Len() != 0 {
		t.Fatal("explosions must not enter the main list")
	}
	if ts.Map.Entities().Lookup(x.ID()) != nil {
		t.Fatal("explosion IDs must not resolve")
	}
	if ts.Count(EntityExplosion) != 1 {
		t.Fatalf("expected 1 explosion, got %d", ts.Count(EntityExplosion))
	}
}

func TestGC_DoubleMarkDestroyedOnce(t *testing.T) {
	ts := NewTestSim(WithEnemyTurret(5.5, 5.5, 0))
	turret := ts.Added[0]
	turret.core().markDead(true)
	turret.core().markDead(true)
	ts.Map.collectGarbage()
	ts.Map.collectGarbage()

	if n := len(ts.SimLog.Filter("gc", "destroyed")); n != 1 {
		t.Fatalf("expected exactly 1 destroy, got %d", n)
	}
	if turret.core().m != nil {
		t.Fatal("destroyed entity should be detached from its map")
	}
	if ts.Count(EntityEnemyTurret) != 0 {
		t.Fatal("turret still registered after GC")
	}
}

func TestGC_DeadPlayerStaysRegistered(t *testing.T) {
	ts := NewTestSim(WithPlayerTank(0, 5.5, 5.5, 0))
	p := ts.Added[0].(*PlayerTank)
	p.Die()
	ts.RunTicks(1)
	if ts.Map.Entities().Player(0) != p {
		t.Fatal("a dead player tank must wait for respawn, not be collected")
	}
	if p.IsGarbage() {
		t.Fatal("dead player should not be garbage")
	}
}

func TestUpdate_SameTickSpawnIsUpdated(t *testing.T) {
	ts := NewTestSim(
		WithPlayerTank(0, 5.5, 5.5, 0),
		WithController(0, ControllerState{Connected: true, Fire: true}),
	)
	ts.RunTicks(1)

	var bullet *Bullet
	for _, e := range ts.Map.Entities().OfType(EntityBullet) {
		if b, ok := e.(*Bullet); ok {
			bullet = b
		}
	}
	if bullet == nil {
		t.Fatal("expected a bullet after firing")
	}
	barrel := 5.5 + playerTankBarrelOffset
	want := barrel + bulletSpeed*TickSeconds
	if math.Abs(bullet.Position().X-want) > 1e-9 {
		t.Fatalf("bullet x=%.4f, want %.4f (moved on its spawn tick)", bullet.Position().X, want)
	}
}

func TestUpdate_TickAndClockAdvance(t *testing.T) {
	ts := NewTestSim()
	ts.RunTicks(30)
	if ts.CurrentTick() != 30 {
		t.Fatalf("tick=%d, want 30", ts.CurrentTick())
	}
	if math.Abs(ts.Map.Clock()-0.5) > 1e-9 {
		t.Fatalf("clock=%.4f, want 0.5", ts.Map.Clock())
	}
}
