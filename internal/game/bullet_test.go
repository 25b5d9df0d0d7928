package game

import (
	"math"
	"testing"
)

func TestBullet_BouncesThenExpires(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(10, 3),
		WithWallRing(TileStone),
	)
	b := ts.Map.Spawn(EntityBullet, Vec2{5.5, 1.5}, 0, nil).(*Bullet)

	// First wall contact reverses the bullet.
	ts.RunUntil(func(*TestSim) bool { return b.BouncesLeft() < bulletMaxBounces }, 2*TickRate)
	if b.BouncesLeft() != bulletMaxBounces-1 {
		t.Fatalf("bounces left=%d after first wall", b.BouncesLeft())
	}
	if b.vel.X >= 0 || math.Abs(b.vel.Y) > 1e-9 {
		t.Fatalf("expected straight reflection to -x, vel=%+v", b.vel)
	}
	if math.Abs(b.Orientation()-180) > 1e-6 {
		t.Fatalf("orientation=%.3f, want 180", b.Orientation())
	}

	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.Count(EntityBullet) == 0 }, 10*TickRate)
	if tick < 0 {
		t.Fatal("bullet never expired")
	}
	if n := ts.SimLog.CountCategory("bullet", "bounce"); n != bulletMaxBounces {
		t.Fatalf("recorded %d bounces, want %d", n, bulletMaxBounces)
	}
	if ts.Audio.Count(SoundBulletBounce) != bulletMaxBounces {
		t.Fatal("each bounce should play a sound")
	}
}

func TestBullet_ExpiresInsideWalledMap(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(12, 12),
		WithWallRing(TileBrick),
		WithTileRect(5, 5, 6, 6, TileBrick),
	)
	b := ts.Map.Spawn(EntityBullet, Vec2{2.5, 3.2}, 37, nil).(*Bullet)
	tick := ts.RunUntil(func(ts *TestSim) bool {
		p := b.Position()
		if p.X < 0 || p.X > 12 || p.Y < 0 || p.Y > 12 {
			t.Fatalf("tick %d: bullet escaped to %+v", ts.CurrentTick(), p)
		}
		return !b.IsAlive()
	}, 20*TickRate)
	if tick < 0 {
		t.Fatal("bullet should run out of bounces")
	}
	if ts.Count(EntityExplosion) == 0 {
		t.Fatal("expired bullet should leave an explosion")
	}
}

func TestBullet_IgnoresOwnFaction(t *testing.T) {
	ts := NewTestSim(
		WithEnemyTurret(5.5, 5.5, 0),
	)
	turret := ts.Added[0]
	ts.Map.Spawn(EntityBullet, Vec2{5.5, 5.5}, 0, turret)
	ts.RunTicks(1)
	if turret.Health() != enemyTurretMaxHealth {
		t.Fatal("a bullet must not hurt its own faction")
	}
}

func TestBullet_CoopPlayersDoNotHurtEachOther(t *testing.T) {
	ts := NewTestSim(
		WithPlayerTank(0, 2.5, 5.5, 0),
		WithPlayerTank(1, 4.5, 5.5, 0),
		WithController(0, ControllerState{Connected: true, Fire: true}),
	)
	ally := ts.Added[1]
	ts.RunTicks(TickRate)
	if ally.Health() != playerTankMaxHealth {
		t.Fatalf("co-op ally took damage, health=%d", ally.Health())
	}
}

func TestBullet_ArenaPlayersHurtEachOther(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(14, 14),
		WithArena(),
		WithPlayerTank(0, 2.5, 5.5, 0),
		WithPlayerTank(1, 4.5, 5.5, 0),
		WithController(0, ControllerState{Connected: true, Fire: true}),
	)
	rival := ts.Added[1]
	ts.RunTicks(TickRate)
	if rival.Health() >= playerTankMaxHealth {
		t.Fatal("arena rival should take damage")
	}
}

func TestBullet_BouncesOffBoulder(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(12, 5),
		WithBoulder(6.5, 2.5),
	)
	b := ts.Map.Spawn(EntityBullet, Vec2{3.5, 2.5}, 0, nil).(*Bullet)
	ts.RunUntil(func(*TestSim) bool { return b.BouncesLeft() < bulletMaxBounces }, 2*TickRate)
	if b.vel.X >= 0 {
		t.Fatalf("bullet should rebound off the boulder, vel=%+v", b.vel)
	}
	if boulder := ts.Added[0]; boulder.Position() != (Vec2{6.5, 2.5}) || !boulder.IsAlive() {
		t.Fatal("boulder should be unaffected")
	}
}

func TestBullet_ReflectsWhenResting_OnWallFace(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(10, 3),
		WithWallRing(TileStone),
	)
	// One ulp short of the east wall's face, where the nearest-point
	// difference underflows to zero.
	b := ts.Map.Spawn(EntityBullet, Vec2{math.Nextafter(9, 0), 1.5}, 0, nil).(*Bullet)
	ts.RunTicks(1)

	if b.BouncesLeft() != bulletMaxBounces-1 {
		t.Fatalf("bounces left=%d, want %d", b.BouncesLeft(), bulletMaxBounces-1)
	}
	if b.vel.X >= 0 || math.Abs(b.vel.Y) > 1e-9 {
		t.Fatalf("expected reflection to -x, vel=%+v", b.vel)
	}
	if c := ts.Map.Tiles().TileCoordsFromWorld(b.Position()); c.X != 8 {
		t.Fatalf("bullet entered the wall: pos=%+v tile=%+v", b.Position(), c)
	}
}

func TestBullet_OnCollisionTile_ExactlyOnFace(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(10, 3),
		WithWallRing(TileStone),
	)
	b := ts.Map.Spawn(EntityBullet, Vec2{5.5, 2}, 90, nil).(*Bullet)
	b.OnCollisionTile(ts.Map.Tiles().At(TileCoords{5, 2}))

	if b.BouncesLeft() != bulletMaxBounces-1 {
		t.Fatalf("bounces left=%d, want %d", b.BouncesLeft(), bulletMaxBounces-1)
	}
	if b.vel.Y >= 0 || math.Abs(b.vel.X) > 1e-9 {
		t.Fatalf("expected reflection to -y, vel=%+v", b.vel)
	}
}

func TestBullet_ZeroNormalSpendsNoBounce(t *testing.T) {
	ts := NewTestSim(WithGridSize(10, 3))
	b := ts.Map.Spawn(EntityBullet, Vec2{5.5, 1.5}, 0, nil).(*Bullet)
	vel := b.vel
	b.bounce(Vec2{})
	if b.BouncesLeft() != bulletMaxBounces || b.vel != vel {
		t.Fatalf("zero normal changed the bullet: left=%d vel=%+v", b.BouncesLeft(), b.vel)
	}
	if ts.SimLog.CountCategory("bullet", "bounce") != 0 {
		t.Fatal("zero normal should not record a bounce")
	}
}
