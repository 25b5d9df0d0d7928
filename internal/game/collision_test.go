package game

import (
	"math"
	"testing"
)

const collisionEps = 1e-9

func TestCollision_EqualDiscsSplitEvenly(t *testing.T) {
	ts := NewTestSim(
		WithPlayerTank(0, 5.0, 5.5, 0),
		WithPlayerTank(1, 5.4, 5.5, 0),
	)
	a, b := ts.Added[0], ts.Added[1]
	ts.Map.resolveEntityCollisions()

	if math.Abs(a.Position().X-4.88) > collisionEps || math.Abs(b.Position().X-5.52) > collisionEps {
		t.Fatalf("expected 4.88 and 5.52, got %.4f and %.4f", a.Position().X, b.Position().X)
	}
	d := a.Position().DistanceTo(b.Position())
	if math.Abs(d-(a.PhysicsRadius()+b.PhysicsRadius())) > collisionEps {
		t.Fatalf("final distance %.6f, want sum of radii", d)
	}
}

func TestCollision_CoincidentCentresSeparateAlongX(t *testing.T) {
	ts := NewTestSim(
		WithPlayerTank(0, 5.5, 5.5, 0),
		WithPlayerTank(1, 5.5, 5.5, 0),
	)
	a, b := ts.Added[0], ts.Added[1]
	ts.Map.resolveEntityCollisions()
	if a.Position().Y != 5.5 || b.Position().Y != 5.5 {
		t.Fatal("coincident push should be purely horizontal")
	}
	if math.Abs(a.Position().DistanceTo(b.Position())-0.64) > collisionEps {
		t.Fatalf("discs not separated: %+v %+v", a.Position(), b.Position())
	}
}

func TestCollision_ImmovableDoesNotMove(t *testing.T) {
	ts := NewTestSim(
		WithEnemyTurret(5.5, 5.5, 0),
		WithPlayerTank(0, 5.9, 5.5, 0),
	)
	turret, player := ts.Added[0], ts.Added[1]
	ts.Map.resolveEntityCollisions()
	if turret.Position() != (Vec2{5.5, 5.5}) {
		t.Fatalf("turret moved to %+v", turret.Position())
	}
	if math.Abs(player.Position().X-(5.5+0.64)) > collisionEps {
		t.Fatalf("player x=%.4f, want pushed fully clear", player.Position().X)
	}
}

func TestCollision_NonOverlappingUntouched(t *testing.T) {
	ts := NewTestSim(
		WithPlayerTank(0, 3.5, 5.5, 0),
		WithPlayerTank(1, 4.25, 5.5, 0),
	)
	a, b := ts.Added[0], ts.Added[1]
	ts.Map.resolveEntityCollisions()
	if a.Position().X != 3.5 || b.Position().X != 4.25 {
		t.Fatal("separated discs must not be pushed")
	}
}

func TestCollision_TankPushedOutOfWall(t *testing.T) {
	ts := NewTestSim(
		WithWallRing(TileStone),
		WithPlayerTank(0, 1.2, 5.5, 0),
	)
	p := ts.Added[0]
	ts.Map.resolveTileCollisions()
	if math.Abs(p.Position().X-(1+playerTankPhysicsRadius)) > collisionEps {
		t.Fatalf("player x=%.4f, want %.4f", p.Position().X, 1+playerTankPhysicsRadius)
	}
}

func TestCollision_NonSolidPlayerPassesThrough(t *testing.T) {
	ts := NewTestSim(
		WithWallRing(TileStone),
		WithPlayerTank(0, 1.2, 5.5, 0),
		WithPlayerTank(1, 1.3, 5.5, 0),
	)
	ts.Map.SetPlayerCollision(false)
	a, b := ts.Added[0], ts.Added[1]
	ts.Map.resolveTileCollisions()
	ts.Map.resolveEntityCollisions()
	if a.Position().X != 1.2 || b.Position().X != 1.3 {
		t.Fatal("non-solid players should neither hit walls nor each other")
	}
	if a.IsKillable() {
		t.Fatal("collision off should make players invincible")
	}
}

func TestPushDiscOutOfAABB_CentreInside(t *testing.T) {
	c := Vec2{1.9, 1.5}
	pushDiscOutOfAABB(&c, 0.3, AABB2{Min: Vec2{1, 1}, Max: Vec2{2, 2}})
	if math.Abs(c.X-2.3) > collisionEps || c.Y != 1.5 {
		t.Fatalf("expected exit through the right face, got %+v", c)
	}
}

func TestAngularDisplacement(t *testing.T) {
	cases := []struct{ from, to, want float64 }{
		{0, 90, 90},
		{90, 0, -90},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{720, 30, 30},
	}
	for _, c := range cases {
		if got := AngularDisplacement(c.from, c.to); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("AngularDisplacement(%v,%v)=%v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTurnedTowards_ClampsAndNormalizes(t *testing.T) {
	if got := TurnedTowards(350, 20, 5); math.Abs(got-355) > 1e-9 {
		t.Fatalf("got %v, want 355", got)
	}
	if got := TurnedTowards(355, 10, 30); math.Abs(got-10) > 1e-9 {
		t.Fatalf("got %v, want 10", got)
	}
	if got := TurnedTowards(5, -20, 10); math.Abs(got-355) > 1e-9 {
		t.Fatalf("got %v, want 355", got)
	}
}
