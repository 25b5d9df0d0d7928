package game

import (
	"math"
	"testing"
)

func driveRight() ControllerState {
	return ControllerState{Connected: true, Left: Stick{Magnitude: 1, Degrees: 0}}
}

func TestPlayerTank_SpeedScaledByGround(t *testing.T) {
	cases := []struct {
		ground TileType
		want   float64
	}{
		{TileGrass, playerTankMaxSpeed},
		{TileMud, playerTankMaxSpeed * 0.5},
		{TileIce, playerTankMaxSpeed * 1.5},
	}
	for _, c := range cases {
		ts := NewTestSim(
			WithGridSize(20, 5),
			WithGround(c.ground),
			WithPlayerTank(0, 2.5, 2.5, 0),
			WithController(0, driveRight()),
		)
		p := ts.Added[0]
		ts.RunTicks(TickRate)
		if got := p.Position().X - 2.5; math.Abs(got-c.want) > 1e-6 {
			t.Fatalf("%s: moved %.4f in a second, want %.4f", c.ground, got, c.want)
		}
	}
}

func TestPlayerTank_HullTurnRateLimited(t *testing.T) {
	ts := NewTestSim(
		WithPlayerTank(0, 5.5, 5.5, 0),
		WithController(0, ControllerState{Connected: true, Left: Stick{Magnitude: 1, Degrees: 180}}),
	)
	p := ts.Added[0].(*PlayerTank)
	ts.RunTicks(1)
	if d := math.Abs(AngularDisplacement(0, p.Orientation())); math.Abs(d-playerTankTurnSpeed*TickSeconds) > 1e-9 {
		t.Fatalf("hull turned %.3f°, want %.3f°", d, playerTankTurnSpeed*TickSeconds)
	}
}

func TestPlayerTank_FireRespectsCooldown(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(40, 5),
		WithPlayerTank(0, 2.5, 2.5, 0),
		WithController(0, ControllerState{Connected: true, Fire: true}),
	)
	ts.RunTicks(TickRate)
	shots := ts.SimLog.CountCategory("fire", "shot")
	// One shot on the first tick, then one every fire interval.
	interval := playerTankFireInterval
	want := 1 + int(1/interval)
	if shots != want {
		t.Fatalf("fired %d shots in a second, want %d", shots, want)
	}
	if ts.Audio.Count(SoundPlayerShoot) != shots {
		t.Fatal("every shot should play the shoot sound")
	}
}

func TestPlayerTank_RespawnUsesLife(t *testing.T) {
	ts := NewTestSim(WithPlayerTank(0, 6.5, 6.5, 0))
	p := ts.Added[0].(*PlayerTank)
	p.Die()
	if ts.Audio.Count(SoundPlayerDie) != 1 || ts.Count(EntityExplosion) != 3 {
		t.Fatal("death should play a sound and leave three explosions")
	}

	ts.RunTicks(5)
	if p.IsAlive() {
		t.Fatal("tank respawned without a button press")
	}

	ts.Input.States[0] = ControllerState{Connected: true, Respawn: true}
	ts.RunTicks(1)
	ts.Input.States[0].Respawn = false
	if !p.IsAlive() {
		t.Fatal("respawn press should revive the tank")
	}
	if p.ExtraLives() != playerTankExtraLives-1 {
		t.Fatalf("lives=%d, want %d", p.ExtraLives(), playerTankExtraLives-1)
	}
	if p.Health() != playerTankMaxHealth {
		t.Fatalf("health=%d, want full", p.Health())
	}
	if p.Position() != ts.Map.PlayerStartPosition(0) {
		t.Fatalf("respawned at %+v, want start position", p.Position())
	}
}

func TestPlayerTank_OutOfLivesStaysDead(t *testing.T) {
	ts := NewTestSim(WithPlayerTank(0, 6.5, 6.5, 0))
	p := ts.Added[0].(*PlayerTank)
	p.extraLives = 0
	p.Die()
	ts.Input.States[0] = ControllerState{Connected: true, Respawn: true}
	ts.RunTicks(1)
	if p.IsAlive() {
		t.Fatal("tank with no lives left must stay dead")
	}
	if !ts.Map.AreAllPlayersDead() {
		t.Fatal("map should report all players dead")
	}
}

func TestPlayerTank_KillsTurretInTwoHits(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(12, 5),
		WithPlayerTank(0, 2.5, 2.5, 0),
		WithEnemyTurret(5.5, 2.5, 180),
		WithController(0, ControllerState{Connected: true, Fire: true}),
	)
	turret := ts.Added[1]
	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.Count(EntityEnemyTurret) == 0 }, 3*TickRate)
	if tick < 0 {
		t.Fatalf("turret survived, health=%d", turret.Health())
	}
	if ts.Audio.Count(SoundEnemyHit) < 1 || ts.Audio.Count(SoundEnemyDie) != 1 {
		t.Fatalf("expected hit and death sounds, got %v", ts.Audio.Played)
	}
	if ts.SimLog.CountCategory("death", EntityEnemyTurret.String()) != 1 {
		t.Fatal("turret death not recorded")
	}
	if ts.Map.Entities().Lookup(turret.ID()) != nil {
		t.Fatal("collected turret still resolves")
	}
}

func TestPlayerTank_ExitEndsMap(t *testing.T) {
	ts := NewTestSim(
		WithTile(7, 7, TileExit),
		WithPlayerTank(0, 7.5, 7.5, 0),
	)
	ts.RunTicks(1)
	if !ts.Map.ExitReached() {
		t.Fatal("standing on the exit should finish the map")
	}
}

func TestPlayerTank_ArenaExitNeedsLastSurvivor(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(14, 14),
		WithArena(),
		WithTile(7, 7, TileExit),
		WithPlayerTank(0, 7.5, 7.5, 0),
		WithPlayerTank(1, 2.5, 2.5, 0),
	)
	rival := ts.Added[1]
	ts.RunTicks(1)
	if ts.Map.ExitReached() {
		t.Fatal("arena exit must stay shut while a rival lives")
	}
	rival.Die()
	ts.RunTicks(1)
	if !ts.Map.ExitReached() {
		t.Fatal("last tank standing should be able to leave")
	}
	if ts.Added[0].Faction() == rival.Faction() {
		t.Fatal("arena players should be on separate factions")
	}
}
