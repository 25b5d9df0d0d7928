package game

import "math"

// EnemyTurret is a fixed gun emplacement. It tracks a visible player, sweeps
// around the target's bearing for a while after losing it, then idles by
// rotating slowly.
type EnemyTurret struct {
	entityCore
	brain
	scanTimeLeft float64
	scanLeft     bool
}

func newEnemyTurret(m *Map, pos Vec2, orientation float64) *EnemyTurret {
	t := &EnemyTurret{entityCore: newCore(m, EntityEnemyTurret, FactionEnemy, pos, orientation)}
	t.physicsRadius = enemyTurretPhysicsRadius
	t.cosmeticRadius = enemyTurretCosmeticRadius
	t.health = enemyTurretMaxHealth
	t.killable = true
	t.solid = true
	t.movable = false
	t.hitSound = SoundEnemyHit
	t.turret = t.orientation
	t.barrelOffset = enemyTurretBarrelOffset
	t.fireInterval = enemyTurretFireInterval
	t.sightRange = enemyTurretSightRange
	return t
}

// ScanTimeLeft is the remaining sweep time after losing sight of the target.
func (t *EnemyTurret) ScanTimeLeft() float64 { return t.scanTimeLeft }

// LaserEnd is where the aiming laser stops: the first solid tile along the
// turret heading, or full sight range.
func (t *EnemyTurret) LaserEnd() Vec2 {
	dir := FromPolarDegrees(t.turret, 1)
	if t.m != nil {
		if res := t.m.Raycast(t.pos, dir, t.sightRange); res.Impact {
			return res.Position
		}
	}
	return t.pos.Add(dir.Scale(t.sightRange))
}

func (t *EnemyTurret) Update(dt float64) {
	if t.dead || t.m == nil {
		return
	}
	t.gunCooldown -= dt

	prev := t.target
	target := t.currentTarget(t.m)
	if target == nil {
		t.scanTimeLeft = 0
		t.idle(dt)
		return
	}
	if target.ID() != prev {
		t.m.record(t, "ai", "target", target.Label(), 0)
	}

	toTarget := target.Position().Sub(t.pos)
	los := t.m.HasLineOfSight(t, target)

	switch {
	case los && toTarget.Length() < t.sightRange:
		t.scanTimeLeft = enemyTurretScanTime
		t.lastKnown = target.Position()
		t.aimTurret(t, toTarget.OrientationDegrees(), enemyTurretTopTurnSpeed, dt, true)
		t.setState(t, AIChase)
	case t.scanTimeLeft > 0:
		t.scanTimeLeft -= dt
		t.scan(dt, toTarget.OrientationDegrees(), los)
		t.setState(t, AIScan)
	default:
		t.idle(dt)
	}
}

// scan sweeps the turret between the target's bearing plus and minus the
// scan angle, reversing at each limit. It fires only with line of sight.
func (t *EnemyTurret) scan(dt, bearing float64, los bool) {
	centre := bearing
	limit := centre - enemyTurretScanAngle
	if t.scanLeft {
		limit = centre + enemyTurretScanAngle
	}
	t.aimTurret(t, limit, enemyTurretTopTurnSpeed, dt, los)
	if math.Abs(AngularDisplacement(t.turret, limit)) < 1e-6 {
		t.scanLeft = !t.scanLeft
	}
}

func (t *EnemyTurret) idle(dt float64) {
	t.turret = normalizeDegrees(t.turret + enemyTurretTopTurnSpeed*dt)
	t.setState(t, AIWander)
}

func (t *EnemyTurret) Die() { enemyDie(t) }

// Turrets are bolted down: anything that touches them does the pushing.
func (t *EnemyTurret) OnCollisionEntity(Entity) {}
func (t *EnemyTurret) OnCollisionTile(*Tile) {}
