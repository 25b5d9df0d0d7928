package game

import (
	"fmt"
	"math"
)

// Whisker is one of the enemy tank's three feeler rays, kept for drawing.
type Whisker struct {
	From, To Vec2
	Hit      bool
}

// EnemyTank hunts the nearest visible player and wanders with whisker
// avoidance when it has nothing to chase.
type EnemyTank struct {
	entityCore
	brain
	investigating bool
	whiskers      [3]Whisker // left, centre, right
}

func newEnemyTank(m *Map, pos Vec2, orientation float64) *EnemyTank {
	t := &EnemyTank{entityCore: newCore(m, EntityEnemyTank, FactionEnemy, pos, orientation)}
	t.physicsRadius = enemyTankPhysicsRadius
	t.cosmeticRadius = enemyTankCosmeticRadius
	t.health = enemyTankMaxHealth
	t.killable = true
	t.solid = true
	t.movable = false
	t.hitSound = SoundEnemyHit
	t.turret = t.orientation
	t.barrelOffset = enemyTankBarrelOffset
	t.fireInterval = enemyTankFireInterval
	t.sightRange = enemyTankSightRange
	return t
}

// Investigating reports that the tank is driving to the last known position.
func (t *EnemyTank) Investigating() bool { return t.investigating }

// Whiskers returns the feelers cast on the last wander tick.
func (t *EnemyTank) Whiskers() [3]Whisker { return t.whiskers }

func (t *EnemyTank) Update(dt float64) {
	if t.dead || t.m == nil {
		return
	}
	t.gunCooldown -= dt

	prev := t.target
	target := t.currentTarget(t.m)
	if target == nil {
		t.investigating = false
		t.wander(dt)
		t.setState(t, AIWander)
		return
	}
	if target.ID() != prev {
		t.m.record(t, "ai", "target", target.Label(), 0)
	}

	toTarget := target.Position().Sub(t.pos)
	bearing := toTarget.OrientationDegrees()
	los := t.m.HasLineOfSight(t, target)

	switch {
	case los && toTarget.Length() < t.sightRange:
		t.investigating = true
		t.lastKnown = target.Position()
		t.chase(bearing, dt, true)
		t.setState(t, AIChase)
	case t.investigating:
		toLast := t.lastKnown.Sub(t.pos)
		t.chase(toLast.OrientationDegrees(), dt, false)
		t.setState(t, AIInvestigate)
		if t.lastKnown.Sub(t.pos).LengthSquared() < enemyTankArriveDistSq {
			t.investigating = false
			t.m.record(t, "ai", "arrived", fmt.Sprintf("(%.2f,%.2f)", t.lastKnown.X, t.lastKnown.Y), 0)
		}
	default:
		t.wander(dt)
		t.setState(t, AIWander)
	}
}

// chase turns hull and turret toward degrees, drives once the hull is
// roughly aligned and fires when the turret is on target.
func (t *EnemyTank) chase(degrees, dt float64, hasLoS bool) {
	t.orientation = TurnedTowards(t.orientation, degrees, enemyTankTurnSpeed*dt)
	if math.Abs(AngularDisplacement(t.orientation, degrees)) <= aiDriveTolerance {
		t.advance(dt)
	}
	t.aimTurret(t, degrees, enemyTankTopTurnSpeed, dt, hasLoS)
}

// wander drives forward, steering away from whichever whisker touches a
// solid tile and U-turning when the centre one does.
func (t *EnemyTank) wander(dt float64) {
	left := t.castWhisker(0, t.orientation+enemyTankWhiskerAngle, enemyTankWhiskerRange)
	centre := t.castWhisker(1, t.orientation, t.cosmeticRadius)
	right := t.castWhisker(2, t.orientation-enemyTankWhiskerAngle, enemyTankWhiskerRange)

	turn := enemyTankTurnSpeed * dt
	topTurn := enemyTankTopTurnSpeed * dt

	switch {
	case centre.Impact:
		t.orientation = TurnedTowards(t.orientation, t.orientation+enemyTankUTurnDegrees, turn)
		return
	case !left.Impact && !right.Impact:
	case left.Impact != right.Impact:
		// Veer away from the side that touched.
		if right.Impact {
			t.steer(turn, topTurn)
		} else {
			t.steer(-turn, -topTurn)
		}
	default:
		if left.Distance > right.Distance {
			t.steer(turn, topTurn)
		} else {
			t.steer(-turn, -topTurn)
		}
	}
	t.advance(dt)
}

func (t *EnemyTank) steer(hull, top float64) {
	t.orientation = normalizeDegrees(t.orientation + hull)
	t.turret = normalizeDegrees(t.turret + top)
}

func (t *EnemyTank) castWhisker(i int, degrees, length float64) RaycastResult {
	dir := FromPolarDegrees(degrees, 1)
	res := t.m.Raycast(t.pos, dir, length)
	t.whiskers[i] = Whisker{From: t.pos, To: t.pos.Add(dir.Scale(length)), Hit: res.Impact}
	if res.Impact {
		t.whiskers[i].To = res.Position
	}
	return res
}

// advance moves forward at top speed scaled by the ground underneath.
func (t *EnemyTank) advance(dt float64) {
	speed := enemyTankMaxSpeed * t.m.tiles.MovementModifier(t.m.tiles.AtWorld(t.pos))
	t.pos = t.pos.Add(t.Forward().Scale(speed * dt))
}

func (t *EnemyTank) Die() { enemyDie(t) }

func (t *EnemyTank) OnCollisionEntity(other Entity) {
	pushOutOfSolidEntity(&t.entityCore, other)
}

func (t *EnemyTank) OnCollisionTile(tile *Tile) {
	pushOutOfSolidTile(&t.entityCore, tile)
}
