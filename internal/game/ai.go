package game

import (
	"fmt"
	"math"
)

// AIState is the behaviour an AI entity settled on this tick. It is derived
// from perception each tick, not stored as a transition table.
type AIState uint8

const (
	AIWander      AIState = iota // No target in sight; patrol
	AIChase                      // Target visible and in range
	AIInvestigate                // Tank heading to the last known position
	AIScan                       // Turret sweeping around the last bearing
)

func (s AIState) String() string {
	switch s {
	case AIWander:
		return "wander"
	case AIChase:
		return "chase"
	case AIInvestigate:
		return "investigate"
	case AIScan:
		return "scan"
	default:
		return "unknown"
	}
}

// brain is the perception and gun state shared by the AI kinds.
type brain struct {
	target       EntityID
	lastKnown    Vec2
	gunCooldown  float64
	turret       float64 // turret heading, degrees
	state        AIState
	barrelOffset float64
	fireInterval float64
	sightRange   float64
}

// Target returns the handle of the current target; ok is false when the AI
// has none.
func (b *brain) Target() (EntityID, bool) { return b.target, b.target.Valid() }

// LastKnownPosition is where the target was last seen.
func (b *brain) LastKnownPosition() Vec2 { return b.lastKnown }

// TurretOrientation is the gun heading in degrees.
func (b *brain) TurretOrientation() float64 { return b.turret }

// GunCooldown is the time until the gun may fire again; <= 0 means ready.
func (b *brain) GunCooldown() float64 { return b.gunCooldown }

// State is the behaviour chosen on the last Update.
func (b *brain) State() AIState { return b.state }

// SightRange is how far the AI can spot a target.
func (b *brain) SightRange() float64 { return b.sightRange }

// currentTarget re-validates the weak target and reacquires when it is gone
// or dead. It returns nil, clearing the handle, when no player is alive.
func (b *brain) currentTarget(m *Map) Entity {
	t := m.entities.Lookup(b.target)
	if t != nil && t.IsAlive() {
		return t
	}
	t = m.AcquireNewTarget()
	if t == nil {
		b.target = EntityID{}
		return nil
	}
	b.target = t.ID()
	return t
}

// setState records a behaviour change.
func (b *brain) setState(self Entity, s AIState) {
	if s == b.state {
		return
	}
	prev := b.state
	b.state = s
	if m := self.core().m; m != nil {
		m.record(self, "ai", "state_change", fmt.Sprintf("%s → %s", prev, s), 0)
	}
}

// shoot fires along the turret heading when the gun is ready.
func (b *brain) shoot(self Entity) bool {
	if b.gunCooldown > 0 {
		return false
	}
	c := self.core()
	m := c.m
	barrel := c.pos.Add(FromPolarDegrees(b.turret, b.barrelOffset))
	m.audio.Play(SoundEnemyShoot)
	m.Spawn(EntityBullet, barrel, b.turret, self)
	m.SpawnExplosion(barrel, explosionScaleSmall, explosionMuzzleSeconds)
	b.gunCooldown = b.fireInterval
	m.record(self, "fire", "shot", fmt.Sprintf("%.0f°", b.turret), b.turret)
	return true
}

// aimTurret turns the turret toward degrees and fires once it is within the
// fire tolerance and the target is visible.
func (b *brain) aimTurret(self Entity, degrees, turnRate, dt float64, hasLoS bool) {
	b.turret = TurnedTowards(b.turret, degrees, turnRate*dt)
	if hasLoS && math.Abs(AngularDisplacement(b.turret, degrees)) <= aiFireTolerance {
		b.shoot(self)
	}
}

// enemyDie is the shared death: sound, large explosion, removal at end of tick.
func enemyDie(e Entity) {
	c := e.core()
	if c.dead {
		return
	}
	c.markDead(true)
	if c.m == nil {
		return
	}
	c.m.audio.Play(SoundEnemyDie)
	c.m.SpawnExplosion(c.pos, explosionScaleLarge, explosionDuration)
	c.m.record(e, "death", c.kind.String(), fmt.Sprintf("(%.2f,%.2f)", c.pos.X, c.pos.Y), 0)
	c.m.log.WithField("entity", c.Label()).Debug("enemy destroyed")
}
