package game

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// PlayerTank is driven by one controller. The left stick sets hull heading
// and thrust, the right stick the turret heading.
type PlayerTank struct {
	entityCore
	playerID    int
	extraLives  int
	turret      float64
	gunCooldown float64
	invincible  bool
}

func newPlayerTank(m *Map, id int) *PlayerTank {
	p := &PlayerTank{
		entityCore: newCore(m, EntityPlayerTank, playerFaction(m, id), Vec2{}, 0),
		playerID:   id,
		extraLives: playerTankExtraLives,
	}
	p.physicsRadius = playerTankPhysicsRadius
	p.cosmeticRadius = playerTankCosmeticRadius
	p.health = playerTankMaxHealth
	p.hitSound = SoundPlayerHit
	p.killable = true
	p.solid = true
	if m != nil && !m.playerCollision {
		p.SetInvincible(true)
		p.solid = false
	}
	return p
}

// playerFaction keeps co-op players on one side and pits arena players
// against each other.
func playerFaction(m *Map, id int) Faction {
	if m != nil && m.arena {
		return FactionPlayer0 + Faction(id)
	}
	return FactionPlayer0
}

// PlayerID is the controller index this tank answers to.
func (p *PlayerTank) PlayerID() int { return p.playerID }

// ExtraLives is how many respawns remain.
func (p *PlayerTank) ExtraLives() int { return p.extraLives }

// TurretOrientation is the gun heading in degrees.
func (p *PlayerTank) TurretOrientation() float64 { return p.turret }

// GunCooldown is the time until the gun may fire again.
func (p *PlayerTank) GunCooldown() float64 { return p.gunCooldown }

// SetInvincible stops bullets from hurting the tank.
func (p *PlayerTank) SetInvincible(v bool) {
	p.invincible = v
	p.killable = !v
}

// IsInvincible reports the invincibility toggle.
func (p *PlayerTank) IsInvincible() bool { return p.invincible }

// resetForMap readies the tank for a fresh map after a transfer.
func (p *PlayerTank) resetForMap() {
	p.pos = p.m.PlayerStartPosition(p.playerID)
	p.vel = Vec2{}
	p.orientation = 0
	p.turret = 0
	p.gunCooldown = 0
	p.faction = playerFaction(p.m, p.playerID)
}

func (p *PlayerTank) Update(dt float64) {
	if p.m == nil {
		return
	}
	ctrl := p.m.input.Controller(p.playerID)
	if p.dead {
		if ctrl.Respawn && p.extraLives > 0 {
			p.respawn()
		}
		return
	}

	thrust := clampF(ctrl.Left.Magnitude, 0, 1)
	hullGoal := p.orientation
	if thrust > 0 {
		hullGoal = ctrl.Left.Degrees
	}
	topGoal := p.turret
	if ctrl.Right.Magnitude > 0 {
		topGoal = ctrl.Right.Degrees
	}

	p.gunCooldown -= dt
	if ctrl.Fire {
		p.shoot()
	}

	p.solid = p.m.playerCollision

	p.orientation = TurnedTowards(p.orientation, hullGoal, playerTankTurnSpeed*dt)
	speed := playerTankMaxSpeed * thrust * p.m.tiles.MovementModifier(p.m.tiles.AtWorld(p.pos))
	p.pos = p.pos.Add(p.Forward().Scale(speed * dt))
	p.turret = TurnedTowards(p.turret, topGoal, playerTankTopTurnSpeed*dt)

	p.checkExit()
}

func (p *PlayerTank) shoot() {
	if p.gunCooldown > 0 {
		return
	}
	barrel := p.pos.Add(FromPolarDegrees(p.turret, playerTankBarrelOffset))
	p.m.audio.Play(SoundPlayerShoot)
	p.m.Spawn(EntityBullet, barrel, p.turret, p)
	p.m.SpawnExplosion(barrel, explosionScaleSmall, explosionMuzzleSeconds)
	p.gunCooldown = playerTankFireInterval
	p.m.record(p, "fire", "shot", fmt.Sprintf("%.0f°", p.turret), p.turret)
}

// checkExit flags the map as finished when the tank stands on the exit. In
// an arena only the last tank alive may leave.
func (p *PlayerTank) checkExit() {
	if p.m.exitReached || p.m.tiles.AtWorld(p.pos).Type != TileExit {
		return
	}
	if p.m.arena && !p.m.IsOnlyOnePlayerAlive() {
		return
	}
	p.m.exitReached = true
	p.m.record(p, "player", "exit", fmt.Sprintf("player %d", p.playerID), float64(p.playerID))
	p.m.log.WithField("player", p.playerID).Info("exit reached")
}

func (p *PlayerTank) respawn() {
	p.extraLives--
	p.pos = p.m.PlayerStartPosition(p.playerID)
	p.vel = Vec2{}
	p.health = playerTankMaxHealth
	p.gunCooldown = 0
	p.dead = false
	p.garbage = false
	p.m.record(p, "player", "respawn", fmt.Sprintf("%d lives left", p.extraLives), float64(p.extraLives))
	p.m.log.WithFields(logrus.Fields{"player": p.playerID, "lives": p.extraLives}).Info("player respawned")
}

// Die leaves the tank on the map, dead, so its controller can respawn it.
func (p *PlayerTank) Die() {
	if p.dead {
		return
	}
	p.markDead(false)
	if p.m == nil {
		return
	}
	p.m.audio.Play(SoundPlayerDie)
	for _, deg := range [3]float64{0, 120, 240} {
		p.m.SpawnExplosion(p.pos.Add(FromPolarDegrees(deg, playerTankDeathBurst)), explosionScaleLarge, explosionDuration)
	}
	p.m.record(p, "death", EntityPlayerTank.String(), fmt.Sprintf("(%.2f,%.2f)", p.pos.X, p.pos.Y), 0)
	p.m.log.WithFields(logrus.Fields{"player": p.playerID, "lives": p.extraLives}).Info("player destroyed")
}

func (p *PlayerTank) OnCollisionEntity(other Entity) {
	pushOutOfSolidEntity(&p.entityCore, other)
}

func (p *PlayerTank) OnCollisionTile(tile *Tile) {
	if !p.solid {
		return
	}
	pushOutOfSolidTile(&p.entityCore, tile)
}
