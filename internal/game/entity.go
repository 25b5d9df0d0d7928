package game

import (
	"errors"
	"fmt"
	"strings"
)

// EntityType tags every simulated object.
type EntityType uint8

const (
	EntityBoulder     EntityType = iota // Pushable rock
	EntityEnemyTank                     // Wandering, chasing AI tank
	EntityEnemyTurret                   // Stationary scanning AI gun
	EntityPlayerTank                    // Controller-driven tank
	EntityBullet                        // Bouncing projectile
	EntityExplosion                     // Cosmetic, timed
	entityTypeCount                     // sentinel
)

var entityTypeNames = [entityTypeCount]string{
	EntityBoulder:     "boulder",
	EntityEnemyTank:   "enemy_tank",
	EntityEnemyTurret: "enemy_turret",
	EntityPlayerTank:  "player_tank",
	EntityBullet:      "bullet",
	EntityExplosion:   "explosion",
}

// entityTypeCodes are the short labels used in event logs.
var entityTypeCodes = [entityTypeCount]string{
	EntityBoulder:     "BD",
	EntityEnemyTank:   "ET",
	EntityEnemyTurret: "TU",
	EntityPlayerTank:  "PT",
	EntityBullet:      "BU",
	EntityExplosion:   "EX",
}

// ErrUnknownEntityType is returned for entity names that do not parse.
var ErrUnknownEntityType = errors.New("unknown entity type")

func (t EntityType) String() string {
	if t < entityTypeCount {
		return entityTypeNames[t]
	}
	return fmt.Sprintf("entity(%d)", uint8(t))
}

// ParseEntityType maps a config name (e.g. "enemy_turret") to its EntityType.
func ParseEntityType(name string) (EntityType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range entityTypeNames {
		if s == n {
			return EntityType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEntityType, name)
}

// Faction decides who bullets may hurt.
type Faction int8

const (
	FactionPlayer0 Faction = iota
	FactionPlayer1
	FactionPlayer2
	FactionPlayer3
	FactionEnemy
	FactionNone Faction = -1
)

func (f Faction) String() string {
	switch {
	case f >= FactionPlayer0 && f <= FactionPlayer3:
		return fmt.Sprintf("p%d", int(f))
	case f == FactionEnemy:
		return "enemy"
	default:
		return "--"
	}
}

// EntityID is a weak handle to a registry slot. It stops resolving once the
// entity it named has been removed, even if the slot is later reused.
// The zero value never resolves.
type EntityID struct {
	Slot int
	Gen  uint32
}

// Valid reports whether the handle was ever issued.
func (id EntityID) Valid() bool { return id.Gen != 0 }

func (id EntityID) String() string { return fmt.Sprintf("#%d/%d", id.Slot, id.Gen) }

// Entity is implemented by the six simulated kinds and nothing else.
type Entity interface {
	ID() EntityID
	Type() EntityType
	Faction() Faction
	Label() string
	Position() Vec2
	Orientation() float64
	PhysicsRadius() float64
	CosmeticRadius() float64
	Health() int
	IsAlive() bool
	IsGarbage() bool
	IsKillable() bool
	IsSolid() bool
	IsMovable() bool

	Update(dt float64)
	Die()
	OnCollisionEntity(other Entity)
	OnCollisionTile(tile *Tile)

	core() *entityCore
}

// entityCore holds the state every kind shares.
type entityCore struct {
	m       *Map
	id      EntityID
	kind    EntityType
	faction Faction

	pos         Vec2
	vel         Vec2
	orientation float64

	physicsRadius  float64
	cosmeticRadius float64

	health   int
	dead     bool
	garbage  bool
	killable bool
	solid    bool
	movable  bool

	hitSound SoundID
}

func newCore(m *Map, kind EntityType, faction Faction, pos Vec2, orientation float64) entityCore {
	return entityCore{
		m:           m,
		kind:        kind,
		faction:     faction,
		pos:         pos,
		orientation: normalizeDegrees(orientation),
		movable:     true,
		hitSound:    SoundNone,
	}
}

func (c *entityCore) core() *entityCore { return c }
func (c *entityCore) ID() EntityID { return c.id }
func (c *entityCore) Type() EntityType { return c.kind }
func (c *entityCore) Faction() Faction { return c.faction }
func (c *entityCore) Position() Vec2 { return c.pos }
func (c *entityCore) Velocity() Vec2 { return c.vel }
func (c *entityCore) Orientation() float64 { return c.orientation }
func (c *entityCore) PhysicsRadius() float64 { return c.physicsRadius }
func (c *entityCore) CosmeticRadius() float64 { return c.cosmeticRadius }
func (c *entityCore) Health() int { return c.health }
func (c *entityCore) IsAlive() bool { return !c.dead }
func (c *entityCore) IsGarbage() bool { return c.garbage }
func (c *entityCore) IsKillable() bool { return c.killable }
func (c *entityCore) IsSolid() bool { return c.solid }
func (c *entityCore) IsMovable() bool { return c.movable }
func (c *entityCore) Forward() Vec2 { return FromPolarDegrees(c.orientation, 1) }
func (c *entityCore) SetPosition(p Vec2) { c.pos = p }
func (c *entityCore) SetOrientation(d float64) { c.orientation = normalizeDegrees(d) }

// Label is the short log name, e.g. "ET3".
func (c *entityCore) Label() string {
	return fmt.Sprintf("%s%d", entityTypeCodes[c.kind], c.id.Slot)
}

// markDead flags the entity dead; garbage additionally schedules removal.
func (c *entityCore) markDead(garbage bool) {
	c.dead = true
	if garbage {
		c.garbage = true
	}
}

// shutdown releases the map back-reference once the entity is destroyed.
func (c *entityCore) shutdown() {
	c.m = nil
}

// takeDamage applies damage to a killable entity and kills it at zero health.
func takeDamage(e Entity, amount int) {
	c := e.core()
	if !c.killable || c.dead {
		return
	}
	if c.m != nil {
		c.m.audio.Play(c.hitSound)
	}
	c.health -= amount
	if c.health <= 0 {
		e.Die()
	}
}

// pushOutOfSolidTile keeps a disc entity from overlapping a solid tile.
func pushOutOfSolidTile(c *entityCore, tile *Tile) {
	if c.m == nil || !c.m.tiles.IsSolid(tile) {
		return
	}
	pushDiscOutOfAABB(&c.pos, c.physicsRadius, tile.Bounds)
}

// pushOutOfSolidEntity separates two solid discs. A movable opponent shares
// the overlap; an immovable one pushes self by the whole overlap.
func pushOutOfSolidEntity(self *entityCore, other Entity) {
	if !self.solid || !other.IsSolid() {
		return
	}
	oc := other.core()
	if oc.movable {
		pushDiscsOutOfEachOther(&self.pos, self.physicsRadius, &oc.pos, oc.physicsRadius)
		return
	}
	pushDiscOutOfDisc(&self.pos, self.physicsRadius, oc.pos, oc.physicsRadius)
}
