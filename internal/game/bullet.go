package game

import (
	"fmt"
	"math"
)

// Bullet travels in a straight line, bouncing off walls and anything it
// cannot hurt until it runs out of bounces.
type Bullet struct {
	entityCore
	source      EntityID
	bouncesLeft int
}

func newBullet(m *Map, pos Vec2, orientation float64, source Entity) *Bullet {
	faction := FactionNone
	var src EntityID
	if source != nil {
		faction = source.Faction()
		src = source.ID()
	}
	b := &Bullet{
		entityCore:  newCore(m, EntityBullet, faction, pos, orientation),
		source:      src,
		bouncesLeft: bulletMaxBounces,
	}
	b.physicsRadius = bulletPhysicsRadius
	b.cosmeticRadius = bulletCosmeticRadius
	b.vel = FromPolarDegrees(orientation, bulletSpeed)
	return b
}

// Source is the handle of the entity that fired the bullet.
func (b *Bullet) Source() EntityID { return b.source }

// BouncesLeft is the number of reflections before the bullet expires.
func (b *Bullet) BouncesLeft() int { return b.bouncesLeft }

// Update moves the bullet, reflecting off the tile it is about to enter
// when that tile is solid.
func (b *Bullet) Update(dt float64) {
	if b.dead || b.m == nil {
		return
	}
	tm := b.m.tiles
	if tm.IsSolid(tm.AtWorld(b.pos)) {
		b.Die()
		return
	}
	next := b.pos.Add(b.vel.Scale(dt))
	if tm.IsSolid(tm.AtWorld(next)) {
		b.bounce(b.entryNormal(next))
		if b.dead {
			return
		}
		next = b.pos.Add(b.vel.Scale(dt))
	}
	b.pos = next
}

// entryNormal is the normal of the face crossed moving from the bullet's
// tile toward next. Crossing a corner into a tile whose side neighbours are
// both open or both solid reverses both axes.
func (b *Bullet) entryNormal(next Vec2) Vec2 {
	tm := b.m.tiles
	cur, to := tm.TileCoordsFromWorld(b.pos), tm.TileCoordsFromWorld(next)
	var n Vec2
	crossX, crossY := to.X != cur.X, to.Y != cur.Y
	if crossX && crossY {
		solidX := tm.IsSolidAt(to.X, cur.Y)
		solidY := tm.IsSolidAt(cur.X, to.Y)
		if solidX != solidY {
			crossX, crossY = solidX, solidY
		}
	}
	if crossX {
		n.X = -sign(b.vel.X)
	}
	if crossY {
		n.Y = -sign(b.vel.Y)
	}
	return n
}

// OnCollisionTile reflects off a solid tile. The normal runs from the tile's
// nearest point to the bullet; when the bullet sits on a face it is that
// face's outward normal.
func (b *Bullet) OnCollisionTile(tile *Tile) {
	if b.m == nil || !b.m.tiles.IsSolid(tile) {
		return
	}
	normal := b.pos.Sub(tile.Bounds.ClosestPoint(b.pos))
	if normal.LengthSquared() < 1e-18 {
		normal = faceNormal(tile.Bounds, b.pos)
	}
	b.bounce(normal)
}

// faceNormal is the outward normal of the box face nearest p.
func faceNormal(box AABB2, p Vec2) Vec2 {
	d := p.Sub(box.Center())
	if math.Abs(d.X) >= math.Abs(d.Y) {
		return Vec2{sign(d.X), 0}
	}
	return Vec2{0, sign(d.Y)}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// OnCollisionEntity damages killable opponents of another faction and
// bounces off everything else that is solid.
func (b *Bullet) OnCollisionEntity(other Entity) {
	if b.dead {
		return
	}
	switch other.Type() {
	case EntityBullet, EntityExplosion:
		return
	}
	if b.faction != FactionNone && other.Faction() == b.faction {
		return
	}
	if other.IsKillable() {
		b.m.record(b, "bullet", "hit", fmt.Sprintf("%s hp=%d", other.Label(), other.Health()-bulletDamage), float64(bulletDamage))
		takeDamage(other, bulletDamage)
		b.Die()
		return
	}
	if !other.IsSolid() {
		return
	}
	pushDiscOutOfDisc(&b.pos, b.physicsRadius, other.Position(), other.PhysicsRadius())
	b.bounce(b.pos.Sub(other.Position()))
}

// bounce reflects the velocity about normal and spends one bounce. A zero
// normal gives no direction to reflect about and is ignored.
func (b *Bullet) bounce(normal Vec2) {
	if normal.LengthSquared() < 1e-18 {
		return
	}
	b.vel = reflectAbout(b.vel, normal)
	b.orientation = normalizeDegrees(b.vel.OrientationDegrees())
	b.bouncesLeft--
	if b.m != nil {
		b.m.audio.Play(SoundBulletBounce)
		b.m.record(b, "bullet", "bounce", fmt.Sprintf("%d left", b.bouncesLeft), float64(b.bouncesLeft))
	}
	if b.bouncesLeft <= 0 {
		b.Die()
	}
}

func (b *Bullet) Die() {
	if b.dead {
		return
	}
	b.markDead(true)
	if b.m != nil {
		b.m.SpawnExplosion(b.pos, explosionScaleSmall, explosionDuration)
	}
}
