package game

// Explosion is a timed cosmetic burst. It has no physics radius and never
// collides.
type Explosion struct {
	entityCore
	scale    float64
	duration float64
	age      float64
}

func newExplosion(m *Map, pos Vec2, scale, duration float64) *Explosion {
	x := &Explosion{
		entityCore: newCore(m, EntityExplosion, FactionNone, pos, 0),
		scale:      scale,
		duration:   duration,
	}
	x.movable = false
	x.cosmeticRadius = explosionRadiusPerScale * scale
	return x
}

// Scale is the size multiplier the explosion was spawned with.
func (x *Explosion) Scale() float64 { return x.scale }

// Progress runs from 0 at spawn to 1 at expiry.
func (x *Explosion) Progress() float64 {
	if x.duration <= 0 {
		return 1
	}
	return clampF(x.age/x.duration, 0, 1)
}

func (x *Explosion) Update(dt float64) {
	if x.dead {
		return
	}
	x.age += dt
	if x.age >= x.duration {
		x.Die()
	}
}

func (x *Explosion) Die() { x.markDead(true) }

func (x *Explosion) OnCollisionEntity(Entity) {}
func (x *Explosion) OnCollisionTile(*Tile) {}
