package game

// Boulder is an indestructible rock that tanks can shove around and bullets
// bounce off.
type Boulder struct {
	entityCore
}

func newBoulder(m *Map, pos Vec2, orientation float64) *Boulder {
	b := &Boulder{entityCore: newCore(m, EntityBoulder, FactionNone, pos, orientation)}
	b.physicsRadius = boulderPhysicsRadius
	b.cosmeticRadius = boulderCosmeticRadius
	b.solid = true
	return b
}

func (b *Boulder) Update(float64) {}

func (b *Boulder) Die() { b.markDead(true) }

// OnCollisionEntity does nothing; whoever hits the boulder does the pushing.
func (b *Boulder) OnCollisionEntity(Entity) {}

func (b *Boulder) OnCollisionTile(tile *Tile) {
	pushOutOfSolidTile(&b.entityCore, tile)
}
