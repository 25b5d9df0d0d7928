package game

// neighborOffsets are the eight tiles an entity tests against each tick:
// N, S, W, E, NW, NE, SW, SE.
var neighborOffsets = [8]TileCoords{
	{0, 1}, {0, -1}, {-1, 0}, {1, 0},
	{-1, 1}, {1, 1}, {-1, -1}, {1, -1},
}

// collides reports whether e takes part in collision this pass.
func collides(e Entity) bool {
	return e != nil && e.IsAlive() && !e.IsGarbage()
}

// resolveCollisions runs the tile pass then the entity pass. Each pass walks
// the main list by index up to the length it had when the pass began.
func (m *Map) resolveCollisions() {
	m.resolveTileCollisions()
	m.resolveEntityCollisions()
}

// resolveTileCollisions hands every non-bullet entity the eight tiles around
// it. Bullets handle their own tile contacts during Update.
func (m *Map) resolveTileCollisions() {
	all := m.entities.All()
	n := len(all)
	for i := 0; i < n; i++ {
		e := all[i]
		if !collides(e) || e.Type() == EntityBullet {
			continue
		}
		here := m.tiles.TileCoordsFromWorld(e.Position())
		for _, off := range neighborOffsets {
			e.OnCollisionTile(m.tiles.At(here.Add(off)))
		}
	}
}

// resolveEntityCollisions tests every unordered pair once. Overlapping pairs
// are told about each other, first to second then second to first. The
// outer entity is screened once per row, so one that dies partway through
// its row still hears about later pairs; handlers guard against that.
func (m *Map) resolveEntityCollisions() {
	all := m.entities.All()
	n := len(all)
	for i := 0; i < n; i++ {
		a := all[i]
		if !collides(a) {
			continue
		}
		for j := i + 1; j < n; j++ {
			b := all[j]
			if !collides(b) {
				continue
			}
			if !discsOverlap(a.Position(), a.PhysicsRadius(), b.Position(), b.PhysicsRadius()) {
				continue
			}
			a.OnCollisionEntity(b)
			b.OnCollisionEntity(a)
		}
	}
}

// collectGarbage removes and shuts down every entity flagged as garbage.
// A slot is visited once per sweep and is nil afterwards, so an entity
// flagged more than once is still destroyed exactly once.
func (m *Map) collectGarbage() {
	for _, e := range m.entities.All() {
		if e != nil && e.IsGarbage() {
			m.destroy(e)
		}
	}
	for _, x := range m.entities.Explosions() {
		if x != nil && x.IsGarbage() {
			m.entities.removeExplosion(x)
			x.shutdown()
		}
	}
}

func (m *Map) destroy(e Entity) {
	m.entities.remove(e)
	m.record(e, "gc", "destroyed", "", 0)
	e.core().shutdown()
}
