package game

// EntityRegistry owns every entity on a map.
//
// The main list never shrinks: removal nils a slot and the next spawn reuses
// the lowest nil slot. Each slot carries a generation so stale EntityIDs stop
// resolving. Explosions live in their own list and never take part in
// gameplay collision; their IDs never resolve through Lookup.
type EntityRegistry struct {
	slots      []Entity
	gens       []uint32
	byType     [entityTypeCount][]Entity
	explosions []*Explosion
}

func newEntityRegistry() *EntityRegistry {
	r := &EntityRegistry{}
	r.byType[EntityPlayerTank] = make([]Entity, MaxPlayers)
	return r
}

// firstNil returns the index of the first nil entry, or -1.
func firstNil(list []Entity) int {
	for i, e := range list {
		if e == nil {
			return i
		}
	}
	return -1
}

// add inserts e into the main list and its type sublist and stamps its ID.
func (r *EntityRegistry) add(e Entity) EntityID {
	slot := firstNil(r.slots)
	if slot < 0 {
		slot = len(r.slots)
		r.slots = append(r.slots, nil)
		r.gens = append(r.gens, 0)
	}
	r.slots[slot] = e
	r.gens[slot]++
	id := EntityID{Slot: slot, Gen: r.gens[slot]}
	e.core().id = id

	kind := e.Type()
	if p, ok := e.(*PlayerTank); ok {
		r.byType[kind][p.playerID] = e
		return id
	}
	if i := firstNil(r.byType[kind]); i >= 0 {
		r.byType[kind][i] = e
	} else {
		r.byType[kind] = append(r.byType[kind], e)
	}
	return id
}

// remove nils e's slots. It is a no-op for entities that are not registered.
func (r *EntityRegistry) remove(e Entity) {
	id := e.ID()
	if id.Slot < 0 || id.Slot >= len(r.slots) || r.slots[id.Slot] != e {
		return
	}
	r.slots[id.Slot] = nil
	r.gens[id.Slot]++

	list := r.byType[e.Type()]
	for i, x := range list {
		if x == e {
			list[i] = nil
			break
		}
	}
}

func (r *EntityRegistry) addExplosion(x *Explosion) {
	for i, e := range r.explosions {
		if e == nil {
			r.explosions[i] = x
			x.id = EntityID{Slot: i}
			return
		}
	}
	x.id = EntityID{Slot: len(r.explosions)}
	r.explosions = append(r.explosions, x)
}

func (r *EntityRegistry) removeExplosion(x *Explosion) {
	for i, e := range r.explosions {
		if e == x {
			r.explosions[i] = nil
			return
		}
	}
}

// Lookup resolves a weak handle. It returns nil once the entity was removed.
func (r *EntityRegistry) Lookup(id EntityID) Entity {
	if !id.Valid() || id.Slot < 0 || id.Slot >= len(r.slots) {
		return nil
	}
	if r.gens[id.Slot] != id.Gen {
		return nil
	}
	return r.slots[id.Slot]
}

// All returns the main list. Entries may be nil.
func (r *EntityRegistry) All() []Entity { return r.slots }

// OfType returns the sublist for a kind. Entries may be nil; the player
// sublist always has MaxPlayers entries indexed by player id.
func (r *EntityRegistry) OfType(t EntityType) []Entity {
	if t >= entityTypeCount {
		return nil
	}
	return r.byType[t]
}

// Explosions returns the explosion list. Entries may be nil.
func (r *EntityRegistry) Explosions() []*Explosion { return r.explosions }

// Player returns the tank for a player id, or nil.
func (r *EntityRegistry) Player(id int) *PlayerTank {
	if id < 0 || id >= MaxPlayers {
		return nil
	}
	p, _ := r.byType[EntityPlayerTank][id].(*PlayerTank)
	return p
}

// Count returns the number of registered entities of kind t.
func (r *EntityRegistry) Count(t EntityType) int {
	n := 0
	if t == EntityExplosion {
		for _, x := range r.explosions {
			if x != nil {
				n++
			}
		}
		return n
	}
	for _, e := range r.OfType(t) {
		if e != nil {
			n++
		}
	}
	return n
}

// Len returns the capacity of the main list, nil slots included.
func (r *EntityRegistry) Len() int { return len(r.slots) }
