package game

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators a Map draws on. Zero fields get silent defaults.
type Deps struct {
	RNG    RNG
	Audio  AudioSink
	Input  InputSource
	Logger logrus.FieldLogger
	Events *SimLog // nil disables event recording
}

func (d Deps) withDefaults() Deps {
	if d.RNG == nil {
		d.RNG = NewSeededRNG(1)
	}
	if d.Audio == nil {
		d.Audio = NopAudio{}
	}
	if d.Input == nil {
		d.Input = NoInput{}
	}
	if d.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.Logger = l
	}
	return d
}

// Map is one playable level: the tile grid plus every entity on it.
//
// Update advances one tick in a fixed order: controller admission, entity
// updates in registry order, explosion updates, tile collision, entity
// collision, garbage collection.
type Map struct {
	id    string
	name  string
	arena bool

	tiles    *TileMap
	entities *EntityRegistry

	rng    RNG
	audio  AudioSink
	input  InputSource
	log    logrus.FieldLogger
	events *SimLog

	tick  int
	clock float64

	playerCollision bool
	exitReached     bool
}

// newMap wires an unpopulated map around an existing grid.
func newMap(name string, tiles *TileMap, arena bool, deps Deps) *Map {
	deps = deps.withDefaults()
	id := uuid.NewString()
	return &Map{
		id:              id,
		name:            name,
		arena:           arena,
		tiles:           tiles,
		entities:        newEntityRegistry(),
		rng:             deps.RNG,
		audio:           deps.Audio,
		input:           deps.Input,
		log:             deps.Logger.WithFields(logrus.Fields{"map": name, "map_id": id}),
		events:          deps.Events,
		playerCollision: true,
	}
}

// NewMap validates def and builds the map: ground, border, scatter, bunkers,
// exit and the starting population. Connected controllers join first.
func NewMap(def MapDef, catalog *TileCatalog, deps Deps) (*Map, error) {
	return buildMap(def, catalog, deps, true)
}

// buildMap is NewMap with controller admission optional; maps entered
// through SendPlayersToMap receive their tanks from the previous map.
func buildMap(def MapDef, catalog *TileCatalog, deps Deps, admit bool) (*Map, error) {
	if catalog == nil {
		catalog = DefaultTileCatalog()
	}
	if err := def.Validate(catalog); err != nil {
		return nil, err
	}
	m := newMap(def.Name, NewTileMap(def.Width, def.Height, def.Ground, catalog), def.Arena, deps)
	if admit {
		m.admitPlayers()
	}
	if err := m.build(def); err != nil {
		return nil, fmt.Errorf("build map %q: %w", def.Name, err)
	}
	m.log.WithFields(logrus.Fields{
		"width":    def.Width,
		"height":   def.Height,
		"arena":    def.Arena,
		"entities": m.entities.Len(),
	}).Info("map built")
	m.record(nil, "map", "built", fmt.Sprintf("%dx%d arena=%t", def.Width, def.Height, def.Arena), float64(m.entities.Len()))
	return m, nil
}

// ID is the unique instance id used in log fields.
func (m *Map) ID() string { return m.id }

// Name is the MapDef name.
func (m *Map) Name() string { return m.name }

// IsArena reports arena mode.
func (m *Map) IsArena() bool { return m.arena }

// Tiles returns the grid.
func (m *Map) Tiles() *TileMap { return m.tiles }

// Entities returns the registry.
func (m *Map) Entities() *EntityRegistry { return m.entities }

// Tick returns the number of Update calls so far.
func (m *Map) Tick() int { return m.tick }

// Clock returns the simulated seconds elapsed.
func (m *Map) Clock() float64 { return m.clock }

// ExitReached reports that a player stood on the exit tile this map.
func (m *Map) ExitReached() bool { return m.exitReached }

// Events is the attached event log, or nil.
func (m *Map) Events() *SimLog { return m.events }

// Update advances the map by dt seconds.
func (m *Map) Update(dt float64) {
	m.tick++
	m.clock += dt

	m.admitPlayers()

	// Length is re-read every step so same-tick spawns update this tick.
	for i := 0; i < len(m.entities.slots); i++ {
		if e := m.entities.slots[i]; e != nil {
			e.Update(dt)
		}
	}
	for i := 0; i < len(m.entities.explosions); i++ {
		if x := m.entities.explosions[i]; x != nil {
			x.Update(dt)
		}
	}

	m.resolveCollisions()
	m.collectGarbage()
}

// admitPlayers spawns a tank for every newly connected controller.
func (m *Map) admitPlayers() {
	for id := 0; id < MaxPlayers; id++ {
		if m.entities.Player(id) != nil {
			continue
		}
		if !m.input.Controller(id).Connected {
			continue
		}
		p := m.SpawnPlayer(id, m.PlayerStartPosition(id))
		if p == nil {
			continue
		}
		m.audio.Play(SoundPlayerJoin)
		m.log.WithField("player", id).Info("player joined")
		m.record(p, "player", "join", fmt.Sprintf("player %d", id), float64(id))
	}
}

// Spawn creates an entity of the given kind and registers it. source is the
// shooter for bullets and ignored otherwise. Player tanks take the first
// free player id; Spawn returns nil when all are taken. Explosions are
// spawned large.
func (m *Map) Spawn(kind EntityType, pos Vec2, orientation float64, source Entity) Entity {
	var e Entity
	switch kind {
	case EntityBoulder:
		e = newBoulder(m, pos, orientation)
	case EntityEnemyTank:
		e = newEnemyTank(m, pos, orientation)
	case EntityEnemyTurret:
		e = newEnemyTurret(m, pos, orientation)
	case EntityBullet:
		e = newBullet(m, pos, orientation, source)
	case EntityPlayerTank:
		for id := 0; id < MaxPlayers; id++ {
			if m.entities.Player(id) == nil {
				p := m.SpawnPlayer(id, pos)
				p.SetOrientation(orientation)
				return p
			}
		}
		return nil
	case EntityExplosion:
		return m.SpawnExplosion(pos, explosionScaleLarge, explosionDuration)
	default:
		return nil
	}
	m.register(e)
	return e
}

func (m *Map) register(e Entity) {
	m.entities.add(e)
	pos := e.Position()
	m.log.WithFields(logrus.Fields{
		"tick":   m.tick,
		"entity": e.Label(),
		"type":   e.Type().String(),
	}).Debugf("spawn at (%.2f,%.2f)", pos.X, pos.Y)
	m.record(e, "spawn", e.Type().String(), fmt.Sprintf("(%.2f,%.2f) %.0f°", pos.X, pos.Y, e.Orientation()), 0)
}

// SpawnPlayer places player id's tank at pos. It returns nil if the id is out
// of range or already has a tank on this map.
func (m *Map) SpawnPlayer(id int, pos Vec2) *PlayerTank {
	if id < 0 || id >= MaxPlayers || m.entities.Player(id) != nil {
		return nil
	}
	p := newPlayerTank(m, id)
	p.pos = pos
	m.register(p)
	return p
}

// SpawnExplosion adds a cosmetic explosion.
func (m *Map) SpawnExplosion(pos Vec2, scale, duration float64) *Explosion {
	x := newExplosion(m, pos, scale, duration)
	m.entities.addExplosion(x)
	return x
}

// AcquireNewTarget picks uniformly among the alive player tanks, or returns
// nil when none is alive.
func (m *Map) AcquireNewTarget() Entity {
	var alive []Entity
	for _, e := range m.entities.OfType(EntityPlayerTank) {
		if e != nil && e.IsAlive() {
			alive = append(alive, e)
		}
	}
	if len(alive) == 0 {
		return nil
	}
	return alive[m.rng.IntLessThan(len(alive))]
}

// HasLineOfSight returns true if no solid tile lies between the two entities.
func (m *Map) HasLineOfSight(a, b Entity) bool {
	return m.tiles.HasLineOfSightPoints(a.Position(), b.Position())
}

// Raycast is TileMap.Raycast on this map's grid.
func (m *Map) Raycast(origin, dir Vec2, maxDistance float64) RaycastResult {
	return m.tiles.Raycast(origin, dir, maxDistance)
}

// PlayerStartPosition returns the spawn point for a player id: the start
// bunker in campaign maps, one corner bunker per player in arena maps.
func (m *Map) PlayerStartPosition(id int) Vec2 {
	offX, offY := 1.0, 1.0
	if m.arena {
		offX = float64(m.tiles.Cols) - 3
		offY = float64(m.tiles.Rows) - 3
	}
	return Vec2{
		X: float64(id%2)*offX + 1.5,
		Y: float64(1-id/2)*offY + 1.5,
	}
}

// Players returns the per-id player sublist.
func (m *Map) Players() []*PlayerTank {
	out := make([]*PlayerTank, MaxPlayers)
	for id := range out {
		out[id] = m.entities.Player(id)
	}
	return out
}

// PlayerCount returns how many players have a tank on this map.
func (m *Map) PlayerCount() int {
	return m.entities.Count(EntityPlayerTank)
}

// AreAllPlayersDead reports that no player tank is alive or able to respawn.
func (m *Map) AreAllPlayersDead() bool {
	for _, p := range m.Players() {
		if p != nil && (p.IsAlive() || p.ExtraLives() > 0) {
			return false
		}
	}
	return true
}

// IsOnlyOnePlayerAlive reports exactly one living player tank.
func (m *Map) IsOnlyOnePlayerAlive() bool {
	alive := 0
	for _, p := range m.Players() {
		if p != nil && p.IsAlive() {
			alive++
		}
	}
	return alive == 1
}

// SetPlayerCollision turns player solidity on or off. Players without
// collision are also invincible.
func (m *Map) SetPlayerCollision(enabled bool) {
	m.playerCollision = enabled
	for _, p := range m.Players() {
		if p != nil {
			p.SetInvincible(!enabled)
			p.solid = enabled
		}
	}
	m.log.WithField("enabled", enabled).Info("player collision toggled")
}

// PlayerCollision reports the player collision toggle.
func (m *Map) PlayerCollision() bool { return m.playerCollision }

// SendPlayersToMap moves every player tank from m to next, placing each at
// its start position on next with the faction next's mode calls for.
func (m *Map) SendPlayersToMap(next *Map) {
	for _, p := range m.Players() {
		if p == nil {
			continue
		}
		m.entities.remove(p)
		p.m = next
		p.resetForMap()
		next.entities.add(p)
		next.record(p, "player", "arrive", fmt.Sprintf("player %d from %s", p.playerID, m.name), float64(p.playerID))
	}
	next.SetPlayerCollision(m.playerCollision)
}

// Shutdown destroys every remaining entity.
func (m *Map) Shutdown() {
	for _, e := range m.entities.All() {
		if e != nil {
			m.destroy(e)
		}
	}
	for _, x := range m.entities.Explosions() {
		if x != nil {
			m.entities.removeExplosion(x)
			x.shutdown()
		}
	}
	m.log.Info("map shut down")
}

// record appends to the event log if one is attached. e may be nil for
// map-wide events.
func (m *Map) record(e Entity, category, key, value string, num float64) {
	if m.events == nil {
		return
	}
	label, faction := "--", "--"
	if e != nil {
		label = e.Label()
		faction = e.Faction().String()
	}
	m.events.Add(m.tick, label, faction, category, key, value, num)
}
