package game

import (
	"errors"
	"fmt"
)

// ErrNoOpenTile is returned when entity placement cannot find a free tile.
var ErrNoOpenTile = errors.New("no open tile to spawn on")

// bunkerBounds are the inclusive corners of the four 5x5 corner bunkers and
// the map centre.
type bunkerBounds struct {
	xMinLeft, xMaxLeft   int
	yMinBot, yMaxBot     int
	xMinRight, xMaxRight int
	yMinTop, yMaxTop     int
	xCenter, yCenter     int
}

func newBunkerBounds(cols, rows int) bunkerBounds {
	return bunkerBounds{
		xMinLeft:  1,
		xMaxLeft:  SafeZoneSize,
		yMinBot:   1,
		yMaxBot:   SafeZoneSize,
		xMinRight: (cols - 1) - SafeZoneSize,
		xMaxRight: cols - 2,
		yMinTop:   (rows - 1) - SafeZoneSize,
		yMaxTop:   rows - 2,
		xCenter:   cols / 2,
		yCenter:   rows / 2,
	}
}

// Wall stamps, as offsets from the corner each one hangs off.
var (
	// L-shaped mouth of the bottom-left start bunker, from (xMaxLeft, yMaxBot).
	startBunkerWalls = []TileCoords{{-1, -1}, {-1, -2}, {-1, -3}, {-2, -1}, {-3, -1}}
	// Top-right exit bunker, from (xMinRight, yMinTop).
	exitBunkerWalls = []TileCoords{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {3, 1}}
	// Arena top-left bunker, from (xMaxLeft, yMinTop).
	arenaTopLeftWalls = []TileCoords{{-1, 1}, {-1, 2}, {-1, 3}, {-2, 1}, {-3, 1}}
	// Arena bottom-right bunker, from (xMinRight, yMaxBot).
	arenaBottomRightWalls = []TileCoords{{1, -1}, {1, -2}, {1, -3}, {2, -1}, {3, -1}}
	// Arena centre keep, from (xCenter, yCenter). Gaps on the ring's axes
	// let tanks in; the inner pieces shield the exit.
	arenaCenterWalls = []TileCoords{
		{-4, -4}, {-4, -3}, {-4, -2}, {-4, -1}, {-4, 1}, {-4, 2}, {-4, 3}, {-4, 4},
		{-3, -4}, {-3, 4},
		{-2, -4}, {-2, -1}, {-2, 0}, {-2, 1}, {-2, 4},
		{-1, -4}, {-1, 4},
		{0, -2}, {0, 2},
		{1, -4}, {1, 4},
		{2, -4}, {2, -1}, {2, 0}, {2, 1}, {2, 4},
		{3, -4}, {3, 4},
		{4, -4}, {4, -3}, {4, -2}, {4, -1}, {4, 1}, {4, 2}, {4, 3}, {4, 4},
	}
)

// build runs the construction steps after the grid has been filled with ground.
func (m *Map) build(def MapDef) error {
	m.addWallBorder(def.Wall)
	for _, t := range def.scatterOrder() {
		m.addRandomTiles(t, def.Scatter[t])
	}
	m.addSafeBunkers(def.Ground, def.Wall)
	for _, kind := range def.entityOrder() {
		if err := m.addEntities(kind, def.Entities[kind]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) addWallBorder(wall TileType) {
	tm := m.tiles
	for col := 0; col < tm.Cols; col++ {
		tm.SetType(col, 0, wall)
		tm.SetType(col, tm.Rows-1, wall)
	}
	for row := 0; row < tm.Rows; row++ {
		tm.SetType(0, row, wall)
		tm.SetType(tm.Cols-1, row, wall)
	}
}

// addRandomTiles retypes fraction*W*H random interior tiles. Picks may
// repeat, so the final count can fall short of the target.
func (m *Map) addRandomTiles(t TileType, fraction float64) {
	tm := m.tiles
	target := float64(tm.Cols*tm.Rows) * fraction
	for i := 0; float64(i) < target; i++ {
		col := m.rng.IntInRange(1, tm.Cols-2)
		row := m.rng.IntInRange(1, tm.Rows-2)
		tm.SetType(col, row, t)
	}
}

func (m *Map) fillRect(x0, y0, x1, y1 int, t TileType) {
	for col := x0; col <= x1; col++ {
		for row := y0; row <= y1; row++ {
			m.tiles.SetType(col, row, t)
		}
	}
}

func (m *Map) stamp(anchor TileCoords, offsets []TileCoords, t TileType) {
	for _, off := range offsets {
		c := anchor.Add(off)
		m.tiles.SetType(c.X, c.Y, t)
	}
}

// addSafeBunkers clears the bunker floors, stamps their walls and places the
// single exit tile.
func (m *Map) addSafeBunkers(ground, wall TileType) {
	b := newBunkerBounds(m.tiles.Cols, m.tiles.Rows)

	startFloor := ground
	if m.arena {
		startFloor = TileMud
	}
	m.fillRect(b.xMinLeft, b.yMinBot, b.xMaxLeft, b.yMaxBot, startFloor)
	m.fillRect(b.xMinRight, b.yMinTop, b.xMaxRight, b.yMaxTop, TileMud)
	if m.arena {
		m.fillRect(b.xMinLeft, b.yMinTop, b.xMaxLeft, b.yMaxTop, TileMud)
		m.fillRect(b.xMinRight, b.yMinBot, b.xMaxRight, b.yMaxBot, TileMud)
		m.fillRect(b.xCenter-4, b.yCenter-4, b.xCenter+4, b.yCenter+4, TileMud)
	}

	m.stamp(TileCoords{b.xMaxLeft, b.yMaxBot}, startBunkerWalls, wall)
	m.stamp(TileCoords{b.xMinRight, b.yMinTop}, exitBunkerWalls, wall)
	if m.arena {
		m.stamp(TileCoords{b.xMaxLeft, b.yMinTop}, arenaTopLeftWalls, wall)
		m.stamp(TileCoords{b.xMinRight, b.yMaxBot}, arenaBottomRightWalls, wall)
		m.stamp(TileCoords{b.xCenter, b.yCenter}, arenaCenterWalls, wall)
	}

	if m.arena {
		m.tiles.SetType(b.xCenter, b.yCenter, TileExit)
	} else {
		m.tiles.SetType(b.xMaxRight, b.yMaxTop, TileExit)
	}
}

// addEntities places count entities of kind on random open tiles, centred in
// the tile and randomly oriented.
func (m *Map) addEntities(kind EntityType, count int) error {
	tm := m.tiles
	maxAttempts := spawnAttemptsPerTile * tm.Cols * tm.Rows
	for n := 0; n < count; n++ {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			col := m.rng.IntLessThan(tm.Cols)
			row := m.rng.IntLessThan(tm.Rows)
			if tm.IsSolidAt(col, row) {
				continue
			}
			pos := Vec2{float64(col) + 0.5, float64(row) + 0.5}
			m.Spawn(kind, pos, m.rng.FloatInRange(0, 360), nil)
			placed = true
			break
		}
		if !placed {
			return fmt.Errorf("%w: %s %d of %d", ErrNoOpenTile, kind, n+1, count)
		}
	}
	return nil
}
