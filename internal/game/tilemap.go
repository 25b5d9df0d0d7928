package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// TileType identifies the terrain of a tile.
type TileType uint8

const (
	TileGrass      TileType = iota // Default open ground
	TileSand                       // Open ground, desert maps
	TileDirt                       // Open ground
	TileMud                        // Slows tanks; bunker floors
	TileStone                      // Solid rock
	TileGravel                     // Open ground
	TileStoneBrick                 // Solid masonry
	TileBrick                      // Solid masonry
	TileIce                        // Speeds tanks up
	TileExit                       // Reaching it ends the map
	TileWoodBrick                  // Solid timber wall
	tileTypeCount                  // sentinel
)

var tileTypeNames = [tileTypeCount]string{
	TileGrass:      "grass",
	TileSand:       "sand",
	TileDirt:       "dirt",
	TileMud:        "mud",
	TileStone:      "stone",
	TileGravel:     "gravel",
	TileStoneBrick: "stone_brick",
	TileBrick:      "brick",
	TileIce:        "ice",
	TileExit:       "exit",
	TileWoodBrick:  "wood_brick",
}

// ErrUnknownTileType is returned when a tile name or value has no definition.
var ErrUnknownTileType = errors.New("unknown tile type")

// ErrMissingTileDef is returned by TileCatalog.Validate.
var ErrMissingTileDef = errors.New("tile type missing from catalog")

func (t TileType) String() string {
	if t < tileTypeCount {
		return tileTypeNames[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// ParseTileType maps a config name (e.g. "stone_brick") to its TileType.
func ParseTileType(name string) (TileType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range tileTypeNames {
		if s == n {
			return TileType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTileType, name)
}

// TileDef describes how a tile type behaves.
type TileDef struct {
	Solid            bool
	MovementModifier float64 // multiplies tank speed; 1 = normal
	Tint             color.RGBA
}

// TileCatalog is the fixed registry of tile type behaviour.
type TileCatalog struct {
	defs  [tileTypeCount]TileDef
	known [tileTypeCount]bool
}

// NewTileCatalog returns an empty catalog.
func NewTileCatalog() *TileCatalog {
	return &TileCatalog{}
}

// DefaultTileCatalog returns the stock terrain table.
func DefaultTileCatalog() *TileCatalog {
	c := NewTileCatalog()
	c.Define(TileGrass, TileDef{MovementModifier: 1.0, Tint: color.RGBA{R: 74, G: 120, B: 58, A: 255}})
	c.Define(TileSand, TileDef{MovementModifier: 1.0, Tint: color.RGBA{R: 196, G: 178, B: 118, A: 255}})
	c.Define(TileDirt, TileDef{MovementModifier: 1.0, Tint: color.RGBA{R: 120, G: 92, B: 60, A: 255}})
	c.Define(TileMud, TileDef{MovementModifier: 0.5, Tint: color.RGBA{R: 88, G: 66, B: 44, A: 255}})
	c.Define(TileStone, TileDef{Solid: true, MovementModifier: 1.0, Tint: color.RGBA{R: 110, G: 110, B: 112, A: 255}})
	c.Define(TileGravel, TileDef{MovementModifier: 1.0, Tint: color.RGBA{R: 140, G: 136, B: 128, A: 255}})
	c.Define(TileStoneBrick, TileDef{Solid: true, MovementModifier: 1.0, Tint: color.RGBA{R: 92, G: 96, B: 104, A: 255}})
	c.Define(TileBrick, TileDef{Solid: true, MovementModifier: 1.0, Tint: color.RGBA{R: 150, G: 70, B: 52, A: 255}})
	c.Define(TileIce, TileDef{MovementModifier: 1.5, Tint: color.RGBA{R: 180, G: 220, B: 235, A: 255}})
	c.Define(TileExit, TileDef{MovementModifier: 1.0, Tint: color.RGBA{R: 230, G: 200, B: 40, A: 255}})
	c.Define(TileWoodBrick, TileDef{Solid: true, MovementModifier: 1.0, Tint: color.RGBA{R: 122, G: 84, B: 46, A: 255}})
	return c
}

// Define sets (or replaces) the behaviour of a tile type.
func (c *TileCatalog) Define(t TileType, d TileDef) {
	if t >= tileTypeCount {
		return
	}
	c.defs[t] = d
	c.known[t] = true
}

// Def returns the definition of t. Undefined types read as open ground.
func (c *TileCatalog) Def(t TileType) TileDef {
	if t >= tileTypeCount || !c.known[t] {
		return TileDef{MovementModifier: 1.0}
	}
	return c.defs[t]
}

// Validate checks that every listed type has a definition.
func (c *TileCatalog) Validate(types ...TileType) error {
	for _, t := range types {
		if t >= tileTypeCount {
			return fmt.Errorf("%w: %d", ErrUnknownTileType, uint8(t))
		}
		if !c.known[t] {
			return fmt.Errorf("%w: %s", ErrMissingTileDef, t)
		}
	}
	return nil
}

// TileCoords addresses one tile.
type TileCoords struct {
	X int
	Y int
}

func (c TileCoords) Add(o TileCoords) TileCoords { return TileCoords{c.X + o.X, c.Y + o.Y} }

// Tile is one cell of the map. Bounds spans [X,X+1]x[Y,Y+1] in world units.
type Tile struct {
	Type   TileType
	Coords TileCoords
	Bounds AABB2
}

// Center returns the world position of the tile centre.
func (t *Tile) Center() Vec2 {
	return Vec2{float64(t.Coords.X) + 0.5, float64(t.Coords.Y) + 0.5}
}

// TileMap is the authoritative per-cell terrain representation.
type TileMap struct {
	Cols    int
	Rows    int
	Tiles   []Tile // row-major: index = row*Cols + col
	catalog *TileCatalog
}

// NewTileMap creates a tile map filled with the ground type. Dimensions
// below 1 are raised to 1.
func NewTileMap(cols, rows int, ground TileType, catalog *TileCatalog) *TileMap {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if catalog == nil {
		catalog = DefaultTileCatalog()
	}
	tm := &TileMap{Cols: cols, Rows: rows, Tiles: make([]Tile, cols*rows), catalog: catalog}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			t := &tm.Tiles[row*cols+col]
			t.Type = ground
			t.Coords = TileCoords{col, row}
			t.Bounds = AABB2{
				Min: Vec2{float64(col), float64(row)},
				Max: Vec2{float64(col + 1), float64(row + 1)},
			}
		}
	}
	return tm
}

// Catalog returns the catalog the map classifies tiles with.
func (tm *TileMap) Catalog() *TileCatalog { return tm.catalog }

// inBounds returns true if (col, row) is within the tile map.
func (tm *TileMap) inBounds(col, row int) bool {
	return col >= 0 && col < tm.Cols && row >= 0 && row < tm.Rows
}

// ClampCoords pulls c onto the nearest valid tile.
func (tm *TileMap) ClampCoords(c TileCoords) TileCoords {
	return TileCoords{clampI(c.X, 0, tm.Cols-1), clampI(c.Y, 0, tm.Rows-1)}
}

// TileCoordsFromWorld floors p to tile coordinates, clamped to the map.
func (tm *TileMap) TileCoordsFromWorld(p Vec2) TileCoords {
	return TileCoords{floorClamp(p.X, tm.Cols), floorClamp(p.Y, tm.Rows)}
}

// floorClamp floors v into [0, n-1]. NaN maps to 0.
func floorClamp(v float64, n int) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= float64(n) {
		return n - 1
	}
	return int(math.Floor(v))
}

// TileIndexFromCoords returns the row-major index of c, clamped to the map.
func (tm *TileMap) TileIndexFromCoords(c TileCoords) int {
	c = tm.ClampCoords(c)
	return c.Y*tm.Cols + c.X
}

// At returns the tile at c; out-of-range coordinates are clamped.
func (tm *TileMap) At(c TileCoords) *Tile {
	return &tm.Tiles[tm.TileIndexFromCoords(c)]
}

// AtWorld returns the tile under world position p.
func (tm *TileMap) AtWorld(p Vec2) *Tile {
	return tm.At(tm.TileCoordsFromWorld(p))
}

// TypeAt returns the tile type at (col, row), clamped.
func (tm *TileMap) TypeAt(col, row int) TileType {
	return tm.At(TileCoords{col, row}).Type
}

// SetType retypes the tile at (col, row). Out-of-range writes are ignored.
func (tm *TileMap) SetType(col, row int, t TileType) {
	if !tm.inBounds(col, row) {
		return
	}
	tm.Tiles[row*tm.Cols+col].Type = t
}

// IsSolid reports whether the tile blocks movement, bullets and sight.
func (tm *TileMap) IsSolid(t *Tile) bool {
	if t == nil {
		return false
	}
	return tm.catalog.Def(t.Type).Solid
}

// IsSolidAt is IsSolid for clamped coordinates.
func (tm *TileMap) IsSolidAt(col, row int) bool {
	return tm.IsSolid(tm.At(TileCoords{col, row}))
}

// MovementModifier returns the speed multiplier for the tile.
func (tm *TileMap) MovementModifier(t *Tile) float64 {
	if t == nil {
		return 1.0
	}
	return tm.catalog.Def(t.Type).MovementModifier
}

// CountType returns how many tiles currently have type t.
func (tm *TileMap) CountType(t TileType) int {
	n := 0
	for i := range tm.Tiles {
		if tm.Tiles[i].Type == t {
			n++
		}
	}
	return n
}

// ASCII renders the map top row first, '#' for solid, 'E' for the exit,
// '~' for slow ground and '.' otherwise.
func (tm *TileMap) ASCII() string {
	var sb strings.Builder
	sb.Grow((tm.Cols + 1) * tm.Rows)
	for row := tm.Rows - 1; row >= 0; row-- {
		for col := 0; col < tm.Cols; col++ {
			sb.WriteByte(tm.Glyph(&tm.Tiles[row*tm.Cols+col]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Glyph returns the single-character rendering of a tile.
func (tm *TileMap) Glyph(t *Tile) byte {
	switch {
	case t.Type == TileExit:
		return 'E'
	case tm.IsSolid(t):
		return '#'
	case tm.MovementModifier(t) < 1:
		return '~'
	case tm.MovementModifier(t) > 1:
		return '='
	default:
		return '.'
	}
}
