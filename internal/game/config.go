package game

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// MapDef is the construction recipe for one map.
type MapDef struct {
	Name     string
	Width    int
	Height   int
	Ground   TileType
	Wall     TileType
	Scatter  map[TileType]float64 // fraction of W*H re-typed at random
	Entities map[EntityType]int
	Arena    bool
}

// ErrBadMapDef wraps every MapDef validation failure.
var ErrBadMapDef = errors.New("invalid map definition")

// Validate checks dimensions, fractions, counts and catalog coverage. A nil
// catalog means DefaultTileCatalog.
func (d MapDef) Validate(catalog *TileCatalog) error {
	if catalog == nil {
		catalog = DefaultTileCatalog()
	}
	minSize := MinMapSize
	if d.Arena {
		minSize = MinArenaMapSize
	}
	if d.Width < minSize || d.Height < minSize {
		return fmt.Errorf("%w: map %q is %dx%d, need at least %dx%d",
			ErrBadMapDef, d.Name, d.Width, d.Height, minSize, minSize)
	}
	types := []TileType{d.Ground, d.Wall, TileMud, TileExit}
	for _, t := range d.scatterOrder() {
		f := d.Scatter[t]
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: map %q scatter fraction %s=%g outside [0,1]", ErrBadMapDef, d.Name, t, f)
		}
		types = append(types, t)
	}
	for _, t := range d.entityOrder() {
		if t == EntityPlayerTank || t == EntityBullet || t == EntityExplosion {
			return fmt.Errorf("%w: map %q cannot pre-place %s", ErrBadMapDef, d.Name, t)
		}
		if d.Entities[t] < 0 {
			return fmt.Errorf("%w: map %q has negative %s count", ErrBadMapDef, d.Name, t)
		}
	}
	if err := catalog.Validate(types...); err != nil {
		return fmt.Errorf("map %q: %w", d.Name, err)
	}
	if catalog.Def(d.Ground).Solid {
		return fmt.Errorf("%w: map %q ground %s is solid", ErrBadMapDef, d.Name, d.Ground)
	}
	return nil
}

// scatterOrder returns the scatter types in ascending TileType order so
// construction does not depend on map iteration order.
func (d MapDef) scatterOrder() []TileType {
	out := make([]TileType, 0, len(d.Scatter))
	for t := range d.Scatter {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// entityOrder returns the entity kinds in ascending EntityType order.
func (d MapDef) entityOrder() []EntityType {
	out := make([]EntityType, 0, len(d.Entities))
	for t := range d.Entities {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CampaignConfig is the ordered list of maps a game plays through.
type CampaignConfig struct {
	Maps []MapDef
}

// DefaultCampaign returns the stock three-map campaign.
func DefaultCampaign() CampaignConfig {
	return CampaignConfig{Maps: []MapDef{
		{
			Name:     "outskirts",
			Width:    16,
			Height:   30,
			Ground:   TileGrass,
			Wall:     TileStone,
			Scatter:  map[TileType]float64{TileStone: 0.1},
			Entities: map[EntityType]int{EntityEnemyTank: 10, EntityEnemyTurret: 10, EntityBoulder: 5},
		},
		{
			Name:     "stockade",
			Width:    30,
			Height:   30,
			Ground:   TileSand,
			Wall:     TileWoodBrick,
			Scatter:  map[TileType]float64{TileWoodBrick: 0.3, TileMud: 0.6},
			Entities: map[EntityType]int{EntityEnemyTank: 20, EntityEnemyTurret: 20, EntityBoulder: 15},
		},
		{
			Name:     "arena",
			Width:    47,
			Height:   27,
			Ground:   TileIce,
			Wall:     TileStoneBrick,
			Scatter:  map[TileType]float64{TileStoneBrick: 0.25},
			Entities: map[EntityType]int{EntityEnemyTurret: 30, EntityBoulder: 10},
			Arena:    true,
		},
	}}
}

// Validate checks every map in the campaign.
func (c CampaignConfig) Validate(catalog *TileCatalog) error {
	if len(c.Maps) == 0 {
		return fmt.Errorf("%w: campaign has no maps", ErrBadMapDef)
	}
	for i, d := range c.Maps {
		if err := d.Validate(catalog); err != nil {
			return fmt.Errorf("campaign map %d: %w", i, err)
		}
	}
	return nil
}

// rawMapDef is the on-disk shape of a MapDef; names are resolved on load.
type rawMapDef struct {
	Name     string             `yaml:"name"`
	Width    int                `yaml:"width"`
	Height   int                `yaml:"height"`
	Ground   string             `yaml:"ground"`
	Wall     string             `yaml:"wall"`
	Scatter  map[string]float64 `yaml:"scatter,omitempty"`
	Entities map[string]int     `yaml:"entities,omitempty"`
	Arena    bool               `yaml:"arena,omitempty"`
}

type rawCampaign struct {
	Maps []rawMapDef `yaml:"maps"`
}

func (r rawMapDef) resolve() (MapDef, error) {
	d := MapDef{
		Name:     r.Name,
		Width:    r.Width,
		Height:   r.Height,
		Scatter:  make(map[TileType]float64, len(r.Scatter)),
		Entities: make(map[EntityType]int, len(r.Entities)),
		Arena:    r.Arena,
	}
	var err error
	if d.Ground, err = ParseTileType(r.Ground); err != nil {
		return MapDef{}, fmt.Errorf("map %q ground: %w", r.Name, err)
	}
	if d.Wall, err = ParseTileType(r.Wall); err != nil {
		return MapDef{}, fmt.Errorf("map %q wall: %w", r.Name, err)
	}
	for name, f := range r.Scatter {
		t, err := ParseTileType(name)
		if err != nil {
			return MapDef{}, fmt.Errorf("map %q scatter: %w", r.Name, err)
		}
		d.Scatter[t] = f
	}
	for name, n := range r.Entities {
		t, err := ParseEntityType(name)
		if err != nil {
			return MapDef{}, fmt.Errorf("map %q entities: %w", r.Name, err)
		}
		d.Entities[t] = n
	}
	return d, nil
}

func (d MapDef) raw() rawMapDef {
	r := rawMapDef{
		Name:   d.Name,
		Width:  d.Width,
		Height: d.Height,
		Ground: d.Ground.String(),
		Wall:   d.Wall.String(),
		Arena:  d.Arena,
	}
	if len(d.Scatter) > 0 {
		r.Scatter = make(map[string]float64, len(d.Scatter))
		for t, f := range d.Scatter {
			r.Scatter[t.String()] = f
		}
	}
	if len(d.Entities) > 0 {
		r.Entities = make(map[string]int, len(d.Entities))
		for t, n := range d.Entities {
			r.Entities[t.String()] = n
		}
	}
	return r
}

// ParseCampaign decodes and validates a YAML campaign.
func ParseCampaign(data []byte, catalog *TileCatalog) (CampaignConfig, error) {
	var raw rawCampaign
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return CampaignConfig{}, fmt.Errorf("parse campaign: %w", err)
	}
	var c CampaignConfig
	for _, r := range raw.Maps {
		d, err := r.resolve()
		if err != nil {
			return CampaignConfig{}, err
		}
		c.Maps = append(c.Maps, d)
	}
	if err := c.Validate(catalog); err != nil {
		return CampaignConfig{}, err
	}
	return c, nil
}

// LoadCampaign reads a campaign file. An empty path yields DefaultCampaign.
func LoadCampaign(path string, catalog *TileCatalog) (CampaignConfig, error) {
	if path == "" {
		c := DefaultCampaign()
		return c, c.Validate(catalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return CampaignConfig{}, fmt.Errorf("read campaign: %w", err)
	}
	return ParseCampaign(data, catalog)
}

// MarshalCampaign encodes c in the same YAML shape ParseCampaign reads.
func MarshalCampaign(c CampaignConfig) ([]byte, error) {
	raw := rawCampaign{Maps: make([]rawMapDef, 0, len(c.Maps))}
	for _, d := range c.Maps {
		raw.Maps = append(raw.Maps, d.raw())
	}
	return yaml.Marshal(raw)
}
