package game

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleCampaign = `
maps:
  - name: meadow
    width: 12
    height: 10
    ground: grass
    wall: stone
    scatter:
      mud: 0.1
      stone: 0.05
    entities:
      enemy_tank: 2
      boulder: 3
  - name: pit
    width: 16
    height: 16
    ground: ice
    wall: stone_brick
    entities:
      enemy_turret: 4
    arena: true
`

func TestParseCampaign_ReadsMaps(t *testing.T) {
	c, err := ParseCampaign([]byte(sampleCampaign), nil)
	if err != nil {
		t.Fatalf("ParseCampaign: %v", err)
	}
	if len(c.Maps) != 2 {
		t.Fatalf("expected 2 maps, got %d", len(c.Maps))
	}
	m := c.Maps[0]
	if m.Ground != TileGrass || m.Wall != TileStone || m.Scatter[TileMud] != 0.1 || m.Entities[EntityEnemyTank] != 2 {
		t.Fatalf("first map decoded wrong: %+v", m)
	}
	if !c.Maps[1].Arena || c.Maps[1].Entities[EntityEnemyTurret] != 4 {
		t.Fatalf("second map decoded wrong: %+v", c.Maps[1])
	}
}

func TestParseCampaign_UnknownNames(t *testing.T) {
	bad := `
maps:
  - name: lava
    width: 10
    height: 10
    ground: lava
    wall: stone
`
	if _, err := ParseCampaign([]byte(bad), nil); !errors.Is(err, ErrUnknownTileType) {
		t.Fatalf("expected ErrUnknownTileType, got %v", err)
	}

	bad = `
maps:
  - name: zoo
    width: 10
    height: 10
    ground: grass
    wall: stone
    entities:
      dragon: 1
`
	if _, err := ParseCampaign([]byte(bad), nil); !errors.Is(err, ErrUnknownEntityType) {
		t.Fatalf("expected ErrUnknownEntityType, got %v", err)
	}
}

func TestParseCampaign_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"fraction": `
maps:
  - {name: a, width: 10, height: 10, ground: grass, wall: stone, scatter: {mud: 1.5}}
`,
		"solid ground": `
maps:
  - {name: b, width: 10, height: 10, ground: brick, wall: stone}
`,
		"negative count": `
maps:
  - {name: c, width: 10, height: 10, ground: grass, wall: stone, entities: {boulder: -1}}
`,
		"no maps": `maps: []`,
	}
	for name, doc := range cases {
		if _, err := ParseCampaign([]byte(doc), nil); !errors.Is(err, ErrBadMapDef) {
			t.Fatalf("%s: expected ErrBadMapDef, got %v", name, err)
		}
	}
}

func TestParseCampaign_MalformedYAML(t *testing.T) {
	if _, err := ParseCampaign([]byte("maps: [ {name: "), nil); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestMarshalCampaign_DefaultSurvivesReload(t *testing.T) {
	want := DefaultCampaign()
	data, err := MarshalCampaign(want)
	if err != nil {
		t.Fatalf("MarshalCampaign: %v", err)
	}
	got, err := ParseCampaign(data, nil)
	if err != nil {
		t.Fatalf("ParseCampaign: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded campaign differs:\n%s", data)
	}
}

func TestLoadCampaign_FileAndDefault(t *testing.T) {
	c, err := LoadCampaign("", nil)
	if err != nil || len(c.Maps) != len(DefaultCampaign().Maps) {
		t.Fatalf("empty path should give the default campaign, err=%v", err)
	}

	path := filepath.Join(t.TempDir(), "campaign.yaml")
	if err := os.WriteFile(path, []byte(sampleCampaign), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err = LoadCampaign(path, nil)
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}
	if c.Maps[0].Name != "meadow" {
		t.Fatalf("unexpected first map %q", c.Maps[0].Name)
	}

	if _, err := LoadCampaign(filepath.Join(t.TempDir(), "missing.yaml"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
