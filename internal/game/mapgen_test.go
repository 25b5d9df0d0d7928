package game

import (
	"errors"
	"testing"
)

func buildDefault(t *testing.T, index int, seed int64, input InputSource) *Map {
	t.Helper()
	def := DefaultCampaign().Maps[index]
	m, err := NewMap(def, nil, Deps{RNG: NewSeededRNG(seed), Input: input})
	if err != nil {
		t.Fatalf("NewMap(%s): %v", def.Name, err)
	}
	return m
}

func TestMapGen_BorderIsSolid(t *testing.T) {
	m := buildDefault(t, 0, 7, nil)
	tm := m.Tiles()
	for col := 0; col < tm.Cols; col++ {
		if !tm.IsSolidAt(col, 0) || !tm.IsSolidAt(col, tm.Rows-1) {
			t.Fatalf("border column %d not solid", col)
		}
	}
	for row := 0; row < tm.Rows; row++ {
		if !tm.IsSolidAt(0, row) || !tm.IsSolidAt(tm.Cols-1, row) {
			t.Fatalf("border row %d not solid", row)
		}
	}
}

func TestMapGen_SingleExitTopRight(t *testing.T) {
	m := buildDefault(t, 0, 7, nil)
	tm := m.Tiles()
	if n := tm.CountType(TileExit); n != 1 {
		t.Fatalf("expected one exit, got %d", n)
	}
	if tm.TypeAt(tm.Cols-2, tm.Rows-2) != TileExit {
		t.Fatalf("exit not in the top-right corner:\n%s", tm.ASCII())
	}
}

func TestMapGen_BunkersStamped(t *testing.T) {
	def := DefaultCampaign().Maps[0]
	m := buildDefault(t, 0, 7, nil)
	tm := m.Tiles()
	b := newBunkerBounds(tm.Cols, tm.Rows)

	for _, off := range startBunkerWalls {
		c := TileCoords{b.xMaxLeft, b.yMaxBot}.Add(off)
		if tm.TypeAt(c.X, c.Y) != def.Wall {
			t.Fatalf("start bunker wall missing at %+v", c)
		}
	}
	for _, off := range exitBunkerWalls {
		c := TileCoords{b.xMinRight, b.yMinTop}.Add(off)
		if tm.TypeAt(c.X, c.Y) != def.Wall {
			t.Fatalf("exit bunker wall missing at %+v", c)
		}
	}
	if tm.TypeAt(1, 1) != def.Ground {
		t.Fatalf("start bunker floor should be ground, got %s", tm.TypeAt(1, 1))
	}
	if tm.TypeAt(b.xMaxRight, b.yMaxTop-1) != TileMud {
		t.Fatalf("exit bunker floor should be mud, got %s", tm.TypeAt(b.xMaxRight, b.yMaxTop-1))
	}
}

func TestMapGen_PopulationMatchesDef(t *testing.T) {
	def := DefaultCampaign().Maps[1]
	m := buildDefault(t, 1, 3, nil)
	for kind, want := range def.Entities {
		if got := m.Entities().Count(kind); got != want {
			t.Fatalf("%s: got %d, want %d", kind, got, want)
		}
	}
	tm := m.Tiles()
	for _, e := range m.Entities().All() {
		if e == nil {
			continue
		}
		tile := tm.AtWorld(e.Position())
		if tm.IsSolid(tile) {
			t.Fatalf("%s spawned inside solid tile %+v", e.Label(), tile.Coords)
		}
		if e.Position() != tile.Center() {
			t.Fatalf("%s not centred in its tile: %+v", e.Label(), e.Position())
		}
	}
}

func TestMapGen_DeterministicForSeed(t *testing.T) {
	a := buildDefault(t, 1, 99, nil)
	b := buildDefault(t, 1, 99, nil)
	if a.Tiles().ASCII() != b.Tiles().ASCII() {
		t.Fatal("same seed produced different terrain")
	}
	ea, eb := a.Entities().All(), b.Entities().All()
	if len(ea) != len(eb) {
		t.Fatalf("entity counts differ: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i].Type() != eb[i].Type() || ea[i].Position() != eb[i].Position() || ea[i].Orientation() != eb[i].Orientation() {
			t.Fatalf("slot %d differs: %s@%+v vs %s@%+v", i, ea[i].Label(), ea[i].Position(), eb[i].Label(), eb[i].Position())
		}
	}

	c := buildDefault(t, 1, 100, nil)
	if a.Tiles().ASCII() == c.Tiles().ASCII() {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestMapGen_ArenaExitAtCentre(t *testing.T) {
	m := buildDefault(t, 2, 5, nil)
	tm := m.Tiles()
	if !m.IsArena() {
		t.Fatal("third default map should be an arena")
	}
	if tm.CountType(TileExit) != 1 || tm.TypeAt(tm.Cols/2, tm.Rows/2) != TileExit {
		t.Fatalf("arena exit not at centre:\n%s", tm.ASCII())
	}
	b := newBunkerBounds(tm.Cols, tm.Rows)
	for _, off := range arenaCenterWalls {
		c := TileCoords{b.xCenter, b.yCenter}.Add(off)
		if !tm.IsSolidAt(c.X, c.Y) {
			t.Fatalf("centre keep wall missing at %+v", c)
		}
	}
	if tm.TypeAt(1, 1) != TileMud {
		t.Fatalf("arena start bunkers should be mud, got %s", tm.TypeAt(1, 1))
	}
}

func TestMapGen_ConnectedControllersJoinAtStart(t *testing.T) {
	in := &ScriptedInput{}
	in.States[0].Connected = true
	in.States[3].Connected = true
	m := buildDefault(t, 2, 5, in)
	if m.PlayerCount() != 2 {
		t.Fatalf("expected 2 players, got %d", m.PlayerCount())
	}
	p3 := m.Entities().Player(3)
	if p3 == nil || p3.Position() != m.PlayerStartPosition(3) {
		t.Fatal("player 3 should start in its own corner bunker")
	}
	if p3.Faction() != FactionPlayer3 {
		t.Fatalf("arena faction=%s, want p3", p3.Faction())
	}
	// Players 0 and 3 sit in opposite corners.
	p0 := m.Entities().Player(0)
	if p0.Position().X >= p3.Position().X || p0.Position().Y <= p3.Position().Y {
		t.Fatalf("unexpected start corners: p0=%+v p3=%+v", p0.Position(), p3.Position())
	}
}

func TestNewMap_RejectsSmallMap(t *testing.T) {
	def := MapDef{Name: "tiny", Width: 5, Height: 5, Ground: TileGrass, Wall: TileStone}
	if _, err := NewMap(def, nil, Deps{}); !errors.Is(err, ErrBadMapDef) {
		t.Fatalf("expected ErrBadMapDef, got %v", err)
	}
	def = MapDef{Name: "small-arena", Width: 10, Height: 10, Ground: TileGrass, Wall: TileStone, Arena: true}
	if _, err := NewMap(def, nil, Deps{}); !errors.Is(err, ErrBadMapDef) {
		t.Fatalf("arena below minimum size should fail, got %v", err)
	}
}

func TestNewMap_RejectsPrePlacedPlayers(t *testing.T) {
	def := MapDef{
		Name: "bad", Width: 10, Height: 10, Ground: TileGrass, Wall: TileStone,
		Entities: map[EntityType]int{EntityPlayerTank: 1},
	}
	if _, err := NewMap(def, nil, Deps{}); !errors.Is(err, ErrBadMapDef) {
		t.Fatalf("expected ErrBadMapDef, got %v", err)
	}
}
