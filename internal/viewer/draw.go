package viewer

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Incursion/internal/game"
)

var (
	colBoulder     = color.RGBA{R: 120, G: 112, B: 100, A: 255}
	colEnemyHull   = color.RGBA{R: 96, G: 104, B: 88, A: 255}
	colEnemyGun    = color.RGBA{R: 60, G: 64, B: 56, A: 255}
	colBullet      = color.RGBA{R: 255, G: 240, B: 180, A: 255}
	colWreck       = color.RGBA{R: 40, G: 40, B: 40, A: 220}
	colLaser       = color.RGBA{R: 255, G: 40, B: 40, A: 150}
	colWhiskerFree = color.RGBA{R: 80, G: 220, B: 80, A: 160}
	colWhiskerHit  = color.RGBA{R: 240, G: 80, B: 60, A: 200}
	colPhysics     = color.RGBA{R: 255, G: 255, B: 255, A: 90}
	colLastKnown   = color.RGBA{R: 255, G: 200, B: 0, A: 160}
	colSelected    = color.RGBA{R: 255, G: 255, B: 255, A: 220}
)

// drawTiles paints the terrain, one rect per tile.
func drawTiles(dst *ebiten.Image, m *game.Map, tick int) {
	tm := m.Tiles()
	cat := tm.Catalog()
	for i := range tm.Tiles {
		t := &tm.Tiles[i]
		x, y := toBuffer(game.Vec2{X: float64(t.Coords.X), Y: float64(t.Coords.Y + 1)}, tm.Rows)
		tint := cat.Def(t.Type).Tint
		if t.Type == game.TileExit {
			// Slow pulse so the goal reads at a glance.
			pulse := 0.85 + 0.15*math.Sin(float64(tick)/12)
			tint = color.RGBA{R: scale8(tint.R, pulse), G: scale8(tint.G, pulse), B: scale8(tint.B, pulse), A: 255}
		}
		vector.FillRect(dst, x, y, tilePx, tilePx, tint, false)
		if tm.IsSolid(t) {
			vector.StrokeRect(dst, x+1, y+1, tilePx-2, tilePx-2, 1.0, color.RGBA{A: 90}, false)
		}
	}
}

func scale8(v uint8, f float64) uint8 {
	return uint8(math.Min(255, float64(v)*f))
}

// drawEntities paints every registered entity and the explosion list.
func drawEntities(dst *ebiten.Image, m *game.Map) {
	rows := m.Tiles().Rows
	for _, e := range m.Entities().All() {
		if e == nil {
			continue
		}
		x, y := toBuffer(e.Position(), rows)
		r := float32(e.CosmeticRadius() * tilePx)
		switch v := e.(type) {
		case *game.Boulder:
			vector.FillCircle(dst, x, y, r, colBoulder, true)
			vector.StrokeCircle(dst, x, y, r, 1.5, color.RGBA{A: 120}, true)
		case *game.Bullet:
			vector.FillCircle(dst, x, y, max(r, 3), colBullet, true)
		case *game.EnemyTank:
			drawHull(dst, x, y, r, v.Orientation(), colEnemyHull)
			drawBarrel(dst, x, y, r*1.1, v.TurretOrientation(), colEnemyGun)
		case *game.EnemyTurret:
			vector.FillRect(dst, x-r, y-r, 2*r, 2*r, colEnemyHull, false)
			vector.FillCircle(dst, x, y, r*0.6, colEnemyGun, true)
			drawBarrel(dst, x, y, r*1.3, v.TurretOrientation(), colEnemyGun)
		case *game.PlayerTank:
			col := factionColor(v.Faction().String())
			if !v.IsAlive() {
				col = colWreck
			}
			drawHull(dst, x, y, r, v.Orientation(), col)
			if v.IsAlive() {
				drawBarrel(dst, x, y, r*1.1, v.TurretOrientation(), color.RGBA{R: col.R / 2, G: col.G / 2, B: col.B / 2, A: 255})
			}
			if v.IsInvincible() {
				vector.StrokeCircle(dst, x, y, r+3, 1.0, colSelected, true)
			}
		}
	}
	for _, ex := range m.Entities().Explosions() {
		if ex == nil {
			continue
		}
		x, y := toBuffer(ex.Position(), rows)
		p := ex.Progress()
		r := float32(ex.Scale() * tilePx * (0.3 + 0.7*p))
		a := uint8(220 * (1 - p))
		vector.FillCircle(dst, x, y, r, color.RGBA{R: 255, G: 150, B: 40, A: a}, true)
		vector.FillCircle(dst, x, y, r*0.5, color.RGBA{R: 255, G: 240, B: 160, A: a}, true)
	}
}

// drawHull draws a tank body: a disc with a short nose toward heading.
func drawHull(dst *ebiten.Image, x, y, r float32, heading float64, col color.RGBA) {
	vector.FillCircle(dst, x, y, r*0.8, col, true)
	nx, ny := polarBuffer(heading, r)
	vector.StrokeLine(dst, x, y, x+nx, y+ny, r*0.5, col, true)
}

func drawBarrel(dst *ebiten.Image, x, y, length float32, heading float64, col color.RGBA) {
	dx, dy := polarBuffer(heading, length)
	vector.StrokeLine(dst, x, y, x+dx, y+dy, 3, col, true)
}

// polarBuffer is FromPolarDegrees in buffer space (y down).
func polarBuffer(deg float64, length float32) (float32, float32) {
	rad := deg * math.Pi / 180
	return length * float32(math.Cos(rad)), -length * float32(math.Sin(rad))
}

// drawDebug overlays physics radii, whiskers, turret lasers and AI labels.
func drawDebug(dst *ebiten.Image, m *game.Map) {
	rows := m.Tiles().Rows
	line := func(a, b game.Vec2, col color.RGBA) {
		ax, ay := toBuffer(a, rows)
		bx, by := toBuffer(b, rows)
		vector.StrokeLine(dst, ax, ay, bx, by, 1.5, col, true)
	}
	for _, e := range m.Entities().All() {
		if e == nil || !e.IsAlive() {
			continue
		}
		x, y := toBuffer(e.Position(), rows)
		vector.StrokeCircle(dst, x, y, float32(e.PhysicsRadius()*tilePx), 1.0, colPhysics, true)

		switch v := e.(type) {
		case *game.EnemyTank:
			for _, w := range v.Whiskers() {
				col := colWhiskerFree
				if w.Hit {
					col = colWhiskerHit
				}
				line(w.From, w.To, col)
			}
			if v.Investigating() {
				line(v.Position(), v.LastKnownPosition(), colLastKnown)
			}
			ebitenutil.DebugPrintAt(dst, v.Label()+" "+v.State().String(), int(x)+12, int(y)-20)
		case *game.EnemyTurret:
			line(v.Position(), v.LaserEnd(), colLaser)
			ebitenutil.DebugPrintAt(dst, v.Label()+" "+v.State().String(), int(x)+12, int(y)-20)
		case *game.PlayerTank:
			ebitenutil.DebugPrintAt(dst, v.Label(), int(x)+12, int(y)-20)
		}
	}
}

// drawSelection rings the inspected entity.
func drawSelection(dst *ebiten.Image, m *game.Map, e game.Entity) {
	x, y := toBuffer(e.Position(), m.Tiles().Rows)
	r := float32(e.CosmeticRadius()*tilePx) + 4
	vector.StrokeCircle(dst, x, y, r, 2, colSelected, true)
}
