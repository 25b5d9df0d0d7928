package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Incursion/internal/game"
)

var (
	styleGround = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleSolid  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSlow   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleFast   = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	styleExit   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBullet = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBoom   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleRock   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleWreck  = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
)

var playerStyles = [game.MaxPlayers]tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
}

type cell struct {
	r     rune
	style tcell.Style
}

// frame is one screen of cells, row 0 at the top.
type frame struct {
	cells [][]cell
}

func newFrame(w, h int) *frame {
	f := &frame{cells: make([][]cell, h)}
	for y := range f.cells {
		f.cells[y] = make([]cell, w)
		for x := range f.cells[y] {
			f.cells[y][x] = cell{r: ' ', style: tcell.StyleDefault}
		}
	}
	return f
}

func (f *frame) set(x, y int, r rune, s tcell.Style) {
	if y < 0 || y >= len(f.cells) || x < 0 || x >= len(f.cells[y]) {
		return
	}
	f.cells[y][x] = cell{r: r, style: s}
}

func (f *frame) text(x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		f.set(x+i, y, r, st)
	}
}

// view maps tiles onto the frame. One tile is one cell; the map is centred
// when it fits and follows the players when it does not.
type view struct {
	col0, row0 int // tile shown at the top-left cell
	top        int // map row index shown on screen row 0
	w, h       int
}

func newView(m *game.Map, w, h int) view {
	tm := m.Tiles()
	v := view{w: w, h: h}
	focus := game.Vec2{X: float64(tm.Cols) / 2, Y: float64(tm.Rows) / 2}
	var sum game.Vec2
	n := 0
	for _, p := range m.Players() {
		if p != nil && p.IsAlive() {
			sum = sum.Add(p.Position())
			n++
		}
	}
	if n > 0 {
		focus = sum.Scale(1 / float64(n))
	}
	v.col0 = fitOrigin(int(focus.X), tm.Cols, w)
	v.top = tm.Rows - 1 - fitOrigin(tm.Rows-1-int(focus.Y), tm.Rows, h)
	return v
}

// fitOrigin picks the first visible index along one axis.
func fitOrigin(focus, size, span int) int {
	if size <= span {
		return -(span - size) / 2
	}
	o := focus - span/2
	if o < 0 {
		return 0
	}
	if o > size-span {
		return size - span
	}
	return o
}

func (v view) toScreen(p game.Vec2) (int, int) {
	return int(p.X) - v.col0, v.top - int(p.Y)
}

// renderFrame draws the active map with a one-line status bar at the bottom.
func renderFrame(c *game.Campaign, w, h int) *frame {
	f := newFrame(w, h)
	if w <= 0 || h <= 1 {
		return f
	}
	m := c.Active()
	tm := m.Tiles()
	v := newView(m, w, h-1)

	for y := 0; y < h-1; y++ {
		row := v.top - y
		if row < 0 || row >= tm.Rows {
			continue
		}
		for x := 0; x < w; x++ {
			col := v.col0 + x
			if col < 0 || col >= tm.Cols {
				continue
			}
			t := &tm.Tiles[row*tm.Cols+col]
			g := tm.Glyph(t)
			f.set(x, y, rune(g), glyphStyle(g))
		}
	}

	for _, e := range m.Entities().All() {
		if e == nil {
			continue
		}
		r, s := entityGlyph(e)
		x, y := v.toScreen(e.Position())
		if y < h-1 {
			f.set(x, y, r, s)
		}
	}
	for _, x := range m.Entities().Explosions() {
		sx, sy := v.toScreen(x.Position())
		if sy < h-1 {
			f.set(sx, sy, '+', styleBoom)
		}
	}

	f.text(0, h-1, statusLine(c, w), styleStatus)
	if msg := banner(c); msg != "" {
		f.text((w-len(msg))/2, (h-1)/2, msg, styleBanner)
	}
	return f
}

func glyphStyle(g byte) tcell.Style {
	switch g {
	case '#':
		return styleSolid
	case 'E':
		return styleExit
	case '~':
		return styleSlow
	case '=':
		return styleFast
	}
	return styleGround
}

func entityGlyph(e game.Entity) (rune, tcell.Style) {
	switch e.Type() {
	case game.EntityPlayerTank:
		p := e.(*game.PlayerTank)
		if !p.IsAlive() {
			return 'x', styleWreck
		}
		return rune('1' + p.PlayerID()), playerStyles[p.PlayerID()]
	case game.EntityEnemyTank:
		return 'T', styleEnemy
	case game.EntityEnemyTurret:
		return 'Y', styleEnemy
	case game.EntityBoulder:
		return 'o', styleRock
	case game.EntityBullet:
		return '*', styleBullet
	}
	return '?', tcell.StyleDefault
}

func statusLine(c *game.Campaign, w int) string {
	m := c.Active()
	s := fmt.Sprintf(" %s %d/%d T=%d", m.Name(), c.MapIndex()+1, c.MapCount(), m.Tick())
	for _, p := range m.Players() {
		if p != nil {
			s += fmt.Sprintf(" | P%d hp %d lives %d", p.PlayerID()+1, p.Health(), p.ExtraLives())
		}
	}
	s += " | wasd drive, arrows aim, space fire, r respawn, p pause, q quit"
	for len(s) < w {
		s += " "
	}
	return s
}

func banner(c *game.Campaign) string {
	switch out := game.DetermineOutcome(c); out.Outcome {
	case game.OutcomeVictory:
		return " VICTORY - press q "
	case game.OutcomeDefeat:
		return " DEFEAT - press q "
	case game.OutcomeArenaWinner:
		return fmt.Sprintf(" PLAYER %d WINS ", out.Winner+1)
	}
	return ""
}
