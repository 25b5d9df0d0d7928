// Package viewer is the ebiten front end: it steps a Campaign at the fixed
// tick rate and draws the active map with optional debug overlays.
package viewer

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Incursion/internal/game"
)

// borderWidth is the pixel gap between the window edge and the playfield.
const borderWidth = 24

const (
	viewportW = 1152
	viewportH = 768

	// statusTicks is how long a status message stays on screen.
	statusTicks = 3 * game.TickRate
)

// Config wires a Viewer to a running campaign.
type Config struct {
	Campaign *game.Campaign
	Input    *Input        // polled once per tick; must be the campaign's InputSource
	Events   *game.SimLog  // the campaign's event log, may be nil
	Logger   logrus.FieldLogger
}

// Viewer implements ebiten.Game.
type Viewer struct {
	campaign *game.Campaign
	input    *Input
	events   *game.SimLog
	feed     *EventFeed
	reporter *game.MapReporter
	log      logrus.FieldLogger

	width, height int
	offX, offY    int

	worldBuf *ebiten.Image
	mapID    string // map the buffer and camera were set up for

	cam       camera
	showDebug bool
	showHUD   bool
	prevKeys  map[ebiten.Key]bool

	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64

	inspector     inspector
	prevMouseLeft bool

	status      string
	statusTicks int
}

// New builds a viewer for cfg.
func New(cfg Config) *Viewer {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	v := &Viewer{
		campaign: cfg.Campaign,
		input:    cfg.Input,
		events:   cfg.Events,
		feed:     NewEventFeed(),
		reporter: game.NewMapReporter(0, false),
		log:      cfg.Logger.WithField("component", "viewer"),
		width:    borderWidth + viewportW + borderWidth + feedPanelWidth,
		height:   borderWidth + viewportH + borderWidth,
		offX:     borderWidth,
		offY:     borderWidth,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		simSpeed: 1,
	}
	v.cam.follow = true
	return v
}

// Size is the window size the viewer lays out for.
func (v *Viewer) Size() (int, int) { return v.width, v.height }

func (v *Viewer) Update() error {
	if v.handleInput() {
		return ebiten.Termination
	}
	if v.statusTicks > 0 {
		v.statusTicks--
	}
	if v.simSpeed <= 0 {
		return nil
	}
	// For speeds > 1 run multiple sim ticks per frame; for speeds < 1 accumulate.
	v.tickAccum += v.simSpeed
	for v.tickAccum >= 1.0 {
		v.tickAccum -= 1.0
		if err := v.simTick(); err != nil {
			return err
		}
	}
	return nil
}

// simTick runs one simulation tick.
func (v *Viewer) simTick() error {
	if v.input != nil {
		v.input.Poll()
	}
	if err := v.campaign.Update(game.TickSeconds); err != nil {
		return fmt.Errorf("campaign update: %w", err)
	}
	m := v.campaign.Active()
	if m.Tick()%game.TickRate == 0 {
		v.reporter.Collect(m)
		if v.log != nil && m.Tick()%(10*game.TickRate) == 0 {
			v.log.Debug(v.reporter.WindowSummary().Format())
		}
	}
	v.feed.Sync(v.events)
	return nil
}

func (v *Viewer) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !v.prevKeys[k]
}

// handleInput processes viewer keys (edge-triggered). It reports whether the
// window should close.
func (v *Viewer) handleInput() bool {
	cur := map[ebiten.Key]bool{}
	defer func() { v.prevKeys = cur }()
	m := v.campaign.Active()

	if v.pressed(cur, ebiten.KeyEscape) {
		return true
	}
	if v.pressed(cur, ebiten.KeyF1) {
		v.showDebug = !v.showDebug
	}
	if v.pressed(cur, ebiten.KeyF3) {
		m.SetPlayerCollision(!m.PlayerCollision())
		v.setStatus(fmt.Sprintf("player collision %s", onOff(m.PlayerCollision())))
	}
	if v.pressed(cur, ebiten.KeyH) {
		v.showHUD = !v.showHUD
	}
	if v.pressed(cur, ebiten.KeyF) {
		v.cam.follow = !v.cam.follow
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if v.pressed(cur, ebiten.KeyP) {
		if v.simSpeed > 0 {
			v.simSpeed = 0
		} else {
			v.simSpeed = 1
		}
	}
	if v.pressed(cur, ebiten.KeyComma) {
		v.simSpeed = slower(v.simSpeed)
	}
	if v.pressed(cur, ebiten.KeyPeriod) {
		v.simSpeed = faster(v.simSpeed)
	}

	// Camera zoom: mouse wheel or =/- keys.
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.cam.zoom = clampZoom(v.cam.zoom * pow112(wy))
	}
	if v.pressed(cur, ebiten.KeyEqual) {
		v.cam.zoom = clampZoom(v.cam.zoom * 1.25)
	}
	if v.pressed(cur, ebiten.KeyMinus) {
		v.cam.zoom = clampZoom(v.cam.zoom / 1.25)
	}

	// Left click selects, C copies the selection's report.
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !v.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		p := v.cam.screenToWorld(mx, my, viewportW, viewportH, v.offX, v.offY, m.Tiles().Rows)
		v.inspector.pick(m, p, 8/(v.cam.zoom*tilePx))
	}
	v.prevMouseLeft = left
	if v.pressed(cur, ebiten.KeyC) {
		v.copyToClipboard(m)
	}
	return false
}

// copyToClipboard copies the selected entity's report, or the map summary
// when nothing is selected.
func (v *Viewer) copyToClipboard(m *game.Map) {
	what := "map summary"
	var err error
	if v.inspector.current(m) != nil {
		var label string
		if label, err = v.inspector.copyReport(m); err == nil {
			what = label + " report"
		}
	} else {
		err = clipboard.WriteAll(mapSummary(m))
	}
	if err != nil {
		v.setStatus(err.Error())
		v.log.WithError(err).Warn("clipboard copy failed")
		return
	}
	v.setStatus("copied " + what)
}

func pow112(n float64) float64 {
	z := 1.0
	step := 1.12
	if n < 0 {
		step, n = 1/1.12, -n
	}
	for ; n > 0; n-- {
		z *= step
	}
	return z
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (v *Viewer) setStatus(s string) {
	v.status = s
	v.statusTicks = statusTicks
}

// prepareMap sizes the world buffer and resets the camera when the active
// map changes.
func (v *Viewer) prepareMap(m *game.Map) {
	if m.ID() == v.mapID {
		return
	}
	tm := m.Tiles()
	if v.worldBuf != nil {
		v.worldBuf.Deallocate()
	}
	v.worldBuf = ebiten.NewImage(tm.Cols*tilePx, tm.Rows*tilePx)
	v.mapID = m.ID()
	v.cam.zoom = fitZoom(tm.Cols, tm.Rows, viewportW, viewportH)
	v.cam.centreOn(game.Vec2{X: float64(tm.Cols) / 2, Y: float64(tm.Rows) / 2}, tm.Rows)
	v.inspector.selected = game.EntityID{}
}

// followPlayers centres the camera on the live players' average position.
func (v *Viewer) followPlayers(m *game.Map) {
	var sum game.Vec2
	n := 0
	for _, p := range m.Players() {
		if p != nil && p.IsAlive() {
			sum = sum.Add(p.Position())
			n++
		}
	}
	if n == 0 {
		return
	}
	v.cam.centreOn(sum.Scale(1/float64(n)), m.Tiles().Rows)
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	m := v.campaign.Active()
	v.prepareMap(m)
	if v.cam.follow {
		v.followPlayers(m)
	}

	v.worldBuf.Clear()
	drawTiles(v.worldBuf, m, m.Tick())
	drawEntities(v.worldBuf, m)
	if v.showDebug {
		drawDebug(v.worldBuf, m)
	}
	if sel := v.inspector.current(m); sel != nil {
		drawSelection(v.worldBuf, m, sel)
	}

	// Clip the world to the viewport rectangle.
	vp := screen.SubImage(viewportRect(v.offX, v.offY)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{GeoM: v.cam.geoM(viewportW, viewportH, v.offX, v.offY)}
	vp.DrawImage(v.worldBuf, op)

	ox, oy := float32(v.offX), float32(v.offY)
	vector.StrokeRect(screen, ox-1, oy-1, viewportW+2, viewportH+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	v.feed.Draw(screen, v.offX+viewportW+v.offX, v.height)
	if v.showHUD {
		v.drawHUD(screen, m)
	}
	v.inspector.draw(screen, m, v.offX+6, v.offY+6)
	v.drawBanner(screen)
}

func (v *Viewer) drawHUD(screen *ebiten.Image, m *game.Map) {
	speedStr := fmt.Sprintf("%.1fx", v.simSpeed)
	if v.simSpeed == 0 {
		speedStr = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("%s  map %d/%d  T=%d", m.Name(), v.campaign.MapIndex()+1, v.campaign.MapCount(), m.Tick()),
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed", speedStr),
	}
	for _, p := range m.Players() {
		if p == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("P%d  hp %d  lives %d", p.PlayerID()+1, p.Health(), p.ExtraLives()))
	}
	lines = append(lines,
		fmt.Sprintf("F1 debug [%s]  F3 collision [%s]", onOff(v.showDebug), onOff(m.PlayerCollision())),
		fmt.Sprintf("F follow [%s]  scroll/=/- zoom  H hud", onOff(v.cam.follow)),
	)
	if v.statusTicks > 0 {
		lines = append(lines, v.status)
	}

	face := basicfont.Face7x13
	const lineH = 15
	boxW := float32(0)
	for _, l := range lines {
		if w := float32(len(l) * 7); w > boxW {
			boxW = w
		}
	}
	boxW += 12
	boxH := float32(len(lines)*lineH + 8)
	bx := float32(v.offX + 6)
	by := float32(v.offY+viewportH) - boxH - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, l := range lines {
		text.Draw(screen, l, face, int(bx)+6, int(by)+4+(i+1)*lineH-3, color.RGBA{R: 210, G: 230, B: 210, A: 255})
	}
}

// drawBanner announces the end of the campaign.
func (v *Viewer) drawBanner(screen *ebiten.Image) {
	msg := ""
	switch out := game.DetermineOutcome(v.campaign); out.Outcome {
	case game.OutcomeVictory:
		msg = "VICTORY - campaign complete"
	case game.OutcomeDefeat:
		msg = "DEFEAT - all tanks destroyed"
	case game.OutcomeArenaWinner:
		msg = fmt.Sprintf("PLAYER %d WINS THE ARENA", out.Winner+1)
	case game.OutcomeNoPlayers:
		msg = "press a button to join"
	default:
		return
	}
	face := basicfont.Face7x13
	w := len(msg) * 7
	x := v.offX + (viewportW-w)/2
	y := v.offY + viewportH/2
	vector.FillRect(screen, float32(x-12), float32(y-20), float32(w+24), 30, color.RGBA{A: 200}, false)
	text.Draw(screen, msg, face, x, y, color.White)
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}
