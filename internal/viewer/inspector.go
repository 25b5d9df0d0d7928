package viewer

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Incursion/internal/game"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 230
	inspBufH  = 150
	inspPad   = 4
	inspLineH = 13

	// reportTicks is how much history the clipboard report covers (~10s).
	reportTicks = 600
)

// inspector holds a weak handle to the selected entity, so a destroyed
// selection simply stops resolving.
type inspector struct {
	selected game.EntityID
	buf      *ebiten.Image
}

// pick selects the live entity nearest to world point p within radius, or
// clears the selection.
func (in *inspector) pick(m *game.Map, p game.Vec2, radius float64) game.Entity {
	best := math.MaxFloat64
	var hit game.Entity
	for _, e := range m.Entities().All() {
		if e == nil || e.Type() == game.EntityBullet {
			continue
		}
		d := e.Position().DistanceTo(p)
		if d < radius+e.CosmeticRadius() && d < best {
			best = d
			hit = e
		}
	}
	if hit == nil {
		in.selected = game.EntityID{}
		return nil
	}
	in.selected = hit.ID()
	return hit
}

func (in *inspector) current(m *game.Map) game.Entity {
	return m.Entities().Lookup(in.selected)
}

// copyReport puts the selected entity's debug report on the system clipboard.
func (in *inspector) copyReport(m *game.Map) (string, error) {
	e := in.current(m)
	if e == nil {
		return "", fmt.Errorf("nothing selected")
	}
	if err := clipboard.WriteAll(game.EntityDebugReport(m, e, reportTicks)); err != nil {
		return "", fmt.Errorf("copy %s report: %w", e.Label(), err)
	}
	return e.Label(), nil
}

// mapSummary is the event-log summary followed by an ASCII dump of the grid.
func mapSummary(m *game.Map) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "map=%s id=%s tick=%d\n", m.Name(), m.ID(), m.Tick())
	if ev := m.Events(); ev != nil {
		sb.WriteString(ev.Summary(m.Tick(), m.Entities()))
	}
	sb.WriteString(m.Tiles().ASCII())
	return sb.String()
}

// inspectorLines is the curated field list shown in the panel.
func inspectorLines(m *game.Map, e game.Entity) []string {
	pos := e.Position()
	out := []string{
		fmt.Sprintf("[ %s %s ]", e.Label(), e.Type()),
		fmt.Sprintf("pos  (%.2f, %.2f)", pos.X, pos.Y),
		fmt.Sprintf("rot  %.0f deg   hp %d", e.Orientation(), e.Health()),
	}
	switch v := e.(type) {
	case *game.PlayerTank:
		out = append(out,
			fmt.Sprintf("player %d  lives %d", v.PlayerID(), v.ExtraLives()),
			fmt.Sprintf("turret %.0f  gun %.2fs", v.TurretOrientation(), math.Max(0, v.GunCooldown())),
		)
	case *game.EnemyTank:
		out = append(out, aiLines(m, v.State(), v.Target, v.LastKnownPosition())...)
		out = append(out, fmt.Sprintf("turret %.0f", v.TurretOrientation()))
	case *game.EnemyTurret:
		out = append(out, aiLines(m, v.State(), v.Target, v.LastKnownPosition())...)
		out = append(out, fmt.Sprintf("turret %.0f  scan %.1fs", v.TurretOrientation(), math.Max(0, v.ScanTimeLeft())))
	}
	return append(out, "", "[C] copy report")
}

func aiLines(m *game.Map, state game.AIState, target func() (game.EntityID, bool), lastKnown game.Vec2) []string {
	label := "none"
	if id, ok := target(); ok {
		if t := m.Entities().Lookup(id); t != nil {
			label = t.Label()
		}
	}
	return []string{
		fmt.Sprintf("state  %s", state),
		fmt.Sprintf("target %s", label),
		fmt.Sprintf("last   (%.1f, %.1f)", lastKnown.X, lastKnown.Y),
	}
}

// draw renders the panel at the top-left of the viewport.
func (in *inspector) draw(screen *ebiten.Image, m *game.Map, x, y int) {
	e := in.current(m)
	if e == nil {
		return
	}
	if in.buf == nil {
		in.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := in.buf
	buf.Clear()

	bw, bh := float32(inspBufW), float32(inspBufH)
	border := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, border, false)
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 70, G: 110, B: 70, A: 60}, false)

	ly := inspPad
	for _, l := range inspectorLines(m, e) {
		ebitenutil.DebugPrintAt(buf, l, inspPad, ly)
		ly += inspLineH
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(inspScale, inspScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(buf, op)
}
