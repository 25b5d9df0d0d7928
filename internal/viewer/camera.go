package viewer

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Incursion/internal/game"
)

// tilePx is the edge length of one tile in the world buffer.
const tilePx = 32

const (
	zoomMin = 0.25
	zoomMax = 4.0
)

// speeds are the selectable simulation multipliers; 0 is paused.
var speeds = []float64{0, 0.5, 1, 2, 4}

// camera maps the world buffer (tilePx per tile, y down) onto the viewport.
// x and y are the buffer-pixel coordinates shown at the viewport centre.
type camera struct {
	x, y   float64
	zoom   float64
	follow bool
}

// toBuffer converts a world position (tiles, y up) to world-buffer pixels.
func toBuffer(p game.Vec2, rows int) (float32, float32) {
	return float32(p.X * tilePx), float32((float64(rows) - p.Y) * tilePx)
}

// fitZoom is the zoom at which a cols x rows map fills the viewport.
func fitZoom(cols, rows, vpW, vpH int) float64 {
	z := float64(vpW) / float64(cols*tilePx)
	if zy := float64(vpH) / float64(rows*tilePx); zy < z {
		z = zy
	}
	return clampZoom(z)
}

func clampZoom(z float64) float64 {
	switch {
	case z < zoomMin:
		return zoomMin
	case z > zoomMax:
		return zoomMax
	}
	return z
}

// geoM is the world-buffer to screen transform for a viewport whose top-left
// corner sits at (offX, offY).
func (c *camera) geoM(vpW, vpH, offX, offY int) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-c.x, -c.y)
	g.Scale(c.zoom, c.zoom)
	g.Translate(float64(vpW)/2+float64(offX), float64(vpH)/2+float64(offY))
	return g
}

// screenToWorld inverts geoM and toBuffer for a cursor position.
func (c *camera) screenToWorld(mx, my, vpW, vpH, offX, offY, rows int) game.Vec2 {
	bx := (float64(mx)-float64(offX)-float64(vpW)/2)/c.zoom + c.x
	by := (float64(my)-float64(offY)-float64(vpH)/2)/c.zoom + c.y
	return game.Vec2{X: bx / tilePx, Y: float64(rows) - by/tilePx}
}

// centreOn points the camera at a world position.
func (c *camera) centreOn(p game.Vec2, rows int) {
	x, y := toBuffer(p, rows)
	c.x, c.y = float64(x), float64(y)
}

func slower(cur float64) float64 {
	for i, s := range speeds {
		if s >= cur && i > 0 {
			return speeds[i-1]
		}
	}
	return cur
}

func faster(cur float64) float64 {
	for _, s := range speeds {
		if s > cur {
			return s
		}
	}
	return cur
}

func viewportRect(offX, offY int) image.Rectangle {
	return image.Rect(offX, offY, offX+viewportW, offY+viewportH)
}
