package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Incursion/internal/game"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 14
)

// feedCategories are the event-log categories worth showing on screen.
var feedCategories = map[string]bool{
	"ai":     true,
	"death":  true,
	"player": true,
	"map":    true,
}

// EventFeed is a ring buffer of recent notable events rendered on-screen.
type EventFeed struct {
	entries []game.SimLogEntry
	head    int
	count   int
	seen    int // entries of the source log already consumed
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]game.SimLogEntry, feedMaxEntries),
	}
}

// Sync pulls every entry added to log since the last call.
func (f *EventFeed) Sync(log *game.SimLog) {
	if log == nil {
		return
	}
	all := log.Entries()
	if f.seen > len(all) {
		f.seen = 0
	}
	for _, e := range all[f.seen:] {
		if feedCategories[e.Category] {
			f.Add(e)
		}
	}
	f.seen = len(all)
}

// Add appends an entry to the feed.
func (f *EventFeed) Add(e game.SimLogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []game.SimLogEntry {
	result := make([]game.SimLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func factionColor(faction string) color.RGBA {
	switch faction {
	case "p0":
		return color.RGBA{R: 70, G: 140, B: 230, A: 255}
	case "p1":
		return color.RGBA{R: 230, G: 90, B: 70, A: 255}
	case "p2":
		return color.RGBA{R: 90, G: 210, B: 90, A: 255}
	case "p3":
		return color.RGBA{R: 230, G: 200, B: 60, A: 255}
	case "enemy":
		return color.RGBA{R: 170, G: 170, B: 170, A: 255}
	default:
		return color.RGBA{R: 90, G: 110, B: 90, A: 255}
	}
}

// Draw renders the feed panel on the right side of the screen.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const highlight = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, factionColor(e.Faction), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %-4s %s %s", e.Tick, e.Entity, e.Key, e.Value), panelX+12, y-2)
		y += feedLineHeight
	}
}
