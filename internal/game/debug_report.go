package game

import (
	"fmt"
	"strings"
)

// EntityDebugReport renders a plain-text account of one entity over the last
// lastTicks ticks, built from the map's event log. The viewer copies it to
// the clipboard.
func EntityDebugReport(m *Map, selected Entity, lastTicks int) string {
	if m == nil || selected == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 120
	}

	toTick := m.Tick()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Incursion debug report ---\n")
	fmt.Fprintf(&b, "map=%s id=%s tick_range=[%d..%d] ticks=%d\n", m.Name(), m.ID(), fromTick, toTick, toTick-fromTick+1)
	fmt.Fprintf(&b, "selected=%s type=%s faction=%s\n\n", selected.Label(), selected.Type(), selected.Faction())

	writeState(&b, m, selected)

	events := m.Events()
	if events == nil {
		b.WriteString("(no event log attached)\n")
		return b.String()
	}
	entries := entityEntries(events.FilterTickRange(fromTick, toTick), selected.Label())
	if len(entries) == 0 {
		b.WriteString("(no events recorded yet)\n")
		return b.String()
	}

	s := summarizeEntries(entries, selected.Label())
	fmt.Fprintf(&b, "summary: shots=%d hits_taken=%d state_changes=%d target_changes=%d bounces=%d\n",
		s.shots, s.hitsTaken, s.stateChanges, s.targetChanges, s.bounces)

	if stages := buildStages(entries, fromTick, toTick); len(stages) > 0 {
		b.WriteString("stages:\n")
		for i, st := range stages {
			fmt.Fprintf(&b, "  %02d) T=%d..%d (%dt) %s\n", i+1, st.startTick, st.endTick, st.endTick-st.startTick+1, st.state)
		}
	}

	b.WriteString("events:\n")
	for _, e := range storyEvents(entries) {
		b.WriteString("  - ")
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeState(b *strings.Builder, m *Map, e Entity) {
	pos := e.Position()
	fmt.Fprintf(b, "pos=(%.2f,%.2f) rot=%.1f hp=%d alive=%t killable=%t solid=%t\n",
		pos.X, pos.Y, e.Orientation(), e.Health(), e.IsAlive(), e.IsKillable(), e.IsSolid())
	switch v := e.(type) {
	case *PlayerTank:
		fmt.Fprintf(b, "player=%d lives=%d turret=%.1f cooldown=%.2f invincible=%t\n",
			v.PlayerID(), v.ExtraLives(), v.TurretOrientation(), v.GunCooldown(), v.IsInvincible())
	case *Bullet:
		vel := v.Velocity()
		fmt.Fprintf(b, "vel=(%.2f,%.2f) bounces_left=%d\n", vel.X, vel.Y, v.BouncesLeft())
	case aiEntity:
		target := "<none>"
		if id, ok := v.Target(); ok {
			if t := m.Entities().Lookup(id); t != nil {
				target = t.Label()
			}
		}
		lk := v.LastKnownPosition()
		fmt.Fprintf(b, "state=%s target=%s last_known=(%.2f,%.2f) turret=%.1f\n",
			v.State(), target, lk.X, lk.Y, v.TurretOrientation())
	}
	b.WriteByte('\n')
}

// entityEntries keeps the entries about label: its own, plus bullet hits
// that landed on it.
func entityEntries(all []SimLogEntry, label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range all {
		if e.Entity == label || isHitOn(e, label) {
			out = append(out, e)
		}
	}
	return out
}

func isHitOn(e SimLogEntry, label string) bool {
	return e.Category == "bullet" && e.Key == "hit" && strings.HasPrefix(e.Value, label+" ")
}

type entrySummary struct {
	shots         int
	hitsTaken     int
	stateChanges  int
	targetChanges int
	bounces       int
}

func summarizeEntries(entries []SimLogEntry, label string) entrySummary {
	var s entrySummary
	for _, e := range entries {
		switch {
		case e.Category == "fire":
			s.shots++
		case isHitOn(e, label):
			s.hitsTaken++
		case e.Category == "ai" && e.Key == "state_change":
			s.stateChanges++
		case e.Category == "ai" && e.Key == "target":
			s.targetChanges++
		case e.Category == "bullet" && e.Key == "bounce":
			s.bounces++
		}
	}
	return s
}

type reportStage struct {
	startTick int
	endTick   int
	state     string
}

// buildStages splits the window at each recorded AI state change.
func buildStages(entries []SimLogEntry, fromTick, toTick int) []reportStage {
	var stages []reportStage
	for _, e := range entries {
		if e.Category != "ai" || e.Key != "state_change" {
			continue
		}
		prev, next, ok := strings.Cut(e.Value, " → ")
		if !ok {
			continue
		}
		if n := len(stages); n > 0 {
			stages[n-1].endTick = max(stages[n-1].startTick, e.Tick-1)
		} else if e.Tick > fromTick {
			stages = append(stages, reportStage{startTick: fromTick, endTick: e.Tick - 1, state: prev})
		}
		stages = append(stages, reportStage{startTick: e.Tick, endTick: toTick, state: next})
	}
	return stages
}

func storyEvents(entries []SimLogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Category == "gc" {
			continue
		}
		out = append(out, fmt.Sprintf("T=%d %s %s %s", e.Tick, e.Category, e.Key, e.Value))
	}
	if len(out) > 24 {
		out = append(out[:24], fmt.Sprintf("... (%d more events)", len(out)-24))
	}
	return out
}
