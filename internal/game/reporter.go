package game

import (
	"fmt"
	"sort"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// EntityReport captures a single entity's state.
type EntityReport struct {
	Label       string
	Type        EntityType
	State       string
	Health      int
	Position    Vec2
	Orientation float64
	Target      string
}

// MapReport is a snapshot of one map at one tick.
type MapReport struct {
	Tick    int
	MapName string
	MapID   string

	// AIStates counts live enemies per behaviour state.
	AIStates map[AIState]int

	PlayersAlive, PlayersDead int
	PlayerHealth              int // summed over living players
	PlayerLives               int // spare lives across all players

	EnemyTanks, EnemyTurrets int
	EnemiesDestroyed         int
	EnemiesWithTarget        int
	Bullets, Explosions      int

	// Entities is only filled in verbose mode.
	Entities []EntityReport
}

// EnemiesAlive is the number of live enemy tanks and turrets.
func (r MapReport) EnemiesAlive() int { return r.EnemyTanks + r.EnemyTurrets }

// MapReporter collects periodic reports from a map and can produce summaries
// over sliding time windows. Switching to a different map clears the history.
type MapReporter struct {
	history     []MapReport
	windowTicks int
	verbose     bool

	mapID       string
	peakEnemies int
}

// NewMapReporter creates a reporter with the given window size.
func NewMapReporter(windowTicks int, verbose bool) *MapReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &MapReporter{
		windowTicks: windowTicks,
		verbose:     verbose,
	}
}

// Collect gathers a snapshot from the map's current state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *MapReporter) Collect(m *Map) {
	if m.ID() != r.mapID {
		r.history = r.history[:0]
		r.mapID = m.ID()
		r.peakEnemies = 0
	}
	report := MapReport{
		Tick:     m.Tick(),
		MapName:  m.Name(),
		MapID:    m.ID(),
		AIStates: make(map[AIState]int),
	}

	for _, e := range m.Entities().All() {
		if e == nil {
			continue
		}
		r.tally(e, &report)
	}
	report.Explosions = m.Entities().Count(EntityExplosion)

	if alive := report.EnemiesAlive(); alive > r.peakEnemies {
		r.peakEnemies = alive
	}
	report.EnemiesDestroyed = r.peakEnemies - report.EnemiesAlive()

	r.history = append(r.history, report)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / TickRate * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

func (r *MapReporter) tally(e Entity, report *MapReport) {
	switch e.Type() {
	case EntityPlayerTank:
		p := e.(*PlayerTank)
		report.PlayerLives += p.ExtraLives()
		if !p.IsAlive() {
			report.PlayersDead++
			break
		}
		report.PlayersAlive++
		report.PlayerHealth += p.Health()
	case EntityEnemyTank, EntityEnemyTurret:
		if !e.IsAlive() {
			break
		}
		if e.Type() == EntityEnemyTank {
			report.EnemyTanks++
		} else {
			report.EnemyTurrets++
		}
		if ai, ok := e.(aiEntity); ok {
			report.AIStates[ai.State()]++
			if _, has := ai.Target(); has {
				report.EnemiesWithTarget++
			}
		}
	case EntityBullet:
		report.Bullets++
	}

	if r.verbose {
		report.Entities = append(report.Entities, reportEntity(e))
	}
}

// aiEntity is satisfied by the enemy types.
type aiEntity interface {
	Entity
	State() AIState
	Target() (EntityID, bool)
	LastKnownPosition() Vec2
	TurretOrientation() float64
}

func reportEntity(e Entity) EntityReport {
	er := EntityReport{
		Label:       e.Label(),
		Type:        e.Type(),
		State:       "-",
		Health:      e.Health(),
		Position:    e.Position(),
		Orientation: e.Orientation(),
		Target:      "-",
	}
	if !e.IsAlive() {
		er.State = "dead"
	}
	if ai, ok := e.(aiEntity); ok && e.IsAlive() {
		er.State = ai.State().String()
		if id, has := ai.Target(); has {
			er.Target = id.String()
		}
	}
	return er
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *MapReporter) Latest() *MapReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports for the current map.
func (r *MapReporter) History() []MapReport {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	MapName          string
	FromTick, ToTick int
	SampleCount      int

	// AIStatePct is the share of enemy-samples spent in each state (0-100).
	AIStatePct map[AIState]float64

	AvgPlayersAlive, AvgPlayerHealth float64
	AvgEnemiesAlive, AvgWithTarget   float64
	AvgBullets, AvgExplosions        float64

	// Cumulative, taken from the latest sample.
	EnemiesDestroyed int
	PlayersDead      int
	PlayerLives      int
}

// WindowSummary returns an aggregated summary over the recent time window.
func (r *MapReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latest := r.history[len(r.history)-1]
	cutoff := latest.Tick - r.windowTicks
	var window []MapReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	wr := &WindowReport{
		MapName:          latest.MapName,
		FromTick:         window[len(window)-1].Tick,
		ToTick:           latest.Tick,
		SampleCount:      len(window),
		AIStatePct:       make(map[AIState]float64),
		EnemiesDestroyed: latest.EnemiesDestroyed,
		PlayersDead:      latest.PlayersDead,
		PlayerLives:      latest.PlayerLives,
	}

	stateTotal := make(map[AIState]float64)
	var total float64
	for _, rpt := range window {
		for s, c := range rpt.AIStates {
			stateTotal[s] += float64(c)
			total += float64(c)
		}
		wr.AvgPlayersAlive += float64(rpt.PlayersAlive)
		wr.AvgPlayerHealth += float64(rpt.PlayerHealth)
		wr.AvgEnemiesAlive += float64(rpt.EnemiesAlive())
		wr.AvgWithTarget += float64(rpt.EnemiesWithTarget)
		wr.AvgBullets += float64(rpt.Bullets)
		wr.AvgExplosions += float64(rpt.Explosions)
	}
	if total > 0 {
		for s, c := range stateTotal {
			wr.AIStatePct[s] = c / total * 100
		}
	}

	wr.AvgPlayersAlive /= n
	wr.AvgPlayerHealth /= n
	wr.AvgEnemiesAlive /= n
	wr.AvgWithTarget /= n
	wr.AvgBullets /= n
	wr.AvgExplosions /= n
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Behaviour Report %s (T=%d..%d, %d samples) ===\n",
		wr.MapName, wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Enemy State Distribution ---\n")
	for _, s := range []AIState{AIWander, AIChase, AIInvestigate, AIScan} {
		if pct, ok := wr.AIStatePct[s]; ok && pct > 0.5 {
			fmt.Fprintf(&sb, "  %-12s %5.1f%%\n", s, pct)
		}
	}

	sb.WriteString("\n--- Players ---\n")
	fmt.Fprintf(&sb, "  alive=%.1f  health=%.1f  dead=%d  spare_lives=%d\n",
		wr.AvgPlayersAlive, wr.AvgPlayerHealth, wr.PlayersDead, wr.PlayerLives)

	sb.WriteString("\n--- Enemies ---\n")
	fmt.Fprintf(&sb, "  alive=%.1f  with_target=%.1f  destroyed=%d\n",
		wr.AvgEnemiesAlive, wr.AvgWithTarget, wr.EnemiesDestroyed)

	sb.WriteString("\n--- Ordnance ---\n")
	fmt.Fprintf(&sb, "  bullets_in_flight=%.1f  explosions=%.1f\n", wr.AvgBullets, wr.AvgExplosions)
	return sb.String()
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *MapReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot %s T=%d ---\n", rpt.MapName, rpt.Tick)
	fmt.Fprintf(&sb, "Players: alive=%d dead=%d health=%d lives=%d\n",
		rpt.PlayersAlive, rpt.PlayersDead, rpt.PlayerHealth, rpt.PlayerLives)
	fmt.Fprintf(&sb, "Enemies: tanks=%d turrets=%d destroyed=%d with_target=%d\n",
		rpt.EnemyTanks, rpt.EnemyTurrets, rpt.EnemiesDestroyed, rpt.EnemiesWithTarget)

	states := make([]AIState, 0, len(rpt.AIStates))
	for s := range rpt.AIStates {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	sb.WriteString("States: ")
	for _, s := range states {
		fmt.Fprintf(&sb, "%s=%d ", s, rpt.AIStates[s])
	}
	sb.WriteByte('\n')

	for _, er := range rpt.Entities {
		fmt.Fprintf(&sb, "  %-6s %-12s hp=%d pos=(%.2f,%.2f) rot=%.0f target=%s\n",
			er.Label, er.State, er.Health, er.Position.X, er.Position.Y, er.Orientation, er.Target)
	}
	return sb.String()
}
