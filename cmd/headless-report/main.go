package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Incursion/internal/game"
	"github.com/Garsondee/Incursion/internal/logger"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	outcome     game.MatchOutcome
	description string
	mapsCleared int
	mapReached  string

	firstShotTick   int
	firstKillTick   int
	firstDeathTick  int
	firstExitTick   int
	shots           int
	enemyKills      map[string]int
	playerDeaths    int
	respawns        int
	bounces         int
	stateChanges    int
	targetChanges   int
	spareLivesAtEnd int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var campaignPath string

	flag.IntVar(&runs, "runs", 5, "number of headless campaign runs")
	flag.IntVar(&ticks, "ticks", 7200, "maximum ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&campaignPath, "campaign", "", "campaign YAML file (default: built-in campaign)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg, err := game.LoadCampaign(campaignPath, nil)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	log := logger.Quiet(os.Stderr)

	fmt.Printf("=== Headless Campaign Report ===\n")
	fmt.Printf("maps=%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", len(cfg.Maps), runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runCampaign(cfg, i+1, seed, ticks, log)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runCampaign plays one campaign with player 0 flown by the pilot until the
// campaign ends or ticks run out.
func runCampaign(cfg game.CampaignConfig, runIndex int, seed int64, ticks int, log logrus.FieldLogger) (runStats, error) {
	events := game.NewSimLog(false)
	pl := newPilot(seed)
	c, err := game.NewCampaign(cfg, nil, game.Deps{
		RNG:    game.NewSeededRNG(seed),
		Input:  pl,
		Logger: log,
		Events: events,
	})
	if err != nil {
		return runStats{}, err
	}
	pl.campaign = c
	reporter := game.NewMapReporter(0, false)

	ran := 0
	for ; ran < ticks; ran++ {
		if out := game.DetermineOutcome(c).Outcome; out == game.OutcomeVictory || out == game.OutcomeDefeat {
			break
		}
		if err := c.Update(game.TickSeconds); err != nil {
			return runStats{}, err
		}
		if m := c.Active(); m.Tick()%game.TickRate == 0 {
			reporter.Collect(m)
		}
	}

	out := game.DetermineOutcome(c)
	entries := events.Entries()
	kills := map[string]int{}
	firstKill := -1
	playerDeaths := 0
	firstDeath := -1
	for _, e := range entries {
		if e.Category != "death" {
			continue
		}
		switch e.Key {
		case game.EntityEnemyTank.String(), game.EntityEnemyTurret.String():
			kills[e.Key]++
			if firstKill < 0 {
				firstKill = e.Tick
			}
		case game.EntityPlayerTank.String():
			playerDeaths++
			if firstDeath < 0 {
				firstDeath = e.Tick
			}
		}
	}

	cleared := out.MapIndex
	if out.Outcome == game.OutcomeVictory {
		cleared = out.MapCount
	}
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		ticks:           ran,
		outcome:         out.Outcome,
		description:     out.Description,
		mapsCleared:     cleared,
		mapReached:      out.MapName,
		firstShotTick:   firstTick(entries, "fire", "shot", ""),
		firstKillTick:   firstKill,
		firstDeathTick:  firstDeath,
		firstExitTick:   firstTick(entries, "player", "exit", ""),
		shots:           events.CountCategory("fire", "shot"),
		enemyKills:      kills,
		playerDeaths:    playerDeaths,
		respawns:        events.CountCategory("player", "respawn"),
		bounces:         events.CountCategory("bullet", "bounce"),
		stateChanges:    events.CountCategory("ai", "state_change"),
		targetChanges:   events.CountCategory("ai", "target"),
		spareLivesAtEnd: out.SpareLives,
		windowSummary:   reporter.WindowSummary(),
	}, nil
}

// firstTick returns the tick of the first matching entry, or -1. Ticks
// restart on every map, so this is only meaningful for the first match.
func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectStall reports a run that ran out of ticks without making progress:
// no map cleared and no enemy destroyed.
func detectStall(rs runStats) (bool, string) {
	if rs.outcome != game.OutcomeInProgress {
		return false, "finished_" + rs.outcome.String()
	}
	var reasons []string
	if rs.mapsCleared == 0 {
		reasons = append(reasons, "no_map_cleared")
	}
	if totalKills(rs.enemyKills) == 0 {
		reasons = append(reasons, "no_enemy_destroyed")
	}
	if len(reasons) < 2 {
		return false, "progressing"
	}
	return true, strings.Join(reasons, "+")
}

func totalKills(k map[string]int) int {
	n := 0
	for _, v := range k {
		n += v
	}
	return n
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s (%s) ticks=%d maps_cleared=%d reached=%s spare_lives=%d\n",
		rs.outcome, rs.description, rs.ticks, rs.mapsCleared, rs.mapReached, rs.spareLivesAtEnd)
	fmt.Printf("phase_markers: first_shot=%d first_kill=%d first_player_death=%d first_exit=%d\n",
		rs.firstShotTick, rs.firstKillTick, rs.firstDeathTick, rs.firstExitTick)
	fmt.Printf("event_totals: shots=%d bounces=%d player_deaths=%d respawns=%d ai_state_change=%d ai_target=%d\n",
		rs.shots, rs.bounces, rs.playerDeaths, rs.respawns, rs.stateChanges, rs.targetChanges)
	fmt.Printf("kills: %s\n", joinCounts(rs.enemyKills))
	if stalled, reason := detectStall(rs); stalled {
		fmt.Printf("STALLED: %s\n", reason)
	}
	if rs.windowSummary != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick)
		fmt.Printf("window_ai_pct: wander=%.1f chase=%.1f investigate=%.1f scan=%.1f\n",
			rs.windowSummary.AIStatePct[game.AIWander],
			rs.windowSummary.AIStatePct[game.AIChase],
			rs.windowSummary.AIStatePct[game.AIInvestigate],
			rs.windowSummary.AIStatePct[game.AIScan],
		)
		fmt.Printf("window_avg: enemies_alive=%.1f with_target=%.1f bullets=%.1f player_health=%.1f\n",
			rs.windowSummary.AvgEnemiesAlive,
			rs.windowSummary.AvgWithTarget,
			rs.windowSummary.AvgBullets,
			rs.windowSummary.AvgPlayerHealth,
		)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalShots := 0
	totalDeaths := 0
	totalRespawns := 0
	totalBounces := 0
	totalCleared := 0
	stalls := 0
	outcomes := map[string]int{}
	kills := map[string]int{}

	killTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	exitTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalShots += rs.shots
		totalDeaths += rs.playerDeaths
		totalRespawns += rs.respawns
		totalBounces += rs.bounces
		totalCleared += rs.mapsCleared
		outcomes[rs.outcome.String()]++
		for k, v := range rs.enemyKills {
			kills[k] += v
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		if rs.firstExitTick >= 0 {
			exitTicks = append(exitTicks, rs.firstExitTick)
		}
		if stalled, _ := detectStall(rs); stalled {
			stalls++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d outcomes=[%s] stalled=%d\n", len(all), joinCounts(outcomes), stalls)
	fmt.Printf("avg_per_run: maps_cleared=%.2f shots=%.1f bounces=%.1f player_deaths=%.1f respawns=%.1f\n",
		avg(totalCleared, len(all)), avg(totalShots, len(all)), avg(totalBounces, len(all)),
		avg(totalDeaths, len(all)), avg(totalRespawns, len(all)))
	fmt.Printf("kills_total: %s\n", joinCounts(kills))
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s first_player_death=%s first_exit=%s\n",
		avgTickString(killTicks), avgTickString(deathTicks), avgTickString(exitTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, ",")
}
