package game

import "fmt"

type MatchOutcome int

const (
	OutcomeInProgress MatchOutcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeArenaWinner
	OutcomeNoPlayers
)

func (o MatchOutcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeArenaWinner:
		return "arena_winner"
	case OutcomeNoPlayers:
		return "no_players"
	default:
		return "unknown"
	}
}

type MatchOutcomeReason struct {
	Outcome      MatchOutcome
	MapIndex     int
	MapCount     int
	MapName      string
	Tick         int
	PlayersAlive int
	PlayersTotal int
	SpareLives   int
	EnemiesLeft  int
	Winner       int // player id, -1 unless Outcome is OutcomeArenaWinner
	Description  string
}

// DetermineOutcome classifies where a campaign stands.
func DetermineOutcome(c *Campaign) MatchOutcomeReason {
	m := c.Active()
	r := MatchOutcomeReason{
		MapIndex:    c.MapIndex(),
		MapCount:    c.MapCount(),
		MapName:     m.Name(),
		Tick:        m.Tick(),
		EnemiesLeft: m.Entities().Count(EntityEnemyTank) + m.Entities().Count(EntityEnemyTurret),
		Winner:      -1,
	}
	lastAlive := -1
	for _, p := range m.Players() {
		if p == nil {
			continue
		}
		r.PlayersTotal++
		r.SpareLives += p.ExtraLives()
		if p.IsAlive() {
			r.PlayersAlive++
			lastAlive = p.PlayerID()
		}
	}

	switch {
	case c.IsBeaten():
		r.Outcome = OutcomeVictory
		r.Description = fmt.Sprintf("campaign_beaten_%d_maps", r.MapCount)
	case r.PlayersTotal == 0:
		r.Outcome = OutcomeNoPlayers
		r.Description = "waiting_for_players"
	case c.IsOver():
		r.Outcome = OutcomeDefeat
		r.Description = fmt.Sprintf("all_players_destroyed_on_%s", r.MapName)
	case m.IsArena() && r.PlayersTotal > 1 && r.PlayersAlive == 1 && r.SpareLives == 0:
		r.Outcome = OutcomeArenaWinner
		r.Winner = lastAlive
		r.Description = fmt.Sprintf("last_tank_standing_p%d", lastAlive)
	default:
		r.Outcome = OutcomeInProgress
		r.Description = fmt.Sprintf("map_%d_of_%d", r.MapIndex+1, r.MapCount)
	}
	return r
}
