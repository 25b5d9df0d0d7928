package main

import (
	"github.com/Garsondee/Incursion/internal/game"
)

const (
	// pilotStuckTicks is how long the pilot tolerates no progress toward the
	// exit before taking a detour.
	pilotStuckTicks  = 2 * game.TickRate
	pilotDetourTicks = game.TickRate
	pilotSightRange  = 12.0
)

// pilot drives player 0 for headless runs: it shoots the nearest visible
// enemy and heads for the exit, detouring when it stops making progress.
type pilot struct {
	campaign *game.Campaign
	rng      *game.SeededRNG

	lastTick     int
	lastMapID    string
	bestDist     float64
	sinceBetter  int
	detourLeft   int
	detourDegree float64
	state        game.ControllerState
}

func newPilot(seed int64) *pilot {
	return &pilot{rng: game.NewSeededRNG(seed), lastTick: -1}
}

// Controller implements game.InputSource. Only player 0 is connected. The
// steering decision is made once per tick.
func (pl *pilot) Controller(playerID int) game.ControllerState {
	if playerID != 0 {
		return game.ControllerState{}
	}
	if pl.campaign == nil {
		return game.ControllerState{Connected: true}
	}
	m := pl.campaign.Active()
	if m.ID() != pl.lastMapID {
		pl.lastMapID = m.ID()
		pl.bestDist = -1
		pl.sinceBetter = 0
		pl.detourLeft = 0
		pl.lastTick = -1
	}
	if m.Tick() != pl.lastTick {
		pl.lastTick = m.Tick()
		pl.state = pl.steer(m)
	}
	return pl.state
}

func (pl *pilot) steer(m *game.Map) game.ControllerState {
	st := game.ControllerState{Connected: true}
	p := m.Entities().Player(0)
	if p == nil {
		return st
	}
	if !p.IsAlive() {
		st.Respawn = true
		return st
	}

	if target := nearestVisibleEnemy(m, p); target != nil {
		st.Right = game.Stick{Magnitude: 1, Degrees: target.Position().Sub(p.Position()).OrientationDegrees()}
		st.Fire = true
	}

	exit, ok := exitCentre(m)
	if !ok {
		return st
	}
	to := exit.Sub(p.Position())
	dist := to.Length()
	if pl.bestDist < 0 || dist < pl.bestDist-0.25 {
		pl.bestDist = dist
		pl.sinceBetter = 0
	} else {
		pl.sinceBetter++
	}
	if pl.detourLeft == 0 && pl.sinceBetter > pilotStuckTicks {
		pl.detourLeft = pilotDetourTicks
		pl.detourDegree = pl.rng.FloatInRange(0, 360)
		pl.sinceBetter = 0
		pl.bestDist = dist
	}

	heading := to.OrientationDegrees()
	if pl.detourLeft > 0 {
		pl.detourLeft--
		heading = pl.detourDegree
	}
	st.Left = game.Stick{Magnitude: 1, Degrees: heading}
	return st
}

func nearestVisibleEnemy(m *game.Map, p *game.PlayerTank) game.Entity {
	var best game.Entity
	bestDist := pilotSightRange
	for _, e := range m.Entities().All() {
		if e == nil || !e.IsAlive() {
			continue
		}
		if t := e.Type(); t != game.EntityEnemyTank && t != game.EntityEnemyTurret {
			continue
		}
		d := p.Position().DistanceTo(e.Position())
		if d < bestDist && m.HasLineOfSight(p, e) {
			best, bestDist = e, d
		}
	}
	return best
}

func exitCentre(m *game.Map) (game.Vec2, bool) {
	tiles := m.Tiles().Tiles
	for i := range tiles {
		if tiles[i].Type == game.TileExit {
			return tiles[i].Center(), true
		}
	}
	return game.Vec2{}, false
}
