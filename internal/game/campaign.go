package game

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Campaign plays a CampaignConfig's maps in order. Reaching the exit on one
// map carries the players over to the next; leaving the last map wins.
type Campaign struct {
	cfg     CampaignConfig
	catalog *TileCatalog
	deps    Deps
	log     logrus.FieldLogger

	index  int
	active *Map

	beaten        bool
	victoryPlayed bool
}

// NewCampaign validates cfg and builds its first map.
func NewCampaign(cfg CampaignConfig, catalog *TileCatalog, deps Deps) (*Campaign, error) {
	if catalog == nil {
		catalog = DefaultTileCatalog()
	}
	if err := cfg.Validate(catalog); err != nil {
		return nil, err
	}
	deps = deps.withDefaults()
	first, err := NewMap(cfg.Maps[0], catalog, deps)
	if err != nil {
		return nil, err
	}
	c := &Campaign{
		cfg:     cfg,
		catalog: catalog,
		deps:    deps,
		log:     deps.Logger.WithField("component", "campaign"),
		active:  first,
	}
	c.log.WithFields(logrus.Fields{"maps": len(cfg.Maps), "first": first.Name()}).Info("campaign started")
	return c, nil
}

// Active is the map being played.
func (c *Campaign) Active() *Map { return c.active }

// MapIndex is the position of the active map in the campaign.
func (c *Campaign) MapIndex() int { return c.index }

// MapCount is the number of maps in the campaign.
func (c *Campaign) MapCount() int { return len(c.cfg.Maps) }

// IsBeaten reports that the players left the final map.
func (c *Campaign) IsBeaten() bool { return c.beaten }

// IsOver reports that at least one player joined and every player is out
// of lives.
func (c *Campaign) IsOver() bool {
	return c.active.PlayerCount() > 0 && c.active.AreAllPlayersDead()
}

// Update steps the active map and moves on once its exit was reached.
func (c *Campaign) Update(dt float64) error {
	if c.beaten {
		return nil
	}
	c.active.Update(dt)
	if c.active.ExitReached() {
		return c.Advance()
	}
	return nil
}

// Advance moves the players to the next map, or marks the campaign beaten
// when the active map is the last.
func (c *Campaign) Advance() error {
	if c.beaten {
		return nil
	}
	if c.index+1 >= len(c.cfg.Maps) {
		c.beaten = true
		if !c.victoryPlayed {
			c.deps.Audio.Play(SoundVictory)
			c.victoryPlayed = true
		}
		c.log.WithField("map", c.active.Name()).Info("campaign beaten")
		return nil
	}

	def := c.cfg.Maps[c.index+1]
	next, err := buildMap(def, c.catalog, c.deps, false)
	if err != nil {
		return fmt.Errorf("advance to map %d: %w", c.index+1, err)
	}
	prev := c.active
	prev.SendPlayersToMap(next)
	prev.Shutdown()
	c.active = next
	c.index++
	c.log.WithFields(logrus.Fields{"from": prev.Name(), "to": next.Name(), "index": c.index}).Info("map advanced")
	return nil
}
