// Command term-view plays a campaign in the terminal: the map is drawn with
// tile glyphs and player 0 is driven from the keyboard.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Incursion/internal/game"
	"github.com/Garsondee/Incursion/internal/logger"
)

type termView struct {
	screen   tcell.Screen
	campaign *game.Campaign
	input    *termInput
	log      logrus.FieldLogger
	paused   bool
}

func main() {
	campaignPath := flag.String("campaign", "", "campaign YAML file (default: built-in campaign)")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	// The terminal owns stdout; only warnings go to stderr.
	log := logger.Quiet(os.Stderr)

	cfg, err := game.LoadCampaign(*campaignPath, nil)
	if err != nil {
		log.WithError(err).Fatal("load campaign")
	}
	input := newTermInput()
	campaign, err := game.NewCampaign(cfg, nil, game.Deps{
		RNG:    game.NewSeededRNG(*seed),
		Input:  input,
		Logger: log,
	})
	if err != nil {
		log.WithError(err).Fatal("start campaign")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("open terminal")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("init terminal")
	}

	tv := &termView{screen: screen, campaign: campaign, input: input, log: log}
	err = tv.run()
	screen.Fini()
	if err != nil {
		log.WithError(err).Fatal("campaign update")
	}
}

func (tv *termView) run() error {
	ticker := time.NewTicker(time.Second / game.TickRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := tv.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !tv.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if !tv.paused {
				if err := tv.campaign.Update(game.TickSeconds); err != nil {
					return err
				}
				tv.input.tick()
			}
			tv.draw()
		}
	}
}

// handleEvent returns false when the viewer should exit.
func (tv *termView) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'p':
				tv.paused = !tv.paused
				return true
			case 'c':
				m := tv.campaign.Active()
				m.SetPlayerCollision(!m.PlayerCollision())
				return true
			}
		}
		tv.input.press(ev)
	case *tcell.EventResize:
		tv.screen.Sync()
	}
	return true
}

func (tv *termView) draw() {
	w, h := tv.screen.Size()
	f := renderFrame(tv.campaign, w, h)
	if tv.paused {
		f.text(0, 0, " PAUSED ", styleBanner)
	}
	tv.screen.Clear()
	for y, row := range f.cells {
		for x, c := range row {
			tv.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	tv.screen.Show()
}
