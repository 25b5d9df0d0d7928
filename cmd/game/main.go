package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Incursion/internal/audio"
	"github.com/Garsondee/Incursion/internal/game"
	"github.com/Garsondee/Incursion/internal/logger"
	"github.com/Garsondee/Incursion/internal/viewer"
)

func main() {
	campaignPath := flag.String("campaign", "", "campaign YAML file (default: built-in campaign)")
	seed := flag.Int64("seed", 1, "RNG seed")
	verbose := flag.Bool("verbose", false, "record per-tick movement in the event log")
	flag.Parse()

	log := logger.New(os.Stderr)

	cfg, err := game.LoadCampaign(*campaignPath, nil)
	if err != nil {
		log.WithError(err).Fatal("load campaign")
	}

	speaker := audio.NewSpeaker(log)
	defer speaker.Close()

	input := viewer.NewInput(0)
	events := game.NewSimLog(*verbose)
	campaign, err := game.NewCampaign(cfg, nil, game.Deps{
		RNG:    game.NewSeededRNG(*seed),
		Audio:  speaker,
		Input:  input,
		Logger: log,
		Events: events,
	})
	if err != nil {
		log.WithError(err).Fatal("start campaign")
	}

	v := viewer.New(viewer.Config{
		Campaign: campaign,
		Input:    input,
		Events:   events,
		Logger:   log,
	})
	ebiten.SetWindowTitle("Incursion")
	ebiten.SetWindowSize(v.Size())
	if err := ebiten.RunGame(v); err != nil {
		log.WithError(err).Fatal("run game")
	}
}
