package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Incursion/internal/game"
)

// holdTicks is how long one key press keeps a control engaged. Terminals
// report key repeats but never key releases.
const holdTicks = 12

// termInput drives player 0 from terminal key events: WASD drive, the arrow
// keys aim the turret, space fires and r respawns.
type termInput struct {
	drive, aim     game.Stick
	driveLeft      int
	aimLeft        int
	fireLeft       int
	respawnPending bool
	respawn        bool
}

func newTermInput() *termInput { return &termInput{} }

func (in *termInput) Controller(playerID int) game.ControllerState {
	if playerID != 0 {
		return game.ControllerState{}
	}
	st := game.ControllerState{Connected: true, Respawn: in.respawn}
	if in.driveLeft > 0 {
		st.Left = in.drive
	}
	if in.aimLeft > 0 {
		st.Right = in.aim
	}
	st.Fire = in.fireLeft > 0
	return st
}

func (in *termInput) press(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		in.aim, in.aimLeft = game.Stick{Magnitude: 1, Degrees: 90}, holdTicks
	case tcell.KeyDown:
		in.aim, in.aimLeft = game.Stick{Magnitude: 1, Degrees: 270}, holdTicks
	case tcell.KeyLeft:
		in.aim, in.aimLeft = game.Stick{Magnitude: 1, Degrees: 180}, holdTicks
	case tcell.KeyRight:
		in.aim, in.aimLeft = game.Stick{Magnitude: 1, Degrees: 0}, holdTicks
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			in.drive, in.driveLeft = game.Stick{Magnitude: 1, Degrees: 90}, holdTicks
		case 's':
			in.drive, in.driveLeft = game.Stick{Magnitude: 1, Degrees: 270}, holdTicks
		case 'a':
			in.drive, in.driveLeft = game.Stick{Magnitude: 1, Degrees: 180}, holdTicks
		case 'd':
			in.drive, in.driveLeft = game.Stick{Magnitude: 1, Degrees: 0}, holdTicks
		case ' ':
			in.fireLeft = holdTicks
		case 'r':
			in.respawnPending = true
		}
	}
}

// tick runs after each simulation step. A pending respawn is exposed for
// exactly one tick.
func (in *termInput) tick() {
	in.respawn = in.respawnPending
	in.respawnPending = false
	if in.driveLeft > 0 {
		in.driveLeft--
	}
	if in.aimLeft > 0 {
		in.aimLeft--
	}
	if in.fireLeft > 0 {
		in.fireLeft--
	}
}
