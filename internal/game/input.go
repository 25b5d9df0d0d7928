package game

// Stick is an analog stick reading. Magnitude is 0 at rest and 1 at full tilt.
type Stick struct {
	Magnitude float64
	Degrees   float64
}

// ControllerState is one player's input for the current tick.
type ControllerState struct {
	Connected bool
	Left      Stick // drive: heading and thrust
	Right     Stick // turret heading
	Fire      bool  // held
	Respawn   bool  // edge: true only on the tick it was pressed
}

// InputSource supplies per-player controller state.
type InputSource interface {
	Controller(playerID int) ControllerState
}

// NoInput reports every controller as disconnected.
type NoInput struct{}

func (NoInput) Controller(int) ControllerState { return ControllerState{} }

// ScriptedInput is an InputSource whose states are set directly, used by the
// headless harness and tests.
type ScriptedInput struct {
	States [MaxPlayers]ControllerState
}

func (s *ScriptedInput) Controller(playerID int) ControllerState {
	if playerID < 0 || playerID >= MaxPlayers {
		return ControllerState{}
	}
	return s.States[playerID]
}
