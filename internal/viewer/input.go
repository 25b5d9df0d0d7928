package viewer

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Incursion/internal/game"
)

const (
	stickDeadzone = 0.2
	fireThreshold = 0.5 // analog trigger travel that counts as held
)

// Input adapts ebiten gamepads (and optionally the keyboard) to
// game.InputSource. Gamepads are assigned to player slots in id order.
// Poll must be called once per simulation tick.
type Input struct {
	states      [game.MaxPlayers]game.ControllerState
	prevRespawn [game.MaxPlayers]bool

	// keyboardPlayer is the slot driven by WASD/arrows when no gamepad
	// claims it, or -1 for none.
	keyboardPlayer int
}

var _ game.InputSource = (*Input)(nil)

// NewInput returns an adapter. keyboardPlayer selects the slot the keyboard
// drives; pass -1 to ignore the keyboard.
func NewInput(keyboardPlayer int) *Input {
	if keyboardPlayer >= game.MaxPlayers {
		keyboardPlayer = -1
	}
	return &Input{keyboardPlayer: keyboardPlayer}
}

func (in *Input) Controller(playerID int) game.ControllerState {
	if playerID < 0 || playerID >= game.MaxPlayers {
		return game.ControllerState{}
	}
	return in.states[playerID]
}

// Poll samples every device and derives the Respawn edge.
func (in *Input) Poll() {
	var raw [game.MaxPlayers]rawController

	ids := ebiten.AppendGamepadIDs(nil)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for slot, id := range ids {
		if slot >= game.MaxPlayers {
			break
		}
		raw[slot] = readGamepad(id)
	}
	if kp := in.keyboardPlayer; kp >= 0 && !raw[kp].connected {
		raw[kp] = readKeyboard()
	}

	for id := range in.states {
		in.states[id] = raw[id].state(in.prevRespawn[id])
		in.prevRespawn[id] = raw[id].respawn
	}
}

// rawController is one device reading before edge detection.
type rawController struct {
	connected      bool
	leftX, leftY   float64 // y up
	rightX, rightY float64 // y up
	fire           bool
	respawn        bool
}

func (r rawController) state(prevRespawn bool) game.ControllerState {
	if !r.connected {
		return game.ControllerState{}
	}
	return game.ControllerState{
		Connected: true,
		Left:      stickFromAxes(r.leftX, r.leftY),
		Right:     stickFromAxes(r.rightX, r.rightY),
		Fire:      r.fire,
		Respawn:   r.respawn && !prevRespawn,
	}
}

// stickFromAxes converts a y-up axis pair into a Stick, applying the
// deadzone and clamping magnitude to 1.
func stickFromAxes(x, y float64) game.Stick {
	mag := math.Hypot(x, y)
	if mag < stickDeadzone {
		return game.Stick{}
	}
	deg := math.Atan2(y, x) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return game.Stick{Magnitude: math.Min(mag, 1), Degrees: deg}
}

func readGamepad(id ebiten.GamepadID) rawController {
	r := rawController{connected: true}
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		r.leftX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		r.leftY = -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		r.rightX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		r.rightY = -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		r.fire = ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomRight) > fireThreshold ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		r.respawn = ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight)
		return r
	}
	// Unmapped pads: the usual raw axis order, screen y down.
	r.leftX = ebiten.GamepadAxisValue(id, 0)
	r.leftY = -ebiten.GamepadAxisValue(id, 1)
	r.rightX = ebiten.GamepadAxisValue(id, 2)
	r.rightY = -ebiten.GamepadAxisValue(id, 3)
	r.fire = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton5)
	r.respawn = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton7)
	return r
}

// readKeyboard: WASD drives, arrows aim, Space fires, R respawns.
func readKeyboard() rawController {
	r := rawController{connected: true}
	r.leftX, r.leftY = keyAxes(ebiten.KeyA, ebiten.KeyD, ebiten.KeyS, ebiten.KeyW)
	r.rightX, r.rightY = keyAxes(ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowDown, ebiten.KeyArrowUp)
	r.fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	r.respawn = ebiten.IsKeyPressed(ebiten.KeyR)
	return r
}

func keyAxes(left, right, down, up ebiten.Key) (float64, float64) {
	var x, y float64
	if ebiten.IsKeyPressed(left) {
		x--
	}
	if ebiten.IsKeyPressed(right) {
		x++
	}
	if ebiten.IsKeyPressed(down) {
		y--
	}
	if ebiten.IsKeyPressed(up) {
		y++
	}
	if x != 0 && y != 0 {
		x, y = x/math.Sqrt2, y/math.Sqrt2
	}
	return x, y
}
