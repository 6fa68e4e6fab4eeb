//go:build !libretro

package lrscript

import (
	"log"

	"github.com/Skrokkio/LRscript/joystick"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/zyedidia/generic/mapset"
)

// Analog threshold used to quantize axes before emitting motion events
const axisDeadzone = 0.5

// gamepads enumerates the controllers ebiten knows about
type gamepads struct{}

// Devices implements joystick.Enumerator
func (gamepads) Devices() []joystick.Device {
	ids := ebiten.AppendGamepadIDs(nil)
	devices := make([]joystick.Device, 0, len(ids))
	for _, id := range ids {
		devices = append(devices, &gamepad{id: id})
	}
	return devices
}

// gamepad is a live view of one ebiten gamepad
type gamepad struct {
	id ebiten.GamepadID
}

func (g *gamepad) Name() string {
	return ebiten.GamepadName(g.id)
}

func (g *gamepad) ButtonCount() int {
	return ebiten.GamepadButtonCount(g.id)
}

func (g *gamepad) AxisCount() int {
	return ebiten.GamepadAxisCount(g.id)
}

func (g *gamepad) ButtonPressed(button int) bool {
	return ebiten.IsGamepadButtonPressed(g.id, ebiten.GamepadButton(button))
}

// dpadButtons are the standard-layout buttons read as the hat
var dpadButtons = []ebiten.StandardGamepadButton{
	ebiten.StandardGamepadButtonLeftTop,
	ebiten.StandardGamepadButtonLeftBottom,
	ebiten.StandardGamepadButtonLeftLeft,
	ebiten.StandardGamepadButtonLeftRight,
}

// gamepadEvents diffs the bound gamepad frame to frame into raw events
type gamepadEvents struct {
	axes   [2]int
	hatX   int
	hatY   int
	events []joystick.Event

	// hatButtons holds raw indices that turned out to sit behind the
	// standard D-pad. ebiten reports hats as extra buttons, and those
	// presses must reach the normalizer only as HatMotion.
	hatButtons *mapset.Set[int]
}

// Poll returns the events since the last frame. dev must come from
// gamepads; anything else yields no events.
func (ge *gamepadEvents) Poll(dev joystick.Device) []joystick.Event {
	ge.events = ge.events[:0]
	g, ok := dev.(*gamepad)
	if !ok || g == nil {
		return nil
	}

	var down, up []int
	for b := 0; b < g.ButtonCount(); b++ {
		button := ebiten.GamepadButton(b)
		if inpututil.IsGamepadButtonJustPressed(g.id, button) {
			down = append(down, b)
		}
		if inpututil.IsGamepadButtonJustReleased(g.id, button) {
			up = append(up, b)
		}
	}

	standard := ebiten.IsStandardGamepadLayoutAvailable(g.id)
	dpadDown := false
	if standard {
		for _, sb := range dpadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(g.id, sb) {
				dpadDown = true
			}
		}
	}
	ge.buttons(down, up, dpadDown)

	for axis := 0; axis < len(ge.axes) && axis < g.AxisCount(); axis++ {
		value := ebiten.GamepadAxisValue(g.id, ebiten.GamepadAxisType(axis))
		q := quantize(value)
		if q != ge.axes[axis] {
			ge.axes[axis] = q
			ge.events = append(ge.events, joystick.Event{Type: joystick.AxisMotion, Axis: axis, Value: value})
		}
	}

	if standard {
		x, y := standardHat(g.id)
		ge.hat(x, y)
	}
	return ge.events
}

// buttons appends press and release events for one frame. When the only
// raw press of a frame coincides with a standard D-pad press, that index
// is learned as a hat button and filtered from then on. A frame with
// other presses teaches nothing, since the match would be a guess.
func (ge *gamepadEvents) buttons(down, up []int, dpadDown bool) {
	if ge.hatButtons == nil {
		s := mapset.New[int]()
		ge.hatButtons = &s
	}
	if dpadDown && len(down) == 1 && !ge.hatButtons.Has(down[0]) {
		log.Printf("Button %d follows the D-pad, reading it as the hat", down[0])
		ge.hatButtons.Put(down[0])
	}
	for _, b := range down {
		if !ge.hatButtons.Has(b) {
			ge.events = append(ge.events, joystick.Event{Type: joystick.ButtonDown, Button: b})
		}
	}
	for _, b := range up {
		if !ge.hatButtons.Has(b) {
			ge.events = append(ge.events, joystick.Event{Type: joystick.ButtonUp, Button: b})
		}
	}
}

// hat appends a HatMotion when the D-pad position changed
func (ge *gamepadEvents) hat(x, y int) {
	if x == ge.hatX && y == ge.hatY {
		return
	}
	ge.hatX, ge.hatY = x, y
	ge.events = append(ge.events, joystick.Event{Type: joystick.HatMotion, HatX: x, HatY: y})
}

// Reset forgets the previous frame, used when the bound device changes
func (ge *gamepadEvents) Reset() {
	ge.axes = [2]int{}
	ge.hatX, ge.hatY = 0, 0
	ge.hatButtons = nil
}

// quantize maps an axis value to -1, 0 or 1
func quantize(v float64) int {
	switch {
	case v <= -axisDeadzone:
		return -1
	case v >= axisDeadzone:
		return 1
	default:
		return 0
	}
}

// standardHat reads the D-pad of a standard-layout gamepad as a hat
func standardHat(id ebiten.GamepadID) (x, y int) {
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
		x = -1
	} else if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
		x = 1
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) {
		y = -1
	} else if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
		y = 1
	}
	return x, y
}
