package joystick

import (
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Logical button keys, in the order a press is matched against them
const (
	KeyButton1 = "button_1"
	KeyButton2 = "button_2"
	KeyButton3 = "button_3"
	KeyL1      = "l1"
	KeyR1      = "r1"
	KeyStart   = "start"
	KeySelect  = "select"
)

// MappingKeys lists every logical key in match order
var MappingKeys = []string{KeyButton1, KeyButton2, KeyButton3, KeyL1, KeyR1, KeyStart, KeySelect}

// Bindings resolves a logical key to a physical button index
type Bindings interface {
	Get(key string) int
}

const axisThreshold = 0.5

// D-pad direction slots
const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

type dpadState struct {
	pressed bool
	at      time.Time
}

// Normalizer converts raw events into actions on its queue
type Normalizer struct {
	bindings Bindings
	timing   Timing
	queue    *ActionQueue

	lastInput  time.Time
	configMode bool

	confirm *HoldButton
	pressed mapset.Set[int]

	dpad       [dirCount]dpadState
	dpadRepeat repeater

	l1Pressed bool
	l1At      time.Time
	l1Repeat  repeater
	r1Pressed bool
	r1At      time.Time
	r1Repeat  repeater

	startTriggered bool
	startAt        time.Time
}

// NewNormalizer creates a normalizer reading bindings on every event,
// so rebinds take effect immediately.
func NewNormalizer(bindings Bindings, timing Timing) *Normalizer {
	return &Normalizer{
		bindings:   bindings,
		timing:     timing,
		queue:      NewActionQueue(),
		confirm:    NewHoldButton(timing.HoldThreshold),
		pressed:    mapset.New[int](),
		dpadRepeat: repeater{curve: timing.DPad},
		l1Repeat:   repeater{curve: timing.L1},
		r1Repeat:   repeater{curve: timing.R1},
	}
}

// Queue returns the action queue the normalizer writes to
func (n *Normalizer) Queue() *ActionQueue {
	return n.queue
}

// SetConfigScreen toggles config mode. Start never quits in config mode.
func (n *Normalizer) SetConfigScreen(on bool) {
	n.configMode = on
}

// ConfigScreen reports whether config mode is set
func (n *Normalizer) ConfigScreen() bool {
	return n.configMode
}

// IsPressed reports whether a physical button is currently tracked as down
func (n *Normalizer) IsPressed(button int) bool {
	return n.pressed.Has(button)
}

func (n *Normalizer) debounced(now time.Time) bool {
	return !n.lastInput.IsZero() && now.Sub(n.lastInput) < n.timing.InputDelay
}

// keyFor returns the first logical key bound to button, or "" when unbound
func (n *Normalizer) keyFor(button int) string {
	for _, k := range MappingKeys {
		if n.bindings.Get(k) == button {
			return k
		}
	}
	return ""
}

// HandleEvent processes one raw event at time now
func (n *Normalizer) HandleEvent(ev Event, now time.Time) {
	switch ev.Type {
	case ButtonDown:
		n.buttonDown(ev.Button, now)
	case ButtonUp:
		n.buttonUp(ev.Button, now)
	case HatMotion:
		n.hatMotion(ev.HatX, ev.HatY, now)
	case AxisMotion:
		n.axisMotion(ev.Axis, ev.Value, now)
	}
}

// buttonDown acts on a press of a bound button. Only presses that act
// refresh the debounce, so unbound buttons (hats reported as buttons among
// them) never swallow the next event.
func (n *Normalizer) buttonDown(button int, now time.Time) {
	key := n.keyFor(button)
	if key == "" {
		n.pressed.Put(button)
		return
	}
	if n.debounced(now) {
		return
	}
	n.pressed.Put(button)

	switch key {
	case KeyStart:
		if n.configMode {
			return
		}
		if n.startTriggered && now.Sub(n.startAt) < n.timing.StartTimeout {
			return
		}
		n.lastInput = now
		n.startTriggered = true
		n.startAt = now
		n.queue.Push(ActionQuitApp)
	case KeyButton1:
		n.lastInput = now
		n.confirm.Press(now)
	case KeyButton2:
		n.lastInput = now
		n.queue.Push(ActionBack)
	case KeyButton3:
		n.lastInput = now
		n.queue.Push(ActionDownloadROM)
	case KeyL1:
		n.lastInput = now
		n.l1Pressed = true
		n.l1At = now
		n.l1Repeat.lastFire = time.Time{}
		n.queue.Push(ActionScrollUp)
	case KeyR1:
		n.lastInput = now
		n.r1Pressed = true
		n.r1At = now
		n.r1Repeat.lastFire = time.Time{}
		n.queue.Push(ActionScrollDown)
	case KeySelect:
		if n.configMode {
			n.lastInput = now
			n.queue.Push(ActionBack)
		}
	}
}

func (n *Normalizer) buttonUp(button int, now time.Time) {
	n.pressed.Remove(button)
	if !n.pressed.Has(n.bindings.Get(KeyStart)) {
		n.startTriggered = false
	}

	switch n.keyFor(button) {
	case KeyButton1:
		n.queue.Push(n.confirm.Release(now))
	case KeyL1:
		n.l1Pressed = false
	case KeyR1:
		n.r1Pressed = false
	}
}

func (n *Normalizer) hatMotion(x, y int, now time.Time) {
	if x == 0 && y == 0 {
		for i := range n.dpad {
			n.dpad[i].pressed = false
		}
		return
	}
	if n.debounced(now) {
		return
	}
	n.lastInput = now
	n.l1Pressed = false
	n.r1Pressed = false

	// A diagonal resolves to its horizontal direction.
	dir, action := dirDown, ActionDown
	switch {
	case x < 0:
		dir, action = dirLeft, ActionLeft
	case x > 0:
		dir, action = dirRight, ActionRight
	case y < 0:
		dir, action = dirUp, ActionUp
	}
	for d := range n.dpad {
		n.setDir(d, d == dir, now)
	}
	n.queue.Push(action)
}

func (n *Normalizer) setDir(dir int, on bool, now time.Time) {
	if on && !n.dpad[dir].pressed {
		n.dpad[dir].at = now
		n.dpadRepeat.lastFire = time.Time{}
	}
	n.dpad[dir].pressed = on
}

func (n *Normalizer) axisMotion(axis int, value float64, now time.Time) {
	if value > -axisThreshold && value < axisThreshold {
		return
	}
	if n.debounced(now) {
		return
	}
	n.lastInput = now
	switch axis {
	case 0:
		if value < 0 {
			n.queue.Push(ActionLeft)
		} else {
			n.queue.Push(ActionRight)
		}
	case 1:
		if value < 0 {
			n.queue.Push(ActionUp)
		} else {
			n.queue.Push(ActionDown)
		}
	}
}

// Poll runs the per-frame checks: confirm hold, reconciliation of shoulder
// state against the live device, and auto-repeat when repeat is set.
func (n *Normalizer) Poll(now time.Time, dev Device, repeat bool) {
	n.queue.Push(n.confirm.Poll(now))

	if dev != nil {
		n.reconcile(dev, now)
	}

	if !repeat {
		return
	}

	if n.l1Pressed {
		if n.l1Repeat.tick(now, n.l1At) {
			n.queue.Push(ActionL1FastScrollUp)
		}
	} else if n.r1Pressed {
		if n.r1Repeat.tick(now, n.r1At) {
			n.queue.Push(ActionR1FastScrollDown)
		}
	}

	if n.dpad[dirUp].pressed {
		if n.dpadRepeat.tick(now, n.dpad[dirUp].at) {
			n.queue.Push(ActionFastScrollUp)
		}
	} else if n.dpad[dirDown].pressed {
		if n.dpadRepeat.tick(now, n.dpad[dirDown].at) {
			n.queue.Push(ActionFastScrollDown)
		}
	}
}

// reconcile clears state for buttons whose release event was missed
func (n *Normalizer) reconcile(dev Device, now time.Time) {
	if n.confirm.Down() && !dev.ButtonPressed(n.bindings.Get(KeyButton1)) {
		n.queue.Push(n.confirm.Release(now))
	}
	if n.l1Pressed && !dev.ButtonPressed(n.bindings.Get(KeyL1)) {
		n.l1Pressed = false
	}
	if n.r1Pressed && !dev.ButtonPressed(n.bindings.Get(KeyR1)) {
		n.r1Pressed = false
	}

	var stale []int
	n.pressed.Each(func(b int) {
		if !dev.ButtonPressed(b) {
			stale = append(stale, b)
		}
	})
	for _, b := range stale {
		n.pressed.Remove(b)
	}
	if !n.pressed.Has(n.bindings.Get(KeyStart)) {
		n.startTriggered = false
	}
}

// Reset clears all transient input state. Used on mode changes.
func (n *Normalizer) Reset() {
	n.confirm.Reset()
	n.l1Pressed = false
	n.r1Pressed = false
	for i := range n.dpad {
		n.dpad[i].pressed = false
	}
}

// DPadHeld reports whether a D-pad direction is tracked as held
func (n *Normalizer) DPadHeld() bool {
	for _, d := range n.dpad {
		if d.pressed {
			return true
		}
	}
	return false
}

// ShoulderHeld reports whether L1 or R1 repeat state is active
func (n *Normalizer) ShoulderHeld() bool {
	return n.l1Pressed || n.r1Pressed
}
