package joystick

import "time"

// HoldButton disambiguates a tap from a hold on a single button.
// Every press yields exactly one of confirm or confirm_hold.
type HoldButton struct {
	threshold time.Duration
	pressedAt time.Time
	down      bool
	held      bool // hold already emitted for this press
}

// NewHoldButton creates a tracker that reports a hold after threshold
func NewHoldButton(threshold time.Duration) *HoldButton {
	return &HoldButton{threshold: threshold}
}

// Press starts tracking a press. It emits nothing.
func (h *HoldButton) Press(now time.Time) {
	h.pressedAt = now
	h.down = true
	h.held = false
}

// Poll emits confirm_hold once while the button is still down past the threshold
func (h *HoldButton) Poll(now time.Time) Action {
	if !h.down || h.held {
		return ActionNone
	}
	if now.Sub(h.pressedAt) >= h.threshold {
		h.held = true
		return ActionConfirmHold
	}
	return ActionNone
}

// Release ends the press. A press already reported as a hold emits nothing.
func (h *HoldButton) Release(now time.Time) Action {
	if !h.down {
		return ActionNone
	}
	h.down = false
	if h.held {
		h.held = false
		return ActionNone
	}
	if now.Sub(h.pressedAt) >= h.threshold {
		return ActionConfirmHold
	}
	return ActionConfirm
}

// Down reports whether a press is in progress
func (h *HoldButton) Down() bool {
	return h.down
}

// Reset drops any press in progress without emitting
func (h *HoldButton) Reset() {
	h.down = false
	h.held = false
}
