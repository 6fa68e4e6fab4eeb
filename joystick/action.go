// Package joystick turns raw controller events into abstract UI actions.
//
// It owns debounce, hold-vs-tap disambiguation, auto-repeat curves and the
// Start panic exit. It has no dependency on a windowing backend; the frame
// loop feeds it events and a Device to poll.
package joystick

import "github.com/zyedidia/generic/queue"

// Action is an abstract UI intent produced by the normalizer
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionConfirmHold
	ActionBack
	ActionScrollUp
	ActionScrollDown
	ActionFastScrollUp
	ActionFastScrollDown
	ActionL1FastScrollUp
	ActionR1FastScrollDown
	ActionDownloadROM
	ActionQuitApp
	ActionSectionPrev
	ActionSectionNext
)

var actionNames = map[Action]string{
	ActionNone:             "none",
	ActionUp:               "up",
	ActionDown:             "down",
	ActionLeft:             "left",
	ActionRight:            "right",
	ActionConfirm:          "confirm",
	ActionConfirmHold:      "confirm_hold",
	ActionBack:             "back",
	ActionScrollUp:         "scroll_up",
	ActionScrollDown:       "scroll_down",
	ActionFastScrollUp:     "fast_scroll_up",
	ActionFastScrollDown:   "fast_scroll_down",
	ActionL1FastScrollUp:   "l1_fast_scroll_up",
	ActionR1FastScrollDown: "r1_fast_scroll_down",
	ActionDownloadROM:      "download_rom",
	ActionQuitApp:          "quit_app",
	ActionSectionPrev:      "section_prev",
	ActionSectionNext:      "section_next",
}

// String returns the wire name of the action
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionQueue is a FIFO of pending actions. The frame loop drains it once
// per Update so that a handler never dispatches re-entrantly.
type ActionQueue struct {
	q *queue.Queue[Action]
	n int // pending count; queue.Queue has no length
}

// NewActionQueue creates an empty queue
func NewActionQueue() *ActionQueue {
	return &ActionQueue{q: queue.New[Action]()}
}

// Push appends an action. ActionNone is dropped.
func (aq *ActionQueue) Push(a Action) {
	if a == ActionNone {
		return
	}
	aq.q.Enqueue(a)
	aq.n++
}

// Pop removes the oldest action. ok is false when the queue is empty.
func (aq *ActionQueue) Pop() (Action, bool) {
	if aq.q.Empty() {
		return ActionNone, false
	}
	aq.n--
	return aq.q.Dequeue(), true
}

// Len returns the number of pending actions
func (aq *ActionQueue) Len() int {
	return aq.n
}

// Drain pops every pending action in order
func (aq *ActionQueue) Drain() []Action {
	var out []Action
	for {
		a, ok := aq.Pop()
		if !ok {
			return out
		}
		out = append(out, a)
	}
}
