//go:build !libretro

package lrscript

import (
	"time"

	"github.com/Skrokkio/LRscript/download"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/router"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputContext is the UI state the keyboard mapping depends on
type InputContext struct {
	Mode       router.Mode
	Modal      download.Phase
	PickerOpen bool
}

// GlobalKeys reports the keys handled by the app itself
type GlobalKeys struct {
	Fullscreen bool // F11
	Redetect   bool // J
	Copy       bool // C
}

// escapeAction maps Esc. It quits from the menu and backs out everywhere
// else, including an open modal or the image picker.
func escapeAction(ctx InputContext) joystick.Action {
	if ctx.Modal != download.PhaseNone {
		return joystick.ActionBack
	}
	if ctx.Mode == router.ModeMenu && !ctx.PickerOpen {
		return joystick.ActionQuitApp
	}
	return joystick.ActionBack
}

// spaceAction maps Space: confirm inside the confirmation modal, download
// otherwise
func spaceAction(ctx InputContext) joystick.Action {
	if ctx.Modal == download.PhaseConfirming {
		return joystick.ActionConfirm
	}
	return joystick.ActionDownloadROM
}

// InputManager turns keyboard state into actions on the shared queue.
// Enter goes through its own HoldButton so a long press opens the image
// picker like the joystick does.
type InputManager struct {
	timing joystick.Timing
	enter  *joystick.HoldButton

	vertical   joystick.Action // held arrow, ActionUp or ActionDown
	verticalAt time.Time
	lastRepeat time.Time
}

// NewInputManager creates a keyboard input manager
func NewInputManager(timing joystick.Timing) *InputManager {
	return &InputManager{
		timing: timing,
		enter:  joystick.NewHoldButton(timing.HoldThreshold),
	}
}

// Update polls the keyboard once per frame and pushes actions onto q
func (im *InputManager) Update(q *joystick.ActionQueue, ctx InputContext, now time.Time) GlobalKeys {
	keys := GlobalKeys{
		Fullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
		Redetect:   inpututil.IsKeyJustPressed(ebiten.KeyJ),
		Copy:       inpututil.IsKeyJustPressed(ebiten.KeyC),
	}

	im.arrows(q, now)

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		im.enter.Press(now)
	}
	q.Push(im.enter.Poll(now))
	if inpututil.IsKeyJustReleased(ebiten.KeyEnter) {
		q.Push(im.enter.Release(now))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		q.Push(escapeAction(ctx))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		q.Push(joystick.ActionBack)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		q.Push(spaceAction(ctx))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		q.Push(joystick.ActionSectionPrev)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		q.Push(joystick.ActionSectionNext)
	}
	return keys
}

// arrows emits directions on press. Up and down held past the D-pad delay
// repeat as fast scrolls along the D-pad curve.
func (im *InputManager) arrows(q *joystick.ActionQueue, now time.Time) {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		q.Push(joystick.ActionLeft)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		q.Push(joystick.ActionRight)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		im.startVertical(joystick.ActionUp, now)
		q.Push(joystick.ActionUp)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		im.startVertical(joystick.ActionDown, now)
		q.Push(joystick.ActionDown)
	}

	held := im.vertical == joystick.ActionUp && ebiten.IsKeyPressed(ebiten.KeyArrowUp) ||
		im.vertical == joystick.ActionDown && ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	if !held {
		im.vertical = joystick.ActionNone
		return
	}
	if im.repeatDue(now) {
		if im.vertical == joystick.ActionUp {
			q.Push(joystick.ActionFastScrollUp)
		} else {
			q.Push(joystick.ActionFastScrollDown)
		}
	}
}

func (im *InputManager) startVertical(a joystick.Action, now time.Time) {
	im.vertical = a
	im.verticalAt = now
	im.lastRepeat = time.Time{}
}

// repeatDue reports whether the held arrow fires another repeat at now
func (im *InputManager) repeatDue(now time.Time) bool {
	held := now.Sub(im.verticalAt)
	if held < im.timing.DPad.Delay {
		return false
	}
	if !im.lastRepeat.IsZero() && now.Sub(im.lastRepeat) < im.timing.DPad.Interval(held) {
		return false
	}
	im.lastRepeat = now
	return true
}

// Reset clears held key state, used on mode changes
func (im *InputManager) Reset() {
	im.enter.Reset()
	im.vertical = joystick.ActionNone
}
