// Package router dispatches normalized actions to the active UI mode.
package router

import (
	"log"

	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/types"
)

// Mode is the active top-level UI mode
type Mode int

const (
	ModeMenu Mode = iota
	ModeMain
	ModeConfig
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeMain:
		return "main"
	case ModeConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Modal intercepts actions while it is showing. HandleAction returns true
// when it consumed the action.
type Modal interface {
	HandleAction(a joystick.Action) bool
}

// TransitionFunc is called after the mode changes
type TransitionFunc func(from, to Mode, sig types.Signal)

// Router owns the current mode and applies the dispatch precedence
type Router struct {
	mode    Mode
	screens map[Mode]types.Screen
	modal   Modal

	onTransition TransitionFunc
}

// New creates a router starting in ModeMenu. modal may be nil.
func New(menu, browser, config types.Screen, modal Modal) *Router {
	return &Router{
		mode: ModeMenu,
		screens: map[Mode]types.Screen{
			ModeMenu:   menu,
			ModeMain:   browser,
			ModeConfig: config,
		},
		modal: modal,
	}
}

// OnTransition registers the mode change callback
func (r *Router) OnTransition(fn TransitionFunc) {
	r.onTransition = fn
}

// Mode returns the active mode
func (r *Router) Mode() Mode {
	return r.mode
}

// Dispatch routes one action. It returns false when the app must quit.
//
// Precedence: an open modal in any mode, then the config screen, which
// sees everything while it is active, then quit_app, then back to leave the
// browser, and finally the active screen.
func (r *Router) Dispatch(a joystick.Action) bool {
	if a == joystick.ActionNone {
		return true
	}

	if r.modal != nil && r.modal.HandleAction(a) {
		return true
	}

	if r.mode == ModeConfig {
		return r.apply(r.screens[ModeConfig].HandleAction(a))
	}

	switch a {
	case joystick.ActionQuitApp:
		return false
	case joystick.ActionBack:
		if r.mode == ModeMain {
			r.setMode(ModeMenu, types.Signal{Kind: types.SignalExitToMenu})
			return true
		}
	}

	screen := r.screens[r.mode]
	if screen == nil {
		return true
	}
	return r.apply(screen.HandleAction(a))
}

// Drain dispatches every queued action in order. It stops and returns
// false at the first action that quits.
func (r *Router) Drain(q *joystick.ActionQueue) bool {
	for {
		a, ok := q.Pop()
		if !ok {
			return true
		}
		if !r.Dispatch(a) {
			q.Drain()
			return false
		}
	}
}

func (r *Router) apply(sig types.Signal) bool {
	switch sig.Kind {
	case types.SignalExitToMenu:
		r.setMode(ModeMenu, sig)
	case types.SignalEnterPlatform:
		r.setMode(ModeMain, sig)
	case types.SignalEnterConfig:
		r.setMode(ModeConfig, sig)
	case types.SignalQuit:
		return false
	}
	return true
}

func (r *Router) setMode(to Mode, sig types.Signal) {
	from := r.mode
	r.mode = to
	if from != to {
		log.Printf("Mode %s -> %s", from, to)
	}
	if r.onTransition != nil {
		r.onTransition(from, to, sig)
	}
}
