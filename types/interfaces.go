// Package types provides shared interfaces used across UI packages.
// This package exists to avoid import cycles between the router, screens
// and the app.
package types

import "github.com/Skrokkio/LRscript/joystick"

// SignalKind tells the router what a screen wants after handling an action
type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalExitToMenu
	SignalEnterPlatform
	SignalEnterConfig
	SignalQuit
)

func (k SignalKind) String() string {
	switch k {
	case SignalNone:
		return "none"
	case SignalExitToMenu:
		return "exit_to_menu"
	case SignalEnterPlatform:
		return "enter_platform"
	case SignalEnterConfig:
		return "enter_config"
	case SignalQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Signal is the result of Screen.HandleAction. Platform is set for
// SignalEnterPlatform.
type Signal struct {
	Kind     SignalKind
	Platform int
}

// None is the zero signal
var None = Signal{}

// Screen is a per-mode state machine driven by abstract actions
type Screen interface {
	HandleAction(a joystick.Action) Signal
}

// ScreenCallback provides app services to screens
type ScreenCallback interface {
	GetWindowWidth() int  // For responsive layout calculations
	GetWindowHeight() int // For visible row counts
	RequestRebuild()      // Request UI rebuild after state changes
	Notify(msg string)    // Show a timed notification
}
