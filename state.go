//go:build !libretro

package lrscript

// AppState represents the top-level state of the application. Screen
// modes inside StateRunning are owned by the router.
type AppState int

const (
	// StateRunning routes input to the menu, browser and config screens
	StateRunning AppState = iota
	// StateError shows a startup error (corrupted or invalid config)
	StateError
)

// String returns the string representation of the state
func (s AppState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
