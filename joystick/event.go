package joystick

// EventType identifies the kind of raw controller event
type EventType int

const (
	ButtonDown EventType = iota
	ButtonUp
	HatMotion
	AxisMotion
)

// Event is a raw controller event as reported by the backend adapter
type Event struct {
	Type   EventType
	Button int     // ButtonDown, ButtonUp
	HatX   int     // HatMotion: -1, 0, 1
	HatY   int     // HatMotion: -1 is up, 1 is down
	Axis   int     // AxisMotion: 0 horizontal, 1 vertical
	Value  float64 // AxisMotion: -1.0..1.0
}

// Device is a live view of the bound controller. Poll uses it to reconcile
// event-driven state with what is physically held.
type Device interface {
	Name() string
	ButtonCount() int
	AxisCount() int
	ButtonPressed(button int) bool
}
