package joystick

import (
	"log"
	"strings"
)

// Name fragments that mark a device as a pointer or keyboard, never a joystick
var denyList = []string{
	"mouse", "trackball", "touchpad", "touchscreen",
	"keyboard", "tablet", "pen", "stylus",
}

// Name fragments that mark a device as a likely game controller
var allowList = []string{
	"dragonrise", "arcade", "gamepad", "joystick", "controller",
	"xbox", "playstation", "nintendo", "logitech", "thrustmaster", "saitek",
}

// Enumerator lists the controllers currently attached, in enumeration order
type Enumerator interface {
	Devices() []Device
}

// SelectDevice picks the controller to bind from an enumeration.
// Returns -1 when nothing qualifies.
func SelectDevice(devices []Device) int {
	fallback := -1
	for i, dev := range devices {
		if !validCandidate(dev) {
			continue
		}
		if containsAny(strings.ToLower(dev.Name()), allowList) {
			return i
		}
		if fallback < 0 {
			fallback = i
		}
	}
	return fallback
}

func validCandidate(dev Device) bool {
	if dev == nil {
		return false
	}
	if containsAny(strings.ToLower(dev.Name()), denyList) {
		return false
	}
	return dev.ButtonCount() > 0 && dev.AxisCount() > 0
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

// Detector holds the currently bound controller
type Detector struct {
	enum   Enumerator
	device Device
}

// NewDetector creates a detector over the given enumerator
func NewDetector(enum Enumerator) *Detector {
	return &Detector{enum: enum}
}

// Detect re-enumerates and binds the best candidate.
// Returns true if a device is bound afterwards.
func (d *Detector) Detect() bool {
	d.device = nil
	if d.enum == nil {
		return false
	}
	devices := d.enum.Devices()
	idx := SelectDevice(devices)
	if idx < 0 {
		log.Printf("No joystick found among %d devices, keyboard only", len(devices))
		return false
	}
	d.device = devices[idx]
	log.Printf("Joystick bound: %s (%d buttons, %d axes)",
		d.device.Name(), d.device.ButtonCount(), d.device.AxisCount())
	return true
}

// Recheck runs detection only when no device is bound
func (d *Detector) Recheck() bool {
	if d.device != nil {
		return true
	}
	return d.Detect()
}

// IsDetected reports whether a device is bound
func (d *Detector) IsDetected() bool {
	return d.device != nil
}

// DeviceName returns the bound device name, or "" when none
func (d *Detector) DeviceName() string {
	if d.device == nil {
		return ""
	}
	return d.device.Name()
}

// Device returns the bound device, or nil
func (d *Detector) Device() Device {
	return d.device
}
