package joystick

import "time"

// RepeatStep shortens the repeat interval once an input has been held
// longer than After.
type RepeatStep struct {
	After    time.Duration
	Interval time.Duration
}

// RepeatCurve describes auto-repeat acceleration for a held input.
// Steps must be ordered by descending After.
type RepeatCurve struct {
	Delay time.Duration // no repeats until held this long
	Base  time.Duration // interval before the first step applies
	Steps []RepeatStep
}

// Interval returns the repeat interval for an input held for the given time
func (c RepeatCurve) Interval(held time.Duration) time.Duration {
	for _, s := range c.Steps {
		if held > s.After {
			return s.Interval
		}
	}
	return c.Base
}

// Timing collects every threshold the normalizer uses
type Timing struct {
	InputDelay    time.Duration // global debounce between accepted presses
	HoldThreshold time.Duration // confirm becomes confirm_hold at this age
	StartTimeout  time.Duration // start trigger suppresses repeats this long
	DPad          RepeatCurve
	L1            RepeatCurve
	R1            RepeatCurve
}

// DefaultTiming returns the cabinet defaults
func DefaultTiming() Timing {
	return Timing{
		InputDelay:    200 * time.Millisecond,
		HoldThreshold: 800 * time.Millisecond,
		StartTimeout:  500 * time.Millisecond,
		DPad: RepeatCurve{
			Delay: 500 * time.Millisecond,
			Base:  100 * time.Millisecond,
			Steps: []RepeatStep{
				{After: 3 * time.Second, Interval: 10 * time.Millisecond},
				{After: 2 * time.Second, Interval: 30 * time.Millisecond},
				{After: 1 * time.Second, Interval: 50 * time.Millisecond},
			},
		},
		L1: RepeatCurve{
			Delay: 300 * time.Millisecond,
			Base:  180 * time.Millisecond,
			Steps: []RepeatStep{
				{After: 3 * time.Second, Interval: 16700 * time.Microsecond},
				{After: 2 * time.Second, Interval: 80 * time.Millisecond},
				{After: 1 * time.Second, Interval: 120 * time.Millisecond},
			},
		},
		R1: RepeatCurve{
			Delay: 300 * time.Millisecond,
			Base:  180 * time.Millisecond,
			Steps: []RepeatStep{
				{After: 3 * time.Second, Interval: 12 * time.Millisecond},
				{After: 2 * time.Second, Interval: 80 * time.Millisecond},
				{After: 1 * time.Second, Interval: 120 * time.Millisecond},
			},
		},
	}
}

// repeater fires a held input along a curve
type repeater struct {
	curve    RepeatCurve
	lastFire time.Time
}

// tick reports whether an input held since pressedAt should fire at now
func (r *repeater) tick(now, pressedAt time.Time) bool {
	held := now.Sub(pressedAt)
	if held < r.curve.Delay {
		return false
	}
	if now.Sub(r.lastFire) < r.curve.Interval(held) {
		return false
	}
	r.lastFire = now
	return true
}
