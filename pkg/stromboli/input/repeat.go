package input

import (
	"time"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli"
)

// DirectionalRepeat tracks held directions and handles repeat timing.
// Embed this in input sources to get consistent key-repeat behavior for
// held directional keys.
type DirectionalRepeat struct {
	held struct {
		up, down, left, right bool
	}
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
}

// NewDirectionalRepeat creates a DirectionalRepeat with default timing.
// Default delay is 300ms before first repeat, then 50ms between repeats.
func NewDirectionalRepeat() DirectionalRepeat {
	return NewDirectionalRepeatWithTiming(300*time.Millisecond, 50*time.Millisecond)
}

// NewDirectionalRepeatWithTiming creates a DirectionalRepeat with custom timing.
func NewDirectionalRepeatWithTiming(delay, interval time.Duration) DirectionalRepeat {
	return DirectionalRepeat{
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: time.Now(),
	}
}

// SetHeld updates the held state for a direction.
// Returns true if the direction was one of the four cardinals.
func (d *DirectionalRepeat) SetHeld(dir stromboli.Direction, held bool) bool {
	switch dir {
	case stromboli.DirectionUp:
		d.held.up = held
	case stromboli.DirectionDown:
		d.held.down = held
	case stromboli.DirectionLeft:
		d.held.left = held
	case stromboli.DirectionRight:
		d.held.right = held
	default:
		return false
	}
	if !held {
		d.hasRepeated = false
	}
	return true
}

// IsHeld returns true if any direction is currently held.
func (d *DirectionalRepeat) IsHeld() bool {
	return d.held.up || d.held.down || d.held.left || d.held.right
}

// HeldDirection returns the currently held direction.
// If multiple directions are held, priority is: up, down, left, right.
// Returns DirectionNone if no direction is held.
func (d *DirectionalRepeat) HeldDirection() stromboli.Direction {
	if d.held.up {
		return stromboli.DirectionUp
	}
	if d.held.down {
		return stromboli.DirectionDown
	}
	if d.held.left {
		return stromboli.DirectionLeft
	}
	if d.held.right {
		return stromboli.DirectionRight
	}
	return stromboli.DirectionNone
}

// Update checks if a repeat event should fire based on timing.
// Call this on every poll tick. It returns the direction that should be
// processed, or DirectionNone if no repeat should occur.
//
// The first repeat occurs after repeatDelay, subsequent repeats after
// repeatInterval.
func (d *DirectionalRepeat) Update() stromboli.Direction {
	if !d.IsHeld() {
		d.lastRepeatTime = time.Now()
		d.hasRepeated = false
		return stromboli.DirectionNone
	}

	timeSince := time.Since(d.lastRepeatTime)

	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}

	if timeSince >= threshold {
		d.lastRepeatTime = time.Now()
		d.hasRepeated = true
		return d.HeldDirection()
	}

	return stromboli.DirectionNone
}

// Reset clears all held directions and timing state.
func (d *DirectionalRepeat) Reset() {
	d.held.up = false
	d.held.down = false
	d.held.left = false
	d.held.right = false
	d.hasRepeated = false
	d.lastRepeatTime = time.Now()
}
