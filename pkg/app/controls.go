// Package app owns the viewer's run loop: input state, frame
// scheduling, simulation updates, and HUD drawing.
package app

import "sync"

// Control identifies one logical input control. The host maps physical
// keys onto these; the app never sees raw key events.
type Control int

const (
	ControlModeNext Control = iota
	ControlObjectNext
	ControlTurnLeft
	ControlTurnRight
	ControlTurnUp
	ControlTurnDown

	controlCount
)

// Controls tracks press state and dispatches press-edge callbacks.
// Events arrive on the terminal goroutine while the frame loop queries
// held state, so all state sits behind a mutex.
type Controls struct {
	mu      sync.Mutex
	held    [controlCount]bool
	onPress [controlCount]func()
}

// NewControls creates an empty control map.
func NewControls() *Controls {
	return &Controls{}
}

// OnPress registers a callback fired on each press edge of ctl.
func (c *Controls) OnPress(ctl Control, fn func()) {
	c.mu.Lock()
	c.onPress[ctl] = fn
	c.mu.Unlock()
}

// Press records a press edge: marks the control held and fires its
// callback. Repeated presses without a release re-fire the callback;
// hosts with key auto-repeat should suppress repeats themselves.
func (c *Controls) Press(ctl Control) {
	c.mu.Lock()
	c.held[ctl] = true
	fn := c.onPress[ctl]
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Release clears the held state of ctl.
func (c *Controls) Release(ctl Control) {
	c.mu.Lock()
	c.held[ctl] = false
	c.mu.Unlock()
}

// IsHeld reports whether ctl is currently held.
func (c *Controls) IsHeld(ctl Control) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held[ctl]
}
