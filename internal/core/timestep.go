package core

import "time"

// FixedStep turns wall-clock time into whole simulation steps.
//
// The platform calls Advance with the time elapsed since the previous
// frame and runs the game's Step that many times. Leftover time carries
// over to the next frame, so the simulation rate stays at Rate no matter
// how irregular the frame callbacks are. Tests skip the clock entirely
// and call Step directly.
type FixedStep struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
}

// NewFixedStep creates a scheduler running at rate steps per second.
// maxSteps caps how many steps one Advance may produce, so a long stall
// (suspended laptop, slow SSH link) doesn't fast-forward the game.
func NewFixedStep(rate, maxSteps int) *FixedStep {
	if rate <= 0 {
		rate = 60
	}
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &FixedStep{
		step:     time.Second / time.Duration(rate),
		maxSteps: maxSteps,
	}
}

// Interval returns the duration of one simulation step.
func (f *FixedStep) Interval() time.Duration {
	return f.step
}

// Advance adds elapsed time and returns the number of steps to run.
func (f *FixedStep) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		f.acc += elapsed
	}

	n := int(f.acc / f.step)
	if n > f.maxSteps {
		n = f.maxSteps
		// Drop the backlog instead of carrying it into later frames
		f.acc = 0
	} else {
		f.acc -= time.Duration(n) * f.step
	}
	return n
}

// Reset drops any accumulated time.
func (f *FixedStep) Reset() {
	f.acc = 0
}
