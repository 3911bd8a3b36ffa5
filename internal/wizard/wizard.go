// Package wizard sequences an ordered list of steps. It does not validate:
// callers gate forward navigation before calling Advance.
package wizard

import (
	"errors"
	"fmt"
)

// ErrStepOutOfRange is returned by JumpTo for an index outside 1..Total.
var ErrStepOutOfRange = errors.New("step out of range")

// Direction is the last navigation direction. It only drives transition
// presentation.
type Direction int

const (
	// None means no navigation happened yet, or a jump to the current step.
	None Direction = iota
	// Forward is set by Advance and by jumps to a later step.
	Forward
	// Backward is set by Retreat, Reset and jumps to an earlier step.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Callbacks are invoked synchronously on step boundaries.
type Callbacks struct {
	OnStepChange         func(step int)
	OnFinalStepCompleted func()
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithInitialStep sets the starting step. Values outside 1..total are clamped.
func WithInitialStep(step int) Option {
	return func(w *Wizard) { w.initial = step }
}

// WithCallbacks sets the step-boundary callbacks.
func WithCallbacks(c Callbacks) Option {
	return func(w *Wizard) { w.callbacks = c }
}

// Wizard holds the position in a fixed sequence of steps. Current is 1-based;
// Total+1 is the terminal completed state.
type Wizard struct {
	current   int
	total     int
	initial   int
	direction Direction
	callbacks Callbacks
}

// New creates a Wizard with total steps. total must be at least 1.
func New(total int, opts ...Option) (*Wizard, error) {
	if total < 1 {
		return nil, fmt.Errorf("wizard needs at least one step, got %d", total)
	}
	w := &Wizard{total: total, initial: 1}
	for _, opt := range opts {
		opt(w)
	}
	w.current = min(max(w.initial, 1), total)
	return w, nil
}

func (w *Wizard) Current() int         { return w.current }
func (w *Wizard) Total() int           { return w.total }
func (w *Wizard) Direction() Direction { return w.direction }

// Completed reports whether the wizard is in the terminal state.
func (w *Wizard) Completed() bool { return w.current == w.total+1 }

// IsLast reports whether the current step is the last real step.
func (w *Wizard) IsLast() bool { return w.current == w.total }

// Advance moves one step forward. On the last step it completes the wizard
// instead. It is a no-op once completed.
func (w *Wizard) Advance() {
	switch {
	case w.Completed():
		return
	case w.current < w.total:
		w.direction = Forward
		w.current++
		w.stepChanged()
	default:
		w.Complete()
	}
}

// Retreat moves one step back. No-op on step 1. From the terminal state it
// returns to the last step.
func (w *Wizard) Retreat() {
	if w.current <= 1 {
		return
	}
	w.direction = Backward
	w.current--
	w.stepChanged()
}

// JumpTo moves directly to step. The jump is not gated.
func (w *Wizard) JumpTo(step int) error {
	if step < 1 || step > w.total {
		return fmt.Errorf("%w: %d not in 1..%d", ErrStepOutOfRange, step, w.total)
	}
	switch {
	case step > w.current:
		w.direction = Forward
	case step < w.current:
		w.direction = Backward
	default:
		w.direction = None
	}
	w.current = step
	w.stepChanged()
	return nil
}

// Complete enters the terminal state and fires OnFinalStepCompleted. It
// fires once per entry into the terminal state.
func (w *Wizard) Complete() {
	if w.Completed() {
		return
	}
	w.direction = Forward
	w.current = w.total + 1
	if w.callbacks.OnFinalStepCompleted != nil {
		w.callbacks.OnFinalStepCompleted()
	}
}

// Reset returns to step 1.
func (w *Wizard) Reset() {
	if w.current > 1 {
		w.direction = Backward
	} else {
		w.direction = None
	}
	w.current = 1
	w.stepChanged()
}

func (w *Wizard) stepChanged() {
	if w.callbacks.OnStepChange != nil {
		w.callbacks.OnStepChange(w.current)
	}
}
