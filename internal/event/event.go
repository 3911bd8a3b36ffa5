// Package event defines the typed notifications shown by the TUI after
// wizard and dashboard actions: a ticket created, a submit rejected, a chart
// refresh failing.
package event

// Kind identifies the type of event.
type Kind int

const (
	// KindInfo is a neutral status line.
	KindInfo Kind = iota
	// KindSuccess reports a completed action, such as a created ticket.
	KindSuccess
	// KindWarning reports a recoverable problem, such as a failed refresh
	// that left the previous chart on screen.
	KindWarning
	// KindError reports a failed action the user has to act on.
	KindError
)

// String returns the label used in the status line.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "ok"
	case KindWarning:
		return "warn"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Event is a single notification.
type Event struct {
	Kind Kind
	Text string
}

// Handler is a callback that receives typed events.
type Handler func(Event)

// Info creates a KindInfo event.
func Info(text string) Event { return Event{Kind: KindInfo, Text: text} }

// Success creates a KindSuccess event.
func Success(text string) Event { return Event{Kind: KindSuccess, Text: text} }

// Warning creates a KindWarning event.
func Warning(text string) Event { return Event{Kind: KindWarning, Text: text} }

// Error creates a KindError event.
func Error(text string) Event { return Event{Kind: KindError, Text: text} }
