// Package debug writes developer trace lines to stderr when HELPDESK_DEBUG=1.
// The bubbletea screens own the terminal, so anything meant for users goes
// through zap or the TUI instead.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	enabled           = os.Getenv("HELPDESK_DEBUG") == "1"
	out     io.Writer = os.Stderr
	now               = time.Now
)

// Logf writes one trace line if debugging is enabled.
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	fmt.Fprintf(out, "[debug %s] %s\n", now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}

// Enabled reports whether HELPDESK_DEBUG=1 was set.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Redirect sends trace lines to w with tracing forced on, and returns a
// function restoring the previous state. Tests use it to capture output.
func Redirect(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevEnabled := out, enabled
	out, enabled = w, true
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out, enabled = prevOut, prevEnabled
	}
}
