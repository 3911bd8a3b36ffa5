// Package timing traces how long startup takes, from process start to the
// first screen. Enabled by HELPDESK_DEBUG_TIMING=1.
package timing

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Recorder measures the gap between consecutive checkpoints.
type Recorder struct {
	mu    sync.Mutex
	out   io.Writer
	now   func() time.Time
	start time.Time
	last  time.Time
}

// NewRecorder starts a recorder writing to out. A nil now uses time.Now.
func NewRecorder(out io.Writer, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Recorder{out: out, now: now, start: t, last: t}
}

// Mark writes label with the time since the previous mark and since start.
func (r *Recorder) Mark(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.now()
	fmt.Fprintf(r.out, "[timing] %-32s +%4dms  total %5dms\n",
		label, t.Sub(r.last).Milliseconds(), t.Sub(r.start).Milliseconds())
	r.last = t
}

var std *Recorder

func init() {
	if os.Getenv("HELPDESK_DEBUG_TIMING") == "1" {
		std = NewRecorder(os.Stderr, nil)
	}
}

// Log marks a startup checkpoint on the process-wide recorder, if enabled.
func Log(label string) {
	if std == nil {
		return
	}
	std.Mark(label)
}
