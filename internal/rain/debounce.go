package rain

import "time"

// ResizeQuiet is how long the viewport must stay still before a resize is
// acted on; a drag produces a burst of notifications and one recompute.
const ResizeQuiet = 120 * time.Millisecond

// Debouncer collapses a burst of resize notifications into a single firing
// after a quiet period. It is driven from the frame clock, no goroutines.
type Debouncer struct {
	quiet    time.Duration
	deadline time.Time
	pending  bool
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Note records a resize notification at the given time, pushing the firing
// deadline out by the quiet period.
func (d *Debouncer) Note(now time.Time) {
	d.pending = true
	d.deadline = now.Add(d.quiet)
}

// Fire reports whether the quiet period has elapsed since the last Note.
// It returns true at most once per burst.
func (d *Debouncer) Fire(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	return true
}
