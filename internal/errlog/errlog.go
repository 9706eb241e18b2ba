// Package errlog collects engine errors for deferred surfacing.
//
// A Log starts empty and non-silent. While silent, callers record errors
// instead of returning them; Flush returns everything recorded so far and
// resets the log to empty. The engine injects a Log into each registry
// rather than reaching for shared state, but a process-wide default is
// available for callers that want one collector across registries.
package errlog

// Log accumulates errors under an explicit silent/non-silent switch.
type Log struct {
	silent bool
	errs   []error
}

// New returns an empty, non-silent log.
func New() *Log {
	return &Log{}
}

// SetSilent switches deferred capture on or off.
func (l *Log) SetSilent(on bool) {
	l.silent = on
}

// Silent reports whether errors are being captured instead of returned.
func (l *Log) Silent() bool {
	return l.silent
}

// Record appends an error to the log. Nil errors are ignored.
func (l *Log) Record(err error) {
	if err == nil {
		return
	}
	l.errs = append(l.errs, err)
}

// Len returns the number of recorded errors.
func (l *Log) Len() int {
	return len(l.errs)
}

// Flush returns all recorded errors and resets the log to empty.
func (l *Log) Flush() []error {
	out := l.errs
	l.errs = nil
	return out
}

// std is the process-wide default log.
var std = New()

// Default returns the process-wide log.
func Default() *Log {
	return std
}
