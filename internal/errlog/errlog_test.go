package errlog

import (
	"errors"
	"testing"
)

func TestLogStartsEmptyAndLoud(t *testing.T) {
	l := New()
	if l.Silent() {
		t.Error("new log is silent, want non-silent")
	}
	if l.Len() != 0 {
		t.Errorf("new log Len() = %d, want 0", l.Len())
	}
}

func TestRecordAndFlush(t *testing.T) {
	l := New()
	e1 := errors.New("first")
	e2 := errors.New("second")

	l.Record(e1)
	l.Record(nil) // ignored
	l.Record(e2)

	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	got := l.Flush()
	if len(got) != 2 || got[0] != e1 || got[1] != e2 {
		t.Errorf("Flush() = %v, want [first second]", got)
	}
	if l.Len() != 0 {
		t.Errorf("Len() after Flush = %d, want 0", l.Len())
	}
	if more := l.Flush(); more != nil {
		t.Errorf("second Flush() = %v, want nil", more)
	}
}

func TestSetSilent(t *testing.T) {
	l := New()
	l.SetSilent(true)
	if !l.Silent() {
		t.Error("Silent() = false after SetSilent(true)")
	}
	l.SetSilent(false)
	if l.Silent() {
		t.Error("Silent() = true after SetSilent(false)")
	}
}
