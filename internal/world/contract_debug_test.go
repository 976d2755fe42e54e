//go:build debug

package world

import (
	"strings"
	"testing"
)

func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatalf("no panic, want %q", want)
		}
		msg, _ := rec.(string)
		if !strings.Contains(msg, want) {
			t.Fatalf("panic = %v, want %q", rec, want)
		}
	}()
	fn()
}

func TestPopEmptyPanics(t *testing.T) {
	s := NewStack(nil)
	mustPanic(t, "pop of empty input stack", func() { s.Pop() })
}

func TestCancelUnknownTaskPanics(t *testing.T) {
	w := New(Options{})
	mustPanic(t, "cancel of unknown schedule task", func() { w.Sched.Cancel(TaskID(999)) })
}

func TestUpdateUnregisteredKindPanics(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Store.Create(Kind(200), 0, 0)
	mustPanic(t, "update of unregistered kind", w.TickSimulation)
}
