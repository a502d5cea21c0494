package telegram

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRescheduleCancelsPrior(t *testing.T) {
	s := newScheduler()

	var first, second atomic.Int32
	s.Schedule(1, 20*time.Millisecond, func() { first.Add(1) })
	s.Schedule(1, 20*time.Millisecond, func() { second.Add(1) })

	time.Sleep(80 * time.Millisecond)

	if first.Load() != 0 {
		t.Error("cancelled task still fired")
	}
	if second.Load() != 1 {
		t.Errorf("replacement task fired %d times, want 1", second.Load())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := newScheduler()

	var fired atomic.Int32
	s.Schedule(1, 20*time.Millisecond, func() { fired.Add(1) })
	s.Cancel(1)

	time.Sleep(60 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("cancelled task fired")
	}
}

func TestSchedulerIndependentChats(t *testing.T) {
	s := newScheduler()

	var a, b atomic.Int32
	s.Schedule(1, 10*time.Millisecond, func() { a.Add(1) })
	s.Schedule(2, 10*time.Millisecond, func() { b.Add(1) })

	time.Sleep(60 * time.Millisecond)
	if a.Load() != 1 || b.Load() != 1 {
		t.Errorf("expected both chats to fire once, got %d and %d", a.Load(), b.Load())
	}
}
