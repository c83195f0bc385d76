package lifetime

import (
	"testing"
	"time"

	"promptscape/pkg/engine/loop"
)

func TestCancelAll_RunsCleanupsInReverseOrder(t *testing.T) {
	s := New("test")
	var order []int
	s.Defer(func() { order = append(order, 1) })
	s.Defer(func() { order = append(order, 2) })
	s.Defer(func() { order = append(order, 3) })

	s.CancelAll()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("order = %v, want [3 2 1]", order)
	}
}

func TestCancelAll_IsIdempotent(t *testing.T) {
	s := New("test")
	calls := 0
	s.Defer(func() { calls++ })

	s.CancelAll()
	s.CancelAll()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Alive() {
		t.Error("Alive() = true after CancelAll, want false")
	}
}

func TestDefer_AfterCancelRunsImmediately(t *testing.T) {
	s := New("test")
	s.CancelAll()

	ran := false
	s.Defer(func() { ran = true })
	if !ran {
		t.Error("Defer on cancelled scope did not run cleanup immediately")
	}
}

func TestGuard_NoOpAfterCancel(t *testing.T) {
	s := New("test")
	calls := 0
	guarded := s.Guard(func() { calls++ })

	guarded()
	s.CancelAll()
	guarded()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTrack_StopsTimersAndHooks(t *testing.T) {
	sched := loop.New()
	s := New("level")
	timerCalls, frameCalls := 0, 0
	s.Track(
		sched.Every(time.Second, func() { timerCalls++ }),
		sched.OnFrame(func(time.Duration) { frameCalls++ }),
	)

	sched.Advance(time.Second)
	s.CancelAll()
	sched.Advance(10 * time.Second)

	if timerCalls != 1 {
		t.Errorf("timerCalls = %d, want 1", timerCalls)
	}
	if frameCalls != 1 {
		t.Errorf("frameCalls = %d, want 1", frameCalls)
	}
}
