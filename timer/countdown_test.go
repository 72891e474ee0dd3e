package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdown_TicksAndExpires(t *testing.T) {
	scheduler := NewScheduler(2 * time.Millisecond)
	defer scheduler.Stop()

	c := NewCountdown(scheduler, 3, 5*time.Millisecond)

	var ticks, expirations int32
	c.SetCallbacks(
		func(remaining int) { atomic.AddInt32(&ticks, 1) },
		func() { atomic.AddInt32(&expirations, 1) },
	)

	c.Start()
	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt32(&expirations); got != 1 {
		t.Errorf("Expected exactly one expiration, got %d", got)
	}
	if got := atomic.LoadInt32(&ticks); got != 3 {
		t.Errorf("Expected 3 ticks, got %d", got)
	}
	if c.Remaining() != 0 {
		t.Errorf("Expected 0 remaining after expiry, got %d", c.Remaining())
	}
	if c.Running() {
		t.Error("Countdown should stop itself on expiry")
	}
}

func TestCountdown_StopPreservesRemaining(t *testing.T) {
	scheduler := NewScheduler(2 * time.Millisecond)
	defer scheduler.Stop()

	c := NewCountdown(scheduler, 100, 10*time.Millisecond)
	c.Start()
	time.Sleep(35 * time.Millisecond)
	c.Stop()

	remaining := c.Remaining()
	if remaining >= 100 || remaining <= 90 {
		t.Errorf("Expected a few seconds consumed, remaining %d", remaining)
	}

	// Stop is idempotent and accounts nothing further.
	c.Stop()
	time.Sleep(30 * time.Millisecond)
	if c.Remaining() != remaining {
		t.Errorf("Stopped countdown kept ticking: %d -> %d", remaining, c.Remaining())
	}
}

func TestCountdown_Resume(t *testing.T) {
	scheduler := NewScheduler(2 * time.Millisecond)
	defer scheduler.Stop()

	c := NewCountdown(scheduler, 100, 10*time.Millisecond)
	c.Start()
	time.Sleep(25 * time.Millisecond)
	c.Stop()
	paused := c.Remaining()

	c.Start()
	time.Sleep(25 * time.Millisecond)
	c.Stop()

	if c.Remaining() >= paused {
		t.Errorf("Resumed countdown should keep counting down from %d, got %d", paused, c.Remaining())
	}
}

func TestCountdown_Reset(t *testing.T) {
	scheduler := NewScheduler(2 * time.Millisecond)
	defer scheduler.Stop()

	c := NewCountdown(scheduler, 60, 10*time.Millisecond)
	c.Start()
	time.Sleep(25 * time.Millisecond)

	c.Reset()

	if c.Remaining() != 60 {
		t.Errorf("Reset should restore the full duration, got %d", c.Remaining())
	}
	if c.Running() {
		t.Error("Reset should leave the countdown stopped")
	}
}

func TestScheduler_Remove(t *testing.T) {
	scheduler := NewScheduler(2 * time.Millisecond)
	defer scheduler.Stop()

	var fired int32
	id := scheduler.Schedule(20*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})
	scheduler.Remove(id)

	time.Sleep(50 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("Removed task must not fire")
	}

	// Removing an unknown id is safe.
	scheduler.Remove(9999)
}

func TestScheduler_RecurringTask(t *testing.T) {
	scheduler := NewScheduler(2 * time.Millisecond)
	defer scheduler.Stop()

	var fired int32
	id := scheduler.Schedule(5*time.Millisecond, 5*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	time.Sleep(60 * time.Millisecond)
	scheduler.Remove(id)

	if got := atomic.LoadInt32(&fired); got < 3 {
		t.Errorf("Expected a recurring task to fire repeatedly, got %d", got)
	}
}
