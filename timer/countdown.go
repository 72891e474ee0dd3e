// timer/countdown.go
package timer

import (
	"sync"
	"time"
)

// Countdown is a second-granularity turn clock. It ticks once per second
// while running and fires the expiration callback exactly once when the
// remaining time reaches zero. Stop pauses the clock and preserves the
// remaining seconds so a turn can resume mid-countdown.
type Countdown struct {
	scheduler *Scheduler
	tickEvery time.Duration

	mutex     sync.Mutex
	remaining int
	duration  int
	running   bool
	taskID    int64

	onTick   func(remaining int)
	onExpire func()
}

// NewCountdown creates a countdown of the given number of seconds, driven by
// the shared scheduler. tickEvery is the wall-clock length of one logical
// second; production uses time.Second, tests shorten it.
func NewCountdown(scheduler *Scheduler, seconds int, tickEvery time.Duration) *Countdown {
	return &Countdown{
		scheduler: scheduler,
		tickEvery: tickEvery,
		remaining: seconds,
		duration:  seconds,
	}
}

// SetCallbacks registers the tick and expiration handlers. Must be called
// before Start.
func (c *Countdown) SetCallbacks(onTick func(remaining int), onExpire func()) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.onTick = onTick
	c.onExpire = onExpire
}

// Start begins (or resumes) the countdown. Starting a running or already
// expired countdown is a no-op.
func (c *Countdown) Start() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.running || c.remaining <= 0 {
		return
	}
	c.running = true
	c.taskID = c.scheduler.Schedule(c.tickEvery, c.tickEvery, c.tick)
}

// Stop pauses the countdown without touching the remaining time. Idempotent.
func (c *Countdown) Stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.stopLocked()
}

func (c *Countdown) stopLocked() {
	if !c.running {
		return
	}
	c.running = false
	c.scheduler.Remove(c.taskID)
}

// Reset stops the countdown and restores the full turn duration.
func (c *Countdown) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.stopLocked()
	c.remaining = c.duration
}

// Remaining reports the seconds left on the clock.
func (c *Countdown) Remaining() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.remaining
}

// Running reports whether the clock is counting down.
func (c *Countdown) Running() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.running
}

func (c *Countdown) tick() {
	c.mutex.Lock()
	if !c.running {
		// A tick scheduled before Stop may still arrive; drop it.
		c.mutex.Unlock()
		return
	}

	c.remaining--
	remaining := c.remaining
	expired := remaining <= 0
	if expired {
		c.stopLocked()
	}
	onTick := c.onTick
	onExpire := c.onExpire
	c.mutex.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if expired && onExpire != nil {
		onExpire()
	}
}
