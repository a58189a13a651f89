// Package clock implements the countdown used by timed exams.
package clock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Interval is the default tick cadence.
const Interval = time.Second

// ErrInvalidLimit is returned for a non-positive time limit.
var ErrInvalidLimit = errors.New("time limit must be positive")

// Option configures a Clock.
type Option func(*Clock)

// WithInterval overrides the tick cadence used by Start.
func WithInterval(d time.Duration) Option {
	return func(c *Clock) { c.interval = d }
}

// Clock counts down whole seconds and fires onExpire exactly once when the
// remaining time reaches zero. Once stopped or expired it never ticks again.
//
// Ticks can come from Start's internal ticker or from an external driver
// calling Tick (for example a UI event loop). Both may be used safely.
type Clock struct {
	mu        sync.Mutex
	total     int
	remaining int
	stopped   bool
	expired   bool
	onExpire  func()
	interval  time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	started  bool
}

// New creates a stopped-at-full clock for a limit expressed in minutes.
// onExpire may be nil.
func New(limitMinutes int, onExpire func(), opts ...Option) (*Clock, error) {
	if limitMinutes <= 0 {
		return nil, fmt.Errorf("new clock (%d min): %w", limitMinutes, ErrInvalidLimit)
	}
	c := &Clock{
		total:     limitMinutes * 60,
		remaining: limitMinutes * 60,
		onExpire:  onExpire,
		interval:  Interval,
		stopCh:    make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Total returns the full countdown length in seconds.
func (c *Clock) Total() int {
	return c.total
}

// Remaining returns the seconds left. It never goes below zero.
func (c *Clock) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Expired reports whether the expiry notification has fired.
func (c *Clock) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Stopped reports whether the clock no longer ticks.
func (c *Clock) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// Tick advances the countdown by one second and returns the new remaining
// time. Ticks after Stop or expiry are ignored.
func (c *Clock) Tick() int {
	c.mu.Lock()
	if c.stopped || c.remaining == 0 {
		r := c.remaining
		c.mu.Unlock()
		return r
	}
	c.remaining--
	r := c.remaining
	fire := false
	if r == 0 {
		c.expired = true
		c.stopped = true
		fire = true
	}
	c.mu.Unlock()

	// onExpire runs without the lock held so it may call back into the clock.
	if fire {
		c.signalStop()
		if c.onExpire != nil {
			c.onExpire()
		}
	}
	return r
}

// Stop halts the clock. No further ticks or expiry notification happen.
// Stop is idempotent.
func (c *Clock) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	c.signalStop()
}

func (c *Clock) signalStop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Start ticks the clock in a background goroutine until it expires, Stop is
// called or ctx is done. Calling Start more than once has no effect.
func (c *Clock) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go c.run(ctx)
}

func (c *Clock) run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Done is closed once the clock stops or expires.
func (c *Clock) Done() <-chan struct{} {
	return c.stopCh
}

// Format renders seconds as m:ss.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
