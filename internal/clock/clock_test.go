package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_ConvertsMinutes(t *testing.T) {
	c, err := New(2, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Remaining() != 120 {
		t.Errorf("Remaining = %d, want 120", c.Remaining())
	}
	if c.Total() != 120 {
		t.Errorf("Total = %d, want 120", c.Total())
	}
}

func TestNew_InvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		if _, err := New(limit, nil); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("New(%d) err = %v, want ErrInvalidLimit", limit, err)
		}
	}
}

func TestTick_MonotonicAndFiresOnce(t *testing.T) {
	var fired int32
	c, _ := New(1, func() { atomic.AddInt32(&fired, 1) })

	prev := c.Remaining()
	for i := 0; i < 59; i++ {
		r := c.Tick()
		if r >= prev {
			t.Fatalf("tick %d: remaining %d did not decrease from %d", i, r, prev)
		}
		prev = r
	}
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatal("expiry fired early")
	}

	if r := c.Tick(); r != 0 {
		t.Fatalf("remaining = %d, want 0", r)
	}
	if atomic.LoadInt32(&fired) != 1 {
		t.Fatalf("fired = %d, want 1", atomic.LoadInt32(&fired))
	}

	// Extra ticks neither go negative nor fire again.
	for i := 0; i < 5; i++ {
		if r := c.Tick(); r != 0 {
			t.Errorf("remaining after expiry = %d, want 0", r)
		}
	}
	if atomic.LoadInt32(&fired) != 1 {
		t.Errorf("fired = %d after extra ticks, want 1", atomic.LoadInt32(&fired))
	}
	if !c.Expired() || !c.Stopped() {
		t.Error("expected clock to be expired and stopped")
	}
}

func TestStop_PreventsExpiry(t *testing.T) {
	var fired int32
	c, _ := New(1, func() { atomic.AddInt32(&fired, 1) })

	c.Tick()
	c.Stop()
	before := c.Remaining()
	for i := 0; i < 100; i++ {
		c.Tick()
	}
	if c.Remaining() != before {
		t.Errorf("Remaining = %d after stop, want %d", c.Remaining(), before)
	}
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("expiry fired after stop")
	}
	c.Stop() // idempotent
}

func TestStart_ExpiresOnTicker(t *testing.T) {
	done := make(chan struct{})
	c, _ := New(1, func() { close(done) }, WithInterval(time.Millisecond))

	c.Start(context.Background())
	c.Start(context.Background()) // no second goroutine

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("clock did not expire")
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", c.Remaining())
	}
	select {
	case <-c.Done():
	default:
		t.Error("Done channel not closed after expiry")
	}
}

func TestStart_ContextCancelStops(t *testing.T) {
	var fired int32
	c, _ := New(1, func() { atomic.AddInt32(&fired, 1) }, WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	cancel()

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("clock did not stop on cancel")
	}
	if !c.Stopped() {
		t.Error("expected clock stopped")
	}
	if c.Remaining() != 60 {
		t.Errorf("Remaining = %d, want 60", c.Remaining())
	}
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("expiry fired on cancel")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{61, "1:01"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "60:00"},
		{-4, "0:00"},
	}
	for _, tt := range tests {
		if got := Format(tt.secs); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
