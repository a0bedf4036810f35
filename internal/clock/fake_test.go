package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFake_AfterFuncFiresAtDeadline(t *testing.T) {
	c := NewFake(epoch)
	fired := 0
	c.AfterFunc(100*time.Millisecond, func() { fired++ })

	c.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("Expected no fire before deadline, got %d", fired)
	}

	c.Advance(time.Millisecond)
	if fired != 1 {
		t.Errorf("Expected one fire at deadline, got %d", fired)
	}

	c.Advance(time.Second)
	if fired != 1 {
		t.Errorf("Expected timer to fire once, got %d", fired)
	}
}

func TestFake_Stop(t *testing.T) {
	c := NewFake(epoch)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Expected Stop to report a pending timer")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to report false")
	}

	c.Advance(2 * time.Second)
	if fired {
		t.Error("Stopped timer fired")
	}
	if c.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", c.Pending())
	}
}

func TestFake_ChainedTimersFireWithinOneAdvance(t *testing.T) {
	c := NewFake(epoch)
	var at []time.Duration

	c.AfterFunc(300*time.Millisecond, func() {
		at = append(at, c.Now().Sub(epoch))
		c.AfterFunc(150*time.Millisecond, func() {
			at = append(at, c.Now().Sub(epoch))
		})
	})

	c.Advance(450 * time.Millisecond)

	if len(at) != 2 {
		t.Fatalf("Expected both timers to fire, got %d", len(at))
	}
	if at[0] != 300*time.Millisecond || at[1] != 450*time.Millisecond {
		t.Errorf("Unexpected fire times: %v", at)
	}
	if got := c.Now().Sub(epoch); got != 450*time.Millisecond {
		t.Errorf("Expected clock at 450ms, got %v", got)
	}
}

func TestFake_DeadlineOrder(t *testing.T) {
	c := NewFake(epoch)
	var order []int
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })

	c.Advance(time.Second)

	for i, v := range []int{1, 2, 3} {
		if order[i] != v {
			t.Fatalf("Expected order [1 2 3], got %v", order)
		}
	}
}

func TestTimer_NilStop(t *testing.T) {
	var timer *Timer
	if timer.Stop() {
		t.Error("Expected nil timer Stop to return false")
	}
}
