package reactive

import (
	"sync"
	"testing"
)

func TestState_GetSet(t *testing.T) {
	state := NewState(42)

	// Test initial value
	if got := state.Get(); got != 42 {
		t.Errorf("Expected initial value 42, got %d", got)
	}

	// Test set
	state.Set(100)
	if got := state.Get(); got != 100 {
		t.Errorf("Expected value 100 after Set, got %d", got)
	}
}

func TestState_Update(t *testing.T) {
	state := NewState(10)

	state.Update(func(v int) int {
		return v * 2
	})

	if got := state.Get(); got != 20 {
		t.Errorf("Expected value 20 after Update, got %d", got)
	}
}

func TestState_WatchReceivesPrevAndNext(t *testing.T) {
	state := NewState("hello")

	var prevs, nexts []string
	state.Watch(func(prev, next string) {
		prevs = append(prevs, prev)
		nexts = append(nexts, next)
	})

	state.Set("world")
	state.Set("again")

	if len(prevs) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(prevs))
	}
	if prevs[0] != "hello" || nexts[0] != "world" {
		t.Errorf("Unexpected first change %q -> %q", prevs[0], nexts[0])
	}
	if prevs[1] != "world" || nexts[1] != "again" {
		t.Errorf("Unexpected second change %q -> %q", prevs[1], nexts[1])
	}
}

func TestState_MutateRejected(t *testing.T) {
	state := NewState(1)

	notified := 0
	state.Watch(func(_, _ int) { notified++ })

	committed := state.Mutate(func(v int) (int, bool) {
		return v + 1, false
	})

	if committed {
		t.Error("Expected Mutate to report no commit")
	}
	if state.Get() != 1 {
		t.Errorf("Expected value to stay 1, got %d", state.Get())
	}
	if notified != 0 {
		t.Errorf("Expected no notification, got %d", notified)
	}
}

func TestState_WatchCancel(t *testing.T) {
	state := NewState(0)

	calls := 0
	cancel := state.Watch(func(_, _ int) { calls++ })

	state.Set(1)
	cancel()
	state.Set(2)

	if calls != 1 {
		t.Errorf("Expected 1 call before cancel, got %d", calls)
	}
}

func TestState_WatchOrder(t *testing.T) {
	state := NewState(0)

	var order []int
	for i := 1; i <= 5; i++ {
		i := i
		state.Watch(func(_, _ int) { order = append(order, i) })
	}
	state.Set(1)

	for i, v := range order {
		if v != i+1 {
			t.Fatalf("Expected watchers in registration order, got %v", order)
		}
	}
}

func TestState_WatcherMayMutate(t *testing.T) {
	state := NewState(0)

	state.Watch(func(_, next int) {
		if next == 1 {
			state.Set(2)
		}
	})
	state.Set(1)

	if got := state.Get(); got != 2 {
		t.Errorf("Expected nested Set to win, got %d", got)
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	state := NewState(0)

	var wg sync.WaitGroup

	// Concurrent writes
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state.Update(func(v int) int { return v + 1 })
		}()
	}

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = state.Get()
		}()
	}

	wg.Wait()

	if got := state.Get(); got != 100 {
		t.Errorf("Expected 100 increments, got %d", got)
	}
}

func TestComputed_Basic(t *testing.T) {
	count := NewState(5)

	computeCalls := 0
	doubled := NewComputed[int, int](count, func(v int) int {
		computeCalls++
		return v * 2
	})
	defer doubled.Dispose()

	if got := doubled.Get(); got != 10 {
		t.Errorf("Expected computed value 10, got %d", got)
	}

	// Memoized until the source changes
	_ = doubled.Get()
	if computeCalls != 1 {
		t.Errorf("Expected 1 compute call, got %d", computeCalls)
	}

	count.Set(7)
	if got := doubled.Get(); got != 14 {
		t.Errorf("Expected computed value 14, got %d", got)
	}
	if computeCalls != 2 {
		t.Errorf("Expected 2 compute calls, got %d", computeCalls)
	}
}

func TestComputed_Dispose(t *testing.T) {
	count := NewState(1)
	c := NewComputed[int, int](count, func(v int) int { return v })
	_ = c.Get()

	c.Dispose()
	count.Set(3)

	// Detached: the memoized value is kept
	if got := c.Get(); got != 1 {
		t.Errorf("Expected stale value 1 after Dispose, got %d", got)
	}
}
