package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoop_RunsTasksInOrder(t *testing.T) {
	loop := NewLoop(16)
	loop.Start()
	defer loop.Stop()

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		if err := loop.Post(func() { got = append(got, i) }); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
	}

	// Do is queued behind the posts, so every earlier task has run
	if err := loop.Do(func() {}); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if len(got) != 10 {
		t.Fatalf("Expected 10 tasks, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Expected FIFO order, got %v", got)
		}
	}
}

func TestLoop_SingleWriter(t *testing.T) {
	loop := NewLoop(8)
	loop.Start()
	defer loop.Stop()

	// Plain int: the race detector flags this if tasks ever overlap
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = loop.Post(func() { counter++ })
		}()
	}
	wg.Wait()

	var final int
	if err := loop.Do(func() { final = counter }); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if final != 100 {
		t.Errorf("Expected 100 increments, got %d", final)
	}
}

func TestLoop_ErrorHandling(t *testing.T) {
	loop := NewLoop(4)

	var handled atomic.Bool
	loop.SetErrorHandler(func(err error) {
		handled.Store(true)
	})
	loop.Start()
	defer loop.Stop()

	_ = loop.Post(func() { panic("test panic") })

	// Loop keeps running after a panic
	ran := false
	if err := loop.Do(func() { ran = true }); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if !handled.Load() {
		t.Error("Error handler was not called")
	}
	if !ran {
		t.Error("Loop stopped after a panicking task")
	}
}

func TestLoop_PostAfterStop(t *testing.T) {
	loop := NewLoop(4)
	loop.Start()
	loop.Stop()

	if err := loop.Post(func() {}); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped, got %v", err)
	}
	if err := loop.Do(func() {}); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped from Do, got %v", err)
	}
	if loop.IsRunning() {
		t.Error("Loop should not report running after Stop")
	}
}

func TestLoop_StopIsIdempotent(t *testing.T) {
	loop := NewLoop(4)
	loop.Start()

	done := make(chan struct{})
	go func() {
		loop.Stop()
		loop.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestLoop_Ran(t *testing.T) {
	loop := NewLoop(4)
	loop.Start()
	defer loop.Stop()

	for i := 0; i < 3; i++ {
		_ = loop.Post(func() {})
	}
	_ = loop.Do(func() {})

	// The Do wrapper may still be finishing, the three posts are done
	if got := loop.Ran(); got < 3 {
		t.Errorf("Expected at least 3 tasks run, got %d", got)
	}
}

func TestLoop_NilTask(t *testing.T) {
	loop := NewLoop(0)
	if err := loop.Post(nil); err != nil {
		t.Errorf("Expected nil task to be ignored, got %v", err)
	}
}
