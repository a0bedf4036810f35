package scheduler

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Task is a unit of work run on the loop goroutine
type Task func()

// ErrorHandler handles panics raised by a task
type ErrorHandler func(err error)

// ErrStopped is returned when posting to a loop that is not running
var ErrStopped = errors.New("scheduler: loop stopped")

// debugLog is set by the host process
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Loop runs tasks one at a time on a single goroutine. Every mutation of
// a navigation session goes through its loop, so session state has
// exactly one writer.
type Loop struct {
	queue   chan Task
	quit    chan struct{}
	done    chan struct{}
	running atomic.Bool
	stopped atomic.Bool
	once    sync.Once

	onError ErrorHandler
	ran     atomic.Uint64
}

// NewLoop creates a loop with a buffered queue of the given size
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Loop{
		queue: make(chan Task, queueSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// SetErrorHandler sets the handler for panicking tasks
func (l *Loop) SetErrorHandler(handler ErrorHandler) {
	l.onError = handler
}

// Start begins the loop goroutine
func (l *Loop) Start() {
	if l.stopped.Load() {
		return
	}
	if l.running.CompareAndSwap(false, true) {
		go l.run()
	}
}

// Stop ends the loop after the task in progress. Pending tasks are dropped.
// Stop must not be called from a task.
func (l *Loop) Stop() {
	l.once.Do(func() {
		l.stopped.Store(true)
		close(l.quit)
	})
	if l.running.Load() {
		<-l.done
	}
}

// IsRunning returns whether the loop is running
func (l *Loop) IsRunning() bool {
	return l.running.Load() && !l.stopped.Load()
}

// Post enqueues a task, blocking while the queue is full
func (l *Loop) Post(task Task) error {
	if task == nil {
		return nil
	}
	if l.stopped.Load() {
		return ErrStopped
	}
	select {
	case l.queue <- task:
		return nil
	case <-l.quit:
		return ErrStopped
	}
}

// Go is Post for callers that cannot act on a stopped loop, such as
// timer callbacks
func (l *Loop) Go(task func()) {
	if err := l.Post(task); err != nil && debugLog != nil {
		debugLog("[Scheduler] dropped task:", err)
	}
}

// Do runs task on the loop and waits for it to finish
func (l *Loop) Do(task Task) error {
	finished := make(chan struct{})
	err := l.Post(func() {
		defer close(finished)
		task()
	})
	if err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		// The loop may have exited with our task still queued
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	}
}

// Ran returns the number of tasks executed so far
func (l *Loop) Ran() uint64 {
	return l.ran.Load()
}

// run is the main loop
func (l *Loop) run() {
	defer close(l.done)
	if debugLog != nil {
		debugLog("[Scheduler] Loop started")
	}

	for {
		var task Task
		select {
		case <-l.quit:
			if debugLog != nil {
				debugLog("[Scheduler] Loop ended")
			}
			return
		case task = <-l.queue:
		}

		// Drain whatever else is ready so a burst runs back to back
		batch := []Task{task}
	drainLoop:
		for {
			select {
			case t := <-l.queue:
				batch = append(batch, t)
			default:
				break drainLoop
			}
		}

		for _, t := range batch {
			if l.stopped.Load() {
				return
			}
			l.runTask(t)
		}
	}
}

// runTask executes a task with panic recovery
func (l *Loop) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			l.handleTaskError(r)
		}
	}()
	task()
	l.ran.Add(1)
}

// handleTaskError reports a panic during a task
func (l *Loop) handleTaskError(r interface{}) {
	err := fmt.Errorf("task panic: %v\n%s", r, debug.Stack())
	if l.onError != nil {
		l.onError(err)
		return
	}
	if debugLog != nil {
		debugLog("[Scheduler]", err)
	}
}
