// Package scheduler provides the single serialized execution context that
// owns the team namespace and every registry mutation.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrStopped = errors.New("executor stopped")

// Executor runs submitted tasks one at a time on a dedicated goroutine, so a
// task never runs concurrently with another task.
type Executor struct {
	logger *zap.Logger
	tasks  chan func()

	mu        sync.Mutex
	started   bool
	timers    map[*time.Timer]struct{}
	stopOnce  sync.Once
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewExecutor(logger *zap.Logger, queueSize int) *Executor {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Executor{
		logger:    logger,
		tasks:     make(chan func(), queueSize),
		timers:    make(map[*time.Timer]struct{}),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Start launches the task loop. It stops when ctx is done or Stop is called.
func (e *Executor) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return fmt.Errorf("executor already running")
	}
	e.started = true
	go e.run(ctx)
	return nil
}

// Stop ends the loop, cancels pending delayed tasks and waits for the running
// task to finish. Safe to call more than once or before Start.
func (e *Executor) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopCh)

		e.mu.Lock()
		for t := range e.timers {
			t.Stop()
		}
		e.timers = make(map[*time.Timer]struct{})
		started := e.started
		e.mu.Unlock()

		if started {
			<-e.stoppedCh
		}
	})
}

// Submit queues fn. It returns false once the executor has stopped.
func (e *Executor) Submit(fn func()) bool {
	select {
	case <-e.stopCh:
		return false
	case <-e.stoppedCh:
		return false
	default:
	}

	select {
	case e.tasks <- fn:
		return true
	case <-e.stopCh:
		return false
	case <-e.stoppedCh:
		return false
	}
}

// SubmitAfter queues fn once d has elapsed.
func (e *Executor) SubmitAfter(d time.Duration, fn func()) {
	if d <= 0 {
		e.Submit(fn)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.stopCh:
		return
	default:
	}

	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		e.mu.Lock()
		delete(e.timers, timer)
		e.mu.Unlock()
		e.Submit(fn)
	})
	e.timers[timer] = struct{}{}
}

// Call runs fn on the executor and waits for its result. It must not be
// called from a task, that would deadlock the loop.
func (e *Executor) Call(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	if !e.Submit(func() { done <- e.safely(fn) }) {
		return ErrStopped
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-e.stoppedCh:
		select {
		case err := <-done:
			return err
		default:
			return ErrStopped
		}
	}
}

func (e *Executor) run(ctx context.Context) {
	defer close(e.stoppedCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopCh:
			return
		case fn := <-e.tasks:
			if err := e.safely(func() error { fn(); return nil }); err != nil {
				e.logger.Error("task failed", zap.Error(err))
			}
		}
	}
}

func (e *Executor) safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn()
}
