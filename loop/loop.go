// Package loop provides the single-goroutine host loop every bridge operation runs on.
package loop

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned when work is submitted to a loop that has stopped.
var ErrStopped = errors.New("host loop stopped")

// Loop runs scheduled functions one at a time, in scheduling order, on the goroutine that calls Run.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stop    chan struct{}
	once    sync.Once
	stopped bool
}

func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
}

// Dispatch schedules fn. It never blocks, so it may be called from the loop itself.
// Functions scheduled after Stop are dropped.
func (l *Loop) Dispatch(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Do schedules fn and waits until it has run.
// It must not be called from the loop goroutine.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})

	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return ErrStopped
	}

	l.Dispatch(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-l.stop:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes scheduled functions until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		for _, fn := range l.drain() {
			select {
			case <-l.stop:
				return nil
			default:
			}
			fn()
		}

		select {
		case <-l.wake:
		case <-l.stop:
			return nil
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		}
	}
}

// Stop ends Run after the function currently executing returns. Pending functions are discarded.
func (l *Loop) Stop() {
	l.once.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		close(l.stop)
	})
}

// Done is closed once the loop has been stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.stop
}

func (l *Loop) drain() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	queue := l.queue
	l.queue = nil
	return queue
}
