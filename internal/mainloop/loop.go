// Package mainloop runs host callbacks one at a time on a single goroutine.
package mainloop

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Post after the loop has stopped.
var ErrStopped = errors.New("main loop stopped")

// Loop executes posted functions serially, in posting order.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

// New creates a loop. Call Run to start draining it.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn. It never blocks.
func (l *Loop) Post(fn func()) {
	_ = l.TryPost(fn)
}

// TryPost queues fn and reports ErrStopped once the loop is gone.
func (l *Loop) TryPost(fn func()) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Run drains the queue until ctx is done. Pending work is dropped on exit.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
