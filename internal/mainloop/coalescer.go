package mainloop

import "sync"

// Coalescer merges bursts of same-key values into a single call on the loop.
// Only the latest value posted for a key before the loop runs is delivered.
type Coalescer[K comparable, V any] struct {
	mu        sync.Mutex
	latest    map[K]V
	scheduled map[K]bool
	post      func(func())
	handle    func(K, V)
	destroyed bool
}

// NewCoalescer creates a coalescer that schedules work with post and
// delivers values to handle.
func NewCoalescer[K comparable, V any](post func(func()), handle func(K, V)) *Coalescer[K, V] {
	if post == nil || handle == nil {
		panic("mainloop.NewCoalescer: post and handle cannot be nil")
	}
	return &Coalescer[K, V]{
		latest:    make(map[K]V),
		scheduled: make(map[K]bool),
		post:      post,
		handle:    handle,
	}
}

// Post records v as the latest value for key and schedules delivery if none
// is scheduled yet.
func (c *Coalescer[K, V]) Post(key K, v V) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.latest[key] = v
	if c.scheduled[key] {
		c.mu.Unlock()
		return
	}
	c.scheduled[key] = true
	post := c.post
	c.mu.Unlock()

	post(func() { c.deliver(key) })
}

func (c *Coalescer[K, V]) deliver(key K) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	v, ok := c.latest[key]
	delete(c.latest, key)
	delete(c.scheduled, key)
	c.mu.Unlock()

	if ok {
		c.handle(key, v)
	}
}

// Destroy drops pending values; later posts are ignored.
func (c *Coalescer[K, V]) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	clear(c.latest)
	clear(c.scheduled)
	c.mu.Unlock()
}
