package mainloop

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCoalescerMergesBurstIntoSingleCall(t *testing.T) {
	queue := make([]func(), 0, 8)
	got := map[string]int{}
	c := NewCoalescer(
		func(fn func()) { queue = append(queue, fn) },
		func(key string, v int) { got[key] = v },
	)

	for i := 1; i <= 5; i++ {
		c.Post("DP-1", i)
	}
	c.Post("HDMI-A-1", 9)

	if len(queue) != 2 {
		t.Fatalf("expected 2 scheduled callbacks, got %d", len(queue))
	}
	for _, fn := range queue {
		fn()
	}

	if got["DP-1"] != 5 {
		t.Fatalf("expected latest value to be delivered, got %d", got["DP-1"])
	}
	if got["HDMI-A-1"] != 9 {
		t.Fatalf("expected other key to be delivered, got %d", got["HDMI-A-1"])
	}
}

func TestCoalescerSchedulesAgainAfterDelivery(t *testing.T) {
	queue := make([]func(), 0, 4)
	calls := 0
	c := NewCoalescer(
		func(fn func()) { queue = append(queue, fn) },
		func(string, int) { calls++ },
	)

	c.Post("DP-1", 1)
	queue[0]()
	c.Post("DP-1", 2)

	if len(queue) != 2 {
		t.Fatalf("expected a second callback after delivery, got %d", len(queue))
	}
	queue[1]()
	if calls != 2 {
		t.Fatalf("expected 2 deliveries, got %d", calls)
	}
}

func TestCoalescerDropsWorkAfterDestroy(t *testing.T) {
	queue := make([]func(), 0, 4)
	ran := false
	c := NewCoalescer(
		func(fn func()) { queue = append(queue, fn) },
		func(string, int) { ran = true },
	)

	c.Post("DP-1", 1)
	c.Destroy()

	if len(queue) != 1 {
		t.Fatalf("expected one queued callback before destroy, got %d", len(queue))
	}
	queue[0]()
	if ran {
		t.Fatalf("expected queued work to be dropped after destroy")
	}

	c.Post("DP-1", 2)
	if len(queue) != 1 {
		t.Fatalf("expected no new callback after destroy, got %d", len(queue))
	}
}

func TestNewCoalescerPanicsOnNilPost(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected NewCoalescer to panic when post is nil")
		}
	}()

	_ = NewCoalescer[string, int](nil, func(string, int) {})
}

func TestLoopRunsInOrder(t *testing.T) {
	loop := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
		close(done)
	}()

	var mu sync.Mutex
	var order []int
	for i := range 10 {
		loop.Post(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(order)
		mu.Unlock()
		if n == 10 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("loop did not drain, ran %d", n)
		case <-time.After(5 * time.Millisecond):
		}
	}

	for i, v := range order {
		if v != i {
			t.Fatalf("expected task %d at position %d, got %d", i, i, v)
		}
	}

	cancel()
	<-done
	if err := loop.TryPost(func() {}); err != ErrStopped {
		t.Fatalf("expected ErrStopped after the loop exits, got %v", err)
	}
}
