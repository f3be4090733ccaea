package strategy

import (
	"sync"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// NameCycle is the name reported by Cycle.
const NameCycle = "cycle"

// Cycle selects one of an ordered list of strategies per tag. Every tag starts
// on the first strategy and moves with CycleForward and CycleBackward, wrapping
// at both ends. The index of a tag is never reset.
//
// Layout delegates to the strategy of the active tag. Without an active tag it
// returns an empty tree.
type Cycle struct {
	mu         sync.Mutex
	strategies []Strategy
	index      map[entity.TagID]int
	active     entity.TagID
	hasActive  bool
}

// NewCycle creates a cycle over the given strategies.
func NewCycle(strategies ...Strategy) *Cycle {
	return &Cycle{
		strategies: append([]Strategy(nil), strategies...),
		index:      make(map[entity.TagID]int),
	}
}

// Name implements Strategy.
func (*Cycle) Name() string { return NameCycle }

// Len returns the number of strategies in the cycle.
func (c *Cycle) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.strategies)
}

// Names returns the strategy names in cycle order.
func (c *Cycle) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Current returns the strategy selected for tag, or nil for an empty cycle.
func (c *Cycle) Current(tag entity.TagID) Strategy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked(tag)
}

// Index returns the position of the strategy selected for tag.
func (c *Cycle) Index(tag entity.TagID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index[tag]
}

// CycleForward selects the next strategy for tag and returns it.
func (c *Cycle) CycleForward(tag entity.TagID) Strategy {
	return c.step(tag, 1)
}

// CycleBackward selects the previous strategy for tag and returns it.
func (c *Cycle) CycleBackward(tag entity.TagID) Strategy {
	return c.step(tag, -1)
}

func (c *Cycle) step(tag entity.TagID, delta int) Strategy {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.strategies)
	if n == 0 {
		return nil
	}
	c.index[tag] = ((c.index[tag]+delta)%n + n) % n
	return c.strategies[c.index[tag]]
}

// SetActiveTag sets the tag Layout delegates for.
func (c *Cycle) SetActiveTag(tag entity.TagID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = tag
	c.hasActive = true
}

// ClearActiveTag removes the tag context.
func (c *Cycle) ClearActiveTag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasActive = false
}

// ActiveTag returns the tag context, if any.
func (c *Cycle) ActiveTag() (entity.TagID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.hasActive
}

// Layout implements Strategy.
func (c *Cycle) Layout(windowCount int) *entity.LayoutNode {
	c.mu.Lock()
	if !c.hasActive {
		c.mu.Unlock()
		return entity.EmptyTree()
	}
	s := c.currentLocked(c.active)
	c.mu.Unlock()
	if s == nil {
		return entity.EmptyTree()
	}
	return s.Layout(windowCount)
}

// LayoutFor lays out windowCount windows with the strategy selected for tag.
// The active tag is left untouched.
func (c *Cycle) LayoutFor(tag entity.TagID, windowCount int) (*entity.LayoutNode, Strategy) {
	s := c.Current(tag)
	if s == nil {
		return entity.EmptyTree(), nil
	}
	return s.Layout(windowCount), s
}

// Replace swaps the strategy list, for example after a configuration reload.
// Tag indices are kept and wrapped into the new range.
func (c *Cycle) Replace(strategies ...Strategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategies = append([]Strategy(nil), strategies...)
	n := len(c.strategies)
	for tag, i := range c.index {
		if n == 0 {
			c.index[tag] = 0
			continue
		}
		c.index[tag] = i % n
	}
}

func (c *Cycle) currentLocked(tag entity.TagID) Strategy {
	if len(c.strategies) == 0 {
		return nil
	}
	return c.strategies[c.index[tag]]
}
