package loopback

import (
	"context"
	"slices"
	"sync"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// Recorder is a GeometryApplier that keeps the last placements applied to
// each output instead of moving real windows.
type Recorder struct {
	mu      sync.Mutex
	applied map[entity.OutputName][]entity.Placement
	count   int
	onApply func(entity.OutputName, []entity.Placement)
}

// NewRecorder creates a recorder. onApply, if set, is called after each
// apply with a copy of the placements. It must not call back into the
// consumer.
func NewRecorder(onApply func(entity.OutputName, []entity.Placement)) *Recorder {
	return &Recorder{
		applied: make(map[entity.OutputName][]entity.Placement),
		onApply: onApply,
	}
}

// Apply implements port.GeometryApplier.
func (r *Recorder) Apply(_ context.Context, output entity.OutputName, placements []entity.Placement) error {
	r.mu.Lock()
	r.applied[output] = slices.Clone(placements)
	r.count++
	r.mu.Unlock()

	if r.onApply != nil {
		r.onApply(output, slices.Clone(placements))
	}
	return nil
}

// Last returns the placements last applied to output.
func (r *Recorder) Last(output entity.OutputName) ([]entity.Placement, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.applied[output]
	return slices.Clone(p), ok
}

// Applied returns how many applies happened so far.
func (r *Recorder) Applied() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
