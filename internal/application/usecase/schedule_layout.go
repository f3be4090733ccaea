package usecase

import (
	"context"

	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/logging"
	"github.com/bnema/tessellate/internal/mainloop"
)

// LayoutScheduler collapses bursts of layout needs per output onto the host
// loop. Only the latest need posted before the loop gets to it is requested.
type LayoutScheduler struct {
	coalescer *mainloop.Coalescer[entity.OutputName, entity.LayoutNeed]
}

// NewLayoutScheduler creates a scheduler that requests layouts from consumer
// on the loop reached through post.
func NewLayoutScheduler(ctx context.Context, post func(func()), consumer *ConsumeLayoutUseCase) *LayoutScheduler {
	handle := func(_ entity.OutputName, need entity.LayoutNeed) {
		if _, err := consumer.RequestLayout(ctx, need); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("output", string(need.Output)).Msg("scheduled layout failed")
		}
	}
	return &LayoutScheduler{coalescer: mainloop.NewCoalescer(post, handle)}
}

// Schedule records need as the latest for its output.
func (s *LayoutScheduler) Schedule(need entity.LayoutNeed) {
	s.coalescer.Post(need.Output, need)
}

// Stop drops pending needs.
func (s *LayoutScheduler) Stop() {
	s.coalescer.Destroy()
}
