package port

import (
	"context"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// LayoutRequester carries layout requests from the consumer to a producer.
// The channel is long-lived; responses come back asynchronously.
type LayoutRequester interface {
	// SendRequest delivers a request. An error means the producer is
	// unreachable right now.
	SendRequest(ctx context.Context, req entity.LayoutRequest) error
	// Close tears the channel down.
	Close() error
}

// GeometryApplier moves real windows. Apply is atomic: either every
// placement is applied or none is.
type GeometryApplier interface {
	Apply(ctx context.Context, output entity.OutputName, placements []entity.Placement) error
}

// ForceNotifier asks consumers to start a new layout round for an output.
type ForceNotifier interface {
	NotifyForceLayout(ctx context.Context, output entity.OutputName) error
}

// LayoutProducer answers layout requests.
type LayoutProducer interface {
	Produce(ctx context.Context, req entity.LayoutRequest) (entity.LayoutResponse, error)
}

// LayoutCycler moves the strategy selection of a tag.
type LayoutCycler interface {
	CycleForward(ctx context.Context, tag entity.TagID) error
	CycleBackward(ctx context.Context, tag entity.TagID) error
}

// LayoutConsumer receives what a producer sends back.
type LayoutConsumer interface {
	HandleResponse(ctx context.Context, resp entity.LayoutResponse) error
	HandleMalformed(ctx context.Context, err error)
	ForceLayout(ctx context.Context, output entity.OutputName) error
	// ProducerLost is called once the channel to the producer is gone.
	ProducerLost(ctx context.Context, err error)
}
