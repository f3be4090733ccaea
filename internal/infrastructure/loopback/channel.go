// Package loopback connects a layout consumer to a producer living in the
// same process, without a socket in between.
package loopback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/logging"
)

// Channel delivers requests straight to a producer and hands the answers
// back to the bound consumer before SendRequest returns. It also forwards
// force-layout notifications from the producer to the consumer.
type Channel struct {
	producer port.LayoutProducer

	mu       sync.Mutex
	consumer port.LayoutConsumer
	closed   bool
}

// New creates a channel to producer. Bind a consumer before sending.
func New(producer port.LayoutProducer) *Channel {
	return &Channel{producer: producer}
}

// Bind sets the consumer that receives responses and notifications.
func (c *Channel) Bind(consumer port.LayoutConsumer) {
	c.mu.Lock()
	c.consumer = consumer
	c.mu.Unlock()
}

func (c *Channel) target() (port.LayoutConsumer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("%w: loopback closed", entity.ErrProducerUnavailable)
	}
	if c.consumer == nil {
		return nil, fmt.Errorf("%w: no consumer bound", entity.ErrProducerUnavailable)
	}
	return c.consumer, nil
}

// SendRequest implements port.LayoutRequester.
func (c *Channel) SendRequest(ctx context.Context, req entity.LayoutRequest) error {
	consumer, err := c.target()
	if err != nil {
		return err
	}

	resp, err := c.producer.Produce(ctx, req)
	if err != nil {
		return fmt.Errorf("produce request %d: %w", req.ID, err)
	}
	if err := consumer.HandleResponse(ctx, resp); err != nil {
		if errors.Is(err, entity.ErrStaleResponse) {
			logging.FromContext(ctx).Debug().Err(err).Msg("stale loopback response")
			return nil
		}
		logging.FromContext(ctx).Warn().Err(err).Str("output", string(req.Output)).Msg("loopback response rejected")
	}
	return nil
}

// NotifyForceLayout implements port.ForceNotifier.
func (c *Channel) NotifyForceLayout(ctx context.Context, output entity.OutputName) error {
	consumer, err := c.target()
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("output", string(output)).Msg("force layout dropped")
		return nil
	}
	return consumer.ForceLayout(ctx, output)
}

// Close implements port.LayoutRequester. Later requests fail with
// ErrProducerUnavailable.
func (c *Channel) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}
