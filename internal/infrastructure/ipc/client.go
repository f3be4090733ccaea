package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/logging"
	"github.com/bnema/tessellate/internal/protocol"
)

// Client is the consumer end of the socket. It implements
// port.LayoutRequester and feeds everything the producer sends into a
// port.LayoutConsumer.
type Client struct {
	conn net.Conn
	enc  *protocol.Encoder

	closeOnce sync.Once
	closeErr  error
}

// Dial connects to the producer socket at path.
func Dial(ctx context.Context, path string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", entity.ErrProducerUnavailable, path, err)
	}
	return NewClient(conn), nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn, enc: protocol.NewEncoder(conn)}
}

// SendRequest writes one layout request.
func (c *Client) SendRequest(ctx context.Context, req entity.LayoutRequest) error {
	return c.send(ctx, protocol.NewLayoutRequest(req))
}

// Cycle asks the producer to move the strategy of tag.
func (c *Client) Cycle(ctx context.Context, tag entity.TagID, dir protocol.CycleDirection) error {
	return c.send(ctx, protocol.CycleCommand{TagID: uint32(tag), Direction: dir})
}

// ForceLayout asks the producer to start a new round for output on every
// other connected consumer.
func (c *Client) ForceLayout(ctx context.Context, output entity.OutputName) error {
	return c.send(ctx, protocol.ForceLayout{OutputName: string(output)})
}

func (c *Client) send(ctx context.Context, m protocol.Message) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()
	}
	if err := c.enc.Encode(m); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrProducerUnavailable, err)
	}
	return nil
}

// Close shuts the connection. It is safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// Run reads from the producer until the connection ends, handing every
// message to consumer. Malformed lines go to HandleMalformed; losing the
// connection calls ProducerLost once. Run returns nil when ctx ends it.
func (c *Client) Run(ctx context.Context, consumer port.LayoutConsumer) (err error) {
	ctx = logging.WithComponent(ctx, "ipc-client")
	log := logging.FromContext(ctx)
	defer logging.Recover(ctx, "ipc client read loop", &err)

	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	dec := protocol.NewDecoder(c.conn, 0)
	for {
		m, err := dec.Decode()
		if err != nil {
			if protocol.IsMalformed(err) {
				consumer.HandleMalformed(ctx, err)
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			lost := fmt.Errorf("%w: %v", entity.ErrProducerUnavailable, err)
			consumer.ProducerLost(ctx, lost)
			return lost
		}

		if resp, ok, err := protocol.ResponseToEntity(m); ok {
			if err != nil {
				consumer.HandleMalformed(ctx, err)
				continue
			}
			if err := consumer.HandleResponse(ctx, resp); err != nil {
				if errors.Is(err, entity.ErrStaleResponse) {
					log.Debug().Err(err).Msg("ignored stale response")
				} else {
					log.Warn().Err(err).Msg("response rejected")
				}
			}
			continue
		}

		switch msg := m.(type) {
		case protocol.ForceLayout:
			if err := consumer.ForceLayout(ctx, entity.OutputName(msg.OutputName)); err != nil {
				log.Warn().Err(err).Str("output", msg.OutputName).Msg("force layout failed")
			}
		default:
			log.Warn().Str("kind", string(m.Kind())).Msg("unexpected message from producer")
		}
	}
}
