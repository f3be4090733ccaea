package ipc

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/logging"
	"github.com/bnema/tessellate/internal/protocol"
)

// outboxSize bounds the messages queued for one slow consumer.
const outboxSize = 64

// Server exposes a layout producer on a unix socket. Every connected
// consumer may send layout requests and cycle commands; force-layout
// notifications are broadcast to all of them.
type Server struct {
	producer port.LayoutProducer
	cycler   port.LayoutCycler
	maxLine  int

	mu     sync.Mutex
	conns  map[*serverConn]struct{}
	nextID int
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMaxLine caps the size of a received line.
func WithMaxLine(n int) ServerOption {
	return func(s *Server) { s.maxLine = n }
}

// NewServer creates a server. cycler may be nil to ignore cycle commands.
func NewServer(producer port.LayoutProducer, cycler port.LayoutCycler, opts ...ServerOption) *Server {
	s := &Server{
		producer: producer,
		cycler:   cycler,
		conns:    make(map[*serverConn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type serverConn struct {
	id     int
	conn   net.Conn
	outbox chan protocol.Message
}

// Serve accepts connections until ctx is done or the listener fails.
// The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx = logging.WithComponent(ctx, "ipc-server")
	log := logging.FromContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		_ = ln.Close()
		return nil
	})

	log.Info().Str("addr", ln.Addr().String()).Msg("layout producer listening")

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accept: %w", err)
			}

			if uc, ok := conn.(*net.UnixConn); ok {
				if err := checkPeer(uc); err != nil {
					log.Warn().Err(err).Msg("rejected connection")
					_ = conn.Close()
					continue
				}
			}

			sc := s.register(conn)
			g.Go(func() error {
				s.handle(logging.WithPeer(gctx, strconv.Itoa(sc.id)), sc)
				return nil
			})
		}
	})

	return g.Wait()
}

func (s *Server) register(conn net.Conn) *serverConn {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sc := &serverConn{
		id:     s.nextID,
		conn:   conn,
		outbox: make(chan protocol.Message, outboxSize),
	}
	s.conns[sc] = struct{}{}
	return sc
}

func (s *Server) unregister(sc *serverConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, sc)
}

// handle runs the read and write halves of one connection.
func (s *Server) handle(ctx context.Context, sc *serverConn) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("consumer connected")
	defer func() {
		s.unregister(sc)
		_ = sc.conn.Close()
		log.Debug().Msg("consumer disconnected")
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		return sc.conn.Close()
	})

	g.Go(func() (err error) {
		defer logging.Recover(gctx, "ipc write loop", &err)
		enc := protocol.NewEncoder(sc.conn)
		for {
			select {
			case <-gctx.Done():
				return nil
			case m := <-sc.outbox:
				if err := enc.Encode(m); err != nil {
					return err
				}
			}
		}
	})

	g.Go(func() (err error) {
		defer logging.Recover(gctx, "ipc read loop", &err)
		dec := protocol.NewDecoder(sc.conn, s.maxLine)
		for {
			m, err := dec.Decode()
			if err != nil {
				if protocol.IsMalformed(err) {
					log.Warn().Err(err).Msg("dropping malformed message")
					continue
				}
				// Returning an error tears down the writer too.
				return fmt.Errorf("read: %w", err)
			}
			s.dispatch(gctx, sc, m)
		}
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Debug().Err(err).Msg("connection closed")
	}
}

func (s *Server) dispatch(ctx context.Context, sc *serverConn, m protocol.Message) {
	log := logging.FromContext(ctx)

	switch msg := m.(type) {
	case protocol.LayoutRequest:
		req, err := msg.ToEntity()
		if err != nil {
			log.Warn().Err(err).Msg("invalid layout request")
			return
		}
		resp, err := s.producer.Produce(ctx, req)
		if err != nil {
			// The consumer falls back on its own once its timeout fires.
			log.Error().Err(err).
				Str("output", string(req.Output)).
				Uint64("request_id", uint64(req.ID)).
				Msg("failed to produce layout")
			return
		}
		out, err := protocol.NewResponse(resp)
		if err != nil {
			log.Error().Err(err).Msg("failed to encode layout")
			return
		}
		s.enqueue(ctx, sc, out)

	case protocol.CycleCommand:
		if s.cycler == nil {
			log.Debug().Msg("ignoring cycle command")
			return
		}
		tag := entity.TagID(msg.TagID)
		var err error
		if msg.Direction == protocol.CycleBackward {
			err = s.cycler.CycleBackward(ctx, tag)
		} else {
			err = s.cycler.CycleForward(ctx, tag)
		}
		if err != nil {
			log.Warn().Err(err).Uint32("tag", msg.TagID).Msg("cycle failed")
		}

	case protocol.ForceLayout:
		// Either side may ask for a new round; relay to the other consumers.
		output := entity.OutputName(msg.OutputName)
		log.Debug().Str("output", string(output)).Msg("relaying force layout")
		s.broadcast(ctx, protocol.ForceLayout{OutputName: msg.OutputName}, sc)

	default:
		log.Warn().Str("kind", string(m.Kind())).Msg("unexpected message from consumer")
	}
}

func (s *Server) enqueue(ctx context.Context, sc *serverConn, m protocol.Message) {
	select {
	case sc.outbox <- m:
	default:
		logging.FromContext(ctx).Warn().Str("kind", string(m.Kind())).Msg("consumer outbox full, dropping message")
	}
}

// NotifyForceLayout asks every connected consumer to lay out output again.
func (s *Server) NotifyForceLayout(ctx context.Context, output entity.OutputName) error {
	s.broadcast(ctx, protocol.ForceLayout{OutputName: string(output)}, nil)
	return nil
}

// broadcast queues m for every connection except skip.
func (s *Server) broadcast(ctx context.Context, m protocol.Message, skip *serverConn) {
	s.mu.Lock()
	conns := make([]*serverConn, 0, len(s.conns))
	for sc := range s.conns {
		if sc != skip {
			conns = append(conns, sc)
		}
	}
	s.mu.Unlock()

	for _, sc := range conns {
		s.enqueue(ctx, sc, m)
	}
}

// Connections returns the number of connected consumers.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}
