package ipc_test

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tessellate/internal/application/port/mocks"
	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/strategy"
	"github.com/bnema/tessellate/internal/infrastructure/ipc"
	"github.com/bnema/tessellate/internal/logging"
	"github.com/bnema/tessellate/internal/protocol"
)

const waitFor = 2 * time.Second

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := logging.NewFromConfigValues("debug", "console")
	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logger))
	t.Cleanup(cancel)
	return ctx
}

// socketPath stays short enough for sun_path on every platform.
func socketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "tsl")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, ipc.SocketName)
}

func startServer(t *testing.T, ctx context.Context, srv *ipc.Server) string {
	t.Helper()
	path := socketPath(t)
	ln, err := ipc.Listen(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(waitFor):
			t.Error("server did not stop")
		}
	})
	return path
}

func TestServerClient_LayoutRoundTrip(t *testing.T) {
	ctx := testContext(t)

	producer := usecase.NewProduceLayoutUseCase(
		strategy.NewCycle(strategy.Line{Direction: entity.DirectionRow}),
		usecase.ModeTree, nil)
	srv := ipc.NewServer(producer, producer)
	path := startServer(t, ctx, srv)

	client, err := ipc.Dial(ctx, path)
	require.NoError(t, err)
	defer client.Close()

	applied := make(chan []entity.Placement, 1)
	applier := mocks.NewMockGeometryApplier(t)
	applier.EXPECT().Apply(mock.Anything, entity.OutputName("DP-1"), mock.Anything).
		Run(func(_ context.Context, _ entity.OutputName, p []entity.Placement) { applied <- p }).
		Return(nil).Once()

	cfg := usecase.DefaultConsumerConfig()
	cfg.ResponseTimeout = waitFor
	consumer := usecase.NewConsumeLayoutUseCase(client, applier, cfg)
	defer consumer.Close()
	go func() { _ = client.Run(ctx, consumer) }()

	_, err = consumer.RequestLayout(ctx, entity.LayoutNeed{
		Output:  "DP-1",
		Windows: []entity.WindowID{"a", "b"},
		Tags:    []entity.TagID{1},
		Area:    entity.NewRect(0, 0, 100, 50),
	})
	require.NoError(t, err)

	select {
	case got := <-applied:
		assert.Equal(t, []entity.Placement{
			{Window: "a", Rect: entity.NewRect(0, 0, 50, 50)},
			{Window: "b", Rect: entity.NewRect(50, 0, 50, 50)},
		}, got)
	case <-time.After(waitFor):
		t.Fatal("layout was not applied")
	}
}

func TestServer_BroadcastsForceLayout(t *testing.T) {
	ctx := testContext(t)

	srv := ipc.NewServer(mocks.NewMockLayoutProducer(t), nil)
	path := startServer(t, ctx, srv)

	client, err := ipc.Dial(ctx, path)
	require.NoError(t, err)
	defer client.Close()

	forced := make(chan entity.OutputName, 1)
	consumer := mocks.NewMockLayoutConsumer(t)
	consumer.EXPECT().ForceLayout(mock.Anything, entity.OutputName("HDMI-A-1")).
		Run(func(_ context.Context, out entity.OutputName) { forced <- out }).
		Return(nil).Once()
	consumer.EXPECT().ProducerLost(mock.Anything, mock.Anything).Return().Maybe()
	go func() { _ = client.Run(ctx, consumer) }()

	require.Eventually(t, func() bool { return srv.Connections() == 1 }, waitFor, 10*time.Millisecond)
	require.NoError(t, srv.NotifyForceLayout(ctx, "HDMI-A-1"))

	select {
	case out := <-forced:
		assert.Equal(t, entity.OutputName("HDMI-A-1"), out)
	case <-time.After(waitFor):
		t.Fatal("force layout not received")
	}
}

func TestServer_RelaysForceLayoutFromConsumer(t *testing.T) {
	ctx := testContext(t)

	srv := ipc.NewServer(mocks.NewMockLayoutProducer(t), nil)
	path := startServer(t, ctx, srv)

	sender, err := ipc.Dial(ctx, path)
	require.NoError(t, err)
	defer sender.Close()
	receiver, err := ipc.Dial(ctx, path)
	require.NoError(t, err)
	defer receiver.Close()

	// The sender gets nothing back.
	quiet := mocks.NewMockLayoutConsumer(t)
	quiet.EXPECT().ProducerLost(mock.Anything, mock.Anything).Return().Maybe()
	go func() { _ = sender.Run(ctx, quiet) }()

	forced := make(chan entity.OutputName, 1)
	consumer := mocks.NewMockLayoutConsumer(t)
	consumer.EXPECT().ForceLayout(mock.Anything, entity.OutputName("DP-2")).
		Run(func(_ context.Context, out entity.OutputName) { forced <- out }).
		Return(nil).Once()
	consumer.EXPECT().ProducerLost(mock.Anything, mock.Anything).Return().Maybe()
	go func() { _ = receiver.Run(ctx, consumer) }()

	require.Eventually(t, func() bool { return srv.Connections() == 2 }, waitFor, 10*time.Millisecond)
	require.NoError(t, sender.ForceLayout(ctx, "DP-2"))

	select {
	case out := <-forced:
		assert.Equal(t, entity.OutputName("DP-2"), out)
	case <-time.After(waitFor):
		t.Fatal("force layout not relayed")
	}
}

func TestServer_DispatchesCycleCommands(t *testing.T) {
	ctx := testContext(t)

	cycled := make(chan entity.TagID, 1)
	cycler := mocks.NewMockLayoutCycler(t)
	cycler.EXPECT().CycleBackward(mock.Anything, entity.TagID(3)).
		Run(func(_ context.Context, tag entity.TagID) { cycled <- tag }).
		Return(nil).Once()

	srv := ipc.NewServer(mocks.NewMockLayoutProducer(t), cycler)
	path := startServer(t, ctx, srv)

	client, err := ipc.Dial(ctx, path)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Cycle(ctx, 3, protocol.CycleBackward))

	select {
	case tag := <-cycled:
		assert.Equal(t, entity.TagID(3), tag)
	case <-time.After(waitFor):
		t.Fatal("cycle command not dispatched")
	}
}

func TestServer_IgnoresMalformedLines(t *testing.T) {
	ctx := testContext(t)

	produced := make(chan entity.LayoutRequest, 1)
	producer := mocks.NewMockLayoutProducer(t)
	producer.EXPECT().Produce(mock.Anything, mock.Anything).
		Run(func(_ context.Context, req entity.LayoutRequest) { produced <- req }).
		Return(entity.GeometryLayout{RequestID: 9, Output: "DP-1"}, nil).Once()

	srv := ipc.NewServer(producer, nil)
	path := startServer(t, ctx, srv)

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = io.WriteString(conn, "garbage\n"+`{"kind":"layout_request","payload":{"request_id":9,"output_name":"DP-1","window_count":0,"tag_ids":[]}}`+"\n")
	require.NoError(t, err)

	select {
	case req := <-produced:
		assert.Equal(t, entity.RequestID(9), req.ID)
	case <-time.After(waitFor):
		t.Fatal("request after malformed line was not served")
	}

	dec := protocol.NewDecoder(conn, 0)
	m, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, protocol.KindGeometryResponse, m.Kind())
}

func TestClient_ReportsMalformedThenLost(t *testing.T) {
	ctx := testContext(t)
	producerSide, consumerSide := net.Pipe()

	consumer := mocks.NewMockLayoutConsumer(t)
	consumer.EXPECT().HandleMalformed(mock.Anything, mock.MatchedBy(func(err error) bool {
		return protocol.IsMalformed(err)
	})).Return().Once()
	consumer.EXPECT().ProducerLost(mock.Anything, mock.MatchedBy(func(err error) bool {
		return errors.Is(err, entity.ErrProducerUnavailable)
	})).Return().Once()

	client := ipc.NewClient(consumerSide)
	done := make(chan error, 1)
	go func() { done <- client.Run(ctx, consumer) }()

	_, err := io.WriteString(producerSide, "{\"kind\":\"tree_response\",\"payload\":{\"output_name\":\"x\"}}\n")
	require.NoError(t, err)
	require.NoError(t, producerSide.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, entity.ErrProducerUnavailable)
	case <-time.After(waitFor):
		t.Fatal("client did not notice the closed producer")
	}
}

func TestListen_ReplacesStaleSocket(t *testing.T) {
	path := socketPath(t)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	ln, err := ipc.Listen(path)
	require.NoError(t, err)
	defer ln.Close()

	_, err = ipc.Listen(path)
	assert.Error(t, err, "a live socket must not be replaced")
}
