package loopback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tessellate/internal/application/port/mocks"
	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/strategy"
	"github.com/bnema/tessellate/internal/infrastructure/loopback"
	"github.com/bnema/tessellate/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func need(ids ...entity.WindowID) entity.LayoutNeed {
	return entity.LayoutNeed{
		Output:  "DP-1",
		Windows: ids,
		Area:    entity.NewRect(0, 0, 100, 50),
	}
}

func pipeline(t *testing.T, strategies ...strategy.Strategy) (*usecase.ProduceLayoutUseCase, *usecase.ConsumeLayoutUseCase, *loopback.Channel, *loopback.Recorder) {
	t.Helper()
	producer := usecase.NewProduceLayoutUseCase(strategy.NewCycle(strategies...), usecase.ModeTree, nil)
	ch := loopback.New(producer)
	producer.SetNotifier(ch)

	rec := loopback.NewRecorder(nil)
	consumer := usecase.NewConsumeLayoutUseCase(ch, rec, usecase.DefaultConsumerConfig())
	t.Cleanup(consumer.Close)
	ch.Bind(consumer)
	return producer, consumer, ch, rec
}

func TestChannel_RoundTrip(t *testing.T) {
	ctx := testContext()
	_, consumer, _, rec := pipeline(t, strategy.Line{Direction: entity.DirectionRow})

	_, err := consumer.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, err)

	got, ok := rec.Last("DP-1")
	require.True(t, ok)
	assert.Equal(t, []entity.Placement{
		{Window: "a", Rect: entity.NewRect(0, 0, 50, 50)},
		{Window: "b", Rect: entity.NewRect(50, 0, 50, 50)},
	}, got)

	state, ok := consumer.Snapshot("DP-1")
	require.True(t, ok)
	assert.Equal(t, entity.PhaseIdle, state.Phase)
}

func TestChannel_CycleForcesNewRound(t *testing.T) {
	ctx := testContext()
	producer, consumer, _, rec := pipeline(t,
		strategy.Line{Direction: entity.DirectionRow},
		strategy.Line{Direction: entity.DirectionColumn},
	)

	_, err := consumer.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, err)
	require.Equal(t, 1, rec.Applied())

	require.NoError(t, producer.CycleForward(ctx, usecase.UntaggedContext))

	got, ok := rec.Last("DP-1")
	require.True(t, ok)
	assert.Equal(t, 2, rec.Applied())
	assert.Equal(t, []entity.Placement{
		{Window: "a", Rect: entity.NewRect(0, 0, 100, 25)},
		{Window: "b", Rect: entity.NewRect(0, 25, 100, 25)},
	}, got)
}

func TestChannel_ClosedFallsBack(t *testing.T) {
	ctx := testContext()
	_, consumer, ch, rec := pipeline(t, strategy.Line{Direction: entity.DirectionRow})
	require.NoError(t, ch.Close())

	_, err := consumer.RequestLayout(ctx, need("a", "b"))
	require.ErrorIs(t, err, entity.ErrProducerUnavailable)

	got, ok := rec.Last("DP-1")
	require.True(t, ok)
	assert.Len(t, got, 2)
}

func TestChannel_ProduceError(t *testing.T) {
	ctx := testContext()
	producer := mocks.NewMockLayoutProducer(t)
	producer.EXPECT().Produce(mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	ch := loopback.New(producer)
	ch.Bind(mocks.NewMockLayoutConsumer(t))

	err := ch.SendRequest(ctx, entity.LayoutRequest{ID: 1, Output: "DP-1", WindowCount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestChannel_UnboundIsUnavailable(t *testing.T) {
	ch := loopback.New(mocks.NewMockLayoutProducer(t))
	err := ch.SendRequest(testContext(), entity.LayoutRequest{ID: 1, Output: "DP-1"})
	require.ErrorIs(t, err, entity.ErrProducerUnavailable)
	assert.NoError(t, ch.NotifyForceLayout(testContext(), "DP-1"))
}

func TestRecorder_OnApply(t *testing.T) {
	var seen []entity.OutputName
	rec := loopback.NewRecorder(func(out entity.OutputName, _ []entity.Placement) {
		seen = append(seen, out)
	})
	require.NoError(t, rec.Apply(testContext(), "HDMI-A-1", nil))
	assert.Equal(t, []entity.OutputName{"HDMI-A-1"}, seen)

	_, ok := rec.Last("DP-1")
	assert.False(t, ok)
}
