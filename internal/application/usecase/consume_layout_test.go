package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tessellate/internal/application/port/mocks"
	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/strategy"
)

var area = rect(0, 0, 200, 100)

func need(ids ...string) entity.LayoutNeed {
	return entity.LayoutNeed{Output: "DP-1", Windows: windows(ids...), Tags: []entity.TagID{1}, Area: area}
}

func masterStackTree(n int) *entity.LayoutNode {
	return strategy.MasterStack{MasterFactor: 0.5, MasterSide: strategy.SideLeft, MasterCount: 1}.Layout(n)
}

// noTimeout keeps the response timer out of the way of tests that answer
// synchronously.
func noTimeout() usecase.ConsumerConfig {
	cfg := usecase.DefaultConsumerConfig()
	cfg.ResponseTimeout = time.Hour
	return cfg
}

func hasID(id entity.RequestID) interface{} {
	return mock.MatchedBy(func(req entity.LayoutRequest) bool { return req.ID == id })
}

func TestConsumeLayoutUseCase_AppliesTreeResponse(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, noTimeout())

	requester.EXPECT().SendRequest(ctx, mock.MatchedBy(func(req entity.LayoutRequest) bool {
		return req.ID == 1 && req.Output == "DP-1" && req.WindowCount == 3 &&
			assert.ObjectsAreEqual([]entity.TagID{1}, req.Tags)
	})).Return(nil)

	id, err := uc.RequestLayout(ctx, need("a", "b", "c"))
	require.NoError(t, err)

	snap, ok := uc.Snapshot("DP-1")
	require.True(t, ok)
	assert.Equal(t, entity.PhaseAwaitingResponse, snap.Phase)

	want := []entity.Placement{
		{Window: "a", Rect: rect(0, 0, 100, 100)},
		{Window: "b", Rect: rect(100, 0, 100, 50)},
		{Window: "c", Rect: rect(100, 50, 100, 50)},
	}
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), want).Return(nil)

	err = uc.HandleResponse(ctx, entity.TreeLayout{RequestID: id, Output: "DP-1", TreeID: "t1", Root: masterStackTree(3)})
	require.NoError(t, err)

	snap, _ = uc.Snapshot("DP-1")
	assert.Equal(t, entity.PhaseIdle, snap.Phase)
	assert.Equal(t, want, snap.LastGood)
	assert.Equal(t, id, snap.LastGoodID)
}

func TestConsumeLayoutUseCase_StaleResponseChangesNothing(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, noTimeout())

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil).Times(2)

	first, err := uc.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, err)
	second, err := uc.RequestLayout(ctx, need("a", "b", "c"))
	require.NoError(t, err)

	err = uc.HandleResponse(ctx, entity.GeometryLayout{
		RequestID: first, Output: "DP-1", Geometries: []entity.Rect{rect(0, 0, 100, 100), rect(100, 0, 100, 100)},
	})
	assert.ErrorIs(t, err, entity.ErrStaleResponse)

	snap, _ := uc.Snapshot("DP-1")
	assert.Empty(t, snap.LastGood)
	assert.Equal(t, entity.PhaseAwaitingResponse, snap.Phase)
	assert.Equal(t, second, snap.Pending)

	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.Anything).Return(nil).Once()
	require.NoError(t, uc.HandleResponse(ctx, entity.TreeLayout{RequestID: second, Output: "DP-1", Root: masterStackTree(3)}))

	// A duplicate of an answered request is stale too.
	err = uc.HandleResponse(ctx, entity.TreeLayout{RequestID: second, Output: "DP-1", Root: masterStackTree(3)})
	assert.ErrorIs(t, err, entity.ErrStaleResponse)
}

func TestConsumeLayoutUseCase_UnknownOutputIsStale(t *testing.T) {
	uc := usecase.NewConsumeLayoutUseCase(mocks.NewMockLayoutRequester(t), mocks.NewMockGeometryApplier(t), noTimeout())
	err := uc.HandleResponse(testContext(), entity.GeometryLayout{RequestID: 1, Output: "nowhere"})
	assert.ErrorIs(t, err, entity.ErrStaleResponse)
}

func TestConsumeLayoutUseCase_ContractViolationKeepsLastGood(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, noTimeout())

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil)
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.Anything).Return(nil).Once()

	id, _ := uc.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, uc.HandleResponse(ctx, entity.GeometryLayout{
		RequestID: id, Output: "DP-1", Geometries: []entity.Rect{rect(0, 0, 100, 100), rect(100, 0, 100, 100)},
	}))
	before, _ := uc.Snapshot("DP-1")

	id, _ = uc.RequestLayout(ctx, need("a", "b"))
	err := uc.HandleResponse(ctx, entity.TreeLayout{RequestID: id, Output: "DP-1", Root: masterStackTree(5)})
	assert.ErrorIs(t, err, entity.ErrStrategyContract)

	after, _ := uc.Snapshot("DP-1")
	assert.Equal(t, before.LastGood, after.LastGood)
	assert.Equal(t, entity.PhaseIdle, after.Phase)
}

func TestConsumeLayoutUseCase_ContractViolationWithNewWindowFallsBack(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, noTimeout())

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil)
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.MatchedBy(func(p []entity.Placement) bool {
		return len(p) == 3 && p[0].Window == "a" && p[2].Window == "c"
	})).Return(nil).Once()

	id, _ := uc.RequestLayout(ctx, need("a", "b", "c"))
	err := uc.HandleResponse(ctx, entity.GeometryLayout{RequestID: id, Output: "DP-1", Geometries: []entity.Rect{rect(0, 0, 1, 1)}})
	assert.ErrorIs(t, err, entity.ErrStrategyContract)

	snap, _ := uc.Snapshot("DP-1")
	assert.Len(t, snap.LastGood, 3)
}

func TestConsumeLayoutUseCase_ApplyFailureIsNotRecorded(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, noTimeout())

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil)
	boom := errors.New("surface gone")
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.Anything).Return(boom)

	id, _ := uc.RequestLayout(ctx, need("a"))
	err := uc.HandleResponse(ctx, entity.TreeLayout{RequestID: id, Output: "DP-1", Root: masterStackTree(1)})
	assert.ErrorIs(t, err, boom)

	snap, _ := uc.Snapshot("DP-1")
	assert.Empty(t, snap.LastGood)
	assert.Equal(t, entity.PhaseIdle, snap.Phase)
}

func TestConsumeLayoutUseCase_TimeoutKeepsCoveringLayout(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	cfg := usecase.DefaultConsumerConfig()
	cfg.ResponseTimeout = 20 * time.Millisecond
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, cfg)
	defer uc.Close()

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil).Times(2)
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.Anything).Return(nil).Once()

	id, _ := uc.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, uc.HandleResponse(ctx, entity.TreeLayout{RequestID: id, Output: "DP-1", Root: masterStackTree(2)}))

	// Same windows, reordered: the last layout still covers them.
	_, err := uc.RequestLayout(ctx, need("b", "a"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, _ := uc.Snapshot("DP-1")
		return snap.Phase == entity.PhaseIdle
	}, time.Second, 5*time.Millisecond)
}

func TestConsumeLayoutUseCase_TimeoutWithNewWindowAppliesFallback(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	cfg := usecase.DefaultConsumerConfig()
	cfg.ResponseTimeout = 20 * time.Millisecond
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, cfg)
	defer uc.Close()

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil)

	var applied atomic.Int32
	applier.EXPECT().Apply(mock.Anything, entity.OutputName("DP-1"), mock.MatchedBy(func(p []entity.Placement) bool {
		return len(p) == 3
	})).Run(func(context.Context, entity.OutputName, []entity.Placement) { applied.Add(1) }).Return(nil).Once()

	_, err := uc.RequestLayout(ctx, need("a", "b", "c"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return applied.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestConsumeLayoutUseCase_ZeroTimeoutStillFallsBack(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	cfg := usecase.DefaultConsumerConfig()
	cfg.ResponseTimeout = 0
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, cfg)
	defer uc.Close()

	// The producer takes the request and never answers.
	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil)

	var applied atomic.Int32
	applier.EXPECT().Apply(mock.Anything, entity.OutputName("DP-1"), mock.MatchedBy(func(p []entity.Placement) bool {
		return len(p) == 2
	})).Run(func(context.Context, entity.OutputName, []entity.Placement) { applied.Add(1) }).Return(nil).Once()

	_, err := uc.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return applied.Load() == 1 }, 4*usecase.DefaultResponseTimeout, 5*time.Millisecond)
	snap, _ := uc.Snapshot("DP-1")
	assert.NotEqual(t, entity.PhaseAwaitingResponse, snap.Phase)
	assert.Len(t, snap.LastGood, 2)
}

func TestConsumeLayoutUseCase_LateResponseAfterTimeoutIsStale(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	cfg := usecase.DefaultConsumerConfig()
	cfg.ResponseTimeout = 10 * time.Millisecond
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, cfg)
	defer uc.Close()

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil)

	// No windows are trivially covered, so the timeout applies nothing.
	id, _ := uc.RequestLayout(ctx, need())
	require.Eventually(t, func() bool {
		snap, _ := uc.Snapshot("DP-1")
		return snap.Phase == entity.PhaseIdle
	}, time.Second, 5*time.Millisecond)

	err := uc.HandleResponse(ctx, entity.TreeLayout{RequestID: id, Output: "DP-1", Root: entity.EmptyTree()})
	assert.ErrorIs(t, err, entity.ErrStaleResponse)
}

func TestConsumeLayoutUseCase_SendFailureFallsBack(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, noTimeout())

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(errors.New("broken pipe"))
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.Anything).Return(nil).Once()

	_, err := uc.RequestLayout(ctx, need("a", "b"))
	assert.ErrorIs(t, err, entity.ErrProducerUnavailable)

	snap, _ := uc.Snapshot("DP-1")
	assert.Len(t, snap.LastGood, 2)
}

func TestConsumeLayoutUseCase_WithoutChannelFallsBack(t *testing.T) {
	ctx := testContext()
	applier := mocks.NewMockGeometryApplier(t)
	uc := usecase.NewConsumeLayoutUseCase(nil, applier, noTimeout())

	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.Anything).Return(nil).Once()

	_, err := uc.RequestLayout(ctx, need("a"))
	assert.ErrorIs(t, err, entity.ErrProducerUnavailable)

	// Still covered: nothing new is applied.
	_, err = uc.RequestLayout(ctx, need("a"))
	assert.ErrorIs(t, err, entity.ErrProducerUnavailable)
}

func TestConsumeLayoutUseCase_RepeatedMalformedClosesChannel(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	cfg := noTimeout()
	cfg.MaxMalformed = 2
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, cfg)

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil).Once()
	_, err := uc.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, err)

	uc.HandleMalformed(ctx, entity.ErrMalformedMessage)

	requester.EXPECT().Close().Return(nil).Once()
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.MatchedBy(func(p []entity.Placement) bool {
		return len(p) == 2
	})).Return(nil).Once()
	uc.HandleMalformed(ctx, entity.ErrMalformedMessage)

	// Further garbage does not close again.
	uc.HandleMalformed(ctx, entity.ErrMalformedMessage)

	snap, _ := uc.Snapshot("DP-1")
	assert.Equal(t, entity.PhaseIdle, snap.Phase)
}

func TestConsumeLayoutUseCase_GoodResponseResetsMalformedCount(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	cfg := noTimeout()
	cfg.MaxMalformed = 2
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, cfg)

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil)
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.Anything).Return(nil)

	id, _ := uc.RequestLayout(ctx, need("a"))
	uc.HandleMalformed(ctx, entity.ErrMalformedMessage)
	require.NoError(t, uc.HandleResponse(ctx, entity.TreeLayout{RequestID: id, Output: "DP-1", Root: masterStackTree(1)}))
	uc.HandleMalformed(ctx, entity.ErrMalformedMessage)
	// Close was never expected: the mock fails the test if it is called.
}

func TestConsumeLayoutUseCase_ProducerLost(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	applier := mocks.NewMockGeometryApplier(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, applier, noTimeout())

	requester.EXPECT().SendRequest(ctx, mock.Anything).Return(nil).Once()
	applier.EXPECT().Apply(ctx, entity.OutputName("DP-1"), mock.Anything).Return(nil).Once()

	_, err := uc.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, err)
	uc.ProducerLost(ctx, errors.New("eof"))

	snap, _ := uc.Snapshot("DP-1")
	assert.Len(t, snap.LastGood, 2)

	// Detached until a new channel is attached.
	_, err = uc.RequestLayout(ctx, need("a", "b"))
	assert.ErrorIs(t, err, entity.ErrProducerUnavailable)

	again := mocks.NewMockLayoutRequester(t)
	again.EXPECT().SendRequest(ctx, mock.Anything).Return(nil).Once()
	uc.Attach(again)
	_, err = uc.RequestLayout(ctx, need("a", "b"))
	assert.NoError(t, err)
}

func TestConsumeLayoutUseCase_ForceLayoutReissuesLastNeed(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, mocks.NewMockGeometryApplier(t), noTimeout())

	requester.EXPECT().SendRequest(ctx, hasID(1)).Return(nil).Once()
	requester.EXPECT().SendRequest(ctx, mock.MatchedBy(func(req entity.LayoutRequest) bool {
		return req.ID == 2 && req.WindowCount == 2 && req.Area == area
	})).Return(nil).Once()

	_, err := uc.RequestLayout(ctx, need("a", "b"))
	require.NoError(t, err)
	require.NoError(t, uc.ForceLayout(ctx, "DP-1"))

	// Unknown outputs are ignored.
	require.NoError(t, uc.ForceLayout(ctx, "HDMI-A-1"))
}

func TestLayoutScheduler_CoalescesBursts(t *testing.T) {
	ctx := testContext()
	requester := mocks.NewMockLayoutRequester(t)
	uc := usecase.NewConsumeLayoutUseCase(requester, mocks.NewMockGeometryApplier(t), noTimeout())

	var queue []func()
	scheduler := usecase.NewLayoutScheduler(ctx, func(fn func()) { queue = append(queue, fn) }, uc)
	defer scheduler.Stop()

	requester.EXPECT().SendRequest(ctx, mock.MatchedBy(func(req entity.LayoutRequest) bool {
		return req.WindowCount == 3
	})).Return(nil).Once()

	scheduler.Schedule(need("a"))
	scheduler.Schedule(need("a", "b"))
	scheduler.Schedule(need("a", "b", "c"))

	require.Len(t, queue, 1)
	queue[0]()
}
