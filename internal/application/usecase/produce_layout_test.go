package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tessellate/internal/application/port/mocks"
	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/strategy"
	"github.com/bnema/tessellate/internal/infrastructure/cache"
)

func lineFairCycle() *strategy.Cycle {
	return strategy.NewCycle(strategy.Line{Direction: entity.DirectionRow}, strategy.Fair{})
}

func TestProduceLayoutUseCase_TreeMode(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewProduceLayoutUseCase(lineFairCycle(), usecase.ModeTree, nil)

	resp, err := uc.Produce(ctx, entity.LayoutRequest{ID: 7, Output: "DP-1", WindowCount: 3, Tags: []entity.TagID{1}})
	require.NoError(t, err)

	tree, ok := resp.(entity.TreeLayout)
	require.True(t, ok)
	assert.Equal(t, entity.RequestID(7), tree.RequestID)
	assert.Equal(t, entity.OutputName("DP-1"), tree.Output)
	assert.Equal(t, strategy.NameLine, tree.Root.Label)
	assert.Equal(t, 3, tree.Root.LeafCount())
	_, err = uuid.Parse(tree.TreeID)
	assert.NoError(t, err)
}

func TestProduceLayoutUseCase_TreeIDsAreUnique(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewProduceLayoutUseCase(lineFairCycle(), usecase.ModeTree, nil)

	a, err := uc.Produce(ctx, entity.LayoutRequest{ID: 1, Output: "DP-1", WindowCount: 1})
	require.NoError(t, err)
	b, err := uc.Produce(ctx, entity.LayoutRequest{ID: 2, Output: "DP-1", WindowCount: 1})
	require.NoError(t, err)
	assert.NotEqual(t, a.(entity.TreeLayout).TreeID, b.(entity.TreeLayout).TreeID)
}

func TestProduceLayoutUseCase_GeometryMode(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewProduceLayoutUseCase(lineFairCycle(), usecase.ModeGeometry, nil)

	resp, err := uc.Produce(ctx, entity.LayoutRequest{
		ID: 3, Output: "DP-1", WindowCount: 3, Tags: []entity.TagID{1}, Area: rect(0, 0, 300, 100),
	})
	require.NoError(t, err)

	geo, ok := resp.(entity.GeometryLayout)
	require.True(t, ok)
	assert.Equal(t, []entity.Rect{rect(0, 0, 100, 100), rect(100, 0, 100, 100), rect(200, 0, 100, 100)}, geo.Geometries)
}

func TestProduceLayoutUseCase_GeometryCache(t *testing.T) {
	ctx := testContext()
	lru := cache.NewLRU[usecase.GeometryKey, []entity.Rect](8)
	uc := usecase.NewProduceLayoutUseCase(lineFairCycle(), usecase.ModeGeometry, nil)
	uc.SetGeometryCache(lru)

	req := entity.LayoutRequest{ID: 1, Output: "DP-1", WindowCount: 2, Area: rect(0, 0, 200, 100)}
	first, err := uc.Produce(ctx, req)
	require.NoError(t, err)
	first.(entity.GeometryLayout).Geometries[0].Width = 1

	req.ID = 2
	second, err := uc.Produce(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{rect(0, 0, 100, 100), rect(100, 0, 100, 100)}, second.(entity.GeometryLayout).Geometries,
		"callers must not corrupt cached answers")

	hits, misses := lru.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	// Same name, new parameters: the cache must not answer with the old shape.
	require.NoError(t, uc.Reload(ctx, []strategy.Strategy{strategy.Line{Direction: entity.DirectionColumn}}, usecase.ModeGeometry))
	req.ID = 3
	third, err := uc.Produce(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{rect(0, 0, 200, 50), rect(0, 50, 200, 50)}, third.(entity.GeometryLayout).Geometries)
}

func TestProduceLayoutUseCase_UsesLowestTag(t *testing.T) {
	ctx := testContext()
	cycle := lineFairCycle()
	cycle.CycleForward(2)
	uc := usecase.NewProduceLayoutUseCase(cycle, usecase.ModeTree, nil)

	resp, err := uc.Produce(ctx, entity.LayoutRequest{ID: 1, Output: "DP-1", WindowCount: 4, Tags: []entity.TagID{5, 2}})
	require.NoError(t, err)
	assert.Equal(t, strategy.NameFair, resp.(entity.TreeLayout).Root.Label)

	resp, err = uc.Produce(ctx, entity.LayoutRequest{ID: 2, Output: "DP-1", WindowCount: 4})
	require.NoError(t, err)
	assert.Equal(t, strategy.NameLine, resp.(entity.TreeLayout).Root.Label, "untagged requests use their own context")
}

func TestProduceLayoutUseCase_RejectsNegativeCount(t *testing.T) {
	uc := usecase.NewProduceLayoutUseCase(lineFairCycle(), usecase.ModeTree, nil)
	_, err := uc.Produce(testContext(), entity.LayoutRequest{ID: 1, Output: "DP-1", WindowCount: -1})
	assert.ErrorIs(t, err, entity.ErrMalformedMessage)
}

func TestProduceLayoutUseCase_CycleNotifiesOutputsOnTag(t *testing.T) {
	ctx := testContext()
	notifier := mocks.NewMockForceNotifier(t)
	uc := usecase.NewProduceLayoutUseCase(lineFairCycle(), usecase.ModeTree, notifier)

	_, err := uc.Produce(ctx, entity.LayoutRequest{ID: 1, Output: "DP-1", WindowCount: 2, Tags: []entity.TagID{1}})
	require.NoError(t, err)
	_, err = uc.Produce(ctx, entity.LayoutRequest{ID: 2, Output: "HDMI-A-1", WindowCount: 2, Tags: []entity.TagID{2}})
	require.NoError(t, err)

	notifier.EXPECT().NotifyForceLayout(ctx, entity.OutputName("DP-1")).Return(nil).Once()

	require.NoError(t, uc.CycleForward(ctx, 1))
	assert.Equal(t, strategy.NameFair, uc.CurrentStrategy(1))
	assert.Equal(t, strategy.NameLine, uc.CurrentStrategy(2))
}

func TestProduceLayoutUseCase_CycleBackwardReportsNotifyErrors(t *testing.T) {
	ctx := testContext()
	notifier := mocks.NewMockForceNotifier(t)
	uc := usecase.NewProduceLayoutUseCase(lineFairCycle(), usecase.ModeTree, notifier)

	_, err := uc.Produce(ctx, entity.LayoutRequest{ID: 1, Output: "DP-1", WindowCount: 2, Tags: []entity.TagID{3}})
	require.NoError(t, err)

	boom := errors.New("socket closed")
	notifier.EXPECT().NotifyForceLayout(ctx, entity.OutputName("DP-1")).Return(boom)

	err = uc.CycleBackward(ctx, 3)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, strategy.NameFair, uc.CurrentStrategy(3))
}

func TestProduceLayoutUseCase_ReloadNotifiesEveryOutput(t *testing.T) {
	ctx := testContext()
	notifier := mocks.NewMockForceNotifier(t)
	uc := usecase.NewProduceLayoutUseCase(lineFairCycle(), usecase.ModeTree, notifier)

	for i, out := range []entity.OutputName{"HDMI-A-1", "DP-1"} {
		_, err := uc.Produce(ctx, entity.LayoutRequest{ID: entity.RequestID(i + 1), Output: out, WindowCount: 1, Tags: []entity.TagID{entity.TagID(i)}})
		require.NoError(t, err)
	}

	var order []entity.OutputName
	notifier.EXPECT().NotifyForceLayout(ctx, entity.OutputName("DP-1")).
		Run(func(_ context.Context, out entity.OutputName) { order = append(order, out) }).Return(nil)
	notifier.EXPECT().NotifyForceLayout(ctx, entity.OutputName("HDMI-A-1")).
		Run(func(_ context.Context, out entity.OutputName) { order = append(order, out) }).Return(nil)

	require.NoError(t, uc.Reload(ctx, []strategy.Strategy{strategy.Spiral{}}, usecase.ModeGeometry))
	assert.Equal(t, []entity.OutputName{"DP-1", "HDMI-A-1"}, order)
	assert.Equal(t, strategy.NameSpiral, uc.CurrentStrategy(0))
}

func TestParseResponseMode(t *testing.T) {
	mode, err := usecase.ParseResponseMode("")
	require.NoError(t, err)
	assert.Equal(t, usecase.ModeTree, mode)

	mode, err = usecase.ParseResponseMode("geometry")
	require.NoError(t, err)
	assert.Equal(t, usecase.ModeGeometry, mode)

	_, err = usecase.ParseResponseMode("pixels")
	assert.Error(t, err)
}
