package model_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/cli/model"
	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/strategy"
	"github.com/bnema/tessellate/internal/infrastructure/loopback"
	"github.com/bnema/tessellate/internal/logging"
)

func newPreview(t *testing.T, windows int) model.PreviewModel {
	t.Helper()
	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("error", "console"))

	producer := usecase.NewProduceLayoutUseCase(strategy.NewCycle(
		strategy.Line{Direction: entity.DirectionRow},
		strategy.Fair{Direction: entity.DirectionColumn},
	), usecase.ModeTree, nil)
	ch := loopback.New(producer)
	producer.SetNotifier(ch)
	rec := loopback.NewRecorder(nil)
	consumer := usecase.NewConsumeLayoutUseCase(ch, rec, usecase.DefaultConsumerConfig())
	t.Cleanup(consumer.Close)
	ch.Bind(consumer)

	m := model.NewPreviewModel(ctx, styles.NewTheme(), producer, consumer, rec, entity.NewRect(0, 0, 120, 60), windows)
	return send(t, m, m.Init()())
}

func send(t *testing.T, m model.PreviewModel, msg tea.Msg) model.PreviewModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(model.PreviewModel)
	require.True(t, ok)
	return pm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewModel_InitialLayout(t *testing.T) {
	m := newPreview(t, 3)

	require.Len(t, m.Placements(), 3)
	assert.Equal(t, strategy.NameLine, m.Strategy())
	assert.Equal(t, entity.NewRect(0, 0, 40, 60), m.Placements()[0].Rect)
	assert.Contains(t, m.View(), "Layout Preview")
}

func TestPreviewModel_AddRemoveWindows(t *testing.T) {
	m := newPreview(t, 1)

	m = send(t, m, runes("+"))
	assert.Len(t, m.Placements(), 2)

	m = send(t, m, runes("x"))
	m = send(t, m, runes("x"))
	assert.Empty(t, m.Placements())

	// Removing past zero is harmless.
	m = send(t, m, runes("x"))
	assert.Empty(t, m.Placements())
}

func TestPreviewModel_CycleStrategies(t *testing.T) {
	m := newPreview(t, 2)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, strategy.NameFair, m.Strategy())
	require.Len(t, m.Placements(), 2)
	assert.Equal(t, entity.NewRect(0, 0, 120, 30), m.Placements()[0].Rect)

	m = send(t, m, runes("h"))
	assert.Equal(t, strategy.NameLine, m.Strategy())
	assert.Equal(t, entity.NewRect(0, 0, 60, 60), m.Placements()[0].Rect)
}

func TestPreviewModel_TagsKeepTheirOwnStrategy(t *testing.T) {
	m := newPreview(t, 2)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, strategy.NameFair, m.Strategy())

	m = send(t, m, runes("]"))
	assert.Equal(t, strategy.NameLine, m.Strategy())

	m = send(t, m, runes("["))
	assert.Equal(t, strategy.NameFair, m.Strategy())
}

func TestPreviewModel_Quit(t *testing.T) {
	m := newPreview(t, 1)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
