// Package model holds the bubbletea models behind the interactive commands.
package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/domain/entity"
)

// PreviewOutput is the output name the preview lays out.
const PreviewOutput entity.OutputName = "preview"

const (
	minMapCols   = 20
	minMapRows   = 6
	tableWidth   = 52
	chromeHeight = 8
)

// PlacementSource returns what was last applied to an output.
type PlacementSource interface {
	Last(output entity.OutputName) ([]entity.Placement, bool)
}

// PreviewModel drives a producer and a consumer wired back to back and
// shows the resulting placements.
type PreviewModel struct {
	ctx      context.Context
	producer *usecase.ProduceLayoutUseCase
	consumer *usecase.ConsumeLayoutUseCase
	applied  PlacementSource

	area    entity.Rect
	windows []entity.WindowID
	nextWin int
	tag     entity.TagID

	placements []entity.Placement
	err        error

	width    int
	height   int
	showHelp bool

	theme *styles.Theme
	keys  styles.PreviewKeyMap
	help  help.Model
}

// NewPreviewModel creates a preview over area starting with windowCount
// windows on tag 0.
func NewPreviewModel(
	ctx context.Context,
	theme *styles.Theme,
	producer *usecase.ProduceLayoutUseCase,
	consumer *usecase.ConsumeLayoutUseCase,
	applied PlacementSource,
	area entity.Rect,
	windowCount int,
) PreviewModel {
	m := PreviewModel{
		ctx:      ctx,
		producer: producer,
		consumer: consumer,
		applied:  applied,
		area:     area,
		theme:    theme,
		keys:     styles.DefaultPreviewKeyMap(),
		help:     styles.NewStyledHelp(theme),
		width:    80,
		height:   24,
	}
	for range max(windowCount, 0) {
		m.addWindow()
	}
	return m
}

type relayoutMsg struct{}

// Init implements tea.Model.
func (PreviewModel) Init() tea.Cmd {
	return func() tea.Msg { return relayoutMsg{} }
}

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case relayoutMsg:
		m.relayout()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.AddWindow):
			m.addWindow()
			m.relayout()
		case key.Matches(msg, m.keys.RemoveWindow):
			if len(m.windows) > 0 {
				m.windows = m.windows[:len(m.windows)-1]
			}
			m.relayout()
		case key.Matches(msg, m.keys.NextStrategy):
			// The producer forces a new round through the loopback notifier.
			m.err = m.producer.CycleForward(m.ctx, m.tag)
			m.refresh()
		case key.Matches(msg, m.keys.PrevStrategy):
			m.err = m.producer.CycleBackward(m.ctx, m.tag)
			m.refresh()
		case key.Matches(msg, m.keys.NextTag):
			m.tag++
			m.relayout()
		case key.Matches(msg, m.keys.PrevTag):
			if m.tag > 0 {
				m.tag--
			}
			m.relayout()
		}
	}
	return m, nil
}

func (m *PreviewModel) addWindow() {
	m.nextWin++
	m.windows = append(m.windows, entity.WindowID(fmt.Sprintf("win-%d", m.nextWin)))
}

func (m *PreviewModel) relayout() {
	_, m.err = m.consumer.RequestLayout(m.ctx, entity.LayoutNeed{
		Output:  PreviewOutput,
		Windows: m.windows,
		Tags:    []entity.TagID{m.tag},
		Area:    m.area,
	})
	m.refresh()
}

func (m *PreviewModel) refresh() {
	if p, ok := m.applied.Last(PreviewOutput); ok {
		m.placements = p
	}
}

// Placements returns the placements currently shown.
func (m PreviewModel) Placements() []entity.Placement {
	return m.placements
}

// Strategy returns the name of the strategy selected for the current tag.
func (m PreviewModel) Strategy() string {
	return m.producer.CurrentStrategy(m.tag)
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	t := m.theme
	renderer := styles.NewLayoutRenderer(t)

	body := renderer.RenderPreview(styles.PreviewView{
		Strategy:   m.Strategy(),
		Output:     entity.OutputName(fmt.Sprintf("tag %d", m.tag)),
		Area:       m.area,
		Placements: m.placements,
		MapCols:    max(m.width-tableWidth, minMapCols),
		MapRows:    max(m.height-chromeHeight, minMapRows),
	})

	parts := []string{t.Title.Render("Layout Preview"), "", body}
	if m.err != nil {
		parts = append(parts, "", renderer.RenderError(m.err))
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.showHelp {
		helpView = m.help.FullHelpView(m.keys.FullHelp())
	}
	parts = append(parts, "", helpView)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
