package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// PreviewKeyMap defines keybindings for the interactive layout preview.
type PreviewKeyMap struct {
	AddWindow    key.Binding
	RemoveWindow key.Binding
	NextStrategy key.Binding
	PrevStrategy key.Binding
	NextTag      key.Binding
	PrevTag      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k PreviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddWindow, k.RemoveWindow, k.NextStrategy, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k PreviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddWindow, k.RemoveWindow},
		{k.NextStrategy, k.PrevStrategy},
		{k.NextTag, k.PrevTag},
		{k.Help, k.Quit},
	}
}

// DefaultPreviewKeyMap returns the default preview keybindings.
func DefaultPreviewKeyMap() PreviewKeyMap {
	return PreviewKeyMap{
		AddWindow: key.NewBinding(
			key.WithKeys("+", "=", "a"),
			key.WithHelp("+/a", "add window"),
		),
		RemoveWindow: key.NewBinding(
			key.WithKeys("-", "x"),
			key.WithHelp("-/x", "remove window"),
		),
		NextStrategy: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab/l", "next strategy"),
		),
		PrevStrategy: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("S-tab/h", "prev strategy"),
		),
		NextTag: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tag"),
		),
		PrevTag: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tag"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
