package styles

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPath renders the config file path and whether it exists.
func (r *ConfigRenderer) RenderPath(path string, exists bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	status := r.theme.SuccessStyle.Render(IconCheck + " present")
	if !exists {
		status = r.theme.WarningStyle.Render(IconWarning + " not created yet")
	}
	return fmt.Sprintf(
		"\n  %s Config %s\n  %s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		status,
	)
}

// RenderCreated renders the message after writing a config file.
func (r *ConfigRenderer) RenderCreated(path, schemaPath string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf(
		"\n  %s Wrote %s\n  %s Schema %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(filepath.Base(path)),
		r.theme.Subtle.Render(IconInfo),
		r.theme.Subtle.Render(schemaPath),
	)
}

// RenderExists renders the refusal to overwrite an existing file.
func (r *ConfigRenderer) RenderExists(path string) string {
	return fmt.Sprintf(
		"\n  %s %s already exists (use --force to overwrite)\n",
		r.theme.WarningStyle.Render(IconWarning),
		r.theme.Subtle.Render(path),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	return fmt.Sprintf("\n  %s %s\n", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
