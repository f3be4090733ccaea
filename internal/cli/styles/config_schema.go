package styles

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/tessellate/internal/domain/entity"
)

var keyHeaders = []string{"Key", "Type", "Default", "Accepts", "Description"}

// ConfigSchemaRenderer renders the `config keys` listing: one table per
// config table, so each strategy gets its own block.
type ConfigSchemaRenderer struct {
	theme *Theme
}

// NewConfigSchemaRenderer creates a ConfigSchemaRenderer.
func NewConfigSchemaRenderer(theme *Theme) *ConfigSchemaRenderer {
	return &ConfigSchemaRenderer{theme: theme}
}

// keyGroup is the set of keys sharing one TOML table.
type keyGroup struct {
	table string
	keys  []entity.ConfigKeyInfo
}

// groupByTable groups keys by their table, keeping first-seen order so the
// provider's section order survives.
func groupByTable(keys []entity.ConfigKeyInfo) []keyGroup {
	var groups []keyGroup
	for _, k := range keys {
		table, _ := splitConfigKey(k.Key)
		i := slices.IndexFunc(groups, func(g keyGroup) bool { return g.table == table })
		if i < 0 {
			groups = append(groups, keyGroup{table: table})
			i = len(groups) - 1
		}
		groups[i].keys = append(groups[i].keys, k)
	}
	return groups
}

func splitConfigKey(key string) (table, leaf string) {
	i := strings.LastIndexByte(key, '.')
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}

// Render renders keys grouped by table.
func (r *ConfigSchemaRenderer) Render(keys []entity.ConfigKeyInfo) string {
	if len(keys) == 0 {
		return r.theme.Subtle.Render("No configuration keys found")
	}

	icon := lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconConfig)
	parts := []string{fmt.Sprintf("%s %s", icon, r.theme.Title.Render("Config keys")), ""}
	for _, g := range groupByTable(keys) {
		parts = append(parts, r.renderGroup(g), "")
	}
	return strings.Join(parts, "\n")
}

func (r *ConfigSchemaRenderer) renderGroup(g keyGroup) string {
	title := "[" + g.table + "]"
	if g.table == "" {
		title = "top level"
	}
	if name, ok := strings.CutPrefix(g.table, "strategies."); ok {
		title += r.theme.Subtle.Render("  parameters of the " + name + " strategy")
	}

	rows := make([][]string, len(g.keys))
	for i, k := range g.keys {
		_, leaf := splitConfigKey(k.Key)
		rows[i] = []string{leaf, k.Type, k.Default, accepts(k), k.Description}
	}

	headerStyle := lipgloss.NewStyle().Foreground(r.theme.Accent).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(r.theme.Text).Padding(0, 1)
	keyStyle := cellStyle.Bold(true)
	defaultStyle := cellStyle.Foreground(r.theme.Accent)
	mutedStyle := cellStyle.Foreground(r.theme.Muted)

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers(keyHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			case col == 2:
				return defaultStyle
			case col == 4:
				return mutedStyle
			default:
				return cellStyle
			}
		})

	return r.theme.Highlight.Render(title) + "\n" + t.Render()
}

// accepts summarizes the allowed values of k.
func accepts(k entity.ConfigKeyInfo) string {
	if len(k.Values) > 0 {
		return strings.Join(k.Values, " | ")
	}
	return k.Range
}

// RenderJSON renders keys as JSON.
func (*ConfigSchemaRenderer) RenderJSON(keys []entity.ConfigKeyInfo) (string, error) {
	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(data), nil
}
