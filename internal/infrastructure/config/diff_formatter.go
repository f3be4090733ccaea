package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/domain/strategy"
)

// ConfigDiffFormatter renders migration changes grouped by TOML table.
type ConfigDiffFormatter struct{}

// NewDiffFormatter creates a ConfigDiffFormatter.
func NewDiffFormatter() *ConfigDiffFormatter {
	return &ConfigDiffFormatter{}
}

// FormatChangesAsDiff returns one block per table: "+" for keys that will be
// written with their default, "-" for keys that will be dropped and "~" for
// keys moved to a new name.
func (*ConfigDiffFormatter) FormatChangesAsDiff(changes []port.KeyChange) string {
	if len(changes) == 0 {
		return "No changes detected."
	}

	groups := make(map[string][]port.KeyChange)
	var added, removed, renamed int
	for _, c := range changes {
		key := c.NewKey
		switch c.Type {
		case port.KeyChangeAdded:
			added++
		case port.KeyChangeRemoved:
			removed++
			key = c.OldKey
		case port.KeyChangeRenamed:
			renamed++
			key = c.OldKey
		}
		table, _ := splitKey(key)
		groups[table] = append(groups[table], c)
	}

	tables := make([]string, 0, len(groups))
	for t := range groups {
		tables = append(tables, t)
	}
	slices.SortFunc(tables, func(a, b string) int {
		return slices.Compare(strings.Split(a, "."), strings.Split(b, "."))
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Config migration: %d added, %d renamed, %d dropped\n", added, renamed, removed)
	for _, table := range tables {
		sb.WriteString("\n")
		if table != "" {
			fmt.Fprintf(&sb, "[%s]\n", table)
		}
		for _, c := range groups[table] {
			sb.WriteString(formatChange(table, c))
		}
	}
	return sb.String()
}

func formatChange(table string, c port.KeyChange) string {
	switch c.Type {
	case port.KeyChangeAdded:
		_, leaf := splitKey(c.NewKey)
		return fmt.Sprintf("  + %s = %s\n", leaf, c.NewValue)
	case port.KeyChangeRemoved:
		_, leaf := splitKey(c.OldKey)
		return fmt.Sprintf("  - %s = %s  (dropped, %s)\n", leaf, c.OldValue, dropReason(table))
	case port.KeyChangeRenamed:
		_, leaf := splitKey(c.OldKey)
		target := c.NewKey
		if newTable, newLeaf := splitKey(c.NewKey); newTable == table {
			target = newLeaf
		}
		return fmt.Sprintf("  ~ %s -> %s  (keeps %s)\n", leaf, target, c.OldValue)
	}
	return ""
}

// dropReason explains why a key of table has no place in the config.
func dropReason(table string) string {
	if name, ok := strings.CutPrefix(table, "strategies."); ok && !strategy.IsBuiltin(name) {
		return fmt.Sprintf("%q is not a strategy", name)
	}
	return "no longer used"
}

// splitKey splits a dotted key into its table and leaf name.
func splitKey(key string) (table, leaf string) {
	i := strings.LastIndexByte(key, '.')
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}
