package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const configHeader = "# tessellate configuration\n# Schema: config.schema.json (regenerate with `tessellate schema config`)\n\n"

var tableHeader = regexp.MustCompile(`^\s*\[([^\[\]]+)\]\s*$`)

// WriteConfigOrdered writes cfg to path. Keys keep struct order; tables are
// ordered by their dotted path so every strategy table follows the previous
// one. The file is replaced atomically.
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return writeAtomic(path, []byte(configHeader+sortTOMLSections(buf.String())))
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

type tomlTable struct {
	path  []string
	lines []string
}

func (t tomlTable) name() string { return strings.Join(t.path, ".") }

// empty reports whether the table holds nothing but its header.
func (t tomlTable) empty() bool {
	for _, l := range t.lines[1:] {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// sortTOMLSections orders tables by dotted path, compared segment by segment,
// so a parent always precedes its children. Parent tables with no keys of
// their own ("[strategies]") are dropped since their children define them.
func sortTOMLSections(content string) string {
	var (
		preamble []string
		tables   []tomlTable
	)
	for _, line := range strings.Split(content, "\n") {
		if m := tableHeader.FindStringSubmatch(line); m != nil {
			tables = append(tables, tomlTable{path: strings.Split(strings.TrimSpace(m[1]), "."), lines: []string{line}})
			continue
		}
		if len(tables) == 0 {
			preamble = append(preamble, line)
			continue
		}
		last := &tables[len(tables)-1]
		last.lines = append(last.lines, line)
	}

	tables = slices.DeleteFunc(tables, func(t tomlTable) bool {
		return t.empty() && hasChild(tables, t)
	})
	slices.SortStableFunc(tables, func(a, b tomlTable) int {
		return slices.Compare(a.path, b.path)
	})

	var out strings.Builder
	writeBlock := func(lines []string) {
		block := strings.TrimRight(strings.Join(lines, "\n"), "\n ")
		if block == "" {
			return
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(block)
	}
	writeBlock(preamble)
	for _, t := range tables {
		writeBlock(t.lines)
	}
	if out.Len() == 0 {
		return ""
	}
	return out.String() + "\n"
}

func hasChild(tables []tomlTable, parent tomlTable) bool {
	prefix := parent.name() + "."
	return slices.ContainsFunc(tables, func(t tomlTable) bool {
		return strings.HasPrefix(t.name(), prefix)
	})
}
