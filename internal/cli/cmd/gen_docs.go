package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	xdgadapter "github.com/bnema/tessellate/internal/infrastructure/xdg"
)

const dirPerm = 0o755

var (
	genDocsOutputDir string
	genDocsFormat    string
)

// docFormat is one output of gen-docs.
type docFormat struct {
	ext        string
	defaultDir func() (string, error)
	generate   func(root *cobra.Command, dir string) error
}

var docFormats = map[string]docFormat{
	"man": {
		ext:        ".1",
		defaultDir: xdgadapter.New().ManDir,
		generate: func(root *cobra.Command, dir string) error {
			return doc.GenManTree(root, manHeader(), dir)
		},
	},
	"markdown": {
		ext:        ".md",
		defaultDir: func() (string, error) { return "./docs", nil },
		generate:   doc.GenMarkdownTree,
	},
	"rest": {
		ext:        ".rst",
		defaultDir: func() (string, error) { return "./docs", nil },
		generate:   doc.GenReSTTree,
	},
}

func docFormatNames() []string {
	names := make([]string, 0, len(docFormats))
	for name := range docFormats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate man pages or reference docs for every command",
	Long: `Generate one page per command (serve, simulate, cycle, preview, ...) with
its flags and examples.

Man pages go to ~/.local/share/man/man1/ by default, so 'man tessellate-preview'
works right away (run 'mandb' if it does not). Markdown and reST go to ./docs.

Examples:
  tessellate gen-docs
  tessellate gen-docs --format markdown
  tessellate gen-docs --format rest --output ./site/cli`,
	Annotations: standalone,
	RunE:        runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory (default depends on format)")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man",
		"output format: "+strings.Join(docFormatNames(), ", "))
}

func runGenDocs(_ *cobra.Command, _ []string) error {
	files, dir, err := generateDocs(rootCmd, genDocsFormat, genDocsOutputDir)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d %s page(s) to %s\n", len(files), genDocsFormat, dir)
	for _, f := range files {
		fmt.Printf("  - %s\n", f)
	}
	return nil
}

// generateDocs writes the pages of root in format to dir (or the format's
// default directory) and returns the generated file names.
func generateDocs(root *cobra.Command, format, dir string) ([]string, string, error) {
	f, ok := docFormats[format]
	if !ok {
		return nil, "", fmt.Errorf("unsupported format %q (use: %s)", format, strings.Join(docFormatNames(), ", "))
	}
	if dir == "" {
		var err error
		if dir, err = f.defaultDir(); err != nil {
			return nil, "", fmt.Errorf("resolve %s directory: %w", format, err)
		}
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, "", fmt.Errorf("create output directory: %w", err)
	}

	// No "Auto generated by spf13/cobra on <date>" footer; pages stay reproducible.
	root.DisableAutoGenTag = true
	if err := f.generate(root, dir); err != nil {
		return nil, "", fmt.Errorf("generate %s docs: %w", format, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", fmt.Errorf("list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == f.ext && strings.HasPrefix(e.Name(), root.Name()) {
			files = append(files, e.Name())
		}
	}
	return files, dir, nil
}

// manHeader dates the pages with the build date when it is known.
func manHeader() *doc.GenManHeader {
	date := time.Now()
	if t, err := time.Parse(time.RFC3339, buildInfo.BuildDate); err == nil {
		date = t
	}
	return &doc.GenManHeader{
		Title:   strings.ToUpper(rootCmd.Name()),
		Section: "1",
		Source:  "tessellate " + buildInfo.Version,
		Manual:  "Tessellate Manual",
		Date:    &date,
	}
}
