package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/infrastructure/config"
)

const (
	defaultLogsLines = 50
	logFileName      = "tessellate.log"
	followInterval   = 100 * time.Millisecond
)

var (
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the producer log file",
	Long: `View the log file written when logging.enable_file_log is on.

Examples:
  tessellate logs             # Last 50 lines
  tessellate logs -n 200      # Last 200 lines
  tessellate logs -f          # Follow in real-time
  tessellate logs list        # Current and rotated files`,
	RunE: runLogs,
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current and rotated log files",
	RunE:  runLogsList,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsListCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
}

// logDir returns the configured log directory, or the XDG default.
func logDir() string {
	if app != nil && app.Config.Logging.LogDir != "" {
		return app.Config.Logging.LogDir
	}
	dir, err := config.GetLogDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tessellate", "logs")
	}
	return dir
}

func runLogs(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	path := filepath.Join(logDir(), logFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println(app.Theme.Subtle.Render(
				"No log file at " + path + ". Set logging.enable_file_log = true to write one."))
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}

	if logsFollow {
		ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return tailLog(ctx, path, app.Theme)
	}
	return showLog(path, logsLines, app.Theme)
}

// LogFile describes one file in the log directory.
type LogFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// listLogFiles returns the log files in dir, newest first.
func listLogFiles(dir string) ([]LogFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	var files []LogFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), logFileName) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, LogFile{
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

func runLogsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	files, err := listLogFiles(logDir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println(app.Theme.Subtle.Render("No log files found"))
		return nil
	}

	fmt.Println(app.Theme.Title.Render("Log files (newest first):"))
	fmt.Println()
	for _, f := range files {
		fmt.Printf("  %s  %s  %s\n",
			app.Theme.Highlight.Render(f.Name),
			app.Theme.Subtle.Render(f.ModTime.Format("2006-01-02 15:04:05")),
			app.Theme.Subtle.Render(formatSize(f.Size)),
		)
	}
	return nil
}

func formatSize(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// showLog prints the last lines of a log file.
func showLog(logPath string, lines int, theme *styles.Theme) (retErr error) {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	tail, err := lastLines(file, lines)
	if err != nil {
		return err
	}
	for _, line := range tail {
		fmt.Println(colorizeLogLine(line, theme))
	}
	return nil
}

// lastLines returns at most n trailing lines of r.
func lastLines(r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return ring, nil
}

// tailLog follows a log file until ctx ends.
func tailLog(ctx context.Context, logPath string, theme *styles.Theme) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, _ = file.Seek(0, io.SeekEnd)

	fmt.Println(theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	fmt.Println()

	reader := bufio.NewReader(file)
	pending := ""
	for {
		chunk, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return fmt.Errorf("read log file: %w", err)
			}
			// No full line yet; keep partial data.
			pending += chunk
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(followInterval):
			}
			continue
		}

		line := strings.TrimSuffix(pending+chunk, "\n")
		pending = ""
		fmt.Println(colorizeLogLine(line, theme))
	}
}

// logEntry represents a parsed JSON log entry.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Component string `json:"component"`
}

// colorizeLogLine adds color based on log level.
func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil {
		return formatJSONLogLine(entry, theme)
	}

	// Console format
	switch {
	case containsAny(line, " ERR ", " FTL "):
		return theme.ErrorStyle.Render(line)
	case containsAny(line, " WRN "):
		return theme.WarningStyle.Render(line)
	case containsAny(line, " DBG ", " TRC "):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

// formatJSONLogLine formats a parsed JSON log entry with colors.
func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := ""
	if entry.Time != "" {
		if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
			timeStr = t.Format("15:04:05")
		} else {
			timeStr = entry.Time
		}
	}

	var levelStr string
	switch entry.Level {
	case "error", "fatal", "panic":
		levelStr = theme.ErrorStyle.Render("ERR")
	case "warn":
		levelStr = theme.WarningStyle.Render("WRN")
	case "info":
		levelStr = theme.Highlight.Render("INF")
	case "debug":
		levelStr = theme.Subtle.Render("DBG")
	case "trace":
		levelStr = theme.Subtle.Render("TRC")
	default:
		levelStr = entry.Level
	}

	msg := entry.Message
	if entry.Component != "" {
		msg = theme.Subtle.Render("["+entry.Component+"]") + " " + msg
	}
	return fmt.Sprintf("%s %s %s", theme.Subtle.Render(timeStr), levelStr, msg)
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
