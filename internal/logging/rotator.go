package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// RotateOptions controls a RotatingFile.
type RotateOptions struct {
	Dir        string
	Name       string // defaults to tessellate.log
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// RotatingFile is an io.Writer that appends to a log file and rolls it over
// once it grows past MaxSizeMB. Rolled files are named <name>.<timestamp>
// and optionally gzipped.
type RotatingFile struct {
	mu   sync.Mutex
	opts RotateOptions
	file *os.File
	size int64
	now  func() time.Time
}

// NewRotatingFile opens (or creates) the log file.
func NewRotatingFile(opts RotateOptions) (*RotatingFile, error) {
	if opts.Name == "" {
		opts.Name = "tessellate.log"
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	r := &RotatingFile{opts: opts, now: time.Now}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the path of the active log file.
func (r *RotatingFile) Path() string {
	return filepath.Join(r.opts.Dir, r.opts.Name)
}

func (r *RotatingFile) open() error {
	f, err := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	r.file = f
	r.size = info.Size()
	return nil
}

// Write implements io.Writer.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.size > 0 && r.size+int64(len(p)) > int64(r.opts.MaxSizeMB)*1024*1024 {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *RotatingFile) rotate() error {
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	r.file = nil

	backup := fmt.Sprintf("%s.%s", r.Path(), r.now().Format("2006-01-02-15-04-05.000"))
	if err := os.Rename(r.Path(), backup); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	if r.opts.Compress {
		if err := gzipFile(backup); err == nil {
			_ = os.Remove(backup)
		}
	}
	r.prune()
	return r.open()
}

// prune removes rolled files past MaxAgeDays, then the oldest ones beyond
// MaxBackups.
func (r *RotatingFile) prune() {
	entries, err := os.ReadDir(r.opts.Dir)
	if err != nil {
		return
	}
	type backup struct {
		path    string
		modTime time.Time
	}
	var backups []backup
	maxAge := time.Duration(r.opts.MaxAgeDays) * 24 * time.Hour
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), r.opts.Name+".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(r.opts.Dir, e.Name())
		if maxAge > 0 && r.now().Sub(info.ModTime()) > maxAge {
			_ = os.Remove(path)
			continue
		}
		backups = append(backups, backup{path: path, modTime: info.ModTime()})
	}
	if r.opts.MaxBackups <= 0 || len(backups) <= r.opts.MaxBackups {
		return
	}
	slices.SortFunc(backups, func(a, b backup) int { return a.modTime.Compare(b.modTime) })
	for _, b := range backups[:len(backups)-r.opts.MaxBackups] {
		_ = os.Remove(b.path)
	}
}

func gzipFile(path string) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := gzip.NewWriter(out)
	if _, err = io.Copy(zw, in); err != nil {
		return err
	}
	return zw.Close()
}

// Close closes the active log file.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
