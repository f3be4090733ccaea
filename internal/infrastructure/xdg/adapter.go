// Package xdg adapts the config package's directory helpers to port.XDGPaths.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/infrastructure/config"
)

// Adapter implements port.XDGPaths using config.GetXDGDirs().
type Adapter struct{}

// New creates a new XDG paths adapter.
func New() *Adapter {
	return &Adapter{}
}

func (*Adapter) ConfigDir() (string, error) {
	return config.GetConfigDir()
}

func (*Adapter) StateDir() (string, error) {
	return config.GetStateDir()
}

func (*Adapter) RuntimeDir() (string, error) {
	return config.GetRuntimeDir()
}

// ManDir returns XDG_DATA_HOME/man/man1 so 'man tessellate' works without a
// custom MANPATH.
func (*Adapter) ManDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "man", "man1"), nil
}

var _ port.XDGPaths = (*Adapter)(nil)
