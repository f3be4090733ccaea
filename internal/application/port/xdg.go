package port

// XDGPaths provides XDG Base Directory paths.
type XDGPaths interface {
	ConfigDir() (string, error)
	StateDir() (string, error)
	RuntimeDir() (string, error)
}
