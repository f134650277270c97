package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/getmockd/apputil/pkg/logging"
)

// Common errors
var (
	ErrNotInitialized = errors.New("storage: Init was not called")
	ErrUnknownBackend = errors.New("storage: unknown backend")
	ErrClosed         = errors.New("storage: store is closed")
)

// Store is a key/value store of string items.
type Store interface {
	// Init prepares the store. It must be called before any other method.
	Init(ctx context.Context) error

	// GetItem returns the item stored under name. The boolean is false
	// when the item does not exist.
	GetItem(ctx context.Context, name string) (string, bool, error)

	// SetItem stores value under name.
	SetItem(ctx context.Context, name, value string) error

	// RemoveItem deletes the item stored under name. Removing a missing
	// item is not an error.
	RemoveItem(ctx context.Context, name string) error

	// Clear removes every item.
	Clear(ctx context.Context) error

	// Close releases resources. Safe to call multiple times.
	Close() error
}

// Backend names a storage backend.
type Backend string

const (
	// BackendMemory keeps items in process memory (no persistence).
	BackendMemory Backend = "memory"
	// BackendFile persists items to a JSON file.
	BackendFile Backend = "file"
)

// DefaultFileName is the name of the data file inside Config.DataDir.
const DefaultFileName = "storage.json"

// Config holds store configuration.
type Config struct {
	// Backend selects the implementation. Defaults to BackendFile.
	Backend Backend `json:"backend" yaml:"backend"`

	// DataDir is the directory holding the data file.
	// Defaults to XDG_DATA_HOME/apputil or ~/.local/share/apputil.
	DataDir string `json:"dataDir,omitempty" yaml:"dataDir,omitempty"`

	// Logger receives debug output. Defaults to a no-op logger.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// Open creates the store selected by cfg. The returned store still needs
// Init.
func Open(cfg Config) (Store, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		dir := cfg.DataDir
		if dir == "" {
			dir = DefaultDataDir()
		}
		return NewFile(filepath.Join(dir, DefaultFileName), log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// DefaultDataDir returns the default data directory following the XDG
// base directory layout.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "apputil")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "apputil")
	}
	return filepath.Join(home, ".local", "share", "apputil")
}
