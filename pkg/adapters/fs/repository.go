package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/devlog/pkg/core"
)

// DefaultPattern selects the files of a notes directory that are notes.
const DefaultPattern = "*" + core.NoteExt

// Repository implements core.Repository on a flat directory of Markdown files.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	Pattern   string // doublestar pattern matched against file names; defaults to DefaultPattern
	MustExist bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime errors of the watch loop.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) (*Repository, error) {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(config.Pattern) {
		return nil, fmt.Errorf("invalid note pattern %q", config.Pattern)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}, nil
}

// Initialize makes sure the notes directory exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("notes directory does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat notes directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("notes path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	return nil
}

// List returns the names of the note files, in directory order (sorted by name).
func (r *Repository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !r.matches(e.Name()) {
			continue
		}
		ids = append(ids, e.Name())
	}
	return ids, nil
}

// Read returns the raw content of a note.
func (r *Repository) Read(ctx context.Context, id string) (string, error) {
	if err := core.ValidateID(id); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(r.Locate(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", id, core.ErrNotFound)
		}
		return "", fmt.Errorf("failed to read %s: %w", id, err)
	}
	return string(data), nil
}

// Write stores data under id atomically. An existing note with the same id is replaced.
func (r *Repository) Write(ctx context.Context, id string, data []byte) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}

	if !r.config.MustExist {
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create notes directory: %w", err)
		}
	}

	if err := writeFileAtomic(r.Locate(id), data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	r.mu.Lock()
	now := time.Now()
	r.lastWrite = &now
	r.mu.Unlock()

	return nil
}

// Locate returns the file path of a note.
func (r *Repository) Locate(id string) string {
	return filepath.Join(r.Path, id)
}

func (r *Repository) matches(name string) bool {
	if isTempFile(name) {
		return false
	}
	ok, err := doublestar.Match(r.config.Pattern, name)
	return err == nil && ok
}

var (
	_ core.Repository = (*Repository)(nil)
	_ core.Watchable  = (*Repository)(nil)
	_ core.Locator    = (*Repository)(nil)
)
