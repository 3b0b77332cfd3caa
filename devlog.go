package devlog

import (
	"log/slog"

	"github.com/aretw0/devlog/internal/platform"
	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/search"
)

// --- Types ---

// Note is a public alias for a stored note.
type Note = core.Note

// Summary is a public alias for the one-line description of a note.
type Summary = core.Summary

// Service is a public alias for the note service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring devlog.
type Option = platform.Option

// WithMustExist ensures the notes directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithPattern sets the glob a file name must match to be a note.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithWatcherErrorHandler registers a callback for errors of the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates the note service for the notes directory at path.
func New(path string, opts ...Option) (*Service, error) {
	return platform.New(path, opts...)
}

// NewSearch creates a search engine over the notes of svc.
func NewSearch(svc *Service, opts ...search.Option) *search.Engine {
	return search.NewEngine(svc.Repository(), opts...)
}
