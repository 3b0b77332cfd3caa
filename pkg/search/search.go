// Package search finds notes containing a literal query.
//
// Every candidate is loaded concurrently and tested with a case-sensitive
// substring match against its raw content, metadata block included. A note
// that cannot be read counts as a non-match and is logged; it never fails
// the whole search.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/devlog/pkg/core"
)

// Engine runs searches against a repository.
type Engine struct {
	repo        core.Repository
	logger      *slog.Logger
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report unreadable notes.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConcurrency bounds the number of notes read at the same time.
// Zero or less means one reader per note.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// NewEngine creates a search engine over repo.
func NewEngine(repo core.Repository, opts ...Option) *Engine {
	e := &Engine{repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns the IDs of the notes whose content contains query.
// IDs keep the repository's listing order. An empty result is not an error.
func (e *Engine) Search(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, core.ErrEmptyQuery
	}

	ids, err := e.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	matched := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := e.repo.Read(gctx, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				e.logger.Warn("skipping unreadable note", "id", id, "error", err)
				return nil
			}
			// Each goroutine owns its own slot.
			matched[i] = strings.Contains(content, query)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(ids))
	for i, id := range ids {
		if matched[i] {
			matches = append(matches, id)
		}
	}

	e.logger.Debug("search finished", "query", query, "candidates", len(ids), "matches", len(matches))
	return matches, nil
}
