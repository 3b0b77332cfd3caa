package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/devlog/pkg/frontmatter"
)

// Service handles the business logic for notes.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu        sync.RWMutex
	lastCount int
	saved     int
}

// NewService creates a new Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Repository exposes the underlying storage for read-only consumers such as search.
func (s *Service) Repository() Repository {
	return s.repo
}

// SaveNote renders a note and persists it.
func (s *Service) SaveNote(ctx context.Context, n Note) error {
	if err := ValidateID(n.ID); err != nil {
		return err
	}

	data, err := frontmatter.Render(n.Header, n.Body)
	if err != nil {
		return fmt.Errorf("failed to render note: %w", err)
	}

	if err := s.repo.Write(ctx, n.ID, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.saved++
	s.mu.Unlock()

	s.logger.Debug("note saved", "id", n.ID, "bytes", len(data))
	return nil
}

// GetNote reads a note and splits its metadata block from the body.
// A malformed block is not an error: the whole content is then treated as body.
func (s *Service) GetNote(ctx context.Context, id string) (Note, error) {
	if err := ValidateID(id); err != nil {
		return Note{}, err
	}

	raw, err := s.repo.Read(ctx, id)
	if err != nil {
		return Note{}, err
	}

	n := Note{ID: id, Raw: raw}
	h, body, err := frontmatter.Parse(raw)
	if err != nil {
		s.logger.Debug("unparseable metadata block", "id", id, "error", err)
		n.Body = raw
		return n, nil
	}
	n.Header = h
	n.Body = body
	return n, nil
}

// ReadContent returns the raw content of a note.
func (s *Service) ReadContent(ctx context.Context, id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return s.repo.Read(ctx, id)
}

// ListSummaries returns a summary for every note.
// A note that cannot be read is still listed, with the placeholder line.
func (s *Service) ListSummaries(ctx context.Context) ([]Summary, error) {
	ids, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := frontmatter.Placeholder
		raw, err := s.repo.Read(ctx, id)
		if err != nil {
			s.logger.Warn("failed to read note", "id", id, "error", err)
		} else {
			line = frontmatter.FirstContentLine(raw)
		}

		summaries = append(summaries, Summary{ID: id, Title: Title(id), FirstLine: line})
	}

	s.mu.Lock()
	s.lastCount = len(summaries)
	s.mu.Unlock()

	return summaries, nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

// Locate returns where a note is stored, or its ID when the repository cannot tell.
func (s *Service) Locate(id string) string {
	if l, ok := s.repo.(Locator); ok {
		return l.Locate(id)
	}
	return id
}

// ValidateID rejects IDs that are empty or would escape the notes directory.
func ValidateID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	case strings.ContainsAny(id, `/\`) || filepath.Base(id) != id:
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, id)
	}
	return nil
}
