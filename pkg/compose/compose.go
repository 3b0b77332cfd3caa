// Package compose builds a new note from a sequence of prompts and stores it.
package compose

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/prompt"
)

// DateLayout is the layout of the date written in the header.
const DateLayout = "2006-01-02T15:04:05.000Z"

var whitespace = regexp.MustCompile(`\s+`)

// Asker asks one question.
type Asker interface {
	Ask(ctx context.Context, q prompt.Question) (string, error)
}

// Saver stores a note and reports where it lives.
type Saver interface {
	SaveNote(ctx context.Context, n core.Note) error
	Locate(id string) string
}

// Composer collects the fields of a note and saves it.
type Composer struct {
	asker   Asker
	saver   Saver
	now     func() time.Time
	project string
	logger  *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// WithDefaultProject sets the answer proposed for the project prompt.
func WithDefaultProject(name string) Option {
	return func(c *Composer) {
		c.project = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// New creates a Composer.
func New(asker Asker, saver Saver, opts ...Option) *Composer {
	c := &Composer{
		asker:  asker,
		saver:  saver,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose prompts for project, template, title, content and tags, then saves
// the note. An abandoned prompt returns core.ErrAborted and saves nothing.
func (c *Composer) Compose(ctx context.Context) (core.Note, error) {
	questions := []prompt.Question{
		{Label: "Project name:", Default: c.project},
		{Label: "Template (e.g., Bug, Learn, Work):"},
		{Label: "Title:"},
		{Label: "Note content:", Multiline: true},
		{Label: "Tags (comma separated):", AllowEmpty: true},
	}

	answers := make([]string, len(questions))
	for i, q := range questions {
		a, err := c.asker.Ask(ctx, q)
		if err != nil {
			return core.Note{}, err
		}
		answers[i] = a
	}

	now := c.now()
	note := core.Note{
		ID: NewID(now, answers[2]),
		Header: core.Header{
			Date:     now.UTC().Format(DateLayout),
			Project:  strings.TrimSpace(answers[0]),
			Template: strings.TrimSpace(answers[1]),
			Tags:     ParseTags(answers[4]),
		},
		Body: answers[3],
	}

	if err := c.saver.SaveNote(ctx, note); err != nil {
		return core.Note{}, fmt.Errorf("failed to save note: %w", err)
	}
	c.logger.Debug("note composed", "id", note.ID, "project", note.Header.Project)
	return note, nil
}

// NewID builds a note identifier from the creation time and the title:
//
//	2024-01-02T03:04:05.123Z + "Fix crash" -> 2024-01-02T03-04-05-123Z_Fix-crash.md
func NewID(now time.Time, title string) string {
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(now.UTC().Format(DateLayout))
	slug := whitespace.ReplaceAllString(strings.TrimSpace(title), "-")
	return stamp + "_" + slug + core.NoteExt
}

// ParseTags splits a comma separated list, dropping empty items.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
