// Package core holds the domain of devlog: notes, their summaries, the storage
// contract and the service that applies business rules on top of it.
package core

import (
	"fmt"
	"strings"

	"github.com/aretw0/devlog/pkg/frontmatter"
)

// Header is the metadata block of a note (date, project, template, tags).
type Header = frontmatter.Header

// Note is the central entity of the domain.
// It represents one dev-log entry identified by its file name.
type Note struct {
	ID     string `json:"id"`
	Header Header `json:"header"`
	Body   string `json:"body"`
	// Raw is the full content as stored, metadata block included.
	Raw string `json:"-"`
}

// Summary is the one-line view of a note used by listings.
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FirstLine string `json:"first_line"`
}

// EventType represents the type of change in the notes directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the notes directory.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

// NoteExt is the extension every note file carries.
const NoteExt = ".md"

// Title derives a display label from a note ID by removing the timestamp
// prefix and the extension. Hyphens of the title part are shown as spaces.
//
//	2024-01-02T03-04-05-123Z_Fix-crash.md -> Fix crash
func Title(id string) string {
	name := strings.TrimSuffix(id, NoteExt)
	if _, after, ok := strings.Cut(name, "_"); ok && after != "" {
		name = after
	}
	return strings.ReplaceAll(name, "-", " ")
}

// Stamp returns the timestamp prefix of a note ID, or "" when there is none.
func Stamp(id string) string {
	before, _, ok := strings.Cut(strings.TrimSuffix(id, NoteExt), "_")
	if !ok {
		return ""
	}
	return before
}
