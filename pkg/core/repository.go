package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Notes are addressed by ID (the file name) and handled as raw text: parsing
// the metadata block is the Service's job.
type Repository interface {
	// List returns the IDs of all notes, in storage listing order.
	List(ctx context.Context) ([]string, error)

	// Read returns the raw content of a note.
	Read(ctx context.Context, id string) (string, error)

	// Write stores raw content under id, replacing any note with the same id.
	Write(ctx context.Context, id string, data []byte) error

	// Initialize ensures the underlying storage is ready (e.g., create directories).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can report changes.
type Watchable interface {
	// Watch emits an Event for each note created, modified or removed until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Locator is implemented by repositories that can tell where a note lives.
type Locator interface {
	Locate(id string) string
}
