package core_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/frontmatter"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test fallback/errors.
type MockRepository struct {
	notes   map[string]string
	readErr map[string]error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		notes:   make(map[string]string),
		readErr: make(map[string]error),
	}
}

func (m *MockRepository) List(ctx context.Context) ([]string, error) {
	var ids []string
	for id := range m.notes {
		ids = append(ids, id)
	}
	// Sort for deterministic tests
	sort.Strings(ids)
	return ids, nil
}

func (m *MockRepository) Read(ctx context.Context, id string) (string, error) {
	if err, ok := m.readErr[id]; ok {
		return "", err
	}
	raw, ok := m.notes[id]
	if !ok {
		return "", fmt.Errorf("%s: %w", id, core.ErrNotFound)
	}
	return raw, nil
}

func (m *MockRepository) Write(ctx context.Context, id string, data []byte) error {
	m.notes[id] = string(data)
	return nil
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func newService(repo core.Repository) *core.Service {
	return core.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_SaveAndGet(t *testing.T) {
	repo := NewMockRepository()
	service := newService(repo)
	ctx := context.TODO()

	note := core.Note{
		ID: "2024-01-02T03-04-05-123Z_Fix-crash.md",
		Header: core.Header{
			Date:     "2024-01-02T03:04:05.123Z",
			Project:  "demo",
			Template: "Bug",
			Tags:     []string{"urgent", "core"},
		},
		Body: "stack overflow",
	}
	require.NoError(t, service.SaveNote(ctx, note))
	assert.Contains(t, repo.notes[note.ID], "tags: [urgent, core]")

	got, err := service.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.Header, got.Header)
	assert.Equal(t, "stack overflow\n", got.Body)
	assert.Equal(t, repo.notes[note.ID], got.Raw)
}

func TestService_GetNote_MalformedHeader(t *testing.T) {
	repo := NewMockRepository()
	repo.notes["broken.md"] = "---\nproject: x\nno closing"
	service := newService(repo)

	got, err := service.GetNote(context.TODO(), "broken.md")
	require.NoError(t, err)
	assert.Equal(t, core.Header{}, got.Header)
	assert.Equal(t, repo.notes["broken.md"], got.Body)
}

func TestService_InvalidIDs(t *testing.T) {
	service := newService(NewMockRepository())
	ctx := context.TODO()

	for _, id := range []string{"", "  ", "..", "../escape.md", "dir/note.md", `dir\note.md`} {
		err := service.SaveNote(ctx, core.Note{ID: id})
		assert.ErrorIs(t, err, core.ErrInvalidID, "id %q", id)

		_, err = service.GetNote(ctx, id)
		assert.ErrorIs(t, err, core.ErrInvalidID, "id %q", id)
	}
}

func TestService_ListSummaries(t *testing.T) {
	repo := NewMockRepository()
	repo.notes["2024-01-01T00-00-00-000Z_First.md"] = "---\ndate: x\n---\n\nhello world\n"
	repo.notes["2024-01-02T00-00-00-000Z_Second-note.md"] = "plain body\n"
	repo.notes["2024-01-03T00-00-00-000Z_Broken.md"] = ""
	repo.readErr["2024-01-03T00-00-00-000Z_Broken.md"] = errors.New("permission denied")
	service := newService(repo)

	summaries, err := service.ListSummaries(context.TODO())
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "hello world", summaries[0].FirstLine)
	assert.Equal(t, "First", summaries[0].Title)
	assert.Equal(t, "plain body", summaries[1].FirstLine)
	assert.Equal(t, "Second note", summaries[1].Title)
	assert.Equal(t, frontmatter.Placeholder, summaries[2].FirstLine)

	state, ok := service.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, 3, state.LastListed)
}

func TestService_Watch_Unsupported(t *testing.T) {
	service := newService(NewMockRepository())

	_, err := service.Watch(context.TODO())
	if err == nil {
		t.Fatal("expected error for non-watchable repo")
	}
	if err.Error() != "repository does not support watching" {
		t.Errorf("unexpected error msg: %v", err)
	}
}

func TestTitleAndStamp(t *testing.T) {
	id := "2024-01-02T03-04-05-123Z_Fix-crash.md"
	assert.Equal(t, "Fix crash", core.Title(id))
	assert.Equal(t, "2024-01-02T03-04-05-123Z", core.Stamp(id))

	assert.Equal(t, "A", core.Title("A.md"))
	assert.Equal(t, "", core.Stamp("A.md"))
}
