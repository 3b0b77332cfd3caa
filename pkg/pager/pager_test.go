package pager

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/terminal"
)

// scriptedPicker returns its picks in order, then aborts.
type scriptedPicker struct {
	picks  []string
	calls  int
	offers [][]Choice
}

func (p *scriptedPicker) Pick(_ context.Context, _ string, choices []Choice) (string, error) {
	p.offers = append(p.offers, choices)
	p.calls++
	if len(p.picks) == 0 {
		return "", core.ErrAborted
	}
	id := p.picks[0]
	p.picks = p.picks[1:]
	return id, nil
}

// fakeTerminal replays keys and counts raw mode transitions.
type fakeTerminal struct {
	rows    int
	sizeErr error
	keys    []terminal.Key
	raw     bool
	enters  int
	leaves  int
	rawErr  error
}

func (f *fakeTerminal) Height() (int, error) {
	return f.rows, f.sizeErr
}

func (f *fakeTerminal) MakeRaw() (func() error, error) {
	if f.rawErr != nil {
		return nil, f.rawErr
	}
	if f.raw {
		return nil, errors.New("already raw")
	}
	f.raw = true
	f.enters++
	return func() error {
		f.raw = false
		f.leaves++
		return nil
	}, nil
}

func (f *fakeTerminal) ReadKey() (terminal.Key, error) {
	if !f.raw {
		return terminal.KeyOther, errors.New("read outside raw mode")
	}
	if len(f.keys) == 0 {
		return terminal.KeyOther, io.EOF
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func staticLoader(notes map[string]string) Loader {
	return func(_ context.Context, id string) (string, error) {
		content, ok := notes[id]
		if !ok {
			return "", core.ErrNotFound
		}
		return content, nil
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// frames splits the output on screen clears and drops the empty lead.
func frames(out string) []string {
	parts := strings.Split(out, terminal.ClearScreen)
	return parts[1:]
}

func repeat(k terminal.Key, n int) []terminal.Key {
	keys := make([]terminal.Key, n)
	for i := range keys {
		keys[i] = k
	}
	return keys
}

func TestPager_ScrollSession(t *testing.T) {
	keys := []terminal.Key{terminal.KeyDown}
	keys = append(keys, repeat(terminal.KeyDown, 79)...)
	keys = append(keys, repeat(terminal.KeyDown, 5)...)
	keys = append(keys, terminal.KeyEscape)

	term := &fakeTerminal{rows: 22, keys: keys}
	picker := &scriptedPicker{picks: []string{"big.md"}}
	var out bytes.Buffer

	p := New(picker, term, staticLoader(map[string]string{"big.md": numbered(100)}),
		WithOutput(&out), WithLogger(discard()))
	require.NoError(t, p.Run(context.Background(), []string{"big.md"}))

	f := frames(out.String())
	// initial page, 80 scrolls, clear on escape, clear on exit
	require.Len(t, f, 83)

	assert.True(t, strings.HasPrefix(f[0], "line 0\n"))
	assert.Contains(t, f[0], "line 19\n")
	assert.NotContains(t, f[0], "line 20\n")
	assert.Contains(t, f[0], "lines 1-20 of 100")

	assert.True(t, strings.HasPrefix(f[1], "line 1\n"))
	assert.Contains(t, f[1], "line 20\n")

	assert.True(t, strings.HasPrefix(f[80], "line 80\n"))
	assert.Contains(t, f[80], "line 99\n")
	assert.Contains(t, f[80], "lines 81-100 of 100")

	assert.Equal(t, "", f[81])
	assert.Equal(t, "", f[82])

	assert.Equal(t, 2, picker.calls, "escape returns to selection")
	assert.Equal(t, StateExited, p.State())
	assert.Equal(t, term.enters, term.leaves)
	assert.False(t, term.raw)
}

func TestPager_UpAtTopDoesNotRedraw(t *testing.T) {
	term := &fakeTerminal{rows: 10, keys: []terminal.Key{terminal.KeyUp, terminal.KeyOther, terminal.KeyEscape}}
	var out bytes.Buffer
	p := New(&scriptedPicker{picks: []string{"a.md"}}, term, staticLoader(map[string]string{"a.md": numbered(30)}),
		WithOutput(&out), WithLogger(discard()))

	require.NoError(t, p.Run(context.Background(), []string{"a.md"}))
	// page, escape clear, exit clear
	assert.Len(t, frames(out.String()), 3)
	// up at the top and escape each end one raw scope; the other key does not
	assert.Equal(t, 2, term.enters)
	assert.Equal(t, 2, term.leaves)
}

func TestPager_InterruptExits(t *testing.T) {
	term := &fakeTerminal{rows: 10, keys: []terminal.Key{terminal.KeyDown, terminal.KeyInterrupt}}
	picker := &scriptedPicker{picks: []string{"a.md", "a.md"}}
	p := New(picker, term, staticLoader(map[string]string{"a.md": numbered(30)}),
		WithOutput(io.Discard), WithLogger(discard()))

	require.NoError(t, p.Run(context.Background(), []string{"a.md"}))
	assert.Equal(t, 1, picker.calls, "ctrl+c ends the session without reselecting")
	assert.Equal(t, StateExited, p.State())
	assert.Nil(t, p.Session())
	assert.Equal(t, term.enters, term.leaves)
}

func TestPager_ViewportHeight(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		err   error
		fixed int
		want  int
	}{
		{"rows minus footer", 22, nil, 0, 20},
		{"tiny terminal", 2, nil, 0, 1},
		{"size unavailable", 0, terminal.ErrNotTerminal, 0, DefaultRows - ReservedLines},
		{"fixed height", 50, nil, 7, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term := &fakeTerminal{rows: tc.rows, sizeErr: tc.err}
			p := New(&scriptedPicker{}, term, staticLoader(nil), WithViewportHeight(tc.fixed), WithLogger(discard()))
			assert.Equal(t, tc.want, p.viewportHeight())
		})
	}
}

func TestPager_LoadErrorReturnsToSelection(t *testing.T) {
	term := &fakeTerminal{rows: 10}
	picker := &scriptedPicker{picks: []string{"gone.md"}}
	var out bytes.Buffer
	p := New(picker, term, staticLoader(map[string]string{}), WithOutput(&out), WithLogger(discard()))

	require.NoError(t, p.Run(context.Background(), []string{"gone.md"}))
	assert.Equal(t, 2, picker.calls)
	assert.Contains(t, out.String(), "Could not open gone.md")
	assert.Zero(t, term.enters)
}

func TestPager_EmptyIDs(t *testing.T) {
	picker := &scriptedPicker{}
	var out bytes.Buffer
	p := New(picker, &fakeTerminal{}, staticLoader(nil), WithOutput(&out))

	require.NoError(t, p.Run(context.Background(), nil))
	assert.Zero(t, picker.calls)
	assert.Empty(t, out.String())
}

func TestPager_PickerFailure(t *testing.T) {
	boom := errors.New("boom")
	p := New(pickerFunc(func() (string, error) { return "", boom }), &fakeTerminal{}, staticLoader(nil),
		WithOutput(io.Discard), WithLogger(discard()))

	err := p.Run(context.Background(), []string{"a.md"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateExited, p.State())
}

func TestPager_RawModeUnavailable(t *testing.T) {
	term := &fakeTerminal{rows: 10, rawErr: terminal.ErrNotTerminal}
	p := New(&scriptedPicker{picks: []string{"a.md"}}, term, staticLoader(map[string]string{"a.md": "x"}),
		WithOutput(io.Discard), WithLogger(discard()))

	err := p.Run(context.Background(), []string{"a.md"})
	assert.ErrorIs(t, err, terminal.ErrNotTerminal)
}

func TestPager_ClosedInputExits(t *testing.T) {
	term := &fakeTerminal{rows: 10}
	p := New(&scriptedPicker{picks: []string{"a.md"}}, term, staticLoader(map[string]string{"a.md": "x"}),
		WithOutput(io.Discard), WithLogger(discard()))

	require.NoError(t, p.Run(context.Background(), []string{"a.md"}))
	assert.Equal(t, 1, term.leaves)
}

func TestPager_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	picker := &scriptedPicker{picks: []string{"a.md"}}
	p := New(picker, &fakeTerminal{}, staticLoader(nil), WithOutput(io.Discard))

	err := p.Run(ctx, []string{"a.md"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, picker.calls)
}

func TestChoices(t *testing.T) {
	c := Choices([]string{"2024-01-02T03-04-05-123Z_Fix-crash.md", "plain.md"})
	require.Len(t, c, 2)
	assert.Equal(t, "2024-01-02T03-04-05-123Z_Fix-crash.md", c[0].Value)
	assert.Equal(t, core.Title(c[0].Value), c[0].Label)
	assert.Equal(t, "plain.md", c[1].Description)
}

type pickerFunc func() (string, error)

func (f pickerFunc) Pick(context.Context, string, []Choice) (string, error) { return f() }
