// Package pager lets the user pick one note from a match set and read it
// page by page in the terminal.
//
// The pager is a small state machine with two nested loops. The selection
// loop asks a Picker for a note; the view loop renders the note and waits for
// one key at a time in raw mode:
//
//	SelectingFile --pick--> ViewingContent --esc--> SelectingFile
//	SelectingFile --abort-> Exited
//	ViewingContent --ctrl+c--> Exited
//
// Every page change clears the screen and redraws it in full.
package pager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/terminal"
)

const (
	// ReservedLines are the rows kept for the footer (a blank line and the hint).
	ReservedLines = 2
	// DefaultRows is assumed when the terminal size cannot be read.
	DefaultRows = 24
)

// State is the state of a pager run.
type State int

const (
	StateSelecting State = iota
	StateViewing
	StateExited
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateViewing:
		return "viewing"
	default:
		return "exited"
	}
}

// Choice is one entry offered by a Picker.
type Choice struct {
	Label       string
	Description string
	Value       string
}

// Picker asks the user to choose one of several entries.
// It returns core.ErrAborted when the user cancels.
type Picker interface {
	Pick(ctx context.Context, title string, choices []Choice) (string, error)
}

// Terminal is the raw keyboard and screen the pager draws on.
type Terminal interface {
	Height() (int, error)
	// MakeRaw enters raw mode and returns the function that leaves it.
	MakeRaw() (func() error, error)
	ReadKey() (terminal.Key, error)
}

// Loader returns the content of a note.
type Loader func(ctx context.Context, id string) (string, error)

var footerStyle = lipgloss.NewStyle().Faint(true)

// Pager is the interactive viewer.
type Pager struct {
	picker Picker
	term   Terminal
	load   Loader
	out    io.Writer
	logger *slog.Logger
	height int

	state   State
	session *Session
}

// Option configures a Pager.
type Option func(*Pager)

// WithOutput sets where pages are drawn. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pager) {
		p.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pager) {
		p.logger = logger
	}
}

// WithViewportHeight fixes the number of lines per page instead of deriving it
// from the terminal rows.
func WithViewportHeight(lines int) Option {
	return func(p *Pager) {
		p.height = lines
	}
}

// New creates a Pager.
func New(picker Picker, term Terminal, load Loader, opts ...Option) *Pager {
	p := &Pager{
		picker: picker,
		term:   term,
		load:   load,
		out:    os.Stdout,
		logger: slog.Default(),
		state:  StateExited,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state.
func (p *Pager) State() State { return p.state }

// Session returns the note being viewed, or nil.
func (p *Pager) Session() *Session { return p.session }

// Choices turns note IDs into picker entries.
func Choices(ids []string) []Choice {
	choices := make([]Choice, 0, len(ids))
	for _, id := range ids {
		desc := core.Stamp(id)
		if desc == "" {
			desc = id
		}
		choices = append(choices, Choice{Label: core.Title(id), Description: desc, Value: id})
	}
	return choices
}

// Run drives the select and view cycle over ids until the user exits.
func (p *Pager) Run(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	choices := Choices(ids)
	p.state = StateSelecting

	for {
		if err := ctx.Err(); err != nil {
			p.exit()
			return err
		}

		switch p.state {
		case StateSelecting:
			id, err := p.picker.Pick(ctx, "Select a file to view:", choices)
			if errors.Is(err, core.ErrAborted) {
				p.state = StateExited
				continue
			}
			if err != nil {
				p.exit()
				return fmt.Errorf("failed to select note: %w", err)
			}
			if err := p.open(ctx, id); err != nil {
				p.logger.Error("failed to open note", "id", id, "error", err)
				fmt.Fprintf(p.out, "Could not open %s: %v\n", id, err)
				continue
			}
			p.state = StateViewing

		case StateViewing:
			if err := p.view(); err != nil {
				p.exit()
				return err
			}

		case StateExited:
			p.exit()
			return nil
		}
	}
}

func (p *Pager) open(ctx context.Context, id string) error {
	content, err := p.load(ctx, id)
	if err != nil {
		return err
	}
	p.session = NewSession(id, content, p.viewportHeight())
	p.logger.Debug("viewing note", "id", id, "lines", p.session.LineCount(), "height", p.session.Height())
	return nil
}

// viewportHeight is computed once per loaded note.
func (p *Pager) viewportHeight() int {
	if p.height > 0 {
		return p.height
	}
	rows, err := p.term.Height()
	if err != nil {
		p.logger.Debug("terminal size unavailable, assuming default", "rows", DefaultRows, "error", err)
		rows = DefaultRows
	}
	return max(rows-ReservedLines, 1)
}

// view runs the key loop of StateViewing until the state changes.
func (p *Pager) view() error {
	p.render()
	for {
		key, err := p.awaitKey()
		if errors.Is(err, io.EOF) {
			p.session = nil
			p.state = StateExited
			return nil
		}
		if err != nil {
			return err
		}

		switch key {
		case terminal.KeyEscape:
			p.clear()
			p.session = nil
			p.state = StateSelecting
			return nil
		case terminal.KeyInterrupt:
			p.session = nil
			p.state = StateExited
			return nil
		case terminal.KeyUp:
			if p.session.ScrollUp() {
				p.render()
			}
		case terminal.KeyDown:
			if p.session.ScrollDown() {
				p.render()
			}
		}
	}
}

// awaitKey enters raw mode, waits for a key the view loop handles and always
// leaves raw mode before returning. Other keys are read and dropped.
func (p *Pager) awaitKey() (terminal.Key, error) {
	restore, err := p.term.MakeRaw()
	if err != nil {
		return terminal.KeyOther, fmt.Errorf("keyboard input unavailable: %w", err)
	}
	defer func() {
		if err := restore(); err != nil {
			p.logger.Error("failed to leave raw mode", "error", err)
		}
	}()

	for {
		key, err := p.term.ReadKey()
		if err != nil {
			return terminal.KeyOther, err
		}
		switch key {
		case terminal.KeyEscape, terminal.KeyUp, terminal.KeyDown, terminal.KeyInterrupt:
			return key, nil
		}
	}
}

func (p *Pager) render() {
	s := p.session
	var b strings.Builder
	b.WriteString(terminal.ClearScreen)
	for _, line := range s.Visible() {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	first, last := s.Offset()+1, s.Offset()+len(s.Visible())
	b.WriteByte('\n')
	b.WriteString(footerStyle.Render(fmt.Sprintf("lines %d-%d of %d · ↑/↓ scroll · esc back", first, last, s.LineCount())))
	b.WriteByte('\n')

	io.WriteString(p.out, b.String())
}

func (p *Pager) clear() {
	io.WriteString(p.out, terminal.ClearScreen)
}

func (p *Pager) exit() {
	p.session = nil
	p.state = StateExited
	p.clear()
}
