// Package prompt asks the user for input with small bubbletea programs: a
// one-line or multi-line text prompt and a filterable picker.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/pager"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Question describes one text prompt. Answers are returned as typed; blank
// answers (only whitespace) take the default.
type Question struct {
	Label   string
	Default string
	// Multiline collects several lines; the answer is submitted with Ctrl+D.
	Multiline  bool
	AllowEmpty bool
}

// Prompter runs prompts on a pair of streams.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	// lines reads answers when in is not a terminal.
	lines *bufio.Reader
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithInput sets the stream keys are read from. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(p *Prompter) {
		p.in = r
	}
}

// WithOutput sets the stream prompts are drawn on. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		p.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prompter) {
		p.logger = logger
	}
}

// New creates a Prompter.
func New(opts ...Option) *Prompter {
	p := &Prompter{
		in:     os.Stdin,
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask shows a text prompt and returns the answer.
// It returns core.ErrAborted when the user presses Esc or Ctrl+C.
//
// When the input is not a terminal (a pipe, a file, closed stdin) no prompt is
// drawn: the answer is the next line of input, and end of input aborts.
func (p *Prompter) Ask(ctx context.Context, q Question) (string, error) {
	if !p.interactive() {
		return p.askLine(q)
	}

	final, err := p.run(ctx, newInputModel(q))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", core.ErrAborted
	}
	return m.value, nil
}

// Pick shows a picker over choices and returns the value of the chosen entry.
// It returns core.ErrAborted when the user leaves without choosing.
func (p *Prompter) Pick(ctx context.Context, title string, choices []pager.Choice) (string, error) {
	if len(choices) == 0 || !p.interactive() {
		return "", core.ErrAborted
	}
	final, err := p.run(ctx, newPickerModel(title, choices), tea.WithAltScreen())
	if err != nil {
		return "", err
	}
	m := final.(pickerModel)
	if m.aborted || m.choice == "" {
		return "", core.ErrAborted
	}
	p.logger.Debug("picked", "value", m.choice)
	return m.choice, nil
}

func (p *Prompter) interactive() bool {
	f, ok := p.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *Prompter) askLine(q Question) (string, error) {
	if p.lines == nil {
		p.lines = bufio.NewReader(p.in)
	}

	line, err := p.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	if err != nil && line == "" {
		p.logger.Debug("no input for prompt", "label", q.Label)
		return "", core.ErrAborted
	}

	value := strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(value) == "" {
		value = q.Default
	}
	if strings.TrimSpace(value) == "" && !q.AllowEmpty {
		p.logger.Debug("empty answer", "label", q.Label)
		return "", core.ErrAborted
	}
	return value, nil
}

func (p *Prompter) run(ctx context.Context, m tea.Model, extra ...tea.ProgramOption) (tea.Model, error) {
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	}, extra...)

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}
