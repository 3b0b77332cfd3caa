// Package terminal drives the user's terminal directly: raw key input, screen
// size and clearing. Raw mode is always acquired in a scope that restores the
// previous mode on every exit path.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ClearScreen erases the display and moves the cursor home.
const ClearScreen = "\x1b[2J\x1b[H"

// ResetScreen leaves the alternate screen and shows the cursor.
const ResetScreen = "\x1b[?1049l\x1b[?25h"

// ErrNotTerminal is returned when raw mode or the size is requested on a
// stream that is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// TTY is a terminal on a pair of files (usually stdin and stdout).
type TTY struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	saved    *term.State
	baseline *term.State

	// pending holds bytes read past the last decoded key.
	pending []byte
}

// NewTTY returns a TTY reading keys from in and sizing on out.
func NewTTY(in, out *os.File) *TTY {
	return &TTY{in: in, out: out}
}

// Stdio returns the TTY of the current process.
func Stdio() *TTY {
	return NewTTY(os.Stdin, os.Stdout)
}

// IsTerminal reports whether input is an interactive terminal.
func (t *TTY) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// Height returns the number of rows of the terminal.
func (t *TTY) Height() (int, error) {
	for _, f := range []*os.File{t.out, t.in} {
		if f == nil || !term.IsTerminal(int(f.Fd())) {
			continue
		}
		_, h, err := term.GetSize(int(f.Fd()))
		if err != nil {
			return 0, fmt.Errorf("failed to get terminal size: %w", err)
		}
		return h, nil
	}
	return 0, ErrNotTerminal
}

// MakeRaw puts the input into raw mode. The returned function restores the
// previous mode; calling it more than once is harmless.
func (t *TTY) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saved != nil {
		return nil, errors.New("terminal is already in raw mode")
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.saved = state
	return t.Restore, nil
}

// Restore returns the terminal to the mode saved by MakeRaw, if any.
func (t *TTY) Restore() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saved == nil {
		return nil
	}
	state := t.saved
	t.saved = nil
	if err := term.Restore(int(t.in.Fd()), state); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}

// Snapshot records the current mode of the input as the one Reset returns to.
// Take it before any prompt changes the mode.
func (t *TTY) Snapshot() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	state, err := term.GetState(fd)
	if err != nil {
		return fmt.Errorf("failed to read terminal state: %w", err)
	}

	t.mu.Lock()
	t.baseline = state
	t.mu.Unlock()
	return nil
}

// Reset puts the terminal back in a usable state whoever changed it: it leaves
// the alternate screen, shows the cursor and restores the snapshot mode (or the
// mode saved by MakeRaw when there is no snapshot).
func (t *TTY) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.out != nil {
		if _, err := io.WriteString(t.out, ResetScreen); err != nil {
			return fmt.Errorf("failed to reset screen: %w", err)
		}
	}

	state := t.baseline
	if state == nil {
		state = t.saved
	}
	t.saved = nil
	if state == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), state); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}

// ReadKey returns the next keystroke, reading more input only when no
// undecoded bytes are left from an earlier read.
func (t *TTY) ReadKey() (Key, error) {
	if len(t.pending) == 0 {
		var buf [64]byte
		n, err := t.in.Read(buf[:])
		if err != nil {
			if errors.Is(err, io.EOF) {
				return KeyOther, io.EOF
			}
			return KeyOther, fmt.Errorf("failed to read key: %w", err)
		}
		t.pending = append(t.pending[:0], buf[:n]...)
	}

	k, n := NextKey(t.pending)
	t.pending = t.pending[n:]
	return k, nil
}
