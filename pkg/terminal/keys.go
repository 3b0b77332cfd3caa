package terminal

// Key is a decoded keystroke.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyUp
	KeyDown
	// KeyInterrupt is Ctrl+C read in raw mode, where it no longer raises SIGINT.
	KeyInterrupt
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "esc"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyInterrupt:
		return "ctrl+c"
	default:
		return "other"
	}
}

// DecodeKey returns the first key of b.
func DecodeKey(b []byte) Key {
	k, _ := NextKey(b)
	return k
}

// NextKey decodes the first key of b and reports how many bytes it used.
// Several keys can arrive in one read (key repeat, fast typing), so callers
// keep b[n:] for the next call.
//
// A lone ESC byte, or ESC not followed by a sequence introducer, is the Escape
// key. Arrow keys arrive as CSI "ESC [ A" or SS3 "ESC O A"; other CSI
// sequences (parameters and a final byte) are consumed whole as KeyOther.
func NextKey(b []byte) (Key, int) {
	if len(b) == 0 {
		return KeyOther, 0
	}

	switch b[0] {
	case 0x03:
		return KeyInterrupt, 1
	case 0x1b:
	default:
		return KeyOther, 1
	}

	if len(b) < 3 || (b[1] != '[' && b[1] != 'O') {
		return KeyEscape, 1
	}

	if b[1] == 'O' {
		return arrow(b[2]), 3
	}

	// CSI: parameter and intermediate bytes up to a final byte in 0x40-0x7e.
	for i := 2; i < len(b); i++ {
		c := b[i]
		if c >= 0x40 && c <= 0x7e {
			if i == 2 {
				return arrow(c), 3
			}
			return KeyOther, i + 1
		}
		if c < 0x20 || c > 0x3f {
			// Not a CSI byte: the sequence was cut short.
			return KeyOther, i
		}
	}
	return KeyOther, len(b)
}

func arrow(c byte) Key {
	switch c {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	}
	return KeyOther
}
