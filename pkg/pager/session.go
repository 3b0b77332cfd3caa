package pager

import "strings"

// Session is the scroll state of one note being viewed.
//
// The offset is the index of the first visible line and always satisfies
// 0 <= offset <= max(0, LineCount()-Height()).
type Session struct {
	ID     string
	lines  []string
	offset int
	height int
}

// NewSession splits content into lines and starts at the top.
// A height below 1 is raised to 1.
func NewSession(id, content string, height int) *Session {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return &Session{
		ID:     id,
		lines:  strings.Split(content, "\n"),
		height: max(height, 1),
	}
}

// Offset returns the index of the first visible line.
func (s *Session) Offset() int { return s.offset }

// Height returns the number of lines shown per page.
func (s *Session) Height() int { return s.height }

// LineCount returns the number of lines of the note.
func (s *Session) LineCount() int { return len(s.lines) }

// MaxOffset is the largest offset that still fills a page.
func (s *Session) MaxOffset() int {
	return max(0, len(s.lines)-s.height)
}

// ScrollUp moves one line up. It reports whether the offset changed.
func (s *Session) ScrollUp() bool {
	if s.offset == 0 {
		return false
	}
	s.offset--
	return true
}

// ScrollDown moves one line down. It reports whether the offset changed.
func (s *Session) ScrollDown() bool {
	if s.offset+s.height >= len(s.lines) {
		return false
	}
	s.offset++
	return true
}

// Visible returns the lines of the current page.
func (s *Session) Visible() []string {
	end := min(s.offset+s.height, len(s.lines))
	return s.lines[s.offset:end]
}
