package frontmatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstContentLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no block", "first line\nsecond line", "first line"},
		{"leading blank lines", "\n\n   \nhello\n", "hello"},
		{"well formed block", "---\ndate: x\nproject: p\n---\n\nbody line\nmore", "body line"},
		{"indented sentinels", "  ---\n  date: x\n  ---\n  body\n", "body"},
		{"unterminated block", "---\ndate: x\nproject: p\nbody?", Placeholder},
		{"only sentinel", "---", Placeholder},
		{"empty", "", Placeholder},
		{"whitespace only", " \n\t\n", Placeholder},
		{"second block reopens", "---\na: 1\n---\n---\nhidden\n", Placeholder},
		{"crlf", "---\r\ndate: x\r\n---\r\n\r\nwindows body\r\n", "windows body"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FirstContentLine(tc.text))
		})
	}
}

func TestRender(t *testing.T) {
	h := Header{
		Date:     "2024-01-02T03:04:05.123Z",
		Project:  "demo",
		Template: "Bug",
		Tags:     []string{"urgent", "core"},
	}

	data, err := Render(h, "stack overflow")
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "---\n"), "content must open with the sentinel")
	assert.Contains(t, text, "date: 2024-01-02T03:04:05.123Z\n")
	assert.Contains(t, text, "project: demo\n")
	assert.Contains(t, text, "template: Bug\n")
	assert.Contains(t, text, "tags: [urgent, core]\n")
	assert.True(t, strings.HasSuffix(text, "---\n\nstack overflow\n"), "got %q", text)
	assert.Equal(t, "stack overflow", FirstContentLine(text))
}

func TestRender_EmptyTags(t *testing.T) {
	data, err := Render(Header{Date: "d", Project: "p", Template: "t"}, "body\n")
	require.NoError(t, err)
	assert.Contains(t, string(data), "tags: []\n")
	assert.True(t, strings.HasSuffix(string(data), "\nbody\n"))
}

func TestParse_RoundTrip(t *testing.T) {
	in := Header{
		Date:     "2024-01-02T03:04:05.123Z",
		Project:  "devlog",
		Template: "Learn",
		Tags:     []string{"go", "yaml"},
	}
	data, err := Render(in, "line one\nline two\n")
	require.NoError(t, err)

	out, body, err := Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, "line one\nline two\n", body)
}

func TestParse_NoBlock(t *testing.T) {
	h, body, err := Parse("just text\n")
	require.NoError(t, err)
	assert.Equal(t, Header{}, h)
	assert.Equal(t, "just text\n", body)
}

func TestParse_Unterminated(t *testing.T) {
	_, _, err := Parse("---\ndate: x\nno end")
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("expected ErrUnterminated, got %v", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, _, err := Parse("---\ntags: [unclosed\n---\nbody")
	assert.Error(t, err)
}
