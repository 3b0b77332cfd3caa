// Package frontmatter reads and writes the metadata block at the top of a note.
//
// A metadata block is a run of `key: value` lines enclosed by two sentinel
// lines (`---`). The block is YAML; tags are written as a flow sequence so that
// a note header stays on one line per key:
//
//	---
//	date: 2024-01-02T03:04:05.123Z
//	project: demo
//	template: Bug
//	tags: [urgent, core]
//	---
//
//	note body
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel is the line that opens and closes a metadata block.
const Sentinel = "---"

// Placeholder is returned by FirstContentLine when a note has no body text.
const Placeholder = "No content"

// ErrUnterminated is returned by Parse when a metadata block is opened but never closed.
var ErrUnterminated = errors.New("frontmatter started but no closing delimiter found")

// Header is the metadata stored in a note's block.
type Header struct {
	Date     string   `yaml:"date" json:"date"`
	Project  string   `yaml:"project" json:"project"`
	Template string   `yaml:"template" json:"template"`
	Tags     []string `yaml:"tags" json:"tags"`
}

// FirstContentLine returns the first non-empty line outside the metadata block.
//
// Every line equal to the sentinel (after trimming) toggles the "inside block"
// state, so an unterminated block hides everything after it.
func FirstContentLine(text string) string {
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == Sentinel {
			inBlock = !inBlock
			continue
		}
		if trimmed == "" || inBlock {
			continue
		}
		return trimmed
	}
	return Placeholder
}

// Render serializes a header and a body into note content.
func Render(h Header, body string) ([]byte, error) {
	tags := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, t := range h.Tags {
		tags.Content = append(tags.Content, str(t))
	}

	// The date is left untagged so it is written plain instead of quoted.
	date := &yaml.Node{Kind: yaml.ScalarNode, Value: h.Date}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		str("date"), date,
		str("project"), str(h.Project),
		str("template"), str(h.Template),
		str("tags"), tags,
	)

	var buf bytes.Buffer
	buf.WriteString(Sentinel + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	buf.WriteString(Sentinel + "\n\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Parse splits note content into its header and body.
// Content that does not start with a sentinel line has an empty header.
func Parse(text string) (Header, string, error) {
	var h Header
	rest, ok := cutSentinel(text)
	if !ok {
		return h, text, nil
	}

	block, body, found := cutBlock(rest)
	if !found {
		return h, "", ErrUnterminated
	}

	if err := yaml.Unmarshal([]byte(block), &h); err != nil {
		return Header{}, "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	// Render separates the block from the body with one blank line.
	if b, ok := strings.CutPrefix(body, "\r\n"); ok {
		body = b
	} else {
		body = strings.TrimPrefix(body, "\n")
	}
	return h, body, nil
}

func cutSentinel(text string) (string, bool) {
	for _, prefix := range []string{Sentinel + "\n", Sentinel + "\r\n"} {
		if rest, ok := strings.CutPrefix(text, prefix); ok {
			return rest, true
		}
	}
	return "", false
}

// cutBlock finds the closing sentinel line and returns the text before and after it.
func cutBlock(rest string) (block, body string, found bool) {
	offset := 0
	for offset <= len(rest) {
		end := strings.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		next := len(rest)
		if end >= 0 {
			line = rest[offset : offset+end]
			next = offset + end + 1
		}
		if strings.TrimSpace(line) == Sentinel {
			return rest[:offset], rest[next:], true
		}
		if end < 0 {
			break
		}
		offset = next
	}
	return "", "", false
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
