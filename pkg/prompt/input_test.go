package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestInput_Submit(t *testing.T) {
	m := typeText(newInputModel(Question{Label: "Project name:"}), "  demo  ")
	m, cmd := press(m, tea.KeyEnter)

	got := m.(inputModel)
	assert.True(t, got.done)
	assert.Equal(t, "  demo  ", got.value, "answers are kept as typed")
	assert.NotNil(t, cmd)
}

func TestInput_BlankTakesDefault(t *testing.T) {
	m := typeText(newInputModel(Question{Label: "Project name:", Default: "devlog"}), "   ")
	m, _ = press(m, tea.KeyEnter)
	got := m.(inputModel)
	assert.True(t, got.done)
	assert.Equal(t, "devlog", got.value)
}

func TestInput_Default(t *testing.T) {
	m, _ := press(newInputModel(Question{Label: "Project name:", Default: "devlog"}), tea.KeyEnter)
	got := m.(inputModel)
	assert.True(t, got.done)
	assert.Equal(t, "devlog", got.value)
}

func TestInput_RequiredValue(t *testing.T) {
	m, cmd := press(newInputModel(Question{Label: "Title:"}), tea.KeyEnter)
	got := m.(inputModel)
	assert.False(t, got.done)
	assert.Equal(t, errRequired, got.err)
	assert.Nil(t, cmd)
	assert.Contains(t, got.View(), errRequired)
}

func TestInput_AllowEmpty(t *testing.T) {
	m, _ := press(newInputModel(Question{Label: "Tags:", AllowEmpty: true}), tea.KeyEnter)
	got := m.(inputModel)
	assert.True(t, got.done)
	assert.Equal(t, "", got.value)
}

func TestInput_Abort(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := typeText(newInputModel(Question{Label: "Title:"}), "half")
		m, cmd := press(m, k)
		got := m.(inputModel)
		assert.True(t, got.aborted, k.String())
		assert.False(t, got.done)
		assert.NotNil(t, cmd)
		assert.Empty(t, got.View())
	}
}

func TestInput_Multiline(t *testing.T) {
	var m tea.Model = newInputModel(Question{Label: "Content:", Multiline: true})
	m = typeText(m, "first")
	m, _ = press(m, tea.KeyEnter)
	assert.False(t, m.(inputModel).done, "enter adds a line")

	m = typeText(m, "second")
	m, cmd := press(m, tea.KeyCtrlD)

	got := m.(inputModel)
	assert.True(t, got.done)
	assert.Equal(t, "first\nsecond", got.value)
	assert.NotNil(t, cmd)
}
