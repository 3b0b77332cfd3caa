package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const errRequired = "a value is required"

type inputModel struct {
	question Question
	line     textinput.Model
	area     textarea.Model

	value   string
	err     string
	done    bool
	aborted bool
}

func newInputModel(q Question) inputModel {
	m := inputModel{question: q}
	if q.Multiline {
		m.area = textarea.New()
		m.area.ShowLineNumbers = false
		m.area.Placeholder = q.Default
		m.area.Focus()
	} else {
		m.line = textinput.New()
		m.line.Placeholder = q.Default
		m.line.Focus()
	}
	return m
}

func (m inputModel) Init() tea.Cmd {
	if m.question.Multiline {
		return textarea.Blink
	}
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if !m.question.Multiline {
				return m.submit()
			}
		case tea.KeyCtrlD:
			if m.question.Multiline {
				return m.submit()
			}
		}
	}

	var cmd tea.Cmd
	if m.question.Multiline {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.line, cmd = m.line.Update(msg)
	}
	return m, cmd
}

func (m inputModel) submit() (tea.Model, tea.Cmd) {
	var value string
	if m.question.Multiline {
		value = m.area.Value()
	} else {
		value = m.line.Value()
	}

	if strings.TrimSpace(value) == "" {
		value = m.question.Default
	}
	if strings.TrimSpace(value) == "" && !m.question.AllowEmpty {
		m.err = errRequired
		return m, nil
	}

	m.value = value
	m.done = true
	return m, tea.Quit
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(m.question.Label))
	b.WriteString("\n")
	if m.question.Multiline {
		b.WriteString(m.area.View())
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("ctrl+d submit · esc cancel"))
	} else {
		b.WriteString(m.line.View())
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter submit · esc cancel"))
	}
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err))
	}
	b.WriteString("\n")
	return b.String()
}
