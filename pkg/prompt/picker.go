package prompt

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/devlog/pkg/pager"
)

type item struct {
	choice pager.Choice
}

func (i item) Title() string       { return i.choice.Label }
func (i item) Description() string { return i.choice.Description }
func (i item) FilterValue() string { return i.choice.Label }

type pickerModel struct {
	list    list.Model
	choice  string
	aborted bool
}

func newPickerModel(title string, choices []pager.Choice) pickerModel {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = item{choice: c}
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = title
	l.SetShowStatusBar(false)
	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.aborted = true
			return m, tea.Quit
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.choice = it.choice.Value
				return m, tea.Quit
			}
			return m, nil
		case "esc", "q":
			if m.list.FilterState() == list.Unfiltered {
				m.aborted = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.choice != "" || m.aborted {
		return ""
	}
	return m.list.View()
}
