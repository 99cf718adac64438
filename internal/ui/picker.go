package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/preset"
)

type presetItem struct {
	name string
	desc string
}

func (i presetItem) Title() string       { return i.name }
func (i presetItem) Description() string { return i.desc }
func (i presetItem) FilterValue() string { return i.name }

type customItem struct{}

func (i customItem) Title() string       { return "Custom modifiers..." }
func (i customItem) Description() string { return "classic lines with your own modifier chain" }
func (i customItem) FilterValue() string { return "custom" }

// PickerModel lists the presets. It is meant to be embedded in another
// model: choosing emits PresetSelectedMsg, dismissing emits
// PickerCancelledMsg.
type PickerModel struct {
	list       list.Model
	input      textinput.Model
	customMode bool
	inputErr   string
}

// NewPicker creates a picker over every preset.
func NewPicker() PickerModel {
	var items []list.Item
	for _, p := range preset.All() {
		items = append(items, presetItem{name: p.Name, desc: p.Description})
	}
	items = append(items, customItem{})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "wavefield"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "local:gain=0.8;envelope;noise:seed=3"
	ti.CharLimit = 256
	ti.Width = 60

	return PickerModel{list: l, input: ti}
}

func (m PickerModel) Init() tea.Cmd {
	return tea.SetWindowTitle("wavefield")
}

func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	if m.customMode {
		return m.updateCustomInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case customItem:
				m.customMode = true
				m.inputErr = ""
				m.input.Focus()
				return m, tea.Batch(textinput.Blink, tea.SetWindowTitle("wavefield — modifiers"))
			case presetItem:
				return m, selectCmd(PresetSelectedMsg{Name: item.name})
			}
		case "q", "esc", "ctrl+c":
			return m, selectCmd(PickerCancelledMsg{})
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) updateCustomInput(msg tea.Msg) (PickerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			chain := strings.TrimSpace(m.input.Value())
			if chain == "" {
				chain = "none"
			}
			if _, err := field.ParseModifiers(chain); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			return m, selectCmd(PresetSelectedMsg{Name: preset.Default, Modifiers: chain})
		case "esc":
			m.customMode = false
			m.inputErr = ""
			m.input.Reset()
			m.input.Blur()
			return m, tea.SetWindowTitle("wavefield")
		case "ctrl+c":
			return m, selectCmd(PickerCancelledMsg{})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func selectCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Custom reports whether the modifier input is open.
func (m PickerModel) Custom() bool {
	return m.customMode
}

func (m PickerModel) View() string {
	if m.customMode {
		s := "\n"
		s += "  " + headerStyle.Render("wavefield") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Modifiers:") + "\n"
		s += "  " + m.input.View() + "\n"
		if m.inputErr != "" {
			s += "  " + errorStyle.Render(m.inputErr) + "\n"
		}
		s += "\n"
		s += "  " + helpStyle.Render("enter confirm  esc back  ctrl+c quit") + "\n"
		return s
	}
	return m.list.View()
}
