package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/olivier-w/wavefield/internal/config"
	"github.com/olivier-w/wavefield/internal/ui"
)

type startupResolvedMsg struct {
	model ui.Model
	err   error
}

// startupModel shows the preset picker and hands over to the wave once a
// preset has been built.
type startupModel struct {
	picker ui.PickerModel
	opts   config.Options
	logger *log.Logger
	errMsg string
	width  int
	height int
}

func newStartupModel(opts config.Options, logger *log.Logger) startupModel {
	return startupModel{
		picker: ui.NewPicker(),
		opts:   opts,
		logger: logger,
	}
}

func (m startupModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ui.PickerCancelledMsg:
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case ui.PresetSelectedMsg:
		m.errMsg = ""
		return m, buildModelCmd(m.opts.WithPreset(msg.Name, msg.Modifiers), m.logger)

	case startupResolvedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}

		cmds := []tea.Cmd{msg.model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return msg.model, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m startupModel) View() string {
	if m.errMsg == "" {
		return m.picker.View()
	}
	return "\n  " + startupErrorStyle.Render(m.errMsg) + "\n" + m.picker.View()
}

func buildModelCmd(opts config.Options, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		model, err := buildModel(opts, logger)
		return startupResolvedMsg{model: model, err: err}
	}
}

func buildModel(opts config.Options, logger *log.Logger) (ui.Model, error) {
	settings, err := ui.SettingsFrom(opts, logger)
	if err != nil {
		return ui.Model{}, err
	}
	return ui.New(settings)
}

var startupErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
