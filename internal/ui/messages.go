package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg time.Time

// PresetSelectedMsg is emitted by the picker when a preset is chosen.
// Modifiers, when non-empty, replaces the preset's modifier chain.
type PresetSelectedMsg struct {
	Name      string
	Modifiers string
}

// PickerCancelledMsg is emitted when the picker is dismissed.
type PickerCancelledMsg struct{}

func frameCmd(fps int) tea.Cmd {
	if fps < 1 {
		fps = 1
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
