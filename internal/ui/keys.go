package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(compact bool) string {
	if compact {
		return "space pause  a pointer  q quit"
	}
	return "space pause  a pointer  tab preset  +/- coupling  s reseed  q quit"
}
