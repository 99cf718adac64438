package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command")
	}
	return cmd()
}

func TestPickerSelectsDefaultPreset(t *testing.T) {
	m := NewPicker()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := runCmd(t, cmd).(PresetSelectedMsg)
	if !ok {
		t.Fatalf("got %T, want PresetSelectedMsg", cmd())
	}
	if msg.Name != "classic" || msg.Modifiers != "" {
		t.Fatalf("got %+v, want classic without modifiers", msg)
	}
}

func TestPickerCancel(t *testing.T) {
	m := NewPicker()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := runCmd(t, cmd).(PickerCancelledMsg); !ok {
		t.Fatal("expected PickerCancelledMsg")
	}
}

func openCustom(t *testing.T) PickerModel {
	t.Helper()
	m := NewPicker()
	for range m.list.Items() {
		if _, ok := m.list.SelectedItem().(customItem); ok {
			break
		}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Custom() {
		t.Fatal("expected custom modifier input")
	}
	return m
}

func TestPickerCustomModifiers(t *testing.T) {
	m := openCustom(t)
	m.input.SetValue("envelope;local:gain=0.5")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := runCmd(t, cmd).(PresetSelectedMsg)
	if !ok {
		t.Fatal("expected PresetSelectedMsg")
	}
	if msg.Modifiers != "envelope;local:gain=0.5" {
		t.Fatalf("modifiers = %q", msg.Modifiers)
	}
}

func TestPickerRejectsBadModifiers(t *testing.T) {
	m := openCustom(t)
	m.input.SetValue("sparkle")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command for an invalid chain")
	}
	if !strings.Contains(m.View(), "unknown modifier") {
		t.Fatalf("expected error in view, got:\n%s", m.View())
	}
}

func TestPickerEscLeavesCustomMode(t *testing.T) {
	m := openCustom(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Custom() {
		t.Fatal("expected list mode after esc")
	}
}
