package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		msg     tea.KeyMsg
	}{
		{"q quits", km.Quit, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{"ctrl+c quits", km.Quit, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"r restarts", km.Reset, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}},
		{"arrow up scrolls", km.Up, tea.KeyMsg{Type: tea.KeyUp}},
		{"k scrolls up", km.Up, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}},
		{"arrow down scrolls", km.Down, tea.KeyMsg{Type: tea.KeyDown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q does not match the binding", tt.msg.String())
			}
		})
	}
}
