package prompt

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func viewString(v tea.View) string {
	if s, ok := v.Content.(fmt.Stringer); ok {
		return s.String()
	}
	return ""
}

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

func TestConfirmUpdate(t *testing.T) {
	tests := []struct {
		key       string
		confirmed bool
		done      bool
		cancelled bool
	}{
		{"y", true, true, false},
		{"Y", true, true, false},
		{"n", false, true, false},
		{"enter", false, true, false},
		{"ctrl+c", false, true, true},
		{"esc", false, true, true},
		{"q", false, true, true},
		{"x", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			updated, _ := confirmModel{prompt: "Remove?"}.Update(keyPress(tt.key))
			m := updated.(confirmModel)
			if m.confirmed != tt.confirmed || m.done != tt.done || m.cancelled != tt.cancelled {
				t.Errorf("after %q: %+v", tt.key, m)
			}
		})
	}
}

func TestConfirmView(t *testing.T) {
	m := confirmModel{prompt: "Remove group billing?"}
	if view := viewString(m.View()); view != "Remove group billing? [y/N] " {
		t.Errorf("View() = %q", view)
	}
	m.done = true
	if view := viewString(m.View()); view != "" {
		t.Errorf("finished prompt rendered %q", view)
	}
}
