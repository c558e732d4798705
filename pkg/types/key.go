package types

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyEvent is the symbolic form of a keypress that the input router and its
// handlers consume. Name is a lowercase key name ("up", "left", "escape", "f");
// modifiers are carried separately so handlers can match on them independently.
type KeyEvent struct {
	Name  string
	Ctrl  bool
	Alt   bool
	Shift bool
}

// String renders the event in the conventional "ctrl+alt+x" form.
func (k KeyEvent) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(k.Name)
	return b.String()
}

// KeyEventFrom normalizes a bubbletea key message into a KeyEvent.
func KeyEventFrom(msg tea.KeyMsg) KeyEvent {
	switch msg.Type {
	case tea.KeyUp:
		return KeyEvent{Name: "up"}
	case tea.KeyDown:
		return KeyEvent{Name: "down"}
	case tea.KeyLeft:
		return KeyEvent{Name: "left"}
	case tea.KeyRight:
		return KeyEvent{Name: "right"}
	case tea.KeyEnter:
		return KeyEvent{Name: "enter"}
	case tea.KeySpace:
		return KeyEvent{Name: "space"}
	case tea.KeyEsc:
		return KeyEvent{Name: "escape"}
	case tea.KeyTab:
		return KeyEvent{Name: "tab"}
	case tea.KeyShiftTab:
		return KeyEvent{Name: "tab", Shift: true}
	case tea.KeyBackspace:
		return KeyEvent{Name: "backspace"}
	case tea.KeyDelete:
		return KeyEvent{Name: "delete"}
	case tea.KeyHome:
		return KeyEvent{Name: "home"}
	case tea.KeyEnd:
		return KeyEvent{Name: "end"}
	case tea.KeyPgUp:
		return KeyEvent{Name: "pgup"}
	case tea.KeyPgDown:
		return KeyEvent{Name: "pgdown"}
	case tea.KeyRunes:
		return KeyEvent{Name: string(msg.Runes), Alt: msg.Alt}
	}

	// Ctrl combinations and anything else come through as strings like
	// "ctrl+c"; split the modifiers back out.
	name := msg.String()
	ev := KeyEvent{}
	for {
		switch {
		case strings.HasPrefix(name, "ctrl+"):
			ev.Ctrl = true
			name = strings.TrimPrefix(name, "ctrl+")
		case strings.HasPrefix(name, "alt+"):
			ev.Alt = true
			name = strings.TrimPrefix(name, "alt+")
		case strings.HasPrefix(name, "shift+"):
			ev.Shift = true
			name = strings.TrimPrefix(name, "shift+")
		default:
			ev.Name = name
			return ev
		}
	}
}
