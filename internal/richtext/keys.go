package richtext

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the editing bindings handled by the model itself.
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	Home, End                                 key.Binding
	SelectAll                                 key.Binding

	Backspace, Delete, DeleteWord key.Binding
	Enter                         key.Binding

	Undo, Redo key.Binding

	Bold, Italic, Underline key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		// terminals differ on alt+arrows vs ctrl+arrows
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt+→", "word right")),

		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "line end")),
		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),

		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:     key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace"), key.WithHelp("ctrl+w", "delete word")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new paragraph")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),

		// ctrl+i is indistinguishable from tab in most terminals
		Bold:      key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:    key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Underline: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "underline")),
	}
}

// Apply runs the editing command bound to msg. It reports false when msg is
// not an editing key, leaving s unchanged.
func (k KeyMap) Apply(s State, msg tea.KeyMsg) (State, bool) {
	if msg.Paste {
		if len(msg.Runes) == 0 {
			return s, false
		}
		return s.InsertText(string(msg.Runes)), true
	}

	switch {
	case key.Matches(msg, k.Left):
		return s.MoveLeft(false), true
	case key.Matches(msg, k.Right):
		return s.MoveRight(false), true
	case key.Matches(msg, k.Up):
		return s.MoveUp(false), true
	case key.Matches(msg, k.Down):
		return s.MoveDown(false), true

	case key.Matches(msg, k.ShiftLeft):
		return s.MoveLeft(true), true
	case key.Matches(msg, k.ShiftRight):
		return s.MoveRight(true), true
	case key.Matches(msg, k.ShiftUp):
		return s.MoveUp(true), true
	case key.Matches(msg, k.ShiftDown):
		return s.MoveDown(true), true

	case key.Matches(msg, k.WordLeft):
		return s.MoveWordLeft(false), true
	case key.Matches(msg, k.WordRight):
		return s.MoveWordRight(false), true
	case key.Matches(msg, k.Home):
		return s.MoveLineStart(false), true
	case key.Matches(msg, k.End):
		return s.MoveLineEnd(false), true
	case key.Matches(msg, k.SelectAll):
		return s.SelectAll(), true

	case key.Matches(msg, k.Backspace):
		return s.Backspace(), true
	case key.Matches(msg, k.Delete):
		return s.Delete(), true
	case key.Matches(msg, k.DeleteWord):
		return s.DeleteWordBackward(), true
	case key.Matches(msg, k.Enter):
		return s.InsertText("\n"), true

	case key.Matches(msg, k.Undo):
		return s.Undo(), true
	case key.Matches(msg, k.Redo):
		return s.Redo(), true

	case key.Matches(msg, k.Bold):
		return s.ToggleInlineStyle(Bold), true
	case key.Matches(msg, k.Italic):
		return s.ToggleInlineStyle(Italic), true
	case key.Matches(msg, k.Underline):
		return s.ToggleInlineStyle(Underline), true
	}

	switch msg.Type {
	case tea.KeySpace:
		return s.InsertText(" "), true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return s, false
		}
		return s.InsertText(string(msg.Runes)), true
	}
	return s, false
}

// ShortHelp and FullHelp let the map feed a bubbles help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Bold, k.Italic, k.Underline, k.Undo}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.WordLeft, k.WordRight, k.Home, k.End},
		{k.ShiftLeft, k.ShiftRight, k.SelectAll, k.Backspace, k.Delete, k.DeleteWord, k.Enter},
		{k.Undo, k.Redo, k.Bold, k.Italic, k.Underline},
	}
}
