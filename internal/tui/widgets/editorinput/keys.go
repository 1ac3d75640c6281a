package editorinput

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the widget handles before the editing engine
// sees a key.
type KeyMap struct {
	Edit   key.Binding
	Save   key.Binding
	Cancel key.Binding
	Paste  key.Binding
	Copy   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Paste:  key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Copy:   key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "copy")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Save, k.Cancel}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Edit, k.Save, k.Cancel}, {k.Paste, k.Copy}}
}
