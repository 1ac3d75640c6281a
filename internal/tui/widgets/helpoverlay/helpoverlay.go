package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"draftinput/internal/tui/state"
)

// Section is a titled group of key maps.
type Section struct {
	Title string
	Keys  help.KeyMap
}

type HelpOverlay struct {
	model help.Model
}

func NewHelpOverlay() HelpOverlay {
	m := help.New()
	m.ShowAll = true
	return HelpOverlay{model: m}
}

// View returns grouped keys help with the current mode indicated.
func (h HelpOverlay) View(s state.UIState, sections ...Section) string {
	mode := string(s.Mode)
	if mode == "" {
		mode = string(state.ModeDisplay)
	}
	if s.Width > 0 {
		h.model.Width = s.Width
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Mode: %s)\n", mode)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.Title)
		b.WriteString(h.model.View(sec.Keys))
		b.WriteString("\n")
	}
	return b.String()
}

// Bindings adapts a flat binding list to help.KeyMap.
type Bindings []key.Binding

func (b Bindings) ShortHelp() []key.Binding  { return b }
func (b Bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
