package keys

import (
	"github.com/charmbracelet/bubbles/help"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/state"
	"draftinput/internal/tui/widgets/editorinput"
	"draftinput/internal/tui/widgets/helpoverlay"
)

// RenderHelp returns the grouped keys overlay for the editor host: the
// widget's own bindings, the editing bindings, then host-level ones.
func RenderHelp(s state.UIState, widget editorinput.KeyMap, editing richtext.KeyMap, host help.KeyMap) string {
	h := helpoverlay.NewHelpOverlay()
	return h.View(s,
		helpoverlay.Section{Title: "Editor", Keys: widget},
		helpoverlay.Section{Title: "Editing", Keys: editing},
		helpoverlay.Section{Title: "Window", Keys: host},
	)
}
