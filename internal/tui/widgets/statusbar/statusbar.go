package statusbar

import (
	"fmt"
	"strings"

	"draftinput/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState) string {
	mode := "[" + strings.ToUpper(string(s.Mode)) + "]"
	if s.Mode == "" {
		mode = "[DISPLAY]"
	}
	parts := []string{mode}
	if s.Loading {
		parts = append(parts, "Saving…")
	}
	if s.Limit > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.Length, s.Limit))
	} else {
		parts = append(parts, fmt.Sprintf("Len:%d", s.Length))
	}
	if s.ShowDiff {
		view := "Unified"
		if s.View == state.SideBySide {
			view = "Side-by-side"
		}
		parts = append(parts, "Diff: "+view)
	}
	parts = append(parts, fmt.Sprintf("W:%d", s.Width))
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
