package tagchips

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"draftinput/internal/tui/state"
	"draftinput/internal/tui/util"
)

// View renders editor status tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	// Honor NO_COLOR env var in addition to explicit param
	if !noColor && os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(" " + label + " ")
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.EDITED:
		return "Edited"
	case state.TRUNCATED:
		return "Truncated"
	case state.NEAR_LIMIT:
		return fmt.Sprintf("Left %d", t.Value)
	case state.LEN:
		return fmt.Sprintf("Len %d", t.Value)
	case state.MAX:
		return fmt.Sprintf("Max %d", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	white := lipgloss.Color("#FFFFFF")
	switch t.Kind {
	case state.EDITED:
		return base.Background(lipgloss.Color("#3D6DFF")).Foreground(white)
	case state.TRUNCATED:
		return base.Background(p.Danger).Foreground(white)
	case state.NEAR_LIMIT:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	case state.LEN:
		return base.Background(p.Muted).Foreground(white)
	case state.MAX:
		return base.Background(lipgloss.Color("#5A5A5A")).Foreground(white)
	default:
		return base
	}
}
