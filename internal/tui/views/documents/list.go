package documents

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"

	"draftinput/internal/store"
	"draftinput/internal/tui/util"
	chips "draftinput/internal/tui/widgets/tagchips"
)

// RenderTags is a thin adapter over the TagChips widget for an open document.
func RenderTags(saved, current string, limit int, truncated, noColor bool) string {
	return chips.View(util.ComputeTags(saved, current, limit, truncated), noColor)
}

// RenderRow formats one list entry as "id  preview  age", clipped to width.
func RenderRow(s store.Summary, now time.Time, width int) string {
	line := fmt.Sprintf("%-12s %s  %s", runewidth.Truncate(s.ID, 12, "…"), s.Preview, age(now.Sub(s.UpdatedAt)))
	if width > 0 {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}

func age(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
