package documents

import (
	"strings"
	"testing"
	"time"

	"draftinput/internal/store"
)

func TestRenderTagsIntegration(t *testing.T) {
	out := RenderTags("Hello", "Hello world", 12, true, true)

	wants := []string{"[Edited]", "[Truncated]", "[Left 1]", "[Len 11]", "[Max 12]"}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected %q in output: %s", w, out)
		}
	}
}

func TestRenderRow(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	s := store.Summary{ID: "notes", Preview: "first line second", UpdatedAt: now.Add(-2 * time.Hour)}
	out := RenderRow(s, now, 0)
	if !strings.HasPrefix(out, "notes ") || !strings.Contains(out, "first line second") || !strings.HasSuffix(out, "2h ago") {
		t.Fatalf("row = %q", out)
	}
	if got := RenderRow(s, now, 10); len([]rune(got)) > 10 {
		t.Fatalf("row not clipped: %q", got)
	}
}
