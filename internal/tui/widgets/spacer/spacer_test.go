package spacer

import "testing"

func TestSpacerSwallowsPress(t *testing.T) {
	s := New(4)
	if s.View() != "    " {
		t.Fatalf("view = %q", s.View())
	}
	if !s.Press() {
		t.Fatalf("press should be handled")
	}
	if New(-1).View() != "" {
		t.Fatalf("negative width should render nothing")
	}
}
