package spacer

import "strings"

// Spacer fills layout space. Presses on it are swallowed so they never move
// the editor selection.
type Spacer struct {
	Width int
}

func New(width int) Spacer { return Spacer{Width: width} }

func (s Spacer) View() string {
	if s.Width <= 0 {
		return ""
	}
	return strings.Repeat(" ", s.Width)
}

// Press consumes a press and reports it handled.
func (Spacer) Press() bool { return true }
