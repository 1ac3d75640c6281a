package state

// BeginEdit opens an edit session.
func BeginEdit(s Session) Session {
	s.Editing = true
	return s
}

// BeginSave starts a save attempt and returns its token. It reports false,
// leaving s unchanged, while another attempt is loading.
func BeginSave(s Session) (Session, uint64, bool) {
	if s.Loading {
		return s, 0, false
	}
	s.Token++
	s.Loading = true
	return s, s.Token, true
}

// ToDisplay ends the edit session and clears loading. Applying it twice is
// the same as applying it once.
func ToDisplay(s Session) Session {
	s.Editing = false
	s.Loading = false
	return s
}

// Resolve applies the outcome of the save attempt identified by token.
// Success and failure both return to display; stale tokens are ignored.
func Resolve(s Session, token uint64) (Session, bool) {
	if !s.Loading || token != s.Token {
		return s, false
	}
	return ToDisplay(s), true
}

// Cancel ends the edit session without saving. It is refused while loading.
func Cancel(s Session) (Session, bool) {
	if s.Loading {
		return s, false
	}
	s.Token++
	return ToDisplay(s), true
}

// Supersede drops any in-flight attempt, used when content is replaced
// from outside while a save is pending.
func Supersede(s Session) Session {
	if !s.Loading {
		return s
	}
	s.Token++
	return ToDisplay(s)
}

// ToggleDiff shows or hides the pending-changes diff.
func ToggleDiff(s UIState) UIState {
	s.ShowDiff = !s.ShowDiff
	return s
}

// ToggleHelp shows or hides the help overlay.
func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	return s
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
	if s.View == Unified {
		s.View = SideBySide
	} else {
		s.View = Unified
	}
	return s
}

// Resize updates width and falls back to unified when too narrow for two columns.
// Threshold: 2*MinCol plus 3 chars for separator/gutters.
func Resize(s UIState, width int) UIState {
	s.Width = width
	threshold := 2*s.MinCol + 3
	if s.View == SideBySide && s.Width < threshold {
		s.View = Unified
		s.Notice = "Narrow width: using unified diff"
	}
	return s
}

// SetNotice replaces the ephemeral status message.
func SetNotice(s UIState, notice string) UIState {
	s.Notice = notice
	return s
}
