package state

// Mode is the view an editor input renders, derived from its flags.
type Mode string

const (
	ModeDefaultInline Mode = "default-inline" // always editable, commits on blur
	ModeReadOnly      Mode = "read-only"
	ModeDisplay       Mode = "display" // click to edit
	ModeEdit          Mode = "edit"
)

// ResolveMode maps the input flags onto exactly one Mode. DefaultInput wins
// over ReadOnly, and ReadOnly wins over an edit session.
func ResolveMode(defaultInput, readOnly, editing bool) Mode {
	switch {
	case defaultInput:
		return ModeDefaultInline
	case readOnly:
		return ModeReadOnly
	case editing:
		return ModeEdit
	default:
		return ModeDisplay
	}
}

// Session tracks an edit session and the save attempt in flight.
type Session struct {
	Editing bool
	Loading bool
	// Token identifies the latest save attempt; resolutions carrying an
	// older token are discarded.
	Token uint64
}

// DiffMode controls how pending changes are rendered by the host.
type DiffMode int

const (
	Unified DiffMode = iota
	SideBySide
)

// UIState holds host-level UI state shared by the status bar, diff and help.
type UIState struct {
	Mode    Mode
	Loading bool

	ShowDiff bool
	ShowHelp bool
	View     DiffMode

	// Layout
	Width  int
	MinCol int

	// Length accounting for the status bar
	Length int
	Limit  int

	Notice string
}
