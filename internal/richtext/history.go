package richtext

func (s State) restore(snap snapshot) State {
	next := s
	next.cells = snap.cells
	next.keys = snap.keys
	next.sel = snap.sel
	next.hasOverride = false
	next.override = 0
	next.last = ""
	return next
}

func (s State) CanUndo() bool { return len(s.undo) > 0 }

func (s State) CanRedo() bool { return len(s.redo) > 0 }

// Undo restores the previous content and selection. It is a no-op without history.
func (s State) Undo() State {
	if len(s.undo) == 0 {
		return s
	}
	i := len(s.undo) - 1
	next := s.restore(s.undo[i])
	next.undo = s.undo[:i:i]
	next.redo = appendHistory(s.redo, s.snapshot())
	return next
}

// Redo reapplies the last undone change.
func (s State) Redo() State {
	if len(s.redo) == 0 {
		return s
	}
	i := len(s.redo) - 1
	next := s.restore(s.redo[i])
	next.redo = s.redo[:i:i]
	next.undo = appendHistory(s.undo, s.snapshot())
	return next
}
