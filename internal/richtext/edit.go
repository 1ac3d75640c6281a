package richtext

import (
	"strings"
	"unicode"
)

// push returns a state holding the new content, recording s on the undo stack
// unless the change continues a run of the same typing change.
func (s State) push(cells []Cell, keys []string, sel Selection, ct ChangeType) State {
	next := s
	next.cells = cells
	next.keys = keys
	next.sel = sel
	next.hasOverride = false
	next.override = 0
	next.redo = nil
	if !s.coalesces(ct) {
		next.undo = appendHistory(s.undo, s.snapshot())
	}
	next.last = ct
	return next
}

func (s State) coalesces(ct ChangeType) bool {
	if ct != s.last {
		return false
	}
	switch ct {
	case ChangeInsertCharacters, ChangeBackspaceCharacter, ChangeDeleteCharacter:
		return true
	}
	return false
}

func (s State) snapshot() snapshot {
	return snapshot{cells: s.cells, keys: s.blockKeys(), sel: s.sel}
}

func appendHistory(h []snapshot, snap snapshot) []snapshot {
	out := append(h[:len(h):len(h)], snap)
	if len(out) > historyLimit {
		out = out[len(out)-historyLimit:]
	}
	return out
}

// replace splices ins over [start, end) and keeps block keys aligned: the
// block containing start keeps its key, new blocks get fresh keys.
func (s State) replace(start, end int, ins []Cell) ([]Cell, []string) {
	cells := make([]Cell, 0, len(s.cells)-(end-start)+len(ins))
	cells = append(cells, s.cells[:start]...)
	cells = append(cells, ins...)
	cells = append(cells, s.cells[end:]...)

	keys := s.blockKeys()
	bi := countNewlines(s.cells[:start])
	removed := countNewlines(s.cells[start:end])
	added := countNewlines(ins)
	nk := make([]string, 0, len(keys)-removed+added)
	nk = append(nk, keys[:bi+1]...)
	for i := 0; i < added; i++ {
		nk = append(nk, newKey())
	}
	nk = append(nk, keys[bi+1+removed:]...)
	return cells, nk
}

func countNewlines(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if c.Rune == '\n' {
			n++
		}
	}
	return n
}

// InsertText replaces the selection with text in the current inline style.
func (s State) InsertText(text string) State {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	start, end := s.sel.Range()
	if text == "" && start == end {
		return s
	}
	style := s.CurrentInlineStyle()
	ins := make([]Cell, 0, len(text))
	for _, r := range text {
		if r == '\n' {
			ins = append(ins, Cell{Rune: r})
			continue
		}
		ins = append(ins, Cell{Rune: r, Style: style})
	}
	cells, keys := s.replace(start, end, ins)
	caret := start + len(ins)

	ct := ChangeInsertCharacters
	switch {
	case text == "\n":
		ct = ChangeSplitBlock
	case strings.ContainsRune(text, '\n') || start != end:
		ct = ChangeInsertFragment
	}
	return s.push(cells, keys, Selection{Anchor: caret, Focus: caret}, ct)
}

func (s State) removeRange(start, end int, ct ChangeType) State {
	if start >= end {
		return s
	}
	cells, keys := s.replace(start, end, nil)
	return s.push(cells, keys, Selection{Anchor: start, Focus: start}, ct)
}

// Backspace deletes the selection, or the rune before the caret.
func (s State) Backspace() State {
	start, end := s.sel.Range()
	if start != end {
		return s.removeRange(start, end, ChangeRemoveRange)
	}
	if start == 0 {
		return s
	}
	return s.removeRange(start-1, start, ChangeBackspaceCharacter)
}

// Delete deletes the selection, or the rune after the caret.
func (s State) Delete() State {
	start, end := s.sel.Range()
	if start != end {
		return s.removeRange(start, end, ChangeRemoveRange)
	}
	if start >= len(s.cells) {
		return s
	}
	return s.removeRange(start, start+1, ChangeDeleteCharacter)
}

// DeleteWordBackward deletes the selection, or back to the previous word start.
func (s State) DeleteWordBackward() State {
	start, end := s.sel.Range()
	if start != end {
		return s.removeRange(start, end, ChangeRemoveRange)
	}
	return s.removeRange(s.wordLeft(start), start, ChangeRemoveRange)
}

// ToggleInlineStyle toggles st over the selection. On a collapsed caret it
// flips the override used for the next typed text instead.
func (s State) ToggleInlineStyle(st InlineStyle) State {
	if styleBit(st) == 0 {
		return s
	}
	cur := s.CurrentInlineStyle()
	if s.sel.Collapsed() {
		next := s
		next.override = cur.Toggle(st)
		next.hasOverride = true
		return next
	}
	remove := cur.Has(st)
	start, end := s.sel.Range()
	cells := make([]Cell, len(s.cells))
	copy(cells, s.cells)
	for i := start; i < end; i++ {
		if cells[i].Rune == '\n' {
			continue
		}
		if remove {
			cells[i].Style = cells[i].Style.Without(st)
		} else {
			cells[i].Style = cells[i].Style.With(st)
		}
	}
	return s.push(cells, s.blockKeys(), s.sel, ChangeInlineStyle)
}

// PushTruncated pushes the first n runes of from's content onto s as one
// undo step, with from's selection clamped to n. When the truncated content
// equals s's content the edit is rejected and s is returned unchanged.
func (s State) PushTruncated(from State, n int) State {
	if n < 0 {
		n = 0
	}
	src := from.cells
	if len(src) > n {
		src = src[:n]
	}
	if cellsEqual(src, s.cells) {
		return s
	}
	cells := append([]Cell(nil), src...)
	keys := from.blockKeys()[:countNewlines(cells)+1]
	keys = append([]string(nil), keys...)
	sel := Selection{Anchor: clamp(from.sel.Anchor, 0, n), Focus: clamp(from.sel.Focus, 0, n)}
	next := s.push(cells, keys, sel, ChangeTruncate)
	next.last = ""
	return next
}

// RejectTruncated refuses an edit that went over n runes: the truncated
// content is pushed and immediately undone, so s's content and selection are
// kept and the cut version waits on the redo stack.
func (s State) RejectTruncated(from State, n int) State {
	pushed := s.PushTruncated(from, n)
	if cellsEqual(pushed.cells, s.cells) {
		return s
	}
	return pushed.Undo()
}

// Truncate cuts the content to at most n runes as one undo step.
func (s State) Truncate(n int) State {
	return s.PushTruncated(s, n)
}

func cellsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Select sets the selection, clamped to the content.
func (s State) Select(sel Selection) State {
	next := s
	next.sel = Selection{
		Anchor: clamp(sel.Anchor, 0, len(s.cells)),
		Focus:  clamp(sel.Focus, 0, len(s.cells)),
	}
	if next.sel != s.sel {
		next.hasOverride = false
		next.override = 0
		next.last = ""
	}
	return next
}

func (s State) moveTo(offset int, extend bool) State {
	if extend {
		return s.Select(Selection{Anchor: s.sel.Anchor, Focus: offset})
	}
	return s.Select(Selection{Anchor: offset, Focus: offset})
}

// MoveToEnd collapses the selection at the end of the content.
func (s State) MoveToEnd() State {
	next := s.Select(Selection{Anchor: len(s.cells), Focus: len(s.cells)})
	next.hasOverride = false
	next.override = 0
	return next
}

func (s State) SelectAll() State {
	return s.Select(Selection{Anchor: 0, Focus: len(s.cells)})
}

func (s State) MoveLeft(extend bool) State {
	if !extend && !s.sel.Collapsed() {
		start, _ := s.sel.Range()
		return s.moveTo(start, false)
	}
	return s.moveTo(s.sel.Focus-1, extend)
}

func (s State) MoveRight(extend bool) State {
	if !extend && !s.sel.Collapsed() {
		_, end := s.sel.Range()
		return s.moveTo(end, false)
	}
	return s.moveTo(s.sel.Focus+1, extend)
}

func (s State) MoveWordLeft(extend bool) State {
	return s.moveTo(s.wordLeft(s.sel.Focus), extend)
}

func (s State) MoveWordRight(extend bool) State {
	return s.moveTo(s.wordRight(s.sel.Focus), extend)
}

func (s State) MoveLineStart(extend bool) State {
	line, _ := s.Position(s.sel.Focus)
	return s.moveTo(s.Offset(line, 0), extend)
}

func (s State) MoveLineEnd(extend bool) State {
	line, _ := s.Position(s.sel.Focus)
	return s.moveTo(s.Offset(line, len(s.cells)), extend)
}

func (s State) MoveUp(extend bool) State {
	line, col := s.Position(s.sel.Focus)
	if line == 0 {
		return s.moveTo(0, extend)
	}
	return s.moveTo(s.Offset(line-1, col), extend)
}

func (s State) MoveDown(extend bool) State {
	line, col := s.Position(s.sel.Focus)
	if line >= len(s.LineStarts())-1 {
		return s.moveTo(len(s.cells), extend)
	}
	return s.moveTo(s.Offset(line+1, col), extend)
}

func (s State) wordLeft(pos int) int {
	pos = clamp(pos, 0, len(s.cells))
	for pos > 0 && !isWordRune(s.cells[pos-1].Rune) {
		pos--
	}
	for pos > 0 && isWordRune(s.cells[pos-1].Rune) {
		pos--
	}
	return pos
}

func (s State) wordRight(pos int) int {
	pos = clamp(pos, 0, len(s.cells))
	for pos < len(s.cells) && !isWordRune(s.cells[pos].Rune) {
		pos++
	}
	for pos < len(s.cells) && isWordRune(s.cells[pos].Rune) {
		pos++
	}
	return pos
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
