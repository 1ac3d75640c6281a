package editorinput

import (
	"github.com/mattn/go-runewidth"

	"draftinput/internal/richtext"
)

// visualRow is one wrapped screen row of a block.
type visualRow struct {
	start int
	cells []richtext.Cell
	// last marks the final row of its block; only it can hold the caret at
	// the block end.
	last bool
}

// layoutRows wraps every block to width cells. A block whose last row is
// full gets an extra empty row so the caret at its end stays on screen.
func layoutRows(s richtext.State, width int) []visualRow {
	if width < 1 {
		width = 1
	}
	var rows []visualRow
	starts := s.LineStarts()
	for i, line := range s.Lines() {
		off := starts[i]
		begin, w := 0, 0
		for j, c := range line {
			cw := runewidth.RuneWidth(c.Rune)
			if w+cw > width && j > begin {
				rows = append(rows, visualRow{start: off + begin, cells: line[begin:j]})
				begin, w = j, 0
			}
			w += cw
		}
		if w >= width {
			rows = append(rows, visualRow{start: off + begin, cells: line[begin:]})
			begin = len(line)
		}
		rows = append(rows, visualRow{start: off + begin, cells: line[begin:], last: true})
	}
	return rows
}

// caretRowOf returns the row that draws offset.
func caretRowOf(rows []visualRow, offset int) int {
	for i, r := range rows {
		end := r.start + len(r.cells)
		if offset >= r.start && (offset < end || (offset == end && r.last)) {
			return i
		}
	}
	return len(rows) - 1
}

// offsetAt maps a row and a cell column to a content offset, clamping both.
func offsetAt(rows []visualRow, row, x int) int {
	if len(rows) == 0 {
		return 0
	}
	if row < 0 {
		row = 0
	}
	if row >= len(rows) {
		row = len(rows) - 1
	}
	r := rows[row]
	w := 0
	for i, c := range r.cells {
		cw := runewidth.RuneWidth(c.Rune)
		if x < w+cw {
			return r.start + i
		}
		w += cw
	}
	if r.last || len(r.cells) == 0 {
		return r.start + len(r.cells)
	}
	return r.start + len(r.cells) - 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
