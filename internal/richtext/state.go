// Package richtext is the immutable rich-text editing model behind the input
// widget: content with per-rune inline styles, a selection, an inline style
// override for the caret, and undo/redo history.
//
// Offsets are 0-based rune positions in the plain text, where block
// boundaries count as one '\n'. Every mutating method returns a new State.
package richtext

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const historyLimit = 1000

// ChangeType labels a pushed change; consecutive typing changes share one undo step.
type ChangeType string

const (
	ChangeInsertCharacters   ChangeType = "insert-characters"
	ChangeInsertFragment     ChangeType = "insert-fragment"
	ChangeSplitBlock         ChangeType = "split-block"
	ChangeBackspaceCharacter ChangeType = "backspace-character"
	ChangeDeleteCharacter    ChangeType = "delete-character"
	ChangeRemoveRange        ChangeType = "remove-range"
	ChangeInlineStyle        ChangeType = "change-inline-style"
	ChangeTruncate           ChangeType = "truncate"
)

// Cell is one rune of content with its styles. Block separators are '\n' cells.
type Cell struct {
	Rune  rune
	Style StyleSet
}

// Selection is an anchor/focus pair; Focus is where the caret is drawn.
type Selection struct {
	Anchor int
	Focus  int
}

func (s Selection) Collapsed() bool { return s.Anchor == s.Focus }

// Range returns the selection as a half-open [start, end).
func (s Selection) Range() (int, int) {
	if s.Anchor <= s.Focus {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

type snapshot struct {
	cells []Cell
	keys  []string
	sel   Selection
}

// State is an editor state value. The zero value is an empty document.
type State struct {
	cells []Cell
	keys  []string
	sel   Selection

	override    StyleSet
	hasOverride bool

	last ChangeType
	undo []snapshot
	redo []snapshot
}

// Empty returns a state with a single empty block.
func Empty() State {
	return State{keys: []string{newKey()}}
}

// FromDocument builds a state from a serialized document with the caret at
// the start. A nil or block-less document yields Empty().
func FromDocument(doc *Document) (State, error) {
	if doc == nil || len(doc.Blocks) == 0 {
		return Empty(), nil
	}
	var cells []Cell
	keys := make([]string, 0, len(doc.Blocks))
	for i, b := range doc.Blocks {
		if strings.ContainsRune(b.Text, '\n') {
			return State{}, fmt.Errorf("block %d (%s): text contains a newline", i, b.Key)
		}
		runes := []rune(b.Text)
		line := make([]Cell, len(runes))
		for j, r := range runes {
			line[j] = Cell{Rune: r}
		}
		for _, sr := range b.InlineStyleRanges {
			if sr.Offset < 0 || sr.Length < 0 || sr.Offset+sr.Length > len(runes) {
				return State{}, fmt.Errorf("block %d (%s): style range %d+%d out of bounds (len %d)", i, b.Key, sr.Offset, sr.Length, len(runes))
			}
			// Styles outside the toolbar set are dropped.
			for j := sr.Offset; j < sr.Offset+sr.Length; j++ {
				line[j].Style = line[j].Style.With(sr.Style)
			}
		}
		if i > 0 {
			cells = append(cells, Cell{Rune: '\n'})
		}
		cells = append(cells, line...)
		key := b.Key
		if key == "" {
			key = newKey()
		}
		keys = append(keys, key)
	}
	return State{cells: cells, keys: keys}, nil
}

// Document serializes the content. The result always has at least one block.
func (s State) Document() *Document {
	lines := s.Lines()
	keys := s.blockKeys()
	doc := &Document{Blocks: make([]Block, len(lines)), EntityMap: map[string]any{}}
	for i, line := range lines {
		runes := make([]rune, len(line))
		for j, c := range line {
			runes[j] = c.Rune
		}
		doc.Blocks[i] = Block{
			Key:               keys[i],
			Text:              string(runes),
			Type:              unstyledBlock,
			InlineStyleRanges: styleRanges(line),
			EntityRanges:      []EntityRange{},
			Data:              map[string]any{},
		}
	}
	return doc
}

func styleRanges(line []Cell) []StyleRange {
	out := []StyleRange{}
	for _, st := range InlineStyles {
		start := -1
		for i := 0; i <= len(line); i++ {
			on := i < len(line) && line[i].Style.Has(st)
			switch {
			case on && start < 0:
				start = i
			case !on && start >= 0:
				out = append(out, StyleRange{Offset: start, Length: i - start, Style: st})
				start = -1
			}
		}
	}
	return out
}

// Len is the plain-text length in runes.
func (s State) Len() int { return len(s.cells) }

func (s State) PlainText() string {
	runes := make([]rune, len(s.cells))
	for i, c := range s.cells {
		runes[i] = c.Rune
	}
	return string(runes)
}

func (s State) Selection() Selection { return s.sel }

func (s State) Collapsed() bool { return s.sel.Collapsed() }

// Caret is the focus offset.
func (s State) Caret() int { return s.sel.Focus }

// Lines splits content into blocks. The returned cells must not be modified.
func (s State) Lines() [][]Cell {
	lines := [][]Cell{}
	start := 0
	for i, c := range s.cells {
		if c.Rune == '\n' {
			lines = append(lines, s.cells[start:i:i])
			start = i + 1
		}
	}
	return append(lines, s.cells[start:len(s.cells):len(s.cells)])
}

// LineStarts returns the offset at which each block begins.
func (s State) LineStarts() []int {
	starts := []int{0}
	for i, c := range s.cells {
		if c.Rune == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Position converts an offset to a (block, column) pair.
func (s State) Position(offset int) (int, int) {
	offset = clamp(offset, 0, len(s.cells))
	line, col := 0, 0
	for i := 0; i < offset; i++ {
		if s.cells[i].Rune == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// Offset converts a (block, column) pair to an offset, clamping both.
func (s State) Offset(line, col int) int {
	starts := s.LineStarts()
	line = clamp(line, 0, len(starts)-1)
	end := len(s.cells)
	if line+1 < len(starts) {
		end = starts[line+1] - 1
	}
	return clamp(starts[line]+col, starts[line], end)
}

// CurrentInlineStyle is the style set new text would receive: the caret
// override if any, else the style at the selection start (or the rune
// before a collapsed caret).
func (s State) CurrentInlineStyle() StyleSet {
	if s.hasOverride {
		return s.override
	}
	start, end := s.sel.Range()
	start = clamp(start, 0, len(s.cells))
	if start == end {
		if start > 0 && s.cells[start-1].Rune != '\n' {
			return s.cells[start-1].Style
		}
	}
	if start < len(s.cells) && s.cells[start].Rune != '\n' {
		return s.cells[start].Style
	}
	return 0
}

func (s State) blockKeys() []string {
	want := 1
	for _, c := range s.cells {
		if c.Rune == '\n' {
			want++
		}
	}
	if len(s.keys) == want {
		return s.keys
	}
	keys := make([]string, want)
	copy(keys, s.keys)
	for i := len(s.keys); i < want; i++ {
		keys[i] = newKey()
	}
	return keys
}

func newKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
