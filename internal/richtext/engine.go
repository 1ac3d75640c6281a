package richtext

import tea "github.com/charmbracelet/bubbletea"

// Engine exposes the model through the narrow set of operations the input
// widget drives.
type Engine struct {
	Keys KeyMap
}

func NewEngine() Engine { return Engine{Keys: DefaultKeyMap()} }

func (Engine) Empty() State { return Empty() }

func (Engine) FromDocument(doc *Document) (State, error) { return FromDocument(doc) }

func (Engine) Document(s State) *Document { return s.Document() }

func (Engine) PlainText(s State) string { return s.PlainText() }

func (Engine) ToggleInlineStyle(s State, st InlineStyle) State { return s.ToggleInlineStyle(st) }

func (Engine) InsertText(s State, text string) State { return s.InsertText(text) }

// Truncate rejects proposed, an over-limit edit of base. The result keeps
// base's content with the cut version on the redo stack.
func (Engine) Truncate(base, proposed State, n int) State { return base.RejectTruncated(proposed, n) }

func (Engine) MoveToEnd(s State) State { return s.MoveToEnd() }

func (e Engine) HandleKey(s State, msg tea.KeyMsg) (State, bool) { return e.Keys.Apply(s, msg) }
