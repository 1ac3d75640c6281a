package editorinput

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"draftinput/internal/richtext"
)

const (
	DefaultMaxLength   = 1000
	DefaultPlaceholder = "Click to enter text"
	DefaultWidth       = 60

	// minWidth fits the Save/Cancel row and the style controls inside the frame.
	minWidth = 24
)

// ChangeHandler receives the serialized document (nil when the text is
// blank) and must call exactly one of onSuccess or onError, from any
// goroutine. Only the first call counts.
type ChangeHandler func(doc *richtext.Document, onSuccess, onError func())

// Engine is the editing primitive the widget drives. richtext.Engine is the
// default.
type Engine interface {
	Empty() richtext.State
	FromDocument(doc *richtext.Document) (richtext.State, error)
	Document(s richtext.State) *richtext.Document
	PlainText(s richtext.State) string
	ToggleInlineStyle(s richtext.State, st richtext.InlineStyle) richtext.State
	InsertText(s richtext.State, text string) richtext.State
	Truncate(base, proposed richtext.State, n int) richtext.State
	MoveToEnd(s richtext.State) richtext.State
	HandleKey(s richtext.State, msg tea.KeyMsg) (richtext.State, bool)
}

// Clipboard is the paste source. Errors are logged and treated as an empty
// payload.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteText(s string) error  { return clipboard.WriteAll(s) }

// SystemClipboard returns the OS clipboard.
func SystemClipboard() Clipboard { return systemClipboard{} }

// Options configures a Model. Zero values select the defaults.
type Options struct {
	Content  *richtext.Document
	OnChange ChangeHandler

	ReadOnly           bool
	DefaultInput       bool
	DefaultControlsBar bool

	MaxLength   int
	Placeholder string
	Width       int
	NoColor     bool

	Engine    Engine
	Clipboard Clipboard
	KeyMap    *KeyMap
	Logf      func(format string, args ...any)
}

func (o Options) withDefaults() Options {
	if o.MaxLength <= 0 {
		o.MaxLength = DefaultMaxLength
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Width < minWidth {
		o.Width = minWidth
	}
	if o.Engine == nil {
		o.Engine = richtext.NewEngine()
	}
	if o.Clipboard == nil {
		o.Clipboard = SystemClipboard()
	}
	if o.KeyMap == nil {
		km := DefaultKeyMap()
		o.KeyMap = &km
	}
	if o.Logf == nil {
		o.Logf = func(string, ...any) {}
	}
	return o
}
