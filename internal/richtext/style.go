package richtext

import "strings"

// InlineStyle names a character-range style. Values match the raw document format.
type InlineStyle string

const (
	Bold      InlineStyle = "BOLD"
	Italic    InlineStyle = "ITALIC"
	Underline InlineStyle = "UNDERLINE"
)

// InlineStyles lists the supported styles in toolbar order.
var InlineStyles = []InlineStyle{Bold, Italic, Underline}

// StyleSet is the set of inline styles applied to a single rune.
type StyleSet uint8

func styleBit(st InlineStyle) StyleSet {
	switch st {
	case Bold:
		return 1 << 0
	case Italic:
		return 1 << 1
	case Underline:
		return 1 << 2
	default:
		return 0
	}
}

// Has reports whether st is in the set. Unknown styles are never members.
func (s StyleSet) Has(st InlineStyle) bool {
	b := styleBit(st)
	return b != 0 && s&b != 0
}

func (s StyleSet) With(st InlineStyle) StyleSet    { return s | styleBit(st) }
func (s StyleSet) Without(st InlineStyle) StyleSet { return s &^ styleBit(st) }
func (s StyleSet) Toggle(st InlineStyle) StyleSet  { return s ^ styleBit(st) }

// Styles returns the members in toolbar order.
func (s StyleSet) Styles() []InlineStyle {
	var out []InlineStyle
	for _, st := range InlineStyles {
		if s.Has(st) {
			out = append(out, st)
		}
	}
	return out
}

func (s StyleSet) String() string {
	parts := make([]string, 0, len(InlineStyles))
	for _, st := range s.Styles() {
		parts = append(parts, string(st))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// SetOf builds a StyleSet from styles, ignoring unknown ones.
func SetOf(styles ...InlineStyle) StyleSet {
	var s StyleSet
	for _, st := range styles {
		s = s.With(st)
	}
	return s
}
