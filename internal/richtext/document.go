package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the serialized form of rich-text content exchanged with callers.
// Field names follow the raw draft format so stored documents stay portable.
// Offsets and lengths count runes.
type Document struct {
	Blocks    []Block        `json:"blocks"`
	EntityMap map[string]any `json:"entityMap"`
}

// Block is one paragraph of a Document.
type Block struct {
	Key               string         `json:"key"`
	Text              string         `json:"text"`
	Type              string         `json:"type"`
	Depth             int            `json:"depth"`
	InlineStyleRanges []StyleRange   `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange  `json:"entityRanges"`
	Data              map[string]any `json:"data"`
}

type StyleRange struct {
	Offset int         `json:"offset"`
	Length int         `json:"length"`
	Style  InlineStyle `json:"style"`
}

type EntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

const unstyledBlock = "unstyled"

// Parse decodes a serialized document. "null" and empty input decode to nil.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var d Document
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &d, nil
}

// Encode serializes d; a nil document encodes to "null".
func Encode(d *Document) ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d)
}

// PlainText joins block texts with newlines. A nil document is empty.
func (d *Document) PlainText() string {
	if d == nil {
		return ""
	}
	parts := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		parts[i] = b.Text
	}
	return strings.Join(parts, "\n")
}
