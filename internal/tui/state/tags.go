package state

// TagKind enumerates the status chips shown next to an editor.
type TagKind int

const (
	// Stable ordering for display: Edited, Truncated, Near Limit, Len, Max
	EDITED TagKind = iota
	TRUNCATED
	NEAR_LIMIT
	LEN
	MAX
)

// Tag represents a single status chip. Value carries counters (remaining
// characters, lengths); non-numeric tags use Value = 0.
type Tag struct {
	Kind  TagKind
	Value int
}
