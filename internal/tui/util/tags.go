package util

import (
	"unicode/utf8"

	"draftinput/internal/tui/state"
)

// nearLimitRatio is the fraction of the limit below which remaining
// characters are surfaced as a Near Limit chip.
const nearLimitRatio = 10

// ComputeTags calculates the status chips for an editor given the last
// saved plain text, the current plain text, the character limit, and whether
// the last edit was clamped.
//
// The returned slice preserves a stable order:
//   Edited, Truncated, Near Limit, Len, Max
//
// Rules:
// - Edited is shown whenever current differs from saved.
// - Truncated reflects the clamp on the most recent edit only.
// - Near Limit carries the remaining count once it drops to a tenth of the limit.
// - Len is always included; Max only when a limit is set.
func ComputeTags(saved, current string, limit int, truncated bool) []state.Tag {
	curLen := RuneLen(current)

	tags := make([]state.Tag, 0, 5)

	if saved != current {
		tags = append(tags, state.Tag{Kind: state.EDITED})
	}
	if truncated {
		tags = append(tags, state.Tag{Kind: state.TRUNCATED})
	}
	if limit > 0 {
		remaining := Remaining(curLen, limit)
		if remaining*nearLimitRatio <= limit {
			tags = append(tags, state.Tag{Kind: state.NEAR_LIMIT, Value: remaining})
		}
	}
	tags = append(tags, state.Tag{Kind: state.LEN, Value: curLen})
	if limit > 0 {
		tags = append(tags, state.Tag{Kind: state.MAX, Value: limit})
	}
	return tags
}

// HardTruncate returns s cut to at most limit runes. A non-positive limit
// yields the empty string.
func HardTruncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit])
}

// Remaining is how many runes still fit under limit, never negative.
func Remaining(length, limit int) int {
	if length >= limit {
		return 0
	}
	return limit - length
}

// RuneLen returns the length of s in runes (Unicode code points).
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
