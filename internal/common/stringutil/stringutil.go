// Package stringutil provides common string utility functions.
package stringutil

// TruncateString truncates a string to at most maxLen runes.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if maxLen < 0 {
		maxLen = 0
	}
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}

// TruncateStringWithEllipsis truncates a string to at most maxLen runes,
// replacing the last kept rune with "…" when it had to cut.
func TruncateStringWithEllipsis(s string, maxLen int) string {
	if maxLen <= 1 {
		return TruncateString(s, maxLen)
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
