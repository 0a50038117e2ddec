//nolint:revive // common is an appropriate name for shared utilities package
package common

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Truncate returns the first limit characters of s. Strings of limit
// characters or fewer are returned unchanged. A negative limit is treated as zero.
//
// Characters are counted as runes so multi-byte text is never split mid-rune.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

// EscapeControlChars renders control characters of captured tool output as
// Go-style escapes (\n, \t, \xNN) so a summary stays on one line.
func EscapeControlChars(s string) string {
	var result strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) {
			result.WriteRune(r)
			continue
		}

		switch r {
		case '\n':
			result.WriteString("\\n")
		case '\r':
			result.WriteString("\\r")
		case '\t':
			result.WriteString("\\t")
		case '\b':
			result.WriteString("\\b")
		case '\f':
			result.WriteString("\\f")
		case '\v':
			result.WriteString("\\v")
		case '\a':
			result.WriteString("\\a")
		default:
			fmt.Fprintf(&result, "\\x%02x", r)
		}
	}
	return result.String()
}
