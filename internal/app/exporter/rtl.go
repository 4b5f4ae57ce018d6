package exporter

import "strings"

var rtlMirror = map[rune]rune{
	'(': ')',
	')': '(',
	'[': ']',
	']': '[',
	'{': '}',
	'}': '{',
	'<': '>',
	'>': '<',
}

// MirrorBrackets swaps paired bracket characters so they render correctly
// when the line is laid out right-to-left.
func MirrorBrackets(s string) string {
	if !strings.ContainsAny(s, "()[]{}<>") {
		return s
	}

	out := []rune(s)
	for i, r := range out {
		if m, ok := rtlMirror[r]; ok {
			out[i] = m
		}
	}
	return string(out)
}
