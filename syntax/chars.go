// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

// IsLetter reports whether b is an ASCII letter, which may be part of a
// literal.
func IsLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// IsStructural reports whether b is one of the characters which delimit
// brace groups: '{', '}' or ','.
func IsStructural(b byte) bool {
	switch b {
	case '{', '}', ',':
		return true
	}
	return false
}

// Valid reports whether b may appear anywhere in a brace expression.
// Note that a line terminator is not valid; only a single trailing newline
// is removed from the input before parsing.
func Valid(b byte) bool {
	return IsLetter(b) || IsStructural(b)
}

// trimNewline removes a single trailing line terminator, if any.
func trimNewline(src string) string {
	if n := len(src); n > 0 && src[n-1] == '\n' {
		return src[:n-1]
	}
	return src
}
