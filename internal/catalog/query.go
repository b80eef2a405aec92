package catalog

import (
	"math"
	"strings"
	"unicode"
)

// parseIntPrefix reads a leading integer the way lenient query parsing does:
// surrounding whitespace and an optional sign are allowed, digits are consumed
// until the first non-digit, and anything after is ignored ("5abc" is 5).
// A "0x" prefix switches to hexadecimal. ok is false when no digit was read.
func parseIntPrefix(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	var v int
	for _, c := range s {
		d := digitValue(c)
		if d < 0 || d >= base {
			break
		}
		ok = true
		if v > (math.MaxInt-d)/base {
			v = math.MaxInt
			continue
		}
		v = v*base + d
	}
	if !ok {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// truncate keeps the first end elements. A negative end counts back from the
// end of the slice.
func truncate[T any](items []T, end int) []T {
	if end < 0 {
		end = max(len(items)+end, 0)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[:end]
}
