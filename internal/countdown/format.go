package countdown

import (
	"strconv"
	"strings"
)

// Pattern selects how remaining time is rendered on each tick.
// Doubled letters zero-pad to two digits.
type Pattern string

const (
	PatternMinutesSeconds      Pattern = "mm:ss"
	PatternMinutesSecondsShort Pattern = "m:s"
	PatternSecondsMinutes      Pattern = "ss:mm"
	PatternSecondsMinutesShort Pattern = "s:m"
	PatternMinutes             Pattern = "mm"
	PatternMinutesShort        Pattern = "m"
	PatternSeconds             Pattern = "ss"
	PatternSecondsShort        Pattern = "s"

	DefaultPattern = PatternMinutesSeconds
)

var patterns = []Pattern{
	PatternMinutesSeconds,
	PatternMinutesSecondsShort,
	PatternSecondsMinutes,
	PatternSecondsMinutesShort,
	PatternMinutes,
	PatternMinutesShort,
	PatternSeconds,
	PatternSecondsShort,
}

// Patterns lists every accepted pattern.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}

// PatternNames lists every accepted pattern as a comma separated string.
func PatternNames() string {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// ParsePattern matches s case-insensitively against the accepted patterns.
func ParsePattern(s string) (Pattern, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range patterns {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Format renders minutes and seconds using p. Minutes are not wrapped at 60.
// An unknown pattern falls back to DefaultPattern.
func Format(minutes, seconds int, p Pattern) string {
	if _, ok := ParsePattern(string(p)); !ok {
		p = DefaultPattern
	}

	fields := strings.Split(string(p), ":")
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(':')
		}

		v := seconds
		if field[0] == 'm' {
			v = minutes
		}
		s := strconv.Itoa(v)
		if len(field) == 2 && len(s) < 2 {
			b.WriteByte('0')
		}
		b.WriteString(s)
	}
	return b.String()
}
