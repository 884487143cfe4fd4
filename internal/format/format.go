// Package format holds the text rules shared by team, tab and chat rendering:
// packet-safe truncation, placeholder substitution and team identifiers.
package format

import (
	"fmt"
	"strings"
)

// Marker starts a legacy style code. A marker and the rune after it form one
// atomic pair that is never split.
const Marker = '§'

// Truncate returns the longest prefix of s that fits into max units, where a
// style pair counts as two units and is kept or dropped as a whole.
// A lone marker at the end of s has nothing to style and is dropped.
func Truncate(s string, max int) string {
	if s == "" || max <= 0 {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	count := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == Marker {
			if i+1 >= len(runes) {
				break
			}
			if count+2 > max {
				break
			}
			b.WriteRune(r)
			b.WriteRune(runes[i+1])
			count += 2
			i++
			continue
		}
		if count+1 > max {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}

// Length counts packet units the way Truncate does.
func Length(s string) int {
	runes := []rune(s)
	count := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] == Marker && i+1 < len(runes) {
			count += 2
			i++
			continue
		}
		count++
	}
	return count
}

// EndsWithDanglingMarker reports whether s ends in a marker that has no
// styled rune after it.
func EndsWithDanglingMarker(s string) bool {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == Marker {
			if i+1 >= len(runes) {
				return true
			}
			i++
		}
	}
	return false
}

// WithTrailingSpace fits text into limit units leaving a space before the
// name that follows it. Text that already ends with a space after truncation
// is returned unchanged; otherwise one unit is reserved for the space.
func WithTrailingSpace(text string, limit int) string {
	if text == "" || limit <= 0 {
		return ""
	}
	trimmed := Truncate(text, limit)
	if strings.HasSuffix(trimmed, " ") {
		return trimmed
	}
	if limit == 1 {
		return " "
	}
	reserved := Truncate(text, limit-1)
	if strings.HasSuffix(reserved, " ") {
		return reserved
	}
	return reserved + " "
}

const (
	identifierSeparator = "_"
	maxPriority         = 999
	maxTailLength       = 12
)

// TeamIdentifier builds a container name whose lexicographic order follows the
// numeric priority: zero-padded priority, separator, then the last characters
// of tail, as many as fit within limit.
func TeamIdentifier(priority int, tail string, limit int) string {
	if priority < 0 {
		priority = 0
	}
	if priority > maxPriority {
		priority = maxPriority
	}
	sort := fmt.Sprintf("%03d", priority)

	room := limit - len(sort) - len(identifierSeparator)
	if room > maxTailLength {
		room = maxTailLength
	}
	if room < 0 {
		room = 0
	}

	t := []rune(strings.ToLower(tail))
	if len(t) > room {
		t = t[len(t)-room:]
	}
	return sort + identifierSeparator + string(t)
}
