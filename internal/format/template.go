package format

import "strings"

// Recognized placeholders.
const (
	PlaceholderPrefix      = "{prefix}"
	PlaceholderSuffix      = "{suffix}"
	PlaceholderPlayer      = "{player}"
	PlaceholderDisplayName = "{displayname}"
	PlaceholderMessage     = "{message}"
)

var placeholders = []string{
	PlaceholderPrefix,
	PlaceholderSuffix,
	PlaceholderPlayer,
	PlaceholderDisplayName,
	PlaceholderMessage,
}

// Values maps placeholders to their replacements. Missing recognized
// placeholders are replaced with an empty string.
type Values map[string]string

// Substitute replaces every recognized placeholder in template in a single
// pass, so replacement text is never scanned for placeholders again.
func Substitute(template string, values Values) string {
	pairs := make([]string, 0, len(placeholders)*2)
	for _, p := range placeholders {
		pairs = append(pairs, p, values[p])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// SplitAtName splits a list template around the first name placeholder.
// ok is false when the template does not mention the name at all.
func SplitAtName(template string) (before, after string, ok bool) {
	idx := -1
	width := 0
	for _, p := range []string{PlaceholderPlayer, PlaceholderDisplayName} {
		if i := strings.Index(template, p); i >= 0 && (idx < 0 || i < idx) {
			idx = i
			width = len(p)
		}
	}
	if idx < 0 {
		return template, "", false
	}
	return template[:idx], template[idx+width:], true
}

// ColorTag wraps a color name into a markup tag; empty input stays empty.
func ColorTag(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return ""
	}
	return "<" + color + ">"
}
