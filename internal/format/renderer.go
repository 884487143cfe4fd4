package format

import (
	"regexp"
	"strings"
)

// Renderer turns styled markup into legacy section-coded text.
type Renderer interface {
	Render(markup string) string
}

var namedCodes = map[string]byte{
	"black":         '0',
	"dark_blue":     '1',
	"dark_green":    '2',
	"dark_aqua":     '3',
	"dark_red":      '4',
	"dark_purple":   '5',
	"gold":          '6',
	"gray":          '7',
	"grey":          '7',
	"dark_gray":     '8',
	"dark_grey":     '8',
	"blue":          '9',
	"green":         'a',
	"aqua":          'b',
	"red":           'c',
	"light_purple":  'd',
	"yellow":        'e',
	"white":         'f',
	"obfuscated":    'k',
	"obf":           'k',
	"bold":          'l',
	"b":             'l',
	"strikethrough": 'm',
	"st":            'm',
	"underlined":    'n',
	"u":             'n',
	"italic":        'o',
	"i":             'o',
	"em":            'o',
	"reset":         'r',
}

var (
	tagPattern       = regexp.MustCompile(`<(/?)([#a-zA-Z0-9_:]+)>`)
	ampersandPattern = regexp.MustCompile(`&([0-9a-fk-orA-FK-OR])`)
	hexPattern       = regexp.MustCompile(`(?i)§x(§[0-9a-f]){6}`)
	decorPattern     = regexp.MustCompile(`(?i)§[lmnok]`)
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// LegacyRenderer supports named color tags, hex tags, decoration tags and
// ampersand codes. Closing and unknown tags are removed. On legacy protocols
// hex colors and decorations are stripped since old clients cannot show them.
type LegacyRenderer struct {
	legacy bool
}

func NewLegacyRenderer(legacy bool) *LegacyRenderer {
	return &LegacyRenderer{legacy: legacy}
}

func (r *LegacyRenderer) Render(markup string) string {
	if markup == "" {
		return ""
	}

	out := tagPattern.ReplaceAllStringFunc(markup, func(tag string) string {
		m := tagPattern.FindStringSubmatch(tag)
		if m[1] == "/" {
			return ""
		}
		name := strings.ToLower(m[2])
		if code, ok := namedCodes[name]; ok {
			return string([]rune{Marker, rune(code)})
		}
		if hexColorPattern.MatchString(name) {
			return hexCode(name[1:])
		}
		return ""
	})

	out = ampersandPattern.ReplaceAllStringFunc(out, func(code string) string {
		return string(Marker) + strings.ToLower(code[1:])
	})

	if r.legacy {
		out = hexPattern.ReplaceAllString(out, "")
		out = decorPattern.ReplaceAllString(out, "")
	}
	return out
}

func hexCode(hex string) string {
	var b strings.Builder
	b.WriteRune(Marker)
	b.WriteByte('x')
	for _, c := range strings.ToLower(hex) {
		b.WriteRune(Marker)
		b.WriteRune(c)
	}
	return b.String()
}
