package canvas

import (
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// Palette is the default curve color cycle.
var Palette = []string{
	"#2b7fa8",
	"#a4633a",
	"#51854d",
	"#726cae",
	"#975f91",
	"#857625",
	"#d62728",
	"#17becf",
}

// PaletteColor returns the i-th palette entry, cycling.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// ParseColor parses "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" (the leading
// '#' is optional) or a CSS color name such as "steelblue".
func ParseColor(s string) (gg.RGBA, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return gg.RGBA{}, false
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return gg.FromColor(c), true
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, false
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return gg.RGBA{}, false
		}
	}
	return gg.Hex(hex), true
}

// ColorOr parses s and falls back when it is not a valid color.
func ColorOr(s string, fallback gg.RGBA) gg.RGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c gg.RGBA, a float64) gg.RGBA {
	c.A = a
	return c
}
