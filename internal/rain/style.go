package rain

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Theme fallbacks, used whenever the configured values are missing or
// malformed.
var DefaultGlyphColor = color.RGBA{R: 32, G: 194, B: 168, A: 255}

const DefaultTrailAlpha = 0.07

// ColumnStyle is the draw style picked for one column on one frame.
type ColumnStyle struct {
	Glyph      color.RGBA
	TrailAlpha float64
}

// Style selects the draw style for a column/frame. The two historical rain
// variants (themable and fixed-palette) share one engine and differ only in
// their Style.
type Style interface {
	Pick(col int, frame uint64) ColumnStyle
}

// ThemeStyle draws every column in a single configured color with a
// configured trail opacity.
type ThemeStyle struct {
	Glyph color.RGBA
	Trail float64
}

func (s ThemeStyle) Pick(col int, frame uint64) ColumnStyle {
	return ColumnStyle{Glyph: s.Glyph, TrailAlpha: s.Trail}
}

// ParseThemeStyle builds a ThemeStyle from an "r,g,b" triple and a trail
// opacity string. Either value missing or malformed falls back to the
// defaults; there is no error path.
func ParseThemeStyle(rgb, trail string) ThemeStyle {
	s := ThemeStyle{Glyph: DefaultGlyphColor, Trail: DefaultTrailAlpha}

	if c, ok := parseRGB(rgb); ok {
		s.Glyph = c
	}
	if t, err := strconv.ParseFloat(strings.TrimSpace(trail), 64); err == nil &&
		!math.IsNaN(t) && t > 0 && t <= 1 {
		s.Trail = t
	}
	return s
}

func parseRGB(rgb string) (color.RGBA, bool) {
	parts := strings.Split(rgb, ",")
	if len(parts) != 3 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		ch[i] = uint8(n)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}, true
}

// PulseStyle is the fixed-palette variant: classic green glyphs whose
// brightness pulses slowly over time, with a constant trail opacity.
type PulseStyle struct{}

func (PulseStyle) Pick(col int, frame uint64) ColumnStyle {
	pulse := 0.85 + 0.15*math.Sin(float64(frame)*0.03+float64(col)*0.2)
	return ColumnStyle{
		Glyph: color.RGBA{
			G: uint8(255 * pulse),
			B: uint8(70 * pulse),
			A: 255,
		},
		TrailAlpha: 0.06,
	}
}
