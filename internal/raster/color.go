package raster

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseColor resolves a CSS-style color spec to a concrete color.
// See parseColor for the accepted forms.
func ParseColor(spec string) color.NRGBA { return parseColor(spec) }

// parseColor understands the CSS-style specs the engine emits: "#rgb",
// "#rrggbb", "#rrggbbaa", "rgb(r, g, b)" and "rgba(r, g, b, a)".
// Anything else degrades to opaque black; a bad color spec must never
// abort a render pass.
func parseColor(spec string) color.NRGBA {
	black := color.NRGBA{A: 255}

	spec = strings.TrimSpace(spec)
	switch {
	case strings.HasPrefix(spec, "#"):
		if c, ok := parseHex(spec[1:]); ok {
			return c
		}
	case strings.HasPrefix(spec, "rgba(") && strings.HasSuffix(spec, ")"):
		if c, ok := parseFunctional(spec[5:len(spec)-1], true); ok {
			return c
		}
	case strings.HasPrefix(spec, "rgb(") && strings.HasSuffix(spec, ")"):
		if c, ok := parseFunctional(spec[4:len(spec)-1], false); ok {
			return c
		}
	}
	return black
}

func parseHex(hex string) (color.NRGBA, bool) {
	var digits string
	switch len(hex) {
	case 3:
		// Expand shorthand: "f3a" -> "ff33aa".
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		digits = b.String() + "ff"
	case 6:
		digits = hex + "ff"
	case 8:
		digits = hex
	default:
		return color.NRGBA{}, false
	}

	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}

func parseFunctional(args string, hasAlpha bool) (color.NRGBA, bool) {
	parts := strings.Split(args, ",")
	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return color.NRGBA{}, false
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, false
		}
		rgb[i] = uint8(v + 0.5)
	}

	a := 1.0
	if hasAlpha {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || v < 0 || v > 1 {
			return color.NRGBA{}, false
		}
		a = v
	}

	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(a*255 + 0.5)}, true
}
