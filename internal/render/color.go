package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA colour with components in [0, 1]
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

var basicColors = map[string]string{
	"black":   "#000000",
	"silver":  "#c0c0c0",
	"gray":    "#808080",
	"grey":    "#808080",
	"white":   "#ffffff",
	"maroon":  "#800000",
	"red":     "#ff0000",
	"purple":  "#800080",
	"fuchsia": "#ff00ff",
	"green":   "#008000",
	"lime":    "#00ff00",
	"olive":   "#808000",
	"yellow":  "#ffff00",
	"navy":    "#000080",
	"blue":    "#0000ff",
	"teal":    "#008080",
	"aqua":    "#00ffff",
}

// RGB returns an opaque colour from 0-255 components
func RGB(r, g, b int) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// RGB255 returns the colour components scaled to 0-255, as fpdf expects them
func (c Color) RGB255() (int, int, int) {
	return to255(c.R), to255(c.G), to255(c.B)
}

// IsTransparent reports whether painting with this colour has no effect
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

func to255(v float64) int {
	n := int(v*255 + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// ParseColor parses a colour value. Supported forms:
//   - #rgb and #rrggbb
//   - rgb(r, g, b) and rgba(r, g, b, a) with 0-255 channels and 0-1 alpha
//   - hsl(h, s%, l%) and hsla(h, s%, l%, a) with h in degrees
//   - transparent and the sixteen basic CSS colour names
func ParseColor(value string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "":
		return Color{}, fmt.Errorf("empty color")
	case "transparent", "none":
		return Transparent, nil
	}
	if hex, ok := basicColors[v]; ok {
		v = hex
	}

	if strings.HasPrefix(v, "#") {
		c, err := colorful.Hex(v)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", value, err)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	}

	name, args, ok := splitFunc(v)
	if !ok {
		return Color{}, fmt.Errorf("invalid color %q", value)
	}

	switch name {
	case "rgb", "rgba":
		want := 3
		if name == "rgba" {
			want = 4
		}
		nums, err := parseArgs(args, want)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", value, err)
		}
		c := Color{R: nums[0] / 255, G: nums[1] / 255, B: nums[2] / 255, A: 1}
		if want == 4 {
			c.A = nums[3]
		}
		return c.clamped(), nil
	case "hsl", "hsla":
		want := 3
		if name == "hsla" {
			want = 4
		}
		nums, err := parseArgs(args, want)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", value, err)
		}
		hc := colorful.Hsl(nums[0], nums[1]/100, nums[2]/100).Clamped()
		c := Color{R: hc.R, G: hc.G, B: hc.B, A: 1}
		if want == 4 {
			c.A = nums[3]
		}
		return c.clamped(), nil
	}

	return Color{}, fmt.Errorf("invalid color %q", value)
}

// MustParseColor is like ParseColor but panics on malformed input. Intended
// for package-level defaults.
func MustParseColor(value string) Color {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) clamped() Color {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// splitFunc splits "name(a, b, c)" into its name and argument list
func splitFunc(v string) (string, []string, bool) {
	open := strings.IndexByte(v, '(')
	if open <= 0 || !strings.HasSuffix(v, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(v[:open])
	inner := v[open+1 : len(v)-1]
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return name, parts, true
}

func parseArgs(args []string, want int) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d components, got %d", want, len(args))
	}
	out := make([]float64, want)
	for i, a := range args {
		a = strings.TrimSuffix(a, "%")
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}
