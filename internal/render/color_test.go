package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := map[string]struct {
		in   string
		want Color
	}{
		"long hex":    {in: "#ff0000", want: Color{1, 0, 0, 1}},
		"short hex":   {in: "#00f", want: Color{0, 0, 1, 1}},
		"upper hex":   {in: "#00FF00", want: Color{0, 1, 0, 1}},
		"rgb":         {in: "rgb(255, 0, 255)", want: Color{1, 0, 1, 1}},
		"rgba":        {in: "rgba(0,0,0,0.5)", want: Color{0, 0, 0, 0.5}},
		"hsl red":     {in: "hsl(0, 100%, 50%)", want: Color{1, 0, 0, 1}},
		"hsla":        {in: "hsla(240, 100%, 50%, 0.25)", want: Color{0, 0, 1, 0.25}},
		"transparent": {in: "transparent", want: Transparent},
		"named white": {in: " White ", want: White},
		"named blue":  {in: "blue", want: Color{0, 0, 1, 1}},
		"rgb clamps":  {in: "rgb(300, 0, 0)", want: Color{1, 0, 0, 1}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, got.R, 1e-6)
			assert.InDelta(t, tt.want.G, got.G, 1e-6)
			assert.InDelta(t, tt.want.B, got.B, 1e-6)
			assert.InDelta(t, tt.want.A, got.A, 1e-6)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "rgb(1,2)", "hsl(a, b, c)", "chartreuse", "rgb 1 2 3"} {
		_, err := ParseColor(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestColorRGB255(t *testing.T) {
	r, g, b := RGB(12, 200, 255).RGB255()
	assert.Equal(t, 12, r)
	assert.Equal(t, 200, g)
	assert.Equal(t, 255, b)
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	assert.Equal(t, Rect{X: 15, Y: 22, W: 85, H: 44}, r.Inset(2, 10, 4, 5))
	assert.Equal(t, Rect{X: 60, Y: 20, W: 0, H: 50}, r.Inset(0, 60, 0, 50))
}
