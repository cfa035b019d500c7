package nodes

import (
	"image"
	"testing"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/render/imaging"
	"github.com/drafter/drafter/internal/render/record"
	"github.com/drafter/drafter/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newText(t *testing.T, s string, mutate func(*TextConfig)) *layout.Node {
	t.Helper()
	cfg := DefaultTextConfig()
	cfg.Text = s
	if mutate != nil {
		mutate(&cfg)
	}
	n, err := NewText(cfg)
	require.NoError(t, err)
	return n
}

func TestTextAutoSizeIsSingleLine(t *testing.T) {
	ext, real := draw(t, newText(t, "hello world", nil), 500, 500)

	assert.Equal(t, layout.Extent{W: 55, H: 12}, ext)
	assert.Equal(t, []string{"hello", "world"}, texts(real))
	ops := real.Filter(record.OpText)
	assert.Equal(t, 30.0, ops[1].Rect.X)
}

func TestTextWrapsAtWidth(t *testing.T) {
	n := newText(t, "aaa bbb", func(c *TextConfig) { c.Width = layout.Fixed(30) })
	ext, real := draw(t, n, 500, 500)

	assert.Equal(t, layout.Extent{W: 30, H: 24}, ext)
	ops := real.Filter(record.OpText)
	require.Len(t, ops, 2)
	assert.InDelta(t, 12.0, ops[1].Rect.Y, 1e-9)
}

func TestTextOverflowGrowsTheBox(t *testing.T) {
	n := newText(t, "extraordinary", func(c *TextConfig) { c.Width = layout.Fixed(20) })
	ext, _ := draw(t, n, 500, 500)
	assert.Equal(t, 65.0, ext.W)
}

func TestTextVerticalAlignment(t *testing.T) {
	tests := []struct {
		valign VAlign
		y      float64
	}{
		{VAlignTop, 0},
		{VAlignMiddle, 14},
		{VAlignBottom, 28},
	}
	for _, tt := range tests {
		t.Run(tt.valign.String(), func(t *testing.T) {
			n := newText(t, "a", func(c *TextConfig) {
				c.Width, c.Height = layout.Fixed(100), layout.Fixed(40)
				c.VAlign = tt.valign
			})
			ext, real := draw(t, n, 500, 500)

			assert.Equal(t, layout.Extent{W: 100, H: 40}, ext)
			ops := real.Filter(record.OpText)
			require.Len(t, ops, 1)
			assert.InDelta(t, tt.y, ops[0].Rect.Y, 1e-9)
		})
	}
}

func TestTextAlignmentUsesContentBox(t *testing.T) {
	n := newText(t, "ab", func(c *TextConfig) {
		c.Width = layout.Fixed(100)
		c.Padding = layout.SpaceAll(layout.Fixed(10))
		c.Align = text.AlignRight
	})
	_, real := draw(t, n, 500, 500)

	ops := real.Filter(record.OpText)
	require.Len(t, ops, 1)
	assert.Equal(t, 80.0, ops[0].Rect.X)
	assert.Equal(t, 10.0, ops[0].Rect.Y)
}

func TestTextMarkup(t *testing.T) {
	n := newText(t, "a <b>b</b><br/>c", func(c *TextConfig) { c.Markup = true })
	ext, real := draw(t, n, 500, 500)

	assert.Equal(t, []string{"a", "b", "c"}, texts(real))
	assert.InDelta(t, 24.0, ext.H, 1e-9)
}

func TestTextConfigErrors(t *testing.T) {
	tests := map[string]func(*TextConfig){
		"font size":    func(c *TextConfig) { c.Font.Size = 0 },
		"line spacing": func(c *TextConfig) { c.LineSpacing = -1 },
		"markup":       func(c *TextConfig) { c.Markup, c.Text = true, "<table>" },
		"box":          func(c *TextConfig) { c.Width = layout.Size{Amount: 2, Unit: 9} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultTextConfig()
			mutate(&cfg)
			_, err := NewText(cfg)
			assert.Error(t, err)
		})
	}
}

func TestParseVAlign(t *testing.T) {
	v, err := ParseVAlign("middle")
	require.NoError(t, err)
	assert.Equal(t, VAlignMiddle, v)
	_, err = ParseVAlign("baseline")
	assert.Error(t, err)
}

func TestLeafTags(t *testing.T) {
	draw := func(render.Surface, float64, float64) (float64, float64, error) { return 0, 0, nil }
	pic := imaging.FromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))

	text, err := NewText(DefaultTextConfig())
	require.NoError(t, err)
	canvas, err := NewCanvas(CanvasConfig{Draw: draw})
	require.NoError(t, err)
	img, err := NewImage(ImageConfig{Picture: pic})
	require.NoError(t, err)
	named, err := NewCanvas(CanvasConfig{Config: layout.Config{Tag: "chart"}, Draw: draw})
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "canvas", "image", "chart"}, []string{text.Tag(), canvas.Tag(), img.Tag(), named.Tag()})

	_, err = NewImage(ImageConfig{Config: layout.Config{Tag: "logo"}})
	assert.ErrorContains(t, err, "logo: no picture")
}
