package nodes

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/render/imaging"
	"github.com/drafter/drafter/internal/render/record"
	"github.com/drafter/drafter/internal/res"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		pw, ph, w, h float64
		wantW, wantH float64
	}{
		{"natural", 40, 20, 0, 0, 40, 20},
		{"width only", 40, 20, 80, 0, 80, 40},
		{"height only", 40, 20, 0, 10, 20, 10},
		{"stretched", 40, 20, 10, 10, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Fit(tt.pw, tt.ph, tt.w, tt.h)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestImageSizing(t *testing.T) {
	pic := imaging.FromImage(image.NewRGBA(image.Rect(0, 0, 40, 20)))
	tests := []struct {
		name string
		w, h layout.Size
		want render.Rect
	}{
		{"natural", layout.Auto(), layout.Auto(), render.Rect{W: 40, H: 20}},
		{"aspect", layout.Fixed(80), layout.Auto(), render.Rect{W: 80, H: 40}},
		{"stretch", layout.Fixed(10), layout.Fixed(30), render.Rect{W: 10, H: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewImage(ImageConfig{Config: layout.Config{Width: tt.w, Height: tt.h}, Picture: pic})
			require.NoError(t, err)

			ext, real := draw(t, n, 500, 500)

			assert.Equal(t, layout.Extent{W: tt.want.W, H: tt.want.H}, ext)
			ops := real.Filter(record.OpImage)
			require.Len(t, ops, 1)
			assert.Equal(t, tt.want, ops[0].Rect)
		})
	}
}

func TestLoadImageFromDataURL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 2))))
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	n, err := LoadImage(context.Background(), res.NewLoader("", nil), ImageConfig{Src: src})
	require.NoError(t, err)

	ext, _ := draw(t, n, 100, 100)
	assert.Equal(t, layout.Extent{W: 3, H: 2}, ext)
}

func TestLoadImageErrors(t *testing.T) {
	l := res.NewLoader("", nil)
	for name, cfg := range map[string]ImageConfig{
		"no src":     {},
		"not image":  {Src: "data:text/plain,hello"},
		"bad pixels": {Src: "data:image/png;base64,AAAA"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadImage(context.Background(), l, cfg)
			assert.Error(t, err)
		})
	}
	_, err := NewImage(ImageConfig{})
	assert.Error(t, err)
}
