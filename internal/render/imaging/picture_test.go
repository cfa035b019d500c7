package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10">
<rect x="0" y="0" width="20" height="10" fill="#ff0000"/>
</svg>`

func sample() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestDecodeRaster(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer, image.Image) error{
		"png":  func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) },
		"bmp":  func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) },
		"tiff": func(b *bytes.Buffer, img image.Image) error { return tiff.Encode(b, img, nil) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf, sample()))

			p, err := Decode(buf.Bytes(), "")
			require.NoError(t, err)
			assert.Equal(t, name, p.Format())
			w, h := p.Size()
			assert.Equal(t, 4.0, w)
			assert.Equal(t, 3.0, h)

			img, err := p.Image(100, 100)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
		})
	}
}

func TestDecodeSVG(t *testing.T) {
	p, err := Decode([]byte(square), "")
	require.NoError(t, err)
	assert.Equal(t, "svg", p.Format())

	w, h := p.Size()
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 10.0, h)

	img, err := p.Image(40, 20)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 40), img.Bounds())
	r, _, _, a := img.At(40, 20).RGBA()
	assert.NotZero(t, a)
	assert.NotZero(t, r)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil, "")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("not an image"), "")
	assert.Error(t, err)

	_, err = Decode([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), "image/svg+xml")
	assert.Error(t, err)
}

func TestIsSVG(t *testing.T) {
	assert.True(t, IsSVG(nil, "image/svg+xml"))
	assert.True(t, IsSVG([]byte(`<?xml version="1.0"?><SVG>`), ""))
	assert.False(t, IsSVG([]byte{0x89, 'P', 'N', 'G'}, "image/png"))
}
