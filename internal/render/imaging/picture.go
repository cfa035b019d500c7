// Package imaging decodes the images a document may embed: every raster format
// registered with the image package plus SVG, which is rasterized on demand.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	// raster decoders registered with image.Decode
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Oversample is the number of pixels per point used when rasterizing SVG
const Oversample = 2

// ErrEmpty is returned when decoding zero bytes
var ErrEmpty = errors.New("empty image data")

// Picture is a decoded image. Raster pictures are used as is; vector pictures
// are rasterized for the size they are drawn at.
type Picture struct {
	raster image.Image
	icon   *oksvg.SvgIcon
	w, h   float64
	format string
}

// FromImage wraps an already decoded raster image
func FromImage(img image.Image) *Picture {
	b := img.Bounds()
	return &Picture{raster: img, w: float64(b.Dx()), h: float64(b.Dy()), format: "image"}
}

// Decode decodes data. mime may be empty, in which case the format is sniffed.
func Decode(data []byte, mime string) (*Picture, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if IsSVG(data, mime) {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
		if err != nil {
			return nil, fmt.Errorf("decode svg: %w", err)
		}
		if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
			return nil, fmt.Errorf("decode svg: missing or empty viewBox")
		}
		return &Picture{icon: icon, w: icon.ViewBox.W, h: icon.ViewBox.H, format: "svg"}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	p := FromImage(img)
	p.format = format
	return p, nil
}

// IsSVG reports whether data holds an SVG document
func IsSVG(data []byte, mime string) bool {
	if strings.HasPrefix(mime, "image/svg") {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// Format returns the decoder name, "svg" for vector pictures
func (p *Picture) Format() string { return p.format }

// Size returns the natural size in points: pixels for raster images, the
// viewBox for SVG.
func (p *Picture) Size() (w, h float64) { return p.w, p.h }

// Image returns a raster image suitable for drawing at w x h points
func (p *Picture) Image(w, h float64) (image.Image, error) {
	if p.icon == nil {
		return p.raster, nil
	}
	pw, ph := int(math.Ceil(w*Oversample)), int(math.Ceil(h*Oversample))
	if pw <= 0 || ph <= 0 {
		return nil, fmt.Errorf("rasterize svg: empty target %vx%v", w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	p.icon.SetTarget(0, 0, float64(pw), float64(ph))
	scanner := rasterx.NewScannerGV(pw, ph, img, img.Bounds())
	p.icon.Draw(rasterx.NewDasher(pw, ph, scanner), 1)
	return img, nil
}
