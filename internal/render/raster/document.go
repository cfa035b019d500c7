// Package raster renders pages to PNG through gg using the built-in Go fonts.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/drafter/drafter/internal/render"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// DefaultDPI is the output resolution when Options.DPI is 0
const DefaultDPI = 96

// Options configures a Document
type Options struct {
	// DPI sets the pixel density; one point is DPI/72 pixels
	DPI float64
	// Background fills every page before drawing. Nil leaves pages transparent.
	Background *render.Color
	// PageGap separates stacked pages, in points
	PageGap float64
}

// Document collects raster pages. Finish stacks them vertically in one PNG.
type Document struct {
	opts  Options
	scale float64
	pages []*gg.Context
	faces *faces
	log   *zap.Logger
}

// New creates an empty document. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Document {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	return &Document{opts: opts, scale: opts.DPI / 72, faces: newFaces(), log: log}
}

// NewPage starts a page of w x h points and returns the surface painting on
// it together with a surface for measuring passes.
func (d *Document) NewPage(w, h float64) (real, scratch render.Surface, err error) {
	if w <= 0 || h <= 0 {
		return nil, nil, fmt.Errorf("invalid page size %vx%v", w, h)
	}
	pw, ph := int(math.Ceil(w*d.scale)), int(math.Ceil(h*d.scale))
	dc := gg.NewContext(pw, ph)
	if bg := d.opts.Background; bg != nil {
		dc.SetRGBA(bg.R, bg.G, bg.B, bg.A)
		dc.Clear()
	}
	dc.Scale(d.scale, d.scale)
	d.pages = append(d.pages, dc)
	d.log.Debug("raster page added", zap.Int("page", len(d.pages)), zap.Int("width_px", pw), zap.Int("height_px", ph))

	return newSurface(dc, d.faces, d.scale, false), newSurface(dc, d.faces, d.scale, true), nil
}

// PageCount returns the number of pages added so far
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Image returns page i, 0-based
func (d *Document) Image(i int) image.Image {
	return d.pages[i].Image()
}

// Finish writes all pages as one PNG, stacked top to bottom
func (d *Document) Finish(w io.Writer) error {
	switch len(d.pages) {
	case 0:
		return fmt.Errorf("document has no pages")
	case 1:
		return d.pages[0].EncodePNG(w)
	}

	gap := int(math.Round(d.opts.PageGap * d.scale))
	width, height := 0, gap*(len(d.pages)-1)
	for _, p := range d.pages {
		width = max(width, p.Width())
		height += p.Height()
	}
	out := gg.NewContext(width, height)
	y := 0
	for _, p := range d.pages {
		out.DrawImage(p.Image(), 0, y)
		y += p.Height() + gap
	}
	if err := out.EncodePNG(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
