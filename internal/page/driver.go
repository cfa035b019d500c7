// Package page drives the layout of pages onto a rendering backend.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/render"
	"go.uber.org/zap"
)

// ErrNoPages is returned when rendering an empty document
var ErrNoPages = errors.New("document has no pages")

// Backend produces the surfaces of a document and writes it out
type Backend interface {
	// NewPage starts a page of w x h points and returns the surface that ends
	// up in the output and a scratch surface used for measuring
	NewPage(w, h float64) (real, scratch render.Surface, err error)
	// Finish writes the document
	Finish(w io.Writer) error
}

// Page is one page to lay out
type Page struct {
	Size    Size
	Margins Margins
	Root    *layout.Node
}

// Viewport returns the area inside the margins the root is laid out in
func (p Page) Viewport() render.Rect {
	r := render.Rect{W: p.Size.Width, H: p.Size.Height}
	return r.Inset(p.Margins.Top, p.Margins.Right, p.Margins.Bottom, p.Margins.Left)
}

// Driver lays out pages on a backend
type Driver struct {
	backend Backend
	log     *zap.Logger
	paint   layout.Paint
}

// NewDriver creates a driver for b. A nil logger disables logging.
func NewDriver(b Backend, paint layout.Paint, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{backend: b, log: log, paint: paint}
}

// Render lays out every page in order, then writes the document to w
func (d *Driver) Render(ctx context.Context, w io.Writer, pages ...Page) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.drawPage(i+1, p); err != nil {
			return err
		}
	}
	if err := d.backend.Finish(w); err != nil {
		return fmt.Errorf("finish document: %w", err)
	}
	d.log.Info("document rendered", zap.Int("pages", len(pages)))
	return nil
}

func (d *Driver) drawPage(number int, p Page) error {
	if p.Root == nil {
		return fmt.Errorf("page %d: no root node", number)
	}
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return fmt.Errorf("page %d: invalid size %vx%v", number, p.Size.Width, p.Size.Height)
	}

	start := time.Now()
	real, scratch, err := d.backend.NewPage(p.Size.Width, p.Size.Height)
	if err != nil {
		return fmt.Errorf("page %d: %w", number, err)
	}

	ctx := layout.NewContext(p.Viewport(), real, scratch).WithLogger(d.log)
	ctx.Paint = d.paint
	ext, err := p.Root.Draw(ctx)
	if err != nil {
		return fmt.Errorf("page %d: %w", number, err)
	}
	d.log.Debug("page drawn",
		zap.Int("page", number),
		zap.String("size", p.Size.Name),
		zap.Float64("w", ext.W),
		zap.Float64("h", ext.H),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
