package nodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/render/imaging"
	"github.com/drafter/drafter/internal/res"
)

// ImageConfig declares an image node. Either Picture or Src must be set; Src is
// loaded through a res.Loader by LoadImage.
type ImageConfig struct {
	layout.Config
	Src     string
	Picture *imaging.Picture
}

// NewImage creates an image node from an already decoded picture.
//
// With neither width nor height given the picture is drawn at its natural
// size. With one of them given the other follows the aspect ratio. With both
// the picture is stretched to the box.
func NewImage(cfg ImageConfig) (*layout.Node, error) {
	if cfg.Picture == nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name("image"), errors.New("no picture"))
	}
	return layout.NewLeaf("image", cfg.Config, &imageContent{pic: cfg.Picture})
}

// LoadImage loads and decodes cfg.Src with l unless cfg.Picture is already
// set, then creates the node
func LoadImage(ctx context.Context, l *res.Loader, cfg ImageConfig) (*layout.Node, error) {
	if cfg.Picture == nil {
		if cfg.Src == "" {
			return nil, fmt.Errorf("image: no src")
		}
		r, err := l.LoadImage(ctx, cfg.Src)
		if err != nil {
			return nil, fmt.Errorf("image: %w", err)
		}
		if cfg.Picture, err = imaging.Decode(r.Data, r.MimeType); err != nil {
			return nil, fmt.Errorf("image %s: %w", cfg.Src, err)
		}
	}
	return NewImage(cfg)
}

type imageContent struct {
	pic *imaging.Picture
}

// Fit returns the size a picture of natural size (pw, ph) is drawn at in a box
// of (w, h), a zero dimension meaning unconstrained
func Fit(pw, ph, w, h float64) (float64, float64) {
	switch {
	case w <= 0 && h <= 0:
		return pw, ph
	case w <= 0 && ph > 0:
		return h * pw / ph, h
	case h <= 0 && pw > 0:
		return w, w * ph / pw
	}
	return w, h
}

func (c *imageContent) DrawContent(s render.Surface, box render.Rect) (float64, float64, error) {
	pw, ph := c.pic.Size()
	w, h := Fit(pw, ph, box.W, box.H)
	if w <= 0 || h <= 0 {
		return 0, 0, nil
	}
	img, err := c.pic.Image(w, h)
	if err != nil {
		return 0, 0, err
	}
	if err := s.DrawImage(img, render.Rect{X: box.X, Y: box.Y, W: w, H: h}); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
