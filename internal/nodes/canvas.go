package nodes

import (
	"errors"
	"fmt"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/render"
)

// DrawFunc paints free-form content. The surface origin is the top left of
// the content box and (w, h) is its size; it returns the size it consumed.
// It is called once per pass, so it must not depend on being called once.
type DrawFunc func(s render.Surface, w, h float64) (float64, float64, error)

// CanvasConfig declares a canvas node
type CanvasConfig struct {
	layout.Config
	Draw DrawFunc
}

// NewCanvas creates a node whose content is painted by cfg.Draw
func NewCanvas(cfg CanvasConfig) (*layout.Node, error) {
	if cfg.Draw == nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name("canvas"), errors.New("no draw function"))
	}
	return layout.NewLeaf("canvas", cfg.Config, canvasContent(cfg.Draw))
}

type canvasContent DrawFunc

func (c canvasContent) DrawContent(s render.Surface, box render.Rect) (float64, float64, error) {
	s.Save()
	defer s.Restore()
	s.Translate(box.X, box.Y)
	return c(s, box.W, box.H)
}
