// Package nodes provides the leaf nodes of a layout tree: text, images and
// free-form canvases.
package nodes

import (
	"fmt"
	"strings"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/text"
	"github.com/hashicorp/go-multierror"
)

// VAlign is the vertical placement of text inside a box taller than the text
type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

func (v VAlign) String() string {
	switch v {
	case VAlignMiddle:
		return "middle"
	case VAlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// ParseVAlign parses "top", "middle" or "bottom"
func ParseVAlign(value string) (VAlign, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "top":
		return VAlignTop, nil
	case "middle", "center":
		return VAlignMiddle, nil
	case "bottom":
		return VAlignBottom, nil
	}
	return VAlignTop, fmt.Errorf("unknown vertical alignment %q", value)
}

// TextConfig declares a text node
type TextConfig struct {
	layout.Config

	Text string
	// Markup enables inline markup in Text, see text.ParseMarkup
	Markup bool
	// Runs, when set, is used instead of Text
	Runs        []text.Run
	Color       render.Color
	Font        render.Font
	Wrap        text.WrapMode
	Align       text.Align
	VAlign      VAlign
	LineSpacing float64
}

// DefaultTextConfig returns black 10pt Helvetica, word wrapped and top left
// aligned
func DefaultTextConfig() TextConfig {
	return TextConfig{
		Color: render.Black,
		Font:  render.Font{Family: "Helvetica", Size: 10},
	}
}

// Validate checks the text specific fields
func (c TextConfig) Validate() error {
	var result *multierror.Error
	if c.Font.Size <= 0 {
		result = multierror.Append(result, fmt.Errorf("font size %v must be positive", c.Font.Size))
	}
	if c.LineSpacing < 0 {
		result = multierror.Append(result, fmt.Errorf("line spacing %v must not be negative", c.LineSpacing))
	}
	if c.Wrap > text.WrapWordChar {
		result = multierror.Append(result, fmt.Errorf("unknown wrap mode %d", c.Wrap))
	}
	if c.Align > text.AlignJustify {
		result = multierror.Append(result, fmt.Errorf("unknown text alignment %d", c.Align))
	}
	if c.VAlign > VAlignBottom {
		result = multierror.Append(result, fmt.Errorf("unknown vertical alignment %d", c.VAlign))
	}
	return result.ErrorOrNil()
}

// NewText creates a text node. With an auto or zero width each paragraph is
// set on one line; otherwise lines wrap at the content box width. The node
// consumes the larger of its box and the text extents.
func NewText(cfg TextConfig) (*layout.Node, error) {
	name := cfg.Name("text")
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	runs := cfg.Runs
	switch {
	case runs != nil:
	case cfg.Markup:
		var err error
		if runs, err = text.ParseMarkup(cfg.Text); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	default:
		runs = text.Plain(cfg.Text)
	}
	c := &textContent{
		cfg:    cfg,
		runs:   runs,
		shaper: text.NewShaper(cfg.Font, cfg.Wrap, cfg.LineSpacing),
	}
	return layout.NewLeaf("text", cfg.Config, c)
}

type textContent struct {
	cfg    TextConfig
	runs   []text.Run
	shaper *text.Shaper
}

func (t *textContent) DrawContent(s render.Surface, box render.Rect) (float64, float64, error) {
	l := t.shaper.Shape(s, t.runs, box.W)

	y := box.Y
	if free := box.H - l.H; free > 0 {
		switch t.cfg.VAlign {
		case VAlignMiddle:
			y += free / 2
		case VAlignBottom:
			y += free
		}
	}
	l.Draw(s, box.X, y, box.W, t.cfg.Align, t.cfg.Color)
	return max(box.W, l.W), max(box.H, l.H), nil
}
