// Package record provides a render.Surface that records every call instead of
// painting. It backs layout tests and dry runs.
package record

import (
	"fmt"
	"image"

	"github.com/drafter/drafter/internal/render"
)

// Kind identifies a recorded operation
type Kind string

const (
	OpSave       Kind = "save"
	OpRestore    Kind = "restore"
	OpTranslate  Kind = "translate"
	OpScale      Kind = "scale"
	OpFillRect   Kind = "fill"
	OpStrokeRect Kind = "stroke"
	OpLine       Kind = "line"
	OpText       Kind = "text"
	OpImage      Kind = "image"
)

// Op is one recorded call. Rect holds the geometry in the caller's
// coordinates; Depth is the Save nesting level at the time of the call.
type Op struct {
	Kind  Kind
	Rect  render.Rect
	Text  string
	Scale [2]float64
	Depth int
}

// Surface records operations. CharWidth controls text measurement: every rune
// advances by CharWidth * font size.
type Surface struct {
	Name      string
	CharWidth float64
	Ops       []Op
	depth     int
}

// New creates a recording surface measuring text at 0.5em per rune
func New(name string) *Surface {
	return &Surface{Name: name, CharWidth: 0.5}
}

// Depth returns the current Save nesting level
func (s *Surface) Depth() int { return s.depth }

// Reset discards all recorded operations
func (s *Surface) Reset() {
	s.Ops = nil
	s.depth = 0
}

// Filter returns the recorded operations of the given kinds in call order
func (s *Surface) Filter(kinds ...Kind) []Op {
	var out []Op
	for _, op := range s.Ops {
		for _, k := range kinds {
			if op.Kind == k {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

func (s *Surface) add(op Op) {
	op.Depth = s.depth
	s.Ops = append(s.Ops, op)
}

func (s *Surface) Save() {
	s.add(Op{Kind: OpSave})
	s.depth++
}

func (s *Surface) Restore() {
	if s.depth == 0 {
		panic(fmt.Sprintf("record: unbalanced Restore on surface %q", s.Name))
	}
	s.depth--
	s.add(Op{Kind: OpRestore})
}

func (s *Surface) Translate(tx, ty float64) {
	s.add(Op{Kind: OpTranslate, Rect: render.Rect{X: tx, Y: ty}})
}

func (s *Surface) ScaleAbout(sx, sy, x, y float64) {
	s.add(Op{Kind: OpScale, Rect: render.Rect{X: x, Y: y}, Scale: [2]float64{sx, sy}})
}

func (s *Surface) FillRect(r render.Rect, _ render.Color) {
	s.add(Op{Kind: OpFillRect, Rect: r})
}

func (s *Surface) StrokeRect(r render.Rect, _ render.Stroke) {
	s.add(Op{Kind: OpStrokeRect, Rect: r})
}

func (s *Surface) Line(x1, y1, x2, y2 float64, _ render.Stroke) {
	s.add(Op{Kind: OpLine, Rect: render.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}})
}

func (s *Surface) MeasureText(text string, f render.Font) float64 {
	return float64(len([]rune(text))) * s.CharWidth * f.Size
}

func (s *Surface) DrawText(x, y float64, text string, f render.Font, _ render.Color) {
	s.add(Op{Kind: OpText, Text: text, Rect: render.Rect{X: x, Y: y, W: s.MeasureText(text, f), H: f.LineHeight()}})
}

func (s *Surface) DrawImage(img image.Image, r render.Rect) error {
	if img == nil {
		return fmt.Errorf("record: nil image")
	}
	s.add(Op{Kind: OpImage, Rect: r})
	return nil
}

var _ render.Surface = (*Surface)(nil)
