package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/drafter/drafter/internal/render"
	"github.com/fogleman/gg"
)

// Surface paints on a gg context in page points. The context carries the
// points-to-pixels scale as its base transform.
type Surface struct {
	dc    *gg.Context
	faces *faces
	// scales holds the cumulative linear scale for each Save level. Stroke
	// widths and dashes are multiplied by it since gg does not transform them.
	scales []float64
	// measureOnly surfaces draw nothing
	measureOnly bool
}

func newSurface(dc *gg.Context, fc *faces, base float64, measureOnly bool) *Surface {
	return &Surface{dc: dc, faces: fc, scales: []float64{base}, measureOnly: measureOnly}
}

func (s *Surface) scale() float64 {
	return s.scales[len(s.scales)-1]
}

func (s *Surface) Save() {
	s.scales = append(s.scales, s.scale())
	if !s.measureOnly {
		s.dc.Push()
	}
}

func (s *Surface) Restore() {
	if len(s.scales) == 1 {
		panic("raster: unbalanced Restore")
	}
	s.scales = s.scales[:len(s.scales)-1]
	if !s.measureOnly {
		s.dc.Pop()
	}
}

func (s *Surface) Translate(tx, ty float64) {
	if !s.measureOnly {
		s.dc.Translate(tx, ty)
	}
}

func (s *Surface) ScaleAbout(sx, sy, x, y float64) {
	s.scales[len(s.scales)-1] *= math.Sqrt(math.Abs(sx * sy))
	if !s.measureOnly {
		s.dc.ScaleAbout(sx, sy, x, y)
	}
}

func (s *Surface) setColor(c render.Color) {
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func (s *Surface) FillRect(r render.Rect, fill render.Color) {
	if s.measureOnly || fill.IsTransparent() {
		return
	}
	s.setColor(fill)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Fill()
}

func (s *Surface) StrokeRect(r render.Rect, st render.Stroke) {
	if s.measureOnly || st.Width <= 0 || st.Color.IsTransparent() {
		return
	}
	if st.Radius > 0 {
		s.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, st.Radius)
	} else {
		s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	}
	s.stroke(st)
}

func (s *Surface) Line(x1, y1, x2, y2 float64, st render.Stroke) {
	if s.measureOnly || st.Width <= 0 || st.Color.IsTransparent() {
		return
	}
	s.dc.DrawLine(x1, y1, x2, y2)
	s.stroke(st)
}

func (s *Surface) stroke(st render.Stroke) {
	k := s.scale()
	s.setColor(st.Color)
	s.dc.SetLineWidth(st.Width * k)
	switch st.Cap {
	case render.CapButt:
		s.dc.SetLineCap(gg.LineCapButt)
	case render.CapRound:
		s.dc.SetLineCap(gg.LineCapRound)
	default:
		s.dc.SetLineCap(gg.LineCapSquare)
	}
	dashes := make([]float64, len(st.Dash))
	for i, d := range st.Dash {
		dashes[i] = d * k
	}
	s.dc.SetDash(dashes...)
	s.dc.Stroke()
	s.dc.SetDash()
}

func (s *Surface) MeasureText(text string, f render.Font) float64 {
	return s.faces.measure(text, f)
}

func (s *Surface) DrawText(x, y float64, text string, f render.Font, c render.Color) {
	if s.measureOnly || text == "" || f.Size <= 0 || c.IsTransparent() {
		return
	}
	face, err := s.faces.face(f)
	if err != nil {
		return
	}
	s.dc.SetFontFace(face)
	s.setColor(c)
	s.dc.DrawString(text, x, y+f.Baseline())
}

func (s *Surface) DrawImage(img image.Image, r render.Rect) error {
	if img == nil {
		return fmt.Errorf("draw image: nil image")
	}
	b := img.Bounds()
	if s.measureOnly || b.Empty() || r.W <= 0 || r.H <= 0 {
		return nil
	}
	s.dc.Push()
	s.dc.Translate(r.X, r.Y)
	s.dc.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	s.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	s.dc.Pop()
	return nil
}

var _ render.Surface = (*Surface)(nil)
