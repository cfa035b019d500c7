package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"codeberg.org/go-pdf/fpdf"
	"github.com/drafter/drafter/internal/render"
)

// minScale replaces a zero scale factor, which fpdf rejects
const minScale = 1e-6

// Surface paints on one page of a Document. A measuring surface only tracks
// text metrics and ignores drawing calls.
type Surface struct {
	doc         *Document
	pdf         *fpdf.Fpdf
	measureOnly bool
	depth       int
}

func (s *Surface) Save() {
	s.depth++
	if s.measureOnly {
		return
	}
	s.pdf.TransformBegin()
}

func (s *Surface) Restore() {
	if s.depth == 0 {
		s.pdf.SetErrorf("unbalanced transform restore")
		return
	}
	s.depth--
	if s.measureOnly {
		return
	}
	s.pdf.TransformEnd()
}

func (s *Surface) Translate(tx, ty float64) {
	if s.measureOnly {
		return
	}
	s.pdf.TransformTranslate(tx, ty)
}

func (s *Surface) ScaleAbout(sx, sy, x, y float64) {
	if s.measureOnly {
		return
	}
	s.pdf.TransformScale(max(sx, minScale)*100, max(sy, minScale)*100, x, y)
}

func (s *Surface) FillRect(r render.Rect, fill render.Color) {
	if s.measureOnly || fill.IsTransparent() {
		return
	}
	s.pdf.SetFillColor(fill.RGB255())
	s.withAlpha(fill.A, func() {
		s.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
	})
}

func (s *Surface) StrokeRect(r render.Rect, st render.Stroke) {
	if s.measureOnly || st.Width <= 0 || st.Color.IsTransparent() {
		return
	}
	s.stroke(st, func() {
		if st.Radius > 0 {
			s.pdf.RoundedRect(r.X, r.Y, r.W, r.H, st.Radius, "1234", "D")
			return
		}
		s.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
	})
}

func (s *Surface) Line(x1, y1, x2, y2 float64, st render.Stroke) {
	if s.measureOnly || st.Width <= 0 || st.Color.IsTransparent() {
		return
	}
	s.stroke(st, func() {
		s.pdf.Line(x1, y1, x2, y2)
	})
}

func (s *Surface) stroke(st render.Stroke, draw func()) {
	s.pdf.SetDrawColor(st.Color.RGB255())
	s.pdf.SetLineWidth(st.Width)
	s.pdf.SetLineCapStyle(st.Cap.String())
	if len(st.Dash) > 0 {
		s.pdf.SetDashPattern(st.Dash, 0)
	}
	s.withAlpha(st.Color.A, draw)
	if len(st.Dash) > 0 {
		s.pdf.SetDashPattern([]float64{}, 0)
	}
}

func (s *Surface) withAlpha(a float64, draw func()) {
	if a >= 1 {
		draw()
		return
	}
	s.pdf.SetAlpha(a, "Normal")
	draw()
	s.pdf.SetAlpha(1, "Normal")
}

func (s *Surface) setFont(f render.Font) bool {
	family, style, utf8 := s.doc.fonts.resolve(f)
	s.pdf.SetFont(family, style, f.Size)
	return utf8
}

func (s *Surface) MeasureText(text string, f render.Font) float64 {
	if text == "" || f.Size <= 0 {
		return 0
	}
	utf8 := s.setFont(f)
	return s.pdf.GetStringWidth(s.doc.fonts.text(text, utf8))
}

func (s *Surface) DrawText(x, y float64, text string, f render.Font, c render.Color) {
	if s.measureOnly || text == "" || f.Size <= 0 || c.IsTransparent() {
		return
	}
	utf8 := s.setFont(f)
	s.pdf.SetTextColor(c.RGB255())
	s.withAlpha(c.A, func() {
		s.pdf.Text(x, y+f.Baseline(), s.doc.fonts.text(text, utf8))
	})
}

func (s *Surface) DrawImage(img image.Image, r render.Rect) error {
	if img == nil {
		return fmt.Errorf("draw image: nil image")
	}
	if s.measureOnly {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	name := s.doc.nextImageName()
	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	s.pdf.RegisterImageOptionsReader(name, opts, &buf)
	s.pdf.ImageOptions(name, r.X, r.Y, r.W, r.H, false, opts, 0, "")
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("draw image: %w", err)
	}
	return nil
}

var _ render.Surface = (*Surface)(nil)
