package render

import (
	"fmt"
	"image"
	"strings"
)

// Rect represents a rectangle in page units (points), origin at the top left
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Inset returns the rectangle shrunk by the given amounts. Width and height
// never go below zero.
func (r Rect) Inset(top, right, bottom, left float64) Rect {
	out := Rect{
		X: r.X + left,
		Y: r.Y + top,
		W: r.W - left - right,
		H: r.H - top - bottom,
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// LineCap represents the shape drawn at the ends of stroked lines
type LineCap int

const (
	// CapSquare extends the line by half its width
	CapSquare LineCap = iota
	// CapButt ends the line exactly at its end point
	CapButt
	// CapRound ends the line with a half circle
	CapRound
)

// String returns the lowercase name used by fpdf and markup attributes
func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	default:
		return "square"
	}
}

// ParseLineCap parses "square", "butt" or "round"
func ParseLineCap(value string) (LineCap, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "square":
		return CapSquare, nil
	case "butt":
		return CapButt, nil
	case "round":
		return CapRound, nil
	}
	return CapSquare, fmt.Errorf("unknown line cap %q", value)
}

// Stroke describes how an outline is painted
type Stroke struct {
	Width  float64
	Color  Color
	Radius float64
	Cap    LineCap
	Dash   []float64
}

// Font describes the face used to measure and draw text
type Font struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// LineHeight returns the height of one line of text set in this font
func (f Font) LineHeight() float64 {
	return f.Size * 1.2
}

// Baseline returns the distance from the top of a line box to the baseline:
// half the leading plus an approximate ascent of 0.8em.
func (f Font) Baseline() float64 {
	return (f.LineHeight()-f.Size)/2 + f.Size*0.8
}

// Surface is a drawing target. Implementations are not safe for concurrent use.
//
// Save and Restore nest as a stack; every transform applied between them is
// undone by Restore.
type Surface interface {
	Save()
	Restore()
	Translate(tx, ty float64)
	// ScaleAbout scales subsequent drawing by (sx, sy) around the point (x, y)
	ScaleAbout(sx, sy, x, y float64)

	FillRect(r Rect, fill Color)
	StrokeRect(r Rect, s Stroke)
	Line(x1, y1, x2, y2 float64, s Stroke)

	// MeasureText returns the advance width of a single line of text
	MeasureText(text string, f Font) float64
	// DrawText draws a single line of text with the top of its line box at y
	DrawText(x, y float64, text string, f Font, c Color)
	DrawImage(img image.Image, r Rect) error
}
