package page

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size is a page size in points (1/72 inch)
type Size struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points
var (
	SizeA0     = Size{Width: 2383.94, Height: 3370.39, Name: "A0"}
	SizeA1     = Size{Width: 1683.78, Height: 2383.94, Name: "A1"}
	SizeA2     = Size{Width: 1190.55, Height: 1683.78, Name: "A2"}
	SizeA3     = Size{Width: 841.89, Height: 1190.55, Name: "A3"}
	SizeA4     = Size{Width: 595.28, Height: 841.89, Name: "A4"}
	SizeA5     = Size{Width: 419.53, Height: 595.28, Name: "A5"}
	SizeA6     = Size{Width: 297.64, Height: 419.53, Name: "A6"}
	SizeLetter = Size{Width: 612.00, Height: 792.00, Name: "Letter"}
	SizeLegal  = Size{Width: 612.00, Height: 1008.00, Name: "Legal"}
)

var sizes = map[string]Size{
	"a0":     SizeA0,
	"a1":     SizeA1,
	"a2":     SizeA2,
	"a3":     SizeA3,
	"a4":     SizeA4,
	"a5":     SizeA5,
	"a6":     SizeA6,
	"letter": SizeLetter,
	"legal":  SizeLegal,
}

// Orientation of a page
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// ParseOrientation parses "portrait" or "landscape"
func ParseOrientation(value string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "portrait", "p":
		return Portrait, nil
	case "landscape", "l":
		return Landscape, nil
	}
	return Portrait, fmt.Errorf("unknown orientation %q", value)
}

// Oriented returns the size with its longer side vertical for Portrait and
// horizontal for Landscape
func (s Size) Oriented(o Orientation) Size {
	if (o == Landscape) != (s.Width > s.Height) {
		s.Width, s.Height = s.Height, s.Width
	}
	return s
}

// ParseSize parses a named size ("A4", "letter") or "WIDTHxHEIGHT" in points
func ParseSize(value string) (Size, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if s, ok := sizes[v]; ok {
		return s, nil
	}
	ws, hs, ok := strings.Cut(v, "x")
	w, errW := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if !ok || errW != nil || errH != nil || !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Size{}, fmt.Errorf("unknown page size %q", value)
	}
	return Size{Width: w, Height: h, Name: "Custom"}, nil
}

// Margins are the page margins in points
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargins returns margins of m on every side
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}
