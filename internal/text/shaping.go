package text

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/drafter/drafter/internal/render"
)

// WrapMode selects where lines may break when text is wider than its box
type WrapMode uint8

const (
	// WrapWord breaks between words only; a word wider than the box overflows
	WrapWord WrapMode = iota
	// WrapChar breaks between any two characters
	WrapChar
	// WrapWordChar breaks between words and splits words that do not fit a line
	WrapWordChar
)

func (m WrapMode) String() string {
	switch m {
	case WrapChar:
		return "char"
	case WrapWordChar:
		return "word-char"
	default:
		return "word"
	}
}

// ParseWrapMode parses "word", "char" or "word-char"
func ParseWrapMode(value string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "word":
		return WrapWord, nil
	case "char":
		return WrapChar, nil
	case "word-char", "word_char":
		return WrapWordChar, nil
	}
	return WrapWord, fmt.Errorf("unknown wrap mode %q", value)
}

// Align is the horizontal alignment of lines within the box
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	// AlignJustify stretches the spaces of every line except the last of a paragraph
	AlignJustify
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParseAlign parses "left", "center", "right" or "justify"
func ParseAlign(value string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justify":
		return AlignJustify, nil
	}
	return AlignLeft, fmt.Errorf("unknown text alignment %q", value)
}

// Measurer measures a single line of text. render.Surface satisfies it.
type Measurer interface {
	MeasureText(text string, f render.Font) float64
}

// Segment is a piece of a line set in one font, positioned from the line start
type Segment struct {
	Text  string
	Font  render.Font
	Color *render.Color
	X     float64
	W     float64
	Space bool
}

// Line is one laid out line of text
type Line struct {
	Segments []Segment
	W        float64
	// Ascent is the distance from the line top to the shared baseline
	Ascent float64
	H      float64
	// Spaces counts the inner space segments, used for justification
	Spaces int
	// Last is true for the final line of a paragraph
	Last bool
}

// Layout is shaped text ready for drawing
type Layout struct {
	Lines       []Line
	LineSpacing float64
	W           float64
	H           float64
}

// Shaper breaks runs of styled text into lines
type Shaper struct {
	Base        render.Font
	Wrap        WrapMode
	LineSpacing float64
}

// NewShaper creates a shaper setting text in base unless a run overrides it
func NewShaper(base render.Font, wrap WrapMode, lineSpacing float64) *Shaper {
	return &Shaper{Base: base, Wrap: wrap, LineSpacing: lineSpacing}
}

// unit is a piece of text that is never broken
type unit struct {
	text  string
	font  render.Font
	color *render.Color
	w     float64
	space bool
	// breakBefore forces a line break before the unit when the line is not empty
	breakBefore bool
}

// Shape lays out runs in lines no wider than maxWidth. With maxWidth <= 0 each
// paragraph stays on a single line.
func (s *Shaper) Shape(m Measurer, runs []Run, maxWidth float64) *Layout {
	l := &Layout{LineSpacing: s.LineSpacing}
	for _, para := range splitParagraphs(runs) {
		units := s.units(m, para, maxWidth)
		lines := s.fill(units, maxWidth)
		lines[len(lines)-1].Last = true
		l.Lines = append(l.Lines, lines...)
	}

	for i, line := range l.Lines {
		l.W = max(l.W, line.W)
		l.H += line.H
		if i > 0 {
			l.H += s.LineSpacing
		}
	}
	return l
}

// Measure returns the extents of text laid out in lines no wider than maxWidth
func (s *Shaper) Measure(m Measurer, runs []Run, maxWidth float64) (w, h float64) {
	l := s.Shape(m, runs, maxWidth)
	return l.W, l.H
}

func (s *Shaper) units(m Measurer, runs []Run, maxWidth float64) []unit {
	var out []unit
	for _, r := range runs {
		font := r.Font(s.Base)
		for _, word := range splitIntoWords(r.Text) {
			u := unit{text: word, font: font, color: r.Color, space: isSpace(word)}
			u.w = m.MeasureText(word, font)

			split := !u.space && (s.Wrap == WrapChar || (s.Wrap == WrapWordChar && maxWidth > 0 && u.w > maxWidth))
			if !split {
				out = append(out, u)
				continue
			}
			for i, c := range word {
				ch := string(c)
				out = append(out, unit{
					text:        ch,
					font:        font,
					color:       r.Color,
					w:           m.MeasureText(ch, font),
					breakBefore: i == 0 && s.Wrap == WrapWordChar,
				})
			}
		}
	}
	return out
}

func (s *Shaper) fill(units []unit, maxWidth float64) []Line {
	var lines []Line
	var cur Line
	var pending []unit

	for _, u := range units {
		if u.space {
			pending = append(pending, u)
			continue
		}
		gap := 0.0
		for _, p := range pending {
			gap += p.w
		}
		if maxWidth > 0 && len(cur.Segments) > 0 && (u.breakBefore || cur.W+gap+u.w > maxWidth) {
			lines = append(lines, s.finish(cur))
			cur = Line{}
			pending = nil
		}
		for _, p := range pending {
			cur.add(p)
		}
		pending = nil
		cur.add(u)
	}
	return append(lines, s.finish(cur))
}

func (l *Line) add(u unit) {
	if n := len(l.Segments); n > 0 && !u.space {
		last := &l.Segments[n-1]
		if !last.Space && last.Font == u.font && last.Color == u.color {
			last.Text += u.text
			last.W += u.w
			l.W += u.w
			return
		}
	}
	l.Segments = append(l.Segments, Segment{Text: u.text, Font: u.font, Color: u.color, X: l.W, W: u.w, Space: u.space})
	l.W += u.w
	if u.space {
		l.Spaces++
	}
}

func (s *Shaper) finish(l Line) Line {
	if len(l.Segments) == 0 {
		l.Ascent = s.Base.Baseline()
		l.H = s.Base.LineHeight()
		return l
	}
	var descent float64
	for _, seg := range l.Segments {
		l.Ascent = max(l.Ascent, seg.Font.Baseline())
		descent = max(descent, seg.Font.LineHeight()-seg.Font.Baseline())
	}
	l.H = l.Ascent + descent
	return l
}

// Draw paints the layout with its top left corner at (x, y). width is the box
// the lines are aligned in; when it is 0 the layout's own width is used.
func (l *Layout) Draw(s render.Surface, x, y, width float64, align Align, color render.Color) {
	if width <= 0 {
		width = l.W
	}
	top := y
	for _, line := range l.Lines {
		offset, extra := 0.0, 0.0
		switch align {
		case AlignCenter:
			offset = (width - line.W) / 2
		case AlignRight:
			offset = width - line.W
		case AlignJustify:
			if !line.Last && line.Spaces > 0 {
				extra = (width - line.W) / float64(line.Spaces)
			}
		}

		shift := 0.0
		for _, seg := range line.Segments {
			if seg.Space {
				shift += extra
				continue
			}
			c := color
			if seg.Color != nil {
				c = *seg.Color
			}
			segTop := top + line.Ascent - seg.Font.Baseline()
			s.DrawText(x+offset+seg.X+shift, segTop, seg.Text, seg.Font, c)
		}
		top += line.H + l.LineSpacing
	}
}

// splitParagraphs splits runs at newlines. There is always at least one
// paragraph.
func splitParagraphs(runs []Run) [][]Run {
	paras := [][]Run{nil}
	for _, r := range runs {
		parts := strings.Split(r.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				paras = append(paras, nil)
			}
			if p == "" {
				continue
			}
			piece := r
			piece.Text = p
			paras[len(paras)-1] = append(paras[len(paras)-1], piece)
		}
	}
	return paras
}

// splitIntoWords splits text into alternating words and runs of white space
func splitIntoWords(text string) []string {
	var words []string
	var current strings.Builder
	space := false

	for _, r := range text {
		if r == '\r' {
			continue
		}
		s := unicode.IsSpace(r)
		if current.Len() > 0 && s != space {
			words = append(words, current.String())
			current.Reset()
		}
		space = s
		if s {
			r = ' '
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func isSpace(word string) bool {
	return strings.TrimSpace(word) == ""
}
