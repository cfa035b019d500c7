package text

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/drafter/drafter/internal/render"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Run is a span of text sharing one style. Zero fields inherit from the
// enclosing style.
type Run struct {
	Text   string
	Family string
	Size   float64
	Bold   bool
	Italic bool
	Color  *render.Color
}

// Font returns base with the run's overrides applied
func (r Run) Font(base render.Font) render.Font {
	f := base
	if r.Family != "" {
		f.Family = r.Family
	}
	if r.Size > 0 {
		f.Size = r.Size
	}
	f.Bold = f.Bold || r.Bold
	f.Italic = f.Italic || r.Italic
	return f
}

// Plain returns text as a single unstyled run
func Plain(text string) []Run {
	return []Run{{Text: text}}
}

// ParseMarkup parses inline markup into runs. Supported elements:
//   - <b>, <strong>: bold
//   - <i>, <em>: italic
//   - <span color="" size="" font="" weight="bold" style="italic">
//   - <br>: line break
//
// Plain text and character references are accepted anywhere.
func ParseMarkup(markup string) ([]Run, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	var runs []Run
	for _, n := range nodes {
		if runs, err = collectRuns(n, Run{}, runs); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// MarkupRuns collects the runs of the children of an already parsed element
func MarkupRuns(parent *html.Node) ([]Run, error) {
	var runs []Run
	var err error
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if runs, err = collectRuns(c, Run{}, runs); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func collectRuns(n *html.Node, style Run, runs []Run) ([]Run, error) {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return runs, nil
		}
		r := style
		r.Text = n.Data
		return append(runs, r), nil
	case html.CommentNode:
		return runs, nil
	case html.ElementNode:
	default:
		return runs, fmt.Errorf("unexpected markup node %q", n.Data)
	}

	switch n.DataAtom {
	case atom.B, atom.Strong:
		style.Bold = true
	case atom.I, atom.Em:
		style.Italic = true
	case atom.Br:
		r := style
		r.Text = "\n"
		return append(runs, r), nil
	case atom.Span:
		var err error
		if style, err = spanStyle(n, style); err != nil {
			return runs, err
		}
	default:
		return runs, fmt.Errorf("unsupported markup element <%s>", n.Data)
	}

	var err error
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if runs, err = collectRuns(c, style, runs); err != nil {
			return runs, err
		}
	}
	return runs, nil
}

func spanStyle(n *html.Node, style Run) (Run, error) {
	for _, a := range n.Attr {
		switch a.Key {
		case "color", "foreground":
			c, err := render.ParseColor(a.Val)
			if err != nil {
				return style, fmt.Errorf("span %s: %w", a.Key, err)
			}
			style.Color = &c
		case "size":
			size, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(a.Val), "pt"), 64)
			if err != nil || size <= 0 {
				return style, fmt.Errorf("span size %q is not a positive number", a.Val)
			}
			style.Size = size
		case "font", "face":
			style.Family = a.Val
		case "weight":
			style.Bold = a.Val == "bold"
		case "style":
			style.Italic = a.Val == "italic"
		default:
			return style, fmt.Errorf("unsupported span attribute %q", a.Key)
		}
	}
	return style, nil
}

// CollapseSpace applies HTML white space rules to runs parsed from a
// document: every run of white space becomes one space, and spaces at the
// start and end of each line are dropped. Runs that are exactly "\n", as
// produced by <br>, are kept as line breaks.
func CollapseSpace(runs []Run) []Run {
	var out []Run
	space := true // a space was just emitted or a line just started
	for _, r := range runs {
		if r.Text == "\n" {
			out = trimTrailingSpace(out)
			out = append(out, r)
			space = true
			continue
		}
		var b strings.Builder
		for _, c := range r.Text {
			if unicode.IsSpace(c) {
				if !space {
					b.WriteByte(' ')
				}
				space = true
				continue
			}
			b.WriteRune(c)
			space = false
		}
		if b.Len() > 0 {
			r.Text = b.String()
			out = append(out, r)
		}
	}
	return trimTrailingSpace(out)
}

func trimTrailingSpace(runs []Run) []Run {
	for len(runs) > 0 {
		last := &runs[len(runs)-1]
		if last.Text == "\n" {
			return runs
		}
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			return runs
		}
		runs = runs[:len(runs)-1]
	}
	return runs
}
