package style

import (
	"strings"
	"testing"

	"github.com/drafter/drafter/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parse returns the element with id "target" in a body fragment
func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	require.NoError(t, err)
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if attr(n, "id") == "target" {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if f := find(c); f != nil {
				return f
			}
		}
		return nil
	}
	target := find(body)
	require.NotNil(t, target)
	return target
}

func engine(t *testing.T, sheet string) *Engine {
	t.Helper()
	s, err := css.ParseString(sheet)
	require.NoError(t, err)
	e := NewEngine()
	e.AddStylesheet(s)
	return e
}

func TestComputePrecedence(t *testing.T) {
	e := engine(t, `
		#target { a: id; }
		.big { a: class; b: class; }
		text { a: tag; b: tag; c: tag; d: tag }
	`)
	n := parse(t, `<text id="target" class="big" style="d: style; e: style" e="attr"></text>`)

	got, err := e.Compute(n, "id", "class")
	require.NoError(t, err)

	values := map[string]string{}
	for k, p := range got {
		values[k] = p.Value
	}
	assert.Equal(t, map[string]string{"a": "id", "b": "class", "c": "tag", "d": "style", "e": "attr"}, values)
	assert.Equal(t, SourceAttr, got["e"].Source)
	assert.Equal(t, SourceStyleAttr, got["d"].Source)
}

func TestComputeImportantBeatsSpecificity(t *testing.T) {
	e := engine(t, `text { color: red !important } #target { color: blue }`)
	n := parse(t, `<text id="target" style="color: green"></text>`)

	got, err := e.Compute(n, "id")
	require.NoError(t, err)
	v, _ := got.Get("color")
	assert.Equal(t, "red", v)
}

func TestComputeLaterRuleWinsTie(t *testing.T) {
	e := engine(t, `.a { x: 1 } .b { x: 2 }`)
	got, err := e.Compute(parse(t, `<box id="target" class="b a"></box>`), "id", "class")
	require.NoError(t, err)
	v, _ := got.Get("x")
	assert.Equal(t, "2", v)
}

func TestComputeBadStyleAttribute(t *testing.T) {
	_, err := NewEngine().Compute(parse(t, `<box id="target" style="width"></box>`))
	assert.Error(t, err)
}

func TestSelectorMatches(t *testing.T) {
	n := parse(t, `<row class="bar"><box><text id="target" class="a b"></text></box></row>`)
	tests := map[string]bool{
		"text":          true,
		"*":             true,
		"#target":       true,
		".a.b":          true,
		"text.a#target": true,
		"row text":      true,
		".bar box text": true,
		"box":           false,
		".c":            false,
		"page text":     false,
		".":             false,
	}
	for sel, want := range tests {
		assert.Equal(t, want, SelectorMatches(n, sel), sel)
	}
}

func TestCalculateSpecificity(t *testing.T) {
	assert.Equal(t, Specificity{ID: 1, Class: 2, Element: 1}, CalculateSpecificity("text#a.b.c"))
	assert.Equal(t, Specificity{Element: 2}, CalculateSpecificity("row text"))
	assert.Positive(t, Specificity{ID: 1}.Compare(Specificity{Class: 5}))
}
