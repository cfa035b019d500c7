// Package style computes the properties of markup elements from stylesheets,
// style attributes and explicit attributes.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drafter/drafter/internal/parser/css"
	"golang.org/x/net/html"
)

// Specificity of a selector, compared field by field
type Specificity struct {
	ID      int
	Class   int
	Element int
}

// Compare returns a negative number, zero or a positive number when s is less
// specific than, as specific as or more specific than o
func (s Specificity) Compare(o Specificity) int {
	if s.ID != o.ID {
		return s.ID - o.ID
	}
	if s.Class != o.Class {
		return s.Class - o.Class
	}
	return s.Element - o.Element
}

// Source is where a property value came from, in increasing precedence
type Source int

const (
	SourceSheet Source = iota
	SourceStyleAttr
	SourceAttr
)

func (s Source) String() string {
	switch s {
	case SourceStyleAttr:
		return "style attribute"
	case SourceAttr:
		return "attribute"
	default:
		return "stylesheet"
	}
}

// Property is a computed property value
type Property struct {
	Name      string
	Value     string
	Important bool
	Source    Source
}

// Computed maps property names to their winning values
type Computed map[string]Property

// Get returns the value of a property and whether it is set
func (c Computed) Get(name string) (string, bool) {
	p, ok := c[name]
	return p.Value, ok
}

// Engine applies stylesheets to elements
type Engine struct {
	sheets []*css.Stylesheet
}

// NewEngine creates an engine without stylesheets
func NewEngine() *Engine {
	return &Engine{}
}

// AddStylesheet adds a stylesheet. Later sheets win ties with earlier ones.
func (e *Engine) AddStylesheet(sheet *css.Stylesheet) {
	e.sheets = append(e.sheets, sheet)
}

type match struct {
	decl  *css.Declaration
	spec  Specificity
	order int
}

// Compute returns the properties of n. Precedence from lowest to highest:
// tag selectors, class selectors, id selectors, the style attribute, then
// every other attribute of n. Within the stylesheets an !important
// declaration beats any normal one. Attributes listed in skip (such as
// "class") are not treated as properties.
func (e *Engine) Compute(n *html.Node, skip ...string) (Computed, error) {
	var matches []match
	order := 0
	for _, sheet := range e.sheets {
		for _, rule := range sheet.Rules {
			for _, sel := range rule.Selectors {
				order++
				if !SelectorMatches(n, sel) {
					continue
				}
				spec := CalculateSpecificity(sel)
				for _, d := range rule.Declarations {
					matches = append(matches, match{decl: d, spec: spec, order: order})
				}
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.decl.Important != b.decl.Important {
			return !a.decl.Important
		}
		if c := a.spec.Compare(b.spec); c != 0 {
			return c < 0
		}
		return a.order < b.order
	})

	out := make(Computed)
	for _, m := range matches {
		out[m.decl.Property] = Property{Name: m.decl.Property, Value: m.decl.Value, Important: m.decl.Important, Source: SourceSheet}
	}

	skipped := map[string]bool{"style": true}
	for _, s := range skip {
		skipped[s] = true
	}
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		decls, err := css.ParseDeclarations(a.Val)
		if err != nil {
			return nil, fmt.Errorf("style attribute: %w", err)
		}
		for _, d := range decls {
			if cur, ok := out[d.Property]; ok && cur.Important && !d.Important {
				continue
			}
			out[d.Property] = Property{Name: d.Property, Value: d.Value, Important: d.Important, Source: SourceStyleAttr}
		}
	}
	for _, a := range n.Attr {
		if skipped[a.Key] {
			continue
		}
		out[a.Key] = Property{Name: a.Key, Value: a.Val, Source: SourceAttr}
	}
	return out, nil
}

// SelectorMatches reports whether an element matches a selector made of
// compound selectors separated by descendant combinators
func SelectorMatches(n *html.Node, selector string) bool {
	parts := strings.Fields(selector)
	if len(parts) == 0 || n == nil {
		return false
	}
	if !matchCompound(n, parts[len(parts)-1]) {
		return false
	}

	current := n.Parent
	for i := len(parts) - 2; i >= 0; i-- {
		found := false
		for anc := current; anc != nil; anc = anc.Parent {
			if matchCompound(anc, parts[i]) {
				found = true
				current = anc.Parent
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchCompound matches tag, #id, .class and combinations such as
// text#title.big against one element
func matchCompound(n *html.Node, sel string) bool {
	if n == nil || n.Type != html.ElementNode || sel == "" {
		return false
	}

	var wantTag, wantID string
	var wantClasses []string

	i := 0
	if sel[0] != '.' && sel[0] != '#' {
		j := strings.IndexAny(sel, ".#")
		if j < 0 {
			j = len(sel)
		}
		wantTag, i = sel[:j], j
	}
	for i < len(sel) {
		j := i + 1
		for j < len(sel) && sel[j] != '.' && sel[j] != '#' {
			j++
		}
		name := sel[i+1 : j]
		if name == "" {
			return false
		}
		if sel[i] == '#' {
			wantID = name
		} else {
			wantClasses = append(wantClasses, name)
		}
		i = j
	}

	if wantTag != "" && wantTag != "*" && wantTag != n.Data {
		return false
	}
	if wantID != "" && attr(n, "id") != wantID {
		return false
	}
	if len(wantClasses) > 0 {
		have := make(map[string]bool)
		for _, c := range strings.Fields(attr(n, "class")) {
			have[c] = true
		}
		for _, need := range wantClasses {
			if !have[need] {
				return false
			}
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// CalculateSpecificity counts the ids, classes and element names of a
// selector
func CalculateSpecificity(selector string) Specificity {
	var s Specificity
	for _, part := range strings.Fields(selector) {
		s.ID += strings.Count(part, "#")
		s.Class += strings.Count(part, ".")
		if part[0] != '.' && part[0] != '#' && part[0] != '*' {
			s.Element++
		}
	}
	return s
}
