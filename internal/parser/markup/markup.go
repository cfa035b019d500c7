// Package markup builds pages of layout nodes from HTML-flavoured documents:
//
//	<style> text { font-size: 12 } .note { color: #666 } </style>
//	<page size="A4" margin="36">
//	  <row justify="space-between" width="100%">
//	    <text class="note">Left</text>
//	    <img src="logo.png" height="24">
//	  </row>
//	</page>
//
// Elements other than img must be closed explicitly; a self-closing tag such
// as <box/> opens an element that swallows its following siblings.
package markup

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/nodes"
	"github.com/drafter/drafter/internal/page"
	"github.com/drafter/drafter/internal/parser/css"
	"github.com/drafter/drafter/internal/res"
	"github.com/drafter/drafter/internal/style"
	"github.com/drafter/drafter/internal/text"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is the result of loading a markup document
type Document struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Pages    []page.Page
}

// Loader builds documents. Configure it before the first Load; Load may then
// be called concurrently.
type Loader struct {
	// PageSize and Margins apply to pages that do not declare their own
	PageSize page.Size
	Margins  page.Margins

	resources *res.Loader
	canvases  map[string]nodes.DrawFunc
	log       *zap.Logger
}

// NewLoader creates a loader fetching images and stylesheets through
// resources. A nil logger disables logging.
func NewLoader(resources *res.Loader, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if resources == nil {
		resources = res.NewLoader("", log)
	}
	return &Loader{
		PageSize:  page.SizeA4,
		resources: resources,
		canvases:  make(map[string]nodes.DrawFunc),
		log:       log,
	}
}

// RegisterCanvas makes fn available to <canvas draw="name"> elements
func (l *Loader) RegisterCanvas(name string, fn nodes.DrawFunc) {
	l.canvases[name] = fn
}

// LoadString loads a document from a string
func (l *Loader) LoadString(ctx context.Context, doc string) (*Document, error) {
	return l.Load(ctx, strings.NewReader(doc))
}

// Load parses a document and builds its pages. All problems found in the
// document are reported together.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	top, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	for _, n := range top {
		body.AppendChild(n)
	}

	b := &builder{ctx: ctx, loader: l, engine: style.NewEngine()}
	doc := &Document{}
	var pages []*html.Node
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		switch {
		case n.Type != html.ElementNode:
			b.checkText(n, "document")
		case n.Data == "style":
			b.addStylesheet(textContent(n), "<style>")
		case n.Data == "link":
			b.link(n)
		case n.Data == "title":
			doc.Title = strings.TrimSpace(textContent(n))
		case n.Data == "meta":
			b.meta(n, doc)
		case n.Data == "page":
			pages = append(pages, n)
		default:
			b.fail(n, fmt.Errorf("unsupported element at document level"))
		}
	}
	if len(pages) == 0 {
		b.errs = multierror.Append(b.errs, fmt.Errorf("document has no <page>"))
	}

	for _, n := range pages {
		if p, ok := b.page(n); ok {
			doc.Pages = append(doc.Pages, p)
		}
	}
	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	l.log.Debug("document loaded", zap.String("title", doc.Title), zap.Int("pages", len(doc.Pages)))
	return doc, nil
}

type builder struct {
	ctx    context.Context
	loader *Loader
	engine *style.Engine
	errs   *multierror.Error
}

func (b *builder) fail(n *html.Node, err error) {
	b.errs = multierror.Append(b.errs, fmt.Errorf("%s: %w", describe(n), err))
}

// describe names an element for error messages, e.g. <text id="title">
func describe(n *html.Node) string {
	if id := attr(n, "id"); id != "" {
		return fmt.Sprintf("<%s id=%q>", n.Data, id)
	}
	return "<" + n.Data + ">"
}

func (b *builder) addStylesheet(content, source string) {
	sheet, err := css.ParseString(content)
	if err != nil {
		b.errs = multierror.Append(b.errs, fmt.Errorf("%s: %w", source, err))
	}
	for _, rule := range sheet.Rules {
		for _, d := range rule.Declarations {
			if !knownProperty(d.Property) {
				b.errs = multierror.Append(b.errs, fmt.Errorf("%s: %s: unknown property %q", source, strings.Join(rule.Selectors, ", "), d.Property))
			}
		}
	}
	b.engine.AddStylesheet(sheet)
}

func (b *builder) link(n *html.Node) {
	if !strings.EqualFold(attr(n, "rel"), "stylesheet") {
		b.fail(n, fmt.Errorf("only rel=\"stylesheet\" links are supported"))
		return
	}
	href := attr(n, "href")
	r, err := b.loader.resources.Load(b.ctx, href)
	if err != nil {
		b.fail(n, err)
		return
	}
	b.addStylesheet(string(r.Data), href)
}

func (b *builder) meta(n *html.Node, doc *Document) {
	content := attr(n, "content")
	switch strings.ToLower(attr(n, "name")) {
	case "author":
		doc.Author = content
	case "subject", "description":
		doc.Subject = content
	case "keywords":
		doc.Keywords = content
	default:
		b.fail(n, fmt.Errorf("unsupported meta name %q", attr(n, "name")))
	}
}

// checkText reports text outside <text> elements. White space and comments
// are ignored.
func (b *builder) checkText(n *html.Node, where string) {
	if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
		b.errs = multierror.Append(b.errs, fmt.Errorf("%s: text %q must be inside <text>", where, strings.TrimSpace(n.Data)))
	}
}

func (b *builder) compute(n *html.Node) *props {
	values, err := b.engine.Compute(n, "id", "class")
	if err != nil {
		b.fail(n, err)
		values = style.Computed{}
	}
	return newProps(n.Data, values)
}

func (b *builder) page(n *html.Node) (page.Page, bool) {
	p := b.compute(n)
	size, margins := p.pageSetup(b.loader.PageSize, b.loader.Margins)
	if err := p.err(); err != nil {
		b.fail(n, err)
	}

	children := b.children(n)
	var root *layout.Node
	if len(children) == 1 {
		root = children[0]
	} else {
		var err error
		if root, err = layout.New(layout.Config{Tag: "page"}, children...); err != nil {
			b.fail(n, err)
			return page.Page{}, false
		}
	}
	return page.Page{Size: size, Margins: margins, Root: root}, p.err() == nil
}

// children builds the element children of a container. Children that fail
// are left out; their errors are recorded.
func (b *builder) children(n *html.Node) []*layout.Node {
	var out []*layout.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			b.checkText(c, describe(n))
			continue
		}
		if child := b.element(c); child != nil {
			out = append(out, child)
		}
	}
	return out
}

func (b *builder) element(n *html.Node) *layout.Node {
	if _, ok := properties[n.Data]; !ok || n.Data == "page" {
		b.fail(n, fmt.Errorf("unsupported element"))
		return nil
	}
	p := b.compute(n)
	tag := n.Data
	if id := attr(n, "id"); id != "" {
		tag = id
	}
	cfg := p.boxConfig(tag)

	var node *layout.Node
	var err error
	switch n.Data {
	case "box":
		children := b.children(n)
		if p.err() == nil {
			node, err = layout.New(cfg, children...)
		}
	case "row", "column":
		rc := layout.RowConfig{Config: cfg}
		p.parse("justify", func(v string) (err error) { rc.Justify, err = layout.ParseJustify(v); return })
		p.parse("align", func(v string) (err error) { rc.Align, err = layout.ParseAlign(v); return })
		children := b.children(n)
		if p.err() == nil {
			if n.Data == "row" {
				node, err = layout.NewRow(rc, children...)
			} else {
				node, err = layout.NewColumn(layout.ColumnConfig(rc), children...)
			}
		}
	case "autoscale":
		ac := layout.DefaultAutoScaleConfig()
		ac.Config = cfg
		p.flag("horizontal", &ac.Horizontal)
		p.flag("vertical", &ac.Vertical)
		children := b.children(n)
		if p.err() == nil {
			node, err = layout.NewAutoScale(ac, children...)
		}
	case "text":
		node, err = b.text(n, p, cfg)
	case "img":
		b.leaf(n)
		ic := nodes.ImageConfig{Config: cfg}
		p.parse("src", func(v string) error { ic.Src = v; return nil })
		if !p.has("src") {
			p.fail("src", fmt.Errorf("missing"))
		}
		if p.err() == nil {
			node, err = nodes.LoadImage(b.ctx, b.loader.resources, ic)
		}
	case "canvas":
		b.leaf(n)
		cc := nodes.CanvasConfig{Config: cfg}
		p.parse("draw", func(v string) error {
			fn, ok := b.loader.canvases[v]
			if !ok {
				return fmt.Errorf("no canvas registered as %q", v)
			}
			cc.Draw = fn
			return nil
		})
		if !p.has("draw") {
			p.fail("draw", fmt.Errorf("missing"))
		}
		if p.err() == nil {
			node, err = nodes.NewCanvas(cc)
		}
	}

	if perr := p.err(); perr != nil {
		b.fail(n, perr)
		return nil
	}
	if err != nil {
		b.fail(n, err)
		return nil
	}
	return node
}

func (b *builder) text(n *html.Node, p *props, cfg layout.Config) (*layout.Node, error) {
	tc := nodes.DefaultTextConfig()
	tc.Config = cfg
	p.textConfig(&tc)
	pre := p.preserveSpace()

	runs, err := text.MarkupRuns(n)
	if err != nil {
		return nil, err
	}
	if !pre {
		runs = text.CollapseSpace(runs)
	}
	if runs == nil {
		runs = []text.Run{}
	}
	tc.Runs = runs
	if p.err() != nil {
		return nil, nil
	}
	return nodes.NewText(tc)
}

// leaf reports content inside elements that take none
func (b *builder) leaf(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			b.fail(n, fmt.Errorf("unexpected child <%s>", c.Data))
			continue
		}
		b.checkText(c, describe(n))
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
