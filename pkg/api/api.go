// Package api renders layout trees and markup documents to PDF or PNG.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/nodes"
	"github.com/drafter/drafter/internal/page"
	"github.com/drafter/drafter/internal/parser/markup"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/render/pdf"
	"github.com/drafter/drafter/internal/render/raster"
	"github.com/drafter/drafter/internal/res"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Report renders pages with a fixed set of options. It is safe for
// concurrent use once configured; every render uses its own backend.
type Report struct {
	options  Options
	log      *zap.Logger
	canvases map[string]nodes.DrawFunc
}

// New creates a report with the default options modified by opts
func New(opts ...Option) *Report {
	options := DefaultOptions()
	for _, o := range opts {
		o(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a report with the specified options
func NewWithOptions(options Options) *Report {
	log := options.Logger
	if log == nil {
		log = zap.NewNop()
		if options.Debug {
			if l, err := zap.NewDevelopment(); err == nil {
				log = l
			}
		}
	}
	return &Report{options: options, log: log, canvases: make(map[string]nodes.DrawFunc)}
}

// Options returns the options of the report
func (r *Report) Options() Options {
	return r.options
}

// WithOption returns a new report with the specified option set. Registered
// canvases are carried over.
func (r *Report) WithOption(option Option) *Report {
	options := r.options
	option(&options)
	n := NewWithOptions(options)
	for name, fn := range r.canvases {
		n.canvases[name] = fn
	}
	return n
}

// RegisterCanvas makes fn available to <canvas draw="name"> elements of
// converted markup
func (r *Report) RegisterCanvas(name string, fn nodes.DrawFunc) {
	r.canvases[name] = fn
}

// Validate checks the options
func (r *Report) Validate() error {
	o := r.options
	var result *multierror.Error
	if o.PageWidth <= 0 || o.PageHeight <= 0 {
		result = multierror.Append(result, fmt.Errorf("page size %vx%v must be positive", o.PageWidth, o.PageHeight))
	}
	if _, err := page.ParseOrientation(string(o.PageOrientation)); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := ParseFormat(string(o.Format)); err != nil {
		result = multierror.Append(result, err)
	}
	if o.Format == FormatPNG && o.DPI <= 0 {
		result = multierror.Append(result, fmt.Errorf("dpi %v must be positive", o.DPI))
	}
	for _, m := range []float64{o.MarginTop, o.MarginRight, o.MarginBottom, o.MarginLeft} {
		if m < 0 {
			result = multierror.Append(result, fmt.Errorf("margins must not be negative"))
			break
		}
	}
	return result.ErrorOrNil()
}

// PageSize returns the configured page size. An explicit orientation swaps
// the sides when they do not match it; without one the size is kept as given.
func (r *Report) PageSize() page.Size {
	size := page.Size{Width: r.options.PageWidth, Height: r.options.PageHeight, Name: "Custom"}
	if r.options.PageOrientation == "" {
		return size
	}
	o, _ := page.ParseOrientation(string(r.options.PageOrientation))
	return size.Oriented(o)
}

// Margins returns the configured page margins
func (r *Report) Margins() page.Margins {
	o := r.options
	return page.Margins{Top: o.MarginTop, Right: o.MarginRight, Bottom: o.MarginBottom, Left: o.MarginLeft}
}

// Page returns a page of the configured size and margins holding root
func (r *Report) Page(root *layout.Node) page.Page {
	return page.Page{Size: r.PageSize(), Margins: r.Margins(), Root: root}
}

// Render lays out pages and writes the document to w
func (r *Report) Render(ctx context.Context, w io.Writer, pages ...page.Page) error {
	return r.render(ctx, w, markup.Document{Pages: pages})
}

func (r *Report) render(ctx context.Context, w io.Writer, doc markup.Document) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	backend, err := r.backend(doc)
	if err != nil {
		return err
	}
	paint := layout.Paint{
		NoBackgrounds: !r.options.RenderBackgrounds,
		NoBorders:     !r.options.RenderBorders,
		DebugBoxes:    r.options.DebugDrawBoxes,
	}
	return page.NewDriver(backend, paint, r.log).Render(ctx, w, doc.Pages...)
}

func (r *Report) backend(doc markup.Document) (page.Backend, error) {
	switch r.options.Format {
	case FormatPNG:
		white := render.White
		return raster.New(raster.Options{DPI: r.options.DPI, Background: &white}, r.log), nil
	default:
		d, err := pdf.New(pdf.Options{Metadata: r.metadata(doc), FontDirs: r.options.FontDirectories, Compress: r.options.Compress}, r.log)
		if err != nil {
			return nil, fmt.Errorf("create pdf: %w", err)
		}
		return d, nil
	}
}

// metadata fills the document information from the options, falling back to
// what the markup document declares
func (r *Report) metadata(doc markup.Document) pdf.Metadata {
	return pdf.Metadata{
		Title:    first(r.options.Title, doc.Title),
		Author:   first(r.options.Author, doc.Author),
		Subject:  first(r.options.Subject, doc.Subject),
		Keywords: first(r.options.Keywords, doc.Keywords),
		Creator:  r.options.Creator,
		Producer: "drafter",
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// RenderToFile lays out pages and writes the document to path. A partially
// written file is removed.
func (r *Report) RenderToFile(ctx context.Context, path string, pages ...page.Page) error {
	return writeFile(path, func(w io.Writer) error { return r.Render(ctx, w, pages...) })
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return fn(f)
}

func (r *Report) resources(base string) *res.Loader {
	l := res.NewLoader(base, r.log)
	l.SetTimeout(r.options.ResourceTimeout)
	for _, p := range r.options.ResourcePaths {
		l.AddSearchPath(p)
	}
	return l
}

// Load parses a markup document into pages without rendering it. base is the
// file path or URL relative resources resolve against.
func (r *Report) Load(ctx context.Context, doc io.Reader, base string) (*markup.Document, error) {
	l := markup.NewLoader(r.resources(base), r.log)
	l.PageSize = r.PageSize()
	l.Margins = r.Margins()
	for name, fn := range r.canvases {
		l.RegisterCanvas(name, fn)
	}
	d, err := l.Load(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load markup: %w", err)
	}
	return d, nil
}

// ConvertMarkup renders a markup document and writes the result to w
func (r *Report) ConvertMarkup(ctx context.Context, doc string, w io.Writer) error {
	d, err := r.Load(ctx, strings.NewReader(doc), "")
	if err != nil {
		return err
	}
	return r.render(ctx, w, *d)
}

// ConvertBytes renders a markup document and returns the output bytes
func (r *Report) ConvertBytes(ctx context.Context, doc []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.ConvertMarkup(ctx, string(doc), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertFile renders the markup file at inputPath to outputPath. Relative
// resources resolve against the input file.
func (r *Report) ConvertFile(ctx context.Context, inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read markup file: %w", err)
	}
	defer in.Close()

	d, err := r.Load(ctx, in, inputPath)
	if err != nil {
		return err
	}
	return writeFile(outputPath, func(w io.Writer) error { return r.render(ctx, w, *d) })
}

// ConvertURL fetches a markup document and renders it to outputPath.
// Relative resources resolve against the URL.
func (r *Report) ConvertURL(ctx context.Context, url, outputPath string) error {
	resource, err := r.resources("").Load(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}
	d, err := r.Load(ctx, resource.Reader(), url)
	if err != nil {
		return err
	}
	return writeFile(outputPath, func(w io.Writer) error { return r.render(ctx, w, *d) })
}
