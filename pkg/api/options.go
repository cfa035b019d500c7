package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/drafter/drafter/internal/page"
	"go.uber.org/zap"
)

// Options represents configuration options for rendering reports
type Options struct {
	// Page dimensions used for pages that do not declare their own
	PageWidth  float64
	PageHeight float64
	// Page orientation: portrait or landscape. Empty keeps the page size as
	// given.
	PageOrientation PageOrientation

	// Page margins
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Output format: pdf or png
	Format Format
	// DPI of png output
	DPI   float64
	Debug bool
	// Compress deflates PDF content streams
	Compress bool

	// Visual rendering toggles
	// When false, backgrounds will not be painted
	RenderBackgrounds bool
	// When false, borders will not be painted
	RenderBorders bool
	// When true, outline every box
	DebugDrawBoxes bool

	// Resource paths searched for images and stylesheets
	ResourcePaths   []string
	FontDirectories []string
	// ResourceTimeout bounds each remote resource request, 0 means no limit
	ResourceTimeout time.Duration

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string

	// Logger receives layout and rendering logs. When nil, Debug selects a
	// development logger and otherwise nothing is logged.
	Logger *zap.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// Format is the output document format
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat parses "pdf" or "png"
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatPDF, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", value)
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		// Default to A4 paper size (595.28 x 841.89 points)
		PageWidth:  PageSizeA4Width,
		PageHeight: PageSizeA4Height,

		Format:   FormatPDF,
		DPI:      96,
		Compress: true,

		RenderBackgrounds: true,
		RenderBorders:     true,

		ResourcePaths:   []string{},
		FontDirectories: []string{},
		ResourceTimeout: 30 * time.Second,

		Creator: "drafter",
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithFormat sets the output format
func WithFormat(format Format) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithDPI sets the DPI of png output
func WithDPI(dpi float64) Option {
	return func(o *Options) {
		o.DPI = dpi
	}
}

// WithCompression toggles PDF stream compression
func WithCompression(on bool) Option {
	return func(o *Options) {
		o.Compress = on
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithRenderBackgrounds toggles background painting
func WithRenderBackgrounds(on bool) Option {
	return func(o *Options) {
		o.RenderBackgrounds = on
	}
}

// WithRenderBorders toggles border painting
func WithRenderBorders(on bool) Option {
	return func(o *Options) {
		o.RenderBorders = on
	}
}

// WithDebugDrawBoxes outlines every box
func WithDebugDrawBoxes(on bool) Option {
	return func(o *Options) {
		o.DebugDrawBoxes = on
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithResourceTimeout bounds remote resource requests
func WithResourceTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ResourceTimeout = d
	}
}

// WithFontDirectory adds a directory to search for fonts
func WithFontDirectory(dir string) Option {
	return func(o *Options) {
		o.FontDirectories = append(o.FontDirectories, dir)
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithCreator sets the document creator
func WithCreator(creator string) Option {
	return func(o *Options) {
		o.Creator = creator
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Standard page sizes in points (1/72 inch)
const (
	// A series
	PageSizeA0Width  float64 = 2383.94
	PageSizeA0Height float64 = 3370.39
	PageSizeA1Width  float64 = 1683.78
	PageSizeA1Height float64 = 2383.94
	PageSizeA2Width  float64 = 1190.55
	PageSizeA2Height float64 = 1683.78
	PageSizeA3Width  float64 = 841.89
	PageSizeA3Height float64 = 1190.55
	PageSizeA4Width  float64 = 595.28
	PageSizeA4Height float64 = 841.89
	PageSizeA5Width  float64 = 419.53
	PageSizeA5Height float64 = 595.28
	PageSizeA6Width  float64 = 297.64
	PageSizeA6Height float64 = 419.53

	// US Letter and Legal
	PageSizeLetterWidth  float64 = 612
	PageSizeLetterHeight float64 = 792
	PageSizeLegalWidth   float64 = 612
	PageSizeLegalHeight  float64 = 1008
)

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}

// WithNamedPageSize sets a page size by name ("A4", "letter") or as
// "WIDTHxHEIGHT" in points
func WithNamedPageSize(name string) (Option, error) {
	s, err := page.ParseSize(name)
	if err != nil {
		return nil, err
	}
	return WithPageSize(s.Width, s.Height), nil
}
