// Package pdf renders pages to a PDF document through fpdf.
package pdf

import (
	"fmt"
	"io"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/drafter/drafter/internal/render"
	"go.uber.org/zap"
)

// Metadata is written to the document information dictionary
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// Options configures a Document
type Options struct {
	Metadata
	// FontDirs are searched for TrueType fonts, registered by file name
	FontDirs []string
	Compress bool
	// CreationDate is stamped on the document when not zero
	CreationDate time.Time
}

// Document is a PDF under construction. Pages are drawn on the document
// itself; measuring passes use a second document that is never emitted.
type Document struct {
	pdf     *fpdf.Fpdf
	measure *fpdf.Fpdf
	fonts   *fontSet
	log     *zap.Logger
	images  int
}

// New creates an empty document. A nil logger disables logging.
func New(opts Options, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pdf := newFpdf()
	pdf.SetCompression(opts.Compress)
	pdf.SetTitle(opts.Title, true)
	pdf.SetAuthor(opts.Author, true)
	pdf.SetSubject(opts.Subject, true)
	pdf.SetKeywords(opts.Keywords, true)
	pdf.SetCreator(opts.Creator, true)
	pdf.SetProducer(opts.Producer, true)
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
		pdf.SetModificationDate(opts.CreationDate)
	}

	files, err := scanFontDirs(opts.FontDirs, log)
	if err != nil {
		return nil, err
	}
	measure := newFpdf()
	fonts, err := register(files, log, pdf, measure)
	if err != nil {
		return nil, err
	}
	return &Document{pdf: pdf, measure: measure, fonts: fonts, log: log}, nil
}

func newFpdf() *fpdf.Fpdf {
	f := fpdf.New("P", "pt", "A4", "")
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetFont("Helvetica", "", 12)
	return f
}

// NewPage starts a page of w x h points and returns the surface painting on
// it together with a surface for measuring passes.
func (d *Document) NewPage(w, h float64) (real, scratch render.Surface, err error) {
	if w <= 0 || h <= 0 {
		return nil, nil, fmt.Errorf("invalid page size %vx%v", w, h)
	}
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
	if err := d.pdf.Error(); err != nil {
		return nil, nil, fmt.Errorf("add page: %w", err)
	}
	d.log.Debug("pdf page added", zap.Int("page", d.pdf.PageNo()), zap.Float64("w", w), zap.Float64("h", h))
	return &Surface{doc: d, pdf: d.pdf}, &Surface{doc: d, pdf: d.measure, measureOnly: true}, nil
}

// PageCount returns the number of pages added so far
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Finish writes the document to w. The document cannot be used afterwards.
func (d *Document) Finish(w io.Writer) error {
	if d.pdf.PageCount() == 0 {
		return fmt.Errorf("document has no pages")
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (d *Document) nextImageName() string {
	d.images++
	return fmt.Sprintf("img%d", d.images)
}
