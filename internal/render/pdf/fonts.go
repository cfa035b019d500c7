package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/drafter/drafter/internal/render"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// fontStyles maps file name suffixes to fpdf style strings
var fontStyles = []struct {
	suffix string
	style  string
}{
	{"-bolditalic", "BI"},
	{"-boldoblique", "BI"},
	{"-bold", "B"},
	{"-italic", "I"},
	{"-oblique", "I"},
	{"-regular", ""},
}

// fontFile is a TrueType file found in a font directory
type fontFile struct {
	family string
	style  string
	path   string
}

// fontSet tracks the UTF-8 fonts registered on a document and translates
// text set in the core fonts.
type fontSet struct {
	// utf8 maps a lowercase family to the styles registered for it
	utf8 map[string]map[string]bool
	// translate converts UTF-8 to the cp1252 encoding of the core fonts
	translate func(string) string
}

// scanFontDirs lists the TrueType fonts in dirs. Missing directories are
// skipped.
func scanFontDirs(dirs []string, log *zap.Logger) ([]fontFile, error) {
	var out []fontFile
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*.[tT][tT][fF]"))
		if err != nil {
			return nil, fmt.Errorf("scan font directory %s: %w", dir, err)
		}
		if len(matches) == 0 {
			log.Debug("no fonts found", zap.String("dir", dir))
		}
		for _, m := range matches {
			family, style := parseFontName(filepath.Base(m))
			out = append(out, fontFile{family: family, style: style, path: m})
		}
	}
	return out, nil
}

// parseFontName derives a family and style from names like DejaVuSans-Bold.ttf
func parseFontName(base string) (family, style string) {
	name := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	for _, s := range fontStyles {
		if strings.HasSuffix(name, s.suffix) {
			return strings.TrimSuffix(name, s.suffix), s.style
		}
	}
	return name, ""
}

// register adds fonts to every document and returns the resulting set
func register(files []fontFile, log *zap.Logger, docs ...*fpdf.Fpdf) (*fontSet, error) {
	fs := &fontSet{
		utf8:      make(map[string]map[string]bool),
		translate: docs[0].UnicodeTranslatorFromDescriptor(""),
	}
	for _, f := range files {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", f.path, err)
		}
		for _, d := range docs {
			d.AddUTF8FontFromBytes(f.family, f.style, data)
			if err := d.Error(); err != nil {
				return nil, fmt.Errorf("load font %s: %w", f.path, err)
			}
		}
		if fs.utf8[f.family] == nil {
			fs.utf8[f.family] = make(map[string]bool)
		}
		fs.utf8[f.family][f.style] = true
		log.Debug("registered font", zap.String("family", f.family), zap.String("style", f.style), zap.String("path", f.path))
	}
	return fs, nil
}

// resolve picks the fpdf family and style for f. UTF-8 fonts loaded from the
// font directories win over the core fonts.
func (fs *fontSet) resolve(f render.Font) (family, style string, utf8 bool) {
	style = styleOf(f)
	name := strings.ToLower(strings.TrimSpace(f.Family))
	if styles, ok := fs.utf8[name]; ok {
		if !styles[style] {
			style = ""
		}
		if styles[style] {
			return name, style, true
		}
	}
	return coreFamily(name), styleOf(f), false
}

// text prepares s for the font it is set in
func (fs *fontSet) text(s string, utf8 bool) string {
	s = norm.NFC.String(s)
	if utf8 {
		return s
	}
	return fs.translate(s)
}

// coreFamily maps a family name to one of the PDF core fonts
func coreFamily(name string) string {
	switch name {
	case "times", "times new roman", "serif":
		return "Times"
	case "courier", "courier new", "monospace":
		return "Courier"
	default:
		return "Helvetica"
	}
}

func styleOf(f render.Font) string {
	style := ""
	if f.Bold {
		style += "B"
	}
	if f.Italic {
		style += "I"
	}
	return style
}
