package raster

import (
	"fmt"
	"strings"
	"sync"

	"github.com/drafter/drafter/internal/render"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// fontKey selects one of the built-in Go fonts
type fontKey struct {
	mono   bool
	bold   bool
	italic bool
}

var goFonts = map[fontKey][]byte{
	{false, false, false}: goregular.TTF,
	{false, true, false}:  gobold.TTF,
	{false, false, true}:  goitalic.TTF,
	{false, true, true}:   gobolditalic.TTF,
	{true, false, false}:  gomono.TTF,
	{true, true, false}:   gomonobold.TTF,
	{true, false, true}:   gomonoitalic.TTF,
	{true, true, true}:    gomonobolditalic.TTF,
}

var (
	parsedMu sync.Mutex
	parsed   = map[fontKey]*truetype.Font{}
)

func parseGoFont(k fontKey) (*truetype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[k]; ok {
		return f, nil
	}
	f, err := truetype.Parse(goFonts[k])
	if err != nil {
		return nil, fmt.Errorf("parse built-in font: %w", err)
	}
	parsed[k] = f
	return f, nil
}

type faceKey struct {
	fontKey
	size float64
}

// faces caches font faces by style and size. Faces are not safe for
// concurrent use, so every document owns its own cache.
type faces struct {
	cache map[faceKey]font.Face
}

func newFaces() *faces {
	return &faces{cache: make(map[faceKey]font.Face)}
}

func (fc *faces) face(f render.Font) (font.Face, error) {
	k := faceKey{fontKey: keyOf(f), size: f.Size}
	if face, ok := fc.cache[k]; ok {
		return face, nil
	}
	ttf, err := parseGoFont(k.fontKey)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: f.Size, DPI: 72, Hinting: font.HintingNone})
	fc.cache[k] = face
	return face, nil
}

// measure returns the advance width of text in points
func (fc *faces) measure(text string, f render.Font) float64 {
	if text == "" || f.Size <= 0 {
		return 0
	}
	face, err := fc.face(f)
	if err != nil {
		return 0
	}
	return float64(font.MeasureString(face, text)) / 64
}

func keyOf(f render.Font) fontKey {
	switch strings.ToLower(strings.TrimSpace(f.Family)) {
	case "courier", "courier new", "monospace", "mono", "go mono":
		return fontKey{mono: true, bold: f.Bold, italic: f.Italic}
	default:
		return fontKey{bold: f.Bold, italic: f.Italic}
	}
}
