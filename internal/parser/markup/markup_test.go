package markup

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/page"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/render/record"
	"github.com/drafter/drafter/internal/res"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, l *Loader, doc string) *Document {
	t.Helper()
	d, err := l.LoadString(context.Background(), doc)
	require.NoError(t, err)
	return d
}

func drawPage(t *testing.T, p page.Page) *record.Surface {
	t.Helper()
	real := record.New("real")
	_, err := p.Root.Draw(layout.NewContext(p.Viewport(), real, record.New("scratch")))
	require.NoError(t, err)
	return real
}

func TestLoadDocument(t *testing.T) {
	doc := load(t, NewLoader(nil, nil), `
		<title> Report </title>
		<meta name="author" content="Ada">
		<style>
			text { font-size: 20 }
			.small { font-size: 8 }
		</style>
		<page size="200x100" margin="10">
			<row justify="space-between" width="100%">
				<text id="a">ab</text>
				<text id="b" class="small" font-size="10">cd</text>
			</row>
		</page>
	`)

	assert.Equal(t, "Report", doc.Title)
	assert.Equal(t, "Ada", doc.Author)
	require.Len(t, doc.Pages, 1)
	p := doc.Pages[0]
	assert.Equal(t, page.Size{Width: 200, Height: 100, Name: "Custom"}, p.Size)
	assert.Equal(t, page.UniformMargins(10), p.Margins)

	drawPage(t, p)
	assert.Equal(t, "row", p.Root.Tag())
	kids := p.Root.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, "a", kids[0].Tag())
	assert.Equal(t, render.Rect{X: 10, Y: 10, W: 20, H: 24}, kids[0].Box())
	assert.Equal(t, render.Rect{X: 180, Y: 10, W: 10, H: 12}, kids[1].Box())
}

func TestLoadCascade(t *testing.T) {
	doc := load(t, NewLoader(nil, nil), `
		<style>
			text { font-size: 20; color: red }
			.small { font-size: 8 }
			#big { font-size: 30 }
			box { font-size: 99 }
		</style>
		<page>
			<text class="small">x</text>
			<text class="small" id="big">x</text>
			<text class="small" id="big" style="font-size: 6">x</text>
			<text class="small" id="big" style="font-size: 6" font-size="4">x</text>
		</page>
	`)
	drawPage(t, doc.Pages[0])

	var widths []float64
	for _, c := range doc.Pages[0].Root.Children() {
		widths = append(widths, c.Box().W)
	}
	assert.Equal(t, []float64{4, 15, 3, 2}, widths)
}

func TestLoadColumn(t *testing.T) {
	doc := load(t, NewLoader(nil, nil), `<page size="100x100">
		<column align="center" width="100%">
			<box width="20" height="10"></box>
			<box width="40" height="5"></box>
		</column>
	</page>`)
	drawPage(t, doc.Pages[0])

	col := doc.Pages[0].Root
	assert.Equal(t, "column", col.Tag())
	kids := col.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, render.Rect{X: 40, Y: 0, W: 20, H: 10}, kids[0].Box())
	assert.Equal(t, render.Rect{X: 30, Y: 10, W: 40, H: 5}, kids[1].Box())
}

func TestLoadCollapsesWhiteSpace(t *testing.T) {
	doc := load(t, NewLoader(nil, nil), `<page><text>
		hello   <b>big</b>
		world<br>next
	</text></page>`)
	real := drawPage(t, doc.Pages[0])

	var texts []string
	for _, op := range real.Filter(record.OpText) {
		texts = append(texts, op.Text)
	}
	assert.Equal(t, []string{"hello", "big", "world", "next"}, texts)
}

func TestLoadPageDefaults(t *testing.T) {
	l := NewLoader(nil, nil)
	l.PageSize = page.SizeLetter
	l.Margins = page.UniformMargins(36)
	doc := load(t, l, `<page></page><page orientation="landscape" margin="1 2"></page><page size="A5"></page>`)

	require.Len(t, doc.Pages, 3)
	assert.Equal(t, page.SizeLetter, doc.Pages[0].Size)
	assert.Equal(t, page.UniformMargins(36), doc.Pages[0].Margins)
	assert.Equal(t, page.SizeLetter.Height, doc.Pages[1].Size.Width)
	assert.Equal(t, page.Margins{Top: 1, Right: 2, Bottom: 1, Left: 2}, doc.Pages[1].Margins)
	assert.Equal(t, page.SizeA5, doc.Pages[2].Size)
	assert.Empty(t, doc.Pages[0].Root.Children())
}

func TestLoadBoxAttributes(t *testing.T) {
	doc := load(t, NewLoader(nil, nil), `<page>
		<box width="50%" height="20" margin="1 2" padding="3" background="#ff0000"
			border-width="2" border-color="blue" border-radius="4" border-cap="round" border-dash="3, 1"
			position="relative">
			<autoscale horizontal="false"></autoscale>
		</box>
	</page>`)

	cfg := doc.Pages[0].Root.Config()
	assert.Equal(t, layout.Percent(50), cfg.Width)
	assert.Equal(t, layout.Fixed(20), cfg.Height)
	assert.Equal(t, layout.PositionRelative, cfg.Position)
	require.NotNil(t, cfg.Background)
	assert.Equal(t, render.RGB(255, 0, 0), *cfg.Background)
	require.NotNil(t, cfg.Border)
	assert.Equal(t, layout.Border{Width: 2, Color: render.RGB(0, 0, 255), Radius: 4, Cap: render.CapRound, Dash: []float64{3, 1}}, *cfg.Border)
	assert.Equal(t, "autoscale", doc.Pages[0].Root.Children()[0].Tag())
}

func TestLoadCanvas(t *testing.T) {
	l := NewLoader(nil, nil)
	called := 0
	l.RegisterCanvas("bar", func(s render.Surface, w, h float64) (float64, float64, error) {
		called++
		s.FillRect(render.Rect{W: w, H: h}, render.Black)
		return w, h, nil
	})
	doc := load(t, l, `<page><canvas draw="bar" width="10" height="5"></canvas></page>`)
	real := drawPage(t, doc.Pages[0])

	assert.Equal(t, 1, called)
	assert.Len(t, real.Filter(record.OpFillRect), 1)
}

func TestLoadImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 2))))
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dot.png"), buf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("img { width: 30 }"), 0o644))
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	l := NewLoader(res.NewLoader(dir, nil), nil)
	doc := load(t, l, `<link rel="stylesheet" href="style.css"><page><img src="dot.png"><img src="`+uri+`" width="6"></page>`)
	drawPage(t, doc.Pages[0])

	kids := doc.Pages[0].Root.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, render.Rect{W: 30, H: 20}, kids[0].Box())
	assert.Equal(t, render.Rect{X: 30, W: 6, H: 4}, kids[1].Box())
}

func TestLoadReportsAllErrors(t *testing.T) {
	l := NewLoader(nil, nil)
	_, err := l.LoadString(context.Background(), `
		<style>box { colour: red }</style>
		<page>
			<box width="12em"></box>
			<circle></circle>
			<text underline="yes">x</text>
			stray
			<row justify="middle"><text font-size="big">y</text></row>
			<canvas draw="missing"></canvas>
			<img>
		</page>
	`)
	require.Error(t, err)

	for _, want := range []string{
		`unknown property "colour"`,
		"width",
		"<circle>: unsupported element",
		"underline: unknown attribute",
		`"stray" must be inside <text>`,
		"justify",
		"font-size",
		`no canvas registered as "missing"`,
		"src: missing",
	} {
		assert.Contains(t, err.Error(), want)
	}
	var sizeErr *layout.InvalidSizeError
	assert.True(t, errors.As(err, &sizeErr))
}

func TestLoadRequiresAPage(t *testing.T) {
	_, err := NewLoader(nil, nil).LoadString(context.Background(), `<style></style>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no <page>")
}
