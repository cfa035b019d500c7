// Package drafter lays out trees of boxes, rows, text, images and canvases and
// renders them to PDF or PNG. Documents can be built in Go or loaded from
// markup.
package drafter

import (
	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/nodes"
	"github.com/drafter/drafter/internal/page"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/text"
	"github.com/drafter/drafter/pkg/api"
)

type Report = api.Report
type Options = api.Options
type Option = api.Option
type PageOrientation = api.PageOrientation
type Format = api.Format

type Node = layout.Node
type Config = layout.Config
type Size = layout.Size
type Spacing = layout.Spacing
type Border = layout.Border
type RowConfig = layout.RowConfig
type ColumnConfig = layout.ColumnConfig
type AutoScaleConfig = layout.AutoScaleConfig
type TextConfig = nodes.TextConfig
type CanvasConfig = nodes.CanvasConfig
type ImageConfig = nodes.ImageConfig
type DrawFunc = nodes.DrawFunc
type Page = page.Page
type Surface = render.Surface
type Color = render.Color
type Font = render.Font
type Rect = render.Rect
type Stroke = render.Stroke

func New(opts ...Option) *Report             { return api.New(opts...) }
func NewWithOptions(options Options) *Report { return api.NewWithOptions(options) }
func DefaultOptions() Options                { return api.DefaultOptions() }

func NewBox(cfg Config, children ...*Node) (*Node, error) { return layout.New(cfg, children...) }
func NewRow(cfg RowConfig, children ...*Node) (*Node, error) {
	return layout.NewRow(cfg, children...)
}
func NewColumn(cfg ColumnConfig, children ...*Node) (*Node, error) {
	return layout.NewColumn(cfg, children...)
}
func NewAutoScale(cfg AutoScaleConfig, children ...*Node) (*Node, error) {
	return layout.NewAutoScale(cfg, children...)
}
func NewText(cfg TextConfig) (*Node, error)     { return nodes.NewText(cfg) }
func NewCanvas(cfg CanvasConfig) (*Node, error) { return nodes.NewCanvas(cfg) }
func NewImage(cfg ImageConfig) (*Node, error)   { return nodes.NewImage(cfg) }

func DefaultTextConfig() TextConfig           { return nodes.DefaultTextConfig() }
func DefaultAutoScaleConfig() AutoScaleConfig { return layout.DefaultAutoScaleConfig() }

func Auto() Size                             { return layout.Auto() }
func Fixed(n float64) Size                   { return layout.Fixed(n) }
func Percent(p float64) Size                 { return layout.Percent(p) }
func ParseSize(value string) (Size, error)   { return layout.ParseSize(value) }
func SpaceAll(s Size) Spacing                { return layout.SpaceAll(s) }
func SpaceSymmetric(v, h Size) Spacing       { return layout.SpaceSymmetric(v, h) }
func SpaceTRBL(t, r, b, l Size) Spacing      { return layout.SpaceTRBL(t, r, b, l) }
func ParseColor(value string) (Color, error) { return render.ParseColor(value) }

var (
	WithPageSize          = api.WithPageSize
	WithMargins           = api.WithMargins
	WithFormat            = api.WithFormat
	WithDPI               = api.WithDPI
	WithDebug             = api.WithDebug
	WithCompression       = api.WithCompression
	WithRenderBackgrounds = api.WithRenderBackgrounds
	WithRenderBorders     = api.WithRenderBorders
	WithDebugDrawBoxes    = api.WithDebugDrawBoxes
	WithResourcePath      = api.WithResourcePath
	WithResourceTimeout   = api.WithResourceTimeout
	WithFontDirectory     = api.WithFontDirectory
	WithTitle             = api.WithTitle
	WithAuthor            = api.WithAuthor
	WithSubject           = api.WithSubject
	WithKeywords          = api.WithKeywords
	WithCreator           = api.WithCreator
	WithLogger            = api.WithLogger
	WithNamedPageSize     = api.WithNamedPageSize
	WithPageSizeA4        = api.WithPageSizeA4
	WithPageSizeLetter    = api.WithPageSizeLetter
	WithPageSizeLegal     = api.WithPageSizeLegal
	WithPageOrientation   = api.WithPageOrientation
)

const (
	FormatPDF = api.FormatPDF
	FormatPNG = api.FormatPNG

	JustifyStart        = layout.JustifyStart
	JustifySpaceBetween = layout.JustifySpaceBetween
	JustifySpaceAround  = layout.JustifySpaceAround
	JustifyEnd          = layout.JustifyEnd
	AlignStart          = layout.AlignStart
	AlignCenter         = layout.AlignCenter
	AlignEnd            = layout.AlignEnd

	TextAlignLeft    = text.AlignLeft
	TextAlignCenter  = text.AlignCenter
	TextAlignRight   = text.AlignRight
	TextAlignJustify = text.AlignJustify
	WrapWord         = text.WrapWord
	WrapChar         = text.WrapChar
	WrapWordChar     = text.WrapWordChar
	VAlignTop        = nodes.VAlignTop
	VAlignMiddle     = nodes.VAlignMiddle
	VAlignBottom     = nodes.VAlignBottom

	PositionStatic   = layout.PositionStatic
	PositionRelative = layout.PositionRelative
	PositionAbsolute = layout.PositionAbsolute

	PageSizeA0Width  = api.PageSizeA0Width
	PageSizeA0Height = api.PageSizeA0Height
	PageSizeA1Width  = api.PageSizeA1Width
	PageSizeA1Height = api.PageSizeA1Height
	PageSizeA2Width  = api.PageSizeA2Width
	PageSizeA2Height = api.PageSizeA2Height
	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height
	PageSizeA6Width  = api.PageSizeA6Width
	PageSizeA6Height = api.PageSizeA6Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape
)
