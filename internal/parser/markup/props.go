package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/nodes"
	"github.com/drafter/drafter/internal/page"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/style"
	"github.com/drafter/drafter/internal/text"
	"github.com/hashicorp/go-multierror"
)

var boxProps = []string{
	"width", "height", "margin", "padding", "background",
	"border-width", "border-color", "border-radius", "border-cap", "border-dash",
	"position",
}

var textProps = []string{
	"color", "font", "font-size", "font-weight", "font-style",
	"wrap", "align", "valign", "line-spacing", "white-space",
}

// properties lists the properties each element accepts besides id and class
var properties = map[string][]string{
	"page":      {"width", "height", "size", "orientation", "margin"},
	"box":       boxProps,
	"row":       append([]string{"justify", "align"}, boxProps...),
	"column":    append([]string{"justify", "align"}, boxProps...),
	"autoscale": append([]string{"horizontal", "vertical"}, boxProps...),
	"text":      append(append([]string{}, textProps...), boxProps...),
	"img":       append([]string{"src"}, boxProps...),
	"canvas":    append([]string{"draw"}, boxProps...),
}

// knownProperty reports whether any element accepts name
func knownProperty(name string) bool {
	for _, props := range properties {
		for _, p := range props {
			if p == name {
				return true
			}
		}
	}
	return false
}

// props is the computed property set of one element
type props struct {
	element string
	values  style.Computed
	errs    *multierror.Error
}

func newProps(element string, values style.Computed) *props {
	p := &props{element: element, values: values}
	allowed := map[string]bool{}
	for _, name := range properties[element] {
		allowed[name] = true
	}
	for name, v := range values {
		if allowed[name] {
			continue
		}
		// stylesheet rules may target several element kinds at once
		if v.Source == style.SourceSheet {
			delete(values, name)
			continue
		}
		p.fail(name, fmt.Errorf("unknown %s", v.Source))
	}
	return p
}

func (p *props) fail(name string, err error) {
	p.errs = multierror.Append(p.errs, fmt.Errorf("%s: %w", name, err))
}

func (p *props) err() error {
	return p.errs.ErrorOrNil()
}

// parse calls fn with the value of name when it is set
func (p *props) parse(name string, fn func(string) error) {
	v, ok := p.values.Get(name)
	if !ok {
		return
	}
	if err := fn(v); err != nil {
		p.fail(name, err)
	}
}

func (p *props) has(name string) bool {
	_, ok := p.values[name]
	return ok
}

func (p *props) number(name string, dst *float64) {
	p.parse(name, func(v string) error {
		n, err := parseNumber(v)
		if err == nil {
			*dst = n
		}
		return err
	})
}

func (p *props) flag(name string, dst *bool) {
	p.parse(name, func(v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			*dst = b
		}
		return err
	})
}

// parseNumber parses a number of points, optionally suffixed with pt or px
func parseNumber(v string) (float64, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(strings.TrimSuffix(v, "pt"), "px")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", v)
	}
	return n, nil
}

// parseNumbers parses a list of numbers separated by spaces or commas
func parseNumbers(v string) ([]float64, error) {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := parseNumber(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (p *props) boxConfig(tag string) layout.Config {
	cfg := layout.Config{Tag: tag}
	p.parse("width", func(v string) (err error) { cfg.Width, err = layout.ParseSize(v); return })
	p.parse("height", func(v string) (err error) { cfg.Height, err = layout.ParseSize(v); return })
	p.parse("margin", func(v string) (err error) { cfg.Margin, err = layout.ParseSpacing(v); return })
	p.parse("padding", func(v string) (err error) { cfg.Padding, err = layout.ParseSpacing(v); return })
	p.parse("position", func(v string) (err error) { cfg.Position, err = layout.ParsePosition(v); return })
	p.parse("background", func(v string) error {
		c, err := render.ParseColor(v)
		cfg.Background = &c
		return err
	})

	if p.has("border-width") || p.has("border-color") || p.has("border-radius") || p.has("border-cap") || p.has("border-dash") {
		b := &layout.Border{Width: 1, Color: render.Black}
		p.number("border-width", &b.Width)
		p.number("border-radius", &b.Radius)
		p.parse("border-color", func(v string) (err error) { b.Color, err = render.ParseColor(v); return })
		p.parse("border-cap", func(v string) (err error) { b.Cap, err = render.ParseLineCap(v); return })
		p.parse("border-dash", func(v string) (err error) { b.Dash, err = parseNumbers(v); return })
		cfg.Border = b
	}
	return cfg
}

func (p *props) textConfig(cfg *nodes.TextConfig) {
	p.parse("color", func(v string) (err error) { cfg.Color, err = render.ParseColor(v); return })
	p.parse("font", func(v string) error { cfg.Font.Family = strings.Trim(strings.TrimSpace(v), `"'`); return nil })
	p.number("font-size", &cfg.Font.Size)
	p.parse("font-weight", func(v string) error {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "bold":
			cfg.Font.Bold = true
		case "normal":
			cfg.Font.Bold = false
		default:
			return fmt.Errorf("unknown font weight %q", v)
		}
		return nil
	})
	p.parse("font-style", func(v string) error {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "italic":
			cfg.Font.Italic = true
		case "normal":
			cfg.Font.Italic = false
		default:
			return fmt.Errorf("unknown font style %q", v)
		}
		return nil
	})
	p.parse("wrap", func(v string) (err error) { cfg.Wrap, err = text.ParseWrapMode(v); return })
	p.parse("align", func(v string) (err error) { cfg.Align, err = text.ParseAlign(v); return })
	p.parse("valign", func(v string) (err error) { cfg.VAlign, err = nodes.ParseVAlign(v); return })
	p.number("line-spacing", &cfg.LineSpacing)
}

// preserveSpace reports whether white-space is "pre"
func (p *props) preserveSpace() bool {
	pre := false
	p.parse("white-space", func(v string) error {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "pre":
			pre = true
		case "normal":
		default:
			return fmt.Errorf("unknown white-space %q", v)
		}
		return nil
	})
	return pre
}

func (p *props) pageSetup(size page.Size, margins page.Margins) (page.Size, page.Margins) {
	orientation := page.Portrait
	explicit := false
	p.parse("size", func(v string) (err error) { size, err = page.ParseSize(v); return })
	p.parse("orientation", func(v string) (err error) { orientation, err = page.ParseOrientation(v); explicit = true; return })
	if explicit {
		size = size.Oriented(orientation)
	}
	if p.has("width") || p.has("height") {
		size.Name = "Custom"
	}
	p.number("width", &size.Width)
	p.number("height", &size.Height)
	if size.Width <= 0 || size.Height <= 0 {
		p.fail("size", fmt.Errorf("page size %vx%v must be positive", size.Width, size.Height))
	}

	p.parse("margin", func(v string) error {
		n, err := parseNumbers(v)
		if err != nil {
			return err
		}
		switch len(n) {
		case 1:
			margins = page.UniformMargins(n[0])
		case 2:
			margins = page.Margins{Top: n[0], Right: n[1], Bottom: n[0], Left: n[1]}
		case 3:
			margins = page.Margins{Top: n[0], Right: n[1], Bottom: n[2], Left: n[1]}
		case 4:
			margins = page.Margins{Top: n[0], Right: n[1], Bottom: n[2], Left: n[3]}
		default:
			return fmt.Errorf("%q must hold 1 to 4 numbers", v)
		}
		return nil
	})
	return size, margins
}
