package layout

import (
	"fmt"
)

// Justify distributes free space along a row's main axis
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifySpaceBetween
	JustifySpaceAround
	JustifyEnd
)

func (j Justify) String() string {
	switch j {
	case JustifySpaceBetween:
		return "space-between"
	case JustifySpaceAround:
		return "space-around"
	case JustifyEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseJustify parses "start", "space-between", "space-around" or "end"
func ParseJustify(value string) (Justify, error) {
	switch value {
	case "", "start":
		return JustifyStart, nil
	case "space-between":
		return JustifySpaceBetween, nil
	case "space-around":
		return JustifySpaceAround, nil
	case "end":
		return JustifyEnd, nil
	}
	return JustifyStart, fmt.Errorf("unknown justify %q", value)
}

// Align places children on a row's cross axis
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlign parses "start", "center" or "end"
func ParseAlign(value string) (Align, error) {
	switch value {
	case "", "start":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end":
		return AlignEnd, nil
	}
	return AlignStart, fmt.Errorf("unknown align %q", value)
}

// RowConfig declares a row: a box model plus main and cross axis distribution
type RowConfig struct {
	Config
	Justify Justify
	Align   Align
}

// NewRow creates a node laying its children out left to right. The first pass
// measures the children; the second distributes the free width according to
// Justify and offsets each child vertically according to Align.
func NewRow(cfg RowConfig, children ...*Node) (*Node, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("row: %w", err)
	}
	return newNode(cfg.Config, "row", &rowPolicy{justify: cfg.Justify, align: cfg.Align}, nil, children)
}

// ColumnConfig declares a column. Justify distributes the free height and
// Align places each child horizontally.
type ColumnConfig RowConfig

// NewColumn creates a node laying its children out top to bottom. An auto
// sized column is as wide as its widest child.
func NewColumn(cfg ColumnConfig, children ...*Node) (*Node, error) {
	if err := RowConfig(cfg).validate(); err != nil {
		return nil, fmt.Errorf("column: %w", err)
	}
	return newNode(cfg.Config, "column", &rowPolicy{justify: cfg.Justify, align: cfg.Align, vertical: true}, nil, children)
}

func (c RowConfig) validate() error {
	if c.Justify > JustifyEnd {
		return fmt.Errorf("unknown justify %d", c.Justify)
	}
	if c.Align > AlignEnd {
		return fmt.Errorf("unknown align %d", c.Align)
	}
	return nil
}

type rowPolicy struct {
	justify Justify
	align   Align
	// vertical swaps the axes: the main axis runs top to bottom
	vertical bool

	// cross axis sizes of the children, margins included, recorded on pass 1
	cross   []float64
	spacing float64
	index   int
}

func (r *rowPolicy) MinPasses() int { return 2 }

// split returns the main and cross axis components of e
func (r *rowPolicy) split(e Extent) (main, cross float64) {
	if r.vertical {
		return e.H, e.W
	}
	return e.W, e.H
}

// cursors returns the main and cross axis cursors of f and its cross size
func (r *rowPolicy) cursors(f *Frame) (main, cross *float64, size float64) {
	if r.vertical {
		return &f.CursorY, &f.CursorX, f.W
	}
	return &f.CursorX, &f.CursorY, f.H
}

// fold accumulates children along the main axis only; the cross axis keeps
// the largest child.
func (r *rowPolicy) fold(total, child Extent) Extent {
	if r.vertical {
		return Extent{W: max(total.W, child.W), H: total.H + child.H}
	}
	return Extent{W: total.W + child.W, H: total.H + child.H}
}

func (r *rowPolicy) PreDraw(p *Pass) error {
	if p.Number == 1 {
		r.cross = r.cross[:0]
		r.spacing = 0
		return nil
	}

	size, _ := r.split(Extent{W: p.Last.W, H: p.Last.H})
	used, _ := r.split(p.Children)
	free := size - used
	switch r.justify {
	case JustifySpaceBetween:
		if p.Count > 1 {
			r.spacing = free / float64(p.Count-1)
		} else {
			r.spacing = 0
		}
	case JustifySpaceAround:
		r.spacing = free / float64(p.Count+1)
	case JustifyEnd:
		r.spacing = free
	default:
		r.spacing = 0
	}
	return nil
}

func (r *rowPolicy) PreUpdate(p *Pass) (func(), error) {
	r.index = 0
	if p.Number == 1 {
		return nil, nil
	}
	main, cross, size := r.cursors(p.Frame)
	switch r.justify {
	case JustifySpaceAround, JustifyEnd:
		*main += r.spacing
	}
	*cross = r.offset(size, 0)
	return nil, nil
}

func (r *rowPolicy) Update(p *Pass, child Extent) {
	main, cross, size := r.cursors(p.Frame)
	advance, across := r.split(child)
	*main += advance
	if p.Number == 1 {
		r.cross = append(r.cross, across)
		return
	}

	switch r.justify {
	case JustifySpaceBetween, JustifySpaceAround:
		*main += r.spacing
	}
	r.index++
	*cross = r.offset(size, r.index)
}

func (r *rowPolicy) PostDraw(*Pass) {}

// offset returns the cross axis offset of child i in a line of the given size
func (r *rowPolicy) offset(size float64, i int) float64 {
	if i >= len(r.cross) {
		return 0
	}
	switch r.align {
	case AlignCenter:
		return (size - r.cross[i]) / 2
	case AlignEnd:
		return size - r.cross[i]
	default:
		return 0
	}
}
