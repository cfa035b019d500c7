package layout

import (
	"testing"

	"github.com/drafter/drafter/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(t require.TestingT, cfg RowConfig, children ...*Node) *Node {
	n, err := NewRow(cfg, children...)
	require.NoError(t, err)
	return n
}

func TestRowJustify(t *testing.T) {
	tests := []struct {
		name    string
		justify Justify
		width   float64
		widths  []float64
		wantX   []float64
	}{
		{"start", JustifyStart, 60, []float64{10, 10, 10}, []float64{0, 10, 20}},
		{"space between", JustifySpaceBetween, 60, []float64{10, 10, 10}, []float64{0, 25, 50}},
		{"space between single child", JustifySpaceBetween, 60, []float64{10}, []float64{0}},
		{"space around", JustifySpaceAround, 50, []float64{10, 10}, []float64{10, 30}},
		{"end", JustifyEnd, 60, []float64{20}, []float64{40}},
		{"end several", JustifyEnd, 60, []float64{10, 20}, []float64{30, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var children []*Node
			for _, w := range tt.widths {
				children = append(children, sized(t, w, 5))
			}
			r := row(t, RowConfig{Config: Config{Width: Fixed(tt.width), Height: Fixed(10)}, Justify: tt.justify}, children...)

			ext, _, _ := draw(t, r, 100, 100)

			assert.Equal(t, Extent{W: tt.width, H: 10}, ext)
			for i, c := range children {
				assert.InDelta(t, tt.wantX[i], c.Box().X, 1e-9, "child %d", i)
			}
		})
	}
}

func TestRowAlign(t *testing.T) {
	tests := []struct {
		align Align
		wantY []float64
	}{
		{AlignStart, []float64{0, 0}},
		{AlignCenter, []float64{15, 10}},
		{AlignEnd, []float64{30, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			a, b := sized(t, 10, 10), sized(t, 10, 20)
			r := row(t, RowConfig{Config: Config{Width: Fixed(100), Height: Fixed(40)}, Align: tt.align}, a, b)

			draw(t, r, 200, 200)

			assert.Equal(t, tt.wantY[0], a.Box().Y)
			assert.Equal(t, tt.wantY[1], b.Box().Y)
		})
	}
}

func TestRowAlignCountsChildMargins(t *testing.T) {
	c := box(t, Config{Width: Fixed(10), Height: Fixed(10), Margin: SpaceAll(Fixed(5))})
	r := row(t, RowConfig{Config: Config{Width: Fixed(100), Height: Fixed(40)}, Align: AlignEnd}, c)

	draw(t, r, 200, 200)

	assert.Equal(t, render.Rect{X: 5, Y: 25, W: 10, H: 10}, c.Box())
}

func TestRowAutoWidth(t *testing.T) {
	a, b := sized(t, 30, 10), sized(t, 40, 10)
	r := row(t, RowConfig{Justify: JustifySpaceBetween}, a, b)

	ext, _, _ := draw(t, r, 500, 500)

	assert.Equal(t, Extent{W: 70, H: 20}, ext)
	assert.Equal(t, 30.0, b.Box().X)
}

func TestRowWithoutChildren(t *testing.T) {
	for _, j := range []Justify{JustifyStart, JustifySpaceBetween, JustifySpaceAround, JustifyEnd} {
		r := row(t, RowConfig{Config: Config{Width: Fixed(10), Height: Fixed(10)}, Justify: j, Align: AlignCenter})
		ext, _, _ := draw(t, r, 100, 100)
		assert.Equal(t, Extent{W: 10, H: 10}, ext, j.String())
	}
}

func TestNestedRowsRedistributeEachTraversal(t *testing.T) {
	leaf := sized(t, 10, 10)
	inner := row(t, RowConfig{Config: Config{Width: Fixed(40), Height: Fixed(10)}, Justify: JustifyEnd}, leaf)
	outer := row(t, RowConfig{Config: Config{Width: Fixed(100), Height: Fixed(10)}, Justify: JustifyEnd}, inner)

	for i := 0; i < 2; i++ {
		draw(t, outer, 200, 200)
		assert.Equal(t, 60.0, inner.Box().X)
		assert.Equal(t, 90.0, leaf.Box().X)
	}
}

func TestParseJustifyAndAlign(t *testing.T) {
	for _, j := range []Justify{JustifyStart, JustifySpaceBetween, JustifySpaceAround, JustifyEnd} {
		got, err := ParseJustify(j.String())
		require.NoError(t, err)
		assert.Equal(t, j, got)
	}
	for _, a := range []Align{AlignStart, AlignCenter, AlignEnd} {
		got, err := ParseAlign(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseJustify("middle")
	assert.Error(t, err)
	_, err = ParseAlign("stretch")
	assert.Error(t, err)
}

func TestNewRowRejectsUnknownEnums(t *testing.T) {
	_, err := NewRow(RowConfig{Justify: 9})
	assert.Error(t, err)
	_, err = NewRow(RowConfig{Align: 9})
	assert.Error(t, err)
}

func column(t require.TestingT, cfg ColumnConfig, children ...*Node) *Node {
	n, err := NewColumn(cfg, children...)
	require.NoError(t, err)
	return n
}

func TestColumnStacksTopToBottom(t *testing.T) {
	a, b, c := sized(t, 30, 10), sized(t, 50, 20), sized(t, 10, 5)
	col := column(t, ColumnConfig{}, a, b, c)

	ext, _, _ := draw(t, col, 200, 200)

	assert.Equal(t, Extent{W: 50, H: 35}, ext)
	assert.Equal(t, []float64{0, 10, 30}, []float64{a.Box().Y, b.Box().Y, c.Box().Y})
	assert.Equal(t, []float64{0, 0, 0}, []float64{a.Box().X, b.Box().X, c.Box().X})
}

func TestColumnJustifyAndAlign(t *testing.T) {
	tests := []struct {
		name    string
		justify Justify
		align   Align
		wantY   []float64
		wantX   []float64
	}{
		{"space between start", JustifySpaceBetween, AlignStart, []float64{0, 50}, []float64{0, 0}},
		{"space around center", JustifySpaceAround, AlignCenter, []float64{40.0 / 3, 10 + 80.0/3}, []float64{45, 40}},
		{"end end", JustifyEnd, AlignEnd, []float64{40, 50}, []float64{90, 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := sized(t, 10, 10), sized(t, 20, 10)
			cfg := ColumnConfig{Config: Config{Width: Fixed(100), Height: Fixed(60)}, Justify: tt.justify, Align: tt.align}
			col := column(t, cfg, a, b)

			draw(t, col, 200, 200)

			assert.InDelta(t, tt.wantY[0], a.Box().Y, 1e-9)
			assert.InDelta(t, tt.wantY[1], b.Box().Y, 1e-9)
			assert.Equal(t, tt.wantX, []float64{a.Box().X, b.Box().X})
		})
	}
}

func TestColumnRejectsUnknownModes(t *testing.T) {
	_, err := NewColumn(ColumnConfig{Justify: Justify(9)})
	assert.ErrorContains(t, err, "column")
	_, err = NewRow(RowConfig{Align: Align(9)})
	assert.ErrorContains(t, err, "row")
}
