package layout

import (
	"github.com/drafter/drafter/internal/render"
)

// Pass carries the state of one draw pass of a node to its policy hooks.
type Pass struct {
	// Number is 1 for the first pass of this node in the current traversal
	Number int
	// Scratch is true when this pass paints to the scratch surface
	Scratch bool
	// Surface is the surface content and children paint to during this pass
	Surface render.Surface
	// Frame is the frame handed to the children. Hooks move its cursor.
	// Nil in PreDraw.
	Frame *Frame
	// Last is the child frame captured at the end of the previous pass, nil on pass 1
	Last *Frame
	// Children is the children extent accumulated by the previous pass
	Children Extent
	// Count is the number of children
	Count int
}

// Policy decides how a node arranges its children. The traversal in
// (*Node).Draw calls the hooks in this order on every pass:
//
//	PreDraw, content, PreUpdate, (child draw, Update)*, PostDraw
//
// The set of policies is closed: Default, Row (which also lays out columns)
// and AutoScale.
type Policy interface {
	// MinPasses is the number of passes the node always needs
	MinPasses() int
	PreDraw(p *Pass) error
	// PreUpdate runs before the first child. A non-nil restore func is called
	// once all children have drawn, including when one of them fails.
	PreUpdate(p *Pass) (restore func(), err error)
	// Update runs after each child with the extent it reported
	Update(p *Pass, child Extent)
	PostDraw(p *Pass)
}

// folder is implemented by policies that accumulate children extents other
// than by summing both axes
type folder interface {
	fold(total, child Extent) Extent
}

func fold(p Policy, total, child Extent) Extent {
	if f, ok := p.(folder); ok {
		return f.fold(total, child)
	}
	return Extent{W: total.W + child.W, H: total.H + child.H}
}

// defaultPolicy stacks children left to right from the parent's cursor.
type defaultPolicy struct{}

func (defaultPolicy) MinPasses() int { return 1 }

func (defaultPolicy) PreDraw(*Pass) error { return nil }

func (defaultPolicy) PreUpdate(*Pass) (func(), error) { return nil, nil }

func (defaultPolicy) Update(p *Pass, child Extent) {
	p.Frame.CursorX += child.W
}

func (defaultPolicy) PostDraw(*Pass) {}
