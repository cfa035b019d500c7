package layout

import (
	"fmt"
	"math"

	"github.com/drafter/drafter/internal/render"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// MaxPasses bounds the number of passes a single node may take in one traversal
const MaxPasses = 8

// Position selects how a node is placed relative to its parent
type Position uint8

const (
	// PositionStatic flows at the parent's cursor
	PositionStatic Position = iota
	// PositionRelative flows like static and anchors absolute descendants
	PositionRelative
	// PositionAbsolute is placed at the anchor origin and takes no room in the flow
	PositionAbsolute
)

func (p Position) String() string {
	switch p {
	case PositionRelative:
		return "relative"
	case PositionAbsolute:
		return "absolute"
	default:
		return "static"
	}
}

// ParsePosition parses "static", "relative" or "absolute"
func ParsePosition(value string) (Position, error) {
	switch value {
	case "", "static":
		return PositionStatic, nil
	case "relative":
		return PositionRelative, nil
	case "absolute":
		return PositionAbsolute, nil
	}
	return PositionStatic, fmt.Errorf("unknown position %q", value)
}

// Border is painted around the border box. It takes no room in the layout.
type Border struct {
	Width  float64
	Color  render.Color
	Radius float64
	Cap    render.LineCap
	Dash   []float64
}

func (b Border) stroke() render.Stroke {
	return render.Stroke{Width: b.Width, Color: b.Color, Radius: b.Radius, Cap: b.Cap, Dash: b.Dash}
}

// Config is the box model declaration shared by every node kind
type Config struct {
	// Tag names the node in logs and errors
	Tag        string
	Width      Size
	Height     Size
	Margin     Spacing
	Padding    Spacing
	Border     *Border
	Background *render.Color
	Position   Position
}

// Validate checks every field and reports all problems at once
// Name returns the tag, or kind when no tag is set
func (c Config) Name(kind string) string {
	if c.Tag == "" {
		return kind
	}
	return c.Tag
}

func (c Config) Validate() error {
	var result *multierror.Error
	if err := c.Width.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("width: %w", err))
	}
	if err := c.Height.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("height: %w", err))
	}
	if err := c.Margin.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("margin: %w", err))
	}
	if err := c.Padding.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("padding: %w", err))
	}
	if b := c.Border; b != nil {
		if !finiteNonNegative(b.Width) {
			result = multierror.Append(result, fmt.Errorf("border width %v must be a finite non-negative number", b.Width))
		}
		if !finiteNonNegative(b.Radius) {
			result = multierror.Append(result, fmt.Errorf("border radius %v must be a finite non-negative number", b.Radius))
		}
		for _, d := range b.Dash {
			if d < 0 {
				result = multierror.Append(result, fmt.Errorf("border dash %v must not be negative", b.Dash))
				break
			}
		}
	}
	if c.Position > PositionAbsolute {
		result = multierror.Append(result, fmt.Errorf("unknown position %d", c.Position))
	}
	return result.ErrorOrNil()
}

// Content draws a node's own content inside its content box and reports the
// size it consumed. It is called on every pass, on the scratch surface for
// measuring passes and on the real surface for the final one.
type Content interface {
	DrawContent(s render.Surface, box render.Rect) (w, h float64, err error)
}

// ContentFunc adapts a function to the Content interface
type ContentFunc func(s render.Surface, box render.Rect) (float64, float64, error)

func (f ContentFunc) DrawContent(s render.Surface, box render.Rect) (float64, float64, error) {
	return f(s, box)
}

// noContent consumes exactly the box it is given
type noContent struct{}

func (noContent) DrawContent(_ render.Surface, box render.Rect) (float64, float64, error) {
	return box.W, box.H, nil
}

// Node is a box in the layout tree. A node exclusively owns its children.
type Node struct {
	cfg      Config
	policy   Policy
	content  Content
	parent   *Node
	children []*Node

	// state of the current traversal, reset on pass 1
	last      *Frame
	childrenW float64
	childrenH float64

	box render.Rect
}

// New creates a container node that stacks its children left to right
func New(cfg Config, children ...*Node) (*Node, error) {
	return newNode(cfg, "box", defaultPolicy{}, nil, children)
}

// NewWithContent creates a node whose own content is drawn by c before its
// children
func NewWithContent(cfg Config, c Content, children ...*Node) (*Node, error) {
	return newNode(cfg, "content", defaultPolicy{}, c, children)
}

// NewLeaf creates a childless node drawn by c. kind names the node when
// cfg.Tag is empty.
func NewLeaf(kind string, cfg Config, c Content) (*Node, error) {
	return newNode(cfg, kind, defaultPolicy{}, c, nil)
}

func newNode(cfg Config, tag string, policy Policy, c Content, children []*Node) (*Node, error) {
	cfg.Tag = cfg.Name(tag)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Tag, err)
	}
	if c == nil {
		c = noContent{}
	}
	n := &Node{cfg: cfg, policy: policy, content: c}
	if err := n.Append(children...); err != nil {
		return nil, err
	}
	return n, nil
}

// Append adds children in order. A child must not already have a parent and
// must not be an ancestor of n.
func (n *Node) Append(children ...*Node) error {
	for _, c := range children {
		if c == nil {
			return fmt.Errorf("%s: nil child", n.cfg.Tag)
		}
		if c.parent != nil {
			return fmt.Errorf("%s: append %s: %w", n.cfg.Tag, c.cfg.Tag, ErrChildOwned)
		}
		for a := n; a != nil; a = a.parent {
			if a == c {
				return fmt.Errorf("%s: append %s: %w", n.cfg.Tag, c.cfg.Tag, ErrCycle)
			}
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return nil
}

// Tag returns the node's name used in logs and errors
func (n *Node) Tag() string { return n.cfg.Tag }

// Config returns the node's box model declaration
func (n *Node) Config() Config { return n.cfg }

// Children returns the node's children in draw order
func (n *Node) Children() []*Node { return n.children }

// Parent returns the node's parent, nil for a root
func (n *Node) Parent() *Node { return n.parent }

// Box returns the border box computed by the final pass of the last Draw
func (n *Node) Box() render.Rect { return n.box }

// Draw lays out and paints the subtree rooted at n and returns the extent it
// consumed in the parent's flow.
func (n *Node) Draw(ctx Context) (Extent, error) {
	return n.draw(ctx, 1, false)
}

func (n *Node) draw(ctx Context, pass int, forced bool) (Extent, error) {
	if pass > MaxPasses {
		return Extent{}, &LayoutDivergedError{Tag: n.cfg.Tag, Passes: MaxPasses}
	}
	if pass == 1 {
		n.last = nil
		n.childrenW, n.childrenH = 0, 0
	}
	log := ctx.logger()
	parent := ctx.Parent

	ox, oy := parent.X+parent.CursorX, parent.Y+parent.CursorY
	if n.cfg.Position == PositionAbsolute {
		ox, oy = ctx.Anchor.X, ctx.Anchor.Y
	}
	margin, err := ResolveSpacing(parent.W, parent.H, n.cfg.Margin)
	if err != nil {
		return Extent{}, fmt.Errorf("%s: margin: %w", n.cfg.Tag, err)
	}
	padding, err := ResolveSpacing(parent.W, parent.H, n.cfg.Padding)
	if err != nil {
		return Extent{}, fmt.Errorf("%s: padding: %w", n.cfg.Tag, err)
	}
	x, y := ox+margin.Left, oy+margin.Top

	// w and h hold the content box size
	var w, h float64
	var wUndet, hUndet bool
	if pass > 1 {
		w, h = n.last.W, n.last.H
	} else {
		if w, err = ResolveSize(parent.W, n.cfg.Width); err != nil {
			return Extent{}, fmt.Errorf("%s: width: %w", n.cfg.Tag, err)
		}
		if h, err = ResolveSize(parent.H, n.cfg.Height); err != nil {
			return Extent{}, fmt.Errorf("%s: height: %w", n.cfg.Tag, err)
		}
		wUndet, hUndet = n.cfg.Width.IsAuto(), n.cfg.Height.IsAuto()
		w = nonNegative(w - padding.Horizontal())
		h = nonNegative(h - padding.Vertical())
	}

	needsMore := pass < n.policy.MinPasses() || (pass == 1 && (wUndet || hUndet))
	scratch := forced || needsMore
	surface := ctx.Surface
	if scratch {
		surface = ctx.Scratch
	}

	p := &Pass{
		Number:   pass,
		Scratch:  scratch,
		Surface:  surface,
		Last:     n.last,
		Children: Extent{W: n.childrenW, H: n.childrenH},
		Count:    len(n.children),
	}
	if err := n.policy.PreDraw(p); err != nil {
		return Extent{}, fmt.Errorf("%s: %w", n.cfg.Tag, err)
	}

	if !scratch {
		n.paintBox(ctx.Paint, surface, render.Rect{X: x, Y: y, W: w + padding.Horizontal(), H: h + padding.Vertical()})
	}

	cw, ch, err := n.content.DrawContent(surface, render.Rect{X: x + padding.Left, Y: y + padding.Top, W: w, H: h})
	if err != nil {
		return Extent{}, fmt.Errorf("%s: %w", n.cfg.Tag, err)
	}
	w, h = nonNegative(cw), nonNegative(ch)

	frame := Frame{X: x + padding.Left, Y: y + padding.Top, W: w, H: h}
	p.Frame = &frame
	childCtx := ctx
	if n.cfg.Position != PositionStatic {
		childCtx.Anchor = frame
	}
	if err := n.drawChildren(p, childCtx); err != nil {
		return Extent{}, err
	}
	n.policy.PostDraw(p)

	if wUndet {
		frame.W = math.Max(frame.W, n.childrenW)
	}
	if hUndet {
		frame.H = math.Max(frame.H, n.childrenH)
	}

	if ce := log.Check(zap.DebugLevel, "layout pass"); ce != nil {
		ce.Write(
			zap.String("tag", n.cfg.Tag),
			zap.Int("pass", pass),
			zap.Bool("scratch", scratch),
			zap.Float64("x", frame.X),
			zap.Float64("y", frame.Y),
			zap.Float64("w", frame.W),
			zap.Float64("h", frame.H),
		)
	}

	if needsMore {
		last := frame
		last.CursorX, last.CursorY = 0, 0
		n.last = &last
		return n.draw(ctx, pass+1, forced)
	}

	n.box = render.Rect{X: x, Y: y, W: frame.W + padding.Horizontal(), H: frame.H + padding.Vertical()}
	if n.cfg.Position == PositionAbsolute {
		return Extent{}, nil
	}
	return Extent{
		W: n.box.W + margin.Horizontal(),
		H: n.box.H + margin.Vertical(),
	}, nil
}

// drawChildren draws every child against p.Frame. The restore func returned
// by PreUpdate runs before drawChildren returns.
func (n *Node) drawChildren(p *Pass, ctx Context) error {
	restore, err := n.policy.PreUpdate(p)
	if err != nil {
		return fmt.Errorf("%s: %w", n.cfg.Tag, err)
	}
	if restore != nil {
		defer restore()
	}

	n.childrenW, n.childrenH = 0, 0
	for _, c := range n.children {
		ctx.Parent = *p.Frame
		ext, err := c.draw(ctx, 1, p.Scratch)
		if err != nil {
			return err
		}
		total := fold(n.policy, Extent{W: n.childrenW, H: n.childrenH}, ext)
		n.childrenW, n.childrenH = total.W, total.H
		n.policy.Update(p, ext)
	}
	return nil
}

func (n *Node) paintBox(paint Paint, s render.Surface, border render.Rect) {
	if bg := n.cfg.Background; bg != nil && !paint.NoBackgrounds && !bg.IsTransparent() {
		s.FillRect(border, *bg)
	}
	if b := n.cfg.Border; b != nil && b.Width > 0 && !paint.NoBorders {
		s.StrokeRect(border, b.stroke())
	}
	if paint.DebugBoxes {
		s.StrokeRect(border, render.Stroke{Width: 0.2, Color: render.Color{R: 1, A: 1}})
	}
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
