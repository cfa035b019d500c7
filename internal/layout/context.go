package layout

import (
	"github.com/drafter/drafter/internal/render"
	"go.uber.org/zap"
)

// Frame is the geometry a parent hands to its children: the parent's content
// box and the relative cursor at which the next flowed child is placed.
type Frame struct {
	X, Y             float64
	W, H             float64
	CursorX, CursorY float64
}

// Rect returns the frame's box without the cursor
func (f Frame) Rect() render.Rect {
	return render.Rect{X: f.X, Y: f.Y, W: f.W, H: f.H}
}

// FrameOf returns a frame covering r with the cursor at its origin
func FrameOf(r render.Rect) Frame {
	return Frame{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Extent is the span a node consumed in its parent's flow, margins included
type Extent struct {
	W, H float64
}

// Paint toggles decorative painting on the real surface. The zero value paints
// everything and draws no debug overlay.
type Paint struct {
	NoBackgrounds bool
	NoBorders     bool
	DebugBoxes    bool
}

// Context is the ambient state of one Draw invocation. It is passed by value;
// a node never mutates the context it received.
type Context struct {
	Parent  Frame
	Anchor  Frame
	Surface render.Surface
	Scratch render.Surface
	Paint   Paint
	Logger  *zap.Logger
}

// NewContext returns the context for drawing a root node inside viewport. The
// viewport serves as both the parent frame and the absolute anchor.
func NewContext(viewport render.Rect, surface, scratch render.Surface) Context {
	f := FrameOf(viewport)
	return Context{
		Parent:  f,
		Anchor:  f,
		Surface: surface,
		Scratch: scratch,
	}
}

// WithLogger returns a copy of the context logging to l
func (c Context) WithLogger(l *zap.Logger) Context {
	c.Logger = l
	return c
}

func (c Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
