package layout

// AutoScaleConfig declares a container that shrinks its children to fit
type AutoScaleConfig struct {
	Config
	Horizontal bool
	Vertical   bool
}

// DefaultAutoScaleConfig returns a config scaling on both axes
func DefaultAutoScaleConfig() AutoScaleConfig {
	return AutoScaleConfig{Horizontal: true, Vertical: true}
}

// NewAutoScale creates a node that scales its children down, about its content
// origin, when their combined extent exceeds its own content box. Children are
// never scaled up.
func NewAutoScale(cfg AutoScaleConfig, children ...*Node) (*Node, error) {
	return newNode(cfg.Config, "autoscale", &autoScalePolicy{horizontal: cfg.Horizontal, vertical: cfg.Vertical}, nil, children)
}

// ScaleFactors returns the factors fitting a children extent of (cw, ch) into
// (w, h). A factor is below 1 only when its axis is enabled and overflows.
func ScaleFactors(w, h, cw, ch float64, horizontal, vertical bool) (sx, sy float64) {
	sx, sy = 1, 1
	if horizontal && cw > 0 && w < cw {
		sx = w / cw
	}
	if vertical && ch > 0 && h < ch {
		sy = h / ch
	}
	return sx, sy
}

type autoScalePolicy struct {
	horizontal bool
	vertical   bool

	sx, sy float64
}

func (a *autoScalePolicy) MinPasses() int { return 2 }

func (a *autoScalePolicy) PreDraw(p *Pass) error {
	if p.Number == 1 {
		a.sx, a.sy = 1, 1
	}
	return nil
}

func (a *autoScalePolicy) PreUpdate(p *Pass) (func(), error) {
	if p.Number == 1 {
		return nil, nil
	}
	a.sx, a.sy = ScaleFactors(p.Last.W, p.Last.H, p.Children.W, p.Children.H, a.horizontal, a.vertical)

	s := p.Surface
	s.Save()
	s.ScaleAbout(a.sx, a.sy, p.Last.X, p.Last.Y)
	return s.Restore, nil
}

func (a *autoScalePolicy) Update(p *Pass, child Extent) {
	p.Frame.CursorX += child.W
}

func (a *autoScalePolicy) PostDraw(*Pass) {}
