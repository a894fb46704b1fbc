package suggest

// maxLayoutPasses bounds the width-stabilisation loop in Positioner.Update.
const maxLayoutPasses = 4

// Rect is a rectangle in screen cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell at (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Anchor is the element a floating panel is positioned against.
type Anchor interface {
	Bounds() Rect
}

// AnchorFunc adapts a function to the Anchor interface.
type AnchorFunc func() Rect

// Bounds implements Anchor.
func (f AnchorFunc) Bounds() Rect {
	return f()
}

// Floating is the positioned element. Measure returns its size when laid out
// at the given width; a width of zero asks for the natural size.
type Floating interface {
	Measure(width int) (w, h int)
}

// LayoutState is the working placement a Modifier may adjust during a pass.
type LayoutState struct {
	Anchor   Rect
	Floating Rect
	Viewport Rect
	Pass     int
}

// Modifier adjusts the placement during every layout pass.
type Modifier struct {
	Name string
	Fn   func(*LayoutState)
}

// Positioner places a floating element below its anchor, left aligned, and
// runs its modifiers on every pass.
type Positioner struct {
	anchor    Anchor
	floating  Floating
	viewport  func() Rect
	modifiers []Modifier

	applied   Rect
	passes    int
	destroyed bool
}

// NewPositioner creates a positioning engine instance.
func NewPositioner(anchor Anchor, floating Floating, viewport func() Rect, modifiers ...Modifier) *Positioner {
	return &Positioner{
		anchor:    anchor,
		floating:  floating,
		viewport:  viewport,
		modifiers: modifiers,
	}
}

// DefaultModifiers keeps the panel as wide as its anchor and on screen.
func DefaultModifiers() []Modifier {
	return []Modifier{SameWidth(), Flip(), Fit(), Shift()}
}

// Update recomputes and applies the placement. Passes repeat until the width
// a pass computes equals the width already applied, so a width change that
// alters the measured size is picked up before the result is used.
func (p *Positioner) Update() Rect {
	if p.destroyed || p.anchor == nil || p.floating == nil {
		return p.applied
	}
	anchor := p.anchor.Bounds()
	var viewport Rect
	if p.viewport != nil {
		viewport = p.viewport()
	}
	p.passes = 0
	for pass := 0; pass < maxLayoutPasses; pass++ {
		p.passes++
		w, h := p.floating.Measure(p.applied.W)
		state := LayoutState{
			Anchor:   anchor,
			Viewport: viewport,
			Pass:     pass,
			Floating: Rect{X: anchor.X, Y: anchor.Y + anchor.H, W: w, H: h},
		}
		for _, m := range p.modifiers {
			if m.Fn != nil {
				m.Fn(&state)
			}
		}
		settled := state.Floating.W == p.applied.W
		p.applied = state.Floating
		if settled {
			break
		}
	}
	return p.applied
}

// Applied returns the placement from the last Update.
func (p *Positioner) Applied() Rect {
	return p.applied
}

// Passes returns how many layout passes the last Update needed.
func (p *Positioner) Passes() int {
	return p.passes
}

// Destroy releases the anchor and floating element. Further updates return
// the last placement unchanged.
func (p *Positioner) Destroy() {
	p.destroyed = true
	p.anchor = nil
	p.floating = nil
	p.viewport = nil
}

// Destroyed reports whether Destroy has been called.
func (p *Positioner) Destroyed() bool {
	return p.destroyed
}

// SameWidth forces the floating element to the anchor's width.
func SameWidth() Modifier {
	return Modifier{Name: "sameWidth", Fn: func(s *LayoutState) {
		if s.Anchor.W > 0 {
			s.Floating.W = s.Anchor.W
		}
	}}
}

// Flip moves the element above the anchor when it does not fit below and
// there is more room above.
func Flip() Modifier {
	return Modifier{Name: "flip", Fn: func(s *LayoutState) {
		if s.Viewport.H <= 0 {
			return
		}
		below := s.Viewport.Y + s.Viewport.H - (s.Anchor.Y + s.Anchor.H)
		above := s.Anchor.Y - s.Viewport.Y
		if s.Floating.H > below && above > below {
			s.Floating.Y = s.Anchor.Y - s.Floating.H
		}
	}}
}

// Fit shrinks the element to the rows available on its side of the anchor.
func Fit() Modifier {
	return Modifier{Name: "fit", Fn: func(s *LayoutState) {
		if s.Viewport.H <= 0 {
			return
		}
		if s.Floating.Y < s.Anchor.Y {
			avail := s.Anchor.Y - s.Viewport.Y
			if s.Floating.H > avail {
				s.Floating.H = avail
			}
			s.Floating.Y = s.Anchor.Y - s.Floating.H
			return
		}
		avail := s.Viewport.Y + s.Viewport.H - s.Floating.Y
		if s.Floating.H > avail {
			s.Floating.H = avail
		}
	}}
}

// Shift keeps the element inside the viewport horizontally.
func Shift() Modifier {
	return Modifier{Name: "shift", Fn: func(s *LayoutState) {
		if s.Viewport.W <= 0 {
			return
		}
		if right := s.Viewport.X + s.Viewport.W; s.Floating.X+s.Floating.W > right {
			s.Floating.X = right - s.Floating.W
		}
		if s.Floating.X < s.Viewport.X {
			s.Floating.X = s.Viewport.X
		}
	}}
}
