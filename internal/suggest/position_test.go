package suggest

import "testing"

type fixedFloating struct {
	natural int
	height  int
	calls   []int
}

func (f *fixedFloating) Measure(width int) (int, int) {
	f.calls = append(f.calls, width)
	if width > 0 {
		return width, f.height
	}
	return f.natural, f.height
}

func staticViewport(r Rect) func() Rect {
	return func() Rect { return r }
}

func TestPositionerBelowAnchorSameWidth(t *testing.T) {
	anchor := AnchorFunc(func() Rect { return Rect{X: 4, Y: 2, W: 30, H: 1} })
	floating := &fixedFloating{natural: 12, height: 5}
	p := NewPositioner(anchor, floating, staticViewport(Rect{W: 80, H: 24}), DefaultModifiers()...)

	got := p.Update()
	want := Rect{X: 4, Y: 3, W: 30, H: 5}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if p.Passes() != 2 {
		t.Fatalf("expected 2 passes on first layout, got %d", p.Passes())
	}
	p.Update()
	if p.Passes() != 1 {
		t.Fatalf("expected a settled layout to take 1 pass, got %d", p.Passes())
	}
}

func TestPositionerPassCap(t *testing.T) {
	grow := 0
	anchor := AnchorFunc(func() Rect { return Rect{W: 10, H: 1} })
	unstable := Modifier{Name: "grow", Fn: func(s *LayoutState) {
		grow++
		s.Floating.W = 10 + grow
	}}
	p := NewPositioner(anchor, &fixedFloating{natural: 5, height: 3}, nil, unstable)
	p.Update()
	if p.Passes() != maxLayoutPasses {
		t.Fatalf("expected pass cap %d, got %d", maxLayoutPasses, p.Passes())
	}
}

func TestPositionerFlipsAndFits(t *testing.T) {
	anchor := AnchorFunc(func() Rect { return Rect{X: 0, Y: 18, W: 20, H: 1} })
	floating := &fixedFloating{natural: 20, height: 10}
	p := NewPositioner(anchor, floating, staticViewport(Rect{W: 40, H: 22}), DefaultModifiers()...)
	got := p.Update()
	if got.Y != 8 || got.H != 10 {
		t.Fatalf("expected panel above anchor at y=8 h=10, got %+v", got)
	}

	low := AnchorFunc(func() Rect { return Rect{X: 0, Y: 2, W: 20, H: 1} })
	p = NewPositioner(low, &fixedFloating{natural: 20, height: 30}, staticViewport(Rect{W: 40, H: 10}), DefaultModifiers()...)
	got = p.Update()
	if got.Y != 3 || got.H != 7 {
		t.Fatalf("expected panel below anchor shrunk to 7 rows, got %+v", got)
	}
}

func TestPositionerShiftsIntoViewport(t *testing.T) {
	anchor := AnchorFunc(func() Rect { return Rect{X: 70, Y: 0, W: 20, H: 1} })
	p := NewPositioner(anchor, &fixedFloating{natural: 20, height: 3}, staticViewport(Rect{W: 80, H: 24}), DefaultModifiers()...)
	if got := p.Update(); got.X != 60 {
		t.Fatalf("expected x shifted to 60, got %+v", got)
	}
}

func TestPositionerDestroy(t *testing.T) {
	anchor := AnchorFunc(func() Rect { return Rect{W: 10, H: 1} })
	floating := &fixedFloating{natural: 10, height: 3}
	p := NewPositioner(anchor, floating, nil, SameWidth())
	first := p.Update()
	p.Destroy()
	calls := len(floating.calls)
	if got := p.Update(); got != first {
		t.Fatalf("expected placement frozen after destroy, got %+v", got)
	}
	if len(floating.calls) != calls {
		t.Fatalf("destroyed positioner must not measure")
	}
	if !p.Destroyed() {
		t.Fatalf("expected destroyed flag")
	}
}
