package suggest

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tagsort/internal/keyscope"
)

func newTestPanel(items ...string) (*Panel, *List[string], *keyscope.Stack, *keyscope.Scope) {
	list := newTestList(nil)
	list.SetSuggestions(items)
	stack := keyscope.NewStack()
	scope := keyscope.New("test")
	return NewPanel("test", list, stack, scope, 4), list, stack, scope
}

func inputAnchor() Anchor {
	return AnchorFunc(func() Rect { return Rect{X: 2, Y: 1, W: 20, H: 1} })
}

func TestPanelOpenPushesScopeOnce(t *testing.T) {
	panel, _, stack, scope := newTestPanel("a", "b")
	layer := NewLayer()
	layer.SetSize(80, 24)

	panel.Open(layer, inputAnchor())
	panel.Open(layer, inputAnchor())
	if stack.Len() != 1 || stack.Top() != scope {
		t.Fatalf("expected scope pushed exactly once, stack len %d", stack.Len())
	}
	if layer.Len() != 1 || !panel.IsOpen() {
		t.Fatalf("expected panel attached once, layer len %d", layer.Len())
	}
	if panel.Positioner() == nil {
		t.Fatalf("expected positioner while open")
	}
	if got := panel.Rect(); got.Y != 2 || got.W != 20 || got.H != 4 {
		t.Fatalf("unexpected placement %+v", got)
	}
}

func TestPanelCloseIdempotent(t *testing.T) {
	panel, list, stack, _ := newTestPanel("a", "b")
	layer := NewLayer()
	panel.Open(layer, inputAnchor())
	positioner := panel.Positioner()

	panel.Close()
	if stack.Len() != 0 || layer.Len() != 0 || panel.IsOpen() {
		t.Fatalf("expected panel fully released")
	}
	if list.Len() != 0 {
		t.Fatalf("expected elements cleared, got %d", list.Len())
	}
	if !positioner.Destroyed() || panel.Positioner() != nil {
		t.Fatalf("expected positioner destroyed")
	}
	first := panel.Rect()

	panel.Close()
	if stack.Len() != 0 || layer.Len() != 0 || panel.IsOpen() || list.Len() != 0 || panel.Rect() != first {
		t.Fatalf("second close changed observable state")
	}
}

func TestPanelCloseLeavesOtherScopes(t *testing.T) {
	panel, _, stack, _ := newTestPanel("a")
	host := keyscope.New("host")
	stack.Push(host)
	panel.Open(NewLayer(), inputAnchor())
	panel.Close()
	if stack.Len() != 1 || stack.Top() != host {
		t.Fatalf("expected host scope to survive close")
	}
}

func TestLayerRenderCompositesPanel(t *testing.T) {
	panel, _, _, _ := newTestPanel("alpha", "beta")
	layer := NewLayer()
	layer.SetSize(40, 10)
	panel.Open(layer, inputAnchor())

	background := strings.Repeat(strings.Repeat(".", 40)+"\n", 9) + strings.Repeat(".", 40)
	out := layer.Render(background)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "....") {
		t.Fatalf("row above panel should be untouched: %q", lines[0])
	}
	if !strings.Contains(lines[3], "alpha") || !strings.Contains(lines[4], "beta") {
		t.Fatalf("expected suggestions composited at rows 3-4:\n%s", out)
	}
	if !strings.HasPrefix(lines[3], "..") || !strings.HasSuffix(lines[3], "..") {
		t.Fatalf("expected background either side of panel: %q", lines[3])
	}
}

func TestLayerRenderWithoutPanels(t *testing.T) {
	layer := NewLayer()
	if got := layer.Render("hello"); got != "hello" {
		t.Fatalf("expected background unchanged, got %q", got)
	}
}

func TestLayerMouseHoverAndClick(t *testing.T) {
	var picked []string
	list := newTestList(&picked)
	list.SetSuggestions([]string{"alpha", "beta", "gamma"})
	panel := NewPanel("test", list, keyscope.NewStack(), keyscope.New("test"), 0)
	layer := NewLayer()
	layer.SetSize(40, 10)
	panel.Open(layer, inputAnchor())
	rect := panel.Rect()

	if layer.HandleMouse(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion}) {
		t.Fatalf("mouse outside panel must not be consumed")
	}
	if !layer.HandleMouse(tea.MouseMsg{X: rect.X + 2, Y: rect.Y + 2, Action: tea.MouseActionMotion}) {
		t.Fatalf("expected motion inside panel consumed")
	}
	if list.SelectedIndex() != 1 {
		t.Fatalf("expected hover to select 1, got %d", list.SelectedIndex())
	}
	press := tea.MouseMsg{X: rect.X + 2, Y: rect.Y + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !layer.HandleMouse(press) {
		t.Fatalf("expected press consumed")
	}
	if len(picked) != 0 {
		t.Fatalf("press alone must not pick")
	}
	release := tea.MouseMsg{X: rect.X + 2, Y: rect.Y + 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	layer.HandleMouse(release)
	if len(picked) != 1 || picked[0] != "gamma" {
		t.Fatalf("expected gamma picked, got %v", picked)
	}
}

func TestLayerMouseOnBorderPicksNothing(t *testing.T) {
	var picked []string
	list := newTestList(&picked)
	list.SetSuggestions([]string{"a0", "a1", "a2", "a3", "a4", "a5"})
	panel := NewPanel("test", list, keyscope.NewStack(), keyscope.New("test"), 4)
	layer := NewLayer()
	layer.SetSize(40, 12)
	panel.Open(layer, inputAnchor())
	rect := panel.Rect()
	if rect.H != 6 {
		t.Fatalf("expected four rows plus border, got %+v", rect)
	}

	for _, y := range []int{rect.Y, rect.Y + rect.H - 1} {
		if !layer.HandleMouse(tea.MouseMsg{X: rect.X + 2, Y: y, Action: tea.MouseActionMotion}) {
			t.Fatalf("expected motion on border row %d consumed", y)
		}
		if list.SelectedIndex() != 0 || list.Offset() != 0 {
			t.Fatalf("border row %d moved selection to %d offset %d", y, list.SelectedIndex(), list.Offset())
		}
		layer.HandleMouse(tea.MouseMsg{X: rect.X + 2, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		layer.HandleMouse(tea.MouseMsg{X: rect.X + 2, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
		if len(picked) != 0 {
			t.Fatalf("click on border row %d picked %v", y, picked)
		}
	}

	last := rect.Y + rect.H - 2
	layer.HandleMouse(tea.MouseMsg{X: rect.X + 2, Y: last, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	layer.HandleMouse(tea.MouseMsg{X: rect.X + 2, Y: last, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if len(picked) != 1 || picked[0] != "a3" {
		t.Fatalf("expected last visible item a3 picked, got %v", picked)
	}
}

func TestPanelMeasureNaturalWidth(t *testing.T) {
	list := NewList(func(item string, el *Element) {
		el.SetText(item)
		el.SetHint("2")
	}, nil)
	list.SetSuggestions([]string{"abc", "abcdef"})
	panel := NewPanel("m", list, nil, nil, 1)
	w, h := panel.Measure(0)
	if w != len("abcdef")+2+1+2+panelChrome || h != 1+panelChrome {
		t.Fatalf("unexpected natural size %dx%d", w, h)
	}
	if w, _ := panel.Measure(30); w != 30 {
		t.Fatalf("expected constrained width 30, got %d", w)
	}
}
