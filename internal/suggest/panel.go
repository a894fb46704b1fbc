package suggest

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tagsort/internal/keyscope"
	"github.com/atomicstack/tagsort/internal/logging/events"
	"github.com/atomicstack/tagsort/internal/theme"
)

// panelChrome is the number of cells the border adds on each axis.
const panelChrome = 2

// Content is what a Panel displays. *List satisfies it.
type Content interface {
	Len() int
	SelectedIndex() int
	Elements() []*Element
	Visible() []*Element
	SetRows(rows int)
	Hover(row int) bool
	Click(row int, msg tea.Msg) bool
	ScrollBy(delta int)
	Clear()
}

// Panel is the floating container for a suggestion list. While open it holds
// a scope on the host's keyboard stack and is attached to a Layer.
type Panel struct {
	id      string
	content Content
	scopes  *keyscope.Stack
	scope   *keyscope.Scope
	maxRows int
	styles  *theme.Styles

	layer      *Layer
	anchor     Anchor
	positioner *Positioner
	rect       Rect
	pressed    int
}

// NewPanel builds a closed panel. maxRows caps the visible list height; zero
// shows every element.
func NewPanel(id string, content Content, scopes *keyscope.Stack, scope *keyscope.Scope, maxRows int) *Panel {
	return &Panel{
		id:      id,
		content: content,
		scopes:  scopes,
		scope:   scope,
		maxRows: maxRows,
		styles:  theme.Default(),
		pressed: -1,
	}
}

// ID returns the identifier used in traces.
func (p *Panel) ID() string {
	return p.id
}

// Open attaches the panel below anchor. Opening an already open panel only
// re-anchors it.
func (p *Panel) Open(layer *Layer, anchor Anchor) {
	if layer == nil {
		return
	}
	if p.IsOpen() && p.layer == layer {
		p.anchor = anchor
		p.positioner.anchor = anchor
		p.layout()
		events.Suggest.Refresh(p.id, p.content.Len())
		return
	}
	if p.layer != nil {
		p.layer.detach(p)
	}
	if p.scopes != nil && p.scope != nil {
		p.scopes.Push(p.scope)
	}
	layer.attach(p)
	p.layer = layer
	p.anchor = anchor
	p.positioner = NewPositioner(anchor, p, layer.Viewport, DefaultModifiers()...)
	p.layout()
	events.Suggest.Open(p.id, p.content.Len())
}

// Close releases the keyboard scope, empties the list, destroys the
// positioner and detaches from the layer. Closing a closed panel does nothing
// beyond re-clearing the list.
func (p *Panel) Close() {
	wasOpen := p.IsOpen()
	if p.scopes != nil && p.scope != nil {
		p.scopes.Pop(p.scope)
	}
	p.content.Clear()
	if p.positioner != nil {
		p.positioner.Destroy()
		p.positioner = nil
	}
	if p.layer != nil {
		p.layer.detach(p)
		p.layer = nil
	}
	p.anchor = nil
	p.rect = Rect{}
	p.pressed = -1
	if wasOpen {
		events.Suggest.Close(p.id)
	}
}

// IsOpen reports whether the panel is attached to a layer.
func (p *Panel) IsOpen() bool {
	return p.layer != nil && p.layer.Attached(p)
}

// Positioner returns the live positioning engine, or nil while closed.
func (p *Panel) Positioner() *Positioner {
	return p.positioner
}

// Rect returns the placement applied by the last layout.
func (p *Panel) Rect() Rect {
	return p.rect
}

// Measure implements Floating.
func (p *Panel) Measure(width int) (int, int) {
	rows := p.content.Len()
	if p.maxRows > 0 && rows > p.maxRows {
		rows = p.maxRows
	}
	h := rows + panelChrome
	if width > 0 {
		return width, h
	}
	natural := 0
	for _, el := range p.content.Elements() {
		w := ansi.StringWidth(el.Text()) + 2
		if el.Hint() != "" {
			w += ansi.StringWidth(el.Hint()) + 2
		}
		if w > natural {
			natural = w
		}
	}
	return natural + panelChrome, h
}

func (p *Panel) layout() Rect {
	if p.positioner == nil {
		return p.rect
	}
	p.rect = p.positioner.Update()
	rows := p.rect.H - panelChrome
	if rows < 1 {
		rows = 1
	}
	p.content.SetRows(rows)
	return p.rect
}

func (p *Panel) lines(rect Rect) []string {
	inner := rect.W - panelChrome
	if inner <= 0 || rect.H <= panelChrome {
		return nil
	}
	visible := p.content.Visible()
	rows := make([]string, 0, len(visible))
	for _, el := range visible {
		rows = append(rows, p.renderRow(el, inner))
	}
	box := p.styles.Panel.Render(strings.Join(rows, "\n"))
	return strings.Split(box, "\n")
}

func (p *Panel) renderRow(el *Element, width int) string {
	style := p.styles.Suggestion
	hintStyle := p.styles.SuggestionHint
	if el.Selected() {
		style = p.styles.SuggestionSelected
		hintStyle = p.styles.SuggestionSelected
	}
	hint := ""
	if el.Hint() != "" {
		hint = " " + el.Hint() + " "
	}
	room := width - ansi.StringWidth(hint)
	if room < 1 {
		hint = ""
		room = width
	}
	label := truncate.StringWithTail(" "+el.Text(), uint(room), "…")
	if pad := room - ansi.StringWidth(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	row := style.Render(label)
	if hint != "" {
		row += hintStyle.Render(hint)
	}
	return row
}

// handleMouse consumes every event inside the panel. Rows on the border map
// to no item.
func (p *Panel) handleMouse(msg tea.MouseMsg, row int) bool {
	item := row - 1
	if row <= 0 || row >= p.rect.H-1 {
		item = -1
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.content.ScrollBy(-1)
		case tea.MouseButtonWheelDown:
			p.content.ScrollBy(1)
		case tea.MouseButtonLeft:
			p.pressed = item
		}
	case tea.MouseActionMotion:
		before := p.content.SelectedIndex()
		if p.content.Hover(item) && p.content.SelectedIndex() != before {
			events.Suggest.Cursor(p.id, p.content.SelectedIndex())
		}
	case tea.MouseActionRelease:
		pressed := p.pressed
		p.pressed = -1
		if pressed >= 0 && pressed == item {
			p.content.Click(item, msg)
		}
	}
	return true
}
