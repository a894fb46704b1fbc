package suggest

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const resetSequence = "\x1b[0m"

// Layer is the container floating panels attach to. The host renders its own
// view first and hands it to Render, which draws every attached panel on top.
type Layer struct {
	width  int
	height int
	panels []*Panel
}

// NewLayer returns an empty layer with an unknown viewport.
func NewLayer() *Layer {
	return &Layer{}
}

// SetSize records the terminal size used as the positioning viewport.
func (l *Layer) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Viewport returns the area panels are kept inside.
func (l *Layer) Viewport() Rect {
	return Rect{W: l.width, H: l.height}
}

// Len returns the number of attached panels.
func (l *Layer) Len() int {
	return len(l.panels)
}

// Attached reports whether p is attached to the layer.
func (l *Layer) Attached(p *Panel) bool {
	for _, existing := range l.panels {
		if existing == p {
			return true
		}
	}
	return false
}

func (l *Layer) attach(p *Panel) {
	if l.Attached(p) {
		return
	}
	l.panels = append(l.panels, p)
}

func (l *Layer) detach(p *Panel) {
	for i, existing := range l.panels {
		if existing == p {
			l.panels = append(l.panels[:i], l.panels[i+1:]...)
			return
		}
	}
}

// Render lays out every attached panel and composites it over background.
func (l *Layer) Render(background string) string {
	if len(l.panels) == 0 {
		return background
	}
	lines := strings.Split(background, "\n")
	for _, p := range l.panels {
		rect := p.layout()
		if rect.Empty() {
			continue
		}
		for i, row := range p.lines(rect) {
			y := rect.Y + i
			if y < 0 {
				continue
			}
			for len(lines) <= y {
				lines = append(lines, "")
			}
			lines[y] = compositeRow(lines[y], row, rect.X, rect.W)
		}
	}
	return strings.Join(lines, "\n")
}

// HandleMouse routes msg to the topmost panel under the pointer and reports
// whether a panel consumed it. Consumed presses never reach the host, so the
// bound input keeps focus while a suggestion is clicked.
func (l *Layer) HandleMouse(msg tea.MouseMsg) bool {
	handled := false
	for i := len(l.panels) - 1; i >= 0; i-- {
		p := l.panels[i]
		if !handled && p.rect.Contains(msg.X, msg.Y) {
			handled = p.handleMouse(msg, msg.Y-p.rect.Y)
			continue
		}
		if msg.Action == tea.MouseActionRelease {
			p.pressed = -1
		}
	}
	return handled
}

// compositeRow replaces the cells [x, x+width) of bgLine with line.
func compositeRow(bgLine, line string, x, width int) string {
	var b strings.Builder
	bgWidth := ansi.StringWidth(bgLine)
	if x > 0 {
		left := ansi.Truncate(bgLine, x, "")
		b.WriteString(left)
		if w := ansi.StringWidth(left); w < x {
			b.WriteString(strings.Repeat(" ", x-w))
		}
		if strings.Contains(left, "\x1b[") {
			b.WriteString(resetSequence)
		}
	}
	b.WriteString(line)
	if right := x + width; bgWidth > right {
		b.WriteString(ansi.Cut(bgLine, right, bgWidth))
	}
	return b.String()
}
