package suggest

import tea "github.com/charmbracelet/bubbletea"

// List owns the rendered elements for the current suggestion set and tracks
// which one is selected. Elements are rebuilt wholesale by SetSuggestions;
// nothing is patched in place.
type List[T any] struct {
	render func(T, *Element)
	choose func(T, tea.Msg)

	values   []T
	elements []*Element
	selected int

	offset int
	rows   int
}

// NewList constructs a list that renders candidates with render and hands
// picked candidates to choose.
func NewList[T any](render func(T, *Element), choose func(T, tea.Msg)) *List[T] {
	return &List[T]{render: render, choose: choose, selected: -1}
}

// SetSuggestions replaces the suggestion set and selects the first item.
func (l *List[T]) SetSuggestions(items []T) {
	elements := make([]*Element, 0, len(items))
	for _, item := range items {
		el := &Element{}
		if l.render != nil {
			l.render(item, el)
		}
		elements = append(elements, el)
	}
	l.values = append([]T(nil), items...)
	l.elements = elements
	l.selected = -1
	l.offset = 0
	if len(elements) > 0 {
		l.SetSelectedItem(0, false)
	}
}

// SetSelectedItem moves the selection to index, wrapping around both ends.
// Only the previously and newly selected elements are touched.
func (l *List[T]) SetSelectedItem(index int, scrollIntoView bool) {
	if len(l.elements) == 0 {
		return
	}
	next := Wrap(index, len(l.elements))
	if l.selected >= 0 && l.selected < len(l.elements) {
		l.elements[l.selected].selected = false
	}
	l.elements[next].selected = true
	l.selected = next
	if scrollIntoView {
		l.scrollIntoView()
	}
}

// UseSelectedItem hands the selected candidate to the selection callback.
// It does nothing when the list is empty.
func (l *List[T]) UseSelectedItem(msg tea.Msg) {
	if l.selected < 0 || l.selected >= len(l.values) {
		return
	}
	if l.choose != nil {
		l.choose(l.values[l.selected], msg)
	}
}

// Hover selects the element shown on the given visible row without scrolling.
func (l *List[T]) Hover(row int) bool {
	idx := l.offset + row
	if row < 0 || row >= l.Rows() || idx >= len(l.elements) {
		return false
	}
	if idx != l.selected {
		l.SetSelectedItem(idx, false)
	}
	return true
}

// Click selects the element on the given visible row and uses it.
func (l *List[T]) Click(row int, msg tea.Msg) bool {
	if !l.Hover(row) {
		return false
	}
	l.UseSelectedItem(msg)
	return true
}

// Len returns the number of candidates.
func (l *List[T]) Len() int {
	return len(l.elements)
}

// SelectedIndex returns the selected index, or -1 when the list is empty.
func (l *List[T]) SelectedIndex() int {
	if len(l.elements) == 0 {
		return -1
	}
	return l.selected
}

// Selected returns the selected candidate.
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.selected < 0 || l.selected >= len(l.values) {
		return zero, false
	}
	return l.values[l.selected], true
}

// Values returns a copy of the candidates in display order.
func (l *List[T]) Values() []T {
	return append([]T(nil), l.values...)
}

// Elements returns the rendered elements in display order.
func (l *List[T]) Elements() []*Element {
	return l.elements
}

// SetRows sets how many elements fit in the visible window. Zero or less
// means every element is visible.
func (l *List[T]) SetRows(rows int) {
	l.rows = rows
	l.clampOffset()
}

// Rows returns the number of elements that are displayed.
func (l *List[T]) Rows() int {
	if l.rows <= 0 || l.rows > len(l.elements) {
		return len(l.elements)
	}
	return l.rows
}

// Offset returns the index of the first visible element.
func (l *List[T]) Offset() int {
	return l.offset
}

// Visible returns the window of elements currently on screen.
func (l *List[T]) Visible() []*Element {
	end := l.offset + l.Rows()
	if end > len(l.elements) {
		end = len(l.elements)
	}
	return l.elements[l.offset:end]
}

// scrollIntoView moves the window by the least amount that shows the
// selected element.
func (l *List[T]) scrollIntoView() {
	rows := l.Rows()
	if rows <= 0 {
		return
	}
	if l.selected < l.offset {
		l.offset = l.selected
	} else if l.selected >= l.offset+rows {
		l.offset = l.selected - rows + 1
	}
	l.clampOffset()
}

func (l *List[T]) clampOffset() {
	maxOffset := len(l.elements) - l.Rows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// Clear empties the list.
func (l *List[T]) Clear() {
	l.SetSuggestions(nil)
}

// ScrollBy moves the visible window without changing the selection.
func (l *List[T]) ScrollBy(delta int) {
	l.offset += delta
	l.clampOffset()
}
