package suggest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestList(picked *[]string) *List[string] {
	return NewList(
		func(item string, el *Element) { el.SetText(item) },
		func(item string, _ tea.Msg) {
			if picked != nil {
				*picked = append(*picked, item)
			}
		},
	)
}

func selectedMarks(l *List[string]) []int {
	var marks []int
	for i, el := range l.Elements() {
		if el.Selected() {
			marks = append(marks, i)
		}
	}
	return marks
}

func TestSetSuggestionsSelectsFirst(t *testing.T) {
	l := newTestList(nil)
	l.SetSuggestions([]string{"a", "b", "c"})
	if marks := selectedMarks(l); len(marks) != 1 || marks[0] != 0 {
		t.Fatalf("expected only element 0 selected, got %v", marks)
	}
	if l.SelectedIndex() != 0 {
		t.Fatalf("expected index 0, got %d", l.SelectedIndex())
	}
	if got := l.Elements()[1].Text(); got != "b" {
		t.Fatalf("expected rendered text b, got %q", got)
	}
}

func TestSetSuggestionsDiscardsPreviousElements(t *testing.T) {
	l := newTestList(nil)
	l.SetSuggestions([]string{"a", "b", "c"})
	old := l.Elements()
	l.SetSelectedItem(2, false)
	l.SetSuggestions([]string{"x", "y"})
	if l.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", l.Len())
	}
	for _, el := range l.Elements() {
		for _, prev := range old {
			if el == prev {
				t.Fatalf("element reused across SetSuggestions")
			}
		}
	}
	if marks := selectedMarks(l); len(marks) != 1 || marks[0] != 0 {
		t.Fatalf("expected selection reset to 0, got %v", marks)
	}
}

func TestSetSuggestionsEmpty(t *testing.T) {
	l := newTestList(nil)
	l.SetSuggestions([]string{"a"})
	l.SetSuggestions(nil)
	if l.Len() != 0 || l.SelectedIndex() != -1 {
		t.Fatalf("expected empty list, got len=%d index=%d", l.Len(), l.SelectedIndex())
	}
	if _, ok := l.Selected(); ok {
		t.Fatalf("expected no selected value")
	}
	l.SetSelectedItem(3, true)
	if l.SelectedIndex() != -1 {
		t.Fatalf("navigation on empty list must be a no-op")
	}
}

func TestSetSelectedItemWraps(t *testing.T) {
	l := newTestList(nil)
	l.SetSuggestions([]string{"a", "b", "c"})
	l.SetSelectedItem(-1, false)
	if l.SelectedIndex() != 2 {
		t.Fatalf("expected wrap to 2, got %d", l.SelectedIndex())
	}
	l.SetSelectedItem(7, false)
	if l.SelectedIndex() != 1 {
		t.Fatalf("expected wrap to 1, got %d", l.SelectedIndex())
	}
	start := l.SelectedIndex()
	for i := 0; i < l.Len(); i++ {
		l.SetSelectedItem(l.SelectedIndex()+1, true)
	}
	if l.SelectedIndex() != start {
		t.Fatalf("expected full cycle to return to %d, got %d", start, l.SelectedIndex())
	}
	if marks := selectedMarks(l); len(marks) != 1 {
		t.Fatalf("expected exactly one selected element, got %v", marks)
	}
}

func TestScrollIntoViewUsesNearestEdge(t *testing.T) {
	l := newTestList(nil)
	l.SetSuggestions([]string{"a", "b", "c", "d", "e", "f"})
	l.SetRows(3)
	l.SetSelectedItem(3, true)
	if l.Offset() != 1 {
		t.Fatalf("expected offset 1 after moving just below window, got %d", l.Offset())
	}
	l.SetSelectedItem(2, true)
	if l.Offset() != 1 {
		t.Fatalf("expected window to stay put, got %d", l.Offset())
	}
	l.SetSelectedItem(0, true)
	if l.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", l.Offset())
	}
	l.SetSelectedItem(-1, true)
	if l.Offset() != 3 {
		t.Fatalf("expected wrap to bottom window, got %d", l.Offset())
	}
	l.SetSelectedItem(4, false)
	if l.Offset() != 3 {
		t.Fatalf("selection without scroll must not move window, got %d", l.Offset())
	}
}

func TestUseSelectedItem(t *testing.T) {
	var picked []string
	l := newTestList(&picked)
	l.UseSelectedItem(nil)
	if len(picked) != 0 {
		t.Fatalf("expected no pick on empty list, got %v", picked)
	}
	l.SetSuggestions([]string{"a", "b"})
	l.SetSelectedItem(1, false)
	l.UseSelectedItem(tea.KeyMsg{Type: tea.KeyEnter})
	if len(picked) != 1 || picked[0] != "b" {
		t.Fatalf("expected b picked, got %v", picked)
	}
}

func TestHoverAndClickAreRelativeToWindow(t *testing.T) {
	var picked []string
	l := newTestList(&picked)
	l.SetSuggestions([]string{"a", "b", "c", "d"})
	l.SetRows(2)
	l.SetSelectedItem(3, true)
	if !l.Hover(0) {
		t.Fatalf("expected hover on row 0 to land")
	}
	if l.SelectedIndex() != 2 || l.Offset() != 2 {
		t.Fatalf("expected index 2 at offset 2, got index=%d offset=%d", l.SelectedIndex(), l.Offset())
	}
	if l.Hover(5) {
		t.Fatalf("hover outside the window must be ignored")
	}
	if !l.Click(1, tea.MouseMsg{}) {
		t.Fatalf("expected click to land")
	}
	if len(picked) != 1 || picked[0] != "d" {
		t.Fatalf("expected d picked, got %v", picked)
	}
}

func TestHoverPastWindowIgnored(t *testing.T) {
	var picked []string
	l := newTestList(&picked)
	l.SetSuggestions([]string{"a", "b", "c", "d", "e"})
	l.SetRows(3)
	if l.Hover(3) || l.SelectedIndex() != 0 {
		t.Fatalf("row below the window selected %d", l.SelectedIndex())
	}
	if l.Click(3, tea.MouseMsg{}) || len(picked) != 0 {
		t.Fatalf("click below the window picked %v", picked)
	}
}

func TestScrollByKeepsSelection(t *testing.T) {
	l := newTestList(nil)
	l.SetSuggestions([]string{"a", "b", "c", "d"})
	l.SetRows(2)
	l.ScrollBy(5)
	if l.Offset() != 2 {
		t.Fatalf("expected offset clamped to 2, got %d", l.Offset())
	}
	if l.SelectedIndex() != 0 {
		t.Fatalf("scrolling must not move selection, got %d", l.SelectedIndex())
	}
	l.ScrollBy(-9)
	if l.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", l.Offset())
	}
}
