package suggest

import tea "github.com/charmbracelet/bubbletea"

// Source computes, renders and accepts candidates for one bound input.
//
// Suggestions returns ok=false when no suggestions apply to the query at all,
// which is distinct from an empty (zero match) result; both close the panel.
type Source[T any] interface {
	Suggestions(query string) (items []T, ok bool)
	Render(item T, el *Element)
	Select(item T, ev Event)
}

// Target is the bound input as seen by a source during selection.
type Target interface {
	Value() string
	// SetValue replaces the input text without notifying anyone.
	SetValue(value string)
	// Changed dispatches an input-changed notification for the current value.
	Changed()
}

// Event describes the interaction that picked a candidate.
type Event struct {
	// Msg is the originating tea.KeyMsg or tea.MouseMsg.
	Msg   tea.Msg
	Input Target
}

// FromMouse reports whether the selection came from a mouse click.
func (e Event) FromMouse() bool {
	_, ok := e.Msg.(tea.MouseMsg)
	return ok
}
