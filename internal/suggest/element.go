package suggest

// Element is the rendered form of a single candidate. Sources write into it
// via Render; the list controller owns the selected mark.
type Element struct {
	text     string
	hint     string
	selected bool
}

// SetText replaces the element's primary text.
func (e *Element) SetText(text string) {
	e.text = text
}

// SetHint sets secondary text rendered muted after the primary text.
func (e *Element) SetHint(hint string) {
	e.hint = hint
}

// Text returns the element's primary text.
func (e *Element) Text() string {
	return e.text
}

// Hint returns the element's secondary text.
func (e *Element) Hint() string {
	return e.hint
}

// Selected reports whether the element carries the selected mark.
func (e *Element) Selected() bool {
	return e.selected
}
