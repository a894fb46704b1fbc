package state

import "github.com/atomicstack/tagsort/internal/settings"

// Rules holds the rule table shown on the main screen: the rules, the cursor
// and the viewport offset.
type Rules struct {
	Items          []settings.Rule
	Cursor         int
	ViewportOffset int
}

// NewRules constructs the table state for items with the cursor on the first
// rule.
func NewRules(items []settings.Rule) *Rules {
	r := &Rules{}
	r.UpdateItems(items)
	return r
}

// UpdateItems replaces the rules, keeping the cursor in range.
func (r *Rules) UpdateItems(items []settings.Rule) {
	r.Items = CloneRules(items)
	switch {
	case len(r.Items) == 0:
		r.Cursor = 0
		r.ViewportOffset = 0
	case r.Cursor >= len(r.Items):
		r.Cursor = len(r.Items) - 1
	case r.Cursor < 0:
		r.Cursor = 0
	}
}

// Current returns the rule under the cursor.
func (r *Rules) Current() (settings.Rule, bool) {
	if r.Cursor < 0 || r.Cursor >= len(r.Items) {
		return settings.Rule{}, false
	}
	return r.Items[r.Cursor], true
}

// Add appends rule and moves the cursor onto it.
func (r *Rules) Add(rule settings.Rule) {
	r.Items = append(r.Items, rule)
	r.Cursor = len(r.Items) - 1
}

// Replace overwrites the rule at index.
func (r *Rules) Replace(index int, rule settings.Rule) bool {
	if index < 0 || index >= len(r.Items) {
		return false
	}
	r.Items[index] = rule
	return true
}

// Remove deletes the rule at index, keeping the cursor on a neighbour.
func (r *Rules) Remove(index int) (settings.Rule, bool) {
	if index < 0 || index >= len(r.Items) {
		return settings.Rule{}, false
	}
	removed := r.Items[index]
	r.Items = append(r.Items[:index], r.Items[index+1:]...)
	if r.Cursor >= len(r.Items) {
		r.Cursor = len(r.Items) - 1
	}
	if r.Cursor < 0 {
		r.Cursor = 0
	}
	return removed, true
}
