package sources

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/tagsort/internal/state"
	"github.com/atomicstack/tagsort/internal/suggest"
)

// Tags suggests tags found in the vault.
type Tags struct {
	store state.TagStore
}

// NewTags returns a source over the tags in store.
func NewTags(store state.TagStore) *Tags {
	return &Tags{store: store}
}

// Suggestions returns the tags whose name contains the query's characters in
// order. Until the vault has been scanned there is nothing to suggest.
func (t *Tags) Suggestions(query string) ([]state.TagEntry, bool) {
	if !t.store.Loaded() {
		return nil, false
	}
	needle := strings.TrimPrefix(strings.TrimSpace(query), "#")
	var out []state.TagEntry
	for _, entry := range t.store.Entries() {
		if needle != "" && !fuzzy.MatchNormalizedFold(needle, entry.Name) {
			continue
		}
		out = append(out, entry)
		if len(out) == Limit {
			break
		}
	}
	return out, true
}

// Render shows the tag with its note count.
func (t *Tags) Render(item state.TagEntry, el *suggest.Element) {
	el.SetText("#" + item.Name)
	el.SetHint(notes(item.Notes))
}

// Select writes the tag name into the input and reports the change.
func (t *Tags) Select(item state.TagEntry, ev suggest.Event) {
	ev.Input.SetValue(item.Name)
	ev.Input.Changed()
}
