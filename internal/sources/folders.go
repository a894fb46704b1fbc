// Package sources holds the suggestion sources bound to the rule form.
package sources

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tagsort/internal/state"
	"github.com/atomicstack/tagsort/internal/suggest"
)

// Limit caps how many suggestions a source returns.
const Limit = 1000

// Folders suggests vault folder paths.
type Folders struct {
	store state.FolderStore
}

// NewFolders returns a source over the folders in store.
func NewFolders(store state.FolderStore) *Folders {
	return &Folders{store: store}
}

// Suggestions returns the folders whose path contains query, ignoring case,
// in store order.
func (f *Folders) Suggestions(query string) ([]state.FolderEntry, bool) {
	needle := strings.ToLower(query)
	var out []state.FolderEntry
	for _, entry := range f.store.Entries() {
		if !strings.Contains(strings.ToLower(entry.Path), needle) {
			continue
		}
		out = append(out, entry)
		if len(out) == Limit {
			break
		}
	}
	return out, true
}

// Render shows the folder path with its note count as a hint.
func (f *Folders) Render(item state.FolderEntry, el *suggest.Element) {
	el.SetText(item.Path)
	if item.Notes > 0 {
		el.SetHint(notes(item.Notes))
	}
}

// Select writes the path into the input and reports the change.
func (f *Folders) Select(item state.FolderEntry, ev suggest.Event) {
	ev.Input.SetValue(item.Path)
	ev.Input.Changed()
}

func notes(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}
