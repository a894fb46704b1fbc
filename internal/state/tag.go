package state

import "strings"

// TagEntry is a vault tag and how many notes carry it.
type TagEntry struct {
	Name  string
	Notes int
}

type TagStore interface {
	Entries() []TagEntry
	SetEntries([]TagEntry)
	Count(name string) int
	Loaded() bool
}

type tagStore struct {
	entries []TagEntry
	loaded  bool
}

func NewTagStore() TagStore {
	return &tagStore{}
}

func (s *tagStore) Entries() []TagEntry {
	return cloneTagEntries(s.entries)
}

func (s *tagStore) SetEntries(entries []TagEntry) {
	s.entries = cloneTagEntries(entries)
	s.loaded = true
}

// Count returns the notes carrying name, ignoring case and a leading #.
func (s *tagStore) Count(name string) int {
	want := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
	for _, e := range s.entries {
		if e.Name == want {
			return e.Notes
		}
	}
	return 0
}

func (s *tagStore) Loaded() bool {
	return s.loaded
}

func cloneTagEntries(entries []TagEntry) []TagEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]TagEntry, len(entries))
	copy(dup, entries)
	return dup
}
