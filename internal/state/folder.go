package state

// FolderEntry is a vault folder as offered to the UI.
type FolderEntry struct {
	Path  string
	Notes int
}

type FolderStore interface {
	Entries() []FolderEntry
	SetEntries([]FolderEntry)
	Loaded() bool
}

type folderStore struct {
	entries []FolderEntry
	loaded  bool
}

func NewFolderStore() FolderStore {
	return &folderStore{}
}

func (s *folderStore) Entries() []FolderEntry {
	return cloneFolderEntries(s.entries)
}

func (s *folderStore) SetEntries(entries []FolderEntry) {
	s.entries = cloneFolderEntries(entries)
	s.loaded = true
}

func (s *folderStore) Loaded() bool {
	return s.loaded
}

func cloneFolderEntries(entries []FolderEntry) []FolderEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]FolderEntry, len(entries))
	copy(dup, entries)
	return dup
}
