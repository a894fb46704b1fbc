package dispatcher

import (
	"github.com/atomicstack/tagsort/internal/backend"
	"github.com/atomicstack/tagsort/internal/state"
	"github.com/atomicstack/tagsort/internal/vault"
)

type Result struct {
	FoldersUpdated bool
	TagsUpdated    bool
	Err            error
}

type Dispatcher struct {
	folders state.FolderStore
	tags    state.TagStore
}

func New(f state.FolderStore, t state.TagStore) *Dispatcher {
	return &Dispatcher{folders: f, tags: t}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindSnapshot:
		if snapshot, ok := evt.Data.(vault.Snapshot); ok {
			folders := FolderEntries(snapshot.Folders)
			if !d.folders.Loaded() || !equalFolders(d.folders.Entries(), folders) {
				d.folders.SetEntries(folders)
				res.FoldersUpdated = true
			}
			tags := TagEntries(snapshot.Tags)
			if !d.tags.Loaded() || !equalTags(d.tags.Entries(), tags) {
				d.tags.SetEntries(tags)
				res.TagsUpdated = true
			}
		}
	}
	return res
}

func FolderEntries(folders []vault.Folder) []state.FolderEntry {
	out := make([]state.FolderEntry, 0, len(folders))
	for _, f := range folders {
		out = append(out, state.FolderEntry{Path: f.Path, Notes: f.Notes})
	}
	return out
}

func TagEntries(tags []vault.Tag) []state.TagEntry {
	out := make([]state.TagEntry, 0, len(tags))
	for _, t := range tags {
		out = append(out, state.TagEntry{Name: t.Name, Notes: t.Notes})
	}
	return out
}

func equalFolders(a, b []state.FolderEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalTags(a, b []state.TagEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
