package state

import "testing"

func TestFolderStoreClonesOnReadAndWrite(t *testing.T) {
	s := NewFolderStore()
	if s.Loaded() {
		t.Fatalf("new store must not report loaded")
	}
	in := []FolderEntry{{Path: "/"}, {Path: "Inbox", Notes: 2}}
	s.SetEntries(in)
	in[1].Path = "changed"
	out := s.Entries()
	out[0].Path = "mutated"
	got := s.Entries()
	if got[0].Path != "/" || got[1].Path != "Inbox" {
		t.Fatalf("store leaked its backing slice: %+v", got)
	}
	if !s.Loaded() {
		t.Fatalf("expected loaded after SetEntries")
	}
}

func TestTagStoreCount(t *testing.T) {
	s := NewTagStore()
	s.SetEntries([]TagEntry{{Name: "work", Notes: 3}})
	if got := s.Count(" #Work"); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := s.Count("other"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	s.SetEntries(nil)
	if !s.Loaded() || len(s.Entries()) != 0 {
		t.Fatalf("empty snapshot still counts as loaded")
	}
}
