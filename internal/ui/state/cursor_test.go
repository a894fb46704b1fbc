package state

import (
	"testing"

	"github.com/atomicstack/tagsort/internal/settings"
)

func newTestRules(tags ...string) *Rules {
	items := make([]settings.Rule, len(tags))
	for i, tag := range tags {
		items[i] = settings.Rule{Tag: tag, Folder: tag}
	}
	return NewRules(items)
}

func TestMoveCursorHome(t *testing.T) {
	l := newTestRules("a", "b", "c")
	l.Cursor = 2
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestRules()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty table")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l := newTestRules("a", "b", "c")
	l.Cursor = 0
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}

	empty := newTestRules()
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty table")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestRules("a", "b", "c", "d", "e")
	l.Cursor = 0
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on second page down")
	}
	if l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(2) {
		t.Fatalf("expected movement on page up")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", l.Cursor)
	}
	if !l.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestRules("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.ViewportOffset = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", l.Cursor)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
}

func TestMoveCursorWraps(t *testing.T) {
	r := newTestRules("a", "b", "c")
	if !r.MoveCursorUp() || r.Cursor != 2 {
		t.Fatalf("expected wrap to last rule, got %d", r.Cursor)
	}
	if !r.MoveCursorDown() || r.Cursor != 0 {
		t.Fatalf("expected wrap to first rule, got %d", r.Cursor)
	}
	single := newTestRules("a")
	if single.MoveCursorDown() {
		t.Fatalf("single rule cannot move")
	}
}

func TestRulesEditing(t *testing.T) {
	r := newTestRules("a", "b")
	r.Add(settings.Rule{Tag: "c", Folder: "C"})
	if r.Cursor != 2 || len(r.Items) != 3 {
		t.Fatalf("expected cursor on new rule, got %d of %d", r.Cursor, len(r.Items))
	}
	if !r.Replace(0, settings.Rule{Tag: "z", Folder: "Z"}) || r.Items[0].Tag != "z" {
		t.Fatalf("expected replace to update rule 0")
	}
	if r.Replace(9, settings.Rule{}) {
		t.Fatalf("replace out of range must fail")
	}
	removed, ok := r.Remove(2)
	if !ok || removed.Tag != "c" || r.Cursor != 1 {
		t.Fatalf("expected c removed and cursor clamped, got %+v cursor %d", removed, r.Cursor)
	}
	if cur, ok := r.Current(); !ok || cur.Tag != "b" {
		t.Fatalf("expected current rule b, got %+v", cur)
	}
	r.UpdateItems(nil)
	if _, ok := r.Current(); ok || r.Cursor != 0 {
		t.Fatalf("expected empty table")
	}
}
