package sources

import (
	"testing"

	"github.com/atomicstack/tagsort/internal/state"
	"github.com/atomicstack/tagsort/internal/suggest"
)

type recordingTarget struct {
	value   string
	changed int
}

func (r *recordingTarget) Value() string     { return r.value }
func (r *recordingTarget) SetValue(v string) { r.value = v }
func (r *recordingTarget) Changed()          { r.changed++ }

func TestTagsAbsentUntilLoaded(t *testing.T) {
	store := state.NewTagStore()
	src := NewTags(store)
	if _, ok := src.Suggestions("w"); ok {
		t.Fatalf("expected absent before first scan")
	}
	store.SetEntries([]state.TagEntry{{Name: "work", Notes: 2}, {Name: "weekly", Notes: 1}, {Name: "home", Notes: 4}})
	got, ok := src.Suggestions("#wk")
	if !ok {
		t.Fatalf("expected suggestions after load")
	}
	if len(got) != 2 || got[0].Name != "work" || got[1].Name != "weekly" {
		t.Fatalf("expected store-ordered fuzzy matches, got %+v", got)
	}
	got, _ = src.Suggestions("HOM")
	if len(got) != 1 || got[0].Name != "home" {
		t.Fatalf("expected case-folded match, got %+v", got)
	}
}

func TestTagsRenderAndSelect(t *testing.T) {
	src := NewTags(state.NewTagStore())
	var el suggest.Element
	item := state.TagEntry{Name: "work", Notes: 3}
	src.Render(item, &el)
	if el.Text() != "#work" || el.Hint() != "3 notes" {
		t.Fatalf("unexpected element %q %q", el.Text(), el.Hint())
	}
	target := &recordingTarget{}
	src.Select(item, suggest.Event{Input: target})
	if target.value != "work" || target.changed != 1 {
		t.Fatalf("expected value written and change dispatched, got %+v", target)
	}
}
