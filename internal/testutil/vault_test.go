package testutil

import (
	"strings"
	"testing"
)

func TestVaultBuilderWritesNotes(t *testing.T) {
	v := NewVault(t).Note("Inbox/a.md", "work").Dir("Empty")
	if !v.Exists("Inbox/a.md") || !v.Exists("Empty") {
		t.Fatalf("expected files to exist under %s", v.Root())
	}
	content := v.Read("Inbox/a.md")
	if !strings.HasPrefix(content, "---\ntags:\n  - work\n---\n") {
		t.Fatalf("unexpected note content %q", content)
	}
}
