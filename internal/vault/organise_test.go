package vault

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/tagsort/internal/testutil"
)

func TestOrganiseMovesTaggedNotes(t *testing.T) {
	tv := testutil.NewVault(t).
		Note("Inbox/a.md", "work").
		Note("Inbox/b.md", "personal").
		Note("Projects/Work/c.md", "work").
		Note("d.md")
	v, err := Open(tv.Root())
	require.NoError(t, err)

	report, err := v.Organise(context.Background(), []Rule{
		{Tag: "#Work", Folder: "Projects/Work"},
		{Tag: "personal", Folder: "/Projects/Personal/"},
	})
	require.NoError(t, err)

	require.Len(t, report.Moved, 2)
	require.Equal(t, 1, report.InPlace)
	require.Empty(t, report.Failures)
	require.True(t, tv.Exists("Projects/Work/a.md"))
	require.True(t, tv.Exists("Projects/Personal/b.md"))
	require.False(t, tv.Exists("Inbox/a.md"))
	require.True(t, tv.Exists("d.md"))
	require.Equal(t, "moved 2 notes, 1 already in place", report.Summary())
}

func TestOrganiseFirstRuleWins(t *testing.T) {
	tv := testutil.NewVault(t).Note("n.md", "a", "b")
	v, err := Open(tv.Root())
	require.NoError(t, err)

	report, err := v.Organise(context.Background(), []Rule{
		{Tag: "b", Folder: "B"},
		{Tag: "a", Folder: "A"},
	})
	require.NoError(t, err)
	require.Len(t, report.Moved, 1)
	require.Equal(t, "B/n.md", report.Moved[0].To)
	require.False(t, tv.Exists("A"))
}

func TestOrganiseSkipsFailuresAndContinues(t *testing.T) {
	tv := testutil.NewVault(t).
		Note("Inbox/clash.md", "work").
		Note("Work/clash.md").
		Note("Inbox/fine.md", "work").
		File("Inbox/broken.md", "---\ntags: [\n---\n").
		Note("Inbox/escape.md", "bad")
	v, err := Open(tv.Root())
	require.NoError(t, err)

	report, err := v.Organise(context.Background(), []Rule{
		{Tag: "work", Folder: "Work"},
		{Tag: "bad", Folder: "../outside"},
	})
	require.NoError(t, err)

	require.Len(t, report.Moved, 1)
	require.Equal(t, "Work/fine.md", report.Moved[0].To)
	require.Len(t, report.Failures, 3)

	byNote := map[string]error{}
	for _, f := range report.Failures {
		byNote[f.Note] = f.Err
	}
	require.ErrorIs(t, byNote["Inbox/clash.md"], ErrDestinationExists)
	require.ErrorIs(t, byNote["Inbox/broken.md"], ErrMetadata)
	require.ErrorIs(t, byNote["Inbox/escape.md"], ErrInvalidFolder)
	require.True(t, tv.Exists("Inbox/clash.md"))
	require.Contains(t, report.String(), "failed Inbox/clash.md")
}

func TestOrganiseReportsUnreadableEntries(t *testing.T) {
	tv := testutil.NewVault(t).
		Note("Inbox/a.md", "work").
		Note("Locked/b.md", "work")
	v := lockedVault(t, tv.Root(), "Locked")

	report, err := v.Organise(context.Background(), []Rule{{Tag: "work", Folder: "Work"}})
	require.NoError(t, err)
	require.Len(t, report.Moved, 1)
	require.Equal(t, "Work/a.md", report.Moved[0].To)
	require.Len(t, report.Failures, 1)
	require.Equal(t, "Locked", report.Failures[0].Note)
	require.True(t, tv.Exists("Locked/b.md"))
}

func TestOrganiseCreatesFolderFailure(t *testing.T) {
	tv := testutil.NewVault(t).
		Note("a.md", "x").
		File("blocker", "a file where a folder is wanted")
	v, err := Open(tv.Root())
	require.NoError(t, err)

	report, err := v.Organise(context.Background(), []Rule{{Tag: "x", Folder: "blocker/sub"}})
	require.NoError(t, err)
	require.Len(t, report.Failures, 1)
	require.True(t, strings.HasPrefix(report.Failures[0].Err.Error(), "create folder blocker/sub"))
	require.True(t, tv.Exists("a.md"))
}

func TestOrganiseWithoutRules(t *testing.T) {
	tv := testutil.NewVault(t).Note("a.md", "x")
	v, err := Open(tv.Root())
	require.NoError(t, err)

	report, err := v.Organise(context.Background(), []Rule{{Tag: "  ", Folder: "x"}})
	require.NoError(t, err)
	require.Empty(t, report.Moved)
	require.Equal(t, "moved 0 notes", report.Summary())
}
