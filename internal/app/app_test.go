package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/tagsort/internal/backend"
	"github.com/atomicstack/tagsort/internal/testutil"
	"github.com/atomicstack/tagsort/internal/vault"
)

func TestStartWatcherEmitsSnapshot(t *testing.T) {
	b := testutil.NewVault(t).Note("a.md", "work")
	v, err := vault.Open(b.Root())
	require.NoError(t, err)

	for _, watch := range []bool{true, false} {
		w, err := startWatcher(v, watch)
		require.NoError(t, err)
		select {
		case evt := <-w.Events():
			require.NoError(t, evt.Err)
			require.Equal(t, backend.KindSnapshot, evt.Kind)
			snap, ok := evt.Data.(vault.Snapshot)
			require.True(t, ok)
			require.Len(t, snap.Notes, 1)
		case <-time.After(5 * time.Second):
			t.Fatalf("no snapshot (watch=%v)", watch)
		}
		w.Stop()
		w.Wait()
	}
}

func TestRunRejectsMissingVault(t *testing.T) {
	err := Run(Config{VaultPath: filepath.Join(t.TempDir(), "missing"), PanelRows: 8})
	require.Error(t, err)
}
