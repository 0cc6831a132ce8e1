package sqlite_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/myrjola/bayescalc/internal/sqlite"
	"github.com/myrjola/bayescalc/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func newDatabase(t *testing.T, url string) *sqlite.Database {
	t.Helper()
	db, err := sqlite.NewDatabase(context.Background(), url, testhelpers.NewLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestNewDatabase_SessionStore(t *testing.T) {
	for name, url := range map[string]string{
		"in memory": ":memory:",
		"file":      filepath.Join(t.TempDir(), "sessions.sqlite"),
	} {
		t.Run(name, func(t *testing.T) {
			db := newDatabase(t, url)
			store := sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 0)

			require.NoError(t, store.Commit("token-1", []byte("data"), time.Now().Add(time.Hour)))
			require.NoError(t, store.Commit("token-2", []byte("old"), time.Now().Add(-time.Hour)))

			data, found, err := store.Find("token-1")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, []byte("data"), data)

			_, found, err = store.Find("token-2")
			require.NoError(t, err)
			require.False(t, found, "expired session should not be found")

			count, err := db.ActiveSessions(context.Background())
			require.NoError(t, err)
			require.Equal(t, 1, count)
		})
	}
}

func TestNewDatabase_InMemoryDatabasesAreIsolated(t *testing.T) {
	first := newDatabase(t, ":memory:")
	second := newDatabase(t, ":memory:")

	require.NoError(t, sqlite3store.NewWithCleanupInterval(first.ReadWrite.DB, 0).
		Commit("token", []byte("data"), time.Now().Add(time.Hour)))

	count, err := second.ActiveSessions(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestStartDatabaseOptimizer(t *testing.T) {
	db := newDatabase(t, ":memory:")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		db.StartDatabaseOptimizer(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("optimizer did not stop after cancel")
	}
}
