package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_LoadEmpty(t *testing.T) {
	store := openTestStore(t)

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_SaveLoadClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, Session{UserID: " user-1 ", VendorID: "vendor-9", LoggedInAt: at}))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, "vendor-9", sess.VendorID)
	assert.True(t, sess.LoggedInAt.Equal(at))

	require.NoError(t, store.Save(ctx, Session{UserID: "user-2"}))
	sess, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-2", sess.UserID)
	assert.Empty(t, sess.VendorID, "a new login replaces the old vendor")

	require.NoError(t, store.Clear(ctx))
	sess, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_SaveRequiresUserID(t *testing.T) {
	store := openTestStore(t)

	err := store.Save(context.Background(), Session{UserID: "  "})
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/tmp/wedmarket-home")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/wedmarket-home", ".config", "wedmarket", "session.db"), path)
}
