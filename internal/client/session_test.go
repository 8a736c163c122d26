package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	store, err := OpenSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	token, user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	alice := &User{ID: "64b7f0c2a1b2c3d4e5f60718", Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.Save(ctx, "tok-1", alice))

	token, user, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, alice, user)

	require.NoError(t, store.Save(ctx, "tok-2", alice))
	token, _, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	require.NoError(t, store.Clear(ctx))
	token, user, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "tok", &User{ID: "1", Name: "Bob", Email: "bob@example.com"}))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	session := NewSession(reopened)
	require.NoError(t, session.Hydrate(ctx))
	state := session.Current()
	assert.True(t, state.LoggedIn())
	assert.Equal(t, "tok", state.Token)
	assert.Equal(t, "Bob", state.User.Name)
}

func TestSQLiteStoreIgnoresPartialSession(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `INSERT INTO session (key, value) VALUES ('token', 'orphan')`)
	require.NoError(t, err)

	token, user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestSessionNotifiesSubscribers(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	session := NewSession(store)
	require.NoError(t, session.Hydrate(ctx))
	assert.False(t, session.Current().LoggedIn())

	var seen []State
	unsubscribe := session.Subscribe(func(s State) { seen = append(seen, s) })

	user := &User{ID: "1", Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, session.Save(ctx, "tok", user))
	require.NoError(t, session.Clear(ctx))

	require.Len(t, seen, 2)
	assert.Equal(t, "tok", seen[0].Token)
	assert.True(t, seen[0].LoggedIn())
	assert.False(t, seen[1].LoggedIn())

	unsubscribe()
	require.NoError(t, session.Save(ctx, "tok-2", user))
	assert.Len(t, seen, 2)
	assert.Equal(t, "tok-2", session.Token())
}
