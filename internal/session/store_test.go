package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAndSnapshot(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	require.NotEmpty(t, sess.ID)

	favs, dislikes, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	require.Empty(t, favs)
	require.Empty(t, dislikes)
}

func TestUnknownSession(t *testing.T) {
	store := NewStore()
	_, _, err := store.Snapshot("nope")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.SetFavorite("nope", "item", true), ErrNotFound)
	require.ErrorIs(t, store.SetDislike("nope", "item", true), ErrNotFound)
}

func TestDislikeEvictsFavorite(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	require.NoError(t, store.SetFavorite(sess.ID, "item-1", true))
	require.NoError(t, store.SetDislike(sess.ID, "item-1", true))

	favs, dislikes, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	require.NotContains(t, favs, "item-1")
	require.True(t, dislikes["item-1"])
}

func TestFavoriteClearsDislike(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	require.NoError(t, store.SetDislike(sess.ID, "item-1", true))
	require.NoError(t, store.SetFavorite(sess.ID, "item-1", true))

	favs, dislikes, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	require.True(t, favs["item-1"])
	require.NotContains(t, dislikes, "item-1")
}

func TestUnsetRemovesMark(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	require.NoError(t, store.SetFavorite(sess.ID, "item-1", true))
	require.NoError(t, store.SetFavorite(sess.ID, "item-1", false))

	favs, _, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	require.Empty(t, favs)
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	require.NoError(t, store.SetFavorite(sess.ID, "item-1", true))

	favs, _, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	favs["item-2"] = true

	again, _, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	require.NotContains(t, again, "item-2")
}
