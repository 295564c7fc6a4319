package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// contract runs the backend-independent Store contract against st.
func contract(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()
	const typ = "Articles"

	// empty store
	_, err := st.Get(ctx, typ, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrNotFound))

	all, err := st.GetAll(ctx, typ)
	require.NoError(t, err)
	assert.Empty(t, all)

	// ids are assigned monotonically from 1
	id1, err := st.Put(ctx, typ, store.Record{"title": "first"})
	require.NoError(t, err)
	id2, err := st.Put(ctx, typ, store.Record{"title": "second"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	// a set id upserts in place
	_, err = st.Put(ctx, typ, store.Record{"id": id1, "title": "first-edited"})
	require.NoError(t, err)
	rec, err := st.Get(ctx, typ, id1)
	require.NoError(t, err)
	assert.Equal(t, "first-edited", rec.String("title"))

	// insertion order survives the upsert
	all, err = st.GetAll(ctx, typ)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, id1, all[0].ID())
	assert.Equal(t, id2, all[1].ID())

	// query filters but keeps order
	matched, err := st.Query(ctx, typ, func(r store.Record) bool {
		return r.String("title") == "second"
	})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, id2, matched[0].ID())

	// deleted ids are never reused
	ok, err := st.Delete(ctx, typ, id2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = st.Delete(ctx, typ, id2)
	require.NoError(t, err)
	assert.False(t, ok)

	id3, err := st.Put(ctx, typ, store.Record{"title": "third"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id3)

	// types are isolated
	otherID, err := st.Put(ctx, "Users", store.Record{"login": "anton"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherID)
}

func TestMemoryStore_Contract(t *testing.T) {
	contract(t, store.NewMemoryStore())
}

func TestFileStore_Contract(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	contract(t, fs)
}

func TestMemoryStore_CallersCannotAliasStoredState(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	rec := store.Record{"title": "original"}
	id, err := st.Put(ctx, "Articles", rec)
	require.NoError(t, err)

	// mutating the put record must not leak into the store
	rec["title"] = "mutated"
	got, err := st.Get(ctx, "Articles", id)
	require.NoError(t, err)
	assert.Equal(t, "original", got.String("title"))

	// mutating a read record must not leak either
	got["title"] = "mutated"
	again, err := st.Get(ctx, "Articles", id)
	require.NoError(t, err)
	assert.Equal(t, "original", again.String("title"))
}

func TestFileStore_ReopenKeepsDataAndIDs(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)
	_, err = fs.Put(ctx, "Users", store.Record{"login": "anton", "verified": true})
	require.NoError(t, err)
	id2, err := fs.Put(ctx, "Users", store.Record{"login": "maria"})
	require.NoError(t, err)
	ok, err := fs.Delete(ctx, "Users", id2)
	require.NoError(t, err)
	require.True(t, ok)

	reopened, err := store.NewFileStore(dir)
	require.NoError(t, err)

	all, err := reopened.GetAll(ctx, "Users")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(1), all[0].ID())
	assert.Equal(t, "anton", all[0].String("login"))
	assert.True(t, all[0].Bool("verified"))

	// the id counter survives the reopen, so deleted ids stay dead
	id3, err := reopened.Put(ctx, "Users", store.Record{"login": "oleg"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id3)
}

func TestFileStore_TypesLiveInSeparateFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)
	_, err = fs.Put(ctx, "Articles", store.Record{"title": "a"})
	require.NoError(t, err)
	_, err = fs.Put(ctx, "Tasks", store.Record{"title": "t"})
	require.NoError(t, err)

	assert.FileExists(t, dir+"/Articles.json")
	assert.FileExists(t, dir+"/Tasks.json")
}
