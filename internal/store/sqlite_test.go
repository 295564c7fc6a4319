package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

func TestSQLStore_Contract(t *testing.T) {
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	contract(t, st)
}

func newMockStore(t *testing.T) (*store.SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.NewSQLStore(db), mock
}

func TestSQLStore_Get(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM records WHERE type = ? AND id = ?`)).
		WithArgs("Articles", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(`{"id":1,"title":"Draft"}`))

	rec, err := st.Get(context.Background(), "Articles", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID())
	assert.Equal(t, "Draft", rec.String("title"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Get_NotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM records WHERE type = ? AND id = ?`)).
		WithArgs("Articles", int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := st.Get(context.Background(), "Articles", 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Query_FiltersAfterScan(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM records WHERE type = ? ORDER BY position`)).
		WithArgs("Users").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow(`{"id":1,"login":"anton"}`).
			AddRow(`{"id":2,"login":"maria"}`))

	recs, err := st.Query(context.Background(), "Users", func(r store.Record) bool {
		return r.String("login") == "maria"
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(2), recs[0].ID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Put_AssignsSequenceID(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT next FROM record_seq WHERE type = ?`)).
		WithArgs("Users").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(int64(4)))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO record_seq`)).
		WithArgs("Users", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := st.Put(context.Background(), "Users", store.Record{"login": "anton"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Put_RollsBackOnError(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT next FROM record_seq WHERE type = ?`)).
		WithArgs("Users").
		WillReturnRows(sqlmock.NewRows([]string{"next"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := st.Put(context.Background(), "Users", store.Record{"login": "anton"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Delete(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM records WHERE type = ? AND id = ?`)).
		WithArgs("Users", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM records WHERE type = ? AND id = ?`)).
		WithArgs("Users", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := st.Delete(context.Background(), "Users", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.Delete(context.Background(), "Users", 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
