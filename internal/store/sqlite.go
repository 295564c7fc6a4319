package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"magazine-backoffice/internal/domain/entity"
)

var _ Store = (*SQLStore)(nil)

// SQLStore implements the Store contract on database/sql with the sqlite3
// driver. Records are kept as JSON payloads in a single table keyed by
// (type, id); a separate sequence table keeps id assignment monotonic per
// type across deletes, matching the other backends.
type SQLStore struct {
	db *sql.DB
	mu sync.Mutex // serializes id assignment and writes per store
}

const sqlSchema = `
CREATE TABLE IF NOT EXISTS records (
	type     TEXT    NOT NULL,
	id       INTEGER NOT NULL,
	position INTEGER NOT NULL,
	data     TEXT    NOT NULL,
	PRIMARY KEY (type, id)
);
CREATE TABLE IF NOT EXISTS record_seq (
	type TEXT PRIMARY KEY,
	next INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_position ON records (type, position);
`

// OpenSQLite opens (creating if necessary) a sqlite store at the given DSN.
func OpenSQLite(dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := NewSQLStore(db)
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an existing database handle without migrating. Tests
// inject their own handle here.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the backing tables when they do not exist yet.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqlSchema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Get returns the record with the given id.
func (s *SQLStore) Get(ctx context.Context, typ string, id int64) (Record, error) {
	const query = `SELECT data FROM records WHERE type = ? AND id = ?`

	var data string
	err := s.db.QueryRowContext(ctx, query, typ, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.NotFoundf("%s record %d not found", typ, id)
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return decodeRecord(data)
}

// GetAll returns every record of the type in insertion order.
func (s *SQLStore) GetAll(ctx context.Context, typ string) ([]Record, error) {
	return s.Query(ctx, typ, nil)
}

// Query returns the records matching pred in insertion order. Predicates are
// Go functions, so filtering happens after the scan.
func (s *SQLStore) Query(ctx context.Context, typ string, pred Predicate) ([]Record, error) {
	const query = `SELECT data FROM records WHERE type = ? ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query, typ)
	if err != nil {
		return nil, fmt.Errorf("Query: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("Query: Scan: %w", err)
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(rec) {
			out = append(out, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Query: rows.Err: %w", err)
	}
	return out, nil
}

// Put stores the record, assigning the next id for the type when the record
// has none.
func (s *SQLStore) Put(ctx context.Context, typ string, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("Put: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stored := rec.Clone()
	id := stored.ID()

	var next int64
	err = tx.QueryRowContext(ctx, `SELECT next FROM record_seq WHERE type = ?`, typ).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		next = 1
	} else if err != nil {
		return 0, fmt.Errorf("Put: read sequence: %w", err)
	}
	if id <= 0 {
		id = next
	}
	if id >= next {
		next = id + 1
	}
	stored.SetID(id)

	data, err := json.Marshal(stored)
	if err != nil {
		return 0, fmt.Errorf("Put: encode record: %w", err)
	}

	const upsert = `
INSERT INTO records (type, id, position, data)
VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM records WHERE type = ?), ?)
ON CONFLICT (type, id) DO UPDATE SET data = excluded.data
`
	if _, err := tx.ExecContext(ctx, upsert, typ, id, typ, string(data)); err != nil {
		return 0, fmt.Errorf("Put: ExecContext: %w", err)
	}

	const seq = `
INSERT INTO record_seq (type, next) VALUES (?, ?)
ON CONFLICT (type) DO UPDATE SET next = excluded.next
`
	if _, err := tx.ExecContext(ctx, seq, typ, next); err != nil {
		return 0, fmt.Errorf("Put: update sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("Put: Commit: %w", err)
	}
	return id, nil
}

// Delete removes the record and reports whether it existed.
func (s *SQLStore) Delete(ctx context.Context, typ string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const query = `DELETE FROM records WHERE type = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, query, typ, id)
	if err != nil {
		return false, fmt.Errorf("Delete: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	return n > 0, nil
}

func decodeRecord(data string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	rec.SetID(rec.ID()) // normalize json float64 ids back to int64
	return rec, nil
}
