package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"magazine-backoffice/internal/domain/entity"
)

var _ Store = (*FileStore)(nil)

// FileStore persists each type as one JSON array file under dir. A type's
// collection is loaded fully into memory on first access and the whole file
// is rewritten on every mutating call; writes go through a temp file and a
// rename so a crash never leaves a partially written collection behind.
// Mutations to the same type are serialized by a per-type mutex.
type FileStore struct {
	dir string

	mu      sync.Mutex // guards buckets
	buckets map[string]*fileBucket
}

type fileBucket struct {
	mu      sync.Mutex
	path    string
	loaded  bool
	records map[int64]Record
	order   []int64
	nextID  int64
}

// NewFileStore returns a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir, buckets: make(map[string]*fileBucket)}, nil
}

func (s *FileStore) bucket(typ string) (*fileBucket, error) {
	s.mu.Lock()
	b, ok := s.buckets[typ]
	if !ok {
		b = &fileBucket{
			path:    filepath.Join(s.dir, typ+".json"),
			records: make(map[int64]Record),
			nextID:  1,
		}
		s.buckets[typ] = b
	}
	s.mu.Unlock()

	b.mu.Lock()
	if b.loaded {
		return b, nil
	}
	if err := b.load(); err != nil {
		b.mu.Unlock()
		return nil, err
	}
	return b, nil
}

// load reads the collection file. A missing file is an empty collection.
// Caller holds b.mu.
func (b *fileBucket) load() error {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			b.loaded = true
			return nil
		}
		return fmt.Errorf("read %s: %w", b.path, err)
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return fmt.Errorf("decode %s: %w", b.path, err)
	}
	for _, rec := range recs {
		id := rec.ID()
		rec.SetID(id) // normalize json float64 ids back to int64
		b.records[id] = rec
		b.order = append(b.order, id)
		if id >= b.nextID {
			b.nextID = id + 1
		}
	}
	b.loaded = true
	return nil
}

// flush rewrites the whole collection file. Caller holds b.mu.
func (b *fileBucket) flush() error {
	recs := make([]Record, 0, len(b.order))
	for _, id := range b.order {
		recs = append(recs, b.records[id])
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.path, err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Get returns a copy of the record with the given id.
func (s *FileStore) Get(_ context.Context, typ string, id int64) (Record, error) {
	b, err := s.bucket(typ)
	if err != nil {
		return nil, err
	}
	defer b.mu.Unlock()

	rec, ok := b.records[id]
	if !ok {
		return nil, entity.NotFoundf("%s record %d not found", typ, id)
	}
	return rec.Clone(), nil
}

// GetAll returns copies of every record of the type in insertion order.
func (s *FileStore) GetAll(ctx context.Context, typ string) ([]Record, error) {
	return s.Query(ctx, typ, nil)
}

// Query returns copies of the records matching pred in insertion order.
func (s *FileStore) Query(_ context.Context, typ string, pred Predicate) ([]Record, error) {
	b, err := s.bucket(typ)
	if err != nil {
		return nil, err
	}
	defer b.mu.Unlock()

	out := make([]Record, 0, len(b.order))
	for _, id := range b.order {
		rec := b.records[id]
		if pred == nil || pred(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// Put stores the record and rewrites the type's collection file.
func (s *FileStore) Put(_ context.Context, typ string, rec Record) (int64, error) {
	b, err := s.bucket(typ)
	if err != nil {
		return 0, err
	}
	defer b.mu.Unlock()

	stored := rec.Clone()
	id := stored.ID()
	if id <= 0 {
		id = b.nextID
	}
	if id >= b.nextID {
		b.nextID = id + 1
	}
	stored.SetID(id)
	if _, exists := b.records[id]; !exists {
		b.order = append(b.order, id)
	}
	b.records[id] = stored
	if err := b.flush(); err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes the record, rewriting the collection file when it existed.
func (s *FileStore) Delete(_ context.Context, typ string, id int64) (bool, error) {
	b, err := s.bucket(typ)
	if err != nil {
		return false, err
	}
	defer b.mu.Unlock()

	if _, exists := b.records[id]; !exists {
		return false, nil
	}
	delete(b.records, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	if err := b.flush(); err != nil {
		return false, err
	}
	return true, nil
}
