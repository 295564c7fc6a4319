package store

import (
	"context"
	"sync"

	"magazine-backoffice/internal/domain/entity"
)

// Compile-time contract assertion.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps records in a per-type map. It is the reference
// implementation of the Store contract and the backend used by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]*memBucket
}

type memBucket struct {
	records map[int64]Record
	order   []int64
	nextID  int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*memBucket)}
}

func (s *MemoryStore) bucket(typ string) *memBucket {
	b, ok := s.buckets[typ]
	if !ok {
		b = &memBucket{records: make(map[int64]Record), nextID: 1}
		s.buckets[typ] = b
	}
	return b
}

// Get returns a copy of the record with the given id.
func (s *MemoryStore) Get(_ context.Context, typ string, id int64) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[typ]
	if !ok {
		return nil, entity.NotFoundf("%s record %d not found", typ, id)
	}
	rec, ok := b.records[id]
	if !ok {
		return nil, entity.NotFoundf("%s record %d not found", typ, id)
	}
	return rec.Clone(), nil
}

// GetAll returns copies of every record of the type in insertion order.
func (s *MemoryStore) GetAll(ctx context.Context, typ string) ([]Record, error) {
	return s.Query(ctx, typ, nil)
}

// Query returns copies of the records matching pred in insertion order.
// A nil predicate matches everything.
func (s *MemoryStore) Query(_ context.Context, typ string, pred Predicate) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[typ]
	if !ok {
		return nil, nil
	}
	out := make([]Record, 0, len(b.order))
	for _, id := range b.order {
		rec := b.records[id]
		if pred == nil || pred(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// Put stores a copy of the record and returns its id.
func (s *MemoryStore) Put(_ context.Context, typ string, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bucket(typ)
	stored := rec.Clone()
	id := stored.ID()
	if id <= 0 {
		id = b.nextID
	}
	// Ids stay monotonic even when callers supply their own.
	if id >= b.nextID {
		b.nextID = id + 1
	}
	stored.SetID(id)
	if _, exists := b.records[id]; !exists {
		b.order = append(b.order, id)
	}
	b.records[id] = stored
	return id, nil
}

// Delete removes the record and reports whether it existed.
func (s *MemoryStore) Delete(_ context.Context, typ string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[typ]
	if !ok {
		return false, nil
	}
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
	return true, nil
}
