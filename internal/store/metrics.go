package store

import (
	"context"
	"time"

	"magazine-backoffice/internal/observability/metrics"
)

// InstrumentedStore decorates a Store with per-operation Prometheus metrics.
type InstrumentedStore struct {
	next    Store
	backend string
}

var _ Store = (*InstrumentedStore)(nil)

// Instrument wraps next, labeling every metric with the backend name.
func Instrument(next Store, backend string) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend}
}

func (s *InstrumentedStore) observe(typ, op string, start time.Time, err error) {
	metrics.RecordStoreOperation(s.backend, typ, op, time.Since(start), err)
}

func (s *InstrumentedStore) Get(ctx context.Context, typ string, id int64) (Record, error) {
	start := time.Now()
	rec, err := s.next.Get(ctx, typ, id)
	s.observe(typ, "get", start, err)
	return rec, err
}

func (s *InstrumentedStore) GetAll(ctx context.Context, typ string) ([]Record, error) {
	start := time.Now()
	recs, err := s.next.GetAll(ctx, typ)
	s.observe(typ, "get_all", start, err)
	return recs, err
}

func (s *InstrumentedStore) Query(ctx context.Context, typ string, pred Predicate) ([]Record, error) {
	start := time.Now()
	recs, err := s.next.Query(ctx, typ, pred)
	s.observe(typ, "query", start, err)
	return recs, err
}

func (s *InstrumentedStore) Put(ctx context.Context, typ string, rec Record) (int64, error) {
	start := time.Now()
	id, err := s.next.Put(ctx, typ, rec)
	s.observe(typ, "put", start, err)
	return id, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, typ string, id int64) (bool, error) {
	start := time.Now()
	ok, err := s.next.Delete(ctx, typ, id)
	s.observe(typ, "delete", start, err)
	return ok, err
}
