// Package store defines the key/type-addressed persistence contract shared by
// all backends, together with the Record type that is the unit of storage.
// Records are flat mappings of field name to JSON-primitive value; everything
// above this package works with hydrated entities instead.
package store

import (
	"context"
	"time"
)

// idField is the record field holding the per-type numeric id.
const idField = "id"

// Record is the raw stored representation of one entity: field name to
// primitive value. Only the factories in the repository layer know how a
// Record maps onto entity state.
type Record map[string]any

// Predicate selects records in Query.
type Predicate func(Record) bool

// Store is the backend-agnostic persistence contract. All backends assign
// monotonically increasing integer ids per type (never reusing an id after a
// delete) and preserve insertion order in GetAll and Query.
type Store interface {
	// Get returns the record with the given id, or a NotFound error.
	Get(ctx context.Context, typ string, id int64) (Record, error)
	// GetAll returns every record of the type in insertion order.
	GetAll(ctx context.Context, typ string) ([]Record, error)
	// Query returns the records matching pred, in insertion order.
	Query(ctx context.Context, typ string, pred Predicate) ([]Record, error)
	// Put persists the record and returns its id. A record with id 0 is
	// assigned the next id for the type; a record with a set id replaces
	// the stored record with that id.
	Put(ctx context.Context, typ string, rec Record) (int64, error)
	// Delete removes the record and reports whether it existed.
	Delete(ctx context.Context, typ string, id int64) (bool, error)
}

// ID returns the record id, tolerating the numeric representations produced
// by the different backends (int64 in memory, float64 after JSON decoding).
func (r Record) ID() int64 {
	return r.Int64(idField)
}

// SetID stores the record id.
func (r Record) SetID(id int64) {
	r[idField] = id
}

// Clone returns a copy of the record. Values are primitives, so a shallow
// copy is sufficient; backends clone on every read and write so callers can
// never alias backend-internal state.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Int64 reads a numeric field as int64. Missing fields read as 0.
func (r Record) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// OptInt64 reads an optional numeric field, returning nil when the field is
// absent or null.
func (r Record) OptInt64(key string) *int64 {
	if v, ok := r[key]; !ok || v == nil {
		return nil
	}
	n := r.Int64(key)
	return &n
}

// String reads a string field. Missing fields read as "".
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Bool reads a boolean field. Missing fields read as false.
func (r Record) Bool(key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

// Time reads a timestamp field stored either natively or as RFC 3339 text
// (the file backend round-trips times through JSON).
func (r Record) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return time.Time{}
}

// SetTime stores a timestamp as RFC 3339 text so every backend serializes it
// the same way.
func (r Record) SetTime(key string, t time.Time) {
	r[key] = t.UTC().Format(time.RFC3339Nano)
}
