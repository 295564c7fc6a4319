// Package keymutex provides a mutex keyed by an arbitrary string, used by the
// services to serialize read-modify-save sequences against the same entity.
package keymutex

import "sync"

// KeyMutex hands out one mutex per key. Mutexes for unused keys are retained;
// the key space here is entity ids, which is small and bounded by the store.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New returns an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key and returns the matching unlock function.
// Entries are reference-counted and dropped once the last holder unlocks, so
// the map does not grow with the history of keys ever locked.
func (k *KeyMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
