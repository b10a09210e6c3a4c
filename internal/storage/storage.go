// Package storage is the key-value persistence adapter. Every entity
// collection is kept as a single JSON blob under a namespaced key and is
// read and rewritten in full on each mutation. That is O(n) per write, which
// is acceptable at personal-use data volumes and keeps the stores trivial.
package storage

import (
	"context"
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"
)

// ErrUnavailable is returned by services when the underlying storage cannot
// be written to. Stores themselves signal the same condition as a false
// success flag instead of an error.
var ErrUnavailable = errors.New("local storage is not available")

// Store is the synchronous string key-value contract the platform storage
// has to fulfil. Writes are last-write-wins, whole-value overwrites.
type Store interface {
	// Get returns the value at key and whether it was present.
	Get(ctx context.Context, key string) (string, bool)
	// Set overwrites the value at key in full and reports success.
	Set(ctx context.Context, key string, value string) bool
	// Delete removes the key and reports success. Deleting an absent key
	// succeeds.
	Delete(ctx context.Context, key string) bool
	// IsAvailable probes whether the storage accepts writes, without
	// failing. It writes and deletes a sentinel key.
	IsAvailable(ctx context.Context) bool
}

const probeKey = "pennywise.probe"

// ReadJSON deserializes the blob at key into a collection of T. An absent
// key or a malformed blob degrades to an empty collection rather than an
// error: the stores favor availability over strict validation.
func ReadJSON[T any](ctx context.Context, s Store, key string) []T {
	raw, ok := s.Get(ctx, key)
	if !ok || raw == "" {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warnf("malformed blob at %q, treating as empty: %v", key, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// WriteJSON serializes value and overwrites the blob at key, reporting
// success. Serialization failures are converted to a false signal at this
// boundary instead of propagating.
func WriteJSON(ctx context.Context, s Store, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Errorf("could not serialize blob for %q: %v", key, err)
		return false
	}
	return s.Set(ctx, key, string(raw))
}

// Probe implements the write-then-delete availability check shared by the
// Store implementations.
func Probe(ctx context.Context, s Store) bool {
	if !s.Set(ctx, probeKey, "1") {
		return false
	}
	return s.Delete(ctx, probeKey)
}
