package kvstore

import (
	"context"
	"encoding/json"
)

// Store is the engine's only I/O dependency: a durable string key/value
// store. Every operation is independently atomic; there is no cross-key
// transaction.
type Store interface {
	// Get returns the value for key. ok=false means the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// RemoveMany deletes all given keys.
	RemoveMany(ctx context.Context, keys []string) error

	// Close releases the underlying resources.
	Close() error
}

// DecodeOr decodes raw JSON into a copy of fallback and returns it.
// An absent key, empty value, or parse failure yields fallback unchanged,
// so one corrupted field never blocks the rest of a load or migration.
// Because decoding starts from fallback, fields missing from raw keep
// their fallback values (merge semantics).
func DecodeOr[T any](raw string, ok bool, fallback T) T {
	if !ok || raw == "" {
		return fallback
	}
	v := fallback
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fallback
	}
	return v
}
