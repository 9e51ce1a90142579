package cache

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_cache.go -package=mock

// Store is a generic key/value cache with a per-key write timestamp.
//
// Every Put records the value together with the current time, atomically
// as observed by readers: a reader never sees a value paired with a stale
// timestamp. Values are serialized as JSON blobs; an entry whose stored
// blob no longer deserializes is treated as absent and proactively purged
// so a corrupt cache self-heals instead of failing repeatedly.
type Store interface {
	// Put stores value under key with the current time as its timestamp,
	// overwriting any prior entry. It fails only on serialization or
	// local storage errors.
	Put(ctx context.Context, key string, value any) error

	// Get loads the entry for key into dest and reports whether an entry
	// was found. Corrupt entries are purged and reported as absent.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// TimestampOf returns the write timestamp for key, or false when no
	// entry exists.
	TimestampOf(ctx context.Context, key string) (time.Time, bool)

	// IsExpired reports whether key has no timestamp or its age exceeds
	// maxAge.
	IsExpired(ctx context.Context, key string, maxAge time.Duration) bool

	// Remove deletes the entry for key. Removing an absent key is not an
	// error.
	Remove(ctx context.Context, key string) error

	// ClearNamespace deletes every entry whose key equals namespace or
	// starts with "namespace/".
	ClearNamespace(ctx context.Context, namespace string) error

	// Clear deletes the entries of every namespace registered at
	// construction. Keys outside the registered namespaces survive; this
	// is a fixed known-set sweep, not a wildcard purge.
	Clear(ctx context.Context) error
}
