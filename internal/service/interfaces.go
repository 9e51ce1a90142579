package service

import (
	"context"
	"time"

	"github.com/ayudin/go-course-keeper/internal/repository"
	"github.com/ayudin/go-course-keeper/models"
)

// CourseListScope is the scope under which the global course list is
// cached and managed.
const CourseListScope = repository.CourseListScope

// Source is the repository contract a manager consumes for one entity
// collection. *repository.Repository[T] satisfies it.
type Source[T any] interface {
	// FetchFresh fetches the set for scope from the remote source and
	// writes it through to the cache. Failures propagate; falling back
	// to cached data is the manager's decision.
	FetchFresh(ctx context.Context, scope string) ([]T, error)

	// FetchAndRecordRefresh is the "refresh now" variant returning the
	// server-reported discovery metadata alongside the set.
	FetchAndRecordRefresh(ctx context.Context, scope string) (models.RefreshOutcome, error)

	// Cached returns the last cached set for scope, empty when none
	// exists. Never fails.
	Cached(ctx context.Context, scope string) []T

	// Expired reports whether the cached set for scope is older than
	// maxAge or absent.
	Expired(ctx context.Context, scope string, maxAge time.Duration) bool

	// Evict removes the cached set for scope.
	Evict(ctx context.Context, scope string) error

	// EvictAll removes every cached set of the collection.
	EvictAll(ctx context.Context) error
}

// DownloadFunc streams an attachment by its download reference into a
// local file and returns the file path.
type DownloadFunc func(ctx context.Context, downloadRef string) (string, error)
