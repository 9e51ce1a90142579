package repository

import (
	"context"

	"github.com/ayudin/go-course-keeper/internal/adapter"
	"github.com/ayudin/go-course-keeper/internal/cache"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/models"
)

// Key namespaces and scopes used by the two entity collections.
const (
	NamespaceCourses   = "courses"
	NamespaceMaterials = "materials"
	NamespaceSync      = "sync"

	// CourseListScope is the single scope of the global course list.
	CourseListScope = "all"
)

// Namespaces returns the fixed set of cache namespaces owned by the
// client; the cache store's Clear sweeps exactly these.
func Namespaces() []string {
	return []string{NamespaceCourses, NamespaceMaterials, NamespaceSync}
}

// NewCourseRepository builds the course-list repository. The course list
// has no refresh-metadata endpoint, so FetchAndRecordRefresh is
// unsupported.
func NewCourseRepository(store cache.Store, remote adapter.RemoteSource, log *logger.Logger) *Repository[models.Course] {
	fetch := func(ctx context.Context, _ string) ([]models.Course, error) {
		return remote.ListCourses(ctx)
	}
	return New[models.Course](store, NamespaceCourses, fetch, nil, log)
}

// NewMaterialRepository builds the per-course material repository. Scope
// is the course id.
func NewMaterialRepository(store cache.Store, remote adapter.RemoteSource, log *logger.Logger) *Repository[models.Material] {
	fetch := func(ctx context.Context, courseID string) ([]models.Material, error) {
		return remote.ListMaterials(ctx, courseID)
	}
	refresh := func(ctx context.Context, courseID string) (models.RefreshOutcome, error) {
		return remote.RefreshMaterials(ctx, courseID)
	}
	return New[models.Material](store, NamespaceMaterials, fetch, refresh, log)
}
