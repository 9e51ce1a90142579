// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/internal/mock"
	"github.com/ayudin/go-course-keeper/models"
)

var errRemote = errors.New("remote unreachable")

func TestRepository_FetchFresh_WritesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	ctx := context.Background()

	fetched := []models.Course{{ID: "c1"}, {ID: "c2"}}
	fetch := func(_ context.Context, _ string) ([]models.Course, error) {
		return fetched, nil
	}
	repo := New[models.Course](store, NamespaceCourses, fetch, nil, logger.Nop())

	store.EXPECT().Put(ctx, "courses/all", fetched).Return(nil)

	items, err := repo.FetchFresh(ctx, CourseListScope)
	require.NoError(t, err)
	assert.Equal(t, fetched, items)
}

func TestRepository_FetchFresh_FetchFailureSkipsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	fetch := func(_ context.Context, _ string) ([]models.Course, error) {
		return nil, errRemote
	}
	repo := New[models.Course](store, NamespaceCourses, fetch, nil, logger.Nop())

	// No Put expectation: a failed fetch must not touch the cache.
	_, err := repo.FetchFresh(context.Background(), CourseListScope)
	assert.ErrorIs(t, err, errRemote)
}

func TestRepository_FetchFresh_CacheWriteFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	ctx := context.Background()

	fetch := func(_ context.Context, _ string) ([]models.Material, error) {
		return []models.Material{{ID: "m1"}}, nil
	}
	repo := New[models.Material](store, NamespaceMaterials, fetch, nil, logger.Nop())

	store.EXPECT().Put(ctx, "materials/c1", gomock.Any()).Return(errors.New("disk full"))

	items, err := repo.FetchFresh(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRepository_FetchAndRecordRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	ctx := context.Background()

	outcome := models.RefreshOutcome{
		Materials: []models.Material{{ID: "m1"}},
		NewCount:  1,
	}
	refresh := func(_ context.Context, _ string) (models.RefreshOutcome, error) {
		return outcome, nil
	}
	repo := New[models.Material](store, NamespaceMaterials, nil, refresh, logger.Nop())

	store.EXPECT().Put(ctx, "materials/c1", outcome.Materials).Return(nil)

	got, err := repo.FetchAndRecordRefresh(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, outcome, got)
}

func TestRepository_FetchAndRecordRefresh_Unsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	repo := NewCourseRepository(store, mock.NewMockRemoteSource(ctrl), logger.Nop())

	_, err := repo.FetchAndRecordRefresh(context.Background(), CourseListScope)
	assert.ErrorIs(t, err, ErrRefreshUnsupported)
}

func TestRepository_Cached_DegradesToEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	ctx := context.Background()
	repo := New[models.Course](store, NamespaceCourses, nil, nil, logger.Nop())

	store.EXPECT().Get(ctx, "courses/all", gomock.Any()).Return(false, nil)
	assert.Empty(t, repo.Cached(ctx, CourseListScope))

	store.EXPECT().Get(ctx, "courses/all", gomock.Any()).Return(false, errors.New("db locked"))
	assert.Empty(t, repo.Cached(ctx, CourseListScope))
}

func TestRepository_Cached_ReturnsStoredSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	ctx := context.Background()
	repo := New[models.Course](store, NamespaceCourses, nil, nil, logger.Nop())

	store.EXPECT().Get(ctx, "courses/all", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest any) (bool, error) {
			*dest.(*[]models.Course) = []models.Course{{ID: "c1"}}
			return true, nil
		})

	cached := repo.Cached(ctx, CourseListScope)
	require.Len(t, cached, 1)
	assert.Equal(t, "c1", cached[0].ID)
}

func TestRepository_EvictAndEvictAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	ctx := context.Background()
	repo := New[models.Material](store, NamespaceMaterials, nil, nil, logger.Nop())

	store.EXPECT().Remove(ctx, "materials/c1").Return(nil)
	require.NoError(t, repo.Evict(ctx, "c1"))

	store.EXPECT().ClearNamespace(ctx, NamespaceMaterials).Return(nil)
	require.NoError(t, repo.EvictAll(ctx))
}

func TestNamespaces_CoverAllCollections(t *testing.T) {
	assert.ElementsMatch(t, []string{"courses", "materials", "sync"}, Namespaces())
}
