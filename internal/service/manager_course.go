// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package service

import (
	"context"
	"sync"
	"time"

	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/models"
)

// CourseManager owns the authoritative in-memory course list and its
// loading/error/staleness state. All reads are pure projections over the
// held collection and never trigger I/O.
type CourseManager struct {
	source Source[models.Course]
	logger *logger.Logger

	mu        sync.RWMutex
	items     []models.Course
	isLoading bool
	lastError *ClassifiedError
	lastSync  *time.Time

	now func() time.Time
}

func NewCourseManager(source Source[models.Course], log *logger.Logger) *CourseManager {
	return &CourseManager{
		source: source,
		logger: log,
		now:    time.Now,
	}
}

// Load populates the course list. When not forcing and the list is
// already non-empty it returns immediately without any fetch. Otherwise
// it first serves whatever the cache holds, so the UI never shows an
// empty list during the network round-trip, and then refreshes.
func (m *CourseManager) Load(ctx context.Context, forceRefresh bool) error {
	m.mu.Lock()
	if !forceRefresh && len(m.items) > 0 {
		m.mu.Unlock()
		return nil
	}
	if len(m.items) == 0 {
		m.items = m.source.Cached(ctx, CourseListScope)
	}
	m.mu.Unlock()

	return m.Refresh(ctx)
}

// Refresh fetches the course list from the server. On success the held
// collection is replaced wholesale and the sync time stamped; on failure
// the classified error is recorded and, only when no collection is held
// yet, the last cached list is served instead. isLoading is cleared on
// every exit path.
func (m *CourseManager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.isLoading = true
	m.lastError = nil
	m.mu.Unlock()

	fresh, err := m.source.FetchFresh(ctx, CourseListScope)

	m.mu.Lock()
	defer func() {
		m.isLoading = false
		m.mu.Unlock()
	}()

	if err != nil {
		classified := classify(err)
		m.lastError = classified
		m.logger.Warn().Err(err).Msg("course refresh failed")
		if len(m.items) == 0 {
			m.items = m.source.Cached(ctx, CourseListScope)
		}
		return classified
	}

	m.items = fresh
	now := m.now()
	m.lastSync = &now
	return nil
}

// Courses returns the held course list.
func (m *CourseManager) Courses() []models.Course {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items
}

// GetByID returns the held course with the given id.
func (m *CourseManager) GetByID(id string) (models.Course, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.items {
		if c.ID == id {
			return c, true
		}
	}
	return models.Course{}, false
}

// IsLoading reports whether a refresh is in flight.
func (m *CourseManager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isLoading
}

// LastError returns the classified error of the last refresh, nil when
// it succeeded.
func (m *CourseManager) LastError() *ClassifiedError {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastError
}

// ClearError resets the recorded refresh error.
func (m *CourseManager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = nil
}

// LastSyncTime returns when the list was last successfully refreshed.
func (m *CourseManager) LastSyncTime() *time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSync
}

// EvictCache drops the cached course list; the held in-memory collection
// stays untouched.
func (m *CourseManager) EvictCache(ctx context.Context) error {
	return m.source.EvictAll(ctx)
}
