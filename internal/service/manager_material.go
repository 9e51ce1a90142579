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

// MaterialManager owns the authoritative per-course material collections.
// Scope is the course id; a scope with no entry behaves as the idle/empty
// default rather than an error.
type MaterialManager struct {
	source   Source[models.Material]
	download DownloadFunc
	logger   *logger.Logger

	mu        sync.RWMutex
	items     map[string][]models.Material
	isLoading map[string]bool
	lastError map[string]*ClassifiedError
	lastSync  map[string]time.Time

	now func() time.Time
}

func NewMaterialManager(source Source[models.Material], download DownloadFunc, log *logger.Logger) *MaterialManager {
	return &MaterialManager{
		source:    source,
		download:  download,
		logger:    log,
		items:     make(map[string][]models.Material),
		isLoading: make(map[string]bool),
		lastError: make(map[string]*ClassifiedError),
		lastSync:  make(map[string]time.Time),
		now:       time.Now,
	}
}

// Load populates the material set of one course. When not forcing and
// the set is already non-empty it returns immediately without any fetch.
// Otherwise the cached set is served first so the UI never shows an empty
// list during the network round-trip, then a refresh runs.
func (m *MaterialManager) Load(ctx context.Context, courseID string, forceRefresh bool) error {
	m.mu.Lock()
	if !forceRefresh && len(m.items[courseID]) > 0 {
		m.mu.Unlock()
		return nil
	}
	if len(m.items[courseID]) == 0 {
		m.items[courseID] = m.source.Cached(ctx, courseID)
	}
	m.mu.Unlock()

	return m.Refresh(ctx, courseID)
}

// Refresh fetches the material set of courseID from the server. On
// success the held set is replaced wholesale (materials never merge
// per-field) and the sync time stamped; on failure the classified error
// is recorded and, only when no set is held yet, the cached set is served
// instead. isLoading is cleared on every exit path.
func (m *MaterialManager) Refresh(ctx context.Context, courseID string) error {
	m.mu.Lock()
	m.isLoading[courseID] = true
	delete(m.lastError, courseID)
	m.mu.Unlock()

	fresh, err := m.source.FetchFresh(ctx, courseID)

	m.mu.Lock()
	defer func() {
		m.isLoading[courseID] = false
		m.mu.Unlock()
	}()

	if err != nil {
		classified := classify(err)
		m.lastError[courseID] = classified
		m.logger.Warn().Err(err).Str("course_id", courseID).Msg("material refresh failed")
		if len(m.items[courseID]) == 0 {
			m.items[courseID] = m.source.Cached(ctx, courseID)
		}
		return classified
	}

	m.items[courseID] = fresh
	m.lastSync[courseID] = m.now()
	return nil
}

// RefreshWithStatus is the explicit "refresh now" variant: it returns the
// server-reported refresh outcome (newly discovered items, processing
// time) to the caller. On failure it does not fall back to cache and
// leaves the held set untouched. isLoading is cleared on every exit path.
func (m *MaterialManager) RefreshWithStatus(ctx context.Context, courseID string) (models.RefreshOutcome, error) {
	m.mu.Lock()
	m.isLoading[courseID] = true
	delete(m.lastError, courseID)
	m.mu.Unlock()

	outcome, err := m.source.FetchAndRecordRefresh(ctx, courseID)

	m.mu.Lock()
	defer func() {
		m.isLoading[courseID] = false
		m.mu.Unlock()
	}()

	if err != nil {
		classified := classify(err)
		m.lastError[courseID] = classified
		m.logger.Warn().Err(err).Str("course_id", courseID).Msg("material refresh-with-status failed")
		return models.RefreshOutcome{}, classified
	}

	m.items[courseID] = outcome.Materials
	m.lastSync[courseID] = m.now()
	return outcome, nil
}

// Materials returns the held material set of courseID, empty when none.
func (m *MaterialManager) Materials(courseID string) []models.Material {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[courseID]
}

// GetByID returns the held material with the given id within a course.
func (m *MaterialManager) GetByID(courseID, id string) (models.Material, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mat := range m.items[courseID] {
		if mat.ID == id {
			return mat, true
		}
	}
	return models.Material{}, false
}

// IsLoading reports whether a refresh for courseID is in flight.
func (m *MaterialManager) IsLoading(courseID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isLoading[courseID]
}

// LastError returns the classified error of the last refresh for
// courseID, nil when it succeeded.
func (m *MaterialManager) LastError(courseID string) *ClassifiedError {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastError[courseID]
}

// ClearError resets the recorded refresh error for courseID.
func (m *MaterialManager) ClearError(courseID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lastError, courseID)
}

// LastSyncTime returns when courseID was last successfully refreshed.
func (m *MaterialManager) LastSyncTime(courseID string) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.lastSync[courseID]
	return t, ok
}

// DownloadAttachment streams an attachment to a local file and returns
// its path.
func (m *MaterialManager) DownloadAttachment(ctx context.Context, downloadRef string) (string, error) {
	path, err := m.download(ctx, downloadRef)
	if err != nil {
		return "", classify(err)
	}
	return path, nil
}

// EvictCache drops the cached material set of one course.
func (m *MaterialManager) EvictCache(ctx context.Context, courseID string) error {
	return m.source.Evict(ctx, courseID)
}

// EvictAllCache drops every cached material set.
func (m *MaterialManager) EvictAllCache(ctx context.Context) error {
	return m.source.EvictAll(ctx)
}
