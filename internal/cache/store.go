// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayudin/go-course-keeper/internal/logger"
)

type sqliteStore struct {
	db         *sql.DB
	namespaces []string
	logger     *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewStore builds a SQLite-backed [Store] over db. namespaces is the fixed
// set of key namespaces that Clear sweeps.
func NewStore(db *sql.DB, namespaces []string, log *logger.Logger) Store {
	return &sqliteStore{
		db:         db,
		namespaces: namespaces,
		logger:     log,
		now:        time.Now,
	}
}

func (s *sqliteStore) Put(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Err(err).Str("key", key).Msg("failed to serialize cache value")
		return fmt.Errorf("%w: serialize value for key %s: %w", ErrLocalStorage, key, err)
	}

	if _, err = s.db.ExecContext(ctx, upsertEntry, key, payload, s.now()); err != nil {
		s.logger.Err(err).Str("key", key).Msg("failed to write cache entry")
		return fmt.Errorf("%w: write entry for key %s: %w", ErrLocalStorage, key, err)
	}

	return nil
}

func (s *sqliteStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var payload []byte
	var storedAt time.Time

	row := s.db.QueryRowContext(ctx, getEntry, key)
	if err := row.Scan(&payload, &storedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Err(err).Str("key", key).Msg("failed to read cache entry")
		return false, fmt.Errorf("%w: read entry for key %s: %w", ErrLocalStorage, key, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		// Corrupt entry: treat as a miss and purge so it does not keep
		// failing on every read.
		s.logger.Warn().Str("key", key).Err(err).Msg("corrupt cache entry purged")
		_ = s.Remove(ctx, key)
		return false, nil
	}

	return true, nil
}

func (s *sqliteStore) TimestampOf(ctx context.Context, key string) (time.Time, bool) {
	var storedAt time.Time

	row := s.db.QueryRowContext(ctx, getTimestamp, key)
	if err := row.Scan(&storedAt); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Err(err).Str("key", key).Msg("failed to read cache timestamp")
		}
		return time.Time{}, false
	}

	return storedAt, true
}

func (s *sqliteStore) IsExpired(ctx context.Context, key string, maxAge time.Duration) bool {
	storedAt, ok := s.TimestampOf(ctx, key)
	if !ok {
		return true
	}
	return s.now().Sub(storedAt) > maxAge
}

func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, deleteEntry, key); err != nil {
		s.logger.Err(err).Str("key", key).Msg("failed to remove cache entry")
		return fmt.Errorf("%w: remove entry for key %s: %w", ErrLocalStorage, key, err)
	}
	return nil
}

func (s *sqliteStore) ClearNamespace(ctx context.Context, namespace string) error {
	query, args, err := buildClearNamespaceQuery(namespace)
	if err != nil {
		return fmt.Errorf("%w: build clear query for namespace %s: %w", ErrLocalStorage, namespace, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("namespace", namespace).Msg("failed to clear cache namespace")
		return fmt.Errorf("%w: clear namespace %s: %w", ErrLocalStorage, namespace, err)
	}

	return nil
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	for _, ns := range s.namespaces {
		if err := s.ClearNamespace(ctx, ns); err != nil {
			return err
		}
	}
	return nil
}
