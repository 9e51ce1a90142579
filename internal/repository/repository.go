// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

// Package repository implements the cache-first read-through accessors
// between the entity managers and the network + cache pair. A repository
// is the sole path to remote data for its entity collection: fetches
// write through to the cache store keyed by scope, and the last cached
// set stays servable independent of network outcome.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ayudin/go-course-keeper/internal/cache"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/models"
)

// ErrRefreshUnsupported is returned by FetchAndRecordRefresh on
// collections whose remote source has no refresh-metadata endpoint.
var ErrRefreshUnsupported = errors.New("refresh with status not supported for this collection")

// FetchFunc loads the full entity set for one scope from the remote
// source.
type FetchFunc[T any] func(ctx context.Context, scope string) ([]T, error)

// RefreshFunc asks the remote source to re-scan one scope and returns the
// refreshed set plus server-side discovery metadata.
type RefreshFunc func(ctx context.Context, scope string) (models.RefreshOutcome, error)

// Repository is a generic cache-first accessor for one entity collection.
// Scope is the key under which a set is cached: a course id for
// materials, a constant for the global course list.
type Repository[T any] struct {
	store     cache.Store
	namespace string
	fetch     FetchFunc[T]
	refresh   RefreshFunc
	logger    *logger.Logger
}

// New builds a Repository over store for the given key namespace.
// refresh may be nil when the collection has no server-side refresh
// endpoint.
func New[T any](store cache.Store, namespace string, fetch FetchFunc[T], refresh RefreshFunc, log *logger.Logger) *Repository[T] {
	return &Repository[T]{
		store:     store,
		namespace: namespace,
		fetch:     fetch,
		refresh:   refresh,
		logger:    log,
	}
}

func (r *Repository[T]) key(scope string) string {
	return r.namespace + "/" + scope
}

// FetchFresh calls the remote source for scope and, on success, writes
// the result through to the cache store before returning it. A fetch
// failure propagates to the caller untouched: falling back to cached data
// is the manager's decision, not the repository's. A cache write failure
// is logged but does not fail the fetch; the fresh data is still
// returned.
func (r *Repository[T]) FetchFresh(ctx context.Context, scope string) ([]T, error) {
	items, err := r.fetch(ctx, scope)
	if err != nil {
		return nil, err
	}

	if putErr := r.store.Put(ctx, r.key(scope), items); putErr != nil {
		r.logger.Err(putErr).Str("scope", scope).Msg("cache write-through failed")
	}

	return items, nil
}

// FetchAndRecordRefresh is the variant used by explicit "refresh now"
// actions: it returns the refreshed entity set together with the
// server-reported discovery metadata. Failure propagation matches
// FetchFresh.
func (r *Repository[T]) FetchAndRecordRefresh(ctx context.Context, scope string) (models.RefreshOutcome, error) {
	if r.refresh == nil {
		return models.RefreshOutcome{}, ErrRefreshUnsupported
	}

	outcome, err := r.refresh(ctx, scope)
	if err != nil {
		return models.RefreshOutcome{}, err
	}

	if putErr := r.store.Put(ctx, r.key(scope), outcome.Materials); putErr != nil {
		r.logger.Err(putErr).Str("scope", scope).Msg("cache write-through failed")
	}

	return outcome, nil
}

// Cached returns the last cached set for scope, or an empty set when none
// exists. It never fails: cache errors degrade to a miss.
func (r *Repository[T]) Cached(ctx context.Context, scope string) []T {
	var items []T
	found, err := r.store.Get(ctx, r.key(scope), &items)
	if err != nil || !found {
		return []T{}
	}
	return items
}

// Expired reports whether the cached set for scope is older than maxAge
// (or absent entirely).
func (r *Repository[T]) Expired(ctx context.Context, scope string, maxAge time.Duration) bool {
	return r.store.IsExpired(ctx, r.key(scope), maxAge)
}

// Evict removes the cached set for scope.
func (r *Repository[T]) Evict(ctx context.Context, scope string) error {
	return r.store.Remove(ctx, r.key(scope))
}

// EvictAll removes every cached set in this repository's namespace.
// Calling it twice in a row has the same observable effect as once.
func (r *Repository[T]) EvictAll(ctx context.Context) error {
	return r.store.ClearNamespace(ctx, r.namespace)
}
