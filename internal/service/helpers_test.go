package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ayudin/go-course-keeper/models"
)

// stubSource is a hand-written Source[T] stand-in: a generic interface
// cannot go through mockgen, and explicit call plumbing keeps the sync
// scenarios readable.
type stubSource[T any] struct {
	mu sync.Mutex

	fresh    map[string][]T
	freshErr map[string]error
	cached   map[string][]T

	outcome    models.RefreshOutcome
	refreshErr error

	fetchCalls   map[string]int
	refreshCalls int
	evicted      []string
	evictAllN    int

	// blockFetch, when non-nil, makes FetchFresh wait until the channel
	// closes. Used by the concurrency guard tests.
	blockFetch chan struct{}
	fetching   chan string
}

func newStubSource[T any]() *stubSource[T] {
	return &stubSource[T]{
		fresh:      make(map[string][]T),
		freshErr:   make(map[string]error),
		cached:     make(map[string][]T),
		fetchCalls: make(map[string]int),
	}
}

func (s *stubSource[T]) FetchFresh(_ context.Context, scope string) ([]T, error) {
	s.mu.Lock()
	s.fetchCalls[scope]++
	block := s.blockFetch
	fetching := s.fetching
	err := s.freshErr[scope]
	items := s.fresh[scope]
	s.mu.Unlock()

	if fetching != nil {
		fetching <- scope
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *stubSource[T]) FetchAndRecordRefresh(_ context.Context, _ string) (models.RefreshOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCalls++
	if s.refreshErr != nil {
		return models.RefreshOutcome{}, s.refreshErr
	}
	return s.outcome, nil
}

func (s *stubSource[T]) Cached(_ context.Context, scope string) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items, ok := s.cached[scope]; ok {
		return items
	}
	return []T{}
}

func (s *stubSource[T]) Expired(_ context.Context, _ string, _ time.Duration) bool {
	return true
}

func (s *stubSource[T]) Evict(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evicted = append(s.evicted, scope)
	return nil
}

func (s *stubSource[T]) EvictAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictAllN++
	return nil
}

func (s *stubSource[T]) calls(scope string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCalls[scope]
}

// fakeStore is an in-memory cache.Store used where the orchestrator only
// needs persistence to work, not to be observed call-by-call.
type fakeStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string][]byte)}
}

func (f *fakeStore) Put(_ context.Context, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeStore) TimestampOf(_ context.Context, _ string) (time.Time, bool) {
	return time.Time{}, false
}

func (f *fakeStore) IsExpired(_ context.Context, _ string, _ time.Duration) bool {
	return true
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeStore) ClearNamespace(_ context.Context, _ string) error { return nil }

func (f *fakeStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[string][]byte)
	return nil
}

func (f *fakeStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}
