// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayudin/go-course-keeper/internal/adapter"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/models"
)

type orchestratorFixture struct {
	orchestrator *SyncOrchestrator
	courses      *stubSource[models.Course]
	materials    *stubSource[models.Material]
	store        *fakeStore
}

func newOrchestratorFixture() *orchestratorFixture {
	courseSource := newStubSource[models.Course]()
	materialSource := newStubSource[models.Material]()
	store := newFakeStore()

	courseManager := NewCourseManager(courseSource, logger.Nop())
	materialManager := NewMaterialManager(materialSource, nil, logger.Nop())

	return &orchestratorFixture{
		orchestrator: NewSyncOrchestrator(courseManager, materialManager, store, logger.Nop()),
		courses:      courseSource,
		materials:    materialSource,
		store:        store,
	}
}

func (f *orchestratorFixture) withCourses(courses ...models.Course) {
	f.courses.fresh[CourseListScope] = courses
	for _, c := range courses {
		f.materials.fresh[c.ID] = []models.Material{{ID: c.ID + "-m1", CourseID: c.ID}}
	}
}

func TestSyncAll_AllCoursesSucceed(t *testing.T) {
	f := newOrchestratorFixture()
	f.withCourses(
		models.Course{ID: "c1", Name: "Algebra"},
		models.Course{ID: "c2", Name: "Calculus"},
		models.Course{ID: "c3", Name: "Geometry"},
	)

	require.NoError(t, f.orchestrator.SyncAll(context.Background()))

	snap := f.orchestrator.Snapshot()
	assert.False(t, snap.IsSyncing)
	assert.Equal(t, 1.0, snap.Progress)
	assert.Equal(t, "sync complete", snap.StatusMessage)
	assert.Empty(t, snap.LastError)
	require.NotNil(t, snap.LastGlobalSyncTime)

	states := f.orchestrator.CourseSyncStates()
	require.Len(t, states, 3)
	for id, st := range states {
		assert.Equal(t, models.StatusCompleted, st.Status, id)
		assert.Empty(t, st.FailureReason, id)
		assert.NotNil(t, st.CompletionTime, id)
	}

	// The completion time survives restarts through the cache store.
	assert.True(t, f.store.has("sync/last_global"))
}

func TestSyncAll_OneFailureDoesNotStopTheRun(t *testing.T) {
	f := newOrchestratorFixture()
	f.withCourses(
		models.Course{ID: "c1", Name: "Algebra"},
		models.Course{ID: "c2", Name: "Calculus"},
		models.Course{ID: "c3", Name: "Geometry"},
	)
	f.materials.freshErr["c2"] = adapter.ErrNetwork

	require.NoError(t, f.orchestrator.SyncAll(context.Background()))

	states := f.orchestrator.CourseSyncStates()
	assert.Equal(t, models.StatusCompleted, states["c1"].Status)
	assert.Equal(t, models.StatusFailed, states["c2"].Status)
	assert.Equal(t, "network unavailable", states["c2"].FailureReason)
	assert.Equal(t, models.StatusCompleted, states["c3"].Status)

	// c3 was still fetched after c2 failed.
	assert.Equal(t, 1, f.materials.calls("c3"))

	// Per-course failures are not a global failure: the run completes
	// and the global timestamp advances.
	snap := f.orchestrator.Snapshot()
	assert.Empty(t, snap.LastError)
	assert.NotNil(t, snap.LastGlobalSyncTime)
}

func TestSyncAll_CourseListFailureAbortsBeforeTheLoop(t *testing.T) {
	f := newOrchestratorFixture()
	f.courses.freshErr[CourseListScope] = adapter.ErrUnauthorized

	err := f.orchestrator.SyncAll(context.Background())
	require.Error(t, err)

	var classified *ClassifiedError
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, KindUnauthenticated, classified.Kind)

	snap := f.orchestrator.Snapshot()
	assert.False(t, snap.IsSyncing)
	assert.Equal(t, "sign in to continue", snap.StatusMessage)
	assert.Equal(t, "sign in to continue", snap.LastError)
	assert.Nil(t, snap.LastGlobalSyncTime)
	assert.Empty(t, f.orchestrator.CourseSyncStates())
	assert.False(t, f.store.has("sync/last_global"))
}

func TestSyncAll_EmptyCourseList(t *testing.T) {
	f := newOrchestratorFixture()
	f.courses.fresh[CourseListScope] = []models.Course{}

	err := f.orchestrator.SyncAll(context.Background())
	require.Error(t, err)

	var classified *ClassifiedError
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, KindNoCoursesToSync, classified.Kind)
	assert.Empty(t, f.orchestrator.CourseSyncStates())

	snap := f.orchestrator.Snapshot()
	assert.Equal(t, "no courses to sync", snap.LastError)
	assert.Nil(t, snap.LastGlobalSyncTime)
}

func TestSyncAll_ReentrantCallIsNoOp(t *testing.T) {
	f := newOrchestratorFixture()
	f.withCourses(models.Course{ID: "c1", Name: "Algebra"})

	block := make(chan struct{})
	fetching := make(chan string, 1)
	f.courses.blockFetch = block
	f.courses.fetching = fetching

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = f.orchestrator.SyncAll(context.Background())
	}()

	// Wait until the first run is inside the course-list fetch.
	<-fetching
	require.True(t, f.orchestrator.Snapshot().IsSyncing)

	require.NoError(t, f.orchestrator.SyncAll(context.Background()))
	assert.Equal(t, 1, f.courses.calls(CourseListScope))

	close(block)
	wg.Wait()
	assert.False(t, f.orchestrator.Snapshot().IsSyncing)
}

func TestSyncOne_UnknownCourseStillRuns(t *testing.T) {
	f := newOrchestratorFixture()
	f.materials.freshErr["ghost"] = adapter.ErrNotFound

	err := f.orchestrator.SyncOne(context.Background(), "ghost")
	require.Error(t, err)

	st := f.orchestrator.CourseSyncStates()["ghost"]
	assert.Equal(t, models.StatusFailed, st.Status)
	assert.Equal(t, "not found on server", st.FailureReason)
	// Display name falls back to the id when the course is not held.
	assert.Equal(t, "ghost", st.CourseName)
}

func TestSyncOne_Success(t *testing.T) {
	f := newOrchestratorFixture()
	f.withCourses(models.Course{ID: "c1", Name: "Algebra"})
	require.NoError(t, f.orchestrator.courses.Load(context.Background(), false))

	require.NoError(t, f.orchestrator.SyncOne(context.Background(), "c1"))

	st := f.orchestrator.CourseSyncStates()["c1"]
	assert.Equal(t, models.StatusCompleted, st.Status)
	assert.Equal(t, "Algebra", st.CourseName)
	assert.Empty(t, f.orchestrator.ActiveSyncs())
}

func TestSyncOne_ConcurrentSameCourseIsNoOp(t *testing.T) {
	f := newOrchestratorFixture()
	f.materials.fresh["c1"] = []models.Material{{ID: "m1"}}

	block := make(chan struct{})
	fetching := make(chan string, 1)
	f.materials.blockFetch = block
	f.materials.fetching = fetching

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = f.orchestrator.SyncOne(context.Background(), "c1")
	}()

	<-fetching
	assert.Equal(t, []string{"c1"}, f.orchestrator.ActiveSyncs())

	// Same course: rejected without a second fetch.
	require.NoError(t, f.orchestrator.SyncOne(context.Background(), "c1"))
	assert.Equal(t, 1, f.materials.calls("c1"))

	close(block)
	wg.Wait()
	assert.Empty(t, f.orchestrator.ActiveSyncs())
}

func TestSyncAll_StatusRevertsToIdleAfterDelay(t *testing.T) {
	f := newOrchestratorFixture()
	f.withCourses(models.Course{ID: "c1", Name: "Algebra"})
	f.orchestrator.revertDelay = 20 * time.Millisecond

	require.NoError(t, f.orchestrator.SyncAll(context.Background()))
	require.Equal(t, "sync complete", f.orchestrator.Snapshot().StatusMessage)

	assert.Eventually(t, func() bool {
		return f.orchestrator.Snapshot().StatusMessage == "idle"
	}, time.Second, 5*time.Millisecond)
}

func TestSyncAll_PendingRevertSkippedWhileNewRunActive(t *testing.T) {
	f := newOrchestratorFixture()
	f.withCourses(models.Course{ID: "c1", Name: "Algebra"})
	f.orchestrator.revertDelay = 20 * time.Millisecond

	// First run completes and arms its delayed revert to idle.
	require.NoError(t, f.orchestrator.SyncAll(context.Background()))

	// Second run starts before the revert fires and blocks mid-fetch.
	block := make(chan struct{})
	fetching := make(chan string, 1)
	f.courses.blockFetch = block
	f.courses.fetching = fetching

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = f.orchestrator.SyncAll(context.Background())
	}()
	<-fetching

	// The stale revert must not overwrite the active run's status.
	time.Sleep(40 * time.Millisecond)
	snap := f.orchestrator.Snapshot()
	assert.True(t, snap.IsSyncing)
	assert.Equal(t, "refreshing course list", snap.StatusMessage)

	close(block)
	wg.Wait()
	assert.Equal(t, "sync complete", f.orchestrator.Snapshot().StatusMessage)
}

func TestOrchestrator_SubscribersSeeTerminalSnapshot(t *testing.T) {
	f := newOrchestratorFixture()
	f.withCourses(models.Course{ID: "c1", Name: "Algebra"})

	var mu sync.Mutex
	var snapshots []models.SyncSnapshot
	cancel := f.orchestrator.Subscribe(func(snap models.SyncSnapshot) {
		mu.Lock()
		snapshots = append(snapshots, snap)
		mu.Unlock()
	})
	defer cancel()

	require.NoError(t, f.orchestrator.SyncAll(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, snapshots)

	first := snapshots[0]
	assert.True(t, first.IsSyncing)

	last := snapshots[len(snapshots)-1]
	assert.False(t, last.IsSyncing)
	assert.Equal(t, 1.0, last.Progress)
	assert.Equal(t, models.StatusCompleted, last.CourseStates["c1"].Status)
}

func TestOrchestrator_RestoresPersistedGlobalSyncTime(t *testing.T) {
	store := newFakeStore()
	stamp := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	require.NoError(t, store.Put(context.Background(), "sync/last_global", stamp))

	courseManager := NewCourseManager(newStubSource[models.Course](), logger.Nop())
	materialManager := NewMaterialManager(newStubSource[models.Material](), nil, logger.Nop())
	o := NewSyncOrchestrator(courseManager, materialManager, store, logger.Nop())

	snap := o.Snapshot()
	require.NotNil(t, snap.LastGlobalSyncTime)
	assert.True(t, stamp.Equal(*snap.LastGlobalSyncTime))
}

func TestOrchestrator_ClearError(t *testing.T) {
	f := newOrchestratorFixture()
	f.courses.freshErr[CourseListScope] = adapter.ErrNetwork
	require.Error(t, f.orchestrator.SyncAll(context.Background()))
	require.NotNil(t, f.orchestrator.LastError())

	f.orchestrator.ClearError()
	assert.Nil(t, f.orchestrator.LastError())
	assert.Empty(t, f.orchestrator.Snapshot().LastError)
}

func TestSyncAll_SkipsCourseOwnedByRunningSyncOne(t *testing.T) {
	f := newOrchestratorFixture()
	f.withCourses(
		models.Course{ID: "c1", Name: "Algebra"},
		models.Course{ID: "c2", Name: "Calculus"},
	)

	// Pretend a SyncOne currently owns c1's in-flight slot.
	require.True(t, f.orchestrator.tryAcquire("c1"))
	defer f.orchestrator.release("c1")

	require.NoError(t, f.orchestrator.SyncAll(context.Background()))

	// c1's materials were never fetched by the full run, c2's were.
	assert.Equal(t, 0, f.materials.calls("c1"))
	assert.Equal(t, 1, f.materials.calls("c2"))
}
