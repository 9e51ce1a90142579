// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ayudin/go-course-keeper/internal/cache"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/internal/repository"
	"github.com/ayudin/go-course-keeper/internal/state"
	"github.com/ayudin/go-course-keeper/models"
)

const (
	lastGlobalSyncKey = repository.NamespaceSync + "/last_global"

	idleStatus     = "idle"
	completeStatus = "sync complete"

	// courseListShare is how much of the progress bar the course-list
	// refresh accounts for; the per-course loop fills the rest.
	courseListShare = 0.2

	defaultStatusRevertDelay = 3 * time.Second
)

// SyncOrchestrator drives a full synchronization across all courses. It
// owns the global sync state, the per-course sync state records, and the
// in-flight guard shared by SyncAll and SyncOne. One mutex serializes
// every state transition; network fetches happen outside the lock.
type SyncOrchestrator struct {
	courses   *CourseManager
	materials *MaterialManager
	store     cache.Store
	broadcast *state.Broadcaster[models.SyncSnapshot]
	logger    *logger.Logger

	mu             sync.Mutex
	isSyncing      bool
	progress       float64
	statusMessage  string
	lastGlobalSync *time.Time
	lastError      *ClassifiedError
	courseStates   map[string]models.CourseSyncState
	active         map[string]struct{}

	// revertGen invalidates scheduled status reverts: a revert fires
	// only if no newer status change happened since it was scheduled.
	revertGen   int
	revertDelay time.Duration

	now func() time.Time
}

// NewSyncOrchestrator builds the orchestrator and restores the persisted
// last-global-sync timestamp from the cache store.
func NewSyncOrchestrator(courses *CourseManager, materials *MaterialManager, store cache.Store, log *logger.Logger) *SyncOrchestrator {
	o := &SyncOrchestrator{
		courses:       courses,
		materials:     materials,
		store:         store,
		broadcast:     state.NewBroadcaster[models.SyncSnapshot](),
		logger:        log,
		statusMessage: idleStatus,
		courseStates:  make(map[string]models.CourseSyncState),
		active:        make(map[string]struct{}),
		revertDelay:   defaultStatusRevertDelay,
		now:           time.Now,
	}

	var persisted time.Time
	if found, err := store.Get(context.Background(), lastGlobalSyncKey, &persisted); err == nil && found {
		o.lastGlobalSync = &persisted
	}

	return o
}

// Subscribe registers fn to receive a snapshot of the global sync state
// on every mutation, delivered before the mutating call returns.
func (o *SyncOrchestrator) Subscribe(fn func(models.SyncSnapshot)) (cancel func()) {
	return o.broadcast.Subscribe(fn)
}

// Snapshot returns a copy of the current global sync state.
func (o *SyncOrchestrator) Snapshot() models.SyncSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// CourseSyncStates returns a copy of the per-course state records of the
// current (or last) run.
func (o *SyncOrchestrator) CourseSyncStates() map[string]models.CourseSyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	states := make(map[string]models.CourseSyncState, len(o.courseStates))
	for id, st := range o.courseStates {
		states[id] = st
	}
	return states
}

// LastError returns the classified global error of the last run, nil
// when it completed.
func (o *SyncOrchestrator) LastError() *ClassifiedError {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

// ClearError resets the recorded global error.
func (o *SyncOrchestrator) ClearError() {
	o.mu.Lock()
	o.lastError = nil
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.broadcast.Publish(snap)
}

// SyncAll runs a full synchronization: course list first, then every
// course's materials in sequence. A per-course failure is recorded in
// that course's state and never stops the loop. Calling SyncAll while a
// run is in progress is a no-op.
func (o *SyncOrchestrator) SyncAll(ctx context.Context) error {
	o.mu.Lock()
	if o.isSyncing {
		o.mu.Unlock()
		o.logger.Debug().Msg("sync already in progress, ignoring")
		return nil
	}
	o.isSyncing = true
	o.progress = 0
	o.lastError = nil
	o.statusMessage = "refreshing course list"
	o.courseStates = make(map[string]models.CourseSyncState)
	o.revertGen++
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.broadcast.Publish(snap)

	if err := o.courses.Refresh(ctx); err != nil {
		return o.failRun(classify(err))
	}

	courses := o.courses.Courses()
	if len(courses) == 0 {
		return o.failRun(classify(ErrNoCoursesToSync))
	}

	total := len(courses)
	for i, course := range courses {
		o.setProgress(
			courseListShare+(1-courseListShare)*float64(i)/float64(total),
			fmt.Sprintf("syncing %s (%d/%d)", course.Name, i+1, total),
		)
		o.syncCourse(ctx, course)
	}

	completedAt := o.now()
	if err := o.store.Put(ctx, lastGlobalSyncKey, completedAt); err != nil {
		o.logger.Err(err).Msg("failed to persist last global sync time")
	}

	o.mu.Lock()
	o.progress = 1.0
	o.lastGlobalSync = &completedAt
	o.statusMessage = completeStatus
	o.isSyncing = false
	gen := o.revertGen
	snap = o.snapshotLocked()
	o.mu.Unlock()
	o.broadcast.Publish(snap)

	o.scheduleStatusRevert(gen)
	o.logger.Info().Int("courses", total).Msg("full sync finished")
	return nil
}

// SyncOne synchronizes a single course's materials, independent of
// SyncAll. A second call for the same course while one is in flight is
// rejected as a no-op; the per-course state record is shared with
// SyncAll so observers of either path see consistent state.
func (o *SyncOrchestrator) SyncOne(ctx context.Context, courseID string) error {
	course, ok := o.courses.GetByID(courseID)
	if !ok {
		// Course may have been removed server-side; sync it anyway and
		// let the material refresh decide the outcome.
		course = models.Course{ID: courseID, Name: courseID}
	}

	if !o.tryAcquire(courseID) {
		o.logger.Debug().Str("course_id", courseID).Msg("course sync already in flight, ignoring")
		return nil
	}
	defer o.release(courseID)

	return o.runCourse(ctx, course)
}

// ActiveSyncs returns the ids of courses with a sync currently in
// flight.
func (o *SyncOrchestrator) ActiveSyncs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	ids := make([]string, 0, len(o.active))
	for id := range o.active {
		ids = append(ids, id)
	}
	return ids
}

// syncCourse is the SyncAll per-course step: it honors the shared
// in-flight guard (a SyncOne already running the course keeps ownership
// of its state record) and never propagates the outcome.
func (o *SyncOrchestrator) syncCourse(ctx context.Context, course models.Course) {
	if !o.tryAcquire(course.ID) {
		o.logger.Debug().Str("course_id", course.ID).Msg("course already syncing, skipped in full run")
		return
	}
	defer o.release(course.ID)

	_ = o.runCourse(ctx, course)
}

// runCourse performs one course's material refresh and records the state
// transitions. The caller must hold the in-flight slot for the course.
func (o *SyncOrchestrator) runCourse(ctx context.Context, course models.Course) error {
	o.setCourseState(models.CourseSyncState{
		CourseID:   course.ID,
		CourseName: course.Name,
		Status:     models.StatusSyncing,
		StartTime:  o.now(),
	})

	err := o.materials.Refresh(ctx, course.ID)

	o.mu.Lock()
	st := o.courseStates[course.ID]
	completed := o.now()
	st.CompletionTime = &completed
	if err != nil {
		st.Status = models.StatusFailed
		st.FailureReason = classify(err).Message
	} else {
		st.Status = models.StatusCompleted
		st.FailureReason = ""
	}
	o.courseStates[course.ID] = st
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.broadcast.Publish(snap)

	if err != nil {
		o.logger.Warn().Err(err).Str("course_id", course.ID).Msg("course sync failed")
		return err
	}
	return nil
}

// failRun aborts a started run before the course loop: the global error
// is set, the loop skipped, and lastGlobalSyncTime left unchanged.
func (o *SyncOrchestrator) failRun(classified *ClassifiedError) error {
	o.mu.Lock()
	o.lastError = classified
	o.statusMessage = classified.Message
	o.isSyncing = false
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.broadcast.Publish(snap)

	o.logger.Warn().Str("kind", string(classified.Kind)).Msg("full sync aborted")
	return classified
}

func (o *SyncOrchestrator) setProgress(progress float64, message string) {
	o.mu.Lock()
	o.progress = progress
	o.statusMessage = message
	o.revertGen++
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.broadcast.Publish(snap)
}

func (o *SyncOrchestrator) setCourseState(st models.CourseSyncState) {
	o.mu.Lock()
	o.courseStates[st.CourseID] = st
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.broadcast.Publish(snap)
}

func (o *SyncOrchestrator) tryAcquire(courseID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, inFlight := o.active[courseID]; inFlight {
		return false
	}
	o.active[courseID] = struct{}{}
	return true
}

func (o *SyncOrchestrator) release(courseID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.active, courseID)
}

// scheduleStatusRevert arms the delayed revert of the transient
// "complete" status back to idle. The generation check discards the
// revert when a newer sync has changed the status in the meantime.
func (o *SyncOrchestrator) scheduleStatusRevert(gen int) {
	time.AfterFunc(o.revertDelay, func() {
		o.mu.Lock()
		if gen != o.revertGen || o.isSyncing {
			o.mu.Unlock()
			return
		}
		o.statusMessage = idleStatus
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.broadcast.Publish(snap)
	})
}

// snapshotLocked builds a read-only copy of the global state. Caller
// must hold o.mu.
func (o *SyncOrchestrator) snapshotLocked() models.SyncSnapshot {
	states := make(map[string]models.CourseSyncState, len(o.courseStates))
	for id, st := range o.courseStates {
		states[id] = st
	}

	snap := models.SyncSnapshot{
		IsSyncing:     o.isSyncing,
		Progress:      o.progress,
		StatusMessage: o.statusMessage,
		CourseStates:  states,
	}
	if o.lastGlobalSync != nil {
		t := *o.lastGlobalSync
		snap.LastGlobalSyncTime = &t
	}
	if o.lastError != nil {
		snap.LastError = o.lastError.Message
	}
	return snap
}
