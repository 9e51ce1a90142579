package models

import "time"

// SyncStatus is the per-course sync state machine. Terminal states are
// StatusCompleted and StatusFailed; they are not reopened within a run.
type SyncStatus string

const (
	StatusPending   SyncStatus = "pending"
	StatusSyncing   SyncStatus = "syncing"
	StatusCompleted SyncStatus = "completed"
	StatusFailed    SyncStatus = "failed"
)

// CourseSyncState records the outcome of one course within a sync attempt.
// It is owned by the sync orchestrator and overwritten wholesale on every
// status transition, so readers must re-fetch rather than hold a reference.
type CourseSyncState struct {
	CourseID string `json:"course_id"`

	// CourseName is a display-only snapshot taken when the course entered
	// the run, not a foreign key.
	CourseName string `json:"course_name"`

	Status SyncStatus `json:"status"`

	// FailureReason holds the classified human-readable reason when
	// Status is StatusFailed; empty otherwise.
	FailureReason string `json:"failure_reason,omitempty"`

	StartTime      time.Time  `json:"start_time"`
	CompletionTime *time.Time `json:"completion_time,omitempty"`
}

// Duration returns the elapsed time between start and completion, or zero
// while the course is still syncing.
func (s CourseSyncState) Duration() time.Duration {
	if s.CompletionTime == nil {
		return 0
	}
	return s.CompletionTime.Sub(s.StartTime)
}

// RefreshOutcome carries the entity set returned by an explicit
// "refresh now" call together with the server-reported refresh metadata.
type RefreshOutcome struct {
	// Materials is the full refreshed per-course material set.
	Materials []Material `json:"materials"`

	// NewCount is the number of newly discovered items reported by the
	// server for this refresh.
	NewCount int `json:"new_count"`

	// ProcessingTime is the server-side processing duration in
	// milliseconds.
	ProcessingTime int64 `json:"processing_time_ms"`
}

// SyncSnapshot is the read-only view of the orchestrator's global state
// published to observers on every mutation.
type SyncSnapshot struct {
	IsSyncing          bool
	Progress           float64
	StatusMessage      string
	LastGlobalSyncTime *time.Time
	LastError          string

	// CourseStates maps course id to its latest per-course sync state.
	CourseStates map[string]CourseSyncState
}
