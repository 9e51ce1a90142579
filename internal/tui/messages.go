package tui

import (
	"github.com/ayudin/go-course-keeper/models"
)

// Messages delivered into the bubbletea update loop by async commands
// and by the orchestrator's state subscription.

type loginDoneMsg struct {
	user models.User
	err  error
}

type coursesLoadedMsg struct {
	err error
}

type materialsLoadedMsg struct {
	courseID string
	err      error
}

type refreshDoneMsg struct {
	courseID string
	outcome  models.RefreshOutcome
	err      error
}

type syncSnapshotMsg struct {
	snapshot models.SyncSnapshot
}

type syncAllDoneMsg struct{ err error }

type downloadDoneMsg struct {
	path string
	err  error
}

type copiedMsg struct{ err error }

type loggedOutMsg struct{}

type clearStatusMsg struct{}
