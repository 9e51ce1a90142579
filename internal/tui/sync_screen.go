package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/ayudin/go-course-keeper/models"
)

type syncModel struct {
	snapshot models.SyncSnapshot
	spinner  spinner.Model
	progress progress.Model
}

func newSyncModel() syncModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return syncModel{
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m syncModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sync"))
	b.WriteString("\n\n")

	snap := m.snapshot
	if snap.IsSyncing {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(snap.StatusMessage)
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(snap.Progress))
	b.WriteString("\n\n")

	if snap.LastGlobalSyncTime != nil {
		b.WriteString(helpStyle.Render("last full sync: " + snap.LastGlobalSyncTime.Format("2006-01-02 15:04:05")))
		b.WriteString("\n")
	}
	if snap.LastError != "" {
		b.WriteString(errorStyle.Render(snap.LastError))
		b.WriteString("\n")
	}

	if len(snap.CourseStates) > 0 {
		b.WriteString("\n")
		ids := make([]string, 0, len(snap.CourseStates))
		for id := range snap.CourseStates {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			st := snap.CourseStates[id]
			b.WriteString(renderCourseState(st))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("S: sync all · esc: back"))
	return b.String()
}

func renderCourseState(st models.CourseSyncState) string {
	name := st.CourseName
	if name == "" {
		name = st.CourseID
	}
	switch st.Status {
	case models.StatusCompleted:
		return fmt.Sprintf("  %s %s (%s)", completedStyle.Render("ok"), name, st.Duration().Round(10*time.Millisecond))
	case models.StatusFailed:
		return fmt.Sprintf("  %s %s: %s", failedStyle.Render("fail"), name, st.FailureReason)
	case models.StatusSyncing:
		return fmt.Sprintf("  ...  %s", name)
	default:
		return fmt.Sprintf("  -    %s", name)
	}
}
