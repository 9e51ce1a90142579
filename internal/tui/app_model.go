// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/internal/service"
	"github.com/ayudin/go-course-keeper/models"
)

type screen int

const (
	screenLogin screen = iota
	screenCourses
	screenMaterials
	screenDetail
	screenSync
)

const statusClearDelay = 4 * time.Second

type appModel struct {
	services *service.ClientServices
	logger   *logger.Logger

	screen    screen
	login     loginModel
	courses   coursesModel
	materials materialsModel
	detail    detailModel
	sync      syncModel

	user models.User
}

func newAppModel(services *service.ClientServices, restored *models.User, log *logger.Logger) appModel {
	m := appModel{
		services:  services,
		logger:    log,
		login:     newLoginModel(),
		materials: newMaterialsModel(),
		sync:      newSyncModel(),
	}
	m.sync.snapshot = services.Orchestrator.Snapshot()
	if restored != nil {
		m.user = *restored
		m.screen = screenCourses
		m.courses.loading = true
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.screen == screenCourses {
		return tea.Batch(m.loadCoursesCmd(false), m.sync.spinner.Tick)
	}
	return tea.Batch(m.login.login.Focus(), m.sync.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.err = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.screen = screenCourses
		m.courses.loading = true
		return m, m.loadCoursesCmd(false)
	case coursesLoadedMsg:
		m.courses.loading = false
		m.courses.items = m.services.Courses.Courses()
		m.courses.clampIdx()
		if msg.err != nil {
			m.courses.status = errorStyle.Render(msg.err.Error())
			return m, m.clearStatusCmd()
		}
		return m, nil
	case materialsLoadedMsg:
		if msg.courseID != m.materials.course.ID {
			return m, nil
		}
		m.materials.loading = false
		m.refreshMaterialList()
		if msg.err != nil {
			m.materials.status = errorStyle.Render(msg.err.Error())
			return m, m.clearStatusCmd()
		}
		return m, nil
	case refreshDoneMsg:
		if msg.courseID != m.materials.course.ID {
			return m, nil
		}
		m.materials.loading = false
		if msg.err != nil {
			m.materials.status = errorStyle.Render(msg.err.Error())
		} else {
			m.refreshMaterialList()
			m.materials.status = fmt.Sprintf("%d new, refreshed in %dms", msg.outcome.NewCount, msg.outcome.ProcessingTime)
		}
		return m, m.clearStatusCmd()
	case syncSnapshotMsg:
		m.sync.snapshot = msg.snapshot
		if m.screen == screenCourses && !msg.snapshot.IsSyncing {
			m.courses.items = m.services.Courses.Courses()
			m.courses.clampIdx()
		}
		return m, nil
	case syncAllDoneMsg:
		m.sync.snapshot = m.services.Orchestrator.Snapshot()
		return m, nil
	case downloadDoneMsg:
		if msg.err != nil {
			m.detail.status = errorStyle.Render(msg.err.Error())
		} else {
			m.detail.status = "saved to " + msg.path
		}
		return m, m.clearStatusCmd()
	case copiedMsg:
		if msg.err != nil {
			m.detail.status = errorStyle.Render("copy failed: " + msg.err.Error())
		} else {
			m.detail.status = "reference copied"
		}
		return m, m.clearStatusCmd()
	case clearStatusMsg:
		m.courses.status = ""
		m.materials.status = ""
		m.detail.status = ""
		return m, nil
	case loggedOutMsg:
		m.user = models.User{}
		m.courses = coursesModel{}
		m.materials = newMaterialsModel()
		m.login = newLoginModel()
		m.screen = screenLogin
		return m, m.login.login.Focus()
	default:
		var cmd tea.Cmd
		m.sync.spinner, cmd = m.sync.spinner.Update(msg)
		return m, cmd
	}
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search input swallows everything except its own exit keys.
	if m.screen == screenMaterials && m.materials.searching {
		switch {
		case key.Matches(msg, keys.esc):
			m.materials.searching = false
			m.materials.search.SetValue("")
			m.materials.search.Blur()
			m.refreshMaterialList()
			return m, nil
		case key.Matches(msg, keys.enter):
			m.materials.searching = false
			m.materials.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.materials.search, cmd = m.materials.search.Update(msg)
		m.refreshMaterialList()
		return m, cmd
	}

	if m.screen == screenLogin {
		return m.handleLoginKey(msg)
	}

	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	switch m.screen {
	case screenCourses:
		return m.handleCoursesKey(msg)
	case screenMaterials:
		return m.handleMaterialsKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenSync:
		return m.handleSyncKey(msg)
	}
	return m, nil
}

func (m appModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.login.focusNext()
		return m, nil
	case "enter":
		if m.login.submitting {
			return m, nil
		}
		m.login.submitting = true
		m.login.err = ""
		return m, m.loginCmd(m.login.login.Value(), m.login.password.Value())
	}

	var cmd tea.Cmd
	if m.login.focusIdx == 0 {
		m.login.login, cmd = m.login.login.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleCoursesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		m.courses.moveUp()
	case key.Matches(msg, keys.down):
		m.courses.moveDown()
	case key.Matches(msg, keys.enter):
		course, ok := m.courses.selected()
		if !ok {
			return m, nil
		}
		m.materials = newMaterialsModel()
		m.materials.course = course
		m.materials.loading = true
		m.screen = screenMaterials
		return m, m.loadMaterialsCmd(course.ID, false)
	case key.Matches(msg, keys.refresh):
		m.courses.loading = true
		return m, m.loadCoursesCmd(true)
	case key.Matches(msg, keys.syncOne):
		course, ok := m.courses.selected()
		if !ok {
			return m, nil
		}
		m.screen = screenSync
		return m, m.syncOneCmd(course.ID)
	case key.Matches(msg, keys.syncAll):
		m.screen = screenSync
		return m, m.syncAllCmd()
	case key.Matches(msg, keys.logout):
		return m, m.logoutCmd()
	}
	return m, nil
}

func (m appModel) handleMaterialsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		m.materials.moveUp()
	case key.Matches(msg, keys.down):
		m.materials.moveDown()
	case key.Matches(msg, keys.esc):
		m.screen = screenCourses
	case key.Matches(msg, keys.enter):
		mat, ok := m.materials.selected()
		if !ok {
			return m, nil
		}
		m.detail = detailModel{material: mat}
		m.screen = screenDetail
	case key.Matches(msg, keys.search):
		m.materials.searching = true
		return m, m.materials.search.Focus()
	case key.Matches(msg, keys.sortOrder):
		m.materials.cycleSort()
		m.refreshMaterialList()
	case key.Matches(msg, keys.important):
		m.materials.important = !m.materials.important
		m.refreshMaterialList()
	case key.Matches(msg, keys.refresh):
		m.materials.loading = true
		return m, m.refreshMaterialsCmd(m.materials.course.ID)
	}
	return m, nil
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		m.detail.moveUp()
	case key.Matches(msg, keys.down):
		m.detail.moveDown()
	case key.Matches(msg, keys.esc):
		m.screen = screenMaterials
		m.refreshMaterialList()
	case key.Matches(msg, keys.download):
		att, ok := m.detail.selectedAttachment()
		if !ok {
			return m, nil
		}
		m.detail.status = "downloading " + att.Filename + "..."
		return m, m.downloadCmd(att.DownloadRef)
	case key.Matches(msg, keys.copyRef):
		att, ok := m.detail.selectedAttachment()
		if !ok {
			return m, nil
		}
		return m, copyRefCmd(att.DownloadRef)
	}
	return m, nil
}

func (m appModel) handleSyncKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.services.Orchestrator.ClearError()
		m.screen = screenCourses
		m.courses.items = m.services.Courses.Courses()
		m.courses.clampIdx()
	case key.Matches(msg, keys.syncAll):
		return m, m.syncAllCmd()
	}
	return m, nil
}

// refreshMaterialList recomputes the visible projection from the manager's
// current set and the screen's filter state.
func (m *appModel) refreshMaterialList() {
	m.materials.items = m.services.Materials.Filtered(m.materials.course.ID, m.materials.query())
	m.materials.clampIdx()
}

func (m appModel) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.login.View()
	case screenCourses:
		body = m.courses.View()
	case screenMaterials:
		body = m.materials.View()
	case screenDetail:
		body = m.detail.View()
	case screenSync:
		body = m.sync.View()
	}
	return appStyle.Render(body)
}

func (m appModel) loginCmd(login, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.services.Auth.Login(context.Background(), login, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m appModel) loadCoursesCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		err := m.services.Courses.Load(context.Background(), force)
		return coursesLoadedMsg{err: err}
	}
}

func (m appModel) loadMaterialsCmd(courseID string, force bool) tea.Cmd {
	return func() tea.Msg {
		err := m.services.Materials.Load(context.Background(), courseID, force)
		return materialsLoadedMsg{courseID: courseID, err: err}
	}
}

func (m appModel) refreshMaterialsCmd(courseID string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.services.Materials.RefreshWithStatus(context.Background(), courseID)
		return refreshDoneMsg{courseID: courseID, outcome: outcome, err: err}
	}
}

func (m appModel) syncAllCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.services.Orchestrator.SyncAll(context.Background())
		return syncAllDoneMsg{err: err}
	}
}

func (m appModel) syncOneCmd(courseID string) tea.Cmd {
	return func() tea.Msg {
		err := m.services.Orchestrator.SyncOne(context.Background(), courseID)
		return syncAllDoneMsg{err: err}
	}
}

func (m appModel) downloadCmd(downloadRef string) tea.Cmd {
	return func() tea.Msg {
		path, err := m.services.Materials.DownloadAttachment(context.Background(), downloadRef)
		return downloadDoneMsg{path: path, err: err}
	}
}

// logoutCmd drops the session and evicts every cached collection so the
// next account starts from a clean local state.
func (m appModel) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		m.services.Auth.Logout(ctx)
		if err := m.services.Courses.EvictCache(ctx); err != nil {
			m.logger.Warn().Err(err).Msg("course cache eviction on logout failed")
		}
		if err := m.services.Materials.EvictAllCache(ctx); err != nil {
			m.logger.Warn().Err(err).Msg("material cache eviction on logout failed")
		}
		return loggedOutMsg{}
	}
}

func copyRefCmd(downloadRef string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(downloadRef)}
	}
}

func (m appModel) clearStatusCmd() tea.Cmd {
	return tea.Tick(statusClearDelay, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
