package tui

import (
	"fmt"
	"strings"

	"github.com/ayudin/go-course-keeper/models"
)

type coursesModel struct {
	items   []models.Course
	idx     int
	loading bool
	status  string
}

func (m *coursesModel) moveUp() {
	if m.idx > 0 {
		m.idx--
	}
}

func (m *coursesModel) moveDown() {
	if m.idx < len(m.items)-1 {
		m.idx++
	}
}

func (m *coursesModel) selected() (models.Course, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.Course{}, false
	}
	return m.items[m.idx], true
}

func (m *coursesModel) clampIdx() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m coursesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("courses"))
	b.WriteString("\n\n")

	if m.loading && len(m.items) == 0 {
		b.WriteString("loading...\n")
	}
	if !m.loading && len(m.items) == 0 {
		b.WriteString(staleStyle.Render("no courses yet"))
		b.WriteString("\n")
	}

	for i, c := range m.items {
		line := fmt.Sprintf("%-10s %s", c.Code, c.Name)
		if c.Instructor != "" {
			line += helpStyle.Render("  " + c.Instructor)
		}
		if i == m.idx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: materials · s: sync course · S: sync all · r: refresh · L: logout · q: quit"))
	return b.String()
}
