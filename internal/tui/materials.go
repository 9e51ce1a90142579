package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ayudin/go-course-keeper/models"
)

// sortCycle is the order in which the "o" key steps through sort modes.
var sortCycle = []models.SortOrder{
	models.SortPostedDesc,
	models.SortPostedAsc,
	models.SortTitleAsc,
	models.SortTitleDesc,
	models.SortImportantFirst,
}

type materialsModel struct {
	course  models.Course
	items   []models.Material
	idx     int
	loading bool
	status  string

	searching bool
	search    textinput.Model
	sortIdx   int
	important bool
}

func newMaterialsModel() materialsModel {
	search := textinput.New()
	search.Placeholder = "search"
	return materialsModel{search: search}
}

func (m *materialsModel) query() models.MaterialQuery {
	return models.MaterialQuery{
		SearchText:    m.search.Value(),
		Sort:          sortCycle[m.sortIdx],
		ImportantOnly: m.important,
	}
}

func (m *materialsModel) cycleSort() {
	m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
}

func (m *materialsModel) moveUp() {
	if m.idx > 0 {
		m.idx--
	}
}

func (m *materialsModel) moveDown() {
	if m.idx < len(m.items)-1 {
		m.idx++
	}
}

func (m *materialsModel) selected() (models.Material, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.Material{}, false
	}
	return m.items[m.idx], true
}

func (m *materialsModel) clampIdx() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m materialsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.course.Code + " materials"))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	filters := fmt.Sprintf("sort: %s", sortCycle[m.sortIdx])
	if m.important {
		filters += " · important only"
	}
	if q := m.search.Value(); q != "" && !m.searching {
		filters += " · filter: " + q
	}
	b.WriteString(helpStyle.Render(filters))
	b.WriteString("\n\n")

	if m.loading && len(m.items) == 0 {
		b.WriteString("loading...\n")
	}
	if !m.loading && len(m.items) == 0 {
		b.WriteString(staleStyle.Render("no materials"))
		b.WriteString("\n")
	}

	for i, mat := range m.items {
		marker := "  "
		if mat.IsImportant {
			marker = importantStyle.Render("! ")
		}
		line := fmt.Sprintf("%s%s  %s", marker, mat.PostedAt.Format("2006-01-02"), mat.Title)
		if len(mat.Attachments) > 0 {
			line += helpStyle.Render(fmt.Sprintf("  [%d]", len(mat.Attachments)))
		}
		if mat.ReplacedBy != "" {
			line += staleStyle.Render("  superseded")
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
	b.WriteString(helpStyle.Render("enter: detail · /: search · o: sort · i: important · r: refresh · esc: back"))
	return b.String()
}
