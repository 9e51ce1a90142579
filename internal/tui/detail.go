package tui

import (
	"fmt"
	"strings"

	"github.com/ayudin/go-course-keeper/models"
)

type detailModel struct {
	material models.Material
	attIdx   int
	status   string
}

func (m *detailModel) moveUp() {
	if m.attIdx > 0 {
		m.attIdx--
	}
}

func (m *detailModel) moveDown() {
	if m.attIdx < len(m.material.Attachments)-1 {
		m.attIdx++
	}
}

func (m *detailModel) selectedAttachment() (models.Attachment, bool) {
	if m.attIdx < 0 || m.attIdx >= len(m.material.Attachments) {
		return models.Attachment{}, false
	}
	return m.material.Attachments[m.attIdx], true
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

func (m detailModel) View() string {
	var b strings.Builder
	mat := m.material

	title := mat.Title
	if mat.IsImportant {
		title = importantStyle.Render("! ") + title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render(fmt.Sprintf("%s · %s · v%d",
		mat.Author, mat.PostedAt.Format("2006-01-02 15:04"), mat.Version)))
	b.WriteString("\n")
	if mat.ReplacedBy != "" {
		b.WriteString(staleStyle.Render("superseded by a newer version"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(mat.Content)
	b.WriteString("\n")

	if len(mat.Attachments) > 0 {
		b.WriteString("\nattachments:\n")
		for i, att := range mat.Attachments {
			line := fmt.Sprintf("%s (%s, %s)", att.Filename, formatSize(att.Size), att.MimeType)
			if i == m.attIdx {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("d: download · c: copy ref · esc: back"))
	return b.String()
}
