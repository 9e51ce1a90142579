package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

type loginModel struct {
	login      textinput.Model
	password   textinput.Model
	focusIdx   int
	submitting bool
	err        string
}

func newLoginModel() loginModel {
	login := textinput.New()
	login.Placeholder = "login"
	login.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return loginModel{login: login, password: password}
}

func (m *loginModel) focusNext() {
	m.focusIdx = (m.focusIdx + 1) % 2
	if m.focusIdx == 0 {
		m.login.Focus()
		m.password.Blur()
	} else {
		m.login.Blur()
		m.password.Focus()
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("course keeper: sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.login.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	if m.submitting {
		b.WriteString("signing in...\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab: switch field · enter: sign in · q: quit"))
	return b.String()
}
