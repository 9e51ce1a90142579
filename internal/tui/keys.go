package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	quit      key.Binding
	syncAll   key.Binding
	syncOne   key.Binding
	refresh   key.Binding
	search    key.Binding
	sortOrder key.Binding
	important key.Binding
	copyRef   key.Binding
	download  key.Binding
	logout    key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	syncAll:   key.NewBinding(key.WithKeys("S")),
	syncOne:   key.NewBinding(key.WithKeys("s")),
	refresh:   key.NewBinding(key.WithKeys("r")),
	search:    key.NewBinding(key.WithKeys("/")),
	sortOrder: key.NewBinding(key.WithKeys("o")),
	important: key.NewBinding(key.WithKeys("i")),
	copyRef:   key.NewBinding(key.WithKeys("c")),
	download:  key.NewBinding(key.WithKeys("d")),
	logout:    key.NewBinding(key.WithKeys("L")),
}
