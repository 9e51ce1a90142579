// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

// Package tui is the terminal front end. It renders the managers' state
// and translates key presses into service calls; all sync/cache logic
// stays in internal/service.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/internal/service"
	"github.com/ayudin/go-course-keeper/models"
)

// TUI owns the bubbletea program lifecycle.
type TUI struct {
	services *service.ClientServices
	logger   *logger.Logger
}

func New(services *service.ClientServices, log *logger.Logger) *TUI {
	return &TUI{services: services, logger: log}
}

// Run starts the interactive session and blocks until the user quits.
// A stored session skips the login screen.
func (t *TUI) Run(ctx context.Context) error {
	var restored *models.User
	user, err := t.services.Auth.RestoreSession(ctx)
	switch {
	case err == nil:
		restored = &user
	case errors.Is(err, service.ErrNoStoredSession):
		// First start on this device, fall through to login.
	default:
		t.logger.Err(err).Msg("session restore failed")
	}

	program := tea.NewProgram(newAppModel(t.services, restored, t.logger), tea.WithAltScreen(), tea.WithContext(ctx))

	// Orchestrator state changes arrive on the syncing goroutine; Send
	// marshals them onto the update loop.
	cancel := t.services.Orchestrator.Subscribe(func(snap models.SyncSnapshot) {
		program.Send(syncSnapshotMsg{snapshot: snap})
	})
	defer cancel()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
