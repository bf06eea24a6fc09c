package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dtnitsch/sumz/internal/controller"
)

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller, changes <-chan struct{}) error {
	p := tea.NewProgram(New(ctx, ctrl, changes), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
