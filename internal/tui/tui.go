package tui

import (
	"context"

	"todos-cli/internal/controller"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive to-do screen and blocks until the user quits.
func Run(ctx context.Context, deps controller.Deps) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(ctx, deps)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
