package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tempo/internal/ui"
)

// RunCmd starts the TUI application
type RunCmd struct{}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	model := ui.NewModel(cli.Container.Engine, cli.Container.Manual, cli.Container.Tasks)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
