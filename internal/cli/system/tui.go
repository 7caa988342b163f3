package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/config"
	"github.com/foundersandcoders/lift/internal/lockfile"
	"github.com/foundersandcoders/lift/internal/logger"
	"github.com/foundersandcoders/lift/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return session(ctx, func() error {
		model := tui.NewModel(ctx)
		defer model.Close()

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui exited: %w", err)
		}
		return nil
	})
}

// session runs an interactive session under the session lock. Pending
// writes land before the lock is released.
func session(ctx *cli.Context, run func() error) error {
	lock, err := lockfile.Acquire(config.Dir())
	if err != nil {
		return err
	}
	defer func() {
		ctx.Syncer.Wait()
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release session lock", "error", err)
		}
	}()

	if err := ctx.Open(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	return run()
}
