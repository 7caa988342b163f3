package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/config"
	"github.com/foundersandcoders/lift/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*postgres.Store); ok {
			return errors.New("--force is only supported for SQLite storage")
		}
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized lift storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.Config.Username != "" || ctx.Config.Email != "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		if ctx.Config.Username != "" {
			settings.Username = ctx.Config.Username
		}
		if ctx.Config.Email != "" {
			settings.UserEmail = ctx.Config.Email
		}
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return err
		}
	}

	if ctx.ConfigPath == "" {
		return nil
	}
	switch err := config.Write(ctx.ConfigPath, config.Default()); {
	case err == nil:
		ctx.Printf("Wrote default configuration to: %s\n", ctx.ConfigPath)
	case errors.Is(err, os.ErrExist):
	default:
		return err
	}
	return nil
}
