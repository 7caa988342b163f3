package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/keyring"
	"github.com/foundersandcoders/lift/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check the OS keyring." default:"1"`
}

func secret(name string) keyring.Secret {
	if name == "api-token" {
		return keyring.APIToken
	}
	return keyring.ConnectionString
}

type KeyringSetCmd struct {
	Name  string `arg:"" enum:"connection-string,api-token" help:"Secret to store (connection-string or api-token)."`
	Value string `arg:"" help:"Secret value."`
}

func (c *KeyringSetCmd) Run(ctx *cli.Context) error {
	if c.Name == "connection-string" {
		if !postgres.IsConnString(c.Value) && !strings.Contains(c.Value, "host=") {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		err := postgres.ValidateConnString(c.Value)
		switch {
		case errors.Is(err, postgres.ErrEmbeddedCredentials):
			ctx.Println("Note: the connection string contains a password; it is stored as-is in the OS keyring.")
		case err != nil:
			return fmt.Errorf("invalid connection string: %w", err)
		}
	}
	if err := secret(c.Name).Set(c.Value); err != nil {
		return err
	}
	ctx.Printf("Stored %s in the OS keyring\n", c.Name)
	return nil
}

type KeyringDeleteCmd struct {
	Name string `arg:"" enum:"connection-string,api-token" help:"Secret to remove (connection-string or api-token)."`
}

func (c *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := secret(c.Name).Delete(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", c.Name)
		}
		return err
	}
	ctx.Printf("Deleted %s from the OS keyring\n", c.Name)
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("OS keyring is available")
	for _, name := range []string{"connection-string", "api-token"} {
		state := "not stored"
		if secret(name).Lookup() != "" {
			state = "stored"
		}
		ctx.Printf("  %-18s %s\n", name, state)
	}
	return nil
}
