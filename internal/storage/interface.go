// Package storage defines the persistence provider used by the CLI and the
// shared SQL implementation behind the sqlite and postgres providers.
package storage

import "github.com/foundersandcoders/lift/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Entries
	AddEntry(models.Entry) error
	GetEntry(id string) (models.Entry, error)
	GetAllEntries() ([]models.Entry, error)
	UpdateEntry(models.Entry) error
	DeleteEntry(id string) error

	// Utils
	GetConfigPath() string
}
