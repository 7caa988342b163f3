package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/logger"
	"github.com/foundersandcoders/lift/internal/migration"
	"github.com/foundersandcoders/lift/internal/storage"
	"github.com/foundersandcoders/lift/migrations"
)

// Store is the default single-file provider.
type Store struct {
	*storage.SQL
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() error {
	// foreign keys are off by default in SQLite
	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.SQL = &storage.SQL{DB: db, Dialect: migration.SQLite}
	return nil
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if s.SQL == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.Apply(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.SQL != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	if err := s.open(); err != nil {
		return err
	}
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate()
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := migrations.SQLite()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.DB, sub, migration.SQLite), nil
}

func (s *Store) Close() error {
	if s.SQL == nil || s.DB == nil {
		return nil
	}
	err := s.DB.Close()
	s.SQL = nil
	return err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying connection, or nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	if s.SQL == nil {
		return nil
	}
	return s.DB
}
