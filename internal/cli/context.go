// Package cli holds the state shared by every lift command.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/foundersandcoders/lift/internal/backup"
	"github.com/foundersandcoders/lift/internal/config"
	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/logger"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/questions"
	"github.com/foundersandcoders/lift/internal/remote"
	"github.com/foundersandcoders/lift/internal/statements"
	"github.com/foundersandcoders/lift/internal/storage"
	"github.com/foundersandcoders/lift/internal/store"
	"github.com/foundersandcoders/lift/internal/syncer"
	"github.com/foundersandcoders/lift/internal/taxonomy"
	"github.com/foundersandcoders/lift/internal/wizard"
)

type Context struct {
	Store      storage.Provider
	Config     config.Config
	ConfigPath string
	Taxonomy   *taxonomy.Taxonomy
	Remote     *remote.Client // nil without an API URL
	Out        io.Writer
	ErrOut     io.Writer

	// Set by Open.
	State     *store.Store
	Syncer    *syncer.Syncer
	Questions *questions.Catalog
}

// Open loads the provider and hydrates the in-memory store from it.
func (c *Context) Open() error {
	if c.State != nil {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}

	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if c.Config.Username != "" {
		settings.Username = c.Config.Username
	}
	if c.Config.Email != "" {
		settings.UserEmail = c.Config.Email
	}

	entries, err := c.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to load statements: %w", err)
	}

	c.State = store.New(store.Snapshot{
		Username:     settings.Username,
		UserEmail:    settings.UserEmail,
		ManagerName:  settings.ManagerName,
		ManagerEmail: settings.ManagerEmail,
	})
	c.State.SeedDefaults(entries)

	c.Syncer = syncer.New(syncer.Local(c.Store), c.Config.Policy())
	if c.Remote != nil {
		c.Syncer.Mirror("remote", c.Remote)
	}

	c.Questions = questions.NewCatalog(c.Taxonomy.Questions)
	c.Questions.Snooze(settings.SnoozedQuestions)
	c.Questions.Sync(entries)

	logger.Debug("opened statements", "count", len(entries), "storage", c.Store.GetConfigPath())
	return nil
}

func (c *Context) Statements() *statements.Service {
	var gratitude statements.Gratitude
	if c.Remote != nil {
		gratitude = c.Remote
	}
	return statements.New(statements.Options{
		Store:            c.State,
		Syncer:           c.Syncer,
		Gratitude:        gratitude,
		OnPresetReleased: c.Questions.Release,
	})
}

func (c *Context) Wizard(preset *models.SetQuestion) *wizard.Wizard {
	opts := wizard.Options{
		Taxonomy:       c.Taxonomy,
		Store:          c.State,
		Syncer:         c.Syncer,
		Preset:         preset,
		TransitionLock: c.Config.TransitionLock(),
	}
	if preset != nil {
		opts.OnComplete = func(e models.Entry) { c.Questions.MarkUsed(e.PresetID) }
	}
	return wizard.New(opts)
}

// SaveSettings persists the identity held in the store plus snoozed
// questions.
func (c *Context) SaveSettings() error {
	settings := c.State.State().Settings()
	settings.SnoozedQuestions = c.Questions.SnoozedIDs()
	return c.Store.SaveSettings(settings)
}

// Entry finds a statement by id or unique id prefix.
func (c *Context) Entry(ref string) (models.Entry, error) {
	if e, ok := c.State.Entry(ref); ok {
		return e, nil
	}
	var match *models.Entry
	for _, e := range c.State.State().Entries {
		if !strings.HasPrefix(e.ID, ref) {
			continue
		}
		if match != nil {
			return models.Entry{}, fmt.Errorf("statement id %q is ambiguous", ref)
		}
		m := e
		match = &m
	}
	if match == nil || ref == "" {
		return models.Entry{}, lifterrors.NotFound("statement", ref)
	}
	return *match, nil
}

// Flush waits for pending persistence calls and reports the ones that failed.
func (c *Context) Flush() {
	c.Syncer.Wait()
	for _, f := range c.Syncer.Unsynced() {
		lifterrors.Warn(c.errOut(), "%s of statement %s not saved to %s: %v", f.Op, f.EntryID, f.Backend, f.Err)
	}
}

// Close flushes pending work and closes the provider.
func (c *Context) Close() error {
	c.Flush()
	return c.Store.Close()
}

// PerformAutomaticBackup backs up a SQLite database, logging failures.
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) errOut() io.Writer {
	if c.ErrOut != nil {
		return c.ErrOut
	}
	return os.Stderr
}
