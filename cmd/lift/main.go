package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/cli/actions"
	"github.com/foundersandcoders/lift/internal/cli/backups"
	"github.com/foundersandcoders/lift/internal/cli/entries"
	"github.com/foundersandcoders/lift/internal/cli/questions"
	"github.com/foundersandcoders/lift/internal/cli/system"
	"github.com/foundersandcoders/lift/internal/config"
	"github.com/foundersandcoders/lift/internal/constants"
	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/keyring"
	"github.com/foundersandcoders/lift/internal/logger"
	"github.com/foundersandcoders/lift/internal/remote"
	"github.com/foundersandcoders/lift/internal/storage"
	"github.com/foundersandcoders/lift/internal/storage/postgres"
	"github.com/foundersandcoders/lift/internal/storage/sqlite"
	"github.com/foundersandcoders/lift/internal/taxonomy"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Path to the TOML configuration file." type:"path" placeholder:"FILE"`
	DB       string `name:"db" env:"LIFT_DB" help:"SQLite database path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the keyring, PGPASSWORD or .pgpass."`
	Catalog  string `type:"existingdir" env:"LIFT_CATALOG" help:"Directory with a catalog overriding the built-in categories, verbs and questions."`
	APIURL   string `name:"api-url" env:"LIFT_API_URL" help:"Base URL of the statements API mirrored on every change."`
	Username string `env:"LIFT_USERNAME" help:"Your name, used as the default subject."`
	Email    string `env:"LIFT_EMAIL" help:"Your email address."`
	Debug    bool   `env:"LIFT_DEBUG" help:"Verbose logging, copied to stderr."`

	Init    system.InitCmd     `cmd:"" help:"Initialize lift storage."`
	Tui     system.TuiCmd      `cmd:"" help:"Launch the interactive statement builder." default:"1"`
	Add     entries.AddCmd     `cmd:"" help:"Write a statement."`
	List    entries.ListCmd    `cmd:"" help:"List statements by category."`
	Show    entries.ShowCmd    `cmd:"" help:"Show a statement and its actions."`
	Edit    entries.EditCmd    `cmd:"" help:"Edit a statement."`
	Delete  entries.DeleteCmd  `cmd:"" help:"Delete a statement."`
	Reset   entries.ResetCmd   `cmd:"" help:"Remove a question's answer so it can be answered again."`
	Resolve entries.ResolveCmd `cmd:"" help:"Mark a statement resolved, or reopen it."`
	Share   entries.ShareCmd   `cmd:"" help:"Print your shared statements for your manager."`

	Action     actions.ActionCmd     `cmd:"" help:"Manage the actions of a statement."`
	Question   questions.QuestionCmd `cmd:"" help:"Browse and snooze preset questions."`
	Categories system.CategoriesCmd  `cmd:"" help:"Show the category tree."`
	Verbs      system.VerbsCmd       `cmd:"" help:"List verbs, optionally for one category."`
	User       system.UserCmd        `cmd:"" help:"Manage your identity and your manager's."`
	Backup     backups.BackupCmd     `cmd:"" help:"Manage database backups."`
	Keyring    system.KeyringCmd     `cmd:"" help:"Manage secrets in the OS keyring."`
	Sync       system.SyncCmd        `cmd:"" help:"Inspect and push changes to the statements API."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Build clear statements about how you work best."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath, config.Config{
		DB:       CLI.DB,
		APIURL:   CLI.APIURL,
		Catalog:  CLI.Catalog,
		Username: CLI.Username,
		Email:    CLI.Email,
		Debug:    CLI.Debug,
	})
	if err != nil {
		lifterrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: config.Dir()}); err != nil {
		lifterrors.Warn(os.Stderr, "logging disabled: %v", err)
	}
	for _, w := range cfg.Warnings {
		lifterrors.Warn(os.Stderr, "%s", w)
		logger.Warn("config", "warning", w)
	}

	tax, err := loadTaxonomy(cfg.Catalog)
	if err != nil {
		lifterrors.Fatal(err)
	}

	provider, err := openProvider(cfg)
	if err != nil {
		lifterrors.Fatal(err)
	}

	var client *remote.Client
	if cfg.APIURL != "" {
		client, err = remote.New(cfg.APIURL, keyring.APIToken.Lookup())
		if err != nil {
			lifterrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:      provider,
		Config:     cfg,
		ConfigPath: configPath,
		Taxonomy:   tax,
		Remote:     client,
	}

	runErr := ctx.Run(appCtx)
	if err := appCtx.Close(); err != nil {
		logger.Warn("failed to close storage", "error", err)
	}
	if runErr != nil {
		lifterrors.Fatal(runErr)
	}
}

func loadTaxonomy(dir string) (*taxonomy.Taxonomy, error) {
	if dir == "" {
		return taxonomy.Default()
	}
	return taxonomy.LoadDir(dir)
}

// openProvider picks the storage backend. The keyring connection string
// is only consulted when no database was configured, and is the only
// source allowed to carry a password.
func openProvider(cfg config.Config) (storage.Provider, error) {
	db := cfg.DB
	if db == config.Default().DB {
		if connStr := keyring.ConnectionString.Lookup(); connStr != "" {
			logger.Debug("using connection string from keyring")
			return postgres.New(connStr), nil
		}
	}

	if !postgres.IsConnString(db) {
		return sqlite.NewStore(db), nil
	}
	if err := postgres.ValidateConnString(db); err != nil {
		return nil, err
	}
	return postgres.New(db), nil
}
