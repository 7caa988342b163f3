package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName             = "lift"
	DefaultKeyringUser  = "database-connection"
	APITokenKeyringUser = "api-token"
	Version             = "v0.1.0"

	// DateFormat is the standard date format used for action due dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lift-"
	BackupFileSuffix = ".db"

	// Session lock
	SessionLockfileName = "lift-session.lock"

	// Wizard constants
	DefaultTransitionLock = 500 * time.Millisecond

	// Sync constants
	DefaultSyncMaxAttempts  = 3
	DefaultSyncInitialDelay = 200 * time.Millisecond
	DefaultSyncMaxDelay     = 5 * time.Second
	DefaultSyncMultiplier   = 2.0
	DefaultSyncTimeout      = 10 * time.Second

	// Category used for snoozed preset questions
	SnoozedCategory = "snoozed"
)

// Session States
const (
	StateList SessionState = iota
	StateQuestions
	StateWizard
	StateEditing
	StateEditPart
	StateAddAction
	StateActions
	StateGratitude
	StateConfirmDelete
	StateConfirmReset
	StateConfirmDeleteAction
)
