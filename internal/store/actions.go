package store

import "github.com/foundersandcoders/lift/internal/models"

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

type (
	SetUsername     struct{ Username string }
	SetUserEmail    struct{ Email string }
	SetManagerName  struct{ Name string }
	SetManagerEmail struct{ Email string }

	// SetEntries replaces the whole list.
	SetEntries struct{ Entries []models.Entry }

	// AddEntry appends without checking for an existing id.
	AddEntry struct{ Entry models.Entry }

	// UpdateEntry replaces the entry with the same id. Unknown ids are ignored.
	UpdateEntry struct{ Entry models.Entry }

	DeleteEntry struct{ ID string }

	// SetOriginalCategory remembers the category an entry had when an edit
	// session began.
	SetOriginalCategory struct {
		EntryID  string
		Category string
	}

	ClearOriginalCategory struct{ EntryID string }
)

func (SetUsername) isAction()           {}
func (SetUserEmail) isAction()          {}
func (SetManagerName) isAction()        {}
func (SetManagerEmail) isAction()       {}
func (SetEntries) isAction()            {}
func (AddEntry) isAction()              {}
func (UpdateEntry) isAction()           {}
func (DeleteEntry) isAction()           {}
func (SetOriginalCategory) isAction()   {}
func (ClearOriginalCategory) isAction() {}
