// Package editor implements in-place editing of stored statements with
// change detection and revert.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/foundersandcoders/lift/internal/logger"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/store"
	"github.com/foundersandcoders/lift/internal/syncer"
)

var (
	ErrNotEditing     = errors.New("no edit in progress")
	ErrNothingChanged = errors.New("nothing changed")
)

// Editor edits a single statement. Edits only touch the draft; the store
// changes on Save or Cancel.
type Editor struct {
	store  *store.Store
	syncer *syncer.Syncer

	snapshot *Snapshot
	draft    models.Entry
}

// New returns an idle editor. The syncer may be nil.
func New(st *store.Store, s *syncer.Syncer) *Editor {
	return &Editor{store: st, syncer: s}
}

// Begin opens an edit session on entry. The snapshot is captured only when
// none is held, so a repeated Begin keeps the first baseline. A non-empty
// originalCategory takes precedence over the entry's category.
func (ed *Editor) Begin(entry models.Entry, originalCategory string) {
	if ed.snapshot == nil {
		s := snapshotOf(entry, originalCategory)
		ed.snapshot = &s
	}
	ed.draft = entry.Clone()
}

// Editing reports whether a session is open.
func (ed *Editor) Editing() bool { return ed.snapshot != nil }

// Draft returns a copy of the working draft.
func (ed *Editor) Draft() models.Entry { return ed.draft.Clone() }

// Snapshot returns the captured baseline.
func (ed *Editor) Snapshot() (Snapshot, bool) {
	if ed.snapshot == nil {
		return Snapshot{}, false
	}
	return *ed.snapshot, true
}

// Apply changes one field of the draft.
func (ed *Editor) Apply(e Edit) error {
	if ed.snapshot == nil {
		return ErrNotEditing
	}
	atoms := ed.draft.Clone().Atoms
	switch e := e.(type) {
	case SubjectEdit:
		atoms.Subject = string(e)
		ed.draft = ed.draft.WithAtoms(atoms)
	case VerbEdit:
		atoms.Verb = string(e)
		ed.draft = ed.draft.WithAtoms(atoms)
	case ObjectEdit:
		atoms.Object = string(e)
		ed.draft = ed.draft.WithAtoms(atoms)
	case CategoryEdit:
		ed.draft.Category = string(e)
	case PrivacyEdit:
		ed.draft.IsPublic = bool(e)
	default:
		return fmt.Errorf("unknown edit %T", e)
	}
	return nil
}

// TogglePrivacy flips the draft's sharing flag.
func (ed *Editor) TogglePrivacy() error {
	return ed.Apply(PrivacyEdit(!ed.draft.IsPublic))
}

// Changes lists the fields that differ from the baseline.
func (ed *Editor) Changes() []Field {
	if ed.snapshot == nil {
		return nil
	}
	return ed.snapshot.diff(ed.draft)
}

// Dirty reports whether any field differs from the baseline.
func (ed *Editor) Dirty() bool {
	return len(ed.Changes()) > 0
}

// Save writes the draft back to the store and submits it to the syncer.
func (ed *Editor) Save(ctx context.Context) (models.Entry, error) {
	if ed.snapshot == nil {
		return models.Entry{}, ErrNotEditing
	}
	if !ed.Dirty() {
		return models.Entry{}, ErrNothingChanged
	}
	if err := ctx.Err(); err != nil {
		return models.Entry{}, err
	}

	entry := ed.draft.Normalize()
	ed.store.Dispatch(store.UpdateEntry{Entry: entry})
	ed.syncer.UpdateEntry(entry)
	logger.Info("statement updated", "id", entry.ID, "fields", ed.Changes())

	ed.reset()
	return entry, nil
}

// Cancel discards the draft. A non-nil backup is written back to the store.
func (ed *Editor) Cancel(backup *models.Entry) {
	if backup != nil {
		ed.store.Dispatch(store.UpdateEntry{Entry: backup.Clone()})
	}
	ed.reset()
}

func (ed *Editor) reset() {
	ed.snapshot = nil
	ed.draft = models.Entry{}
}
