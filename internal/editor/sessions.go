package editor

import (
	"context"
	"sync"

	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/store"
	"github.com/foundersandcoders/lift/internal/syncer"
)

// Sessions tracks the open edit sessions of the statement list. It keeps a
// pre-edit backup of every entry being edited so Cancel can restore it.
type Sessions struct {
	store  *store.Store
	syncer *syncer.Syncer

	mu      sync.Mutex
	editors map[string]*Editor
	backups map[string]models.Entry
}

func NewSessions(st *store.Store, s *syncer.Syncer) *Sessions {
	return &Sessions{
		store:   st,
		syncer:  s,
		editors: make(map[string]*Editor),
		backups: make(map[string]models.Entry),
	}
}

// BeginEdit opens (or returns the already open) editor for an entry.
func (ss *Sessions) BeginEdit(id string) (*Editor, error) {
	entry, ok := ss.store.Entry(id)
	if !ok {
		return nil, lifterrors.NotFound("statement", id)
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, ok := ss.backups[id]; !ok {
		ss.backups[id] = entry.Clone()
		ss.store.Dispatch(store.SetOriginalCategory{EntryID: id, Category: entry.Category})
	}
	ed, ok := ss.editors[id]
	if !ok {
		ed = New(ss.store, ss.syncer)
		ss.editors[id] = ed
	}

	original, _ := ss.store.State().OriginalCategory(id)
	ed.Begin(entry, original)
	return ed, nil
}

// Editor returns the open editor for an entry.
func (ss *Sessions) Editor(id string) (*Editor, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ed, ok := ss.editors[id]
	return ed, ok
}

// Save commits the open session for an entry.
func (ss *Sessions) Save(ctx context.Context, id string) (models.Entry, error) {
	ed, ok := ss.Editor(id)
	if !ok {
		return models.Entry{}, ErrNotEditing
	}
	entry, err := ed.Save(ctx)
	if err != nil {
		return models.Entry{}, err
	}
	ss.finish(id)
	return entry, nil
}

// Cancel restores the pre-edit entry and closes the session.
func (ss *Sessions) Cancel(id string) error {
	ed, ok := ss.Editor(id)
	if !ok {
		return ErrNotEditing
	}

	ss.mu.Lock()
	backup, hasBackup := ss.backups[id]
	ss.mu.Unlock()

	if hasBackup {
		ed.Cancel(&backup)
	} else {
		ed.Cancel(nil)
	}
	ss.finish(id)
	return nil
}

func (ss *Sessions) finish(id string) {
	ss.mu.Lock()
	delete(ss.editors, id)
	delete(ss.backups, id)
	ss.mu.Unlock()
	ss.store.Dispatch(store.ClearOriginalCategory{EntryID: id})
}
