// Package statements implements the list-view operations on stored
// statements: follow-up actions, resolving, deleting and resetting.
package statements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foundersandcoders/lift/internal/constants"
	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/logger"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/store"
	"github.com/foundersandcoders/lift/internal/syncer"
)

var (
	ErrEmptyAction    = errors.New("action text is required")
	ErrInvalidDate    = errors.New("due date must be YYYY-MM-DD")
	ErrNotPreset      = errors.New("statement was not created from a question")
	ErrNoGratitude    = errors.New("gratitude is not configured")
	ErrAlreadyThanked = errors.New("gratitude already sent for this action")
	ErrEmptyGratitude = errors.New("gratitude message is required")
)

// Gratitude records that a thank-you was sent for an action and returns the
// updated action.
type Gratitude interface {
	MarkSent(ctx context.Context, entryID, actionID, message string) (models.Action, error)
}

type Options struct {
	Store     *store.Store
	Syncer    *syncer.Syncer
	Gratitude Gratitude
	Now       func() time.Time
	NewID     func() string
	// OnPresetReleased is called with the question id freed by Reset.
	OnPresetReleased func(presetID string)
}

// Service mutates statements through the store and mirrors every change to
// the syncer.
type Service struct {
	opts Options
}

func New(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	return &Service{opts: opts}
}

func (s *Service) entry(id string) (models.Entry, error) {
	e, ok := s.opts.Store.Entry(id)
	if !ok {
		return models.Entry{}, lifterrors.NotFound("statement", id)
	}
	return e, nil
}

func (s *Service) commit(e models.Entry) models.Entry {
	e = e.Normalize()
	s.opts.Store.Dispatch(store.UpdateEntry{Entry: e})
	s.opts.Syncer.UpdateEntry(e)
	return e
}

func actionIndex(e models.Entry, actionID string) (int, error) {
	for i, a := range e.Actions {
		if a.ID == actionID {
			return i, nil
		}
	}
	return -1, lifterrors.NotFound("action", actionID)
}

func validDate(byDate string) error {
	if byDate == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, byDate); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, byDate)
	}
	return nil
}

// AddAction attaches a follow-up action. byDate may be empty.
func (s *Service) AddAction(entryID, text, byDate string) (models.Action, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Action{}, ErrEmptyAction
	}
	if err := validDate(byDate); err != nil {
		return models.Action{}, err
	}
	e, err := s.entry(entryID)
	if err != nil {
		return models.Action{}, err
	}

	a := models.Action{
		ID:           s.opts.NewID(),
		CreationDate: s.opts.Now().UTC().Format(time.RFC3339),
		ByDate:       byDate,
		Action:       text,
	}
	e.Actions = append(e.Actions, a)
	s.commit(e)
	logger.Debug("action added", "entry", entryID, "action", a.ID)
	return a, nil
}

// EditAction changes an action's text. An empty byDate keeps the current
// due date.
func (s *Service) EditAction(entryID, actionID, text, byDate string) (models.Action, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Action{}, ErrEmptyAction
	}
	if err := validDate(byDate); err != nil {
		return models.Action{}, err
	}
	e, err := s.entry(entryID)
	if err != nil {
		return models.Action{}, err
	}
	i, err := actionIndex(e, actionID)
	if err != nil {
		return models.Action{}, err
	}

	e.Actions[i].Action = text
	if byDate != "" {
		e.Actions[i].ByDate = byDate
	}
	s.commit(e)
	return e.Actions[i], nil
}

func (s *Service) DeleteAction(entryID, actionID string) error {
	e, err := s.entry(entryID)
	if err != nil {
		return err
	}
	i, err := actionIndex(e, actionID)
	if err != nil {
		return err
	}
	e.Actions = append(e.Actions[:i], e.Actions[i+1:]...)
	s.commit(e)
	return nil
}

// ToggleAction flips an action's completed flag.
func (s *Service) ToggleAction(entryID, actionID string) (models.Action, error) {
	e, err := s.entry(entryID)
	if err != nil {
		return models.Action{}, err
	}
	i, err := actionIndex(e, actionID)
	if err != nil {
		return models.Action{}, err
	}
	e.Actions[i].Completed = !e.Actions[i].Completed
	s.commit(e)
	return e.Actions[i], nil
}

// ToggleResolved archives or restores a statement.
func (s *Service) ToggleResolved(entryID string) (models.Entry, error) {
	e, err := s.entry(entryID)
	if err != nil {
		return models.Entry{}, err
	}
	e.IsResolved = !e.IsResolved
	return s.commit(e), nil
}

// Delete removes a statement.
func (s *Service) Delete(entryID string) error {
	if _, err := s.entry(entryID); err != nil {
		return err
	}
	s.opts.Store.Dispatch(store.DeleteEntry{ID: entryID})
	s.opts.Syncer.DeleteEntry(entryID)
	logger.Info("statement deleted", "id", entryID)
	return nil
}

// Reset deletes a statement created from a question so the question can be
// answered again. It returns the freed question id.
func (s *Service) Reset(entryID string) (string, error) {
	e, err := s.entry(entryID)
	if err != nil {
		return "", err
	}
	if e.PresetID == "" {
		return "", ErrNotPreset
	}
	if err := s.Delete(entryID); err != nil {
		return "", err
	}
	if s.opts.OnPresetReleased != nil {
		s.opts.OnPresetReleased(e.PresetID)
	}
	return e.PresetID, nil
}

// SendGratitude marks an action as thanked through the gratitude
// collaborator and stores the returned action. Unlike the other operations
// it waits for the collaborator.
func (s *Service) SendGratitude(ctx context.Context, entryID, actionID, message string) (models.Action, error) {
	if s.opts.Gratitude == nil {
		return models.Action{}, ErrNoGratitude
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Action{}, ErrEmptyGratitude
	}
	e, err := s.entry(entryID)
	if err != nil {
		return models.Action{}, err
	}
	i, err := actionIndex(e, actionID)
	if err != nil {
		return models.Action{}, err
	}
	if e.Actions[i].GratitudeSent {
		return models.Action{}, ErrAlreadyThanked
	}

	updated, err := s.opts.Gratitude.MarkSent(ctx, entryID, actionID, message)
	if err != nil {
		return models.Action{}, fmt.Errorf("marking gratitude sent: %w", err)
	}
	// re-read in case the entry changed while the call was in flight
	e, err = s.entry(entryID)
	if err != nil {
		return models.Action{}, err
	}
	if i, err = actionIndex(e, actionID); err != nil {
		return models.Action{}, err
	}

	merged := e.Actions[i]
	merged.GratitudeSent = true
	merged.GratitudeMessage = updated.GratitudeMessage
	if merged.GratitudeMessage == "" {
		merged.GratitudeMessage = message
	}
	merged.GratitudeSentDate = updated.GratitudeSentDate
	if merged.GratitudeSentDate == "" {
		merged.GratitudeSentDate = s.opts.Now().UTC().Format(time.RFC3339)
	}
	e.Actions[i] = merged
	s.commit(e)
	return merged, nil
}
