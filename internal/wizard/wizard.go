// Package wizard drives the step-by-step construction of a new statement.
package wizard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/logger"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/store"
	"github.com/foundersandcoders/lift/internal/syncer"
	"github.com/foundersandcoders/lift/internal/taxonomy"
)

var (
	ErrClosed      = errors.New("wizard is closed")
	ErrNotLastStep = errors.New("wizard is not on its last step")
	ErrIncomplete  = errors.New("statement is incomplete")
)

// Options configures a wizard run. Only Taxonomy and Store are required.
type Options struct {
	Taxonomy *taxonomy.Taxonomy
	Store    *store.Store
	Syncer   *syncer.Syncer

	// Preset launches the wizard from a set question. Nil means free-form.
	Preset *models.SetQuestion

	// TransitionLock debounces GoNext. Zero uses the default.
	TransitionLock time.Duration
	Now            func() time.Time
	NewID          func() string

	// OnConfirm is called with the step being left on every advance.
	OnConfirm func(step models.Step)
	// OnComplete is called with the stored entry, before OnClose.
	OnComplete func(entry models.Entry)
	// OnClose is called once when the wizard completes or is cancelled.
	OnClose func()
}

// Wizard holds the draft and the position in the step sequence. It is not
// safe for concurrent use.
type Wizard struct {
	opts        Options
	steps       []models.Step
	index       int
	draft       models.Entry
	lockedUntil time.Time
	completed   bool
	closed      bool
}

// New starts a wizard on its first step.
func New(opts Options) *Wizard {
	if opts.TransitionLock <= 0 {
		opts.TransitionLock = constants.DefaultTransitionLock
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}

	w := &Wizard{opts: opts}
	username := opts.Store.State().Username

	if opts.Preset == nil {
		w.steps = FreeFormSteps
		w.draft.Atoms.Subject = username
		w.draft.Category = "uncategorised"
		return w
	}

	w.steps = PresetSteps
	w.draft.Category = opts.Preset.Category
	if s, ok := opts.Preset.Step(models.StepSubject); ok && s.Preset {
		w.draft.Atoms.Subject = username
	}
	w.applyPresetAnswers()
	return w
}

func (w *Wizard) applyPresetAnswers() {
	for step, cfg := range w.opts.Preset.Steps {
		if cfg.PresetAnswer == nil {
			continue
		}
		answer := *cfg.PresetAnswer
		switch step {
		case models.StepSubject:
			w.draft.Atoms.Subject = answer
		case models.StepVerb:
			w.draft.Atoms.Verb = answer
		case models.StepObject:
			w.draft.Atoms.Object = answer
		case models.StepPrivacy:
			w.draft.IsPublic = strings.EqualFold(answer, "public")
		case models.StepComplement:
			w.draft.Atoms.Adverbial = strings.Fields(answer)
		}
	}
}

// Steps returns the step ordering in use.
func (w *Wizard) Steps() []models.Step { return append([]models.Step{}, w.steps...) }

// Index returns the position of the current step.
func (w *Wizard) Index() int { return w.index }

// Step returns the current step.
func (w *Wizard) Step() models.Step { return w.steps[w.index] }

// Draft returns a copy of the statement being built.
func (w *Wizard) Draft() models.Entry { return w.draft.Clone() }

// Preset returns the set question driving the wizard, if any.
func (w *Wizard) Preset() *models.SetQuestion { return w.opts.Preset }

// Closed reports whether the wizard has completed or been cancelled.
func (w *Wizard) Closed() bool { return w.closed }

// Completed reports whether the wizard stored a statement.
func (w *Wizard) Completed() bool { return w.completed }

// IsLastStep reports whether GoNext will complete the wizard.
func (w *Wizard) IsLastStep() bool { return w.index == len(w.steps)-1 }

// Prompt returns the question shown for a step, preferring the preset's text.
func (w *Wizard) Prompt(step models.Step) string {
	if w.opts.Preset != nil {
		if s, ok := w.opts.Preset.Step(step); ok && s.Question != "" {
			return s.Question
		}
	}
	return defaultPrompts[step]
}

// IsStepValid reports whether the draft satisfies step.
func (w *Wizard) IsStepValid(step models.Step) bool {
	switch step {
	case models.StepSubject:
		return strings.TrimSpace(w.draft.Atoms.Subject) != ""
	case models.StepVerb:
		return strings.TrimSpace(w.draft.Atoms.Verb) != ""
	case models.StepObject:
		return strings.TrimSpace(w.draft.Atoms.Object) != ""
	case models.StepCategory:
		return w.opts.Preset != nil || strings.TrimSpace(w.draft.Category) != ""
	default:
		return true
	}
}

// Locked reports whether a recent advance is still debouncing GoNext.
func (w *Wizard) Locked() bool {
	return w.opts.Now().Before(w.lockedUntil)
}

// GoNext advances one step, or completes on the last step. It reports
// whether anything happened; an invalid step or a held lock is ignored.
func (w *Wizard) GoNext() bool {
	if w.closed || w.Locked() || !w.IsStepValid(w.Step()) {
		return false
	}
	w.lockedUntil = w.opts.Now().Add(w.opts.TransitionLock)

	step := w.Step()
	if w.opts.OnConfirm != nil {
		w.opts.OnConfirm(step)
	}
	if w.IsLastStep() {
		_, err := w.Complete(context.Background())
		return err == nil
	}
	w.index++
	return true
}

// GoBack steps back one position. From the first step it cancels the wizard.
func (w *Wizard) GoBack() {
	if w.closed {
		return
	}
	if w.index == 0 {
		w.close()
		return
	}
	w.index--
}

// Cancel closes the wizard without storing anything.
func (w *Wizard) Cancel() {
	if !w.closed {
		w.close()
	}
}

func (w *Wizard) close() {
	w.closed = true
	if w.opts.OnClose != nil {
		w.opts.OnClose()
	}
}

// Complete stores the draft as a new statement. It only runs once, from the
// last step.
func (w *Wizard) Complete(ctx context.Context) (models.Entry, error) {
	if w.closed {
		return models.Entry{}, ErrClosed
	}
	if !w.IsLastStep() {
		return models.Entry{}, ErrNotLastStep
	}
	for _, step := range []models.Step{models.StepSubject, models.StepVerb, models.StepObject} {
		if !w.IsStepValid(step) {
			return models.Entry{}, ErrIncomplete
		}
	}
	if err := ctx.Err(); err != nil {
		return models.Entry{}, err
	}

	entry := w.draft.Clone()
	if entry.Atoms.Adverbial == nil {
		entry.Atoms.Adverbial = []string{}
	}
	entry.ID = w.opts.NewID()
	entry.Category = w.resolveCategory()
	if w.opts.Preset != nil {
		entry.PresetID = w.opts.Preset.ID
	}
	entry = entry.Normalize()

	w.completed = true
	w.opts.Store.Dispatch(store.AddEntry{Entry: entry})
	w.opts.Syncer.CreateEntry(entry)
	logger.Info("statement created", "id", entry.ID, "preset", entry.PresetID, "category", entry.Category)

	if w.opts.OnComplete != nil {
		w.opts.OnComplete(entry.Clone())
	}
	w.close()
	return entry, nil
}

func (w *Wizard) resolveCategory() string {
	if w.opts.Preset != nil && w.opts.Preset.Category != "" {
		return w.opts.Preset.Category
	}
	if w.draft.Category != "" {
		return w.draft.Category
	}
	return "Uncategorized"
}
