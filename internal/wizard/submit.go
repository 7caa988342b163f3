package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foundersandcoders/lift/internal/models"
)

var ErrUnknownVerb = errors.New("verb is not available")

// Answers fills a whole wizard run at once. Empty fields keep the draft's
// value; steps fixed by the preset ignore them.
type Answers struct {
	Category   string
	Subject    string
	Verb       string
	Object     string
	Public     *bool
	Complement string
}

// Submit applies answers step by step and completes the wizard. It skips the
// transition lock, which only debounces interactive input.
func (w *Wizard) Submit(ctx context.Context, a Answers) (models.Entry, error) {
	if w.closed {
		return models.Entry{}, ErrClosed
	}
	for i, step := range w.steps {
		w.index = i
		if !w.Fixed(step) {
			if err := w.answer(step, a); err != nil {
				return models.Entry{}, err
			}
		}
		if !w.IsStepValid(step) {
			return models.Entry{}, fmt.Errorf("%w: %s is required", ErrIncomplete, step)
		}
		if w.opts.OnConfirm != nil {
			w.opts.OnConfirm(step)
		}
	}
	return w.Complete(ctx)
}

// Fixed reports whether the preset supplies the step's answer.
func (w *Wizard) Fixed(step models.Step) bool {
	if w.opts.Preset == nil {
		return false
	}
	cfg, ok := w.opts.Preset.Step(step)
	return ok && (cfg.Preset || cfg.PresetAnswer != nil)
}

func (w *Wizard) answer(step models.Step, a Answers) error {
	switch step {
	case models.StepCategory:
		if a.Category != "" {
			w.draft.Category = a.Category
		}
	case models.StepSubject:
		if s := strings.TrimSpace(a.Subject); s != "" {
			w.draft.Atoms.Subject = s
		}
	case models.StepVerb:
		if a.Verb == "" {
			return nil
		}
		if !w.verbAllowed(a.Verb) {
			return fmt.Errorf("%w: %q", ErrUnknownVerb, a.Verb)
		}
		w.draft.Atoms.Verb = a.Verb
	case models.StepObject:
		if o := strings.TrimSpace(a.Object); o != "" {
			w.draft.Atoms.Object = o
		}
	case models.StepPrivacy:
		if a.Public != nil {
			w.draft.IsPublic = *a.Public
		}
	case models.StepComplement:
		if a.Complement != "" {
			w.draft.Atoms.Adverbial = strings.Fields(a.Complement)
		}
	}
	return nil
}

// verbAllowed accepts any catalog verb in free-form runs and only the offered
// verbs for presets.
func (w *Wizard) verbAllowed(id string) bool {
	if w.opts.Preset == nil {
		_, ok := w.opts.Taxonomy.Verb(id)
		return ok
	}
	for _, v := range w.VerbChoices() {
		if v.ID == id {
			return true
		}
	}
	return false
}
