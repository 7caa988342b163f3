package wizard

import (
	"strings"

	"github.com/foundersandcoders/lift/internal/models"
)

// reselect advances when value matches what the draft already holds for the
// current step. It reports whether the wizard advanced.
func (w *Wizard) reselect(step models.Step, same bool) bool {
	if w.closed || w.Step() != step || !same {
		return false
	}
	return w.GoNext()
}

// SelectSubject sets the subject. Picking the subject already held confirms
// the step.
func (w *Wizard) SelectSubject(subject string) bool {
	if w.reselect(models.StepSubject, subject == w.draft.Atoms.Subject) {
		return true
	}
	w.draft.Atoms.Subject = subject
	return false
}

// SelectVerb sets the verb id. Picking the verb already held confirms the
// step.
func (w *Wizard) SelectVerb(id string) bool {
	if w.reselect(models.StepVerb, id == w.draft.Atoms.Verb) {
		return true
	}
	w.draft.Atoms.Verb = id
	return false
}

// SetObject sets the object text. Submitting the same text again confirms
// the step.
func (w *Wizard) SetObject(object string) bool {
	if w.reselect(models.StepObject, object == w.draft.Atoms.Object) {
		return true
	}
	w.draft.Atoms.Object = object
	return false
}

// SelectCategory sets the category id. Picking the category already held,
// in either uncategorized spelling, confirms the step.
func (w *Wizard) SelectCategory(id string) bool {
	if w.reselect(models.StepCategory, models.SameCategory(id, w.draft.Category)) {
		return true
	}
	w.draft.Category = id
	return false
}

// SelectPrivacy sets whether the statement is shared with the manager.
func (w *Wizard) SelectPrivacy(public bool) bool {
	if w.reselect(models.StepPrivacy, public == w.draft.IsPublic) {
		return true
	}
	w.draft.IsPublic = public
	return false
}

// SetComplement fills the adverbial from free text.
func (w *Wizard) SetComplement(text string) {
	if w.closed {
		return
	}
	w.draft.Atoms.Adverbial = strings.Fields(text)
}

// SubjectChoices lists the subject tiles: the user first, then descriptor
// phrases when the step allows them.
func (w *Wizard) SubjectChoices() []string {
	self := w.opts.Store.State().Username
	if self == "" {
		self = "I"
	}
	choices := []string{self}

	families := w.opts.Taxonomy.Descriptors
	if w.opts.Preset != nil {
		cfg, ok := w.opts.Preset.Step(models.StepSubject)
		if !ok || !cfg.AllowDescriptors {
			return choices
		}
		if cfg.DescriptorCategory != "" {
			d, ok := w.opts.Taxonomy.Descriptor(cfg.DescriptorCategory)
			if !ok {
				return choices
			}
			families = []models.Descriptor{d}
		}
	}

	seen := map[string]bool{self: true}
	for _, d := range families {
		for _, opt := range d.Options {
			phrase := "My " + opt
			if !seen[phrase] {
				seen[phrase] = true
				choices = append(choices, phrase)
			}
		}
	}
	return choices
}

// VerbChoices lists the verbs for the draft's category, most popular first,
// restricted to the preset's allowed verbs when it names any.
func (w *Wizard) VerbChoices() []models.Verb {
	var name string
	if c := w.opts.Taxonomy.CategoryByID(w.draft.Category); c != nil {
		name = c.Name
	}
	verbs := w.opts.Taxonomy.VerbsFor(name)

	if w.opts.Preset == nil {
		return verbs
	}
	cfg, ok := w.opts.Preset.Step(models.StepVerb)
	if !ok || len(cfg.AllowedVerbs) == 0 {
		return verbs
	}

	allowed := make(map[string]bool, len(cfg.AllowedVerbs))
	for _, id := range cfg.AllowedVerbs {
		allowed[id] = true
	}
	var out []models.Verb
	for _, v := range verbs {
		if allowed[v.ID] {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		// the category filter removed every allowed verb
		for _, id := range cfg.AllowedVerbs {
			if v, ok := w.opts.Taxonomy.Verb(id); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// CategoryChoices lists every category below the root.
func (w *Wizard) CategoryChoices() []models.Category {
	return w.opts.Taxonomy.Categories()
}
