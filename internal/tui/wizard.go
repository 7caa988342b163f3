package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/statements"
)

func (m Model) startWizard(preset *models.SetQuestion) (tea.Model, tea.Cmd) {
	m.wizard = m.ctx.Wizard(preset)
	m.state = constants.StateWizard
	m.status, m.err = "", nil
	return m.stepForm()
}

// stepForm confirms the steps a preset answers, then shows the form of the
// current step.
func (m Model) stepForm() (tea.Model, tea.Cmd) {
	w := m.wizard
	for !w.Closed() && w.Fixed(w.Step()) {
		if w.GoNext() {
			continue
		}
		if w.Locked() {
			m.form = nil
			return m, m.retryWizard()
		}
		// the preset left this step empty
		break
	}
	if w.Closed() {
		return m.finishWizard()
	}

	m.answer = &stepAnswer{}
	m.form = m.wizardForm(w.Step())
	return m, m.form.Init()
}

func (m Model) retryWizard() tea.Cmd {
	return tea.Tick(m.ctx.Config.TransitionLock(), func(time.Time) tea.Msg { return wizardRetryMsg{} })
}

// advanceWizard moves past the current step once the lock allows it.
func (m Model) advanceWizard() (tea.Model, tea.Cmd) {
	w := m.wizard
	if w.GoNext() {
		return m.stepForm()
	}
	if w.Locked() {
		m.form = nil
		return m, m.retryWizard()
	}
	if w.Closed() {
		return m.finishWizard()
	}
	m.fail(fmt.Errorf("%s is required", w.Step()))
	m.answer = &stepAnswer{}
	m.form = m.wizardForm(w.Step())
	return m, m.form.Init()
}

func (m Model) finishWizard() (tea.Model, tea.Cmd) {
	if m.wizard.Completed() {
		m.notify("Statement saved")
	}
	m.wizard = nil
	m.back()
	return m, nil
}

func (m Model) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		w := m.wizard
		w.GoBack()
		for !w.Closed() && w.Fixed(w.Step()) {
			w.GoBack()
		}
		if w.Closed() {
			m.wizard = nil
			m.back()
			m.notify("Cancelled")
			return m, nil
		}
		m.answer = &stepAnswer{}
		m.form = m.wizardForm(w.Step())
		return m, m.form.Init()
	}
	if m.form == nil {
		return m, nil
	}

	state, cmd := m.updateForm(msg)
	if state != huh.StateCompleted {
		return m, cmd
	}
	if m.applyAnswer() {
		return m.stepForm()
	}
	return m.advanceWizard()
}

// applyAnswer hands the form value to the wizard. It reports whether the
// wizard already advanced on a reselection.
func (m Model) applyAnswer() bool {
	w, a := m.wizard, m.answer
	switch w.Step() {
	case models.StepCategory:
		return w.SelectCategory(a.Choice)
	case models.StepSubject:
		return w.SelectSubject(a.Choice)
	case models.StepVerb:
		return w.SelectVerb(a.Choice)
	case models.StepObject:
		return w.SetObject(strings.TrimSpace(a.Text))
	case models.StepPrivacy:
		return w.SelectPrivacy(a.Public)
	default:
		w.SetComplement(a.Text)
		return false
	}
}

func (m Model) wizardForm(step models.Step) *huh.Form {
	w, a, tax := m.wizard, m.answer, m.ctx.Taxonomy
	draft := w.Draft()
	title := w.Prompt(step)

	var field huh.Field
	switch step {
	case models.StepCategory:
		a.Choice = models.NormalizeCategory(draft.Category)
		opts := []huh.Option[string]{huh.NewOption("Uncategorized", models.Uncategorized)}
		for _, c := range w.CategoryChoices() {
			opts = append(opts, huh.NewOption(swatch(tax.CategoryDisplayName(c.ID), c.Color), c.ID))
		}
		field = huh.NewSelect[string]().Title(title).Options(opts...).Value(&a.Choice)

	case models.StepSubject:
		a.Choice = draft.Atoms.Subject
		field = huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(w.SubjectChoices()...)...).
			Value(&a.Choice)

	case models.StepVerb:
		a.Choice = draft.Atoms.Verb
		isI := strings.EqualFold(draft.Atoms.Subject, "I")
		var opts []huh.Option[string]
		for _, v := range w.VerbChoices() {
			opts = append(opts, huh.NewOption(swatch(tax.VerbDisplay(v.ID, isI), tax.VerbColor(v.ID)), v.ID))
		}
		field = huh.NewSelect[string]().
			Title(title).
			Description(draft.Atoms.Subject + " ...").
			Options(opts...).
			Height(12).
			Value(&a.Choice)

	case models.StepObject:
		a.Text = draft.Atoms.Object
		field = huh.NewInput().
			Title(title).
			Description(draft.Atoms.Subject + " " + tax.VerbDisplay(draft.Atoms.Verb, strings.EqualFold(draft.Atoms.Subject, "I")) + " ...").
			Value(&a.Text).
			Validate(required("an object"))

	case models.StepPrivacy:
		a.Public = draft.IsPublic
		field = huh.NewConfirm().
			Title(title).
			Description(statements.Display(draft, tax)).
			Affirmative("My manager").
			Negative("Only me").
			Value(&a.Public)

	default:
		a.Text = strings.Join(draft.Atoms.Adverbial, " ")
		field = huh.NewInput().
			Title(title).
			Description(statements.Display(draft, tax)).
			Placeholder("optional").
			Value(&a.Text)
	}
	return huh.NewForm(huh.NewGroup(field)).WithShowHelp(false)
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}
