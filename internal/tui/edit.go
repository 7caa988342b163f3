package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/editor"
	"github.com/foundersandcoders/lift/internal/models"
)

func (m Model) startEdit(id string) (tea.Model, tea.Cmd) {
	if _, err := m.sessions.BeginEdit(id); err != nil {
		m.fail(err)
		return m, nil
	}
	m.targetID = id
	m.state = constants.StateEditing
	m.status, m.err = "", nil
	return m, nil
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	ed, open := m.sessions.Editor(m.targetID)
	if !open {
		m.back()
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Back):
		if err := m.sessions.Cancel(m.targetID); err != nil {
			m.fail(err)
		} else {
			m.notify("Edit discarded")
		}
		m.back()
	case key.Matches(k, m.keys.Save):
		_, err := m.sessions.Save(context.Background(), m.targetID)
		switch {
		case errors.Is(err, editor.ErrNothingChanged):
			if err := m.sessions.Cancel(m.targetID); err != nil {
				m.fail(err)
			} else {
				m.notify("No changes")
			}
		case err != nil:
			m.fail(err)
			return m, nil
		default:
			m.notify("Statement updated")
		}
		m.back()
	case key.Matches(k, m.keys.Privacy):
		if err := ed.TogglePrivacy(); err != nil {
			m.fail(err)
		}
	case key.Matches(k, m.keys.Subject):
		return m.editPart(editor.FieldSubject)
	case key.Matches(k, m.keys.Verb):
		return m.editPart(editor.FieldVerb)
	case key.Matches(k, m.keys.Object):
		return m.editPart(editor.FieldObject)
	case key.Matches(k, m.keys.Category):
		return m.editPart(editor.FieldCategory)
	}
	return m, nil
}

// editPart opens the picker for one field of the draft.
func (m Model) editPart(field editor.Field) (tea.Model, tea.Cmd) {
	ed, _ := m.sessions.Editor(m.targetID)
	draft := ed.Draft()
	tax := m.ctx.Taxonomy
	m.answer = &stepAnswer{}
	a := m.answer

	var f huh.Field
	switch field {
	case editor.FieldSubject:
		a.Text = draft.Atoms.Subject
		f = huh.NewInput().Title("Subject").Value(&a.Text).Validate(required("a subject"))
	case editor.FieldObject:
		a.Text = draft.Atoms.Object
		f = huh.NewInput().Title("Object").Value(&a.Text).Validate(required("an object"))
	case editor.FieldVerb:
		a.Choice = draft.Atoms.Verb
		var name string
		if c := tax.CategoryByID(draft.Category); c != nil {
			name = c.Name
		}
		isI := strings.EqualFold(draft.Atoms.Subject, "I")
		var opts []huh.Option[string]
		for _, v := range tax.VerbsFor(name) {
			opts = append(opts, huh.NewOption(swatch(tax.VerbDisplay(v.ID, isI), tax.VerbColor(v.ID)), v.ID))
		}
		f = huh.NewSelect[string]().Title("Verb").Options(opts...).Height(12).Value(&a.Choice)
	case editor.FieldCategory:
		a.Choice = models.NormalizeCategory(draft.Category)
		opts := []huh.Option[string]{huh.NewOption("Uncategorized", models.Uncategorized)}
		for _, c := range tax.Categories() {
			opts = append(opts, huh.NewOption(swatch(tax.CategoryDisplayName(c.ID), c.Color), c.ID))
		}
		f = huh.NewSelect[string]().Title("Category").Options(opts...).Value(&a.Choice)
	}

	m.editField = field
	m.form = huh.NewForm(huh.NewGroup(f)).WithShowHelp(false)
	m.state = constants.StateEditPart
	return m, m.form.Init()
}

func (m Model) updateEditPart(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form = nil
		m.state = constants.StateEditing
		return m, nil
	}

	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		ed, open := m.sessions.Editor(m.targetID)
		if !open {
			m.back()
			return m, nil
		}
		if err := ed.Apply(m.partEdit()); err != nil {
			m.fail(err)
		}
		m.form = nil
		m.state = constants.StateEditing
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.state = constants.StateEditing
		return m, nil
	}
	return m, cmd
}

func (m Model) partEdit() editor.Edit {
	a := m.answer
	switch m.editField {
	case editor.FieldSubject:
		return editor.SubjectEdit(strings.TrimSpace(a.Text))
	case editor.FieldVerb:
		return editor.VerbEdit(a.Choice)
	case editor.FieldCategory:
		return editor.CategoryEdit(a.Choice)
	default:
		return editor.ObjectEdit(strings.TrimSpace(a.Text))
	}
}
