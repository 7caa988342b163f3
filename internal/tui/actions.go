package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/foundersandcoders/lift/internal/constants"
	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/models"
)

// gratitudeSentMsg carries the result of a gratitude call made off the
// update loop.
type gratitudeSentMsg struct {
	action models.Action
	err    error
}

func (m Model) openActions(id string) (tea.Model, tea.Cmd) {
	if _, ok := m.ctx.State.Entry(id); !ok {
		m.fail(lifterrors.NotFound("statement", id))
		return m, nil
	}
	m.targetID = id
	m.actionsOpen = true
	m.cursor = 0
	m.state = constants.StateActions
	m.status, m.err = "", nil
	return m, nil
}

// selectedAction returns the action under the cursor, clamping the cursor to
// the current list.
func (m *Model) selectedAction() (models.Entry, models.Action, bool) {
	e, ok := m.ctx.State.Entry(m.targetID)
	if !ok || len(e.Actions) == 0 {
		m.cursor = 0
		return e, models.Action{}, false
	}
	if m.cursor >= len(e.Actions) {
		m.cursor = len(e.Actions) - 1
	}
	return e, e.Actions[m.cursor], true
}

func (m Model) updateActions(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if _, exists := m.ctx.State.Entry(m.targetID); !exists {
		m.back()
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Back):
		m.back()
		return m, nil
	case key.Matches(k, m.keys.NewAction):
		return m.startActionForm(m.targetID, "")
	case key.Matches(k, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(k, m.keys.Down):
		m.cursor++
		m.selectedAction()
		return m, nil
	}

	e, a, ok := m.selectedAction()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Toggle):
		updated, err := m.statements.ToggleAction(e.ID, a.ID)
		switch {
		case err != nil:
			m.fail(err)
		case updated.Completed:
			m.notify("Action done")
		default:
			m.notify("Action reopened")
		}
	case key.Matches(k, m.keys.EditAction):
		return m.startActionForm(e.ID, a.ID)
	case key.Matches(k, m.keys.Remove):
		m.actionID = a.ID
		m.state = constants.StateConfirmDeleteAction
	case key.Matches(k, m.keys.Thank):
		return m.startGratitude(a)
	}
	m.refresh()
	return m, nil
}

func (m Model) startGratitude(a models.Action) (tea.Model, tea.Cmd) {
	if a.GratitudeSent {
		m.notify("Thanks already sent for this action")
		return m, nil
	}
	m.actionID = a.ID
	m.answer = &stepAnswer{}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Thank you message").
			Description(a.Action).
			Value(&m.answer.Text).
			Validate(required("a message")),
	)).WithShowHelp(false)
	m.state = constants.StateGratitude
	m.status, m.err = "", nil
	return m, m.form.Init()
}

func (m Model) updateGratitude(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		svc, entryID, actionID, text := m.statements, m.targetID, m.actionID, m.answer.Text
		m.closeForm()
		m.notify("Sending thanks...")
		return m, func() tea.Msg {
			a, err := svc.SendGratitude(context.Background(), entryID, actionID, text)
			return gratitudeSentMsg{action: a, err: err}
		}
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// startActionForm opens the action form, prefilled when actionID names an
// existing action.
func (m Model) startActionForm(entryID, actionID string) (tea.Model, tea.Cmd) {
	m.targetID = entryID
	m.actionID = actionID
	m.answer = &stepAnswer{}
	title := "What needs doing?"
	if actionID != "" {
		e, _ := m.ctx.State.Entry(entryID)
		for _, a := range e.Actions {
			if a.ID == actionID {
				m.answer.Text, m.answer.ByDate = a.Action, a.ByDate
			}
		}
		title = "Action"
	}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Value(&m.answer.Text).
			Validate(required("an action")),
		huh.NewInput().
			Title("Due by").
			Placeholder("YYYY-MM-DD, optional").
			Value(&m.answer.ByDate),
	)).WithShowHelp(false)
	m.state = constants.StateAddAction
	m.status, m.err = "", nil
	return m, m.form.Init()
}

func (m Model) updateActionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		text, byDate := strings.TrimSpace(m.answer.Text), strings.TrimSpace(m.answer.ByDate)
		var err error
		if m.actionID == "" {
			_, err = m.statements.AddAction(m.targetID, text, byDate)
		} else {
			_, err = m.statements.EditAction(m.targetID, m.actionID, text, byDate)
		}
		switch {
		case err != nil:
			m.fail(err)
		case m.actionID == "":
			m.notify("Action added")
		default:
			m.notify("Action updated")
		}
		m.closeForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// closeForm leaves a form for the action screen when it was opened from
// there, and for the active tab otherwise.
func (m *Model) closeForm() {
	if !m.actionsOpen {
		m.back()
		return
	}
	m.form = nil
	m.answer = nil
	m.actionID = ""
	m.state = constants.StateActions
	m.selectedAction()
	m.refresh()
}
