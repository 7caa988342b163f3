package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/tui/components/questionlist"
	"github.com/foundersandcoders/lift/internal/tui/components/statementlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case unsyncedTickMsg:
		m.unsynced = len(m.ctx.Syncer.Unsynced())
		return m, tickUnsynced()

	case storeChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case gratitudeSentMsg:
		if msg.err != nil {
			m.fail(msg.err)
		} else {
			m.notify("Thanks sent")
		}
		m.refresh()
		return m, nil

	case wizardRetryMsg:
		if m.state != constants.StateWizard {
			return m, nil
		}
		return m.advanceWizard()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case constants.StateWizard:
		return m.updateWizard(msg)
	case constants.StateEditing:
		return m.updateEditing(msg)
	case constants.StateEditPart:
		return m.updateEditPart(msg)
	case constants.StateAddAction:
		return m.updateActionForm(msg)
	case constants.StateActions:
		return m.updateActions(msg)
	case constants.StateGratitude:
		return m.updateGratitude(msg)
	case constants.StateConfirmDelete, constants.StateConfirmReset, constants.StateConfirmDeleteAction:
		return m.updateConfirm(msg)
	}
	return m.updateTabs(msg)
}

func (m Model) updateTabs(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statementlist.AddMsg:
		return m.startWizard(nil)

	case questionlist.StartMsg:
		q := msg.Question
		return m.startWizard(&q)

	case statementlist.EditMsg:
		return m.startEdit(msg.ID)

	case statementlist.DeleteMsg:
		m.targetID = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil

	case statementlist.ResetMsg:
		m.targetID = msg.ID
		m.state = constants.StateConfirmReset
		return m, nil

	case statementlist.ResolveMsg:
		e, err := m.statements.ToggleResolved(msg.ID)
		if err != nil {
			m.fail(err)
		} else if e.IsResolved {
			m.notify("Marked resolved")
		} else {
			m.notify("Reopened")
		}
		m.refresh()
		return m, nil

	case statementlist.AddActionMsg:
		return m.startActionForm(msg.ID, "")

	case statementlist.ActionsMsg:
		return m.openActions(msg.ID)

	case questionlist.SnoozeMsg:
		q, err := m.ctx.Questions.ToggleSnooze(msg.ID)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if err := m.ctx.SaveSettings(); err != nil {
			m.fail(fmt.Errorf("failed to save snoozed questions: %w", err))
		} else if q.IsSnoozed {
			m.notify("Question snoozed")
		} else {
			m.notify("Question restored")
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if !m.filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
				m.switchTab()
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.tab == constants.StateQuestions {
		m.questionList, cmd = m.questionList.Update(msg)
	} else {
		m.entryList, cmd = m.entryList.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	if m.tab == constants.StateQuestions {
		return m.questionList.Filtering()
	}
	return m.entryList.Filtering()
}

func (m *Model) switchTab() {
	if m.tab == constants.StateList {
		m.tab = constants.StateQuestions
	} else {
		m.tab = constants.StateList
	}
	m.state = m.tab
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Confirm):
		if m.state == constants.StateConfirmDeleteAction {
			if err := m.statements.DeleteAction(m.targetID, m.actionID); err != nil {
				m.fail(err)
			} else {
				m.notify("Action deleted")
			}
			m.closeForm()
			return m, nil
		}
		if m.state == constants.StateConfirmReset {
			if _, err := m.statements.Reset(m.targetID); err != nil {
				m.fail(err)
			} else {
				m.notify("Answer removed; the question is open again")
			}
		} else {
			m.ctx.PerformAutomaticBackup()
			if err := m.statements.Delete(m.targetID); err != nil {
				m.fail(err)
			} else {
				m.notify("Statement deleted")
			}
		}
		m.back()
	case key.Matches(k, m.keys.Deny):
		if m.state == constants.StateConfirmDeleteAction {
			m.closeForm()
			return m, nil
		}
		m.back()
	}
	return m, nil
}

// updateForm forwards msg to the form on screen and reports its state.
func (m *Model) updateForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}
