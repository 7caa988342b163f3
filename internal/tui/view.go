package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/editor"
	"github.com/foundersandcoders/lift/internal/statements"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateList:
		content = docStyle.Render(m.entryList.View())
	case constants.StateQuestions:
		content = docStyle.Render(m.questionList.View())
	case constants.StateWizard:
		content = docStyle.Render(m.viewWizard())
	case constants.StateEditing:
		content = docStyle.Render(m.viewEditing())
	case constants.StateEditPart, constants.StateAddAction, constants.StateGratitude:
		content = docStyle.Render(m.form.View())
	case constants.StateActions:
		content = docStyle.Render(m.viewActions())
	case constants.StateConfirmDeleteAction:
		content = m.viewConfirm("Delete this action?")
	case constants.StateConfirmDelete:
		content = m.viewConfirm("Delete this statement?")
	case constants.StateConfirmReset:
		content = m.viewConfirm("Remove this answer and reopen its question?")
	}

	parts := []string{m.viewTabs()}
	if banner := m.viewBanner(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, content)
	if line := m.viewStatus(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	entries := m.ctx.State.State().Entries
	titles := []struct {
		state constants.SessionState
		title string
	}{
		{constants.StateList, fmt.Sprintf("Statements (%d)", len(entries))},
		{constants.StateQuestions, fmt.Sprintf("Questions (%d/%d)", m.ctx.Questions.AnsweredCount(entries), len(m.ctx.Questions.All()))},
	}

	var tabs []string
	for _, t := range titles {
		if m.tab == t.state {
			tabs = append(tabs, activeTabStyle.Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewBanner() string {
	switch m.unsynced {
	case 0:
		return ""
	case 1:
		return bannerStyle.Render("⚠ 1 change is not saved yet")
	default:
		return bannerStyle.Render(fmt.Sprintf("⚠ %d changes are not saved yet", m.unsynced))
	}
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewWizard() string {
	w := m.wizard
	if w == nil {
		return ""
	}
	header := "New statement"
	if q := w.Preset(); q != nil {
		header = q.MainQuestion
	}
	progress := statusStyle.Render(fmt.Sprintf("step %d of %d", w.Index()+1, len(w.Steps())))
	draft := statements.Display(w.Draft(), m.ctx.Taxonomy)

	body := "..."
	if m.form != nil {
		body = m.form.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(header)+"  "+progress,
		statusStyle.Render(draft),
		"",
		body,
	)
}

func (m Model) viewEditing() string {
	ed, ok := m.sessions.Editor(m.targetID)
	if !ok {
		return ""
	}
	draft := ed.Draft()
	tax := m.ctx.Taxonomy

	changed := make(map[editor.Field]bool)
	for _, f := range ed.Changes() {
		changed[f] = true
	}

	sharing := "only me"
	if draft.IsPublic {
		sharing = "my manager"
	}
	values := map[editor.Field]string{
		editor.FieldSubject:  draft.Atoms.Subject,
		editor.FieldVerb:     swatch(tax.VerbDisplay(draft.Atoms.Verb, strings.EqualFold(draft.Atoms.Subject, "I")), tax.VerbColor(draft.Atoms.Verb)),
		editor.FieldObject:   draft.Atoms.Object,
		editor.FieldCategory: swatch(tax.CategoryDisplayName(draft.Category), tax.CategoryColor(draft.Category)),
		editor.FieldPrivacy:  sharing,
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render(statements.Display(draft, tax)), ""}
	for _, f := range editor.Fields {
		label := labelStyle.Render(string(f))
		if changed[f] {
			label = changedStyle.Width(10).Render(string(f) + "*")
		}
		lines = append(lines, label+values[f])
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewActions() string {
	e, ok := m.ctx.State.Entry(m.targetID)
	if !ok {
		return ""
	}
	lines := []string{lipgloss.NewStyle().Bold(true).Render(statements.Display(e, m.ctx.Taxonomy)), ""}
	if len(e.Actions) == 0 {
		return strings.Join(append(lines, statusStyle.Render("No actions yet. Press 'n' to add one.")), "\n")
	}
	for i, a := range e.Actions {
		box := "[ ]"
		if a.Completed {
			box = "[x]"
		}
		line := box + " " + a.Action
		if a.ByDate != "" {
			line += statusStyle.Render("  by " + a.ByDate)
		}
		if a.GratitudeSent {
			line += changedStyle.Render("  thanked")
		}
		if i == m.cursor {
			line = activeTabStyle.Render(">") + " " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
