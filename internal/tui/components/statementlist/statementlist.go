package statementlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/statements"
	"github.com/foundersandcoders/lift/internal/taxonomy"
)

type AddMsg struct{}

type EditMsg struct {
	ID string
}

type DeleteMsg struct {
	ID string
}

type ResetMsg struct {
	ID string
}

type ResolveMsg struct {
	ID string
}

type AddActionMsg struct {
	ID string
}

// ActionsMsg opens the follow-up actions of a statement.
type ActionsMsg struct {
	ID string
}

type Item struct {
	Entry       models.Entry
	title       string
	description string
}

func newItem(e models.Entry, tax *taxonomy.Taxonomy) Item {
	visibility := "private"
	if e.IsPublic {
		visibility = "shared"
	}
	desc := fmt.Sprintf("%s | %s", tax.CategoryDisplayName(e.Category), visibility)
	if n := len(e.Actions); n > 0 {
		done := 0
		for _, a := range e.Actions {
			if a.Completed {
				done++
			}
		}
		desc += fmt.Sprintf(" | actions %d/%d", done, n)
	}

	title := statements.Display(e, tax)
	if e.IsResolved {
		title = "✓ " + title
		desc += " | resolved"
	}
	return Item{Entry: e, title: title, description: desc}
}

func (i Item) Title() string       { return i.title }
func (i Item) Description() string { return i.description }
func (i Item) FilterValue() string { return i.Entry.Input }

type KeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Reset   key.Binding
	Resolve key.Binding
	Action  key.Binding
	Actions key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset answer"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "resolve"),
		),
		Action: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new action"),
		),
		Actions: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "actions"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	tax  *taxonomy.Taxonomy
}

func New(entries []models.Entry, tax *taxonomy.Taxonomy, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Statements"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// quitting belongs to the program
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	keys := DefaultKeyMap()
	bindings := func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Resolve, keys.Action, keys.Actions, keys.Reset}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	m := Model{list: l, keys: keys, tax: tax}
	m.SetEntries(entries)
	return m
}

// SetEntries replaces the items, grouped by category.
func (m *Model) SetEntries(entries []models.Entry) {
	var items []list.Item
	for _, g := range statements.ByCategory(entries) {
		for _, e := range g.Entries {
			items = append(items, newItem(e, m.tax))
		}
	}
	m.list.SetItems(items)
}

// Selected returns the highlighted statement.
func (m Model) Selected() (models.Entry, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Entry, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddMsg{} }
		}
		if e, ok := m.Selected(); ok {
			id := e.ID
			switch {
			case key.Matches(msg, m.keys.Edit):
				return m, func() tea.Msg { return EditMsg{ID: id} }
			case key.Matches(msg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteMsg{ID: id} }
			case key.Matches(msg, m.keys.Resolve):
				return m, func() tea.Msg { return ResolveMsg{ID: id} }
			case key.Matches(msg, m.keys.Action):
				return m, func() tea.Msg { return AddActionMsg{ID: id} }
			case key.Matches(msg, m.keys.Actions):
				return m, func() tea.Msg { return ActionsMsg{ID: id} }
			case key.Matches(msg, m.keys.Reset):
				if e.PresetID != "" {
					return m, func() tea.Msg { return ResetMsg{ID: id} }
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No statements yet.\n  Press 'a' to write one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the filter prompt has the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
