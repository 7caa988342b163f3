package questionlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/questions"
	"github.com/foundersandcoders/lift/internal/taxonomy"
)

// StartMsg asks for a wizard launched from a question.
type StartMsg struct {
	Question models.SetQuestion
}

type SnoozeMsg struct {
	ID string
}

type Item struct {
	Question models.SetQuestion
	category string
}

func (i Item) Title() string {
	if i.Question.IsSnoozed {
		return "z " + i.Question.MainQuestion
	}
	return i.Question.MainQuestion
}

func (i Item) Description() string {
	if i.Question.IsSnoozed {
		return i.category + " | snoozed"
	}
	return i.category
}

func (i Item) FilterValue() string { return i.Question.MainQuestion }

type KeyMap struct {
	Answer key.Binding
	Snooze key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Answer: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "answer"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snooze"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	tax  *taxonomy.Taxonomy
}

func New(tax *taxonomy.Taxonomy, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Questions"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// quitting belongs to the program
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	keys := DefaultKeyMap()
	bindings := func() []key.Binding { return []key.Binding{keys.Answer, keys.Snooze} }
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings
	return Model{list: l, keys: keys, tax: tax}
}

// SetCatalog lists the available questions by category, then the snoozed
// ones. Answered questions are left out.
func (m *Model) SetCatalog(c *questions.Catalog) {
	var items []list.Item
	for _, g := range c.Grouped() {
		name := m.tax.CategoryDisplayName(g.Category)
		for _, q := range g.Questions {
			items = append(items, Item{Question: q, category: name})
		}
	}
	for _, q := range c.Snoozed() {
		if c.Used(q.ID) {
			continue
		}
		category := q.OriginalCategory
		if category == "" {
			category = q.Category
		}
		items = append(items, Item{Question: q, category: m.tax.CategoryDisplayName(category)})
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if i, ok := m.list.SelectedItem().(Item); ok {
			switch {
			case key.Matches(msg, m.keys.Answer):
				if !i.Question.IsSnoozed {
					return m, func() tea.Msg { return StartMsg{Question: i.Question} }
				}
				return m, nil
			case key.Matches(msg, m.keys.Snooze):
				return m, func() tea.Msg { return SnoozeMsg{ID: i.Question.ID} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Every question is answered."
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
