// Package tui is the interactive statement builder.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/editor"
	"github.com/foundersandcoders/lift/internal/statements"
	"github.com/foundersandcoders/lift/internal/store"
	"github.com/foundersandcoders/lift/internal/tui/components/questionlist"
	"github.com/foundersandcoders/lift/internal/tui/components/statementlist"
	"github.com/foundersandcoders/lift/internal/wizard"
)

const unsyncedPollInterval = 2 * time.Second

type unsyncedTickMsg struct{}

// storeChangedMsg reports a dispatch to the statement store.
type storeChangedMsg struct{}

// wizardRetryMsg retries an advance the transition lock held back.
type wizardRetryMsg struct{}

// stepAnswer is bound to the fields of the form on screen.
type stepAnswer struct {
	Choice string
	Text   string
	ByDate string
	Public bool
}

type Model struct {
	ctx        *cli.Context
	statements *statements.Service
	sessions   *editor.Sessions

	state constants.SessionState
	tab   constants.SessionState
	keys  KeyMap
	help  help.Model

	entryList    statementlist.Model
	questionList questionlist.Model

	form      *huh.Form
	answer    *stepAnswer
	wizard    *wizard.Wizard
	editField editor.Field
	targetID  string

	// action screen
	actionsOpen bool
	actionID    string
	cursor      int

	changes     chan struct{}
	unsubscribe func()

	status   string
	err      error
	unsynced int
	quitting bool
	width    int
	height   int
}

// NewModel builds the program model over an opened context.
func NewModel(ctx *cli.Context) Model {
	changes := make(chan struct{}, 1)
	unsubscribe := ctx.State.Subscribe(func(store.Snapshot) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	m := Model{
		ctx:          ctx,
		statements:   ctx.Statements(),
		sessions:     editor.NewSessions(ctx.State, ctx.Syncer),
		state:        constants.StateList,
		tab:          constants.StateList,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		entryList:    statementlist.New(nil, ctx.Taxonomy, 0, 0),
		questionList: questionlist.New(ctx.Taxonomy, 0, 0),
		changes:      changes,
		unsubscribe:  unsubscribe,
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateEditing:
		return []key.Binding{m.keys.Subject, m.keys.Verb, m.keys.Object, m.keys.Category, m.keys.Privacy, m.keys.Save, m.keys.Back}
	case constants.StateWizard, constants.StateEditPart, constants.StateAddAction, constants.StateGratitude:
		return []key.Binding{m.keys.Enter, m.keys.Back}
	case constants.StateActions:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.NewAction, m.keys.EditAction, m.keys.Remove, m.keys.Thank, m.keys.Back}
	case constants.StateConfirmDelete, constants.StateConfirmReset, constants.StateConfirmDeleteAction:
		return []key.Binding{m.keys.Confirm, m.keys.Deny}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state == m.tab {
		return m.keys.FullHelp()
	}
	return [][]key.Binding{m.ShortHelp()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickUnsynced(), waitForChange(m.changes))
}

// Close stops listening to the store.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// waitForChange blocks until the store reports a dispatch. Bursts collapse
// into one message.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return storeChangedMsg{}
	}
}

func tickUnsynced() tea.Cmd {
	return tea.Tick(unsyncedPollInterval, func(time.Time) tea.Msg { return unsyncedTickMsg{} })
}

// refresh reloads both lists from the store.
func (m *Model) refresh() {
	entries := m.ctx.State.State().Entries
	m.ctx.Questions.Sync(entries)
	m.entryList.SetEntries(entries)
	m.questionList.SetCatalog(m.ctx.Questions)
	m.unsynced = len(m.ctx.Syncer.Unsynced())
}

// back returns to the active tab.
func (m *Model) back() {
	m.state = m.tab
	m.form = nil
	m.answer = nil
	m.targetID = ""
	m.actionsOpen = false
	m.actionID = ""
	m.refresh()
}

func (m *Model) fail(err error) {
	m.err = err
	m.status = ""
}

func (m *Model) notify(status string) {
	m.status = status
	m.err = nil
}

func (m *Model) resize() {
	// tabs, banner, status and help
	h := m.height - 8
	if h < 0 {
		h = 0
	}
	w, _ := docStyle.GetFrameSize()
	m.entryList.SetSize(m.width-w, h)
	m.questionList.SetSize(m.width-w, h)
}
