package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the outer shell and the edit session.
// List components carry their own.
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Help     key.Binding
	Confirm  key.Binding
	Deny     key.Binding

	// edit session
	Subject  key.Binding
	Verb     key.Binding
	Object   key.Binding
	Category key.Binding
	Privacy  key.Binding
	Save     key.Binding

	// action screen
	NewAction  key.Binding
	EditAction key.Binding
	Toggle     key.Binding
	Remove     key.Binding
	Thank      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help},
		{k.Up, k.Down, k.Enter, k.Back},
	}
}

// bind shows the first key in help.
func bind(desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc))
}

func DefaultKeyMap() KeyMap {
	k := KeyMap{
		Tab:      bind("next tab", "tab"),
		ShiftTab: bind("prev tab", "shift+tab"),
		Quit:     bind("quit", "q", "ctrl+c"),
		Enter:    bind("select", "enter"),
		Back:     bind("back", "esc"),
		Help:     bind("toggle help", "?"),
		Confirm:  bind("yes", "y"),
		Deny:     bind("no", "n", "esc"),
		Subject:  bind("subject", "s"),
		Verb:     bind("verb", "v"),
		Object:   bind("object", "o"),
		Category: bind("category", "c"),
		Privacy:  bind("share/unshare", "p"),
		Save:     bind("save", "enter", "ctrl+s"),

		NewAction:  bind("new action", "n"),
		EditAction: bind("edit action", "e"),
		Toggle:     bind("done/undo", "x", " "),
		Remove:     bind("delete action", "d"),
		Thank:      bind("send thanks", "g"),
	}
	k.Up = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	k.Down = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	return k
}
