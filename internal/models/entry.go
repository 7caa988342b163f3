package models

import (
	"errors"
	"fmt"
	"strings"
)

// Atoms is the grammatical decomposition of a statement.
type Atoms struct {
	Subject   string   `json:"subject"`
	Verb      string   `json:"verb"` // verb id
	Object    string   `json:"object"`
	Adverbial []string `json:"adverbial,omitempty"`
}

// Input renders atoms as "{subject} {verb} {object}[ {adverbial...}]".
func (a Atoms) Input() string {
	input := fmt.Sprintf("%s %s %s", a.Subject, a.Verb, a.Object)
	if adverbial := strings.Join(a.Adverbial, " "); adverbial != "" {
		input += " " + adverbial
	}
	return input
}

// Action is a follow-up task attached to an entry.
type Action struct {
	ID                string `json:"id"`
	CreationDate      string `json:"creationDate"` // RFC3339 timestamp
	ByDate            string `json:"byDate"`       // YYYY-MM-DD, optional
	Action            string `json:"action"`
	Completed         bool   `json:"completed"`
	GratitudeSent     bool   `json:"gratitudeSent,omitempty"`
	GratitudeMessage  string `json:"gratitudeMessage,omitempty"`
	GratitudeSentDate string `json:"gratitudeSentDate,omitempty"`
}

// Entry is a statement.
type Entry struct {
	ID         string   `json:"id"`
	Input      string   `json:"input"`
	IsPublic   bool     `json:"isPublic"`
	Atoms      Atoms    `json:"atoms"`
	Actions    []Action `json:"actions,omitempty"`
	Category   string   `json:"category"`
	PresetID   string   `json:"presetId,omitempty"`
	IsResolved bool     `json:"isResolved,omitempty"`
}

var (
	ErrMissingID   = errors.New("entry id is required")
	ErrMissingAtom = errors.New("subject, verb and object are required")
	ErrStaleInput  = errors.New("input does not match atoms")
)

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	c := e
	if e.Atoms.Adverbial != nil {
		c.Atoms.Adverbial = append([]string{}, e.Atoms.Adverbial...)
	}
	if e.Actions != nil {
		c.Actions = append([]Action{}, e.Actions...)
	}
	return c
}

// Recompute refreshes the denormalized Input from Atoms.
func (e *Entry) Recompute() {
	e.Input = e.Atoms.Input()
}

// WithAtoms returns a copy with the given atoms and a recomputed Input.
func (e Entry) WithAtoms(atoms Atoms) Entry {
	c := e.Clone()
	c.Atoms = atoms
	c.Recompute()
	return c
}

// Normalize applies the data-model boundary rules: canonical category and
// an Input derived from Atoms.
func (e Entry) Normalize() Entry {
	c := e.Clone()
	c.Category = CanonicalCategory(c.Category)
	c.Recompute()
	return c
}

// Action returns the action with the given id.
func (e Entry) Action(id string) (Action, bool) {
	for _, a := range e.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Validate checks the entry invariants.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(e.Atoms.Subject) == "" ||
		strings.TrimSpace(e.Atoms.Verb) == "" ||
		strings.TrimSpace(e.Atoms.Object) == "" {
		return ErrMissingAtom
	}
	if e.Input != e.Atoms.Input() {
		return ErrStaleInput
	}
	return nil
}
