package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestAtomsInput(t *testing.T) {
	tests := []struct {
		name     string
		atoms    Atoms
		expected string
	}{
		{
			name:     "no adverbial",
			atoms:    Atoms{Subject: "Eve", Verb: "support", Object: "the project"},
			expected: "Eve support the project",
		},
		{
			name:     "empty adverbial slice",
			atoms:    Atoms{Subject: "Eve", Verb: "support", Object: "the project", Adverbial: []string{}},
			expected: "Eve support the project",
		},
		{
			name:     "with adverbial",
			atoms:    Atoms{Subject: "I", Verb: "enjoy", Object: "pairing", Adverbial: []string{"on", "Fridays"}},
			expected: "I enjoy pairing on Fridays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.atoms.Input(); got != tt.expected {
				t.Errorf("Input() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEntryCloneIsDeep(t *testing.T) {
	orig := Entry{
		ID:      "1",
		Atoms:   Atoms{Subject: "I", Verb: "like", Object: "tea", Adverbial: []string{"daily"}},
		Actions: []Action{{ID: "a1", Action: "buy tea"}},
	}
	clone := orig.Clone()
	clone.Atoms.Adverbial[0] = "weekly"
	clone.Actions[0].Action = "drink tea"

	if orig.Atoms.Adverbial[0] != "daily" {
		t.Errorf("Clone shares adverbial slice with original")
	}
	if orig.Actions[0].Action != "buy tea" {
		t.Errorf("Clone shares actions slice with original")
	}
}

func TestEntryWithAtomsRecomputesInput(t *testing.T) {
	e := Entry{ID: "1", Input: "stale", Atoms: Atoms{Subject: "I", Verb: "like", Object: "tea"}}
	updated := e.WithAtoms(Atoms{Subject: "I", Verb: "love", Object: "coffee"})

	if updated.Input != "I love coffee" {
		t.Errorf("Input = %q, want %q", updated.Input, "I love coffee")
	}
	if e.Input != "stale" {
		t.Errorf("WithAtoms modified the receiver")
	}
}

func TestEntryNormalize(t *testing.T) {
	e := Entry{ID: "1", Category: "Uncategorised", Atoms: Atoms{Subject: "I", Verb: "like", Object: "tea"}}
	n := e.Normalize()
	if n.Category != Uncategorized {
		t.Errorf("Category = %q, want %q", n.Category, Uncategorized)
	}
	if n.Input != "I like tea" {
		t.Errorf("Input = %q, want %q", n.Input, "I like tea")
	}

	e.Category = "wellbeing"
	if got := e.Normalize().Category; got != "wellbeing" {
		t.Errorf("Category = %q, want wellbeing", got)
	}
}

func TestEntryValidate(t *testing.T) {
	valid := Entry{ID: "1", Atoms: Atoms{Subject: "I", Verb: "like", Object: "tea"}}
	valid.Recompute()

	tests := []struct {
		name    string
		mutate  func(e *Entry)
		wantErr error
	}{
		{name: "valid", mutate: func(e *Entry) {}, wantErr: nil},
		{name: "missing id", mutate: func(e *Entry) { e.ID = " " }, wantErr: ErrMissingID},
		{name: "blank object", mutate: func(e *Entry) { e.Atoms.Object = "  "; e.Recompute() }, wantErr: ErrMissingAtom},
		{name: "stale input", mutate: func(e *Entry) { e.Input = "I like coffee" }, wantErr: ErrStaleInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid.Clone()
			tt.mutate(&e)
			err := e.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEntryAction(t *testing.T) {
	e := Entry{Actions: []Action{{ID: "a1", Action: "call"}, {ID: "a2", Action: "write"}}}
	a, ok := e.Action("a2")
	if !ok || !reflect.DeepEqual(a, e.Actions[1]) {
		t.Errorf("Action(a2) = %+v, %v", a, ok)
	}
	if _, ok := e.Action("missing"); ok {
		t.Errorf("Action(missing) should not be found")
	}
}
