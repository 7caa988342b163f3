package store

import (
	"reflect"
	"testing"

	"github.com/foundersandcoders/lift/internal/models"
)

func entry(id, subject string) models.Entry {
	e := models.Entry{
		ID:       id,
		Atoms:    models.Atoms{Subject: subject, Verb: "support", Object: "the team", Adverbial: []string{"daily"}},
		Category: "teamwork",
	}
	e.Recompute()
	return e
}

func TestReduceEntries(t *testing.T) {
	a := entry("a", "I")
	b := entry("b", "Eve")

	tests := []struct {
		name    string
		initial []models.Entry
		action  Action
		want    []string
	}{
		{"add appends", []models.Entry{a}, AddEntry{Entry: b}, []string{"a", "b"}},
		{"add allows duplicate id", []models.Entry{a}, AddEntry{Entry: a}, []string{"a", "a"}},
		{"delete removes", []models.Entry{a, b}, DeleteEntry{ID: "a"}, []string{"b"}},
		{"delete unknown is no-op", []models.Entry{a}, DeleteEntry{ID: "z"}, []string{"a"}},
		{"set replaces", []models.Entry{a}, SetEntries{Entries: []models.Entry{b}}, []string{"b"}},
		{"update unknown is no-op", []models.Entry{a}, UpdateEntry{Entry: b}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Reduce(Snapshot{Entries: tt.initial}, tt.action)
			var ids []string
			for _, e := range next.Entries {
				ids = append(ids, e.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestReduceUpdateReplacesByID(t *testing.T) {
	a := entry("a", "I")
	updated := a.WithAtoms(models.Atoms{Subject: "Eve", Verb: "value", Object: "quiet"})

	next := Reduce(Snapshot{Entries: []models.Entry{a, entry("b", "I")}}, UpdateEntry{Entry: updated})
	got, ok := next.Entry("a")
	if !ok {
		t.Fatal("entry a missing after update")
	}
	if !reflect.DeepEqual(got, updated) {
		t.Errorf("got %+v, want %+v", got, updated)
	}
	if len(next.Entries) != 2 {
		t.Errorf("len = %d, want 2", len(next.Entries))
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	a := entry("a", "I")
	prev := Snapshot{
		Entries:            []models.Entry{a},
		OriginalCategories: map[string]string{"a": "work"},
	}
	before := prev.clone()

	actions := []Action{
		AddEntry{Entry: entry("b", "Eve")},
		UpdateEntry{Entry: a.WithAtoms(models.Atoms{Subject: "x", Verb: "y", Object: "z"})},
		DeleteEntry{ID: "a"},
		SetOriginalCategory{EntryID: "a", Category: "other"},
		ClearOriginalCategory{EntryID: "a"},
		SetUsername{Username: "Eve"},
	}
	for _, act := range actions {
		next := Reduce(prev, act)
		if !reflect.DeepEqual(prev, before) {
			t.Fatalf("%T mutated the input snapshot", act)
		}
		if len(next.Entries) > 0 && len(prev.Entries) > 0 {
			next.Entries[0].Atoms.Adverbial = append(next.Entries[0].Atoms.Adverbial[:0], "changed")
			if prev.Entries[0].Atoms.Adverbial[0] != "daily" {
				t.Fatalf("%T shares adverbial slice with input", act)
			}
		}
	}
}

func TestReduceIdentity(t *testing.T) {
	s := Reduce(Snapshot{}, SetUsername{Username: "Eve"})
	s = Reduce(s, SetUserEmail{Email: "eve@example.com"})
	s = Reduce(s, SetManagerName{Name: "Mo"})
	s = Reduce(s, SetManagerEmail{Email: "mo@example.com"})

	want := models.Settings{Username: "Eve", UserEmail: "eve@example.com", ManagerName: "Mo", ManagerEmail: "mo@example.com"}
	if got := s.Settings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestReduceOriginalCategory(t *testing.T) {
	s := Reduce(Snapshot{}, SetOriginalCategory{EntryID: "a", Category: "work"})
	if c, ok := s.OriginalCategory("a"); !ok || c != "work" {
		t.Errorf("OriginalCategory = %q, %v", c, ok)
	}
	s = Reduce(s, ClearOriginalCategory{EntryID: "a"})
	if _, ok := s.OriginalCategory("a"); ok {
		t.Error("expected original category to be cleared")
	}
}

func TestStoreDispatchNotifies(t *testing.T) {
	st := New(Snapshot{})
	var seen []int
	unsubscribe := st.Subscribe(func(s Snapshot) {
		seen = append(seen, len(s.Entries))
	})

	st.Dispatch(AddEntry{Entry: entry("a", "I")})
	st.Dispatch(AddEntry{Entry: entry("b", "I")})
	unsubscribe()
	st.Dispatch(DeleteEntry{ID: "a"})

	if !reflect.DeepEqual(seen, []int{1, 2}) {
		t.Errorf("listener saw %v, want [1 2]", seen)
	}
	if got := len(st.State().Entries); got != 1 {
		t.Errorf("len = %d, want 1", got)
	}
}

func TestStoreStateIsCopy(t *testing.T) {
	st := New(Snapshot{Entries: []models.Entry{entry("a", "I")}})
	s := st.State()
	s.Entries[0].Atoms.Subject = "changed"

	got, _ := st.Entry("a")
	if got.Atoms.Subject != "I" {
		t.Errorf("store state mutated through State(): %q", got.Atoms.Subject)
	}
}

func TestSeedDefaults(t *testing.T) {
	st := New(Snapshot{})
	if !st.SeedDefaults([]models.Entry{entry("a", "I")}) {
		t.Fatal("expected seed to apply on empty store")
	}
	if st.SeedDefaults([]models.Entry{entry("b", "I")}) {
		t.Fatal("expected seed to be skipped on non-empty store")
	}
	if _, ok := st.Entry("b"); ok {
		t.Error("second seed should not have been applied")
	}
}
