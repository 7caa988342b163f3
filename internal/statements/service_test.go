package statements

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/store"
	"github.com/foundersandcoders/lift/internal/taxonomy"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newService(entries ...models.Entry) (*Service, *store.Store) {
	st := store.New(store.Snapshot{Entries: entries})
	n := 0
	svc := New(Options{
		Store: st,
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { n++; return fmt.Sprintf("act-%d", n) },
	})
	return svc, st
}

func stmt(id string) models.Entry {
	e := models.Entry{ID: id, Atoms: models.Atoms{Subject: "I", Verb: "need", Object: "focus time"}, Category: "workspace"}
	e.Recompute()
	return e
}

func TestAddAction(t *testing.T) {
	svc, st := newService(stmt("s1"))

	a, err := svc.AddAction("s1", "  block calendar  ", "2026-03-09")
	if err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}
	want := models.Action{ID: "act-1", CreationDate: "2026-03-02T10:00:00Z", ByDate: "2026-03-09", Action: "block calendar"}
	if a != want {
		t.Errorf("action = %+v, want %+v", a, want)
	}
	e, _ := st.Entry("s1")
	if len(e.Actions) != 1 || e.Actions[0] != want {
		t.Errorf("stored actions = %+v", e.Actions)
	}
}

func TestAddActionErrors(t *testing.T) {
	svc, _ := newService(stmt("s1"))
	tests := []struct {
		name    string
		entry   string
		text    string
		byDate  string
		wantErr error
	}{
		{"empty text", "s1", "  ", "", ErrEmptyAction},
		{"bad date", "s1", "x", "09/03/2026", ErrInvalidDate},
		{"unknown entry", "nope", "x", "", lifterrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddAction(tt.entry, tt.text, tt.byDate); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEditActionKeepsDueDate(t *testing.T) {
	svc, _ := newService(stmt("s1"))
	a, _ := svc.AddAction("s1", "first", "2026-03-09")

	got, err := svc.EditAction("s1", a.ID, "second", "")
	if err != nil {
		t.Fatalf("EditAction failed: %v", err)
	}
	if got.Action != "second" || got.ByDate != "2026-03-09" {
		t.Errorf("edited = %+v", got)
	}

	got, _ = svc.EditAction("s1", a.ID, "third", "2026-04-01")
	if got.ByDate != "2026-04-01" {
		t.Errorf("ByDate = %q, want new date", got.ByDate)
	}

	if _, err := svc.EditAction("s1", "missing", "x", ""); !errors.Is(err, lifterrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestToggleAndDeleteAction(t *testing.T) {
	svc, st := newService(stmt("s1"))
	a1, _ := svc.AddAction("s1", "one", "")
	a2, _ := svc.AddAction("s1", "two", "")

	toggled, err := svc.ToggleAction("s1", a1.ID)
	if err != nil || !toggled.Completed {
		t.Fatalf("ToggleAction = %+v, %v", toggled, err)
	}
	if toggled, _ = svc.ToggleAction("s1", a1.ID); toggled.Completed {
		t.Error("second toggle should reopen the action")
	}

	if err := svc.DeleteAction("s1", a1.ID); err != nil {
		t.Fatalf("DeleteAction failed: %v", err)
	}
	e, _ := st.Entry("s1")
	if len(e.Actions) != 1 || e.Actions[0].ID != a2.ID {
		t.Errorf("actions = %+v, want only %s", e.Actions, a2.ID)
	}
}

func TestToggleResolved(t *testing.T) {
	svc, _ := newService(stmt("s1"))
	e, err := svc.ToggleResolved("s1")
	if err != nil || !e.IsResolved {
		t.Fatalf("ToggleResolved = %+v, %v", e, err)
	}
	if e, _ = svc.ToggleResolved("s1"); e.IsResolved {
		t.Error("second toggle should restore")
	}
}

func TestReset(t *testing.T) {
	preset := stmt("p1")
	preset.PresetID = "q-support"
	svc, st := newService(stmt("s1"), preset)

	var released []string
	svc.opts.OnPresetReleased = func(id string) { released = append(released, id) }

	if _, err := svc.Reset("s1"); !errors.Is(err, ErrNotPreset) {
		t.Errorf("Reset(free-form) err = %v, want ErrNotPreset", err)
	}
	id, err := svc.Reset("p1")
	if err != nil || id != "q-support" {
		t.Fatalf("Reset = %q, %v", id, err)
	}
	if _, ok := st.Entry("p1"); ok {
		t.Error("reset statement should be deleted")
	}
	if !reflect.DeepEqual(released, []string{"q-support"}) {
		t.Errorf("released = %v", released)
	}
	if len(st.State().Entries) != 1 {
		t.Errorf("store holds %d entries, want 1", len(st.State().Entries))
	}
}

type fakeGratitude struct {
	err   error
	calls int
}

func (f *fakeGratitude) MarkSent(_ context.Context, entryID, actionID, message string) (models.Action, error) {
	f.calls++
	if f.err != nil {
		return models.Action{}, f.err
	}
	return models.Action{ID: actionID, Action: "book a room", GratitudeSent: true, GratitudeMessage: message}, nil
}

func TestSendGratitude(t *testing.T) {
	svc, st := newService(stmt("s1"))
	a, _ := svc.AddAction("s1", "book a room", "")

	if _, err := svc.SendGratitude(context.Background(), "s1", a.ID, "thanks"); !errors.Is(err, ErrNoGratitude) {
		t.Fatalf("err = %v, want ErrNoGratitude", err)
	}

	g := &fakeGratitude{}
	svc.opts.Gratitude = g

	got, err := svc.SendGratitude(context.Background(), "s1", a.ID, "thank you!")
	if err != nil {
		t.Fatalf("SendGratitude failed: %v", err)
	}
	if !got.GratitudeSent || got.GratitudeMessage != "thank you!" || got.GratitudeSentDate != "2026-03-02T10:00:00Z" {
		t.Errorf("action = %+v", got)
	}
	e, _ := st.Entry("s1")
	if e.Actions[0] != got {
		t.Errorf("stored action = %+v, want %+v", e.Actions[0], got)
	}

	if _, err := svc.SendGratitude(context.Background(), "s1", a.ID, "again"); !errors.Is(err, ErrAlreadyThanked) {
		t.Errorf("err = %v, want ErrAlreadyThanked", err)
	}
	if g.calls != 1 {
		t.Errorf("collaborator called %d times, want 1", g.calls)
	}
}

func TestSendGratitudeFailureLeavesAction(t *testing.T) {
	svc, st := newService(stmt("s1"))
	a, _ := svc.AddAction("s1", "book a room", "")
	boom := errors.New("mail server down")
	svc.opts.Gratitude = &fakeGratitude{err: boom}

	if _, err := svc.SendGratitude(context.Background(), "s1", a.ID, "thanks"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	e, _ := st.Entry("s1")
	if e.Actions[0].GratitudeSent {
		t.Error("failed call should not mark the action")
	}
}

func TestFindDuplicate(t *testing.T) {
	entries := []models.Entry{stmt("s1")}
	if _, ok := FindDuplicate(entries, models.Atoms{Subject: "i", Verb: "NEED", Object: " Focus time "}); !ok {
		t.Error("expected case-insensitive duplicate")
	}
	if _, ok := FindDuplicate(entries, models.Atoms{Subject: "I", Verb: "need", Object: "a break"}); ok {
		t.Error("different object is not a duplicate")
	}
}

func TestPublicAndGrouping(t *testing.T) {
	a := stmt("a")
	a.IsPublic = true
	b := stmt("b")
	b.Category = "Uncategorised"
	c := stmt("c")
	c.IsPublic = true
	c.IsResolved = true
	d := stmt("d")
	d.Category = "balance"
	e := stmt("e")
	e.Category = "uncategorized"

	entries := []models.Entry{a, b, c, d, e}
	if got := Public(entries); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Public() = %+v", got)
	}

	var got [][]string
	for _, g := range ByCategory(entries) {
		ids := []string{g.Category}
		for _, e := range g.Entries {
			ids = append(ids, e.ID)
		}
		got = append(got, ids)
	}
	want := [][]string{{"balance", "d"}, {"workspace", "a", "c"}, {models.Uncategorized, "b", "e"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ByCategory() = %v, want %v", got, want)
	}
}

func TestFormatForManager(t *testing.T) {
	tax := &taxonomy.Taxonomy{Verbs: []models.Verb{
		{ID: "support", Name: "Support", PresentTenseForm: "supports"},
		{ID: "need", Name: "Need"},
	}}
	tests := []struct {
		subject, verb, username, want string
	}{
		{"I", "need", "Eve", "Eve needs quiet"},
		{"My manager", "support", "Eve", "Eve's manager supports quiet"},
		{"I", "need", "", "I need quiet"},
		{"The team", "need", "Eve", "The team needs quiet"},
	}
	for _, tt := range tests {
		e := models.Entry{Atoms: models.Atoms{Subject: tt.subject, Verb: tt.verb, Object: "quiet"}}
		if got := FormatForManager(e, tt.username, tax); got != tt.want {
			t.Errorf("FormatForManager(%q, %q) = %q, want %q", tt.subject, tt.username, got, tt.want)
		}
	}

	e := models.Entry{Atoms: models.Atoms{Subject: "I", Verb: "support", Object: "Sam"}}
	if got := Display(e, tax); got != "I support Sam" {
		t.Errorf("Display() = %q", got)
	}
}
