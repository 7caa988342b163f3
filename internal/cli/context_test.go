package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foundersandcoders/lift/internal/config"
	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/storage/sqlite"
	"github.com/foundersandcoders/lift/internal/taxonomy"
	"github.com/foundersandcoders/lift/internal/wizard"
)

func openContext(t *testing.T, cfg config.Config, entries ...models.Entry) (*Context, *bytes.Buffer) {
	t.Helper()
	st := sqlite.NewStore(filepath.Join(t.TempDir(), "lift.db"))
	if err := st.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	for _, e := range entries {
		if err := st.AddEntry(e); err != nil {
			t.Fatalf("AddEntry() error = %v", err)
		}
	}
	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatal(err)
	}

	var errOut bytes.Buffer
	ctx := &Context{Store: st, Config: cfg, Taxonomy: tax, Out: &bytes.Buffer{}, ErrOut: &errOut}
	if err := ctx.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, &errOut
}

func entryWithID(id string) models.Entry {
	return models.Entry{
		ID:    id,
		Atoms: models.Atoms{Subject: "I", Verb: "need", Object: "focus time"},
	}.Normalize()
}

func TestEntryLookup(t *testing.T) {
	ctx, _ := openContext(t, config.Default(),
		entryWithID("abc123"), entryWithID("abd456"), entryWithID("xyz789"))

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr string
	}{
		{"exact id", "abc123", "abc123", ""},
		{"unique prefix", "xy", "xyz789", ""},
		{"ambiguous prefix", "ab", "", "ambiguous"},
		{"unknown", "nope", "", "not found"},
		{"empty", "", "", "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ctx.Entry(tt.ref)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Entry(%q) error = %v, want %q", tt.ref, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Entry(%q) error = %v", tt.ref, err)
			}
			if e.ID != tt.wantID {
				t.Errorf("Entry(%q) = %s, want %s", tt.ref, e.ID, tt.wantID)
			}
		})
	}
}

func TestEntryNotFoundIsSentinel(t *testing.T) {
	ctx, _ := openContext(t, config.Default())
	if _, err := ctx.Entry("missing"); !errors.Is(err, lifterrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestOpenAppliesConfiguredIdentity(t *testing.T) {
	cfg := config.Default()
	cfg.Username = "Ada"
	cfg.Email = "ada@example.com"
	ctx, _ := openContext(t, cfg)

	s := ctx.State.State()
	if s.Username != "Ada" || s.UserEmail != "ada@example.com" {
		t.Errorf("identity = %q <%s>", s.Username, s.UserEmail)
	}
}

func TestSaveSettingsPersistsSnoozed(t *testing.T) {
	ctx, _ := openContext(t, config.Default())
	if _, err := ctx.Questions.ToggleSnooze("q-support"); err != nil {
		t.Fatal(err)
	}
	if err := ctx.SaveSettings(); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings.SnoozedQuestions) != 1 || settings.SnoozedQuestions[0] != "q-support" {
		t.Errorf("SnoozedQuestions = %v", settings.SnoozedQuestions)
	}
}

func TestPresetAnswerMarksQuestionUsed(t *testing.T) {
	cfg := config.Default()
	cfg.Username = "Ada"
	ctx, _ := openContext(t, cfg)

	q, err := ctx.Questions.Question("q-support")
	if err != nil {
		t.Fatal(err)
	}
	entry, err := ctx.Wizard(&q).Submit(context.Background(), wizard.Answers{Verb: "value", Object: "quick reviews"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if entry.Atoms.Subject != "Ada" || entry.PresetID != "q-support" {
		t.Errorf("entry = %+v", entry)
	}
	if !ctx.Questions.Used("q-support") {
		t.Fatal("question not marked used")
	}

	if _, err := ctx.Statements().Reset(entry.ID); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if ctx.Questions.Used("q-support") {
		t.Error("question still used after reset")
	}
}

func TestRapidChangesPersistLastVersion(t *testing.T) {
	ctx, _ := openContext(t, config.Default(), entryWithID("e1"))
	svc := ctx.Statements()

	a, err := svc.AddAction("e1", "book a quiet room", "")
	if err != nil {
		t.Fatalf("AddAction() error = %v", err)
	}
	for range 15 {
		if _, err := svc.ToggleAction("e1", a.ID); err != nil {
			t.Fatalf("ToggleAction() error = %v", err)
		}
	}
	ctx.Flush()

	want, _ := ctx.State.Entry("e1")
	got, err := ctx.Store.GetEntry("e1")
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if len(got.Actions) != 1 || got.Actions[0].Completed != want.Actions[0].Completed {
		t.Errorf("stored actions = %+v, want %+v", got.Actions, want.Actions)
	}
	if !want.Actions[0].Completed {
		t.Error("odd number of toggles should leave the action completed")
	}
	if u := ctx.Syncer.Unsynced(); len(u) != 0 {
		t.Errorf("Unsynced() = %v, want none", u)
	}
}
