package wizard

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSubmitFreeForm(t *testing.T) {
	h := newHarness(t, "Eve", nil)
	public := true

	entry, err := h.w.Submit(context.Background(), Answers{
		Category:   "workspace",
		Verb:       "need",
		Object:     "quiet",
		Public:     &public,
		Complement: "in the afternoon",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if entry.Input != "Eve need quiet in the afternoon" || !entry.IsPublic || entry.Category != "workspace" {
		t.Errorf("entry = %+v", entry)
	}
	want := []string{
		"confirm:category", "confirm:subject", "confirm:verb", "confirm:object", "confirm:privacy",
		"complete:entry-1", "close",
	}
	if !reflect.DeepEqual(h.events, want) {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name    string
		preset  string
		answers Answers
		wantErr error
	}{
		{"missing object", "", Answers{Verb: "need"}, ErrIncomplete},
		{"unknown verb", "", Answers{Verb: "juggle", Object: "x"}, ErrUnknownVerb},
		{"verb outside preset", "q-support", Answers{Verb: "avoid", Object: "x"}, ErrUnknownVerb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "Eve", nil)
			if tt.preset != "" {
				h = newHarness(t, "Eve", presetQuestion(t, tt.preset))
			}
			if _, err := h.w.Submit(context.Background(), tt.answers); !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if len(h.store.State().Entries) != 0 {
				t.Error("failed Submit stored an entry")
			}
		})
	}
}

func TestSubmitKeepsPresetAnswers(t *testing.T) {
	h := newHarness(t, "Eve", presetQuestion(t, "q-communication"))

	entry, err := h.w.Submit(context.Background(), Answers{Subject: "Bob", Verb: "avoid", Object: "long calls"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if entry.Input != "Eve prefer long calls" || entry.PresetID != "q-communication" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestSubmitIgnoresTransitionLock(t *testing.T) {
	h := newHarness(t, "Eve", nil)
	if !h.w.GoNext() {
		t.Fatal("GoNext refused")
	}
	if !h.w.Locked() {
		t.Fatal("expected lock after GoNext")
	}
	if _, err := h.w.Submit(context.Background(), Answers{Verb: "need", Object: "quiet"}); err != nil {
		t.Errorf("Submit under lock failed: %v", err)
	}
}
