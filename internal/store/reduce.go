package store

import "github.com/foundersandcoders/lift/internal/models"

// Snapshot is the application state at one point in time. Snapshots returned
// by Reduce share nothing mutable with their input.
type Snapshot struct {
	Username           string
	UserEmail          string
	ManagerName        string
	ManagerEmail       string
	Entries            []models.Entry
	OriginalCategories map[string]string
}

// Entry returns the entry with the given id.
func (s Snapshot) Entry(id string) (models.Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.Entry{}, false
}

// OriginalCategory returns the category recorded for an open edit session.
func (s Snapshot) OriginalCategory(id string) (string, bool) {
	c, ok := s.OriginalCategories[id]
	return c, ok
}

// Settings returns the identity fields as a settings value.
func (s Snapshot) Settings() models.Settings {
	return models.Settings{
		Username:     s.Username,
		UserEmail:    s.UserEmail,
		ManagerName:  s.ManagerName,
		ManagerEmail: s.ManagerEmail,
	}
}

// Reduce applies an action and returns the next snapshot.
func Reduce(s Snapshot, a Action) Snapshot {
	next := s.clone()

	switch a := a.(type) {
	case SetUsername:
		next.Username = a.Username
	case SetUserEmail:
		next.UserEmail = a.Email
	case SetManagerName:
		next.ManagerName = a.Name
	case SetManagerEmail:
		next.ManagerEmail = a.Email
	case SetEntries:
		next.Entries = cloneEntries(a.Entries)
	case AddEntry:
		next.Entries = append(next.Entries, a.Entry.Clone())
	case UpdateEntry:
		for i := range next.Entries {
			if next.Entries[i].ID == a.Entry.ID {
				next.Entries[i] = a.Entry.Clone()
			}
		}
	case DeleteEntry:
		kept := next.Entries[:0]
		for _, e := range next.Entries {
			if e.ID != a.ID {
				kept = append(kept, e)
			}
		}
		next.Entries = kept
	case SetOriginalCategory:
		next.OriginalCategories[a.EntryID] = a.Category
	case ClearOriginalCategory:
		delete(next.OriginalCategories, a.EntryID)
	}

	return next
}

func (s Snapshot) clone() Snapshot {
	c := s
	c.Entries = cloneEntries(s.Entries)
	c.OriginalCategories = make(map[string]string, len(s.OriginalCategories))
	for k, v := range s.OriginalCategories {
		c.OriginalCategories[k] = v
	}
	return c
}

func cloneEntries(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
