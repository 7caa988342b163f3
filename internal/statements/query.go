package statements

import (
	"sort"
	"strings"

	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/taxonomy"
)

// FindDuplicate returns the first entry with the same subject, verb and
// object, compared case-insensitively. It is advisory; the store accepts
// duplicates.
func FindDuplicate(entries []models.Entry, atoms models.Atoms) (models.Entry, bool) {
	key := func(a models.Atoms) [3]string {
		return [3]string{
			strings.ToLower(strings.TrimSpace(a.Subject)),
			strings.ToLower(strings.TrimSpace(a.Verb)),
			strings.ToLower(strings.TrimSpace(a.Object)),
		}
	}
	want := key(atoms)
	for _, e := range entries {
		if key(e.Atoms) == want {
			return e, true
		}
	}
	return models.Entry{}, false
}

// Public returns the unresolved entries shared with the manager.
func Public(entries []models.Entry) []models.Entry {
	var out []models.Entry
	for _, e := range entries {
		if e.IsPublic && !e.IsResolved {
			out = append(out, e)
		}
	}
	return out
}

// Group is the entries of one category.
type Group struct {
	Category string
	Entries  []models.Entry
}

// ByCategory groups entries under their normalized category, alphabetically
// with the uncategorized group last. Entries keep their relative order.
func ByCategory(entries []models.Entry) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, e := range entries {
		key := models.NormalizeCategory(e.Category)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Category: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		ui, uj := groups[i].Category == models.Uncategorized, groups[j].Category == models.Uncategorized
		if ui != uj {
			return uj
		}
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// Display renders an entry for the list view, conjugating the verb for the
// subject.
func Display(e models.Entry, tax *taxonomy.Taxonomy) string {
	a := e.Atoms
	a.Verb = tax.VerbDisplay(a.Verb, strings.EqualFold(a.Subject, "I"))
	return a.Input()
}

// FormatForManager renders an entry in the third person for sharing:
// "I" becomes the username and "My x" becomes "<username>'s x".
func FormatForManager(e models.Entry, username string, tax *taxonomy.Taxonomy) string {
	a := e.Atoms
	if username != "" {
		switch {
		case strings.EqualFold(a.Subject, "I"):
			a.Subject = username
		case strings.HasPrefix(strings.ToLower(a.Subject), "my "):
			a.Subject = username + "'s " + a.Subject[3:]
		}
	}
	a.Verb = tax.VerbDisplay(a.Verb, strings.EqualFold(a.Subject, "I"))
	return a.Input()
}
