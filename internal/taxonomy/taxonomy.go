// Package taxonomy holds the static category tree and verb catalog used to
// filter and color the choices offered when building a statement.
package taxonomy

import (
	"sort"
	"strings"

	"github.com/foundersandcoders/lift/internal/models"
)

// Taxonomy bundles the immutable catalog loaded at startup.
type Taxonomy struct {
	Root        models.Category
	Verbs       []models.Verb
	Questions   []models.SetQuestion
	Descriptors []models.Descriptor
}

// Category returns the node with the given name, or nil.
func (t *Taxonomy) Category(name string) *models.Category {
	return FindCategoryByName(&t.Root, name)
}

// CategoryByID returns the node with the given id (case-insensitive), or nil.
func (t *Taxonomy) CategoryByID(id string) *models.Category {
	var found *models.Category
	walk(&t.Root, func(c *models.Category) {
		if found == nil && strings.EqualFold(c.ID, id) {
			found = c
		}
	})
	return found
}

// Categories returns every node below the root, pre-order.
func (t *Taxonomy) Categories() []models.Category {
	var out []models.Category
	walk(&t.Root, func(c *models.Category) {
		if c != &t.Root {
			out = append(out, *c)
		}
	})
	return out
}

// Verb returns the verb with the given id.
func (t *Taxonomy) Verb(id string) (models.Verb, bool) {
	for _, v := range t.Verbs {
		if v.ID == id {
			return v, true
		}
	}
	return models.Verb{}, false
}

// VerbsFor returns the verbs matching a category name, most popular first.
// An empty or unknown name applies no filter.
func (t *Taxonomy) VerbsFor(categoryName string) []models.Verb {
	verbs := FilterVerbs(t.Verbs, t.Category(categoryName))
	sort.SliceStable(verbs, func(i, j int) bool {
		if verbs[i].Popularity != verbs[j].Popularity {
			return verbs[i].Popularity > verbs[j].Popularity
		}
		return verbs[i].Name < verbs[j].Name
	})
	return verbs
}

// VerbColor resolves the display color of a verb id.
func (t *Taxonomy) VerbColor(id string) string {
	v, ok := t.Verb(id)
	if !ok {
		return NoColor
	}
	return VerbColor(v, &t.Root)
}

// CategoryColor resolves the color of a category id.
func (t *Taxonomy) CategoryColor(id string) string {
	if c := t.CategoryByID(id); c != nil {
		return c.Color
	}
	return NoColor
}

// CategoryDisplayName returns the display name for a category id. Both
// uncategorized spellings render as "Uncategorized"; unknown ids are
// title-cased.
func (t *Taxonomy) CategoryDisplayName(id string) string {
	if models.IsUncategorized(id) {
		return "Uncategorized"
	}
	if c := t.CategoryByID(id); c != nil && c.DisplayName != "" {
		return c.DisplayName
	}
	return titleCase(id)
}

// Descriptor returns the descriptor family with the given name.
func (t *Taxonomy) Descriptor(name string) (models.Descriptor, bool) {
	for _, d := range t.Descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return models.Descriptor{}, false
}

func titleCase(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
