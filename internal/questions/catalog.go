// Package questions tracks which preset questions are answered or snoozed.
package questions

import (
	"sort"
	"sync"

	"github.com/foundersandcoders/lift/internal/constants"
	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/models"
)

// Catalog wraps the static question list with runtime snooze and used state.
type Catalog struct {
	mu        sync.RWMutex
	questions []models.SetQuestion
	used      map[string]bool
}

// NewCatalog copies qs; the static catalog is never modified.
func NewCatalog(qs []models.SetQuestion) *Catalog {
	c := &Catalog{used: make(map[string]bool)}
	c.questions = append(c.questions, qs...)
	return c
}

func (c *Catalog) index(id string) (int, error) {
	for i, q := range c.questions {
		if q.ID == id {
			return i, nil
		}
	}
	return -1, lifterrors.NotFound("question", id)
}

// Question returns a question by id.
func (c *Catalog) Question(id string) (models.SetQuestion, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, err := c.index(id)
	if err != nil {
		return models.SetQuestion{}, err
	}
	return c.questions[i], nil
}

// All returns every question in catalog order.
func (c *Catalog) All() []models.SetQuestion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.SetQuestion{}, c.questions...)
}

// ToggleSnooze snoozes a question by moving it to the snoozed category, or
// restores the category it had before.
func (c *Catalog) ToggleSnooze(id string) (models.SetQuestion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, err := c.index(id)
	if err != nil {
		return models.SetQuestion{}, err
	}

	q := &c.questions[i]
	if q.IsSnoozed {
		q.Category = q.OriginalCategory
		q.OriginalCategory = ""
		q.IsSnoozed = false
	} else {
		q.OriginalCategory = q.Category
		q.Category = constants.SnoozedCategory
		q.IsSnoozed = true
	}
	return *q, nil
}

// SnoozedIDs lists snoozed question ids in catalog order.
func (c *Catalog) SnoozedIDs() []string {
	var ids []string
	for _, q := range c.Snoozed() {
		ids = append(ids, q.ID)
	}
	return ids
}

// Snooze snoozes every listed question that is not already snoozed. Unknown
// ids are ignored.
func (c *Catalog) Snooze(ids []string) {
	for _, id := range ids {
		q, err := c.Question(id)
		if err != nil || q.IsSnoozed {
			continue
		}
		_, _ = c.ToggleSnooze(id)
	}
}

// MarkUsed records that a question has an answer.
func (c *Catalog) MarkUsed(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.used[id] = true
}

// Release frees a question for another answer.
func (c *Catalog) Release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.used, id)
}

// Used reports whether a question has an answer.
func (c *Catalog) Used(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.used[id]
}

// Sync rebuilds the used set from the preset ids of stored entries.
func (c *Catalog) Sync(entries []models.Entry) {
	used := make(map[string]bool)
	for _, e := range entries {
		if e.PresetID != "" {
			used[e.PresetID] = true
		}
	}
	c.mu.Lock()
	c.used = used
	c.mu.Unlock()
}

// Available returns the questions that are neither answered nor snoozed.
func (c *Catalog) Available() []models.SetQuestion {
	return c.filter(func(q models.SetQuestion) bool {
		return !q.IsSnoozed && !c.used[q.ID]
	})
}

// Snoozed returns the snoozed questions.
func (c *Catalog) Snoozed() []models.SetQuestion {
	return c.filter(func(q models.SetQuestion) bool { return q.IsSnoozed })
}

func (c *Catalog) filter(keep func(models.SetQuestion) bool) []models.SetQuestion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.SetQuestion
	for _, q := range c.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// Group is the available questions of one category.
type Group struct {
	Category  string
	Questions []models.SetQuestion
}

// Grouped returns the available questions by category, alphabetically.
func (c *Catalog) Grouped() []Group {
	byCategory := make(map[string][]models.SetQuestion)
	for _, q := range c.Available() {
		key := models.NormalizeCategory(q.Category)
		byCategory[key] = append(byCategory[key], q)
	}

	groups := make([]Group, 0, len(byCategory))
	for cat, qs := range byCategory {
		groups = append(groups, Group{Category: cat, Questions: qs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups
}

// AnsweredCount counts the distinct catalog questions answered by entries.
func (c *Catalog) AnsweredCount(entries []models.Entry) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	known := make(map[string]bool, len(c.questions))
	for _, q := range c.questions {
		known[q.ID] = true
	}
	answered := make(map[string]bool)
	for _, e := range entries {
		if known[e.PresetID] {
			answered[e.PresetID] = true
		}
	}
	return len(answered)
}
