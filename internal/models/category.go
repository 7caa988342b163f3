package models

import "strings"

// Uncategorized is the canonical category id for statements without a category.
const Uncategorized = "uncategorized"

// Category is a node of the category tree. Name is the taxonomy key and is
// unique across the whole tree.
type Category struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	DisplayName string     `json:"displayName" yaml:"displayName"`
	Color       string     `json:"color" yaml:"color"`
	Icon        string     `json:"icon" yaml:"icon"`
	Children    []Category `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether the category has no children.
func (c Category) IsLeaf() bool {
	return len(c.Children) == 0
}

// Verb is an entry of the static verb catalog. Categories holds category
// names, not ids.
type Verb struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Popularity       int      `json:"popularity" yaml:"popularity"`
	Categories       []string `json:"categories" yaml:"categories"`
	Color            string   `json:"color" yaml:"color"`
	PresentTenseForm string   `json:"presentTenseForm,omitempty" yaml:"presentTenseForm,omitempty"`
}

// Descriptor is a family of subject descriptors offered on the subject step
// (e.g. "manager" -> "My manager").
type Descriptor struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Options     []string `json:"options" yaml:"options"`
}

// IsUncategorized reports whether id is one of the accepted spellings of
// the uncategorized sentinel (or empty).
func IsUncategorized(id string) bool {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "", "uncategorized", "uncategorised":
		return true
	}
	return false
}

// NormalizeCategory lower-cases a category id and folds both spellings of
// the uncategorized sentinel into Uncategorized.
func NormalizeCategory(id string) string {
	if IsUncategorized(id) {
		return Uncategorized
	}
	return strings.ToLower(strings.TrimSpace(id))
}

// CanonicalCategory is applied when a category crosses the data-model
// boundary. Unlike NormalizeCategory it keeps the case of real ids.
func CanonicalCategory(id string) string {
	if IsUncategorized(id) {
		return Uncategorized
	}
	return strings.TrimSpace(id)
}

// SameCategory compares two category ids after normalization.
func SameCategory(a, b string) bool {
	return NormalizeCategory(a) == NormalizeCategory(b)
}
