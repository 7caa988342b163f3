package taxonomy

import "github.com/foundersandcoders/lift/internal/models"

// NoColor is returned by VerbColor when none of a verb's categories resolve.
const NoColor = "transparent"

// FindCategoryByName searches the tree depth-first by Name and returns the
// first match, or nil.
func FindCategoryByName(root *models.Category, name string) *models.Category {
	if root == nil {
		return nil
	}
	if root.Name == name {
		return root
	}
	for i := range root.Children {
		if found := FindCategoryByName(&root.Children[i], name); found != nil {
			return found
		}
	}
	return nil
}

// AllDescendants returns the node's name followed by the name of every node
// in its subtree, pre-order.
func AllDescendants(node *models.Category) []string {
	if node == nil {
		return nil
	}
	names := []string{node.Name}
	for i := range node.Children {
		names = append(names, AllDescendants(&node.Children[i])...)
	}
	return names
}

// VerbColor returns the color of the first category of the verb, in declared
// order, that resolves in the tree.
func VerbColor(verb models.Verb, root *models.Category) string {
	for _, name := range verb.Categories {
		if cat := FindCategoryByName(root, name); cat != nil {
			return cat.Color
		}
	}
	return NoColor
}

// FilterVerbs keeps the verbs tagged with the selected category or any of its
// descendants. A nil selection keeps every verb.
func FilterVerbs(verbs []models.Verb, selected *models.Category) []models.Verb {
	if selected == nil {
		return append([]models.Verb{}, verbs...)
	}

	allowed := make(map[string]struct{})
	for _, name := range AllDescendants(selected) {
		allowed[name] = struct{}{}
	}

	var filtered []models.Verb
	for _, v := range verbs {
		for _, c := range v.Categories {
			if _, ok := allowed[c]; ok {
				filtered = append(filtered, v)
				break
			}
		}
	}
	return filtered
}

// walk visits every node pre-order.
func walk(node *models.Category, fn func(*models.Category)) {
	if node == nil {
		return
	}
	fn(node)
	for i := range node.Children {
		walk(&node.Children[i], fn)
	}
}
