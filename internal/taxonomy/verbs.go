package taxonomy

import "strings"

var irregular = map[string]string{
	"be":   "is",
	"have": "has",
	"do":   "does",
	"go":   "goes",
}

// VerbDisplay returns the form of a verb shown next to a subject. Subjects
// other than "I" get the third person present tense. Unknown ids are echoed
// back unchanged.
func (t *Taxonomy) VerbDisplay(id string, subjectIsI bool) string {
	v, ok := t.Verb(id)
	if !ok {
		return id
	}
	name := strings.ToLower(v.Name)
	if subjectIsI {
		return name
	}
	if v.PresentTenseForm != "" {
		return v.PresentTenseForm
	}
	return ThirdPerson(name)
}

// ThirdPerson conjugates the first word of a (possibly phrasal) verb.
func ThirdPerson(verb string) string {
	head, rest, _ := strings.Cut(strings.TrimSpace(verb), " ")
	if head == "" {
		return verb
	}

	var conj string
	switch {
	case irregular[head] != "":
		conj = irregular[head]
	case hasAnySuffix(head, "s", "sh", "ch", "x", "z", "o"):
		conj = head + "es"
	case len(head) > 1 && strings.HasSuffix(head, "y") && !isVowel(head[len(head)-2]):
		conj = head[:len(head)-1] + "ies"
	default:
		conj = head + "s"
	}

	if rest != "" {
		return conj + " " + rest
	}
	return conj
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}
