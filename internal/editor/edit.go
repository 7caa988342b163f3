package editor

import "github.com/foundersandcoders/lift/internal/models"

// Field names one of the editable field groups of a statement.
type Field string

const (
	FieldSubject  Field = "subject"
	FieldVerb     Field = "verb"
	FieldObject   Field = "object"
	FieldCategory Field = "category"
	FieldPrivacy  Field = "privacy"
)

// Fields lists every field in display order.
var Fields = []Field{FieldSubject, FieldVerb, FieldObject, FieldCategory, FieldPrivacy}

// Edit is a change to one field of the draft.
type Edit interface {
	Field() Field
}

type (
	SubjectEdit  string
	VerbEdit     string // verb id
	ObjectEdit   string
	CategoryEdit string // category id
	PrivacyEdit  bool   // true shares the statement
)

func (SubjectEdit) Field() Field  { return FieldSubject }
func (VerbEdit) Field() Field     { return FieldVerb }
func (ObjectEdit) Field() Field   { return FieldObject }
func (CategoryEdit) Field() Field { return FieldCategory }
func (PrivacyEdit) Field() Field  { return FieldPrivacy }

// Snapshot holds the field values captured when an edit session began.
type Snapshot struct {
	Subject  string
	Verb     string
	Object   string
	IsPublic bool
	Category string
}

func snapshotOf(e models.Entry, originalCategory string) Snapshot {
	category := e.Category
	if originalCategory != "" {
		category = originalCategory
	}
	return Snapshot{
		Subject:  e.Atoms.Subject,
		Verb:     e.Atoms.Verb,
		Object:   e.Atoms.Object,
		IsPublic: e.IsPublic,
		Category: category,
	}
}

// diff lists the fields where draft differs from the snapshot.
func (s Snapshot) diff(draft models.Entry) []Field {
	var changed []Field
	if draft.Atoms.Subject != s.Subject {
		changed = append(changed, FieldSubject)
	}
	if draft.Atoms.Verb != s.Verb {
		changed = append(changed, FieldVerb)
	}
	if draft.Atoms.Object != s.Object {
		changed = append(changed, FieldObject)
	}
	if !models.SameCategory(draft.Category, s.Category) {
		changed = append(changed, FieldCategory)
	}
	if draft.IsPublic != s.IsPublic {
		changed = append(changed, FieldPrivacy)
	}
	return changed
}
