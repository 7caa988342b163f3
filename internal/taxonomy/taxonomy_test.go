package taxonomy

import (
	"errors"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/foundersandcoders/lift/internal/models"
)

func testTree() *models.Category {
	return &models.Category{
		ID: "root", Name: "all", Color: "#000",
		Children: []models.Category{
			{ID: "x", Name: "X", Color: "#f00", Children: []models.Category{
				{ID: "x1", Name: "X1", Color: "#f11"},
			}},
			{ID: "y", Name: "Y", Color: "#0f0"},
		},
	}
}

func TestFindCategoryByName(t *testing.T) {
	root := testTree()
	tests := []struct {
		name   string
		want   string
		exists bool
	}{
		{"all", "root", true},
		{"X", "x", true},
		{"X1", "x1", true},
		{"Y", "y", true},
		{"Z", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCategoryByName(root, tt.name)
			if (got != nil) != tt.exists {
				t.Fatalf("FindCategoryByName(%q) = %v, want exists=%v", tt.name, got, tt.exists)
			}
			if got != nil && got.ID != tt.want {
				t.Errorf("FindCategoryByName(%q).ID = %q, want %q", tt.name, got.ID, tt.want)
			}
		})
	}

	if FindCategoryByName(nil, "X") != nil {
		t.Error("expected nil for nil root")
	}
}

func TestAllDescendantsIsClosure(t *testing.T) {
	root := testTree()
	got := AllDescendants(root)
	want := []string{"all", "X", "X1", "Y"}
	if !slices.Equal(got, want) {
		t.Fatalf("AllDescendants = %v, want %v", got, want)
	}

	// Every listed descendant's own subtree is contained in the result.
	for _, name := range got {
		for _, d := range AllDescendants(FindCategoryByName(root, name)) {
			if !slices.Contains(got, d) {
				t.Errorf("%q missing from closure", d)
			}
		}
	}
}

func TestVerbColor(t *testing.T) {
	root := testTree()
	tests := []struct {
		name       string
		categories []string
		want       string
	}{
		{"first declared category wins", []string{"X", "Y"}, "#f00"},
		{"skips unknown", []string{"Z", "Y"}, "#0f0"},
		{"nested", []string{"X1"}, "#f11"},
		{"none resolve", []string{"Z"}, NoColor},
		{"no categories", nil, NoColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerbColor(models.Verb{ID: "v", Categories: tt.categories}, root)
			if got != tt.want {
				t.Errorf("VerbColor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterVerbs(t *testing.T) {
	root := testTree()
	verbs := []models.Verb{
		{ID: "a", Categories: []string{"X1"}},
		{ID: "b", Categories: []string{"Y"}},
		{ID: "c", Categories: []string{"X", "Y"}},
		{ID: "d"},
	}

	ids := func(vs []models.Verb) []string {
		var out []string
		for _, v := range vs {
			out = append(out, v.ID)
		}
		return out
	}

	tests := []struct {
		name     string
		selected *models.Category
		want     []string
	}{
		{"nil keeps all", nil, []string{"a", "b", "c", "d"}},
		{"subtree", FindCategoryByName(root, "X"), []string{"a", "c"}},
		{"leaf", FindCategoryByName(root, "Y"), []string{"b", "c"}},
		{"root", root, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterVerbs(verbs, tt.selected))
			if !slices.Equal(got, tt.want) {
				t.Errorf("FilterVerbs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if tax.Category("wellbeing") == nil {
		t.Error("expected wellbeing category")
	}
	if len(tax.Verbs) == 0 {
		t.Error("expected verbs")
	}
	if len(tax.Questions) == 0 {
		t.Error("expected set questions")
	}
	q := tax.Questions[0]
	if s, ok := q.Step(models.StepSubject); !ok || !s.Preset {
		t.Errorf("expected preset subject step on %s", q.ID)
	}

	verbs := tax.VerbsFor("wellbeing")
	for i := 1; i < len(verbs); i++ {
		if verbs[i-1].Popularity < verbs[i].Popularity {
			t.Errorf("VerbsFor not sorted by popularity: %v", verbs)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	validCats := "root:\n  id: root\n  name: all\n"
	validVerbs := "verbs:\n  - id: a\n    name: A\n"

	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{"missing categories", fstest.MapFS{
			verbsFile: {Data: []byte(validVerbs)},
		}},
		{"missing verbs", fstest.MapFS{
			categoriesFile: {Data: []byte(validCats)},
		}},
		{"bad yaml", fstest.MapFS{
			categoriesFile: {Data: []byte("root: [")},
			verbsFile:      {Data: []byte(validVerbs)},
		}},
		{"no root", fstest.MapFS{
			categoriesFile: {Data: []byte("other: 1\n")},
			verbsFile:      {Data: []byte(validVerbs)},
		}},
		{"duplicate category", fstest.MapFS{
			categoriesFile: {Data: []byte("root:\n  id: root\n  name: all\n  children:\n    - {id: a, name: dup}\n    - {id: b, name: dup}\n")},
			verbsFile:      {Data: []byte(validVerbs)},
		}},
		{"duplicate verb", fstest.MapFS{
			categoriesFile: {Data: []byte(validCats)},
			verbsFile:      {Data: []byte("verbs:\n  - {id: a, name: A}\n  - {id: a, name: B}\n")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.files)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("Load() error = %v, want ErrInvalidCatalog", err)
			}
		})
	}

	tax, err := Load(fstest.MapFS{
		categoriesFile: {Data: []byte(validCats)},
		verbsFile:      {Data: []byte(validVerbs)},
	})
	if err != nil {
		t.Fatalf("Load() without optional files failed: %v", err)
	}
	if len(tax.Questions) != 0 || len(tax.Descriptors) != 0 {
		t.Error("expected empty optional sections")
	}
}

func TestVerbDisplay(t *testing.T) {
	tax := &Taxonomy{Verbs: []models.Verb{
		{ID: "support", Name: "Support", PresentTenseForm: "supports"},
		{ID: "struggle-with", Name: "Struggle with"},
		{ID: "have", Name: "Have"},
		{ID: "try", Name: "Try"},
		{ID: "push", Name: "Push"},
	}}

	tests := []struct {
		id   string
		isI  bool
		want string
	}{
		{"support", true, "support"},
		{"support", false, "supports"},
		{"struggle-with", false, "struggles with"},
		{"have", false, "has"},
		{"try", false, "tries"},
		{"push", false, "pushes"},
		{"unknown", false, "unknown"},
	}
	for _, tt := range tests {
		if got := tax.VerbDisplay(tt.id, tt.isI); got != tt.want {
			t.Errorf("VerbDisplay(%q, %v) = %q, want %q", tt.id, tt.isI, got, tt.want)
		}
	}
}

func TestCategoryDisplayName(t *testing.T) {
	tax := &Taxonomy{Root: *testTree()}
	tax.Root.Children[0].DisplayName = "Ex"

	tests := map[string]string{
		"x":             "Ex",
		"X":             "Ex",
		"uncategorised": "Uncategorized",
		"":              "Uncategorized",
		"work-life":     "Work Life",
	}
	for id, want := range tests {
		if got := tax.CategoryDisplayName(id); got != want {
			t.Errorf("CategoryDisplayName(%q) = %q, want %q", id, got, want)
		}
	}
}
