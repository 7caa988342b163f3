package taxonomy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/foundersandcoders/lift/catalog"
	"github.com/foundersandcoders/lift/internal/models"
)

// ErrInvalidCatalog is returned when the static catalog is missing or malformed.
var ErrInvalidCatalog = errors.New("invalid catalog")

const (
	categoriesFile  = "categories.yaml"
	verbsFile       = "verbs.yaml"
	questionsFile   = "questions.yaml"
	descriptorsFile = "descriptors.yaml"
)

type categoriesDoc struct {
	Root *models.Category `yaml:"root"`
}

type verbsDoc struct {
	Verbs []models.Verb `yaml:"verbs"`
}

type questionsDoc struct {
	SetQuestions []models.SetQuestion `yaml:"setQuestions"`
}

type descriptorsDoc struct {
	Descriptors []models.Descriptor `yaml:"descriptors"`
}

// Default loads the catalog embedded in the binary.
func Default() (*Taxonomy, error) {
	return Load(catalog.FS)
}

// LoadDir loads a catalog from a directory on disk.
func LoadDir(dir string) (*Taxonomy, error) {
	return Load(os.DirFS(dir))
}

// Load reads and validates the catalog files from fsys. Categories and verbs
// are required; questions and descriptors are optional.
func Load(fsys fs.FS) (*Taxonomy, error) {
	var cats categoriesDoc
	if err := decode(fsys, categoriesFile, &cats, true); err != nil {
		return nil, err
	}
	if cats.Root == nil || cats.Root.Name == "" {
		return nil, fmt.Errorf("%w: %s has no root category", ErrInvalidCatalog, categoriesFile)
	}

	var verbs verbsDoc
	if err := decode(fsys, verbsFile, &verbs, true); err != nil {
		return nil, err
	}

	var questions questionsDoc
	if err := decode(fsys, questionsFile, &questions, false); err != nil {
		return nil, err
	}

	var descriptors descriptorsDoc
	if err := decode(fsys, descriptorsFile, &descriptors, false); err != nil {
		return nil, err
	}

	t := &Taxonomy{
		Root:        *cats.Root,
		Verbs:       verbs.Verbs,
		Questions:   questions.SetQuestions,
		Descriptors: descriptors.Descriptors,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func decode(fsys fs.FS, name string, out any, required bool) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: reading %s: %v", ErrInvalidCatalog, name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrInvalidCatalog, name, err)
	}
	return nil
}

func (t *Taxonomy) validate() error {
	var problems []string

	seen := make(map[string]bool)
	walk(&t.Root, func(c *models.Category) {
		switch {
		case c.Name == "":
			problems = append(problems, fmt.Sprintf("category %q has no name", c.ID))
		case seen[c.Name]:
			problems = append(problems, fmt.Sprintf("duplicate category name %q", c.Name))
		}
		seen[c.Name] = true
	})

	verbIDs := make(map[string]bool)
	for _, v := range t.Verbs {
		switch {
		case v.ID == "":
			problems = append(problems, fmt.Sprintf("verb %q has no id", v.Name))
		case verbIDs[v.ID]:
			problems = append(problems, fmt.Sprintf("duplicate verb id %q", v.ID))
		}
		verbIDs[v.ID] = true
	}

	questionIDs := make(map[string]bool)
	for _, q := range t.Questions {
		switch {
		case q.ID == "":
			problems = append(problems, fmt.Sprintf("question %q has no id", q.MainQuestion))
		case questionIDs[q.ID]:
			problems = append(problems, fmt.Sprintf("duplicate question id %q", q.ID))
		}
		questionIDs[q.ID] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}
