package wizard

import "github.com/foundersandcoders/lift/internal/models"

var (
	// PresetSteps is used when the wizard is launched from a set question.
	// The question supplies the category.
	PresetSteps = []models.Step{
		models.StepSubject,
		models.StepVerb,
		models.StepObject,
		models.StepPrivacy,
		models.StepComplement,
	}

	// FreeFormSteps is used when the wizard is launched from scratch.
	FreeFormSteps = []models.Step{
		models.StepCategory,
		models.StepSubject,
		models.StepVerb,
		models.StepObject,
		models.StepPrivacy,
	}
)

var defaultPrompts = map[models.Step]string{
	models.StepCategory:   "Pick a category",
	models.StepSubject:    "Who is this about?",
	models.StepVerb:       "What's happening?",
	models.StepObject:     "What or who is affected?",
	models.StepPrivacy:    "Who can see this?",
	models.StepComplement: "Anything to add?",
}
