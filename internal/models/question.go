package models

// Step identifies a wizard step.
type Step string

const (
	StepCategory   Step = "category"
	StepSubject    Step = "subject"
	StepVerb       Step = "verb"
	StepObject     Step = "object"
	StepPrivacy    Step = "privacy"
	StepComplement Step = "complement"
)

// SetQuestionStep configures one step of a preset question.
type SetQuestionStep struct {
	Question           string   `json:"question" yaml:"question"`
	Preset             bool     `json:"preset" yaml:"preset"`
	PresetAnswer       *string  `json:"presetAnswer" yaml:"presetAnswer"`
	AllowDescriptors   bool     `json:"allowDescriptors,omitempty" yaml:"allowDescriptors,omitempty"`
	DescriptorCategory string   `json:"descriptorCategory,omitempty" yaml:"descriptorCategory,omitempty"`
	AllowedVerbs       []string `json:"allowedVerbs,omitempty" yaml:"allowedVerbs,omitempty"`
}

// SetQuestion is a wizard preset template.
type SetQuestion struct {
	ID               string                   `json:"id" yaml:"id"`
	MainQuestion     string                   `json:"mainQuestion" yaml:"mainQuestion"`
	Category         string                   `json:"category,omitempty" yaml:"category,omitempty"`
	IsSnoozed        bool                     `json:"isSnoozed,omitempty" yaml:"isSnoozed,omitempty"`
	OriginalCategory string                   `json:"originalCategory,omitempty" yaml:"originalCategory,omitempty"`
	Steps            map[Step]SetQuestionStep `json:"steps" yaml:"steps"`
}

// Step returns the configuration of a step, if the question defines it.
func (q SetQuestion) Step(step Step) (SetQuestionStep, bool) {
	s, ok := q.Steps[step]
	return s, ok
}
