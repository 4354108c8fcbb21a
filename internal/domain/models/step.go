package models

// StepDescriptor describes one wizard screen. Descriptors come from the
// embedded step registry and are never mutated at runtime; order within a
// document type's sequence defines both UI progression and validation order.
type StepDescriptor struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Required    bool   `yaml:"required" json:"required"`
}

// Progress is the step-configuration surface exposed to the rendering layer.
type Progress struct {
	Steps            []StepDescriptor `json:"steps"`
	CurrentStepIndex int              `json:"current_step_index"`
	ProgressPercent  float64          `json:"progress_percent"`
}
