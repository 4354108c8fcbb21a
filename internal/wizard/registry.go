package wizard

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"estatedocs/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// stepConfig mirrors the embedded YAML layout for one document type.
type stepConfig struct {
	DocumentType string                  `yaml:"document_type"`
	Steps        []models.StepDescriptor `yaml:"steps"`
}

// Registry maps document types to their ordered step sequences. Sequences are
// loaded once from embedded YAML at construction and never mutated after.
type Registry struct {
	steps map[models.DocumentType][]models.StepDescriptor
	mu    sync.RWMutex
}

// NewRegistry creates a step registry and loads the embedded YAML files.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		steps: make(map[models.DocumentType][]models.StepDescriptor),
	}

	for _, name := range []string{"will", "poa_property", "poa_care"} {
		if err := r.loadConfigFile(name); err != nil {
			return nil, fmt.Errorf("failed to load %s steps: %w", name, err)
		}
	}

	return r, nil
}

// loadConfigFile loads one document type's step YAML file.
func (r *Registry) loadConfigFile(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var cfg stepConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	docType := models.DocumentType(cfg.DocumentType)
	if !docType.Valid() {
		return fmt.Errorf("%s declares unknown document type %q", filename, cfg.DocumentType)
	}
	if len(cfg.Steps) == 0 {
		return fmt.Errorf("%s declares no steps", filename)
	}

	seen := make(map[string]bool, len(cfg.Steps))
	for _, step := range cfg.Steps {
		if seen[step.ID] {
			return fmt.Errorf("%s declares duplicate step id %q", filename, step.ID)
		}
		seen[step.ID] = true
	}

	r.mu.Lock()
	r.steps[docType] = cfg.Steps
	r.mu.Unlock()

	return nil
}

// fallbackSteps is returned for unrecognized document types so callers never
// branch on configuration-lookup failure.
var fallbackSteps = []models.StepDescriptor{
	{
		ID:          "personal",
		Title:       "Personal Information",
		Description: "Your full legal name, date of birth, and current address.",
		Required:    true,
	},
}

// Steps returns the ordered step sequence for a document type. Unknown types
// get a minimal single-step sequence (personal information only) rather than
// an error. The returned slice is a copy; callers may not mutate the registry.
func (r *Registry) Steps(docType models.DocumentType) []models.StepDescriptor {
	r.mu.RLock()
	steps, ok := r.steps[docType]
	r.mu.RUnlock()

	if !ok {
		steps = fallbackSteps
	}

	out := make([]models.StepDescriptor, len(steps))
	copy(out, steps)
	return out
}
