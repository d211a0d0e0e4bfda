package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// requiredKeys maps environment variable names to their config accessors.
// These are the secrets chat turns cannot run without.
var requiredKeys = []struct {
	env string
	get func(*Config) string
}{
	{"OPENAI_API_KEY", func(c *Config) string { return c.API.OpenAIKey }},
	{"GRAPH_TOKEN", func(c *Config) string { return c.Graph.Token }},
}

// Validator validates configuration values using go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates a complete configuration
func (v *Validator) Validate(config *Config) error {
	if err := v.validate.Struct(config); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			first := errs[0]
			return ValidationError{Field: first.Namespace(), Message: first.Tag()}
		}
		return err
	}
	return nil
}

// MissingKeys returns the names of required credentials that are absent.
// The CLI surfaces this as a persistent condition before any turn is
// attempted instead of failing mid-turn.
func MissingKeys(config *Config) []string {
	var missing []string
	for _, key := range requiredKeys {
		if key.get(config) == "" {
			missing = append(missing, key.env)
		}
	}
	return missing
}
