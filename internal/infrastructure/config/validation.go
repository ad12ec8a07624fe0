package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks configuration structs against their validate tags and
// reports failures by their config key rather than the Go field name
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that names fields by their mapstructure key
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError lists every failed key, e.g.
// "game.scope_target failed max=18 (value: '19')"
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		key := e.Namespace()
		// Drop the root struct name
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		msg := fmt.Sprintf("%s failed %s", key, e.Tag())
		if e.Param() != "" {
			msg += "=" + e.Param()
		}
		messages = append(messages, fmt.Sprintf("%s (value: '%v')", msg, e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	if err := NewValidator().Validate(cfg); err != nil {
		return err
	}

	// Cross-checks owned by the domain
	if err := cfg.Game.Targets().Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
