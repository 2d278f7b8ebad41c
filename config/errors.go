package config

import (
	"fmt"
	"strings"
)

// ConfigError reports a setting that keeps the generator from starting.
//
//nolint:revive // config.ConfigError reads better than config.Error at call sites
type ConfigError struct {
	Category string // "missing" or "invalid"
	Field    string // dotted key, e.g. "generator.output"
	Message  string
	Action   string // how to fix it, empty when obvious
}

func (e *ConfigError) Error() string {
	parts := []string{"config_" + e.Category + ":", e.Field}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Action != "" {
		parts = append(parts, e.Action)
	}
	return strings.Join(parts, " ")
}

// envVarFor is the environment override for a dotted key.
func envVarFor(field string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer(".", "_").Replace(field))
}

func missingField(field string) *ConfigError {
	return &ConfigError{
		Category: "missing",
		Field:    field,
		Message:  "required",
		Action:   fmt.Sprintf("set %s or add %s to %s", envVarFor(field), field, DefaultFile),
	}
}

func invalidField(field, message string, options ...string) *ConfigError {
	err := &ConfigError{Category: "invalid", Field: field, Message: message}
	if len(options) > 0 {
		err.Action = "must be one of: " + strings.Join(options, ", ")
	}
	return err
}
