package config

import (
	"fmt"
	"slices"
	"strings"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Validate checks every section and reports the first failure wrapped with
// its section name.
func Validate(cfg *Config) error {
	if err := validateApp(&cfg.App); err != nil {
		return fmt.Errorf("app config: %w", err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	if err := validateGenerator(&cfg.Generator); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}

	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	return nil
}

func validateApp(cfg *AppConfig) error {
	if cfg.Name == "" {
		return missingField("app.name")
	}

	validEnvs := []string{EnvDevelopment, EnvStaging, EnvProduction}
	if !slices.Contains(validEnvs, cfg.Env) {
		return invalidField("app.env", fmt.Sprintf("invalid environment: %s", cfg.Env), validEnvs...)
	}

	return nil
}

// validateLog validates that cfg.Level is one of the supported log levels.
func validateLog(cfg *LogConfig) error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Level)) {
		return invalidField("log.level", fmt.Sprintf("invalid log level: %s", cfg.Level), validLevels...)
	}
	return nil
}

func validateGenerator(cfg *GeneratorConfig) error {
	if cfg.Output == "" {
		return missingField("generator.output")
	}
	if cfg.Concurrency <= 0 {
		return invalidField("generator.concurrency", "must be positive")
	}
	return nil
}

func validateServer(cfg *ServerConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return invalidField("server.port", fmt.Sprintf("invalid port: %d (must be 1-65535)", cfg.Port))
	}

	if cfg.Timeout.Read <= 0 {
		return invalidField("server.timeout.read", "read timeout must be positive")
	}

	if cfg.Timeout.Write <= 0 {
		return invalidField("server.timeout.write", "write timeout must be positive")
	}

	if cfg.Path.Base != "" && !strings.HasPrefix(cfg.Path.Base, "/") {
		return invalidField("server.path.base", "must start with /")
	}

	return nil
}
