package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultFile is the optional configuration file read by Load.
	DefaultFile = "devkit.yaml"
	// EnvPrefix prefixes environment overrides, e.g. DEVKIT_LOG_LEVEL.
	EnvPrefix = "DEVKIT_"
)

// Load loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. The YAML file at path, or DefaultFile when path is empty
// 3. Default values (lowest priority)
//
// A missing file is only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := loadEnv(k); err != nil {
		return nil, err
	}
	return finish(k)
}

// LoadBytes loads configuration from inline YAML layered over the defaults.
// Environment variables are not consulted.
func LoadBytes(data []byte) (*Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return finish(k)
}

func finish(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.k = k

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnv maps DEVKIT_LOG_LEVEL to log.level. Keys of a single word after
// the section keep their underscores joined, so DEVKIT_GENERATOR_RENDER_JAVA
// becomes generator.renderjava.
func loadEnv(k *koanf.Koanf) error {
	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKey(key), value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

func envKey(key string) string {
	parts := strings.SplitN(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	section, rest := parts[0], parts[1]
	if nested, ok := nestedKeys[section]; ok {
		for _, prefix := range nested {
			if strings.HasPrefix(rest, prefix+"_") {
				return section + "." + prefix + "." + strings.ReplaceAll(strings.TrimPrefix(rest, prefix+"_"), "_", "")
			}
		}
	}
	return section + "." + strings.ReplaceAll(rest, "_", "")
}

// nestedKeys lists sub-sections whose keys sit one level deeper.
var nestedKeys = map[string][]string{
	"server":        {"timeout", "path"},
	"observability": {"service", "trace", "metrics"},
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":    "devkit-gen",
		"app.version": "v0.1.0",
		"app.env":     EnvDevelopment,

		"log.level":  "info",
		"log.pretty": false,

		"generator.output":      "target/generated-sources",
		"generator.concurrency": 4,
		"generator.renderjava":  true,
		"generator.package":     "",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.timeout.read":     "15s",
		"server.timeout.write":    "30s",
		"server.timeout.idle":     "60s",
		"server.timeout.shutdown": "10s",
		"server.path.base":        "",
		"server.path.health":      "/health",

		"observability.enabled": false,
	}
	return k.Load(confmap.Provider(defaults, "."), nil)
}

// Unmarshal decodes the section at key into target. It serves sections
// whose types live in other packages.
func (c *Config) Unmarshal(key string, target any) error {
	if c == nil || c.k == nil {
		return invalidField(key, "configuration not initialized")
	}
	if err := c.k.Unmarshal(key, target); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// GetString retrieves a string value from the configuration or the provided default.
func (c *Config) GetString(key string, defaultVal ...string) string {
	if c == nil || c.k == nil || !c.k.Exists(key) {
		if len(defaultVal) > 0 {
			return defaultVal[0]
		}
		return ""
	}
	return c.k.String(key)
}

// Exists reports whether key is set by any source.
func (c *Config) Exists(key string) bool {
	return c != nil && c.k != nil && c.k.Exists(key)
}

// Keys lists every flattened configuration key.
func (c *Config) Keys() []string {
	if c == nil || c.k == nil {
		return nil
	}
	return c.k.Keys()
}
