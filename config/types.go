package config

import (
	"time"

	"github.com/knadh/koanf/v2"
)

// Config represents the generator configuration. The embedded koanf
// instance gives access to sections owned by other packages, such as
// observability, through Unmarshal.
type Config struct {
	App       AppConfig       `koanf:"app" json:"app" yaml:"app"`
	Log       LogConfig       `koanf:"log" json:"log" yaml:"log"`
	Generator GeneratorConfig `koanf:"generator" json:"generator" yaml:"generator"`
	Server    ServerConfig    `koanf:"server" json:"server" yaml:"server"`

	k *koanf.Koanf `json:"-" yaml:"-"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name    string `koanf:"name" json:"name" yaml:"name"`
	Version string `koanf:"version" json:"version" yaml:"version"`
	Env     string `koanf:"env" json:"env" yaml:"env"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Pretty bool   `koanf:"pretty" json:"pretty" yaml:"pretty"`
}

// GeneratorConfig controls a generation run.
type GeneratorConfig struct {
	// Output is the directory receiving META-INF and Java sources.
	Output string `koanf:"output" json:"output" yaml:"output"`
	// Concurrency bounds the number of modules generated in parallel.
	Concurrency int  `koanf:"concurrency" json:"concurrency" yaml:"concurrency"`
	RenderJava  bool `koanf:"renderjava" json:"renderjava" yaml:"renderjava"`
	// Package, when set, replaces the Java package of every loaded module.
	Package string `koanf:"package" json:"package" yaml:"package"`
}

// ServerConfig holds the schema server settings.
type ServerConfig struct {
	Host    string        `koanf:"host" json:"host" yaml:"host"`
	Port    int           `koanf:"port" json:"port" yaml:"port"`
	Timeout TimeoutConfig `koanf:"timeout" json:"timeout" yaml:"timeout"`
	Path    PathConfig    `koanf:"path" json:"path" yaml:"path"`
}

// TimeoutConfig holds various timeout durations for the server.
type TimeoutConfig struct {
	Read     time.Duration `koanf:"read" json:"read" yaml:"read"`
	Write    time.Duration `koanf:"write" json:"write" yaml:"write"`
	Idle     time.Duration `koanf:"idle" json:"idle" yaml:"idle"`
	Shutdown time.Duration `koanf:"shutdown" json:"shutdown" yaml:"shutdown"`
}

// PathConfig holds URL path settings for the server.
type PathConfig struct {
	Base   string `koanf:"base" json:"base" yaml:"base"`
	Health string `koanf:"health" json:"health" yaml:"health"`
}
