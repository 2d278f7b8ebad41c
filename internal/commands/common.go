// Package commands implements the devkit-gen subcommands.
package commands

import (
	"errors"
	"fmt"

	"github.com/gaborage/go-devkit/config"
	"github.com/gaborage/go-devkit/logger"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/observability"
)

var errNoDescriptors = errors.New("at least one module descriptor is required")

// loadModules parses every descriptor in order. A non-empty pkg replaces the
// Java package of each module.
func loadModules(paths []string, pkg string) ([]*model.ModuleModel, error) {
	if len(paths) == 0 {
		return nil, errNoDescriptors
	}

	var modules []*model.ModuleModel
	for _, path := range paths {
		loaded, err := model.LoadFile(path)
		if err != nil {
			return nil, err
		}
		modules = append(modules, loaded...)
	}

	if pkg != "" {
		for _, m := range modules {
			m.Package = pkg
		}
	}
	return modules, nil
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Pretty)
}

// observabilityConfig reads the observability section. The service name and
// version fall back to the app identity.
func observabilityConfig(cfg *config.Config) (*observability.Config, error) {
	obsCfg := &observability.Config{}
	if err := cfg.Unmarshal("observability", obsCfg); err != nil {
		return nil, fmt.Errorf("observability config: %w", err)
	}
	if obsCfg.Service.Name == "" {
		obsCfg.Service.Name = cfg.App.Name
	}
	if obsCfg.Service.Version == "" {
		obsCfg.Service.Version = cfg.App.Version
	}
	if obsCfg.Environment == "" {
		obsCfg.Environment = cfg.App.Env
	}
	return obsCfg, nil
}

func newObservability(cfg *config.Config) (observability.Provider, error) {
	obsCfg, err := observabilityConfig(cfg)
	if err != nil {
		return nil, err
	}
	provider, err := observability.NewProvider(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	return provider, nil
}
