package model

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gaborage/go-devkit/validation"
)

// Descriptor is the YAML document handed over by the annotation-discovery
// adapter. It lists one or more modules.
type Descriptor struct {
	Modules []*ModuleModel `yaml:"modules" validate:"required,min=1,dive"`
}

var descriptorValidator = validation.NewValidator()

// Parse decodes a YAML descriptor, validates it and checks every module's
// structural invariants. Unknown keys are rejected.
func Parse(data []byte) ([]*ModuleModel, error) {
	var d Descriptor

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode module descriptor: %w", err)
	}

	if err := descriptorValidator.Validate(&d); err != nil {
		return nil, err
	}

	for _, m := range d.Modules {
		if err := m.Check(); err != nil {
			return nil, err
		}
	}

	return d.Modules, nil
}

// LoadFile reads and parses a descriptor file.
func LoadFile(path string) ([]*ModuleModel, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read module descriptor %s: %w", path, err)
	}

	modules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return modules, nil
}

// Marshal renders modules back to descriptor YAML.
func Marshal(modules []*ModuleModel) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&Descriptor{Modules: modules}); err != nil {
		return nil, fmt.Errorf("failed to encode module descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode module descriptor: %w", err)
	}
	return buf.Bytes(), nil
}
