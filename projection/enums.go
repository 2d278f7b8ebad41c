package projection

import (
	"fmt"

	"github.com/gaborage/go-devkit/classify"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
)

// EnumRegistry deduplicates enum types within one module pass. The schema
// synthesizer registers one EnumType union per entry and the code
// synthesizer one enum transformer per entry, both from the same registry.
type EnumRegistry struct {
	byName   map[string]*model.TypeDescriptor
	bySimple map[string]string
	enums    []*model.TypeDescriptor
}

// NewEnumRegistry returns an empty registry.
func NewEnumRegistry() *EnumRegistry {
	return &EnumRegistry{
		byName:   make(map[string]*model.TypeDescriptor),
		bySimple: make(map[string]string),
	}
}

// Register adds t and reports whether it was new. Two distinct enums sharing
// a simple name would produce the same union type name and are rejected.
func (r *EnumRegistry) Register(t *model.TypeDescriptor) (bool, error) {
	if _, ok := r.byName[t.QualifiedName]; ok {
		return false, nil
	}
	simple := t.SimpleName()
	if other, ok := r.bySimple[simple]; ok {
		return false, fmt.Errorf("enums %s and %s both map to %s: %w",
			other, t.QualifiedName, naming.EnumTypeName(simple), model.ErrDuplicateElement)
	}
	r.byName[t.QualifiedName] = t
	r.bySimple[simple] = t.QualifiedName
	r.enums = append(r.enums, t)
	return true, nil
}

// Enums returns the registered enums in registration order.
func (r *EnumRegistry) Enums() []*model.TypeDescriptor {
	return r.enums
}

// Len returns the number of distinct enums.
func (r *EnumRegistry) Len() int {
	return len(r.enums)
}

// CollectEnums registers every enum referenced by the module: configurable
// fields, connect parameters and operation parameters, including type
// arguments at any depth.
func CollectEnums(m *model.ModuleModel) (*EnumRegistry, error) {
	r := NewEnumRegistry()

	register := func(element string, t *model.TypeDescriptor) error {
		for _, e := range enumsOf(t) {
			if _, err := r.Register(e); err != nil {
				return model.NewGenerationError(m.Name, element, "conflicting enum types", err)
			}
		}
		return nil
	}

	for _, f := range m.Fields {
		if err := register(f.Name, f.Type); err != nil {
			return nil, err
		}
	}
	for _, p := range m.ConnectParameters() {
		if err := register(p.Name, p.Type); err != nil {
			return nil, err
		}
	}
	for _, op := range m.Operations {
		for _, p := range op.Parameters {
			if err := register(op.MethodName+"."+p.Name, p.Type); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// enumsOf returns t itself when it is an enum, plus every enum nested in
// its type arguments.
func enumsOf(t *model.TypeDescriptor) []*model.TypeDescriptor {
	if t == nil {
		return nil
	}
	if classify.IsEnum(t) {
		return []*model.TypeDescriptor{t}
	}
	var out []*model.TypeDescriptor
	for _, a := range t.Arguments {
		out = append(out, enumsOf(a)...)
	}
	return out
}
