package model

import (
	"fmt"
)

// Check verifies the structural invariants every synthesizer relies on:
// known kinds, well-formed type arguments, non-empty enums, unique element
// names and transformers that convert a source into a return type.
func (m *ModuleModel) Check() error {
	for _, f := range m.Fields {
		if err := m.checkType(f.Name, f.Type); err != nil {
			return err
		}
	}

	if m.Connect != nil {
		for _, p := range m.Connect.Parameters {
			if err := m.checkType(m.Connect.MethodName+"."+p.Name, p.Type); err != nil {
				return err
			}
		}
	}

	seen := make(map[string]string, len(m.Operations))
	for _, op := range m.Operations {
		name := op.ElementName()
		if prev, ok := seen[name]; ok {
			return NewGenerationError(m.Name, op.MethodName,
				fmt.Sprintf("element %q already declared by %s", name, prev), ErrDuplicateElement)
		}
		seen[name] = op.MethodName

		for _, p := range op.Parameters {
			if err := m.checkType(op.MethodName+"."+p.Name, p.Type); err != nil {
				return err
			}
		}

		if op.Kind == OperationTransformer {
			if err := op.CheckTransformer(m.Name); err != nil {
				return err
			}
		}
	}

	return nil
}

// CheckTransformer verifies a transformer converts something into
// something: it needs a source parameter, a non-void return type and no
// void extra source types. The primary parameter type is always registered
// as a source, so SourceTypes may be empty.
func (o *OperationModel) CheckTransformer(module string) error {
	if len(o.Parameters) == 0 {
		return NewGenerationError(module, o.MethodName, "transformer has no parameters", ErrMissingParameters)
	}
	if !o.Returns() {
		return NewGenerationError(module, o.MethodName, "transformer returns void", ErrMissingReturnType)
	}
	for i, t := range o.SourceTypes {
		if t.IsVoid() {
			return NewGenerationError(module, fmt.Sprintf("%s.sourceTypes[%d]", o.MethodName, i), "void source type", ErrVoidSourceType)
		}
	}
	return nil
}

func (m *ModuleModel) checkType(element string, t *TypeDescriptor) error {
	if t == nil {
		return NewGenerationError(m.Name, element, "missing type", ErrUnknownKind)
	}

	switch t.Kind {
	case KindPrimitive, KindBoxed, KindString, KindXMLBindable, KindNestedProcessor, KindPojo:
		if len(t.Arguments) > 0 {
			return NewGenerationError(m.Name, element,
				fmt.Sprintf("%s takes no type arguments", t.QualifiedName), ErrTypeArguments)
		}
	case KindEnum:
		if len(t.EnumConstants) == 0 {
			return NewGenerationError(m.Name, element, t.QualifiedName, ErrEmptyEnum)
		}
	case KindCollection:
		if len(t.Arguments) > 1 {
			return NewGenerationError(m.Name, element,
				fmt.Sprintf("collection %s declares %d type arguments", t.QualifiedName, len(t.Arguments)), ErrTypeArguments)
		}
	case KindMap:
		if len(t.Arguments) != 0 && len(t.Arguments) != 2 {
			return NewGenerationError(m.Name, element,
				fmt.Sprintf("map %s declares %d type arguments", t.QualifiedName, len(t.Arguments)), ErrTypeArguments)
		}
	default:
		return NewGenerationError(m.Name, element, fmt.Sprintf("kind %q", t.Kind), ErrUnknownKind)
	}

	for i, arg := range t.Arguments {
		if err := m.checkType(fmt.Sprintf("%s<%d>", element, i), arg); err != nil {
			return err
		}
	}
	return nil
}
