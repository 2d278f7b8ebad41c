// Package codegen synthesizes the runtime classes of a module into a
// codemodel.Model: one message processor per processor operation, one
// message source per source, one transformer per transformer, one enum
// transformer per distinct enum and one JAXB transformer per distinct
// XML-bindable processor parameter type.
package codegen

import (
	"errors"

	"github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
	"github.com/gaborage/go-devkit/projection"
)

// Class name suffixes of generated runtime classes.
const (
	MessageProcessorSuffix = "MessageProcessor"
	MessageSourceSuffix    = "MessageSource"
	TransformerSuffix      = "Transformer"
	EnumTransformerSuffix  = "EnumTransformer"
	JaxbTransformerSuffix  = "JaxbTransformer"
)

// ProcessorClassName is the qualified message processor class of op.
func ProcessorClassName(m *model.ModuleModel, op *model.OperationModel) string {
	return naming.Qualify(m.ConfigPackage(), naming.Capitalize(op.MethodName)+MessageProcessorSuffix)
}

// SourceClassName is the qualified message source class of op.
func SourceClassName(m *model.ModuleModel, op *model.OperationModel) string {
	return naming.Qualify(m.ConfigPackage(), naming.Capitalize(op.MethodName)+MessageSourceSuffix)
}

// TransformerClassName is the qualified transformer class of op.
func TransformerClassName(m *model.ModuleModel, op *model.OperationModel) string {
	return naming.Qualify(m.ConfigPackage(), naming.Capitalize(op.MethodName)+TransformerSuffix)
}

// EnumTransformerClassName is the qualified transformer class of an enum.
func EnumTransformerClassName(m *model.ModuleModel, enum *model.TypeDescriptor) string {
	return naming.Qualify(m.ConfigPackage(), enum.SimpleName()+EnumTransformerSuffix)
}

// JaxbTransformerClassName is the qualified JAXB transformer class of an
// XML-bindable type.
func JaxbTransformerClassName(m *model.ModuleModel, xml *model.TypeDescriptor) string {
	return naming.Qualify(m.ConfigPackage(), xml.SimpleName()+JaxbTransformerSuffix)
}

// Synthesize emits every runtime class of m into out. enums is the registry
// shared with the schema synthesizer for the same module pass; when nil,
// one is collected from the module.
func Synthesize(m *model.ModuleModel, out *codemodel.Model, enums *projection.EnumRegistry) error {
	if enums == nil {
		var err error
		if enums, err = projection.CollectEnums(m); err != nil {
			return err
		}
	}

	for _, op := range m.Operations {
		var err error
		switch op.Kind {
		case model.OperationProcessor:
			err = synthesizeProcessor(m, op, out)
		case model.OperationSource:
			err = synthesizeSource(m, op, out)
		case model.OperationTransformer:
			err = synthesizeTransformer(m, op, out)
		}
		if err != nil {
			return err
		}
	}

	for _, e := range enums.Enums() {
		if err := synthesizeEnumTransformer(m, e, out); err != nil {
			return err
		}
	}
	for _, x := range projection.XMLBindables(m) {
		if err := synthesizeJaxbTransformer(m, x, out); err != nil {
			return err
		}
	}
	return nil
}

// defineClass creates a class and maps a name clash to a generation error.
func defineClass(m *model.ModuleModel, element, qualified string, out *codemodel.Model) (*codemodel.Class, error) {
	c, err := out.Class(naming.PackageName(qualified), naming.ClassName(qualified))
	if err != nil {
		if errors.Is(err, codemodel.ErrDuplicateClass) {
			err = errors.Join(model.ErrDuplicateElement, err)
		}
		return nil, model.NewGenerationError(m.Name, element, "cannot define class", err)
	}
	return c, nil
}

// operationShapes projects the exposed parameters of op and, for
// connectable modules, the connect parameters.
func operationShapes(m *model.ModuleModel, op *model.OperationModel) (params, connect []*projection.Shape, err error) {
	params, err = projection.ProjectAll(op.Parameters, projection.ContextOperation)
	if err != nil {
		return nil, nil, model.NewGenerationError(m.Name, op.MethodName, "cannot project parameters", err)
	}
	if m.Connectable() {
		connect, err = projection.ProjectAll(m.ConnectParameters(), projection.ContextConnect)
		if err != nil {
			return nil, nil, model.NewGenerationError(m.Name, m.Connect.MethodName, "cannot project connect parameters", err)
		}
	}
	return params, connect, nil
}
