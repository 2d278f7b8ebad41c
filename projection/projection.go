// Package projection decides how a parameter or configurable field appears in
// the generated artifacts. The schema synthesizer, the code synthesizer and
// the bean-definition parser synthesizer all consume the same Shape, so an
// attribute exposed in the schema always has a matching field and parse rule.
package projection

import (
	"fmt"

	"github.com/gaborage/go-devkit/classify"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
)

// ShapeKind is the top-level shape of a projected parameter.
type ShapeKind string

const (
	ShapeAttribute       ShapeKind = "attribute"
	ShapeEnumAttribute   ShapeKind = "enumAttribute"
	ShapeFlowRef         ShapeKind = "flowRef"
	ShapeXMLElement      ShapeKind = "xmlElement"
	ShapeNestedProcessor ShapeKind = "nestedProcessor"
	ShapeCollection      ShapeKind = "collection"
	ShapeMap             ShapeKind = "map"
	ShapeRef             ShapeKind = "ref"
)

// Context is where a parameter is projected.
type Context string

const (
	// ContextConfig projects module configurable fields into <config>.
	ContextConfig Context = "config"
	// ContextOperation projects processor and source parameters.
	ContextOperation Context = "operation"
	// ContextConnect projects connect parameters; they are always optional.
	ContextConnect Context = "connect"
)

// Attribute and element names shared by every projection.
const (
	AttrRef      = "ref"
	AttrValueRef = "value-ref"
	AttrKey      = "key"
	AttrKeyRef   = "key-ref"
	AttrText     = "text"
	// CallbackFlowSuffix names the bean property holding a callback flow.
	CallbackFlowSuffix = "CallbackFlow"
)

// Shape is the projection of one parameter.
type Shape struct {
	Kind ShapeKind
	// Name is the parameter name; it is also the bean property and field
	// name unless Property says otherwise.
	Name     string
	Property string
	Type     *model.TypeDescriptor
	// Attribute is the XML attribute name for attribute-like shapes.
	Attribute string
	// Element is the XML child element name for structural shapes.
	Element  string
	Optional bool
	Default  string
	Summary  string
	// Collapsed marks a nested processor that is the sole structural child
	// of an operation and is inlined as a group on the operation type.
	Collapsed bool
	// Container describes the item structure of collections and maps.
	Container *Container
}

// IsAttribute reports whether the shape is carried by an XML attribute.
func (s *Shape) IsAttribute() bool {
	switch s.Kind {
	case ShapeAttribute, ShapeEnumAttribute, ShapeFlowRef, ShapeRef:
		return true
	default:
		return false
	}
}

// IsStructural reports whether the shape is a child element.
func (s *Shape) IsStructural() bool {
	return !s.IsAttribute()
}

// RuntimeEvaluated reports whether generated processors evaluate the field
// and coerce the result to the boxed parameter type.
func (s *Shape) RuntimeEvaluated() bool {
	switch s.Kind {
	case ShapeAttribute, ShapeEnumAttribute, ShapeXMLElement:
		return true
	default:
		return false
	}
}

// Typed reports whether generated processors convert the field with
// evaluateAndTransform against the generic type held by TypeField.
func (s *Shape) Typed() bool {
	switch s.Kind {
	case ShapeRef, ShapeCollection, ShapeMap:
		return true
	default:
		return false
	}
}

// FieldType is the Java type of the generated processor field. Only
// callback flows are typed: every other field receives a literal, an
// expression, a bean reference or a managed collection from the parser and
// is converted when the processor runs.
func (s *Shape) FieldType() string {
	if s.Kind == ShapeFlowRef {
		return FlowType
	}
	return model.JavaObject
}

// DeclaredType is the boxed parameter type the field is converted to.
func (s *Shape) DeclaredType() string {
	return s.Type.JavaType(true)
}

// TypeField names the companion field declared with DeclaredType.
func (s *Shape) TypeField() string {
	return "_" + s.Property + "Type"
}

// FlowType is the runtime type injected for callback flow references.
const FlowType = "org.mule.api.processor.MessageProcessor"

// Project applies the per-parameter rule to p. structural is the number of
// structural children of the enclosing operation and is only consulted in
// ContextOperation.
func Project(p *model.ParameterModel, ctx Context, structural int) (*Shape, error) {
	c, err := classify.Classify(p.Type)
	if err != nil {
		return nil, err
	}

	s := &Shape{
		Name:     p.Name,
		Property: p.Name,
		Type:     p.Type,
		Optional: p.Optional || ctx == ContextConnect,
		Default:  p.Default,
		Summary:  summary(p),
	}

	switch {
	case c.NestedProcessor:
		s.Kind = ShapeNestedProcessor
		s.Element = naming.Uncamel(p.Name)
		s.Collapsed = ctx == ContextOperation && structural == 1
	case c.SupportedSimple:
		s.Kind = ShapeAttribute
		s.Attribute = p.Name
	case c.Enum:
		s.Kind = ShapeEnumAttribute
		s.Attribute = p.Name
	case c.HTTPCallback:
		s.Kind = ShapeFlowRef
		s.Attribute = naming.FlowRef(p.Name)
		s.Property = p.Name + CallbackFlowSuffix
	case c.XMLBindable:
		s.Kind = ShapeXMLElement
		s.Element = naming.Uncamel(p.Name)
	case c.Collection, c.Map:
		s.Kind = ShapeCollection
		if c.Map {
			s.Kind = ShapeMap
		}
		s.Element = naming.Uncamel(p.Name)
		s.Container = NewContainer(p.Type, naming.ItemName(p.Name))
	default:
		s.Kind = ShapeRef
		s.Attribute = naming.Ref(p.Name)
	}

	return s, nil
}

// ProjectAll projects an ordered parameter list, counting structural
// children first so a lone nested processor can collapse. Source callbacks
// are skipped.
func ProjectAll(params []*model.ParameterModel, ctx Context) ([]*Shape, error) {
	exposed := model.ExposedParameters(params)

	structural, err := StructuralChildren(exposed)
	if err != nil {
		return nil, err
	}

	shapes := make([]*Shape, 0, len(exposed))
	for _, p := range exposed {
		s, err := Project(p, ctx, structural)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// ProjectFields projects module configurable fields in ContextConfig.
func ProjectFields(fields []*model.ConfigurableFieldModel) ([]*Shape, error) {
	params := make([]*model.ParameterModel, 0, len(fields))
	for _, f := range fields {
		params = append(params, f.AsParameter())
	}
	return ProjectAll(params, ContextConfig)
}

// StructuralChildren counts nested processors, XML-bindable parameters,
// collections and maps.
func StructuralChildren(params []*model.ParameterModel) (int, error) {
	n := 0
	for _, p := range params {
		c, err := classify.Classify(p.Type)
		if err != nil {
			return 0, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		if c.NestedProcessor || c.XMLBindable || c.Collection || c.Map {
			n++
		}
	}
	return n, nil
}

func summary(p *model.ParameterModel) string {
	if p.FriendlyName != "" {
		return p.FriendlyName
	}
	return naming.FriendlyName(p.Name)
}
