package model

import (
	"github.com/gaborage/go-devkit/naming"
)

// OperationKind distinguishes processors, sources and transformers.
type OperationKind string

const (
	OperationProcessor   OperationKind = "processor"
	OperationSource      OperationKind = "source"
	OperationTransformer OperationKind = "transformer"
)

const (
	// BaseNamespace prefixes the default target namespace of a module.
	BaseNamespace = "http://www.mulesoft.org/schema/mule/"
	// CurrentVersion is the version segment of the unversioned schema location.
	CurrentVersion = "current"
	// DefaultSchemaVersion is used when a descriptor omits its schema version.
	DefaultSchemaVersion = "1.0"
)

// ParameterModel is one parameter of an operation.
type ParameterModel struct {
	Name         string          `yaml:"name" validate:"required,javaident"`
	Type         *TypeDescriptor `yaml:"type" validate:"required"`
	Optional     bool            `yaml:"optional,omitempty"`
	Default      string          `yaml:"default,omitempty"`
	FriendlyName string          `yaml:"friendlyName,omitempty"`
}

// ConfigurableFieldModel is a module-level configuration attribute.
type ConfigurableFieldModel struct {
	Name     string          `yaml:"name" validate:"required,javaident"`
	Type     *TypeDescriptor `yaml:"type" validate:"required"`
	Optional bool            `yaml:"optional,omitempty"`
	Default  string          `yaml:"default,omitempty"`
}

// AsParameter views a configurable field through the parameter shape so the
// projection rule treats both uniformly.
func (f *ConfigurableFieldModel) AsParameter() *ParameterModel {
	return &ParameterModel{Name: f.Name, Type: f.Type, Optional: f.Optional, Default: f.Default}
}

// OperationModel is one processor, source or transformer method.
type OperationModel struct {
	Kind         OperationKind     `yaml:"kind" validate:"required,oneof=processor source transformer"`
	MethodName   string            `yaml:"method" validate:"required,javaident"`
	Name         string            `yaml:"name,omitempty"`
	Parameters   []*ParameterModel `yaml:"parameters,omitempty" validate:"dive"`
	ReturnType   *TypeDescriptor   `yaml:"returns,omitempty"`
	Intercepting bool              `yaml:"intercepting,omitempty"`
	Priority     int               `yaml:"priority,omitempty"`
	SourceTypes  []*TypeDescriptor `yaml:"sourceTypes,omitempty" validate:"dive"`
	Static       bool              `yaml:"static,omitempty"`
	Description  string            `yaml:"description,omitempty"`
}

// ElementName is the XML element name: the explicit override, or the
// uncamelled method name.
func (o *OperationModel) ElementName() string {
	if o.Name != "" {
		return naming.Uncamel(o.Name)
	}
	return naming.Uncamel(o.MethodName)
}

// TypeName is the schema complex type name of the operation element.
func (o *OperationModel) TypeName() string {
	if o.Name != "" {
		return naming.ComplexTypeName(o.Name)
	}
	return naming.ComplexTypeName(o.MethodName)
}

// Returns reports whether the method produces a value.
func (o *OperationModel) Returns() bool {
	return !o.ReturnType.IsVoid()
}

// ExposedParameters lists the parameters surfaced to configuration. Source
// callbacks are supplied by the generated class itself.
func ExposedParameters(params []*ParameterModel) []*ParameterModel {
	out := make([]*ParameterModel, 0, len(params))
	for _, p := range params {
		if p.Type != nil && p.Type.QualifiedName == SourceCallback {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ModuleModel is the root description of one connector module.
type ModuleModel struct {
	Name           string                    `yaml:"name" validate:"required,modulename"`
	Package        string                    `yaml:"package" validate:"required"`
	ClassName      string                    `yaml:"class" validate:"required,javaident"`
	Namespace      string                    `yaml:"namespace,omitempty" validate:"omitempty,url"`
	SchemaVersion  string                    `yaml:"schemaVersion,omitempty"`
	SchemaLocation string                    `yaml:"schemaLocation,omitempty" validate:"omitempty,url"`
	Description    string                    `yaml:"description,omitempty"`
	Fields         []*ConfigurableFieldModel `yaml:"fields,omitempty" validate:"dive"`
	Operations     []*OperationModel         `yaml:"operations,omitempty" validate:"dive"`
	Connect        *OperationModel           `yaml:"connect,omitempty"`
	Poolable       bool                      `yaml:"poolable,omitempty"`
	OAuth          bool                      `yaml:"oauth,omitempty"`
	Initialisable  bool                      `yaml:"initialisable,omitempty"`
	Disposable     bool                      `yaml:"disposable,omitempty"`
}

// TargetNamespace returns the declared namespace or the default derived from the name.
func (m *ModuleModel) TargetNamespace() string {
	if m.Namespace != "" {
		return m.Namespace
	}
	return BaseNamespace + m.Name
}

// Version returns the schema version with the default applied.
func (m *ModuleModel) Version() string {
	if m.SchemaVersion != "" {
		return m.SchemaVersion
	}
	return DefaultSchemaVersion
}

// SchemaFile is the bare file name of the module schema.
func (m *ModuleModel) SchemaFile() string {
	return "mule-" + m.Name + ".xsd"
}

// VersionedLocation is the schema location bound to the module's version.
func (m *ModuleModel) VersionedLocation() string {
	if m.SchemaLocation != "" {
		return m.SchemaLocation
	}
	return m.TargetNamespace() + "/" + m.Version() + "/" + m.SchemaFile()
}

// CurrentLocation is the schema location that always tracks the latest version.
func (m *ModuleModel) CurrentLocation() string {
	return m.TargetNamespace() + "/" + CurrentVersion + "/" + m.SchemaFile()
}

// PojoClassName is the fully qualified module class.
func (m *ModuleModel) PojoClassName() string {
	return naming.Qualify(m.Package, m.ClassName)
}

// ConfigPackage hosts generated processors, sources and transformers.
func (m *ModuleModel) ConfigPackage() string {
	return m.Package + ".config"
}

// SpringPackage hosts generated parsers and the namespace handler.
func (m *ModuleModel) SpringPackage() string {
	return m.Package + ".config.spring"
}

// NamespaceHandlerClassName is the fully qualified namespace handler class.
func (m *ModuleModel) NamespaceHandlerClassName() string {
	return naming.Qualify(m.SpringPackage(), m.ClassName+"NamespaceHandler")
}

// Connectable reports whether the module declares connect semantics.
func (m *ModuleModel) Connectable() bool {
	return m.Connect != nil
}

// ConnectParameters returns the connect method parameters, or nil.
func (m *ModuleModel) ConnectParameters() []*ParameterModel {
	if m.Connect == nil {
		return nil
	}
	return m.Connect.Parameters
}

// OperationsOf filters operations by kind, preserving declaration order.
func (m *ModuleModel) OperationsOf(kind OperationKind) []*OperationModel {
	var out []*OperationModel
	for _, op := range m.Operations {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Processors returns the processor operations.
func (m *ModuleModel) Processors() []*OperationModel {
	return m.OperationsOf(OperationProcessor)
}

// UsesHTTPCallback reports whether any processor takes an HttpCallback
// parameter, which adds the http-callback-config element to <config>.
func (m *ModuleModel) UsesHTTPCallback() bool {
	for _, op := range m.Processors() {
		for _, p := range op.Parameters {
			if p.Type != nil && p.Type.QualifiedName == HTTPCallback {
				return true
			}
		}
	}
	return false
}

// Sources returns the source operations.
func (m *ModuleModel) Sources() []*OperationModel {
	return m.OperationsOf(OperationSource)
}

// Transformers returns the transformer operations.
func (m *ModuleModel) Transformers() []*OperationModel {
	return m.OperationsOf(OperationTransformer)
}

// SchemaLocation is the registry record handed to the spring.schemas and
// spring.handlers writers.
type SchemaLocation struct {
	Namespace                 string `json:"namespace" yaml:"namespace"`
	VersionedLocation         string `json:"versionedLocation" yaml:"versionedLocation"`
	CurrentLocation           string `json:"currentLocation" yaml:"currentLocation"`
	NamespaceHandlerClassName string `json:"namespaceHandler" yaml:"namespaceHandler"`
	PojoClassName             string `json:"pojo" yaml:"pojo"`
	FileName                  string `json:"fileName" yaml:"fileName"`
}

// Location builds the schema-location record of the module.
func (m *ModuleModel) Location() SchemaLocation {
	return SchemaLocation{
		Namespace:                 m.TargetNamespace(),
		VersionedLocation:         m.VersionedLocation(),
		CurrentLocation:           m.CurrentLocation(),
		NamespaceHandlerClassName: m.NamespaceHandlerClassName(),
		PojoClassName:             m.PojoClassName(),
		FileName:                  "META-INF/" + m.SchemaFile(),
	}
}
