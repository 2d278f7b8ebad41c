// Package model defines the decoded description of a connector module that every
// synthesizer consumes. Models are built once (in Go or from a YAML descriptor)
// and never mutated afterwards.
package model

import (
	"fmt"
	"strings"
)

// Kind is the primary classification bucket of a TypeDescriptor.
type Kind string

const (
	KindPrimitive       Kind = "primitive"
	KindBoxed           Kind = "boxed"
	KindString          Kind = "string"
	KindEnum            Kind = "enum"
	KindCollection      Kind = "collection"
	KindMap             Kind = "map"
	KindXMLBindable     Kind = "xmlBindable"
	KindNestedProcessor Kind = "nestedProcessor"
	KindPojo            Kind = "pojo"
)

// Kinds lists every valid Kind in declaration order.
var Kinds = []Kind{
	KindPrimitive,
	KindBoxed,
	KindString,
	KindEnum,
	KindCollection,
	KindMap,
	KindXMLBindable,
	KindNestedProcessor,
	KindPojo,
}

// Valid reports whether k is one of the closed set of kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Well-known qualified names used by descriptors and synthesizers.
const (
	JavaString       = "java.lang.String"
	JavaObject       = "java.lang.Object"
	JavaList         = "java.util.List"
	JavaMap          = "java.util.Map"
	JavaDate         = "java.util.Date"
	JavaURL          = "java.net.URL"
	JavaURI          = "java.net.URI"
	NestedProcessor  = "org.mule.api.NestedProcessor"
	HTTPCallback     = "org.mule.api.callback.HttpCallback"
	SourceCallback   = "org.mule.api.callback.SourceCallback"
	JavaVoid         = "void"
	javaLangPrefix   = "java.lang."
	arraySuffix      = "[]"
	genericSeparator = ", "
)

// primitiveBoxes maps primitive names to their boxed counterparts.
var primitiveBoxes = map[string]string{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"char":    "java.lang.Character",
	"short":   "java.lang.Short",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
}

// TypeDescriptor is the semantic type of a field, parameter or return value.
// Collections carry one type argument and maps carry two; each argument is
// itself a TypeDescriptor so nesting recurses.
type TypeDescriptor struct {
	QualifiedName string            `yaml:"name" validate:"required"`
	Kind          Kind              `yaml:"kind" validate:"required,kind"`
	Arguments     []*TypeDescriptor `yaml:"args,omitempty" validate:"max=2,dive"`
	EnumConstants []string          `yaml:"constants,omitempty"`
	// ListOf marks a nested processor parameter that accepts a list of processors.
	ListOf bool `yaml:"list,omitempty"`
}

// Primitive returns a descriptor for a Java primitive such as "int".
func Primitive(name string) *TypeDescriptor {
	return &TypeDescriptor{QualifiedName: name, Kind: KindPrimitive}
}

// Boxed returns a descriptor for a boxed JDK type such as java.lang.Integer.
func Boxed(name string) *TypeDescriptor {
	return &TypeDescriptor{QualifiedName: name, Kind: KindBoxed}
}

// StringType returns the java.lang.String descriptor.
func StringType() *TypeDescriptor {
	return &TypeDescriptor{QualifiedName: JavaString, Kind: KindString}
}

// Enum returns an enum descriptor with its constants.
func Enum(name string, constants ...string) *TypeDescriptor {
	return &TypeDescriptor{QualifiedName: name, Kind: KindEnum, EnumConstants: constants}
}

// ListOf returns a java.util.List descriptor over elem. A nil elem yields a raw list.
func ListOf(elem *TypeDescriptor) *TypeDescriptor {
	td := &TypeDescriptor{QualifiedName: JavaList, Kind: KindCollection}
	if elem != nil {
		td.Arguments = []*TypeDescriptor{elem}
	}
	return td
}

// MapOf returns a java.util.Map descriptor. Nil key and value yield a raw map.
func MapOf(key, value *TypeDescriptor) *TypeDescriptor {
	td := &TypeDescriptor{QualifiedName: JavaMap, Kind: KindMap}
	if key != nil && value != nil {
		td.Arguments = []*TypeDescriptor{key, value}
	}
	return td
}

// XMLBindable returns a descriptor for a JAXB-annotated class.
func XMLBindable(name string) *TypeDescriptor {
	return &TypeDescriptor{QualifiedName: name, Kind: KindXMLBindable}
}

// Nested returns the NestedProcessor descriptor, optionally as a list.
func Nested(list bool) *TypeDescriptor {
	return &TypeDescriptor{QualifiedName: NestedProcessor, Kind: KindNestedProcessor, ListOf: list}
}

// Pojo returns a descriptor for an arbitrary object type.
func Pojo(name string) *TypeDescriptor {
	return &TypeDescriptor{QualifiedName: name, Kind: KindPojo}
}

// SimpleName returns the unqualified name without generics or array markers.
func (t *TypeDescriptor) SimpleName() string {
	name := strings.TrimSuffix(t.QualifiedName, arraySuffix)
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// BoxedName returns the boxed qualified name for primitives and the qualified name otherwise.
func (t *TypeDescriptor) BoxedName() string {
	if boxed, ok := primitiveBoxes[t.QualifiedName]; ok {
		return boxed
	}
	return t.QualifiedName
}

// IsPrimitive reports whether the descriptor names a Java primitive.
func (t *TypeDescriptor) IsPrimitive() bool {
	_, ok := primitiveBoxes[t.QualifiedName]
	return ok
}

// IsVoid reports whether the descriptor is the void return type.
func (t *TypeDescriptor) IsVoid() bool {
	return t == nil || t.QualifiedName == JavaVoid
}

// Arg returns the i-th type argument or nil.
func (t *TypeDescriptor) Arg(i int) *TypeDescriptor {
	if i < 0 || i >= len(t.Arguments) {
		return nil
	}
	return t.Arguments[i]
}

// JavaType renders the descriptor as a Java type expression. When boxed is
// true, primitives are replaced by their wrapper classes at every level.
func (t *TypeDescriptor) JavaType(boxed bool) string {
	if t == nil {
		return JavaVoid
	}
	name := t.QualifiedName
	if t.Kind == KindNestedProcessor && t.ListOf {
		return JavaList + "<" + NestedProcessor + ">"
	}
	if boxed || len(t.Arguments) > 0 {
		name = t.BoxedName()
	}
	if len(t.Arguments) == 0 {
		return name
	}
	args := make([]string, 0, len(t.Arguments))
	for _, a := range t.Arguments {
		args = append(args, a.JavaType(true))
	}
	return name + "<" + strings.Join(args, genericSeparator) + ">"
}

// String implements fmt.Stringer.
func (t *TypeDescriptor) String() string {
	if t == nil {
		return JavaVoid
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.JavaType(false))
}

// Key returns a stable identity for deduplication across a module pass.
func (t *TypeDescriptor) Key() string {
	return string(t.Kind) + ":" + t.QualifiedName
}

// IsJavaLang reports whether the type lives in java.lang.
func (t *TypeDescriptor) IsJavaLang() bool {
	return strings.HasPrefix(t.QualifiedName, javaLangPrefix)
}
