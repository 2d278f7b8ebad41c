// Package classify answers the shape questions the synthesizers ask about a
// type descriptor. Classification is pure and only looks at the outer level:
// a list of lists is a collection, and its element is classified again by the
// caller when it recurses.
package classify

import (
	"fmt"

	"github.com/gaborage/go-devkit/model"
)

// Classification holds the answers for one descriptor. SupportedSimple, Enum,
// Collection and Map are mutually exclusive; NestedProcessor and XMLBindable
// are orthogonal tags.
type Classification struct {
	SupportedSimple bool
	Enum            bool
	Collection      bool
	Map             bool
	XMLBindable     bool
	NestedProcessor bool
	HTTPCallback    bool
}

// supported is the closed set of simple types mapped to schema types.
var supported = map[string]bool{
	model.JavaString:      true,
	"int":                 true,
	"java.lang.Integer":   true,
	"short":               true,
	"java.lang.Short":     true,
	"float":               true,
	"java.lang.Float":     true,
	"long":                true,
	"java.lang.Long":      true,
	"byte":                true,
	"java.lang.Byte":      true,
	"double":              true,
	"java.lang.Double":    true,
	"boolean":             true,
	"java.lang.Boolean":   true,
	"char":                true,
	"java.lang.Character": true,
	model.JavaDate:        true,
	model.JavaURL:         true,
	model.JavaURI:         true,
}

// IsSupportedName reports whether a qualified name belongs to the supported
// simple type set.
func IsSupportedName(name string) bool {
	return supported[name]
}

// Classify returns the classification of t. Unknown kinds are reported as a
// model.ErrUnknownKind so a descriptor never silently falls through.
func Classify(t *model.TypeDescriptor) (Classification, error) {
	var c Classification
	if t == nil {
		return c, fmt.Errorf("nil type descriptor: %w", model.ErrUnknownKind)
	}

	switch t.Kind {
	case model.KindPrimitive, model.KindBoxed, model.KindString:
		c.SupportedSimple = supported[t.QualifiedName]
	case model.KindEnum:
		c.Enum = true
	case model.KindCollection:
		c.Collection = true
	case model.KindMap:
		c.Map = true
	case model.KindXMLBindable:
		c.XMLBindable = true
	case model.KindNestedProcessor:
		c.NestedProcessor = true
	case model.KindPojo:
		// java.util.Date, URL and URI arrive as pojos from some adapters.
		c.SupportedSimple = supported[t.QualifiedName]
		c.HTTPCallback = t.QualifiedName == model.HTTPCallback
	default:
		return c, fmt.Errorf("kind %q of %s: %w", t.Kind, t.QualifiedName, model.ErrUnknownKind)
	}

	return c, nil
}

// MustClassify classifies descriptors that already passed model.Check.
func MustClassify(t *model.TypeDescriptor) Classification {
	c, err := Classify(t)
	if err != nil {
		panic(err)
	}
	return c
}

// IsSupported reports whether t is in the supported simple type set.
func IsSupported(t *model.TypeDescriptor) bool {
	c, err := Classify(t)
	return err == nil && c.SupportedSimple
}

// IsEnum reports whether t is an enum.
func IsEnum(t *model.TypeDescriptor) bool {
	return t != nil && t.Kind == model.KindEnum
}

// IsCollection reports whether t is a list or array.
func IsCollection(t *model.TypeDescriptor) bool {
	return t != nil && t.Kind == model.KindCollection
}

// IsMap reports whether t is a map.
func IsMap(t *model.TypeDescriptor) bool {
	return t != nil && t.Kind == model.KindMap
}

// IsXMLBindable reports whether t is a JAXB-bound class.
func IsXMLBindable(t *model.TypeDescriptor) bool {
	return t != nil && t.Kind == model.KindXMLBindable
}

// IsNestedProcessor reports whether t is a nested processor or a list of them.
func IsNestedProcessor(t *model.TypeDescriptor) bool {
	return t != nil && t.Kind == model.KindNestedProcessor
}

// IsRuntimeEvaluated reports whether values of t go through expression
// evaluation and transformer lookup in generated processors.
func IsRuntimeEvaluated(t *model.TypeDescriptor) bool {
	return IsSupported(t) || IsXMLBindable(t) || IsEnum(t)
}
