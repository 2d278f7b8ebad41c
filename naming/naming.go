// Package naming derives XML element names and Java class names from module
// identifiers. Every synthesizer goes through these helpers so the schema,
// the parsers and the generated classes agree on spelling.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

const (
	// InnerPrefix names the item of a collection nested inside another collection.
	InnerPrefix = "inner-"
	// RefSuffix marks an attribute holding a registry reference.
	RefSuffix = "-ref"
	// FlowRefSuffix marks an attribute holding a flow reference for callbacks.
	FlowRefSuffix = "-flow-ref"
	// EnumTypeSuffix names the union type registered for an enum.
	EnumTypeSuffix = "EnumType"
	// ComplexTypeSuffix names the complex type of an operation element.
	ComplexTypeSuffix = "Type"
)

// Uncamel converts a camelCase identifier to its hyphenated XML form,
// e.g. "retryMax" becomes "retry-max".
func Uncamel(name string) string {
	if name == "" {
		return ""
	}
	return strcase.ToKebab(name)
}

// Singular returns the singular form of an English noun. Hyphenated names
// only singularize their last segment.
func Singular(word string) string {
	if word == "" {
		return ""
	}
	i := strings.LastIndex(word, "-")
	if i < 0 {
		return inflection.Singular(word)
	}
	return word[:i+1] + inflection.Singular(word[i+1:])
}

// ItemName is the element name for a single entry of a collection parameter.
func ItemName(name string) string {
	return Singular(Uncamel(name))
}

// Inner prefixes a nested collection item name.
func Inner(name string) string {
	return InnerPrefix + name
}

// Ref returns the "-ref" attribute name for a parameter.
func Ref(name string) string {
	return name + RefSuffix
}

// FlowRef returns the "-flow-ref" attribute name for a callback parameter.
func FlowRef(name string) string {
	return Uncamel(name) + FlowRefSuffix
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ComplexTypeName returns the schema type name for an operation element.
// Hyphenated or underscored friendly names are camel-cased first, so
// "send-message" becomes "SendMessageType".
func ComplexTypeName(name string) string {
	if strings.ContainsAny(name, "-_ ") {
		return strcase.ToCamel(name) + ComplexTypeSuffix
	}
	return Capitalize(name) + ComplexTypeSuffix
}

// EnumTypeName returns the schema union type name for an enum simple name.
func EnumTypeName(simpleName string) string {
	return simpleName + EnumTypeSuffix
}

// ClassName returns the unqualified part of a fully qualified class name.
func ClassName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// PackageName returns the package part of a fully qualified class name.
func PackageName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[:i]
	}
	return ""
}

// Qualify joins a package and a simple class name.
func Qualify(pkg, simple string) string {
	if pkg == "" {
		return simple
	}
	return pkg + "." + simple
}

// FriendlyName turns "maxRetries" into "Max retries".
func FriendlyName(name string) string {
	return Capitalize(strings.ReplaceAll(Uncamel(name), "-", " "))
}
