package schema

import (
	"github.com/gaborage/go-devkit/model"
)

// Registered simple type names. Each is a union of the strict XSD type and
// the expression-or-placeholder pattern.
const (
	IntegerType  = "integerType"
	DecimalType  = "decimalType"
	FloatType    = "floatType"
	DoubleType   = "doubleType"
	DateTimeType = "dateTimeType"
	LongType     = "longType"
	ByteType     = "byteType"
	BooleanType  = "booleanType"
	AnyURIType   = "anyUriType"
	CharType     = "charType"
	StringType   = "stringType"
	XMLType      = "XmlType"
)

var simpleTypes = map[string]string{
	model.JavaString:      StringType,
	"int":                 IntegerType,
	"java.lang.Integer":   IntegerType,
	"short":               IntegerType,
	"java.lang.Short":     IntegerType,
	"float":               FloatType,
	"java.lang.Float":     FloatType,
	"long":                LongType,
	"java.lang.Long":      LongType,
	"byte":                ByteType,
	"java.lang.Byte":      ByteType,
	"double":              DoubleType,
	"java.lang.Double":    DoubleType,
	"boolean":             BooleanType,
	"java.lang.Boolean":   BooleanType,
	"char":                CharType,
	"java.lang.Character": CharType,
	model.JavaDate:        DateTimeType,
	model.JavaURL:         AnyURIType,
	model.JavaURI:         AnyURIType,
}

// ToSchemaType maps a supported simple type to its schema type name in the
// target namespace. The second result is false for every type outside the
// supported set.
func ToSchemaType(t *model.TypeDescriptor, targetNamespace string) (*QName, bool) {
	if t == nil {
		return nil, false
	}
	local, ok := simpleTypes[t.QualifiedName]
	if !ok {
		return nil, false
	}
	return Local(targetNamespace, local), true
}

// IsSupported reports whether t has a schema type.
func IsSupported(t *model.TypeDescriptor) bool {
	_, ok := ToSchemaType(t, "")
	return ok
}
