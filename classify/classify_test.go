package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-devkit/model"
)

func TestClassifyBuckets(t *testing.T) {
	tests := []struct {
		name     string
		input    *model.TypeDescriptor
		expected Classification
	}{
		{"string", model.StringType(), Classification{SupportedSimple: true}},
		{"int", model.Primitive("int"), Classification{SupportedSimple: true}},
		{"boxed short", model.Boxed("java.lang.Short"), Classification{SupportedSimple: true}},
		{"char", model.Primitive("char"), Classification{SupportedSimple: true}},
		{"date as pojo", model.Pojo(model.JavaDate), Classification{SupportedSimple: true}},
		{"uri", model.Pojo(model.JavaURI), Classification{SupportedSimple: true}},
		{"big decimal", model.Boxed("java.math.BigDecimal"), Classification{}},
		{"enum", model.Enum("com.acme.Color", "RED"), Classification{Enum: true}},
		{"list of lists", model.ListOf(model.ListOf(model.StringType())), Classification{Collection: true}},
		{"map", model.MapOf(model.StringType(), model.Primitive("int")), Classification{Map: true}},
		{"xml", model.XMLBindable("com.acme.Order"), Classification{XMLBindable: true}},
		{"nested", model.Nested(false), Classification{NestedProcessor: true}},
		{"nested list", model.Nested(true), Classification{NestedProcessor: true}},
		{"callback", model.Pojo(model.HTTPCallback), Classification{HTTPCallback: true}},
		{"pojo", model.Pojo("com.acme.Session"), Classification{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Classify(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestClassifyUnknownKind(t *testing.T) {
	_, err := Classify(&model.TypeDescriptor{QualifiedName: "x", Kind: "alien"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownKind)

	_, err = Classify(nil)
	assert.ErrorIs(t, err, model.ErrUnknownKind)

	assert.Panics(t, func() { MustClassify(nil) })
}

func TestPrimaryBucketsAreExclusive(t *testing.T) {
	for _, kind := range model.Kinds {
		c := MustClassify(&model.TypeDescriptor{QualifiedName: model.JavaString, Kind: kind})
		count := 0
		for _, b := range []bool{c.SupportedSimple, c.Enum, c.Collection, c.Map} {
			if b {
				count++
			}
		}
		assert.LessOrEqual(t, count, 1, "kind %s", kind)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsSupported(model.Boxed("java.lang.Double")))
	assert.False(t, IsSupported(model.ListOf(model.StringType())))
	assert.True(t, IsEnum(model.Enum("Color", "RED")))
	assert.True(t, IsCollection(model.ListOf(nil)))
	assert.True(t, IsMap(model.MapOf(nil, nil)))
	assert.True(t, IsXMLBindable(model.XMLBindable("Order")))
	assert.True(t, IsNestedProcessor(model.Nested(true)))
	assert.True(t, IsRuntimeEvaluated(model.Enum("Color", "RED")))
	assert.True(t, IsRuntimeEvaluated(model.XMLBindable("Order")))
	assert.False(t, IsRuntimeEvaluated(model.Pojo("com.acme.Session")))
	assert.True(t, IsSupportedName("java.net.URL"))
	assert.False(t, IsSupportedName("java.lang.Object"))
}
