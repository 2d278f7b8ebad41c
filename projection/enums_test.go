package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-devkit/model"
)

func TestCollectEnumsDeduplicates(t *testing.T) {
	color := model.Enum("com.acme.Color", "RED", "GREEN")
	size := model.Enum("com.acme.Size", "S", "M")

	m := &model.ModuleModel{
		Name:      "paint",
		Package:   "com.acme",
		ClassName: "Paint",
		Fields:    []*model.ConfigurableFieldModel{{Name: "defaultColor", Type: color}},
		Operations: []*model.OperationModel{
			{Kind: model.OperationProcessor, MethodName: "paint", Parameters: []*model.ParameterModel{
				{Name: "color", Type: color},
				{Name: "palette", Type: model.ListOf(color)},
			}},
			{Kind: model.OperationSource, MethodName: "watch", Parameters: []*model.ParameterModel{
				{Name: "sizes", Type: model.MapOf(model.StringType(), model.ListOf(size))},
			}},
		},
	}

	r, err := CollectEnums(m)
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	assert.Equal(t, "com.acme.Color", r.Enums()[0].QualifiedName)
	assert.Equal(t, "com.acme.Size", r.Enums()[1].QualifiedName)
}

func TestEnumRegistryRejectsSimpleNameClash(t *testing.T) {
	r := NewEnumRegistry()

	added, err := r.Register(model.Enum("com.acme.Color", "RED"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = r.Register(model.Enum("com.acme.Color", "RED"))
	require.NoError(t, err)
	assert.False(t, added)

	_, err = r.Register(model.Enum("org.other.Color", "BLUE"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDuplicateElement)
	assert.Equal(t, 1, r.Len())
}
