package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) WriteSchema(ctx context.Context, loc model.SchemaLocation, xsd []byte) error {
	return m.Called(ctx, loc, xsd).Error(0)
}

func (m *mockSink) WriteClasses(ctx context.Context, module string, classes *cm.Model) error {
	return m.Called(ctx, module, classes).Error(0)
}

func (m *mockSink) WriteMetadata(ctx context.Context, name string, lines []string) error {
	return m.Called(ctx, name, lines).Error(0)
}

func generated(t *testing.T, names ...string) []*Result {
	t.Helper()
	modules := make([]*model.ModuleModel, len(names))
	for i, n := range names {
		modules[i] = module(n)
	}
	results, err := New().GenerateAll(context.Background(), modules)
	require.NoError(t, err)
	return results
}

func TestSpringMetadataLines(t *testing.T) {
	results := generated(t, "acme")

	assert.Equal(t, []string{
		`http\://www.mulesoft.org/schema/mule/acme/1.0/mule-acme.xsd=META-INF/mule-acme.xsd`,
		`http\://www.mulesoft.org/schema/mule/acme/current/mule-acme.xsd=META-INF/mule-acme.xsd`,
	}, SpringSchemas(results))
	assert.Equal(t, []string{
		`http\://www.mulesoft.org/schema/mule/acme=org.acme.config.spring.AcmeModuleNamespaceHandler`,
	}, SpringHandlers(results))
}

func TestEmitWritesEveryArtifact(t *testing.T) {
	results := generated(t, "acme", "beta")
	ctx := context.Background()

	sink := &mockSink{}
	for _, r := range results {
		sink.On("WriteSchema", ctx, r.Location, r.XSD).Return(nil).Once()
		sink.On("WriteClasses", ctx, r.Module, r.Classes).Return(nil).Once()
	}
	sink.On("WriteMetadata", ctx, SpringSchemasFile, SpringSchemas(results)).Return(nil).Once()
	sink.On("WriteMetadata", ctx, SpringHandlersFile, SpringHandlers(results)).Return(nil).Once()

	require.NoError(t, Emit(ctx, sink, results))
	sink.AssertExpectations(t)
}

func TestEmitStopsOnSinkFailure(t *testing.T) {
	results := generated(t, "acme")
	ctx := context.Background()

	sink := &mockSink{}
	sink.On("WriteSchema", ctx, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := Emit(ctx, sink, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module acme: failed to write schema: disk full")
	sink.AssertNotCalled(t, "WriteClasses", mock.Anything, mock.Anything, mock.Anything)
	sink.AssertNotCalled(t, "WriteMetadata", mock.Anything, mock.Anything, mock.Anything)
}

func TestDirSinkWritesTree(t *testing.T) {
	results := generated(t, "acme")
	root := t.TempDir()

	require.NoError(t, Emit(context.Background(), &DirSink{Root: root, RenderJava: true}, results))

	xsd, err := os.ReadFile(filepath.Join(root, "META-INF", "mule-acme.xsd"))
	require.NoError(t, err)
	assert.Equal(t, results[0].XSD, xsd)

	handlers, err := os.ReadFile(filepath.Join(root, "META-INF", "spring.handlers"))
	require.NoError(t, err)
	assert.Equal(t, SpringHandlers(results)[0]+"\n", string(handlers))

	src, err := os.ReadFile(filepath.Join(root, "org", "acme", "config", "spring", "AcmeModuleNamespaceHandler.java"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package org.acme.config.spring;")
}

func TestDirSinkSkipsJavaWhenDisabled(t *testing.T) {
	results := generated(t, "acme")
	root := t.TempDir()

	require.NoError(t, Emit(context.Background(), &DirSink{Root: root}, results))

	_, err := os.Stat(filepath.Join(root, "org"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "META-INF", "spring.schemas"))
	assert.NoError(t, err)
}
