package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
)

// Metadata files registering schemas and namespace handlers with Spring.
const (
	SpringSchemasFile  = "META-INF/spring.schemas"
	SpringHandlersFile = "META-INF/spring.handlers"
)

// Sink receives the artifacts of a run.
type Sink interface {
	WriteSchema(ctx context.Context, loc model.SchemaLocation, xsd []byte) error
	WriteClasses(ctx context.Context, module string, classes *cm.Model) error
	WriteMetadata(ctx context.Context, name string, lines []string) error
}

// Emit hands every result to sink, followed by the spring.schemas and
// spring.handlers metadata covering all of them.
func Emit(ctx context.Context, sink Sink, results []*Result) error {
	for _, r := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.WriteSchema(ctx, r.Location, r.XSD); err != nil {
			return fmt.Errorf("module %s: failed to write schema: %w", r.Module, err)
		}
		if err := sink.WriteClasses(ctx, r.Module, r.Classes); err != nil {
			return fmt.Errorf("module %s: failed to write classes: %w", r.Module, err)
		}
	}
	if err := sink.WriteMetadata(ctx, SpringSchemasFile, SpringSchemas(results)); err != nil {
		return fmt.Errorf("failed to write %s: %w", SpringSchemasFile, err)
	}
	if err := sink.WriteMetadata(ctx, SpringHandlersFile, SpringHandlers(results)); err != nil {
		return fmt.Errorf("failed to write %s: %w", SpringHandlersFile, err)
	}
	return nil
}

// escapeKey escapes the scheme separator of a properties-file key.
func escapeKey(location string) string {
	return strings.Replace(location, "://", "\\://", 1)
}

// SpringSchemas maps the versioned and current location of every schema to
// its file inside the artifact.
func SpringSchemas(results []*Result) []string {
	lines := make([]string, 0, 2*len(results))
	for _, r := range results {
		lines = append(lines,
			escapeKey(r.Location.VersionedLocation)+"="+r.Location.FileName,
			escapeKey(r.Location.CurrentLocation)+"="+r.Location.FileName,
		)
	}
	return lines
}

// SpringHandlers maps every namespace to its handler class.
func SpringHandlers(results []*Result) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, escapeKey(r.Location.Namespace)+"="+r.Location.NamespaceHandlerClassName)
	}
	return lines
}

// DirSink writes artifacts below Root: schemas and metadata at their
// META-INF paths and, when RenderJava is set, Java sources by package.
type DirSink struct {
	Root       string
	RenderJava bool
}

var _ Sink = (*DirSink)(nil)

// WriteSchema writes the XSD at the location's file name.
func (s *DirSink) WriteSchema(_ context.Context, loc model.SchemaLocation, xsd []byte) error {
	return s.write(loc.FileName, xsd)
}

// WriteClasses renders every class when RenderJava is set.
func (s *DirSink) WriteClasses(_ context.Context, _ string, classes *cm.Model) error {
	if !s.RenderJava {
		return nil
	}
	_, err := cm.NewJavaWriter(s.Root).WriteModel(classes)
	return err
}

// WriteMetadata writes lines as a newline-terminated file.
func (s *DirSink) WriteMetadata(_ context.Context, name string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return s.write(name, []byte(b.String()))
}

func (s *DirSink) write(name string, data []byte) error {
	path := filepath.Join(s.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
