package codemodel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const indentUnit = "    "

// sourceWriter accumulates indented Java source.
type sourceWriter struct {
	sb     strings.Builder
	indent int
}

func (w *sourceWriter) line(s string) {
	if s == "" {
		w.sb.WriteByte('\n')
		return
	}
	w.sb.WriteString(strings.Repeat(indentUnit, w.indent))
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *sourceWriter) open(s string) {
	w.line(s)
	w.indent++
}

func (w *sourceWriter) close(s string) {
	w.indent--
	w.line(s)
}

func (w *sourceWriter) reopen(s string) {
	w.indent--
	w.line(s)
	w.indent++
}

func (w *sourceWriter) block(b *Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		s.write(w)
	}
}

// JavaWriter renders classes to Java source and writes them below a root
// directory following the package layout.
type JavaWriter struct {
	root string
}

// NewJavaWriter creates a writer rooted at dir.
func NewJavaWriter(dir string) *JavaWriter {
	return &JavaWriter{root: dir}
}

// Path is the file a class renders to.
func (j *JavaWriter) Path(c *Class) string {
	parts := append([]string{j.root}, strings.Split(c.Package, ".")...)
	return filepath.Join(append(parts, c.Name+".java")...)
}

// WriteModel renders every class and returns the written paths in model order.
func (j *JavaWriter) WriteModel(m *Model) ([]string, error) {
	paths := make([]string, 0, m.Len())
	for _, c := range m.Classes() {
		path := j.Path(c)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return paths, fmt.Errorf("failed to create package directory for %s: %w", c.FullName(), err)
		}
		if err := os.WriteFile(path, Render(c), 0o600); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", c.FullName(), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Render produces the Java source of one class. Types are written fully
// qualified, so no import section is emitted.
func Render(c *Class) []byte {
	w := &sourceWriter{}
	if c.Package != "" {
		w.line("package " + c.Package + ";")
		w.line("")
	}
	if c.Javadoc != "" {
		w.line("/**")
		for _, l := range strings.Split(c.Javadoc, "\n") {
			w.line(strings.TrimRight(" * "+l, " "))
		}
		w.line(" */")
	}

	header := modifiers(c.Modifiers) + "class " + c.Name
	if c.Extends != "" {
		header += " extends " + c.Extends
	}
	if len(c.Implements) > 0 {
		header += " implements " + strings.Join(c.Implements, ", ")
	}
	w.open(header + " {")

	for _, f := range c.Fields {
		decl := modifiers(f.Modifiers) + f.Type + " " + f.Name
		if f.Init != nil {
			decl += " = " + f.Init.Java()
		}
		w.line(decl + ";")
	}

	for _, m := range c.Constructors {
		w.line("")
		writeMethod(w, m)
	}
	for _, m := range c.Methods {
		w.line("")
		writeMethod(w, m)
	}

	w.close("}")
	return []byte(w.sb.String())
}

func writeMethod(w *sourceWriter, m *Method) {
	for _, a := range m.Annotations {
		w.line("@" + a)
	}
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.Type + " " + p.Name
	}

	sig := modifiers(m.Modifiers)
	if !m.IsConstructor() {
		sig += m.Returns + " "
	}
	sig += m.Name + "(" + strings.Join(params, ", ") + ")"
	if len(m.Throws) > 0 {
		sig += " throws " + strings.Join(m.Throws, ", ")
	}

	w.open(sig + " {")
	w.block(m.Body)
	w.close("}")
}

func modifiers(mods []Modifier) string {
	var sb strings.Builder
	for _, m := range mods {
		sb.WriteString(string(m))
		sb.WriteByte(' ')
	}
	return sb.String()
}
