// Package codemodel is an abstract model of Java classes: packages, classes,
// fields, methods and a small statement/expression tree. Synthesizers build
// the model; JavaWriter renders it to source text.
package codemodel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateClass is returned when a class name is defined twice.
var ErrDuplicateClass = errors.New("duplicate class")

// Modifier is a Java modifier keyword.
type Modifier string

const (
	Public    Modifier = "public"
	Protected Modifier = "protected"
	Private   Modifier = "private"
	Static    Modifier = "static"
	Final     Modifier = "final"
	Abstract  Modifier = "abstract"
)

// Model holds every generated class in definition order.
type Model struct {
	classes []*Class
	byName  map[string]*Class
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{byName: make(map[string]*Class)}
}

// Class defines a new public class in pkg. Defining the same qualified name
// twice returns ErrDuplicateClass.
func (m *Model) Class(pkg, name string) (*Class, error) {
	c := &Class{Package: pkg, Name: name, Modifiers: []Modifier{Public}}
	fqn := c.FullName()
	if _, exists := m.byName[fqn]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateClass, fqn)
	}
	m.byName[fqn] = c
	m.classes = append(m.classes, c)
	return c, nil
}

// Lookup returns a class by qualified name.
func (m *Model) Lookup(fqn string) (*Class, bool) {
	c, ok := m.byName[fqn]
	return c, ok
}

// Classes returns the classes in definition order.
func (m *Model) Classes() []*Class {
	return append([]*Class(nil), m.classes...)
}

// Len returns the number of classes.
func (m *Model) Len() int {
	return len(m.classes)
}

// Class is one top-level Java class.
type Class struct {
	Package      string
	Name         string
	Javadoc      string
	Modifiers    []Modifier
	Extends      string
	Implements   []string
	Fields       []*Field
	Constructors []*Method
	Methods      []*Method
}

// FullName is the qualified class name.
func (c *Class) FullName() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// Implement appends interfaces, skipping those already present.
func (c *Class) Implement(ifaces ...string) *Class {
	for _, i := range ifaces {
		if !c.ImplementsInterface(i) {
			c.Implements = append(c.Implements, i)
		}
	}
	return c
}

// ImplementsInterface reports whether iface is listed.
func (c *Class) ImplementsInterface(iface string) bool {
	for _, i := range c.Implements {
		if i == iface {
			return true
		}
	}
	return false
}

// Field adds a field.
func (c *Class) Field(typ, name string, mods ...Modifier) *Field {
	f := &Field{Type: typ, Name: name, Modifiers: mods}
	c.Fields = append(c.Fields, f)
	return f
}

// Method adds a method and returns it for body construction.
func (c *Class) Method(returns, name string, mods ...Modifier) *Method {
	m := &Method{Returns: returns, Name: name, Modifiers: mods, Body: &Block{}}
	c.Methods = append(c.Methods, m)
	return m
}

// Constructor adds a constructor.
func (c *Class) Constructor(mods ...Modifier) *Method {
	m := &Method{Name: c.Name, Modifiers: mods, Body: &Block{}}
	c.Constructors = append(c.Constructors, m)
	return m
}

// FindField looks up a field by name.
func (c *Class) FindField(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FindMethod looks up the first method with the given name.
func (c *Class) FindMethod(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Field is a class member variable.
type Field struct {
	Modifiers []Modifier
	Type      string
	Name      string
	Init      Expr
}

// Method is a method or constructor. Constructors have an empty Returns.
type Method struct {
	Modifiers   []Modifier
	Annotations []string
	Returns     string
	Name        string
	Params      []*Param
	Throws      []string
	Body        *Block
}

// Param is a method parameter.
type Param struct {
	Type string
	Name string
}

// Param appends a parameter and returns a reference to it.
func (m *Method) Param(typ, name string) Expr {
	m.Params = append(m.Params, &Param{Type: typ, Name: name})
	return Name(name)
}

// Throw declares a checked exception.
func (m *Method) Throw(types ...string) *Method {
	m.Throws = append(m.Throws, types...)
	return m
}

// Annotate adds a marker annotation such as "Override".
func (m *Method) Annotate(names ...string) *Method {
	m.Annotations = append(m.Annotations, names...)
	return m
}

// IsConstructor reports whether the method is a constructor.
func (m *Method) IsConstructor() bool {
	return m.Returns == ""
}

// SimpleName returns the last segment of a qualified class name, dropping
// any generic arguments.
func SimpleName(qualified string) string {
	if i := strings.IndexByte(qualified, '<'); i >= 0 {
		qualified = qualified[:i]
	}
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
