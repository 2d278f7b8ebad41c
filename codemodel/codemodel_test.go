package codemodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRejectsDuplicateClass(t *testing.T) {
	m := NewModel()
	_, err := m.Class("org.acme", "Foo")
	require.NoError(t, err)

	_, err = m.Class("org.acme", "Foo")
	assert.ErrorIs(t, err, ErrDuplicateClass)

	_, err = m.Class("org.other", "Foo")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	c, ok := m.Lookup("org.other.Foo")
	require.True(t, ok)
	assert.Equal(t, "Foo", c.Name)
}

func TestImplementSkipsDuplicates(t *testing.T) {
	c := &Class{Name: "Foo"}
	c.Implement("a.A", "b.B").Implement("a.A")
	assert.Equal(t, []string{"a.A", "b.B"}, c.Implements)
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"call", Call(Self("muleContext"), "getRegistry"), "this.muleContext.getRegistry()"},
		{"invoke", Invoke("evaluate", Name("x"), Null), "evaluate(x, null)"},
		{"new", New("java.util.ArrayList"), "new java.util.ArrayList()"},
		{"literal", Lit(`say "hi"`), `"say \"hi\""`},
		{"class", ClassLit("java.util.List<java.lang.String>"), "java.util.List.class"},
		{"cast", Cast("java.lang.String", Name("src")), "((java.lang.String) src)"},
		{"instanceof", InstanceOf(Name("v"), "java.util.Map<K, V>"), "(v instanceof java.util.Map)"},
		{"and", And(Ne(Name("a"), Null), Not(Name("b"))), "((a != null) && !b)"},
		{"plus", Plus(Lit("#[registry:"), Name("ref")), `("#[registry:" + ref)`},
		{"cond", Cond(Eq(Name("a"), Int(1)), True, False), "((a == 1) ? true : false)"},
		{"static", Dot(Type("org.mule.api.lifecycle.Initialisable"), "PHASE_NAME"), "org.mule.api.lifecycle.Initialisable.PHASE_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.Java())
		})
	}
}

func TestRenderClass(t *testing.T) {
	m := NewModel()
	c, err := m.Class("org.acme.config", "SendMessageProcessor")
	require.NoError(t, err)
	c.Implement("org.mule.api.processor.MessageProcessor")
	c.Field("java.lang.Object", "message", Private)

	setter := c.Method("void", "setMessage", Public)
	value := setter.Param("java.lang.Object", "value")
	setter.Body.Assign(Self("message"), value)

	process := c.Method("java.lang.Object", "process", Public).Throw("java.lang.Exception").Annotate("Override")
	cond := process.Body.If(Eq(Self("message"), Null))
	cond.Then.Return(Null)
	try := process.Body.Try()
	try.Body.Return(Self("message"))
	try.Catch("java.lang.RuntimeException", "e").Throw(Name("e"))

	want := `package org.acme.config;

public class SendMessageProcessor implements org.mule.api.processor.MessageProcessor {
    private java.lang.Object message;

    public void setMessage(java.lang.Object value) {
        this.message = value;
    }

    @Override
    public java.lang.Object process() throws java.lang.Exception {
        if ((this.message == null)) {
            return null;
        }
        try {
            return this.message;
        } catch (java.lang.RuntimeException e) {
            throw e;
        }
    }
}
`
	assert.Equal(t, want, string(Render(c)))
}

func TestRenderElseAndForEach(t *testing.T) {
	c := &Class{Name: "Loop", Modifiers: []Modifier{Public}}
	m := c.Method("void", "run", Public)
	body := m.Body.ForEach("java.lang.Object", "item", Name("items"))
	branch := body.If(Ne(Name("item"), Null))
	branch.Then.Invoke(Invoke("handle", Name("item")))
	branch.Otherwise().Return(nil)

	want := `public class Loop {

    public void run() {
        for (java.lang.Object item: items) {
            if ((item != null)) {
                handle(item);
            } else {
                return;
            }
        }
    }
}
`
	assert.Equal(t, want, string(Render(c)))
}

func TestJavaWriterLayout(t *testing.T) {
	dir := t.TempDir()
	m := NewModel()
	_, err := m.Class("org.acme.config.spring", "AcmeNamespaceHandler")
	require.NoError(t, err)

	paths, err := NewJavaWriter(dir).WriteModel(m)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "org", "acme", "config", "spring", "AcmeNamespaceHandler.java"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "public class AcmeNamespaceHandler {")
}

func TestSimpleName(t *testing.T) {
	assert.Equal(t, "List", SimpleName("java.util.List<java.lang.String>"))
	assert.Equal(t, "int", SimpleName("int"))
}
