package codemodel

import (
	"strconv"
	"strings"
)

// Expr is a Java expression.
type Expr interface {
	Java() string
}

type rawName string

func (n rawName) Java() string { return string(n) }

// Name references a local variable, parameter or field by bare name.
func Name(name string) Expr { return rawName(name) }

// Type references a class for static access, e.g. Type("java.lang.Enum").
func Type(qualified string) Expr { return rawName(qualified) }

// Common literal expressions.
var (
	Null  Expr = rawName("null")
	This  Expr = rawName("this")
	True  Expr = rawName("true")
	False Expr = rawName("false")
)

type stringLit string

func (s stringLit) Java() string { return strconv.Quote(string(s)) }

// Lit is a Java string literal.
func Lit(s string) Expr { return stringLit(s) }

type intLit int

func (i intLit) Java() string { return strconv.Itoa(int(i)) }

// Int is an integer literal.
func Int(i int) Expr { return intLit(i) }

type classLit string

func (c classLit) Java() string { return string(c) + ".class" }

// ClassLit is a class literal such as java.lang.String.class.
func ClassLit(qualified string) Expr { return classLit(erase(qualified)) }

// erase drops generic arguments, which class literals cannot carry.
func erase(t string) string {
	if i := strings.IndexByte(t, '<'); i >= 0 {
		return t[:i]
	}
	return t
}

// Invocation is a method call on a target, or an unqualified call when
// Target is nil.
type Invocation struct {
	Target Expr
	Method string
	Args   []Expr
}

// Java renders the call.
func (i *Invocation) Java() string {
	call := i.Method + "(" + joinExprs(i.Args) + ")"
	if i.Target == nil {
		return call
	}
	return i.Target.Java() + "." + call
}

// Call invokes method on target.
func Call(target Expr, method string, args ...Expr) *Invocation {
	return &Invocation{Target: target, Method: method, Args: args}
}

// Invoke calls a method of the enclosing class.
func Invoke(method string, args ...Expr) *Invocation {
	return &Invocation{Method: method, Args: args}
}

type newExpr struct {
	typ  string
	args []Expr
}

func (n newExpr) Java() string { return "new " + n.typ + "(" + joinExprs(n.args) + ")" }

// New instantiates typ.
func New(typ string, args ...Expr) Expr { return newExpr{typ: typ, args: args} }

type fieldRef struct {
	target Expr
	name   string
}

func (f fieldRef) Java() string { return f.target.Java() + "." + f.name }

// Dot accesses a field or constant of target.
func Dot(target Expr, name string) Expr { return fieldRef{target: target, name: name} }

// Self accesses a field of this.
func Self(name string) Expr { return Dot(This, name) }

type indexExpr struct {
	array Expr
	index int
}

func (i indexExpr) Java() string { return i.array.Java() + "[" + strconv.Itoa(i.index) + "]" }

// Index reads an array element.
func Index(array Expr, i int) Expr { return indexExpr{array: array, index: i} }

type castExpr struct {
	typ string
	e   Expr
}

func (c castExpr) Java() string { return "((" + c.typ + ") " + c.e.Java() + ")" }

// Cast casts e to typ.
func Cast(typ string, e Expr) Expr { return castExpr{typ: typ, e: e} }

type binary struct {
	op   string
	l, r Expr
}

func (b binary) Java() string { return "(" + b.l.Java() + " " + b.op + " " + b.r.Java() + ")" }

// Op combines two expressions with a binary operator.
func Op(l Expr, op string, r Expr) Expr { return binary{op: op, l: l, r: r} }

// Eq, Ne, And and Plus are the operators the synthesizers use.
func Eq(l, r Expr) Expr   { return Op(l, "==", r) }
func Ne(l, r Expr) Expr   { return Op(l, "!=", r) }
func And(l, r Expr) Expr  { return Op(l, "&&", r) }
func Plus(l, r Expr) Expr { return Op(l, "+", r) }

type not struct{ e Expr }

func (n not) Java() string { return "!" + n.e.Java() }

// Not negates e.
func Not(e Expr) Expr { return not{e: e} }

type instanceOf struct {
	e   Expr
	typ string
}

func (i instanceOf) Java() string { return "(" + i.e.Java() + " instanceof " + erase(i.typ) + ")" }

// InstanceOf tests the runtime type of e.
func InstanceOf(e Expr, typ string) Expr { return instanceOf{e: e, typ: typ} }

type ternary struct{ cond, then, els Expr }

func (t ternary) Java() string {
	return "(" + t.cond.Java() + " ? " + t.then.Java() + " : " + t.els.Java() + ")"
}

// Cond is the conditional operator.
func Cond(cond, then, els Expr) Expr { return ternary{cond: cond, then: then, els: els} }

func joinExprs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Java()
	}
	return strings.Join(parts, ", ")
}
