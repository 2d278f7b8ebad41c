package codemodel

// Stmt is a Java statement. Statements render through a *sourceWriter so
// nested blocks indent consistently.
type Stmt interface {
	write(w *sourceWriter)
}

// Block is an ordered list of statements.
type Block struct {
	Stmts []Stmt
}

// Add appends statements.
func (b *Block) Add(stmts ...Stmt) *Block {
	b.Stmts = append(b.Stmts, stmts...)
	return b
}

// Decl declares a local variable and returns a reference to it.
func (b *Block) Decl(typ, name string, init Expr) Expr {
	b.Add(&DeclStmt{Type: typ, Name: name, Init: init})
	return Name(name)
}

// Assign appends target = value.
func (b *Block) Assign(target, value Expr) *Block {
	return b.Add(&AssignStmt{Target: target, Value: value})
}

// Invoke appends an expression statement.
func (b *Block) Invoke(e Expr) *Block {
	return b.Add(&ExprStmt{Expr: e})
}

// Return appends a return statement. A nil value returns void.
func (b *Block) Return(value Expr) *Block {
	return b.Add(&ReturnStmt{Value: value})
}

// Throw appends a throw statement.
func (b *Block) Throw(e Expr) *Block {
	return b.Add(&ThrowStmt{Expr: e})
}

// If appends a conditional and returns it for branch construction.
func (b *Block) If(cond Expr) *IfStmt {
	s := &IfStmt{Cond: cond, Then: &Block{}}
	b.Add(s)
	return s
}

// Try appends a try statement and returns it.
func (b *Block) Try() *TryStmt {
	s := &TryStmt{Body: &Block{}}
	b.Add(s)
	return s
}

// ForEach appends an enhanced for loop and returns its body.
func (b *Block) ForEach(typ, name string, in Expr) *Block {
	s := &ForEachStmt{Type: typ, Var: name, In: in, Body: &Block{}}
	b.Add(s)
	return s.Body
}

// Len returns the number of statements.
func (b *Block) Len() int {
	return len(b.Stmts)
}

// DeclStmt is a local variable declaration.
type DeclStmt struct {
	Type string
	Name string
	Init Expr
}

func (s *DeclStmt) write(w *sourceWriter) {
	if s.Init == nil {
		w.line(s.Type + " " + s.Name + ";")
		return
	}
	w.line(s.Type + " " + s.Name + " = " + s.Init.Java() + ";")
}

// AssignStmt assigns a value.
type AssignStmt struct {
	Target Expr
	Value  Expr
}

func (s *AssignStmt) write(w *sourceWriter) {
	w.line(s.Target.Java() + " = " + s.Value.Java() + ";")
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) write(w *sourceWriter) {
	w.line(s.Expr.Java() + ";")
}

// ReturnStmt returns from the method.
type ReturnStmt struct {
	Value Expr
}

func (s *ReturnStmt) write(w *sourceWriter) {
	if s.Value == nil {
		w.line("return;")
		return
	}
	w.line("return " + s.Value.Java() + ";")
}

// ThrowStmt throws an exception.
type ThrowStmt struct {
	Expr Expr
}

func (s *ThrowStmt) write(w *sourceWriter) {
	w.line("throw " + s.Expr.Java() + ";")
}

// IfStmt is an if/else chain.
type IfStmt struct {
	Cond Expr
	Then *Block
	Else *Block
}

// Otherwise returns the else branch, creating it on first use.
func (s *IfStmt) Otherwise() *Block {
	if s.Else == nil {
		s.Else = &Block{}
	}
	return s.Else
}

func (s *IfStmt) write(w *sourceWriter) {
	w.open("if (" + s.Cond.Java() + ") {")
	w.block(s.Then)
	if s.Else == nil {
		w.close("}")
		return
	}
	w.reopen("} else {")
	w.block(s.Else)
	w.close("}")
}

// TryStmt is a try statement with catch clauses.
type TryStmt struct {
	Body    *Block
	Catches []*CatchClause
	Finally *Block
}

// CatchClause handles one exception type.
type CatchClause struct {
	Type string
	Var  string
	Body *Block
}

// Catch adds a clause and returns its body.
func (s *TryStmt) Catch(typ, name string) *Block {
	c := &CatchClause{Type: typ, Var: name, Body: &Block{}}
	s.Catches = append(s.Catches, c)
	return c.Body
}

func (s *TryStmt) write(w *sourceWriter) {
	w.open("try {")
	w.block(s.Body)
	for _, c := range s.Catches {
		w.reopen("} catch (" + c.Type + " " + c.Var + ") {")
		w.block(c.Body)
	}
	if s.Finally != nil {
		w.reopen("} finally {")
		w.block(s.Finally)
	}
	w.close("}")
}

// ForEachStmt is an enhanced for loop.
type ForEachStmt struct {
	Type string
	Var  string
	In   Expr
	Body *Block
}

func (s *ForEachStmt) write(w *sourceWriter) {
	w.open("for (" + s.Type + " " + s.Var + ": " + s.In.Java() + ") {")
	w.block(s.Body)
	w.close("}")
}
