// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax provides a parser, printer and abstract syntax tree
// for the JavaScript subset understood by the renamer.
package syntax // import "go.shadowfree.dev/syntax"

import "fmt"

// A Node is a node in a syntax tree.
type Node interface {
	// Span returns the start and end position of the node.
	Span() (start, end Position)
}

// Start returns the start position of the node.
func Start(n Node) Position {
	start, _ := n.Span()
	return start
}

// End returns the end position of the node.
func End(n Node) Position {
	_, end := n.Span()
	return end
}

// A Position describes the location of a rune of input.
type Position struct {
	file *string // filename (indirect for compactness)
	Line int32   // 1-based line number; 0 if line unknown
	Col  int32   // 1-based column (rune) number; 0 if column unknown
}

// MakePosition returns position with the specified components.
func MakePosition(file *string, line, col int32) Position { return Position{file, line, col} }

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.Line >= 1 }

// Filename returns the name of the file containing this position.
func (p Position) Filename() string {
	if p.file != nil {
		return *p.file
	}
	return "<invalid>"
}

func (p Position) String() string {
	file := p.Filename()
	if p.Line > 0 {
		if p.Col > 0 {
			return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
		}
		return fmt.Sprintf("%s:%d", file, p.Line)
	}
	return file
}

func (p Position) add(s string) Position {
	p.Col += int32(len(s))
	return p
}

// span is embedded by nodes whose extent is recorded by the parser.
type span struct {
	start, end Position
}

func (s span) Span() (start, end Position) { return s.start, s.end }

// A Token identifies the lexical class of a declaration keyword or literal.
type Token int8

const (
	ILLEGAL Token = iota
	VAR           // var
	LET           // let
	CONST         // const
	NUMBER        // 123
	STRING        // "foo"
	KEYWORD       // this, null, true, false, super
)

var tokenNames = [...]string{
	ILLEGAL: "illegal token",
	VAR:     "var",
	LET:     "let",
	CONST:   "const",
	NUMBER:  "number literal",
	STRING:  "string literal",
	KEYWORD: "keyword literal",
}

func (tok Token) String() string { return tokenNames[tok] }

// A File represents a JavaScript source file.
type File struct {
	span
	Path  string
	Stmts []Stmt
}

// A Stmt is a statement.
type Stmt interface {
	Node
	stmt()
}

func (*BlockStmt) stmt()   {}
func (*BranchStmt) stmt()  {}
func (*ClassDecl) stmt()   {}
func (*DoWhileStmt) stmt() {}
func (*EmptyStmt) stmt()   {}
func (*ExprStmt) stmt()    {}
func (*ForInStmt) stmt()   {}
func (*ForStmt) stmt()     {}
func (*FuncDecl) stmt()    {}
func (*IfStmt) stmt()      {}
func (*ReturnStmt) stmt()  {}
func (*ThrowStmt) stmt()   {}
func (*TryStmt) stmt()     {}
func (*VarDecl) stmt()     {}
func (*WhileStmt) stmt()   {}

// A VarDecl represents a variable declaration:
//
//	var x = 1, y
//	let z
//	const c = 3
type VarDecl struct {
	span
	Token Token // = VAR | LET | CONST
	List  []*Declarator
}

// A Declarator is one Name [= Init] element of a VarDecl.
type Declarator struct {
	span
	Name *Ident
	Init Expr // may be nil
}

// A Function represents the common parts of function declarations,
// function expressions, arrow functions and methods.
type Function struct {
	span
	Name   *Ident // nil for anonymous functions, arrows and methods
	Params []*Param
	Body   *BlockStmt // nil iff Result is set
	Result Expr       // expression body of an arrow function
	Arrow  bool
}

// A Param is a formal parameter: Name, Name = Default, or ...Name.
type Param struct {
	span
	Rest    bool
	Name    *Ident
	Default Expr // may be nil
}

// A FuncDecl represents a function declaration statement.
type FuncDecl struct {
	Func *Function
}

func (x *FuncDecl) Span() (start, end Position) { return x.Func.Span() }

// A Class represents the common parts of class declarations and expressions.
type Class struct {
	span
	Name    *Ident // optional for class expressions
	Extends Expr   // may be nil
	Methods []*Method
}

// A Method is a class member: [static] Key(Params) { Body }.
type Method struct {
	span
	Static bool
	Key    string
	Func   *Function
}

// A ClassDecl represents a class declaration statement.
type ClassDecl struct {
	Class *Class
}

func (x *ClassDecl) Span() (start, end Position) { return x.Class.Span() }

// A BlockStmt is a brace-delimited statement list.
type BlockStmt struct {
	span
	Stmts []Stmt
}

// A TryStmt represents try Body catch (Param) { ... } finally { ... }.
// At least one of Catch and Finally is non-nil.
type TryStmt struct {
	span
	Body    *BlockStmt
	Catch   *CatchClause // may be nil
	Finally *BlockStmt   // may be nil
}

// A CatchClause is the handler of a TryStmt.
type CatchClause struct {
	span
	Param *Ident // nil for "catch { ... }"
	Body  *BlockStmt
}

// An IfStmt is a conditional: if (Cond) Then else Else.
type IfStmt struct {
	span
	Cond Expr
	Then Stmt
	Else Stmt // optional
}

// A ForStmt represents a loop: for (Init; Cond; Post) Body.
type ForStmt struct {
	span
	Init Node // *VarDecl, Expr, or nil
	Cond Expr // may be nil
	Post Expr // may be nil
	Body Stmt
}

// A ForInStmt represents for (Init in X) Body or for (Init of X) Body.
type ForInStmt struct {
	span
	Init Node // *VarDecl with a single Declarator, or an Expr
	Of   bool
	X    Expr
	Body Stmt
}

// A WhileStmt represents while (Cond) Body.
type WhileStmt struct {
	span
	Cond Expr
	Body Stmt
}

// A DoWhileStmt represents do Body while (Cond).
type DoWhileStmt struct {
	span
	Body Stmt
	Cond Expr
}

// A ReturnStmt returns from a function.
type ReturnStmt struct {
	span
	Result Expr // may be nil
}

// A BranchStmt changes the flow of control: break, continue.
type BranchStmt struct {
	span
	Token string // = "break" | "continue"
}

// A ThrowStmt raises an exception.
type ThrowStmt struct {
	span
	X Expr
}

// An EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	span
}

// An ExprStmt is an expression evaluated for side effects.
type ExprStmt struct {
	span
	X Expr
}

// An Expr is an expression.
type Expr interface {
	Node
	expr()
}

func (*ArrayExpr) expr()  {}
func (*AssignExpr) expr() {}
func (*BinaryExpr) expr() {}
func (*CallExpr) expr()   {}
func (*ClassExpr) expr()  {}
func (*CondExpr) expr()   {}
func (*DotExpr) expr()    {}
func (*FuncExpr) expr()   {}
func (*Ident) expr()      {}
func (*IndexExpr) expr()  {}
func (*Literal) expr()    {}
func (*ObjectExpr) expr() {}
func (*ParenExpr) expr()  {}
func (*SeqExpr) expr()    {}
func (*SpreadExpr) expr() {}
func (*UnaryExpr) expr()  {}

// An Ident represents an identifier.
type Ident struct {
	NamePos Position
	Name    string

	// set by resolver:

	Binding interface{} // a *resolve.Decl, or nil if the name is unbound
	Const   bool        // declaration site of a non-reassignable binding
}

func (x *Ident) Span() (start, end Position) {
	return x.NamePos, x.NamePos.add(x.Name)
}

// A Literal represents a literal number, string, or keyword value.
type Literal struct {
	span
	Token Token  // = NUMBER | STRING | KEYWORD
	Raw   string // uninterpreted text
}

// A FuncExpr represents a function expression or an arrow function.
type FuncExpr struct {
	Func *Function
}

func (x *FuncExpr) Span() (start, end Position) { return x.Func.Span() }

// A ClassExpr represents a class expression.
type ClassExpr struct {
	Class *Class
}

func (x *ClassExpr) Span() (start, end Position) { return x.Class.Span() }

// A CallExpr represents a call: Fn(Args), or new Fn(Args).
type CallExpr struct {
	span
	New  bool
	Fn   Expr
	Args []Expr
}

// A DotExpr represents a property selector: X.Name.
// Name is not an identifier reference.
type DotExpr struct {
	span
	X    Expr
	Name string
}

// An IndexExpr represents an index expression: X[Y].
type IndexExpr struct {
	span
	X Expr
	Y Expr
}

// A UnaryExpr represents Op X, or X Op if Postfix.
type UnaryExpr struct {
	span
	Op      string
	X       Expr
	Postfix bool
}

// A BinaryExpr represents a binary expression: X Op Y.
type BinaryExpr struct {
	span
	X  Expr
	Op string
	Y  Expr
}

// An AssignExpr represents an assignment: LHS Op RHS, with Op one of = += -= etc.
type AssignExpr struct {
	span
	LHS Expr
	Op  string
	RHS Expr
}

// CondExpr represents the conditional: Cond ? True : False.
type CondExpr struct {
	span
	Cond  Expr
	True  Expr
	False Expr
}

// A ParenExpr represents a parenthesized expression: (X).
type ParenExpr struct {
	span
	X Expr
}

// A SeqExpr represents a comma-separated sequence of expressions.
type SeqExpr struct {
	span
	List []Expr
}

// A SpreadExpr represents ...X in an argument or array element list.
type SpreadExpr struct {
	span
	X Expr
}

// An ArrayExpr represents an array literal: [ List ].
type ArrayExpr struct {
	span
	List []Expr
}

// An ObjectExpr represents an object literal: { Props }.
type ObjectExpr struct {
	span
	Props []*Property
}

// A Property is one entry of an ObjectExpr.
//
// A shorthand property {a} is represented with Shorthand set and an
// *Ident Value whose original name equals Key; a method {m() {}} has
// Method set and a *FuncExpr Value.
type Property struct {
	span
	Key       string
	Value     Expr
	Shorthand bool
	Method    bool
}
