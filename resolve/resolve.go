// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve builds the scope tree of a parsed file and binds
// every identifier to the declaration it denotes.
//
// Declarations are collected when their scope is entered, before any
// identifier of that scope or its children is bound, so a use that
// precedes its declaration in the source still resolves to it.
//
// The resolver opens a scope for each of the following constructs:
//
//	file                       global scope
//	function, arrow, method    function scope (parameters and body)
//	named function expression  function scope holding only the self name
//	named class expression     block scope holding only the class name
//	{ ... }                    block scope
//	for, for-in, for-of head   block scope
//	catch clause               catch scope holding the parameter
//
// var and function declarations are hoisted to the nearest enclosing
// function or global scope. let, const and class declarations belong to
// the block in which they appear. The body of a function shares the
// function's scope.
package resolve // import "go.shadowfree.dev/resolve"

import (
	"fmt"
	"sort"

	"go.shadowfree.dev/syntax"
)

// An Error describes a declaration that cannot be resolved.
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// An ErrorList is a non-empty list of resolver error messages.
type ErrorList []Error // len > 0

func (e ErrorList) Len() int      { return len(e) }
func (e ErrorList) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e ErrorList) Less(i, j int) bool {
	p, q := e[i].Pos, e[j].Pos
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

func (e ErrorList) Error() string { return e[0].Error() }

// A Use is an occurrence of an identifier.
type Use struct {
	Ident *syntax.Ident
	Scope ScopeID // innermost scope enclosing the identifier
	Decl  *Decl   // nil if the name is unbound
	Def   bool    // the identifier declares Decl
}

// Info is the result of resolving a file.
type Info struct {
	Tree *Tree
	Uses []Use // in source order
}

// File resolves the specified file, building its scope tree and setting
// the Binding field of each identifier to the *Decl it denotes.
//
// Global declarations whose name satisfies isExtern are marked Extern.
// isExtern may be nil.
//
// If any declaration conflicts with another, File returns an ErrorList.
func File(file *syntax.File, isExtern func(name string) bool) (*Info, error) {
	r := newResolver()
	root := r.push(syntax.GlobalScope, file)
	r.collectHoisted(file.Stmts)
	r.stmts(file.Stmts)
	r.pop()

	if isExtern != nil {
		for _, d := range r.tree.Scope(root).Decls {
			d.Extern = isExtern(d.Orig)
		}
	}

	if len(r.errors) > 0 {
		sort.Stable(r.errors)
		return nil, r.errors
	}
	return &Info{Tree: r.tree, Uses: r.uses}, nil
}

// Globals returns the names declared in the global scope of file, in
// declaration order. It is used to read a file of extern declarations.
func Globals(file *syntax.File) ([]string, error) {
	info, err := File(file, nil)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, d := range info.Tree.Scope(info.Tree.Root()).Decls {
		names = append(names, d.Orig)
	}
	return names, nil
}

type resolver struct {
	tree   *Tree
	scope  ScopeID // current scope
	uses   []Use
	errors ErrorList
}

func newResolver() *resolver {
	return &resolver{tree: new(Tree), scope: NoScope}
}

func (r *resolver) errorf(posn syntax.Position, format string, args ...interface{}) {
	r.errors = append(r.errors, Error{posn, fmt.Sprintf(format, args...)})
}

func (r *resolver) push(kind syntax.ScopeKind, n syntax.Node) ScopeID {
	id := r.tree.EnterScope(kind, r.scope)
	r.tree.Scope(id).Node = n
	r.scope = id
	return id
}

func (r *resolver) pop() { r.scope = r.tree.Scope(r.scope).Parent }

// hoistTarget returns the nearest function or global scope enclosing id.
func (r *resolver) hoistTarget(id ScopeID) ScopeID {
	for {
		s := r.tree.Scope(id)
		if s.Kind == syntax.FunctionScope || s.Kind == syntax.GlobalScope {
			return id
		}
		id = s.Parent
	}
}

// declare adds id to the current scope, or to the hoisting target for
// var and function declarations.
func (r *resolver) declare(id *syntax.Ident, kind syntax.BindKind) {
	scope := r.scope
	if kind.Hoisted() {
		scope = r.hoistTarget(scope)
	}
	if prev := r.tree.Local(scope, id.Name); prev != nil && (kind.Lexical() || prev.Kind.Lexical()) {
		r.errorf(id.NamePos, "%s %s redeclared; previous declaration at %s", kind, id.Name, prev.Pos)
		return
	}
	d := r.tree.Declare(scope, id.Name, kind)
	if d != nil && !d.Pos.IsValid() {
		d.Pos = id.NamePos
	}
}

func lexicalKind(tok syntax.Token) syntax.BindKind {
	switch tok {
	case syntax.LET:
		return syntax.BindLet
	case syntax.CONST:
		return syntax.BindConst
	}
	return syntax.BindVar
}

func (r *resolver) declareList(decl *syntax.VarDecl) {
	kind := lexicalKind(decl.Token)
	for _, d := range decl.List {
		r.declare(d.Name, kind)
	}
}

// collectHoisted declares the names of a function or global scope:
// every var and function declaration of the body outside nested
// functions, and the lexical declarations appearing directly in it.
func (r *resolver) collectHoisted(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *syntax.VarDecl:
			r.declareList(stmt)
		case *syntax.ClassDecl:
			r.declare(stmt.Class.Name, syntax.BindClass)
		default:
			r.collectVars(stmt)
		}
	}
}

// collectVars declares the var and function declarations nested within
// stmt, without entering nested functions.
func (r *resolver) collectVars(stmt syntax.Stmt) {
	switch stmt := stmt.(type) {
	case *syntax.VarDecl:
		if stmt.Token == syntax.VAR {
			r.declareList(stmt)
		}
	case *syntax.FuncDecl:
		r.declare(stmt.Func.Name, syntax.BindFunction)
	case *syntax.BlockStmt:
		for _, s := range stmt.Stmts {
			r.collectVars(s)
		}
	case *syntax.IfStmt:
		r.collectVars(stmt.Then)
		if stmt.Else != nil {
			r.collectVars(stmt.Else)
		}
	case *syntax.ForStmt:
		if init, ok := stmt.Init.(*syntax.VarDecl); ok {
			r.collectVars(init)
		}
		r.collectVars(stmt.Body)
	case *syntax.ForInStmt:
		if init, ok := stmt.Init.(*syntax.VarDecl); ok {
			r.collectVars(init)
		}
		r.collectVars(stmt.Body)
	case *syntax.WhileStmt:
		r.collectVars(stmt.Body)
	case *syntax.DoWhileStmt:
		r.collectVars(stmt.Body)
	case *syntax.TryStmt:
		r.collectVars(stmt.Body)
		if stmt.Catch != nil {
			r.collectVars(stmt.Catch.Body)
		}
		if stmt.Finally != nil {
			r.collectVars(stmt.Finally)
		}
	}
}

// collectLexical declares the let, const and class declarations
// appearing directly in a block.
func (r *resolver) collectLexical(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *syntax.VarDecl:
			if stmt.Token != syntax.VAR {
				r.declareList(stmt)
			}
		case *syntax.ClassDecl:
			r.declare(stmt.Class.Name, syntax.BindClass)
		}
	}
}

// use binds id to the nearest declaration of its name and records it.
func (r *resolver) use(id *syntax.Ident, def bool) {
	r.record(id, r.tree.Lookup(r.scope, id.Name), def)
}

// bindHoisted binds the declaring identifier of a var or function.
// The declaration must not be shadowed by a lexical declaration of an
// intermediate block.
//
// A catch parameter may shadow it: the identifier then denotes the
// parameter, which becomes an alias of the hoisted declaration.
func (r *resolver) bindHoisted(id *syntax.Ident, kind syntax.BindKind) {
	d := r.tree.Lookup(r.scope, id.Name)
	if d != nil {
		hoisted := r.tree.Local(r.hoistTarget(r.scope), id.Name)
		switch {
		case d.Kind.Lexical() && hoisted != d:
			r.errorf(id.NamePos, "%s %s conflicts with %s declaration at %s", kind, id.Name, d.Kind, d.Pos)
		case d.Kind == syntax.BindCatchParam && hoisted != nil:
			d.Alias = hoisted
		}
	}
	r.record(id, d, true)
}

func (r *resolver) record(id *syntax.Ident, d *Decl, def bool) {
	if d != nil {
		id.Binding = d
		d.Idents = append(d.Idents, id)
		if def && d.Const {
			id.Const = true
		}
	}
	u := Use{Ident: id, Scope: r.scope, Decl: d, Def: def}
	r.uses = append(r.uses, u)
	s := r.tree.Scope(r.scope)
	s.Uses = append(s.Uses, u)
}

func (r *resolver) stmts(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		r.stmt(stmt)
	}
}

// body resolves the statement controlled by an if, loop, or similar.
func (r *resolver) body(stmt syntax.Stmt) {
	switch s := stmt.(type) {
	case *syntax.ClassDecl:
		r.errorf(syntax.Start(s), "class declaration cannot appear in a single-statement context")
	case *syntax.VarDecl:
		if s.Token != syntax.VAR {
			r.errorf(syntax.Start(s), "lexical declaration cannot appear in a single-statement context")
		}
	}
	r.stmt(stmt)
}

func (r *resolver) block(b *syntax.BlockStmt) {
	r.push(syntax.BlockScope, b)
	r.collectLexical(b.Stmts)
	r.stmts(b.Stmts)
	r.pop()
}

func (r *resolver) stmt(stmt syntax.Stmt) {
	switch stmt := stmt.(type) {
	case *syntax.VarDecl:
		r.varDecl(stmt)

	case *syntax.FuncDecl:
		r.bindHoisted(stmt.Func.Name, syntax.BindFunction)
		r.function(stmt.Func)

	case *syntax.ClassDecl:
		r.use(stmt.Class.Name, true)
		r.classBody(stmt.Class)

	case *syntax.BlockStmt:
		r.block(stmt)

	case *syntax.TryStmt:
		r.block(stmt.Body)
		if c := stmt.Catch; c != nil {
			r.push(syntax.CatchScope, c)
			if c.Param != nil {
				r.declare(c.Param, syntax.BindCatchParam)
				r.use(c.Param, true)
			}
			r.block(c.Body)
			r.pop()
		}
		if stmt.Finally != nil {
			r.block(stmt.Finally)
		}

	case *syntax.IfStmt:
		r.expr(stmt.Cond)
		r.body(stmt.Then)
		if stmt.Else != nil {
			r.body(stmt.Else)
		}

	case *syntax.ForStmt:
		r.push(syntax.BlockScope, stmt)
		switch init := stmt.Init.(type) {
		case nil:
		case *syntax.VarDecl:
			if init.Token != syntax.VAR {
				r.declareList(init)
			}
			r.varDecl(init)
		case *syntax.FuncExpr:
			// A function or class expression heading a loop
			// binds no name of its own.
			r.funcExpr(init, false)
		case *syntax.ClassExpr:
			r.classExpr(init, false)
		case syntax.Expr:
			r.expr(init)
		}
		if stmt.Cond != nil {
			r.expr(stmt.Cond)
		}
		if stmt.Post != nil {
			r.expr(stmt.Post)
		}
		r.body(stmt.Body)
		r.pop()

	case *syntax.ForInStmt:
		r.push(syntax.BlockScope, stmt)
		switch init := stmt.Init.(type) {
		case *syntax.VarDecl:
			if init.Token != syntax.VAR {
				r.declareList(init)
			}
			r.varDecl(init)
		case syntax.Expr:
			r.expr(init)
		}
		r.expr(stmt.X)
		r.body(stmt.Body)
		r.pop()

	case *syntax.WhileStmt:
		r.expr(stmt.Cond)
		r.body(stmt.Body)

	case *syntax.DoWhileStmt:
		r.body(stmt.Body)
		r.expr(stmt.Cond)

	case *syntax.ReturnStmt:
		if stmt.Result != nil {
			r.expr(stmt.Result)
		}

	case *syntax.ThrowStmt:
		r.expr(stmt.X)

	case *syntax.ExprStmt:
		r.expr(stmt.X)

	case *syntax.BranchStmt, *syntax.EmptyStmt:
		// no identifiers

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

func (r *resolver) varDecl(decl *syntax.VarDecl) {
	for _, d := range decl.List {
		if decl.Token == syntax.VAR {
			r.bindHoisted(d.Name, syntax.BindVar)
		} else {
			r.use(d.Name, true)
		}
		if d.Init != nil {
			r.expr(d.Init)
		}
	}
}

// function resolves the parameters and body of fn in a new function scope.
func (r *resolver) function(fn *syntax.Function) {
	r.push(syntax.FunctionScope, fn)
	kinds := make([]syntax.BindKind, len(fn.Params))
	for i, p := range fn.Params {
		kinds[i] = syntax.BindParam
		if p.Rest {
			kinds[i] = syntax.BindRestParam
		}
		r.declare(p.Name, kinds[i])
	}
	if fn.Body != nil {
		r.collectHoisted(fn.Body.Stmts)
	}
	for _, p := range fn.Params {
		r.use(p.Name, true)
		if p.Default != nil {
			r.expr(p.Default)
		}
	}
	if fn.Body != nil {
		r.stmts(fn.Body.Stmts)
	} else {
		r.expr(fn.Result)
	}
	r.pop()
}

// funcExpr resolves a function expression. If selfName is set, a named
// function expression binds its name in a scope of its own.
func (r *resolver) funcExpr(e *syntax.FuncExpr, selfName bool) {
	fn := e.Func
	if fn.Name == nil {
		r.function(fn)
		return
	}
	if !selfName {
		r.record(fn.Name, nil, true)
		r.function(fn)
		return
	}
	r.push(syntax.FunctionScope, e)
	r.declare(fn.Name, syntax.BindFunction)
	r.use(fn.Name, true)
	r.function(fn)
	r.pop()
}

func (r *resolver) classExpr(e *syntax.ClassExpr, selfName bool) {
	c := e.Class
	if c.Name == nil {
		r.classBody(c)
		return
	}
	if !selfName {
		r.record(c.Name, nil, true)
		r.classBody(c)
		return
	}
	r.push(syntax.BlockScope, e)
	r.declare(c.Name, syntax.BindClass)
	r.use(c.Name, true)
	r.classBody(c)
	r.pop()
}

func (r *resolver) classBody(c *syntax.Class) {
	if c.Extends != nil {
		r.expr(c.Extends)
	}
	for _, m := range c.Methods {
		r.function(m.Func)
	}
}

func (r *resolver) exprs(list []syntax.Expr) {
	for _, x := range list {
		r.expr(x)
	}
}

func (r *resolver) expr(e syntax.Expr) {
	switch e := e.(type) {
	case *syntax.Ident:
		r.use(e, false)

	case *syntax.Literal:

	case *syntax.FuncExpr:
		r.funcExpr(e, true)

	case *syntax.ClassExpr:
		r.classExpr(e, true)

	case *syntax.CallExpr:
		r.expr(e.Fn)
		r.exprs(e.Args)

	case *syntax.DotExpr:
		r.expr(e.X)

	case *syntax.IndexExpr:
		r.expr(e.X)
		r.expr(e.Y)

	case *syntax.UnaryExpr:
		r.expr(e.X)

	case *syntax.BinaryExpr:
		r.expr(e.X)
		r.expr(e.Y)

	case *syntax.AssignExpr:
		r.expr(e.LHS)
		r.expr(e.RHS)

	case *syntax.CondExpr:
		r.expr(e.Cond)
		r.expr(e.True)
		r.expr(e.False)

	case *syntax.ParenExpr:
		r.expr(e.X)

	case *syntax.SeqExpr:
		r.exprs(e.List)

	case *syntax.SpreadExpr:
		r.expr(e.X)

	case *syntax.ArrayExpr:
		r.exprs(e.List)

	case *syntax.ObjectExpr:
		for _, p := range e.Props {
			r.expr(p.Value)
		}

	default:
		panic(fmt.Sprintf("unexpected expr %T", e))
	}
}
