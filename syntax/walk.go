// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Walk traverses a syntax tree in depth-first order.
// It starts by calling f(n); n must not be nil.
// If f returns true, Walk calls itself
// recursively for each non-nil child of n.
// Walk then calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		panic("nil")
	}
	if !f(n) {
		return
	}

	switch n := n.(type) {
	case *File:
		walkStmts(n.Stmts, f)

	case *VarDecl:
		for _, d := range n.List {
			Walk(d, f)
		}

	case *Declarator:
		Walk(n.Name, f)
		if n.Init != nil {
			Walk(n.Init, f)
		}

	case *FuncDecl:
		Walk(n.Func, f)

	case *FuncExpr:
		Walk(n.Func, f)

	case *Function:
		if n.Name != nil {
			Walk(n.Name, f)
		}
		for _, p := range n.Params {
			Walk(p, f)
		}
		if n.Body != nil {
			Walk(n.Body, f)
		} else {
			Walk(n.Result, f)
		}

	case *Param:
		Walk(n.Name, f)
		if n.Default != nil {
			Walk(n.Default, f)
		}

	case *ClassDecl:
		Walk(n.Class, f)

	case *ClassExpr:
		Walk(n.Class, f)

	case *Class:
		if n.Name != nil {
			Walk(n.Name, f)
		}
		if n.Extends != nil {
			Walk(n.Extends, f)
		}
		for _, m := range n.Methods {
			Walk(m, f)
		}

	case *Method:
		Walk(n.Func, f)

	case *BlockStmt:
		walkStmts(n.Stmts, f)

	case *TryStmt:
		Walk(n.Body, f)
		if n.Catch != nil {
			Walk(n.Catch, f)
		}
		if n.Finally != nil {
			Walk(n.Finally, f)
		}

	case *CatchClause:
		if n.Param != nil {
			Walk(n.Param, f)
		}
		Walk(n.Body, f)

	case *IfStmt:
		Walk(n.Cond, f)
		Walk(n.Then, f)
		if n.Else != nil {
			Walk(n.Else, f)
		}

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, f)
		}
		if n.Cond != nil {
			Walk(n.Cond, f)
		}
		if n.Post != nil {
			Walk(n.Post, f)
		}
		Walk(n.Body, f)

	case *ForInStmt:
		Walk(n.Init, f)
		Walk(n.X, f)
		Walk(n.Body, f)

	case *WhileStmt:
		Walk(n.Cond, f)
		Walk(n.Body, f)

	case *DoWhileStmt:
		Walk(n.Body, f)
		Walk(n.Cond, f)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, f)
		}

	case *ThrowStmt:
		Walk(n.X, f)

	case *ExprStmt:
		Walk(n.X, f)

	case *BranchStmt, *EmptyStmt, *Ident, *Literal:
		// no-op

	case *CallExpr:
		Walk(n.Fn, f)
		walkExprs(n.Args, f)

	case *DotExpr:
		Walk(n.X, f)

	case *IndexExpr:
		Walk(n.X, f)
		Walk(n.Y, f)

	case *UnaryExpr:
		Walk(n.X, f)

	case *BinaryExpr:
		Walk(n.X, f)
		Walk(n.Y, f)

	case *AssignExpr:
		Walk(n.LHS, f)
		Walk(n.RHS, f)

	case *CondExpr:
		Walk(n.Cond, f)
		Walk(n.True, f)
		Walk(n.False, f)

	case *ParenExpr:
		Walk(n.X, f)

	case *SeqExpr:
		walkExprs(n.List, f)

	case *SpreadExpr:
		Walk(n.X, f)

	case *ArrayExpr:
		walkExprs(n.List, f)

	case *ObjectExpr:
		for _, p := range n.Props {
			Walk(p, f)
		}

	case *Property:
		Walk(n.Value, f)

	default:
		panic(n)
	}

	f(nil)
}

func walkStmts(stmts []Stmt, f func(Node) bool) {
	for _, stmt := range stmts {
		Walk(stmt, f)
	}
}

func walkExprs(exprs []Expr, f func(Node) bool) {
	for _, expr := range exprs {
		Walk(expr, f)
	}
}
