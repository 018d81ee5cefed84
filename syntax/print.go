// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines a printer producing a canonical rendering of a tree:
// two-space indentation and one statement per line. Trees that differ
// only in layout print identically.

import (
	"io"
	"strings"
)

// Format returns the canonical rendering of n.
func Format(n Node) string {
	p := &printer{}
	p.node(n)
	return p.buf.String()
}

// Fprint writes the canonical rendering of n to w.
func Fprint(w io.Writer, n Node) error {
	_, err := io.WriteString(w, Format(n))
	return err
}

type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) str(s string) { p.buf.WriteString(s) }

func (p *printer) newline() {
	p.buf.WriteByte('\n')
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case *File:
		for _, s := range n.Stmts {
			p.stmt(s)
			p.str("\n")
		}
	case Stmt:
		p.stmt(n)
	case Expr:
		p.expr(n)
	case *Function:
		p.function(n)
	case *Class:
		p.class(n)
	default:
		p.str("<?>")
	}
}

func (p *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case *VarDecl:
		p.varDecl(s)
		p.str(";")
	case *FuncDecl:
		p.function(s.Func)
	case *ClassDecl:
		p.class(s.Class)
	case *BlockStmt:
		p.block(s)
	case *TryStmt:
		p.str("try ")
		p.block(s.Body)
		if s.Catch != nil {
			p.str(" catch ")
			if s.Catch.Param != nil {
				p.str("(")
				p.str(s.Catch.Param.Name)
				p.str(") ")
			}
			p.block(s.Catch.Body)
		}
		if s.Finally != nil {
			p.str(" finally ")
			p.block(s.Finally)
		}
	case *IfStmt:
		p.str("if (")
		p.expr(s.Cond)
		p.str(") ")
		p.stmt(s.Then)
		if s.Else != nil {
			p.str(" else ")
			p.stmt(s.Else)
		}
	case *ForStmt:
		p.str("for (")
		p.forInit(s.Init)
		p.str(";")
		if s.Cond != nil {
			p.str(" ")
			p.expr(s.Cond)
		}
		p.str(";")
		if s.Post != nil {
			p.str(" ")
			p.expr(s.Post)
		}
		p.str(") ")
		p.stmt(s.Body)
	case *ForInStmt:
		p.str("for (")
		p.forInit(s.Init)
		if s.Of {
			p.str(" of ")
		} else {
			p.str(" in ")
		}
		p.expr(s.X)
		p.str(") ")
		p.stmt(s.Body)
	case *WhileStmt:
		p.str("while (")
		p.expr(s.Cond)
		p.str(") ")
		p.stmt(s.Body)
	case *DoWhileStmt:
		p.str("do ")
		p.stmt(s.Body)
		p.str(" while (")
		p.expr(s.Cond)
		p.str(");")
	case *ReturnStmt:
		p.str("return")
		if s.Result != nil {
			p.str(" ")
			p.expr(s.Result)
		}
		p.str(";")
	case *BranchStmt:
		p.str(s.Token)
		p.str(";")
	case *ThrowStmt:
		p.str("throw ")
		p.expr(s.X)
		p.str(";")
	case *EmptyStmt:
		p.str(";")
	case *ExprStmt:
		p.expr(s.X)
		p.str(";")
	}
}

func (p *printer) forInit(n Node) {
	switch n := n.(type) {
	case nil:
	case *VarDecl:
		p.varDecl(n)
	case Expr:
		p.expr(n)
	}
}

func (p *printer) varDecl(d *VarDecl) {
	p.str(d.Token.String())
	for i, decl := range d.List {
		if i > 0 {
			p.str(",")
		}
		p.str(" ")
		p.str(decl.Name.Name)
		if decl.Init != nil {
			p.str(" = ")
			p.expr(decl.Init)
		}
	}
}

func (p *printer) block(b *BlockStmt) {
	p.stmtList(b.Stmts)
}

func (p *printer) stmtList(stmts []Stmt) {
	if len(stmts) == 0 {
		p.str("{}")
		return
	}
	p.str("{")
	p.indent++
	for _, s := range stmts {
		p.newline()
		p.stmt(s)
	}
	p.indent--
	p.newline()
	p.str("}")
}

func (p *printer) function(fn *Function) {
	if fn.Arrow {
		p.params(fn.Params)
		p.str(" => ")
		if fn.Body != nil {
			p.block(fn.Body)
		} else {
			p.expr(fn.Result)
		}
		return
	}
	p.str("function")
	if fn.Name != nil {
		p.str(" ")
		p.str(fn.Name.Name)
	}
	p.params(fn.Params)
	p.str(" ")
	p.block(fn.Body)
}

// method prints a function without its keyword, as in a class body or
// object literal.
func (p *printer) method(key string, fn *Function) {
	p.str(key)
	p.params(fn.Params)
	p.str(" ")
	p.block(fn.Body)
}

func (p *printer) params(params []*Param) {
	p.str("(")
	for i, param := range params {
		if i > 0 {
			p.str(", ")
		}
		if param.Rest {
			p.str("...")
		}
		p.str(param.Name.Name)
		if param.Default != nil {
			p.str(" = ")
			p.expr(param.Default)
		}
	}
	p.str(")")
}

func (p *printer) class(c *Class) {
	p.str("class")
	if c.Name != nil {
		p.str(" ")
		p.str(c.Name.Name)
	}
	if c.Extends != nil {
		p.str(" extends ")
		p.expr(c.Extends)
	}
	p.str(" ")
	if len(c.Methods) == 0 {
		p.str("{}")
		return
	}
	p.str("{")
	p.indent++
	for _, m := range c.Methods {
		p.newline()
		if m.Static {
			p.str("static ")
		}
		p.method(m.Key, m.Func)
	}
	p.indent--
	p.newline()
	p.str("}")
}

func (p *printer) exprList(list []Expr) {
	for i, x := range list {
		if i > 0 {
			p.str(", ")
		}
		p.expr(x)
	}
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case *Ident:
		p.str(e.Name)
	case *Literal:
		p.str(e.Raw)
	case *FuncExpr:
		p.function(e.Func)
	case *ClassExpr:
		p.class(e.Class)
	case *CallExpr:
		if e.New {
			p.str("new ")
		}
		p.expr(e.Fn)
		p.str("(")
		p.exprList(e.Args)
		p.str(")")
	case *DotExpr:
		p.expr(e.X)
		p.str(".")
		p.str(e.Name)
	case *IndexExpr:
		p.expr(e.X)
		p.str("[")
		p.expr(e.Y)
		p.str("]")
	case *UnaryExpr:
		if e.Postfix {
			p.expr(e.X)
			p.str(e.Op)
			return
		}
		p.str(e.Op)
		if needsSpace(e.Op, e.X) {
			p.str(" ")
		}
		p.expr(e.X)
	case *BinaryExpr:
		p.expr(e.X)
		p.str(" " + e.Op + " ")
		p.expr(e.Y)
	case *AssignExpr:
		p.expr(e.LHS)
		p.str(" " + e.Op + " ")
		p.expr(e.RHS)
	case *CondExpr:
		p.expr(e.Cond)
		p.str(" ? ")
		p.expr(e.True)
		p.str(" : ")
		p.expr(e.False)
	case *ParenExpr:
		p.str("(")
		p.expr(e.X)
		p.str(")")
	case *SeqExpr:
		p.exprList(e.List)
	case *SpreadExpr:
		p.str("...")
		p.expr(e.X)
	case *ArrayExpr:
		p.str("[")
		p.exprList(e.List)
		p.str("]")
	case *ObjectExpr:
		p.str("{")
		for i, prop := range e.Props {
			if i > 0 {
				p.str(", ")
			}
			p.property(prop)
		}
		p.str("}")
	}
}

func (p *printer) property(prop *Property) {
	switch {
	case prop.Method:
		p.method(prop.Key, prop.Value.(*FuncExpr).Func)
	case prop.Shorthand:
		p.str(prop.Key)
		if id, ok := prop.Value.(*Ident); !ok || id.Name != prop.Key {
			p.str(": ")
			p.expr(prop.Value)
		}
	default:
		p.str(prop.Key)
		p.str(": ")
		p.expr(prop.Value)
	}
}

// needsSpace reports whether a prefix operator must be separated from
// its operand: word operators always, and sign operators that would
// otherwise fuse with a following sign ("- -x").
func needsSpace(op string, x Expr) bool {
	if IsKeyword(op) {
		return true
	}
	u, ok := x.(*UnaryExpr)
	if !ok || u.Postfix {
		return false
	}
	return u.Op[0] == op[len(op)-1] && (op[0] == '+' || op[0] == '-')
}
