// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file converts the participle grammar into syntax trees.

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// An Error describes the nature and position of a syntax error.
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// Parse parses the input data and returns the corresponding parse tree.
//
// If src != nil, Parse parses the source from src and the filename is
// only used when recording position information.
// The type of the argument for the src parameter must be string,
// []byte, or io.Reader.
// If src == nil, Parse parses the file specified by filename.
func Parse(filename string, src interface{}) (f *File, err error) {
	data, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}

	prog, err := parser.ParseBytes(filename, data)
	if err != nil {
		return nil, parseError(filename, err)
	}

	c := &converter{file: &filename}
	defer func() {
		if e := recover(); e != nil {
			serr, ok := e.(Error)
			if !ok {
				panic(e)
			}
			f, err = nil, serr
		}
	}()
	f = &File{Path: filename, span: c.span(prog.Pos, prog.EndPos)}
	for _, s := range prog.Stmts {
		f.Stmts = append(f.Stmts, c.stmt(s))
	}
	return f, nil
}

func readSource(filename string, src interface{}) ([]byte, error) {
	switch src := src.(type) {
	case nil:
		return os.ReadFile(filename)
	case string:
		return []byte(src), nil
	case []byte:
		return src, nil
	case io.Reader:
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", filename)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("invalid source: %T", src)
	}
}

// parseError converts a participle failure into an Error.
func parseError(filename string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		p := perr.Position()
		return Error{
			Pos: MakePosition(&filename, int32(p.Line), int32(p.Column)),
			Msg: perr.Message(),
		}
	}
	return Error{Pos: MakePosition(&filename, 0, 0), Msg: err.Error()}
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool { return keywords[s] }

// IsIdentifier reports whether name is usable as an identifier:
// it is lexically an identifier and not a reserved word.
func IsIdentifier(name string) bool {
	if name == "" || keywords[name] {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || c == '$':
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

type converter struct {
	file *string
}

func (c *converter) pos(p lexer.Position) Position {
	return MakePosition(c.file, int32(p.Line), int32(p.Column))
}

func (c *converter) span(start, end lexer.Position) span {
	return span{c.pos(start), c.pos(end)}
}

func (c *converter) errorf(p lexer.Position, format string, args ...interface{}) {
	panic(Error{Pos: c.pos(p), Msg: fmt.Sprintf(format, args...)})
}

func (c *converter) ident(g *gIdent) *Ident {
	if g == nil {
		return nil
	}
	return &Ident{NamePos: c.pos(g.Pos), Name: g.Name}
}

func (c *converter) stmts(list []*gStmt) []Stmt {
	var stmts []Stmt
	for _, s := range list {
		stmts = append(stmts, c.stmt(s))
	}
	return stmts
}

func (c *converter) stmt(g *gStmt) Stmt {
	switch {
	case g.Var != nil:
		return c.varDecl(g.Var)
	case g.Func != nil:
		fn := c.function(g.Func)
		if fn.Name == nil {
			c.errorf(g.Pos, "function declaration requires a name")
		}
		return &FuncDecl{Func: fn}
	case g.Class != nil:
		class := c.class(g.Class)
		if class.Name == nil {
			c.errorf(g.Pos, "class declaration requires a name")
		}
		return &ClassDecl{Class: class}
	case g.Try != nil:
		return c.try(g.Try)
	case g.If != nil:
		s := &IfStmt{
			span: c.span(g.If.Pos, g.If.EndPos),
			Cond: c.expr(g.If.Cond),
			Then: c.stmt(g.If.Then),
		}
		if g.If.Else != nil {
			s.Else = c.stmt(g.If.Else)
		}
		return s
	case g.For != nil:
		return c.forStmt(g.For)
	case g.While != nil:
		return &WhileStmt{
			span: c.span(g.While.Pos, g.While.EndPos),
			Cond: c.expr(g.While.Cond),
			Body: c.stmt(g.While.Body),
		}
	case g.Do != nil:
		return &DoWhileStmt{
			span: c.span(g.Do.Pos, g.Do.EndPos),
			Body: c.stmt(g.Do.Body),
			Cond: c.expr(g.Do.Cond),
		}
	case g.Return != nil:
		s := &ReturnStmt{span: c.span(g.Return.Pos, g.Return.EndPos)}
		if g.Return.Result != nil {
			s.Result = c.expr(g.Return.Result)
		}
		return s
	case g.Branch != "":
		return &BranchStmt{span: c.span(g.Pos, g.EndPos), Token: g.Branch}
	case g.Throw != nil:
		return &ThrowStmt{span: c.span(g.Throw.Pos, g.Throw.EndPos), X: c.expr(g.Throw.X)}
	case g.Block != nil:
		return c.block(g.Block)
	case g.Empty:
		return &EmptyStmt{span: c.span(g.Pos, g.EndPos)}
	case g.Expr != nil:
		return &ExprStmt{span: c.span(g.Pos, g.EndPos), X: c.expr(g.Expr)}
	}
	panic(fmt.Sprintf("%s: unexpected statement", c.pos(g.Pos)))
}

func (c *converter) block(g *gBlock) *BlockStmt {
	return &BlockStmt{span: c.span(g.Pos, g.EndPos), Stmts: c.stmts(g.Stmts)}
}

var declTokens = map[string]Token{"var": VAR, "let": LET, "const": CONST}

func (c *converter) varDecl(g *gVarDecl) *VarDecl {
	d := &VarDecl{span: c.span(g.Pos, g.EndPos), Token: declTokens[g.Kind]}
	for _, gd := range g.List {
		decl := &Declarator{span: c.span(gd.Pos, gd.EndPos), Name: c.ident(gd.Name)}
		if gd.Init != nil {
			decl.Init = c.assign(gd.Init)
		}
		d.List = append(d.List, decl)
	}
	return d
}

func (c *converter) function(g *gFunction) *Function {
	fn := c.funcTail(g.Tail)
	fn.span = c.span(g.Pos, g.EndPos)
	fn.Name = c.ident(g.Name)
	return fn
}

func (c *converter) funcTail(g *gFuncTail) *Function {
	return &Function{
		span:   c.span(g.Pos, g.EndPos),
		Params: c.params(g.Params),
		Body:   c.block(g.Body),
	}
}

func (c *converter) params(list []*gParam) []*Param {
	var params []*Param
	for i, g := range list {
		p := &Param{span: c.span(g.Pos, g.EndPos), Rest: g.Rest, Name: c.ident(g.Name)}
		if g.Default != nil {
			if g.Rest {
				c.errorf(g.Pos, "rest parameter may not have a default value")
			}
			p.Default = c.assign(g.Default)
		}
		if g.Rest && i != len(list)-1 {
			c.errorf(g.Pos, "rest parameter must be last formal parameter")
		}
		params = append(params, p)
	}
	return params
}

func (c *converter) class(g *gClass) *Class {
	class := &Class{span: c.span(g.Pos, g.EndPos), Name: c.ident(g.Name)}
	if g.Extends != nil {
		class.Extends = c.call(g.Extends)
	}
	for _, gm := range g.Methods {
		class.Methods = append(class.Methods, &Method{
			span:   c.span(gm.Pos, gm.EndPos),
			Static: gm.Static,
			Key:    gm.Key,
			Func:   c.funcTail(gm.Tail),
		})
	}
	return class
}

func (c *converter) try(g *gTry) *TryStmt {
	if g.Catch == nil && g.Finally == nil {
		c.errorf(g.Pos, "missing catch or finally after try")
	}
	s := &TryStmt{span: c.span(g.Pos, g.EndPos), Body: c.block(g.Body)}
	if g.Catch != nil {
		s.Catch = &CatchClause{
			span:  c.span(g.Catch.Pos, g.Catch.EndPos),
			Param: c.ident(g.Catch.Param),
			Body:  c.block(g.Catch.Body),
		}
	}
	if g.Finally != nil {
		s.Finally = c.block(g.Finally)
	}
	return s
}

func (c *converter) forStmt(g *gFor) Stmt {
	sp := c.span(g.Pos, g.EndPos)
	if in := g.In; in != nil {
		s := &ForInStmt{span: sp, Of: in.Op == "of", X: c.expr(in.X), Body: c.stmt(g.Body)}
		if in.Kind != "" {
			t := in.Target
			if t.New || len(t.Suffix) > 0 || t.X.Ident == nil {
				c.errorf(t.Pos, "invalid for-%s declaration", in.Op)
			}
			name := c.ident(t.X.Ident)
			s.Init = &VarDecl{
				span:  c.span(t.Pos, t.EndPos),
				Token: declTokens[in.Kind],
				List:  []*Declarator{{span: c.span(t.Pos, t.EndPos), Name: name}},
			}
		} else {
			s.Init = c.call(in.Target)
		}
		return s
	}
	cl := g.Classic
	s := &ForStmt{span: sp, Body: c.stmt(g.Body)}
	switch {
	case cl.Var != nil:
		s.Init = c.varDecl(cl.Var)
	case cl.Init != nil:
		s.Init = c.expr(cl.Init)
	}
	if cl.Cond != nil {
		s.Cond = c.expr(cl.Cond)
	}
	if cl.Post != nil {
		s.Post = c.expr(cl.Post)
	}
	return s
}

func (c *converter) expr(g *gExpr) Expr {
	if len(g.List) == 1 {
		return c.assign(g.List[0])
	}
	seq := &SeqExpr{span: c.span(g.Pos, g.EndPos)}
	for _, x := range g.List {
		seq.List = append(seq.List, c.assign(x))
	}
	return seq
}

func (c *converter) assign(g *gAssign) Expr {
	if a := g.Arrow; a != nil {
		fn := &Function{span: c.span(a.Pos, a.EndPos), Arrow: true}
		if a.Single != nil {
			fn.Params = []*Param{{span: c.span(a.Single.Pos, a.Single.Pos), Name: c.ident(a.Single)}}
		} else {
			fn.Params = c.params(a.Params)
		}
		if a.Body != nil {
			fn.Body = c.block(a.Body)
		} else {
			fn.Result = c.assign(a.Result)
		}
		return &FuncExpr{Func: fn}
	}
	x := c.cond(g.Cond)
	if g.Op == "" {
		return x
	}
	return &AssignExpr{span: c.span(g.Pos, g.EndPos), LHS: x, Op: g.Op, RHS: c.assign(g.RHS)}
}

func (c *converter) cond(g *gCond) Expr {
	x := c.binary(g.X)
	if g.True == nil {
		return x
	}
	return &CondExpr{
		span:  c.span(g.Pos, g.EndPos),
		Cond:  x,
		True:  c.assign(g.True),
		False: c.assign(g.False),
	}
}

// binary builds a left-associative chain; operator precedence is not
// modelled since it never affects name resolution.
func (c *converter) binary(g *gBinary) Expr {
	x := c.unary(g.X)
	for _, op := range g.Tail {
		y := c.unary(op.Y)
		x = &BinaryExpr{span: span{Start(x), End(y)}, X: x, Op: op.Op, Y: y}
	}
	return x
}

func (c *converter) unary(g *gUnary) Expr {
	if g.Op != "" {
		return &UnaryExpr{span: c.span(g.Pos, g.EndPos), Op: g.Op, X: c.unary(g.X)}
	}
	x := c.call(g.Postfix.X)
	if g.Postfix.Op != "" {
		return &UnaryExpr{span: c.span(g.Postfix.Pos, g.Postfix.EndPos), Op: g.Postfix.Op, X: x, Postfix: true}
	}
	return x
}

func (c *converter) call(g *gCall) Expr {
	x := c.primary(g.X)
	pendingNew := g.New
	for _, s := range g.Suffix {
		sp := span{c.pos(g.Pos), c.pos(s.EndPos)}
		switch {
		case s.Index != nil:
			x = &IndexExpr{span: sp, X: x, Y: c.expr(s.Index)}
		case s.Args != nil:
			call := &CallExpr{span: sp, Fn: x, New: pendingNew}
			for _, a := range s.Args.List {
				call.Args = append(call.Args, c.arg(a))
			}
			pendingNew = false
			x = call
		default:
			x = &DotExpr{span: sp, X: x, Name: s.Dot}
		}
	}
	if pendingNew {
		x = &CallExpr{span: c.span(g.Pos, g.EndPos), Fn: x, New: true}
	}
	return x
}

func (c *converter) arg(g *gArg) Expr {
	x := c.assign(g.X)
	if g.Spread {
		return &SpreadExpr{span: c.span(g.Pos, g.EndPos), X: x}
	}
	return x
}

func (c *converter) primary(g *gPrimary) Expr {
	sp := c.span(g.Pos, g.EndPos)
	switch {
	case g.Func != nil:
		return &FuncExpr{Func: c.function(g.Func)}
	case g.Class != nil:
		return &ClassExpr{Class: c.class(g.Class)}
	case g.Number != "":
		return &Literal{span: sp, Token: NUMBER, Raw: g.Number}
	case g.String != "":
		return &Literal{span: sp, Token: STRING, Raw: g.String}
	case g.Word != "":
		return &Literal{span: sp, Token: KEYWORD, Raw: g.Word}
	case g.Ident != nil:
		return c.ident(g.Ident)
	case g.Paren != nil:
		return &ParenExpr{span: sp, X: c.expr(g.Paren)}
	case g.Array != nil:
		a := &ArrayExpr{span: sp}
		for _, x := range g.Array.List {
			a.List = append(a.List, c.arg(x))
		}
		return a
	case g.Object != nil:
		obj := &ObjectExpr{span: sp}
		for _, p := range g.Object.Props {
			obj.Props = append(obj.Props, c.property(p))
		}
		return obj
	}
	panic(fmt.Sprintf("%s: unexpected operand", c.pos(g.Pos)))
}

func (c *converter) property(g *gProp) *Property {
	p := &Property{span: c.span(g.Pos, g.EndPos), Key: g.Key}
	switch {
	case g.Value != nil:
		p.Value = c.assign(g.Value)
	case g.Method != nil:
		p.Method = true
		p.Value = &FuncExpr{Func: c.funcTail(g.Method)}
	default:
		if !IsIdentifier(g.Key) {
			c.errorf(g.Pos, "invalid shorthand property %s", g.Key)
		}
		p.Shorthand = true
		p.Value = &Ident{NamePos: c.pos(g.Pos), Name: g.Key}
	}
	return p
}
