// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines resolver data types referenced by the syntax tree.
// We cannot guarantee API stability for these types
// as they are closely tied to the implementation.

// A ScopeKind indicates what kind of construct opened a lexical scope.
type ScopeKind uint8

const (
	GlobalScope   ScopeKind = iota // top level of a file
	FunctionScope                  // function, arrow, or method body and its parameters
	BlockScope                     // braces, loop heads, class self-names
	CatchScope                     // catch clause parameter
)

var scopeNames = [...]string{
	GlobalScope:   "global",
	FunctionScope: "function",
	BlockScope:    "block",
	CatchScope:    "catch",
}

func (scope ScopeKind) String() string { return scopeNames[scope] }

// A BindKind indicates the syntactic form that introduced a declaration.
type BindKind uint8

const (
	BindVar        BindKind = iota // var x
	BindLet                        // let x
	BindConst                      // const x
	BindFunction                   // function x() {}
	BindClass                      // class x {}
	BindParam                      // function(x) {}
	BindCatchParam                 // catch (x) {}
	BindRestParam                  // function(...x) {}
)

var bindNames = [...]string{
	BindVar:        "var",
	BindLet:        "let",
	BindConst:      "const",
	BindFunction:   "function",
	BindClass:      "class",
	BindParam:      "param",
	BindCatchParam: "catch_param",
	BindRestParam:  "rest_param",
}

func (kind BindKind) String() string { return bindNames[kind] }

// Hoisted reports whether declarations of this kind attach to the
// nearest enclosing function or global scope.
func (kind BindKind) Hoisted() bool { return kind == BindVar || kind == BindFunction }

// Lexical reports whether declarations of this kind attach to the
// scope in which they are written and may not be redeclared there.
func (kind BindKind) Lexical() bool {
	return kind == BindLet || kind == BindConst || kind == BindClass
}
