// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

// A Visitor receives the events of Traverse.
type Visitor interface {
	EnterScope(s *Scope)
	Ident(u Use)
	ExitScope(s *Scope)
}

// Traverse visits the scopes of info in pre-order, children in source
// order. For each scope it calls EnterScope, then Ident for each
// identifier directly in the scope, then visits the child scopes, and
// finally calls ExitScope.
func Traverse(info *Info, v Visitor) {
	if len(info.Tree.Scopes) == 0 {
		return
	}
	traverse(info.Tree, info.Tree.Root(), v)
}

func traverse(t *Tree, id ScopeID, v Visitor) {
	s := t.Scope(id)
	v.EnterScope(s)
	for _, u := range s.Uses {
		v.Ident(u)
	}
	for _, child := range s.Children {
		traverse(t, child, v)
	}
	v.ExitScope(s)
}

// Funcs adapts ordinary functions to the Visitor interface.
// Nil fields are ignored.
type Funcs struct {
	Enter func(s *Scope)
	Use   func(u Use)
	Exit  func(s *Scope)
}

func (f Funcs) EnterScope(s *Scope) {
	if f.Enter != nil {
		f.Enter(s)
	}
}

func (f Funcs) Ident(u Use) {
	if f.Use != nil {
		f.Use(u)
	}
}

func (f Funcs) ExitScope(s *Scope) {
	if f.Exit != nil {
		f.Exit(s)
	}
}
