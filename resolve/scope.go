// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"fmt"

	"go.shadowfree.dev/syntax"
)

// Arguments is the implicit binding available in every function body.
// It is never declared, renamed, or chosen as a new name.
const Arguments = "arguments"

// A ScopeID identifies a Scope within its Tree.
type ScopeID int

// NoScope is the parent of the root scope.
const NoScope ScopeID = -1

// A Tree is an arena of scopes. The root scope, if any, has ID 0.
type Tree struct {
	Scopes []*Scope
}

// A Scope is a region of the program over which a set of declared
// names is simultaneously visible.
type Scope struct {
	ID       ScopeID
	Kind     syntax.ScopeKind
	Parent   ScopeID
	Children []ScopeID   // in source order
	Node     syntax.Node // the construct that opened the scope
	Decls    []*Decl     // in declaration order
	Uses     []Use       // identifiers whose innermost scope is this one, in source order

	names map[string]*Decl // by current name
}

// A State records how far a Decl has progressed through a renaming pass.
type State uint8

const (
	NotVisited      State = iota
	Declared              // collected into its scope
	Renamed               // final name assigned
	ReferencesFixed       // every bound identifier carries the final name
)

var stateNames = [...]string{
	NotVisited:      "not visited",
	Declared:        "declared",
	Renamed:         "renamed",
	ReferencesFixed: "references fixed",
}

func (s State) String() string { return stateNames[s] }

// A Decl is a declared name: all the identifiers that denote the same
// variable share one Decl.
type Decl struct {
	Orig  string // name as written in the source
	Name  string // current name
	Kind  syntax.BindKind
	Scope ScopeID
	Pos   syntax.Position // first declaring identifier

	Global bool // declared in the root scope
	Extern bool // global declared by the environment; never renamed
	Const  bool // non-reassignable
	State  State

	Idents []*syntax.Ident // every identifier bound to this Decl

	// Alias is set on a catch parameter that a var or function of the
	// catch body redeclares. It is the hoisted declaration of the same
	// name, and the two must always carry the same name.
	Alias *Decl
}

func (d *Decl) String() string {
	if d.Name != d.Orig {
		return fmt.Sprintf("%s %s (was %s)", d.Kind, d.Name, d.Orig)
	}
	return fmt.Sprintf("%s %s", d.Kind, d.Name)
}

// Advance moves d to state s. It panics if s precedes d's current state.
func (d *Decl) Advance(s State) {
	if s < d.State {
		panic(fmt.Sprintf("resolve: %s: cannot go from %s back to %s", d, d.State, s))
	}
	d.State = s
}

// Root returns the ID of the root scope.
func (t *Tree) Root() ScopeID {
	if len(t.Scopes) == 0 {
		panic("resolve: empty scope tree")
	}
	return 0
}

// Scope returns the scope with the given ID. It panics if there is none.
func (t *Tree) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(t.Scopes) {
		panic(fmt.Sprintf("resolve: no scope %d", id))
	}
	return t.Scopes[id]
}

// EnterScope creates a new scope of the given kind nested within parent
// and returns its ID. The root scope must be a global scope whose parent
// is NoScope, and a tree has exactly one root.
func (t *Tree) EnterScope(kind syntax.ScopeKind, parent ScopeID) ScopeID {
	id := ScopeID(len(t.Scopes))
	if (parent == NoScope) != (id == 0) {
		panic(fmt.Sprintf("resolve: %s scope %d has parent %d", kind, id, parent))
	}
	if (kind == syntax.GlobalScope) != (parent == NoScope) {
		panic(fmt.Sprintf("resolve: %s scope %d has parent %d", kind, id, parent))
	}
	if parent != NoScope {
		p := t.Scope(parent)
		p.Children = append(p.Children, id)
	}
	t.Scopes = append(t.Scopes, &Scope{
		ID:     id,
		Kind:   kind,
		Parent: parent,
		names:  make(map[string]*Decl),
	})
	return id
}

// Declare declares name in the given scope and returns its Decl.
// Redeclaring a name already present in the scope returns the existing
// Decl. Declaring Arguments returns nil.
//
// Declare panics if the declaration violates the hoisting rule: var and
// function declarations belong to function or global scopes, parameters
// to function scopes, and catch parameters to catch scopes.
func (t *Tree) Declare(scope ScopeID, name string, kind syntax.BindKind) *Decl {
	s := t.Scope(scope)
	ok := true
	switch kind {
	case syntax.BindVar, syntax.BindFunction:
		ok = s.Kind == syntax.FunctionScope || s.Kind == syntax.GlobalScope
	case syntax.BindParam, syntax.BindRestParam:
		ok = s.Kind == syntax.FunctionScope
	case syntax.BindCatchParam:
		ok = s.Kind == syntax.CatchScope
	}
	if !ok {
		panic(fmt.Sprintf("resolve: cannot declare %s %s in %s scope %d", kind, name, s.Kind, scope))
	}
	if name == Arguments {
		return nil
	}
	if d := s.names[name]; d != nil {
		return d
	}
	d := &Decl{
		Orig:   name,
		Name:   name,
		Kind:   kind,
		Scope:  scope,
		Global: s.Kind == syntax.GlobalScope,
		Const:  kind == syntax.BindConst,
		State:  Declared,
	}
	s.Decls = append(s.Decls, d)
	s.names[name] = d
	return d
}

// Local returns the Decl with the given current name in scope itself.
func (t *Tree) Local(scope ScopeID, name string) *Decl {
	return t.Scope(scope).names[name]
}

// Lookup returns the nearest Decl with the given current name visible
// from scope, or nil.
func (t *Tree) Lookup(scope ScopeID, name string) *Decl {
	for id := scope; id != NoScope; {
		s := t.Scope(id)
		if d := s.names[name]; d != nil {
			return d
		}
		id = s.Parent
	}
	return nil
}

// Rename changes the current name of d, keeping its scope's index
// consistent. It panics if another Decl of the same scope already has
// the new name.
func (t *Tree) Rename(d *Decl, name string) {
	s := t.Scope(d.Scope)
	if other := s.names[name]; other != nil && other != d {
		panic(fmt.Sprintf("resolve: renaming %s to %s collides with %s", d, name, other))
	}
	delete(s.names, d.Name)
	d.Name = name
	s.names[name] = d
}
