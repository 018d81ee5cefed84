// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rename

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/types/known/structpb"

	"go.shadowfree.dev/resolve"
	"go.shadowfree.dev/syntax"
)

// A Rename records one declaration whose name changed.
type Rename struct {
	Scope     resolve.ScopeID
	ScopeKind syntax.ScopeKind
	Kind      syntax.BindKind
	Old       string
	New       string
	Pos       syntax.Position // of the declaring identifier
}

func (r Rename) String() string {
	return fmt.Sprintf("%s: %s %s -> %s", r.Pos, r.Kind, r.Old, r.New)
}

// A Report lists the renames of a pass in the order they were made.
type Report struct {
	Renames []Rename
}

func (r *Report) add(scope *resolve.Scope, d *resolve.Decl, name string) {
	r.Renames = append(r.Renames, Rename{
		Scope:     scope.ID,
		ScopeKind: scope.Kind,
		Kind:      d.Kind,
		Old:       d.Name,
		New:       name,
		Pos:       d.Pos,
	})
}

// Lookup returns the new name given to the declaration of old in scope.
func (r *Report) Lookup(scope resolve.ScopeID, old string) (string, bool) {
	for _, e := range r.Renames {
		if e.Scope == scope && e.Old == old {
			return e.New, true
		}
	}
	return "", false
}

// Struct returns the report as a protocol buffer Struct of the form
// {"renames": [{"scope": 1, "scope_kind": "function", ...}, ...]}.
func (r *Report) Struct() (*structpb.Struct, error) {
	list := make([]interface{}, len(r.Renames))
	for i, e := range r.Renames {
		list[i] = map[string]interface{}{
			"scope":      int(e.Scope),
			"scope_kind": e.ScopeKind.String(),
			"kind":       e.Kind.String(),
			"old":        e.Old,
			"new":        e.New,
			"pos":        e.Pos.String(),
		}
	}
	return structpb.NewStruct(map[string]interface{}{"renames": list})
}

// Encode renders the report in the named format, "json" or "text".
func (r *Report) Encode(format string) ([]byte, error) {
	st, err := r.Struct()
	if err != nil {
		return nil, err
	}
	switch format {
	case "json":
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	case "text":
		return prototext.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}
