// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rename makes the declared names of a file unique, so that no
// declaration shadows another, and can undo the contextual form of that
// renaming.
//
// A pass resolves the file, then visits its scopes in pre-order and asks
// a Strategy for the final name of each declaration in declaration
// order, and finally rewrites every bound identifier. Unbound names and
// the implicit arguments binding are never touched.
//
// Two strategies are provided. Contextual keeps the first declaration
// of each name and suffixes later ones:
//
//	var a; function f(a) {}   =>   var a; function f(a$jscomp$1) {}
//
// GlobalUnique renames every declaration using a sequence number:
//
//	var a; function f(a) {}   =>   var a$jscomp$unique_0; function f$jscomp$unique_1(a$jscomp$unique_2) {}
//
// Invert reverses contextual renaming where it is safe to do so.
package rename // import "go.shadowfree.dev/rename"

import (
	"strings"

	"github.com/sirupsen/logrus"

	"go.shadowfree.dev/resolve"
	"go.shadowfree.dev/syntax"
)

// File renames the declarations of f in place using strategy s and
// returns a report of the names it changed. Options may be nil.
//
// If f cannot be resolved, File returns the resolver's ErrorList and
// leaves f unchanged.
func File(f *syntax.File, s Strategy, opts *Options) (*Report, error) {
	if opts == nil {
		opts = new(Options)
	}
	info, err := resolve.File(f, opts.isExtern())
	if err != nil {
		return nil, err
	}
	markConstants(info, opts)

	s.start(opts)
	for _, name := range opts.Externs {
		s.Reserve(name)
	}
	// A free name in the form of a renamed one must not be captured.
	for _, u := range info.Uses {
		if u.Decl == nil && strings.Contains(u.Ident.Name, Separator) {
			s.Reserve(u.Ident.Name)
		}
	}

	tree := info.Tree
	log := opts.logger()
	report := new(Report)
	resolve.Traverse(info, resolve.Funcs{
		Enter: func(scope *resolve.Scope) {
			for _, d := range scope.Decls {
				d := d
				var name string
				if d.Alias != nil {
					// The hoisted declaration was named when its
					// enclosing scope was entered.
					name = d.Alias.Name
				} else {
					name = s.AssignName(d, func(name string) bool {
						other := tree.Lookup(d.Scope, name)
						return other != nil && other != d
					})
				}
				if name != d.Name {
					log.WithFields(logrus.Fields{
						"scope": scope.ID,
						"kind":  d.Kind.String(),
						"old":   d.Name,
						"new":   name,
					}).Debug("rename")
					report.add(scope, d, name)
					tree.Rename(d, name)
				}
				d.Advance(resolve.Renamed)
			}
		},
	})

	for _, u := range info.Uses {
		if u.Decl != nil {
			u.Ident.Name = u.Decl.Name
		}
	}
	for _, scope := range tree.Scopes {
		for _, d := range scope.Decls {
			if opts.RemoveConstOnRename && d.Const && d.Name != d.Orig {
				d.Const = false
				for _, id := range d.Idents {
					id.Const = false
				}
			}
			d.Advance(resolve.ReferencesFixed)
		}
	}
	return report, nil
}

// markConstants flags the declarations the convention spells as
// constants as non-reassignable.
func markConstants(info *resolve.Info, opts *Options) {
	conv := opts.convention()
	for _, u := range info.Uses {
		if u.Def && u.Decl != nil && conv.IsConstant(u.Decl.Orig) {
			u.Decl.Const = true
			u.Ident.Const = true
		}
	}
}
