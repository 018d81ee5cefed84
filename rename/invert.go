// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rename

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"go.shadowfree.dev/resolve"
	"go.shadowfree.dev/syntax"
)

// Invert undoes contextual renaming in place: each local declaration
// named base$jscomp$suffix gets the shortest of base, base$jscomp$0,
// base$jscomp$1, ... not referenced anywhere within its scope.
// Global declarations are left alone. Options may be nil; only
// Externs and Logger are consulted.
func Invert(f *syntax.File, opts *Options) (*Report, error) {
	if opts == nil {
		opts = new(Options)
	}
	info, err := resolve.File(f, opts.isExtern())
	if err != nil {
		return nil, err
	}
	inv := &inverter{
		tree:    info.Tree,
		log:     opts.logger(),
		report:  new(Report),
		aliases: make(map[*resolve.Decl][]*resolve.Decl),
	}
	for _, scope := range info.Tree.Scopes {
		for _, d := range scope.Decls {
			if d.Alias != nil {
				inv.aliases[d.Alias] = append(inv.aliases[d.Alias], d)
			}
		}
	}
	resolve.Traverse(info, inv)
	for _, scope := range info.Tree.Scopes {
		for _, d := range scope.Decls {
			d.Advance(resolve.ReferencesFixed)
		}
	}
	return inv.report, nil
}

// An inverter processes scopes bottom-up, keeping for each open scope
// the set of names referenced within it. A catch parameter aliased to a
// hoisted declaration is renamed along with that declaration.
type inverter struct {
	tree    *resolve.Tree
	log     logrus.FieldLogger
	report  *Report
	stack   []map[string]bool
	aliases map[*resolve.Decl][]*resolve.Decl
}

func (inv *inverter) EnterScope(*resolve.Scope) {
	inv.stack = append(inv.stack, make(map[string]bool))
}

func (inv *inverter) Ident(u resolve.Use) {
	inv.stack[len(inv.stack)-1][u.Ident.Name] = true
}

func (inv *inverter) ExitScope(scope *resolve.Scope) {
	names := inv.stack[len(inv.stack)-1]
	inv.stack = inv.stack[:len(inv.stack)-1]
	if scope.Kind != syntax.GlobalScope {
		inv.invert(scope, names)
	}
	if n := len(inv.stack); n > 0 {
		parent := inv.stack[n-1]
		for name := range names {
			parent[name] = true
		}
	}
}

type candidate struct {
	d       *resolve.Decl
	base    string
	n       int
	numeric bool
}

// candidates returns the declarations of scope in renamed form, ordered
// by numeric suffix. Other suffixes follow in declaration order.
func candidates(scope *resolve.Scope) []candidate {
	var cands []candidate
	for _, d := range scope.Decls {
		i := strings.Index(d.Name, Separator)
		if i <= 0 || d.Alias != nil {
			continue
		}
		c := candidate{d: d, base: d.Name[:i]}
		suffix := d.Name[i+len(Separator):]
		if suffix != "" && suffix[0] >= '0' && suffix[0] <= '9' {
			n, err := strconv.Atoi(suffix)
			c.n, c.numeric = n, err == nil
		}
		cands = append(cands, c)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		x, y := cands[i], cands[j]
		if x.numeric != y.numeric {
			return x.numeric
		}
		return x.numeric && x.n < y.n
	})
	return cands
}

func (inv *inverter) invert(scope *resolve.Scope, names map[string]bool) {
	for _, c := range candidates(scope) {
		d := c.d
		name := c.base
		for i := 0; !available(name, names); i++ {
			name = c.base + Separator + strconv.Itoa(i)
		}
		delete(names, d.Name)
		names[name] = true
		inv.rename(d, name)
		for _, alias := range inv.aliases[d] {
			inv.rename(alias, name)
		}
	}
}

func (inv *inverter) rename(d *resolve.Decl, name string) {
	scope := inv.tree.Scope(d.Scope)
	inv.log.WithFields(logrus.Fields{
		"scope": scope.ID,
		"kind":  d.Kind.String(),
		"old":   d.Name,
		"new":   name,
	}).Debug("invert")
	inv.report.add(scope, d, name)
	inv.tree.Rename(d, name)
	for _, id := range d.Idents {
		id.Name = name
	}
	d.Advance(resolve.Renamed)
}

func available(name string, names map[string]bool) bool {
	return syntax.IsIdentifier(name) && name != resolve.Arguments && !names[name]
}
