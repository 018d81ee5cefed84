// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rename

import (
	"strconv"
	"strings"

	"go.shadowfree.dev/convention"
	"go.shadowfree.dev/resolve"
	"go.shadowfree.dev/uniqueid"
)

// A Strategy chooses the final name of each declaration.
// The set of strategies is closed: see NewContextual and NewGlobalUnique.
type Strategy interface {
	// Reserve marks name as in use, so it is never chosen.
	Reserve(name string)

	// AssignName returns the final name of d. The visible function
	// reports whether a name is declared on d's scope chain by a
	// declaration other than d.
	AssignName(d *resolve.Decl, visible func(name string) bool) string

	// start prepares the strategy for a new pass.
	start(opts *Options)
}

// Contextual renames a declaration only when its name was already
// declared elsewhere in the file, appending Separator and the number of
// earlier declarations of that name.
//
// The count spans the whole pass, not a scope chain, so a name declared
// in two sibling functions is renamed in the second.
type Contextual struct {
	usage map[string]int
}

// NewContextual returns a contextual strategy.
func NewContextual() *Contextual { return &Contextual{usage: make(map[string]int)} }

func (c *Contextual) start(*Options) { c.usage = make(map[string]int) }

func (c *Contextual) Reserve(name string) {
	if c.usage[name] == 0 {
		c.usage[name] = 1
	}
}

func (c *Contextual) AssignName(d *resolve.Decl, visible func(string) bool) string {
	if d.Global || d.Extern {
		c.Reserve(d.Name)
		return d.Name
	}
	id := c.usage[d.Orig]
	c.usage[d.Orig]++
	if id == 0 {
		return d.Orig
	}
	for ; ; id++ {
		name := d.Orig + Separator + strconv.Itoa(id)
		if c.usage[name] == 0 && !visible(name) {
			c.usage[name]++
			return name
		}
	}
}

// GlobalUnique gives every declaration a name unique across the run,
// drawing sequence numbers from a shared supplier.
type GlobalUnique struct {
	ids        *uniqueid.Supplier
	conv       convention.Convention
	prefix     string
	localsOnly bool
	reserved   map[string]bool
}

// NewGlobalUnique returns a globally unique strategy. A nil conv means
// convention.Default and an empty prefix means DefaultPrefix.
// The supplier is not reset between passes.
func NewGlobalUnique(ids *uniqueid.Supplier, conv convention.Convention, prefix string) *GlobalUnique {
	if conv == nil {
		conv = convention.Default
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &GlobalUnique{ids: ids, conv: conv, prefix: prefix, reserved: make(map[string]bool)}
}

func (g *GlobalUnique) start(opts *Options) {
	g.localsOnly = opts.LocalsOnly
	g.reserved = make(map[string]bool)
}

// Reserve keeps name from being generated, for instance because a free
// reference already has that form.
func (g *GlobalUnique) Reserve(name string) {
	if g.reserved == nil {
		g.reserved = make(map[string]bool)
	}
	g.reserved[name] = true
}

func (g *GlobalUnique) AssignName(d *resolve.Decl, visible func(string) bool) string {
	if d.Extern || (d.Global && g.localsOnly) {
		return d.Name
	}
	base := d.Orig
	if i := strings.LastIndex(base, Separator); i >= 0 {
		base = base[:i]
	}
	if g.conv.IsExported(base) {
		base = ExportPrefix + base
	}
	for {
		name := base + Separator + g.prefix + strconv.Itoa(g.ids.Next())
		if !g.reserved[name] && !visible(name) {
			return name
		}
	}
}
