// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"bytes"
	"fmt"
	"log"
	"reflect"
	"strings"
	"testing"

	"go.shadowfree.dev/syntax"
)

func TestWalk(t *testing.T) {
	const src = `
for (var x in y) {
  if (x) {
    continue;
  } else {
    f([2 * x, "abc"]);
  }
}
`
	f, err := syntax.Parse("hello.js", src)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	var depth int
	syntax.Walk(f, func(n syntax.Node) bool {
		if n == nil {
			depth--
			return true
		}
		fmt.Fprintf(&buf, "%s%s\n",
			strings.Repeat("  ", depth),
			strings.TrimPrefix(reflect.TypeOf(n).String(), "*syntax."))
		depth++
		return true
	})
	got := buf.String()
	want := `
File
  ForInStmt
    VarDecl
      Declarator
        Ident
    Ident
    BlockStmt
      IfStmt
        Ident
        BlockStmt
          BranchStmt
        BlockStmt
          ExprStmt
            CallExpr
              Ident
              ArrayExpr
                BinaryExpr
                  Literal
                  Ident
                Literal`
	got = strings.TrimSpace(got)
	want = strings.TrimSpace(want)
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWalkPrune(t *testing.T) {
	const src = `var a = function b(c) { return d; }; e;`
	f, err := syntax.Parse("prune.js", src)
	if err != nil {
		t.Fatal(err)
	}

	var idents []string
	syntax.Walk(f, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.Function:
			return false // don't descend into functions
		case *syntax.Ident:
			idents = append(idents, n.Name)
		}
		return true
	})
	if got, want := strings.Join(idents, " "), "a e"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

// ExampleWalk demonstrates the use of Walk to
// enumerate the identifiers in a source file
// containing a nonsense program with varied grammar.
func ExampleWalk() {
	const src = `
var a = b;
function c(d, ...e) {
  let f = {g: h, i};
  return j.k[l + m];
}
class n extends o { p(q) { r = s => t; } }
try { u(); } catch (v) { w; }
for (x of y) z;
`
	f, err := syntax.Parse("hello.js", src)
	if err != nil {
		log.Fatal(err)
	}

	var idents []string
	syntax.Walk(f, func(n syntax.Node) bool {
		if id, ok := n.(*syntax.Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	fmt.Println(strings.Join(idents, " "))

	// The letters g, k and p are property names, not identifiers.

	// Output:
	// a b c d e f h i j l m n o q r s t u v w x y z
}
