// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.shadowfree.dev/syntax"
)

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`var a=1,b;let c`,
			"var a = 1, b;\nlet c;\n"},
		{`function f(x,...y){if(x){return y}else return}`,
			`function f(x, ...y) {
  if (x) {
    return y;
  } else return;
}
`},
		{`try{a()}catch(e){}finally{b()}`,
			`try {
  a();
} catch (e) {} finally {
  b();
}
`},
		{`try{}catch{x}`,
			"try {} catch {\n  x;\n}\n"},
		{`class A extends B{static m(){}n(){x}}`,
			`class A extends B {
  static m() {}
  n() {
    x;
  }
}
`},
		{`for(let i=0;i<n;i++)f(i)`,
			"for (let i = 0; i < n; i++) f(i);\n"},
		{`for(;;){}`,
			"for (;;) {}\n"},
		{`for(const k in o){}`,
			"for (const k in o) {}\n"},
		{`x=a=>({a,b:c})`,
			"x = (a) => ({a, b: c});\n"},
		{`o={m(){return 1}}`,
			"o = {m() {\n  return 1;\n}};\n"},
		{`new Foo`,
			"new Foo();\n"},
		{`- -x;typeof x;!y`,
			"- -x;\ntypeof x;\n!y;\n"},
		{`do x();while(y)`,
			"do x(); while (y);\n"},
		{`while(a)break`,
			"while (a) break;\n"},
		{`throw new Error("x")`,
			"throw new Error(\"x\");\n"},
		{`var f=function g(){}, h=class{}`,
			"var f = function g() {}, h = class {};\n"},
	} {
		f, err := syntax.Parse("foo.js", test.input)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, stripPos(err))
			continue
		}
		got := syntax.Format(f)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("format `%s` mismatch (-want +got):\n%s", test.input, diff)
			continue
		}

		// Printing is idempotent.
		f2, err := syntax.Parse("foo.js", got)
		if err != nil {
			t.Errorf("reparse `%s` failed: %v", got, stripPos(err))
			continue
		}
		if again := syntax.Format(f2); again != got {
			t.Errorf("format is not idempotent: %q then %q", got, again)
		}
	}
}

func TestFormatIgnoresLayout(t *testing.T) {
	a, err := syntax.Parse("a.js", "function f ( a ) { var b = a ; // comment\n return b }")
	if err != nil {
		t.Fatal(err)
	}
	b, err := syntax.Parse("b.js", "function f(a){var b=a;return b;}")
	if err != nil {
		t.Fatal(err)
	}
	if x, y := syntax.Format(a), syntax.Format(b); x != y {
		t.Errorf("layout changed rendering: %q vs %q", x, y)
	}

	var buf bytes.Buffer
	if err := syntax.Fprint(&buf, a); err != nil {
		t.Fatal(err)
	}
	if buf.String() != syntax.Format(a) {
		t.Errorf("Fprint = %q, want %q", buf.String(), syntax.Format(a))
	}
}
