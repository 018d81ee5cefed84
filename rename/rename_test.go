// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rename_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"

	"go.shadowfree.dev/convention"
	"go.shadowfree.dev/internal/chunkedfile"
	"go.shadowfree.dev/rename"
	"go.shadowfree.dev/resolve"
	"go.shadowfree.dev/shadowfreetest"
	"go.shadowfree.dev/syntax"
	"go.shadowfree.dev/uniqueid"
)

// A chunk may set options by containing e.g. "option:remove_const".
func options(chunk *chunkedfile.Chunk) *rename.Options {
	opts := &rename.Options{
		RemoveConstOnRename: chunk.Option("remove_const"),
		LocalsOnly:          chunk.Option("locals_only"),
	}
	if chunk.Option("google") {
		opts.Convention = convention.Google
	}
	if chunk.Option("externs") {
		opts.Externs = []string{"extern1"}
	}
	return opts
}

// runChunks applies pass to each chunk of the named test data file and
// compares the result with the chunk's expected output, or with its
// input if it has none.
func runChunks(t *testing.T, name string, pass func(chunk *chunkedfile.Chunk, f *syntax.File) error) {
	filename := shadowfreetest.DataFile("rename", filepath.Join("testdata", name))
	for i, chunk := range chunkedfile.Read(filename, t) {
		label := fmt.Sprintf("%s chunk %d", name, i)
		f, err := syntax.Parse(filename, chunk.Source)
		if err != nil {
			t.Errorf("%s: %v", label, err)
			continue
		}
		if err := pass(&chunk, f); err != nil {
			for _, err := range err.(resolve.ErrorList) {
				chunk.GotError(int(err.Pos.Line), err.Msg)
			}
			chunk.Done()
			continue
		}
		chunk.Done()

		want := chunk.Source
		if chunk.HasWant {
			want = chunk.Want
		}
		if !shadowfreetest.Check(t, label, f, want) {
			continue
		}
		if chunk.Option("remove_const") {
			checkConstRemoved(t, label, f)
		}
		if chunk.Option("roundtrip") {
			if _, err := rename.Invert(f, options(&chunk)); err != nil {
				t.Errorf("%s: invert: %v", label, err)
				continue
			}
			shadowfreetest.Check(t, label+" inverted", f, chunk.Source)
		}
	}
}

// checkConstRemoved reports declaring identifiers of renamed
// declarations that are still marked non-reassignable.
func checkConstRemoved(t *testing.T, label string, f *syntax.File) {
	t.Helper()
	syntax.Walk(f, func(n syntax.Node) bool {
		if id, ok := n.(*syntax.Ident); ok && id.Const {
			if d, ok := id.Binding.(*resolve.Decl); ok && d.Name != d.Orig {
				t.Errorf("%s: %s (was %s) is still constant", label, d.Name, d.Orig)
			}
		}
		return true
	})
}

func TestContextual(t *testing.T) {
	runChunks(t, "contextual.js", func(chunk *chunkedfile.Chunk, f *syntax.File) error {
		_, err := rename.File(f, rename.NewContextual(), options(chunk))
		return err
	})
}

func TestGlobalUnique(t *testing.T) {
	runChunks(t, "unique.js", func(chunk *chunkedfile.Chunk, f *syntax.File) error {
		opts := options(chunk)
		prefix := ""
		if chunk.Option("prefix") {
			prefix = "p_"
		}
		s := rename.NewGlobalUnique(new(uniqueid.Supplier), opts.Convention, prefix)
		_, err := rename.File(f, s, opts)
		return err
	})
}

func TestInvert(t *testing.T) {
	runChunks(t, "invert.js", func(chunk *chunkedfile.Chunk, f *syntax.File) error {
		_, err := rename.Invert(f, options(chunk))
		return err
	})
}

func parse(t *testing.T, src string) *syntax.File {
	t.Helper()
	f, err := syntax.Parse("test.js", src)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// bindings returns, for each identifier of f in source order, the index
// of the declaration it denotes, or -1 if it is unbound.
func bindings(t *testing.T, f *syntax.File) []int {
	t.Helper()
	info, err := resolve.File(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	index := make(map[*resolve.Decl]int)
	for _, s := range info.Tree.Scopes {
		for _, d := range s.Decls {
			index[d] = len(index)
		}
	}
	var result []int
	for _, u := range info.Uses {
		if u.Decl == nil {
			result = append(result, -1)
		} else {
			result = append(result, index[u.Decl])
		}
	}
	return result
}

// declNames returns the names of all declarations of f, omitting catch
// parameters that share the name of a hoisted declaration.
func declNames(t *testing.T, f *syntax.File) []string {
	t.Helper()
	info, err := resolve.File(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range info.Tree.Scopes {
		for _, d := range s.Decls {
			if d.Alias == nil {
				names = append(names, d.Name)
			}
		}
	}
	return names
}

var programs = []string{
	`var a; function foo(a) { var b; a; } function boo(a) { var b; return a + b; }`,
	`function f(x) { if (!x) { let x = 6; } try { } catch (x) { x; } return x; }`,
	`var e; function g(e, ...f) { try { } catch (e) { e = 1; e; } return function e() { return e; }; }`,
	`let k; { let k; { const k = 2; k; } k; } class C { m(C) { return C; } }`,
	`var x = function x(x) { x; }; x = class x { y() { return x; } };`,
	`for (let i = 0; i < 3; i++) { let i; for (const i of y) { i; } }`,
	`function arguments$jscomp$1() { var arguments; return arguments; }`,
	`function f(a, a$jscomp$1, a$jscomp$2) { var a$jscomp$3; return function (a) { return a$jscomp$1 + a; }; }`,
	`function f() { try { } catch (e) { var e = 1; e; } return e; }`,
	`var e; function f() { try { } catch (e) { var e; function e() {} } try { } catch (e) { e; } return e; }`,
	`function f(a) { return a$jscomp$unique_1 + a$jscomp$1; }`,
}

func TestBindingsPreserved(t *testing.T) {
	for _, strategy := range []string{"contextual", "unique", "roundtrip"} {
		for _, src := range programs {
			f := parse(t, src)
			want := bindings(t, f)

			var s rename.Strategy = rename.NewContextual()
			if strategy == "unique" {
				s = rename.NewGlobalUnique(new(uniqueid.Supplier), nil, "")
			}
			if _, err := rename.File(f, s, nil); err != nil {
				t.Fatalf("%s: %v", src, err)
			}

			// No two declarations share a name.
			seen := make(map[string]bool)
			for _, name := range declNames(t, f) {
				if seen[name] {
					t.Errorf("%s %s: name %s declared twice in\n%s", strategy, src, name, syntax.Format(f))
				}
				seen[name] = true
			}

			if strategy == "roundtrip" {
				if _, err := rename.Invert(f, nil); err != nil {
					t.Fatalf("%s: %v", src, err)
				}
			}
			if diff := cmp.Diff(want, bindings(t, f)); diff != "" {
				t.Errorf("%s %s: bindings changed (-want +got):\n%s\noutput: %s", strategy, src, diff, syntax.Format(f))
			}
		}
	}
}

func TestStrategyIsReusable(t *testing.T) {
	s := rename.NewContextual()
	var outputs []string
	for i := 0; i < 2; i++ {
		f := parse(t, `var a; function f(a) { a; }`)
		if _, err := rename.File(f, s, nil); err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, syntax.Format(f))
	}
	if outputs[0] != outputs[1] {
		t.Errorf("second pass differs:\n%s\n%s", outputs[0], outputs[1])
	}
}

func TestSupplierIsShared(t *testing.T) {
	ids := new(uniqueid.Supplier)
	s := rename.NewGlobalUnique(ids, nil, "")
	for _, want := range []string{"a$jscomp$unique_0", "a$jscomp$unique_1"} {
		f := parse(t, `var a;`)
		report, err := rename.File(f, s, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got, ok := report.Lookup(0, "a"); !ok || got != want {
			t.Errorf("a renamed to %q, %t; want %q", got, ok, want)
		}
	}
	ids.Reset()
	if got := ids.Next(); got != 0 {
		t.Errorf("after Reset, Next() = %d", got)
	}
}

func TestReport(t *testing.T) {
	f := parse(t, "var a;\nfunction f(a) { return a; }")
	report, err := rename.File(f, rename.NewContextual(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Renames) != 1 {
		t.Fatalf("got %d renames, want 1: %v", len(report.Renames), report.Renames)
	}
	r := report.Renames[0]
	if r.Old != "a" || r.New != "a$jscomp$1" || r.Kind != syntax.BindParam || r.ScopeKind != syntax.FunctionScope {
		t.Errorf("unexpected rename %+v", r)
	}
	if got, want := r.String(), "test.js:2:12: param a -> a$jscomp$1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if _, ok := report.Lookup(0, "a"); ok {
		t.Errorf("global a reported as renamed")
	}
	if got, ok := report.Lookup(r.Scope, "a"); !ok || got != "a$jscomp$1" {
		t.Errorf("Lookup(%d, a) = %q, %t", r.Scope, got, ok)
	}

	want, err := structpb.NewStruct(map[string]interface{}{
		"renames": []interface{}{
			map[string]interface{}{
				"scope":      int(r.Scope),
				"scope_kind": "function",
				"kind":       "param",
				"old":        "a",
				"new":        "a$jscomp$1",
				"pos":        "test.js:2:12",
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := report.Struct()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Errorf("Struct() mismatch (-want +got):\n%s", diff)
	}

	// The encodings decode to the same struct.
	data, err := report.Encode("json")
	if err != nil {
		t.Fatal(err)
	}
	fromJSON := new(structpb.Struct)
	if err := protojson.Unmarshal(data, fromJSON); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, fromJSON, protocmp.Transform()); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
	data, err = report.Encode("text")
	if err != nil {
		t.Fatal(err)
	}
	fromText := new(structpb.Struct)
	if err := prototext.Unmarshal(data, fromText); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, fromText, protocmp.Transform()); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
	if _, err := report.Encode("yaml"); err == nil {
		t.Errorf("Encode(yaml) succeeded")
	}
}

func TestLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	f := parse(t, `function f(a) { a; } function g(a) { var b; a; }`)
	report, err := rename.File(f, rename.NewContextual(), &rename.Options{Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	entries := hook.AllEntries()
	if len(entries) != len(report.Renames) {
		t.Fatalf("got %d log entries for %d renames", len(entries), len(report.Renames))
	}
	for i, e := range entries {
		r := report.Renames[i]
		if e.Level != logrus.DebugLevel || e.Data["old"] != r.Old || e.Data["new"] != r.New || e.Data["kind"] != r.Kind.String() {
			t.Errorf("entry %d = %v %v, want rename %v", i, e.Level, e.Data, r)
		}
	}

	hook.Reset()
	if _, err := rename.Invert(f, &rename.Options{Logger: logger}); err != nil {
		t.Fatal(err)
	}
	if got := len(hook.AllEntries()); got != 1 {
		t.Errorf("got %d inversion log entries, want 1", got)
	}
	shadowfreetest.Check(t, "inverted", f, `function f(a) { a; } function g(a) { var b; a; }`)
}

func TestExternsAreReserved(t *testing.T) {
	// A local named like an extern is renamed even though the
	// extern is not declared in the file.
	f := parse(t, `function f(window) { return window; }`)
	if _, err := rename.File(f, rename.NewContextual(), &rename.Options{Externs: []string{"window"}}); err != nil {
		t.Fatal(err)
	}
	shadowfreetest.Check(t, "externs", f, `function f(window$jscomp$1) { return window$jscomp$1; }`)
}

func TestResolveErrorLeavesFileUnchanged(t *testing.T) {
	const src = `function f(a) { let b; var b; return a; } var a;`
	f := parse(t, src)
	before := syntax.Format(f)
	_, err := rename.File(f, rename.NewContextual(), nil)
	if _, ok := err.(resolve.ErrorList); !ok {
		t.Fatalf("got error %v, want a resolve.ErrorList", err)
	}
	if after := syntax.Format(f); after != before {
		t.Errorf("file changed despite error:\n%s", after)
	}
}
