// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repl

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.shadowfree.dev/rename"
	"go.shadowfree.dev/syntax"
)

// lines is a lineReader that replays its contents, then reports EOF.
type lines struct {
	input   []string
	prompts []string
}

func (l *lines) Readline() (string, error) {
	if len(l.input) == 0 {
		return "", io.EOF
	}
	line := l.input[0]
	l.input = l.input[1:]
	return line, nil
}

func (l *lines) SetPrompt(prompt string) { l.prompts = append(l.prompts, prompt) }

func contextual(f *syntax.File) (*rename.Report, error) {
	return rename.File(f, rename.NewContextual(), nil)
}

// run feeds input to the loop until EOF.
func run(t *testing.T, input []string, verbose bool) (stdout, stderr string) {
	t.Helper()
	rl := &lines{input: input}
	var out, errs bytes.Buffer
	for i := 0; ; i++ {
		if i > len(input)+1 {
			t.Fatal("loop does not terminate")
		}
		if err := rep(rl, contextual, verbose, &out, &errs); err != nil {
			if err != io.EOF {
				t.Fatal(err)
			}
			break
		}
	}
	return out.String(), errs.String()
}

func TestREPL(t *testing.T) {
	for _, test := range []struct {
		input          []string
		verbose        bool
		stdout, stderr string
	}{
		{
			input:  []string{"var a; function f(a) { a; }"},
			stdout: "var a;\nfunction f(a$jscomp$1) {\n  a$jscomp$1;\n}\n",
		},
		{
			// An item spans lines until it parses.
			input:  []string{"function f(a) {", "  var a;", "}", "", "x;"},
			stdout: "function f(a) {\n  var a;\n}\nx;\n",
		},
		{
			input:   []string{"function f(a) { let a; }"},
			stderr:  "<stdin>:1:21: let a redeclared; previous declaration at <stdin>:1:12\n",
			verbose: true,
		},
		{
			// Items are renamed independently.
			input:   []string{"function g() {} function f(g) {}", "function f(g) {}"},
			verbose: true,
			stdout:  "function g() {}\nfunction f(g$jscomp$1) {}\n# <stdin>:1:28: param g -> g$jscomp$1\nfunction f(g) {}\n",
		},
	} {
		stdout, stderr := run(t, test.input, test.verbose)
		if diff := cmp.Diff(test.stdout, stdout); diff != "" {
			t.Errorf("%q: stdout mismatch (-want +got):\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.stderr, stderr); diff != "" {
			t.Errorf("%q: stderr mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestREPLParseError(t *testing.T) {
	// A line that never parses is reported at the blank line.
	_, stderr := run(t, []string{"var ;", "", "y;"}, false)
	if stderr == "" {
		t.Errorf("no error reported")
	}

	// So is an incomplete item at EOF.
	_, stderr = run(t, []string{"function f() {"}, false)
	if stderr == "" {
		t.Errorf("no error reported at EOF")
	}
}

func TestPrompts(t *testing.T) {
	rl := &lines{input: []string{"function f() {", "}"}}
	var out, errs bytes.Buffer
	if err := rep(rl, contextual, false, &out, &errs); err != nil {
		t.Fatal(err)
	}
	want := []string{">>> ", "... ", "... ", ">>> "}
	if diff := cmp.Diff(want, rl.prompts); diff != "" {
		t.Errorf("prompts (-want +got):\n%s", diff)
	}
}
