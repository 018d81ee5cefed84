// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shadowfreetest defines utilities for testing the renamer.
//
// Tests compare trees by their canonical rendering, so expected output
// may be written with any layout.
package shadowfreetest // import "go.shadowfree.dev/shadowfreetest"

import (
	"path/filepath"
	"runtime"

	"github.com/google/go-cmp/cmp"

	"go.shadowfree.dev/syntax"
)

// A Reporter is a value to which errors may be reported.
// It is satisfied by *testing.T.
type Reporter interface {
	Helper()
	Errorf(format string, args ...interface{})
}

// DataFile returns the effective filename of the specified
// test data resource. The function abstracts differences between
// 'go test', under which a test runs in its package directory,
// and other runners, under which a test runs in the root of the tree.
var DataFile = func(pkgdir, filename string) string {
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Dir(filepath.Dir(file))
	return filepath.Join(root, pkgdir, filename)
}

// Canonical parses src and returns its canonical rendering.
// A parse failure is reported and yields the empty string.
func Canonical(r Reporter, filename, src string) string {
	r.Helper()
	f, err := syntax.Parse(filename, src)
	if err != nil {
		r.Errorf("%s: parsing expected output: %v", filename, err)
		return ""
	}
	return syntax.Format(f)
}

// Check reports whether got renders identically to the source text want,
// reporting a diff if not.
func Check(r Reporter, label string, got syntax.Node, want string) bool {
	r.Helper()
	canon := Canonical(r, label, want)
	if diff := cmp.Diff(canon, syntax.Format(got)); diff != "" {
		r.Errorf("%s: output mismatch (-want +got):\n%s", label, diff)
		return false
	}
	return true
}
