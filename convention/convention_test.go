// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convention_test

import (
	"testing"

	"go.shadowfree.dev/convention"
)

func TestGoogle(t *testing.T) {
	for _, test := range []struct {
		name               string
		exported, constant bool
	}{
		{"a", false, false},
		{"_a", true, false},
		{"_", true, false},
		{"A", false, false},
		{"AB", false, true},
		{"CONST", false, true},
		{"MAX_VALUE", false, true},
		{"Ab", false, false},
		{"_AB", true, false},
		{"a$jscomp$FOO", false, true},
		{"FOO$jscomp$1", false, false},
		{"x$", false, false},
	} {
		if got := convention.Google.IsExported(test.name); got != test.exported {
			t.Errorf("Google.IsExported(%q) = %t, want %t", test.name, got, test.exported)
		}
		if got := convention.Google.IsConstant(test.name); got != test.constant {
			t.Errorf("Google.IsConstant(%q) = %t, want %t", test.name, got, test.constant)
		}
		if convention.Default.IsExported(test.name) || convention.Default.IsConstant(test.name) {
			t.Errorf("Default classified %q", test.name)
		}
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]convention.Convention{
		"":        convention.Default,
		"default": convention.Default,
		"google":  convention.Google,
	} {
		got, err := convention.ByName(name)
		if err != nil {
			t.Errorf("ByName(%q) failed: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ByName(%q) = %T, want %T", name, got, want)
		}
	}
	if _, err := convention.ByName("closure"); err == nil {
		t.Error("ByName(closure) succeeded unexpectedly")
	}
}
