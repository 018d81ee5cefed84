// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convention defines the coding-convention oracle consulted by
// the renamer: which names are exported, and which denote constants.
package convention // import "go.shadowfree.dev/convention"

import (
	"fmt"
	"strings"
	"unicode"
)

// A Convention classifies names by their spelling.
type Convention interface {
	// IsExported reports whether name is visible outside the program,
	// in which case renamed forms must keep it recognizable.
	IsExported(name string) bool
	// IsConstant reports whether name is spelled as a constant and thus
	// denotes a non-reassignable binding.
	IsConstant(name string) bool
}

// Default exports nothing and treats no name as a constant.
var Default Convention = defaultConvention{}

// Google follows the Google JavaScript style: names starting with an
// underscore are exported, and SCREAMING_CASE names are constants.
var Google Convention = googleConvention{}

// ByName returns the convention with the given name
// ("default" or "google"; the empty string means "default").
func ByName(name string) (Convention, error) {
	switch name {
	case "", "default":
		return Default, nil
	case "google":
		return Google, nil
	}
	return nil, fmt.Errorf("unknown coding convention %q", name)
}

type defaultConvention struct{}

func (defaultConvention) IsExported(name string) bool { return false }
func (defaultConvention) IsConstant(name string) bool { return false }

type googleConvention struct{}

func (googleConvention) IsExported(name string) bool { return strings.HasPrefix(name, "_") }

func (googleConvention) IsConstant(name string) bool {
	if len(name) <= 1 {
		return false
	}
	// Only the part after the last "$" counts: renamed and
	// namespace-qualified forms keep their constness.
	if i := strings.LastIndexByte(name, '$'); i >= 0 {
		name = name[i+1:]
		if name == "" {
			return false
		}
	}
	r := []rune(name)[0]
	return unicode.IsUpper(r) && name == strings.ToUpper(name)
}
