// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"reflect"
	"testing"
)

// TestGrammarTags checks that every grammar field is annotated with a
// conventional parser:"..." struct tag.
func TestGrammarTags(t *testing.T) {
	seen := make(map[reflect.Type]bool)
	var visit func(typ reflect.Type)
	visit = func(typ reflect.Type) {
		for typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice {
			typ = typ.Elem()
		}
		if typ.Kind() != reflect.Struct || seen[typ] || typ.PkgPath() != reflect.TypeOf(gProgram{}).PkgPath() {
			return
		}
		seen[typ] = true
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if field.Tag == "" {
				continue
			}
			if grammar, ok := field.Tag.Lookup("parser"); !ok || grammar == "" {
				t.Errorf("%s.%s: tag %s is not of the form parser:\"...\"", typ.Name(), field.Name, field.Tag)
			}
			visit(field.Type)
		}
	}
	visit(reflect.TypeOf(gProgram{}))
	if len(seen) < 10 {
		t.Errorf("visited only %d grammar types", len(seen))
	}
}
