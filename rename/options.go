// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rename

import (
	"io"

	"github.com/sirupsen/logrus"

	"go.shadowfree.dev/convention"
)

const (
	// Separator joins an original name to the suffix that makes it unique.
	Separator = "$jscomp$"

	// ExportPrefix is prepended to the base of a name that the coding
	// convention considers exported, so the unique form is not.
	ExportPrefix = "JSCompiler_"

	// DefaultPrefix precedes the sequence number of a globally unique name.
	DefaultPrefix = "unique_"
)

// Options configures a renaming or inversion pass.
// The zero value is ready to use.
type Options struct {
	// RemoveConstOnRename clears the non-reassignable flag of every
	// declaration that receives a new name.
	RemoveConstOnRename bool

	// LocalsOnly leaves global declarations alone under the
	// globally unique strategy.
	LocalsOnly bool

	// Externs lists global names provided by the environment. They are
	// never renamed and never chosen as a new name.
	Externs []string

	// Convention decides which names are exported or constant by
	// spelling. Nil means convention.Default.
	Convention convention.Convention

	// Logger receives a Debug entry for every rename. Nil discards them.
	Logger logrus.FieldLogger
}

func (opts *Options) convention() convention.Convention {
	if opts.Convention == nil {
		return convention.Default
	}
	return opts.Convention
}

func (opts *Options) logger() logrus.FieldLogger {
	if opts.Logger != nil {
		return opts.Logger
	}
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func (opts *Options) isExtern() func(string) bool {
	if len(opts.Externs) == 0 {
		return nil
	}
	externs := make(map[string]bool, len(opts.Externs))
	for _, name := range opts.Externs {
		externs[name] = true
	}
	return func(name string) bool { return externs[name] }
}
