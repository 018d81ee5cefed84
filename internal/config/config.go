// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the optional YAML configuration of the
// shadowfree command.
//
// Example .shadowfree.yaml:
//
//	strategy: unique
//	prefix: local_
//	convention: google
//	remove_const: true
//	externs: [window, document]
//	externs_files: [externs/browser.js]
package config // import "go.shadowfree.dev/internal/config"

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go.shadowfree.dev/convention"
	"go.shadowfree.dev/rename"
	"go.shadowfree.dev/resolve"
	"go.shadowfree.dev/syntax"
	"go.shadowfree.dev/uniqueid"
)

// DefaultFile is the configuration read when none is named.
const DefaultFile = ".shadowfree.yaml"

// Strategy names.
const (
	Contextual = "contextual"
	Unique     = "unique"
)

// Config holds the settings of a run.
type Config struct {
	// Strategy is Contextual or Unique.
	Strategy string `yaml:"strategy,omitempty"`

	// Prefix precedes sequence numbers under the unique strategy.
	Prefix string `yaml:"prefix,omitempty"`

	// Convention names a coding convention: "default" or "google".
	Convention string `yaml:"convention,omitempty"`

	RemoveConst bool `yaml:"remove_const,omitempty"`
	LocalsOnly  bool `yaml:"locals_only,omitempty"`

	// Externs lists environment globals by name.
	Externs []string `yaml:"externs,omitempty"`

	// ExternsFiles lists source files whose global declarations are
	// environment globals. Relative paths are resolved against the
	// directory of the configuration file.
	ExternsFiles []string `yaml:"externs_files,omitempty"`

	dir string
}

// Default returns the configuration used in the absence of a file.
func Default() *Config {
	return &Config{Strategy: Contextual, Convention: "default"}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse parses configuration text. Unset fields take their default
// values. The path is used only in error messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate checks the configuration for unknown names.
func (c *Config) Validate() error {
	switch c.Strategy {
	case Contextual, Unique:
	default:
		return errors.Errorf("unknown strategy %q (want %s or %s)", c.Strategy, Contextual, Unique)
	}
	if _, err := convention.ByName(c.Convention); err != nil {
		return err
	}
	if c.Prefix != "" && !syntax.IsIdentifier("a"+c.Prefix+"0") {
		return errors.Errorf("prefix %q cannot form an identifier", c.Prefix)
	}
	for _, name := range c.Externs {
		if !syntax.IsIdentifier(name) {
			return errors.Errorf("extern %q is not an identifier", name)
		}
	}
	return nil
}

// ExternNames returns the listed externs followed by the globals
// declared in the externs files.
func (c *Config) ExternNames() ([]string, error) {
	names := append([]string(nil), c.Externs...)
	for _, file := range c.ExternsFiles {
		if !filepath.IsAbs(file) && c.dir != "" {
			file = filepath.Join(c.dir, file)
		}
		f, err := syntax.Parse(file, nil)
		if err != nil {
			return nil, errors.Wrap(err, "reading externs")
		}
		globals, err := resolve.Globals(f)
		if err != nil {
			return nil, errors.Wrap(err, "reading externs")
		}
		names = append(names, globals...)
	}
	return names, nil
}

// Options returns the renaming options of the configuration.
func (c *Config) Options() (*rename.Options, error) {
	conv, err := convention.ByName(c.Convention)
	if err != nil {
		return nil, err
	}
	externs, err := c.ExternNames()
	if err != nil {
		return nil, err
	}
	return &rename.Options{
		RemoveConstOnRename: c.RemoveConst,
		LocalsOnly:          c.LocalsOnly,
		Externs:             externs,
		Convention:          conv,
	}, nil
}

// NewStrategy returns the configured naming strategy. The unique
// strategy draws sequence numbers from ids.
func (c *Config) NewStrategy(ids *uniqueid.Supplier) (rename.Strategy, error) {
	switch c.Strategy {
	case Contextual:
		return rename.NewContextual(), nil
	case Unique:
		conv, err := convention.ByName(c.Convention)
		if err != nil {
			return nil, err
		}
		return rename.NewGlobalUnique(ids, conv, c.Prefix), nil
	}
	return nil, errors.Errorf("unknown strategy %q", c.Strategy)
}
