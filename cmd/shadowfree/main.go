// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The shadowfree command renames the declarations of a program so that
// no name shadows another, and prints the result.
// With no arguments and a terminal on stdin, it starts a
// read-rename-print loop (REPL).
package main // import "go.shadowfree.dev/cmd/shadowfree"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"go.shadowfree.dev/internal/config"
	"go.shadowfree.dev/rename"
	"go.shadowfree.dev/repl"
	"go.shadowfree.dev/syntax"
	"go.shadowfree.dev/uniqueid"
)

// flags
var (
	execprog    = flag.String("c", "", "rename program `prog`")
	configFile  = flag.String("config", "", "read settings from `file` (default "+config.DefaultFile+" if present)")
	strategy    = flag.String("strategy", config.Contextual, "naming strategy: contextual or unique")
	invert      = flag.Bool("invert", false, "undo contextual renaming instead")
	prefix      = flag.String("prefix", "", "sequence number prefix of the unique strategy (default \""+rename.DefaultPrefix+"\")")
	conv        = flag.String("convention", "default", "coding convention: default or google")
	removeConst = flag.Bool("remove_const", false, "clear the constant flag of renamed declarations")
	localsOnly  = flag.Bool("locals_only", false, "leave globals alone under the unique strategy")
	externs     = flag.String("externs", "", "comma-separated externs `files` declaring environment globals")
	report      = flag.String("report", "none", "print a rename report: none, json, or text")
	showAST     = flag.Bool("ast", false, "dump the parsed syntax tree")
	debug       = flag.Bool("debug", false, "log each rename")
	color       = flag.String("color", "auto", "color report headers: auto, always, or never")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("shadowfree: ")
	log.SetFlags(0)
	flag.Parse()

	logger := initLogger(*debug)

	cfg, err := loadConfig()
	if err != nil {
		log.Print(err)
		return 1
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Print(err)
		return 1
	}
	opts.Logger = logger
	switch *report {
	case "none", "json", "text":
	default:
		log.Printf("unknown report format %q", *report)
		return 1
	}

	ids := new(uniqueid.Supplier)
	s, err := cfg.NewStrategy(ids)
	if err != nil {
		log.Print(err)
		return 1
	}
	pass := func(f *syntax.File) (*rename.Report, error) {
		// Every item is numbered from zero.
		ids.Reset()
		if *invert {
			return rename.Invert(f, opts)
		}
		return rename.File(f, s, opts)
	}
	logger.WithFields(logrus.Fields{
		"strategy": cfg.Strategy,
		"invert":   *invert,
		"externs":  len(opts.Externs),
	}).Debug("configured")

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      interface{}
		)
		if *execprog != "" {
			// Rename provided program.
			filename = "cmdline"
			src = *execprog
		} else {
			// Rename specified file.
			filename = flag.Arg(0)
		}
		return process(filename, src, pass)
	case flag.NArg() == 0:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Println("Welcome to shadowfree (go.shadowfree.dev)")
			repl.REPL(pass, *report != "none")
			return 0
		}
		return process("<stdin>", os.Stdin, pass)
	default:
		log.Print("want at most one file name")
		return 1
	}
}

func initLogger(debug bool) logrus.FieldLogger {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &logrus.TextFormatter{}
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger.WithFields(logrus.Fields{
		"app": "shadowfree",
	})
}

// loadConfig reads the configuration file, if any, and applies the
// flags set on the command line over it.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := *configFile; path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	} else if c, err := config.Load(config.DefaultFile); err == nil {
		cfg = c
	} else if !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			cfg.Strategy = *strategy
		case "prefix":
			cfg.Prefix = *prefix
		case "convention":
			cfg.Convention = *conv
		case "remove_const":
			cfg.RemoveConst = *removeConst
		case "locals_only":
			cfg.LocalsOnly = *localsOnly
		case "externs":
			for _, file := range strings.Split(*externs, ",") {
				if file == "" {
					continue
				}
				// Flag paths are relative to the working directory.
				if abs, err := filepath.Abs(file); err == nil {
					file = abs
				}
				cfg.ExternsFiles = append(cfg.ExternsFiles, file)
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}

func process(filename string, src interface{}, pass repl.Pass) int {
	f, err := syntax.Parse(filename, src)
	if err != nil {
		repl.PrintError(err)
		return 1
	}
	if *showAST {
		repr.Println(f, repr.Indent("  "), repr.OmitEmpty(true))
	}
	rep, err := pass(f)
	if err != nil {
		repl.PrintError(err)
		return 1
	}
	if err := syntax.Fprint(os.Stdout, f); err != nil {
		log.Print(err)
		return 1
	}
	if *report != "none" {
		if err := printReport(os.Stdout, rep); err != nil {
			log.Print(err)
			return 1
		}
	}
	return 0
}

func printReport(w io.Writer, rep *rename.Report) error {
	data, err := rep.Encode(*report)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("// %d renames", len(rep.Renames))
	if useColor() {
		header = "\x1b[1;36m" + header + "\x1b[0m"
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", header, strings.TrimRight(string(data), "\n"))
	return err
}

func useColor() bool {
	switch *color {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
