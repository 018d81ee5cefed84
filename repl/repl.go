// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/rename/print loop.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// If an input line parses as a program, the REPL renames it and prints
// the result. Otherwise the REPL reads lines until the input parses or
// a blank line is entered, in which case it reports the parse error.
package repl // import "go.shadowfree.dev/repl"

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"go.shadowfree.dev/rename"
	"go.shadowfree.dev/resolve"
	"go.shadowfree.dev/syntax"
)

// A Pass transforms one parsed item in place.
type Pass func(f *syntax.File) (*rename.Report, error)

// REPL executes a read, rename, print loop on the terminal.
// If verbose is set, each rename is listed after the program.
func REPL(pass Pass, verbose bool) {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, pass, verbose, os.Stdout, os.Stderr); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// lineReader is the subset of *readline.Instance used by rep.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// rep reads, renames, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Parse and resolve errors are printed.
func rep(rl lineReader, pass Pass, verbose bool, stdout, stderr io.Writer) error {
	rl.SetPrompt(">>> ")
	defer rl.SetPrompt(">>> ")

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF && strings.TrimSpace(buf.String()) != "" {
				// Report the incomplete item before quitting.
				if _, perr := syntax.Parse("<stdin>", buf.String()); perr != nil {
					printError(stderr, perr)
				}
			}
			return err
		}
		rl.SetPrompt("... ")
		blank := strings.TrimSpace(line) == ""
		if blank && buf.Len() == 0 {
			return nil
		}
		buf.WriteString(line)
		buf.WriteByte('\n')

		f, err := syntax.Parse("<stdin>", buf.String())
		if err != nil {
			if blank {
				printError(stderr, err)
				return nil
			}
			continue // read more
		}

		report, err := pass(f)
		if err != nil {
			printError(stderr, err)
			return nil
		}
		fmt.Fprint(stdout, syntax.Format(f))
		if verbose {
			for _, r := range report.Renames {
				fmt.Fprintf(stdout, "# %s\n", r)
			}
		}
		return nil
	}
}

// PrintError prints the error to stderr,
// one line per declaration if it is a resolver error.
func PrintError(err error) { printError(os.Stderr, err) }

func printError(w io.Writer, err error) {
	if list, ok := err.(resolve.ErrorList); ok {
		for _, e := range list {
			fmt.Fprintln(w, e)
		}
		return
	}
	fmt.Fprintln(w, err)
}
