// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The cinline command rewrites qualifying `inline` C functions into
// function-like macros, rewriting call sites to match.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cinline/cinline/internal/cliconfig"
	"github.com/cinline/cinline/internal/cpp"
	"github.com/cinline/cinline/internal/driver"
	"github.com/cinline/cinline/internal/trace"
)

const usage = `cinline: rewrite inline C functions into macros.

Usage: cinline [flags] file.c...

Flags:
`

func main() {
	if err := doMain(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s.\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}
}

func doMain() error {
	cfg := cliconfig.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "", 0)

	opts := driver.Options{
		CPP: cpp.Options{
			CC:          cfg.CC,
			IncludeDirs: cfg.IncludeDirs,
			Flags:       cfg.PreprocessorFlags(),
		},
		Strict:  cfg.Strict,
		Verbose: cfg.Verbose,
		Workers: cfg.Workers,
	}

	units, err := driver.Run(context.Background(), opts, args)
	if err != nil {
		return err
	}

	strictFailed := false
	var unitTraces []trace.UnitTrace
	for _, u := range units {
		if cfg.Verbose {
			for _, w := range u.Warnings {
				logger.Println(w)
			}
			for _, fn := range u.Trace.Functions {
				if fn.Verdict.Candidate {
					logger.Printf("%s: %s: candidate", u.Path, fn.Name)
				} else {
					logger.Printf("%s: %s: refused: %s", u.Path, fn.Name, fn.Verdict.Reason)
				}
			}
		}
		if len(u.StrictFailures) > 0 {
			strictFailed = true
			for _, name := range u.StrictFailures {
				logger.Printf("%s: %s: could not be classified as a macroization candidate", u.Path, name)
			}
		}
		unitTraces = append(unitTraces, u.Trace)

		if cfg.Write {
			if werr := os.WriteFile(u.Path, []byte(u.Output), 0o644); werr != nil {
				return fmt.Errorf("writing %s: %w", u.Path, werr)
			}
		} else {
			fmt.Print(u.Output)
		}
	}

	if cfg.TraceDir != "" {
		for _, ut := range unitTraces {
			if _, werr := trace.WriteUnit(cfg.TraceDir, ut); werr != nil {
				return werr
			}
		}
		if _, werr := trace.WriteSummary(cfg.TraceDir, unitTraces); werr != nil {
			return werr
		}
	}

	if strictFailed {
		return fmt.Errorf("one or more mandatory inline candidates could not be classified (-strict)")
	}
	return nil
}
