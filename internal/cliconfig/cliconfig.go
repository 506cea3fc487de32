// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cliconfig centralizes cmd/cinline's flag definitions, mirroring
// how the teacher's cmd/eg and cmd/gorename keep their own flag sets in
// package-level vars rather than scattering flag.* calls through main.
package cliconfig

import "flag"

// repeatedFlag implements flag.Value for a flag that may be given more
// than once (-I, -D, -U), accumulating each occurrence in order.
type repeatedFlag struct {
	values *[]string
}

func (r repeatedFlag) String() string {
	if r.values == nil {
		return ""
	}
	return ""
}

func (r repeatedFlag) Set(v string) error {
	*r.values = append(*r.values, v)
	return nil
}

// Config holds every flag cmd/cinline accepts.
type Config struct {
	IncludeDirs []string // -I, repeatable
	Defines     []string // -D, repeatable, forwarded verbatim
	Undefines   []string // -U, repeatable, forwarded verbatim
	CC          string   // -cc
	TraceDir    string   // -trace
	Workers     int      // -j
	Write       bool     // -w
	Verbose     bool     // -v
	Strict      bool     // -strict
}

// Register binds Config's fields to fs (normally flag.CommandLine) and
// returns the Config the parsed flags will populate.
func Register(fs *flag.FlagSet) *Config {
	cfg := &Config{}
	fs.Var(repeatedFlag{&cfg.IncludeDirs}, "I", "extra include directory (repeatable)")
	fs.Var(repeatedFlag{&cfg.Defines}, "D", "preprocessor -D definition, forwarded verbatim (repeatable)")
	fs.Var(repeatedFlag{&cfg.Undefines}, "U", "preprocessor -U undefinition, forwarded verbatim (repeatable)")
	fs.StringVar(&cfg.CC, "cc", "cc", "C compiler driver used for preprocessing")
	fs.StringVar(&cfg.TraceDir, "trace", "", "directory to write a per-unit record trace and HTML summary into")
	fs.IntVar(&cfg.Workers, "j", 1, "number of translation units to process concurrently")
	fs.BoolVar(&cfg.Write, "w", false, "rewrite input files in place (default: print to standard output)")
	fs.BoolVar(&cfg.Verbose, "v", false, "print verbose per-function classification diagnostics")
	fs.BoolVar(&cfg.Strict, "strict", false, "exit non-zero if any inline candidate cannot be classified")
	return cfg
}

// PreprocessorFlags assembles every -D flag, then every -U flag, each group
// in the order it was given, the shape internal/cpp.Options.Flags expects.
func (c *Config) PreprocessorFlags() []string {
	var flags []string
	for _, d := range c.Defines {
		flags = append(flags, "-D"+d)
	}
	for _, u := range c.Undefines {
		flags = append(flags, "-U"+u)
	}
	return flags
}
