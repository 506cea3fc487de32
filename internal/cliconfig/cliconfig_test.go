// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliconfig_test

import (
	"flag"
	"reflect"
	"testing"

	"github.com/cinline/cinline/internal/cliconfig"
)

func TestRegisterParsesRepeatedFlags(t *testing.T) {
	fs := flag.NewFlagSet("cinline", flag.ContinueOnError)
	cfg := cliconfig.Register(fs)

	args := []string{
		"-I", "/usr/include",
		"-I", "vendor/include",
		"-D", "DEBUG=1",
		"-D", "FEATURE",
		"-U", "NDEBUG",
		"-cc", "clang",
		"-j", "4",
		"-w",
		"-strict",
		"file.c",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if want := []string{"/usr/include", "vendor/include"}; !reflect.DeepEqual(cfg.IncludeDirs, want) {
		t.Fatalf("IncludeDirs = %v, want %v", cfg.IncludeDirs, want)
	}
	if want := []string{"DEBUG=1", "FEATURE"}; !reflect.DeepEqual(cfg.Defines, want) {
		t.Fatalf("Defines = %v, want %v", cfg.Defines, want)
	}
	if want := []string{"NDEBUG"}; !reflect.DeepEqual(cfg.Undefines, want) {
		t.Fatalf("Undefines = %v, want %v", cfg.Undefines, want)
	}
	if cfg.CC != "clang" {
		t.Fatalf("CC = %q, want %q", cfg.CC, "clang")
	}
	if cfg.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", cfg.Workers)
	}
	if !cfg.Write || !cfg.Strict {
		t.Fatalf("Write/Strict not set from -w/-strict")
	}
	if got := fs.Args(); !reflect.DeepEqual(got, []string{"file.c"}) {
		t.Fatalf("remaining args = %v, want [file.c]", got)
	}
}

func TestRegisterDefaults(t *testing.T) {
	fs := flag.NewFlagSet("cinline", flag.ContinueOnError)
	cfg := cliconfig.Register(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.CC != "cc" {
		t.Fatalf("default CC = %q, want %q", cfg.CC, "cc")
	}
	if cfg.Workers != 1 {
		t.Fatalf("default Workers = %d, want 1", cfg.Workers)
	}
	if cfg.Write || cfg.Verbose || cfg.Strict {
		t.Fatalf("boolean flags should default false")
	}
}

func TestPreprocessorFlagsOrdersDefinesBeforeUndefines(t *testing.T) {
	fs := flag.NewFlagSet("cinline", flag.ContinueOnError)
	cfg := cliconfig.Register(fs)
	if err := fs.Parse([]string{"-D", "A", "-U", "B", "-D", "C=1"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{"-DA", "-DC=1", "-UB"}
	if got := cfg.PreprocessorFlags(); !reflect.DeepEqual(got, want) {
		t.Fatalf("PreprocessorFlags() = %v, want %v", got, want)
	}
}

func TestPreprocessorFlagsEmptyWhenUnset(t *testing.T) {
	fs := flag.NewFlagSet("cinline", flag.ContinueOnError)
	cfg := cliconfig.Register(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cfg.PreprocessorFlags(); len(got) != 0 {
		t.Fatalf("PreprocessorFlags() = %v, want empty", got)
	}
}
