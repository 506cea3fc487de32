// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpp is the preprocessor adapter of §6: it shells out to a
// configurable C compiler driver to produce the `#line`-annotated
// preprocessed text the rest of the pipeline consumes.
package cpp

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"golang.org/x/xerrors"
)

//go:embed stubheaders
var stubFS embed.FS

// minVersion is the GCC-style version this tool's stub headers were
// written against. The check against it is advisory only: `-dumpversion`
// output is not semver (clang and gcc diverge further still), so a parse
// failure or an older-looking version never aborts the pipeline — it only
// produces a warning the CLI can surface with -v.
const minVersion = "v4.0.0"

// Options configures a preprocessor invocation.
type Options struct {
	CC          string   // compiler driver, default "cc"
	IncludeDirs []string // extra -I paths, forwarded after the embedded stub headers
	Flags       []string // extra -D/-U/-I flags, forwarded verbatim and last
}

// Result is the preprocessor's output plus any advisory warnings.
type Result struct {
	Text     string
	Warnings []string
}

// Run preprocesses path with -E -U__GNUC__ and an include path pointing at
// the embedded stub headers (so opaque compiler builtins resolve to the
// stand-ins in stubheaders), per §6.
func Run(ctx context.Context, opts Options, path string) (*Result, error) {
	cc := opts.CC
	if cc == "" {
		cc = "cc"
	}

	stubDir, cleanup, err := materializeStubHeaders()
	if err != nil {
		return nil, xerrors.Errorf("cpp: materializing stub headers: %w", err)
	}
	defer cleanup()

	var warnings []string
	if v, verr := dumpVersion(ctx, cc); verr == nil {
		if warn := checkVersion(cc, v); warn != "" {
			warnings = append(warnings, warn)
		}
	} else {
		warnings = append(warnings, fmt.Sprintf("cpp: could not determine %s version: %v", cc, verr))
	}

	args := []string{"-E", "-U__GNUC__", "-I", stubDir}
	for _, inc := range opts.IncludeDirs {
		args = append(args, "-I", inc)
	}
	args = append(args, opts.Flags...)
	args = append(args, path)

	cmd := exec.CommandContext(ctx, cc, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, xerrors.Errorf("cpp: %s %s: %w: %s", cc, strings.Join(args, " "), err, stderr.String())
	}

	return &Result{Text: stdout.String(), Warnings: warnings}, nil
}

func dumpVersion(ctx context.Context, cc string) (string, error) {
	out, err := exec.CommandContext(ctx, cc, "-dumpversion").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// checkVersion coerces a raw "-dumpversion" string (e.g. "11.4.0") into a
// form golang.org/x/mod/semver accepts and compares it against minVersion.
func checkVersion(cc, raw string) string {
	coerced := "v" + raw
	if !semver.IsValid(coerced) {
		if major := strings.SplitN(raw, ".", 2)[0]; major != "" {
			coerced = "v" + major + ".0.0"
		}
	}
	if !semver.IsValid(coerced) {
		return ""
	}
	if semver.Compare(coerced, minVersion) < 0 {
		return fmt.Sprintf("cpp: %s reports version %s, older than %s; stub headers may not match its builtins",
			cc, raw, strings.TrimPrefix(minVersion, "v"))
	}
	return ""
}

// materializeStubHeaders copies the embedded stub headers out to a real
// directory on disk: exec needs an actual -I path, and embed.FS is not
// addressable by the filesystem the child process sees.
func materializeStubHeaders() (dir string, cleanup func(), err error) {
	tmp, err := os.MkdirTemp("", "cinline-stubheaders-")
	if err != nil {
		return "", nil, err
	}
	entries, err := stubFS.ReadDir("stubheaders")
	if err != nil {
		os.RemoveAll(tmp)
		return "", nil, err
	}
	for _, e := range entries {
		data, rerr := stubFS.ReadFile(filepath.Join("stubheaders", e.Name()))
		if rerr != nil {
			os.RemoveAll(tmp)
			return "", nil, rerr
		}
		if werr := os.WriteFile(filepath.Join(tmp, e.Name()), data, 0o644); werr != nil {
			os.RemoveAll(tmp)
			return "", nil, werr
		}
	}
	return tmp, func() { os.RemoveAll(tmp) }, nil
}
