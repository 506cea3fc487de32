// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace implements the record-trace supplement of §6: a
// per-translation-unit Markdown log of classification verdicts and
// rewrite phases, plus a goldmark-rendered HTML summary of a whole batch.
// It mirrors the original implementation's recorder module (per-phase
// file_record/fun_record calls), but renders a single human-readable
// artifact instead of raw per-phase dumps.
package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/cinline/cinline/internal/classify"
)

// FuncTrace is one function definition's classification verdict (candidate
// or refused) and the rewrite phases applied to it, in order.
type FuncTrace struct {
	Name    string
	Verdict classify.Verdict
	Phases  []string
}

// UnitTrace is the record for one translation unit.
type UnitTrace struct {
	Path      string
	Functions []FuncTrace
}

// Record appends a phase line to the trace for the named function. Callers
// (the driver) call this once per pass that actually touches a candidate.
func (u *UnitTrace) Record(name, phase string) {
	for i := range u.Functions {
		if u.Functions[i].Name == name {
			u.Functions[i].Phases = append(u.Functions[i].Phases, phase)
			return
		}
	}
}

// Classified registers a function's classification verdict, creating its
// entry.
func (u *UnitTrace) Classified(name string, v classify.Verdict) {
	u.Functions = append(u.Functions, FuncTrace{Name: name, Verdict: v})
}

// Markdown renders u as a Markdown section.
func (u UnitTrace) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", u.Path)
	if len(u.Functions) == 0 {
		b.WriteString("_no inline candidates found_\n\n")
		return b.String()
	}
	for _, fn := range u.Functions {
		fmt.Fprintf(&b, "### `%s`\n\n", fn.Name)
		if fn.Verdict.Candidate {
			b.WriteString("- classification: candidate\n")
		} else {
			fmt.Fprintf(&b, "- classification: refused (%s)\n", fn.Verdict.Reason)
		}
		for _, phase := range fn.Phases {
			fmt.Fprintf(&b, "- %s\n", phase)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteUnit writes u's Markdown to dir, named after the base of u.Path
// with a .md extension, and returns the path written.
func WriteUnit(dir string, u UnitTrace) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("trace: creating %s: %w", dir, err)
	}
	name := strings.TrimSuffix(filepath.Base(u.Path), filepath.Ext(u.Path)) + ".md"
	out := filepath.Join(dir, name)
	if err := os.WriteFile(out, []byte(u.Markdown()), 0o644); err != nil {
		return "", fmt.Errorf("trace: writing %s: %w", out, err)
	}
	return out, nil
}

// WriteSummary concatenates every unit's Markdown, in order, renders it to
// HTML with goldmark, and writes dir/summary.html.
func WriteSummary(dir string, units []UnitTrace) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("trace: creating %s: %w", dir, err)
	}
	var md strings.Builder
	md.WriteString("# cinline rewrite trace\n\n")
	for _, u := range units {
		md.WriteString(u.Markdown())
	}

	var html strings.Builder
	if err := goldmark.Convert([]byte(md.String()), &html); err != nil {
		return "", fmt.Errorf("trace: rendering summary markdown: %w", err)
	}

	out := filepath.Join(dir, "summary.html")
	if err := os.WriteFile(out, []byte(html.String()), 0o644); err != nil {
		return "", fmt.Errorf("trace: writing %s: %w", out, err)
	}
	return out, nil
}
