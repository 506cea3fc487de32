// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver implements the orchestration of §4.7: running the
// preprocessor, splitting includes, parsing, subtracting header-contributed
// declarations, classifying, rewriting, and re-serializing one translation
// unit — plus the §5 batch-mode supplement that fans independent units out
// across goroutines sharing one rename pool.
package driver

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/cinline/cinline/internal/astdiff"
	"github.com/cinline/cinline/internal/cast"
	"github.com/cinline/cinline/internal/classify"
	"github.com/cinline/cinline/internal/cpp"
	"github.com/cinline/cinline/internal/ctree"
	"github.com/cinline/cinline/internal/includesplit"
	"github.com/cinline/cinline/internal/printer"
	"github.com/cinline/cinline/internal/rename"
	"github.com/cinline/cinline/internal/rewrite/caller"
	"github.com/cinline/cinline/internal/rewrite/nonvoid"
	"github.com/cinline/cinline/internal/rewrite/voidfun"
	"github.com/cinline/cinline/internal/trace"
)

// Options configures a run of the pipeline, batch-wide.
type Options struct {
	CPP     cpp.Options
	Strict  bool // exit non-zero (via Unit.StrictFailures) if any inline function is refused classification
	Verbose bool
	Workers int // concurrent translation units; <=1 means sequential
}

// Unit is the outcome of processing one translation unit.
type Unit struct {
	Path           string
	Output         string
	Trace          trace.UnitTrace
	Warnings       []string
	StrictFailures []string // inline function names refused classification, when Strict is set
}

// ProcessUnit runs the full single-unit pipeline of §4.7 on path, using
// pool for every fresh name this unit's α-rename and caller rewrite need.
// It never mutates state shared with another unit beyond pool itself,
// which is already safe for concurrent use.
func ProcessUnit(ctx context.Context, pool *rename.Pool, opts Options, path string) (*Unit, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("driver: reading %s: %w", path, err)
	}

	pre, err := cpp.Run(ctx, opts.CPP, path)
	if err != nil {
		return nil, xerrors.Errorf("driver: preprocessing %s: %w", path, err)
	}

	split := includesplit.Split(pre.Text, string(original), path)

	parser, err := ctree.NewParser()
	if err != nil {
		return nil, xerrors.Errorf("driver: constructing parser: %w", err)
	}

	primary, err := parser.Parse(original)
	if err != nil {
		return nil, xerrors.Errorf("driver: parsing %s: %w", path, err)
	}

	if strings.TrimSpace(split.HeaderCode) != "" {
		header, herr := parser.Parse([]byte(split.HeaderCode))
		if herr != nil {
			return nil, xerrors.Errorf("driver: parsing header-contributed code for %s: %w", path, herr)
		}
		astdiff.Subtract(primary, header)
	}

	unitTrace, strictFailures := RewriteUnit(primary, pool, opts.Strict)
	unitTrace.Path = path

	var out strings.Builder
	for _, inc := range split.Includes {
		out.WriteString(inc)
		out.WriteString("\n")
	}
	if len(split.Includes) > 0 {
		out.WriteString("\n")
	}
	out.WriteString(printer.Print(primary))

	return &Unit{
		Path:           path,
		Output:         out.String(),
		Trace:          unitTrace,
		Warnings:       pre.Warnings,
		StrictFailures: strictFailures,
	}, nil
}

// RewriteUnit runs the classify/rewrite portion of §4.7 (steps 1-4) over an
// already-parsed translation unit, in place, sharing pool for every fresh
// name it mints. It is split out from ProcessUnit so the rewrite pipeline
// itself can be exercised without shelling out to a preprocessor.
func RewriteUnit(tu *cast.TranslationUnit, pool *rename.Pool, strict bool) (trace.UnitTrace, []string) {
	unitTrace := trace.UnitTrace{}
	var strictFailures []string
	registry := make(map[string]cast.Type)
	var candidates []*cast.FuncDef

	for _, d := range tu.Decls {
		fn, ok := d.(*cast.FuncDef)
		if !ok {
			continue
		}
		verdict := classify.Classify(fn)
		unitTrace.Classified(fn.Name, verdict)
		if !verdict.Candidate {
			if strict && fn.Inline {
				strictFailures = append(strictFailures, fn.Name)
			}
			continue
		}
		candidates = append(candidates, fn)
		if !fn.ReturnsVoid() {
			originalReturnType := nonvoid.Rewrite(fn)
			registry[fn.Name] = originalReturnType
			unitTrace.Record(fn.Name, "rewritten to out-parameter convention (non-void definition)")
		}
	}

	for _, d := range tu.Decls {
		fn, ok := d.(*cast.FuncDef)
		if !ok {
			continue
		}
		caller.Rewrite(fn, registry, pool)
	}
	for name := range registry {
		unitTrace.Record(name, "call sites rewritten to out-parameter convention")
	}

	for _, fn := range candidates {
		voidfun.Rewrite(fn, pool)
		unitTrace.Record(fn.Name, "macroized")
	}

	return unitTrace, strictFailures
}

// Run processes every path, bounded by opts.Workers concurrent units, all
// sharing one rename pool so fresh names stay collision-free across the
// whole batch (§5 supplement). Results are returned in input order
// regardless of completion order.
func Run(ctx context.Context, opts Options, paths []string) ([]*Unit, error) {
	pool := rename.NewPool(nil)
	results := make([]*Unit, len(paths))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			unit, err := ProcessUnit(gctx, pool, opts, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = unit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
