// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package voidfun implements the void macroizer of §4.4: α-rename of
// parameters followed by turning a (now void-returning) candidate into the
// body of a function-like macro.
package voidfun

import (
	"github.com/cinline/cinline/internal/cast"
	"github.com/cinline/cinline/internal/rename"
)

// Rewrite α-renames fn's parameters and every local declaration reachable
// from its body, under the scope-stacked discipline described in §3 and
// §4.4, then marks fn.Macroized so the printer renders it as a
// `#define NAME(p1, ..., pn) do { ... } while (0)` instead of a function
// definition.
//
// fn's own parameter declarator names are left untouched: they are the
// macro's formal parameter list, and macro parameters are plain textual
// placeholders, not bindings a caller can collide with. What gets renamed
// is every use of those names (and every other local the body declares)
// inside the body, so the macro's internal identifiers are globally unique
// and cannot be captured by whatever expression a caller substitutes for a
// parameter. A declaration line `T alias = p;` is inserted at the top of
// the body for each renamed scalar parameter p, mapping the placeholder
// name onto the body's internal alias and ensuring the caller's argument
// expression is evaluated exactly once.
//
// fn must already be void-returning (either originally, or after
// nonvoid.Rewrite) — the driver only calls Rewrite on classified
// candidates once every non-void definition has been lowered.
func Rewrite(fn *cast.FuncDef, pool *rename.Pool) {
	table := rename.NewTable(pool)

	type renamedParam struct {
		orig  string
		alias string
		typ   cast.Type
	}
	var renamed []renamedParam

	for _, p := range fn.Params {
		if cast.IsFuncOrArray(p.Type) {
			table.RegisterFixed(p.Name)
			continue
		}
		alias := table.Declare(p.Name)
		renamed = append(renamed, renamedParam{orig: p.Name, alias: alias, typ: p.Type})
	}

	if fn.Body != nil {
		renameBody(fn.Body, table)

		for i := len(renamed) - 1; i >= 0; i-- {
			rp := renamed[i]
			declType := cast.CopyType(rp.typ)
			cast.SetLeafName(declType, rp.alias)
			decl := &cast.Decl{
				Name: rp.alias,
				Type: declType,
				Init: &cast.Ident{Name: rp.orig},
			}
			fn.Body.Items = append([]cast.Stmt{decl}, fn.Body.Items...)
		}
	}

	fn.Macroized = true
}

// renameBody walks body's block items under table, cloning the table on
// entry to every nested compound statement and restoring it on exit, so a
// shadowing declaration in an inner scope gets its own fresh alias without
// disturbing the enclosing one's. The outermost body is not itself cloned
// into: its declarations share table directly with the parameter bindings,
// matching the scope the function's own top-level locals occupy relative
// to its parameters.
func renameBody(body *cast.Compound, initTable *rename.Table) {
	stack := []*rename.Table{initTable}

	pre := func(c *cast.Cursor) bool {
		switch n := c.Node().(type) {
		case *cast.Compound:
			stack = append(stack, stack[len(stack)-1].Clone())
		case *cast.Decl:
			cur := stack[len(stack)-1]
			alias := cur.Declare(n.Name)
			n.Name = alias
			cast.SetLeafName(n.Type, alias)
		case *cast.Ident:
			cur := stack[len(stack)-1]
			n.Name = cur.Alias(n.Name)
		}
		return true
	}
	post := func(c *cast.Cursor) bool {
		if _, ok := c.Node().(*cast.Compound); ok {
			stack = stack[:len(stack)-1]
		}
		return true
	}

	for i, item := range body.Items {
		body.Items[i] = cast.Apply(item, pre, post).(cast.Stmt)
	}
}
