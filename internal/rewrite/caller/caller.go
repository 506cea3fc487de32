// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package caller implements the caller rewrite of §4.6: splitting combined
// declarations so every block starts from a clean slate of bare
// declarations, then lowering calls to macroized non-void functions into
// the out-parameter convention via the comma operator.
package caller

import (
	"github.com/cinline/cinline/internal/cast"
	"github.com/cinline/cinline/internal/rename"
	"github.com/cinline/cinline/internal/shadow"
)

// Rewrite rewrites every call inside fn's body that targets a function
// listed in registry (the pre-rewrite return types of the non-void
// functions the non-void rewrite already turned into the out-parameter
// convention, keyed by their original name) into the comma-operator form
// that convention requires. registry is built once per translation unit by
// the driver from the values nonvoid.Rewrite returned.
//
// fn's own body is decl-split first (§4.6 phase 1), since a macro
// invocation that needs a fresh temporary can only be hoisted cleanly to
// the top of a block whose declarations are already bare — an initializer
// expression that itself contains a call to rewrite would have nowhere
// clean to attach the hoisted declaration.
func Rewrite(fn *cast.FuncDef, registry map[string]cast.Type, pool *rename.Pool) {
	if fn.Body == nil {
		return
	}
	splitDecls(fn.Body)

	seed := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		seed[i] = p.Name
	}
	lowerCalls(fn.Body, registry, shadow.New(seed...), pool)
}

// splitDecls rewrites every Compound reachable from root (root included) so
// that a `T x = E;` declaration becomes a bare `T x;` followed immediately
// by `x = E;`, in the position the declaration used to occupy. Declarations
// without an initializer are left as-is.
func splitDecls(root cast.Node) {
	cast.Inspect(root, func(n cast.Node) bool {
		comp, ok := n.(*cast.Compound)
		if !ok {
			return true
		}
		items := make([]cast.Stmt, 0, len(comp.Items)+1)
		for _, item := range comp.Items {
			decl, ok := item.(*cast.Decl)
			if !ok || decl.Init == nil {
				items = append(items, item)
				continue
			}
			init := decl.Init
			decl.Init = nil
			items = append(items, decl, &cast.ExprStmt{X: &cast.Assign{
				Op:  "=",
				LHS: &cast.Ident{Name: decl.Name},
				RHS: init,
			}})
		}
		comp.Items = items
		return true
	})
}

// lowerCalls walks root, rewriting qualifying calls in place. fnBody is the
// function's own top-level block: fresh temporaries minted for a call that
// isn't the direct RHS of a simple assignment are hoisted there, per
// §4.6's "otherwise" case, rather than to whatever inner block the call
// happened to appear in — a temporary declared inside a nested block the
// call's own arguments might jump out of (via a nested call's comma
// expression) would not be in scope everywhere it's read.
func lowerCalls(fnBody *cast.Compound, registry map[string]cast.Type, seed *shadow.Set, pool *rename.Pool) {
	stack := []*shadow.Set{seed}
	var hoisted []cast.Stmt

	pre := func(c *cast.Cursor) bool {
		switch n := c.Node().(type) {
		case *cast.Compound:
			stack = append(stack, stack[len(stack)-1].Clone())

		case *cast.Decl:
			stack[len(stack)-1].Add(n.Name)

		case *cast.Assign:
			if n.Op != "=" {
				break
			}
			lhs, ok := n.LHS.(*cast.Ident)
			if !ok {
				break
			}
			call, ok := n.RHS.(*cast.Call)
			if !ok || !qualifies(call, registry, stack[len(stack)-1]) {
				break
			}
			prependAddrArg(call, &cast.Ident{Name: lhs.Name})
			call.Lowered = true
			c.Replace(&cast.ExprList{Elems: []cast.Expr{call, &cast.Ident{Name: lhs.Name}}})

		case *cast.Call:
			if !qualifies(n, registry, stack[len(stack)-1]) {
				break
			}
			tmp := pool.Fresh()
			declType := cast.CopyType(registry[calleeName(n)])
			cast.SetLeafName(declType, tmp)
			hoisted = append(hoisted, &cast.Decl{Name: tmp, Type: declType})

			prependAddrArg(n, &cast.Ident{Name: tmp})
			n.Lowered = true
			c.Replace(&cast.ExprList{Elems: []cast.Expr{n, &cast.Ident{Name: tmp}}})
		}
		return true
	}

	post := func(c *cast.Cursor) bool {
		if _, ok := c.Node().(*cast.Compound); ok {
			stack = stack[:len(stack)-1]
		}
		return true
	}

	cast.Apply(fnBody, pre, post)
	fnBody.Items = append(hoisted, fnBody.Items...)
}

// qualifies reports whether call is a not-yet-rewritten call to a name
// registry knows how to out-parameter-convert, and that name is not
// currently shadowed by a local declaration.
func qualifies(call *cast.Call, registry map[string]cast.Type, shadowed *shadow.Set) bool {
	if call.Lowered {
		return false
	}
	name := calleeName(call)
	if name == "" || shadowed.Has(name) {
		return false
	}
	_, ok := registry[name]
	return ok
}

func calleeName(call *cast.Call) string {
	if id, ok := call.Callee.(*cast.Ident); ok {
		return id.Name
	}
	return ""
}

func prependAddrArg(call *cast.Call, target cast.Expr) {
	addr := &cast.Unary{Op: "&", X: target}
	call.Args = append([]cast.Expr{addr}, call.Args...)
}
