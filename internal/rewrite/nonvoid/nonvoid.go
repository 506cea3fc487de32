// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nonvoid implements the non-void definition rewrite of §4.5: the
// out-parameter convention that lets a non-void-returning inline function
// be macroized without losing its use as an expression.
package nonvoid

import "github.com/cinline/cinline/internal/cast"

const retvalName = "retval"

// Rewrite mutates fn in place: it prepends a `T *retval` parameter, changes
// fn's return type to void, and turns every `return E;` into
// `*retval = E; return;`. It returns a deep copy of fn's original
// (pre-rewrite) return type, since the driver needs it both to build the
// retval parameter type here and to remember, per §4.7 step 3, "the
// pre-rewrite identities of the non-void functions so their names and
// return types are recoverable" for the caller rewrite.
//
// Rewrite is a no-op (and returns nil) if fn is already void or has
// already been lowered once.
func Rewrite(fn *cast.FuncDef) cast.Type {
	if fn.Lowered || fn.ReturnsVoid() {
		return nil
	}

	originalReturnType := cast.CopyType(fn.ReturnType)

	retvalType := &cast.PtrDecl{Inner: cast.CopyType(fn.ReturnType)}
	cast.SetLeafName(retvalType, retvalName)
	retvalParam := &cast.ParamDecl{Name: retvalName, Type: retvalType}
	fn.Params = append([]*cast.ParamDecl{retvalParam}, fn.Params...)

	fn.ReturnType = &cast.TypeDecl{Specifiers: []string{"void"}}

	if fn.Body != nil {
		fn.Body = rewriteReturns(fn.Body).(*cast.Compound)
	}
	fn.Lowered = true

	return originalReturnType
}

// rewriteReturns walks s depth-first and turns every `return E;` (E
// non-nil) into the two-statement sequence `*retval = E; return;`. A bare
// `return;` is left alone. When the Return sat directly in a Compound's
// item list, the two replacement statements are spliced in at that
// position; when it was the sole statement of a single-statement slot
// (an if/while/for/do body, or a label), it is wrapped in a fresh Compound
// so both replacement statements have somewhere to live.
//
// Traversal order matters here: the bare `return;` appended after an
// assignment must never itself be revisited as if it were a new candidate
// for rewriting, or the pass would recurse forever. Returning the node
// unchanged whenever X is nil guarantees that.
func rewriteReturns(s cast.Stmt) cast.Stmt {
	switch n := s.(type) {
	case *cast.Return:
		if n.X == nil {
			return n
		}
		assign := &cast.ExprStmt{X: &cast.Assign{
			Op:  "=",
			LHS: &cast.Unary{Op: "*", X: &cast.Ident{Name: retvalName}},
			RHS: n.X,
		}}
		return &cast.Compound{Items: []cast.Stmt{assign, &cast.Return{}}}

	case *cast.Compound:
		items := make([]cast.Stmt, 0, len(n.Items))
		for _, item := range n.Items {
			if ret, ok := item.(*cast.Return); ok && ret.X != nil {
				wrapped := rewriteReturns(ret).(*cast.Compound)
				items = append(items, wrapped.Items...)
				continue
			}
			items = append(items, rewriteReturns(item))
		}
		n.Items = items
		return n

	case *cast.If:
		n.Then = rewriteReturns(n.Then)
		if n.Else != nil {
			n.Else = rewriteReturns(n.Else)
		}
		return n
	case *cast.While:
		n.Body = rewriteReturns(n.Body)
		return n
	case *cast.DoWhile:
		n.Body = rewriteReturns(n.Body)
		return n
	case *cast.For:
		n.Body = rewriteReturns(n.Body)
		return n
	case *cast.Switch:
		n.Body = rewriteReturns(n.Body)
		return n
	case *cast.Label:
		n.Stmt = rewriteReturns(n.Stmt)
		return n
	default:
		return s
	}
}
