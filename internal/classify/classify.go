// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classify implements the inline classifier of §4.3: deciding
// which function definitions are candidates for macroization.
package classify

import "github.com/cinline/cinline/internal/cast"

// Verdict records why a function is or isn't a macroization candidate, for
// the record trace (§6 supplement) and for -v diagnostics.
type Verdict struct {
	Candidate bool
	Reason    string // empty when Candidate is true
}

// Classify reports whether fn qualifies for macroization: it must be
// declared inline, must not contain a goto or a labeled statement, must
// not be variadic, and must not syntactically reference its own name
// (recursion, direct or through a function pointer cast of itself).
//
// Functions that fail classification are left as ordinary definitions by
// every later pass; Classify itself never mutates fn.
func Classify(fn *cast.FuncDef) Verdict {
	if !fn.Inline {
		return Verdict{Reason: "not declared inline"}
	}
	if fn.Variadic {
		return Verdict{Reason: "variadic parameter list cannot be expressed as macro parameters"}
	}
	if hasJump(fn.Body) {
		return Verdict{Reason: "contains a goto or a labeled statement"}
	}
	if referencesName(fn.Body, fn.Name) {
		return Verdict{Reason: "recursive (references its own name)"}
	}
	return Verdict{Candidate: true}
}

// hasJump reports whether body contains a Goto or a Label anywhere,
// including inside nested control flow.
func hasJump(body *cast.Compound) bool {
	found := false
	cast.Inspect(body, func(n cast.Node) bool {
		if found {
			return false
		}
		switch n.(type) {
		case *cast.Goto, *cast.Label:
			found = true
			return false
		}
		return true
	})
	return found
}

// referencesName reports whether body contains any Ident with the given
// name, which is how a recursive call (direct, or through `&name` passed
// elsewhere) would show up in the AST. This is intentionally syntactic, not
// a call graph: §1 scopes out full semantic analysis, and a syntactic
// self-reference check is a conservative (safe) over-approximation of
// recursion.
func referencesName(body *cast.Compound, name string) bool {
	found := false
	cast.Inspect(body, func(n cast.Node) bool {
		if found {
			return false
		}
		if id, ok := n.(*cast.Ident); ok && id.Name == name {
			found = true
			return false
		}
		return true
	})
	return found
}
