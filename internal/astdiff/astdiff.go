// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astdiff implements the AST subtract of §4.2: removing from the
// primary translation unit's top-level declarations any declaration that
// also appears, structurally, in the header-contributed AST.
package astdiff

import "github.com/cinline/cinline/internal/cast"

// Subtract removes from primary.Decls every declaration that also occurs in
// header.Decls, using cast.Equal (which special-cases function definitions
// to compare by name only, since an inline function's body in the primary
// file may already have been rewritten by an earlier pass and so no longer
// matches the header verbatim).
//
// header.Decls is treated as a multiset: each declaration there is
// consumed by at most one match in primary, so N identical redeclarations
// in the primary file are each weighed against their own occurrence in the
// header rather than all being deleted by a single header entry.
func Subtract(primary, header *cast.TranslationUnit) {
	consumed := make([]bool, len(header.Decls))
	var toDelete []int

	for i, d := range primary.Decls {
		for j, h := range header.Decls {
			if consumed[j] {
				continue
			}
			if cast.Equal(d, h) {
				consumed[j] = true
				toDelete = append(toDelete, i)
				break
			}
		}
	}

	for k := len(toDelete) - 1; k >= 0; k-- {
		i := toDelete[k]
		primary.Decls = append(primary.Decls[:i], primary.Decls[i+1:]...)
	}
}
