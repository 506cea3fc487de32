// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cast

// CopyType returns a deep copy of a declarator chain. The non-void rewrite
// (§4.5) needs this to turn a function's original return type into the
// pointee type of its new retval parameter without aliasing the node the
// rest of the pipeline still treats as "the function's declared return
// type" for registry purposes.
func CopyType(t Type) Type {
	switch n := t.(type) {
	case nil:
		return nil
	case *TypeDecl:
		specs := make([]string, len(n.Specifiers))
		copy(specs, n.Specifiers)
		return &TypeDecl{Specifiers: specs, Name: n.Name}
	case *PtrDecl:
		quals := make([]string, len(n.Qualifiers))
		copy(quals, n.Qualifiers)
		return &PtrDecl{Qualifiers: quals, Inner: CopyType(n.Inner)}
	case *ArrayDecl:
		return &ArrayDecl{Inner: CopyType(n.Inner), Dim: n.Dim}
	case *FuncDecl:
		params := make([]*ParamDecl, len(n.Params))
		for i, p := range n.Params {
			params[i] = &ParamDecl{Name: p.Name, Type: CopyType(p.Type)}
		}
		return &FuncDecl{Inner: CopyType(n.Inner), Params: params, Variadic: n.Variadic}
	default:
		return t
	}
}
