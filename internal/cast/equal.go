// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cast

// Equal implements the structural equality used by the AST differ (§4.2):
// two nodes are equal iff they are of the same variant, all scalar
// attributes are equal, and their ordered children are pairwise equal —
// with one override: two FuncDefs are equal iff their declared names
// match, because an inline function's body in the primary file may already
// have been rewritten in ways that no longer match the header verbatim.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch x := a.(type) {
	case *FuncDef:
		y, ok := b.(*FuncDef)
		return ok && x.Name == y.Name

	case *Opaque:
		y, ok := b.(*Opaque)
		return ok && x.Kind == y.Kind && x.Name == y.Name && x.Text == y.Text

	case *TranslationUnit:
		y, ok := b.(*TranslationUnit)
		return ok && equalTopLevelSlice(x.Decls, y.Decls)

	case *TypeDecl:
		y, ok := b.(*TypeDecl)
		return ok && x.Name == y.Name && equalStrings(x.Specifiers, y.Specifiers)
	case *PtrDecl:
		y, ok := b.(*PtrDecl)
		return ok && equalStrings(x.Qualifiers, y.Qualifiers) && Equal(x.Inner, y.Inner)
	case *ArrayDecl:
		y, ok := b.(*ArrayDecl)
		return ok && Equal(x.Inner, y.Inner) && equalExprOrNil(x.Dim, y.Dim)
	case *FuncDecl:
		y, ok := b.(*FuncDecl)
		if !ok || x.Variadic != y.Variadic || !Equal(x.Inner, y.Inner) || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !equalParam(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return true

	case *Compound:
		y, ok := b.(*Compound)
		return ok && equalStmtSlice(x.Items, y.Items)
	case *Decl:
		y, ok := b.(*Decl)
		return ok && x.Name == y.Name && equalStrings(x.Storage, y.Storage) &&
			Equal(x.Type, y.Type) && equalExprOrNil(x.Init, y.Init)
	case *ExprStmt:
		y, ok := b.(*ExprStmt)
		return ok && Equal(x.X, y.X)
	case *If:
		y, ok := b.(*If)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && equalStmtOrNil(x.Else, y.Else)
	case *While:
		y, ok := b.(*While)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Body, y.Body)
	case *DoWhile:
		y, ok := b.(*DoWhile)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Body, y.Body)
	case *For:
		y, ok := b.(*For)
		return ok && equalStmtOrNil(x.Init, y.Init) && equalExprOrNil(x.Cond, y.Cond) &&
			equalExprOrNil(x.Post, y.Post) && Equal(x.Body, y.Body)
	case *Switch:
		y, ok := b.(*Switch)
		return ok && Equal(x.Tag, y.Tag) && Equal(x.Body, y.Body)
	case *Case:
		y, ok := b.(*Case)
		return ok && Equal(x.X, y.X)
	case *Default:
		_, ok := b.(*Default)
		return ok
	case *Return:
		y, ok := b.(*Return)
		return ok && equalExprOrNil(x.X, y.X)
	case *Goto:
		y, ok := b.(*Goto)
		return ok && x.Label == y.Label
	case *Label:
		y, ok := b.(*Label)
		return ok && x.Name == y.Name && Equal(x.Stmt, y.Stmt)
	case *Break:
		_, ok := b.(*Break)
		return ok
	case *Continue:
		_, ok := b.(*Continue)
		return ok

	case *Ident:
		y, ok := b.(*Ident)
		return ok && x.Name == y.Name
	case *IntLit:
		y, ok := b.(*IntLit)
		return ok && x.Text == y.Text
	case *FloatLit:
		y, ok := b.(*FloatLit)
		return ok && x.Text == y.Text
	case *CharLit:
		y, ok := b.(*CharLit)
		return ok && x.Text == y.Text
	case *StringLit:
		y, ok := b.(*StringLit)
		return ok && x.Text == y.Text
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && x.Postfix == y.Postfix && Equal(x.X, y.X)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.X, y.X) && Equal(x.Y, y.Y)
	case *Assign:
		y, ok := b.(*Assign)
		return ok && x.Op == y.Op && Equal(x.LHS, y.LHS) && Equal(x.RHS, y.RHS)
	case *Conditional:
		y, ok := b.(*Conditional)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *Call:
		y, ok := b.(*Call)
		if !ok || !Equal(x.Callee, y.Callee) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Member:
		y, ok := b.(*Member)
		return ok && x.Sel == y.Sel && x.Arrow == y.Arrow && Equal(x.X, y.X)
	case *Index:
		y, ok := b.(*Index)
		return ok && Equal(x.X, y.X) && Equal(x.Idx, y.Idx)
	case *Cast:
		y, ok := b.(*Cast)
		return ok && x.TypeName == y.TypeName && Equal(x.X, y.X)
	case *ExprList:
		y, ok := b.(*ExprList)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalParam(a, b *ParamDecl) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name && Equal(a.Type, b.Type)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalExprOrNil(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

func equalStmtOrNil(a, b Stmt) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

func equalTopLevelSlice(a, b []TopLevel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStmtSlice(a, b []Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
