// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nonvoid_test

import (
	"testing"

	"github.com/cinline/cinline/internal/cast"
	"github.com/cinline/cinline/internal/rewrite/nonvoid"
)

func TestRewriteSingleReturn(t *testing.T) {
	fn := &cast.FuncDef{
		Inline:     true,
		Name:       "fun",
		ReturnType: &cast.TypeDecl{Specifiers: []string{"int"}},
		Params:     []*cast.ParamDecl{{Name: "x", Type: &cast.TypeDecl{Specifiers: []string{"int"}, Name: "x"}}},
		Body: &cast.Compound{Items: []cast.Stmt{
			&cast.Return{X: &cast.Ident{Name: "x"}},
		}},
	}

	orig := nonvoid.Rewrite(fn)

	if !fn.ReturnsVoid() {
		t.Fatalf("fn should be void after rewrite")
	}
	if leaf := cast.Leaf(orig); leaf == nil || leaf.Specifiers[0] != "int" {
		t.Fatalf("original return type not preserved: %+v", orig)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "retval" {
		t.Fatalf("retval parameter not prepended: %+v", fn.Params)
	}
	if _, ok := fn.Params[0].Type.(*cast.PtrDecl); !ok {
		t.Fatalf("retval parameter should be a pointer declarator")
	}

	if len(fn.Body.Items) != 2 {
		t.Fatalf("expected *retval=x; return; got %d items", len(fn.Body.Items))
	}
	assignStmt, ok := fn.Body.Items[0].(*cast.ExprStmt)
	if !ok {
		t.Fatalf("first item should be an ExprStmt, got %T", fn.Body.Items[0])
	}
	assign, ok := assignStmt.X.(*cast.Assign)
	if !ok {
		t.Fatalf("expected assignment, got %T", assignStmt.X)
	}
	if deref, ok := assign.LHS.(*cast.Unary); !ok || deref.Op != "*" {
		t.Fatalf("assignment LHS should be *retval, got %+v", assign.LHS)
	}
	ret, ok := fn.Body.Items[1].(*cast.Return)
	if !ok || ret.X != nil {
		t.Fatalf("second item should be a bare return, got %+v", fn.Body.Items[1])
	}
}

func TestRewriteIsNoOpForVoidFunctions(t *testing.T) {
	fn := &cast.FuncDef{
		Inline:     true,
		Name:       "fun",
		ReturnType: &cast.TypeDecl{Specifiers: []string{"void"}},
		Body:       &cast.Compound{},
	}
	if got := nonvoid.Rewrite(fn); got != nil {
		t.Fatalf("Rewrite on a void function should be a no-op, got %+v", got)
	}
}

func TestRewriteHandlesReturnInsideIf(t *testing.T) {
	fn := &cast.FuncDef{
		Name:       "clamp",
		ReturnType: &cast.TypeDecl{Specifiers: []string{"int"}},
		Body: &cast.Compound{Items: []cast.Stmt{
			&cast.If{
				Cond: &cast.Binary{Op: "<", X: &cast.Ident{Name: "x"}, Y: &cast.IntLit{Text: "0"}},
				Then: &cast.Return{X: &cast.IntLit{Text: "0"}},
			},
			&cast.Return{X: &cast.Ident{Name: "x"}},
		}},
	}

	nonvoid.Rewrite(fn)

	ifStmt := fn.Body.Items[0].(*cast.If)
	thenBlock, ok := ifStmt.Then.(*cast.Compound)
	if !ok || len(thenBlock.Items) != 2 {
		t.Fatalf("if-branch return should be wrapped into a 2-item compound, got %+v", ifStmt.Then)
	}
	if len(fn.Body.Items) != 3 {
		t.Fatalf("trailing bare return should splice directly into the function body, got %d items", len(fn.Body.Items))
	}
}
