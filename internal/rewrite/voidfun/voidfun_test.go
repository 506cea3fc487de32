// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package voidfun_test

import (
	"testing"

	"github.com/cinline/cinline/internal/cast"
	"github.com/cinline/cinline/internal/rename"
	"github.com/cinline/cinline/internal/rewrite/voidfun"
)

func TestRewriteKeepsFormalParamNameAndInsertsAliasDecl(t *testing.T) {
	fn := &cast.FuncDef{
		Inline:     true,
		Name:       "fun",
		ReturnType: &cast.TypeDecl{Specifiers: []string{"void"}},
		Params: []*cast.ParamDecl{
			{Name: "x", Type: &cast.TypeDecl{Specifiers: []string{"int"}, Name: "x"}},
		},
		Body: &cast.Compound{Items: []cast.Stmt{
			&cast.ExprStmt{X: &cast.Assign{Op: "+=", LHS: &cast.Ident{Name: "x"}, RHS: &cast.IntLit{Text: "1"}}},
		}},
	}

	voidfun.Rewrite(fn, rename.NewPool(nil))

	if !fn.Macroized {
		t.Fatalf("expected fn.Macroized to be set")
	}
	if fn.Params[0].Name != "x" {
		t.Fatalf("macro formal parameter name should stay %q, got %q", "x", fn.Params[0].Name)
	}

	if len(fn.Body.Items) != 2 {
		t.Fatalf("expected alias decl + original stmt, got %d items", len(fn.Body.Items))
	}
	decl, ok := fn.Body.Items[0].(*cast.Decl)
	if !ok {
		t.Fatalf("expected inserted alias decl, got %T", fn.Body.Items[0])
	}
	if decl.Name == "x" {
		t.Fatalf("alias decl name should differ from original parameter name")
	}
	init, ok := decl.Init.(*cast.Ident)
	if !ok || init.Name != "x" {
		t.Fatalf("alias decl should initialize from original formal name %q, got %+v", "x", decl.Init)
	}

	stmt := fn.Body.Items[1].(*cast.ExprStmt)
	assign := stmt.X.(*cast.Assign)
	usedIdent, ok := assign.LHS.(*cast.Ident)
	if !ok || usedIdent.Name != decl.Name {
		t.Fatalf("body use of the parameter should be renamed to the alias %q, got %+v", decl.Name, assign.LHS)
	}
}

func TestRewriteNeverRenamesFuncPointerOrArrayParams(t *testing.T) {
	fn := &cast.FuncDef{
		Inline: true,
		Name:   "apply",
		Params: []*cast.ParamDecl{
			{Name: "cb", Type: &cast.FuncDecl{Inner: &cast.TypeDecl{Specifiers: []string{"void"}}}},
			{Name: "buf", Type: &cast.ArrayDecl{Inner: &cast.TypeDecl{Specifiers: []string{"int"}}}},
		},
		Body: &cast.Compound{Items: []cast.Stmt{
			&cast.ExprStmt{X: &cast.Call{Callee: &cast.Ident{Name: "cb"}}},
		}},
	}

	voidfun.Rewrite(fn, rename.NewPool(nil))

	if fn.Params[0].Name != "cb" || fn.Params[1].Name != "buf" {
		t.Fatalf("func-pointer/array params should keep their names, got %+v", fn.Params)
	}
	call := fn.Body.Items[0].(*cast.ExprStmt).X.(*cast.Call)
	callee := call.Callee.(*cast.Ident)
	if callee.Name != "cb" {
		t.Fatalf("use of a func-pointer param should stay unrenamed, got %q", callee.Name)
	}
}

func TestRewriteGivesNestedShadowingDeclarationItsOwnAlias(t *testing.T) {
	fn := &cast.FuncDef{
		Inline: true,
		Name:   "fun",
		Params: []*cast.ParamDecl{
			{Name: "x", Type: &cast.TypeDecl{Specifiers: []string{"int"}, Name: "x"}},
		},
		Body: &cast.Compound{Items: []cast.Stmt{
			&cast.If{
				Cond: &cast.Ident{Name: "x"},
				Then: &cast.Compound{Items: []cast.Stmt{
					&cast.Decl{Name: "x", Type: &cast.TypeDecl{Specifiers: []string{"int"}, Name: "x"}, Init: &cast.IntLit{Text: "0"}},
					&cast.ExprStmt{X: &cast.Ident{Name: "x"}},
				}},
			},
		}},
	}

	voidfun.Rewrite(fn, rename.NewPool(nil))

	paramAliasDecl := fn.Body.Items[0].(*cast.Decl)
	ifStmt := fn.Body.Items[1].(*cast.If)
	condIdent := ifStmt.Cond.(*cast.Ident)
	if condIdent.Name != paramAliasDecl.Name {
		t.Fatalf("if-condition use of x should resolve to the parameter's alias %q, got %q", paramAliasDecl.Name, condIdent.Name)
	}

	innerBlock := ifStmt.Then.(*cast.Compound)
	innerDecl := innerBlock.Items[0].(*cast.Decl)
	innerUse := innerBlock.Items[1].(*cast.ExprStmt).X.(*cast.Ident)

	if innerDecl.Name == paramAliasDecl.Name {
		t.Fatalf("shadowing inner declaration of x should get its own fresh alias, not reuse the parameter's")
	}
	if innerUse.Name != innerDecl.Name {
		t.Fatalf("use inside the inner scope should resolve to the inner shadowing alias %q, got %q", innerDecl.Name, innerUse.Name)
	}
}
