// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cast_test

import (
	"testing"

	"github.com/cinline/cinline/internal/cast"
)

func TestLeafAndSetLeafName(t *testing.T) {
	typ := &cast.PtrDecl{Inner: &cast.TypeDecl{Specifiers: []string{"int"}, Name: "x"}}
	leaf := cast.Leaf(typ)
	if leaf == nil || leaf.Name != "x" {
		t.Fatalf("Leaf() = %+v, want Name=x", leaf)
	}
	cast.SetLeafName(typ, "x_renamed")
	if cast.Leaf(typ).Name != "x_renamed" {
		t.Fatalf("SetLeafName did not take effect: %+v", cast.Leaf(typ))
	}
}

func TestIsFuncOrArray(t *testing.T) {
	cases := []struct {
		t    cast.Type
		want bool
	}{
		{&cast.TypeDecl{Name: "x"}, false},
		{&cast.PtrDecl{Inner: &cast.TypeDecl{Name: "x"}}, false},
		{&cast.ArrayDecl{Inner: &cast.TypeDecl{Name: "x"}}, true},
		{&cast.FuncDecl{Inner: &cast.TypeDecl{Name: "f"}}, true},
	}
	for _, c := range cases {
		if got := cast.IsFuncOrArray(c.t); got != c.want {
			t.Errorf("IsFuncOrArray(%#v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestInspectVisitsNestedCalls(t *testing.T) {
	body := &cast.Compound{Items: []cast.Stmt{
		&cast.ExprStmt{X: &cast.Call{
			Callee: &cast.Ident{Name: "h1"},
			Args:   []cast.Expr{&cast.Call{Callee: &cast.Ident{Name: "h2"}}},
		}},
	}}

	var names []string
	cast.Inspect(body, func(n cast.Node) bool {
		if call, ok := n.(*cast.Call); ok {
			if id, ok := call.Callee.(*cast.Ident); ok {
				names = append(names, id.Name)
			}
		}
		return true
	})

	if len(names) != 2 || names[0] != "h1" || names[1] != "h2" {
		t.Fatalf("Inspect found calls %v, want [h1 h2]", names)
	}
}

func TestApplyReplaceDescendsIntoReplacement(t *testing.T) {
	// (f()) gets replaced by a comma expr containing the original call and a
	// nested one; Apply must keep walking into the replacement, so the
	// original call is visited a second time and the nested call is seen.
	root := &cast.ExprStmt{X: &cast.Call{Callee: &cast.Ident{Name: "f"}}}

	var seen []string
	replaced := false
	out := cast.Apply(root, func(c *cast.Cursor) bool {
		if call, ok := c.Node().(*cast.Call); ok {
			if id, ok := call.Callee.(*cast.Ident); ok {
				seen = append(seen, id.Name)
				if id.Name == "f" && !replaced {
					replaced = true
					c.Replace(&cast.ExprList{Elems: []cast.Expr{
						call,
						&cast.Call{Callee: &cast.Ident{Name: "nested"}},
					}})
					return true
				}
			}
		}
		return true
	}, nil)

	if _, ok := out.(*cast.ExprStmt); !ok {
		t.Fatalf("Apply returned %T, want *ExprStmt", out)
	}
	want := []string{"f", "f", "nested"}
	if len(seen) != len(want) || seen[0] != want[0] || seen[1] != want[1] || seen[2] != want[2] {
		t.Fatalf("Apply visited calls %v, want %v", seen, want)
	}
}

func TestEqualFuncDefByNameOnly(t *testing.T) {
	a := &cast.FuncDef{Name: "f", Body: &cast.Compound{Items: []cast.Stmt{&cast.Return{}}}}
	b := &cast.FuncDef{Name: "f", Body: &cast.Compound{}}
	if !cast.Equal(a, b) {
		t.Fatalf("FuncDefs with equal names but different bodies should be Equal")
	}

	c := &cast.FuncDef{Name: "g"}
	if cast.Equal(a, c) {
		t.Fatalf("FuncDefs with different names should not be Equal")
	}
}

func TestEqualOpaqueByKindNameText(t *testing.T) {
	a := &cast.Opaque{Kind: "typedef", Name: "mylong", Text: "typedef long mylong;"}
	b := &cast.Opaque{Kind: "typedef", Name: "mylong", Text: "typedef long mylong;"}
	if !cast.Equal(a, b) {
		t.Fatalf("identical Opaque decls should be Equal")
	}
	c := &cast.Opaque{Kind: "typedef", Name: "mylong", Text: "typedef int mylong;"}
	if cast.Equal(a, c) {
		t.Fatalf("Opaque decls with different Text should not be Equal")
	}
}
