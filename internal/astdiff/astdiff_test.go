// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astdiff_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cinline/cinline/internal/astdiff"
	"github.com/cinline/cinline/internal/cast"
)

func declNames(decls []cast.TopLevel) []string {
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.DeclName()
	}
	return names
}

func TestSubtractRemovesSharedTypedefAndStruct(t *testing.T) {
	typedefText := "typedef long mylong;"
	structText := "struct T { int x; };"

	primary := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.Opaque{Kind: "typedef", Name: "mylong", Text: typedefText},
		&cast.Opaque{Kind: "struct", Name: "T", Text: structText},
		&cast.FuncDef{Name: "main", ReturnType: &cast.TypeDecl{Specifiers: []string{"int"}}, Body: &cast.Compound{}},
	}}
	header := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.Opaque{Kind: "typedef", Name: "mylong", Text: typedefText},
		&cast.Opaque{Kind: "struct", Name: "T", Text: structText},
	}}

	astdiff.Subtract(primary, header)

	if len(primary.Decls) != 1 {
		t.Fatalf("expected only main to survive, got %d decls: %+v", len(primary.Decls), primary.Decls)
	}
	if primary.Decls[0].DeclName() != "main" {
		t.Fatalf("expected main to survive, got %q", primary.Decls[0].DeclName())
	}
}

func TestSubtractMatchesFuncDefsByNameOnlyDespiteDifferentBodies(t *testing.T) {
	primary := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.FuncDef{Name: "fun", Body: &cast.Compound{Items: []cast.Stmt{&cast.Return{}}}},
	}}
	header := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.FuncDef{Name: "fun", Body: &cast.Compound{}},
	}}

	astdiff.Subtract(primary, header)

	if len(primary.Decls) != 0 {
		t.Fatalf("expected fun to be subtracted despite differing bodies, got %+v", primary.Decls)
	}
}

func TestSubtractLeavesOnlyPrimaryOwnDeclarationsInOrder(t *testing.T) {
	primary := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.Opaque{Kind: "typedef", Name: "mylong", Text: "typedef long mylong;"},
		&cast.FuncDef{Name: "helper", Body: &cast.Compound{}},
		&cast.FuncDef{Name: "main", Body: &cast.Compound{}},
	}}
	header := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.Opaque{Kind: "typedef", Name: "mylong", Text: "typedef long mylong;"},
	}}

	astdiff.Subtract(primary, header)

	want := []string{"helper", "main"}
	if diff := cmp.Diff(want, declNames(primary.Decls)); diff != "" {
		t.Fatalf("surviving declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestSubtractConsumesEachHeaderOccurrenceOnce(t *testing.T) {
	opaque := func() *cast.Opaque { return &cast.Opaque{Kind: "directive", Name: "X", Text: "X;"} }

	primary := &cast.TranslationUnit{Decls: []cast.TopLevel{opaque(), opaque(), opaque()}}
	header := &cast.TranslationUnit{Decls: []cast.TopLevel{opaque()}}

	astdiff.Subtract(primary, header)

	if len(primary.Decls) != 2 {
		t.Fatalf("expected exactly one occurrence consumed, got %d left", len(primary.Decls))
	}
}
