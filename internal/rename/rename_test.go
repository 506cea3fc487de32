// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rename_test

import (
	"testing"

	"github.com/cinline/cinline/internal/rename"
)

func TestPoolFreshIsCollisionFree(t *testing.T) {
	pool := rename.NewPool(nil)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		name := pool.Fresh()
		if seen[name] {
			t.Fatalf("Fresh returned duplicate name %q", name)
		}
		seen[name] = true
	}
}

func TestPoolFreshAvoidsTakenNames(t *testing.T) {
	forbidden := map[string]bool{"zzzzzzzzzzzzzzzz": true}
	pool := rename.NewPool(func(s string) bool { return forbidden[s] })
	for i := 0; i < 200; i++ {
		if name := pool.Fresh(); forbidden[name] {
			t.Fatalf("Fresh returned a name the taken predicate forbids: %q", name)
		}
	}
}

func TestTableDeclareReusesPinnedBinding(t *testing.T) {
	pool := rename.NewPool(nil)
	table := rename.NewTable(pool)

	first := table.Declare("x")
	second := table.Declare("x")
	if first != second {
		t.Fatalf("Declare on an already-pinned name changed alias: %q vs %q", first, second)
	}
}

func TestTableCloneAllowsShadowing(t *testing.T) {
	pool := rename.NewPool(nil)
	outer := rename.NewTable(pool)
	outerAlias := outer.Register("x")

	inner := outer.Clone()
	innerAlias := inner.Declare("x") // x is Overwritable in the clone, so this re-registers it

	if innerAlias == outerAlias {
		t.Fatalf("shadowing declaration in cloned scope reused the outer alias")
	}
	if got := outer.Alias("x"); got != outerAlias {
		t.Fatalf("outer table's alias for x changed after inner shadowed it: got %q, want %q", got, outerAlias)
	}
}

func TestTableAliasFallsBackToOriginalName(t *testing.T) {
	pool := rename.NewPool(nil)
	table := rename.NewTable(pool)
	if got := table.Alias("untouched"); got != "untouched" {
		t.Fatalf("Alias for unbound name = %q, want unchanged", got)
	}
}

func TestRegisterFixedNeverRenames(t *testing.T) {
	pool := rename.NewPool(nil)
	table := rename.NewTable(pool)
	table.RegisterFixed("f")
	if got := table.Alias("f"); got != "f" {
		t.Fatalf("RegisterFixed name was renamed: got %q", got)
	}
}
