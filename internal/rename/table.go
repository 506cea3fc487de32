// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rename

// Symbol is one binding in a Table: the alias a source name currently
// resolves to, and whether a nested scope is allowed to shadow it.
type Symbol struct {
	Alias       string
	Overwritable bool
}

// Table is the scope-stacked α-rename symbol table described in §3: a
// mapping from source name to Symbol. Entering a scope clones the current
// table with every entry marked Overwritable; leaving a scope restores the
// parent. Table is deliberately a value-ish type built around an owned map
// so Clone is a real, independent copy — callers push/pop by holding onto
// the table they cloned from, not by mutating shared state.
type Table struct {
	pool    *Pool
	entries map[string]Symbol
}

// NewTable returns an empty table backed by pool.
func NewTable(pool *Pool) *Table {
	return &Table{pool: pool, entries: make(map[string]Symbol)}
}

// Register mints a fresh alias for name unconditionally and pins the
// binding (Overwritable=false), as §4.4 requires when a parameter or
// declaration first introduces a name in a scope.
func (t *Table) Register(name string) string {
	alias := t.pool.Fresh()
	t.entries[name] = Symbol{Alias: alias, Overwritable: false}
	return alias
}

// RegisterFixed binds name to itself (no renaming) and pins it. Used for
// function-pointer and array parameters, which §4.4 keeps under their
// original names.
func (t *Table) RegisterFixed(name string) {
	t.entries[name] = Symbol{Alias: name, Overwritable: false}
}

// Declare registers name, but only mints a fresh alias if name is either
// new to this table or currently Overwritable (i.e. inherited from an
// enclosing scope via Clone). A pinned binding already present is left
// alone — this is what lets a parameter's single binding survive unchanged
// through Clone/Declare pairs that don't actually shadow it.
func (t *Table) Declare(name string) string {
	if sym, ok := t.entries[name]; ok && !sym.Overwritable {
		return sym.Alias
	}
	return t.Register(name)
}

// Alias returns the current alias for name, or name itself if it has no
// binding (a global, a type name, or anything the rename pass never
// touched).
func (t *Table) Alias(name string) string {
	if sym, ok := t.entries[name]; ok {
		return sym.Alias
	}
	return name
}

// Clone returns a new table with the same bindings, every one marked
// Overwritable — the operation performed on entering a nested compound
// statement (§3, §4.4 "Scope discipline").
func (t *Table) Clone() *Table {
	clone := &Table{pool: t.pool, entries: make(map[string]Symbol, len(t.entries))}
	for name, sym := range t.entries {
		clone.entries[name] = Symbol{Alias: sym.Alias, Overwritable: true}
	}
	return clone
}
