// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cast

// This file implements a single generic child dispatcher, forEachChild, and
// builds both a read-only Inspect and a mutating, parent-aware Apply on top
// of it — the "visitor with parent context" described in the design notes:
// every visit exposes the current parent node and the slot it was reached
// through, so a rewrite (e.g. a call expression becoming a comma
// expression) can replace itself in place.

// Cursor is passed to Apply's pre/post callbacks. It identifies the node
// currently being visited, the parent it hangs off, and the field (or
// indexed slot) of the parent it was reached through.
type Cursor struct {
	parent Node
	slot   string
	node   Node
}

// Node returns the node currently being visited.
func (c *Cursor) Node() Node { return c.node }

// Parent returns the node whose field holds the current node, or nil at
// the root.
func (c *Cursor) Parent() Node { return c.parent }

// Slot names the parent field (or "Field[i]" for a slice element) the
// current node was reached through.
func (c *Cursor) Slot() string { return c.slot }

// Replace substitutes n for the node currently being visited. Apply
// continues descending into n's children (not the replaced node's), which
// is what lets a single rewrite rule fire again on nodes nested inside its
// own replacement — e.g. a nested, still-unrewritten call inside the
// arguments of a call that was just lowered.
func (c *Cursor) Replace(n Node) { c.node = n }

// Apply walks root, calling pre before descending into a node's children
// and post after. If pre returns false, Apply does not descend into that
// node's (possibly just-replaced) children, but still calls post. Apply
// returns the (possibly replaced) root.
func Apply(root Node, pre, post func(c *Cursor) bool) Node {
	c := &Cursor{node: root}
	applyCursor(c, pre, post)
	return c.node
}

func applyCursor(c *Cursor, pre, post func(*Cursor) bool) {
	if c.node == nil {
		return
	}
	descend := true
	if pre != nil {
		descend = pre(c)
	}
	if c.node != nil && descend {
		forEachChild(c.node, func(slot string, child Node) Node {
			cc := &Cursor{parent: c.node, slot: slot, node: child}
			applyCursor(cc, pre, post)
			return cc.node
		})
	}
	if post != nil {
		post(c)
	}
}

// Inspect walks root in pre-order, calling fn for every node including
// root. If fn returns false, Inspect does not descend into that node's
// children. It is a read-only convenience wrapper over Apply.
func Inspect(root Node, fn func(Node) bool) {
	Apply(root, func(c *Cursor) bool { return fn(c.Node()) }, nil)
}

// forEachChild dispatches on n's dynamic type and invokes visit once per
// child slot, writing back whatever visit returns. Leaf nodes (Ident,
// literals, Goto, Break, Continue, Default, Opaque) have no children and
// are not dispatched here.
func forEachChild(n Node, visit func(slot string, child Node) Node) {
	switch x := n.(type) {
	case *TranslationUnit:
		for i := range x.Decls {
			x.Decls[i] = visit("Decls", x.Decls[i]).(TopLevel)
		}
	case *FuncDef:
		if x.Body != nil {
			x.Body = visit("Body", x.Body).(*Compound)
		}
	case *Compound:
		for i := range x.Items {
			x.Items[i] = visit("Items", x.Items[i]).(Stmt)
		}
	case *Decl:
		if x.Init != nil {
			x.Init = visit("Init", x.Init).(Expr)
		}
	case *ExprStmt:
		x.X = visit("X", x.X).(Expr)
	case *If:
		x.Cond = visit("Cond", x.Cond).(Expr)
		x.Then = visit("Then", x.Then).(Stmt)
		if x.Else != nil {
			x.Else = visit("Else", x.Else).(Stmt)
		}
	case *While:
		x.Cond = visit("Cond", x.Cond).(Expr)
		x.Body = visit("Body", x.Body).(Stmt)
	case *DoWhile:
		x.Body = visit("Body", x.Body).(Stmt)
		x.Cond = visit("Cond", x.Cond).(Expr)
	case *For:
		if x.Init != nil {
			x.Init = visit("Init", x.Init).(Stmt)
		}
		if x.Cond != nil {
			x.Cond = visit("Cond", x.Cond).(Expr)
		}
		if x.Post != nil {
			x.Post = visit("Post", x.Post).(Expr)
		}
		x.Body = visit("Body", x.Body).(Stmt)
	case *Switch:
		x.Tag = visit("Tag", x.Tag).(Expr)
		x.Body = visit("Body", x.Body).(Stmt)
	case *Case:
		x.X = visit("X", x.X).(Expr)
	case *Return:
		if x.X != nil {
			x.X = visit("X", x.X).(Expr)
		}
	case *Label:
		x.Stmt = visit("Stmt", x.Stmt).(Stmt)
	case *Unary:
		x.X = visit("X", x.X).(Expr)
	case *Binary:
		x.X = visit("X", x.X).(Expr)
		x.Y = visit("Y", x.Y).(Expr)
	case *Assign:
		x.LHS = visit("LHS", x.LHS).(Expr)
		x.RHS = visit("RHS", x.RHS).(Expr)
	case *Conditional:
		x.Cond = visit("Cond", x.Cond).(Expr)
		x.Then = visit("Then", x.Then).(Expr)
		x.Else = visit("Else", x.Else).(Expr)
	case *Call:
		x.Callee = visit("Callee", x.Callee).(Expr)
		for i := range x.Args {
			x.Args[i] = visit("Args", x.Args[i]).(Expr)
		}
	case *Member:
		x.X = visit("X", x.X).(Expr)
	case *Index:
		x.X = visit("X", x.X).(Expr)
		x.Idx = visit("Idx", x.Idx).(Expr)
	case *Cast:
		x.X = visit("X", x.X).(Expr)
	case *ExprList:
		for i := range x.Elems {
			x.Elems[i] = visit("Elems", x.Elems[i]).(Expr)
		}
	}
}
