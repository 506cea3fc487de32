// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctree

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cinline/cinline/internal/cast"
)

// --- Statements ---

func lowerCompound(n *sitter.Node, src []byte) *cast.Compound {
	comp := &cast.Compound{}
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		comp.Items = append(comp.Items, lowerBlockItem(c, src)...)
	}
	return comp
}

// lowerBlockItem returns a slice because a single C declaration such as
// `int a = 1, b = 2;` introduces more than one block item once split into
// our one-name-per-Decl shape.
func lowerBlockItem(n *sitter.Node, src []byte) []cast.Stmt {
	switch n.Kind() {
	case "declaration":
		return lowerDeclaration(n, src)
	default:
		return []cast.Stmt{lowerStmt(n, src)}
	}
}

func lowerDeclaration(n *sitter.Node, src []byte) []cast.Stmt {
	var specs []string
	var storage []string
	var declarators []*sitter.Node

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "storage_class_specifier", "type_qualifier":
			storage = append(storage, strings.TrimSpace(text(c, src)))
		case "primitive_type", "type_identifier", "sized_type_specifier",
			"struct_specifier", "union_specifier", "enum_specifier":
			specs = append(specs, strings.TrimSpace(text(c, src)))
		case "init_declarator", "identifier", "pointer_declarator",
			"array_declarator", "function_declarator", "parenthesized_declarator":
			declarators = append(declarators, c)
		}
	}

	var out []cast.Stmt
	for _, d := range declarators {
		base := &cast.TypeDecl{Specifiers: append([]string(nil), specs...)}
		if d.Kind() == "init_declarator" {
			declNode := d.ChildByFieldName("declarator")
			valueNode := d.ChildByFieldName("value")
			name, typ := lowerDeclaratorGeneral(declNode, base, src)
			var init cast.Expr
			if valueNode != nil {
				init = lowerExpr(valueNode, src)
			}
			out = append(out, &cast.Decl{Name: name, Type: typ, Init: init, Storage: storage})
		} else {
			name, typ := lowerDeclaratorGeneral(d, base, src)
			out = append(out, &cast.Decl{Name: name, Type: typ, Storage: storage})
		}
	}
	return out
}

func lowerStmt(n *sitter.Node, src []byte) cast.Stmt {
	switch n.Kind() {
	case "compound_statement":
		return lowerCompound(n, src)
	case "expression_statement":
		if n.NamedChildCount() == 0 {
			return &cast.ExprStmt{X: &cast.Ident{Name: ""}}
		}
		return &cast.ExprStmt{X: lowerExpr(n.NamedChild(0), src)}
	case "if_statement":
		cond := lowerExpr(n.ChildByFieldName("condition"), src)
		then := lowerStmt(n.ChildByFieldName("consequence"), src)
		var els cast.Stmt
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			els = lowerStmt(alt, src)
		}
		return &cast.If{Cond: cond, Then: then, Else: els}
	case "while_statement":
		cond := lowerExpr(n.ChildByFieldName("condition"), src)
		body := lowerStmt(n.ChildByFieldName("body"), src)
		return &cast.While{Cond: cond, Body: body}
	case "do_statement":
		body := lowerStmt(n.ChildByFieldName("body"), src)
		cond := lowerExpr(n.ChildByFieldName("condition"), src)
		return &cast.DoWhile{Body: body, Cond: cond}
	case "for_statement":
		var initStmt cast.Stmt
		if init := n.ChildByFieldName("initializer"); init != nil {
			switch init.Kind() {
			case "declaration":
				items := lowerDeclaration(init, src)
				if len(items) > 0 {
					initStmt = items[0]
				}
			default:
				initStmt = &cast.ExprStmt{X: lowerExpr(init, src)}
			}
		}
		var cond cast.Expr
		if c := n.ChildByFieldName("condition"); c != nil {
			cond = lowerExpr(c, src)
		}
		var post cast.Expr
		if p := n.ChildByFieldName("update"); p != nil {
			post = lowerExpr(p, src)
		}
		body := lowerStmt(n.ChildByFieldName("body"), src)
		return &cast.For{Init: initStmt, Cond: cond, Post: post, Body: body}
	case "switch_statement":
		tag := lowerExpr(n.ChildByFieldName("condition"), src)
		body := lowerStmt(n.ChildByFieldName("body"), src)
		return &cast.Switch{Tag: tag, Body: body}
	case "case_statement":
		return lowerCaseStatement(n, src)
	case "labeled_statement":
		label := n.ChildByFieldName("label")
		name := ""
		if label != nil {
			name = strings.TrimSpace(text(label, src))
		}
		var inner cast.Stmt
		if stmtNode := n.ChildByFieldName("statement"); stmtNode != nil {
			inner = lowerStmt(stmtNode, src)
		} else {
			inner = &cast.Compound{}
		}
		return &cast.Label{Name: name, Stmt: inner}
	case "return_statement":
		if n.NamedChildCount() == 0 {
			return &cast.Return{}
		}
		return &cast.Return{X: lowerExpr(n.NamedChild(0), src)}
	case "goto_statement":
		label := n.ChildByFieldName("label")
		name := ""
		if label != nil {
			name = strings.TrimSpace(text(label, src))
		}
		return &cast.Goto{Label: name}
	case "break_statement":
		return &cast.Break{}
	case "continue_statement":
		return &cast.Continue{}
	default:
		// Unrecognized statement shape: keep it reachable and printable by
		// wrapping its verbatim text, rather than dropping it. This should
		// only hit GNU-extension statement forms the grammar the rewrite
		// passes target doesn't produce.
		return &cast.ExprStmt{X: &cast.Ident{Name: text(n, src)}}
	}
}

// lowerCaseStatement handles the tree-sitter-c shape where `case E:` (or
// `default:`) and the statements up to the next label are all children of
// one case_statement node, the first of which we turn into a Compound so
// the label marker and its statements travel together as one block item.
func lowerCaseStatement(n *sitter.Node, src []byte) cast.Stmt {
	comp := &cast.Compound{}
	value := n.ChildByFieldName("value")
	if value != nil {
		comp.Items = append(comp.Items, &cast.Case{X: lowerExpr(value, src)})
	} else {
		comp.Items = append(comp.Items, &cast.Default{})
	}
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || c == value {
			continue
		}
		comp.Items = append(comp.Items, lowerBlockItem(c, src)...)
	}
	return comp
}
