// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctree

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cinline/cinline/internal/cast"
)

// --- Expressions ---

func lowerExpr(n *sitter.Node, src []byte) cast.Expr {
	if n == nil {
		return &cast.Ident{Name: ""}
	}
	switch n.Kind() {
	case "parenthesized_expression":
		if inner := firstNamedChild(n); inner != nil {
			return lowerExpr(inner, src)
		}
		return &cast.Ident{Name: ""}
	case "identifier", "field_identifier":
		return &cast.Ident{Name: strings.TrimSpace(text(n, src))}
	case "number_literal":
		t := text(n, src)
		if strings.ContainsAny(t, ".eE") && !strings.HasPrefix(t, "0x") && !strings.HasPrefix(t, "0X") {
			return &cast.FloatLit{Text: t}
		}
		return &cast.IntLit{Text: t}
	case "char_literal":
		return &cast.CharLit{Text: text(n, src)}
	case "string_literal", "concatenated_string":
		return &cast.StringLit{Text: text(n, src)}
	case "assignment_expression":
		op := "="
		if o := n.ChildByFieldName("operator"); o != nil {
			op = strings.TrimSpace(text(o, src))
		}
		return &cast.Assign{
			Op:  op,
			LHS: lowerExpr(n.ChildByFieldName("left"), src),
			RHS: lowerExpr(n.ChildByFieldName("right"), src),
		}
	case "binary_expression":
		op := ""
		if o := n.ChildByFieldName("operator"); o != nil {
			op = strings.TrimSpace(text(o, src))
		}
		return &cast.Binary{
			Op: op,
			X:  lowerExpr(n.ChildByFieldName("left"), src),
			Y:  lowerExpr(n.ChildByFieldName("right"), src),
		}
	case "unary_expression", "pointer_expression":
		op := ""
		if o := n.ChildByFieldName("operator"); o != nil {
			op = strings.TrimSpace(text(o, src))
		}
		return &cast.Unary{Op: op, X: lowerExpr(n.ChildByFieldName("argument"), src)}
	case "update_expression":
		op := ""
		argNode := n.ChildByFieldName("argument")
		opNode := n.ChildByFieldName("operator")
		if opNode != nil {
			op = strings.TrimSpace(text(opNode, src))
		}
		// Postfix when the operator comes after its operand (x++, x--).
		postfix := true
		if argNode != nil && opNode != nil {
			postfix = opNode.StartByte() > argNode.StartByte()
		}
		return &cast.Unary{Op: op, X: lowerExpr(argNode, src), Postfix: postfix}
	case "conditional_expression":
		return &cast.Conditional{
			Cond: lowerExpr(n.ChildByFieldName("condition"), src),
			Then: lowerExpr(n.ChildByFieldName("consequence"), src),
			Else: lowerExpr(n.ChildByFieldName("alternative"), src),
		}
	case "call_expression":
		callee := lowerExpr(n.ChildByFieldName("function"), src)
		var args []cast.Expr
		if argList := n.ChildByFieldName("arguments"); argList != nil {
			count := argList.NamedChildCount()
			for i := uint(0); i < count; i++ {
				args = append(args, lowerExpr(argList.NamedChild(i), src))
			}
		}
		return &cast.Call{Callee: callee, Args: args}
	case "field_expression":
		x := lowerExpr(n.ChildByFieldName("argument"), src)
		arrow := false
		if op := n.ChildByFieldName("operator"); op != nil && strings.TrimSpace(text(op, src)) == "->" {
			arrow = true
		}
		sel := ""
		if f := n.ChildByFieldName("field"); f != nil {
			sel = strings.TrimSpace(text(f, src))
		}
		return &cast.Member{X: x, Sel: sel, Arrow: arrow}
	case "subscript_expression":
		return &cast.Index{
			X:   lowerExpr(n.ChildByFieldName("argument"), src),
			Idx: lowerExpr(n.ChildByFieldName("index"), src),
		}
	case "cast_expression":
		typeName := ""
		if t := n.ChildByFieldName("type"); t != nil {
			typeName = strings.TrimSpace(text(t, src))
		}
		return &cast.Cast{TypeName: typeName, X: lowerExpr(n.ChildByFieldName("value"), src)}
	case "comma_expression":
		return &cast.ExprList{Elems: flattenComma(n, src)}
	default:
		// Anything not specifically handled (compound literals, sizeof,
		// generic selections, GNU statement expressions) is kept printable
		// by carrying its raw text; the rewrite passes never need to look
		// inside these shapes.
		return &cast.Ident{Name: text(n, src)}
	}
}

func flattenComma(n *sitter.Node, src []byte) []cast.Expr {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	var elems []cast.Expr
	if left != nil {
		elems = append(elems, lowerExpr(left, src))
	}
	if right != nil {
		if right.Kind() == "comma_expression" {
			elems = append(elems, flattenComma(right, src)...)
		} else {
			elems = append(elems, lowerExpr(right, src))
		}
	}
	return elems
}
