// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package printer renders internal/cast nodes back to C source text. It is
// the pretty-printer half of the parser/printer adapter pair named in §2:
// internal/ctree builds the AST, printer turns it back into compilable C,
// either as an ordinary definition or, for a macroized candidate, as a
// function-like `#define`.
package printer

import (
	"fmt"
	"strings"

	"github.com/cinline/cinline/internal/cast"
)

// Print renders an entire translation unit, one top-level declaration per
// blank-line-separated block, in source order.
func Print(tu *cast.TranslationUnit) string {
	var b strings.Builder
	for i, d := range tu.Decls {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(PrintTopLevel(d))
		b.WriteString("\n")
	}
	return b.String()
}

// PrintTopLevel renders a single top-level declaration.
func PrintTopLevel(d cast.TopLevel) string {
	switch n := d.(type) {
	case *cast.Opaque:
		return n.Text
	case *cast.FuncDef:
		if n.Macroized {
			return printMacro(n)
		}
		return printFuncDef(n)
	default:
		return fmt.Sprintf("/* unknown top-level node %T */", d)
	}
}

func printFuncDef(fn *cast.FuncDef) string {
	var b strings.Builder
	if fn.Inline {
		b.WriteString("inline ")
	}
	b.WriteString(returnTypePrefix(fn))
	b.WriteString(funcDeclaratorSuffix(fn))
	b.WriteString(" ")
	if fn.Body != nil {
		b.WriteString(printCompound(fn.Body, 0))
	} else {
		b.WriteString("{}")
	}
	return b.String()
}

// printMacro renders fn as `#define NAME(p1, ..., pn) do { BODY } while (0)`
// per §4.4, with every body line suffixed by a line-continuation backslash.
func printMacro(fn *cast.FuncDef) string {
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
	}
	header := fmt.Sprintf("#define %s(%s) \\", fn.Name, strings.Join(names, ", "))

	var bodyLines []string
	bodyLines = append(bodyLines, "do { \\")
	if fn.Body != nil {
		for _, item := range fn.Body.Items {
			for _, line := range strings.Split(printStmt(item, 1), "\n") {
				bodyLines = append(bodyLines, line+" \\")
			}
		}
	}
	bodyLines = append(bodyLines, "} while (0)")

	return header + "\n" + strings.Join(bodyLines, "\n")
}

func returnTypePrefix(fn *cast.FuncDef) string {
	leaf := cast.Leaf(fn.ReturnType)
	if leaf == nil {
		return ""
	}
	return strings.Join(leaf.Specifiers, " ") + " "
}

// funcDeclaratorSuffix renders the function's name and parameter list,
// preceded by any pointer declarator wrapping the function's return type
// (e.g. the `*` of a function returning a pointer).
func funcDeclaratorSuffix(fn *cast.FuncDef) string {
	params := paramListText(fn.Params, fn.Variadic)
	prefix, _ := declType(fn.ReturnType)
	return prefix + fn.Name + "(" + params + ")"
}

func paramListText(params []*cast.ParamDecl, variadic bool) string {
	if len(params) == 0 && !variadic {
		return "void"
	}
	parts := make([]string, 0, len(params)+1)
	for _, p := range params {
		parts = append(parts, typeText(p.Type))
	}
	if variadic {
		parts = append(parts, "...")
	}
	return strings.Join(parts, ", ")
}

// typeText renders a full declarator chain (specifiers + declared name)
// using the standard prefix/suffix declarator-building algorithm: a Ptr
// wrapping an Array or FuncDecl needs parens around what it wraps so the
// pointer binds to the name rather than to the array/function suffix
// (`int (*p)[3]`, not `int *p[3]`, for "pointer to array").
func typeText(t cast.Type) string {
	leaf := cast.Leaf(t)
	if leaf == nil {
		return ""
	}
	specifiers := strings.Join(leaf.Specifiers, " ")
	prefix, suffix := declType(t)
	if prefix == "" && suffix == "" && leaf.Name == "" {
		return specifiers
	}
	return specifiers + " " + prefix + leaf.Name + suffix
}

func declType(t cast.Type) (prefix, suffix string) {
	switch n := t.(type) {
	case nil:
		return "", ""
	case *cast.TypeDecl:
		return "", ""
	case *cast.PtrDecl:
		ip, is := declType(n.Inner)
		core := "*" + qualPrefix(n.Qualifiers) + ip
		if needsGroup(n.Inner) {
			return "(" + core, ")" + is
		}
		return core, is
	case *cast.ArrayDecl:
		ip, is := declType(n.Inner)
		dim := ""
		if n.Dim != nil {
			dim = printExpr(n.Dim)
		}
		return ip, is + "[" + dim + "]"
	case *cast.FuncDecl:
		ip, is := declType(n.Inner)
		return ip, is + "(" + paramListText(n.Params, n.Variadic) + ")"
	default:
		return "", ""
	}
}

func needsGroup(inner cast.Type) bool {
	switch inner.(type) {
	case *cast.ArrayDecl, *cast.FuncDecl:
		return true
	default:
		return false
	}
}

func qualPrefix(quals []string) string {
	if len(quals) == 0 {
		return ""
	}
	return strings.Join(quals, " ") + " "
}

// --- Statements ---

func indentStr(depth int) string { return strings.Repeat("    ", depth) }

func printCompound(c *cast.Compound, depth int) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, item := range c.Items {
		b.WriteString(printStmt(item, depth+1))
		b.WriteString("\n")
	}
	b.WriteString(indentStr(depth))
	b.WriteString("}")
	return b.String()
}

func printStmt(s cast.Stmt, depth int) string {
	ind := indentStr(depth)
	switch n := s.(type) {
	case *cast.Compound:
		return ind + printCompound(n, depth)
	case *cast.Decl:
		storage := ""
		if len(n.Storage) > 0 {
			storage = strings.Join(n.Storage, " ") + " "
		}
		if n.Init != nil {
			return ind + storage + typeText(n.Type) + " = " + printExpr(n.Init) + ";"
		}
		return ind + storage + typeText(n.Type) + ";"
	case *cast.ExprStmt:
		return ind + printExpr(n.X) + ";"
	case *cast.If:
		s := ind + "if (" + printExpr(n.Cond) + ") " + printStmtInline(n.Then, depth)
		if n.Else != nil {
			s += "\n" + ind + "else " + printStmtInline(n.Else, depth)
		}
		return s
	case *cast.While:
		return ind + "while (" + printExpr(n.Cond) + ") " + printStmtInline(n.Body, depth)
	case *cast.DoWhile:
		return ind + "do " + printStmtInline(n.Body, depth) + " while (" + printExpr(n.Cond) + ");"
	case *cast.For:
		init, cond, post := "", "", ""
		if n.Init != nil {
			init = strings.TrimSuffix(strings.TrimSpace(printStmt(n.Init, 0)), ";")
		}
		if n.Cond != nil {
			cond = printExpr(n.Cond)
		}
		if n.Post != nil {
			post = printExpr(n.Post)
		}
		return ind + "for (" + init + "; " + cond + "; " + post + ") " + printStmtInline(n.Body, depth)
	case *cast.Switch:
		return ind + "switch (" + printExpr(n.Tag) + ") " + printStmtInline(n.Body, depth)
	case *cast.Case:
		return ind + "case " + printExpr(n.X) + ":"
	case *cast.Default:
		return ind + "default:"
	case *cast.Return:
		if n.X == nil {
			return ind + "return;"
		}
		return ind + "return " + printExpr(n.X) + ";"
	case *cast.Goto:
		return ind + "goto " + n.Label + ";"
	case *cast.Label:
		return ind + n.Name + ": " + strings.TrimSpace(printStmt(n.Stmt, 0))
	case *cast.Break:
		return ind + "break;"
	case *cast.Continue:
		return ind + "continue;"
	default:
		return ind + fmt.Sprintf("/* unknown stmt %T */", s)
	}
}

// printStmtInline renders a single-statement slot (an if/while/for/do body,
// a switch body, a label target): a Compound prints as a brace block at
// the current depth with no leading indent (it directly follows "if (...) "
// on the same line); anything else is printed as its own indented line.
func printStmtInline(s cast.Stmt, depth int) string {
	if c, ok := s.(*cast.Compound); ok {
		return printCompound(c, depth)
	}
	return "\n" + printStmt(s, depth+1)
}

// --- Expressions ---

func printExpr(e cast.Expr) string {
	switch n := e.(type) {
	case *cast.Ident:
		return n.Name
	case *cast.IntLit:
		return n.Text
	case *cast.FloatLit:
		return n.Text
	case *cast.CharLit:
		return n.Text
	case *cast.StringLit:
		return n.Text
	case *cast.Unary:
		if n.Postfix {
			return printExpr(n.X) + n.Op
		}
		return n.Op + printExpr(n.X)
	case *cast.Binary:
		return printExpr(n.X) + " " + n.Op + " " + printExpr(n.Y)
	case *cast.Assign:
		return printExpr(n.LHS) + " " + n.Op + " " + printExpr(n.RHS)
	case *cast.Conditional:
		return printExpr(n.Cond) + " ? " + printExpr(n.Then) + " : " + printExpr(n.Else)
	case *cast.Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = printExpr(a)
		}
		return printExpr(n.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *cast.Member:
		if n.Arrow {
			return printExpr(n.X) + "->" + n.Sel
		}
		return printExpr(n.X) + "." + n.Sel
	case *cast.Index:
		return printExpr(n.X) + "[" + printExpr(n.Idx) + "]"
	case *cast.Cast:
		return "(" + n.TypeName + ")" + printExpr(n.X)
	case *cast.ExprList:
		parts := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			parts[i] = printExpr(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprintf("/* unknown expr %T */", e)
	}
}
