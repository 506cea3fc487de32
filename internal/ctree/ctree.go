// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ctree is the parser half of the parser/printer adapter named in
// §2 and §6: it runs tree-sitter-c over preprocessed C source and lowers
// the resulting concrete syntax tree to internal/cast.
//
// The lowering covers the node shapes the rewrite pipeline actually needs
// to see and rewrite (§3's node list): function definitions, compound
// statements, the control-flow and declaration statements, and the
// expression forms a small inline helper is likely to contain. A top-level
// construct the lowering does not specifically recognize — an unusual
// preprocessor conditional, a GNU extension attribute, a nested struct
// definition inside a declaration — is kept as an Opaque with its original
// text, which is always semantically safe (the rewrite passes only ever
// touch FuncDef nodes) even though it means such a construct cannot be
// removed by the AST subtract's structural-equality check beyond exact
// text matching.
package ctree

import (
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/cinline/cinline/internal/cast"
)

// Parser wraps a tree-sitter C parser. It is not goroutine-safe; the
// driver's batch mode (§5 supplement) gives each worker its own Parser.
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser constructs a Parser bound to the tree-sitter-c grammar.
func NewParser() (*Parser, error) {
	lang := sitter.NewLanguage(tree_sitter_c.Language())
	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("ctree: setting tree-sitter-c language: %w", err)
	}
	return &Parser{parser: p, language: lang}, nil
}

// ParseFile reads path, normalizes it to UTF-8, and lowers it to a
// TranslationUnit.
func (p *Parser) ParseFile(path string) (*cast.TranslationUnit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ctree: reading %s: %w", path, err)
	}
	return p.Parse(raw)
}

// Parse lowers src (already preprocessed C text) to a TranslationUnit.
func (p *Parser) Parse(src []byte) (*cast.TranslationUnit, error) {
	normalized, err := normalizeUTF8(src)
	if err != nil {
		return nil, fmt.Errorf("ctree: normalizing source encoding: %w", err)
	}

	tree := p.parser.Parse(normalized, nil)
	if tree == nil {
		return nil, fmt.Errorf("ctree: tree-sitter returned a nil parse tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	tu := &cast.TranslationUnit{}
	count := root.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}
		tu.Decls = append(tu.Decls, lowerTopLevel(child, normalized))
	}
	return tu, nil
}

func lowerTopLevel(n *sitter.Node, src []byte) cast.TopLevel {
	switch n.Kind() {
	case "function_definition":
		return lowerFuncDef(n, src)
	case "type_definition":
		return &cast.Opaque{Kind: "typedef", Name: typedefName(n, src), Text: text(n, src)}
	case "preproc_include", "preproc_def", "preproc_function_def", "preproc_call",
		"preproc_if", "preproc_ifdef", "preproc_elif", "preproc_else", "preproc_endif":
		return &cast.Opaque{Kind: "directive", Name: "", Text: text(n, src)}
	case "declaration":
		return &cast.Opaque{Kind: declKind(n, src), Name: firstDeclaredName(n, src), Text: text(n, src)}
	case "struct_specifier", "union_specifier", "enum_specifier":
		return &cast.Opaque{Kind: n.Kind(), Name: specifierTagName(n, src), Text: text(n, src)}
	default:
		return &cast.Opaque{Kind: n.Kind(), Name: "", Text: text(n, src)}
	}
}

func declKind(n *sitter.Node, src []byte) string {
	if hasFunctionDeclarator(n) {
		return "prototype"
	}
	return "var"
}

func hasFunctionDeclarator(n *sitter.Node) bool {
	found := false
	var walk func(*sitter.Node)
	walk = func(m *sitter.Node) {
		if m == nil || found {
			return
		}
		if m.Kind() == "function_declarator" {
			found = true
			return
		}
		for i := uint(0); i < m.ChildCount(); i++ {
			walk(m.Child(i))
		}
	}
	walk(n)
	return found
}

func firstDeclaredName(n *sitter.Node, src []byte) string {
	var find func(*sitter.Node) string
	find = func(m *sitter.Node) string {
		if m == nil {
			return ""
		}
		switch m.Kind() {
		case "identifier", "field_identifier":
			return text(m, src)
		}
		for i := uint(0); i < m.ChildCount(); i++ {
			if name := find(m.Child(i)); name != "" {
				return name
			}
		}
		return ""
	}
	return find(n)
}

func typedefName(n *sitter.Node, src []byte) string {
	var last string
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && c.Kind() == "type_identifier" {
			last = text(c, src)
		}
	}
	return last
}

func specifierTagName(n *sitter.Node, src []byte) string {
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && c.Kind() == "type_identifier" {
			return text(c, src)
		}
	}
	return ""
}

func text(n *sitter.Node, src []byte) string {
	return n.Utf8Text(src)
}

// --- Function definitions and declarators ---

func lowerFuncDef(n *sitter.Node, src []byte) *cast.FuncDef {
	fn := &cast.FuncDef{}
	var returnSpecifiers []string
	var declarator *sitter.Node

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "storage_class_specifier":
			if strings.TrimSpace(text(c, src)) == "inline" {
				fn.Inline = true
			}
		case "primitive_type", "type_identifier", "sized_type_specifier",
			"struct_specifier", "union_specifier", "enum_specifier", "type_qualifier":
			returnSpecifiers = append(returnSpecifiers, strings.TrimSpace(text(c, src)))
		case "function_declarator", "pointer_declarator":
			declarator = c
		case "compound_statement":
			fn.Body = lowerCompound(c, src)
		}
	}

	name, paramsNode, retType := lowerFuncDeclarator(declarator, &cast.TypeDecl{Specifiers: returnSpecifiers}, src)
	fn.Name = name
	fn.ReturnType = retType
	fn.Params, fn.Variadic = lowerParams(paramsNode, src)
	return fn
}

// lowerFuncDeclarator walks a function definition's own declarator,
// accumulating any pointer wrapping into base (for a function returning a
// pointer) until it reaches the function_declarator that names the
// function and carries its parameter list.
func lowerFuncDeclarator(n *sitter.Node, base cast.Type, src []byte) (name string, paramsNode *sitter.Node, retType cast.Type) {
	if n == nil {
		return "", nil, base
	}
	switch n.Kind() {
	case "pointer_declarator":
		inner := fieldOrFirstDeclarator(n, "declarator")
		return lowerFuncDeclarator(inner, &cast.PtrDecl{Inner: base}, src)
	case "function_declarator":
		inner := fieldOrFirstDeclarator(n, "declarator")
		paramsNode = fieldOrNamed(n, "parameters", "parameter_list")
		innerName, _, innerType := lowerFuncDeclarator(inner, base, src)
		return innerName, paramsNode, innerType
	case "identifier":
		return strings.TrimSpace(text(n, src)), nil, base
	case "parenthesized_declarator":
		return lowerFuncDeclarator(firstNamedChild(n), base, src)
	default:
		return "", nil, base
	}
}

// lowerDeclaratorGeneral lowers a parameter or local-variable declarator
// into a full cast.Type, including any nested function-pointer or array
// shape — unlike lowerFuncDeclarator, a nested function_declarator here
// describes a function-pointer-shaped type and is wrapped as a FuncDecl,
// not consumed as "the" function signature.
func lowerDeclaratorGeneral(n *sitter.Node, base cast.Type, src []byte) (name string, typ cast.Type) {
	if n == nil {
		return "", base
	}
	switch n.Kind() {
	case "identifier":
		return strings.TrimSpace(text(n, src)), base
	case "pointer_declarator":
		inner := fieldOrFirstDeclarator(n, "declarator")
		name, typ = lowerDeclaratorGeneral(inner, &cast.PtrDecl{Inner: base}, src)
		return name, typ
	case "array_declarator":
		inner := fieldOrFirstDeclarator(n, "declarator")
		sizeNode := fieldOrNamed(n, "size", "")
		var dim cast.Expr
		if sizeNode != nil {
			dim = lowerExpr(sizeNode, src)
		}
		return lowerDeclaratorGeneral(inner, &cast.ArrayDecl{Inner: base, Dim: dim}, src)
	case "function_declarator":
		inner := fieldOrFirstDeclarator(n, "declarator")
		paramsNode := fieldOrNamed(n, "parameters", "parameter_list")
		params, variadic := lowerParams(paramsNode, src)
		funcType := &cast.FuncDecl{Inner: base, Params: params, Variadic: variadic}
		return lowerDeclaratorGeneral(inner, funcType, src)
	case "parenthesized_declarator":
		return lowerDeclaratorGeneral(firstNamedChild(n), base, src)
	default:
		return "", base
	}
}

func lowerParams(n *sitter.Node, src []byte) ([]*cast.ParamDecl, bool) {
	if n == nil {
		return nil, false
	}
	var params []*cast.ParamDecl
	variadic := false

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "parameter_declaration":
			params = append(params, lowerParamDecl(c, src))
		case "variadic_parameter":
			variadic = true
		default:
			if strings.TrimSpace(text(c, src)) == "..." {
				variadic = true
			}
		}
	}

	if len(params) == 1 && isVoidOnly(params[0]) {
		params = nil
	}
	return params, variadic
}

func isVoidOnly(p *cast.ParamDecl) bool {
	if p.Name != "" {
		return false
	}
	leaf := cast.Leaf(p.Type)
	return leaf != nil && len(leaf.Specifiers) == 1 && leaf.Specifiers[0] == "void"
}

func lowerParamDecl(n *sitter.Node, src []byte) *cast.ParamDecl {
	var specs []string
	var declarator *sitter.Node

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "primitive_type", "type_identifier", "sized_type_specifier",
			"struct_specifier", "union_specifier", "enum_specifier",
			"type_qualifier", "storage_class_specifier":
			specs = append(specs, strings.TrimSpace(text(c, src)))
		case "identifier", "pointer_declarator", "array_declarator",
			"function_declarator", "parenthesized_declarator":
			declarator = c
		}
	}
	base := &cast.TypeDecl{Specifiers: specs}
	name, typ := lowerDeclaratorGeneral(declarator, base, src)
	return &cast.ParamDecl{Name: name, Type: typ}
}

func fieldOrFirstDeclarator(n *sitter.Node, field string) *sitter.Node {
	if c := n.ChildByFieldName(field); c != nil {
		return c
	}
	return firstNamedChild(n)
}

func fieldOrNamed(n *sitter.Node, field, kind string) *sitter.Node {
	if c := n.ChildByFieldName(field); c != nil {
		return c
	}
	if kind == "" {
		return nil
	}
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}
