// Package codegen tree-walks a parsed, resolved program and emits RGBDS
// assembly text. It follows the teacher's one-gen-method-per-construct
// shape (compiler/generator.go builds one assembly fragment per
// instruction kind; here it's one fragment per AST node kind) adapted from
// a stack-machine target to the tree-walking, register-based discipline
// original_source/tugboat/src/codegen.rs uses for the SM83.
package codegen

import (
	"fmt"
	"strings"

	"github.com/chrislewisdev/tugboat/ast"
	"github.com/chrislewisdev/tugboat/diagnostic"
	"github.com/chrislewisdev/tugboat/resolver"
	"github.com/chrislewisdev/tugboat/token"
)

// generator holds the per-compile state: the identifier directory, the
// while-loop label counter (scoped to one call per §9's recommendation,
// rather than the process-global counter the original used), and the
// accumulated diagnostics.
type generator struct {
	directory resolver.Directory
	uid       uint32
	errors    []diagnostic.Diagnostic
}

// Generate produces RGBDS assembly for a resolved program, or a non-empty
// diagnostic list if any declaration fails to generate. Variables are
// always emitted before functions, and within each group declarations keep
// source order.
func Generate(decls []ast.Declaration, directory resolver.Directory) (string, []diagnostic.Diagnostic) {
	g := &generator{directory: directory}

	var vars strings.Builder
	var funcs strings.Builder
	vars.WriteString("SECTION \"Variables\", WRAM0\n")
	funcs.WriteString("SECTION \"Functions\", ROM0\n")

	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.VariableDecl:
			vars.WriteString(g.genVariable(d))
		case *ast.FunctionDecl:
			funcs.WriteString(g.genFunction(d))
		}
	}

	if len(g.errors) > 0 {
		return "", g.errors
	}
	return vars.String() + funcs.String(), nil
}

func (g *generator) fail(line uint32, msg string) {
	g.errors = append(g.errors, diagnostic.New(line, msg))
}

func (g *generator) genVariable(v *ast.VariableDecl) string {
	return fmt.Sprintf("%s:: ds %d\n", v.Name.Lexeme, v.Size)
}

func (g *generator) genFunction(fn *ast.FunctionDecl) string {
	var out strings.Builder
	out.WriteString(fn.Name.Lexeme + "::\n")

	for _, stmt := range fn.Body {
		frag, ok := g.genStatement(stmt)
		if !ok {
			// This declaration has failed; stop emitting its body, but
			// other declarations still get a chance to generate (and
			// report their own diagnostics) — see §4.4's failure semantics.
			return out.String()
		}
		out.WriteString(frag)
	}

	out.WriteString("\tret\n")
	return out.String()
}

// genStatement returns (fragment, true) on success, or ("", false) after
// recording a diagnostic.
func (g *generator) genStatement(stmt ast.Stmt) (string, bool) {
	switch s := stmt.(type) {
	case *ast.HaltStmt:
		return "\thalt\n", true

	case *ast.ExpressionStmt:
		frag, ok := g.genEvaluate(s.Expr)
		if !ok {
			return "", false
		}
		return frag, true

	case *ast.AssignStmt:
		return g.genAssign(s)

	case *ast.WhileStmt:
		return g.genWhile(s)
	}

	return "", false
}

func (g *generator) genAssign(s *ast.AssignStmt) (string, bool) {
	switch target := s.Target.(type) {
	case *ast.VariableExpr:
		kind, ok := g.directory.Lookup(target.Name.Lexeme)
		if !ok {
			g.fail(target.Name.Line, "Undefined variable: "+target.Name.Lexeme)
			return "", false
		}
		if kind == resolver.Function {
			g.fail(target.Name.Line, "Cannot assign to function")
			return "", false
		}

		value, ok := g.genEvaluate(s.Value)
		if !ok {
			return "", false
		}
		return value + fmt.Sprintf("\tld [%s], a\n", target.Name.Lexeme), true

	case *ast.IndexedExpr:
		addr, ok := g.genElementAddress(target)
		if !ok {
			return "", false
		}
		value, ok := g.genEvaluate(s.Value)
		if !ok {
			return "", false
		}
		return addr + value + "\tld [hl], a\n", true

	case *ast.LiteralExpr:
		g.fail(target.Token.Line, "Cannot assign to non-variable.")
		return "", false

	case *ast.BinaryExpr:
		g.fail(target.Operator.Line, "Cannot assign to non-variable.")
		return "", false
	}

	return "", false
}

func (g *generator) genWhile(s *ast.WhileStmt) (string, bool) {
	uid := g.uid
	g.uid++

	var out strings.Builder
	out.WriteString(fmt.Sprintf(".startWhile_%d\n", uid))

	cond, ok := g.genEvaluate(s.Condition)
	if !ok {
		return "", false
	}
	out.WriteString(cond)
	out.WriteString("\tor a\n")
	out.WriteString(fmt.Sprintf("\tjr z, .endWhile_%d\n", uid))

	for _, stmt := range s.Body {
		frag, ok := g.genStatement(stmt)
		if !ok {
			return "", false
		}
		out.WriteString(frag)
	}

	out.WriteString(fmt.Sprintf("\tjr .startWhile_%d\n", uid))
	out.WriteString(fmt.Sprintf(".endWhile_%d\n", uid))

	return out.String(), true
}

// genEvaluate emits the instructions that leave expr's value in register A.
func (g *generator) genEvaluate(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return fmt.Sprintf("\tld a, %d\n", e.Value), true

	case *ast.VariableExpr:
		kind, ok := g.directory.Lookup(e.Name.Lexeme)
		if !ok {
			g.fail(e.Name.Line, "Undefined variable: "+e.Name.Lexeme)
			return "", false
		}
		if kind == resolver.Function {
			g.fail(e.Name.Line, "Cannot read from function: "+e.Name.Lexeme)
			return "", false
		}
		return fmt.Sprintf("\tld a, [%s]\n", e.Name.Lexeme), true

	case *ast.IndexedExpr:
		addr, ok := g.genElementAddress(e)
		if !ok {
			return "", false
		}
		return addr + "\tld a, [hl]\n", true

	case *ast.BinaryExpr:
		return g.genBinary(e)
	}

	return "", false
}

// genElementAddress emits the sequence that leaves the address of
// e.Name[e.Index] in HL: evaluate the index into A, zero-extend it into
// BC, load the array's base address, then add the two. This limits arrays
// to 256 elements, since the index is only ever widened from one byte.
func (g *generator) genElementAddress(e *ast.IndexedExpr) (string, bool) {
	kind, ok := g.directory.Lookup(e.Name.Lexeme)
	if !ok {
		g.fail(e.Name.Line, "Undefined variable: "+e.Name.Lexeme)
		return "", false
	}
	if kind == resolver.Function {
		g.fail(e.Name.Line, "Cannot index function: "+e.Name.Lexeme)
		return "", false
	}

	index, ok := g.genEvaluate(e.Index)
	if !ok {
		return "", false
	}

	var out strings.Builder
	out.WriteString(index)
	out.WriteString("\tld b, 0\n\tld c, a\n")
	out.WriteString(fmt.Sprintf("\tld hl, %s\n", e.Name.Lexeme))
	out.WriteString("\tadd hl, bc\n")
	return out.String(), true
}

// genBinary implements the left-result-first discipline: evaluate the left
// operand, stash it in C, evaluate the right operand into B, then restore
// the left operand into A before dispatching the operator. Because both
// evaluations run through A, this only works because the grammar never
// builds a Binary whose operand is itself Binary (see parser.term).
func (g *generator) genBinary(e *ast.BinaryExpr) (string, bool) {
	left, ok := g.genEvaluate(e.Left)
	if !ok {
		return "", false
	}
	right, ok := g.genEvaluate(e.Right)
	if !ok {
		return "", false
	}

	var out strings.Builder
	out.WriteString(left)
	out.WriteString("\tld c, a\n")
	out.WriteString(right)
	out.WriteString("\tld b, a\n")
	out.WriteString("\tld a, c\n")

	switch e.Operator.Kind {
	case token.Plus:
		out.WriteString("\tadd a, b\n")
	case token.Minus:
		out.WriteString("\tsub a, b\n")
	default:
		g.fail(e.Operator.Line, "Unexpected operator in binary expression.")
		return "", false
	}

	return out.String(), true
}
