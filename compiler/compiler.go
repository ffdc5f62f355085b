// Package compiler wires the lexer, parser, resolver, and code generator
// into the single pipeline described at the top of the teacher's own
// compiler.go: tokenize, build an internal form, then walk it to emit
// output. Diagnostics replace the teacher's single `error` return because
// a Tugboat source file can fail in more than one place at once.
package compiler

import (
	"github.com/chrislewisdev/tugboat/codegen"
	"github.com/chrislewisdev/tugboat/diagnostic"
	"github.com/chrislewisdev/tugboat/lexer"
	"github.com/chrislewisdev/tugboat/parser"
	"github.com/chrislewisdev/tugboat/resolver"
)

// Compile runs source through the full pipeline and returns either the
// generated assembly or a non-empty list of diagnostics.
//
// Lexing and parsing always run, and their diagnostics are combined; if
// either produced any, the resolver and code generator are skipped
// entirely, per the pipeline's short-circuit policy. Diagnostics are
// always returned in lex-then-parse-then-codegen order.
func Compile(source string) (string, []diagnostic.Diagnostic) {
	tokens, lexErrs := lexer.Lex(source)
	decls, parseErrs := parser.Parse(tokens)

	errs := append(append([]diagnostic.Diagnostic{}, lexErrs...), parseErrs...)
	if len(errs) > 0 {
		return "", errs
	}

	directory := resolver.BuildDirectory(decls)
	out, genErrs := codegen.Generate(decls, directory)
	if len(genErrs) > 0 {
		return "", genErrs
	}

	return out, nil
}
