// Package resolver builds the identifier directory codegen consults to
// tell variables and functions apart. It is a single linear scan over the
// parsed declarations — grounded on
// original_source/tugboat/src/analysis.rs's generate_directory.
package resolver

import "github.com/chrislewisdev/tugboat/ast"

// Kind is the coarse classification codegen needs for an identifier.
type Kind int

const (
	// Variable identifies a byte or byte-array declaration.
	Variable Kind = iota
	// Function identifies a function declaration.
	Function
)

// Directory maps a declared name to its Kind. Functions and variables
// share one namespace; if a name is declared twice the later declaration
// silently wins — see DESIGN.md for why this isn't flagged as an error.
type Directory map[string]Kind

// BuildDirectory performs the single linear scan that produces a Directory
// from a parsed declaration list.
func BuildDirectory(decls []ast.Declaration) Directory {
	dir := make(Directory, len(decls))

	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.VariableDecl:
			dir[d.Name.Lexeme] = Variable
		case *ast.FunctionDecl:
			dir[d.Name.Lexeme] = Function
		}
	}

	return dir
}

// Lookup reports the Kind registered for name, if any.
func (d Directory) Lookup(name string) (Kind, bool) {
	kind, ok := d[name]
	return kind, ok
}
