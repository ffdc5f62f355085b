package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chrislewisdev/tugboat/ast"
	"github.com/chrislewisdev/tugboat/token"
)

func ident(name string) token.Token {
	return token.Token{Kind: token.Identifier, Lexeme: name}
}

func TestBuildDirectory(t *testing.T) {
	decls := []ast.Declaration{
		&ast.VariableDecl{Name: ident("counter"), Size: 1},
		&ast.FunctionDecl{Name: ident("main")},
	}

	dir := BuildDirectory(decls)

	kind, ok := dir.Lookup("counter")
	assert.True(t, ok)
	assert.Equal(t, Variable, kind)

	kind, ok = dir.Lookup("main")
	assert.True(t, ok)
	assert.Equal(t, Function, kind)

	_, ok = dir.Lookup("missing")
	assert.False(t, ok)
}

func TestBuildDirectoryLastDeclarationWins(t *testing.T) {
	decls := []ast.Declaration{
		&ast.VariableDecl{Name: ident("thing"), Size: 1},
		&ast.FunctionDecl{Name: ident("thing")},
	}

	dir := BuildDirectory(decls)

	kind, ok := dir.Lookup("thing")
	assert.True(t, ok)
	assert.Equal(t, Function, kind)
}
