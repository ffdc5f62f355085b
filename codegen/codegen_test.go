package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrislewisdev/tugboat/lexer"
	"github.com/chrislewisdev/tugboat/parser"
	"github.com/chrislewisdev/tugboat/resolver"
)

func generate(t *testing.T, source string) (string, []string) {
	t.Helper()
	tokens, lexErrs := lexer.Lex(source)
	require.Empty(t, lexErrs)
	decls, parseErrs := parser.Parse(tokens)
	require.Empty(t, parseErrs)

	dir := resolver.BuildDirectory(decls)
	out, errs := Generate(decls, dir)

	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Msg
	}
	return out, msgs
}

// S1: a minimal program with no variables, only a halting main.
func TestGenerateMinimalProgram(t *testing.T) {
	out, errs := generate(t, "fn main() { halt; }")
	require.Empty(t, errs)

	assert.Equal(t, "SECTION \"Variables\", WRAM0\n"+
		"SECTION \"Functions\", ROM0\n"+
		"main::\n"+
		"\thalt\n"+
		"\tret\n", out)
}

// S2: a variable declaration and a straight-line assignment.
func TestGenerateVariableAssignment(t *testing.T) {
	out, errs := generate(t, "u8 counter;\nfn main() {\ncounter = 5;\nhalt;\n}\n")
	require.Empty(t, errs)

	assert.Contains(t, out, "counter:: ds 1\n")
	assert.Contains(t, out, "\tld a, 5\n\tld [counter], a\n")
	varsIdx := strings.Index(out, "SECTION \"Variables\"")
	funcsIdx := strings.Index(out, "SECTION \"Functions\"")
	assert.Less(t, varsIdx, funcsIdx)
}

// S3: assigning to a function name is rejected with no trailing period.
func TestGenerateAssignToFunctionRejected(t *testing.T) {
	_, errs := generate(t, "fn main() { main = 1; halt; }")
	require.Len(t, errs, 1)
	assert.Equal(t, "Cannot assign to function", errs[0])
}

// S4: assigning to an undefined variable is rejected.
func TestGenerateUndefinedVariableRejected(t *testing.T) {
	_, errs := generate(t, "fn main() { missing = 1; halt; }")
	require.Len(t, errs, 1)
	assert.Equal(t, "Undefined variable: missing", errs[0])
}

// S6: an array declaration and an indexed write sequence.
func TestGenerateArrayIndexing(t *testing.T) {
	out, errs := generate(t, "u8[4] buf;\nfn main() {\nbuf[0] = 9;\nhalt;\n}\n")
	require.Empty(t, errs)

	assert.Contains(t, out, "buf:: ds 4\n")
	assert.Contains(t, out, "\tld a, 0\n\tld b, 0\n\tld c, a\n\tld hl, buf\n\tadd hl, bc\n")
	assert.Contains(t, out, "\tld a, 9\n\tld [hl], a\n")
}

func TestGenerateIndexedRead(t *testing.T) {
	out, errs := generate(t, "u8[4] buf;\nu8 x;\nfn main() {\nx = buf[1];\nhalt;\n}\n")
	require.Empty(t, errs)
	assert.Contains(t, out, "\tld a, [hl]\n\tld [x], a\n")
}

func TestGenerateWhileLoop(t *testing.T) {
	out, errs := generate(t, "u8 v; fn main() { while (v) { halt; } }")
	require.Empty(t, errs)

	assert.Contains(t, out, ".startWhile_0\n")
	assert.Contains(t, out, "\tor a\n")
	assert.Contains(t, out, "\tjr z, .endWhile_0\n")
	assert.Contains(t, out, "\tjr .startWhile_0\n")
	assert.Contains(t, out, ".endWhile_0\n")
}

func TestGenerateWhileLoopLabelsAreUniquePerLoop(t *testing.T) {
	out, errs := generate(t, "u8 v; fn main() {\nwhile (v) { halt; }\nwhile (v) { halt; }\n}")
	require.Empty(t, errs)

	assert.Contains(t, out, ".startWhile_0\n")
	assert.Contains(t, out, ".startWhile_1\n")
	assert.Contains(t, out, ".endWhile_0\n")
	assert.Contains(t, out, ".endWhile_1\n")
}

func TestGenerateBinaryExpression(t *testing.T) {
	out, errs := generate(t, "u8 v; fn main() { v = 1 + 2; halt; }")
	require.Empty(t, errs)

	assert.Contains(t, out, "\tld a, 1\n\tld c, a\n\tld a, 2\n\tld b, a\n\tld a, c\n\tadd a, b\n")
}

func TestGenerateBinaryMinus(t *testing.T) {
	out, errs := generate(t, "u8 v; fn main() { v = 5 - 1; halt; }")
	require.Empty(t, errs)
	assert.Contains(t, out, "\tsub a, b\n")
}

func TestGenerateAssignToLiteralRejected(t *testing.T) {
	// The parser doesn't restrict assignment targets (§4.4 defers lvalue
	// validation to codegen), so "5 = 1;" parses fine and only fails here.
	_, errs := generate(t, "fn main() { 5 = 1; halt; }")
	require.Len(t, errs, 1)
	assert.Equal(t, "Cannot assign to non-variable.", errs[0])
}

func TestGenerateCannotIndexFunction(t *testing.T) {
	_, errs := generate(t, "fn main() { main[0] = 1; halt; }")
	require.Len(t, errs, 1)
	assert.Equal(t, "Cannot index function: main", errs[0])
}

func TestGenerateCannotReadFromFunction(t *testing.T) {
	_, errs := generate(t, "u8 v; fn main() { v = main; halt; }")
	require.Len(t, errs, 1)
	assert.Equal(t, "Cannot read from function: main", errs[0])
}

func TestGenerateDeclarationOrderPreservedWithinSection(t *testing.T) {
	out, errs := generate(t, "u8 first;\nu8 second;\nfn a() { halt; }\nfn b() { halt; }\n")
	require.Empty(t, errs)

	firstIdx := strings.Index(out, "first:: ds 1")
	secondIdx := strings.Index(out, "second:: ds 1")
	aIdx := strings.Index(out, "a::")
	bIdx := strings.Index(out, "b::")

	assert.Less(t, firstIdx, secondIdx)
	assert.Less(t, aIdx, bIdx)
}
