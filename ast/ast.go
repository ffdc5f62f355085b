// Package ast defines the tree shapes shared by the parser, resolver, and
// code generator: top-level Declarations, the Stmts inside a function body,
// and the Exprs inside a statement.
//
// Each family is modelled as a marker interface implemented only by the
// structs declared alongside it, giving a closed, exhaustively-switchable
// variant set without a generated sum-type library.
package ast

import "github.com/chrislewisdev/tugboat/token"

// Declaration is a top-level item: a Variable or a Function.
type Declaration interface {
	declarationNode()
}

// VariableDecl declares a byte, or a contiguous array of bytes.
//
// Size is 1 for the non-array form; for `u8[N] name;` it is N, which the
// lexer's u8 parse caps at 255 and the parser rejects when it is 0.
type VariableDecl struct {
	Name Token
	Size uint8
}

func (*VariableDecl) declarationNode() {}

// FunctionDecl declares a function body. Arguments is always empty: the
// parser only accepts an empty parameter list, and codegen never reads the
// field, since Tugboat has no calling convention for passing arguments.
type FunctionDecl struct {
	Name      Token
	Arguments []Token
	Body      []Stmt
}

func (*FunctionDecl) declarationNode() {}

// Stmt is anything that can appear in a function body.
type Stmt interface {
	stmtNode()
}

// HaltStmt halts the CPU.
type HaltStmt struct {
	Token Token
}

func (*HaltStmt) stmtNode() {}

// WhileStmt repeats Body for as long as Condition evaluates non-zero.
type WhileStmt struct {
	Token     Token
	Condition Expr
	Body      []Stmt
}

func (*WhileStmt) stmtNode() {}

// AssignStmt stores Value into Target. The grammar does not restrict what
// Target may be; codegen is responsible for rejecting non-lvalue targets
// (Literal, Binary).
type AssignStmt struct {
	Target Expr
	Value  Expr
}

func (*AssignStmt) stmtNode() {}

// ExpressionStmt evaluates Expr and discards the result. The only reason
// to write one is a side-effecting expression, but Tugboat has none today;
// it exists so the grammar's `exprStmt` production has somewhere to go
// when it isn't followed by `=`.
type ExpressionStmt struct {
	Expr Expr
}

func (*ExpressionStmt) stmtNode() {}

// Expr is anything that produces a value.
type Expr interface {
	exprNode()
}

// LiteralExpr is a constant in [0, 255].
type LiteralExpr struct {
	Token Token
	Value uint8
}

func (*LiteralExpr) exprNode() {}

// VariableExpr reads a named variable (or, invalidly, a function — codegen
// catches that).
type VariableExpr struct {
	Name Token
}

func (*VariableExpr) exprNode() {}

// IndexedExpr reads `name[index]`: one element of an array variable.
type IndexedExpr struct {
	Name  Token
	Index Expr
}

func (*IndexedExpr) exprNode() {}

// BinaryExpr is `left operator right`. The grammar only ever builds these
// with Literal/Variable/Indexed operands (see parser package) — nested
// Binary operands are rejected at parse time, because codegen's register
// discipline (left operand cached in C, right operand in B) can't survive
// nesting without a stack.
type BinaryExpr struct {
	Operator Token
	Left     Expr
	Right    Expr
}

func (*BinaryExpr) exprNode() {}

// Token is a thin alias so this package doesn't force every caller to
// import token as well when embedding a token.Token inside an AST node.
type Token = token.Token
