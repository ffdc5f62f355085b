// Package parser is a recursive-descent consumer of a token slice. It
// produces a list of top-level declarations and a list of diagnostics,
// following the teacher's peek/next/expect helper shape (grounded on
// original_source/tugboat/src/parser.rs) over a cursor instead of a
// VecDeque, since Go slices make indexing cheaper than repeated pop_front.
package parser

import (
	"github.com/chrislewisdev/tugboat/ast"
	"github.com/chrislewisdev/tugboat/diagnostic"
	"github.com/chrislewisdev/tugboat/token"
)

// parseErr carries a diagnostic through Go's error-return convention so
// every parse* method can use the familiar "if err != nil { return nil, err }"
// shape instead of threading an explicit diagnostic return everywhere.
type parseErr struct {
	diagnostic.Diagnostic
}

func (e *parseErr) Error() string { return e.Msg }

func newParseErr(line uint32, msg string) error {
	return &parseErr{diagnostic.New(line, msg)}
}

func toDiagnostic(err error) diagnostic.Diagnostic {
	if pe, ok := err.(*parseErr); ok {
		return pe.Diagnostic
	}
	return diagnostic.New(0, err.Error())
}

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse consumes tokens left to right, producing declarations and
// diagnostics. On a declaration-level error the diagnostic is recorded and
// parsing continues from the next token — there is no explicit sync set;
// a parse error deep inside a function body aborts that whole declaration
// and commonly cascades into one or more "Unsupported top-level statement."
// diagnostics as the leftover tokens are swept up.
func Parse(tokens []token.Token) ([]ast.Declaration, []diagnostic.Diagnostic) {
	p := &parser{tokens: tokens}

	var decls []ast.Declaration
	var errs []diagnostic.Diagnostic

	for !p.atEnd() {
		decl, err := p.declaration()
		if err != nil {
			errs = append(errs, toDiagnostic(err))
			continue
		}
		decls = append(decls, decl)
	}

	return decls, errs
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() (token.Token, bool) {
	if p.atEnd() {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) advance() (token.Token, bool) {
	if p.atEnd() {
		return token.Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) check(kind token.Kind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == kind
}

func (p *parser) match(kind token.Kind) (token.Token, bool) {
	if !p.check(kind) {
		return token.Token{}, false
	}
	return p.advance()
}

// expect consumes the next token unconditionally (mirroring the teacher's
// `next` helper, which pops before comparing) and turns a kind mismatch —
// or an empty queue — into a diagnostic at the offending line.
func (p *parser) expect(kind token.Kind, msg string) (token.Token, error) {
	tok, ok := p.advance()
	if !ok {
		return token.Token{}, newParseErr(0, "Expected a token in the parse queue.")
	}
	if tok.Kind != kind {
		return token.Token{}, newParseErr(tok.Line, msg)
	}
	return tok, nil
}

func (p *parser) declaration() (ast.Declaration, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, newParseErr(0, "Expected a token in the parse queue.")
	}

	switch tok.Kind {
	case token.Fn:
		return p.function()
	case token.Unsigned8:
		return p.variable()
	default:
		p.advance()
		return nil, newParseErr(tok.Line, "Unsupported top-level statement.")
	}
}

// function parses `fn Identifier ( ) { block`. Parameter lists are required
// to be empty: codegen has no calling convention to hand arguments through,
// so a non-empty list would parse into dead weight. See SPEC_FULL.md for
// the history of this decision.
func (p *parser) function() (ast.Declaration, error) {
	if _, err := p.expect(token.Fn, "Expected 'fn' keyword."); err != nil {
		return nil, err
	}
	name, err := p.expect(token.Identifier, "Expected a function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftParen, "Expected '(' after function name."); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "Expected ')' after argument list."); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftBrace, "Expected '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{Name: name, Body: body}, nil
}

// variable parses `u8 ( '[' Number ']' )? Identifier ;`.
func (p *parser) variable() (ast.Declaration, error) {
	if _, err := p.expect(token.Unsigned8, "Expected 'u8' keyword."); err != nil {
		return nil, err
	}

	size := uint8(1)
	if _, ok := p.match(token.LeftBracket); ok {
		sizeTok, err := p.expect(token.Number, "Expected an array size.")
		if err != nil {
			return nil, err
		}
		if !sizeTok.HasValue || sizeTok.Value == 0 {
			return nil, newParseErr(sizeTok.Line, "Array size must be between 1 and 255.")
		}
		size = sizeTok.Value
		if _, err := p.expect(token.RightBracket, "Expected ']' after array size."); err != nil {
			return nil, err
		}
	}

	name, err := p.expect(token.Identifier, "Expected a variable name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &ast.VariableDecl{Name: name, Size: size}, nil
}

// block parses `statement* }` — the opening brace is consumed by the
// caller (function/while), since it differs depending on what preceded it.
func (p *parser) block() ([]ast.Stmt, error) {
	var stmts []ast.Stmt

	for {
		if p.atEnd() {
			return nil, newParseErr(0, "Expected a token in the parse queue.")
		}
		if p.check(token.RightBrace) {
			break
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.expect(token.RightBrace, "Expected '}' after block."); err != nil {
		return nil, err
	}

	return stmts, nil
}

func (p *parser) statement() (ast.Stmt, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, newParseErr(0, "Expected a token in the parse queue.")
	}

	switch tok.Kind {
	case token.Halt:
		p.advance()
		if _, err := p.expect(token.Semicolon, "Expected ';' after 'halt'."); err != nil {
			return nil, err
		}
		return &ast.HaltStmt{Token: tok}, nil

	case token.While:
		return p.whileStatement()

	default:
		return p.exprStatement()
	}
}

func (p *parser) whileStatement() (ast.Stmt, error) {
	whileTok, _ := p.advance()

	if _, err := p.expect(token.LeftParen, "Expected '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "Expected ')' after while condition."); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftBrace, "Expected '{' before while body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Token: whileTok, Condition: condition, Body: body}, nil
}

// exprStatement parses `expression ( '=' expression )? ;`. The parser does
// not restrict what the left-hand expression may be — lvalue validation is
// deferred to codegen (§4.4), which rejects Literal/Binary assignment
// targets.
func (p *parser) exprStatement() (ast.Stmt, error) {
	left, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, ok := p.match(token.Equals); ok {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon, "Expected ';' after expression (nested expressions not supported)."); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: left, Value: value}, nil
	}

	if _, err := p.expect(token.Semicolon, "Expected ';' after expression (nested expressions not supported)."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: left}, nil
}

// expression is `term`: there's only one precedence level.
func (p *parser) expression() (ast.Expr, error) {
	return p.term()
}

// term is `primary ( ('+' | '-') primary )?`. Unlike a conventional
// left-associative parser, this stops after a single operation: §4.4 notes
// that codegen's register discipline (left operand cached in C, right
// operand in B) cannot evaluate a Binary expression whose operand is
// itself Binary, so the grammar never builds one. A second operator
// appearing where a statement terminator was expected surfaces as the
// "nested expressions not supported" diagnostic from the caller's
// subsequent expect(Semicolon); inside a while condition or an index it
// surfaces as the missing ')' or ']' diagnostic instead.
func (p *parser) term() (ast.Expr, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}

	tok, ok := p.peek()
	if ok && (tok.Kind == token.Plus || tok.Kind == token.Minus) {
		opTok, _ := p.advance()
		right, err := p.primary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Operator: opTok, Left: left, Right: right}, nil
	}

	return left, nil
}

// primary is `'true' | 'false' | Number | Identifier ( '[' expression ']' )?`.
func (p *parser) primary() (ast.Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, newParseErr(0, "Expected a token in the parse queue.")
	}

	switch tok.Kind {
	case token.True:
		p.advance()
		return &ast.LiteralExpr{Token: tok, Value: 1}, nil

	case token.False:
		p.advance()
		return &ast.LiteralExpr{Token: tok, Value: 0}, nil

	case token.Number:
		p.advance()
		return &ast.LiteralExpr{Token: tok, Value: tok.Value}, nil

	case token.Identifier:
		p.advance()
		if _, ok := p.match(token.LeftBracket); ok {
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightBracket, "Expected ']' after index expression."); err != nil {
				return nil, err
			}
			return &ast.IndexedExpr{Name: tok, Index: index}, nil
		}
		return &ast.VariableExpr{Name: tok}, nil

	default:
		return nil, newParseErr(tok.Line, "Expected an expression.")
	}
}
