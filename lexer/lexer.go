// Package lexer turns Tugboat source text into a token stream.
//
// It follows the teacher's rune-queue design (current character plus a
// one-character lookahead, advanced with readChar/peekChar) but produces a
// full token list up front rather than a pull-based NextToken, since it's
// simpler to hand the parser a slice it walks with a cursor.
package lexer

import (
	"strconv"

	"github.com/chrislewisdev/tugboat/diagnostic"
	"github.com/chrislewisdev/tugboat/token"
)

// lexer holds scanning state over one source string.
type lexer struct {
	position     int    // current character position
	readPosition int    // next character position
	ch           rune   // current character
	characters   []rune // rune slice of the input
	line         uint32

	tokens []token.Token
	errors []diagnostic.Diagnostic
}

// Lex scans source into a token list and a diagnostic list. The token list
// is returned even when errors are present, so callers that want
// best-effort output (e.g. tooling, not this compiler's own pipeline) can
// still use it; the compiler package discards it on any diagnostic.
func Lex(source string) ([]token.Token, []diagnostic.Diagnostic) {
	l := &lexer{characters: []rune(source), line: 1}
	l.readChar()

	for l.ch != 0 {
		l.scanOne()
	}

	return l.tokens, l.errors
}

func (l *lexer) readChar() {
	if l.readPosition >= len(l.characters) {
		l.ch = 0
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return 0
	}
	return l.characters[l.readPosition]
}

func (l *lexer) add(kind token.Kind, lexeme string) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: lexeme, Line: l.line})
}

func (l *lexer) addNumber(lexeme string, value uint8) {
	l.tokens = append(l.tokens, token.Token{Kind: token.Number, Lexeme: lexeme, Value: value, HasValue: true, Line: l.line})
}

func (l *lexer) error(msg string) {
	l.errors = append(l.errors, diagnostic.New(l.line, msg))
}

// scanOne consumes exactly one lexeme (or one newline, or one horizontal
// whitespace character, or one discarded comment) starting at l.ch.
func (l *lexer) scanOne() {
	switch {
	case l.ch == '\n':
		l.line++
		l.readChar()

	case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
		l.readChar()

	case l.ch == '/' && l.peekChar() == '/':
		l.skipLineComment()

	case l.ch == '=' && l.peekChar() == '=':
		l.addNewlineSafeTwoChar(token.EqualsEquals)
	case l.ch == '>' && l.peekChar() == '=':
		l.addNewlineSafeTwoChar(token.GreaterEqual)
	case l.ch == '<' && l.peekChar() == '=':
		l.addNewlineSafeTwoChar(token.LessEqual)

	case l.ch == '\'':
		l.scanCharLiteral()

	case isDigit(l.ch):
		l.scanNumber()

	case isAlpha(l.ch):
		l.scanIdentifier()

	default:
		if kind, ok := token.SingleChars[l.ch]; ok {
			l.add(kind, string(l.ch))
			l.readChar()
		} else {
			l.error("Unexpected character: " + string(l.ch))
			l.readChar()
		}
	}
}

// addNewlineSafeTwoChar consumes both characters of a greedily-matched
// two-character operator and emits its token.
func (l *lexer) addNewlineSafeTwoChar(kind token.Kind) {
	lexeme := string(l.ch) + string(l.peekChar())
	l.add(kind, lexeme)
	l.readChar()
	l.readChar()
}

func (l *lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// scanCharLiteral reads 'c' and emits a Number token holding c's code
// point truncated to a u8, per §4.1's character-literal rules.
func (l *lexer) scanCharLiteral() {
	line := l.line
	l.readChar() // consume opening '

	var contents []rune
	for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
		contents = append(contents, l.ch)
		l.readChar()
	}

	if l.ch != '\'' {
		l.errors = append(l.errors, diagnostic.New(line, "Character literal should be exactly one character"))
		return
	}
	l.readChar() // consume closing '

	if len(contents) != 1 {
		l.errors = append(l.errors, diagnostic.New(line, "Character literal should be exactly one character"))
		return
	}

	codepoint := contents[0]
	if codepoint > 255 {
		l.errors = append(l.errors, diagnostic.New(line, "Failed to convert character to u8"))
		return
	}

	l.tokens = append(l.tokens, token.Token{
		Kind:     token.Number,
		Lexeme:   "'" + string(codepoint) + "'",
		Value:    uint8(codepoint),
		HasValue: true,
		Line:     line,
	})
}

func (l *lexer) scanNumber() {
	line := l.line
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	lexeme := string(l.characters[start:l.position])

	value, err := strconv.ParseUint(lexeme, 10, 8)
	if err != nil {
		l.errors = append(l.errors, diagnostic.New(line, "Failed to parse literal: "+err.Error()))
		return
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.Number, Lexeme: lexeme, Value: uint8(value), HasValue: true, Line: line})
}

func (l *lexer) scanIdentifier() {
	line := l.line
	start := l.position
	for isAlphaNumeric(l.ch) {
		l.readChar()
	}
	lexeme := string(l.characters[start:l.position])

	if kind, ok := token.LookupIdentifier(lexeme); ok {
		l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: lexeme, Line: line})
	} else {
		l.tokens = append(l.tokens, token.Token{Kind: token.Identifier, Lexeme: lexeme, Line: line})
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch) || ch == '_'
}
