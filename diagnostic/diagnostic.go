// Package diagnostic holds the error type shared by every compiler stage.
//
// A Diagnostic is not a Go error: lexing, parsing, and code generation all
// keep running after producing one, so that a single invocation can surface
// as many problems as possible. Only the CLI front-end ever turns a
// Diagnostic list into something fatal.
package diagnostic

import "fmt"

// Diagnostic is a single compiler complaint, tied to a 1-based source line.
//
// Line 0 is used when no real position is available, e.g. when the parser
// runs off the end of the token queue.
type Diagnostic struct {
	Line uint32
	Msg  string
}

// New builds a Diagnostic from a line number and a message.
func New(line uint32, msg string) Diagnostic {
	return Diagnostic{Line: line, Msg: msg}
}

// String renders a Diagnostic the way the CLI prints it: "[line N] error: msg".
func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] error: %s", d.Line, d.Msg)
}
