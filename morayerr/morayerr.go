// Package morayerr defines the error types reported by the moray toolkit
// when input — a regular expression, or source text being lexed or parsed —
// is malformed. Errors that quote source carry enough position
// information to point at the offending spot.
package morayerr

import (
	"fmt"
	"strings"

	"github.com/dekarrin/moray/types"
)

// SyntaxError is an error in the text being analyzed by a generated front
// end. It carries the position of the problem and, when available, the full
// source line so the message can quote it.
type SyntaxError struct {
	// message is the description of the problem, without position info.
	message string

	line     int
	pos      int
	fullLine string
}

// NewSyntaxErrorFromToken creates a SyntaxError at the position of the given
// token.
func NewSyntaxErrorFromToken(msg string, tok types.Token) *SyntaxError {
	return &SyntaxError{
		message:  msg,
		line:     tok.Line(),
		pos:      tok.LinePos(),
		fullLine: tok.FullLine(),
	}
}

// Error returns the message with position info prepended.
func (se *SyntaxError) Error() string {
	if se.line == 0 {
		return fmt.Sprintf("syntax error: %s", se.message)
	}
	return fmt.Sprintf("syntax error around line %d, char %d: %s", se.line, se.pos, se.message)
}

// FullMessage is the complete message, including a quote of the source line
// with a marker under the offending position when the source line is known.
func (se *SyntaxError) FullMessage() string {
	msg := se.Error()

	if se.fullLine != "" {
		msg = fmt.Sprintf("%s:\n%s", msg, se.SourceQuote())
	}

	return msg
}

// SourceQuote renders the source line with a cursor marking the position the
// error occured at.
func (se *SyntaxError) SourceQuote() string {
	cursorLine := ""
	for i := 0; i < se.pos-1 && i < len(se.fullLine); i++ {
		if se.fullLine[i] == '\t' {
			cursorLine += "\t"
		} else {
			cursorLine += " "
		}
	}

	return fmt.Sprintf("%s\n%s", strings.TrimSuffix(se.fullLine, "\n"), cursorLine+"^")
}

// Line returns the 1-indexed line number of the error, or 0 if unknown.
func (se *SyntaxError) Line() int {
	return se.line
}

// Pos returns the 1-indexed character-of-line of the error, or 0 if unknown.
func (se *SyntaxError) Pos() int {
	return se.pos
}

// RegexError is an error in a regular expression given to the lexer builder.
// Pos is the 0-indexed position within the pattern that the problem was
// detected at, or -1 when the position is not known.
type RegexError struct {
	// Expr is the offending regular expression as given by the user.
	Expr string

	// Pos is where in Expr the problem is, or -1 if unknown.
	Pos int

	// Message describes the problem.
	Message string
}

func (re *RegexError) Error() string {
	if re.Pos < 0 {
		return fmt.Sprintf("malformed regex %q: %s", re.Expr, re.Message)
	}
	return fmt.Sprintf("malformed regex %q at position %d: %s", re.Expr, re.Pos, re.Message)
}
