// Package lex implements the lexer-construction half of the moray toolkit:
// compilation of token-definition regexes through the classic pipeline of
// Thompson NFA construction, subset construction to a DFA, and table-filling
// minimization, down to a dense transition table that a table-walking
// tokenizer drives with maximal munch.
//
// The automata in this package are character-level and arena-indexed: states
// live in per-automaton slices and edges hold destination indices. This is
// deliberately unlike the string-named automata of the automaton package,
// which exist for item-set DFAs; lexer states have identity, not value
// equality, and may freely form cycles.
package lex

import (
	"github.com/dekarrin/moray/morayerr"
)

// The regex dialect is small: literal characters, postfix '*', '+', and '?',
// alternation '|', and grouping with parentheses. There are no escape
// sequences. Concatenation is implicit in the input and made explicit by the
// preprocessor using an out-of-band marker rune before conversion to postfix
// with the shunting-yard algorithm.

// concatOp is the explicit concatenation marker inserted by the
// preprocessor. It is deliberately a control character so that it can never
// collide with a literal in user input; it never appears in any output of
// the pipeline.
const concatOp rune = '\x01'

// operator precedences; grouping parens are handled structurally and postfix
// operators bind tightest.
const (
	precAlternate = 1
	precConcat    = 2
	precPostfix   = 3
)

// pfToken is a single regex token along with the position in the original
// expression it came from, kept through the pipeline for error reporting.
type pfToken struct {
	ch  rune
	pos int
}

func isPostfixOp(ch rune) bool {
	return ch == '*' || ch == '+' || ch == '?'
}

// isOperand reports whether ch is a plain literal: not an operator, not a
// paren, and not the concat marker.
func isOperand(ch rune) bool {
	switch ch {
	case '|', '*', '+', '?', '(', ')', concatOp:
		return false
	}
	return true
}

func precedenceOf(ch rune) int {
	switch {
	case ch == '|':
		return precAlternate
	case ch == concatOp:
		return precConcat
	case isPostfixOp(ch):
		return precPostfix
	}
	return 0
}

// insertConcatMarkers makes implicit concatenation explicit. Scanning left
// to right, the marker goes between c₁ and c₂ exactly when c₁ can end a
// subexpression (an operand, ')', or a postfix operator) and c₂ can begin
// one (an operand or '(').
func insertConcatMarkers(expr string) []pfToken {
	var out []pfToken

	var prev rune
	havePrev := false

	for i, ch := range expr {
		if havePrev {
			prevEnds := isOperand(prev) || prev == ')' || isPostfixOp(prev)
			curBegins := isOperand(ch) || ch == '('

			if prevEnds && curBegins {
				out = append(out, pfToken{ch: concatOp, pos: i})
			}
		}

		out = append(out, pfToken{ch: ch, pos: i})
		prev = ch
		havePrev = true
	}

	return out
}

// toPostfix converts the marker-explicit infix token list to postfix with
// the shunting-yard algorithm. '|' and concatenation are left-associative;
// the postfix operators emit immediately since nothing ever binds tighter.
//
// Mismatched parentheses are NOT diagnosed here: an unmatched '(' is left to
// drain into the output when the stack empties, and an unmatched ')' is
// passed through. Either way the paren reaches the NFA builder as an invalid
// postfix token and surfaces as a regex error there, position intact.
func toPostfix(infix []pfToken) []pfToken {
	var out []pfToken
	var opStack []pfToken

	for _, tok := range infix {
		switch {
		case isOperand(tok.ch):
			out = append(out, tok)

		case isPostfixOp(tok.ch):
			out = append(out, tok)

		case tok.ch == '(':
			opStack = append(opStack, tok)

		case tok.ch == ')':
			matched := false
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				opStack = opStack[:len(opStack)-1]
				if top.ch == '(' {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				out = append(out, tok)
			}

		default:
			// binary operator: pop while the top has >= precedence
			// (left-associative)
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.ch == '(' || precedenceOf(top.ch) < precedenceOf(tok.ch) {
					break
				}
				out = append(out, top)
				opStack = opStack[:len(opStack)-1]
			}
			opStack = append(opStack, tok)
		}
	}

	for len(opStack) > 0 {
		out = append(out, opStack[len(opStack)-1])
		opStack = opStack[:len(opStack)-1]
	}

	return out
}

// regexErr builds a *morayerr.RegexError for the given expression.
func regexErr(expr string, pos int, msg string) error {
	return &morayerr.RegexError{Expr: expr, Pos: pos, Message: msg}
}
