// Package types holds the types shared between the lexing and parsing sides
// of the moray toolkit: tokens and their classes, token streams, parse trees,
// and the identifiers of the parsing algorithms.
package types

import "strings"

// TokenClass is the class of a token; the lexical category it belongs to.
// Parsers match grammar terminals against the ID of a token's class.
type TokenClass interface {
	// ID returns the ID of the token class. The ID must uniquely identify the
	// token class within all terminals of a grammar.
	ID() string

	// Human returns a human-readable name for the token class, for use in
	// contexts such as error reporting.
	Human() string

	// Equal returns whether the TokenClass equals another. If two IDs are the
	// same, Equal must return true.
	Equal(o any) bool
}

type simpleTokenClass string

func (class simpleTokenClass) ID() string {
	return strings.ToLower(string(class))
}

func (class simpleTokenClass) Human() string {
	return string(class)
}

func (class simpleTokenClass) Equal(o any) bool {
	other, ok := o.(TokenClass)
	if !ok {
		otherPtr, ok := o.(*TokenClass)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return other.ID() == class.ID()
}

const (
	// TokenUndefined is the out-of-band class of tokens that did not match
	// any defined class.
	TokenUndefined = simpleTokenClass("undefined_token")

	// TokenEndOfText is the class of the end-of-input marker token. Its ID is
	// the "$" symbol that grammars use for end-of-input.
	TokenEndOfText = simpleTokenClass("$")

	// TokenError is the class of tokens produced when lexing itself fails;
	// the lexeme is a message explaining the problem.
	TokenError = simpleTokenClass("error_token")

	// TokenUnknown is the class emitted by the tokenizer for a character that
	// cannot begin any token. It covers exactly one input character.
	TokenUnknown = simpleTokenClass("UNKNOWN")
)

// MakeDefaultClass takes a string and returns a TokenClass that uses the
// lower-case version of the string as its ID and the un-modified string as
// its human-readable name.
func MakeDefaultClass(s string) TokenClass {
	return simpleTokenClass(s)
}
