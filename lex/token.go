package lex

import (
	"fmt"

	"github.com/dekarrin/moray/types"
)

// implementation of TokenClass interface for lex package use only.
type lexerClass struct {
	id   string
	name string
}

func (lc lexerClass) ID() string {
	return lc.id
}

func (lc lexerClass) Human() string {
	return lc.name
}

func (lc lexerClass) Equal(o any) bool {
	other, ok := o.(types.TokenClass)
	if !ok {
		otherPtr, ok := o.(*types.TokenClass)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return other.ID() == lc.ID()
}

// NewTokenClass creates a token class with the given ID and human-readable
// name.
func NewTokenClass(id string, human string) types.TokenClass {
	return lexerClass{id: id, name: human}
}

// implementation of Token interface for lex package use only.
type lexerToken struct {
	class   types.TokenClass
	lexed   string
	linePos int
	lineNum int
	line    string
}

func (lt lexerToken) Class() types.TokenClass {
	return lt.class
}

func (lt lexerToken) Lexeme() string {
	return lt.lexed
}

func (lt lexerToken) LinePos() int {
	return lt.linePos
}

func (lt lexerToken) Line() int {
	return lt.lineNum
}

func (lt lexerToken) FullLine() string {
	return lt.line
}

func (lt lexerToken) String() string {
	return fmt.Sprintf("(%s %q)", lt.class.ID(), lt.lexed)
}

// tokenStream is an immediately-loaded types.TokenStream over a slice of
// tokens. The final element is always the end-of-text token.
type tokenStream struct {
	tokens []lexerToken
	cur    int

	// done is set once Next has returned the final token.
	done bool
}

func (ts *tokenStream) Next() types.Token {
	t := ts.tokens[ts.cur]
	if ts.cur+1 < len(ts.tokens) {
		ts.cur++
	} else {
		ts.done = true
	}
	return t
}

func (ts *tokenStream) Peek() types.Token {
	return ts.tokens[ts.cur]
}

func (ts *tokenStream) HasNext() bool {
	return !ts.done
}
