package parse

import (
	"fmt"

	"github.com/dekarrin/moray/types"
)

// mockStream is a very simple token stream for tests.
type mockStream struct {
	tokens []types.Token
	cur    int
	done   bool
}

func (ts *mockStream) Next() types.Token {
	n := ts.tokens[ts.cur]
	if ts.cur+1 < len(ts.tokens) {
		ts.cur++
	} else {
		ts.done = true
	}
	return n
}

func (ts *mockStream) Peek() types.Token {
	return ts.tokens[ts.cur]
}

func (ts *mockStream) HasNext() bool {
	return !ts.done
}

type mockToken struct {
	c      types.TokenClass
	l      int
	lp     int
	lexeme string
	f      string
}

func (tok mockToken) FullLine() string {
	return tok.f
}

func (tok mockToken) Class() types.TokenClass {
	return tok.c
}

func (tok mockToken) Line() int {
	return tok.l
}

func (tok mockToken) LinePos() int {
	return tok.lp
}

func (tok mockToken) Lexeme() string {
	return tok.lexeme
}

func (tok mockToken) String() string {
	return fmt.Sprintf("(%s %q)", tok.c.ID(), tok.lexeme)
}

// mockTokens builds a token stream from terminal names, one token per
// terminal, with an end-of-text token appended.
func mockTokens(ofTerm ...string) types.TokenStream {
	fullLine := ""
	for i := range ofTerm {
		if i > 0 {
			fullLine += " "
		}
		fullLine += ofTerm[i]
	}

	var mocked []types.Token

	curLinePos := 1
	for i := range ofTerm {
		tc := types.MakeDefaultClass(ofTerm[i])
		m := mockToken{c: tc, l: 1, lp: curLinePos, lexeme: tc.ID(), f: fullLine}
		mocked = append(mocked, m)
		curLinePos += len(ofTerm[i]) + 1
	}

	mocked = append(mocked, mockToken{c: types.TokenEndOfText, l: 1, lp: curLinePos, f: fullLine})

	return &mockStream{tokens: mocked}
}
