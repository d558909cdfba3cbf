package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// renders a token list with '.' standing in for the concat marker so
// expectations stay readable.
func tokensToString(toks []pfToken) string {
	out := ""
	for _, t := range toks {
		if t.ch == concatOp {
			out += "."
		} else {
			out += string(t.ch)
		}
	}
	return out
}

func Test_insertConcatMarkers(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "single char", input: "a", expect: "a"},
		{name: "two chars", input: "ab", expect: "a.b"},
		{name: "alternation is untouched", input: "a|b", expect: "a|b"},
		{name: "after close paren", input: "(a|b)c", expect: "(a|b).c"},
		{name: "after star", input: "a*b", expect: "a*.b"},
		{name: "after plus", input: "a+b", expect: "a+.b"},
		{name: "after optional", input: "a?b", expect: "a?.b"},
		{name: "before open paren", input: "a(b)", expect: "a.(b)"},
		{name: "postfix then open paren inserts once", input: "a*(b)", expect: "a*.(b)"},
		{name: "no marker around operators", input: "a|b*", expect: "a|b*"},
		{name: "full pattern", input: "(a|b)*c+", expect: "(a|b)*.c+"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := insertConcatMarkers(tc.input)

			assert.Equal(tc.expect, tokensToString(actual))
		})
	}
}

func Test_toPostfix(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "single char", input: "a", expect: "a"},
		{name: "concatenation", input: "ab", expect: "ab."},
		{name: "alternation", input: "a|b", expect: "ab|"},
		{name: "left-assoc alternation", input: "a|b|c", expect: "ab|c|"},
		{name: "concat binds tighter than alternation", input: "ab|c", expect: "ab.c|"},
		{name: "star emits immediately", input: "a*b", expect: "a*b."},
		{name: "grouping", input: "(a|b)c", expect: "ab|c."},
		{name: "full pattern", input: "(a|b)*c+", expect: "ab|*c+."},
		{name: "nested groups", input: "((a))", expect: "a"},
		{name: "unmatched open drains to output", input: "(ab", expect: "ab.("},
		{name: "unmatched close passes through", input: "a)", expect: "a)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := toPostfix(insertConcatMarkers(tc.input))

			assert.Equal(tc.expect, tokensToString(actual))
		})
	}
}

func Test_toPostfix_positionsSurvive(t *testing.T) {
	assert := assert.New(t)

	// "ab|c" -> a(0) b(1) .(1) c(3) |(2); every token must still point at
	// its source position
	postfix := toPostfix(insertConcatMarkers("ab|c"))

	wantChars := "ab.c|"
	assert.Equal(wantChars, tokensToString(postfix))

	wantPos := []int{0, 1, 1, 3, 2}
	for i := range postfix {
		assert.Equal(wantPos[i], postfix[i].pos, "token %d", i)
	}
}
