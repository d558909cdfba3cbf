package morayerr

import (
	"testing"

	"github.com/dekarrin/moray/types"
	"github.com/stretchr/testify/assert"
)

type fakeToken struct {
	line    int
	linePos int
	full    string
}

func (t fakeToken) Class() types.TokenClass { return types.TokenUndefined }
func (t fakeToken) Lexeme() string          { return "x" }
func (t fakeToken) LinePos() int            { return t.linePos }
func (t fakeToken) Line() int               { return t.line }
func (t fakeToken) FullLine() string        { return t.full }
func (t fakeToken) String() string          { return "x" }

func Test_SyntaxError_quotesSource(t *testing.T) {
	assert := assert.New(t)

	tok := fakeToken{line: 2, linePos: 5, full: "abc def"}
	err := NewSyntaxErrorFromToken("something is off", tok)

	assert.Contains(err.Error(), "line 2, char 5")
	assert.Contains(err.Error(), "something is off")

	full := err.FullMessage()
	assert.Contains(full, "abc def")
	assert.Contains(full, "    ^")

	assert.Equal(2, err.Line())
	assert.Equal(5, err.Pos())
}

func Test_RegexError_positions(t *testing.T) {
	assert := assert.New(t)

	withPos := &RegexError{Expr: "a)", Pos: 1, Message: "unmatched parenthesis"}
	assert.Contains(withPos.Error(), "position 1")
	assert.Contains(withPos.Error(), `"a)"`)

	noPos := &RegexError{Expr: "", Pos: -1, Message: "empty pattern"}
	assert.NotContains(noPos.Error(), "position")
}
