package lex

import (
	"strings"
	"testing"

	"github.com/dekarrin/moray/types"
	"github.com/stretchr/testify/assert"
)

func Test_Lexer_strictAlphabet(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	if !assert.NoError(lx.AddPattern("(a|b)*c+", "ABC")) {
		return
	}

	// alphabet missing 'c'; lenient build works and just never reaches an
	// accept on the missing character
	lx.SetAlphabet([]rune{'a', 'b'})
	_, err := lx.Build()
	assert.NoError(err)

	// strict build refuses
	lx2 := NewLexer()
	if !assert.NoError(lx2.AddPattern("(a|b)*c+", "ABC")) {
		return
	}
	lx2.SetAlphabet([]rune{'a', 'b'})
	lx2.SetStrict(true)

	_, err = lx2.Build()
	if !assert.Error(err) {
		return
	}
	alphaErr, ok := err.(*AlphabetError)
	if !assert.True(ok) {
		return
	}
	assert.Equal([]rune{'c'}, alphaErr.Missing)
}

func Test_Lexer_addPatternRejectsMalformedRegex(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	err := lx.AddPattern("(ab", "AB")
	assert.Error(err)
}

func Test_Lexer_LexStream(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	if !assert.NoError(lx.AddPattern("ab", "AB")) {
		return
	}
	if !assert.NoError(lx.AddPattern("c", "C")) {
		return
	}

	stream, err := lx.Lex(strings.NewReader("abc\nab"))
	if !assert.NoError(err) {
		return
	}

	tok := stream.Next()
	assert.Equal("ab", tok.Class().ID())
	assert.Equal("ab", tok.Lexeme())
	assert.Equal(1, tok.Line())
	assert.Equal(1, tok.LinePos())
	assert.Equal("abc", tok.FullLine())

	tok = stream.Next()
	assert.Equal("c", tok.Class().ID())
	assert.Equal(3, tok.LinePos())

	// the newline is not in the derived alphabet, so it comes through as an
	// UNKNOWN token
	tok = stream.Next()
	assert.True(tok.Class().Equal(types.TokenUnknown))
	assert.Equal("\n", tok.Lexeme())

	tok = stream.Next()
	assert.Equal("ab", tok.Class().ID())
	assert.Equal(2, tok.Line())
	assert.Equal(1, tok.LinePos())
	assert.Equal("ab", tok.FullLine())

	assert.True(stream.HasNext())
	tok = stream.Next()
	assert.True(tok.Class().Equal(types.TokenEndOfText))
	assert.False(stream.HasNext())

	// the stream stays pinned at end-of-text
	assert.True(stream.Next().Class().Equal(types.TokenEndOfText))
}

func Test_Lexer_unknownCharactersBecomeUnknownTokens(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	if !assert.NoError(lx.AddPattern("ab", "AB")) {
		return
	}

	stream, err := lx.Lex(strings.NewReader("ab!"))
	if !assert.NoError(err) {
		return
	}

	tok := stream.Next()
	assert.Equal("ab", tok.Class().ID())

	tok = stream.Next()
	assert.True(tok.Class().Equal(types.TokenUnknown))
	assert.Equal("!", tok.Lexeme())
}
