package parse

import (
	"testing"

	"github.com/dekarrin/moray/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_ConstructSLR1Table(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(expressionGrammar)

	table := ConstructSLR1Table(g)

	assert.Empty(table.Conflicts())

	// twelve states, same machine as the LR(0) collection
	act := table.Action(table.Initial(), "id")
	assert.Equal(LRShift, act.Type)

	_, err := table.Goto(table.Initial(), "E")
	assert.NoError(err)
}

func Test_SLR1Parse(t *testing.T) {
	testCases := []struct {
		name      string
		grammar   string
		input     []string
		expectErr bool
	}{
		{
			name:    "expression grammar accepts id plus id star id",
			grammar: expressionGrammar,
			input:   []string{"id", "plus", "id", "star", "id"},
		},
		{
			name:      "expression grammar rejects star first",
			grammar:   expressionGrammar,
			input:     []string{"star", "id"},
			expectErr: true,
		},
		{
			name:    "right-recursive grammar accepts aab",
			grammar: "S -> a S | b ;",
			input:   []string{"a", "a", "b"},
		},
		{
			name:      "right-recursive grammar rejects missing b",
			grammar:   "S -> a S | b ;",
			input:     []string{"a", "a"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.MustParse(tc.grammar)
			parser, err := GenerateSLR1Parser(g)
			if !assert.NoError(err) {
				return
			}

			_, err = parser.Parse(mockTokens(tc.input...))

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_ConstructSLR1Table_notSLRGrammar(t *testing.T) {
	assert := assert.New(t)

	// purple dragon example 4.48: SLR cannot decide between shifting eq
	// and reducing R -> L, but the grammar is fine for canonical LR(1)
	g := grammar.MustParse(`
		S -> L eq R | R ;
		L -> star R | id ;
		R -> L ;
	`)

	slrTable := ConstructSLR1Table(g)
	conflicts := slrTable.Conflicts()
	if !assert.NotEmpty(conflicts) {
		return
	}
	assert.Equal(ConflictShiftReduce, conflicts[0].Type)
	assert.Equal("eq", conflicts[0].Symbol)

	clrTable := ConstructCLR1Table(g)
	assert.Empty(clrTable.Conflicts())
}
