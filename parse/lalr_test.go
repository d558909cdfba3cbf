package parse

import (
	"testing"

	"github.com/dekarrin/moray/grammar"
	"github.com/stretchr/testify/assert"
)

const expressionGrammar = `
	E -> E plus T | T ;
	T -> T star F | F ;
	F -> lparen E rparen | id ;
`

func Test_ConstructLALR1Table(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(expressionGrammar)

	table, err := ConstructLALR1Table(g)
	if !assert.NoError(err) {
		return
	}

	assert.Empty(table.Conflicts())

	// the merged machine is the canonical twelve-state one; its initial
	// state shifts on id and lparen and GOTOs on E, T, F
	assert.Equal(0, table.StateIndex(table.Initial()))

	actID := table.Action(table.Initial(), "id")
	assert.Equal(LRShift, actID.Type)

	actParen := table.Action(table.Initial(), "lparen")
	assert.Equal(LRShift, actParen.Type)

	actPlus := table.Action(table.Initial(), "plus")
	assert.Equal(LRError, actPlus.Type)

	_, err = table.Goto(table.Initial(), "E")
	assert.NoError(err)
	_, err = table.Goto(table.Initial(), "T")
	assert.NoError(err)
	_, err = table.Goto(table.Initial(), "F")
	assert.NoError(err)
	_, err = table.Goto(table.Initial(), "plus")
	assert.Error(err)
}

func Test_LALR1Parse(t *testing.T) {
	testCases := []struct {
		name      string
		grammar   string
		input     []string
		expectErr bool
	}{
		{
			name:    "purple dragon example 4.55 accepts dd",
			grammar: "S -> C C ; C -> c C | d ;",
			input:   []string{"d", "d"},
		},
		{
			name:    "purple dragon example 4.55 accepts ccdd",
			grammar: "S -> C C ; C -> c C | d ;",
			input:   []string{"c", "c", "d", "d"},
		},
		{
			name:      "purple dragon example 4.55 rejects lone d",
			grammar:   "S -> C C ; C -> c C | d ;",
			input:     []string{"d"},
			expectErr: true,
		},
		{
			name:    "expression grammar accepts id plus id star id",
			grammar: expressionGrammar,
			input:   []string{"id", "plus", "id", "star", "id"},
		},
		{
			name:    "expression grammar accepts parenthesized",
			grammar: expressionGrammar,
			input:   []string{"lparen", "id", "plus", "id", "rparen", "star", "id"},
		},
		{
			name:      "expression grammar rejects trailing operator",
			grammar:   expressionGrammar,
			input:     []string{"id", "plus"},
			expectErr: true,
		},
		{
			name:      "expression grammar rejects empty input",
			grammar:   expressionGrammar,
			input:     []string{},
			expectErr: true,
		},
		{
			name: "epsilon production reduces with zero pops",
			grammar: `
				S -> A b ;
				A -> a | ε ;
			`,
			input: []string{"b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.MustParse(tc.grammar)
			parser, err := GenerateLALR1Parser(g)
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

func Test_LALR1Parse_treeShape(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(expressionGrammar)
	parser, err := GenerateLALR1Parser(g)
	if !assert.NoError(err) {
		return
	}

	tree, err := parser.Parse(mockTokens("id", "star", "id"))
	if !assert.NoError(err) {
		return
	}

	// E -> T -> T star F with both operands reduced up from id
	assert.Equal("E", tree.Value)
	if !assert.Len(tree.Children, 1) {
		return
	}
	tNode := tree.Children[0]
	assert.Equal("T", tNode.Value)
	if !assert.Len(tNode.Children, 3) {
		return
	}
	assert.Equal("T", tNode.Children[0].Value)
	assert.Equal("star", tNode.Children[1].Value)
	assert.True(tNode.Children[1].Terminal)
	assert.Equal("F", tNode.Children[2].Value)
}

func Test_ConstructLALR1Table_conflicts(t *testing.T) {
	testCases := []struct {
		name       string
		grammar    string
		expectType LRConflictType
	}{
		{
			name:       "ambiguous binary operator has shift/reduce",
			grammar:    "E -> E plus E | id ;",
			expectType: ConflictShiftReduce,
		},
		{
			name:       "two rules for the same terminal have reduce/reduce",
			grammar:    "S -> A | B ; A -> a ; B -> a ;",
			expectType: ConflictReduceReduce,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.MustParse(tc.grammar)

			table, err := ConstructLALR1Table(g)
			if !assert.NoError(err) {
				return
			}

			conflicts := table.Conflicts()
			if !assert.NotEmpty(conflicts) {
				return
			}
			assert.Equal(tc.expectType, conflicts[0].Type)

			// the convenience generator treats conflicts as fatal
			_, err = GenerateLALR1Parser(g)
			assert.Error(err)
		})
	}
}

func Test_LALR1Parse_traceListener(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse("S -> C C ; C -> c C | d ;")
	parser, err := GenerateLALR1Parser(g)
	if !assert.NoError(err) {
		return
	}

	var lines []string
	parser.RegisterTraceListener(func(s string) {
		lines = append(lines, s)
	})

	_, err = parser.Parse(mockTokens("d", "d"))
	if !assert.NoError(err) {
		return
	}

	assert.NotEmpty(lines)
}
