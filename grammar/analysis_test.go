package grammar

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sortedElems(s map[string]bool) []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	sort.Strings(elems)
	return elems
}

func Test_FirstSets(t *testing.T) {
	testCases := []struct {
		name    string
		grammar string
		expect  map[string][]string
	}{
		{
			name:    "right-recursive two-production grammar",
			grammar: "S -> a S | b ;",
			expect: map[string][]string{
				"S": {"a", "b"},
				"a": {"a"},
				"b": {"b"},
			},
		},
		{
			name: "nullable non-terminal",
			grammar: `
				S -> A B ;
				A -> a | ε ;
				B -> b ;
			`,
			expect: map[string][]string{
				"S": {"a", "b"},
				"A": {"", "a"},
				"B": {"b"},
			},
		},
		{
			name: "nullable chain reaches epsilon",
			grammar: `
				S -> A B ;
				A -> a | ε ;
				B -> b | ε ;
			`,
			expect: map[string][]string{
				"S": {"", "a", "b"},
				"A": {"", "a"},
				"B": {"", "b"},
			},
		},
		{
			name: "classical expression grammar",
			grammar: `
				E -> E plus T | T ;
				T -> T star F | F ;
				F -> lparen E rparen | id ;
			`,
			expect: map[string][]string{
				"E": {"id", "lparen"},
				"T": {"id", "lparen"},
				"F": {"id", "lparen"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParse(tc.grammar)
			fs := g.FirstSets()

			for sym, want := range tc.expect {
				assert.Equal(want, sortedElems(fs[sym]), "FIRST(%s)", sym)
			}
		})
	}
}

func Test_FollowSets(t *testing.T) {
	testCases := []struct {
		name    string
		grammar string
		expect  map[string][]string
	}{
		{
			name:    "right-recursive two-production grammar",
			grammar: "S -> a S | b ;",
			expect: map[string][]string{
				"S": {"$"},
			},
		},
		{
			name: "follow through nullable suffix",
			grammar: `
				S -> A B ;
				A -> a | ε ;
				B -> b | ε ;
			`,
			expect: map[string][]string{
				"S": {"$"},
				"A": {"$", "b"},
				"B": {"$"},
			},
		},
		{
			name: "classical expression grammar",
			grammar: `
				E -> E plus T | T ;
				T -> T star F | F ;
				F -> lparen E rparen | id ;
			`,
			expect: map[string][]string{
				"E": {"$", "plus", "rparen"},
				"T": {"$", "plus", "rparen", "star"},
				"F": {"$", "plus", "rparen", "star"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParse(tc.grammar)
			follow := g.FollowSets()

			for sym, want := range tc.expect {
				assert.Equal(want, sortedElems(follow[sym]), "FOLLOW(%s)", sym)
			}
		})
	}
}

func Test_FirstOfString(t *testing.T) {
	g := MustParse(`
		S -> A B ;
		A -> a | ε ;
		B -> b ;
	`)
	fs := g.FirstSets()

	testCases := []struct {
		name   string
		gamma  []string
		expect []string
	}{
		{name: "empty sequence is nullable", gamma: nil, expect: []string{""}},
		{name: "single terminal", gamma: []string{"b"}, expect: []string{"b"}},
		{name: "nullable then terminal", gamma: []string{"A", "b"}, expect: []string{"a", "b"}},
		{name: "nullable alone keeps epsilon", gamma: []string{"A"}, expect: []string{"", "a"}},
		{name: "non-nullable head stops the scan", gamma: []string{"B", "a"}, expect: []string{"b"}},
		{name: "end marker is its own first", gamma: []string{"A", "$"}, expect: []string{"$", "a"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := FirstOfString(fs, tc.gamma...)

			assert.Equal(tc.expect, sortedElems(actual))
		})
	}
}

func Test_FirstSets_unresolvedSymbolActsAsTerminal(t *testing.T) {
	assert := assert.New(t)

	g := MustParse("S -> X a | b ;")

	fs := g.FirstSets()

	assert.Equal([]string{"X", "b"}, sortedElems(fs["S"]))
	assert.Equal([]string{"X"}, sortedElems(fs["X"]))
}

func Test_FirstSets_deterministicAcrossCalls(t *testing.T) {
	assert := assert.New(t)

	// the fixed point is a pure function of the grammar; repeated
	// computation gives identical sets
	g := MustParse(`
		E -> E plus T | T ;
		T -> T star F | F ;
		F -> lparen E rparen | id ;
	`)

	fs1 := g.FirstSets()
	fs2 := g.FirstSets()

	for sym := range fs1 {
		assert.Equal(sortedElems(fs1[sym]), sortedElems(fs2[sym]), "FIRST(%s)", sym)
	}
}
