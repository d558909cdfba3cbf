package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildTestDFA assembles a DFA by hand. transitions maps state -> input ->
// state; finals maps accepting states to their token tag.
func buildTestDFA(numStates int, start int, transitions map[int]map[rune]int, finals map[int]string) *DFA {
	d := &DFA{Start: start}

	for i := 0; i < numStates; i++ {
		st := dfaState{
			id:          i,
			nfaStates:   []int{i},
			priority:    NotAccepting,
			transitions: map[rune]int{},
		}
		for c, to := range transitions[i] {
			st.transitions[c] = to
		}
		if tag, ok := finals[i]; ok {
			st.final = true
			st.tokenName = tag
			st.priority = 0
		}
		d.states = append(d.states, st)
	}

	return d
}

func Test_Minimize_collapsesEquivalentStates(t *testing.T) {
	assert := assert.New(t)

	// states 1 and 2 accept the same tag and have identical outgoing
	// transitions, so they must collapse into one state
	alphabet := []rune{'a', 'b'}
	d := buildTestDFA(4, 0,
		map[int]map[rune]int{
			0: {'a': 1, 'b': 2},
			1: {'a': 3},
			2: {'a': 3},
			3: {},
		},
		map[int]string{1: "T", 2: "T"},
	)

	minimized := Minimize(d, alphabet)

	assert.Equal(3, minimized.NumStates())

	for _, s := range enumStrings(alphabet, 3) {
		assert.Equal(accepts(d, s), accepts(minimized, s), "on %q", s)
	}
}

func Test_Minimize_refusesToMergeDifferentTokenTags(t *testing.T) {
	assert := assert.New(t)

	// identical structure to the collapsing case except the two accepting
	// states now carry DIFFERENT tags; they must stay apart or tokens of
	// one class would be reported as the other
	alphabet := []rune{'a', 'b'}
	d := buildTestDFA(4, 0,
		map[int]map[rune]int{
			0: {'a': 1, 'b': 2},
			1: {'a': 3},
			2: {'a': 3},
			3: {},
		},
		map[int]string{1: "X", 2: "Y"},
	)

	minimized := Minimize(d, alphabet)

	assert.Equal(4, minimized.NumStates())

	// and the tags still route correctly
	sA := minimized.Next(minimized.Start, 'a')
	sB := minimized.Next(minimized.Start, 'b')
	assert.Equal("X", minimized.TokenName(sA))
	assert.Equal("Y", minimized.TokenName(sB))
}

func Test_Minimize_neverIncreasesStateCount(t *testing.T) {
	alphabet := []rune{'a', 'b', 'c'}

	patterns := []string{"(a|b)*c+", "a*b", "ab?c", "a|b|c", "(ab)+c?"}

	for _, pat := range patterns {
		t.Run(pat, func(t *testing.T) {
			assert := assert.New(t)

			nfa := mustNFA(t, pat, "TOK", 0)
			dfa := nfa.ToDFA(alphabet)
			minimized := Minimize(dfa, alphabet)

			assert.LessOrEqual(minimized.NumStates(), dfa.NumStates())

			for _, s := range enumStrings(alphabet, 4) {
				assert.Equal(accepts(dfa, s), accepts(minimized, s), "on %q", s)
			}
		})
	}
}

func Test_Minimize_idempotent(t *testing.T) {
	assert := assert.New(t)

	alphabet := []rune{'a', 'b', 'c'}
	nfa := mustNFA(t, "(a|b)*c+", "ABC", 0)
	dfa := nfa.ToDFA(alphabet)

	once := Minimize(dfa, alphabet)
	twice := Minimize(once, alphabet)

	assert.Equal(once.NumStates(), twice.NumStates())
	for _, s := range enumStrings(alphabet, 4) {
		assert.Equal(accepts(once, s), accepts(twice, s), "on %q", s)
	}
}

func Test_Minimize_fullPipelineLanguagePreserved(t *testing.T) {
	assert := assert.New(t)

	// property check across the whole pipeline: NFA -> DFA -> minimized DFA
	// all accept exactly the same strings up to a bound
	alphabet := []rune{'a', 'b', 'c'}
	nfa := mustNFA(t, "(a|b)*c+", "ABC", 0)
	dfa := nfa.ToDFA(alphabet)
	minimized := Minimize(dfa, alphabet)

	for _, s := range enumStrings(alphabet, 5) {
		want := accepts(dfa, s)
		assert.Equal(want, accepts(minimized, s), "on %q", s)
	}
}
