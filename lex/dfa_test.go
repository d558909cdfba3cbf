package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// accepts walks the DFA over the string and reports whether it halts in an
// accepting state having consumed all input.
func accepts(d *DFA, input string) bool {
	state := d.Start
	for _, c := range input {
		state = d.Next(state, c)
		if state < 0 {
			return false
		}
	}
	return d.IsFinal(state)
}

// enumStrings generates every string over the alphabet with length <= maxLen.
func enumStrings(alphabet []rune, maxLen int) []string {
	strs := []string{""}
	prev := []string{""}

	for l := 1; l <= maxLen; l++ {
		var next []string
		for _, s := range prev {
			for _, c := range alphabet {
				next = append(next, s+string(c))
			}
		}
		strs = append(strs, next...)
		prev = next
	}

	return strs
}

func mustNFA(t *testing.T, pattern, name string, priority int) *NFA {
	t.Helper()
	nfa, err := RegexToNFA(pattern, name, priority)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return nfa
}

func Test_ToDFA_language(t *testing.T) {
	alphabet := []rune{'a', 'b', 'c'}

	testCases := []struct {
		name    string
		pattern string
		accept  []string
		reject  []string
	}{
		{
			name:    "(a|b)*c+",
			pattern: "(a|b)*c+",
			accept:  []string{"c", "ac", "bc", "abc", "ababcc", "cc"},
			reject:  []string{"", "a", "ab", "ca", "ccd"},
		},
		{
			name:    "optional",
			pattern: "ab?c",
			accept:  []string{"ac", "abc"},
			reject:  []string{"", "abbc", "bc"},
		},
		{
			name:    "plus requires one",
			pattern: "a+",
			accept:  []string{"a", "aa", "aaa"},
			reject:  []string{"", "b", "ab"},
		},
		{
			name:    "star allows zero",
			pattern: "a*b",
			accept:  []string{"b", "ab", "aaab"},
			reject:  []string{"", "a", "ba"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			nfa := mustNFA(t, tc.pattern, "TOK", 0)
			dfa := nfa.ToDFA(alphabet)

			for _, s := range tc.accept {
				assert.True(accepts(dfa, s), "should accept %q", s)
			}
			for _, s := range tc.reject {
				assert.False(accepts(dfa, s), "should reject %q", s)
			}
		})
	}
}

func Test_ToDFA_startStateIsZeroAndDeterministic(t *testing.T) {
	assert := assert.New(t)

	alphabet := []rune{'a', 'b', 'c'}
	nfa := mustNFA(t, "(a|b)*c+", "ABC", 0)

	d1 := nfa.ToDFA(alphabet)
	d2 := nfa.ToDFA(alphabet)

	assert.Equal(0, d1.Start)
	assert.Equal(d1.NumStates(), d2.NumStates())
	for i := 0; i < d1.NumStates(); i++ {
		assert.Equal(d1.states[i].nfaStates, d2.states[i].nfaStates)
	}
}

func Test_ToDFA_statesAreEpsilonClosed(t *testing.T) {
	assert := assert.New(t)

	alphabet := []rune{'a', 'b', 'c'}
	nfa := mustNFA(t, "(a|b)*c+", "ABC", 0)
	dfa := nfa.ToDFA(alphabet)

	for _, st := range dfa.states {
		assert.NotEmpty(st.nfaStates)
		assert.Equal(nfa.epsilonClosure(st.nfaStates), st.nfaStates)
	}
}

func Test_ToDFA_idempotentOnDFA(t *testing.T) {
	assert := assert.New(t)

	alphabet := []rune{'a', 'b', 'c'}
	nfa := mustNFA(t, "(a|b)*c+", "ABC", 0)
	dfa := nfa.ToDFA(alphabet)

	// re-interpreting the DFA as an NFA and re-running subset construction
	// must change nothing observable
	redone := dfa.AsNFA().ToDFA(alphabet)

	assert.Equal(dfa.NumStates(), redone.NumStates())
	for _, s := range enumStrings(alphabet, 4) {
		assert.Equal(accepts(dfa, s), accepts(redone, s), "on %q", s)
	}
}

func Test_ToDFA_priorityResolution(t *testing.T) {
	assert := assert.New(t)

	// two rules that both match exactly "ab"; the lower priority number
	// must supply the token tag of the accepting DFA state
	n1 := mustNFA(t, "ab", "FIRST", 1)
	n2 := mustNFA(t, "ab", "SECOND", 0)
	combined := UnionNFAs([]*NFA{n1, n2})

	dfa := combined.ToDFA([]rune{'a', 'b'})

	state := dfa.Start
	state = dfa.Next(state, 'a')
	state = dfa.Next(state, 'b')

	assert.True(dfa.IsFinal(state))
	assert.Equal("SECOND", dfa.TokenName(state))
}
