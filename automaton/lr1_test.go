package automaton

import (
	"testing"

	"github.com/dekarrin/moray/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_NewLR1ViablePrefixDFA(t *testing.T) {
	assert := assert.New(t)

	// purple dragon book example 4.54; its canonical LR(1) collection has
	// exactly ten states
	g := grammar.MustParse(`
		S -> C C ;
		C -> c C | d ;
	`)

	dfa := NewLR1ViablePrefixDFA(g)

	assert.NoError(dfa.Validate())
	assert.Equal(10, dfa.States().Len())

	// state 0 is the closure of [S' -> .S, $]
	startItems := dfa.GetValue(dfa.Start)
	assert.True(startItems.Has("S-P -> . S, $"))
	assert.True(startItems.Has("S -> . C C, $"))

	// the kernel item determines the outgoing transitions; from the start
	// they are on S, C, c, and d
	assert.NotEmpty(dfa.Next(dfa.Start, "S"))
	assert.NotEmpty(dfa.Next(dfa.Start, "C"))
	assert.NotEmpty(dfa.Next(dfa.Start, "c"))
	assert.NotEmpty(dfa.Next(dfa.Start, "d"))
	assert.Empty(dfa.Next(dfa.Start, "$"))
}

func Test_NewLR1ViablePrefixDFA_discoveryOrderStartsAtInitial(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> C C ;
		C -> c C | d ;
	`)

	dfa := NewLR1ViablePrefixDFA(g)
	order := dfa.StatesInDiscoveryOrder()

	assert.Equal(dfa.Start, order[0])
	assert.Len(order, dfa.States().Len())

	// every state appears exactly once
	seen := map[string]bool{}
	for _, name := range order {
		assert.False(seen[name], "state %q listed twice", name)
		seen[name] = true
	}
}

func Test_NewLR0ViablePrefixDFA(t *testing.T) {
	assert := assert.New(t)

	// the classical expression grammar's LR(0) collection is the canonical
	// twelve-state machine
	g := grammar.MustParse(`
		E -> E plus T | T ;
		T -> T star F | F ;
		F -> lparen E rparen | id ;
	`)

	dfa := NewLR0ViablePrefixDFA(g)

	assert.NoError(dfa.Validate())
	assert.Equal(12, dfa.States().Len())

	startItems := dfa.GetValue(dfa.Start)
	assert.True(startItems.Has("E-P -> . E"))
	assert.True(startItems.Has("F -> . id"))
}

func Test_NewLALR1ViablePrefixDFA(t *testing.T) {
	assert := assert.New(t)

	// the ten LR(1) states of example 4.54 merge into seven LALR states
	g := grammar.MustParse(`
		S -> C C ;
		C -> c C | d ;
	`)

	dfa, err := NewLALR1ViablePrefixDFA(g)
	if !assert.NoError(err) {
		return
	}

	assert.NoError(dfa.Validate())
	assert.Equal(7, dfa.States().Len())

	// lookaheads of merged kernels union; the C -> c . C state now carries
	// c, d, AND $ in one state
	merged := false
	for _, name := range dfa.States().Elements() {
		items := dfa.GetValue(name)
		if items.Has("C -> c . C, $") && items.Has("C -> c . C, c") && items.Has("C -> c . C, d") {
			merged = true
		}
	}
	assert.True(merged, "expected a merged state holding all three lookaheads of C -> c . C")
}

func Test_NewLALR1ViablePrefixDFA_expressionGrammar(t *testing.T) {
	assert := assert.New(t)

	// the expression grammar merges to the same twelve states as its LR(0)
	// collection
	g := grammar.MustParse(`
		E -> E plus T | T ;
		T -> T star F | F ;
		F -> lparen E rparen | id ;
	`)

	lr1 := NewLR1ViablePrefixDFA(g)
	lalr, err := NewLALR1ViablePrefixDFA(g)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(12, lalr.States().Len())
	assert.GreaterOrEqual(lr1.States().Len(), lalr.States().Len())

	// merging preserves the start state's kernel
	startItems := lalr.GetValue(lalr.Start)
	assert.True(startItems.Has("E-P -> . E, $"))
}

func Test_NewLALR1ViablePrefixDFA_preservesTransitionShape(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> C C ;
		C -> c C | d ;
	`)

	lr1 := NewLR1ViablePrefixDFA(g)
	lalr, err := NewLALR1ViablePrefixDFA(g)
	if !assert.NoError(err) {
		return
	}

	// a kernel determines its outgoing symbols, so the merged start must
	// have the same transition symbols as the LR(1) start
	assert.Equal(lr1.InputsFrom(lr1.Start), lalr.InputsFrom(lalr.Start))
}
