package automaton

import (
	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/internal/util"
)

// NewLR1ViablePrefixDFA creates the canonical collection of sets of LR(1)
// items of the given grammar, connected by GOTO transitions: the DFA whose
// states recognize the viable prefixes of an LR(1) parse. Each state carries
// its item set as a value and is named by the set's ordered string form.
//
// g must NOT be an augmented grammar; augmentation is done here. State
// discovery uses a FIFO worklist, so StatesInDiscoveryOrder on the result
// matches the usual textbook numbering with the closure of [S' -> .S, $] as
// state 0.
//
// This is an implementation of the "items" construction of Algorithm 4.53
// from the purple dragon book.
func NewLR1ViablePrefixDFA(g grammar.Grammar) DFA[util.SVSet[grammar.LR1Item]] {
	oldStart := g.StartSymbol()
	g = g.Augmented()

	initialItem := grammar.LR1Item{
		LR0Item: grammar.LR0Item{
			NonTerminal: g.StartSymbol(),
			Right:       []string{oldStart},
		},
		Lookahead: "$",
	}

	startSet := g.LR1_CLOSURE(util.SVSet[grammar.LR1Item]{initialItem.String(): initialItem})

	dfa := DFA[util.SVSet[grammar.LR1Item]]{}
	dfa.AddState(startSet.StringOrdered(), true)
	dfa.SetValue(startSet.StringOrdered(), startSet)
	dfa.Start = startSet.StringOrdered()

	// the grammar symbols GOTO is taken on, in a fixed order
	symbols := g.Symbols()

	queue := []string{startSet.StringOrdered()}

	for len(queue) > 0 {
		IName := queue[0]
		queue = queue[1:]

		I := dfa.GetValue(IName)

		for _, X := range symbols {
			J := g.LR1_GOTO(I, X)
			if J.Empty() {
				continue
			}

			JName := J.StringOrdered()
			if !dfa.States().Has(JName) {
				dfa.AddState(JName, true)
				dfa.SetValue(JName, J)
				queue = append(queue, JName)
			}

			dfa.AddTransition(IName, X, JName)
		}
	}

	return dfa
}

// NewLR0ViablePrefixDFA creates the canonical collection of sets of LR(0)
// items of the given grammar, connected by GOTO transitions. It is the same
// construction as NewLR1ViablePrefixDFA without lookaheads, and is the basis
// of SLR(1) table construction.
//
// g must NOT be an augmented grammar; augmentation is done here.
func NewLR0ViablePrefixDFA(g grammar.Grammar) DFA[util.SVSet[grammar.LR0Item]] {
	oldStart := g.StartSymbol()
	g = g.Augmented()

	initialItem := grammar.LR0Item{
		NonTerminal: g.StartSymbol(),
		Right:       []string{oldStart},
	}

	startSet := g.LR0_CLOSURE(util.SVSet[grammar.LR0Item]{initialItem.String(): initialItem})

	dfa := DFA[util.SVSet[grammar.LR0Item]]{}
	dfa.AddState(startSet.StringOrdered(), true)
	dfa.SetValue(startSet.StringOrdered(), startSet)
	dfa.Start = startSet.StringOrdered()

	symbols := g.Symbols()

	queue := []string{startSet.StringOrdered()}

	for len(queue) > 0 {
		IName := queue[0]
		queue = queue[1:]

		I := dfa.GetValue(IName)

		for _, X := range symbols {
			J := g.LR0_GOTO(I, X)
			if J.Empty() {
				continue
			}

			JName := J.StringOrdered()
			if !dfa.States().Has(JName) {
				dfa.AddState(JName, true)
				dfa.SetValue(JName, J)
				queue = append(queue, JName)
			}

			dfa.AddTransition(IName, X, JName)
		}
	}

	return dfa
}
