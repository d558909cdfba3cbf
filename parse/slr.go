package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/moray/automaton"
	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/types"
)

// ConstructSLR1Table builds the SLR(1) ACTION/GOTO table for g from the
// LR(0) item collection and the FOLLOW sets.
//
// This is an implementation of Algorithm 4.46, "Constructing an SLR-parsing
// table", from the purple dragon book. The fill differs from the LR(1)-item
// fill only in where reduce lookaheads come from: a complete item [A -> α.]
// reduces on every terminal of FOLLOW(A) rather than on a lookahead carried
// by the item.
//
// Conflicts do not abort construction; they are recorded on the returned
// table for the caller to inspect.
func ConstructSLR1Table(g grammar.Grammar) LRParseTable {
	dfa := automaton.NewLR0ViablePrefixDFA(g)
	gPrime := g.Augmented()
	gStart := g.StartSymbol()

	follow := g.FollowSets()

	t := newLRTable(types.ParserSLR1, g)

	order := dfa.StatesInDiscoveryOrder()
	t.setStates(order)

	for _, stateName := range order {
		items := dfa.GetValue(stateName)

		itemNames := items.Elements()
		sort.Strings(itemNames)

		for _, itemName := range itemNames {
			item := items.Get(itemName)

			A := item.NonTerminal
			alpha := item.Left
			beta := item.Right

			if len(beta) > 0 {
				X := beta[0]
				if gPrime.Rule(X).NonTerminal == "" {
					if next := dfa.Next(stateName, X); next != "" {
						t.trySet(stateName, X, LRAction{Type: LRShift, State: next})
					}
				}
				continue
			}

			if A == gPrime.StartSymbol() && len(alpha) == 1 && alpha[0] == gStart {
				t.trySet(stateName, "$", LRAction{Type: LRAccept})
				continue
			}

			lookaheads := follow[A].Elements()
			sort.Strings(lookaheads)
			for _, a := range lookaheads {
				t.trySet(stateName, a, LRAction{
					Type:       LRReduce,
					Symbol:     A,
					Production: grammar.Production(alpha),
				})
			}
		}

		for _, X := range dfa.InputsFrom(stateName) {
			if gPrime.Rule(X).NonTerminal != "" {
				t.setGoto(stateName, X, dfa.Next(stateName, X))
			}
		}
	}

	return t
}

// GenerateSLR1Parser returns a parser for grammar g using SLR(1) tables. The
// grammar must be SLR(1); any table conflict is reported as an error.
func GenerateSLR1Parser(g grammar.Grammar) (*lrParser, error) {
	table := ConstructSLR1Table(g)

	if conflicts := table.Conflicts(); len(conflicts) > 0 {
		return nil, fmt.Errorf("grammar is not SLR(1): %s", conflicts[0].String())
	}

	return &lrParser{table: table, parseType: types.ParserSLR1, gram: g.Copy()}, nil
}
