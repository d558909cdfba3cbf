package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/moray/automaton"
	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/internal/util"
	"github.com/dekarrin/moray/types"
)

// fillFromLR1Items fills the ACTION and GOTO cells of a table from a DFA
// whose states carry LR(1) item sets; both the canonical LR(1) and the
// LALR(1) constructions produce such a DFA.
//
// The fill rules are step 2 of Algorithm 4.56, "Construction of
// canonical-LR parsing tables", from the purple dragon book:
//
// (a) If [A -> α.aβ, b] is in Iᵢ with a terminal and GOTO(Iᵢ, a) = Iⱼ, then
// ACTION[i, a] is "shift j".
//
// (b) If [A -> α., a] is in Iᵢ and A != S', then ACTION[i, a] is "reduce
// A -> α".
//
// (c) If [S' -> S., $] is in Iᵢ, then ACTION[i, $] is "accept".
//
// GOTO transitions on non-terminals become the GOTO table. Conflicting cell
// writes are recorded on the table as diagnostics; the first write wins.
func fillFromLR1Items(t *lrTable, dfa automaton.DFA[util.SVSet[grammar.LR1Item]], gPrime grammar.Grammar, gStart string) {
	order := dfa.StatesInDiscoveryOrder()
	t.setStates(order)

	for _, stateName := range order {
		items := dfa.GetValue(stateName)

		itemNames := items.Elements()
		sort.Strings(itemNames)

		for _, itemName := range itemNames {
			item := items.Get(itemName)

			// given item is [A -> α.β, b]:
			A := item.NonTerminal
			alpha := item.Left
			beta := item.Right
			b := item.Lookahead

			if len(beta) > 0 {
				// (a); the dot is before some symbol X. Only terminals get
				// ACTION entries; non-terminal transitions feed GOTO below.
				X := beta[0]
				if gPrime.Rule(X).NonTerminal == "" {
					if next := dfa.Next(stateName, X); next != "" {
						t.trySet(stateName, X, LRAction{Type: LRShift, State: next})
					}
				}
				continue
			}

			// the dot is at the end; (c) if this is the augmented start
			// item, else (b)
			if A == gPrime.StartSymbol() && b == "$" && len(alpha) == 1 && alpha[0] == gStart {
				t.trySet(stateName, "$", LRAction{Type: LRAccept})
				continue
			}

			t.trySet(stateName, b, LRAction{
				Type:       LRReduce,
				Symbol:     A,
				Production: grammar.Production(alpha),
			})
		}

		for _, X := range dfa.InputsFrom(stateName) {
			if gPrime.Rule(X).NonTerminal != "" {
				t.setGoto(stateName, X, dfa.Next(stateName, X))
			}
		}
	}
}

// ConstructCLR1Table builds the canonical LR(1) ACTION/GOTO table for g.
// Conflicts do not abort construction; they are recorded on the returned
// table for the caller to inspect.
func ConstructCLR1Table(g grammar.Grammar) LRParseTable {
	dfa := automaton.NewLR1ViablePrefixDFA(g)

	t := newLRTable(types.ParserCLR1, g)
	fillFromLR1Items(t, dfa, g.Augmented(), g.StartSymbol())

	return t
}

// GenerateCanonicalLR1Parser returns a parser that uses the canonical set of
// LR(1) items of g. The grammar must be LR(1); any table conflict is
// reported as an error.
func GenerateCanonicalLR1Parser(g grammar.Grammar) (*lrParser, error) {
	table := ConstructCLR1Table(g)

	if conflicts := table.Conflicts(); len(conflicts) > 0 {
		return nil, fmt.Errorf("grammar is not LR(1): %s", conflicts[0].String())
	}

	return &lrParser{table: table, parseType: types.ParserCLR1, gram: g.Copy()}, nil
}
