package automaton

import (
	"fmt"

	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/internal/util"
)

// NewLALR1ViablePrefixDFA creates the LALR(1) viable-prefix DFA of the given
// grammar by building the canonical LR(1) collection and merging all states
// that share a kernel (the same item cores, lookaheads ignored).
//
// Merging is done by grouping: LR(1) states are visited in discovery order
// and grouped by their CoreSet; each group becomes one LALR state whose items
// pair every kernel core with the union of the lookaheads seen for it across
// the group. Transitions are then re-targeted through the group mapping. GOTO
// depends only on cores, so transitions of merged states always agree; if
// they somehow do not, the grammar is not LALR(1) and an error is returned.
//
// The group of the LR(1) start state is always the first group, so the start
// state is preserved.
//
// g must NOT be an augmented grammar; augmentation is done by the LR(1)
// construction.
func NewLALR1ViablePrefixDFA(g grammar.Grammar) (DFA[util.SVSet[grammar.LR1Item]], error) {
	lr1Dfa := NewLR1ViablePrefixDFA(g)

	lr1Order := lr1Dfa.StatesInDiscoveryOrder()

	// group the LR(1) states by kernel, preserving discovery order of groups
	groupOrder := []string{}
	groupMembers := map[string][]string{}

	for _, lr1Name := range lr1Order {
		items := lr1Dfa.GetValue(lr1Name)
		coreKey := grammar.CoreSet(items).StringOrdered()

		if _, ok := groupMembers[coreKey]; !ok {
			groupOrder = append(groupOrder, coreKey)
		}
		groupMembers[coreKey] = append(groupMembers[coreKey], lr1Name)
	}

	// each group becomes one LALR state; its item set is the union of the
	// members' item sets, which per kernel entry is exactly the union of the
	// lookaheads seen across the group
	mergedSets := map[string]util.SVSet[grammar.LR1Item]{}
	lalrNameOf := map[string]string{}

	for _, coreKey := range groupOrder {
		merged := util.NewSVSet[grammar.LR1Item]()
		for _, lr1Name := range groupMembers[coreKey] {
			items := lr1Dfa.GetValue(lr1Name)
			for _, itemName := range items.Elements() {
				merged.Set(itemName, items.Get(itemName))
			}
		}
		mergedSets[coreKey] = merged

		lalrName := merged.StringOrdered()
		for _, lr1Name := range groupMembers[coreKey] {
			lalrNameOf[lr1Name] = lalrName
		}
	}

	// now build the merged DFA, adding states in group discovery order
	lalrDfa := DFA[util.SVSet[grammar.LR1Item]]{}
	for _, coreKey := range groupOrder {
		merged := mergedSets[coreKey]
		lalrDfa.AddState(merged.StringOrdered(), true)
		lalrDfa.SetValue(merged.StringOrdered(), merged)
	}
	lalrDfa.Start = lalrNameOf[lr1Dfa.Start]

	// re-target every LR(1) transition s =(X)=> t to lalr(s) =(X)=> lalr(t);
	// transitions agreeing on both endpoints collapse naturally
	for _, lr1Name := range lr1Order {
		from := lalrNameOf[lr1Name]

		for _, X := range lr1Dfa.InputsFrom(lr1Name) {
			to := lalrNameOf[lr1Dfa.Next(lr1Name, X)]

			if existing := lalrDfa.Next(from, X); existing != "" && existing != to {
				return DFA[util.SVSet[grammar.LR1Item]]{}, fmt.Errorf("grammar is not LALR(1); merging produced inconsistent transitions on %q", X)
			}

			lalrDfa.AddTransition(from, X, to)
		}
	}

	return lalrDfa, nil
}
