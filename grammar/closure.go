package grammar

import (
	"sort"

	"github.com/dekarrin/moray/internal/util"
)

// This file implements the CLOSURE and GOTO set-transformations for LR(0)
// and LR(1) item sets; the definitions are from sections 4.6.2 and 4.7.2 of
// the purple dragon book. The canonical collections themselves are built on
// top of these by the automaton package.

// LR0Items returns all LR0 items of the grammar, in rule definition order.
func (g Grammar) LR0Items() []LR0Item {
	items := []LR0Item{}
	for _, r := range g.rules {
		items = append(items, r.LRItems()...)
	}
	return items
}

// LR0_CLOSURE computes the closure of a set of LR(0) items: for every item
// with the dot before a non-terminal B, every item B -> .γ is added, to a
// fixed point.
func (g Grammar) LR0_CLOSURE(I util.SVSet[LR0Item]) util.SVSet[LR0Item] {
	closure := util.NewSVSet(I)

	updated := true
	for updated {
		updated = false

		for _, itemName := range closure.Elements() {
			item := closure.Get(itemName)

			if len(item.Right) == 0 {
				continue
			}

			B := item.Right[0]
			rule := g.Rule(B)
			if rule.NonTerminal == "" {
				continue
			}

			for _, gamma := range rule.Productions {
				newItem := LR0Item{NonTerminal: B}
				if !gamma.Equal(Epsilon) {
					newItem.Right = gamma.Copy()
				}

				if !closure.Has(newItem.String()) {
					closure.Set(newItem.String(), newItem)
					updated = true
				}
			}
		}
	}

	return closure
}

// LR0_GOTO computes the GOTO of a set of LR(0) items on grammar symbol X: the
// closure of every item of I with the dot moved past a leading X.
func (g Grammar) LR0_GOTO(I util.SVSet[LR0Item], X string) util.SVSet[LR0Item] {
	moved := util.NewSVSet[LR0Item]()

	for _, itemName := range I.Elements() {
		item := I.Get(itemName)

		if len(item.Right) > 0 && item.Right[0] == X {
			adv := item.Advanced()
			moved.Set(adv.String(), adv)
		}
	}

	if moved.Empty() {
		return moved
	}

	return g.LR0_CLOSURE(moved)
}

// LR1_CLOSURE computes the closure of a set of LR(1) items.
//
// For each item [A -> α.Bβ, a] in the set with B a non-terminal, for each
// production B -> γ and each terminal b in FIRST(βa), the item [B -> .γ, b]
// is added; repeated to a fixed point. This is Figure 4.40 of the purple
// dragon book.
func (g Grammar) LR1_CLOSURE(I util.SVSet[LR1Item]) util.SVSet[LR1Item] {
	fs := g.FirstSets()
	closure := util.NewSVSet(I)

	updated := true
	for updated {
		updated = false

		for _, itemName := range closure.Elements() {
			item := closure.Get(itemName)

			if len(item.Right) == 0 {
				continue
			}

			B := item.Right[0]
			rule := g.Rule(B)
			if rule.NonTerminal == "" {
				continue
			}

			// FIRST(βa); a is a terminal (or $) so the result never holds ε
			betaA := make([]string, 0, len(item.Right))
			betaA = append(betaA, item.Right[1:]...)
			betaA = append(betaA, item.Lookahead)
			lookaheads := FirstOfString(fs, betaA...).Elements()
			sort.Strings(lookaheads)

			for _, gamma := range rule.Productions {
				for _, b := range lookaheads {
					if b == "" {
						continue
					}

					newItem := LR1Item{
						LR0Item:   LR0Item{NonTerminal: B},
						Lookahead: b,
					}
					if !gamma.Equal(Epsilon) {
						newItem.Right = gamma.Copy()
					}

					if !closure.Has(newItem.String()) {
						closure.Set(newItem.String(), newItem)
						updated = true
					}
				}
			}
		}
	}

	return closure
}

// LR1_GOTO computes the GOTO of a set of LR(1) items on grammar symbol X: the
// closure of every item of I with the dot moved past a leading X, lookaheads
// carried along unchanged.
func (g Grammar) LR1_GOTO(I util.SVSet[LR1Item], X string) util.SVSet[LR1Item] {
	moved := util.NewSVSet[LR1Item]()

	for _, itemName := range I.Elements() {
		item := I.Get(itemName)

		if len(item.Right) > 0 && item.Right[0] == X {
			adv := LR1Item{LR0Item: item.LR0Item.Advanced(), Lookahead: item.Lookahead}
			moved.Set(adv.String(), adv)
		}
	}

	if moved.Empty() {
		return moved
	}

	return g.LR1_CLOSURE(moved)
}

// Symbols returns all grammar symbols, terminals then non-terminals, each
// group sorted. The end marker "$" and ε are not included.
func (g Grammar) Symbols() []string {
	syms := g.Terminals()
	syms = append(syms, g.UnresolvedSymbols()...)
	syms = append(syms, g.NonTerminals()...)
	return syms
}
