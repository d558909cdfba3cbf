package grammar

import (
	"github.com/dekarrin/moray/internal/util"
)

// This file implements the static analyses on a Grammar: FIRST and FOLLOW
// set computation. Both are iterate-to-fixed-point implementations of
// algorithms from section 4.4.2 of the purple dragon book; the sets are
// monotone over a finite terminal alphabet so the loops always terminate.
//
// Inside the sets, "" stands for ε and "$" for end-of-input.

// FirstSets maps every grammar symbol to its FIRST set: the terminals that
// can begin a string derived from the symbol, plus ε ("") if the symbol can
// derive the empty string.
type FirstSets map[string]util.StringSet

// FollowSets maps every non-terminal to its FOLLOW set: the terminals (or
// "$") that can appear immediately after it in some sentential form.
type FollowSets map[string]util.StringSet

// FirstSets computes the FIRST set of every symbol of the grammar.
//
// Initialization is FIRST(t) = {t} for terminals and FIRST(A) = {} for
// non-terminals; then productions are scanned repeatedly, each A -> X₁…Xₙ
// contributing FIRST(Xᵢ) \ {ε} for the longest nullable prefix (and ε if the
// entire right side is nullable), until a full pass changes nothing.
//
// Symbols with non-terminal casing but no defined rule are treated as
// terminals (see UnresolvedSymbols).
func (g Grammar) FirstSets() FirstSets {
	fs := FirstSets{}

	for _, t := range g.Terminals() {
		fs[t] = util.StringSetOf([]string{t})
	}
	for _, u := range g.UnresolvedSymbols() {
		fs[u] = util.StringSetOf([]string{u})
	}
	for _, nt := range g.NonTerminals() {
		fs[nt] = util.NewStringSet()
	}

	updated := true
	for updated {
		updated = false

		for _, r := range g.rules {
			target := fs[r.NonTerminal]

			for _, alt := range r.Productions {
				nullable := true
				for _, X := range alt {
					if X == "" {
						// the ε production; nothing to scan
						continue
					}

					fX, ok := fs[X]
					if !ok {
						// terminal used without definition; it still begins
						// with itself
						fX = util.StringSetOf([]string{X})
						fs[X] = fX
					}

					for sym := range fX {
						if sym == "" {
							continue
						}
						if !target.Has(sym) {
							target.Add(sym)
							updated = true
						}
					}

					if !fX.Has("") {
						nullable = false
						break
					}
				}

				if nullable && !target.Has("") {
					target.Add("")
					updated = true
				}
			}
		}
	}

	return fs
}

// FIRST returns the FIRST set of a single symbol. It computes the full table
// each call; callers doing repeated queries should get FirstSets once.
func (g Grammar) FIRST(X string) util.StringSet {
	if X == "" {
		return util.StringSetOf([]string{""})
	}
	fs := g.FirstSets()
	f, ok := fs[X]
	if !ok {
		return util.StringSetOf([]string{X})
	}
	return f
}

// FirstOfString computes FIRST of a sequence of symbols γ = Y₁…Yₖ: the union
// of FIRST(Yᵢ) \ {ε} over the longest nullable prefix, FIRST of the first
// non-nullable Yⱼ, and ε if every Yᵢ is nullable (or the sequence is empty).
func FirstOfString(fs FirstSets, gamma ...string) util.StringSet {
	first := util.NewStringSet()

	nullable := true
	for _, Y := range gamma {
		if Y == "" {
			continue
		}

		fY, ok := fs[Y]
		if !ok {
			// undefined symbols begin with themselves; "$" in particular
			// takes this path
			fY = util.StringSetOf([]string{Y})
		}

		for sym := range fY {
			if sym != "" {
				first.Add(sym)
			}
		}

		if !fY.Has("") {
			nullable = false
			break
		}
	}

	if nullable {
		first.Add("")
	}

	return first
}

// FollowSets computes the FOLLOW set of every non-terminal of the grammar.
//
// Initialization is FOLLOW(start) = {$} and FOLLOW(A) = {} otherwise; then
// for every production B -> α X β, FIRST(β) \ {ε} is added to FOLLOW(X), and
// FOLLOW(B) is added to FOLLOW(X) when β is empty or nullable. Passes repeat
// until nothing changes.
func (g Grammar) FollowSets() FollowSets {
	return g.followSetsWith(g.FirstSets())
}

// followSetsWith is FollowSets with a precomputed FIRST table.
func (g Grammar) followSetsWith(fs FirstSets) FollowSets {
	follow := FollowSets{}
	for _, nt := range g.NonTerminals() {
		follow[nt] = util.NewStringSet()
	}
	follow[g.StartSymbol()].Add("$")

	updated := true
	for updated {
		updated = false

		for _, r := range g.rules {
			B := r.NonTerminal

			for _, alt := range r.Productions {
				for i, X := range alt {
					if _, isNT := follow[X]; !isNT {
						continue
					}

					beta := alt[i+1:]
					firstBeta := FirstOfString(fs, beta...)

					target := follow[X]
					for sym := range firstBeta {
						if sym == "" {
							continue
						}
						if !target.Has(sym) {
							target.Add(sym)
							updated = true
						}
					}

					if firstBeta.Has("") {
						for sym := range follow[B] {
							if !target.Has(sym) {
								target.Add(sym)
								updated = true
							}
						}
					}
				}
			}
		}
	}

	return follow
}

// FOLLOW returns the FOLLOW set of a single non-terminal. It computes the
// full tables each call; callers doing repeated queries should get
// FollowSets once.
func (g Grammar) FOLLOW(A string) util.StringSet {
	f, ok := g.FollowSets()[A]
	if !ok {
		return util.NewStringSet()
	}
	return f
}
