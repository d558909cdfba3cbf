// Package grammar implements the context-free grammar model used by the
// moray toolkit, along with the static analyses performed on it: FIRST and
// FOLLOW set computation, LL(1) suitability checking and table construction,
// and the LR item machinery that the bottom-up table builders are built on.
//
// Symbols are plain strings. By convention, terminals are lower-case and
// non-terminal symbols are upper-case; the empty string inside a production
// is ε and "$" is the end-of-input marker. The convention keeps productions
// as simple string slices, which everything else in the module relies on.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/moray/internal/util"
	"github.com/dekarrin/moray/types"
)

// Production is a single possible expansion of a non-terminal; the right side
// of one alternative of a rule.
type Production []string

var (
	// Epsilon is the epsilon production; the production of zero symbols.
	Epsilon = Production{""}

	// Error is a non-production used to signal an absent table entry.
	Error = Production{}
)

// Copy returns a deep-copied duplicate of this production.
func (p Production) Copy() Production {
	p2 := make(Production, len(p))
	copy(p2, p)

	return p2
}

// Equal returns whether Production is equal to another value. It will not be
// equal if the other value cannot be cast to Production or *Production (or
// the equivalent string slices).
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		otherPtr, ok := o.(*Production)
		if !ok {
			otherSlice, ok := o.([]string)
			if !ok {
				otherSlicePtr, ok := o.(*[]string)
				if !ok {
					return false
				} else if otherSlicePtr == nil {
					return false
				} else {
					other = Production(*otherSlicePtr)
				}
			} else {
				other = Production(otherSlice)
			}
		} else if otherPtr == nil {
			return false
		} else {
			other = *otherPtr
		}
	}

	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}

func (p Production) String() string {
	if p.Equal(Epsilon) {
		return "ε"
	}

	var sb strings.Builder

	for i := range p {
		sb.WriteString(p[i])
		if i+1 < len(p) {
			sb.WriteRune(' ')
		}
	}

	return sb.String()
}

// HasSymbol returns whether the production has the given symbol in it.
func (p Production) HasSymbol(sym string) bool {
	return util.InSlice(sym, p)
}

// AllItems returns all LR0 items of the production. Note: a Production does
// not know what non-terminal produces it, so the NonTerminal field of the
// returned LR0Items will be blank.
func (p Production) AllItems() []LR0Item {
	if p.Equal(Epsilon) {
		// an ε-production has exactly one item, the dot with nothing on
		// either side
		return []LR0Item{{}}
	}

	items := []LR0Item{}
	for dot := 0; dot < len(p); dot++ {
		items = append(items, LR0Item{
			Left:  p[:dot],
			Right: p[dot:],
		})
	}

	items = append(items, LR0Item{Left: p})

	return items
}

// Rule is a set of productions of a single non-terminal; all the alternatives
// it can expand to.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// Copy returns a deep-copy duplicate of the given Rule.
func (r Rule) Copy() Rule {
	r2 := Rule{
		NonTerminal: r.NonTerminal,
		Productions: make([]Production, len(r.Productions)),
	}

	for i := range r.Productions {
		r2.Productions[i] = r.Productions[i].Copy()
	}

	return r2
}

func (r Rule) String() string {
	var sb strings.Builder

	sb.WriteString(r.NonTerminal)
	sb.WriteString(" -> ")

	for i := range r.Productions {
		sb.WriteString(r.Productions[i].String())
		if i+1 < len(r.Productions) {
			sb.WriteString(" | ")
		}
	}

	return sb.String()
}

// Equal returns whether Rule is equal to another value. It will not be equal
// if the other value cannot be cast to a Rule or *Rule.
func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		otherPtr, ok := o.(*Rule)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if r.NonTerminal != other.NonTerminal {
		return false
	}
	if len(r.Productions) != len(other.Productions) {
		return false
	}
	for i := range r.Productions {
		if !r.Productions[i].Equal(other.Productions[i]) {
			return false
		}
	}

	return true
}

// CanProduce returns whether this rule has an alternative that is the given
// Production.
func (r Rule) CanProduce(p Production) bool {
	for _, alt := range r.Productions {
		if alt.Equal(p) {
			return true
		}
	}
	return false
}

// CanProduceSymbol returns whether any alternative of the rule produces the
// given terminal or non-terminal.
func (r Rule) CanProduceSymbol(termOrNonTerm string) bool {
	for _, alt := range r.Productions {
		for _, sym := range alt {
			if sym == termOrNonTerm {
				return true
			}
		}
	}
	return false
}

// LRItems returns all LR0 items of the Rule with their NonTerminal field
// properly set.
func (r Rule) LRItems() []LR0Item {
	items := []LR0Item{}
	for _, p := range r.Productions {
		prodItems := p.AllItems()
		for i := range prodItems {
			item := prodItems[i]
			item.NonTerminal = r.NonTerminal
			prodItems[i] = item
		}
		items = append(items, prodItems...)
	}
	return items
}

// IsTerminal returns whether the given symbol is a terminal by the casing
// convention. ε (the empty string) is not a terminal.
func IsTerminal(sym string) bool {
	return sym != "" && strings.ToLower(sym) == sym
}

// IsNonTerminal returns whether the given symbol is a non-terminal by the
// casing convention.
func IsNonTerminal(sym string) bool {
	return sym != "" && strings.ToUpper(sym) == sym
}

// Grammar is a context-free grammar: an ordered set of production rules, the
// terminals they produce, and a start symbol. Mutation is done through
// AddRule/AddTerm while building; analyses treat it as immutable.
type Grammar struct {
	rulesByName map[string]int

	// main rules store, not just doing a simple map bc rules have an order
	// that matters
	rules     []Rule
	terminals map[string]types.TokenClass

	// Start is the name of the start symbol. If not set, assumed to be the
	// non-terminal of the first rule added.
	Start string
}

// Copy makes a duplicate deep copy of the grammar.
func (g Grammar) Copy() Grammar {
	g2 := Grammar{
		rulesByName: make(map[string]int, len(g.rulesByName)),
		rules:       make([]Rule, len(g.rules)),
		terminals:   make(map[string]types.TokenClass, len(g.terminals)),
		Start:       g.Start,
	}

	for k := range g.rulesByName {
		g2.rulesByName[k] = g.rulesByName[k]
	}

	for i := range g.rules {
		g2.rules[i] = g.rules[i].Copy()
	}

	for k := range g.terminals {
		g2.terminals[k] = g.terminals[k]
	}

	return g2
}

// StartSymbol returns the start symbol of the grammar. If none has been
// explicitly set, the non-terminal of the first rule added is used.
func (g Grammar) StartSymbol() string {
	if g.Start != "" {
		return g.Start
	}
	if len(g.rules) > 0 {
		return g.rules[0].NonTerminal
	}
	return "S"
}

func (g Grammar) String() string {
	return fmt.Sprintf("(%q, R=%q)", util.OrderedKeys(g.terminals), g.rules)
}

// Rule returns the grammar rule for the given non-terminal symbol. If there
// is no rule defined for that non-terminal, a Rule with an empty NonTerminal
// field is returned.
func (g Grammar) Rule(nonterminal string) Rule {
	if g.rulesByName == nil {
		return Rule{}
	}

	if curIdx, ok := g.rulesByName[nonterminal]; !ok {
		return Rule{}
	} else {
		return g.rules[curIdx]
	}
}

// Rules returns all rules in the grammar in the order they were defined.
func (g Grammar) Rules() []Rule {
	rules := make([]Rule, len(g.rules))
	copy(rules, g.rules)
	return rules
}

// Term returns the types.TokenClass that the given terminal symbol maps to.
// If the given terminal symbol is not defined as a terminal symbol in this
// grammar, the undefined token class is returned.
func (g Grammar) Term(terminal string) types.TokenClass {
	if g.terminals == nil {
		return types.TokenUndefined
	}

	if class, ok := g.terminals[terminal]; !ok {
		return types.TokenUndefined
	} else {
		return class
	}
}

// TermFor returns the terminal symbol that maps to the given token class, or
// "" if there is none. The end-of-text class always maps to "$".
func (g Grammar) TermFor(tc types.TokenClass) string {
	if tc.Equal(types.TokenEndOfText) {
		return "$"
	}
	for k := range g.terminals {
		if g.terminals[k].Equal(tc) {
			return k
		}
	}
	return ""
}

// IsTerminal returns whether the given symbol is a terminal of the grammar.
func (g Grammar) IsTerminal(sym string) bool {
	if sym == "$" {
		return true
	}
	_, ok := g.terminals[sym]
	return ok
}

// AddTerm adds the given terminal along with the types.TokenClass that
// corresponds to it; tokens must be of that class in order to match the
// terminal.
func (g *Grammar) AddTerm(terminal string, class types.TokenClass) {
	if terminal == "" {
		panic("empty terminal not allowed")
	}

	if class.Equal(types.TokenEndOfText) {
		panic("can't add out-of-band signal TokenEndOfText as defined terminal")
	}

	for _, ch := range terminal {
		if ('a' > ch || ch > 'z') && ('0' > ch || ch > '9') && ch != '_' && ch != '-' {
			panic(fmt.Sprintf("invalid terminal name %q; must only be chars a-z, 0-9, \"_\", or \"-\"", terminal))
		}
	}

	if g.terminals == nil {
		g.terminals = map[string]types.TokenClass{}
	}

	g.terminals[terminal] = class
}

// AddRule adds the given production for a non-terminal. If the non-terminal
// has already been given, the production is added as an alternative for that
// non-terminal with lower priority than all others already added.
//
// All rules require at least one symbol in the production. For an epsilon
// production, give only the empty string.
func (g *Grammar) AddRule(nonterminal string, production []string) {
	if nonterminal == "" {
		panic("empty nonterminal name not allowed for production rule")
	}

	for _, ch := range nonterminal {
		if ('A' > ch || ch > 'Z') && ('0' > ch || ch > '9') && ch != '_' && ch != '-' {
			panic(fmt.Sprintf("invalid nonterminal name %q; must only be chars A-Z, 0-9, \"_\", or \"-\"", nonterminal))
		}
	}

	if len(production) < 1 {
		panic("for epsilon production give empty string; all rules must have productions")
	}

	// check that epsilon, if given, is by itself
	if len(production) != 1 {
		for _, sym := range production {
			if sym == "" {
				panic("epsilon production only allowed as sole production of an alternative")
			}
		}
	}

	if g.rulesByName == nil {
		g.rulesByName = map[string]int{}
	}

	curIdx, ok := g.rulesByName[nonterminal]
	if !ok {
		g.rules = append(g.rules, Rule{NonTerminal: nonterminal})
		curIdx = len(g.rules) - 1
		g.rulesByName[nonterminal] = curIdx
	}

	curRule := g.rules[curIdx]
	curRule.Productions = append(curRule.Productions, production)
	g.rules[curIdx] = curRule
}

// NonTerminals returns a list of all the non-terminal symbols, sorted.
func (g Grammar) NonTerminals() []string {
	return util.OrderedKeys(g.rulesByName)
}

// NonTerminalsByPriority returns the non-terminal symbols in the order their
// rules were defined in.
func (g Grammar) NonTerminalsByPriority() []string {
	termNames := []string{}
	for _, r := range g.rules {
		termNames = append(termNames, r.NonTerminal)
	}

	return termNames
}

// Terminals returns a list of all terminal symbols, sorted. The end-of-input
// marker "$" is not included; it is out-of-band for a grammar.
func (g Grammar) Terminals() []string {
	return util.OrderedKeys(g.terminals)
}

// UnresolvedSymbols returns all symbols which appear on the right side of
// some production with non-terminal casing but which have no rule defined.
// Analyses treat such symbols as terminals; callers should surface them as
// warnings.
func (g Grammar) UnresolvedSymbols() []string {
	unresolved := util.NewStringSet()

	for _, r := range g.rules {
		for _, alt := range r.Productions {
			for _, sym := range alt {
				if sym == "" || !IsNonTerminal(sym) {
					continue
				}
				if _, ok := g.rulesByName[sym]; !ok {
					unresolved.Add(sym)
				}
			}
		}
	}

	return util.OrderedKeys(map[string]bool(unresolved))
}

// GenerateUniqueName generates a name for a non-terminal gauranteed to be
// unique within the grammar, based on original if one is provided.
func (g Grammar) GenerateUniqueName(original string) string {
	newName := original + "-P"
	existingRule := g.Rule(newName)
	for existingRule.NonTerminal != "" {
		newName += "P"
		existingRule = g.Rule(newName)
	}

	return newName
}

// Augmented returns a new grammar that is this one with a new start symbol
// S' and production S' -> S added, where S is the current start symbol. The
// augmentation makes the accept condition of LR parsers unambiguous.
func (g Grammar) Augmented() Grammar {
	oldStart := g.StartSymbol()
	dummySym := g.GenerateUniqueName(oldStart)

	g2 := g.Copy()
	g2.AddRule(dummySym, []string{oldStart})
	g2.Start = dummySym

	return g2
}

// Validate checks that the current rules form a complete grammar with no
// missing definitions. Symbols with non-terminal casing that have no rule are
// NOT errors — they are reported by UnresolvedSymbols and treated as
// terminals — but a grammar with no rules, no terminals, or unused defined
// symbols is rejected.
func (g Grammar) Validate() error {
	if len(g.rules) < 1 {
		return fmt.Errorf("no rules defined in grammar")
	} else if len(g.terminals) < 1 {
		return fmt.Errorf("no terminals defined in grammar")
	}

	producedNonTerms := map[string]bool{}
	producedTerms := map[string]bool{}

	errStr := ""

	for i := range g.rules {
		rule := g.rules[i]
		for _, alt := range rule.Productions {
			for _, sym := range alt {
				// if its empty its epsilon, skip
				if sym == "" {
					continue
				}
				if IsNonTerminal(sym) {
					producedNonTerms[sym] = true
				} else {
					if _, ok := g.terminals[sym]; !ok {
						errStr += fmt.Sprintf("ERR: undefined terminal %q produced by %q\n", sym, rule.NonTerminal)
					}
					producedTerms[sym] = true
				}
			}
		}
	}

	// make sure every defined terminal is used
	for _, term := range util.OrderedKeys(g.terminals) {
		if _, ok := producedTerms[term]; !ok {
			errStr += fmt.Sprintf("ERR: terminal %q is not produced by any rule\n", term)
		}
	}

	// make sure every non-terminal other than the start is produced by
	// something
	for _, r := range g.rules {
		if r.NonTerminal == g.StartSymbol() {
			continue
		}

		if _, ok := producedNonTerms[r.NonTerminal]; !ok {
			errStr += fmt.Sprintf("ERR: non-terminal %q not produced by any rule\n", r.NonTerminal)
		}
	}

	// make sure we HAVE a start rule
	if _, ok := g.rulesByName[g.StartSymbol()]; !ok {
		errStr += fmt.Sprintf("ERR: no rules defined for productions of start symbol %q\n", g.StartSymbol())
	}

	if len(errStr) > 0 {
		errStr = errStr[:len(errStr)-1]
		return fmt.Errorf("%s", errStr)
	}

	return nil
}
