package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/moray/types"
)

// Parse parses a grammar from a rule-list description. Rules are separated by
// ";" and have the form "S -> a B | ε"; alternatives are separated by "|" and
// symbols by whitespace. Lower-case symbols are terminals, upper-case symbols
// are non-terminals, and "ε" alone is the epsilon production. Every terminal
// encountered is defined with a default token class of the same name.
//
// The start symbol is the non-terminal of the first rule.
func Parse(gr string) (Grammar, error) {
	lines := strings.Split(gr, ";")

	var g Grammar
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		rule, err := parseRule(line)
		if err != nil {
			return Grammar{}, err
		}

		for _, p := range rule.Productions {
			for _, sym := range p {
				if IsTerminal(sym) {
					g.AddTerm(sym, types.MakeDefaultClass(sym))
				}
			}
			g.AddRule(rule.NonTerminal, p)
		}
	}

	return g, nil
}

// MustParse is like Parse but panics if the grammar does not parse.
func MustParse(gr string) Grammar {
	g, err := Parse(gr)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// parseRule parses a Rule from a string like "S -> X y | Y".
func parseRule(r string) (Rule, error) {
	sides := strings.Split(r, "->")
	if len(sides) != 2 {
		return Rule{}, fmt.Errorf("not a rule of form 'NONTERM -> SYMBOL SYMBOL | SYMBOL ...': %q", r)
	}
	nonTerminal := strings.TrimSpace(sides[0])

	if nonTerminal == "" {
		return Rule{}, fmt.Errorf("empty nonterminal name not allowed for production rule")
	}

	for _, ch := range nonTerminal {
		if ('A' > ch || ch > 'Z') && ('0' > ch || ch > '9') && ch != '_' && ch != '-' {
			return Rule{}, fmt.Errorf("invalid nonterminal name %q; must only be chars A-Z, 0-9, \"_\", or \"-\"", nonTerminal)
		}
	}

	parsedRule := Rule{NonTerminal: nonTerminal}

	productionsString := strings.TrimSpace(sides[1])
	prodStrings := strings.Split(productionsString, "|")
	for _, p := range prodStrings {
		parsedProd := Production{}
		p = strings.TrimSpace(p)
		symbols := strings.Fields(p)

		if len(symbols) < 1 {
			return Rule{}, fmt.Errorf("empty production not allowed; use ε for the epsilon production")
		}

		for _, sym := range symbols {
			if sym == "ε" {
				if len(symbols) != 1 {
					return Rule{}, fmt.Errorf("ε must be the sole symbol of its alternative")
				}
				parsedProd = Epsilon
				continue
			}

			isTerm := IsTerminal(sym)
			isNonTerm := IsNonTerminal(sym)

			if !isTerm && !isNonTerm {
				return Rule{}, fmt.Errorf("cannot tell if symbol is a terminal or non-terminal: %q", sym)
			}

			for _, ch := range strings.ToLower(sym) {
				if ('a' > ch || ch > 'z') && ('0' > ch || ch > '9') && ch != '_' && ch != '-' {
					return Rule{}, fmt.Errorf("invalid symbol: %q", sym)
				}
			}

			parsedProd = append(parsedProd, sym)
		}

		parsedRule.Productions = append(parsedRule.Productions, parsedProd)
	}

	return parsedRule, nil
}

// MustParseRule is like parseRule but panics on failure. It is mainly useful
// in tests.
func MustParseRule(r string) Rule {
	rule, err := parseRule(r)
	if err != nil {
		panic(err.Error())
	}
	return rule
}
