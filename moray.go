// Package moray contains lexer-generators and parser-generators for
// constructing compiler front ends, built as part of research into compiling
// techniques. Given a set of lexical rules and a context-free grammar, it
// produces a table-driven tokenizer and a choice of LL(1), SLR(1), CLR(1),
// or LALR(1) parsing tables together with the drivers that run them.
//
// It's named for the moray eel. Long, full of teeth, and happiest when
// something passes through it in exactly one direction, which felt about
// right for a pipeline that turns text into parse trees.
//
// This will probably never be as good as the established toolchains, so
// consider using those. This is for research and does not seek to replace
// them in any practical fashion.
package moray

// HACKING NOTE:
//
// https://jsmachines.sourceforge.net/machines/lalr1.html is an AMAZING tool
// for validating LALR(1) grammars quickly.

import (
	"fmt"
	"strings"

	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/lex"
	"github.com/dekarrin/moray/parse"
	"github.com/dekarrin/moray/types"
)

// Parser is a parser driver over some constructed parsing table.
type Parser interface {
	// Parse parses input text and returns the parse tree built from it, or a
	// SyntaxError with the description of the problem.
	Parse(stream types.TokenStream) (types.ParseTree, error)

	// Type returns the algorithm family of the parser's table.
	Type() types.ParserType

	// TableString returns a human-readable rendition of the parser's table.
	TableString() string
}

// NewLexer returns a lexer with no patterns added. Patterns are compiled to
// a minimized DFA transition table on build; the lexer's Lex method
// tokenizes with maximal munch.
func NewLexer() lex.Lexer {
	return lex.NewLexer()
}

// NewParser constructs a parser of the given algorithm family for g.
func NewParser(pt types.ParserType, g grammar.Grammar) (Parser, error) {
	switch pt {
	case types.ParserLL1:
		p, err := parse.GenerateLL1Parser(g)
		if err != nil {
			return nil, err
		}
		return p, nil
	case types.ParserSLR1:
		return parse.GenerateSLR1Parser(g)
	case types.ParserCLR1:
		return parse.GenerateCanonicalLR1Parser(g)
	case types.ParserLALR1:
		return parse.GenerateLALR1Parser(g)
	default:
		return nil, fmt.Errorf("unknown parser type: %q", pt)
	}
}

// Frontend is an assembled front end: a built lexer and a parser over the
// same token classes, ready to analyze input text.
type Frontend struct {
	Lexer   lex.Lexer
	Parser  Parser
	Grammar grammar.Grammar

	// Warnings is the non-fatal diagnostics produced during assembly, such
	// as grammar symbols that are produced but never defined (these are
	// treated as terminals).
	Warnings []string
}

// NewFrontend assembles a front end from lexical rules and a grammar,
// constructing parsing tables of the given algorithm family.
func NewFrontend(defs []lex.TokenDef, g grammar.Grammar, pt types.ParserType) (*Frontend, error) {
	fe := &Frontend{Grammar: g}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grammar: %w", err)
	}
	for _, sym := range g.UnresolvedSymbols() {
		fe.Warnings = append(fe.Warnings, fmt.Sprintf("symbol %q is produced but never defined; treating it as a terminal", sym))
	}

	lx := lex.NewLexer()
	for _, d := range defs {
		if err := lx.AddPattern(d.Pattern, d.Name); err != nil {
			return nil, err
		}
	}
	if _, err := lx.Build(); err != nil {
		return nil, err
	}
	fe.Lexer = lx

	p, err := NewParser(pt, g)
	if err != nil {
		return nil, err
	}
	fe.Parser = p

	return fe, nil
}

// Analyze lexes and parses the given text, returning the parse tree.
func (fe *Frontend) Analyze(text string) (types.ParseTree, error) {
	stream, err := fe.Lexer.Lex(strings.NewReader(text))
	if err != nil {
		return types.ParseTree{}, err
	}

	return fe.Parser.Parse(stream)
}
