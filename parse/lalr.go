package parse

import (
	"fmt"

	"github.com/dekarrin/moray/automaton"
	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/types"
)

// ConstructLALR1Table builds the LALR(1) ACTION/GOTO table for g by merging
// the canonical LR(1) states that share a kernel and filling the table from
// the merged DFA.
//
// Shift/reduce and reduce/reduce conflicts do not abort construction; they
// are recorded on the returned table for the caller to inspect. Note that
// relative to the canonical LR(1) table, merging can only ever introduce new
// reduce/reduce conflicts, never shift/reduce ones: GOTO depends only on
// kernels, so every shift of a merged state was present in each of its
// sources.
//
// The returned error is non-nil only when the merge itself fails, which
// means g is not LALR(1) at the automaton level.
func ConstructLALR1Table(g grammar.Grammar) (LRParseTable, error) {
	dfa, err := automaton.NewLALR1ViablePrefixDFA(g)
	if err != nil {
		return nil, err
	}

	t := newLRTable(types.ParserLALR1, g)
	fillFromLR1Items(t, dfa, g.Augmented(), g.StartSymbol())

	return t, nil
}

// GenerateLALR1Parser returns a parser for grammar g built from the LALR(1)
// merge of its canonical LR(1) collection. The grammar must be LALR(1); any
// table conflict is reported as an error.
func GenerateLALR1Parser(g grammar.Grammar) (*lrParser, error) {
	table, err := ConstructLALR1Table(g)
	if err != nil {
		return nil, err
	}

	if conflicts := table.Conflicts(); len(conflicts) > 0 {
		return nil, fmt.Errorf("grammar is not LALR(1): %s", conflicts[0].String())
	}

	return &lrParser{table: table, parseType: types.ParserLALR1, gram: g.Copy()}, nil
}
