package grammar

import (
	"fmt"

	"github.com/dekarrin/moray/internal/util"
	"github.com/dekarrin/rosed"
)

// LL1Table is the predictive parsing table of an LL(1) grammar: a sparse
// mapping of (non-terminal, terminal) to the production to predict.
type LL1Table util.Matrix2[string, string, Production]

func NewLL1Table() LL1Table {
	return LL1Table(util.NewMatrix2[string, string, Production]())
}

func (M LL1Table) Set(A string, a string, alpha Production) {
	util.Matrix2[string, string, Production](M).Set(A, a, alpha)
}

// Get returns the Production at the given coordinates, or the Error
// production if the cell is empty.
func (M LL1Table) Get(A string, a string) Production {
	v := util.Matrix2[string, string, Production](M).Get(A, a)
	if v == nil {
		return Error
	}
	return *v
}

// NonTerminals returns all non-terminals used as row keys in this table,
// sorted.
func (M LL1Table) NonTerminals() []string {
	return util.OrderedKeys(M)
}

// Terminals returns all terminals used as column keys in this table, sorted.
// Note that "$" is expected to be present in any complete LL(1) prediction
// table whose grammar has a nullable start symbol.
func (M LL1Table) Terminals() []string {
	termSet := map[string]bool{}

	for k := range M {
		for term := range M[k] {
			termSet[term] = true
		}
	}

	return util.OrderedKeys(termSet)
}

func (M LL1Table) String() string {
	data := [][]string{}

	terms := M.Terminals()
	nts := M.NonTerminals()

	topRow := []string{""}
	topRow = append(topRow, terms...)
	data = append(data, topRow)

	for i := range nts {
		dataRow := []string{nts[i]}
		for j := range terms {
			prod := M.Get(nts[i], terms[j])
			dataRow = append(dataRow, prod.String())
		}
		data = append(data, dataRow)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableBorders: true,
		}).
		String()
}

// LL1ConflictError is returned by LLParseTable when a table cell would
// receive two distinct productions; the grammar is not LL(1).
type LL1ConflictError struct {
	// NonTerminal and Terminal identify the conflicting cell M[A, a].
	NonTerminal string
	Terminal    string

	// First is the production already in the cell; Second the one that would
	// overwrite it.
	First  Production
	Second Production
}

func (e *LL1ConflictError) Error() string {
	return fmt.Sprintf("not an LL(1) grammar: M[%s, %s] would hold both %s -> %s and %s -> %s",
		e.NonTerminal, e.Terminal, e.NonTerminal, e.First.String(), e.NonTerminal, e.Second.String())
}

// LLParseTable builds and returns the LL(1) predictive parsing table for the
// grammar. If two different productions land in the same cell the build is
// aborted and the returned error is an *LL1ConflictError identifying the
// cell and both productions.
//
// This is an implementation of Algorithm 4.31, "Construction of a predictive
// parsing table", from the purple dragon book, with the conflict check made
// on cell write rather than by a separate disjointness test up front.
func (g Grammar) LLParseTable() (M LL1Table, err error) {
	fs := g.FirstSets()
	follow := g.followSetsWith(fs)

	M = NewLL1Table()

	// For each production A -> α of the grammar:
	for _, A := range g.NonTerminalsByPriority() {
		ARule := g.Rule(A)

		for _, alpha := range ARule.Productions {
			FIRSTalpha := FirstOfString(fs, alpha...)

			set := func(a string) error {
				existing := M.Get(A, a)
				if !existing.Equal(Error) && !existing.Equal(alpha) {
					return &LL1ConflictError{
						NonTerminal: A,
						Terminal:    a,
						First:       existing,
						Second:      alpha,
					}
				}
				M.Set(A, a, alpha)
				return nil
			}

			// 1. For each terminal a in FIRST(α), add A -> α to M[A, a].
			for a := range FIRSTalpha {
				if a == "" {
					continue
				}
				if err := set(a); err != nil {
					return nil, err
				}
			}

			// 2. If ε is in FIRST(α), then for each terminal b in FOLLOW(A)
			// (including $), add A -> α to M[A, b].
			if FIRSTalpha.Has("") {
				for b := range follow[A] {
					if err := set(b); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return M, nil
}

// IsLL1 returns whether the grammar is LL(1); that is, whether a predictive
// parse table can be built for it without conflicts.
func (g Grammar) IsLL1() bool {
	_, err := g.LLParseTable()
	return err == nil
}
