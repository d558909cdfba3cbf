package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/internal/util"
	"github.com/dekarrin/moray/morayerr"
	"github.com/dekarrin/moray/types"
	"github.com/dekarrin/rosed"
)

// LRParseTable is the ACTION/GOTO table pair driven by an LR parser. Tables
// are produced from a grammar by one of the Construct* functions; the
// Generate* functions wrap a table in a parser.
type LRParseTable interface {
	// Initial returns the initial state of the parse table.
	Initial() string

	// Action gets the action to take based on a state and a terminal. An
	// absent entry gives an action of type LRError.
	Action(state, symbol string) LRAction

	// Goto maps a state and a non-terminal to the state to transition to
	// after a reduction. Returns an error for an absent entry.
	Goto(state, symbol string) (string, error)

	// Conflicts returns the diagnostics recorded while the table was built.
	// The table is still usable with a non-empty conflict list (the first
	// entry written to a cell wins); the caller decides whether conflicts
	// are fatal.
	Conflicts() []LRConflict

	// StateIndex returns the display index of a state name, reflecting
	// discovery order; the initial state is 0.
	StateIndex(state string) int

	// String prints a human-readable rendition of the table. If two
	// LRParseTables produce the same String() output, they are considered
	// equal.
	String() string
}

// lrTable is the concrete ACTION/GOTO table shared by the SLR(1), CLR(1),
// and LALR(1) builders. Cells are filled once at construction; conflicting
// writes are recorded and dropped.
type lrTable struct {
	parserType types.ParserType

	action  map[string]map[string]LRAction
	gotoTbl map[string]map[string]string

	initial    string
	stateOrder []string
	stateIdx   map[string]int

	gTerms    []string
	gNonTerms []string

	conflicts []LRConflict
}

func newLRTable(pt types.ParserType, g grammar.Grammar) *lrTable {
	return &lrTable{
		parserType: pt,
		action:     map[string]map[string]LRAction{},
		gotoTbl:    map[string]map[string]string{},
		stateIdx:   map[string]int{},
		gTerms:     g.Terminals(),
		gNonTerms:  g.NonTerminals(),
	}
}

// setStates records the states of the table in discovery order; the first is
// the initial state.
func (t *lrTable) setStates(order []string) {
	t.stateOrder = order
	for i, name := range order {
		t.stateIdx[name] = i
	}
	if len(order) > 0 {
		t.initial = order[0]
	}
}

// trySet writes an ACTION entry, recording a conflict diagnostic instead of
// overwriting when the cell already holds a different entry. The first
// writer wins.
func (t *lrTable) trySet(state, symbol string, act LRAction) {
	cells, ok := t.action[state]
	if !ok {
		cells = map[string]LRAction{}
		t.action[state] = cells
	}

	existing, occupied := cells[symbol]
	if !occupied {
		cells[symbol] = act
		return
	}
	if existing.Equal(act) {
		return
	}

	t.conflicts = append(t.conflicts, LRConflict{
		Type:       classifyConflict(existing, act),
		State:      state,
		StateIndex: t.stateIdx[state],
		Symbol:     symbol,
		Existing:   existing,
		Proposed:   act,
	})
}

func (t *lrTable) setGoto(state, symbol, next string) {
	cells, ok := t.gotoTbl[state]
	if !ok {
		cells = map[string]string{}
		t.gotoTbl[state] = cells
	}
	cells[symbol] = next
}

func (t *lrTable) Initial() string {
	return t.initial
}

func (t *lrTable) Action(state, symbol string) LRAction {
	cells, ok := t.action[state]
	if !ok {
		return LRAction{Type: LRError}
	}
	act, ok := cells[symbol]
	if !ok {
		return LRAction{Type: LRError}
	}
	return act
}

func (t *lrTable) Goto(state, symbol string) (string, error) {
	cells, ok := t.gotoTbl[state]
	if ok {
		if next, ok := cells[symbol]; ok {
			return next, nil
		}
	}
	return "", fmt.Errorf("GOTO[%d, %q] is an error entry", t.stateIdx[state], symbol)
}

func (t *lrTable) Conflicts() []LRConflict {
	conflicts := make([]LRConflict, len(t.conflicts))
	copy(conflicts, t.conflicts)
	return conflicts
}

func (t *lrTable) StateIndex(state string) int {
	return t.stateIdx[state]
}

func (t *lrTable) String() string {
	allTerms := make([]string, len(t.gTerms))
	copy(allTerms, t.gTerms)
	allTerms = append(allTerms, "$")

	data := [][]string{}

	headers := []string{"S", "|"}

	for _, term := range allTerms {
		headers = append(headers, fmt.Sprintf("A:%s", term))
	}

	headers = append(headers, "|")

	for _, nt := range t.gNonTerms {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}
	data = append(data, headers)

	for idx, stateName := range t.stateOrder {
		row := []string{fmt.Sprintf("%d", idx), "|"}

		for _, term := range allTerms {
			act := t.Action(stateName, term)

			cell := ""
			switch act.Type {
			case LRAccept:
				cell = "acc"
			case LRReduce:
				cell = fmt.Sprintf("r%s -> %s", act.Symbol, act.Production.String())
			case LRShift:
				cell = fmt.Sprintf("s%d", t.stateIdx[act.State])
			case LRError:
				// err cells are blank
			}

			row = append(row, cell)
		}

		row = append(row, "|")

		for _, nt := range t.gNonTerms {
			cell := ""
			if gotoState, err := t.Goto(stateName, nt); err == nil {
				cell = fmt.Sprintf("%d", t.stateIdx[gotoState])
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// lrParser is the shift/reduce driver that runs any LRParseTable.
type lrParser struct {
	table     LRParseTable
	parseType types.ParserType
	gram      grammar.Grammar
	trace     func(s string)
}

// RegisterTraceListener sets a callback receiving a line-by-line account of
// driver activity.
func (lr *lrParser) RegisterTraceListener(listener func(s string)) {
	lr.trace = listener
}

// Type returns the algorithm family of the parser's table.
func (lr *lrParser) Type() types.ParserType {
	return lr.parseType
}

// TableString returns the rendition of the parser's table.
func (lr *lrParser) TableString() string {
	return lr.table.String()
}

func (lr lrParser) notifyTrace(fmtStr string, args ...interface{}) {
	if lr.trace != nil {
		lr.trace(fmt.Sprintf(fmtStr, args...))
	}
}

// Parse parses the token stream with the internal LR parse table.
//
// This is an implementation of Algorithm 4.44, "LR-parsing algorithm", from
// the purple dragon book. The stream's trailing end-of-text token plays the
// role of the appended $.
func (lr *lrParser) Parse(stream types.TokenStream) (types.ParseTree, error) {
	stateStack := util.Stack[string]{Of: []string{lr.table.Initial()}}

	// we will use these to build the parse tree
	tokenBuffer := util.Stack[types.Token]{}
	subTreeRoots := util.Stack[*types.ParseTree]{}

	// let a be the first symbol of w$
	a := stream.Next()
	lr.notifyTrace("initial token: %s", a.String())

	for {
		// let s be the state on top of the stack
		s := stateStack.Peek()

		ACTION := lr.table.Action(s, a.Class().ID())
		lr.notifyTrace("state %d, input %q: %s", lr.table.StateIndex(s), a.Class().ID(), ACTION.String())

		switch ACTION.Type {
		case LRShift: // if ( ACTION[s, a] = shift t )
			tokenBuffer.Push(a)

			stateStack.Push(ACTION.State)

			// let a be the next input symbol
			a = stream.Next()
		case LRReduce: // else if ( ACTION[s, a] = reduce A -> β )
			A := ACTION.Symbol
			beta := ACTION.Production

			// use the reduce to create a node in the parse tree
			node := &types.ParseTree{Value: A, Children: make([]*types.ParseTree, 0)}

			// go from right to left of the production to pop things from the
			// stacks in the correct order
			for i := len(beta) - 1; i >= 0; i-- {
				sym := beta[i]
				if grammar.IsTerminal(sym) {
					// terminal; its source is in the token buffer
					tok := tokenBuffer.Pop()
					subNode := &types.ParseTree{Terminal: true, Value: sym, Source: tok}
					node.Children = append([]*types.ParseTree{subNode}, node.Children...)
				} else {
					// non-terminal; it is in the stack of current tree roots
					subNode := subTreeRoots.Pop()
					node.Children = append([]*types.ParseTree{subNode}, node.Children...)
				}
			}
			subTreeRoots.Push(node)

			// pop |β| symbols off the stack; an ε-production pops zero
			for i := 0; i < len(beta); i++ {
				stateStack.Pop()
			}

			// let state t now be on top of the stack and push GOTO[t, A]
			state := stateStack.Peek()

			toPush, err := lr.table.Goto(state, A)
			if err != nil {
				return types.ParseTree{}, morayerr.NewSyntaxErrorFromToken(fmt.Sprintf("parsing error; no valid transition from here on %q", A), a)
			}
			stateStack.Push(toPush)
		case LRAccept: // else if ( ACTION[s, a] = accept )
			pt := subTreeRoots.Pop()
			return *pt, nil
		case LRError:
			expMessage := lr.getExpectedString(s)
			return types.ParseTree{}, morayerr.NewSyntaxErrorFromToken(fmt.Sprintf("unexpected %s in state %d; %s", a.Class().Human(), lr.table.StateIndex(s), expMessage), a)
		}
	}
}

func (lr lrParser) getExpectedString(stateName string) string {
	expected := lr.findExpectedTokens(stateName)

	if len(expected) == 0 {
		return "expected end of input"
	}

	var sb strings.Builder

	sb.WriteString("expected ")

	commas := false
	finalOr := false

	if len(expected) > 1 {
		finalOr = true
		if len(expected) > 2 {
			commas = true
		}
	}
	for i := range expected {
		t := expected[i]

		if i == 0 {
			sb.WriteString(util.ArticleFor(t.Human(), false))
			sb.WriteRune(' ')
		}

		if finalOr && i+1 == len(expected) {
			sb.WriteString(" or ")
		}

		sb.WriteString(t.Human())
		if commas && i+1 < len(expected) {
			sb.WriteString(", ")
		}
	}

	return sb.String()
}

// findExpectedTokens returns all token classes that are allowed for the
// given state; those whose symbols result in a non-error ACTION entry.
func (lr lrParser) findExpectedTokens(stateName string) []types.TokenClass {
	terms := lr.gram.Terminals()
	sort.Strings(terms)

	classes := make([]types.TokenClass, 0)
	for i := range terms {
		t := lr.gram.Term(terms[i])
		act := lr.table.Action(stateName, t.ID())
		if act.Type != LRError {
			classes = append(classes, t)
		}
	}

	return classes
}
