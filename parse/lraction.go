// Package parse implements the parser-construction half of the moray
// toolkit: LL(1) predictive parsing and the bottom-up LR family — SLR(1),
// canonical LR(1), and LALR(1) — as table builders over the grammar and
// automaton packages, plus the drivers that run the tables against a token
// stream.
package parse

import (
	"fmt"

	"github.com/dekarrin/moray/grammar"
)

// LRActionType is the variant tag of an LRAction.
type LRActionType int

const (
	LRShift LRActionType = iota
	LRReduce
	LRAccept
	LRError
)

func (t LRActionType) String() string {
	switch t {
	case LRShift:
		return "SHIFT"
	case LRReduce:
		return "REDUCE"
	case LRAccept:
		return "ACCEPT"
	case LRError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LRAction is an entry of the ACTION table of an LR parser: shift to a
// state, reduce by a production, accept, or (absent entry) error.
type LRAction struct {
	Type LRActionType

	// Production is used when Type is LRReduce. It is the production which
	// should be reduced; the β of A -> β.
	Production grammar.Production

	// Symbol is used when Type is LRReduce. It is the symbol to reduce the
	// production to; the A of A -> β.
	Symbol string

	// State is the state to shift to. It is used only when Type is LRShift.
	State string
}

func (act LRAction) String() string {
	switch act.Type {
	case LRAccept:
		return "ACTION<accept>"
	case LRError:
		return "ACTION<error>"
	case LRReduce:
		return fmt.Sprintf("ACTION<reduce %s -> %s>", act.Symbol, act.Production.String())
	case LRShift:
		return fmt.Sprintf("ACTION<shift %s>", act.State)
	default:
		return "ACTION<unknown>"
	}
}

func (act LRAction) Equal(o any) bool {
	other, ok := o.(LRAction)
	if !ok {
		otherPtr, ok := o.(*LRAction)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if act.Type != other.Type {
		return false
	} else if !act.Production.Equal(other.Production) {
		return false
	} else if act.State != other.State {
		return false
	} else if act.Symbol != other.Symbol {
		return false
	}

	return true
}

// LRConflictType classifies an LR table conflict.
type LRConflictType int

const (
	// ConflictShiftReduce is a cell that would hold both a SHIFT and a
	// REDUCE.
	ConflictShiftReduce LRConflictType = iota

	// ConflictReduceReduce is a cell that would hold two REDUCEs with
	// different productions.
	ConflictReduceReduce
)

func (t LRConflictType) String() string {
	switch t {
	case ConflictShiftReduce:
		return "shift/reduce"
	case ConflictReduceReduce:
		return "reduce/reduce"
	default:
		return "unknown"
	}
}

// LRConflict is a diagnostic recorded when ACTION table construction tries
// to put a second, different entry into a cell. The first entry written
// stays in the table; the caller decides whether non-empty conflicts are
// fatal.
type LRConflict struct {
	Type LRConflictType

	// State is the name of the conflicted state. StateIndex is its display
	// index in the table's ordering.
	State      string
	StateIndex int

	// Symbol is the terminal of the conflicted ACTION cell.
	Symbol string

	// Existing is the entry already in the cell; Proposed the one that was
	// not written.
	Existing LRAction
	Proposed LRAction
}

func (c LRConflict) String() string {
	describe := func(act LRAction) string {
		switch act.Type {
		case LRShift:
			return "shift"
		case LRReduce:
			return fmt.Sprintf("reduce %s -> %s", act.Symbol, act.Production.String())
		case LRAccept:
			return "accept"
		}
		return act.String()
	}

	return fmt.Sprintf("%s conflict in state %d on terminal %q (%s or %s)",
		c.Type.String(), c.StateIndex, c.Symbol, describe(c.Existing), describe(c.Proposed))
}

// classifyConflict determines the conflict type of two clashing actions.
// ACCEPT must never clash with anything; that is a broken invariant of the
// construction, not a property of the grammar, so it panics.
func classifyConflict(existing, proposed LRAction) LRConflictType {
	if existing.Type == LRAccept || proposed.Type == LRAccept {
		panic(fmt.Sprintf("ACCEPT conflicts with %s; construction invariant broken", proposed.String()))
	}

	if existing.Type == LRReduce && proposed.Type == LRReduce {
		return ConflictReduceReduce
	}

	if (existing.Type == LRShift && proposed.Type == LRReduce) ||
		(existing.Type == LRReduce && proposed.Type == LRShift) {
		return ConflictShiftReduce
	}

	// two different SHIFTs would mean the viable-prefix DFA is
	// non-deterministic; also a broken invariant
	panic(fmt.Sprintf("%s conflicts with %s; construction invariant broken", existing.String(), proposed.String()))
}
