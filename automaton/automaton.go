// Package automaton provides the finite-automaton machinery used by the
// parser generators: a generic DFA whose states are named by strings and
// carry a value, and the constructions that produce the LR(0), LR(1), and
// LALR(1) viable-prefix DFAs of a grammar.
//
// States here are named, not numbered; the item-set constructions use the
// ordered string form of the item set as the state name, which makes state
// dedup a map lookup. Table builders assign display indices on top of this.
// The lexer pipeline does not use this package; its automata are index-based
// and live in the lex package.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/moray/internal/util"
)

// FATransition is a transition of a finite automaton: an input symbol and the
// name of the state it moves to.
type FATransition struct {
	input string
	next  string
}

func (t FATransition) String() string {
	inp := t.input
	if inp == "" {
		inp = "ε"
	}
	return fmt.Sprintf("=(%s)=> %s", inp, t.next)
}

// DFAState is a state of a DFA, identified by name and carrying a value of
// type E.
type DFAState[E any] struct {
	name        string
	value       E
	transitions map[string]FATransition
	accepting   bool
}

func (ds DFAState[E]) String() string {
	var moves strings.Builder

	inputs := util.OrderedKeys(ds.transitions)

	for i, input := range inputs {
		moves.WriteString(ds.transitions[input].String())
		if i+1 < len(inputs) {
			moves.WriteRune(',')
			moves.WriteRune(' ')
		}
	}

	str := fmt.Sprintf("(%s [%s])", ds.name, moves.String())

	if ds.accepting {
		str = "(" + str + ")"
	}

	return str
}

// DFA is a deterministic finite automaton with named states that each carry a
// value of type E.
type DFA[E any] struct {
	states map[string]DFAState[E]
	Start  string
}

// AddState adds a new state to the DFA. It has no effect if the state already
// exists.
func (dfa *DFA[E]) AddState(state string, accepting bool) {
	if _, ok := dfa.states[state]; ok {
		return
	}

	newState := DFAState[E]{
		name:        state,
		transitions: make(map[string]FATransition),
		accepting:   accepting,
	}

	if dfa.states == nil {
		dfa.states = map[string]DFAState[E]{}
	}

	dfa.states[state] = newState
}

// SetValue sets the value carried by the given state. Panics if the state
// does not exist.
func (dfa *DFA[E]) SetValue(state string, v E) {
	s, ok := dfa.states[state]
	if !ok {
		panic(fmt.Sprintf("setting value on non-existing state: %q", state))
	}
	s.value = v
	dfa.states[state] = s
}

// GetValue gets the value carried by the given state. Panics if the state
// does not exist.
func (dfa *DFA[E]) GetValue(state string) E {
	s, ok := dfa.states[state]
	if !ok {
		panic(fmt.Sprintf("getting value on non-existing state: %q", state))
	}
	return s.value
}

// AddTransition adds a transition from one existing state to another on the
// given input. Panics if either state does not exist.
func (dfa *DFA[E]) AddTransition(fromState string, input string, toState string) {
	curFromState, ok := dfa.states[fromState]

	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}
	if _, ok := dfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", toState))
	}

	curFromState.transitions[input] = FATransition{
		input: input,
		next:  toState,
	}
	dfa.states[fromState] = curFromState
}

// IsAccepting returns whether the given state is an accepting (terminating)
// state. Returns false if the state does not exist.
func (dfa DFA[E]) IsAccepting(state string) bool {
	s, ok := dfa.states[state]
	if !ok {
		return false
	}

	return s.accepting
}

// States returns the set of names of all states in the DFA.
func (dfa DFA[E]) States() util.StringSet {
	states := util.NewStringSet()

	for k := range dfa.states {
		states.Add(k)
	}

	return states
}

// Next returns the next state of the DFA, given a current state and an input.
// Will return "" if state is not an existing state or if there is no
// transition from the given state on the given input.
func (dfa DFA[E]) Next(fromState string, input string) string {
	state, ok := dfa.states[fromState]
	if !ok {
		return ""
	}

	transition, ok := state.transitions[input]
	if !ok {
		return ""
	}

	return transition.next
}

// InputsFrom returns the inputs the given state has transitions on, sorted.
func (dfa DFA[E]) InputsFrom(state string) []string {
	s, ok := dfa.states[state]
	if !ok {
		return nil
	}

	return util.OrderedKeys(s.transitions)
}

// StatesInDiscoveryOrder returns the state names in breadth-first order from
// the start state, following transitions in sorted input order. The result
// is a deterministic total order with the start state first; table builders
// use it to assign display indices.
func (dfa DFA[E]) StatesInDiscoveryOrder() []string {
	if dfa.Start == "" {
		return nil
	}

	seen := util.NewStringSet()
	order := []string{dfa.Start}
	seen.Add(dfa.Start)

	for i := 0; i < len(order); i++ {
		cur := order[i]
		for _, input := range dfa.InputsFrom(cur) {
			next := dfa.Next(cur, input)
			if !seen.Has(next) {
				seen.Add(next)
				order = append(order, next)
			}
		}
	}

	// unreachable states (there should be none) go at the end, sorted, so
	// the result is still total
	if seen.Len() < len(dfa.states) {
		var rest []string
		for name := range dfa.states {
			if !seen.Has(name) {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		order = append(order, rest...)
	}

	return order
}

// Validate returns an error listing every problem it finds of the following
// kinds: a non-start state that no other state has a transition to, a
// transition leading to a state that doesn't exist, or a start that isn't a
// state that exists.
func (dfa DFA[E]) Validate() error {
	errs := ""

	for sName := range dfa.states {
		if sName == dfa.Start {
			continue
		}

		atLeastOneTransitionTo := false
		for otherName := range dfa.states {
			if otherName == sName {
				continue
			}

			st := dfa.states[otherName]

			for i := range st.transitions {
				if st.transitions[i].next == sName {
					atLeastOneTransitionTo = true
					break
				}
			}

			if atLeastOneTransitionTo {
				break
			}
		}
		if !atLeastOneTransitionTo {
			errs += fmt.Sprintf("\nno transitions to non-start state %q", sName)
		}
	}

	for sName := range dfa.states {
		st := dfa.states[sName]

		for symbol := range st.transitions {
			nextState := st.transitions[symbol].next

			if _, ok := dfa.states[nextState]; !ok {
				errs += fmt.Sprintf("\nstate %q transitions to non-existing state: %q", sName, st.transitions[symbol])
			}
		}
	}

	if _, ok := dfa.states[dfa.Start]; !ok {
		errs += fmt.Sprintf("\nstart state does not exist: %q", dfa.Start)
	}

	if len(errs) > 0 {
		errs = errs[1:]
		return fmt.Errorf("%s", errs)
	}

	return nil
}

func (dfa DFA[E]) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", dfa.Start))

	orderedStates := util.OrderedKeys(dfa.states)

	for i := range orderedStates {
		sb.WriteString("\n\t")
		sb.WriteString(dfa.states[orderedStates[i]].String())

		if i+1 < len(dfa.states) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}

	sb.WriteRune('>')

	return sb.String()
}
