package lex

import (
	"sort"
	"strconv"
	"strings"
)

// dfaState is a state of a lexer DFA. Unlike NFA states, DFA states have
// value identity: a state IS the set of NFA states it represents, which is
// what lets subset construction dedup them with a map lookup.
type dfaState struct {
	id int

	// nfaStates is the ε-closed, sorted set of source NFA state ids this
	// state represents.
	nfaStates []int

	final     bool
	tokenName string
	priority  int

	transitions map[rune]int
}

// DFA is a deterministic finite automaton over characters produced by subset
// construction (and reproduced by minimization). State ids are dense and
// assigned in discovery order.
type DFA struct {
	states []dfaState

	Start int
}

// NumStates returns how many states the DFA holds.
func (d *DFA) NumStates() int {
	return len(d.states)
}

// Next returns the state reached from the given state on the given input, or
// -1 if there is no transition.
func (d *DFA) Next(state int, input rune) int {
	if state < 0 || state >= len(d.states) {
		return -1
	}
	next, ok := d.states[state].transitions[input]
	if !ok {
		return -1
	}
	return next
}

// IsFinal returns whether the given state is accepting.
func (d *DFA) IsFinal(state int) bool {
	return state >= 0 && state < len(d.states) && d.states[state].final
}

// TokenName returns the token tag of the given accepting state, or "" if the
// state is not accepting.
func (d *DFA) TokenName(state int) string {
	if !d.IsFinal(state) {
		return ""
	}
	return d.states[state].tokenName
}

// stateSetKey gives the canonical key of a sorted set of NFA state ids.
func stateSetKey(set []int) string {
	var sb strings.Builder
	for i, id := range set {
		if i > 0 {
			sb.WriteRune(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}

// epsilonClosure returns the given set of NFA states plus every state
// reachable from it by any number of ε-edges, sorted by id.
func (n *NFA) epsilonClosure(set []int) []int {
	inClosure := map[int]bool{}
	stack := make([]int, 0, len(set))

	for _, id := range set {
		stack = append(stack, id)
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if inClosure[id] {
			continue
		}
		inClosure[id] = true

		for _, t := range n.states[id].transitions {
			if t.epsilon && !inClosure[t.next] {
				stack = append(stack, t.next)
			}
		}
	}

	closure := make([]int, 0, len(inClosure))
	for id := range inClosure {
		closure = append(closure, id)
	}
	sortInts(closure)
	return closure
}

// move returns the set of states directly reachable from some state of the
// set on the given input, sorted.
func (n *NFA) move(set []int, input rune) []int {
	seen := map[int]bool{}

	for _, id := range set {
		for _, t := range n.states[id].transitions {
			if !t.epsilon && t.input == input {
				seen[t.next] = true
			}
		}
	}

	moved := make([]int, 0, len(seen))
	for id := range seen {
		moved = append(moved, id)
	}
	sortInts(moved)
	return moved
}

// ToDFA converts the NFA to a DFA over the given alphabet by subset
// construction. The alphabet is the caller's; characters it holds that no
// regex uses just become dead columns, and literals it omits produce missing
// transitions (see Lexer strict mode for promoting that to an error).
//
// This is an implementation of algorithm 3.20 from the purple dragon book.
// DFA state 0 is the ε-closure of the NFA start; discovery is FIFO and the
// alphabet is enumerated in the order given, so the result is deterministic.
func (n *NFA) ToDFA(alphabet []rune) *DFA {
	dfa := &DFA{}

	startSet := n.epsilonClosure([]int{n.Start})

	stateByKey := map[string]int{}

	addState := func(set []int) int {
		id := len(dfa.states)
		dfa.states = append(dfa.states, dfaState{
			id:          id,
			nfaStates:   set,
			priority:    NotAccepting,
			transitions: map[rune]int{},
		})
		stateByKey[stateSetKey(set)] = id
		return id
	}

	addState(startSet)
	dfa.Start = 0

	// FIFO worklist of unmarked states
	for mark := 0; mark < len(dfa.states); mark++ {
		S := dfa.states[mark].nfaStates

		for _, c := range alphabet {
			T := n.epsilonClosure(n.move(S, c))
			if len(T) == 0 {
				continue
			}

			key := stateSetKey(T)
			tid, ok := stateByKey[key]
			if !ok {
				tid = addState(T)
			}

			dfa.states[mark].transitions[c] = tid
		}
	}

	// resolve accepting states: a DFA state accepts if any NFA state it
	// represents accepts; the minimum priority wins, ties broken stably by
	// lowest state id
	for i := range dfa.states {
		st := &dfa.states[i]
		for _, nfaID := range st.nfaStates {
			nst := n.states[nfaID]
			if nst.accepting() && nst.priority < st.priority {
				st.final = true
				st.tokenName = nst.tokenName
				st.priority = nst.priority
			}
		}
	}

	return dfa
}

// AsNFA reinterprets the DFA as an NFA; every transition becomes a
// single-target edge and each accepting state keeps its token tag. Feeding
// the result back through ToDFA must yield an isomorphic automaton.
func (d *DFA) AsNFA() *NFA {
	n := &NFA{Start: d.Start, End: -1}

	for range d.states {
		n.newState()
	}

	for i, st := range d.states {
		inputs := make([]rune, 0, len(st.transitions))
		for c := range st.transitions {
			inputs = append(inputs, c)
		}
		sortRunes(inputs)
		for _, c := range inputs {
			n.addTransition(i, c, st.transitions[c])
		}

		if st.final {
			n.markAccepting(i, st.tokenName, st.priority)
		}
	}

	return n
}

func sortInts(xs []int) {
	sort.Ints(xs)
}
