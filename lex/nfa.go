package lex

import (
	"math"
	"sort"
)

// NotAccepting is the priority value carried by states that are not
// accepting. Real priorities are small non-negative ints where LOWER numbers
// win, so anything accepting always beats this.
const NotAccepting = math.MaxInt32

// nfaTransition is one outgoing edge of an NFA state. An epsilon edge
// consumes no input.
type nfaTransition struct {
	epsilon bool
	input   rune
	next    int
}

// nfaState is a state in an NFA arena. States have identity: two states with
// structurally equal fields are still distinct states.
type nfaState struct {
	id          int
	transitions []nfaTransition

	// tokenName and priority are only meaningful on accepting states;
	// priority is NotAccepting otherwise.
	tokenName string
	priority  int
}

func (s nfaState) accepting() bool {
	return s.priority != NotAccepting
}

// NFA is a non-deterministic finite automaton over characters. States are
// held in an arena slice and referred to by index, which keeps the cyclic
// structures produced by '*' and '+' trivially representable.
//
// A freshly built single-regex NFA has exactly one accepting state, End.
// After Union, End is -1 and each combined rule keeps its own accepting
// state with its own token tag.
type NFA struct {
	states []nfaState

	Start int
	End   int
}

// newState adds a fresh non-accepting state to the arena and returns its
// index.
func (n *NFA) newState() int {
	id := len(n.states)
	n.states = append(n.states, nfaState{
		id:       id,
		priority: NotAccepting,
	})
	return id
}

// addTransition adds an edge consuming input from one state to another.
func (n *NFA) addTransition(from int, input rune, to int) {
	n.states[from].transitions = append(n.states[from].transitions, nfaTransition{
		input: input,
		next:  to,
	})
}

// addEpsilon adds an ε-edge from one state to another.
func (n *NFA) addEpsilon(from int, to int) {
	n.states[from].transitions = append(n.states[from].transitions, nfaTransition{
		epsilon: true,
		next:    to,
	})
}

// markAccepting tags the given state as accepting for the named token at the
// given priority.
func (n *NFA) markAccepting(state int, tokenName string, priority int) {
	n.states[state].tokenName = tokenName
	n.states[state].priority = priority
}

// NumStates returns how many states the NFA holds.
func (n *NFA) NumStates() int {
	return len(n.states)
}

// nfaFrag is a partial automaton on the Thompson working stack: the start
// and end indices of a subexpression already built into the arena.
type nfaFrag struct {
	start int
	end   int
}

// RegexToNFA compiles a single regular expression to an NFA whose lone
// accepting state is tagged with the given token name and priority.
//
// This is the McNaughton-Yamada-Thompson construction (algorithm 3.23 in the
// purple dragon book), run over the postfix form of the expression: literals
// push a two-state fragment, operators pop one or two fragments and wire
// them together with ε-edges. Intermediate fragment ends are never marked
// accepting; only the final fragment's end is tagged, once, at the end.
func RegexToNFA(expr string, tokenName string, priority int) (*NFA, error) {
	postfix := toPostfix(insertConcatMarkers(expr))

	if len(postfix) == 0 {
		return nil, regexErr(expr, -1, "empty pattern")
	}

	nfa := &NFA{}
	var stack []nfaFrag

	pop := func() nfaFrag {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f
	}

	for _, tok := range postfix {
		switch {
		case isOperand(tok.ch):
			// literal c: s =c=> f
			s := nfa.newState()
			f := nfa.newState()
			nfa.addTransition(s, tok.ch, f)
			stack = append(stack, nfaFrag{start: s, end: f})

		case tok.ch == concatOp:
			if len(stack) < 2 {
				return nil, regexErr(expr, tok.pos, "operator requires two operands")
			}
			b := pop()
			a := pop()
			nfa.addEpsilon(a.end, b.start)
			stack = append(stack, nfaFrag{start: a.start, end: b.end})

		case tok.ch == '|':
			if len(stack) < 2 {
				return nil, regexErr(expr, tok.pos, "alternation requires two operands")
			}
			b := pop()
			a := pop()
			s := nfa.newState()
			f := nfa.newState()
			nfa.addEpsilon(s, a.start)
			nfa.addEpsilon(s, b.start)
			nfa.addEpsilon(a.end, f)
			nfa.addEpsilon(b.end, f)
			stack = append(stack, nfaFrag{start: s, end: f})

		case tok.ch == '*':
			if len(stack) < 1 {
				return nil, regexErr(expr, tok.pos, "'*' requires an operand")
			}
			a := pop()
			s := nfa.newState()
			f := nfa.newState()
			nfa.addEpsilon(s, a.start)
			nfa.addEpsilon(s, f)
			nfa.addEpsilon(a.end, a.start)
			nfa.addEpsilon(a.end, f)
			stack = append(stack, nfaFrag{start: s, end: f})

		case tok.ch == '+':
			// like '*' but without the skip edge from s to f
			if len(stack) < 1 {
				return nil, regexErr(expr, tok.pos, "'+' requires an operand")
			}
			a := pop()
			s := nfa.newState()
			f := nfa.newState()
			nfa.addEpsilon(s, a.start)
			nfa.addEpsilon(a.end, a.start)
			nfa.addEpsilon(a.end, f)
			stack = append(stack, nfaFrag{start: s, end: f})

		case tok.ch == '?':
			if len(stack) < 1 {
				return nil, regexErr(expr, tok.pos, "'?' requires an operand")
			}
			a := pop()
			s := nfa.newState()
			f := nfa.newState()
			nfa.addEpsilon(s, a.start)
			nfa.addEpsilon(s, f)
			nfa.addEpsilon(a.end, f)
			stack = append(stack, nfaFrag{start: s, end: f})

		default:
			// '(' or ')' that survived to postfix means the parens did not
			// balance
			return nil, regexErr(expr, tok.pos, "unmatched parenthesis")
		}
	}

	if len(stack) != 1 {
		// more than one fragment left over; some operator is missing
		return nil, regexErr(expr, -1, "pattern does not reduce to a single expression")
	}

	frag := stack[0]
	nfa.Start = frag.start
	nfa.End = frag.end
	nfa.markAccepting(frag.end, tokenName, priority)

	return nfa, nil
}

// UnionNFAs combines several per-rule NFAs into one automaton with a fresh
// start state that has an ε-edge to each rule's start. Each rule's accepting
// state keeps its own token tag and priority; the combined NFA has no single
// end state.
func UnionNFAs(nfas []*NFA) *NFA {
	combined := &NFA{End: -1}
	combined.Start = combined.newState()

	for _, n := range nfas {
		offset := len(combined.states)

		for _, st := range n.states {
			copied := nfaState{
				id:        st.id + offset,
				tokenName: st.tokenName,
				priority:  st.priority,
			}
			copied.transitions = make([]nfaTransition, len(st.transitions))
			for i, t := range st.transitions {
				t.next += offset
				copied.transitions[i] = t
			}
			combined.states = append(combined.states, copied)
		}

		combined.addEpsilon(combined.Start, n.Start+offset)
	}

	return combined
}

// Literals returns every distinct literal character used by some transition
// of the NFA, sorted. It is a convenience for callers that want to derive an
// alphabet rather than supply one.
func (n *NFA) Literals() []rune {
	seen := map[rune]bool{}
	for _, st := range n.states {
		for _, t := range st.transitions {
			if !t.epsilon {
				seen[t.input] = true
			}
		}
	}

	lits := make([]rune, 0, len(seen))
	for ch := range seen {
		lits = append(lits, ch)
	}
	sortRunes(lits)
	return lits
}

func sortRunes(rs []rune) {
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
}
