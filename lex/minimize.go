package lex

// Minimization of lexer DFAs by table filling: mark every pair of states
// that some input sequence can tell apart, then collapse the unmarked pairs
// into equivalence classes with a union-find.
//
// One wrinkle relative to the plain textbook algorithm: two accepting states
// with DIFFERENT token tags are always distinguishable, even though both
// "accept". Merging them would conflate token classes and misreport the
// token of every lexeme landing in the merged state.

// pairTable tracks distinguishability marks on unordered state pairs,
// canonicalized as (lo, hi) with lo < hi.
type pairTable [][]bool

func newPairTable(n int) pairTable {
	t := make(pairTable, n)
	for i := range t {
		t[i] = make([]bool, n)
	}
	return t
}

func (t pairTable) mark(p, q int) {
	if p > q {
		p, q = q, p
	}
	t[p][q] = true
}

func (t pairTable) marked(p, q int) bool {
	if p > q {
		p, q = q, p
	}
	return t[p][q]
}

// unionFind is a plain disjoint-set structure with path compression. No
// union-by-rank; the sets here are small.
type unionFind []int

func newUnionFind(n int) unionFind {
	uf := make(unionFind, n)
	for i := range uf {
		uf[i] = i
	}
	return uf
}

func (uf unionFind) find(x int) int {
	for uf[x] != x {
		uf[x] = uf[uf[x]]
		x = uf[x]
	}
	return x
}

func (uf unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf[ra] = rb
	}
}

// Minimize produces a new DFA equivalent to d with the minimal number of
// states, using table filling over the given alphabet.
//
// The initial marking distinguishes accepting from non-accepting states, and
// also accepting states whose token tags differ. Iterative marking then
// propagates: a pair (p, q) is marked when some symbol leads exactly one of
// them nowhere, or leads them to an already-marked pair. Unmarked pairs are
// unioned into classes and one state is built per class.
//
// d is not modified. The new DFA's state ids are assigned by each class's
// smallest member id, which keeps the result deterministic.
func Minimize(d *DFA, alphabet []rune) *DFA {
	n := d.NumStates()

	marks := newPairTable(n)

	// initial marking
	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			pFinal, qFinal := d.states[p].final, d.states[q].final

			if pFinal != qFinal {
				marks.mark(p, q)
			} else if pFinal && d.states[p].tokenName != d.states[q].tokenName {
				// both accept but for different tokens; never mergeable
				marks.mark(p, q)
			}
		}
	}

	// iterative marking to a fixed point
	updated := true
	for updated {
		updated = false

		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if marks.marked(p, q) {
					continue
				}

				for _, c := range alphabet {
					pNext := d.Next(p, c)
					qNext := d.Next(q, c)

					if pNext < 0 && qNext < 0 {
						continue
					}
					if pNext < 0 || qNext < 0 {
						marks.mark(p, q)
						updated = true
						break
					}
					if pNext != qNext && marks.marked(pNext, qNext) {
						marks.mark(p, q)
						updated = true
						break
					}
				}
			}
		}
	}

	// partition: union every unmarked pair
	uf := newUnionFind(n)
	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			if !marks.marked(p, q) {
				uf.union(p, q)
			}
		}
	}

	// one new state per class, numbered by smallest member
	classOf := make([]int, n)
	newID := map[int]int{}
	var classMembers [][]int

	for i := 0; i < n; i++ {
		root := uf.find(i)
		id, ok := newID[root]
		if !ok {
			id = len(classMembers)
			newID[root] = id
			classMembers = append(classMembers, nil)
		}
		classOf[i] = id
		classMembers[id] = append(classMembers[id], i)
	}

	minimized := &DFA{Start: classOf[d.Start]}

	for id, members := range classMembers {
		newState := dfaState{
			id:          id,
			priority:    NotAccepting,
			transitions: map[rune]int{},
		}

		// the class's NFA-set is the union of its members'
		nfaSet := map[int]bool{}
		for _, m := range members {
			for _, nid := range d.states[m].nfaStates {
				nfaSet[nid] = true
			}

			// a class accepts if any member does; the token tag is the
			// highest-priority (lowest number) one among accepting members.
			// all accepting members share a tag thanks to the initial
			// marking, but the priority still needs the min.
			if d.states[m].final && d.states[m].priority < newState.priority {
				newState.final = true
				newState.tokenName = d.states[m].tokenName
				newState.priority = d.states[m].priority
			}
		}
		for nid := range nfaSet {
			newState.nfaStates = append(newState.nfaStates, nid)
		}
		sortInts(newState.nfaStates)

		// transitions come from any representative; all members are
		// transition-equivalent by construction, so the first works
		rep := members[0]
		for _, c := range alphabet {
			if next := d.Next(rep, c); next >= 0 {
				newState.transitions[c] = classOf[next]
			}
		}

		minimized.states = append(minimized.states, newState)
	}

	return minimized
}
