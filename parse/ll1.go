package parse

import (
	"fmt"

	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/internal/util"
	"github.com/dekarrin/moray/morayerr"
	"github.com/dekarrin/moray/types"
)

type ll1Parser struct {
	table grammar.LL1Table
	g     grammar.Grammar
}

// GenerateLL1Parser generates a predictive parser for LL(1) grammar g. The
// grammar must already be LL(1); if its parse table has a conflict the
// returned error is the *grammar.LL1ConflictError identifying it.
func GenerateLL1Parser(g grammar.Grammar) (ll1Parser, error) {
	M, err := g.LLParseTable()
	if err != nil {
		return ll1Parser{}, err
	}
	return ll1Parser{table: M, g: g.Copy()}, nil
}

// Type returns the algorithm family of the parser.
func (ll1 ll1Parser) Type() types.ParserType {
	return types.ParserLL1
}

// TableString returns the rendition of the parser's prediction table.
func (ll1 ll1Parser) TableString() string {
	return ll1.table.String()
}

// Parse runs the table-driven predictive driver over the token stream.
//
// The symbol stack starts as $ then the start symbol; at each step the top
// is either a terminal to match against the next token, or a non-terminal to
// replace via the prediction table, pushing the predicted production in
// reverse (ε symbols are never pushed). Input is accepted when the stack
// runs down to $ with the stream exhausted.
func (ll1 ll1Parser) Parse(stream types.TokenStream) (types.ParseTree, error) {
	stack := util.Stack[string]{Of: []string{"$", ll1.g.StartSymbol()}}
	next := stream.Peek()
	X := stack.Peek()

	pt := types.ParseTree{Value: ll1.g.StartSymbol()}
	ptStack := util.Stack[*types.ParseTree]{Of: []*types.ParseTree{&pt}}

	node := ptStack.Peek()
	for X != "$" { /* stack is not empty */
		if X == "" {
			// ε should never land on the stack, but pop-only is the safe
			// response if it does
			stack.Pop()
			X = stack.Peek()
			continue
		}

		if grammar.IsTerminal(X) {
			stream.Next()

			t := ll1.g.Term(X)
			if next.Class().ID() == t.ID() {
				node.Terminal = true
				node.Source = next
				stack.Pop()
				X = stack.Peek()
				ptStack.Pop()
				if X != "$" {
					node = ptStack.Peek()
				}
			} else {
				return pt, morayerr.NewSyntaxErrorFromToken(fmt.Sprintf("expected %s here, but found %q", t.Human(), next.Lexeme()), next)
			}

			next = stream.Peek()
		} else {
			nextProd := ll1.table.Get(X, ll1.g.TermFor(next.Class()))
			if nextProd.Equal(grammar.Error) {
				return pt, morayerr.NewSyntaxErrorFromToken(fmt.Sprintf("unexpected %s here", next.Class().Human()), next)
			}

			stack.Pop()
			ptStack.Pop()
			for i := len(nextProd) - 1; i >= 0; i-- {
				if nextProd[i] != "" {
					stack.Push(nextProd[i])
				}

				child := &types.ParseTree{Value: nextProd[i]}
				if nextProd[i] == "" {
					child.Terminal = true
				}
				node.Children = append([]*types.ParseTree{child}, node.Children...)

				if nextProd[i] != "" {
					ptStack.Push(child)
				}
			}

			X = stack.Peek()

			if X != "$" {
				node = ptStack.Peek()
			}
		}
	}

	// the stack is spent; the input must be too
	if !next.Class().Equal(types.TokenEndOfText) {
		return pt, morayerr.NewSyntaxErrorFromToken(fmt.Sprintf("unexpected %s after a complete %s", next.Class().Human(), ll1.g.StartSymbol()), next)
	}

	return pt, nil
}
