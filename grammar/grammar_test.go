package grammar

import (
	"testing"

	"github.com/dekarrin/moray/internal/util"
	"github.com/dekarrin/moray/types"
	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		rules     []string
		terminals []string
		expectErr bool
	}{
		{
			name:      "empty grammar",
			expectErr: true,
		},
		{
			name:      "no rules in grammar",
			terminals: []string{"int"},
			expectErr: true,
		},
		{
			name:      "no terminals in grammar",
			rules:     []string{"S -> S"},
			expectErr: true,
		},
		{
			name:      "single rule grammar",
			rules:     []string{"S -> int"},
			terminals: []string{"int"},
		},
		{
			name:      "undefined terminal",
			rules:     []string{"S -> int plus"},
			terminals: []string{"int"},
			expectErr: true,
		},
		{
			name:      "unused terminal",
			rules:     []string{"S -> int"},
			terminals: []string{"int", "plus"},
			expectErr: true,
		},
		{
			name:      "non-terminal produced by nothing",
			rules:     []string{"S -> int", "B -> int"},
			terminals: []string{"int"},
			expectErr: true,
		},
		{
			name:      "multi rule grammar",
			rules:     []string{"S -> B", "B -> int | ε"},
			terminals: []string{"int"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := Grammar{}
			for _, term := range tc.terminals {
				g.AddTerm(term, types.MakeDefaultClass(term))
			}
			for _, r := range tc.rules {
				rule := MustParseRule(r)
				for _, alts := range rule.Productions {
					g.AddRule(rule.NonTerminal, alts)
				}
			}

			actual := g.Validate()

			if tc.expectErr {
				assert.Error(actual)
			} else {
				assert.NoError(actual)
			}
		})
	}
}

func Test_Parse(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`
		S -> a S | b ;
	`)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("S", g.StartSymbol())
	assert.Equal([]string{"a", "b"}, g.Terminals())
	assert.Equal([]string{"S"}, g.NonTerminals())

	r := g.Rule("S")
	assert.Equal("S", r.NonTerminal)
	assert.Len(r.Productions, 2)
	assert.True(r.Productions[0].Equal(Production{"a", "S"}))
	assert.True(r.Productions[1].Equal(Production{"b"}))

	assert.NoError(g.Validate())
}

func Test_Parse_epsilonProduction(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`
		S -> A b ;
		A -> a | ε ;
	`)
	if !assert.NoError(err) {
		return
	}

	r := g.Rule("A")
	assert.Len(r.Productions, 2)
	assert.True(r.Productions[1].Equal(Epsilon))
	assert.Equal("ε", r.Productions[1].String())
}

func Test_Parse_rejectsMixedCaseSymbol(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("S -> aB ;")
	assert.Error(err)
}

func Test_Grammar_Augmented(t *testing.T) {
	assert := assert.New(t)

	g := MustParse("S -> a S | b ;")
	gPrime := g.Augmented()

	assert.Equal("S-P", gPrime.StartSymbol())
	r := gPrime.Rule("S-P")
	assert.Len(r.Productions, 1)
	assert.True(r.Productions[0].Equal(Production{"S"}))

	// augmentation does not disturb the original
	assert.Equal("S", g.StartSymbol())
	assert.Equal(Rule{}, g.Rule("S-P"))
}

func Test_Grammar_UnresolvedSymbols(t *testing.T) {
	assert := assert.New(t)

	g := MustParse("S -> a X | b ;")

	assert.Equal([]string{"X"}, g.UnresolvedSymbols())

	// unresolved symbols do not fail validation; they get treated as
	// terminals by the analyses
	assert.NoError(g.Validate())
}

func Test_Production_AllItems(t *testing.T) {
	assert := assert.New(t)

	p := Production{"a", "B"}
	items := p.AllItems()

	assert.Len(items, 3)
	assert.Equal(". a B", items[0].String())
	assert.Equal("a . B", items[1].String())
	assert.Equal("a B .", items[2].String())
}

func Test_Grammar_LR0Items(t *testing.T) {
	assert := assert.New(t)

	g := MustParse("S -> a S | b ;")

	items := g.LR0Items()

	// a S gives three items, b gives two
	assert.Len(items, 5)
	assert.Equal("S -> . a S", items[0].String())
	assert.Equal("S -> a . S", items[1].String())
	assert.Equal("S -> a S .", items[2].String())
	assert.Equal("S -> . b", items[3].String())
	assert.Equal("S -> b .", items[4].String())
}

func Test_LR0Item_Advanced(t *testing.T) {
	assert := assert.New(t)

	item := MustParseLR0Item("S -> a . S b")
	adv := item.Advanced()

	assert.Equal("S -> a S . b", adv.String())

	done := adv.Advanced()
	assert.Equal("S -> a S b .", done.String())

	assert.Panics(func() { done.Advanced() })
}

func Test_CoreSet(t *testing.T) {
	assert := assert.New(t)

	i1 := MustParseLR1Item("S -> a . S, $")
	i2 := MustParseLR1Item("S -> a . S, b")
	i3 := MustParseLR1Item("S -> . b, $")

	s := util.NewSVSet[LR1Item]()
	s.Set(i1.String(), i1)
	s.Set(i2.String(), i2)
	s.Set(i3.String(), i3)

	cores := CoreSet(s)

	// the two lookahead-variants of the same core collapse
	assert.Equal(2, cores.Len())
	assert.True(cores.Has(i1.LR0Item.String()))
	assert.True(cores.Has(i3.LR0Item.String()))
}
