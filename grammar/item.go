package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/moray/internal/util"
)

// LR0Item is a production with a dot position: the NonTerminal produces the
// symbols of Left, then the dot, then the symbols of Right.
type LR0Item struct {
	NonTerminal string
	Left        []string
	Right       []string
}

func (lr0 LR0Item) Equal(o any) bool {
	other, ok := o.(LR0Item)
	if !ok {
		otherPtr, ok := o.(*LR0Item)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if lr0.NonTerminal != other.NonTerminal {
		return false
	} else if len(lr0.Left) != len(other.Left) {
		return false
	} else if len(lr0.Right) != len(other.Right) {
		return false
	}

	for i := range lr0.Left {
		if lr0.Left[i] != other.Left[i] {
			return false
		}
	}
	for i := range lr0.Right {
		if lr0.Right[i] != other.Right[i] {
			return false
		}
	}

	return true
}

func (item LR0Item) String() string {
	nonTermPhrase := ""
	if item.NonTerminal != "" {
		nonTermPhrase = fmt.Sprintf("%s -> ", item.NonTerminal)
	}

	left := strings.Join(item.Left, " ")
	right := strings.Join(item.Right, " ")

	if len(left) > 0 {
		left = left + " "
	}
	if len(right) > 0 {
		right = " " + right
	}

	return fmt.Sprintf("%s%s.%s", nonTermPhrase, left, right)
}

// Copy returns a deep-copied duplicate of this item.
func (item LR0Item) Copy() LR0Item {
	itemCopy := LR0Item{NonTerminal: item.NonTerminal}
	itemCopy.Left = make([]string, len(item.Left))
	copy(itemCopy.Left, item.Left)
	itemCopy.Right = make([]string, len(item.Right))
	copy(itemCopy.Right, item.Right)
	return itemCopy
}

// Advanced returns the item with the dot moved one symbol to the right.
// Panics if the dot is already at the end.
func (item LR0Item) Advanced() LR0Item {
	if len(item.Right) == 0 {
		panic("can't advance dot past end of production")
	}

	adv := LR0Item{NonTerminal: item.NonTerminal}
	adv.Left = make([]string, len(item.Left), len(item.Left)+1)
	copy(adv.Left, item.Left)
	adv.Left = append(adv.Left, item.Right[0])
	adv.Right = make([]string, len(item.Right)-1)
	copy(adv.Right, item.Right[1:])

	return adv
}

// LR1Item is an LR0Item with a single lookahead terminal.
type LR1Item struct {
	LR0Item
	Lookahead string
}

func (lr1 LR1Item) Equal(o any) bool {
	other, ok := o.(LR1Item)
	if !ok {
		otherPtr, ok := o.(*LR1Item)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if !lr1.LR0Item.Equal(other.LR0Item) {
		return false
	} else if lr1.Lookahead != other.Lookahead {
		return false
	}

	return true
}

// Copy returns a deep-copied duplicate of this item.
func (lr1 LR1Item) Copy() LR1Item {
	lrCopy := LR1Item{Lookahead: lr1.Lookahead}
	lrCopy.LR0Item = lr1.LR0Item.Copy()
	return lrCopy
}

func (item LR1Item) String() string {
	return fmt.Sprintf("%s, %s", item.LR0Item.String(), item.Lookahead)
}

// CoreSet returns the kernel cores of a set of LR1 items: the LR0 items
// obtained by dropping every lookahead. Two LR(1) states merge in LALR(1)
// construction exactly when their CoreSets are equal.
func CoreSet(s util.VSet[string, LR1Item]) util.SVSet[LR0Item] {
	cores := util.NewSVSet[LR0Item]()
	for _, elem := range s.Elements() {
		lr1 := s.Get(elem)
		cores.Set(lr1.LR0Item.String(), lr1.LR0Item)
	}

	return cores
}

// EqualCoreSets returns whether two sets of LR1 items share the same kernel
// cores.
func EqualCoreSets(s1, s2 util.VSet[string, LR1Item]) bool {
	return CoreSet(s1).Equal(CoreSet(s2))
}

// MustParseLR0Item is like ParseLR0Item but panics on failure.
func MustParseLR0Item(s string) LR0Item {
	i, err := ParseLR0Item(s)
	if err != nil {
		panic(err.Error())
	}
	return i
}

// MustParseLR1Item is like ParseLR1Item but panics on failure.
func MustParseLR1Item(s string) LR1Item {
	i, err := ParseLR1Item(s)
	if err != nil {
		panic(err.Error())
	}
	return i
}

// ParseLR0Item parses an item from a string of the form
// "NONTERM -> ALPHA . BETA".
func ParseLR0Item(s string) (LR0Item, error) {
	sides := strings.Split(s, "->")
	if len(sides) != 2 {
		return LR0Item{}, fmt.Errorf("not an item of form 'NONTERM -> ALPHA . BETA': %q", s)
	}
	nonTerminal := strings.TrimSpace(sides[0])

	if nonTerminal == "" {
		return LR0Item{}, fmt.Errorf("empty nonterminal name not allowed for item")
	}

	parsedItem := LR0Item{
		NonTerminal: nonTerminal,
	}

	productionsString := strings.TrimSpace(sides[1])
	prodStrings := strings.Split(productionsString, ".")
	if len(prodStrings) != 2 {
		return LR0Item{}, fmt.Errorf("item must have exactly one dot")
	}

	for _, aSym := range strings.Fields(prodStrings[0]) {
		parsedItem.Left = append(parsedItem.Left, aSym)
	}
	for _, bSym := range strings.Fields(prodStrings[1]) {
		parsedItem.Right = append(parsedItem.Right, bSym)
	}

	return parsedItem, nil
}

// ParseLR1Item parses an item from a string of the form
// "NONTERM -> ALPHA . BETA, a".
func ParseLR1Item(s string) (LR1Item, error) {
	sides := strings.Split(s, ",")
	if len(sides) != 2 {
		return LR1Item{}, fmt.Errorf("not an item of form 'NONTERM -> ALPHA . BETA, a': %q", s)
	}

	item := LR1Item{}
	var err error
	item.LR0Item, err = ParseLR0Item(sides[0])
	if err != nil {
		return item, err
	}

	item.Lookahead = strings.TrimSpace(sides[1])

	return item, nil
}
