package types

// ParserType identifies one of the parsing algorithms the toolkit can
// construct tables for.
type ParserType string

const (
	ParserLL1   ParserType = "LL(1)"
	ParserSLR1  ParserType = "SLR(1)"
	ParserCLR1  ParserType = "CLR(1)"
	ParserLALR1 ParserType = "LALR(1)"
)

func (pt ParserType) String() string {
	return string(pt)
}

// ParseParserType parses a string into a ParserType.
func ParseParserType(s string) (ParserType, bool) {
	switch s {
	case ParserLL1.String(), "ll1", "ll":
		return ParserLL1, true
	case ParserSLR1.String(), "slr1", "slr":
		return ParserSLR1, true
	case ParserCLR1.String(), "clr1", "clr", "lr1":
		return ParserCLR1, true
	case ParserLALR1.String(), "lalr1", "lalr":
		return ParserLALR1, true
	}
	return ParserType(""), false
}
