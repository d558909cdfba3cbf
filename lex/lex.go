package lex

import (
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/moray/types"
)

// Lexer assembles lexical rules into a compiled transition table and lexes
// input with it. Patterns are compiled through the full pipeline on Build:
// regex to postfix, Thompson construction, union of all rules, subset
// construction, and minimization.
type Lexer interface {
	// AddPattern adds a lexical rule producing tokens of the named class.
	// Patterns added later take precedence over earlier ones when matches
	// tie on length. The pattern is compiled immediately so malformed
	// regexes are reported here.
	AddPattern(pat string, tokenName string) error

	// RegisterClass registers the token class to attach to tokens of the
	// given name, replacing the default class that AddPattern creates.
	RegisterClass(cl types.TokenClass)

	// SetAlphabet fixes the input alphabet the table is built over. If never
	// called, the alphabet is derived from the literals of the added
	// patterns.
	SetAlphabet(alphabet []rune)

	// SetStrict makes Build fail if some pattern literal is missing from an
	// explicitly-set alphabet instead of silently producing dead transitions.
	SetStrict(strict bool)

	// Build compiles all added patterns into a transition table. It is
	// idempotent; the table is built once and reused.
	Build() (LexerDefinition, error)

	// Lex tokenizes everything from input and returns the token stream. The
	// lexer is built first if it has not been already.
	Lex(input io.Reader) (types.TokenStream, error)
}

// NewLexer returns a Lexer with no patterns.
func NewLexer() Lexer {
	return &lexerTemplate{
		classes: map[string]types.TokenClass{},
	}
}

type lexerTemplate struct {
	defs     []TokenDef
	classes  map[string]types.TokenClass
	alphabet []rune
	strict   bool

	built *LexerDefinition
}

func (lx *lexerTemplate) AddPattern(pat string, tokenName string) error {
	if tokenName == "" {
		return fmt.Errorf("empty token name not allowed")
	}

	// compile now purely to validate; the real compile happens in Build once
	// priorities are known
	if _, err := RegexToNFA(pat, tokenName, 0); err != nil {
		return err
	}

	lx.defs = append(lx.defs, TokenDef{Pattern: pat, Name: tokenName})
	if _, ok := lx.classes[tokenName]; !ok {
		lx.classes[tokenName] = NewTokenClass(strings.ToLower(tokenName), tokenName)
	}

	lx.built = nil
	return nil
}

func (lx *lexerTemplate) RegisterClass(cl types.TokenClass) {
	lx.classes[cl.Human()] = cl
}

func (lx *lexerTemplate) SetAlphabet(alphabet []rune) {
	lx.alphabet = alphabet
	lx.built = nil
}

func (lx *lexerTemplate) SetStrict(strict bool) {
	lx.strict = strict
	lx.built = nil
}

// AlphabetError is returned from building in strict mode when pattern
// literals are missing from the caller-supplied alphabet.
type AlphabetError struct {
	// Missing is every literal that appears in some pattern but not in the
	// alphabet, sorted.
	Missing []rune
}

func (e *AlphabetError) Error() string {
	strs := make([]string, len(e.Missing))
	for i := range e.Missing {
		strs[i] = fmt.Sprintf("%q", e.Missing[i])
	}
	return fmt.Sprintf("alphabet is missing pattern literals: %s", strings.Join(strs, ", "))
}

func (lx *lexerTemplate) Build() (LexerDefinition, error) {
	if lx.built != nil {
		return *lx.built, nil
	}

	if len(lx.defs) < 1 {
		return LexerDefinition{}, fmt.Errorf("no patterns added")
	}

	defs := make([]TokenDef, len(lx.defs))
	copy(defs, lx.defs)
	for i := range defs {
		defs[i].Priority = len(defs) - i - 1
	}

	var ruleNFAs []*NFA
	for _, d := range defs {
		n, err := RegexToNFA(d.Pattern, d.Name, d.Priority)
		if err != nil {
			return LexerDefinition{}, err
		}
		ruleNFAs = append(ruleNFAs, n)
	}

	combined := UnionNFAs(ruleNFAs)

	alphabet := lx.alphabet
	if len(alphabet) == 0 {
		alphabet = combined.Literals()
	} else if lx.strict {
		var missing []rune
		inAlphabet := map[rune]bool{}
		for _, c := range alphabet {
			inAlphabet[c] = true
		}
		for _, c := range combined.Literals() {
			if !inAlphabet[c] {
				missing = append(missing, c)
			}
		}
		if len(missing) > 0 {
			return LexerDefinition{}, &AlphabetError{Missing: missing}
		}
	}

	dfa := combined.ToDFA(alphabet)
	minimized := Minimize(dfa, alphabet)

	def := NewLexerDefinition(minimized, alphabet)
	lx.built = &def

	return def, nil
}

func (lx *lexerTemplate) Lex(input io.Reader) (types.TokenStream, error) {
	def, err := lx.Build()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return NewTokenStream(def, lx.classes, string(data)), nil
}

// NewTokenStream tokenizes the given text with a compiled table and wraps
// the result in a types.TokenStream, attaching line and position info to
// every token for error reporting. classes maps token names to the classes
// to attach; names with no entry get a default class, and UNKNOWN lexemes
// get types.TokenUnknown. The stream always ends with an end-of-text token.
func NewTokenStream(def LexerDefinition, classes map[string]types.TokenClass, text string) types.TokenStream {
	lines := strings.Split(text, "\n")

	// map every rune offset to its line and column, both 1-indexed
	runes := []rune(text)
	lineOf := make([]int, len(runes)+1)
	colOf := make([]int, len(runes)+1)
	line, col := 1, 1
	for i, c := range runes {
		lineOf[i] = line
		colOf[i] = col
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	lineOf[len(runes)] = line
	colOf[len(runes)] = col

	fullLineAt := func(lineNum int) string {
		if lineNum-1 < len(lines) {
			return lines[lineNum-1]
		}
		return ""
	}

	var toks []lexerToken

	for _, lexeme := range def.Tokenize(text) {
		var cl types.TokenClass
		if lexeme.TokenName == UnknownTokenName {
			cl = types.TokenUnknown
		} else if registered, ok := classes[lexeme.TokenName]; ok {
			cl = registered
		} else {
			cl = NewTokenClass(strings.ToLower(lexeme.TokenName), lexeme.TokenName)
		}

		toks = append(toks, lexerToken{
			class:   cl,
			lexed:   lexeme.Text,
			lineNum: lineOf[lexeme.Start],
			linePos: colOf[lexeme.Start],
			line:    fullLineAt(lineOf[lexeme.Start]),
		})
	}

	toks = append(toks, lexerToken{
		class:   types.TokenEndOfText,
		lineNum: lineOf[len(runes)],
		linePos: colOf[len(runes)],
		line:    fullLineAt(lineOf[len(runes)]),
	})

	return &tokenStream{tokens: toks}
}
