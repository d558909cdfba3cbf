package lex

// The runtime side of a compiled lexer: a table walker implementing maximal
// munch over a LexerDefinition.

// UnknownTokenName is the token name emitted for a character that cannot
// begin any token. An UNKNOWN lexeme always covers exactly one character.
const UnknownTokenName = "UNKNOWN"

// Lexeme is one tokenizer result: the token name, the matched text, and the
// half-open [Start, End) range of character offsets it covers in the input.
type Lexeme struct {
	TokenName string
	Text      string
	Start     int
	End       int
}

// Tokenize scans the entire input with maximal munch.
//
// At each position the table is advanced as far as any transition allows,
// remembering the last accepting state passed through; when the walk halts,
// the token of that state is emitted and scanning resumes directly after its
// lexeme. If the walk halts having never reached an accepting state, a
// single-character UNKNOWN token is emitted instead and scanning advances by
// one. Characters outside the alphabet halt the current walk exactly as a
// missing transition does.
func (ld LexerDefinition) Tokenize(input string) []Lexeme {
	var lexemes []Lexeme

	colOf := map[rune]int{}
	for i, s := range ld.Alphabet {
		for _, c := range s {
			colOf[c] = i
			break
		}
	}

	runes := []rune(input)

	pos := 0
	for pos < len(runes) {
		state := ld.StartState
		cur := pos

		lastAcceptState := -1
		lastAcceptEnd := pos

		for cur < len(runes) {
			col, inAlphabet := colOf[runes[cur]]
			if !inAlphabet {
				break
			}

			next := ld.Transitions[state][col]
			if next < 0 {
				break
			}

			state = next
			cur++

			if ld.IsFinal[state] {
				lastAcceptState = state
				lastAcceptEnd = cur
			}
		}

		if lastAcceptState >= 0 {
			lexemes = append(lexemes, Lexeme{
				TokenName: *ld.TokenTypeNames[lastAcceptState],
				Text:      string(runes[pos:lastAcceptEnd]),
				Start:     pos,
				End:       lastAcceptEnd,
			})
			pos = lastAcceptEnd
		} else {
			lexemes = append(lexemes, Lexeme{
				TokenName: UnknownTokenName,
				Text:      string(runes[pos : pos+1]),
				Start:     pos,
				End:       pos + 1,
			})
			pos++
		}
	}

	return lexemes
}
