package lex

import (
	"encoding/json"
	"fmt"

	"github.com/dekarrin/rezi"
)

// LexerDefinition is the dense transition table a compiled lexer runs on.
// Rows of Transitions are states, columns follow Alphabet order, and -1
// means "no transition". IsFinal and TokenTypeNames are per-state; the token
// name of a non-accepting state is null in JSON (a nil pointer here).
//
// The JSON field layout is part of the external contract and must not
// change.
type LexerDefinition struct {
	Alphabet       []string  `json:"alphabet"`
	StartState     int       `json:"startState"`
	Transitions    [][]int   `json:"transitions"`
	IsFinal        []bool    `json:"isFinal"`
	TokenTypeNames []*string `json:"tokenTypeNames"`
}

// NewLexerDefinition flattens a DFA into a transition table over the given
// alphabet. Column order follows the alphabet as given.
func NewLexerDefinition(d *DFA, alphabet []rune) LexerDefinition {
	def := LexerDefinition{
		StartState: d.Start,
	}

	for _, c := range alphabet {
		def.Alphabet = append(def.Alphabet, string(c))
	}

	for i := 0; i < d.NumStates(); i++ {
		row := make([]int, len(alphabet))
		for col, c := range alphabet {
			row[col] = d.Next(i, c)
		}
		def.Transitions = append(def.Transitions, row)

		def.IsFinal = append(def.IsFinal, d.IsFinal(i))
		if d.IsFinal(i) {
			name := d.TokenName(i)
			def.TokenTypeNames = append(def.TokenTypeNames, &name)
		} else {
			def.TokenTypeNames = append(def.TokenTypeNames, nil)
		}
	}

	return def
}

// Validate checks the density invariants of the table: every per-state array
// has one entry per state, every row has one column per alphabet entry, and
// the start state is in range.
func (ld LexerDefinition) Validate() error {
	numStates := len(ld.Transitions)

	if len(ld.IsFinal) != numStates {
		return fmt.Errorf("isFinal has %d entries for %d states", len(ld.IsFinal), numStates)
	}
	if len(ld.TokenTypeNames) != numStates {
		return fmt.Errorf("tokenTypeNames has %d entries for %d states", len(ld.TokenTypeNames), numStates)
	}
	if ld.StartState < 0 || ld.StartState >= numStates {
		return fmt.Errorf("start state %d out of range; have %d states", ld.StartState, numStates)
	}

	for i, row := range ld.Transitions {
		if len(row) != len(ld.Alphabet) {
			return fmt.Errorf("state %d has %d transition columns for %d alphabet characters", i, len(row), len(ld.Alphabet))
		}
		for j, next := range row {
			if next < -1 || next >= numStates {
				return fmt.Errorf("state %d transition on %q leads to non-existing state %d", i, ld.Alphabet[j], next)
			}
		}
	}

	for i := range ld.IsFinal {
		if ld.IsFinal[i] && ld.TokenTypeNames[i] == nil {
			return fmt.Errorf("accepting state %d has no token type name", i)
		}
	}

	return nil
}

// MarshalJSONText renders the definition in the external JSON layout.
func (ld LexerDefinition) MarshalJSONText() ([]byte, error) {
	return json.MarshalIndent(ld, "", "  ")
}

// UnmarshalJSONText reads a definition from the external JSON layout and
// validates it.
func UnmarshalJSONText(data []byte) (LexerDefinition, error) {
	var ld LexerDefinition
	if err := json.Unmarshal(data, &ld); err != nil {
		return LexerDefinition{}, fmt.Errorf("decode lexer definition: %w", err)
	}
	if err := ld.Validate(); err != nil {
		return LexerDefinition{}, fmt.Errorf("decoded lexer definition is inconsistent: %w", err)
	}
	return ld, nil
}

// EncBinary encodes the definition in the compact binary form used for
// compiled-table caching.
func (ld LexerDefinition) EncBinary() []byte {
	return rezi.EncBinary(ld)
}

// DecBinary decodes a definition from its compact binary form.
func DecBinary(data []byte) (LexerDefinition, error) {
	var ld LexerDefinition
	n, err := rezi.DecBinary(data, &ld)
	if err != nil {
		return LexerDefinition{}, fmt.Errorf("decode binary lexer definition: %w", err)
	}
	if n != len(data) {
		return LexerDefinition{}, fmt.Errorf("binary lexer definition has %d trailing bytes", len(data)-n)
	}
	if err := ld.Validate(); err != nil {
		return LexerDefinition{}, fmt.Errorf("decoded lexer definition is inconsistent: %w", err)
	}
	return ld, nil
}

// MarshalBinary implements encoding.BinaryMarshaler so rezi can store the
// table.
func (ld LexerDefinition) MarshalBinary() ([]byte, error) {
	var enc []byte

	enc = append(enc, encBinaryInt(len(ld.Alphabet))...)
	for _, s := range ld.Alphabet {
		enc = append(enc, encBinaryString(s)...)
	}

	enc = append(enc, encBinaryInt(ld.StartState)...)

	enc = append(enc, encBinaryInt(len(ld.Transitions))...)
	for _, row := range ld.Transitions {
		enc = append(enc, encBinaryInt(len(row))...)
		for _, next := range row {
			enc = append(enc, encBinaryInt(next)...)
		}
	}

	enc = append(enc, encBinaryInt(len(ld.IsFinal))...)
	for _, f := range ld.IsFinal {
		enc = append(enc, encBinaryBool(f)...)
	}

	enc = append(enc, encBinaryInt(len(ld.TokenTypeNames))...)
	for _, name := range ld.TokenTypeNames {
		enc = append(enc, encBinaryBool(name != nil)...)
		if name != nil {
			enc = append(enc, encBinaryString(*name)...)
		}
	}

	return enc, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (ld *LexerDefinition) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	var alphaCount int
	alphaCount, n, err = decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]
	ld.Alphabet = nil
	for i := 0; i < alphaCount; i++ {
		var s string
		s, n, err = decBinaryString(data)
		if err != nil {
			return err
		}
		data = data[n:]
		ld.Alphabet = append(ld.Alphabet, s)
	}

	ld.StartState, n, err = decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	var rowCount int
	rowCount, n, err = decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]
	ld.Transitions = nil
	for i := 0; i < rowCount; i++ {
		var colCount int
		colCount, n, err = decBinaryInt(data)
		if err != nil {
			return err
		}
		data = data[n:]

		row := make([]int, colCount)
		for j := 0; j < colCount; j++ {
			row[j], n, err = decBinaryInt(data)
			if err != nil {
				return err
			}
			data = data[n:]
		}
		ld.Transitions = append(ld.Transitions, row)
	}

	var finalCount int
	finalCount, n, err = decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]
	ld.IsFinal = nil
	for i := 0; i < finalCount; i++ {
		var f bool
		f, n, err = decBinaryBool(data)
		if err != nil {
			return err
		}
		data = data[n:]
		ld.IsFinal = append(ld.IsFinal, f)
	}

	var nameCount int
	nameCount, n, err = decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]
	ld.TokenTypeNames = nil
	for i := 0; i < nameCount; i++ {
		var present bool
		present, n, err = decBinaryBool(data)
		if err != nil {
			return err
		}
		data = data[n:]

		if present {
			var s string
			s, n, err = decBinaryString(data)
			if err != nil {
				return err
			}
			data = data[n:]
			ld.TokenTypeNames = append(ld.TokenTypeNames, &s)
		} else {
			ld.TokenTypeNames = append(ld.TokenTypeNames, nil)
		}
	}

	return nil
}
