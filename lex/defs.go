package lex

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TokenDef is one lexical rule: a regular expression and the name of the
// token class its matches produce. Priority is the tie-break rank used when
// a DFA state accepts for more than one rule; LOWER numbers win.
type TokenDef struct {
	Pattern  string
	Name     string
	Priority int
}

// ReadTokenDefs reads lexical rules from a token-definition file.
//
// The format is line-oriented UTF-8. Blank lines and lines whose first
// non-whitespace character is '#' are ignored. Every other line is split on
// its FIRST ';' into a regex and a token name, both trimmed of surrounding
// whitespace.
//
// Rules later in the file take precedence over earlier ones: the rule at
// index i of n gets priority n - i - 1, so the last rule gets 0, the
// strongest.
func ReadTokenDefs(r io.Reader) ([]TokenDef, error) {
	var defs []TokenDef

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.SplitN(line, ";", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: not a 'regex;TOKEN_NAME' rule: %q", lineNum, line)
		}

		pattern := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])

		if pattern == "" {
			return nil, fmt.Errorf("line %d: empty regex", lineNum)
		}
		if name == "" {
			return nil, fmt.Errorf("line %d: empty token name", lineNum)
		}

		defs = append(defs, TokenDef{Pattern: pattern, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read token definitions: %w", err)
	}

	for i := range defs {
		defs[i].Priority = len(defs) - i - 1
	}

	return defs, nil
}
