/*
Moray compiles lexical rules and a context-free grammar into a working
compiler front end.

It reads a token-definition file and (optionally) a grammar file, builds the
minimized DFA transition table and the requested parsing tables, writes the
compiled table out as JSON and/or binary, and can start an interactive
session that tokenizes and parses lines typed on stdin.

Usage:

	moray [flags]

The flags are:

	-v, --version
		Give the current version of moray and then exit.

	-c, --config FILE
		Read build inputs and options from the given moray TOML project
		file. Flags given alongside override the file.

	-t, --defs FILE
		Use the given token-definition file. Lines are 'regex;TOKEN_NAME';
		later lines take precedence.

	-g, --grammar FILE
		Use the given grammar file of 'A -> b C | d' rules separated by ';'.

	-p, --parser NAME
		Build parsing tables with the given algorithm; one of 'll1', 'slr1',
		'clr1', or 'lalr1'. Defaults to lalr1.

	-a, --alphabet CHARS
		Explicitly fix the lexer input alphabet to the characters of CHARS
		instead of deriving it from the patterns.

	--strict
		Fail the build if some pattern literal is missing from an explicitly
		given alphabet.

	-o, --out-json FILE
		Write the compiled transition table to FILE as JSON.

	-b, --out-bin FILE
		Write the compiled transition table to FILE in binary form.

	--tables
		Print the constructed parsing tables to stdout. Conflicts found while
		building them are logged as warnings; an LL(1) conflict is logged in
		place of the table.

	-i, --interactive
		After building, start a session reading lines from stdin; each line
		is tokenized and, if a grammar was given, parsed.

	-d, --direct
		Force reading directly from stdin instead of going through the
		readline line editor.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/moray"
	"github.com/dekarrin/moray/grammar"
	"github.com/dekarrin/moray/internal/version"
	"github.com/dekarrin/moray/lex"
	"github.com/dekarrin/moray/morayerr"
	"github.com/dekarrin/moray/parse"
	"github.com/dekarrin/moray/types"
	"github.com/projectdiscovery/gologger"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitBuildError indicates an unsuccessful program execution due to a
	// problem compiling the front end.
	ExitBuildError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue reading inputs.
	ExitInitError
)

var (
	returnCode      = ExitSuccess
	flagVersion     = pflag.BoolP("version", "v", false, "Gives the version info")
	flagConfig      = pflag.StringP("config", "c", "", "Read build inputs and options from the given moray project file")
	flagDefs        = pflag.StringP("defs", "t", "", "The token-definition file to compile")
	flagGrammar     = pflag.StringP("grammar", "g", "", "The grammar file to build parsing tables for")
	flagParser      = pflag.StringP("parser", "p", "", "The parsing algorithm: ll1, slr1, clr1, or lalr1")
	flagAlphabet    = pflag.StringP("alphabet", "a", "", "Explicit lexer input alphabet")
	flagStrict      = pflag.Bool("strict", false, "Fail if a pattern literal is missing from the given alphabet")
	flagOutJSON     = pflag.StringP("out-json", "o", "", "Write the compiled transition table to the given file as JSON")
	flagOutBin      = pflag.StringP("out-bin", "b", "", "Write the compiled transition table to the given file in binary form")
	flagTables      = pflag.Bool("tables", false, "Print the constructed parsing tables")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Start an interactive tokenize/parse session after building")
	flagDirect      = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of using readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just
			// because we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Println("moray " + version.Current)
		return
	}

	cfg, err := resolveConfig()
	if err != nil {
		gologger.Error().Msgf("%v", err)
		returnCode = ExitInitError
		return
	}

	defsFile, err := os.Open(cfg.TokenDefs)
	if err != nil {
		gologger.Error().Msgf("open token definitions: %v", err)
		returnCode = ExitInitError
		return
	}
	defs, err := lex.ReadTokenDefs(defsFile)
	defsFile.Close()
	if err != nil {
		gologger.Error().Msgf("%v", err)
		returnCode = ExitInitError
		return
	}
	gologger.Info().Msgf("Read %d token definitions from %s", len(defs), cfg.TokenDefs)

	lexer := lex.NewLexer()
	for _, d := range defs {
		if err := lexer.AddPattern(d.Pattern, d.Name); err != nil {
			gologger.Error().Msgf("%v", err)
			returnCode = ExitBuildError
			return
		}
	}
	if cfg.Alphabet != "" {
		lexer.SetAlphabet([]rune(cfg.Alphabet))
	}
	lexer.SetStrict(cfg.Strict)

	table, err := lexer.Build()
	if err != nil {
		gologger.Error().Msgf("%v", err)
		returnCode = ExitBuildError
		return
	}
	gologger.Info().Msgf("Compiled lexer: %d states over %d-character alphabet", len(table.Transitions), len(table.Alphabet))

	if cfg.OutJSON != "" {
		data, err := table.MarshalJSONText()
		if err != nil {
			gologger.Error().Msgf("encode table: %v", err)
			returnCode = ExitBuildError
			return
		}
		if err := os.WriteFile(cfg.OutJSON, data, 0644); err != nil {
			gologger.Error().Msgf("write %s: %v", cfg.OutJSON, err)
			returnCode = ExitBuildError
			return
		}
		gologger.Info().Msgf("Wrote JSON transition table to %s", cfg.OutJSON)
	}
	if cfg.OutBinary != "" {
		if err := os.WriteFile(cfg.OutBinary, table.EncBinary(), 0644); err != nil {
			gologger.Error().Msgf("write %s: %v", cfg.OutBinary, err)
			returnCode = ExitBuildError
			return
		}
		gologger.Info().Msgf("Wrote binary transition table to %s", cfg.OutBinary)
	}

	var parser moray.Parser
	var g grammar.Grammar
	if cfg.Grammar != "" {
		gramData, err := os.ReadFile(cfg.Grammar)
		if err != nil {
			gologger.Error().Msgf("open grammar: %v", err)
			returnCode = ExitInitError
			return
		}
		g, err = grammar.Parse(string(gramData))
		if err != nil {
			gologger.Error().Msgf("%v", err)
			returnCode = ExitInitError
			return
		}
		if err := g.Validate(); err != nil {
			gologger.Error().Msgf("invalid grammar: %v", err)
			returnCode = ExitBuildError
			return
		}
		for _, sym := range g.UnresolvedSymbols() {
			gologger.Warning().Msgf("symbol %q is produced but never defined; treating it as a terminal", sym)
		}

		pt, err := cfg.ParserType()
		if err != nil {
			gologger.Error().Msgf("%v", err)
			returnCode = ExitInitError
			return
		}

		if *flagTables {
			printTables(pt, g)
		}

		parser, err = moray.NewParser(pt, g)
		if err != nil {
			gologger.Error().Msgf("%v", err)
			returnCode = ExitBuildError
			return
		}
		gologger.Info().Msgf("Constructed %s parsing tables", parser.Type().String())
	}

	if *flagInteractive {
		if err := runSession(table, defs, parser); err != nil {
			gologger.Error().Msgf("%v", err)
			returnCode = ExitBuildError
			return
		}
	}
}

// resolveConfig merges the project file (if given) with flag overrides.
func resolveConfig() (moray.Config, error) {
	var cfg moray.Config
	var err error

	if *flagConfig != "" {
		cfg, err = moray.LoadConfig(*flagConfig)
		if err != nil {
			return moray.Config{}, err
		}
	}

	if *flagDefs != "" {
		cfg.TokenDefs = *flagDefs
	}
	if *flagGrammar != "" {
		cfg.Grammar = *flagGrammar
	}
	if *flagParser != "" {
		cfg.Parser = *flagParser
	}
	if *flagAlphabet != "" {
		cfg.Alphabet = *flagAlphabet
	}
	if *flagStrict {
		cfg.Strict = true
	}
	if *flagOutJSON != "" {
		cfg.OutJSON = *flagOutJSON
	}
	if *flagOutBin != "" {
		cfg.OutBinary = *flagOutBin
	}

	if cfg.TokenDefs == "" {
		return moray.Config{}, fmt.Errorf("no token-definition file; give one with --defs or a project file with --config")
	}
	if _, err := cfg.ParserType(); err != nil {
		return moray.Config{}, err
	}

	return cfg, nil
}

// printTables prints the constructed tables and logs any conflict
// diagnostics. LR conflicts are logged after the table is printed; an LL(1)
// conflict or a failed LALR(1) merge is logged instead of a table.
func printTables(pt types.ParserType, g grammar.Grammar) {
	if pt == types.ParserLL1 {
		M, err := g.LLParseTable()
		if err != nil {
			gologger.Warning().Msgf("%v", err)
			return
		}
		fmt.Println(M.String())
		return
	}

	var table parse.LRParseTable
	var err error
	switch pt {
	case types.ParserSLR1:
		table = parse.ConstructSLR1Table(g)
	case types.ParserCLR1:
		table = parse.ConstructCLR1Table(g)
	case types.ParserLALR1:
		table, err = parse.ConstructLALR1Table(g)
	}
	if err != nil {
		gologger.Warning().Msgf("%v", err)
		return
	}

	fmt.Println(table.String())
	for _, c := range table.Conflicts() {
		gologger.Warning().Msgf("%s", c.String())
	}
}

// commandReader reads lines of input for the interactive session; one
// implementation goes through readline, the other reads stdin directly.
type commandReader interface {
	ReadCommand() (string, error)
	Close() error
}

type directCommandReader struct {
	r *bufio.Reader
}

func (dcr *directCommandReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dcr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

func (dcr *directCommandReader) Close() error {
	return nil
}

type interactiveCommandReader struct {
	rl *readline.Instance
}

func (icr *interactiveCommandReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = icr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

func (icr *interactiveCommandReader) Close() error {
	return icr.rl.Close()
}

// runSession reads lines and runs each through the tokenizer and, when a
// parser was constructed, the parser.
func runSession(table lex.LexerDefinition, defs []lex.TokenDef, parser moray.Parser) error {
	classes := map[string]types.TokenClass{}
	for _, d := range defs {
		classes[d.Name] = lex.NewTokenClass(strings.ToLower(d.Name), d.Name)
	}

	var reader commandReader
	if *flagDirect {
		reader = &directCommandReader{r: bufio.NewReader(os.Stdin)}
	} else {
		rl, err := readline.NewEx(&readline.Config{
			Prompt: "moray> ",
		})
		if err != nil {
			return fmt.Errorf("create readline config: %w", err)
		}
		reader = &interactiveCommandReader{rl: rl}
	}
	defer reader.Close()

	for {
		line, err := reader.ReadCommand()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		for _, lexeme := range table.Tokenize(line) {
			fmt.Printf("  %s %q [%d:%d]\n", lexeme.TokenName, lexeme.Text, lexeme.Start, lexeme.End)
		}

		if parser == nil {
			continue
		}

		stream := lex.NewTokenStream(table, classes, line)
		tree, err := parser.Parse(stream)
		if err != nil {
			if synErr, ok := err.(*morayerr.SyntaxError); ok {
				fmt.Println(synErr.FullMessage())
			} else {
				fmt.Printf("parse error: %v\n", err)
			}
			continue
		}
		fmt.Println(tree.String())
	}
}
