package moray

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/moray/types"
)

// Config is a moray project file: the inputs and options of one front-end
// build, read from TOML. All paths are relative to the config file's caller.
type Config struct {
	// TokenDefs is the path of the token-definition file.
	TokenDefs string `toml:"token_defs"`

	// Grammar is the path of the grammar file.
	Grammar string `toml:"grammar"`

	// Parser is the parsing algorithm to construct tables for; one of
	// "ll1", "slr1", "clr1", or "lalr1". Defaults to lalr1.
	Parser string `toml:"parser"`

	// Alphabet explicitly fixes the lexer input alphabet as a string of
	// characters. When empty, the alphabet is derived from the pattern
	// literals.
	Alphabet string `toml:"alphabet"`

	// Strict makes the build fail when a pattern literal is missing from an
	// explicitly-given alphabet.
	Strict bool `toml:"strict"`

	// OutJSON is the path to write the compiled transition table to as
	// JSON, or empty to not write it.
	OutJSON string `toml:"out_json"`

	// OutBinary is the path to write the compiled transition table to in
	// binary form, or empty to not write it.
	OutBinary string `toml:"out_binary"`
}

// ParserType resolves the configured parser algorithm name.
func (cfg Config) ParserType() (types.ParserType, error) {
	if cfg.Parser == "" {
		return types.ParserLALR1, nil
	}
	pt, ok := types.ParseParserType(cfg.Parser)
	if !ok {
		return "", fmt.Errorf("parser must be one of 'll1', 'slr1', 'clr1', or 'lalr1': %q", cfg.Parser)
	}
	return pt, nil
}

// Validate checks that required fields are present.
func (cfg Config) Validate() error {
	if cfg.TokenDefs == "" {
		return fmt.Errorf("token_defs is required")
	}
	if _, err := cfg.ParserType(); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a Config from the TOML file at the given path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}
