// Package tokenizeconfig loads the small set of tunables used when
// running the tokenizer driver: the line-count threshold past which it
// offloads work to a background context, and the language assumed
// when none is given. It also loads MaxDocumentCacheEntries, which
// nothing in this module reads or enforces. None of these values
// affect the tokenizations themselves — only resource usage and where
// the work happens. A missing config file is not an error; it just
// falls back to defaults. A file that exists but cannot be read or
// parsed is reported as an error.
package tokenizeconfig

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/maple-editor/tokenize/internal/lexer"
)

// EngineConfig holds the tunable knobs read from an optional TOML
// config file (see DefaultConfig for defaults).
type EngineConfig struct {
	WorkerLineThreshold     int    `toml:"worker_line_threshold"`
	MaxDocumentCacheEntries int    `toml:"max_document_cache_entries"`
	DefaultLanguage         string `toml:"default_language"`
}

// DefaultConfig returns the engine's built-in defaults.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		WorkerLineThreshold:     1000,
		MaxDocumentCacheEntries: 64,
		DefaultLanguage:         lexer.Plaintext.String(),
	}
}

// Language resolves DefaultLanguage to a lexer.Language, falling back
// to lexer.Plaintext for an empty or unrecognized name.
func (c EngineConfig) Language() lexer.Language {
	if lang, ok := lexer.LanguageByName(c.DefaultLanguage); ok {
		return lang
	}
	return lexer.Plaintext
}

// Load reads a TOML config file at path, starting from DefaultConfig
// and overlaying whatever fields the file sets. A missing file is not
// an error — it returns the defaults unchanged.
func Load(path string) (EngineConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("tokenizeconfig: reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("tokenizeconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}
