package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon carries optional, per-production extensions to the fixed phrase
// lists: extra observation phrases and extra noise words. The built-in lists
// always apply; a lexicon only adds to them.
type Lexicon struct {
	ObservationPhrases []string `yaml:"observation_phrases"`
	NoiseWords         []string `yaml:"noise_words"`
}

// LoadLexicon reads a YAML lexicon file. A missing path returns nil without
// error so callers can pass configuration through unconditionally.
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	return &lex, nil
}
