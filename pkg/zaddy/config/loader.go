package config

import (
	"fmt"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/rules"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

// Loader loads all configuration files and constructs components.
// Empty paths fall back to the builtin defaults.
type Loader struct {
	SynonymsPath string
	RulesPath    string
	FallbackPath string
}

// Components holds all loaded configuration components.
type Components struct {
	Lexicon    *symptom.Lexicon
	Normalizer *symptom.Normalizer
	Rules      []rules.Rule
	Fallback   *kb.Snapshot
}

// Load reads all configuration files and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load synonym lexicon
	if l.SynonymsPath != "" {
		lex, err := symptom.LoadLexiconFromYAML(l.SynonymsPath)
		if err != nil {
			return nil, fmt.Errorf("load synonyms: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = symptom.DefaultLexicon()
	}

	comp.Normalizer = symptom.NewNormalizer()
	comp.Normalizer.SetLexicon(comp.Lexicon)

	// Load disease rules
	if l.RulesPath != "" {
		rs, err := rules.LoadRulesFromYAML(l.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		comp.Rules = rs
	} else {
		comp.Rules = rules.Default()
	}

	// Load fallback knowledge table
	if l.FallbackPath != "" {
		fb, err := LoadFallbackKB(l.FallbackPath)
		if err != nil {
			return nil, fmt.Errorf("load fallback kb: %w", err)
		}
		comp.Fallback = kb.FallbackFromTable(fb.Diseases, comp.Normalizer)
	} else {
		comp.Fallback = kb.Fallback()
	}

	return comp, nil
}
