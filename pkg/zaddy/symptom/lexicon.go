package symptom

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon stores the symptom synonym vocabulary:
// many surface forms map to one canonical symptom identifier.
//
// Design principles:
// - Bidirectional: resolve a variant to canonical OR expand canonical to all variants
// - Many-to-one: each surface form belongs to exactly one group
// - All keys are held in Normalize form, so lookups survive raw user spellings
type Lexicon struct {
	// canonical -> all variants (including canonical itself)
	// Example: "fever" -> ["fever", "pyrexia", "high_temperature", "temp"]
	groups map[string][]string

	// variant -> canonical
	// Example: "pyrexia" -> "fever"
	reverseIndex map[string]string
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{
		groups:       make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// LoadLexiconFromYAML loads synonym groups from a YAML file.
//
// Expected format:
//
//	synonyms:
//	  - canonical: fever
//	    variants: [pyrexia, high temperature, temp]
//	  - canonical: shortness_of_breath
//	    variants: [sob, breathless]
//
// Multi-word variants are supported; every entry is run through Normalize,
// so "high temperature" is stored as "high_temperature".
func LoadLexiconFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	lex := NewLexicon()
	for _, entry := range config.Synonyms {
		lex.AddSynonymGroup(entry.Canonical, entry.Variants)
	}

	return lex, nil
}

// AddSynonymGroup adds a synonym group with a canonical form and its variants.
// The canonical form is always included as the first entry in the group.
// If the group already exists, old reverse index entries are cleaned up first.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = Normalize(canonical)
	if canonical == "" {
		return
	}

	if oldVariants, exists := l.groups[canonical]; exists {
		for _, oldV := range oldVariants {
			delete(l.reverseIndex, oldV)
		}
	}

	normalized := make([]string, 0, len(variants)+1)
	seen := make(map[string]bool)

	normalized = append(normalized, canonical)
	seen[canonical] = true

	for _, v := range variants {
		v = Normalize(v)
		if v == "" || seen[v] {
			continue
		}
		normalized = append(normalized, v)
		seen[v] = true
	}

	l.groups[canonical] = normalized

	for _, v := range normalized {
		l.reverseIndex[v] = canonical
	}
}

// Resolve returns the canonical form of a token.
// If the token is not in the lexicon, returns the token itself.
//
// Examples:
//   - Resolve("pyrexia") -> "fever"
//   - Resolve("unknown") -> "unknown"
func (l *Lexicon) Resolve(token string) string {
	token = Normalize(token)
	if canonical, ok := l.reverseIndex[token]; ok {
		return canonical
	}
	return token
}

// Variants returns all known surface forms of a token, canonical first.
// If the token is not in the lexicon, returns a slice containing only the
// token itself.
func (l *Lexicon) Variants(token string) []string {
	token = Normalize(token)

	if variants, ok := l.groups[token]; ok {
		return variants
	}

	if canonical, ok := l.reverseIndex[token]; ok {
		if variants, ok := l.groups[canonical]; ok {
			return variants
		}
	}

	return []string{token}
}

// HasSynonyms returns true if the token belongs to any synonym group.
func (l *Lexicon) HasSynonyms(token string) bool {
	_, exists := l.reverseIndex[Normalize(token)]
	return exists
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	totalVariants := 0
	for _, variants := range l.groups {
		totalVariants += len(variants)
	}

	return LexiconStats{
		SynonymGroups: len(l.groups),
		TotalVariants: totalVariants,
	}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	SynonymGroups int // Number of canonical forms (synonym groups)
	TotalVariants int // Total number of variants across all groups
}
