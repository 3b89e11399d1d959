package symptom

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize reduces a raw token to its canonical surface form: NFKC fold,
// trim, lowercase, internal whitespace runs collapsed to a single
// underscore, and every rune outside letters/digits/'_'/'-' dropped.
//
// Examples:
//   - Normalize("  High Temperature ") -> "high_temperature"
//   - Normalize("Sore Throat!!") -> "sore_throat"
//   - Normalize("???") -> ""
//
// Normalize is total and idempotent. Garbage input yields "", never an error.
func Normalize(raw string) string {
	raw = norm.NFKC.String(raw)
	raw = strings.ToLower(strings.TrimSpace(raw))
	joined := strings.Join(strings.Fields(raw), "_")

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalizer resolves raw user tokens to canonical symptom identifiers.
// Without a lexicon it only applies Normalize; with one, normalized tokens
// are additionally mapped to their canonical synonym forms.
type Normalizer struct {
	lex *Lexicon
}

// NewNormalizer creates a normalizer with no lexicon attached.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// SetLexicon assigns a synonym lexicon.
// Example: "pyrexia" → "fever", "sob" → "shortness_of_breath"
func (n *Normalizer) SetLexicon(lex *Lexicon) {
	n.lex = lex
}

// Resolve normalizes a raw token and maps it through the lexicon.
// Unknown tokens pass through unchanged.
func (n *Normalizer) Resolve(raw string) string {
	tok := Normalize(raw)
	if tok == "" || n.lex == nil {
		return tok
	}
	return n.lex.Resolve(tok)
}

// ResolveAll resolves every raw token, dropping empties and duplicates
// while preserving first-seen order.
func (n *Normalizer) ResolveAll(raws []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		tok := n.Resolve(raw)
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
