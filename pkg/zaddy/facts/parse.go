package facts

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/internalerr"
)

// ParseString parses knowledge base text into facts.
//
// Format: binary relations as s-expressions, any number per line:
//
//	(has-symptom flu fever)
//	(has-symptom flu cough) (has-symptom covid19 fever)
//	(treatment flu "Rest, hydration, symptomatic care")
//	; comment to end of line
//	# also a comment
//
// Atoms are whitespace-separated; a double-quoted atom may contain spaces.
// Exactly three atoms per expression. Malformed input returns an error
// wrapping internalerr.ErrInvalidInput with the offending line number.
func ParseString(input string) ([]Fact, error) {
	var out []Fact
	var atoms []string
	var cur strings.Builder

	line := 1
	inFact := false
	inQuote := false
	inComment := false
	haveCur := false

	endAtom := func() {
		if haveCur {
			atoms = append(atoms, cur.String())
			cur.Reset()
			haveCur = false
		}
	}

	for _, r := range input {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false
				line++
			}

		case inQuote:
			switch r {
			case '"':
				inQuote = false
				endAtom()
			case '\n':
				return nil, fmt.Errorf("line %d: unterminated quote: %w", line, internalerr.ErrInvalidInput)
			default:
				cur.WriteRune(r)
			}

		case r == ';' || r == '#':
			if inFact {
				return nil, fmt.Errorf("line %d: comment inside expression: %w", line, internalerr.ErrInvalidInput)
			}
			inComment = true

		case r == '(':
			if inFact {
				return nil, fmt.Errorf("line %d: nested '(': %w", line, internalerr.ErrInvalidInput)
			}
			inFact = true
			atoms = atoms[:0]

		case r == ')':
			if !inFact {
				return nil, fmt.Errorf("line %d: unexpected ')': %w", line, internalerr.ErrInvalidInput)
			}
			endAtom()
			if len(atoms) != 3 {
				return nil, fmt.Errorf("line %d: expected (relation subject object), got %d atoms: %w",
					line, len(atoms), internalerr.ErrInvalidInput)
			}
			out = append(out, Fact{Relation: atoms[0], Subject: atoms[1], Object: atoms[2]})
			inFact = false

		case r == '"':
			if !inFact {
				return nil, fmt.Errorf("line %d: unexpected quote: %w", line, internalerr.ErrInvalidInput)
			}
			endAtom()
			inQuote = true
			haveCur = true // a quoted atom may be empty

		case unicode.IsSpace(r):
			if r == '\n' {
				line++
			}
			if inFact {
				endAtom()
			}

		default:
			if !inFact {
				return nil, fmt.Errorf("line %d: text outside expression: %w", line, internalerr.ErrInvalidInput)
			}
			cur.WriteRune(r)
			haveCur = true
		}
	}

	if inQuote {
		return nil, fmt.Errorf("line %d: unterminated quote: %w", line, internalerr.ErrInvalidInput)
	}
	if inFact {
		return nil, fmt.Errorf("line %d: unterminated '(': %w", line, internalerr.ErrInvalidInput)
	}

	return out, nil
}

// ParseFile reads and parses a knowledge base file.
func ParseFile(path string) ([]Fact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	facts, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return facts, nil
}

// Render serializes facts back to knowledge base text, one per line.
// Atoms containing whitespace or syntax characters are quoted.
func Render(facts []Fact) string {
	var b strings.Builder
	for _, f := range facts {
		b.WriteByte('(')
		b.WriteString(renderAtom(f.Relation))
		b.WriteByte(' ')
		b.WriteString(renderAtom(f.Subject))
		b.WriteByte(' ')
		b.WriteString(renderAtom(f.Object))
		b.WriteString(")\n")
	}
	return b.String()
}

func renderAtom(atom string) string {
	if atom == "" || strings.ContainsAny(atom, " \t\n\"();#") {
		return `"` + atom + `"`
	}
	return atom
}
