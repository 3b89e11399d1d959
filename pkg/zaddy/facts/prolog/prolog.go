package prolog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ichiban/prolog"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/internalerr"
)

// Store implements facts.Store on an embedded Prolog interpreter. Each
// relation becomes a dynamic binary predicate; hyphenated relation names
// like has-symptom are carried as quoted atoms. The interpreter is not
// goroutine-safe, so every call serializes on one mutex.
type Store struct {
	mu        sync.Mutex
	interp    *prolog.Interpreter
	relations map[string]struct{}
	closed    bool
}

// New creates an empty Prolog-backed store.
func New() *Store {
	return &Store{
		interp:    prolog.New(nil, nil),
		relations: make(map[string]struct{}),
	}
}

// Load asserts every fact into a fresh store.
func Load(fs []facts.Fact) (*Store, error) {
	s := New()
	ctx := context.Background()
	for _, f := range fs {
		if err := s.Assert(ctx, f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close marks the store unavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ensureRelation declares the predicate dynamic before its first clause,
// so queries against empty relations fail cleanly instead of raising
// existence errors.
func (s *Store) ensureRelation(relation string) error {
	if _, ok := s.relations[relation]; ok {
		return nil
	}
	if err := s.interp.Exec(fmt.Sprintf(":- dynamic(%s/2).", quoteAtom(relation))); err != nil {
		return fmt.Errorf("declare %s: %w", relation, err)
	}
	s.relations[relation] = struct{}{}
	return nil
}

// Assert implements facts.Store. Re-asserting an existing fact is a no-op.
func (s *Store) Assert(ctx context.Context, f facts.Fact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return internalerr.ErrStoreUnavailable
	}
	if err := s.ensureRelation(f.Relation); err != nil {
		return err
	}

	held, err := s.holdsLocked(f)
	if err != nil {
		return err
	}
	if held {
		return nil
	}

	goal := fmt.Sprintf(":- assertz(%s(?, ?)).", quoteAtom(f.Relation))
	if err := s.interp.Exec(goal, f.Subject, f.Object); err != nil {
		return fmt.Errorf("assert %s(%s, %s): %w", f.Relation, f.Subject, f.Object, err)
	}
	return nil
}

// Holds implements facts.Store.
func (s *Store) Holds(ctx context.Context, f facts.Fact) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, internalerr.ErrStoreUnavailable
	}
	return s.holdsLocked(f)
}

func (s *Store) holdsLocked(f facts.Fact) (bool, error) {
	if _, ok := s.relations[f.Relation]; !ok {
		return false, nil
	}

	sols, err := s.interp.Query(fmt.Sprintf("%s(?, ?).", quoteAtom(f.Relation)), f.Subject, f.Object)
	if err != nil {
		return false, err
	}
	defer sols.Close()

	if sols.Next() {
		return true, nil
	}
	return false, sols.Err()
}

// Subjects implements facts.Store. Subjects come back sorted.
func (s *Store) Subjects(ctx context.Context, relation string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}
	if _, ok := s.relations[relation]; !ok {
		return nil, nil
	}

	sols, err := s.interp.Query(fmt.Sprintf("%s(S, _).", quoteAtom(relation)))
	if err != nil {
		return nil, err
	}
	defer sols.Close()

	seen := make(map[string]struct{})
	var out []string
	for sols.Next() {
		var sol struct{ S string }
		if err := sols.Scan(&sol); err != nil {
			return nil, err
		}
		if _, dup := seen[sol.S]; dup {
			continue
		}
		seen[sol.S] = struct{}{}
		out = append(out, sol.S)
	}
	if err := sols.Err(); err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}

// Objects implements facts.Store. Objects come back sorted.
func (s *Store) Objects(ctx context.Context, relation, subject string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}
	if _, ok := s.relations[relation]; !ok {
		return nil, nil
	}

	sols, err := s.interp.Query(fmt.Sprintf("%s(?, O).", quoteAtom(relation)), subject)
	if err != nil {
		return nil, err
	}
	defer sols.Close()

	seen := make(map[string]struct{})
	var out []string
	for sols.Next() {
		var sol struct{ O string }
		if err := sols.Scan(&sol); err != nil {
			return nil, err
		}
		if _, dup := seen[sol.O]; dup {
			continue
		}
		seen[sol.O] = struct{}{}
		out = append(out, sol.O)
	}
	if err := sols.Err(); err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}

// quoteAtom renders an atom in quoted form so relation names with hyphens
// or other symbol characters stay valid Prolog.
func quoteAtom(atom string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range atom {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
