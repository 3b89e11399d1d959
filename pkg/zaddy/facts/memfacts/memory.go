package memfacts

import (
	"context"
	"sort"
	"sync"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/internalerr"
)

// Store is an in-memory implementation of facts.Store. It backs the
// bundled knowledge base files and tests; nothing is persisted.
type Store struct {
	mu      sync.RWMutex
	closed  bool
	rels    map[string]map[string][]string // relation → subject → objects, insertion order
	subjSeq map[string][]string            // relation → subjects, insertion order
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		rels:    make(map[string]map[string][]string),
		subjSeq: make(map[string][]string),
	}
}

// Load asserts every fact into a fresh store.
func Load(facts []facts.Fact) *Store {
	s := New()
	for _, f := range facts {
		s.put(f)
	}
	return s
}

// Close marks the store unavailable. Later calls fail with
// internalerr.ErrStoreUnavailable, which callers use to exercise
// knowledge base fallback paths.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Assert implements facts.Store.
func (s *Store) Assert(ctx context.Context, f facts.Fact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return internalerr.ErrStoreUnavailable
	}
	s.put(f)
	return nil
}

func (s *Store) put(f facts.Fact) {
	subjects, ok := s.rels[f.Relation]
	if !ok {
		subjects = make(map[string][]string)
		s.rels[f.Relation] = subjects
	}

	if _, ok := subjects[f.Subject]; !ok {
		s.subjSeq[f.Relation] = append(s.subjSeq[f.Relation], f.Subject)
	}

	for _, obj := range subjects[f.Subject] {
		if obj == f.Object {
			return
		}
	}
	subjects[f.Subject] = append(subjects[f.Subject], f.Object)
}

// Holds implements facts.Store.
func (s *Store) Holds(ctx context.Context, f facts.Fact) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, internalerr.ErrStoreUnavailable
	}
	for _, obj := range s.rels[f.Relation][f.Subject] {
		if obj == f.Object {
			return true, nil
		}
	}
	return false, nil
}

// Subjects implements facts.Store. Subjects come back in first-assert order.
func (s *Store) Subjects(ctx context.Context, relation string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}
	seq := s.subjSeq[relation]
	out := make([]string, len(seq))
	copy(out, seq)
	return out, nil
}

// Objects implements facts.Store. Objects come back sorted.
func (s *Store) Objects(ctx context.Context, relation, subject string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}
	objs := s.rels[relation][subject]
	out := make([]string, len(objs))
	copy(out, objs)
	sort.Strings(out)
	return out, nil
}
