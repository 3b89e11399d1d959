package kb

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync/atomic"
	"time"
)

// Disease is one knowledge base entry: an identifier plus its deduplicated
// symptom set.
type Disease struct {
	Name     string
	Symptoms []string // canonical, sorted
}

// Snapshot is an immutable view of the disease/symptom universe. Every read
// during one diagnosis sees the same snapshot; reloads build a new one and
// swap it in whole, so no locking is needed on the read path.
type Snapshot struct {
	diseases []Disease
	index    map[string]int
	hash     string
	degraded bool
	loadedAt time.Time
}

// NewSnapshot builds a snapshot from a disease → symptoms table. Symptom
// tokens are stored as given (callers canonicalize first); empty tokens and
// duplicates are dropped and everything is sorted for deterministic reads.
func NewSnapshot(table map[string][]string) *Snapshot {
	names := make([]string, 0, len(table))
	for name := range table {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	snap := &Snapshot{
		index:    make(map[string]int, len(names)),
		loadedAt: time.Now(),
	}

	h := sha256.New()
	for _, name := range names {
		symptoms := uniqueSorted(table[name])
		snap.index[name] = len(snap.diseases)
		snap.diseases = append(snap.diseases, Disease{Name: name, Symptoms: symptoms})

		h.Write([]byte(name))
		h.Write([]byte{0})
		for _, s := range symptoms {
			h.Write([]byte(s))
			h.Write([]byte{1})
		}
	}
	snap.hash = hex.EncodeToString(h.Sum(nil))
	return snap
}

// Diseases returns all entries, sorted by name. Callers must not mutate.
func (s *Snapshot) Diseases() []Disease {
	return s.diseases
}

// Disease looks up one entry by name.
func (s *Snapshot) Disease(name string) (Disease, bool) {
	if i, ok := s.index[name]; ok {
		return s.diseases[i], true
	}
	return Disease{}, false
}

// Symptoms returns the symptom set of a disease, nil when absent.
func (s *Snapshot) Symptoms(name string) []string {
	if i, ok := s.index[name]; ok {
		return s.diseases[i].Symptoms
	}
	return nil
}

// Len returns the number of diseases.
func (s *Snapshot) Len() int {
	return len(s.diseases)
}

// Hash is a content hash of the universe. Equal content yields equal
// hashes, which keys derived-weight caches across reloads.
func (s *Snapshot) Hash() string {
	return s.hash
}

// Degraded reports whether this snapshot came from the builtin fallback
// table rather than a fact store.
func (s *Snapshot) Degraded() bool {
	return s.degraded
}

// LoadedAt returns the snapshot build time.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Stats summarizes the universe.
type Stats struct {
	Diseases         int
	DistinctSymptoms int
}

// Stats counts diseases and distinct symptoms.
func (s *Snapshot) Stats() Stats {
	seen := make(map[string]struct{})
	for _, d := range s.diseases {
		for _, sym := range d.Symptoms {
			seen[sym] = struct{}{}
		}
	}
	return Stats{Diseases: len(s.diseases), DistinctSymptoms: len(seen)}
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Holder publishes the current snapshot and lets reloads swap it atomically.
type Holder struct {
	cur atomic.Pointer[Snapshot]
}

// NewHolder creates a holder seeded with an initial snapshot.
func NewHolder(s *Snapshot) *Holder {
	h := &Holder{}
	h.cur.Store(s)
	return h
}

// Snapshot returns the current snapshot.
func (h *Holder) Snapshot() *Snapshot {
	return h.cur.Load()
}

// Swap publishes a new snapshot.
func (h *Holder) Swap(s *Snapshot) {
	h.cur.Store(s)
}
