package rank

import (
	"sort"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

// Simple ranks diseases by raw match count, ignoring symptom rarity. It is
// the cheap strategy behind quick scans; the weighted Scorer is the primary
// ranking.
type Simple struct {
	norm *symptom.Normalizer
}

// NewSimple creates a simple scorer. A nil normalizer means plain
// normalization without synonym resolution.
func NewSimple(norm *symptom.Normalizer) *Simple {
	if norm == nil {
		norm = symptom.NewNormalizer()
	}
	return &Simple{norm: norm}
}

// Score ranks every disease by intersection size with the user's resolved
// symptoms. Order: matched desc, match fraction desc, total asc, disease
// name asc. Same input rules as the weighted scorer: empty resolved set
// yields an empty result, zero-symptom diseases are excluded, zero-match
// candidates are retained.
func (s *Simple) Score(snap *kb.Snapshot, rawSymptoms []string) []Candidate {
	resolved := s.norm.ResolveAll(rawSymptoms)
	if len(resolved) == 0 {
		return nil
	}
	user := make(map[string]struct{}, len(resolved))
	for _, tok := range resolved {
		user[tok] = struct{}{}
	}

	cands := make([]Candidate, 0, snap.Len())
	for _, d := range snap.Diseases() {
		if len(d.Symptoms) == 0 {
			continue
		}

		var matched int
		for _, sym := range d.Symptoms {
			if _, ok := user[sym]; ok {
				matched++
			}
		}

		c := Candidate{Disease: d.Name, Matched: matched, Total: len(d.Symptoms)}
		c.Weighted = c.Simple()
		cands = append(cands, c)
	}

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Matched != b.Matched {
			return a.Matched > b.Matched
		}
		if a.Simple() != b.Simple() {
			return a.Simple() > b.Simple()
		}
		if a.Total != b.Total {
			return a.Total < b.Total
		}
		return a.Disease < b.Disease
	})
	return cands
}
