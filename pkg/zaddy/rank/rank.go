package rank

import (
	"sort"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/weight"
)

// Candidate is one scored disease.
type Candidate struct {
	Disease  string  `json:"disease"`
	Weighted float64 `json:"weighted"` // weighted match fraction, in [0, 1]
	Matched  int     `json:"matched"`  // user symptoms present in the disease set
	Total    int     `json:"total"`    // disease symptom count
}

// Simple returns the unweighted match fraction matched/total.
func (c Candidate) Simple() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Matched) / float64(c.Total)
}

// Scorer ranks diseases by weighted symptom match fraction.
type Scorer struct {
	norm *symptom.Normalizer
}

// NewScorer creates a scorer. A nil normalizer means plain normalization
// without synonym resolution.
func NewScorer(norm *symptom.Normalizer) *Scorer {
	if norm == nil {
		norm = symptom.NewNormalizer()
	}
	return &Scorer{norm: norm}
}

// Score ranks every disease in the snapshot against the user's raw symptom
// tokens.
//
// For each disease: weightedFraction = Σ weight(matched) / Σ weight(all),
// using the model's rarity weights, so one rare hit can outrank several
// common ones.
//
// Rules:
//   - user tokens are normalized and synonym-resolved; empties dropped
//   - an empty resolved set yields an empty result
//   - diseases with no recorded symptoms are excluded
//   - candidates with zero matches are retained; presentation layers
//     filter them via TopMatches
//
// The result order is a total order: weightedFraction desc, then matched
// desc, then total asc, then disease name asc. Equal inputs always produce
// identical output.
func (s *Scorer) Score(snap *kb.Snapshot, model *weight.Model, rawSymptoms []string) []Candidate {
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
		var matchedW, totalW float64
		for _, sym := range d.Symptoms {
			w := model.Weight(sym)
			totalW += w
			if _, ok := user[sym]; ok {
				matched++
				matchedW += w
			}
		}

		frac := 0.0
		if totalW > 0 {
			frac = matchedW / totalW
		}
		cands = append(cands, Candidate{
			Disease:  d.Name,
			Weighted: frac,
			Matched:  matched,
			Total:    len(d.Symptoms),
		})
	}

	sortCandidates(cands)
	return cands
}

// sortCandidates orders by weighted fraction desc, matched desc, total asc,
// disease name asc. The name tiebreak makes the order total.
func sortCandidates(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Weighted != b.Weighted {
			return a.Weighted > b.Weighted
		}
		if a.Matched != b.Matched {
			return a.Matched > b.Matched
		}
		if a.Total != b.Total {
			return a.Total < b.Total
		}
		return a.Disease < b.Disease
	})
}

// TopMatches keeps the first n candidates that matched at least one
// symptom. n <= 0 means no limit.
func TopMatches(cands []Candidate, n int) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Matched == 0 {
			continue
		}
		out = append(out, c)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
