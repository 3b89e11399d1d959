package weight

import (
	"math"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
)

// Model holds inverse-frequency symptom weights for one disease population.
// It is a pure function of the snapshot it was built from: rebuild (or hit
// the cache) whenever the snapshot changes.
type Model struct {
	freq  map[string]int
	total int
}

// NewModel derives frequencies and weights from a snapshot.
//
// freq(s) = number of distinct diseases listing s
// weight(s) = ln(1 + totalDiseases / freq(s))
//
// totalDiseases is clamped to ≥1 and unknown symptoms count as freq 1, so
// every weight is finite and strictly positive: a symptom appearing in every
// disease still contributes ln(2), never zero.
func NewModel(snap *kb.Snapshot) *Model {
	freq := make(map[string]int)
	for _, d := range snap.Diseases() {
		for _, s := range d.Symptoms {
			freq[s]++
		}
	}

	total := snap.Len()
	if total < 1 {
		total = 1
	}
	return &Model{freq: freq, total: total}
}

// TotalDiseases returns the population size the model was derived from.
func (m *Model) TotalDiseases() int {
	return m.total
}

// Frequency returns how many diseases list the symptom, clamped to ≥1.
func (m *Model) Frequency(s string) int {
	if f := m.freq[s]; f > 1 {
		return f
	}
	return 1
}

// Weight returns the rarity weight of a symptom: rare symptoms weigh more,
// ubiquitous ones bottom out at ln 2.
func (m *Model) Weight(s string) float64 {
	return math.Log(1 + float64(m.total)/float64(m.Frequency(s)))
}
