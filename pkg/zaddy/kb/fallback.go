package kb

import "github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"

// fallbackTable is the builtin minimal universe served when no fact store
// is reachable. Entries are already canonical.
var fallbackTable = map[string][]string{
	"flu":     {"fever", "cough", "sore_throat"},
	"covid19": {"fever", "cough", "loss_of_smell"},
	"cold":    {"sneezing", "cough", "runny_nose"},
	"malaria": {"fever", "chills", "headache"},
	"typhoid": {"fever", "abdominal_pain", "weakness"},
}

// Fallback returns the builtin degraded-mode snapshot.
func Fallback() *Snapshot {
	snap := NewSnapshot(fallbackTable)
	snap.degraded = true
	return snap
}

// FallbackFromTable builds a degraded-mode snapshot from a custom table,
// canonicalizing every entry. A nil normalizer means plain normalization.
func FallbackFromTable(table map[string][]string, norm *symptom.Normalizer) *Snapshot {
	if norm == nil {
		norm = symptom.NewNormalizer()
	}
	canonical := make(map[string][]string, len(table))
	for name, symptoms := range table {
		key := symptom.Normalize(name)
		if key == "" {
			continue
		}
		canonical[key] = append(canonical[key], norm.ResolveAll(symptoms)...)
	}
	snap := NewSnapshot(canonical)
	snap.degraded = true
	return snap
}
