package kb

import (
	"context"
	"fmt"
	"log"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/internalerr"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

// Accessor reads the disease universe out of a fact store. It only needs
// the store's enumeration capabilities; every symptom coming back is pushed
// through the normalizer so snapshot entries are canonical on both sides of
// a comparison.
type Accessor struct {
	store    facts.Store
	norm     *symptom.Normalizer
	relation string
}

// NewAccessor creates an accessor over a fact store. A nil store is
// allowed; loads then fail over to the fallback table. A nil normalizer
// means plain normalization without synonym resolution.
func NewAccessor(store facts.Store, norm *symptom.Normalizer) *Accessor {
	if norm == nil {
		norm = symptom.NewNormalizer()
	}
	return &Accessor{store: store, norm: norm, relation: facts.HasSymptom}
}

// SetRelation overrides the disease/symptom relation name.
func (a *Accessor) SetRelation(relation string) {
	a.relation = relation
}

// ListDiseases enumerates every disease the store knows.
func (a *Accessor) ListDiseases(ctx context.Context) ([]string, error) {
	if a.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return a.store.Subjects(ctx, a.relation)
}

// SymptomsOf returns the canonical symptoms recorded for a disease.
func (a *Accessor) SymptomsOf(ctx context.Context, disease string) ([]string, error) {
	if a.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	objs, err := a.store.Objects(ctx, a.relation, disease)
	if err != nil {
		return nil, err
	}
	return a.norm.ResolveAll(objs), nil
}

// Load scans the store into an immutable snapshot. Disease identifiers are
// normalized; identifiers that normalize to the same name merge their
// symptom sets.
func (a *Accessor) Load(ctx context.Context) (*Snapshot, error) {
	names, err := a.ListDiseases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list diseases: %w", err)
	}

	table := make(map[string][]string, len(names))
	for _, raw := range names {
		symptoms, err := a.SymptomsOf(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("symptoms of %s: %w", raw, err)
		}
		name := symptom.Normalize(raw)
		if name == "" {
			continue
		}
		table[name] = append(table[name], symptoms...)
	}
	return NewSnapshot(table), nil
}

// CanonicalFact normalizes a fact for storage: the subject is normalized
// and has-symptom objects are synonym-resolved, so equivalent spellings
// land on one row. Returns false when either side normalizes away.
func CanonicalFact(f facts.Fact, norm *symptom.Normalizer) (facts.Fact, bool) {
	if norm == nil {
		norm = symptom.NewNormalizer()
	}

	out := facts.Fact{
		Relation: f.Relation,
		Subject:  symptom.Normalize(f.Subject),
	}
	if f.Relation == facts.HasSymptom {
		out.Object = norm.Resolve(f.Object)
	} else {
		out.Object = symptom.Normalize(f.Object)
	}

	if out.Relation == "" || out.Subject == "" || out.Object == "" {
		return facts.Fact{}, false
	}
	return out, true
}

// LoadOrFallback loads a snapshot, serving the fallback table when the
// store is missing, unreachable, or holds no diseases. The degraded
// condition is logged, never fatal: downstream scoring always gets a
// non-empty universe. A nil fallback means the builtin table.
func (a *Accessor) LoadOrFallback(ctx context.Context, fallback *Snapshot) *Snapshot {
	if fallback == nil {
		fallback = Fallback()
	}

	snap, err := a.Load(ctx)
	if err != nil {
		log.Printf("kb: degraded: fact store unavailable (%v), serving fallback table (%d diseases)",
			err, fallback.Len())
		return fallback
	}
	if snap.Len() == 0 {
		log.Printf("kb: degraded: fact store holds no diseases, serving fallback table (%d diseases)",
			fallback.Len())
		return fallback
	}
	return snap
}
