package kb

import (
	"context"
	"testing"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts/memfacts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

func seedStore() *memfacts.Store {
	return memfacts.Load([]facts.Fact{
		{Relation: facts.HasSymptom, Subject: "flu", Object: "fever"},
		{Relation: facts.HasSymptom, Subject: "flu", Object: "cough"},
		{Relation: facts.HasSymptom, Subject: "flu", Object: "fatigue"},
		{Relation: facts.HasSymptom, Subject: "malaria", Object: "fever"},
		{Relation: facts.HasSymptom, Subject: "malaria", Object: "chills"},
	})
}

func TestAccessorListDiseases(t *testing.T) {
	ctx := context.Background()
	acc := NewAccessor(seedStore(), symptom.DefaultNormalizer())

	got, err := acc.ListDiseases(ctx)
	if err != nil {
		t.Fatalf("ListDiseases: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListDiseases = %v, want 2 entries", got)
	}
}

func TestAccessorSymptomsOfResolvesSynonyms(t *testing.T) {
	ctx := context.Background()
	store := memfacts.Load([]facts.Fact{
		{Relation: facts.HasSymptom, Subject: "flu", Object: "pyrexia"},
		{Relation: facts.HasSymptom, Subject: "flu", Object: "Coughing"},
	})
	acc := NewAccessor(store, symptom.DefaultNormalizer())

	got, err := acc.SymptomsOf(ctx, "flu")
	if err != nil {
		t.Fatalf("SymptomsOf: %v", err)
	}
	// Store spellings collapse onto canonical forms.
	if len(got) != 2 || got[0] != "cough" || got[1] != "fever" {
		t.Errorf("SymptomsOf = %v, want [cough fever]", got)
	}
}

func TestAccessorLoad(t *testing.T) {
	ctx := context.Background()
	acc := NewAccessor(seedStore(), symptom.DefaultNormalizer())

	snap, err := acc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if snap.Degraded() {
		t.Error("store-backed snapshot must not be degraded")
	}
	if snap.Len() != 2 {
		t.Fatalf("Len = %d, want 2", snap.Len())
	}
	if got := snap.Symptoms("flu"); len(got) != 3 {
		t.Errorf("flu symptoms = %v, want 3 canonical entries", got)
	}
}

func TestAccessorLoadMergesEquivalentIDs(t *testing.T) {
	ctx := context.Background()
	store := memfacts.Load([]facts.Fact{
		{Relation: facts.HasSymptom, Subject: "Flu", Object: "fever"},
		{Relation: facts.HasSymptom, Subject: "flu", Object: "cough"},
	})
	acc := NewAccessor(store, symptom.DefaultNormalizer())

	snap, err := acc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (ids merge after normalization)", snap.Len())
	}
	if got := snap.Symptoms("flu"); len(got) != 2 {
		t.Errorf("merged flu symptoms = %v, want 2", got)
	}
}

func TestLoadOrFallbackHealthyStore(t *testing.T) {
	ctx := context.Background()
	acc := NewAccessor(seedStore(), symptom.DefaultNormalizer())

	snap := acc.LoadOrFallback(ctx, nil)
	if snap.Degraded() {
		t.Error("healthy store should not serve fallback")
	}
	if _, ok := snap.Disease("flu"); !ok {
		t.Error("loaded snapshot missing flu")
	}
}

func TestLoadOrFallbackClosedStore(t *testing.T) {
	ctx := context.Background()
	store := seedStore()
	store.Close()
	acc := NewAccessor(store, symptom.DefaultNormalizer())

	snap := acc.LoadOrFallback(ctx, nil)
	if !snap.Degraded() {
		t.Error("unreachable store must serve the degraded fallback")
	}
	if snap.Len() == 0 {
		t.Error("fallback universe must not be empty")
	}
}

func TestLoadOrFallbackEmptyStore(t *testing.T) {
	ctx := context.Background()
	acc := NewAccessor(memfacts.New(), symptom.DefaultNormalizer())

	snap := acc.LoadOrFallback(ctx, nil)
	if !snap.Degraded() {
		t.Error("empty universe must serve the degraded fallback")
	}
}

func TestLoadOrFallbackNilStore(t *testing.T) {
	ctx := context.Background()
	acc := NewAccessor(nil, nil)

	snap := acc.LoadOrFallback(ctx, nil)
	if !snap.Degraded() {
		t.Error("nil store must serve the degraded fallback")
	}
}

func TestLoadOrFallbackCustomFallback(t *testing.T) {
	ctx := context.Background()
	acc := NewAccessor(nil, nil)

	custom := FallbackFromTable(map[string][]string{
		"Dengue Fever": {"High Temperature", "joint pain"},
	}, symptom.DefaultNormalizer())

	snap := acc.LoadOrFallback(ctx, custom)
	if !snap.Degraded() {
		t.Error("custom fallback must stay flagged degraded")
	}
	got := snap.Symptoms("dengue_fever")
	if len(got) != 2 || got[0] != "fever" || got[1] != "joint_pain" {
		t.Errorf("custom fallback symptoms = %v, want [fever joint_pain]", got)
	}
}

func TestCanonicalFact(t *testing.T) {
	norm := symptom.DefaultNormalizer()

	f, ok := CanonicalFact(facts.Fact{
		Relation: facts.HasSymptom, Subject: "Dengue Fever", Object: "Pyrexia",
	}, norm)
	if !ok {
		t.Fatal("fact dropped unexpectedly")
	}
	if f.Subject != "dengue_fever" || f.Object != "fever" {
		t.Errorf("canonical fact = %+v", f)
	}

	// Non-symptom relations normalize without synonym resolution.
	f, ok = CanonicalFact(facts.Fact{
		Relation: "treated-by", Subject: "Flu", Object: "Pyrexia",
	}, norm)
	if !ok || f.Object != "pyrexia" {
		t.Errorf("non-symptom fact = %+v ok=%v, want object pyrexia", f, ok)
	}

	// Facts that normalize away are dropped.
	if _, ok := CanonicalFact(facts.Fact{
		Relation: facts.HasSymptom, Subject: "???", Object: "fever",
	}, norm); ok {
		t.Error("empty subject should drop the fact")
	}
	if _, ok := CanonicalFact(facts.Fact{
		Relation: facts.HasSymptom, Subject: "flu", Object: "??",
	}, norm); ok {
		t.Error("empty object should drop the fact")
	}
}
