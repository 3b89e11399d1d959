package config

import (
	"strings"
	"testing"
)

func TestLoaderDefaults(t *testing.T) {
	loader := &Loader{}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.Lexicon == nil || !comp.Lexicon.HasSynonyms("pyrexia") {
		t.Error("default lexicon missing or incomplete")
	}
	if comp.Normalizer.Resolve("Pyrexia") != "fever" {
		t.Error("normalizer not wired to lexicon")
	}
	if len(comp.Rules) != 6 {
		t.Errorf("got %d default rules, want 6", len(comp.Rules))
	}
	if comp.Fallback == nil || !comp.Fallback.Degraded() {
		t.Error("fallback snapshot missing or not flagged degraded")
	}
	if comp.Fallback.Len() != 5 {
		t.Errorf("fallback has %d diseases, want 5", comp.Fallback.Len())
	}
}

func TestLoaderFromFiles(t *testing.T) {
	synonyms := writeFile(t, "synonyms.yaml", `synonyms:
  - canonical: fever
    variants: [febrile]
`)
	rulesPath := writeFile(t, "rules.yaml", `rules:
  - disease: flu
    requires: [fever, cough]
    treatment: Rest
`)
	fallback := writeFile(t, "fallback.yaml", `diseases:
  measles: [Fever, Skin Rash]
`)

	loader := &Loader{
		SynonymsPath: synonyms,
		RulesPath:    rulesPath,
		FallbackPath: fallback,
	}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.Normalizer.Resolve("febrile") != "fever" {
		t.Error("custom synonym not loaded")
	}
	// Custom lexicon replaces the builtin one entirely.
	if comp.Normalizer.Resolve("pyrexia") != "pyrexia" {
		t.Error("builtin synonyms leaked into custom lexicon")
	}
	if len(comp.Rules) != 1 || comp.Rules[0].Disease != "flu" {
		t.Errorf("rules = %+v", comp.Rules)
	}

	// Fallback entries are canonicalized through the custom lexicon.
	syms := comp.Fallback.Symptoms("measles")
	if len(syms) != 2 || syms[0] != "fever" || syms[1] != "skin_rash" {
		t.Errorf("measles symptoms = %v", syms)
	}
	if !comp.Fallback.Degraded() {
		t.Error("custom fallback not flagged degraded")
	}
}

func TestLoaderPropagatesErrors(t *testing.T) {
	loader := &Loader{SynonymsPath: "/nonexistent/synonyms.yaml"}
	_, err := loader.Load()
	if err == nil || !strings.Contains(err.Error(), "load synonyms") {
		t.Errorf("err = %v, want load synonyms wrap", err)
	}

	loader = &Loader{RulesPath: "/nonexistent/rules.yaml"}
	if _, err := loader.Load(); err == nil || !strings.Contains(err.Error(), "load rules") {
		t.Errorf("err = %v, want load rules wrap", err)
	}

	loader = &Loader{FallbackPath: "/nonexistent/fallback.yaml"}
	if _, err := loader.Load(); err == nil || !strings.Contains(err.Error(), "load fallback kb") {
		t.Errorf("err = %v, want load fallback kb wrap", err)
	}
}
