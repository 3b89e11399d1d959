package explain

import (
	"strings"
	"testing"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
)

func disease(name string, symptoms ...string) kb.Disease {
	return kb.Disease{Name: name, Symptoms: symptoms}
}

func TestDiffSharedAndUnique(t *testing.T) {
	top := disease("flu", "fever", "cough", "fatigue")
	other := disease("covid19", "fever", "cough", "loss_of_smell")

	got := Diff(top, other, 3)
	want := "shares 2 symptom(s): cough, fever | flu unique: fatigue | covid19 unique: loss_of_smell"
	if got != want {
		t.Errorf("Diff = %q, want %q", got, want)
	}
}

func TestDiffOmitsEmptySegments(t *testing.T) {
	// Identical symptom sets: no unique segments at all.
	top := disease("a", "fever", "cough")
	other := disease("b", "fever", "cough")

	got := Diff(top, other, 3)
	if got != "shares 2 symptom(s): cough, fever" {
		t.Errorf("Diff = %q", got)
	}
	if strings.Contains(got, "unique") {
		t.Errorf("unexpected unique segment in %q", got)
	}
}

func TestDiffDisjointSets(t *testing.T) {
	top := disease("a", "fever")
	other := disease("b", "rash")

	got := Diff(top, other, 3)
	if got != "a unique: fever | b unique: rash" {
		t.Errorf("Diff = %q", got)
	}
}

func TestDiffCapsListedItems(t *testing.T) {
	top := disease("a", "s1", "s2", "s3", "s4", "s5")
	other := disease("b", "s1", "s2", "s3", "s4", "s5")

	// Five shared symptoms, cap at 2: the count reflects what is listed.
	got := Diff(top, other, 2)
	if got != "shares 2 symptom(s): s1, s2" {
		t.Errorf("Diff = %q", got)
	}
}

func TestDiffDefaultMaxItems(t *testing.T) {
	top := disease("a", "s1", "s2", "s3", "s4")
	other := disease("b", "s1", "s2", "s3", "s4")

	got := Diff(top, other, 0)
	if got != "shares 3 symptom(s): s1, s2, s3" {
		t.Errorf("Diff with default cap = %q", got)
	}
}

func TestDiffNothingToContrast(t *testing.T) {
	got := Diff(disease("a"), disease("b"), 3)
	if got != noDifferences {
		t.Errorf("Diff = %q, want fallback line", got)
	}
}

func TestDiffSortsAlphabetically(t *testing.T) {
	top := disease("a", "zeta", "alpha", "mid")
	other := disease("b", "zeta", "alpha", "mid")

	got := Diff(top, other, 3)
	if got != "shares 3 symptom(s): alpha, mid, zeta" {
		t.Errorf("Diff = %q", got)
	}
}

func TestCompare(t *testing.T) {
	snap := kb.NewSnapshot(map[string][]string{
		"flu":     {"fever", "cough", "fatigue"},
		"covid19": {"fever", "cough", "loss_of_smell"},
		"cold":    {"sneezing", "cough", "runny_nose"},
	})

	comps := Compare(snap, "flu", []string{"covid19", "cold", "flu", "missing"}, 3)
	if len(comps) != 2 {
		t.Fatalf("got %d comparisons, want 2 (top and unknown skipped): %+v", len(comps), comps)
	}
	if comps[0].Disease != "covid19" || comps[1].Disease != "cold" {
		t.Errorf("order = [%s %s], want [covid19 cold]", comps[0].Disease, comps[1].Disease)
	}
	if !strings.Contains(comps[0].Summary, "shares 2 symptom(s): cough, fever") {
		t.Errorf("covid19 summary = %q", comps[0].Summary)
	}
}

func TestCompareUnknownTop(t *testing.T) {
	snap := kb.NewSnapshot(map[string][]string{"flu": {"fever"}})
	if comps := Compare(snap, "absent", []string{"flu"}, 3); comps != nil {
		t.Errorf("Compare with unknown top = %+v, want nil", comps)
	}
}
