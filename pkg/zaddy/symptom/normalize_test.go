package symptom

import "testing"

func TestNormalizeBasic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fever", "fever"},
		{"  Sore Throat  ", "sore_throat"},
		{"HIGH   TEMPERATURE", "high_temperature"},
		{"runny nose!!", "runny_nose"},
		{"loss-of-smell", "loss-of-smell"},
		{"head_pain", "head_pain"},
		{"covid19", "covid19"},
		{"", ""},
		{"   \t\n ", ""},
		{"???", ""},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Fever", "  Sore Throat ", "a ! b", "café au lait", "GPT-4",
		"shortness of breath", "nausea...", "", "--", "温度",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeStripsNonToken(t *testing.T) {
	// Punctuation goes, letters/digits/underscore/hyphen stay.
	if got := Normalize("chest pain (severe)"); got != "chest_pain_severe" {
		t.Errorf("got %q", got)
	}
	if got := Normalize("fever@38.5C"); got != "fever385c" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeUnicode(t *testing.T) {
	// NFKC folds compatibility forms before filtering.
	if got := Normalize("ｆｅｖｅｒ"); got != "fever" {
		t.Errorf("fullwidth input: got %q, want %q", got, "fever")
	}
	if got := Normalize("café"); got != "café" {
		t.Errorf("accented letters should survive: got %q", got)
	}
}

func TestResolveWithoutLexicon(t *testing.T) {
	n := NewNormalizer()

	// No lexicon: normalization only, unknown tokens pass through.
	if got := n.Resolve("Pyrexia"); got != "pyrexia" {
		t.Errorf("Resolve(%q) = %q, want %q", "Pyrexia", got, "pyrexia")
	}
}

func TestResolveWithLexicon(t *testing.T) {
	n := DefaultNormalizer()

	cases := []struct {
		in   string
		want string
	}{
		{"pyrexia", "fever"},
		{"High Temperature", "fever"},
		{"feverish", "fever"},
		{"fever", "fever"},
		{"SOB", "shortness_of_breath"},
		{"throwing up", "vomiting"},
		{"unknown_symptom", "unknown_symptom"},
	}

	for _, c := range cases {
		if got := n.Resolve(c.in); got != c.want {
			t.Errorf("Resolve(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveAllDropsEmptiesAndDuplicates(t *testing.T) {
	n := DefaultNormalizer()

	got := n.ResolveAll([]string{"Fever", "pyrexia", "??", "", "cough", "coughing"})
	want := []string{"fever", "cough"}

	if len(got) != len(want) {
		t.Fatalf("ResolveAll = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ResolveAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveAllPreservesOrder(t *testing.T) {
	n := NewNormalizer()

	got := n.ResolveAll([]string{"zeta", "alpha", "zeta", "mid"})
	want := []string{"zeta", "alpha", "mid"}

	if len(got) != len(want) {
		t.Fatalf("ResolveAll = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ResolveAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
