package symptom

// defaultGroups is the builtin clinical synonym vocabulary. Canonical form
// first, surface variants after. Kept deliberately small: it covers the
// spellings the bundled knowledge bases and intake flows actually use.
var defaultGroups = []struct {
	canonical string
	variants  []string
}{
	{"fever", []string{"pyrexia", "high_temperature", "temp", "feverish"}},
	{"cough", []string{"coughing"}},
	{"sore_throat", []string{"throat_pain"}},
	{"runny_nose", []string{"rhinorrhea", "runny"}},
	{"shortness_of_breath", []string{"sob", "breathless"}},
	{"fatigue", []string{"tiredness", "lethargy"}},
	{"nausea", []string{"queasy"}},
	{"vomiting", []string{"throwing_up", "emesis"}},
	{"diarrhea", []string{"loose_stool"}},
	{"abdominal_pain", []string{"stomach_pain", "belly_pain"}},
	{"headache", []string{"head_pain"}},
	{"rash", []string{"skin_rash"}},
	{"chest_pain", []string{"pressure_chest"}},
	{"joint_pain", []string{"arthralgia"}},
	{"dizziness", []string{"lightheadedness"}},
	{"bleeding", []string{"hemorrhage", "bloody"}},
	{"discharge", []string{"vaginal_discharge"}},
	{"eye_pain", []string{"ocular_pain"}},
}

// DefaultLexicon returns a lexicon preloaded with the builtin synonym groups.
func DefaultLexicon() *Lexicon {
	lex := NewLexicon()
	for _, g := range defaultGroups {
		lex.AddSynonymGroup(g.canonical, g.variants)
	}
	return lex
}

// DefaultNormalizer returns a normalizer wired to the builtin lexicon.
func DefaultNormalizer() *Normalizer {
	n := NewNormalizer()
	n.SetLexicon(DefaultLexicon())
	return n
}
