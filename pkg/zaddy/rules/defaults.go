package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

// defaultRules covers the common conditions an intake session screens for.
// Requires must all be present; optional symptoms only strengthen the report.
var defaultRules = []Rule{
	{
		Disease:   "flu",
		Requires:  []string{"fever", "cough", "chills"},
		Optional:  []string{"fatigue", "headache", "sore_throat"},
		Treatment: "Rest, hydration, symptomatic care; see physician if severe",
	},
	{
		Disease:   "common_cold",
		Requires:  []string{"cough", "sore_throat"},
		Optional:  []string{"headache"},
		Treatment: "Rest, fluids, warm fluids and lozenges",
	},
	{
		Disease:   "malaria",
		Requires:  []string{"fever", "fatigue", "chills"},
		Optional:  []string{"headache", "vomiting"},
		Treatment: "Seek medical care: antimalarial therapy as prescribed",
	},
	{
		Disease:   "typhoid",
		Requires:  []string{"fever", "headache"},
		Optional:  []string{"nausea", "diarrhea"},
		Treatment: "Antibiotics under medical supervision; hydration",
	},
	{
		Disease:   "covid19",
		Requires:  []string{"fever", "loss_of_taste"},
		Optional:  []string{"cough", "fatigue", "sore_throat"},
		Treatment: "Isolation, symptomatic care; get tested and follow local guidance",
	},
	{
		Disease:   "food_poisoning",
		Requires:  []string{"nausea", "vomiting", "diarrhea"},
		Optional:  []string{"fever"},
		Treatment: "Hydration, electrolyte replacement; seek care if severe",
	},
}

// Default returns the built-in rule set.
func Default() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// DefaultEngine returns an engine over the built-in rules with the
// default synonym lexicon, ready for interactive intake.
func DefaultEngine() *Engine {
	return NewEngine(Default(), symptom.DefaultNormalizer())
}

// ChecklistItem pairs a canonical symptom key with a display label for
// interactive yes/no intake.
type ChecklistItem struct {
	Key   string
	Label string
}

// DefaultChecklist returns the intake questions covering the vocabulary of
// the built-in rules.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Key: "fever", Label: "Fever"},
		{Key: "cough", Label: "Cough"},
		{Key: "fatigue", Label: "Fatigue"},
		{Key: "headache", Label: "Headache"},
		{Key: "sore_throat", Label: "Sore throat"},
		{Key: "nausea", Label: "Nausea"},
		{Key: "vomiting", Label: "Vomiting"},
		{Key: "diarrhea", Label: "Diarrhea"},
		{Key: "loss_of_taste", Label: "Loss of taste/smell"},
		{Key: "chills", Label: "Chills"},
	}
}

// ChecklistFromRules derives intake questions from a rule set: every
// symptom any rule requires or lists as optional, in declaration order,
// each once. Labels are generated from the keys.
func ChecklistFromRules(rs []Rule) []ChecklistItem {
	seen := make(map[string]bool)
	var items []ChecklistItem
	add := func(key string) {
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		items = append(items, ChecklistItem{Key: key, Label: labelFor(key)})
	}
	for _, r := range rs {
		for _, s := range r.Requires {
			add(s)
		}
		for _, s := range r.Optional {
			add(s)
		}
	}
	return items
}

// labelFor turns a canonical key like "sore_throat" into "Sore throat".
func labelFor(key string) string {
	label := strings.ReplaceAll(key, "_", " ")
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return label
	}
	return string(unicode.ToUpper(r)) + label[size:]
}
