// Package rules implements rule-based disease detection: each rule names
// the symptoms that must all be present for a disease to be flagged, plus
// optional supporting symptoms and a treatment note.
//
// This complements the weighted matcher in rank: rank orders every disease
// by evidence strength, while rules gives a hard yes/no per disease for
// interactive intake flows.
package rules

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

// Rule describes one detectable disease.
type Rule struct {
	// Disease is the canonical disease identifier.
	Disease string `yaml:"disease"`

	// Requires lists symptoms that must ALL be present.
	Requires []string `yaml:"requires"`

	// Optional lists supporting symptoms reported alongside a detection
	// but never required for it.
	Optional []string `yaml:"optional"`

	// Treatment is a short care note surfaced with the detection.
	Treatment string `yaml:"treatment"`
}

// Detection is the outcome of a rule firing.
type Detection struct {
	Disease         string   `json:"disease"`
	MatchedRequired []string `json:"matched_required"`
	MatchedOptional []string `json:"matched_optional"`
	Treatment       string   `json:"treatment"`
}

// Engine evaluates rules against a reported symptom set.
type Engine struct {
	rules []Rule
	norm  *symptom.Normalizer
}

// NewEngine creates an engine over the given rules. Rule symptoms are
// canonicalized through the normalizer at construction, so rule files may
// use any known surface form ("pyrexia" works where "fever" does).
// A nil normalizer falls back to plain normalization without synonyms.
func NewEngine(ruleSet []Rule, norm *symptom.Normalizer) *Engine {
	if norm == nil {
		norm = symptom.NewNormalizer()
	}

	canonical := make([]Rule, 0, len(ruleSet))
	for _, r := range ruleSet {
		name := symptom.Normalize(r.Disease)
		if name == "" {
			continue
		}
		canonical = append(canonical, Rule{
			Disease:   name,
			Requires:  norm.ResolveAll(r.Requires),
			Optional:  norm.ResolveAll(r.Optional),
			Treatment: r.Treatment,
		})
	}

	return &Engine{rules: canonical, norm: norm}
}

// Rules returns the canonicalized rule set in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Detect evaluates every rule against the reported symptoms and returns
// the detections in rule declaration order. A rule fires when all of its
// required symptoms are present. Empty or unrecognized input yields no
// detections.
func (e *Engine) Detect(rawSymptoms []string) []Detection {
	resolved := e.norm.ResolveAll(rawSymptoms)
	if len(resolved) == 0 {
		return nil
	}

	present := make(map[string]bool, len(resolved))
	for _, s := range resolved {
		present[s] = true
	}

	var detected []Detection
	for _, r := range e.rules {
		fired := true
		for _, req := range r.Requires {
			if !present[req] {
				fired = false
				break
			}
		}
		if !fired {
			continue
		}

		d := Detection{
			Disease:   r.Disease,
			Treatment: r.Treatment,
			// All required symptoms are present when a rule fires.
			MatchedRequired: append([]string(nil), r.Requires...),
		}
		for _, opt := range r.Optional {
			if present[opt] {
				d.MatchedOptional = append(d.MatchedOptional, opt)
			}
		}
		detected = append(detected, d)
	}

	return detected
}

// LoadRulesFromYAML loads disease rules from a YAML file.
//
// Expected format:
//
//	rules:
//	  - disease: flu
//	    requires: [fever, cough, chills]
//	    optional: [fatigue, headache]
//	    treatment: Rest and hydration
func LoadRulesFromYAML(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return config.Rules, nil
}
