// Package explain produces concise differential summaries: what a runner-up
// candidate shares with the top candidate and what sets each apart.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
)

// DefaultMaxItems caps how many symptoms each diff segment lists.
const DefaultMaxItems = 3

const noDifferences = "no key symptom differences captured."

// Comparison pairs a runner-up disease with its diff against the top candidate.
type Comparison struct {
	Disease string `json:"disease"`
	Summary string `json:"summary"`
}

// Diff summarizes how other differs from top in one line, for example:
//
//	shares 2 symptom(s): cough, fever | flu unique: fatigue | covid19 unique: loss_of_smell
//
// Each segment lists at most maxItems symptoms, alphabetically; the shared
// count reflects the listed items. maxItems <= 0 uses DefaultMaxItems.
// When both symptom sets are empty there is nothing to contrast and a
// fixed fallback line is returned.
func Diff(top, other kb.Disease, maxItems int) string {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	topSet := toSet(top.Symptoms)
	otherSet := toSet(other.Symptoms)

	var shared, onlyTop, onlyOther []string
	for s := range topSet {
		if otherSet[s] {
			shared = append(shared, s)
		} else {
			onlyTop = append(onlyTop, s)
		}
	}
	for s := range otherSet {
		if !topSet[s] {
			onlyOther = append(onlyOther, s)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyTop)
	sort.Strings(onlyOther)

	var parts []string
	if len(shared) > 0 {
		listed := firstN(shared, maxItems)
		parts = append(parts, fmt.Sprintf("shares %d symptom(s): %s", len(listed), strings.Join(listed, ", ")))
	}
	if len(onlyTop) > 0 {
		parts = append(parts, fmt.Sprintf("%s unique: %s", top.Name, strings.Join(firstN(onlyTop, maxItems), ", ")))
	}
	if len(onlyOther) > 0 {
		parts = append(parts, fmt.Sprintf("%s unique: %s", other.Name, strings.Join(firstN(onlyOther, maxItems), ", ")))
	}

	if len(parts) == 0 {
		return noDifferences
	}
	return strings.Join(parts, " | ")
}

// Compare diffs each runner-up against the top candidate, in the order
// given. Names missing from the snapshot are skipped.
func Compare(snap *kb.Snapshot, top string, others []string, maxItems int) []Comparison {
	topDisease, ok := snap.Disease(top)
	if !ok {
		return nil
	}

	out := make([]Comparison, 0, len(others))
	for _, name := range others {
		if name == top {
			continue
		}
		other, ok := snap.Disease(name)
		if !ok {
			continue
		}
		out = append(out, Comparison{
			Disease: name,
			Summary: Diff(topDisease, other, maxItems),
		})
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
